package sms

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)
	return logger
}

func TestClientSend(t *testing.T) {
	var gotTo, gotFrom, gotBody string
	var gotUser, gotPass string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/Accounts/AC123/Messages.json" {
			t.Errorf("path = %q", r.URL.Path)
		}
		gotUser, gotPass, _ = r.BasicAuth()
		r.ParseForm()
		gotTo = r.PostFormValue("To")
		gotFrom = r.PostFormValue("From")
		gotBody = r.PostFormValue("Body")

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]string{
			"sid":    "SMabc123",
			"status": "queued",
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, "AC123", "token456", "+15005550006", testLogger())

	result, err := client.Send(context.Background(), "+821012345678", "hello")
	if err != nil {
		t.Fatalf("Send() error = %v", err)
	}

	if result.MessageID != "SMabc123" {
		t.Errorf("message id = %q, want SMabc123", result.MessageID)
	}
	if result.Status != "queued" {
		t.Errorf("status = %q, want queued", result.Status)
	}
	if gotTo != "+821012345678" || gotFrom != "+15005550006" || gotBody != "hello" {
		t.Errorf("form = (%q, %q, %q)", gotTo, gotFrom, gotBody)
	}
	if gotUser != "AC123" || gotPass != "token456" {
		t.Errorf("basic auth = (%q, %q)", gotUser, gotPass)
	}
}

func TestClientSendGatewayError(t *testing.T) {
	tests := []struct {
		name          string
		status        int
		wantPermanent bool
	}{
		{"bad request", http.StatusBadRequest, true},
		{"unauthorized", http.StatusUnauthorized, true},
		{"rate limited", http.StatusTooManyRequests, false},
		{"server error", http.StatusInternalServerError, false},
		{"unavailable", http.StatusServiceUnavailable, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				json.NewEncoder(w).Encode(map[string]interface{}{
					"code":    21604,
					"message": "rejected",
				})
			}))
			defer server.Close()

			client := NewClient(server.URL, "AC123", "token456", "+15005550006", testLogger())

			_, err := client.Send(context.Background(), "+821012345678", "hello")
			if err == nil {
				t.Fatal("expected error")
			}

			gwErr, ok := err.(*GatewayError)
			if !ok {
				t.Fatalf("error type = %T, want *GatewayError", err)
			}
			if gwErr.StatusCode != tt.status {
				t.Errorf("status code = %d, want %d", gwErr.StatusCode, tt.status)
			}
			if gwErr.Code != 21604 {
				t.Errorf("gateway code = %d, want 21604", gwErr.Code)
			}
			if gwErr.Permanent() != tt.wantPermanent {
				t.Errorf("Permanent() = %v, want %v", gwErr.Permanent(), tt.wantPermanent)
			}
		})
	}
}

func TestClientSendTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // refuse connections

	client := NewClient(server.URL, "AC123", "token456", "+15005550006", testLogger())

	_, err := client.Send(context.Background(), "+821012345678", "hello")
	if err == nil {
		t.Fatal("expected transport error")
	}
	if _, ok := err.(*GatewayError); ok {
		t.Error("transport failure should not be a GatewayError")
	}
}
