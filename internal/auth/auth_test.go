package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/jmkang/pepper-shop/pkg/models"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)
	return logger
}

func TestTokenRoundTrip(t *testing.T) {
	m := NewTokenManager("test-secret", time.Hour)

	token, err := m.Generate("boss", 7, models.RoleAdmin)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	claims, err := m.Validate(token)
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if claims.Username != "boss" {
		t.Errorf("username = %q, want boss", claims.Username)
	}
	if claims.AdminID != 7 {
		t.Errorf("admin id = %d, want 7", claims.AdminID)
	}
	if claims.Role != models.RoleAdmin {
		t.Errorf("role = %q, want admin", claims.Role)
	}
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	token, err := NewTokenManager("secret-a", time.Hour).Generate("boss", 1, models.RoleAdmin)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if _, err := NewTokenManager("secret-b", time.Hour).Validate(token); err == nil {
		t.Error("expected validation to fail with wrong secret")
	}
}

func TestValidateRejectsExpiredToken(t *testing.T) {
	m := NewTokenManager("test-secret", -time.Minute)

	token, err := m.Generate("boss", 1, models.RoleAdmin)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if _, err := m.Validate(token); err == nil {
		t.Error("expected validation to fail for expired token")
	}
}

func TestRequireAdmin(t *testing.T) {
	m := NewTokenManager("test-secret", time.Hour)

	var gotClaims *Claims
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotClaims, _ = ClaimsFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	protected := m.RequireAdmin(testLogger())(next)

	adminToken, _ := m.Generate("boss", 1, models.RoleAdmin)
	viewerToken, _ := m.Generate("intern", 2, "viewer")

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"no header", "", http.StatusUnauthorized},
		{"malformed header", "Token abc", http.StatusUnauthorized},
		{"garbage token", "Bearer not-a-jwt", http.StatusUnauthorized},
		{"wrong role", "Bearer " + viewerToken, http.StatusForbidden},
		{"admin token", "Bearer " + adminToken, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/admin/orders", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			protected.ServeHTTP(rec, req)
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}

	if gotClaims == nil || gotClaims.Username != "boss" {
		t.Error("claims were not stored in request context")
	}
}
