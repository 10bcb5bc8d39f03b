// Package sms talks to the Twilio-style messaging gateway that
// delivers order-confirmation texts.
package sms

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

type Client struct {
	baseURL    string
	accountSID string
	authToken  string
	from       string
	httpClient *http.Client
	logger     *logrus.Logger
}

type SendResult struct {
	MessageID string `json:"sid"`
	Status    string `json:"status"`
}

// GatewayError is a rejection from the gateway itself, as opposed to a
// transport failure. 4xx codes mean the request will never succeed.
type GatewayError struct {
	StatusCode int
	Code       int
	Message    string
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("sms gateway returned %d (code %d): %s", e.StatusCode, e.Code, e.Message)
}

func (e *GatewayError) Permanent() bool {
	return e.StatusCode >= 400 && e.StatusCode < 500 && e.StatusCode != http.StatusTooManyRequests
}

func NewClient(baseURL, accountSID, authToken, from string, logger *logrus.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		accountSID: accountSID,
		authToken:  authToken,
		from:       from,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}
}

// Send delivers one message. The destination should already be
// normalized; the gateway's message id and status are returned
// verbatim.
func (c *Client) Send(ctx context.Context, to, body string) (*SendResult, error) {
	form := url.Values{}
	form.Set("To", to)
	form.Set("From", c.from)
	form.Set("Body", body)

	endpoint := fmt.Sprintf("%s/Accounts/%s/Messages.json", c.baseURL, c.accountSID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create gateway request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(c.accountSID, c.authToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach sms gateway: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		gwErr := &GatewayError{StatusCode: resp.StatusCode}
		var errBody struct {
			Code    int    `json:"code"`
			Message string `json:"message"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&errBody); err == nil {
			gwErr.Code = errBody.Code
			gwErr.Message = errBody.Message
		}
		c.logger.WithFields(logrus.Fields{
			"status": resp.StatusCode,
			"code":   gwErr.Code,
		}).Error("SMS gateway rejected message")
		return nil, gwErr
	}

	var result SendResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode gateway response: %w", err)
	}

	c.logger.WithFields(logrus.Fields{
		"message_id": result.MessageID,
		"status":     result.Status,
	}).Info("SMS accepted by gateway")

	return &result, nil
}
