// Package notifier implements the worker side of the notification
// pipeline: it consumes queued confirmation messages and pushes them
// through the SMS gateway.
package notifier

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/jmkang/pepper-shop/internal/circuitbreaker"
	"github.com/jmkang/pepper-shop/internal/events"
	"github.com/jmkang/pepper-shop/internal/sms"
)

type SMSGateway interface {
	Send(ctx context.Context, to, body string) (*sms.SendResult, error)
}

var errMissingFields = errors.New("notification missing phone number or message")

type Dispatcher struct {
	gateway SMSGateway
	breaker *circuitbreaker.CircuitBreaker
	logger  *logrus.Logger
}

func NewDispatcher(gateway SMSGateway, breaker *circuitbreaker.CircuitBreaker, logger *logrus.Logger) *Dispatcher {
	return &Dispatcher{
		gateway: gateway,
		breaker: breaker,
		logger:  logger,
	}
}

// HandleNotificationRequested implements events.RetryableNotificationHandler.
func (d *Dispatcher) HandleNotificationRequested(event events.NotificationRequested) error {
	if event.PhoneNumber == "" || event.Message == "" {
		return fmt.Errorf("%w: order %s", errMissingFields, event.OrderNumber)
	}

	to := sms.NormalizePhoneNumber(event.PhoneNumber)

	var result *sms.SendResult
	err := d.breaker.Execute(func() error {
		var sendErr error
		result, sendErr = d.gateway.Send(context.Background(), to, event.Message)
		return sendErr
	})
	if err != nil {
		return err
	}

	d.logger.WithFields(logrus.Fields{
		"order_number": event.OrderNumber,
		"message_id":   result.MessageID,
		"status":       result.Status,
	}).Info("Confirmation SMS delivered")

	return nil
}

// IsRetryable implements events.RetryableNotificationHandler. Gateway
// rejections that can never succeed skip the retry loop and go
// straight to the DLQ.
func (d *Dispatcher) IsRetryable(err error) bool {
	if errors.Is(err, errMissingFields) {
		return false
	}

	var gwErr *sms.GatewayError
	if errors.As(err, &gwErr) {
		return !gwErr.Permanent()
	}

	// Open breaker, timeouts, connection failures: all transient.
	return true
}
