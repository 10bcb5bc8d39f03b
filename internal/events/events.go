// Package events carries order-confirmation notifications from the
// storefront to the notifier worker over Kafka. The order write and
// the SMS delivery are deliberately decoupled: a lost or failing
// notification never rolls back an order.
package events

import (
	"time"
)

const (
	NotificationRequestedTopic = "notification.requested"
	NotificationDLQTopic       = "notification.requested.dlq"
)

type NotificationRequested struct {
	EventID     string    `json:"event_id"`
	OrderNumber string    `json:"order_number"`
	PhoneNumber string    `json:"phone_number"`
	Message     string    `json:"message"`
	RequestedAt time.Time `json:"requested_at"`
	EventTime   time.Time `json:"event_time"`
}
