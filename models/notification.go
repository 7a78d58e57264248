package models

import "time"

// Notification is an order lifecycle event sent to the customer channel.
// Its JSON form is also the webhook request body.
type Notification struct {
	OrderID       uint      `json:"orderId"`
	Event         string    `json:"event"`
	CustomerEmail string    `json:"customerEmail,omitempty"`
	Timestamp     time.Time `json:"timestamp"`
}
