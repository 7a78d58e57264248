package models

import (
	"strings"
	"time"
)

// Order statuses offered to drivers by the status update form.
// The store accepts any string; these are the recognised values.
const (
	StatusPreparing      = "Preparing"
	StatusReady          = "Ready"
	StatusOutForDelivery = "Out for Delivery"
	StatusArrived        = "Arrived"
	StatusDelivered      = "Delivered"
	StatusCancelled      = "Cancelled"
)

// KnownStatuses lists the recognised statuses in the order the dashboard offers them.
var KnownStatuses = []string{
	StatusPreparing,
	StatusReady,
	StatusOutForDelivery,
	StatusArrived,
	StatusDelivered,
	StatusCancelled,
}

// Location is a geographic coordinate in degrees
type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Order represents a delivery order assigned to a driver
type Order struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Customer  string    `gorm:"not null" json:"customer"`
	Status    string    `gorm:"not null" json:"status"` // Preparing, Ready, Out for Delivery, Arrived, Delivered, Cancelled
	Location  Location  `gorm:"embedded;embeddedPrefix:location_" json:"location"`
	Items     []string  `gorm:"serializer:json;type:text" json:"items,omitempty"`
	Address   string    `json:"address,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Email     string    `json:"email,omitempty"`
	Total     *float64  `json:"total,omitempty"` // nullable, not every order carries a total
	CreatedAt time.Time `gorm:"<-:create" json:"createdAt"`
}

// TableName specifies the table name for the Order model
func (Order) TableName() string {
	return "orders"
}

// IsKnownStatus reports whether status is one of KnownStatuses (exact match)
func IsKnownStatus(status string) bool {
	for _, s := range KnownStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// EventTag converts a status into the notification event tag,
// e.g. "Out for Delivery" becomes "out_for_delivery".
func EventTag(status string) string {
	return strings.ReplaceAll(strings.ToLower(status), " ", "_")
}
