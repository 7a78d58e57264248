package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestOrderTableName(t *testing.T) {
	order := Order{}
	assert.Equal(t, "orders", order.TableName(), "Table name should be 'orders'")
}

func TestIsKnownStatus(t *testing.T) {
	tests := []struct {
		name   string
		status string
		want   bool
	}{
		{"preparing", "Preparing", true},
		{"ready", "Ready", true},
		{"out for delivery", "Out for Delivery", true},
		{"arrived", "Arrived", true},
		{"delivered", "Delivered", true},
		{"cancelled", "Cancelled", true},
		{"lowercase is not recognised", "delivered", false},
		{"unknown status", "Lost", false},
		{"empty status", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsKnownStatus(tt.status))
		})
	}
}

func TestEventTag(t *testing.T) {
	tests := []struct {
		status string
		want   string
	}{
		{"Delivered", "delivered"},
		{"Out for Delivery", "out_for_delivery"},
		{"Preparing", "preparing"},
		{"Some  Custom Status", "some__custom_status"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			assert.Equal(t, tt.want, EventTag(tt.status))
		})
	}
}

func TestOrderJSONShape(t *testing.T) {
	total := 24.99
	createdAt := time.Date(2023, 9, 20, 12, 34, 56, 789000000, time.UTC)
	order := Order{
		ID:        1,
		Customer:  "John Doe",
		Status:    StatusPreparing,
		Location:  Location{Lat: 40.7128, Lng: -74.0060},
		Items:     []string{"Large Pizza"},
		Email:     "john.doe@example.com",
		Total:     &total,
		CreatedAt: createdAt,
	}

	body, err := json.Marshal(order)
	assert.NoError(t, err)

	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(body, &response))

	assert.Equal(t, float64(1), response["id"])
	assert.Equal(t, "John Doe", response["customer"])
	assert.Equal(t, "Preparing", response["status"])
	assert.Equal(t, map[string]interface{}{"lat": 40.7128, "lng": -74.006}, response["location"])
	assert.Equal(t, []interface{}{"Large Pizza"}, response["items"])
	assert.Equal(t, 24.99, response["total"])
	assert.Equal(t, "2023-09-20T12:34:56.789Z", response["createdAt"])

	// Empty optional fields are omitted
	assert.NotContains(t, response, "address")
	assert.NotContains(t, response, "phone")
}

func TestOrderJSONOmitsMissingTotal(t *testing.T) {
	body, err := json.Marshal(Order{ID: 2, Customer: "Jane Smith", Status: StatusReady})
	assert.NoError(t, err)

	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(body, &response))
	assert.NotContains(t, response, "total")
	assert.NotContains(t, response, "items")
}
