package controllers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTriggerWebhook(t *testing.T) {
	tests := []struct {
		name           string
		requestBody    interface{}
		expectedStatus int
		expectedError  string
		expectedOrder  uint
		expectedEvent  string
		expectedEmail  string
	}{
		{
			name:           "Successfully trigger arrival notification",
			requestBody:    map[string]interface{}{"orderId": 1, "event": "arrived", "customerEmail": "john.doe@example.com"},
			expectedStatus: http.StatusOK,
			expectedOrder:  1,
			expectedEvent:  "arrived",
			expectedEmail:  "john.doe@example.com",
		},
		{
			name:           "Order is not looked up",
			requestBody:    map[string]interface{}{"orderId": 999, "event": "delivered"},
			expectedStatus: http.StatusOK,
			expectedOrder:  999,
			expectedEvent:  "delivered",
		},
		{
			name:           "Event is passed through unchanged",
			requestBody:    map[string]interface{}{"orderId": "2", "event": "Left At Door"},
			expectedStatus: http.StatusOK,
			expectedOrder:  2,
			expectedEvent:  "Left At Door",
		},
		{
			name:           "Missing order id is passed through",
			requestBody:    map[string]interface{}{"event": "arrived"},
			expectedStatus: http.StatusOK,
			expectedOrder:  0,
			expectedEvent:  "arrived",
		},
		{
			name:           "Non numeric order id is passed through",
			requestBody:    map[string]interface{}{"orderId": "first", "event": "arrived"},
			expectedStatus: http.StatusOK,
			expectedOrder:  0,
			expectedEvent:  "arrived",
		},
		{
			name:           "Fail with malformed JSON",
			requestBody:    `{"orderId": 1, "event":`,
			expectedStatus: http.StatusBadRequest,
			expectedError:  "VALIDATION_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, notifier := setupOrderTest(t)

			router := setupTestRouter()
			router.POST("/api/trigger-webhook", TriggerWebhook)

			w, response := performJSON(t, router, http.MethodPost, "/api/trigger-webhook", tt.requestBody)

			assert.Equal(t, tt.expectedStatus, w.Code)

			if tt.expectedError != "" {
				assert.False(t, response["success"].(bool))
				errorData := response["error"].(map[string]interface{})
				assert.Equal(t, tt.expectedError, errorData["code"])
				assert.Empty(t, notifier.GetNotifications())
				return
			}

			assert.Equal(t, map[string]interface{}{"success": true}, response)

			notifications := notifier.GetNotifications()
			require.Len(t, notifications, 1)
			assert.Equal(t, tt.expectedOrder, notifications[0].OrderID)
			assert.Equal(t, tt.expectedEvent, notifications[0].Event)
			assert.Equal(t, tt.expectedEmail, notifications[0].CustomerEmail)
		})
	}
}
