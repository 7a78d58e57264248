package controllers

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kendall-kelly/driver-dashboard-api/models"
	"github.com/kendall-kelly/driver-dashboard-api/utils"
)

// TriggerWebhookRequest represents the request body for a manual customer notification.
// orderId is kept raw so an unusable value never rejects the request.
type TriggerWebhookRequest struct {
	OrderID       json.RawMessage `json:"orderId"`
	Event         string          `json:"event"`
	CustomerEmail string          `json:"customerEmail"`
}

// TriggerWebhook handles POST /api/trigger-webhook - passes an event
// straight to the notification dispatcher. The order is not looked up and
// only a body that is not JSON at all is rejected; an orderId that is missing
// or not a positive integer is forwarded as 0.
func TriggerWebhook(c *gin.Context) {
	var req TriggerWebhookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, "Invalid request data", err)
		return
	}

	orderID, err := utils.OrderIDFromJSON(req.OrderID)
	if err != nil {
		log.Printf("warning: webhook triggered with unusable order id %s: %v", string(req.OrderID), err)
	}

	dispatch(models.Notification{
		OrderID:       orderID,
		Event:         req.Event,
		CustomerEmail: req.CustomerEmail,
		Timestamp:     time.Now().UTC(),
	})

	c.JSON(http.StatusOK, gin.H{"success": true})
}
