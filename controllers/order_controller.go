package controllers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kendall-kelly/driver-dashboard-api/middleware"
	"github.com/kendall-kelly/driver-dashboard-api/models"
	"github.com/kendall-kelly/driver-dashboard-api/services"
	"github.com/kendall-kelly/driver-dashboard-api/utils"
)

// UpdateOrderRequest represents the request body for updating an order status.
// orderId may be sent as a JSON number or a numeric string. status must be
// present but may be any string, including "".
type UpdateOrderRequest struct {
	OrderID       json.Number `json:"orderId" binding:"required"`
	Status        *string     `json:"status" binding:"required"`
	CustomerEmail string      `json:"customerEmail"`
}

// ListOrders handles GET /api/orders - returns every order
func ListOrders(c *gin.Context) {
	orders, err := services.GetOrderStore().ListAll(c.Request.Context())
	if err != nil {
		log.Printf("Failed to list orders: %v", err)
		respondDatabaseError(c, "Failed to fetch orders")
		return
	}

	c.JSON(http.StatusOK, orders)
}

// GetOrder handles GET /api/orders/:id - returns a single order
func GetOrder(c *gin.Context) {
	notFound := gin.H{
		"success": false,
		"message": "Order not found",
	}

	// An id that is not a positive integer cannot match any order
	orderID, err := utils.ParseOrderID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, notFound)
		return
	}

	order, err := services.GetOrderStore().FindByID(c.Request.Context(), orderID)
	if err != nil {
		if errors.Is(err, services.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, notFound)
			return
		}
		log.Printf("Failed to fetch order %d: %v", orderID, err)
		respondDatabaseError(c, "Failed to fetch order")
		return
	}

	c.JSON(http.StatusOK, order)
}

// UpdateOrderStatus handles POST /api/update-order - changes an order's status
// and notifies the customer. The notification is dispatched without waiting
// for delivery, so the response never depends on it.
func UpdateOrderStatus(c *gin.Context) {
	var req UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, "Invalid request data", err)
		return
	}

	orderID, err := utils.ParseOrderID(req.OrderID.String())
	if err != nil {
		respondValidationError(c, "Invalid order ID", err)
		return
	}

	status := *req.Status
	if !models.IsKnownStatus(status) {
		log.Printf("warning: order %d set to unrecognised status %q", orderID, status)
	}

	order, err := services.GetOrderStore().UpdateStatus(c.Request.Context(), orderID, status)
	if err != nil {
		if errors.Is(err, services.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false})
			return
		}
		log.Printf("Failed to update order %d: %v", orderID, err)
		respondDatabaseError(c, "Failed to update order")
		return
	}

	recipient := req.CustomerEmail
	if recipient == "" {
		recipient = order.Email
	}

	log.Printf("Email would be sent to %s: Order #%d status updated to %s (session: %t)",
		recipient, orderID, status, middleware.HasSession(c))

	dispatch(models.Notification{
		OrderID:       orderID,
		Event:         models.EventTag(status),
		CustomerEmail: recipient,
		Timestamp:     time.Now().UTC(),
	})

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// dispatch hands a notification to the configured dispatcher, if any
func dispatch(n models.Notification) {
	if dispatcher := services.GetDispatcher(); dispatcher != nil {
		dispatcher.Dispatch(n)
		return
	}
	log.Printf("No dispatcher configured, dropping notification for order %d (%s)", n.OrderID, n.Event)
}
