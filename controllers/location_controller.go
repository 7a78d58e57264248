package controllers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// SendLocationRequest represents a driver location report
type SendLocationRequest struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// SendLocation handles POST /api/send-location - records the driver's
// position. Coordinates are accepted as sent and only logged.
func SendLocation(c *gin.Context) {
	var req SendLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, "Invalid request data", err)
		return
	}

	log.Printf("Driver location: %v, %v", req.Latitude, req.Longitude)

	c.JSON(http.StatusOK, gin.H{"success": true})
}
