package controllers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kendall-kelly/driver-dashboard-api/services"
)

// LoginRequest represents the request body for staff login
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login handles POST /api/login - checks staff credentials
// The response never says which of username or password was wrong.
func Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, "Invalid request data", err)
		return
	}

	ok, err := services.GetStaffStore().Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		log.Printf("Login lookup failed: %v", err)
		respondDatabaseError(c, "Failed to check credentials")
		return
	}

	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
