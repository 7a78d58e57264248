package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// respondValidationError writes the standard 400 envelope for a bad request body
func respondValidationError(c *gin.Context, message string, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"success": false,
		"error": gin.H{
			"code":    "VALIDATION_ERROR",
			"message": message,
			"details": err.Error(),
		},
	})
}

// respondDatabaseError writes the standard 500 envelope for a store failure
func respondDatabaseError(c *gin.Context, message string) {
	c.JSON(http.StatusInternalServerError, gin.H{
		"success": false,
		"error": gin.H{
			"code":    "DATABASE_ERROR",
			"message": message,
		},
	})
}
