package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

const accessTokenKey = "access_token"

// CaptureBearerToken records the bearer token sent by the dashboard, if any.
// Tokens are session placeholders and are not validated; requests without
// one are served the same way.
func CaptureBearerToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if token, ok := strings.CutPrefix(authHeader, "Bearer "); ok {
			if token = strings.TrimSpace(token); token != "" {
				c.Set(accessTokenKey, token)
			}
		}
		c.Next()
	}
}

// GetAccessToken extracts the bearer token captured for this request
func GetAccessToken(c *gin.Context) (string, error) {
	token, exists := c.Get(accessTokenKey)
	if !exists {
		return "", &AuthError{Code: "MISSING_TOKEN", Message: "Access token not found in context"}
	}

	tokenStr, ok := token.(string)
	if !ok {
		return "", &AuthError{Code: "INVALID_TOKEN", Message: "Access token is not a string"}
	}

	return tokenStr, nil
}

// HasSession reports whether the request carried a session token
func HasSession(c *gin.Context) bool {
	_, err := GetAccessToken(c)
	return err == nil
}

// AuthError represents an authentication error
type AuthError struct {
	Code    string
	Message string
}

func (e *AuthError) Error() string {
	return e.Message
}
