package response

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/meet-community/meet-backend/pkg/apperror"
)

// Username retrieves the authenticated username (token subject) from the
// context, set by the auth middleware.
func Username(c *gin.Context) (string, error) {
	username, exists := c.Get("username")
	if !exists {
		return "", apperror.ErrUnauthorized
	}

	name, ok := username.(string)
	if !ok || name == "" {
		return "", apperror.ErrUnauthorized
	}

	return name, nil
}

// Error writes a standardized error response.
func Error(c *gin.Context, err error) {
	code := apperror.MapErrorToStatus(err)

	if code == http.StatusInternalServerError {
		log.Printf("[Internal Error]: %v", err)
	}

	c.JSON(code, gin.H{"error": err.Error()})
}

// Message writes a plain confirmation body.
func Message(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"message": message})
}
