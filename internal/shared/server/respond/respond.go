package respond

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bacash-backend/internal/shared/telemetry"
)

// MessageBody is the minimal body carried by every failure response. Callers
// never see more than this; the full error context is logged server-side.
type MessageBody struct {
	Message string `json:"message"`
}

// JSON writes a JSON response with the given status.
func JSON(c *gin.Context, status int, payload interface{}) {
	c.JSON(status, payload)
}

// OK writes a 200 OK JSON response.
func OK(c *gin.Context, payload interface{}) {
	JSON(c, http.StatusOK, payload)
}

// Error logs the failure with full context and sends a sanitized message.
func Error(c *gin.Context, status int, message string, fields map[string]any) {
	entry := map[string]any{
		"status":     status,
		"message":    message,
		"path":       c.Request.URL.Path,
		"method":     c.Request.Method,
		"request_id": c.GetString("requestId"),
	}
	for k, v := range fields {
		entry[k] = v
	}
	telemetry.Error("http.error", entry)

	c.AbortWithStatusJSON(status, MessageBody{Message: message})
}
