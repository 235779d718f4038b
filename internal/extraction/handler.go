package extraction

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bacash-backend/internal/shared/server/respond"
	"bacash-backend/internal/shared/telemetry"
)

// Handler exposes the processor over HTTP. Production traffic arrives
// through the queue worker; this entry point serves local development with
// the memory backends and keeps the contract testable end to end.
type Handler struct {
	processor *Processor
}

// NewHandler constructs an extraction event handler.
func NewHandler(processor *Processor) *Handler {
	return &Handler{processor: processor}
}

// RegisterRoutes mounts the event endpoint on the given group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/receipts/events", h.handleEvent)
}

func (h *Handler) handleEvent(c *gin.Context) {
	var ev Event
	if err := c.ShouldBindJSON(&ev); err != nil {
		respond.Error(c, http.StatusBadRequest, "Invalid event payload", map[string]any{"error": err.Error()})
		return
	}
	if len(ev.Records) == 0 {
		respond.Error(c, http.StatusBadRequest, "Event contains no records", nil)
		return
	}
	if key, err := DecodeObjectKey(ev.Records[0].S3.Object.Key); err == nil {
		c.Set("objectKey", key)
	}

	telemetry.Info("extraction.event.received", map[string]any{
		"record_count": len(ev.Records),
	})

	fields, err := h.processor.ProcessEvent(c.Request.Context(), ev)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "Failed to process receipt", map[string]any{"error": err.Error()})
		return
	}

	respond.OK(c, gin.H{
		"message": "Receipt processed successfully by Textract",
		"data":    fields,
	})
}
