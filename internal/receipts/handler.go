package receipts

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"bacash-backend/internal/shared/server/respond"
)

// Handler serves stored extractions back to the frontend.
type Handler struct {
	repo Repo
}

// NewHandler constructs a receipts handler.
func NewHandler(repo Repo) *Handler {
	return &Handler{repo: repo}
}

type extractionDTO struct {
	ID          string            `json:"id"`
	ObjectKey   string            `json:"objectKey"`
	Fields      map[string]string `json:"fields"`
	ProcessedAt time.Time         `json:"processedAt"`
}

// RegisterRoutes mounts the receipts read endpoints on the given group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/receipts", h.list)
	rg.GET("/receipts/:id", h.get)
}

func (h *Handler) list(c *gin.Context) {
	limit := queryInt(c, "limit", 20)
	offset := queryInt(c, "offset", 0)

	items, err := h.repo.List(c.Request.Context(), limit, offset)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "Internal server error", map[string]any{"error": err.Error()})
		return
	}

	out := make([]extractionDTO, 0, len(items))
	for _, ex := range items {
		out = append(out, toDTO(ex))
	}
	respond.OK(c, gin.H{"items": out})
}

func (h *Handler) get(c *gin.Context) {
	ex, err := h.repo.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "Receipt not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "Internal server error", map[string]any{"error": err.Error()})
		return
	}
	respond.OK(c, toDTO(ex))
}

func toDTO(ex Extraction) extractionDTO {
	return extractionDTO{
		ID:          ex.ID,
		ObjectKey:   ex.ObjectKey,
		Fields:      ex.Fields,
		ProcessedAt: ex.ProcessedAt,
	}
}

func queryInt(c *gin.Context, key string, def int) int {
	raw := c.Query(key)
	if raw == "" {
		return def
	}
	val, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return val
}
