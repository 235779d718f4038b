package uploads

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"bacash-backend/internal/shared/metrics"
	"bacash-backend/internal/shared/server/middleware"
	"bacash-backend/internal/shared/server/respond"
	"bacash-backend/internal/shared/telemetry"
)

const (
	presignExpires = 300 * time.Second

	// The frontend advertises PNG and PDF as acceptable too, but the
	// credential is pinned to JPEG. Known mismatch, kept as-is.
	uploadContentType = "image/jpeg"
)

// Handler issues upload credentials. It holds no state between requests;
// every call mints an independent ticket.
type Handler struct {
	signer CredentialSigner
}

// NewHandler constructs an upload credential handler.
func NewHandler(signer CredentialSigner) *Handler {
	return &Handler{signer: signer}
}

type uploadTicket struct {
	UploadURL string `json:"uploadUrl"`
	FileName  string `json:"fileName"`
	Message   string `json:"message"`
}

// RegisterRoutes mounts the uploads endpoints on the given group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/uploads/url", h.issueUploadURL)
}

func (h *Handler) issueUploadURL(c *gin.Context) {
	// The request body carries nothing the issuer needs; it is logged and
	// discarded.
	body, _ := io.ReadAll(io.LimitReader(c.Request.Body, 4096))
	telemetry.Info("uploads.issue_url.received", map[string]any{
		"request_id": middleware.RequestIDFromContext(c),
		"body_len":   len(body),
	})

	fileName := newObjectKey()
	c.Set("objectKey", fileName)

	uploadURL, err := h.signer.SignPut(c.Request.Context(), fileName, uploadContentType, presignExpires)
	if err != nil {
		metrics.IncUploadURLFailed()
		respond.Error(c, http.StatusInternalServerError, "Internal server error", map[string]any{
			"error":        err.Error(),
			"object_key":   fileName,
			"content_type": uploadContentType,
		})
		return
	}

	metrics.IncUploadURLIssued()
	respond.OK(c, uploadTicket{
		UploadURL: uploadURL,
		FileName:  fileName,
		Message:   "Pre-signed URL generated successfully for direct S3 upload",
	})
}

// newObjectKey generates a globally-distinguishable object key combining the
// wall clock with a random suffix wide enough that rapid bursts cannot
// collide.
func newObjectKey() string {
	return fmt.Sprintf("receipt-%d-%s.jpg", time.Now().UnixMilli(), randomSuffix())
}

func randomSuffix() string {
	var b [6]byte
	if _, err := rand.Read(b[:]); err != nil {
		return fmt.Sprintf("%012d", time.Now().UnixNano()%1e12)
	}
	return hex.EncodeToString(b[:])
}
