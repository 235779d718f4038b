package uploads_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"bacash-backend/internal/shared/config"
	"bacash-backend/internal/shared/server"
	"bacash-backend/internal/uploads"
)

func newRouter(signer uploads.CredentialSigner) *gin.Engine {
	gin.SetMode(gin.TestMode)
	return server.NewRouter(server.RouterDeps{
		Config:  config.Config{CORSAllowOrigins: []string{"*"}},
		Uploads: uploads.NewHandler(signer),
	})
}

func TestIssueUploadURLNoBody(t *testing.T) {
	router := newRouter(uploads.NewMemorySigner("demo-bucket-bacash", "us-east-1"))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/uploads/url", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if got := resp.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("expected permissive CORS header, got %q", got)
	}

	var ticket struct {
		UploadURL string `json:"uploadUrl"`
		FileName  string `json:"fileName"`
		Message   string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&ticket); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if !regexp.MustCompile(`^receipt-\d+-[0-9a-f]{12}\.jpg$`).MatchString(ticket.FileName) {
		t.Fatalf("unexpected fileName %q", ticket.FileName)
	}
	if ticket.UploadURL == "" || !strings.Contains(ticket.UploadURL, ticket.FileName) {
		t.Fatalf("uploadUrl %q does not reference fileName %q", ticket.UploadURL, ticket.FileName)
	}
	if ticket.Message == "" {
		t.Fatalf("expected a confirmation message")
	}
}

func TestIssueUploadURLIssuesIndependentTickets(t *testing.T) {
	router := newRouter(uploads.NewMemorySigner("demo-bucket-bacash", "us-east-1"))

	seen := make(map[string]struct{})
	for i := 0; i < 25; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/uploads/url", nil)
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)

		if resp.Code != http.StatusOK {
			t.Fatalf("call %d: expected status 200, got %d", i, resp.Code)
		}
		var ticket struct {
			FileName string `json:"fileName"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&ticket); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if _, dup := seen[ticket.FileName]; dup {
			t.Fatalf("duplicate fileName issued: %s", ticket.FileName)
		}
		seen[ticket.FileName] = struct{}{}
	}
}

type failSigner struct{}

func (failSigner) SignPut(ctx context.Context, key, contentType string, expires time.Duration) (string, error) {
	return "", errors.New("signer misconfigured")
}

func TestIssueUploadURLSignerFailure(t *testing.T) {
	router := newRouter(failSigner{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/uploads/url", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", resp.Code)
	}

	var body struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Message != "Internal server error" {
		t.Fatalf("expected generic message, got %q", body.Message)
	}
	if strings.Contains(body.Message, "misconfigured") {
		t.Fatalf("signer internals leaked to caller: %q", body.Message)
	}
}
