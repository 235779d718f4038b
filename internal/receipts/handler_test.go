package receipts_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"bacash-backend/internal/receipts"
	"bacash-backend/internal/shared/config"
	"bacash-backend/internal/shared/server"
)

func newRouter(t *testing.T) (*gin.Engine, *receipts.MemoryRepo) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	repo := receipts.NewMemoryRepo()
	router := server.NewRouter(server.RouterDeps{
		Config:   config.Config{CORSAllowOrigins: []string{"*"}},
		Receipts: receipts.NewHandler(repo),
	})
	return router, repo
}

func TestListAndGetReceipts(t *testing.T) {
	router, repo := newRouter(t)

	ex := receipts.Extraction{
		ID:          "ex-1",
		Bucket:      "b",
		ObjectKey:   "receipt.jpg",
		Fields:      map[string]string{"TOTAL": "12.99"},
		ProcessedAt: time.Now().UTC(),
	}
	if err := repo.Upsert(context.Background(), ex); err != nil {
		t.Fatalf("seed repo: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/receipts", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	var list struct {
		Items []struct {
			ID        string            `json:"id"`
			ObjectKey string            `json:"objectKey"`
			Fields    map[string]string `json:"fields"`
		} `json:"items"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(list.Items) != 1 || list.Items[0].Fields["TOTAL"] != "12.99" {
		t.Fatalf("unexpected list: %+v", list.Items)
	}

	reqGet := httptest.NewRequest(http.MethodGet, "/api/v1/receipts/ex-1", nil)
	respGet := httptest.NewRecorder()
	router.ServeHTTP(respGet, reqGet)

	if respGet.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", respGet.Code)
	}

	reqMissing := httptest.NewRequest(http.MethodGet, "/api/v1/receipts/nope", nil)
	respMissing := httptest.NewRecorder()
	router.ServeHTTP(respMissing, reqMissing)

	if respMissing.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", respMissing.Code)
	}
}
