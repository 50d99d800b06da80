package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"recipe-pantry/internal/infrastructure/config"
)

func dedupRouter(cfg *config.Config, userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/suggestions",
		func(c *gin.Context) { c.Set(UserIDKey, userID) },
		Deduplication(cfg),
		func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) },
	)
	return router
}

func postJSON(router *gin.Engine, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/suggestions", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func TestDeduplicationRejectsRepeat(t *testing.T) {
	cfg := &config.Config{DedupWindow: time.Minute}
	router := dedupRouter(cfg, "user-repeat")

	if w := postJSON(router, `{"limit":3}`); w.Code != http.StatusOK {
		t.Fatalf("first request should pass, got %d", w.Code)
	}
	if w := postJSON(router, `{"limit":3}`); w.Code != http.StatusTooManyRequests {
		t.Fatalf("duplicate within window should get 429, got %d", w.Code)
	}
	// 不同請求體不是重複
	if w := postJSON(router, `{"limit":5}`); w.Code != http.StatusOK {
		t.Fatalf("different body should pass, got %d", w.Code)
	}
}

func TestDeduplicationScopedPerUser(t *testing.T) {
	cfg := &config.Config{DedupWindow: time.Minute}
	routerA := dedupRouter(cfg, "user-a")
	routerB := dedupRouter(cfg, "user-b")

	if w := postJSON(routerA, `{"limit":7}`); w.Code != http.StatusOK {
		t.Fatalf("first request should pass, got %d", w.Code)
	}
	// 另一個使用者的相同請求體不受影響
	if w := postJSON(routerB, `{"limit":7}`); w.Code != http.StatusOK {
		t.Fatalf("other user's request should pass, got %d", w.Code)
	}
}
