package health

import (
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"recipe-pantry/internal/core/suggestion"
	"recipe-pantry/internal/infrastructure/config"
	"recipe-pantry/internal/infrastructure/database"
	"recipe-pantry/internal/pkg/common"
)

// HealthResponse 健康檢查響應
type HealthResponse struct {
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Version   string                 `json:"version"`
	Runtime   map[string]interface{} `json:"runtime"`
}

// Handler 健康檢查處理程序
type Handler struct {
	cfg   *config.Config
	db    *gorm.DB
	cache *suggestion.Cache
}

// NewHandler 創建健康檢查處理程序
func NewHandler(cfg *config.Config, db *gorm.DB, cache *suggestion.Cache) *Handler {
	return &Handler{cfg: cfg, db: db, cache: cache}
}

// HealthCheck 健康檢查處理器
func (h *Handler) HealthCheck(c *gin.Context) {
	// 獲取運行時信息
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	response := HealthResponse{
		Status:    "ok",
		Timestamp: time.Now(),
		Version:   h.cfg.App.Version,
		Runtime: map[string]interface{}{
			"goroutines": runtime.NumGoroutine(),
			"memory": map[string]interface{}{
				"alloc":       m.Alloc,
				"total_alloc": m.TotalAlloc,
				"sys":         m.Sys,
				"num_gc":      m.NumGC,
			},
		},
	}

	common.LogInfo("Health check request",
		zap.String("client_ip", c.ClientIP()),
		zap.String("path", c.Request.URL.Path),
	)

	c.JSON(http.StatusOK, response)
}

// ReadinessCheck 就緒檢查處理器
// 確認 Postgres 與 Redis（啟用時）都可達
func (h *Handler) ReadinessCheck(c *gin.Context) {
	ctx := c.Request.Context()

	if err := database.Ping(ctx, h.db); err != nil {
		common.LogError("就緒檢查失敗：資料庫不可達", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "not ready",
			"reason": "database unreachable",
		})
		return
	}

	if h.cache != nil {
		if err := h.cache.Ping(ctx); err != nil {
			common.LogError("就緒檢查失敗：Redis 不可達", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "not ready",
				"reason": "cache unreachable",
			})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
	})
}

// LivenessCheck 存活檢查處理器
func (h *Handler) LivenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "alive",
	})
}
