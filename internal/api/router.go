package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	authHandler "recipe-pantry/internal/api/handlers/auth"
	"recipe-pantry/internal/api/handlers/health"
	ingredientHandler "recipe-pantry/internal/api/handlers/ingredient"
	recipeHandler "recipe-pantry/internal/api/handlers/recipe"
	suggestionHandler "recipe-pantry/internal/api/handlers/suggestion"
	"recipe-pantry/internal/api/middleware"
	"recipe-pantry/internal/core/ai/groq"
	coreauth "recipe-pantry/internal/core/auth"
	recipeService "recipe-pantry/internal/core/recipe"
	suggestionService "recipe-pantry/internal/core/suggestion"
	"recipe-pantry/internal/infrastructure/config"
	"recipe-pantry/internal/pkg/common"
)

const (
	// 超時設置（涵蓋最慢的 Groq 呼叫）
	timeoutDuration = 120 * time.Second
	// 請求體大小限制 (1MB)，本服務不收圖片
	maxBodySize = 1 << 20
)

// SetupRouter 設置路由
func SetupRouter(cfg *config.Config, db *gorm.DB, cache *suggestionService.Cache) (*gin.Engine, error) {
	common.LogInfo("Starting router setup",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
	)

	// 設置 gin 模式
	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	// 創建路由引擎
	router := gin.New()

	// 註冊基礎中間件
	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())
	router.Use(requestid.New()) // 自動生成請求 ID

	// CORS 設置
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// 請求體大小限制
	router.Use(middleware.BodySizeLimit(maxBodySize))

	// 全局限流
	if cfg.RateLimit.Enabled {
		router.Use(middleware.RateLimit(cfg.RateLimit.Requests, cfg.RateLimit.Window))
	}

	// 全局中間件：設置請求超時
	router.Use(func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeoutDuration)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)

		c.Next()

		if ctx.Err() == context.DeadlineExceeded {
			common.LogError("Request timeout",
				zap.String("path", c.Request.URL.Path),
				zap.String("request_id", c.GetHeader("X-Request-ID")),
				zap.Duration("timeout", timeoutDuration),
			)
			c.JSON(http.StatusGatewayTimeout, gin.H{
				"error": "Request timeout",
				"code":  common.ErrCodeRequestTimeout,
			})
			c.Abort()
		}
	})

	common.LogInfo("Initializing services",
		zap.Bool("cache_enabled", cfg.Cache.Enabled),
		zap.String("model", cfg.Groq.Model),
		zap.Duration("timeout", timeoutDuration),
	)

	// 初始化服務
	groqClient := groq.NewClient(cfg)
	suggestionSvc := suggestionService.NewService(groqClient, cache)
	recipeSvc := recipeService.NewService(db)
	tokenSvc := coreauth.NewTokenService(&cfg.Auth)

	// 健康檢查路由
	healthHandlerInstance := health.NewHandler(cfg, db, cache)
	router.GET("/health", healthHandlerInstance.HealthCheck)
	router.GET("/ready", healthHandlerInstance.ReadinessCheck)
	router.GET("/live", healthHandlerInstance.LivenessCheck)

	// API 路由組
	api := router.Group("/api/v1")
	{
		// 認證路由（免令牌）
		authHandlerInstance := authHandler.NewHandler(db, tokenSvc, cfg)
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", authHandlerInstance.HandleRegister)
			authGroup.POST("/login", authHandlerInstance.HandleLogin)
			authGroup.POST("/refresh", authHandlerInstance.HandleRefresh)
			authGroup.POST("/logout", authHandlerInstance.HandleLogout)
		}

		// 以下路由都需要通過認證
		authed := api.Group("")
		authed.Use(middleware.Auth(tokenSvc))

		// 食材庫存路由
		ingredientHandlerInstance := ingredientHandler.NewHandler(db, cfg.App.Debug)
		ingredientGroup := authed.Group("/ingredients")
		{
			ingredientGroup.GET("", ingredientHandlerInstance.HandleList)
			ingredientGroup.POST("", ingredientHandlerInstance.HandleCreate)
			ingredientGroup.GET("/:id", ingredientHandlerInstance.HandleGet)
			ingredientGroup.PUT("/:id", ingredientHandlerInstance.HandleUpdate)
			ingredientGroup.DELETE("/:id", ingredientHandlerInstance.HandleDelete)
		}

		// 食譜路由
		recipeHandlerInstance := recipeHandler.NewHandler(db, cfg.App.Debug)
		recipeGroup := authed.Group("/recipes")
		{
			recipeGroup.GET("", recipeHandlerInstance.HandleList)
			recipeGroup.POST("", recipeHandlerInstance.HandleCreate)
			recipeGroup.GET("/:id", recipeHandlerInstance.HandleGet)
			recipeGroup.PUT("/:id", recipeHandlerInstance.HandleUpdate)
			recipeGroup.DELETE("/:id", recipeHandlerInstance.HandleDelete)
		}

		// 食譜食材關聯路由
		joinGroup := authed.Group("/recipe-ingredients")
		{
			joinGroup.POST("", recipeHandlerInstance.HandleJoinCreate)
			joinGroup.GET("/:recipeId", recipeHandlerInstance.HandleJoinList)
			joinGroup.PUT("/:recipeId/:ingredientId", recipeHandlerInstance.HandleJoinUpdate)
			joinGroup.DELETE("/:recipeId/:ingredientId", recipeHandlerInstance.HandleJoinDelete)
		}

		// 推薦路由（去重只掛在會打 Groq 的端點）
		suggestionHandlerInstance := suggestionHandler.NewHandler(db, suggestionSvc, recipeSvc, cfg.App.Debug)
		suggestionGroup := authed.Group("/suggestions")
		{
			suggestionGroup.POST("", middleware.Deduplication(cfg), suggestionHandlerInstance.HandleSuggest)
			suggestionGroup.POST("/accept", suggestionHandlerInstance.HandleAccept)
		}
	}

	common.LogInfo("Router setup completed successfully",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
		zap.Duration("timeout", timeoutDuration),
		zap.Int64("max_body_size", maxBodySize),
	)

	return router, nil
}
