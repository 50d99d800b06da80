package suggestion

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"recipe-pantry/internal/api/handlers/respond"
	"recipe-pantry/internal/api/middleware"
	"recipe-pantry/internal/core/ai/groq"
	recipeService "recipe-pantry/internal/core/recipe"
	suggestionService "recipe-pantry/internal/core/suggestion"
	"recipe-pantry/internal/pkg/common"
)

// SuggestRequest 推薦請求
// 食材清單來自使用者的庫存，這裡只收數量提示
type SuggestRequest struct {
	Limit int `json:"limit,omitempty"`
}

// SuggestResponse 推薦回應
type SuggestResponse struct {
	Suggestions []suggestionService.Suggestion `json:"suggestions"`
}

// Handler 推薦處理程序
type Handler struct {
	db          *gorm.DB
	suggestions *suggestionService.Service
	recipes     *recipeService.Service
	debug       bool
}

// NewHandler 創建推薦處理程序
func NewHandler(db *gorm.DB, suggestions *suggestionService.Service, recipes *recipeService.Service, debug bool) *Handler {
	return &Handler{
		db:          db,
		suggestions: suggestions,
		recipes:     recipes,
		debug:       debug,
	}
}

// HandleSuggest 依目前使用者的庫存取得食譜推薦
// 庫存食材名稱從資料庫載入，不信任客戶端提供的清單
func (h *Handler) HandleSuggest(c *gin.Context) {
	requestID := c.GetHeader("X-Request-ID")
	userID := middleware.CurrentUserID(c)

	var req SuggestRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respond.BadRequest(c, "無效的請求格式")
			return
		}
	}

	names, err := h.loadIngredientNames(c.Request.Context(), userID)
	if err != nil {
		common.LogError("庫存載入失敗", zap.Error(err), zap.String("user_id", userID))
		respond.Error(c, err, h.debug)
		return
	}

	common.LogInfo("開始處理食譜推薦請求",
		zap.String("request_id", requestID),
		zap.String("user_id", userID),
		zap.Int("ingredient_count", len(names)),
	)

	ctx := context.WithValue(c.Request.Context(), groq.RequestIDKey, requestID)
	suggestions, err := h.suggestions.Request(ctx, names, req.Limit)
	if err != nil {
		respond.Error(c, err, h.debug)
		return
	}

	common.LogInfo("食譜推薦成功",
		zap.String("request_id", requestID),
		zap.Int("suggestion_count", len(suggestions)),
	)
	c.JSON(http.StatusOK, SuggestResponse{Suggestions: suggestions})
}

// HandleAccept 接受一筆推薦並以單一交易落地
// 先整筆重新驗證：欄位缺失屬輸入錯誤，不碰資料庫
func (h *Handler) HandleAccept(c *gin.Context) {
	userID := middleware.CurrentUserID(c)

	var sug suggestionService.Suggestion
	if err := c.ShouldBindJSON(&sug); err != nil {
		respond.BadRequest(c, "無效的推薦格式")
		return
	}

	if err := suggestionService.ValidateAccepted(&sug); err != nil {
		respond.Error(c, err, h.debug)
		return
	}

	rec, err := h.recipes.Accept(c.Request.Context(), &sug, uuid.MustParse(userID))
	if err != nil {
		respond.Error(c, err, h.debug)
		return
	}

	common.LogInfo("推薦已落地",
		zap.String("recipe_id", rec.ID.String()),
		zap.String("user_id", userID),
	)
	c.JSON(http.StatusCreated, rec)
}

// loadIngredientNames 載入目前使用者的庫存食材名稱
func (h *Handler) loadIngredientNames(ctx context.Context, userID string) ([]string, error) {
	var names []string
	err := h.db.WithContext(ctx).
		Table("ingredients").
		Where("user_id = ?", userID).
		Order("name").
		Pluck("name", &names).Error
	if err != nil {
		return nil, err
	}
	return names, nil
}
