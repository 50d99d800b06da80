package recipe

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"recipe-pantry/internal/api/handlers/respond"
	"recipe-pantry/internal/api/middleware"
	"recipe-pantry/internal/core/model"
	"recipe-pantry/internal/pkg/common"
)

// CreateRequest 新增食譜請求
type CreateRequest struct {
	Title        string `json:"title" binding:"required"`
	Time         *int   `json:"time,omitempty"`
	Instructions string `json:"instructions"`
	ImageURL     string `json:"imageUrl,omitempty"`
	Notes        string `json:"notes,omitempty"`
}

// UpdateRequest 更新食譜請求（整列覆寫）
type UpdateRequest struct {
	Title        string `json:"title" binding:"required"`
	Time         *int   `json:"time,omitempty"`
	Instructions string `json:"instructions"`
	ImageURL     string `json:"imageUrl,omitempty"`
	Notes        string `json:"notes,omitempty"`
}

// Handler 食譜處理程序
// 所有操作以建立者為範圍
type Handler struct {
	db    *gorm.DB
	debug bool
}

// NewHandler 創建食譜處理程序
func NewHandler(db *gorm.DB, debug bool) *Handler {
	return &Handler{db: db, debug: debug}
}

// HandleList 列出目前使用者的全部食譜（含關聯食材）
func (h *Handler) HandleList(c *gin.Context) {
	userID := middleware.CurrentUserID(c)

	var recipes []model.Recipe
	if err := h.db.WithContext(c.Request.Context()).
		Preload("Ingredients.Ingredient").
		Where("created_by_id = ?", userID).
		Order("created_at DESC").
		Find(&recipes).Error; err != nil {
		common.LogError("食譜列表查詢失敗", zap.Error(err), zap.String("user_id", userID))
		respond.Error(c, err, h.debug)
		return
	}

	c.JSON(http.StatusOK, recipes)
}

// HandleCreate 新增食譜
func (h *Handler) HandleCreate(c *gin.Context) {
	userID := middleware.CurrentUserID(c)

	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BadRequest(c, "食譜欄位無效")
		return
	}
	if req.Time != nil && *req.Time <= 0 {
		respond.BadRequest(c, "時長必須為正數")
		return
	}

	rec := &model.Recipe{
		Title:        req.Title,
		Time:         req.Time,
		Instructions: req.Instructions,
		ImageURL:     req.ImageURL,
		Notes:        req.Notes,
		CreatedByID:  uuid.MustParse(userID),
	}
	if err := h.db.WithContext(c.Request.Context()).Create(rec).Error; err != nil {
		common.LogError("食譜建立失敗", zap.Error(err), zap.String("user_id", userID))
		respond.Error(c, err, h.debug)
		return
	}

	c.JSON(http.StatusCreated, rec)
}

// HandleGet 取得單筆食譜（含關聯食材）
func (h *Handler) HandleGet(c *gin.Context) {
	rec, ok := h.findOwned(c, true)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, rec)
}

// HandleUpdate 更新食譜
func (h *Handler) HandleUpdate(c *gin.Context) {
	rec, ok := h.findOwned(c, false)
	if !ok {
		return
	}

	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BadRequest(c, "食譜欄位無效")
		return
	}
	if req.Time != nil && *req.Time <= 0 {
		respond.BadRequest(c, "時長必須為正數")
		return
	}

	rec.Title = req.Title
	rec.Time = req.Time
	rec.Instructions = req.Instructions
	rec.ImageURL = req.ImageURL
	rec.Notes = req.Notes

	if err := h.db.WithContext(c.Request.Context()).Save(rec).Error; err != nil {
		common.LogError("食譜更新失敗", zap.Error(err), zap.String("recipe_id", rec.ID.String()))
		respond.Error(c, err, h.debug)
		return
	}

	c.JSON(http.StatusOK, rec)
}

// HandleDelete 刪除食譜（關聯列一併清除）
func (h *Handler) HandleDelete(c *gin.Context) {
	rec, ok := h.findOwned(c, false)
	if !ok {
		return
	}

	err := h.db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", rec.ID).
			Delete(&model.RecipeIngredient{}).Error; err != nil {
			return err
		}
		return tx.Delete(rec).Error
	})
	if err != nil {
		common.LogError("食譜刪除失敗", zap.Error(err), zap.String("recipe_id", rec.ID.String()))
		respond.Error(c, err, h.debug)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "recipe deleted"})
}

// findOwned 以路徑參數取出目前使用者的食譜列
// 不存在與不屬於本人一律回 404
func (h *Handler) findOwned(c *gin.Context, preload bool) (*model.Recipe, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respond.BadRequest(c, "無效的食譜 ID")
		return nil, false
	}
	userID := middleware.CurrentUserID(c)

	query := h.db.WithContext(c.Request.Context())
	if preload {
		query = query.Preload("Ingredients.Ingredient")
	}

	var rec model.Recipe
	err = query.Where("id = ? AND created_by_id = ?", id, userID).First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respond.NotFound(c, "食譜不存在")
			return nil, false
		}
		respond.Error(c, err, h.debug)
		return nil, false
	}
	return &rec, true
}
