package ingredient

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"recipe-pantry/internal/api/handlers/respond"
	"recipe-pantry/internal/api/middleware"
	"recipe-pantry/internal/core/model"
	"recipe-pantry/internal/pkg/common"
)

// CreateRequest 新增食材請求
type CreateRequest struct {
	Name         string     `json:"name" binding:"required"`
	Quantity     float64    `json:"quantity"`
	QuantityType string     `json:"quantityType" binding:"required"`
	Expiration   *time.Time `json:"expiration,omitempty"`
	Notes        string     `json:"notes,omitempty"`
}

// UpdateRequest 更新食材請求（整列覆寫）
type UpdateRequest struct {
	Name         string     `json:"name" binding:"required"`
	Quantity     float64    `json:"quantity"`
	QuantityType string     `json:"quantityType" binding:"required"`
	Expiration   *time.Time `json:"expiration,omitempty"`
	Notes        string     `json:"notes,omitempty"`
}

// Handler 食材庫存處理程序
// 所有操作以目前使用者為範圍，拿不到別人的列
type Handler struct {
	db    *gorm.DB
	debug bool
}

// NewHandler 創建食材庫存處理程序
func NewHandler(db *gorm.DB, debug bool) *Handler {
	return &Handler{db: db, debug: debug}
}

// HandleList 列出目前使用者的全部食材
func (h *Handler) HandleList(c *gin.Context) {
	userID := middleware.CurrentUserID(c)

	var ingredients []model.Ingredient
	if err := h.db.WithContext(c.Request.Context()).
		Where("user_id = ?", userID).
		Order("name").
		Find(&ingredients).Error; err != nil {
		common.LogError("食材列表查詢失敗", zap.Error(err), zap.String("user_id", userID))
		respond.Error(c, err, h.debug)
		return
	}

	c.JSON(http.StatusOK, ingredients)
}

// HandleCreate 新增食材
func (h *Handler) HandleCreate(c *gin.Context) {
	userID := middleware.CurrentUserID(c)

	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BadRequest(c, "食材欄位無效")
		return
	}
	if req.Quantity < 0 {
		respond.BadRequest(c, "數量不可為負")
		return
	}
	unit, err := model.ParseUnit(req.QuantityType)
	if err != nil {
		respond.BadRequest(c, err.Error())
		return
	}

	ing := &model.Ingredient{
		Name:         req.Name,
		Quantity:     req.Quantity,
		QuantityType: unit,
		Expiration:   req.Expiration,
		Notes:        req.Notes,
		UserID:       uuid.MustParse(userID),
	}
	if err := h.db.WithContext(c.Request.Context()).Create(ing).Error; err != nil {
		// 同名食材撞 (user_id, name) 唯一索引
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			respond.Error(c, common.ErrConflict.WithCause(err), h.debug)
			return
		}
		common.LogError("食材建立失敗", zap.Error(err), zap.String("user_id", userID))
		respond.Error(c, err, h.debug)
		return
	}

	c.JSON(http.StatusCreated, ing)
}

// HandleGet 取得單筆食材
func (h *Handler) HandleGet(c *gin.Context) {
	ing, ok := h.findOwned(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, ing)
}

// HandleUpdate 更新食材
func (h *Handler) HandleUpdate(c *gin.Context) {
	ing, ok := h.findOwned(c)
	if !ok {
		return
	}

	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BadRequest(c, "食材欄位無效")
		return
	}
	if req.Quantity < 0 {
		respond.BadRequest(c, "數量不可為負")
		return
	}
	unit, err := model.ParseUnit(req.QuantityType)
	if err != nil {
		respond.BadRequest(c, err.Error())
		return
	}

	ing.Name = req.Name
	ing.Quantity = req.Quantity
	ing.QuantityType = unit
	ing.Expiration = req.Expiration
	ing.Notes = req.Notes

	if err := h.db.WithContext(c.Request.Context()).Save(ing).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			respond.Error(c, common.ErrConflict.WithCause(err), h.debug)
			return
		}
		common.LogError("食材更新失敗", zap.Error(err), zap.String("ingredient_id", ing.ID.String()))
		respond.Error(c, err, h.debug)
		return
	}

	c.JSON(http.StatusOK, ing)
}

// HandleDelete 刪除食材
func (h *Handler) HandleDelete(c *gin.Context) {
	ing, ok := h.findOwned(c)
	if !ok {
		return
	}

	if err := h.db.WithContext(c.Request.Context()).Delete(ing).Error; err != nil {
		common.LogError("食材刪除失敗", zap.Error(err), zap.String("ingredient_id", ing.ID.String()))
		respond.Error(c, err, h.debug)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "ingredient deleted"})
}

// findOwned 以路徑參數取出目前使用者的食材列
// 不存在與不屬於本人一律回 404，不洩漏別人的資料是否存在
func (h *Handler) findOwned(c *gin.Context) (*model.Ingredient, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respond.BadRequest(c, "無效的食材 ID")
		return nil, false
	}
	userID := middleware.CurrentUserID(c)

	var ing model.Ingredient
	err = h.db.WithContext(c.Request.Context()).
		Where("id = ? AND user_id = ?", id, userID).
		First(&ing).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respond.NotFound(c, "食材不存在")
			return nil, false
		}
		respond.Error(c, err, h.debug)
		return nil, false
	}
	return &ing, true
}
