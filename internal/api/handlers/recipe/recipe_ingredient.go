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

// JoinCreateRequest 建立食譜食材關聯請求
type JoinCreateRequest struct {
	RecipeID     string  `json:"recipeId" binding:"required"`
	IngredientID string  `json:"ingredientId" binding:"required"`
	Quantity     float64 `json:"quantity"`
	QuantityType string  `json:"quantityType" binding:"required"`
	Notes        string  `json:"notes,omitempty"`
}

// JoinUpdateRequest 更新關聯列的用量
type JoinUpdateRequest struct {
	Quantity     float64 `json:"quantity"`
	QuantityType string  `json:"quantityType" binding:"required"`
	Notes        string  `json:"notes,omitempty"`
}

// HandleJoinCreate 建立食譜與食材的關聯列
// 食譜與食材都必須屬於目前使用者
func (h *Handler) HandleJoinCreate(c *gin.Context) {
	userID := middleware.CurrentUserID(c)

	var req JoinCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BadRequest(c, "關聯欄位無效")
		return
	}
	recipeID, err := uuid.Parse(req.RecipeID)
	if err != nil {
		respond.BadRequest(c, "無效的食譜 ID")
		return
	}
	ingredientID, err := uuid.Parse(req.IngredientID)
	if err != nil {
		respond.BadRequest(c, "無效的食材 ID")
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

	if !h.ownsRecipe(c, recipeID, userID) || !h.ownsIngredient(c, ingredientID, userID) {
		return
	}

	row := &model.RecipeIngredient{
		RecipeID:     recipeID,
		IngredientID: ingredientID,
		Quantity:     req.Quantity,
		QuantityType: unit,
		Notes:        req.Notes,
	}
	if err := h.db.WithContext(c.Request.Context()).Create(row).Error; err != nil {
		// 同一組合撞複合主鍵
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			respond.Error(c, common.ErrConflict.WithCause(err), h.debug)
			return
		}
		common.LogError("關聯建立失敗", zap.Error(err),
			zap.String("recipe_id", recipeID.String()),
			zap.String("ingredient_id", ingredientID.String()),
		)
		respond.Error(c, err, h.debug)
		return
	}

	c.JSON(http.StatusCreated, row)
}

// HandleJoinList 列出指定食譜的全部關聯列（含食材資料）
func (h *Handler) HandleJoinList(c *gin.Context) {
	userID := middleware.CurrentUserID(c)

	recipeID, err := uuid.Parse(c.Param("recipeId"))
	if err != nil {
		respond.BadRequest(c, "無效的食譜 ID")
		return
	}
	if !h.ownsRecipe(c, recipeID, userID) {
		return
	}

	var rows []model.RecipeIngredient
	if err := h.db.WithContext(c.Request.Context()).
		Preload("Ingredient").
		Where("recipe_id = ?", recipeID).
		Find(&rows).Error; err != nil {
		common.LogError("關聯列表查詢失敗", zap.Error(err), zap.String("recipe_id", recipeID.String()))
		respond.Error(c, err, h.debug)
		return
	}

	c.JSON(http.StatusOK, rows)
}

// HandleJoinUpdate 以 (recipeId, ingredientId) 更新關聯列的用量
func (h *Handler) HandleJoinUpdate(c *gin.Context) {
	row, ok := h.findJoin(c)
	if !ok {
		return
	}

	var req JoinUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BadRequest(c, "關聯欄位無效")
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

	row.Quantity = req.Quantity
	row.QuantityType = unit
	row.Notes = req.Notes

	if err := h.db.WithContext(c.Request.Context()).Save(row).Error; err != nil {
		common.LogError("關聯更新失敗", zap.Error(err), zap.String("recipe_id", row.RecipeID.String()))
		respond.Error(c, err, h.debug)
		return
	}

	c.JSON(http.StatusOK, row)
}

// HandleJoinDelete 以 (recipeId, ingredientId) 刪除關聯列
func (h *Handler) HandleJoinDelete(c *gin.Context) {
	row, ok := h.findJoin(c)
	if !ok {
		return
	}

	if err := h.db.WithContext(c.Request.Context()).
		Where("recipe_id = ? AND ingredient_id = ?", row.RecipeID, row.IngredientID).
		Delete(&model.RecipeIngredient{}).Error; err != nil {
		common.LogError("關聯刪除失敗", zap.Error(err), zap.String("recipe_id", row.RecipeID.String()))
		respond.Error(c, err, h.debug)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "recipe ingredient deleted"})
}

// findJoin 以路徑上的 (recipeId, ingredientId) 取出關聯列
// 先確認食譜屬於目前使用者
func (h *Handler) findJoin(c *gin.Context) (*model.RecipeIngredient, bool) {
	userID := middleware.CurrentUserID(c)

	recipeID, err := uuid.Parse(c.Param("recipeId"))
	if err != nil {
		respond.BadRequest(c, "無效的食譜 ID")
		return nil, false
	}
	ingredientID, err := uuid.Parse(c.Param("ingredientId"))
	if err != nil {
		respond.BadRequest(c, "無效的食材 ID")
		return nil, false
	}
	if !h.ownsRecipe(c, recipeID, userID) {
		return nil, false
	}

	var row model.RecipeIngredient
	err = h.db.WithContext(c.Request.Context()).
		Where("recipe_id = ? AND ingredient_id = ?", recipeID, ingredientID).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respond.NotFound(c, "關聯不存在")
			return nil, false
		}
		respond.Error(c, err, h.debug)
		return nil, false
	}
	return &row, true
}

// ownsRecipe 確認食譜屬於目前使用者，否則回 404
func (h *Handler) ownsRecipe(c *gin.Context, recipeID uuid.UUID, userID string) bool {
	var rec model.Recipe
	err := h.db.WithContext(c.Request.Context()).
		Select("id").
		Where("id = ? AND created_by_id = ?", recipeID, userID).
		First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respond.NotFound(c, "食譜不存在")
			return false
		}
		respond.Error(c, err, h.debug)
		return false
	}
	return true
}

// ownsIngredient 確認食材屬於目前使用者，否則回 404
func (h *Handler) ownsIngredient(c *gin.Context, ingredientID uuid.UUID, userID string) bool {
	var ing model.Ingredient
	err := h.db.WithContext(c.Request.Context()).
		Select("id").
		Where("id = ? AND user_id = ?", ingredientID, userID).
		First(&ing).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respond.NotFound(c, "食材不存在")
			return false
		}
		respond.Error(c, err, h.debug)
		return false
	}
	return true
}
