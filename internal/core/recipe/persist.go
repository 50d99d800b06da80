package recipe

import (
	"context"
	"errors"
	"fmt"

	"recipe-pantry/internal/core/model"
	"recipe-pantry/internal/core/suggestion"
	"recipe-pantry/internal/pkg/common"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Service 食譜持久化服務
type Service struct {
	db *gorm.DB
}

// NewService 創建食譜持久化服務
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// BuildRecipe 把一筆被接受的推薦映射成 Recipe 列（純函數）
// 結構化指示序列化成單一字串，食材清單摺疊進備註
func BuildRecipe(sug *suggestion.Suggestion, userID uuid.UUID) *model.Recipe {
	rec := &model.Recipe{
		Title:        sug.Title,
		Instructions: FormatInstructions(sug.Instructions),
		ImageURL:     sug.ImageURL,
		Notes:        FoldIngredientsIntoNotes(sug.Notes, deref(sug.Ingredients.Available), deref(sug.Ingredients.Missing)),
		CreatedByID:  userID,
	}
	if sug.Time > 0 {
		minutes := int(sug.Time)
		rec.Time = &minutes
	}
	return rec
}

// Accept 將一筆被接受的推薦以單一交易落地
// 步驟：建 Recipe 列 → 調和 available 食材（同名重用、否則新建）→
// missing 食材一律以庫存量 0 新建 → 每項食材建一列關聯 → 交易內重讀結果
// 任何子步驟失敗整筆回滾，不留下部分資料
func (s *Service) Accept(ctx context.Context, sug *suggestion.Suggestion, userID uuid.UUID) (*model.Recipe, error) {
	rec := BuildRecipe(sug, userID)

	var result model.Recipe
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(rec).Error; err != nil {
			return fmt.Errorf("failed to create recipe: %w", err)
		}

		// available：同名（同使用者）食材重用，否則以建議的數量/單位/備註新建
		for _, entry := range deref(sug.Ingredients.Available) {
			ing, err := s.reconcileIngredient(tx, userID, entry, false)
			if err != nil {
				return err
			}
			if err := s.createJoinRow(tx, rec.ID, ing.ID, entry); err != nil {
				return err
			}
		}

		// missing：尚未入庫，庫存量固定為 0；關聯列仍帶建議用量
		for _, entry := range deref(sug.Ingredients.Missing) {
			ing, err := s.reconcileIngredient(tx, userID, entry, true)
			if err != nil {
				return err
			}
			if err := s.createJoinRow(tx, rec.ID, ing.ID, entry); err != nil {
				return err
			}
		}

		// 交易內重讀建好的食譜與其關聯食材，作為交易結果
		if err := tx.Preload("Ingredients.Ingredient").
			First(&result, "id = ?", rec.ID).Error; err != nil {
			return fmt.Errorf("failed to reload recipe: %w", err)
		}
		return nil
	})
	if err != nil {
		common.LogError("推薦落地交易失敗",
			zap.Error(err),
			zap.String("title", sug.Title),
			zap.String("user_id", userID.String()),
		)
		return nil, common.ErrSaveFailed.WithCause(err)
	}

	return &result, nil
}

// reconcileIngredient 依名稱調和食材列
// (user_id, name) 上的唯一索引讓「查無則建」在並發下也只留下一列：
// 撞到唯一鍵衝突就視為「已存在」改為重查，而不是靠 check-then-act
func (s *Service) reconcileIngredient(tx *gorm.DB, userID uuid.UUID, entry suggestion.Ingredient, missing bool) (*model.Ingredient, error) {
	unit, err := model.ParseUnit(entry.QuantityType)
	if err != nil {
		return nil, err
	}

	if !missing {
		var existing model.Ingredient
		err := tx.Where("name = ? AND user_id = ?", entry.Name, userID).First(&existing).Error
		if err == nil {
			return &existing, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to look up ingredient %q: %w", entry.Name, err)
		}
	}

	quantity := entry.Quantity
	if missing {
		quantity = 0 // 尚未擁有
	}
	ing := &model.Ingredient{
		Name:         entry.Name,
		Quantity:     quantity,
		QuantityType: unit,
		Notes:        entry.Notes,
		UserID:       userID,
	}
	if err := tx.Create(ing).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// 已存在（並發建立或 missing 清單命中既有食材），改為重查
			var existing model.Ingredient
			if err := tx.Where("name = ? AND user_id = ?", entry.Name, userID).First(&existing).Error; err != nil {
				return nil, fmt.Errorf("failed to reselect ingredient %q: %w", entry.Name, err)
			}
			return &existing, nil
		}
		return nil, fmt.Errorf("failed to create ingredient %q: %w", entry.Name, err)
	}
	return ing, nil
}

// createJoinRow 建立關聯列，用量帶推薦中的每食譜數量/單位/備註
func (s *Service) createJoinRow(tx *gorm.DB, recipeID, ingredientID uuid.UUID, entry suggestion.Ingredient) error {
	row := &model.RecipeIngredient{
		RecipeID:     recipeID,
		IngredientID: ingredientID,
		Quantity:     entry.Quantity,
		QuantityType: model.Unit(entry.QuantityType),
		Notes:        entry.Notes,
	}
	if err := tx.Create(row).Error; err != nil {
		return fmt.Errorf("failed to link ingredient to recipe: %w", err)
	}
	return nil
}

func deref(list *[]suggestion.Ingredient) []suggestion.Ingredient {
	if list == nil {
		return nil
	}
	return *list
}
