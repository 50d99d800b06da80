package model

import (
	"time"

	"github.com/google/uuid"
)

// User 使用者帳號
type User struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Email        string    `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"column:password_hash;not null"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Ingredient 食材庫存，屬於單一使用者
// (user_id, name) 上有唯一索引：同名食材以「先查再建、撞唯一鍵則改查」處理，
// 避免並發請求各自判斷「不存在」而重複建立
type Ingredient struct {
	ID           uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name         string     `json:"name" gorm:"not null;uniqueIndex:idx_ingredients_user_name"`
	Quantity     float64    `json:"quantity" gorm:"not null"`
	QuantityType Unit       `json:"quantityType" gorm:"column:quantity_type;type:varchar(8);not null"`
	Expiration   *time.Time `json:"expiration,omitempty"`
	Notes        string     `json:"notes,omitempty"`
	UserID       uuid.UUID  `json:"userId" gorm:"type:uuid;not null;uniqueIndex:idx_ingredients_user_name"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// Recipe 食譜，屬於建立它的使用者
// Instructions 持久化後為單一格式化字串（schema 沒有結構化步驟欄位）
type Recipe struct {
	ID           uuid.UUID          `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Title        string             `json:"title" gorm:"not null"`
	Time         *int               `json:"time,omitempty"` // 總時長（分鐘）
	Instructions string             `json:"instructions"`
	ImageURL     string             `json:"imageUrl,omitempty" gorm:"column:image_url"`
	Notes        string             `json:"notes,omitempty"`
	CreatedByID  uuid.UUID          `json:"createdById" gorm:"type:uuid;not null"`
	Ingredients  []RecipeIngredient `json:"ingredients,omitempty" gorm:"foreignKey:RecipeID"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
}

// RecipeIngredient 食譜與食材的關聯列
// 複合主鍵 (recipe_id, ingredient_id)：每一組合最多一列
// 本列的數量/單位是「該食譜所需的用量」，與食材的庫存量是兩回事
type RecipeIngredient struct {
	RecipeID     uuid.UUID   `json:"recipeId" gorm:"type:uuid;primaryKey"`
	IngredientID uuid.UUID   `json:"ingredientId" gorm:"type:uuid;primaryKey"`
	Quantity     float64     `json:"quantity" gorm:"not null"`
	QuantityType Unit        `json:"quantityType" gorm:"column:quantity_type;type:varchar(8);not null"`
	Notes        string      `json:"notes,omitempty"`
	Ingredient   *Ingredient `json:"ingredient,omitempty" gorm:"foreignKey:IngredientID"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}
