package recipe

import (
	"context"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"recipe-pantry/internal/core/model"
	"recipe-pantry/internal/core/suggestion"
	"recipe-pantry/internal/pkg/common"
)

func TestMain(m *testing.M) {
	common.Logger = zap.NewNop()
	os.Exit(m.Run())
}

func acceptedSuggestion() suggestion.Suggestion {
	available := []suggestion.Ingredient{
		{Name: "egg", Quantity: 2, QuantityType: "PCS", Notes: "room temperature"},
	}
	missing := []suggestion.Ingredient{
		{Name: "butter", Quantity: 10, QuantityType: "G"},
	}
	return suggestion.Suggestion{
		Title: "Omelette",
		Time:  15,
		Instructions: suggestion.Instructions{
			Prep:    []suggestion.PrepStep{{Step: 1, Description: "Whisk the eggs"}},
			Cooking: []suggestion.CookingStep{{Step: 1, Description: "Cook gently", Temperature: "medium"}},
			Plating: []suggestion.PlatingStep{{Step: 1, Description: "Serve"}},
		},
		Notes: "Best served hot.",
		Ingredients: suggestion.IngredientLists{
			Available: &available,
			Missing:   &missing,
		},
	}
}

func TestBuildRecipe(t *testing.T) {
	userID := uuid.New()
	sug := acceptedSuggestion()

	rec := BuildRecipe(&sug, userID)

	if rec.Title != "Omelette" {
		t.Fatalf("expected title Omelette, got %s", rec.Title)
	}
	if rec.CreatedByID != userID {
		t.Fatalf("expected creator %s, got %s", userID, rec.CreatedByID)
	}
	if rec.Time == nil || *rec.Time != 15 {
		t.Fatalf("expected time 15, got %v", rec.Time)
	}
	if !strings.Contains(rec.Instructions, "Preparation:") ||
		!strings.Contains(rec.Instructions, "Cooking:") ||
		!strings.Contains(rec.Instructions, "Plating:") {
		t.Fatalf("instructions missing sections:\n%s", rec.Instructions)
	}
	if !strings.Contains(rec.Notes, "Required Ingredients:") ||
		!strings.Contains(rec.Notes, "Additional Ingredients Needed:") {
		t.Fatalf("notes missing folded ingredient lists:\n%s", rec.Notes)
	}
	if !strings.HasPrefix(rec.Notes, "Best served hot.") {
		t.Fatalf("original notes lost:\n%s", rec.Notes)
	}
}

func TestBuildRecipeZeroTime(t *testing.T) {
	sug := acceptedSuggestion()
	sug.Time = 0

	rec := BuildRecipe(&sug, uuid.New())
	if rec.Time != nil {
		t.Fatalf("expected nil time, got %v", *rec.Time)
	}
}

// testDB 連到 TEST_DATABASE_URL 指定的 Postgres，未設定時跳過
func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	if err := db.AutoMigrate(
		&model.User{}, &model.Ingredient{}, &model.Recipe{}, &model.RecipeIngredient{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func testUser(t *testing.T, db *gorm.DB) *model.User {
	t.Helper()
	user := &model.User{
		Email:        fmt.Sprintf("accept-%d@test.local", time.Now().UnixNano()),
		PasswordHash: "x",
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func TestAcceptReusesExistingIngredient(t *testing.T) {
	db := testDB(t)
	user := testUser(t, db)
	svc := NewService(db)

	// 庫存已有同名食材
	existing := &model.Ingredient{
		Name:         "egg",
		Quantity:     12,
		QuantityType: model.UnitPiece,
		UserID:       user.ID,
	}
	if err := db.Create(existing).Error; err != nil {
		t.Fatalf("seed ingredient: %v", err)
	}

	sug := acceptedSuggestion()
	rec, err := svc.Accept(context.Background(), &sug, user.ID)
	if err != nil {
		t.Fatalf("accept: %v", err)
	}

	if len(rec.Ingredients) != 2 {
		t.Fatalf("expected 2 join rows, got %d", len(rec.Ingredients))
	}

	var byName = map[string]model.RecipeIngredient{}
	for _, row := range rec.Ingredients {
		if row.Ingredient == nil {
			t.Fatal("join row missing preloaded ingredient")
		}
		byName[row.Ingredient.Name] = row
	}

	// 既有食材被重用，庫存量不被推薦覆寫
	eggRow, ok := byName["egg"]
	if !ok {
		t.Fatal("egg join row missing")
	}
	if eggRow.IngredientID != existing.ID {
		t.Fatalf("expected reuse of ingredient %s, got %s", existing.ID, eggRow.IngredientID)
	}
	if eggRow.Ingredient.Quantity != 12 {
		t.Fatalf("inventory quantity overwritten: %v", eggRow.Ingredient.Quantity)
	}
	// 關聯列帶推薦的用量
	if eggRow.Quantity != 2 {
		t.Fatalf("expected join quantity 2, got %v", eggRow.Quantity)
	}
}

func TestAcceptCreatesMissingWithZeroInventory(t *testing.T) {
	db := testDB(t)
	user := testUser(t, db)
	svc := NewService(db)

	sug := acceptedSuggestion()
	rec, err := svc.Accept(context.Background(), &sug, user.ID)
	if err != nil {
		t.Fatalf("accept: %v", err)
	}

	var butter model.Ingredient
	if err := db.Where("name = ? AND user_id = ?", "butter", user.ID).First(&butter).Error; err != nil {
		t.Fatalf("butter not created: %v", err)
	}
	// missing 食材尚未擁有，庫存量固定 0
	if butter.Quantity != 0 {
		t.Fatalf("expected zero inventory quantity, got %v", butter.Quantity)
	}

	// 關聯列仍帶建議用量
	var row model.RecipeIngredient
	if err := db.Where("recipe_id = ? AND ingredient_id = ?", rec.ID, butter.ID).First(&row).Error; err != nil {
		t.Fatalf("join row missing: %v", err)
	}
	if row.Quantity != 10 {
		t.Fatalf("expected join quantity 10, got %v", row.Quantity)
	}
}

func TestAcceptRollsBackOnFailure(t *testing.T) {
	db := testDB(t)
	user := testUser(t, db)
	svc := NewService(db)

	sug := acceptedSuggestion()
	// 壞單位讓食材調和在食譜建立後失敗
	(*sug.Ingredients.Missing)[0].QuantityType = "BUSHEL"

	var before int64
	if err := db.Model(&model.Recipe{}).Where("created_by_id = ?", user.ID).Count(&before).Error; err != nil {
		t.Fatalf("count: %v", err)
	}

	if _, err := svc.Accept(context.Background(), &sug, user.ID); err == nil {
		t.Fatal("expected error")
	}

	var after int64
	if err := db.Model(&model.Recipe{}).Where("created_by_id = ?", user.ID).Count(&after).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if after != before {
		t.Fatalf("transaction leaked a recipe: before %d, after %d", before, after)
	}
}
