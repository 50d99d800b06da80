package suggestion

import (
	"fmt"

	"recipe-pantry/internal/core/model"
	"recipe-pantry/internal/pkg/common"
)

// Validate 解析已清理的文字並逐筆檢查 schema
// 驗證完全無副作用：任何不合格的內容都不會流向持久層
// 通過後每筆推薦附上來源標記與信心等級（補全正常結束=high，截斷=medium）
func Validate(content string, finishedNormally bool) ([]Suggestion, error) {
	var suggestions []Suggestion
	if err := common.ParseJSON(content, &suggestions); err != nil {
		return nil, common.ErrInvalidSuggestionFormat.WithCause(fmt.Errorf("failed to parse suggestion payload: %w", err))
	}

	if suggestions == nil {
		return nil, common.ErrInvalidSuggestionFormat.WithCause(fmt.Errorf("response is not an array"))
	}

	for i := range suggestions {
		if err := validateSuggestion(&suggestions[i]); err != nil {
			return nil, common.ErrInvalidSuggestionFormat.WithCause(fmt.Errorf("recipe %d: %w", i+1, err))
		}
	}

	confidence := ConfidenceMedium
	if finishedNormally {
		confidence = ConfidenceHigh
	}
	for i := range suggestions {
		suggestions[i].Source = SourceGroq
		suggestions[i].Confidence = confidence
	}

	return suggestions, nil
}

// ValidateAccepted 檢查客戶端送回的已接受推薦
// 這屬於輸入錯誤範疇：欄位缺失立即回報，不會觸發任何外部呼叫
func ValidateAccepted(s *Suggestion) error {
	if err := validateSuggestion(s); err != nil {
		return common.ErrInvalidRequest.WithCause(err)
	}
	return nil
}

// validateSuggestion 檢查單筆推薦的必要欄位、步驟編號與單位枚舉
func validateSuggestion(s *Suggestion) error {
	if s.Title == "" {
		return fmt.Errorf("recipe missing required field: title")
	}
	if s.Time <= 0 {
		return fmt.Errorf("recipe missing required field: time")
	}

	// 三個階段都必須存在且非空
	if len(s.Instructions.Prep) == 0 {
		return fmt.Errorf("recipe instructions missing required section: prep")
	}
	if len(s.Instructions.Cooking) == 0 {
		return fmt.Errorf("recipe instructions missing required section: cooking")
	}
	if len(s.Instructions.Plating) == 0 {
		return fmt.Errorf("recipe instructions missing required section: plating")
	}

	// 步驟編號必須等於 1-based 位置，錯誤訊息要指名階段
	for i, step := range s.Instructions.Prep {
		if step.Step != i+1 {
			return fmt.Errorf("invalid step numbering in prep section")
		}
	}
	for i, step := range s.Instructions.Cooking {
		if step.Step != i+1 {
			return fmt.Errorf("invalid step numbering in cooking section")
		}
	}
	for i, step := range s.Instructions.Plating {
		if step.Step != i+1 {
			return fmt.Errorf("invalid step numbering in plating section")
		}
	}

	// available / missing 兩個陣列都必須存在（可為空）
	if s.Ingredients.Available == nil {
		return fmt.Errorf("recipe ingredients missing required list: available")
	}
	if s.Ingredients.Missing == nil {
		return fmt.Errorf("recipe ingredients missing required list: missing")
	}

	// 單位必須在枚舉內，錯誤訊息要指名該單位
	for _, ing := range append(append([]Ingredient{}, *s.Ingredients.Available...), *s.Ingredients.Missing...) {
		if !model.Unit(ing.QuantityType).Valid() {
			return fmt.Errorf("invalid unit type: %s", ing.QuantityType)
		}
	}

	return nil
}
