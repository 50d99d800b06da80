package recipe

import (
	"fmt"
	"strconv"
	"strings"

	"recipe-pantry/internal/core/suggestion"
)

// FormatInstructions 將結構化指示轉成單一顯示字串
// 每個階段一個區塊（Preparation / Cooking / Plating），區塊間以空行分隔，
// 步驟格式為 "<n>. <描述>" 加上括號內的補充資訊
// 純函數，持久化 schema 沒有結構化步驟欄位時的唯一儲存形式
func FormatInstructions(in suggestion.Instructions) string {
	var sections []string

	if len(in.Prep) > 0 {
		sections = append(sections, "Preparation:")
		for _, step := range in.Prep {
			tools := ""
			if len(step.Tools) > 0 {
				tools = fmt.Sprintf(" (Tools needed: %s)", strings.Join(step.Tools, ", "))
			}
			sections = append(sections, fmt.Sprintf("%d. %s%s", step.Step, step.Description, tools))
		}
	}

	if len(in.Cooking) > 0 {
		sections = append(sections, "\nCooking:")
		for _, step := range in.Cooking {
			var details []string
			if step.Temperature != "" {
				details = append(details, fmt.Sprintf("Temperature: %s", step.Temperature))
			}
			if step.Indicators != "" {
				details = append(details, fmt.Sprintf("Done when: %s", step.Indicators))
			}
			extra := ""
			if len(details) > 0 {
				extra = fmt.Sprintf(" (%s)", strings.Join(details, ", "))
			}
			sections = append(sections, fmt.Sprintf("%d. %s%s", step.Step, step.Description, extra))
		}
	}

	if len(in.Plating) > 0 {
		sections = append(sections, "\nPlating:")
		for _, step := range in.Plating {
			sections = append(sections, fmt.Sprintf("%d. %s", step.Step, step.Description))
		}
	}

	return strings.Join(sections, "\n")
}

// FoldIngredientsIntoNotes 把 available / missing 清單摺疊進食譜備註
// 僅為顯示方便：關聯列才是食材清單的權威來源
func FoldIngredientsIntoNotes(notes string, available, missing []suggestion.Ingredient) string {
	var list []string

	if len(available) > 0 {
		list = append(list, "\nRequired Ingredients:")
		for _, ing := range available {
			list = append(list, formatIngredientLine(ing))
		}
	}

	if len(missing) > 0 {
		list = append(list, "\nAdditional Ingredients Needed:")
		for _, ing := range missing {
			list = append(list, formatIngredientLine(ing))
		}
	}

	if len(list) == 0 {
		return notes
	}
	return notes + "\n\n" + strings.Join(list, "\n")
}

func formatIngredientLine(ing suggestion.Ingredient) string {
	line := fmt.Sprintf("- %s %s %s", formatQuantity(ing.Quantity), ing.QuantityType, ing.Name)
	if ing.Notes != "" {
		line += fmt.Sprintf(" (%s)", ing.Notes)
	}
	return line
}

// formatQuantity 數量不帶多餘的尾零（2 而非 2.000000）
func formatQuantity(q float64) string {
	return strconv.FormatFloat(q, 'f', -1, 64)
}
