package suggestion

import (
	"fmt"
	"strings"

	"recipe-pantry/internal/core/model"
)

// DefaultLimit 未指定時的推薦數量
const DefaultLimit = 3

// systemPrompt 固定的 system prompt，完整宣告輸出 schema（欄位名稱、型別、單位枚舉）
// 模型只被允許輸出裸 JSON 陣列，不得包含 markdown 或說明文字
func systemPrompt() string {
	units := strings.Join(model.UnitNames(), ", ")
	return fmt.Sprintf(`You are a professional chef API that ONLY outputs raw JSON arrays without any markdown formatting or explanation.
Each recipe must strictly follow this schema and cooking best practices:
{
  "title": "string (descriptive name)",
  "time": "number (total minutes required)",
  "instructions": {
    "prep": [
      {
        "step": "number",
        "description": "string (detailed preparation instruction)",
        "time": "number (minutes required)",
        "tools": ["string (required kitchen tools)"]
      }
    ],
    "cooking": [
      {
        "step": "number",
        "description": "string (detailed cooking instruction)",
        "time": "number (minutes required)",
        "temperature": "string (if applicable)",
        "indicators": "string (how to know step is complete)"
      }
    ],
    "plating": [
      {
        "step": "number",
        "description": "string (plating and serving instructions)"
      }
    ]
  },
  "difficulty": "string (easy, medium, hard)",
  "imageUrl": "string (optional)",
  "notes": "string (tips, variations, storage advice)",
  "ingredients": {
    "available": [
      {
        "name": "string",
        "quantity": "number",
        "quantityType": "enum(%s)",
        "notes": "string (preparation state, e.g., 'diced', 'room temperature')"
      }
    ],
    "missing": [
      {
        "name": "string",
        "quantity": "number",
        "quantityType": "enum(%s)",
        "notes": "string (optional)"
      }
    ]
  }
}`, units, units)
}

// userPromptExample 一個完整的 worked example，提升 schema 遵循率
const userPromptExample = `Example response format:
[{
  "title": "Classic French Toast with Vanilla",
  "time": 25,
  "difficulty": "easy",
  "instructions": {
    "prep": [
      {
        "step": 1,
        "description": "In a shallow bowl, whisk 2 eggs until fully beaten. Add 1/2 cup milk and whisk until no egg streaks remain.",
        "time": 3,
        "tools": ["whisk", "shallow bowl", "measuring cups"]
      }
    ],
    "cooking": [
      {
        "step": 1,
        "description": "Heat a non-stick skillet over medium heat. Add 1 TBSP butter and swirl to coat the pan.",
        "time": 2,
        "temperature": "350°F",
        "indicators": "Butter should be foamy but not browned"
      },
      {
        "step": 2,
        "description": "Dip each bread slice in egg mixture for 5 seconds per side. Cook until golden brown, about 2-3 minutes per side.",
        "time": 5,
        "temperature": "medium heat",
        "indicators": "Golden brown color, slightly puffed, and no wet spots"
      }
    ],
    "plating": [
      {
        "step": 1,
        "description": "Serve immediately on warmed plates. Dust with powdered sugar and serve with maple syrup on the side."
      }
    ]
  },
  "notes": "For best results, use day-old bread.",
  "ingredients": {
    "available": [
      {"name": "eggs", "quantity": 2, "quantityType": "PCS", "notes": "room temperature"},
      {"name": "milk", "quantity": 0.5, "quantityType": "CUP", "notes": "whole milk preferred"}
    ],
    "missing": [
      {"name": "bread", "quantity": 4, "quantityType": "SLICE", "notes": "thick-cut, day-old"},
      {"name": "vanilla extract", "quantity": 1, "quantityType": "TSP", "notes": null}
    ]
  }
}]`

// buildUserPrompt 組裝 user prompt：食材清單 + 數量提示 + worked example
func buildUserPrompt(ingredientNames []string, limit int) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Output a raw JSON array with %d recipes using these ingredients: %s.\n",
		limit, strings.Join(ingredientNames, ", ")))
	sb.WriteString(`Follow the schema exactly. Use realistic quantities and appropriate units from the allowed enum values.
Make instructions extremely detailed and specific, including:
- Exact measurements and temperatures
- Required tools and equipment
- Visual or tactile indicators for doneness
- Timing for each step
- Proper ingredient preparation states
- Safety precautions where needed

`)
	sb.WriteString(userPromptExample)
	return sb.String()
}
