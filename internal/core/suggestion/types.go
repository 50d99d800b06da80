package suggestion

// 推薦食譜的線上格式（Groq 回應 schema）
// 欄位名稱、型別、巢狀結構都要與 prompt 中宣告的 schema 一模一樣

// PrepStep 備料步驟
type PrepStep struct {
	Step        int      `json:"step"`
	Description string   `json:"description"`
	Time        float64  `json:"time,omitempty"` // 分鐘
	Tools       []string `json:"tools,omitempty"`
}

// CookingStep 烹飪步驟
type CookingStep struct {
	Step        int     `json:"step"`
	Description string  `json:"description"`
	Time        float64 `json:"time,omitempty"`
	Temperature string  `json:"temperature,omitempty"`
	Indicators  string  `json:"indicators,omitempty"` // 完成的判斷依據
}

// PlatingStep 擺盤步驟
type PlatingStep struct {
	Step        int    `json:"step"`
	Description string `json:"description"`
}

// Instructions 結構化指示，分 prep / cooking / plating 三個階段
// 每個階段內步驟編號必須從 1 開始、嚴格遞增且無缺口
type Instructions struct {
	Prep    []PrepStep    `json:"prep"`
	Cooking []CookingStep `json:"cooking"`
	Plating []PlatingStep `json:"plating"`
}

// Ingredient 推薦中的食材項目
// Quantity/QuantityType 是該食譜的用量，與庫存量無關
type Ingredient struct {
	Name         string  `json:"name"`
	Quantity     float64 `json:"quantity"`
	QuantityType string  `json:"quantityType"`
	Notes        string  `json:"notes,omitempty"`
}

// IngredientLists available / missing 兩組食材清單
// 兩個陣列都可以是空的，但必須存在（用指標區分「缺欄位」與「空陣列」）
type IngredientLists struct {
	Available *[]Ingredient `json:"available"`
	Missing   *[]Ingredient `json:"missing"`
}

// Suggestion 一筆已驗證的食譜推薦（未被接受前不落地）
type Suggestion struct {
	Title        string          `json:"title"`
	Time         float64         `json:"time"` // 總分鐘數
	Difficulty   string          `json:"difficulty,omitempty"`
	Instructions Instructions    `json:"instructions"`
	ImageURL     string          `json:"imageUrl,omitempty"`
	Notes        string          `json:"notes,omitempty"`
	Ingredients  IngredientLists `json:"ingredients"`

	// 驗證通過後由後端附註
	Source     string `json:"source,omitempty"`     // 來源標記，固定 "groq"
	Confidence string `json:"confidence,omitempty"` // high / medium
}

// 信心等級：補全正常結束為 high，被截斷為 medium
const (
	ConfidenceHigh   = "high"
	ConfidenceMedium = "medium"

	// SourceGroq 推薦來源標記
	SourceGroq = "groq"
)
