package recipes

// Recipe はカクテル1品のレシピ。
// フィールド構成はIBA公式カクテルのJSONデータに従う。
type Recipe struct {
	// Name はカクテル名。
	Name string `json:"name"`
	// FigletName はASCIIアートで描画したカクテル名。
	FigletName string `json:"figlet_name,omitempty"`
	// Glass は提供に使うグラスの種類。
	Glass string `json:"glass,omitempty"`
	// Category はカクテルの分類。
	Category string `json:"category,omitempty"`
	// Ingredients は材料の一覧。
	Ingredients []Ingredient `json:"ingredients"`
	// Garnish は飾り付け。
	Garnish string `json:"garnish,omitempty"`
	// Preparation は作り方。
	Preparation string `json:"preparation,omitempty"`
}

// Ingredient はレシピの材料1件。
// 分量で表せる材料はUnit/Amount/Ingredientを持ち、
// 定量化できない材料はSpecialのみを持つ。
type Ingredient struct {
	// Unit は分量の単位（例: "cl"）。
	Unit string `json:"unit,omitempty"`
	// Amount は分量。
	Amount float64 `json:"amount,omitempty"`
	// Ingredient は食材名。
	Ingredient string `json:"ingredient,omitempty"`
	// Label は表示用の食材名。
	Label string `json:"label,omitempty"`
	// Special は定量化できない材料の記述。
	Special string `json:"special,omitempty"`
}
