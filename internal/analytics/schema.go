package analytics

// recipe は集計対象のレシピ。材料の一覧のみを扱う。
type recipe struct {
	// Ingredients は材料の一覧。
	Ingredients []ingredient `json:"ingredients"`
}

// ingredient はレシピの材料1件。
type ingredient struct {
	// Ingredient は食材名。定量化できない材料（special）では空になる。
	Ingredient string `json:"ingredient"`
}
