package frontend

import "encoding/json"

// pageData はGUIページの合成結果のJSON構造。
type pageData struct {
	// User は認証ゲートで解決された利用者名。未認証の場合は "unknown"。
	User string `json:"user"`
	// Recipes はrecipesサービスから取得したレシピ一覧。
	// レシピの中身には関与しないため、そのまま受け渡す。
	Recipes []json.RawMessage `json:"recipes"`
	// TopIngredients は使用頻度の高い食材の一覧。
	// analyticsが無効な場合は空になる。
	TopIngredients []string `json:"top_ingredients"`
	// FavoritesEnabled はお気に入り機能が有効かどうか。
	FavoritesEnabled bool `json:"favorites_enabled"`
	// Favorites は利用者のお気に入りドリンク名の一覧。
	// favoritesが無効な場合は空になる。
	Favorites []string `json:"favorites"`
}
