package recipes

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/common-nighthawk/go-figure"

	"github.com/nao1215/cocktail/pkg/httpclient"
)

// defaultSourceURL は既定のレシピ取得元。IBA公式カクテルのJSONデータ。
const defaultSourceURL = "http://raw.githubusercontent.com/teijo/iba-cocktails/master/recipes.json"

// defaultExcludedIngredients は既定で除外する食材のカンマ区切りリスト。
const defaultExcludedIngredients = "Galliano,DiSaronno"

// loadCatalog はレシピ取得元からカタログを読み込む。
// 除外食材を含むレシピを取り除き、各レシピにASCIIアートの
// カクテル名を付与して返す。
func loadCatalog(ctx context.Context, sourceURL, excludedIngredients string) ([]Recipe, error) {
	var catalog []Recipe
	if err := httpclient.New(sourceURL).GetJSON(ctx, "", &catalog); err != nil {
		return nil, fmt.Errorf("レシピ取得元からの読み込みに失敗: %w", err)
	}

	catalog = excludeIngredients(catalog, excludedIngredients)
	for i := range catalog {
		catalog[i].FigletName = renderFiglet(catalog[i].Name)
	}
	return catalog, nil
}

// excludeIngredients は除外食材を1つでも含むレシピを取り除く。
// 除外食材の照合は大文字小文字を区別しない。
func excludeIngredients(catalog []Recipe, excludedIngredients string) []Recipe {
	excluded := make(map[string]bool)
	for _, name := range strings.Split(excludedIngredients, ",") {
		if name == "" {
			continue
		}
		excluded[strings.ToLower(name)] = true
	}

	kept := make([]Recipe, 0, len(catalog))
	for _, recipe := range catalog {
		if name := excludedBy(recipe, excluded); name != "" {
			log.Printf("食材%sを含むためレシピ%sを除外します", name, recipe.Name)
			continue
		}
		kept = append(kept, recipe)
	}
	return kept
}

// excludedBy はレシピに含まれる除外食材の名前を返す。
// 除外食材を含まない場合は空文字列を返す。
func excludedBy(recipe Recipe, excluded map[string]bool) string {
	for _, ingredient := range recipe.Ingredients {
		if ingredient.Ingredient != "" && excluded[strings.ToLower(ingredient.Ingredient)] {
			return ingredient.Ingredient
		}
	}
	return ""
}

// renderFiglet はカクテル名をASCIIアートで描画する。
func renderFiglet(name string) string {
	return figure.NewFigure(name, "standard", false).String()
}
