package frontend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"

	"golang.org/x/sync/errgroup"

	"github.com/nao1215/cocktail/pkg/authgate"
	"github.com/nao1215/cocktail/pkg/httpclient"
)

// topIngredientsCount はGUIページに表示する人気食材の件数。
const topIngredientsCount = 5

// aggregator は各バックエンドサービスからGUIページの内容を合成する。
type aggregator struct {
	// recipes はrecipesサービスへのクライアント。必須。
	recipes *httpclient.Client
	// analytics はanalyticsサービスへのクライアント。無効時はnil。
	analytics *httpclient.Client
	// favorites はfavoritesサービスへのクライアント。無効時はnil。
	favorites *httpclient.Client
}

// newAggregator は設定から各サービスへのクライアントを組み立てる。
func newAggregator(cfg config) *aggregator {
	agg := &aggregator{
		recipes: httpclient.New(cfg.recipesURL),
	}
	if cfg.analyticsURL != "" {
		agg.analytics = httpclient.New(cfg.analyticsURL)
	}
	if cfg.favoritesURL != "" {
		agg.favorites = httpclient.New(cfg.favoritesURL).WithHeader("X-Access-Key", cfg.favoritesAccessKey)
	}
	return agg
}

// composePage はGUIページの内容を合成する。
// 有効になっている機能への問い合わせは並行して行い、1つでも失敗した
// 場合は部分的なページを返さずエラーとする。無効な機能には
// 問い合わせず、空の一覧を使う。
func (a *aggregator) composePage(ctx context.Context, identity authgate.Identity) (pageData, error) {
	page := pageData{
		User:             identity.Subject,
		Recipes:          []json.RawMessage{},
		TopIngredients:   []string{},
		FavoritesEnabled: a.favorites != nil,
		Favorites:        []string{},
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := a.recipes.GetJSON(ctx, "/api/list", &page.Recipes); err != nil {
			return fmt.Errorf("レシピ一覧の取得に失敗: %w", err)
		}
		return nil
	})

	if a.analytics != nil {
		g.Go(func() error {
			if err := a.analytics.GetJSON(ctx, fmt.Sprintf("/api/top/%d", topIngredientsCount), &page.TopIngredients); err != nil {
				return fmt.Errorf("人気食材の取得に失敗: %w", err)
			}
			return nil
		})
	}

	if a.favorites != nil {
		g.Go(func() error {
			if err := a.favorites.GetJSON(ctx, "/api/favorites/"+url.PathEscape(identity.Subject), &page.Favorites); err != nil {
				return fmt.Errorf("お気に入りの取得に失敗: %w", err)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return pageData{}, err
	}
	return page, nil
}

// addFavorite は利用者のお気に入りにドリンクを追加する。
func (a *aggregator) addFavorite(ctx context.Context, identity authgate.Identity, drink string) error {
	if a.favorites == nil {
		return errors.New("お気に入り機能が無効")
	}
	if err := a.favorites.PostJSON(ctx, "/api/favorites/"+url.PathEscape(identity.Subject), drink, nil); err != nil {
		return fmt.Errorf("お気に入りの追加に失敗: %w", err)
	}
	return nil
}
