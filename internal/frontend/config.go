package frontend

import (
	"fmt"
	"net/url"
	"os"
)

// config はfrontendサービスの起動時設定。起動後は変更されない。
// recipes以外のサービスはURLが空の場合に機能ごと無効化される。
type config struct {
	// recipesURL はrecipesサービスのURL。必須。
	recipesURL string
	// analyticsURL はanalyticsサービスのURL。空の場合は人気食材の表示を無効化する。
	analyticsURL string
	// favoritesURL はfavoritesサービスのURL。空の場合はお気に入り機能を無効化する。
	favoritesURL string
	// favoritesAccessKey はfavoritesサービスへのアクセスキー。
	favoritesAccessKey string
	// authenticationURL はauthenticationサービスのURL。空の場合は認証を無効化する。
	authenticationURL string
	// authenticationRedirectURL は未認証の利用者を誘導するログイン画面のURL。
	authenticationRedirectURL string
}

// newConfigFromEnv は環境変数からfrontendサービスの設定を構築する。
// 設定の組み合わせが不正な場合はエラーを返す。
func newConfigFromEnv() (config, error) {
	cfg := config{
		recipesURL:                os.Getenv("APP_RECIPES_URL"),
		analyticsURL:              os.Getenv("APP_ANALYTICS_URL"),
		favoritesURL:              os.Getenv("APP_FAVORITES_URL"),
		favoritesAccessKey:        os.Getenv("APP_FAVORITES_ACCESS_KEY"),
		authenticationURL:         os.Getenv("APP_AUTHENTICATION_URL"),
		authenticationRedirectURL: os.Getenv("APP_AUTHENTICATION_REDIRECT_URL"),
	}
	if err := cfg.validate(); err != nil {
		return config{}, err
	}
	return cfg, nil
}

// validate は設定の組み合わせを検証する。
func (c config) validate() error {
	if c.recipesURL == "" {
		return fmt.Errorf("環境変数 APP_RECIPES_URL が設定されていない")
	}

	serviceURLs := map[string]string{
		"APP_RECIPES_URL":        c.recipesURL,
		"APP_ANALYTICS_URL":      c.analyticsURL,
		"APP_FAVORITES_URL":      c.favoritesURL,
		"APP_AUTHENTICATION_URL": c.authenticationURL,
	}
	for name, serviceURL := range serviceURLs {
		if serviceURL == "" {
			continue
		}
		if err := checkServiceURL(serviceURL); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}

	if c.favoritesURL != "" && c.favoritesAccessKey == "" {
		return fmt.Errorf("APP_FAVORITES_URLを設定する場合は環境変数 APP_FAVORITES_ACCESS_KEY も必須")
	}
	if c.authenticationURL != "" && c.authenticationRedirectURL == "" {
		return fmt.Errorf("APP_AUTHENTICATION_URLを設定する場合は環境変数 APP_AUTHENTICATION_REDIRECT_URL も必須")
	}
	return nil
}

// checkServiceURL は接続先URLのスキームがhttpかhttpsであることを検証する。
func checkServiceURL(rawURL string) error {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("接続先URLを解釈できない: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("接続先URLのスキームはhttpかhttpsでなければならない: %q", rawURL)
	}
	return nil
}
