package recipes

import (
	"context"
	"fmt"
	"log"
	"math/rand/v2"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/nao1215/cocktail/pkg/middleware"
)

// Server はrecipesサービスのHTTPサーバー。
type Server struct {
	// router はGinのHTTPルーター。
	router *gin.Engine
	// port はサーバーのリッスンポート。
	port string
	// catalog は起動時に読み込んだレシピカタログ。以後変更されない。
	catalog []Recipe
	// host は診断ヘッダーに設定する応答元の表記。
	host string
}

// NewServer は新しいrecipesサーバーを生成する。
// レシピ取得元からカタログを読み込むため、取得元に接続できない場合は
// エラーを返す。
func NewServer(port string) (*Server, error) {
	sourceURL := getEnvOr("APP_SOURCE_URL", defaultSourceURL)
	if err := checkServiceURL(sourceURL); err != nil {
		return nil, err
	}

	excludedIngredients := getEnvOr("APP_EXCLUDED_INGREDIENTS", defaultExcludedIngredients)
	catalog, err := loadCatalog(context.Background(), sourceURL, excludedIngredients)
	if err != nil {
		return nil, err
	}
	log.Printf("レシピカタログを読み込みました: %d件", len(catalog))

	return newServer(port, catalog), nil
}

// newServer は読み込み済みのカタログからサーバーを組み立てる。
func newServer(port string, catalog []Recipe) *Server {
	router := gin.New()
	router.Use(middleware.Recovery())
	router.Use(gin.Logger())
	router.Use(middleware.RequestID())

	host := middleware.HostString()
	router.Use(middleware.ProvidedBy(host))

	s := &Server{
		router:  router,
		port:    port,
		catalog: catalog,
		host:    host,
	}
	s.setupRoutes()
	return s
}

// Run はHTTPサーバーを起動する。
func (s *Server) Run() error {
	return s.router.Run(fmt.Sprintf(":%s", s.port))
}

// setupRoutes はAPIルーティングを設定する。
func (s *Server) setupRoutes() {
	// レシピ一覧取得
	s.router.GET("/api/list", s.handleList())

	// ヘルスチェック
	s.router.GET("/", s.handleHealth())
}

// handleList はレシピ一覧を返すハンドラを返す。
// 一覧は毎回シャッフルして返す。filterクエリが指定された場合は
// カクテル名に部分一致するレシピのみを返す。
func (s *Server) handleList() gin.HandlerFunc {
	return func(c *gin.Context) {
		shuffled := make([]Recipe, len(s.catalog))
		copy(shuffled, s.catalog)
		rand.Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})

		filter := c.Query("filter")
		if filter == "" {
			c.JSON(http.StatusOK, shuffled)
			return
		}

		matched := make([]Recipe, 0, len(shuffled))
		for _, recipe := range shuffled {
			if strings.Contains(recipe.Name, filter) {
				matched = append(matched, recipe)
			}
		}
		c.JSON(http.StatusOK, matched)
	}
}

// handleHealth は稼働確認に応答するハンドラを返す。
func (s *Server) handleHealth() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.String(http.StatusOK, "Hello from recipes API server on %s!\n", s.host)
	}
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

// getEnvOr は環境変数を取得し、設定されていない場合はデフォルト値を返す。
func getEnvOr(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}
