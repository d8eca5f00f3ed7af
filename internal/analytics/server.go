package analytics

import (
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"
	"sort"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/nao1215/cocktail/pkg/httpclient"
	"github.com/nao1215/cocktail/pkg/middleware"
)

// Server はanalyticsサービスのHTTPサーバー。
type Server struct {
	// router はGinのHTTPルーター。
	router *gin.Engine
	// port はサーバーのリッスンポート。
	port string
	// recipesClient はrecipesサービスへのHTTPクライアント。
	recipesClient *httpclient.Client
	// host は診断ヘッダーに設定する応答元の表記。
	host string
}

// NewServer は新しいanalyticsサーバーを生成する。
// 環境変数APP_RECIPES_URLは必須で、未設定の場合はエラーを返す。
func NewServer(port string) (*Server, error) {
	recipesURL := os.Getenv("APP_RECIPES_URL")
	if recipesURL == "" {
		return nil, fmt.Errorf("環境変数 APP_RECIPES_URL が設定されていない")
	}
	if err := checkServiceURL(recipesURL); err != nil {
		return nil, err
	}
	return newServer(port, httpclient.New(recipesURL)), nil
}

// newServer はrecipesサービスへのクライアントからサーバーを組み立てる。
func newServer(port string, recipesClient *httpclient.Client) *Server {
	router := gin.New()
	router.Use(middleware.Recovery())
	router.Use(gin.Logger())
	router.Use(middleware.RequestID())

	host := middleware.HostString()
	router.Use(middleware.ProvidedBy(host))

	s := &Server{
		router:        router,
		port:          port,
		recipesClient: recipesClient,
		host:          host,
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
	// 使用頻度の高い食材の上位N件取得
	s.router.GET("/api/top/:count", s.handleTop())

	// ヘルスチェック
	s.router.GET("/", s.handleHealth())
}

// handleTop は使用頻度の高い食材の上位N件を返すハンドラを返す。
// レシピ一覧はリクエストのたびにrecipesサービスから取得する。
func (s *Server) handleTop() gin.HandlerFunc {
	return func(c *gin.Context) {
		count, err := strconv.Atoi(c.Param("count"))
		if err != nil || count < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "件数は0以上の整数でなければなりません"})
			return
		}

		var catalog []recipe
		if err := s.recipesClient.GetJSON(c.Request.Context(), "/api/list", &catalog); err != nil {
			log.Printf("レシピ一覧の取得に失敗: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "レシピ一覧の取得に失敗しました"})
			return
		}

		c.JSON(http.StatusOK, topIngredients(catalog, count))
	}
}

// topIngredients は食材の使用回数を集計し、上位n件の食材名を
// 使用回数の多い順に返す。使用回数が同じ食材はレシピ一覧での
// 初出順を保つ。
func topIngredients(catalog []recipe, n int) []string {
	counts := make(map[string]int)
	order := make([]string, 0)
	for _, r := range catalog {
		for _, ing := range r.Ingredients {
			if ing.Ingredient == "" {
				continue
			}
			if _, ok := counts[ing.Ingredient]; !ok {
				order = append(order, ing.Ingredient)
			}
			counts[ing.Ingredient]++
		}
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	if n > len(order) {
		n = len(order)
	}
	return order[:n]
}

// handleHealth は稼働確認に応答するハンドラを返す。
func (s *Server) handleHealth() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.String(http.StatusOK, "Hello from analytics API server on %s!\n", s.host)
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
