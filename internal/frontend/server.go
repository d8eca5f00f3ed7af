package frontend

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nao1215/cocktail/pkg/authgate"
	"github.com/nao1215/cocktail/pkg/httpclient"
	"github.com/nao1215/cocktail/pkg/middleware"
)

// Server はfrontendサービスのHTTPサーバー。
type Server struct {
	// router はGinのHTTPルーター。
	router *gin.Engine
	// port はサーバーのリッスンポート。
	port string
	// gate はリクエストの認証状態を解決する認証ゲート。
	gate *authgate.Gate
	// aggregator は各バックエンドサービスからページ内容を合成する。
	aggregator *aggregator
	// host は診断ヘッダーに設定する応答元の表記。
	host string
}

// NewServer は新しいfrontendサーバーを生成する。
// 環境変数APP_RECIPES_URLは必須で、設定の組み合わせが不正な場合は
// エラーを返す。
func NewServer(port string) (*Server, error) {
	cfg, err := newConfigFromEnv()
	if err != nil {
		return nil, err
	}
	return newServer(port, cfg), nil
}

// newServer は検証済みの設定からサーバーを組み立てる。
func newServer(port string, cfg config) *Server {
	router := gin.New()
	router.Use(middleware.Recovery())
	router.Use(gin.Logger())
	router.Use(middleware.RequestID())

	host := middleware.HostString()
	router.Use(middleware.ProvidedBy(host))

	s := &Server{
		router:     router,
		port:       port,
		gate:       newGate(cfg),
		aggregator: newAggregator(cfg),
		host:       host,
	}
	s.setupRoutes()
	return s
}

// newGate は設定に応じた認証ゲートを構築する。
// 認証サービスのURLが未設定の場合、認証は無効になる。
func newGate(cfg config) *authgate.Gate {
	if cfg.authenticationURL == "" {
		return authgate.NewDisabled()
	}
	checker := authgate.RemoteChecker(httpclient.New(cfg.authenticationURL))
	return authgate.New(cfg.authenticationRedirectURL, checker)
}

// Run はHTTPサーバーを起動する。
func (s *Server) Run() error {
	return s.router.Run(fmt.Sprintf(":%s", s.port))
}

// setupRoutes はAPIルーティングを設定する。
func (s *Server) setupRoutes() {
	// 認証ゲートを通過したリクエストのみに応答するエンドポイント
	gui := s.router.Group("/gui")
	{
		// GUIページ取得
		gui.GET("", s.handleGUI())
		// お気に入り追加
		gui.GET("/add_favorite/:drink", s.handleAddFavorite())
	}

	// ヘルスチェック
	s.router.GET("/", s.handleHealth())
}

// proceed は認証ゲートの決定を処理し、リクエストを続行してよい場合に
// trueを返す。リダイレクトとエラーの応答はここで書き込む。
func (s *Server) proceed(c *gin.Context, decision authgate.Decision) bool {
	switch decision.Action {
	case authgate.ActionRedirect:
		c.Redirect(http.StatusFound, decision.Target)
		return false
	case authgate.ActionFail:
		log.Printf("認証ゲートエラー: %v", decision.Reason)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "認証トークンの検証に失敗しました"})
		return false
	default:
		return true
	}
}

// handleGUI はGUIページの合成を処理するハンドラを返す。
func (s *Server) handleGUI() gin.HandlerFunc {
	return func(c *gin.Context) {
		decision := s.gate.Resolve(c.Request.Context(), c.Request)
		if !s.proceed(c, decision) {
			return
		}

		page, err := s.aggregator.composePage(c.Request.Context(), decision.Identity)
		if err != nil {
			log.Printf("ページ合成エラー: %v", err)
			c.JSON(http.StatusBadGateway, gin.H{"error": "バックエンドサービスからのデータ取得に失敗しました"})
			return
		}
		c.JSON(http.StatusOK, page)
	}
}

// handleAddFavorite はお気に入り追加を処理するハンドラを返す。
// 追加後は最新の内容を取得し直すよう、GUIページへリダイレクトする。
func (s *Server) handleAddFavorite() gin.HandlerFunc {
	return func(c *gin.Context) {
		decision := s.gate.Resolve(c.Request.Context(), c.Request)
		if !s.proceed(c, decision) {
			return
		}

		if err := s.aggregator.addFavorite(c.Request.Context(), decision.Identity, c.Param("drink")); err != nil {
			log.Printf("お気に入り追加エラー: %v", err)
			c.JSON(http.StatusBadGateway, gin.H{"error": "お気に入りの追加に失敗しました"})
			return
		}
		c.Redirect(http.StatusFound, "/gui")
	}
}

// handleHealth は稼働確認に応答するハンドラを返す。
func (s *Server) handleHealth() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.String(http.StatusOK, "Hello from frontend server on %s!\n", s.host)
	}
}
