package authentication

import (
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/nao1215/cocktail/pkg/authgate"
	"github.com/nao1215/cocktail/pkg/logging"
	"github.com/nao1215/cocktail/pkg/middleware"
	"github.com/nao1215/cocktail/pkg/token"
)

// users はログイン画面で選択可能な利用者。デモ用の固定リスト。
var users = []string{"alice", "bob", "charlie"}

// Server はauthenticationサービスのHTTPサーバー。
type Server struct {
	// router はGinのHTTPルーター。
	router *gin.Engine
	// port はサーバーのリッスンポート。
	port string
	// signingSecret はトークン署名用の共有シークレット。
	signingSecret string
	// host は診断ヘッダーに設定する応答元の表記。
	host string
}

// NewServer は新しいauthenticationサーバーを生成する。
// 環境変数APP_SIGNING_SECRETは必須で、未設定の場合はエラーを返す。
func NewServer(port string) (*Server, error) {
	signingSecret := os.Getenv("APP_SIGNING_SECRET")
	if signingSecret == "" {
		return nil, fmt.Errorf("環境変数 APP_SIGNING_SECRET が設定されていない")
	}
	return newServer(port, signingSecret), nil
}

// newServer は署名用シークレットからサーバーを組み立てる。
func newServer(port, signingSecret string) *Server {
	router := gin.New()
	router.Use(middleware.Recovery())
	router.Use(gin.Logger())
	router.Use(middleware.RequestID())

	host := middleware.HostString()
	router.Use(middleware.ProvidedBy(host))

	s := &Server{
		router:        router,
		port:          port,
		signingSecret: signingSecret,
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
	// ログイン画面とトークン発行
	s.router.GET("/login", s.handleLogin())

	// トークン検証
	s.router.GET("/api/check/:token", s.handleCheck())

	// ヘルスチェック
	s.router.GET("/healthz", s.handleHealth())
}

// userChoice はログイン画面で選択可能な利用者1人分のJSON構造。
type userChoice struct {
	// Name は利用者名。
	Name string `json:"name"`
	// TargetURL はこの利用者としてログインするためのURL。
	TargetURL string `json:"target_url"`
}

// handleLogin はログイン画面を処理するハンドラを返す。
// userクエリが指定された場合はトークンを発行してクッキーに設定し、
// redirect_urlへリダイレクトする。未指定の場合は選択可能な利用者の
// 一覧を返す。
func (s *Server) handleLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		redirectURL := c.Query("redirect_url")
		if redirectURL == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "クエリredirect_urlは必須です"})
			return
		}

		user := c.Query("user")
		if user == "" {
			choices := make([]userChoice, 0, len(users))
			for _, u := range users {
				query := url.Values{"user": {u}, "redirect_url": {redirectURL}}
				choices = append(choices, userChoice{
					Name:      u,
					TargetURL: "/login?" + query.Encode(),
				})
			}
			c.JSON(http.StatusOK, choices)
			return
		}

		tokenString, maxAge, err := authgate.IssueForSelectedUser(user, s.signingSecret)
		if err != nil {
			log.Printf("トークン発行エラー: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "トークンの発行に失敗しました"})
			return
		}
		logging.Debugf("利用者%sのトークンを発行", user)

		c.SetCookie(authgate.CookieName, tokenString, maxAge, "/", "", false, false)
		c.Redirect(http.StatusFound, redirectURL)
	}
}

// handleCheck はトークンの検証を処理するハンドラを返す。
// 検証に失敗した場合は原因（形式不正・署名不正・期限切れ）を外部に
// 開示せず、空文字列を返す。
func (s *Server) handleCheck() gin.HandlerFunc {
	return func(c *gin.Context) {
		subject, err := token.Verify(c.Param("token"), s.signingSecret)
		if err != nil {
			logging.Debugf("トークンの検証に失敗: %v", err)
			c.JSON(http.StatusOK, "")
			return
		}
		c.JSON(http.StatusOK, subject)
	}
}

// handleHealth は稼働確認に応答するハンドラを返す。
func (s *Server) handleHealth() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.String(http.StatusOK, "Hello from authentication server on %s!\n", s.host)
	}
}
