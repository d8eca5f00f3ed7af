package favorites

import (
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	_ "modernc.org/sqlite"

	"github.com/nao1215/cocktail/pkg/middleware"
)

// Server はfavoritesサービスのHTTPサーバー。
type Server struct {
	// router はGinのHTTPルーター。
	router *gin.Engine
	// port はサーバーのリッスンポート。
	port string
	// accessKey はAPIへのアクセスに必要な共有アクセスキー。
	accessKey string
	// store はお気に入りのSQLiteストア。
	store *store
	// host は診断ヘッダーに設定する応答元の表記。
	host string
}

// NewServer は新しいfavoritesサーバーを生成する。
// 環境変数APP_ACCESS_KEYは必須で、未設定の場合はエラーを返す。
// SQLiteデータベースの初期化とスキーマ作成を行う。
func NewServer(port string) (*Server, error) {
	accessKey := os.Getenv("APP_ACCESS_KEY")
	if accessKey == "" {
		return nil, fmt.Errorf("環境変数 APP_ACCESS_KEY が設定されていない")
	}

	dbPath := getEnvOr("APP_DATABASE_PATH", "/data/favorites.db")
	sqlDB, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("データベース接続に失敗: %w", err)
	}

	if err := initSchema(sqlDB); err != nil {
		return nil, fmt.Errorf("スキーマ初期化に失敗: %w", err)
	}

	return newServer(port, accessKey, sqlDB), nil
}

// newServer は初期化済みのデータベース接続からサーバーを組み立てる。
func newServer(port, accessKey string, sqlDB *sql.DB) *Server {
	router := gin.New()
	router.Use(middleware.Recovery())
	router.Use(gin.Logger())
	router.Use(middleware.RequestID())

	host := middleware.HostString()
	router.Use(middleware.ProvidedBy(host))

	s := &Server{
		router:    router,
		port:      port,
		accessKey: accessKey,
		store:     &store{db: sqlDB},
		host:      host,
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
	// アクセスキー必須のAPIエンドポイント
	api := s.router.Group("/api/favorites")
	api.Use(s.requireAccessKey())
	{
		// お気に入り一覧取得
		api.GET("/:user", s.handleList())
		// お気に入り追加
		api.POST("/:user", s.handleAdd())
	}

	// ヘルスチェック
	s.router.GET("/", s.handleHealth())
}

// requireAccessKey はX-Access-Keyヘッダーを検証するミドルウェアを返す。
// アクセスキーが一致しないリクエストは401で拒否する。
func (s *Server) requireAccessKey() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("X-Access-Key") != s.accessKey {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "アクセスキーが不正です"})
			return
		}
		c.Next()
	}
}

// handleList は利用者のお気に入り一覧取得を処理するハンドラを返す。
func (s *Server) handleList() gin.HandlerFunc {
	return func(c *gin.Context) {
		favorites, err := s.store.listFavorites(c.Request.Context(), c.Param("user"))
		if err != nil {
			log.Printf("お気に入り一覧取得エラー: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "お気に入り一覧の取得に失敗しました"})
			return
		}
		c.JSON(http.StatusOK, favorites)
	}
}

// handleAdd は利用者のお気に入り追加を処理するハンドラを返す。
// リクエストボディはドリンク名のJSON文字列。
func (s *Server) handleAdd() gin.HandlerFunc {
	return func(c *gin.Context) {
		var drink string
		if err := c.ShouldBindJSON(&drink); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("リクエストが不正です: %v", err)})
			return
		}

		if err := s.store.addFavorite(c.Request.Context(), c.Param("user"), drink); err != nil {
			log.Printf("お気に入り追加エラー: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "お気に入りの追加に失敗しました"})
			return
		}
		c.Status(http.StatusOK)
	}
}

// handleHealth は稼働確認に応答するハンドラを返す。
// データベースとの疎通も確認する。
func (s *Server) handleHealth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := s.store.ping(c.Request.Context()); err != nil {
			log.Printf("ヘルスチェックエラー: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "データベースに接続できません"})
			return
		}
		c.String(http.StatusOK, "Hello from favorites API server on %s!\n", s.host)
	}
}

// getEnvOr は環境変数を取得し、設定されていない場合はデフォルト値を返す。
func getEnvOr(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}
