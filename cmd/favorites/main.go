// favoritesサービスのエントリポイント。
// 利用者ごとのお気に入りドリンクをSQLiteデータベースで管理する。
// アクセスキーを持つサービスからのみ呼び出せる内部APIを提供する。
package main

import (
	"log"
	"os"

	"github.com/nao1215/cocktail/internal/favorites"
	"github.com/nao1215/cocktail/pkg/logging"
)

func main() {
	if err := logging.Setup(); err != nil {
		log.Fatalf("ログ設定の初期化に失敗: %v", err)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}

	server, err := favorites.NewServer(port)
	if err != nil {
		log.Fatalf("favoritesサーバーの初期化に失敗: %v", err)
	}

	log.Printf("favoritesサービスを起動します: :%s", port)
	if err := server.Run(); err != nil {
		log.Fatalf("favoritesサービスの起動に失敗: %v", err)
	}
}
