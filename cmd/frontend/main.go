// frontendサービスのエントリポイント。
// 認証ゲートを通過したリクエストに対して、recipes・analytics・favoritesの
// 各サービスから取得したデータを1つのGUIページに合成して返す。
package main

import (
	"log"
	"os"

	"github.com/nao1215/cocktail/internal/frontend"
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

	server, err := frontend.NewServer(port)
	if err != nil {
		log.Fatalf("frontendサーバーの初期化に失敗: %v", err)
	}

	log.Printf("frontendサービスを起動します: :%s", port)
	if err := server.Run(); err != nil {
		log.Fatalf("frontendサービスの起動に失敗: %v", err)
	}
}
