// analyticsサービスのエントリポイント。
// recipesサービスのレシピ一覧を集計し、使用頻度の高い食材の
// ランキングを提供する。
package main

import (
	"log"
	"os"

	"github.com/nao1215/cocktail/internal/analytics"
	"github.com/nao1215/cocktail/pkg/logging"
)

func main() {
	if err := logging.Setup(); err != nil {
		log.Fatalf("ログ設定の初期化に失敗: %v", err)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "1338"
	}

	server, err := analytics.NewServer(port)
	if err != nil {
		log.Fatalf("analyticsサーバーの初期化に失敗: %v", err)
	}

	log.Printf("analyticsサービスを起動します: :%s", port)
	if err := server.Run(); err != nil {
		log.Fatalf("analyticsサービスの起動に失敗: %v", err)
	}
}
