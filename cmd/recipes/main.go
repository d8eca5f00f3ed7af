// recipesサービスのエントリポイント。
// 起動時に外部ソースからカクテルレシピ一覧を取得し、シャッフルと
// 絞り込みを適用したレシピ一覧APIを提供する。
package main

import (
	"log"
	"os"

	"github.com/nao1215/cocktail/internal/recipes"
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

	server, err := recipes.NewServer(port)
	if err != nil {
		log.Fatalf("recipesサーバーの初期化に失敗: %v", err)
	}

	log.Printf("recipesサービスを起動します: :%s", port)
	if err := server.Run(); err != nil {
		log.Fatalf("recipesサービスの起動に失敗: %v", err)
	}
}
