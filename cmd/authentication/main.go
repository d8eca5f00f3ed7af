// authenticationサービスのエントリポイント。
// ログイン画面の提供、署名付きトークンの発行とクッキーへの設定、
// トークンの検証APIを担当する。
package main

import (
	"log"
	"os"

	"github.com/nao1215/cocktail/internal/authentication"
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

	server, err := authentication.NewServer(port)
	if err != nil {
		log.Fatalf("authenticationサーバーの初期化に失敗: %v", err)
	}

	log.Printf("authenticationサービスを起動します: :%s", port)
	if err := server.Run(); err != nil {
		log.Fatalf("authenticationサービスの起動に失敗: %v", err)
	}
}
