// Package logging は環境変数によるログ設定の共通処理を提供する。
//
// 各サービスは起動時に Setup を呼び出し、環境変数 APP_DEBUG_LOGGING の
// 値に応じてデバッグログの有効/無効を切り替える。許容されない値が
// 設定されている場合はエラーを返し、呼び出し側はサービスを起動せず
// 終了する。
package logging

import (
	"fmt"
	"log"
	"os"

	"github.com/gin-gonic/gin"
)

// debugEnabled はデバッグログが有効かどうかを保持する。
// Setup で一度だけ設定し、以後は読み取りのみ。
var debugEnabled bool

// Setup は環境変数 APP_DEBUG_LOGGING を検証してログ設定を適用する。
// 許容される値は "enabled" と "disabled"（未設定時の既定値）のみ。
// デバッグログが有効な場合はGinもデバッグモードで動作させる。
func Setup() error {
	switch v := os.Getenv("APP_DEBUG_LOGGING"); v {
	case "enabled":
		debugEnabled = true
		gin.SetMode(gin.DebugMode)
		log.Print("デバッグログを有効にしました")
	case "", "disabled":
		debugEnabled = false
		gin.SetMode(gin.ReleaseMode)
	default:
		return fmt.Errorf("環境変数 APP_DEBUG_LOGGING の値は enabled か disabled でなければならない: %q", v)
	}
	return nil
}

// Enabled はデバッグログが有効かどうかを返す。
func Enabled() bool {
	return debugEnabled
}

// Debugf はデバッグログが有効な場合のみメッセージを出力する。
func Debugf(format string, v ...any) {
	if !debugEnabled {
		return
	}
	log.Printf("[DEBUG] "+format, v...)
}
