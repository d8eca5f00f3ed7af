package logging

import (
	"bytes"
	"log"
	"os"
	"strings"
	"testing"
)

// TestSetup はSetup関数による環境変数の検証を確認する。
// 環境変数とパッケージ変数を書き換えるため、並行実行しない。
func TestSetup(t *testing.T) {
	t.Run("未設定の場合はデバッグログが無効になること", func(t *testing.T) {
		t.Setenv("APP_DEBUG_LOGGING", "")

		if err := Setup(); err != nil {
			t.Fatalf("Setup()でエラーが発生: %v", err)
		}
		if Enabled() {
			t.Error("デバッグログが有効になっている")
		}
	})

	t.Run("disabledの場合はデバッグログが無効になること", func(t *testing.T) {
		t.Setenv("APP_DEBUG_LOGGING", "disabled")

		if err := Setup(); err != nil {
			t.Fatalf("Setup()でエラーが発生: %v", err)
		}
		if Enabled() {
			t.Error("デバッグログが有効になっている")
		}
	})

	t.Run("enabledの場合はデバッグログが有効になること", func(t *testing.T) {
		t.Setenv("APP_DEBUG_LOGGING", "enabled")

		if err := Setup(); err != nil {
			t.Fatalf("Setup()でエラーが発生: %v", err)
		}
		if !Enabled() {
			t.Error("デバッグログが無効のまま")
		}
	})

	t.Run("許容されない値の場合はエラーを返すこと", func(t *testing.T) {
		t.Setenv("APP_DEBUG_LOGGING", "verbose")

		if err := Setup(); err == nil {
			t.Error("Setup()がエラーを返さなかった")
		}
	})
}

// TestDebugf はデバッグログの出力制御を確認する。
func TestDebugf(t *testing.T) {
	t.Run("有効な場合のみメッセージが出力されること", func(t *testing.T) {
		var buf bytes.Buffer
		log.SetOutput(&buf)
		t.Cleanup(func() { log.SetOutput(os.Stderr) })

		t.Setenv("APP_DEBUG_LOGGING", "enabled")
		if err := Setup(); err != nil {
			t.Fatalf("Setup()でエラーが発生: %v", err)
		}

		buf.Reset()
		Debugf("テストメッセージ: %d", 42)

		if !strings.Contains(buf.String(), "テストメッセージ: 42") {
			t.Errorf("デバッグメッセージが出力されていない: %q", buf.String())
		}
	})

	t.Run("無効な場合はメッセージが出力されないこと", func(t *testing.T) {
		var buf bytes.Buffer
		log.SetOutput(&buf)
		t.Cleanup(func() { log.SetOutput(os.Stderr) })

		t.Setenv("APP_DEBUG_LOGGING", "disabled")
		if err := Setup(); err != nil {
			t.Fatalf("Setup()でエラーが発生: %v", err)
		}

		buf.Reset()
		Debugf("出力されないメッセージ")

		if buf.Len() != 0 {
			t.Errorf("無効時にデバッグメッセージが出力された: %q", buf.String())
		}
	})
}
