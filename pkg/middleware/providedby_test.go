package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

// TestHostString はHostString関数を検証する。
// 環境変数を操作するため並列実行しない。
func TestHostString(t *testing.T) {
	hostname, err := os.Hostname()
	if err != nil {
		t.Fatalf("ホスト名の取得に失敗: %v", err)
	}

	t.Run("Kubernetes外ではhost形式となること", func(t *testing.T) {
		t.Setenv("K8S_NODE_NAME", "")
		t.Setenv("APP_VERSION", "")

		want := fmt.Sprintf("host %s", hostname)
		if got := HostString(); got != want {
			t.Errorf("HostString() = %q, want %q", got, want)
		}
	})

	t.Run("K8S_NODE_NAMEが設定されている場合はpod形式となること", func(t *testing.T) {
		t.Setenv("K8S_NODE_NAME", "worker-1")
		t.Setenv("APP_VERSION", "")

		want := fmt.Sprintf("pod %s on node worker-1", hostname)
		if got := HostString(); got != want {
			t.Errorf("HostString() = %q, want %q", got, want)
		}
	})

	t.Run("APP_VERSIONが設定されている場合はバージョンが付与されること", func(t *testing.T) {
		t.Setenv("K8S_NODE_NAME", "worker-1")
		t.Setenv("APP_VERSION", "1.2.3")

		want := fmt.Sprintf("pod %s on node worker-1 (app 1.2.3)", hostname)
		if got := HostString(); got != want {
			t.Errorf("HostString() = %q, want %q", got, want)
		}
	})

	t.Run("Kubernetes外でもバージョンが付与されること", func(t *testing.T) {
		t.Setenv("K8S_NODE_NAME", "")
		t.Setenv("APP_VERSION", "2.0.0")

		if got := HostString(); !strings.HasSuffix(got, " (app 2.0.0)") {
			t.Errorf("HostString() = %q, want suffix %q", got, " (app 2.0.0)")
		}
	})
}

// TestProvidedBy はProvidedByミドルウェアを検証する。
func TestProvidedBy(t *testing.T) {
	t.Parallel()

	t.Run("全レスポンスにX-Provided-Byヘッダーが付与されること", func(t *testing.T) {
		t.Parallel()

		router := gin.New()
		router.Use(ProvidedBy("pod frontend-abc on node worker-1"))
		router.GET("/healthz", func(c *gin.Context) {
			c.String(http.StatusOK, "ok")
		})

		req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		if got := w.Header().Get("X-Provided-By"); got != "pod frontend-abc on node worker-1" {
			t.Errorf("X-Provided-By = %q, want %q", got, "pod frontend-abc on node worker-1")
		}
	})

	t.Run("パニックで500が返る場合もヘッダーが付与されること", func(t *testing.T) {
		t.Parallel()

		router := gin.New()
		router.Use(Recovery(), ProvidedBy("host test-machine"))
		router.GET("/panic", func(_ *gin.Context) {
			panic("テスト用パニック")
		})

		req := httptest.NewRequest(http.MethodGet, "/panic", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		if w.Code != http.StatusInternalServerError {
			t.Errorf("ステータスコード = %d, want %d", w.Code, http.StatusInternalServerError)
		}
		if got := w.Header().Get("X-Provided-By"); got != "host test-machine" {
			t.Errorf("X-Provided-By = %q, want %q", got, "host test-machine")
		}
	})
}
