package middleware

import (
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
)

// headerKeyProvidedBy は応答元を示す診断ヘッダーのキー。
const headerKeyProvidedBy = "X-Provided-By"

// HostString は応答元を人間が読める形式で表した文字列を返す。
// Kubernetes上で動作している場合（K8S_NODE_NAMEが設定されている場合）は
// "pod <ホスト名> on node <ノード名>"、それ以外は "host <ホスト名>" となる。
// APP_VERSIONが設定されている場合は " (app <バージョン>)" を末尾に付与する。
func HostString() string {
	hostname, err := os.Hostname()
	if err != nil {
		hostname = "unknown"
	}

	var host string
	if node := os.Getenv("K8S_NODE_NAME"); node != "" {
		host = fmt.Sprintf("pod %s on node %s", hostname, node)
	} else {
		host = fmt.Sprintf("host %s", hostname)
	}

	if version := os.Getenv("APP_VERSION"); version != "" {
		host += fmt.Sprintf(" (app %s)", version)
	}
	return host
}

// ProvidedBy は全レスポンスにX-Provided-Byヘッダーを付与するGinミドルウェアを返す。
// 負荷分散時にどのインスタンスが応答したかを確認するために使用する。
func ProvidedBy(host string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header(headerKeyProvidedBy, host)
		c.Next()
	}
}
