package middleware

import (
	"log"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
)

// Recovery はパニックからの回復を行うGinミドルウェアを返す。
// パニックの内容はリクエストIDとスタックトレースを添えてログに記録し、
// レスポンスには内部情報を含めない。RequestIDより外側に登録すること。
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				id := c.Writer.Header().Get(headerKeyRequestID)
				if id == "" {
					id = "-"
				}
				log.Printf("[PANIC] %s %s (request-id=%s): %v\n%s",
					c.Request.Method, c.Request.URL.Path, id, r, debug.Stack())
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error": "内部サーバーエラーが発生しました",
				})
			}
		}()
		c.Next()
	}
}
