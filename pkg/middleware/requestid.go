package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// headerKeyRequestID はリクエストIDを運搬するヘッダーのキー。
const headerKeyRequestID = "X-Request-ID"

// RequestID は各リクエストに一意なIDを採番するGinミドルウェアを返す。
// リクエストにX-Request-IDヘッダーが含まれる場合はその値を引き継ぎ、
// 含まれない場合はUUIDを新規に採番する。IDはレスポンスヘッダーにも設定する。
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(headerKeyRequestID)
		if id == "" {
			id = uuid.New().String()
		}
		c.Header(headerKeyRequestID, id)
		c.Next()
	}
}
