package middleware

import (
	"strings"

	"Storefront/pkg/context"

	"github.com/gin-gonic/gin"
)

const SessionHeader = "X-Session-Id"

// Session 读取游客会话 id：优先 header，其次 query 参数 session_id
func Session() gin.HandlerFunc {
	return func(c *gin.Context) {
		sid := strings.TrimSpace(c.GetHeader(SessionHeader))
		if sid == "" {
			sid = strings.TrimSpace(c.Query("session_id"))
		}
		if sid != "" {
			c.Set(context.CtxSessionID, sid)
		}
		c.Next()
	}
}
