package context

import (
	"Storefront/pkg/log"
	"Storefront/pkg/response"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	CtxUserID    = "user_id"
	CtxRole      = "role"
	CtxSessionID = "session_id"
)

type HandlerFunc func(*gin.Context) error

func Wrap(h func(*gin.Context) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := h(c); err != nil {

			// 如果已经写过响应，直接返回
			if c.Writer.Written() {
				return
			}
			// 业务错误
			var be *response.BizError
			if errors.As(err, &be) {
				response.Fail(c, be.Code, be.Msg, be.Data)
				return
			}
			log.L.Error("request failed",
				zap.String("path", c.FullPath()),
				zap.Error(err),
			)
			response.Fail(c, http.StatusInternalServerError, "internal server error", nil)
		}
	}
}

// GetUserID 已登录返回用户 id，匿名请求返回 false
func GetUserID(c *gin.Context) (uint64, bool) {
	v, ok := c.Get(CtxUserID)
	if !ok {
		return 0, false
	}

	uid, ok := v.(uint64)
	if !ok || uid == 0 {
		return 0, false
	}

	return uid, true
}

func GetSessionID(c *gin.Context) string {
	return c.GetString(CtxSessionID)
}
