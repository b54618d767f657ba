package response

import (
	"net/http"

	"Storefront/pkg/log"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type BizError struct {
	Code int
	Msg  string
	// Data 返回给客户端的结构化详情，如可用库存
	Data any
}

func (e *BizError) Error() string {
	return e.Msg
}

func NewError(code int, msg string) *BizError {
	return &BizError{
		Code: code,
		Msg:  msg,
	}
}

func NewErrorWithData(code int, msg string, data any) *BizError {
	return &BizError{
		Code: code,
		Msg:  msg,
		Data: data,
	}
}

func Abort(c *gin.Context, httpStatus int, msg string) {
	c.AbortWithStatusJSON(httpStatus, Response{
		Code: httpStatus,
		Msg:  msg,
		Data: nil,
	})
}

// Recovery 捕获 panic，记录日志并返回 500
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		log.L.Error("panic recovered",
			zap.String("path", c.FullPath()),
			zap.Any("panic", recovered),
		)
		Abort(c, http.StatusInternalServerError, "internal server error")
	})
}
