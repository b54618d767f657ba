package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type Response struct {
	Code    int    `json:"code"`
	Success bool   `json:"success"`
	Msg     string `json:"msg"`
	Data    any    `json:"data,omitempty"`
}

func Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, Response{
		Code:    0,
		Success: true,
		Msg:     "ok",
		Data:    data,
	})
}

func Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, Response{
		Code:    0,
		Success: true,
		Msg:     "created",
		Data:    data,
	})
}

func Fail(c *gin.Context, code int, msg string, data any) {
	c.JSON(code, Response{
		Code: code,
		Msg:  msg,
		Data: data,
	})
}
