package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"Storefront/pkg/response"
	"Storefront/service"

	"github.com/gin-gonic/gin"
)

// bizError 把 service 层的类型化错误翻译成带 HTTP 状态码的业务错误，其余原样返回（500）
func bizError(err error) error {
	if err == nil {
		return nil
	}

	prefix := ""
	var ie *service.ItemError
	if errors.As(err, &ie) {
		prefix = fmt.Sprintf("item %d: ", ie.Index)
	}

	var (
		ve  *service.ValidationError
		nfe *service.NotFoundError
		ise *service.InsufficientStockError
		ite *service.InvalidTransitionError
	)
	switch {
	case errors.As(err, &ve):
		return response.NewErrorWithData(http.StatusBadRequest, prefix+ve.Error(), itemData(ie, nil))
	case errors.As(err, &nfe):
		return response.NewErrorWithData(http.StatusNotFound, prefix+nfe.Error(), itemData(ie, nil))
	case errors.As(err, &ise):
		return response.NewErrorWithData(http.StatusConflict, prefix+ise.Error(), itemData(ie, ise))
	case errors.As(err, &ite):
		return response.NewErrorWithData(http.StatusConflict, ite.Error(), ite)
	case errors.Is(err, service.ErrConcurrentUpdate):
		return response.NewError(http.StatusConflict, err.Error())
	}
	return err
}

type itemDetail struct {
	Index  int `json:"index"`
	Detail any `json:"detail,omitempty"`
}

func itemData(ie *service.ItemError, detail any) any {
	if ie == nil {
		return detail
	}
	return itemDetail{Index: ie.Index, Detail: detail}
}

func badRequest(err error) error {
	return response.NewError(http.StatusBadRequest, err.Error())
}

func paramID(c *gin.Context, name string) (uint64, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, response.NewError(http.StatusBadRequest, "invalid "+name)
	}
	return id, nil
}
