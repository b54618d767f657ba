package handler

import (
	"Storefront/config"
	"Storefront/middleware"
	"Storefront/pkg/context"
	"Storefront/pkg/jwt"
	"Storefront/pkg/response"
	"Storefront/service"
	"Storefront/types"

	"github.com/gin-gonic/gin"
)

// AdminOrder 后台订单管理
type AdminOrder struct {
	Config       *config.Config
	OrderService service.IOrderService
}

func (a *AdminOrder) RegisterRouter(r gin.IRouter) {
	admin := r.Group("/v1/admin/orders")
	admin.Use(middleware.Auth([]byte(a.Config.Jwt.Secret), jwt.RoleAdmin))
	admin.GET("", context.Wrap(a.List))
	admin.GET("/:id", context.Wrap(a.Get))
	admin.PATCH("/:id/status", context.Wrap(a.UpdateStatus))
	admin.PATCH("/:id/flags", context.Wrap(a.UpdateFlags))
}

func (a *AdminOrder) List(c *gin.Context) error {
	var req types.ListOrdersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		return badRequest(err)
	}
	resp, err := a.OrderService.ListOrders(c.Request.Context(), &req)
	if err != nil {
		return bizError(err)
	}
	response.Success(c, resp)
	return nil
}

func (a *AdminOrder) Get(c *gin.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	order, err := a.OrderService.GetOrder(c.Request.Context(), id)
	if err != nil {
		return bizError(err)
	}
	response.Success(c, order)
	return nil
}

func (a *AdminOrder) UpdateStatus(c *gin.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var req types.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return badRequest(err)
	}
	order, err := a.OrderService.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		return bizError(err)
	}
	response.Success(c, order)
	return nil
}

func (a *AdminOrder) UpdateFlags(c *gin.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var req types.UpdateOrderFlagsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return badRequest(err)
	}
	order, err := a.OrderService.MarkFlags(c.Request.Context(), id, &req)
	if err != nil {
		return bizError(err)
	}
	response.Success(c, order)
	return nil
}
