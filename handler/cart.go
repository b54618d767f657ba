package handler

import (
	"Storefront/config"
	"Storefront/middleware"
	"Storefront/pkg/context"
	"Storefront/pkg/response"
	"Storefront/service"
	"Storefront/types"

	"github.com/gin-gonic/gin"
)

// Cart 购物车，登录用户按 user_id，游客按 X-Session-Id
type Cart struct {
	Config      *config.Config
	CartService service.ICartService
}

func (h *Cart) RegisterRouter(r gin.IRouter) {
	cart := r.Group("/v1/cart")
	cart.Use(middleware.OptionalAuth([]byte(h.Config.Jwt.Secret)), middleware.Session())
	cart.GET("", context.Wrap(h.Get))
	cart.DELETE("", context.Wrap(h.Clear))
	cart.POST("/items", context.Wrap(h.AddItem))
	cart.PATCH("/items/:itemId", context.Wrap(h.UpdateItem))
	cart.DELETE("/items/:itemId", context.Wrap(h.RemoveItem))
}

func identity(c *gin.Context) service.Identity {
	uid, _ := context.GetUserID(c)
	return service.Identity{UserID: uid, SessionID: context.GetSessionID(c)}
}

// Get GET /v1/cart
// 空购物车 subtotal/shipping/total 均返回 0，运费只对非空购物车计算
func (h *Cart) Get(c *gin.Context) error {
	view, err := h.CartService.GetCart(c.Request.Context(), identity(c))
	if err != nil {
		return bizError(err)
	}
	response.Success(c, view)
	return nil
}

func (h *Cart) AddItem(c *gin.Context) error {
	var req types.AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return badRequest(err)
	}
	view, err := h.CartService.AddItem(c.Request.Context(), identity(c), &req)
	if err != nil {
		return bizError(err)
	}
	response.Success(c, view)
	return nil
}

func (h *Cart) UpdateItem(c *gin.Context) error {
	var req types.UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return badRequest(err)
	}
	view, err := h.CartService.UpdateItem(c.Request.Context(), identity(c), c.Param("itemId"), req.Quantity)
	if err != nil {
		return bizError(err)
	}
	response.Success(c, view)
	return nil
}

func (h *Cart) RemoveItem(c *gin.Context) error {
	view, err := h.CartService.UpdateItem(c.Request.Context(), identity(c), c.Param("itemId"), 0)
	if err != nil {
		return bizError(err)
	}
	response.Success(c, view)
	return nil
}

func (h *Cart) Clear(c *gin.Context) error {
	if err := h.CartService.Clear(c.Request.Context(), identity(c)); err != nil {
		return bizError(err)
	}
	response.Success(c, nil)
	return nil
}
