package handler

import (
	"Storefront/config"
	"Storefront/middleware"
	"Storefront/pkg/context"
	"Storefront/pkg/log"
	"Storefront/pkg/response"
	"Storefront/service"
	"Storefront/types"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Order 前台下单（货到付款）
type Order struct {
	Config       *config.Config
	Redis        *redis.Client
	OrderService service.IOrderService
	CartService  service.ICartService
}

func (o *Order) RegisterRouter(r gin.IRouter) {
	limiter := middleware.NewRateLimiter(o.Redis, o.Config.Shop.RateLimit, "ratelimit:orders:")

	order := r.Group("/v1/orders")
	order.Use(middleware.OptionalAuth([]byte(o.Config.Jwt.Secret)), middleware.Session())
	order.POST("", limiter.Handler(), context.Wrap(o.Create))
}

func (o *Order) Create(c *gin.Context) error {
	var req types.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return badRequest(err)
	}

	userID, _ := context.GetUserID(c)
	order, err := o.OrderService.CreateOrder(c.Request.Context(), userID, &req)
	if err != nil {
		return bizError(err)
	}

	if req.ClearCart {
		id := service.Identity{UserID: userID, SessionID: context.GetSessionID(c)}
		// 订单已经落库，清空购物车失败只记日志
		if err := o.CartService.Clear(c.Request.Context(), id); err != nil {
			log.L.Warn("clear cart after order", zap.String("order_number", order.OrderNumber), zap.Error(err))
		}
	}

	response.Created(c, order)
	return nil
}
