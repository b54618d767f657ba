package handler

import (
	"net/http"

	"Storefront/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Health struct {
	DB    *gorm.DB
	Redis *redis.Client
}

func (h *Health) RegisterRouter(r gin.IRouter) {
	r.GET("/healthz", h.Check)
}

func (h *Health) Check(c *gin.Context) {
	ctx := c.Request.Context()
	sqlDB, err := h.DB.DB()
	if err == nil {
		err = sqlDB.PingContext(ctx)
	}
	if err != nil {
		response.Abort(c, http.StatusServiceUnavailable, "mysql: "+err.Error())
		return
	}
	if err := h.Redis.Ping(ctx).Err(); err != nil {
		response.Abort(c, http.StatusServiceUnavailable, "redis: "+err.Error())
		return
	}
	response.Success(c, gin.H{"status": "ok"})
}
