package handler

import (
	"Storefront/config"
	"Storefront/middleware"
	"Storefront/pkg/context"
	"Storefront/pkg/jwt"
	"Storefront/pkg/response"
	"Storefront/service"

	"github.com/gin-gonic/gin"
)

type Dashboard struct {
	Config           *config.Config
	DashboardService service.IDashboardService
}

func (d *Dashboard) RegisterRouter(r gin.IRouter) {
	dashboard := r.Group("/v1/admin/dashboard")
	dashboard.Use(middleware.Auth([]byte(d.Config.Jwt.Secret), jwt.RoleAdmin))
	dashboard.GET("", context.Wrap(d.Summary))
}

// Summary ?period=7d|30d|365d
func (d *Dashboard) Summary(c *gin.Context) error {
	summary, err := d.DashboardService.Summary(c.Request.Context(), c.Query("period"))
	if err != nil {
		return bizError(err)
	}
	response.Success(c, summary)
	return nil
}
