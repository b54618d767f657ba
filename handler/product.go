package handler

import (
	"strconv"

	"Storefront/config"
	"Storefront/middleware"
	"Storefront/pkg/context"
	"Storefront/pkg/jwt"
	"Storefront/pkg/response"
	"Storefront/service"

	"github.com/gin-gonic/gin"
)

type ProductHandler struct {
	Config         *config.Config
	CatalogService service.ICatalogService
}

func (p *ProductHandler) RegisterRouter(r gin.IRouter) {
	products := r.Group("/v1/products")
	products.GET("/:id", context.Wrap(p.GetProduct))

	admin := r.Group("/v1/admin/products")
	admin.Use(middleware.Auth([]byte(p.Config.Jwt.Secret), jwt.RoleAdmin))
	admin.GET("/low-stock", context.Wrap(p.LowStock)) // 低库存预警
}

func (p *ProductHandler) GetProduct(c *gin.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	view, err := p.CatalogService.GetProduct(c.Request.Context(), id)
	if err != nil {
		return bizError(err)
	}
	response.Success(c, view)
	return nil
}

func (p *ProductHandler) LowStock(c *gin.Context) error {
	limit, _ := strconv.Atoi(c.Query("limit"))
	items, err := p.CatalogService.ListLowStock(c.Request.Context(), limit)
	if err != nil {
		return bizError(err)
	}
	response.Success(c, items)
	return nil
}
