package server

import (
	"Storefront/handler"
)

type Handlers struct {
	Health         *handler.Health
	Order          *handler.Order
	AdminOrder     *handler.AdminOrder
	Cart           *handler.Cart
	ProductHandler *handler.ProductHandler
	Dashboard      *handler.Dashboard
}
