//go:build wireinject
// +build wireinject

package main

import (
	"Storefront/config"
	"Storefront/dao"
	"Storefront/dao/cache"
	"Storefront/handler"
	"Storefront/pkg/client"
	"Storefront/pkg/database"
	"Storefront/pkg/rocketmq"
	"Storefront/pkg/server"
	"Storefront/service"

	"github.com/google/wire"
)

var baseSet = wire.NewSet(
	database.NewDB,
	client.NewRedisClient,
	config.ProvideShopConfig,
	config.ProvideRocketMQConfig,
	rocketmq.NewPublisher,
	wire.Bind(new(service.EventPublisher), new(*rocketmq.Publisher)),
	cache.ProviderSet,
	dao.ProviderSet,
	service.ProviderSet,
)

func InitServer(cfg *config.Config) *server.AppProvider {
	wire.Build(
		baseSet,
		server.NewGinEngine,
		wire.Struct(new(handler.Health), "*"),
		wire.Struct(new(handler.Order), "*"),
		wire.Struct(new(handler.AdminOrder), "*"),
		wire.Struct(new(handler.Cart), "*"),
		wire.Struct(new(handler.ProductHandler), "*"),
		wire.Struct(new(handler.Dashboard), "*"),
		wire.Struct(new(server.Handlers), "*"),
		wire.Struct(new(server.AppProvider), "*"),
	)
	return nil
}

func InitTasks(cfg *config.Config) *Tasks {
	wire.Build(
		database.NewDB,
		config.ProvideShopConfig,
		dao.ProviderSet,
		wire.Struct(new(service.CatalogService), "*"),
		wire.Struct(new(service.CartService), "*"),
		wire.Bind(new(service.ICartService), new(*service.CartService)),
		wire.Struct(new(Tasks), "*"),
	)
	return nil
}
