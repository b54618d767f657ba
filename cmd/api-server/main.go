package main

import (
	"Storefront/config"
	"Storefront/pkg/database"
	"Storefront/pkg/jwt"
	"Storefront/pkg/log"
	"Storefront/pkg/server"
	"Storefront/pkg/snowflake"
	"Storefront/service"
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Tasks 运维命令依赖
type Tasks struct {
	DB   *gorm.DB
	Cart service.ICartService
}

func main() {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}
	path := fmt.Sprintf("configs/config.%s.yaml", env)
	cfg := config.New(path)

	if err := snowflake.SetNode(cfg.App.NodeID); err != nil {
		log.L.Fatal("invalid app.node_id", zap.Int64("node_id", cfg.App.NodeID), zap.Error(err))
	}

	cliApp := &cli.App{
		Name: "api-server",
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "start http server",
				Action: func(ctx *cli.Context) error {
					return server.Run(ctx, InitServer(cfg))
				},
			},
			{
				Name:  "migrate",
				Usage: "create or update tables",
				Action: func(ctx *cli.Context) error {
					tasks := InitTasks(cfg)
					if err := database.Migrate(tasks.DB); err != nil {
						return err
					}
					log.L.Info("migrate done")
					return nil
				},
			},
			{
				Name:  "purge-carts",
				Usage: "delete guest carts idle longer than shop.guest_cart_ttl",
				Action: func(ctx *cli.Context) error {
					tasks := InitTasks(cfg)
					n, err := tasks.Cart.PurgeExpired(ctx.Context)
					if err != nil {
						return err
					}
					log.L.Info("purge carts done", zap.Int64("deleted", n), zap.Duration("ttl", cfg.Shop.GuestCartTTL))
					return nil
				},
			},
			{
				Name:  "issue-token",
				Usage: "print an access token, e.g. for the admin console",
				Flags: []cli.Flag{
					&cli.Uint64Flag{Name: "user", Required: true},
					&cli.StringFlag{Name: "role", Value: jwt.RoleAdmin},
					&cli.DurationFlag{Name: "ttl", Value: 24 * time.Hour},
				},
				Action: func(ctx *cli.Context) error {
					token, err := jwt.GenerateToken([]byte(cfg.Jwt.Secret), ctx.Uint64("user"), ctx.String("role"), jwt.TypeAccess, ctx.Duration("ttl"))
					if err != nil {
						return err
					}
					fmt.Println(token)
					return nil
				},
			},
		},
	}
	if err := cliApp.Run(os.Args); err != nil {
		log.L.Fatal("command failed", zap.Error(err))
	}
}
