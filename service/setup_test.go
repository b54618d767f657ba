package service

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"Storefront/config"
	"Storefront/dao"
	"Storefront/dao/cache"
	"Storefront/models"
	"Storefront/pkg/database"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type publishedEvent struct {
	key  string
	body []byte
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []publishedEvent
}

func (p *recordingPublisher) Publish(_ context.Context, key string, body []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, publishedEvent{key: key, body: body})
	return nil
}

func (p *recordingPublisher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.events)
}

type testEnv struct {
	db       *gorm.DB
	shop     *config.Shop
	products *dao.Product
	catalog  *CatalogService
	carts    *CartService
	orders   *OrderService
	events   *recordingPublisher
	now      time.Time
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// 单连接：事务串行执行，内存库在连接关闭前一直存在
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.Migrate(db))
	return db
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := newTestDB(t)
	mr := miniredis.RunT(t)
	rds := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rds.Close() })

	env := &testEnv{
		db:     db,
		shop:   config.DefaultShop(),
		events: &recordingPublisher{},
		now:    time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC),
	}
	clock := func() time.Time { return env.now }

	env.products = dao.NewProduct(db)
	env.catalog = &CatalogService{ProductDAO: env.products}
	env.carts = &CartService{
		Shop:       env.shop,
		CartDAO:    dao.NewCart(db),
		ProductDAO: env.products,
		Catalog:    env.catalog,
		Now:        clock,
	}
	env.orders = &OrderService{
		DB:        db,
		Shop:      env.shop,
		OrderDAO:  dao.NewOrder(db),
		Catalog:   env.catalog,
		Sequencer: cache.NewOrderSequence(rds),
		Events:    env.events,
		Now:       clock,
	}
	return env
}

// seedProduct 创建一个单颜色商品，sizes 为 尺码 -> 库存
func (e *testEnv) seedProduct(t *testing.T, name, price, color string, sizes map[string]int) *models.Product {
	t.Helper()
	ctx := context.Background()

	product := &models.Product{
		Name:     name,
		Price:    decimal.RequireFromString(price),
		Category: "apparel",
		IsActive: true,
	}
	require.NoError(t, e.products.Create(ctx, product))

	c := &models.ProductColor{ProductID: product.ID, Name: color, HexCode: "#000000", ImageUrl: "https://cdn.example.com/" + color + ".jpg"}
	require.NoError(t, e.db.Create(c).Error)
	for label, stock := range sizes {
		require.NoError(t, e.db.Create(&models.ProductSize{
			ProductID:    product.ID,
			ColorID:      c.ID,
			Label:        label,
			Stock:        stock,
			MinThreshold: 2,
		}).Error)
	}

	p, err := e.products.FindProduct(ctx, product.ID)
	require.NoError(t, err)
	return p
}

func (e *testEnv) stock(t *testing.T, productID uint64, color, size string) int {
	t.Helper()
	v, err := e.catalog.FindVariant(context.Background(), productID, color, size)
	require.NoError(t, err)
	return v.Size.Stock
}

func (e *testEnv) setActive(t *testing.T, productID uint64, active bool) {
	t.Helper()
	require.NoError(t, e.db.Model(&models.Product{}).Where("id = ?", productID).Update("is_active", active).Error)
}
