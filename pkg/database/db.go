package database

import (
	"Storefront/config"
	"Storefront/models"
	"Storefront/pkg/log"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB 初始化数据库连接
func NewDB(conf *config.Config) *gorm.DB {
	level := logger.Warn
	if conf.Debug() {
		level = logger.Info
	}
	dsn := conf.MySQL.Dsn()
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(level),
	})
	if err != nil {
		log.L.Fatal("failed to connect database", zap.Error(err))
	}
	log.L.Info("connect database success")
	return db
}

// Migrate 建表或同步表结构
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Product{},
		&models.ProductColor{},
		&models.ProductSize{},
		&models.StockMovement{},
		&models.Cart{},
		&models.Order{},
		&models.OrderItem{},
	)
}
