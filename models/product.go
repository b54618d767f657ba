package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product 商品，库存挂在 颜色 -> 尺码 两级规格上
type Product struct {
	ID          uint64              `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	Name        string              `gorm:"size:255;not null;column:name" json:"name"`
	Description string              `gorm:"type:text;column:description" json:"description"`
	Price       decimal.Decimal     `gorm:"type:decimal(12,2);not null;column:price" json:"price"`
	Category    string              `gorm:"size:64;index:idx_products_category;column:category" json:"category"`
	IsActive    bool                `gorm:"not null;index:idx_products_active;column:is_active" json:"is_active"` // false = 下架，商品从不物理删除
	IsOnSale    bool                `gorm:"not null;column:is_on_sale" json:"is_on_sale"`
	SalePrice   decimal.NullDecimal `gorm:"type:decimal(12,2);column:sale_price" json:"sale_price"`
	Colors      []ProductColor      `gorm:"foreignKey:ProductID" json:"colors"`
	CreatedAt   time.Time           `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time           `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Product) TableName() string {
	return "products"
}

// EffectivePrice 促销中且促销价大于 0 时取促销价，否则取原价
func (p *Product) EffectivePrice() decimal.Decimal {
	if p.IsOnSale && p.SalePrice.Valid && p.SalePrice.Decimal.IsPositive() {
		return p.SalePrice.Decimal
	}
	return p.Price
}

// Color 按名称查找颜色规格
func (p *Product) Color(name string) *ProductColor {
	for i := range p.Colors {
		if p.Colors[i].Name == name {
			return &p.Colors[i]
		}
	}
	return nil
}

// TotalStock 所有颜色所有尺码的库存之和
func (p *Product) TotalStock() int {
	total := 0
	for _, c := range p.Colors {
		for _, s := range c.Sizes {
			total += s.Stock
		}
	}
	return total
}

type ProductColor struct {
	ID        uint64        `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	ProductID uint64        `gorm:"not null;uniqueIndex:idx_product_color_name;column:product_id" json:"product_id"`
	Name      string        `gorm:"size:64;not null;uniqueIndex:idx_product_color_name;column:name" json:"name"`
	HexCode   string        `gorm:"size:16;column:hex_code" json:"hex_code"`
	ImageUrl  string        `gorm:"size:512;default:'';column:image_url" json:"image_url"`
	Sizes     []ProductSize `gorm:"foreignKey:ColorID" json:"sizes"`
}

func (ProductColor) TableName() string {
	return "product_colors"
}

// Size 按尺码查找
func (c *ProductColor) Size(label string) *ProductSize {
	for i := range c.Sizes {
		if c.Sizes[i].Label == label {
			return &c.Sizes[i]
		}
	}
	return nil
}

// ProductSize 库存最小单位
type ProductSize struct {
	ID           uint64 `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	ProductID    uint64 `gorm:"not null;index:idx_product_sizes_product;column:product_id" json:"product_id"`
	ColorID      uint64 `gorm:"not null;uniqueIndex:idx_color_size_label;column:color_id" json:"color_id"`
	Label        string `gorm:"size:32;not null;uniqueIndex:idx_color_size_label;column:label" json:"label"`
	Stock        int    `gorm:"not null;default:0;check:chk_product_sizes_stock,stock >= 0;column:stock" json:"stock"`
	MinThreshold int    `gorm:"not null;default:0;column:min_threshold" json:"min_threshold"` // 低库存预警线
}

func (ProductSize) TableName() string {
	return "product_sizes"
}

// 库存变动原因
const (
	StockCauseOrderCreated   = "order_created"
	StockCauseOrderCancelled = "order_cancelled"
)

// StockMovement 库存流水，只追加不修改
type StockMovement struct {
	ID          uint64    `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	ProductID   uint64    `gorm:"not null;index:idx_stock_movements_product;column:product_id" json:"product_id"`
	SizeID      uint64    `gorm:"not null;column:size_id" json:"size_id"`
	ColorName   string    `gorm:"size:64;not null;column:color_name" json:"color_name"`
	SizeLabel   string    `gorm:"size:32;not null;column:size_label" json:"size_label"`
	Delta       int       `gorm:"not null;column:delta" json:"delta"`
	Cause       string    `gorm:"size:32;not null;column:cause" json:"cause"`
	OrderNumber string    `gorm:"size:32;index:idx_stock_movements_order;column:order_number" json:"order_number"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (StockMovement) TableName() string {
	return "stock_movements"
}
