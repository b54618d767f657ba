package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	OrderStatusNew       = "new"
	OrderStatusConfirmed = "confirmed"
	OrderStatusShipped   = "shipped"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"

	// 货到付款，支付状态恒为 pending
	PaymentStatusPending = "pending"
)

// Order 订单主表，创建后只有 status / is_read / is_seen 可变
type Order struct {
	ID            uint64          `gorm:"primaryKey;autoIncrement:false;column:id" json:"id,string"` // snowflake
	OrderNumber   string          `gorm:"size:32;not null;uniqueIndex:idx_order_number;column:order_number" json:"order_number"`
	UserID        *uint64         `gorm:"index:idx_orders_user;column:user_id" json:"user_id,omitempty"`
	CustomerName  string          `gorm:"size:128;not null;column:customer_name" json:"customer_name"`
	Phone         string          `gorm:"size:16;not null;column:phone" json:"phone"`
	City          string          `gorm:"size:64;not null;column:city" json:"city"`
	Address       string          `gorm:"size:512;not null;column:address" json:"address"`
	Note          string          `gorm:"size:1024;column:note" json:"note"`
	Items         []OrderItem     `gorm:"foreignKey:OrderID" json:"items"`
	Subtotal      decimal.Decimal `gorm:"type:decimal(12,2);not null;column:subtotal" json:"subtotal"`
	ShippingFee   decimal.Decimal `gorm:"type:decimal(12,2);not null;column:shipping_fee" json:"shipping_fee"`
	TotalAmount   decimal.Decimal `gorm:"type:decimal(12,2);not null;column:total_amount" json:"total_amount"`
	Status        string          `gorm:"size:16;not null;index:idx_orders_status;column:status" json:"status"`
	PaymentStatus string          `gorm:"size:16;not null;column:payment_status" json:"payment_status"`
	IsRead        bool            `gorm:"not null;column:is_read" json:"is_read"`
	IsSeen        bool            `gorm:"not null;column:is_seen" json:"is_seen"`
	CreatedAt     time.Time       `gorm:"column:created_at;autoCreateTime;index:idx_orders_created" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Order) TableName() string {
	return "orders"
}

// OrderItem 订单明细，商品名称/规格/图片/单价均为下单时快照
type OrderItem struct {
	ID          uint64          `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	OrderID     uint64          `gorm:"not null;index:idx_order_items_order;column:order_id" json:"order_id,string"`
	ProductID   uint64          `gorm:"not null;index:idx_order_items_product;column:product_id" json:"product_id"`
	ProductName string          `gorm:"size:255;not null;column:product_name" json:"product_name"`
	ColorName   string          `gorm:"size:64;not null;column:color_name" json:"color_name"`
	Size        string          `gorm:"size:32;not null;column:size" json:"size"`
	ImageUrl    string          `gorm:"size:512;default:'';column:image_url" json:"image_url"`
	Quantity    int             `gorm:"not null;column:quantity" json:"quantity"`
	Price       decimal.Decimal `gorm:"type:decimal(12,2);not null;column:price" json:"price"`
}

func (OrderItem) TableName() string {
	return "order_items"
}
