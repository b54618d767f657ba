package models

import (
	"time"

	"gorm.io/datatypes"
)

// Cart 购物车，user_id 与 session_id 二选一
type Cart struct {
	ID        uint64                        `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	UserID    *uint64                       `gorm:"uniqueIndex:idx_carts_user;column:user_id" json:"user_id,omitempty"`
	SessionID *string                       `gorm:"size:128;uniqueIndex:idx_carts_session;column:session_id" json:"session_id,omitempty"`
	Items     datatypes.JSONSlice[CartItem] `gorm:"column:items" json:"items"`
	CreatedAt time.Time                     `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time                     `gorm:"column:updated_at;autoUpdateTime;index:idx_carts_updated" json:"updated_at"`
}

func (Cart) TableName() string {
	return "carts"
}

// CartItem 只存规格引用和数量，价格每次读取时实时计算
type CartItem struct {
	ID        string `json:"id"`
	ProductID uint64 `json:"product_id"`
	ColorName string `json:"color_name"`
	SizeLabel string `json:"size_label"`
	Quantity  int    `json:"quantity"`
}

// Same 是否指向同一规格
func (i CartItem) Same(productID uint64, colorName, sizeLabel string) bool {
	return i.ProductID == productID && i.ColorName == colorName && i.SizeLabel == sizeLabel
}
