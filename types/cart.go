package types

import "github.com/shopspring/decimal"

// MaxCartQuantity 单行加购数量上限
const MaxCartQuantity = 999

type AddCartItemRequest struct {
	ProductID uint64 `json:"product_id" binding:"required"`
	ColorName string `json:"color_name" binding:"required"`
	Size      string `json:"size" binding:"required"`
	Quantity  int    `json:"quantity" binding:"min=1,max=999"`
}

type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"` // <= 0 表示删除
}

// CartView 按实时库存与价格归一化后的购物车
type CartView struct {
	Items    []CartLine      `json:"items"`
	Removed  int             `json:"removed"` // 因商品下架/规格删除/售罄而未展示的行数
	Subtotal decimal.Decimal `json:"subtotal"`
	Shipping decimal.Decimal `json:"shipping"` // 空购物车为 0
	Total    decimal.Decimal `json:"total"`
}

type CartLine struct {
	ID          string          `json:"id"`
	ProductID   uint64          `json:"product_id"`
	ProductName string          `json:"product_name"`
	ColorName   string          `json:"color_name"`
	Size        string          `json:"size"`
	ImageUrl    string          `json:"image_url"`
	Quantity    int             `json:"quantity"`
	Stock       int             `json:"stock"`
	Price       decimal.Decimal `json:"price"`      // 当前有效价
	LineTotal   decimal.Decimal `json:"line_total"` // price * quantity
	Adjusted    bool            `json:"adjusted"`   // 数量被库存截断
}
