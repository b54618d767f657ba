package types

import "github.com/shopspring/decimal"

// ProductView 前台商品详情
type ProductView struct {
	ID             uint64           `json:"id"`
	Name           string           `json:"name"`
	Description    string           `json:"description"`
	Category       string           `json:"category"`
	Price          decimal.Decimal  `json:"price"`
	IsOnSale       bool             `json:"is_on_sale"`
	EffectivePrice decimal.Decimal  `json:"effective_price"` // 实际成交价
	TotalStock     int              `json:"total_stock"`
	InStock        bool             `json:"in_stock"`
	Colors         []ColorVariantVO `json:"colors"`
}

type ColorVariantVO struct {
	Name     string          `json:"name"`
	HexCode  string          `json:"hex_code"`
	ImageUrl string          `json:"image_url"`
	Sizes    []SizeVariantVO `json:"sizes"`
}

type SizeVariantVO struct {
	Label   string `json:"label"`
	Stock   int    `json:"stock"`
	InStock bool   `json:"in_stock"`
}

type LowStockItem struct {
	ProductID    uint64 `json:"product_id"`
	ProductName  string `json:"product_name"`
	ColorName    string `json:"color_name"`
	Size         string `json:"size"`
	Stock        int    `json:"stock"`
	MinThreshold int    `json:"min_threshold"`
}
