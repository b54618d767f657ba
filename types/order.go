package types

import (
	"Storefront/models"
	"time"
)

// CreateOrderRequest 下单请求（货到付款）
type CreateOrderRequest struct {
	CustomerName string             `json:"customer_name"` // 收货人
	Phone        string             `json:"phone"`         // 10 位数字手机号
	City         string             `json:"city"`          // 城市
	Address      string             `json:"address"`       // 详细地址
	Note         string             `json:"note"`          // 备注，可选
	Items        []OrderItemRequest `json:"items"`         // 商品行，按提交顺序处理
	ClearCart    bool               `json:"clear_cart"`    // 下单成功后清空当前身份的购物车
}

type OrderItemRequest struct {
	ProductID uint64 `json:"product_id"`
	ColorName string `json:"color_name"`
	Size      string `json:"size"`
	Quantity  int    `json:"quantity"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type UpdateOrderFlagsRequest struct {
	IsRead *bool `json:"is_read"`
	IsSeen *bool `json:"is_seen"`
}

// ListOrdersRequest 后台订单列表筛选
type ListOrdersRequest struct {
	Status string     `form:"status"`
	From   *time.Time `form:"from" time_format:"2006-01-02"` // 包含
	To     *time.Time `form:"to" time_format:"2006-01-02"`   // 不包含
	IsRead *bool      `form:"is_read"`
	IsSeen *bool      `form:"is_seen"`
	Cursor uint64     `form:"cursor"` // 上一页最后一条订单 id
	Limit  int        `form:"limit"`
}

type ListOrdersResponse struct {
	Orders     []*models.Order `json:"orders"`
	NextCursor uint64          `json:"next_cursor,string"` // 下一次请求带上的游标
	HasMore    bool            `json:"has_more"`
	Unseen     int64           `json:"unseen"` // 未查看订单数，后台轮询用
}

// OrderEvent 订单生命周期事件，投递给报表侧
type OrderEvent struct {
	Event       string    `json:"event"`
	OrderID     uint64    `json:"order_id,string"`
	OrderNumber string    `json:"order_number"`
	From        string    `json:"from,omitempty"`
	Status      string    `json:"status"`
	TotalAmount string    `json:"total_amount"`
	At          time.Time `json:"at"`
}
