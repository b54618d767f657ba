package service

import (
	"Storefront/config"
	"Storefront/dao"
	"Storefront/models"
	"Storefront/pkg/log"
	"Storefront/pkg/money"
	"Storefront/pkg/snowflake"
	"Storefront/types"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	EventOrderCreated       = "order.created"
	EventOrderStatusChanged = "order.status_changed"

	defaultOrderPageSize = 20
	maxOrderPageSize     = 100
)

var phonePattern = regexp.MustCompile(`^[0-9]{10}$`)

// OrderSequencer 按天发放订单序号
type OrderSequencer interface {
	Next(ctx context.Context, day time.Time) (int64, error)
}

// EventPublisher 订单事件投递，失败不影响主流程
type EventPublisher interface {
	Publish(ctx context.Context, key string, body []byte) error
}

type OrderService struct {
	DB        *gorm.DB
	Shop      *config.Shop
	OrderDAO  *dao.Order
	Catalog   *CatalogService
	Sequencer OrderSequencer
	Events    EventPublisher
	Now       func() time.Time `wire:"-"`
}

var _ IOrderService = (*OrderService)(nil)

type IOrderService interface {
	CreateOrder(ctx context.Context, userID uint64, req *types.CreateOrderRequest) (*models.Order, error)
	UpdateStatus(ctx context.Context, orderID uint64, status string) (*models.Order, error)
	MarkFlags(ctx context.Context, orderID uint64, req *types.UpdateOrderFlagsRequest) (*models.Order, error)
	GetOrder(ctx context.Context, orderID uint64) (*models.Order, error)
	ListOrders(ctx context.Context, req *types.ListOrdersRequest) (*types.ListOrdersResponse, error)
}

func (o *OrderService) now() time.Time {
	if o.Now != nil {
		return o.Now()
	}
	return time.Now()
}

// FormatOrderNumber ORD + yyMMdd + 4 位序号
func FormatOrderNumber(prefix string, day time.Time, seq int64) string {
	return fmt.Sprintf("%s%s%04d", prefix, day.Format("060102"), seq)
}

func validateOrderRequest(req *types.CreateOrderRequest) error {
	req.CustomerName = strings.TrimSpace(req.CustomerName)
	req.Phone = strings.TrimSpace(req.Phone)
	req.City = strings.TrimSpace(req.City)
	req.Address = strings.TrimSpace(req.Address)

	switch {
	case req.CustomerName == "":
		return invalid("customer_name", "is required")
	case req.Phone == "":
		return invalid("phone", "is required")
	case !phonePattern.MatchString(req.Phone):
		return invalid("phone", "must be exactly 10 digits")
	case req.City == "":
		return invalid("city", "is required")
	case req.Address == "":
		return invalid("address", "is required")
	case len(req.Items) == 0:
		return invalid("items", "at least one item is required")
	}

	for i, item := range req.Items {
		field := fmt.Sprintf("items[%d]", i)
		switch {
		case item.ProductID == 0:
			return invalid(field+".product_id", "is required")
		case strings.TrimSpace(item.ColorName) == "":
			return invalid(field+".color_name", "is required")
		case strings.TrimSpace(item.Size) == "":
			return invalid(field+".size", "is required")
		case item.Quantity < 1:
			return invalid(field+".quantity", "must be at least 1")
		}
	}
	return nil
}

// CreateOrder 校验、扣库存、写订单在同一个事务里完成：
// 任意一行失败整体回滚，不会留下部分扣减。
func (o *OrderService) CreateOrder(ctx context.Context, userID uint64, req *types.CreateOrderRequest) (*models.Order, error) {
	if err := validateOrderRequest(req); err != nil {
		return nil, err
	}

	now := o.now()
	seq, err := o.Sequencer.Next(ctx, now)
	if err != nil {
		return nil, fmt.Errorf("allocate order number: %w", err)
	}

	order := &models.Order{
		ID:            uint64(snowflake.GenID()),
		OrderNumber:   FormatOrderNumber(o.Shop.OrderPrefix, now, seq),
		CustomerName:  req.CustomerName,
		Phone:         req.Phone,
		City:          req.City,
		Address:       req.Address,
		Note:          strings.TrimSpace(req.Note),
		Status:        models.OrderStatusNew,
		PaymentStatus: models.PaymentStatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if userID > 0 {
		order.UserID = &userID
	}

	err = o.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		catalog := o.Catalog.WithTx(tx)
		subtotal := decimal.Zero
		items := make([]models.OrderItem, 0, len(req.Items))

		for i, item := range req.Items {
			v, err := catalog.FindVariant(ctx, item.ProductID, item.ColorName, item.Size)
			if err != nil {
				return &ItemError{Index: i, Err: err}
			}
			if !v.Product.IsActive {
				return &ItemError{Index: i, Err: notFound("product", item.ProductID)}
			}

			// 价格在此刻冻结，之后商品改价不影响订单
			price := money.Round2(v.Product.EffectivePrice())

			if err := catalog.AdjustVariantStock(ctx, v, -item.Quantity, models.StockCauseOrderCreated, order.OrderNumber); err != nil {
				return &ItemError{Index: i, Err: err}
			}

			items = append(items, models.OrderItem{
				OrderID:     order.ID,
				ProductID:   v.Product.ID,
				ProductName: v.Product.Name,
				ColorName:   v.Color.Name,
				Size:        v.Size.Label,
				ImageUrl:    v.Color.ImageUrl,
				Quantity:    item.Quantity,
				Price:       price,
			})
			subtotal = subtotal.Add(money.LineTotal(price, item.Quantity))
		}

		order.Items = items
		order.Subtotal, order.ShippingFee, order.TotalAmount = money.Totals(subtotal, o.Shop.FreeShippingThreshold, o.Shop.ShippingFee)

		return o.OrderDAO.WithTx(tx).CreateOrder(ctx, order)
	})
	if err != nil {
		return nil, err
	}

	ordersCreated.Inc()
	log.L.Info("order created",
		zap.String("order_number", order.OrderNumber),
		zap.Int("items", len(order.Items)),
		zap.String("total", order.TotalAmount.StringFixed(2)),
	)
	o.publish(ctx, EventOrderCreated, order, "")

	return order, nil
}

// UpdateStatus 同状态请求直接返回，不写库也不回补库存。
// 状态更新使用 compare-and-set，并发的重复取消只会回补一次。
func (o *OrderService) UpdateStatus(ctx context.Context, orderID uint64, status string) (*models.Order, error) {
	status = strings.ToLower(strings.TrimSpace(status))
	if !IsKnownStatus(status) {
		return nil, invalid("status", fmt.Sprintf("unknown status %q", status))
	}

	var (
		order *models.Order
		from  string
	)
	err := o.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		orders := o.OrderDAO.WithTx(tx)

		// 只取订单头判断状态，明细在需要时再加载
		current, err := orders.FindById(ctx, orderID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound("order", orderID)
			}
			return err
		}
		from = current.Status
		if from != status {
			if err := CheckTransition(from, status); err != nil {
				return err
			}
			rows, err := orders.CompareAndSetStatus(ctx, orderID, from, status)
			if err != nil {
				return err
			}
			if rows == 0 {
				return ErrConcurrentUpdate
			}
		}

		order, err = orders.FindOrder(ctx, orderID)
		if err != nil {
			return err
		}
		if from != status && status == models.OrderStatusCancelled {
			return o.restoreStock(ctx, o.Catalog.WithTx(tx), order)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if from != status {
		orderTransitions.WithLabelValues(from, status).Inc()
		log.L.Info("order status changed",
			zap.String("order_number", order.OrderNumber),
			zap.String("from", from),
			zap.String("to", status),
		)
		o.publish(ctx, EventOrderStatusChanged, order, from)
	}
	return order, nil
}

// restoreStock 取消订单的补偿动作：逐行回补库存。
// 规格已被删除或改名的行跳过，不阻塞整个取消。
func (o *OrderService) restoreStock(ctx context.Context, catalog *CatalogService, order *models.Order) error {
	for _, item := range order.Items {
		err := catalog.AdjustStock(ctx, item.ProductID, item.ColorName, item.Size, item.Quantity,
			models.StockCauseOrderCancelled, order.OrderNumber)
		if err == nil {
			continue
		}
		var nf *NotFoundError
		if errors.As(err, &nf) {
			log.L.Warn("skip stock restoration, variant no longer exists",
				zap.String("order_number", order.OrderNumber),
				zap.Uint64("product_id", item.ProductID),
				zap.String("color", item.ColorName),
				zap.String("size", item.Size),
			)
			continue
		}
		return err
	}
	return nil
}

// MarkFlags 仅修改已读/已查看标记，与状态机无关
func (o *OrderService) MarkFlags(ctx context.Context, orderID uint64, req *types.UpdateOrderFlagsRequest) (*models.Order, error) {
	updates := make(map[string]any, 2)
	if req.IsRead != nil {
		updates["is_read"] = *req.IsRead
	}
	if req.IsSeen != nil {
		updates["is_seen"] = *req.IsSeen
	}
	if len(updates) == 0 {
		return nil, invalid("flags", "is_read or is_seen is required")
	}

	exist, err := o.OrderDAO.IsExist(ctx, "id = ?", orderID)
	if err != nil {
		return nil, err
	}
	if !exist {
		return nil, notFound("order", orderID)
	}
	if _, err := o.OrderDAO.UpdateFlags(ctx, orderID, updates); err != nil {
		return nil, err
	}
	return o.GetOrder(ctx, orderID)
}

func (o *OrderService) GetOrder(ctx context.Context, orderID uint64) (*models.Order, error) {
	order, err := o.OrderDAO.FindOrder(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("order", orderID)
		}
		return nil, err
	}
	return order, nil
}

func (o *OrderService) ListOrders(ctx context.Context, req *types.ListOrdersRequest) (*types.ListOrdersResponse, error) {
	if req.Status != "" && !IsKnownStatus(req.Status) {
		return nil, invalid("status", fmt.Sprintf("unknown status %q", req.Status))
	}
	if req.From != nil && req.To != nil && !req.From.Before(*req.To) {
		return nil, invalid("to", "must be after from")
	}

	pageSize := req.Limit
	if pageSize <= 0 || pageSize > maxOrderPageSize {
		pageSize = defaultOrderPageSize
	}

	// 多查一条用来判断是否还有下一页
	orders, err := o.OrderDAO.ListOrders(ctx, dao.OrderFilter{
		Status: req.Status,
		From:   req.From,
		To:     req.To,
		IsRead: req.IsRead,
		IsSeen: req.IsSeen,
		Cursor: req.Cursor,
		Limit:  pageSize + 1,
	})
	if err != nil {
		return nil, err
	}

	resp := &types.ListOrdersResponse{Orders: orders}
	if len(orders) > pageSize {
		resp.HasMore = true
		resp.Orders = orders[:pageSize]
	}
	if len(resp.Orders) > 0 {
		resp.NextCursor = resp.Orders[len(resp.Orders)-1].ID
	} else {
		resp.Orders = make([]*models.Order, 0)
	}

	unseen, err := o.OrderDAO.CountUnseen(ctx)
	if err != nil {
		return nil, err
	}
	resp.Unseen = unseen
	return resp, nil
}

func (o *OrderService) publish(ctx context.Context, event string, order *models.Order, from string) {
	if o.Events == nil {
		return
	}
	body, err := json.Marshal(types.OrderEvent{
		Event:       event,
		OrderID:     order.ID,
		OrderNumber: order.OrderNumber,
		From:        from,
		Status:      order.Status,
		TotalAmount: order.TotalAmount.StringFixed(2),
		At:          o.now(),
	})
	if err != nil {
		log.L.Warn("encode order event", zap.Error(err))
		return
	}
	if err := o.Events.Publish(ctx, order.OrderNumber, body); err != nil {
		log.L.Warn("publish order event",
			zap.String("event", event),
			zap.String("order_number", order.OrderNumber),
			zap.Error(err),
		)
	}
}
