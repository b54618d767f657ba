package service

import (
	"Storefront/config"
	"Storefront/dao"
	"Storefront/models"
	"Storefront/pkg/money"
	"Storefront/types"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const maxSessionIDLen = 128

// Identity 购物车归属：登录用户优先，否则使用游客 session
type Identity struct {
	UserID    uint64
	SessionID string
}

func (i Identity) validate() error {
	if i.UserID > 0 {
		return nil
	}
	if i.SessionID == "" {
		return invalid("identity", "a bearer token or session id is required")
	}
	if len(i.SessionID) > maxSessionIDLen {
		return invalid("session_id", "too long")
	}
	return nil
}

type CartService struct {
	Shop       *config.Shop
	CartDAO    *dao.Cart
	ProductDAO *dao.Product
	Catalog    *CatalogService
	Now        func() time.Time `wire:"-"`
}

var _ ICartService = (*CartService)(nil)

type ICartService interface {
	GetCart(ctx context.Context, id Identity) (*types.CartView, error)
	AddItem(ctx context.Context, id Identity, req *types.AddCartItemRequest) (*types.CartView, error)
	UpdateItem(ctx context.Context, id Identity, itemID string, quantity int) (*types.CartView, error)
	Clear(ctx context.Context, id Identity) error
	PurgeExpired(ctx context.Context) (int64, error)
}

func (s *CartService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// GetCart 只读：归一化结果不回写，修正在下一次显式修改时落库
func (s *CartService) GetCart(ctx context.Context, id Identity) (*types.CartView, error) {
	if err := id.validate(); err != nil {
		return nil, err
	}

	items, err := s.loadItems(ctx, id)
	if err != nil {
		return nil, err
	}
	view, _, err := s.normalize(ctx, items)
	return view, err
}

func (s *CartService) AddItem(ctx context.Context, id Identity, req *types.AddCartItemRequest) (*types.CartView, error) {
	if err := id.validate(); err != nil {
		return nil, err
	}
	if req.Quantity < 1 || req.Quantity > types.MaxCartQuantity {
		return nil, invalid("quantity", fmt.Sprintf("must be between 1 and %d", types.MaxCartQuantity))
	}

	v, err := s.Catalog.FindVariant(ctx, req.ProductID, req.ColorName, req.Size)
	if err != nil {
		return nil, err
	}
	if !v.Product.IsActive {
		return nil, notFound("product", req.ProductID)
	}

	items, err := s.loadItems(ctx, id)
	if err != nil {
		return nil, err
	}
	_, healed, err := s.normalize(ctx, items)
	if err != nil {
		return nil, err
	}

	// 已有相同规格则合并数量，合并后的数量整体校验，不做截断。
	// 先单独校验 req.Quantity，再与剩余额度比较，不直接相加
	idx := -1
	existing := 0
	for i, item := range healed {
		if item.Same(req.ProductID, req.ColorName, req.Size) {
			idx = i
			existing = item.Quantity
			break
		}
	}
	if req.Quantity > v.Size.Stock || existing > v.Size.Stock-req.Quantity {
		stockRejections.Inc()
		return nil, &InsufficientStockError{
			ProductID: req.ProductID,
			ColorName: req.ColorName,
			SizeLabel: req.Size,
			Requested: existing + req.Quantity,
			Available: v.Size.Stock,
		}
	}

	if idx >= 0 {
		healed[idx].Quantity = existing + req.Quantity
	} else {
		healed = append(healed, models.CartItem{
			ID:        uuid.NewString(),
			ProductID: req.ProductID,
			ColorName: req.ColorName,
			SizeLabel: req.Size,
			Quantity:  req.Quantity,
		})
	}

	return s.save(ctx, id, healed)
}

// UpdateItem quantity <= 0 删除该行；> 0 时按实时库存校验并设置为精确值
func (s *CartService) UpdateItem(ctx context.Context, id Identity, itemID string, quantity int) (*types.CartView, error) {
	if err := id.validate(); err != nil {
		return nil, err
	}

	items, err := s.loadItems(ctx, id)
	if err != nil {
		return nil, err
	}
	var target *models.CartItem
	for i := range items {
		if items[i].ID == itemID {
			target = &items[i]
			break
		}
	}
	if target == nil {
		return nil, notFound("cart item", itemID)
	}

	_, healed, err := s.normalize(ctx, items)
	if err != nil {
		return nil, err
	}

	if quantity <= 0 {
		out := healed[:0]
		for _, item := range healed {
			if item.ID != itemID {
				out = append(out, item)
			}
		}
		return s.save(ctx, id, out)
	}

	v, err := s.Catalog.FindVariant(ctx, target.ProductID, target.ColorName, target.SizeLabel)
	if err != nil {
		return nil, err
	}
	if !v.Product.IsActive {
		return nil, notFound("product", target.ProductID)
	}
	if quantity > v.Size.Stock {
		stockRejections.Inc()
		return nil, &InsufficientStockError{
			ProductID: target.ProductID,
			ColorName: target.ColorName,
			SizeLabel: target.SizeLabel,
			Requested: quantity,
			Available: v.Size.Stock,
		}
	}

	for i := range healed {
		if healed[i].ID == itemID {
			healed[i].Quantity = quantity
		}
	}
	return s.save(ctx, id, healed)
}

func (s *CartService) Clear(ctx context.Context, id Identity) error {
	if err := id.validate(); err != nil {
		return err
	}
	cart, err := s.CartDAO.FindCart(ctx, id.UserID, id.SessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	cart.Items = []models.CartItem{}
	return s.CartDAO.SaveItems(ctx, cart)
}

// PurgeExpired 清理超过保留期未更新的游客购物车，登录用户的购物车保留
func (s *CartService) PurgeExpired(ctx context.Context) (int64, error) {
	return s.CartDAO.DeleteIdleGuestCarts(ctx, s.now().Add(-s.Shop.GuestCartTTL))
}

func (s *CartService) loadItems(ctx context.Context, id Identity) ([]models.CartItem, error) {
	cart, err := s.CartDAO.FindCart(ctx, id.UserID, id.SessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return cart.Items, nil
}

func (s *CartService) save(ctx context.Context, id Identity, items []models.CartItem) (*types.CartView, error) {
	cart, err := s.CartDAO.GetOrCreate(ctx, id.UserID, id.SessionID)
	if err != nil {
		return nil, err
	}
	cart.Items = items
	if err := s.CartDAO.SaveItems(ctx, cart); err != nil {
		return nil, err
	}
	view, _, err := s.normalize(ctx, items)
	return view, err
}

// normalize 纯函数式投影：按实时商品状态过滤、截断数量并重新计价。
// 返回的 healed 是修正后的行，调用方决定是否持久化。
func (s *CartService) normalize(ctx context.Context, items []models.CartItem) (*types.CartView, []models.CartItem, error) {
	ids := make([]uint64, 0, len(items))
	seen := make(map[uint64]struct{}, len(items))
	for _, item := range items {
		if _, ok := seen[item.ProductID]; !ok {
			seen[item.ProductID] = struct{}{}
			ids = append(ids, item.ProductID)
		}
	}
	products, err := s.ProductDAO.FindProducts(ctx, ids)
	if err != nil {
		return nil, nil, err
	}

	view := &types.CartView{Items: make([]types.CartLine, 0, len(items))}
	healed := make([]models.CartItem, 0, len(items))
	subtotal := decimal.Zero

	for _, item := range items {
		product, ok := products[item.ProductID]
		if !ok || !product.IsActive {
			view.Removed++
			continue
		}
		color := product.Color(item.ColorName)
		if color == nil {
			view.Removed++
			continue
		}
		size := color.Size(item.SizeLabel)
		if size == nil || size.Stock <= 0 {
			view.Removed++
			continue
		}

		qty := item.Quantity
		adjusted := false
		if qty > size.Stock {
			qty = size.Stock
			adjusted = true
		}
		if qty < 1 {
			view.Removed++
			continue
		}

		price := product.EffectivePrice()
		lineTotal := money.LineTotal(price, qty)
		subtotal = subtotal.Add(lineTotal)

		view.Items = append(view.Items, types.CartLine{
			ID:          item.ID,
			ProductID:   product.ID,
			ProductName: product.Name,
			ColorName:   color.Name,
			Size:        size.Label,
			ImageUrl:    color.ImageUrl,
			Quantity:    qty,
			Stock:       size.Stock,
			Price:       money.Round2(price),
			LineTotal:   money.Round2(lineTotal),
			Adjusted:    adjusted,
		})
		item.Quantity = qty
		healed = append(healed, item)
	}

	if len(view.Items) == 0 {
		view.Subtotal, view.Shipping, view.Total = decimal.Zero, decimal.Zero, decimal.Zero
		return view, healed, nil
	}
	view.Subtotal, view.Shipping, view.Total = money.Totals(subtotal, s.Shop.FreeShippingThreshold, s.Shop.ShippingFee)
	return view, healed, nil
}
