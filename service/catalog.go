package service

import (
	"Storefront/dao"
	"Storefront/models"
	"Storefront/types"
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// Variant 一个 颜色+尺码 规格及其所属商品
type Variant struct {
	Product *models.Product
	Color   *models.ProductColor
	Size    *models.ProductSize
}

type CatalogService struct {
	ProductDAO *dao.Product
}

var _ ICatalogService = (*CatalogService)(nil)

type ICatalogService interface {
	FindVariant(ctx context.Context, productID uint64, colorName, sizeLabel string) (*Variant, error)
	AdjustStock(ctx context.Context, productID uint64, colorName, sizeLabel string, delta int, cause, orderNumber string) error
	GetProduct(ctx context.Context, productID uint64) (*types.ProductView, error)
	ListLowStock(ctx context.Context, limit int) ([]types.LowStockItem, error)
}

// WithTx 返回在事务内执行的副本
func (c *CatalogService) WithTx(tx *gorm.DB) *CatalogService {
	return &CatalogService{ProductDAO: c.ProductDAO.WithTx(tx)}
}

func (c *CatalogService) FindVariant(ctx context.Context, productID uint64, colorName, sizeLabel string) (*Variant, error) {
	product, err := c.ProductDAO.FindProduct(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("product", productID)
		}
		return nil, fmt.Errorf("find product %d: %w", productID, err)
	}

	color := product.Color(colorName)
	if color == nil {
		return nil, notFound("color", fmt.Sprintf("%q of product %d", colorName, productID))
	}
	size := color.Size(sizeLabel)
	if size == nil {
		return nil, notFound("size", fmt.Sprintf("%q of product %d color %q", sizeLabel, productID, colorName))
	}

	return &Variant{Product: product, Color: color, Size: size}, nil
}

// AdjustStock 按 商品/颜色/尺码 调整库存，delta 为负表示扣减
func (c *CatalogService) AdjustStock(ctx context.Context, productID uint64, colorName, sizeLabel string, delta int, cause, orderNumber string) error {
	v, err := c.FindVariant(ctx, productID, colorName, sizeLabel)
	if err != nil {
		return err
	}
	return c.AdjustVariantStock(ctx, v, delta, cause, orderNumber)
}

// AdjustVariantStock 单条条件更新完成校验和扣减，避免先读后写的超卖；
// 成功后追加一条库存流水。调用方负责事务边界。
func (c *CatalogService) AdjustVariantStock(ctx context.Context, v *Variant, delta int, cause, orderNumber string) error {
	if delta == 0 {
		return nil
	}

	rows, err := c.ProductDAO.IncrStock(ctx, v.Size.ID, delta)
	if err != nil {
		return fmt.Errorf("adjust stock of size %d: %w", v.Size.ID, err)
	}
	if rows == 0 {
		available, err := c.ProductDAO.GetStock(ctx, v.Size.ID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound("size", v.Size.ID)
			}
			return fmt.Errorf("read stock of size %d: %w", v.Size.ID, err)
		}
		stockRejections.Inc()
		return &InsufficientStockError{
			ProductID: v.Product.ID,
			ColorName: v.Color.Name,
			SizeLabel: v.Size.Label,
			Requested: -delta,
			Available: available,
		}
	}
	v.Size.Stock += delta

	return c.ProductDAO.CreateStockMovement(ctx, &models.StockMovement{
		ProductID:   v.Product.ID,
		SizeID:      v.Size.ID,
		ColorName:   v.Color.Name,
		SizeLabel:   v.Size.Label,
		Delta:       delta,
		Cause:       cause,
		OrderNumber: orderNumber,
	})
}

// GetProduct 前台商品详情，下架商品视为不存在
func (c *CatalogService) GetProduct(ctx context.Context, productID uint64) (*types.ProductView, error) {
	product, err := c.ProductDAO.FindProduct(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("product", productID)
		}
		return nil, err
	}
	if !product.IsActive {
		return nil, notFound("product", productID)
	}

	total := product.TotalStock()
	res := &types.ProductView{
		ID:             product.ID,
		Name:           product.Name,
		Description:    product.Description,
		Category:       product.Category,
		Price:          product.Price,
		IsOnSale:       product.IsOnSale,
		EffectivePrice: product.EffectivePrice(),
		TotalStock:     total,
		InStock:        total > 0,
		Colors:         make([]types.ColorVariantVO, 0, len(product.Colors)),
	}
	for _, color := range product.Colors {
		vo := types.ColorVariantVO{
			Name:     color.Name,
			HexCode:  color.HexCode,
			ImageUrl: color.ImageUrl,
			Sizes:    make([]types.SizeVariantVO, 0, len(color.Sizes)),
		}
		for _, size := range color.Sizes {
			vo.Sizes = append(vo.Sizes, types.SizeVariantVO{
				Label:   size.Label,
				Stock:   size.Stock,
				InStock: size.Stock > 0,
			})
		}
		res.Colors = append(res.Colors, vo)
	}
	return res, nil
}

func (c *CatalogService) ListLowStock(ctx context.Context, limit int) ([]types.LowStockItem, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	rows, err := c.ProductDAO.ListLowStock(ctx, limit)
	if err != nil {
		return nil, err
	}
	res := make([]types.LowStockItem, 0, len(rows))
	for _, r := range rows {
		res = append(res, types.LowStockItem{
			ProductID:    r.ProductID,
			ProductName:  r.ProductName,
			ColorName:    r.ColorName,
			Size:         r.SizeLabel,
			Stock:        r.Stock,
			MinThreshold: r.MinThreshold,
		})
	}
	return res, nil
}
