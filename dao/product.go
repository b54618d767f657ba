package dao

import (
	"Storefront/models"
	"context"

	"gorm.io/gorm"
)

type Product struct {
	Repo[models.Product]
}

func NewProduct(db *gorm.DB) *Product {
	return &Product{
		Repo: NewRepo[models.Product](db),
	}
}

// WithTx 返回绑定到事务的 DAO
func (p *Product) WithTx(tx *gorm.DB) *Product {
	return NewProduct(tx)
}

// FindProduct 查询商品及全部规格
func (p *Product) FindProduct(ctx context.Context, productID uint64) (*models.Product, error) {
	var product models.Product
	err := p.Db.WithContext(ctx).
		Preload("Colors").
		Preload("Colors.Sizes").
		Where("id = ?", productID).
		First(&product).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// FindProducts 批量查询，缺失的 id 不会出现在结果里
func (p *Product) FindProducts(ctx context.Context, productIDs []uint64) (map[uint64]*models.Product, error) {
	res := make(map[uint64]*models.Product, len(productIDs))
	if len(productIDs) == 0 {
		return res, nil
	}

	var products []*models.Product
	err := p.Db.WithContext(ctx).
		Preload("Colors").
		Preload("Colors.Sizes").
		Where("id IN ?", productIDs).
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	for _, product := range products {
		res[product.ID] = product
	}
	return res, nil
}

// IncrStock 条件更新库存：只有变更后库存不小于 0 才会生效。
// RowsAffected == 0 表示库存不足或规格不存在。
func (p *Product) IncrStock(ctx context.Context, sizeID uint64, delta int) (int64, error) {
	result := p.Db.WithContext(ctx).Model(&models.ProductSize{}).
		Where("id = ? AND stock + ? >= 0", sizeID, delta).
		Update("stock", gorm.Expr("stock + ?", delta))
	return result.RowsAffected, result.Error
}

func (p *Product) GetStock(ctx context.Context, sizeID uint64) (int, error) {
	var size models.ProductSize
	err := p.Db.WithContext(ctx).Select("id", "stock").Where("id = ?", sizeID).First(&size).Error
	return size.Stock, err
}

func (p *Product) CreateStockMovement(ctx context.Context, movement *models.StockMovement) error {
	return p.Db.WithContext(ctx).Create(movement).Error
}

func (p *Product) ListStockMovements(ctx context.Context, productID uint64) ([]models.StockMovement, error) {
	var rows []models.StockMovement
	err := p.Db.WithContext(ctx).Where("product_id = ?", productID).Order("id ASC").Find(&rows).Error
	return rows, err
}

type LowStockRow struct {
	ProductID    uint64 `gorm:"column:product_id"`
	ProductName  string `gorm:"column:product_name"`
	ColorName    string `gorm:"column:color_name"`
	SizeLabel    string `gorm:"column:size_label"`
	Stock        int    `gorm:"column:stock"`
	MinThreshold int    `gorm:"column:min_threshold"`
}

// ListLowStock 在售商品中库存低于等于预警线的规格
func (p *Product) ListLowStock(ctx context.Context, limit int) ([]LowStockRow, error) {
	var rows []LowStockRow
	err := p.Db.WithContext(ctx).Table("product_sizes AS s").
		Select("s.product_id, p.name AS product_name, c.name AS color_name, s.label AS size_label, s.stock, s.min_threshold").
		Joins("JOIN product_colors AS c ON c.id = s.color_id").
		Joins("JOIN products AS p ON p.id = s.product_id").
		Where("p.is_active = ? AND s.stock <= s.min_threshold", true).
		Order("s.stock ASC, s.id ASC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}
