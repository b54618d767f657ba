package dao

import (
	"Storefront/models"
	"context"
	"time"

	"gorm.io/gorm"
)

type Order struct {
	Repo[models.Order]
}

func NewOrder(db *gorm.DB) *Order {
	return &Order{
		Repo: NewRepo[models.Order](db),
	}
}

func (o *Order) WithTx(tx *gorm.DB) *Order {
	return NewOrder(tx)
}

// CreateOrder 写入订单及明细
func (o *Order) CreateOrder(ctx context.Context, order *models.Order) error {
	return o.Create(ctx, order)
}

func (o *Order) FindOrder(ctx context.Context, orderID uint64) (*models.Order, error) {
	var order models.Order
	err := o.Db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Where("id = ?", orderID).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// CompareAndSetStatus 只有当前状态仍为 from 时才更新，返回受影响行数
func (o *Order) CompareAndSetStatus(ctx context.Context, orderID uint64, from, to string) (int64, error) {
	result := o.Db.WithContext(ctx).Model(&models.Order{}).
		Where("id = ? AND status = ?", orderID, from).
		Updates(map[string]any{
			"status":     to,
			"updated_at": time.Now(),
		})
	return result.RowsAffected, result.Error
}

func (o *Order) UpdateFlags(ctx context.Context, orderID uint64, updates map[string]any) (int64, error) {
	if len(updates) == 0 {
		return 0, nil
	}
	result := o.Db.WithContext(ctx).Model(&models.Order{}).
		Where("id = ?", orderID).
		Updates(updates)
	return result.RowsAffected, result.Error
}

type OrderFilter struct {
	Status string
	From   *time.Time
	To     *time.Time
	IsRead *bool
	IsSeen *bool
	Cursor uint64
	Limit  int
}

// ListOrders 按 id 倒序的游标分页，调用方多查一条判断 hasMore
func (o *Order) ListOrders(ctx context.Context, f OrderFilter) ([]*models.Order, error) {
	query := o.Db.WithContext(ctx).Model(&models.Order{})
	if f.Status != "" {
		query = query.Where("status = ?", f.Status)
	}
	if f.From != nil {
		query = query.Where("created_at >= ?", *f.From)
	}
	if f.To != nil {
		query = query.Where("created_at < ?", *f.To)
	}
	if f.IsRead != nil {
		query = query.Where("is_read = ?", *f.IsRead)
	}
	if f.IsSeen != nil {
		query = query.Where("is_seen = ?", *f.IsSeen)
	}
	if f.Cursor > 0 {
		query = query.Where("id < ?", f.Cursor)
	}

	var orders []*models.Order
	err := query.
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Order("id DESC").
		Limit(f.Limit).
		Find(&orders).Error
	return orders, err
}

// ListStats 统计窗口 [from, to) 内的订单金额与状态
func (o *Order) ListStats(ctx context.Context, from, to time.Time) ([]models.Order, error) {
	var orders []models.Order
	err := o.Db.WithContext(ctx).Model(&models.Order{}).
		Select("id", "created_at", "status", "total_amount").
		Where("created_at >= ? AND created_at < ?", from, to).
		Find(&orders).Error
	return orders, err
}

func (o *Order) CountUnseen(ctx context.Context) (int64, error) {
	var count int64
	err := o.Db.WithContext(ctx).Model(&models.Order{}).Where("is_seen = ?", false).Count(&count).Error
	return count, err
}
