package dao

import (
	"Storefront/models"
	"context"
	"time"

	"gorm.io/gorm"
)

type Cart struct {
	Repo[models.Cart]
}

func NewCart(db *gorm.DB) *Cart {
	return &Cart{
		Repo: NewRepo[models.Cart](db),
	}
}

func (c *Cart) scope(userID uint64, sessionID string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if userID > 0 {
			return db.Where("user_id = ?", userID)
		}
		return db.Where("session_id = ?", sessionID)
	}
}

// FindCart 只读查询，不存在时返回 gorm.ErrRecordNotFound
func (c *Cart) FindCart(ctx context.Context, userID uint64, sessionID string) (*models.Cart, error) {
	if userID > 0 {
		return c.FindByWhere(ctx, "user_id = ?", userID)
	}
	return c.FindByWhere(ctx, "session_id = ?", sessionID)
}

// GetOrCreate 首次加购时惰性创建购物车
func (c *Cart) GetOrCreate(ctx context.Context, userID uint64, sessionID string) (*models.Cart, error) {
	cart := &models.Cart{}
	if userID > 0 {
		cart.UserID = &userID
	} else {
		cart.SessionID = &sessionID
	}
	err := c.Db.WithContext(ctx).
		Scopes(c.scope(userID, sessionID)).
		FirstOrCreate(cart).Error
	return cart, err
}

func (c *Cart) SaveItems(ctx context.Context, cart *models.Cart) error {
	return c.Db.WithContext(ctx).Model(cart).
		Select("items", "updated_at").
		Updates(map[string]any{
			"items":      cart.Items,
			"updated_at": time.Now(),
		}).Error
}

// DeleteIdleGuestCarts 删除 before 之后未再更新的游客购物车
func (c *Cart) DeleteIdleGuestCarts(ctx context.Context, before time.Time) (int64, error) {
	result := c.Db.WithContext(ctx).
		Where("session_id IS NOT NULL AND updated_at < ?", before).
		Delete(&models.Cart{})
	return result.RowsAffected, result.Error
}
