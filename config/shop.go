package config

import (
	"time"

	"github.com/shopspring/decimal"
)

// Shop 店铺业务规则
type Shop struct {
	// 小计严格大于该值时免运费
	FreeShippingThreshold decimal.Decimal `json:"free_shipping_threshold" yaml:"free_shipping_threshold"`
	ShippingFee           decimal.Decimal `json:"shipping_fee" yaml:"shipping_fee"`
	OrderPrefix           string          `json:"order_prefix" yaml:"order_prefix"`
	// GuestCartTTL 游客购物车闲置保留时长，超过后由 purge-carts 清理
	GuestCartTTL time.Duration `json:"guest_cart_ttl" yaml:"guest_cart_ttl"`
	RateLimit    RateLimit     `json:"rate_limit" yaml:"rate_limit"`
}

type RateLimit struct {
	Requests int           `json:"requests" yaml:"requests"`
	Window   time.Duration `json:"window" yaml:"window"`
}

func DefaultShop() *Shop {
	s := &Shop{}
	s.applyDefaults()
	return s
}

func (s *Shop) applyDefaults() {
	if s.FreeShippingThreshold.IsZero() {
		s.FreeShippingThreshold = decimal.NewFromInt(1000)
	}
	if s.ShippingFee.IsZero() {
		s.ShippingFee = decimal.NewFromInt(30)
	}
	if s.OrderPrefix == "" {
		s.OrderPrefix = "ORD"
	}
	if s.GuestCartTTL == 0 {
		s.GuestCartTTL = 30 * 24 * time.Hour
	}
	if s.RateLimit.Requests == 0 {
		s.RateLimit.Requests = 10
	}
	if s.RateLimit.Window == 0 {
		s.RateLimit.Window = time.Minute
	}
}

func ProvideShopConfig(cfg *Config) *Shop {
	return cfg.Shop
}
