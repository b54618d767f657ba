package types

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	GranularityDay   = "day"
	GranularityMonth = "month"
)

// DashboardSummary 报表概览，当前窗口与紧邻的上一个等长窗口对比
type DashboardSummary struct {
	Period       string            `json:"period"`
	Granularity  string            `json:"granularity"` // day: 30 天以内, month: 按年
	From         time.Time         `json:"from"`
	To           time.Time         `json:"to"`
	Buckets      []DashboardBucket `json:"buckets"`
	Current      PeriodTotals      `json:"current"`
	Previous     PeriodTotals      `json:"previous"`
	RevenueTrend decimal.Decimal   `json:"revenue_trend"` // 百分比
	OrdersTrend  decimal.Decimal   `json:"orders_trend"`  // 百分比
}

type DashboardBucket struct {
	Label   string          `json:"label"`
	Start   time.Time       `json:"start"`
	Revenue decimal.Decimal `json:"revenue"`
	Orders  int             `json:"orders"`
}

type PeriodTotals struct {
	Revenue decimal.Decimal `json:"revenue"`
	Orders  int             `json:"orders"`
}
