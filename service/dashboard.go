package service

import (
	"Storefront/dao"
	"Storefront/models"
	"Storefront/pkg/money"
	"Storefront/types"
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sourcegraph/conc/pool"
)

// DashboardService 报表侧的聚合契约：30 天以内按天分桶，按年查询按月分桶
type DashboardService struct {
	OrderDAO *dao.Order
	Now      func() time.Time `wire:"-"`
}

var _ IDashboardService = (*DashboardService)(nil)

type IDashboardService interface {
	Summary(ctx context.Context, period string) (*types.DashboardSummary, error)
}

type window struct {
	granularity string
	from, to    time.Time
	prevFrom    time.Time
	buckets     []types.DashboardBucket
}

func (d *DashboardService) now() time.Time {
	if d.Now != nil {
		return d.Now()
	}
	return time.Now()
}

func startOfDay(t time.Time) time.Time {
	y, m, day := t.Date()
	return time.Date(y, m, day, 0, 0, 0, 0, t.Location())
}

func startOfMonth(t time.Time) time.Time {
	y, m, _ := t.Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, t.Location())
}

// buildWindow 窗口以 now 所在的天/月为最后一个桶
func buildWindow(period string, now time.Time) (*window, error) {
	w := &window{}
	switch period {
	case "", "7d", "30d":
		days := 7
		if period == "30d" {
			days = 30
		}
		w.granularity = types.GranularityDay
		w.to = startOfDay(now).AddDate(0, 0, 1)
		w.from = w.to.AddDate(0, 0, -days)
		w.prevFrom = w.from.AddDate(0, 0, -days)
		for t := w.from; t.Before(w.to); t = t.AddDate(0, 0, 1) {
			w.buckets = append(w.buckets, types.DashboardBucket{Label: t.Format("2006-01-02"), Start: t})
		}
	case "365d", "1y":
		w.granularity = types.GranularityMonth
		w.to = startOfMonth(now).AddDate(0, 1, 0)
		w.from = w.to.AddDate(0, -12, 0)
		w.prevFrom = w.from.AddDate(0, -12, 0)
		for t := w.from; t.Before(w.to); t = t.AddDate(0, 1, 0) {
			w.buckets = append(w.buckets, types.DashboardBucket{Label: t.Format("2006-01"), Start: t})
		}
	default:
		return nil, invalid("period", fmt.Sprintf("unsupported period %q, use 7d, 30d or 365d", period))
	}
	for i := range w.buckets {
		w.buckets[i].Revenue = decimal.Zero
	}
	return w, nil
}

func (w *window) bucketIndex(t time.Time) int {
	t = t.In(w.from.Location())
	if t.Before(w.from) || !t.Before(w.to) {
		return -1
	}
	if w.granularity == types.GranularityDay {
		return int(startOfDay(t).Sub(w.from).Hours()+12) / 24
	}
	return (t.Year()-w.from.Year())*12 + int(t.Month()) - int(w.from.Month())
}

// totals 已取消订单不计入营收与订单数
func totals(orders []models.Order) types.PeriodTotals {
	res := types.PeriodTotals{Revenue: decimal.Zero}
	for _, o := range orders {
		if o.Status == models.OrderStatusCancelled {
			continue
		}
		res.Revenue = res.Revenue.Add(o.TotalAmount)
		res.Orders++
	}
	res.Revenue = money.Round2(res.Revenue)
	return res
}

func (d *DashboardService) Summary(ctx context.Context, period string) (*types.DashboardSummary, error) {
	w, err := buildWindow(period, d.now())
	if err != nil {
		return nil, err
	}

	var current, previous []models.Order
	p := pool.New().WithContext(ctx).WithCancelOnError()
	p.Go(func(ctx context.Context) error {
		var err error
		current, err = d.OrderDAO.ListStats(ctx, w.from, w.to)
		return err
	})
	p.Go(func(ctx context.Context) error {
		var err error
		previous, err = d.OrderDAO.ListStats(ctx, w.prevFrom, w.from)
		return err
	})
	if err := p.Wait(); err != nil {
		return nil, err
	}

	for _, o := range current {
		if o.Status == models.OrderStatusCancelled {
			continue
		}
		if i := w.bucketIndex(o.CreatedAt); i >= 0 && i < len(w.buckets) {
			w.buckets[i].Revenue = w.buckets[i].Revenue.Add(o.TotalAmount)
			w.buckets[i].Orders++
		}
	}

	cur, prev := totals(current), totals(previous)
	if period == "" {
		period = "7d"
	}
	return &types.DashboardSummary{
		Period:       period,
		Granularity:  w.granularity,
		From:         w.from,
		To:           w.to,
		Buckets:      w.buckets,
		Current:      cur,
		Previous:     prev,
		RevenueTrend: money.Trend(cur.Revenue, prev.Revenue),
		OrdersTrend:  money.Trend(decimal.NewFromInt(int64(cur.Orders)), decimal.NewFromInt(int64(prev.Orders))),
	}, nil
}
