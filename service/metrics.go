package service

import "github.com/prometheus/client_golang/prometheus"

var (
	ordersCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "storefront_orders_created_total",
		Help: "Orders persisted successfully",
	})

	orderTransitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_order_transitions_total",
			Help: "Applied order status transitions",
		},
		[]string{"from", "to"},
	)

	// 条件扣减失败（库存不足）的次数
	stockRejections = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "storefront_stock_rejections_total",
		Help: "Stock adjustments rejected because the variant would go negative",
	})
)

func init() {
	prometheus.MustRegister(ordersCreated, orderTransitions, stockRejections)
}
