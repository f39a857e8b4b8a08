package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	OrderStatusTransitions = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "order_status_transitions_total",
		Help: "Order status transitions applied, labelled by source and target status",
	}, []string{"from", "to"})

	WalletCreditTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "vendor_wallet_credit_total",
		Help: "Total amount credited to vendor wallets from paid orders",
	})

	VendorAnalyticsDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "vendor_analytics_latency_seconds",
		Help:    "Latency of the vendor analytics endpoint",
		Buckets: prometheus.DefBuckets,
	})

	CheckoutTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "orders_created_total",
		Help: "Total orders created through checkout",
	})
)

func Init() {
	prometheus.MustRegister(
		OrderStatusTransitions,
		WalletCreditTotal,
		VendorAnalyticsDuration,
		CheckoutTotal,
	)
}
