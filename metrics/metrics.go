package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "shuno",
			Name:      "http_requests_total",
			Help:      "HTTP requests by method and status.",
		},
		[]string{"method", "status"},
	)

	apiErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "shuno",
			Name:      "api_errors_total",
			Help:      "API errors by classification.",
		},
		[]string{"type"},
	)

	priceFallbacks = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "shuno",
			Name:      "price_fallbacks_total",
			Help:      "Order totals computed from the base price because period resolution failed.",
		},
	)

	autoConfirmed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "shuno",
			Name:      "orders_auto_confirmed_total",
			Help:      "Pending orders promoted to confirmed by the auto-confirm policy.",
		},
	)
)

// Register registers Prometheus metrics. Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(httpRequests, apiErrors, priceFallbacks, autoConfirmed)
	})
}

// IncHTTP increments the request counter for a method/status pair.
func IncHTTP(method, status string) {
	httpRequests.WithLabelValues(method, status).Inc()
}

// IncPriceFallback counts a base-price fallback during order pricing.
func IncPriceFallback() {
	priceFallbacks.Inc()
}

// AddAutoConfirmed counts orders confirmed by the auto-confirm batch.
func AddAutoConfirmed(n int64) {
	if n > 0 {
		autoConfirmed.Add(float64(n))
	}
}
