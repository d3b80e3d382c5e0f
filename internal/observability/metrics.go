package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the application-level counters. Calculators are pure and
// cheap, so a counter per operation is all the engine needs; request
// latency lives on the HTTP layer.
type Metrics struct {
	CalculationsTotal *prometheus.CounterVec
	HTTPRequestsTotal *prometheus.CounterVec
}

func NewMetrics() *Metrics {
	return &Metrics{
		CalculationsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "metershare",
			Name:      "calculations_total",
			Help:      "Number of calculator invocations by operation.",
		}, []string{"op"}),
		HTTPRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "metershare",
			Name:      "http_requests_total",
			Help:      "Number of HTTP requests by method, path and status.",
		}, []string{"method", "path", "status"}),
	}
}
