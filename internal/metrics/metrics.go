// Package metrics exposes Prometheus counters and histograms for query
// execution, registered eagerly at init so any importer gets working
// /metrics output without further setup.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	QueriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "dnsx_queries_total", Help: "Total DNS queries sent, by transport and response code"},
		[]string{"transport", "rcode"},
	)
	QueryDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "dnsx_query_duration_seconds", Help: "Query round-trip latency, by transport", Buckets: prometheus.DefBuckets},
		[]string{"transport"},
	)
	RetriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "dnsx_retries_total", Help: "Total retry attempts, by transport"},
		[]string{"transport"},
	)
	TruncationFallbacksTotal = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "dnsx_truncation_fallbacks_total", Help: "Total UDP-to-TCP fallbacks triggered by a truncated response"},
	)
)

func init() {
	prometheus.MustRegister(QueriesTotal, QueryDuration, RetriesTotal, TruncationFallbacksTotal)
}

// Handler returns the /metrics HTTP handler for --metrics-addr.
func Handler() http.Handler {
	return promhttp.Handler()
}
