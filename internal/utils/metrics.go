package utils

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Store Metrics
var StoreQueryDurationSeconds = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "store_query_duration_seconds",
	Help:    "Duration of key-value store operations in seconds.",
	Buckets: prometheus.DefBuckets,
}, []string{"query_type", "repository", "status"})

var StoreQueryErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "store_query_errors_total",
	Help: "Total number of failed key-value store operations.",
}, []string{"query_type", "repository"})

// ObserveStoreQuery returns a func that records the duration of one store
// operation. Call it with the final error once the operation completes.
func ObserveStoreQuery(queryType, repository string) func(err error) {
	timer := prometheus.NewTimer(nil)
	return func(err error) {
		status := "success"
		if err != nil {
			status = "error"
			StoreQueryErrorsTotal.WithLabelValues(queryType, repository).Inc()
		}
		StoreQueryDurationSeconds.WithLabelValues(queryType, repository, status).Observe(timer.ObserveDuration().Seconds())
	}
}
