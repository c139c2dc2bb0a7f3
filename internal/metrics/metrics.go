package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	BookmarkCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "app_bookmark_created_total",
		Help: "Total number of bookmarks created.",
	})
	BookmarksResetTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "app_bookmarks_reset_total",
		Help: "Total number of times the bookmark collection was cleared.",
	})
	SummaryGeneratedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "app_summary_generated_total",
		Help: "Total number of summaries generated by the language model.",
	})
	SummaryFallbackTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "app_summary_fallback_total",
		Help: "Total number of pages that could not be loaded and got the fallback summary.",
	})
	InferenceErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "app_inference_errors_total",
		Help: "Total number of failed language model calls.",
	})

	// Page fetch metrics
	RedirectsFollowedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "app_fetch_redirects_followed_total",
		Help: "Total number of redirect responses followed while fetching pages.",
	})
	FetchDurationSeconds = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "app_fetch_duration_seconds",
		Help:    "Duration of page fetches including redirects, in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"outcome"}) // outcome: "ok", "fallback" or "error"
	InferenceDurationSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "app_inference_duration_seconds",
		Help:    "Duration of language model calls in seconds.",
		Buckets: []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120, 300},
	})
)
