package metrics

import "github.com/prometheus/client_golang/prometheus"

// Search aggregation Prometheus metrics.
var (
	CacheLookupsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "searchd",
			Name:      "cache_lookups_total",
			Help:      "Result cache lookups by outcome",
		},
		[]string{"result"}, // "hit" / "miss"
	)

	CacheErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "searchd",
			Name:      "cache_errors_total",
			Help:      "Swallowed cache backend errors",
		},
		[]string{"op"}, // "get" / "set" / "delete" / "clear"
	)

	ClassifierRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "searchd",
			Name:      "classifier_requests_total",
			Help:      "Intent classification outcomes",
		},
		[]string{"outcome"}, // "classified" / "fallback"
	)

	SearcherFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "searchd",
			Name:      "searcher_failures_total",
			Help:      "Category searcher failures degraded to empty results",
		},
		[]string{"category"},
	)

	SearchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "searchd",
			Name:      "search_duration_seconds",
			Help:      "End-to-end search orchestration duration in seconds",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"path"}, // "basic" / "advanced"
	)
)

var searchMetricsRegistered bool

// RegisterSearchMetrics registers Prometheus search metrics. Must be called once from main.
func RegisterSearchMetrics() {
	if searchMetricsRegistered {
		return
	}
	prometheus.MustRegister(CacheLookupsTotal)
	prometheus.MustRegister(CacheErrorsTotal)
	prometheus.MustRegister(ClassifierRequestsTotal)
	prometheus.MustRegister(SearcherFailuresTotal)
	prometheus.MustRegister(SearchDuration)
	searchMetricsRegistered = true
}
