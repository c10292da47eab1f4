package metrics

import "github.com/prometheus/client_golang/prometheus"

// Search and curation Prometheus metrics.
var (
	NearbySearchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "nearby",
			Name:      "searches_total",
			Help:      "Total number of nearby searches",
		},
		[]string{"status"},
	)

	CurationDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "nearby",
			Name:      "curation_duration_seconds",
			Help:      "Curation pipeline duration in seconds",
			Buckets:   []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1},
		},
	)

	CurationCandidatesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "nearby",
			Name:      "curation_candidates_total",
			Help:      "Total raw candidates fed into curation",
		},
	)

	CurationResultsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "nearby",
			Name:      "curation_results_total",
			Help:      "Total curated results returned",
		},
	)

	ResultCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "nearby",
			Name:      "result_cache_total",
			Help:      "Result cache hits and misses",
		},
		[]string{"result"}, // "hit" / "miss" / "error"
	)
)

var curationMetricsRegistered bool

// RegisterCurationMetrics registers Prometheus search metrics. Must be called once from main.
func RegisterCurationMetrics() {
	if curationMetricsRegistered {
		return
	}
	prometheus.MustRegister(NearbySearchesTotal)
	prometheus.MustRegister(CurationDuration)
	prometheus.MustRegister(CurationCandidatesTotal)
	prometheus.MustRegister(CurationResultsTotal)
	prometheus.MustRegister(ResultCacheTotal)
	curationMetricsRegistered = true
}
