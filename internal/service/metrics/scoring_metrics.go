package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	ScoringLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "edgescore",
			Subsystem: "scoring",
			Name:      "latency_seconds",
			Help:      "Latency of scoring endpoints",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)

	ScoringErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "edgescore",
			Subsystem: "scoring",
			Name:      "errors_total",
			Help:      "Errors by scoring endpoint",
		},
		[]string{"endpoint"},
	)

	ScorecardsComputed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "edgescore",
			Subsystem: "scoring",
			Name:      "scorecards_total",
			Help:      "Scorecards computed by asset class",
		},
		[]string{"class"},
	)

	MissingData = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "edgescore",
			Subsystem: "scoring",
			Name:      "missing_data_total",
			Help:      "Missing data sources observed while scoring",
		},
		[]string{"source"},
	)

	CacheHits = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "edgescore",
			Subsystem: "cache",
			Name:      "hits_total",
			Help:      "Response cache hits by endpoint",
		},
		[]string{"endpoint"},
	)

	CacheMisses = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "edgescore",
			Subsystem: "cache",
			Name:      "misses_total",
			Help:      "Response cache misses by endpoint",
		},
		[]string{"endpoint"},
	)
)

func Register() {
	once.Do(func() {
		prometheus.MustRegister(
			ScoringLatency,
			ScoringErrors,
			ScorecardsComputed,
			MissingData,
			CacheHits,
			CacheMisses,
		)
	})
}
