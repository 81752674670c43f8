package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	scorecards  *prometheus.CounterVec
	errorsTotal *prometheus.CounterVec
	totalScore  *prometheus.GaugeVec
	latency     *prometheus.HistogramVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		scorecards: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "edgescore_scorecards_computed_total",
				Help: "Total number of scorecards computed",
			},
			[]string{"class"},
		),
		errorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "edgescore_pipeline_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		totalScore: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "edgescore_total_score",
				Help: "Last computed total score for a symbol",
			},
			[]string{"symbol"},
		),
		latency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "edgescore_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

// RecordScorecard records one computed scorecard by asset class.
func (r *Recorder) RecordScorecard(class string) {
	r.scorecards.WithLabelValues(class).Inc()
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordTotalScore records the latest total score for a symbol.
func (r *Recorder) RecordTotalScore(symbol string, score float64) {
	r.totalScore.WithLabelValues(symbol).Set(score)
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}
