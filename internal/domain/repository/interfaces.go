package repository

// Metrics is the observability port for the scoring pipeline.
type Metrics interface {
	RecordScorecard(class string)
	RecordError(kind string)
	RecordTotalScore(symbol string, score float64)
	RecordLatency(op string, seconds float64)
}
