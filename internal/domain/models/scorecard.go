package models

import "time"

// Direction is the bullish/neutral/bearish reading of a signal.
type Direction string

const (
	DirBullish Direction = "bullish"
	DirNeutral Direction = "neutral"
	DirBearish Direction = "bearish"
)

// DirectionForScore derives a direction from a signed score.
func DirectionForScore(score float64) Direction {
	switch {
	case score > 0:
		return DirBullish
	case score < 0:
		return DirBearish
	default:
		return DirNeutral
	}
}

// BiasLabel is the discrete label derived from the total score.
type BiasLabel string

const (
	BiasVeryBullish BiasLabel = "very_bullish"
	BiasBullish     BiasLabel = "bullish"
	BiasNeutral     BiasLabel = "neutral"
	BiasBearish     BiasLabel = "bearish"
	BiasVeryBearish BiasLabel = "very_bearish"
)

// Category tags a signal with the scoring bucket it belongs to.
type Category string

const (
	CatTechnical  Category = "technical"
	CatSentiment  Category = "sentiment"
	CatCOT        Category = "cot"
	CatEcoGrowth  Category = "eco_growth"
	CatInflation  Category = "inflation"
	CatJobs       Category = "jobs"
	CatRates      Category = "rates"
	CatConfidence Category = "confidence"
)

// AllCategories lists the eight fixed categories in presentation order.
var AllCategories = [8]Category{
	CatTechnical, CatSentiment, CatCOT, CatEcoGrowth,
	CatInflation, CatJobs, CatRates, CatConfidence,
}

// SignalInput is the atomic unit of the scoring pipeline: one scored reading
// of one metric. Immutable once produced.
type SignalInput struct {
	Metric      string    `json:"metric"`
	Category    Category  `json:"category"`
	Value       *float64  `json:"value,omitempty"`
	Direction   Direction `json:"direction"`
	Score       int       `json:"score"`      // always in {-2..2}
	Confidence  float64   `json:"confidence"` // always in [0,1]
	Explanation string    `json:"explanation"`
	Timestamp   time.Time `json:"timestamp"`
}

// EconomySignal is a SignalInput attributed to a single economy. It only
// exists as an intermediate value before pair-relative differencing.
type EconomySignal struct {
	EconomyCode string
	Signal      SignalInput
}

// CategoryScore is one category's confidence-weighted aggregate.
type CategoryScore struct {
	Category    Category      `json:"category"`
	Score       float64       `json:"score"`
	Direction   Direction     `json:"direction"`
	SignalCount int           `json:"signal_count"`
	Coverage    float64       `json:"coverage"`
	Signals     []SignalInput `json:"signals,omitempty"`
}

// CategorySet holds every category's aggregate as a fixed record, so a
// scorecard can never be missing a category.
type CategorySet struct {
	Technical  CategoryScore `json:"technical"`
	Sentiment  CategoryScore `json:"sentiment"`
	COT        CategoryScore `json:"cot"`
	EcoGrowth  CategoryScore `json:"eco_growth"`
	Inflation  CategoryScore `json:"inflation"`
	Jobs       CategoryScore `json:"jobs"`
	Rates      CategoryScore `json:"rates"`
	Confidence CategoryScore `json:"confidence"`
}

// Get returns the aggregate for cat.
func (cs *CategorySet) Get(cat Category) CategoryScore {
	switch cat {
	case CatTechnical:
		return cs.Technical
	case CatSentiment:
		return cs.Sentiment
	case CatCOT:
		return cs.COT
	case CatEcoGrowth:
		return cs.EcoGrowth
	case CatInflation:
		return cs.Inflation
	case CatJobs:
		return cs.Jobs
	case CatRates:
		return cs.Rates
	case CatConfidence:
		return cs.Confidence
	}
	return CategoryScore{}
}

// Set stores the aggregate for cat.
func (cs *CategorySet) Set(cat Category, sc CategoryScore) {
	switch cat {
	case CatTechnical:
		cs.Technical = sc
	case CatSentiment:
		cs.Sentiment = sc
	case CatCOT:
		cs.COT = sc
	case CatEcoGrowth:
		cs.EcoGrowth = sc
	case CatInflation:
		cs.Inflation = sc
	case CatJobs:
		cs.Jobs = sc
	case CatRates:
		cs.Rates = sc
	case CatConfidence:
		cs.Confidence = sc
	}
}

// AssetScorecard is the final scoring output for one asset.
type AssetScorecard struct {
	Symbol     string     `json:"symbol"`
	Name       string     `json:"name,omitempty"`
	Class      AssetClass `json:"class"`
	Version    string     `json:"version"`
	ComputedAt time.Time  `json:"computed_at"`

	TotalScore float64   `json:"total_score"` // clamped to [-10,10]
	Bias       BiasLabel `json:"bias_label"`

	Categories  CategorySet          `json:"categories"`
	Readings    []SignalInput        `json:"readings"`
	MissingData []string             `json:"missing_data"`
	Freshness   map[string]time.Time `json:"freshness,omitempty"`
}

// TopSetupsEntry is one row of the ranked comparison view.
type TopSetupsEntry struct {
	Symbol     string             `json:"symbol"`
	Name       string             `json:"name,omitempty"`
	Class      AssetClass         `json:"class"`
	TotalScore float64            `json:"total_score"`
	Bias       BiasLabel          `json:"bias_label"`
	Scores     map[string]float64 `json:"scores"` // metric key -> signal score
}

// HeatmapColumn maps a fixed grid column to one metric key.
type HeatmapColumn struct {
	Key    string `json:"key" yaml:"key"`
	Label  string `json:"label" yaml:"label"`
	Metric string `json:"metric" yaml:"metric"`
}

// HeatmapRow is one scorecard projected onto the configured columns. A nil
// cell means the metric was absent from the scorecard's readings.
type HeatmapRow struct {
	Symbol     string    `json:"symbol"`
	TotalScore float64   `json:"total_score"`
	Bias       BiasLabel `json:"bias_label"`
	Cells      []*int    `json:"cells"`
}
