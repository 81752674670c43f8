package scoring

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"EdgeScore/internal/domain/models"
)

// Modifier is an exception-rule action applied to a finished signal.
type Modifier string

const (
	ModInvert Modifier = "invert"
	ModIgnore Modifier = "ignore"
	ModDouble Modifier = "double"
	ModHalve  Modifier = "halve"
)

// MatchKind selects how an exception rule is matched against an asset.
type MatchKind string

const (
	MatchSymbol MatchKind = "symbol"
	MatchClass  MatchKind = "class"
	MatchGlobal MatchKind = "global"
)

// ExceptionRule is one ordered per-asset override. Rules are evaluated in
// order and only the first match is applied.
type ExceptionRule struct {
	Match    MatchKind         `yaml:"match" json:"match"`
	Symbol   string            `yaml:"symbol,omitempty" json:"symbol,omitempty"`
	Class    models.AssetClass `yaml:"class,omitempty" json:"class,omitempty"`
	Modifier Modifier          `yaml:"modifier" json:"modifier"`
	Reason   string            `yaml:"reason,omitempty" json:"reason,omitempty"`
}

// MacroIndicatorConfig describes how one economic indicator is scored.
type MacroIndicatorConfig struct {
	Key         string          `yaml:"key" json:"key"`
	Name        string          `yaml:"name" json:"name"`
	Category    models.Category `yaml:"category" json:"category"`
	SurpriseStd float64         `yaml:"surprise_std" json:"surprise_std"`
	Inverted    bool            `yaml:"inverted" json:"inverted"`
	Unit        string          `yaml:"unit,omitempty" json:"unit,omitempty"`
	Exceptions  []ExceptionRule `yaml:"exceptions,omitempty" json:"exceptions,omitempty"`
}

// CategoryWeights holds one weight per fixed category. Weights need not sum
// to one; the composer normalizes.
type CategoryWeights struct {
	Technical  float64 `yaml:"technical" json:"technical"`
	Sentiment  float64 `yaml:"sentiment" json:"sentiment"`
	COT        float64 `yaml:"cot" json:"cot"`
	EcoGrowth  float64 `yaml:"eco_growth" json:"eco_growth"`
	Inflation  float64 `yaml:"inflation" json:"inflation"`
	Jobs       float64 `yaml:"jobs" json:"jobs"`
	Rates      float64 `yaml:"rates" json:"rates"`
	Confidence float64 `yaml:"confidence" json:"confidence"`
}

// Get returns the weight for cat.
func (w CategoryWeights) Get(cat models.Category) float64 {
	switch cat {
	case models.CatTechnical:
		return w.Technical
	case models.CatSentiment:
		return w.Sentiment
	case models.CatCOT:
		return w.COT
	case models.CatEcoGrowth:
		return w.EcoGrowth
	case models.CatInflation:
		return w.Inflation
	case models.CatJobs:
		return w.Jobs
	case models.CatRates:
		return w.Rates
	case models.CatConfidence:
		return w.Confidence
	}
	return 0
}

// Sum returns the total of all category weights.
func (w CategoryWeights) Sum() float64 {
	return w.Technical + w.Sentiment + w.COT + w.EcoGrowth +
		w.Inflation + w.Jobs + w.Rates + w.Confidence
}

// COTParams are the thresholds for the three COT readings.
type COTParams struct {
	SignificantChangePct float64 `yaml:"significant_change_pct" json:"significant_change_pct"`
	CrowdedPercentile    float64 `yaml:"crowded_percentile" json:"crowded_percentile"`
	ExtremePercentile    float64 `yaml:"extreme_percentile" json:"extreme_percentile"`
	MinHistory           int     `yaml:"min_history" json:"min_history"`
	FullWindow           int     `yaml:"full_window" json:"full_window"`
}

// SentimentParams are the contrarian retail-positioning thresholds.
type SentimentParams struct {
	ExtremeLongPct  float64 `yaml:"extreme_long_pct" json:"extreme_long_pct"`
	ModerateLongPct float64 `yaml:"moderate_long_pct" json:"moderate_long_pct"`
	ModerateShortPct float64 `yaml:"moderate_short_pct" json:"moderate_short_pct"`
	ExtremeShortPct  float64 `yaml:"extreme_short_pct" json:"extreme_short_pct"`
}

// SeasonalityParams are the monthly average-return bands.
type SeasonalityParams struct {
	StrongPct  float64 `yaml:"strong_pct" json:"strong_pct"`
	MildPct    float64 `yaml:"mild_pct" json:"mild_pct"`
	MinWinRate float64 `yaml:"min_win_rate" json:"min_win_rate"`
}

// Config is the full immutable scoring configuration. It is built once at
// startup (or per test) and passed by value into every scoring call; the
// engine never mutates it.
type Config struct {
	Version     string                 `yaml:"version" json:"version"`
	Weights     CategoryWeights        `yaml:"weights" json:"weights"`
	Macro       []MacroIndicatorConfig `yaml:"macro" json:"macro"`
	COT         COTParams              `yaml:"cot" json:"cot"`
	Sentiment   SentimentParams        `yaml:"sentiment" json:"sentiment"`
	Seasonality SeasonalityParams      `yaml:"seasonality" json:"seasonality"`
	Exceptions  []ExceptionRule        `yaml:"exceptions,omitempty" json:"exceptions,omitempty"`

	// CurrencyEconomies maps ISO currency codes to economy codes for FX
	// pair resolution.
	CurrencyEconomies map[string]string `yaml:"currency_economies" json:"currency_economies"`

	HeatmapColumns []models.HeatmapColumn `yaml:"heatmap_columns" json:"heatmap_columns"`

	EnableCOT       bool `yaml:"enable_cot" json:"enable_cot"`
	EnableSentiment bool `yaml:"enable_sentiment" json:"enable_sentiment"`
}

// Validate rejects configurations the engine cannot score with.
func (c Config) Validate() error {
	if c.Version == "" {
		return fmt.Errorf("scoring version is required")
	}
	if c.Weights.Sum() <= 0 {
		return fmt.Errorf("category weights must sum to a positive value")
	}
	for _, mc := range c.Macro {
		if mc.Key == "" {
			return fmt.Errorf("macro indicator without a key")
		}
		if mc.SurpriseStd < 0 {
			return fmt.Errorf("macro indicator %s: negative surprise_std", mc.Key)
		}
	}
	return nil
}

// LoadConfig reads a scoring parameter file. Fields absent from the file keep
// their default values.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read scoring config: %w", err)
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse scoring config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("validate scoring config: %w", err)
	}
	return cfg, nil
}

// DefaultConfig returns the stock scoring configuration. Tests and the
// service fall back to it when no scoring section is configured.
func DefaultConfig() Config {
	return Config{
		Version: "v1",
		Weights: CategoryWeights{
			Technical:  1.0,
			Sentiment:  1.0,
			COT:        1.0,
			EcoGrowth:  1.0,
			Inflation:  1.0,
			Jobs:       1.0,
			Rates:      1.0,
			Confidence: 1.0,
		},
		Macro: []MacroIndicatorConfig{
			{Key: "gdp", Name: "GDP Growth", Category: models.CatEcoGrowth, SurpriseStd: 0.3, Unit: "%"},
			{Key: "mpmi", Name: "Manufacturing PMI", Category: models.CatEcoGrowth, SurpriseStd: 1.5},
			{Key: "spmi", Name: "Services PMI", Category: models.CatEcoGrowth, SurpriseStd: 1.5},
			{Key: "retail_sales", Name: "Retail Sales", Category: models.CatEcoGrowth, SurpriseStd: 0.5, Unit: "%"},
			{Key: "cpi", Name: "CPI YoY", Category: models.CatInflation, SurpriseStd: 0.2, Unit: "%"},
			{Key: "ppi", Name: "PPI YoY", Category: models.CatInflation, SurpriseStd: 0.4, Unit: "%"},
			{Key: "pce", Name: "Core PCE", Category: models.CatInflation, SurpriseStd: 0.15, Unit: "%"},
			{Key: "nfp", Name: "Non-Farm Payrolls", Category: models.CatJobs, SurpriseStd: 75, Unit: "k"},
			{Key: "unemployment", Name: "Unemployment Rate", Category: models.CatJobs, SurpriseStd: 0.15, Inverted: true, Unit: "%"},
			{Key: "claims", Name: "Jobless Claims", Category: models.CatJobs, SurpriseStd: 20, Inverted: true, Unit: "k"},
			{Key: "consumer_confidence", Name: "Consumer Confidence", Category: models.CatConfidence, SurpriseStd: 4},
		},
		COT: COTParams{
			SignificantChangePct: 5,
			CrowdedPercentile:    80,
			ExtremePercentile:    95,
			MinHistory:           10,
			FullWindow:           52,
		},
		Sentiment: SentimentParams{
			ExtremeLongPct:   75,
			ModerateLongPct:  60,
			ModerateShortPct: 40,
			ExtremeShortPct:  25,
		},
		Seasonality: SeasonalityParams{
			StrongPct:  1.0,
			MildPct:    0.5,
			MinWinRate: 0.55,
		},
		Exceptions: []ExceptionRule{
			{Match: MatchSymbol, Symbol: "XAGUSD", Modifier: ModHalve, Reason: "thin silver macro linkage"},
		},
		CurrencyEconomies: map[string]string{
			"USD": "US", "EUR": "EU", "GBP": "GB", "JPY": "JP",
			"AUD": "AU", "NZD": "NZ", "CAD": "CA", "CHF": "CH", "CNY": "CN",
		},
		HeatmapColumns: []models.HeatmapColumn{
			{Key: "trend_daily", Label: "Trend D", Metric: MetricTrendDaily},
			{Key: "trend_4h", Label: "Trend 4H", Metric: MetricTrend4H},
			{Key: "rsi", Label: "RSI", Metric: MetricRSI},
			{Key: "sma", Label: "SMA 200", Metric: MetricSMA},
			{Key: "seasonality", Label: "Seasonality", Metric: MetricSeasonality},
			{Key: "cot_net", Label: "COT Net", Metric: MetricCOTNet},
			{Key: "cot_percentile", Label: "COT %ile", Metric: MetricCOTPercentile},
			{Key: "sentiment", Label: "Retail", Metric: MetricSentimentContrarian},
			{Key: "gdp", Label: "GDP", Metric: "macro_gdp"},
			{Key: "cpi", Label: "CPI", Metric: "macro_cpi"},
			{Key: "nfp", Label: "NFP", Metric: "macro_nfp"},
			{Key: "rate", Label: "Policy Rate", Metric: MetricPolicyRate},
			{Key: "curve", Label: "2s10s", Metric: MetricYieldCurve},
		},
		EnableCOT:       true,
		EnableSentiment: true,
	}
}
