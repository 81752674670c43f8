package models

import "time"

// AssetClass classifies a tradeable instrument.
type AssetClass string

const (
	ClassFX        AssetClass = "fx"
	ClassMetal     AssetClass = "metal"
	ClassIndex     AssetClass = "index"
	ClassCrypto    AssetClass = "crypto"
	ClassCommodity AssetClass = "commodity"
)

// TrendState is the five-valued trend classification from the technical feed.
type TrendState string

const (
	TrendStrongUp   TrendState = "strong_up"
	TrendUp         TrendState = "up"
	TrendNeutral    TrendState = "neutral"
	TrendDown       TrendState = "down"
	TrendStrongDown TrendState = "strong_down"
)

// EconomyRole describes how an economy relates to an asset.
type EconomyRole string

const (
	RoleBase    EconomyRole = "base"
	RoleQuote   EconomyRole = "quote"
	RolePrimary EconomyRole = "primary"
)

// EconomyLink ties an asset to an economy. Weight carries a sign: a negative
// weight means the asset moves against that economy's data (e.g. gold vs US).
type EconomyLink struct {
	EconomyCode string      `json:"economy_code"`
	Role        EconomyRole `json:"role"`
	Weight      float64     `json:"weight"`
}

// COTRecord is one week of CFTC non-commercial positioning.
type COTRecord struct {
	ReportDate       time.Time `json:"report_date"`
	NetNonCommercial float64   `json:"net_non_commercial"`
	Longs            float64   `json:"longs,omitempty"`
	Shorts           float64   `json:"shorts,omitempty"`
}

// SentimentRecord is the latest retail long/short split for an asset.
type SentimentRecord struct {
	LongPct    float64   `json:"long_pct"`
	ShortPct   float64   `json:"short_pct"`
	RecordedAt time.Time `json:"recorded_at"`
}

// MacroRelease is the latest print of one economic indicator for one economy.
// Actual and Forecast are pointers: a release without both is unusable and
// must be skipped, never zero-scored.
type MacroRelease struct {
	IndicatorKey string     `json:"indicator_key"`
	EconomyCode  string     `json:"economy_code"`
	Actual       *float64   `json:"actual,omitempty"`
	Forecast     *float64   `json:"forecast,omitempty"`
	Previous     *float64   `json:"previous,omitempty"`
	ReleasedAt   time.Time  `json:"released_at"`
	NextRelease  *time.Time `json:"next_release,omitempty"`
}

// InterestRateRecord is the latest rate complex for one economy.
type InterestRateRecord struct {
	EconomyCode string    `json:"economy_code"`
	PolicyRate  *float64  `json:"policy_rate,omitempty"`
	Yield2Y     *float64  `json:"yield_2y,omitempty"`
	Yield10Y    *float64  `json:"yield_10y,omitempty"`
	EffectiveAt time.Time `json:"effective_at"`
}

// SeasonalityRecord is the ten-year seasonal profile for the current month.
type SeasonalityRecord struct {
	Month        time.Month `json:"month"`
	AvgReturnPct float64    `json:"avg_return_pct"`
	WinRate      float64    `json:"win_rate"`
	Years        int        `json:"years"`
}

// TechnicalRecord is the latest technical snapshot from the price feed.
type TechnicalRecord struct {
	Trend4H        TrendState `json:"trend_4h,omitempty"`
	TrendDaily     TrendState `json:"trend_daily,omitempty"`
	RSI            *float64   `json:"rsi,omitempty"`
	PctFromSMA200  *float64   `json:"pct_from_sma_200,omitempty"`
	SMACount       int        `json:"sma_count"`
	LastPrice      *float64   `json:"last_price,omitempty"`
	CapturedAt     time.Time  `json:"captured_at"`
}

// AssetDataSnapshot is the immutable input bundle for scoring one asset at
// one instant. Any field may be nil or empty; absence is an expected state,
// not an error.
type AssetDataSnapshot struct {
	Symbol        string      `json:"symbol"`
	Name          string      `json:"name,omitempty"`
	Class         AssetClass  `json:"class"`
	BaseCurrency  string      `json:"base_currency,omitempty"`
	QuoteCurrency string      `json:"quote_currency,omitempty"`

	Economies []EconomyLink `json:"economies,omitempty"`

	COT        *COTRecord  `json:"cot,omitempty"`
	COTHistory []COTRecord `json:"cot_history,omitempty"` // trailing window, oldest first, excluding COT

	Sentiment *SentimentRecord `json:"sentiment,omitempty"`

	// Macro is keyed "ECONOMY:indicator", e.g. "US:gdp".
	Macro map[string]*MacroRelease `json:"macro,omitempty"`

	// Rates is keyed by economy code.
	Rates map[string]*InterestRateRecord `json:"rates,omitempty"`

	Seasonality *SeasonalityRecord `json:"seasonality,omitempty"`
	Technical   *TechnicalRecord   `json:"technical,omitempty"`
}

// MacroKey builds the Macro map key for an economy/indicator pair.
func MacroKey(economy, indicator string) string {
	return economy + ":" + indicator
}

// PrimaryEconomy returns the link with role "primary", if any.
func (s *AssetDataSnapshot) PrimaryEconomy() *EconomyLink {
	for i := range s.Economies {
		if s.Economies[i].Role == RolePrimary {
			return &s.Economies[i]
		}
	}
	return nil
}
