package scoring

import (
	"reflect"
	"testing"
	"time"

	"EdgeScore/internal/domain/models"
)

func hasTag(tags []string, tag string) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}

func findReading(card models.AssetScorecard, metric string) *models.SignalInput {
	for i := range card.Readings {
		if card.Readings[i].Metric == metric {
			return &card.Readings[i]
		}
	}
	return nil
}

func TestScoreEmptySnapshot(t *testing.T) {
	engine := New(DefaultConfig())
	card := engine.Score(models.AssetDataSnapshot{Symbol: "EURUSD", Class: models.ClassFX}, testTime)

	if card.TotalScore != 0 {
		t.Fatalf("total = %v, want 0", card.TotalScore)
	}
	if card.Bias != models.BiasNeutral {
		t.Fatalf("bias = %s, want neutral", card.Bias)
	}
	if len(card.Readings) != 0 {
		t.Fatalf("readings = %d, want 0", len(card.Readings))
	}
	if len(card.MissingData) == 0 {
		t.Fatal("missing_data must not be empty for an empty snapshot")
	}
	if card.Readings == nil || card.MissingData == nil {
		t.Fatal("readings and missing_data must never be nil")
	}
	for _, cat := range models.AllCategories {
		if sc := card.Categories.Get(cat); sc.Category != cat {
			t.Fatalf("category %s absent from empty scorecard", cat)
		}
	}
}

func TestScoreIdempotent(t *testing.T) {
	engine := New(DefaultConfig())
	snap := fxSnapshot()

	a := engine.Score(snap, testTime)
	b := engine.Score(snap, testTime)

	if a.TotalScore != b.TotalScore || a.Bias != b.Bias {
		t.Fatalf("re-scoring diverged: %v/%s vs %v/%s", a.TotalScore, a.Bias, b.TotalScore, b.Bias)
	}
	if !reflect.DeepEqual(a.Readings, b.Readings) {
		t.Fatal("re-scoring produced different readings")
	}
}

func TestScoreInvariants(t *testing.T) {
	engine := New(DefaultConfig())
	snaps := []models.AssetDataSnapshot{
		{},
		fxSnapshot(),
		metalSnapshot(1.0),
		metalSnapshot(-1.0),
	}
	for i, snap := range snaps {
		card := engine.Score(snap, testTime)
		if card.TotalScore < -10 || card.TotalScore > 10 {
			t.Fatalf("snapshot %d: total %v out of range", i, card.TotalScore)
		}
		for _, sig := range card.Readings {
			if sig.Score < -2 || sig.Score > 2 {
				t.Fatalf("snapshot %d: %s score %d out of range", i, sig.Metric, sig.Score)
			}
			if sig.Confidence < 0 || sig.Confidence > 1 {
				t.Fatalf("snapshot %d: %s confidence %v out of range", i, sig.Metric, sig.Confidence)
			}
		}
	}
}

func TestScoreStrongTechnicalsNoPositioning(t *testing.T) {
	engine := New(DefaultConfig())
	rsi := 95.0
	snap := models.AssetDataSnapshot{
		Symbol: "BTCUSD",
		Class:  models.ClassCrypto,
		Technical: &models.TechnicalRecord{
			Trend4H:    models.TrendStrongUp,
			TrendDaily: models.TrendStrongUp,
			RSI:        &rsi,
			CapturedAt: testTime,
		},
	}
	card := engine.Score(snap, testTime)

	r := findReading(card, MetricRSI)
	if r == nil {
		t.Fatal("expected an RSI reading")
	}
	if r.Score != 2 {
		t.Fatalf("RSI 95 score = %d, want +2 under momentum-confirmation semantics", r.Score)
	}
	for _, metric := range []string{MetricTrend4H, MetricTrendDaily} {
		if tr := findReading(card, metric); tr == nil || tr.Score != 2 {
			t.Fatalf("%s reading = %+v, want +2", metric, tr)
		}
	}
	if !hasTag(card.MissingData, "cot") || !hasTag(card.MissingData, "sentiment") {
		t.Fatalf("missing_data = %v, want cot and sentiment tagged", card.MissingData)
	}
}

func TestScoreFXPairRelativeGDP(t *testing.T) {
	engine := New(DefaultConfig())
	snap := models.AssetDataSnapshot{
		Symbol:        "EURUSD",
		Class:         models.ClassFX,
		BaseCurrency:  "EUR",
		QuoteCurrency: "USD",
		Macro: map[string]*models.MacroRelease{
			"EU:gdp": {IndicatorKey: "gdp", EconomyCode: "EU", Actual: f64(0.1), Forecast: f64(0.2), ReleasedAt: testTime},
			"US:gdp": {IndicatorKey: "gdp", EconomyCode: "US", Actual: f64(2.3), Forecast: f64(2.0), ReleasedAt: testTime},
		},
	}
	card := engine.Score(snap, testTime)

	gdp := findReading(card, "macro_gdp")
	if gdp == nil {
		t.Fatal("expected a pair-relative GDP reading")
	}
	// EU surprise -0.33 sigma -> 0, US surprise +1.0 sigma -> +1, net -1
	if gdp.Score != -1 {
		t.Fatalf("pair-relative GDP score = %d, want -1", gdp.Score)
	}
	if gdp.Confidence != 1.0 {
		t.Fatalf("confidence = %v, want 1.0 with both sides present", gdp.Confidence)
	}
}

func TestScoreFXOneSidedMacro(t *testing.T) {
	engine := New(DefaultConfig())
	snap := models.AssetDataSnapshot{
		Symbol:        "EURUSD",
		Class:         models.ClassFX,
		BaseCurrency:  "EUR",
		QuoteCurrency: "USD",
		Macro: map[string]*models.MacroRelease{
			"US:cpi": {IndicatorKey: "cpi", EconomyCode: "US", Actual: f64(3.4), Forecast: f64(3.0), ReleasedAt: testTime},
		},
	}
	card := engine.Score(snap, testTime)

	cpi := findReading(card, "macro_cpi")
	if cpi == nil {
		t.Fatal("one-sided release must still produce a pair reading")
	}
	if cpi.Confidence != 0.5 {
		t.Fatalf("confidence = %v, want 0.5 with one side missing", cpi.Confidence)
	}
	// US is the quote economy: a hot US print scores against the pair.
	if cpi.Score != -2 {
		t.Fatalf("score = %d, want -2 (quote-side +2 negated)", cpi.Score)
	}
	if !hasTag(card.MissingData, "gdp") {
		t.Fatalf("missing_data = %v, want gdp tagged", card.MissingData)
	}
}

func TestScoreMetalWeightSignInversion(t *testing.T) {
	engine := New(DefaultConfig())

	direct := engine.Score(metalSnapshot(1.0), testTime)
	inverse := engine.Score(metalSnapshot(-1.0), testTime)

	d := findReading(direct, "macro_gdp")
	i := findReading(inverse, "macro_gdp")
	if d == nil || i == nil {
		t.Fatal("expected GDP readings on both snapshots")
	}
	if d.Score != 1 {
		t.Fatalf("direct score = %d, want +1", d.Score)
	}
	if i.Score != -1 {
		t.Fatalf("inverse-linked score = %d, want -1", i.Score)
	}
}

func TestScoreReadingOrder(t *testing.T) {
	engine := New(DefaultConfig())
	card := engine.Score(fxSnapshot(), testTime)

	if len(card.Readings) < 4 {
		t.Fatalf("expected a populated scorecard, got %d readings", len(card.Readings))
	}
	// Prefix grouping: technical block first, then seasonality, then COT,
	// then sentiment, then macro/rates.
	order := map[models.Category]int{
		models.CatTechnical: 0,
		models.CatCOT:       1,
		models.CatSentiment: 2,
	}
	last := -1
	for _, sig := range card.Readings {
		rank, ok := order[sig.Category]
		if !ok {
			break // macro/rates block, end of the fixed prefix
		}
		if rank < last {
			t.Fatalf("reading %s out of insertion order", sig.Metric)
		}
		last = rank
	}
}

func TestScoreDisabledSources(t *testing.T) {
	cfg := DefaultConfig()
	cfg.EnableCOT = false
	cfg.EnableSentiment = false
	engine := New(cfg)

	card := engine.Score(fxSnapshot(), testTime)
	if findReading(card, MetricCOTNet) != nil {
		t.Fatal("COT disabled but reading produced")
	}
	if findReading(card, MetricSentimentContrarian) != nil {
		t.Fatal("sentiment disabled but reading produced")
	}
	if hasTag(card.MissingData, "cot") || hasTag(card.MissingData, "sentiment") {
		t.Fatalf("disabled sources must not be tagged missing: %v", card.MissingData)
	}
}

func TestScoreFXRatesPairRelative(t *testing.T) {
	engine := New(DefaultConfig())
	snap := models.AssetDataSnapshot{
		Symbol:        "USDJPY",
		Class:         models.ClassFX,
		BaseCurrency:  "USD",
		QuoteCurrency: "JPY",
		Rates: map[string]*models.InterestRateRecord{
			"US": {EconomyCode: "US", PolicyRate: f64(5.25), EffectiveAt: testTime},
			"JP": {EconomyCode: "JP", PolicyRate: f64(0.1), EffectiveAt: testTime},
		},
	}
	card := engine.Score(snap, testTime)

	rate := findReading(card, MetricPolicyRate)
	if rate == nil {
		t.Fatal("expected a pair-relative rate reading")
	}
	// US +2 carry tier vs JP -2 tier, clamped to +2.
	if rate.Score != 2 {
		t.Fatalf("carry score = %d, want +2", rate.Score)
	}
}

func TestScoreFreshness(t *testing.T) {
	engine := New(DefaultConfig())
	card := engine.Score(fxSnapshot(), testTime)

	for _, src := range []string{"technical", "cot", "sentiment", "macro"} {
		if _, ok := card.Freshness[src]; !ok {
			t.Fatalf("freshness missing %q: %v", src, card.Freshness)
		}
	}
}

// fxSnapshot is a fully-populated EURUSD snapshot.
func fxSnapshot() models.AssetDataSnapshot {
	hist := make([]models.COTRecord, 30)
	for i := range hist {
		hist[i] = models.COTRecord{
			ReportDate:       testTime.AddDate(0, 0, -7*(30-i)),
			NetNonCommercial: float64(10000 + i*500),
		}
	}
	rsi := 62.0
	dist := 1.8
	return models.AssetDataSnapshot{
		Symbol:        "EURUSD",
		Name:          "Euro / US Dollar",
		Class:         models.ClassFX,
		BaseCurrency:  "EUR",
		QuoteCurrency: "USD",
		Technical: &models.TechnicalRecord{
			Trend4H:       models.TrendUp,
			TrendDaily:    models.TrendUp,
			RSI:           &rsi,
			PctFromSMA200: &dist,
			SMACount:      4,
			CapturedAt:    testTime,
		},
		Seasonality: &models.SeasonalityRecord{Month: time.August, AvgReturnPct: 0.6, WinRate: 0.6, Years: 10},
		COT:         &models.COTRecord{ReportDate: testTime, NetNonCommercial: 26000},
		COTHistory:  hist,
		Sentiment:   &models.SentimentRecord{LongPct: 38, ShortPct: 62, RecordedAt: testTime},
		Macro: map[string]*models.MacroRelease{
			"EU:gdp": {IndicatorKey: "gdp", EconomyCode: "EU", Actual: f64(0.4), Forecast: f64(0.2), ReleasedAt: testTime},
			"US:gdp": {IndicatorKey: "gdp", EconomyCode: "US", Actual: f64(2.0), Forecast: f64(2.1), ReleasedAt: testTime},
			"EU:cpi": {IndicatorKey: "cpi", EconomyCode: "EU", Actual: f64(2.4), Forecast: f64(2.5), ReleasedAt: testTime},
			"US:cpi": {IndicatorKey: "cpi", EconomyCode: "US", Actual: f64(3.1), Forecast: f64(3.1), ReleasedAt: testTime},
		},
		Rates: map[string]*models.InterestRateRecord{
			"EU": {EconomyCode: "EU", PolicyRate: f64(2.15), Yield10Y: f64(2.6), Yield2Y: f64(2.0), EffectiveAt: testTime},
			"US": {EconomyCode: "US", PolicyRate: f64(4.5), Yield10Y: f64(4.2), Yield2Y: f64(3.9), EffectiveAt: testTime},
		},
	}
}

// metalSnapshot is a gold-like asset tied to the US economy with the given
// link weight.
func metalSnapshot(weight float64) models.AssetDataSnapshot {
	return models.AssetDataSnapshot{
		Symbol: "XAUUSD",
		Name:   "Gold",
		Class:  models.ClassMetal,
		Economies: []models.EconomyLink{
			{EconomyCode: "US", Role: models.RolePrimary, Weight: weight},
		},
		Macro: map[string]*models.MacroRelease{
			"US:gdp": {IndicatorKey: "gdp", EconomyCode: "US", Actual: f64(2.3), Forecast: f64(2.0), ReleasedAt: testTime},
		},
	}
}
