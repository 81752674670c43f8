package scoring

import (
	"testing"
	"time"

	"EdgeScore/internal/domain/models"
)

var testTime = time.Date(2026, 8, 14, 12, 0, 0, 0, time.UTC)

func TestScoreTrendLookup(t *testing.T) {
	tests := []struct {
		trend models.TrendState
		want  int
	}{
		{models.TrendStrongUp, 2},
		{models.TrendUp, 1},
		{models.TrendNeutral, 0},
		{models.TrendDown, -1},
		{models.TrendStrongDown, -2},
	}
	for _, tt := range tests {
		sig := scoreTrend(MetricTrendDaily, tt.trend, testTime)
		if sig == nil {
			t.Fatalf("%s: expected signal", tt.trend)
		}
		if sig.Score != tt.want {
			t.Fatalf("%s: score = %d, want %d", tt.trend, sig.Score, tt.want)
		}
		if sig.Confidence != 1.0 {
			t.Fatalf("%s: confidence = %v, want 1.0", tt.trend, sig.Confidence)
		}
	}
}

func TestScoreTrendAbsent(t *testing.T) {
	if sig := scoreTrend(MetricTrend4H, "", testTime); sig != nil {
		t.Fatalf("expected nil for empty trend, got %+v", sig)
	}
	if sig := scoreTrend(MetricTrend4H, "sideways", testTime); sig != nil {
		t.Fatalf("expected nil for unknown trend, got %+v", sig)
	}
}

func TestScoreRSIThresholds(t *testing.T) {
	tests := []struct {
		rsi  float64
		want int
	}{
		{95, 2},
		{70, 2},
		{69.9, 1},
		{55, 1},
		{50, 0},
		{45, -1},
		{31, -1},
		{30, -2},
		{5, -2},
	}
	for _, tt := range tests {
		sig := scoreRSI(&tt.rsi, testTime)
		if sig == nil {
			t.Fatalf("rsi %v: expected signal", tt.rsi)
		}
		if sig.Score != tt.want {
			t.Fatalf("rsi %v: score = %d, want %d", tt.rsi, sig.Score, tt.want)
		}
	}
	if sig := scoreRSI(nil, testTime); sig != nil {
		t.Fatalf("expected nil for missing rsi")
	}
}

func TestScoreSMA(t *testing.T) {
	tests := []struct {
		dist float64
		want int
	}{
		{7.5, 2},
		{5.1, 2},
		{0.1, 1},
		{-0.1, -1},
		{-4.9, -1},
		{-5, -2},
		{-12, -2},
	}
	for _, tt := range tests {
		tech := &models.TechnicalRecord{PctFromSMA200: f64(tt.dist), SMACount: 4}
		sig := scoreSMA(tech, testTime)
		if sig == nil {
			t.Fatalf("dist %v: expected signal", tt.dist)
		}
		if sig.Score != tt.want {
			t.Fatalf("dist %v: score = %d, want %d", tt.dist, sig.Score, tt.want)
		}
		if sig.Confidence != 1.0 {
			t.Fatalf("dist %v: confidence = %v, want 1.0", tt.dist, sig.Confidence)
		}
	}
}

func TestScoreSMAFewAveragesDegradesConfidence(t *testing.T) {
	tech := &models.TechnicalRecord{PctFromSMA200: f64(3), SMACount: 2}
	sig := scoreSMA(tech, testTime)
	if sig == nil {
		t.Fatal("expected signal")
	}
	if sig.Confidence != 0.7 {
		t.Fatalf("confidence = %v, want 0.7", sig.Confidence)
	}
}

func TestScoreCOTNetSign(t *testing.T) {
	latest := &models.COTRecord{ReportDate: testTime, NetNonCommercial: 12500}
	sigs := scoreCOT(latest, nil, DefaultConfig().COT)
	if len(sigs) != 1 {
		t.Fatalf("expected 1 signal without history, got %d", len(sigs))
	}
	if sigs[0].Metric != MetricCOTNet || sigs[0].Score != 1 {
		t.Fatalf("net signal = %+v", sigs[0])
	}

	latest.NetNonCommercial = -300
	sigs = scoreCOT(latest, nil, DefaultConfig().COT)
	if sigs[0].Score != -1 {
		t.Fatalf("short net: score = %d, want -1", sigs[0].Score)
	}
}

func TestScoreCOTWeeklyChange(t *testing.T) {
	p := DefaultConfig().COT
	latest := &models.COTRecord{ReportDate: testTime, NetNonCommercial: 110}
	hist := []models.COTRecord{{NetNonCommercial: 100}}

	sigs := scoreCOT(latest, hist, p)
	if len(sigs) != 2 {
		t.Fatalf("expected 2 signals, got %d", len(sigs))
	}
	chg := sigs[1]
	if chg.Metric != MetricCOTChange {
		t.Fatalf("metric = %s", chg.Metric)
	}
	if chg.Score != 1 {
		t.Fatalf("10%% build: score = %d, want 1", chg.Score)
	}

	latest.NetNonCommercial = 102
	sigs = scoreCOT(latest, hist, p)
	if sigs[1].Score != 0 {
		t.Fatalf("2%% build below threshold: score = %d, want 0", sigs[1].Score)
	}
}

func TestScoreCOTPercentile(t *testing.T) {
	p := DefaultConfig().COT

	hist := make([]models.COTRecord, 20)
	for i := range hist {
		hist[i] = models.COTRecord{NetNonCommercial: float64(i * 100)}
	}
	latest := &models.COTRecord{ReportDate: testTime, NetNonCommercial: 5000}

	sigs := scoreCOT(latest, hist, p)
	var pctile *models.SignalInput
	for i := range sigs {
		if sigs[i].Metric == MetricCOTPercentile {
			pctile = &sigs[i]
		}
	}
	if pctile == nil {
		t.Fatal("expected percentile signal with 20 weeks of history")
	}
	if pctile.Score != 2 {
		t.Fatalf("max net: score = %d, want 2", pctile.Score)
	}
	wantConf := 20.0 / 52.0
	if pctile.Confidence != wantConf {
		t.Fatalf("confidence = %v, want %v", pctile.Confidence, wantConf)
	}
}

func TestScoreCOTPercentileNeedsHistory(t *testing.T) {
	hist := make([]models.COTRecord, 9)
	latest := &models.COTRecord{ReportDate: testTime, NetNonCommercial: 100}
	sigs := scoreCOT(latest, hist, DefaultConfig().COT)
	for _, s := range sigs {
		if s.Metric == MetricCOTPercentile {
			t.Fatal("percentile must require at least 10 historical points")
		}
	}
}

func TestScoreCOTPercentileFullWindowConfidence(t *testing.T) {
	hist := make([]models.COTRecord, 60)
	for i := range hist {
		hist[i] = models.COTRecord{NetNonCommercial: float64(i)}
	}
	latest := &models.COTRecord{ReportDate: testTime, NetNonCommercial: 30}
	sigs := scoreCOT(latest, hist, DefaultConfig().COT)
	for _, s := range sigs {
		if s.Metric == MetricCOTPercentile && s.Confidence != 1.0 {
			t.Fatalf("confidence = %v, want 1.0 past full window", s.Confidence)
		}
	}
}

func TestScoreSentimentContrarian(t *testing.T) {
	p := DefaultConfig().Sentiment
	tests := []struct {
		long float64
		want int
	}{
		{80, -2},
		{75, -2},
		{65, -1},
		{50, 0},
		{35, 1},
		{20, 2},
	}
	for _, tt := range tests {
		rec := &models.SentimentRecord{LongPct: tt.long, ShortPct: 100 - tt.long, RecordedAt: testTime}
		sigs := scoreSentiment(rec, p)
		if len(sigs) != 2 {
			t.Fatalf("long %v: expected contrarian + raw, got %d", tt.long, len(sigs))
		}
		if sigs[0].Metric != MetricSentimentContrarian || sigs[0].Score != tt.want {
			t.Fatalf("long %v: contrarian = %+v, want score %d", tt.long, sigs[0], tt.want)
		}
	}
}

func TestScoreSentimentRawIsDisplayOnly(t *testing.T) {
	rec := &models.SentimentRecord{LongPct: 70, ShortPct: 30, RecordedAt: testTime}
	sigs := scoreSentiment(rec, DefaultConfig().Sentiment)
	raw := sigs[1]
	if raw.Metric != MetricSentimentRaw {
		t.Fatalf("metric = %s", raw.Metric)
	}
	if raw.Score != 0 || raw.Confidence != 0 {
		t.Fatalf("raw reading must carry no scoring weight, got %+v", raw)
	}
	if raw.Direction != models.DirBullish {
		t.Fatalf("raw direction = %s, want bullish crowd", raw.Direction)
	}
}

func TestScoreMacroRelease(t *testing.T) {
	cfg := MacroIndicatorConfig{Key: "gdp", Name: "GDP", Category: models.CatEcoGrowth, SurpriseStd: 0.3}
	tests := []struct {
		actual, forecast float64
		want             int
	}{
		{2.3, 2.0, 1},   // +1.0 sigma
		{2.5, 2.0, 2},   // +1.67 sigma
		{0.1, 0.2, 0},   // -0.33 sigma
		{1.8, 2.0, -1},  // -0.67 sigma
		{1.4, 2.0, -2},  // -2.0 sigma
	}
	for _, tt := range tests {
		rel := &models.MacroRelease{Actual: f64(tt.actual), Forecast: f64(tt.forecast), ReleasedAt: testTime}
		sig := scoreMacroRelease(rel, cfg)
		if sig == nil {
			t.Fatalf("%v vs %v: expected signal", tt.actual, tt.forecast)
		}
		if sig.Score != tt.want {
			t.Fatalf("%v vs %v: score = %d, want %d", tt.actual, tt.forecast, sig.Score, tt.want)
		}
	}
}

func TestScoreMacroReleaseInverted(t *testing.T) {
	cfg := MacroIndicatorConfig{Key: "unemployment", Name: "Unemployment", Category: models.CatJobs, SurpriseStd: 0.15, Inverted: true}
	rel := &models.MacroRelease{Actual: f64(4.4), Forecast: f64(4.2), ReleasedAt: testTime}
	sig := scoreMacroRelease(rel, cfg)
	if sig == nil {
		t.Fatal("expected signal")
	}
	// +1.33 sigma raw surprise, negated to -1.33 by inverted semantics
	if sig.Score != -1 {
		t.Fatalf("score = %d, want -1", sig.Score)
	}
}

func TestScoreMacroReleaseSkipsIncomplete(t *testing.T) {
	cfg := MacroIndicatorConfig{Key: "gdp", SurpriseStd: 0.3}
	if sig := scoreMacroRelease(nil, cfg); sig != nil {
		t.Fatal("nil release must be skipped")
	}
	if sig := scoreMacroRelease(&models.MacroRelease{Actual: f64(1)}, cfg); sig != nil {
		t.Fatal("release without forecast must be skipped")
	}
	if sig := scoreMacroRelease(&models.MacroRelease{Forecast: f64(1)}, cfg); sig != nil {
		t.Fatal("release without actual must be skipped")
	}
}

func TestScoreSeasonality(t *testing.T) {
	p := DefaultConfig().Seasonality
	tests := []struct {
		avg  float64
		want int
	}{
		{1.5, 2},
		{1.0, 2},
		{0.7, 1},
		{0.2, 0},
		{-0.6, -1},
		{-1.2, -2},
	}
	for _, tt := range tests {
		rec := &models.SeasonalityRecord{Month: time.August, AvgReturnPct: tt.avg, WinRate: 0.7, Years: 10}
		sig := scoreSeasonality(rec, p, testTime)
		if sig == nil {
			t.Fatalf("avg %v: expected signal", tt.avg)
		}
		if sig.Score != tt.want {
			t.Fatalf("avg %v: score = %d, want %d", tt.avg, sig.Score, tt.want)
		}
		if sig.Confidence != 1.0 {
			t.Fatalf("avg %v: confidence = %v", tt.avg, sig.Confidence)
		}
	}
}

func TestScoreSeasonalityLowWinRateHalvesConfidence(t *testing.T) {
	p := DefaultConfig().Seasonality
	rec := &models.SeasonalityRecord{Month: time.August, AvgReturnPct: 2.0, WinRate: 0.4, Years: 10}
	sig := scoreSeasonality(rec, p, testTime)
	if sig.Score != 2 {
		t.Fatalf("score = %d, want 2", sig.Score)
	}
	if sig.Confidence != 0.5 {
		t.Fatalf("confidence = %v, want 0.5", sig.Confidence)
	}
}

func TestScorePolicyRateTiers(t *testing.T) {
	tests := []struct {
		rate float64
		want int
	}{
		{5.25, 2},
		{4.0, 2},
		{3.0, 1},
		{1.5, 0},
		{0.5, -1},
		{0.1, -2},
		{-0.1, -2},
	}
	for _, tt := range tests {
		rec := &models.InterestRateRecord{PolicyRate: f64(tt.rate), EffectiveAt: testTime}
		sig := scorePolicyRate(rec)
		if sig == nil {
			t.Fatalf("rate %v: expected signal", tt.rate)
		}
		if sig.Score != tt.want {
			t.Fatalf("rate %v: score = %d, want %d", tt.rate, sig.Score, tt.want)
		}
	}
	if sig := scorePolicyRate(&models.InterestRateRecord{}); sig != nil {
		t.Fatal("missing policy rate must yield no signal")
	}
}

func TestScoreYieldCurve(t *testing.T) {
	tests := []struct {
		y10, y2 float64
		want    int
	}{
		{4.5, 3.0, 2},
		{4.0, 3.5, 1},
		{4.0, 3.9, 0},
		{3.5, 4.0, -1},
		{3.0, 4.2, -2},
	}
	for _, tt := range tests {
		rec := &models.InterestRateRecord{Yield10Y: f64(tt.y10), Yield2Y: f64(tt.y2), EffectiveAt: testTime}
		sig := scoreYieldCurve(rec)
		if sig == nil {
			t.Fatalf("%v/%v: expected signal", tt.y10, tt.y2)
		}
		if sig.Score != tt.want {
			t.Fatalf("%v/%v: score = %d, want %d", tt.y10, tt.y2, sig.Score, tt.want)
		}
		if sig.Confidence != 1.0 {
			t.Fatalf("%v/%v: confidence = %v", tt.y10, tt.y2, sig.Confidence)
		}
	}
}

func TestScoreYieldCurveMissingLeg(t *testing.T) {
	rec := &models.InterestRateRecord{Yield10Y: f64(4.0), EffectiveAt: testTime}
	sig := scoreYieldCurve(rec)
	if sig == nil {
		t.Fatal("one present leg must still produce a reading")
	}
	if sig.Score != 0 || sig.Confidence != 0.5 {
		t.Fatalf("degraded curve reading = %+v, want neutral at half confidence", sig)
	}

	if sig := scoreYieldCurve(&models.InterestRateRecord{}); sig != nil {
		t.Fatal("fully missing curve must yield no signal")
	}
}
