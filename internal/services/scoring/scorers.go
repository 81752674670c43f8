package scoring

import (
	"fmt"
	"math"
	"sort"
	"time"

	"EdgeScore/internal/domain/models"
)

// Metric keys produced by the scorers. Pair-relative and macro readings are
// derived ("macro_<indicator>").
const (
	MetricTrend4H             = "trend_4h"
	MetricTrendDaily          = "trend_daily"
	MetricRSI                 = "rsi"
	MetricSMA                 = "sma_alignment"
	MetricSeasonality         = "seasonality"
	MetricCOTNet              = "cot_net"
	MetricCOTChange           = "cot_change"
	MetricCOTPercentile       = "cot_percentile"
	MetricSentimentContrarian = "sentiment_contrarian"
	MetricSentimentRaw        = "sentiment_raw"
	MetricPolicyRate          = "policy_rate"
	MetricYieldCurve          = "yield_curve"
)

// MacroMetric builds the metric key for a macro indicator reading.
func MacroMetric(indicatorKey string) string { return "macro_" + indicatorKey }

func clampScore(s int) int {
	if s > 2 {
		return 2
	}
	if s < -2 {
		return -2
	}
	return s
}

func newSignal(metric string, cat models.Category, value *float64, score int, conf float64, expl string, ts time.Time) models.SignalInput {
	score = clampScore(score)
	return models.SignalInput{
		Metric:      metric,
		Category:    cat,
		Value:       value,
		Direction:   models.DirectionForScore(float64(score)),
		Score:       score,
		Confidence:  conf,
		Explanation: expl,
		Timestamp:   ts,
	}
}

func f64(v float64) *float64 { return &v }

var trendScores = map[models.TrendState]int{
	models.TrendStrongUp:   2,
	models.TrendUp:         1,
	models.TrendNeutral:    0,
	models.TrendDown:       -1,
	models.TrendStrongDown: -2,
}

// scoreTrend maps the five-valued trend enum to a score by direct lookup.
// Returns nil when the trend state is absent or unknown.
func scoreTrend(metric string, trend models.TrendState, ts time.Time) *models.SignalInput {
	score, ok := trendScores[trend]
	if !ok {
		return nil
	}
	sig := newSignal(metric, models.CatTechnical, nil, score, 1.0,
		fmt.Sprintf("trend is %s", trend), ts)
	return &sig
}

// scoreRSI reads RSI as trend confirmation: elevated RSI confirms bullish
// momentum rather than signaling mean reversion.
func scoreRSI(rsi *float64, ts time.Time) *models.SignalInput {
	if rsi == nil {
		return nil
	}
	v := *rsi
	var score int
	switch {
	case v >= 70:
		score = 2
	case v >= 55:
		score = 1
	case v <= 30:
		score = -2
	case v <= 45:
		score = -1
	}
	sig := newSignal(MetricRSI, models.CatTechnical, rsi, score, 1.0,
		fmt.Sprintf("RSI at %.1f", v), ts)
	return &sig
}

// scoreSMA scores percent distance from the 200-period average. Confidence
// drops to 0.7 when fewer than three moving averages back the reading.
func scoreSMA(tech *models.TechnicalRecord, ts time.Time) *models.SignalInput {
	if tech == nil || tech.PctFromSMA200 == nil {
		return nil
	}
	dist := *tech.PctFromSMA200
	var score int
	switch {
	case dist > 5:
		score = 2
	case dist > 0:
		score = 1
	case dist > -5:
		score = -1
	default:
		score = -2
	}
	conf := 1.0
	if tech.SMACount < 3 {
		conf = 0.7
	}
	sig := newSignal(MetricSMA, models.CatTechnical, tech.PctFromSMA200, score, conf,
		fmt.Sprintf("price %.1f%% from 200 SMA", dist), ts)
	return &sig
}

// scoreSeasonality scores the current month's ten-year average return.
// A weak historical win rate halves confidence.
func scoreSeasonality(rec *models.SeasonalityRecord, p SeasonalityParams, ts time.Time) *models.SignalInput {
	if rec == nil {
		return nil
	}
	avg := rec.AvgReturnPct
	var score int
	switch {
	case avg >= p.StrongPct:
		score = 2
	case avg >= p.MildPct:
		score = 1
	case avg <= -p.StrongPct:
		score = -2
	case avg <= -p.MildPct:
		score = -1
	}
	conf := 1.0
	if rec.WinRate < p.MinWinRate {
		conf = 0.5
	}
	sig := newSignal(MetricSeasonality, models.CatTechnical, f64(avg), score, conf,
		fmt.Sprintf("%s avg return %.2f%% over %d years (win rate %.0f%%)",
			rec.Month, avg, rec.Years, rec.WinRate*100), ts)
	return &sig
}

// scoreCOT produces up to three readings from futures positioning: net sign,
// week-over-week change, and percentile within the trailing window.
func scoreCOT(latest *models.COTRecord, history []models.COTRecord, p COTParams) []models.SignalInput {
	if latest == nil {
		return nil
	}
	ts := latest.ReportDate
	out := make([]models.SignalInput, 0, 3)

	// (a) sign of net non-commercial position
	net := latest.NetNonCommercial
	var netScore int
	if net > 0 {
		netScore = 1
	} else if net < 0 {
		netScore = -1
	}
	out = append(out, newSignal(MetricCOTNet, models.CatCOT, f64(net), netScore, 1.0,
		fmt.Sprintf("net non-commercial position %.0f", net), ts))

	// (b) week-over-week change against the significant-change threshold
	if len(history) > 0 {
		prev := history[len(history)-1].NetNonCommercial
		if prev != 0 {
			chg := (net - prev) / math.Abs(prev) * 100
			var chgScore int
			if chg >= p.SignificantChangePct {
				chgScore = 1
			} else if chg <= -p.SignificantChangePct {
				chgScore = -1
			}
			out = append(out, newSignal(MetricCOTChange, models.CatCOT, f64(chg), chgScore, 1.0,
				fmt.Sprintf("weekly net change %.1f%%", chg), ts))
		}
	}

	// (c) percentile of current net within the trailing window
	if len(history) >= p.MinHistory {
		pct := percentileRank(history, net)
		var pctScore int
		switch {
		case pct >= p.ExtremePercentile:
			pctScore = 2
		case pct >= p.CrowdedPercentile:
			pctScore = 1
		case pct <= 100-p.ExtremePercentile:
			pctScore = -2
		case pct <= 100-p.CrowdedPercentile:
			pctScore = -1
		}
		conf := float64(len(history)) / float64(p.FullWindow)
		if conf > 1 {
			conf = 1
		}
		out = append(out, newSignal(MetricCOTPercentile, models.CatCOT, f64(pct), pctScore, conf,
			fmt.Sprintf("net position at %.0fth percentile of %d-week window", pct, len(history)), ts))
	}

	return out
}

// percentileRank returns the percentile of net within the window's net
// positions, in [0,100].
func percentileRank(window []models.COTRecord, net float64) float64 {
	nets := make([]float64, len(window))
	for i, r := range window {
		nets[i] = r.NetNonCommercial
	}
	sort.Float64s(nets)
	below := 0
	for _, v := range nets {
		if v <= net {
			below++
		}
	}
	return float64(below) / float64(len(nets)) * 100
}

// scoreSentiment produces the contrarian reading that feeds aggregation and
// a raw crowd-direction reading kept for display only (zero score, zero
// weight).
func scoreSentiment(rec *models.SentimentRecord, p SentimentParams) []models.SignalInput {
	if rec == nil {
		return nil
	}
	long := rec.LongPct
	var score int
	switch {
	case long >= p.ExtremeLongPct:
		score = -2
	case long >= p.ModerateLongPct:
		score = -1
	case long <= p.ExtremeShortPct:
		score = 2
	case long <= p.ModerateShortPct:
		score = 1
	}
	contrarian := newSignal(MetricSentimentContrarian, models.CatSentiment, f64(long), score, 1.0,
		fmt.Sprintf("retail %.0f%% long, fading the crowd", long), rec.RecordedAt)

	raw := newSignal(MetricSentimentRaw, models.CatSentiment, f64(long), 0, 0,
		fmt.Sprintf("retail crowd %.0f%% long / %.0f%% short", long, rec.ShortPct), rec.RecordedAt)
	raw.Direction = models.DirectionForScore(long - 50)

	return []models.SignalInput{contrarian, raw}
}

// scoreMacroRelease normalizes the surprise by the indicator's typical
// standard deviation and thresholds it at +-0.5 and +-1.5. Releases missing
// actual or forecast are skipped entirely.
func scoreMacroRelease(rel *models.MacroRelease, cfg MacroIndicatorConfig) *models.SignalInput {
	if rel == nil || rel.Actual == nil || rel.Forecast == nil {
		return nil
	}
	std := cfg.SurpriseStd
	if std <= 0 {
		std = 1
	}
	norm := (*rel.Actual - *rel.Forecast) / std
	if cfg.Inverted {
		norm = -norm
	}
	var score int
	switch {
	case norm >= 1.5:
		score = 2
	case norm >= 0.5:
		score = 1
	case norm <= -1.5:
		score = -2
	case norm <= -0.5:
		score = -1
	}
	expl := fmt.Sprintf("%s %.2f vs %.2f forecast (surprise %.2f sigma)",
		cfg.Name, *rel.Actual, *rel.Forecast, norm)
	if cfg.Inverted {
		expl += ", inverted semantics"
	}
	sig := newSignal(MacroMetric(cfg.Key), cfg.Category, rel.Actual, score, 1.0, expl, rel.ReleasedAt)
	return &sig
}

// scorePolicyRate buckets the absolute policy-rate level into carry tiers.
func scorePolicyRate(rec *models.InterestRateRecord) *models.SignalInput {
	if rec == nil || rec.PolicyRate == nil {
		return nil
	}
	rate := *rec.PolicyRate
	var score int
	switch {
	case rate >= 4.0:
		score = 2
	case rate >= 2.0:
		score = 1
	case rate >= 1.0:
		score = 0
	case rate >= 0.25:
		score = -1
	default:
		score = -2
	}
	sig := newSignal(MetricPolicyRate, models.CatRates, rec.PolicyRate, score, 1.0,
		fmt.Sprintf("policy rate %.2f%%", rate), rec.EffectiveAt)
	return &sig
}

// scoreYieldCurve buckets the 10Y-2Y spread. With one leg missing the
// reading degrades to a half-confidence neutral rather than disappearing.
func scoreYieldCurve(rec *models.InterestRateRecord) *models.SignalInput {
	if rec == nil || (rec.Yield10Y == nil && rec.Yield2Y == nil) {
		return nil
	}
	if rec.Yield10Y == nil || rec.Yield2Y == nil {
		sig := newSignal(MetricYieldCurve, models.CatRates, nil, 0, 0.5,
			"yield curve incomplete, one leg missing", rec.EffectiveAt)
		return &sig
	}
	spread := *rec.Yield10Y - *rec.Yield2Y
	var score int
	switch {
	case spread >= 1.0:
		score = 2
	case spread >= 0.25:
		score = 1
	case spread <= -1.0:
		score = -2
	case spread <= -0.25:
		score = -1
	}
	sig := newSignal(MetricYieldCurve, models.CatRates, f64(spread), score, 1.0,
		fmt.Sprintf("2s10s spread %.2f", spread), rec.EffectiveAt)
	return &sig
}
