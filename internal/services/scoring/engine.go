package scoring

import (
	"time"

	"EdgeScore/internal/domain/models"
)

// Engine computes asset scorecards from data snapshots. It is stateless and
// safe for concurrent use: every call reads only the immutable configuration
// and its own inputs.
type Engine struct {
	cfg Config
}

// New creates an engine bound to one scoring configuration.
func New(cfg Config) *Engine {
	return &Engine{cfg: cfg}
}

// Config returns the engine's configuration value.
func (e *Engine) Config() Config { return e.cfg }

// Version returns the scoring version embedded in every scorecard.
func (e *Engine) Version() string { return e.cfg.Version }

// scorecardBuilder accumulates readings while the orchestrator walks the
// signal sources in fixed order.
type scorecardBuilder struct {
	readings  []models.SignalInput
	missing   []string
	freshness map[string]time.Time
}

func newBuilder() *scorecardBuilder {
	return &scorecardBuilder{
		readings:  []models.SignalInput{},
		missing:   []string{},
		freshness: map[string]time.Time{},
	}
}

func (b *scorecardBuilder) add(sig models.SignalInput) { b.readings = append(b.readings, sig) }
func (b *scorecardBuilder) miss(tag string) { b.missing = append(b.missing, tag) }
func (b *scorecardBuilder) fresh(src string, t time.Time) {
	if t.IsZero() {
		return
	}
	if cur, ok := b.freshness[src]; !ok || t.After(cur) {
		b.freshness[src] = t
	}
}

// Score produces a complete scorecard for one snapshot. It cannot fail: a
// snapshot with every optional field nil yields a neutral scorecard whose
// missing-data list names every silent source.
func (e *Engine) Score(snap models.AssetDataSnapshot, now time.Time) models.AssetScorecard {
	b := newBuilder()

	e.scoreTechnical(&snap, b, now)
	e.scoreSeasonalitySource(&snap, b, now)
	if e.cfg.EnableCOT {
		e.scoreCOTSource(&snap, b)
	}
	if e.cfg.EnableSentiment {
		e.scoreSentimentSource(&snap, b)
	}
	e.macroStrategy(&snap).run(e, &snap, b, now)

	set := AggregateCategories(b.readings)
	total, bias := ComposeTotal(set, e.cfg.Weights)

	return models.AssetScorecard{
		Symbol:      snap.Symbol,
		Name:        snap.Name,
		Class:       snap.Class,
		Version:     e.cfg.Version,
		ComputedAt:  now,
		TotalScore:  total,
		Bias:        bias,
		Categories:  set,
		Readings:    b.readings,
		MissingData: b.missing,
		Freshness:   b.freshness,
	}
}

func (e *Engine) scoreTechnical(snap *models.AssetDataSnapshot, b *scorecardBuilder, now time.Time) {
	tech := snap.Technical
	if tech == nil {
		b.miss("technical")
		return
	}
	b.fresh("technical", tech.CapturedAt)
	ts := tech.CapturedAt
	if ts.IsZero() {
		ts = now
	}

	if sig := scoreTrend(MetricTrend4H, tech.Trend4H, ts); sig != nil {
		b.add(e.except(*sig, snap))
	} else {
		b.miss(MetricTrend4H)
	}
	if sig := scoreTrend(MetricTrendDaily, tech.TrendDaily, ts); sig != nil {
		b.add(e.except(*sig, snap))
	} else {
		b.miss(MetricTrendDaily)
	}
	if sig := scoreRSI(tech.RSI, ts); sig != nil {
		b.add(e.except(*sig, snap))
	} else {
		b.miss(MetricRSI)
	}
	if sig := scoreSMA(tech, ts); sig != nil {
		b.add(e.except(*sig, snap))
	} else {
		b.miss(MetricSMA)
	}
}

func (e *Engine) scoreSeasonalitySource(snap *models.AssetDataSnapshot, b *scorecardBuilder, now time.Time) {
	if sig := scoreSeasonality(snap.Seasonality, e.cfg.Seasonality, now); sig != nil {
		b.add(e.except(*sig, snap))
	} else {
		b.miss("seasonality")
	}
}

func (e *Engine) scoreCOTSource(snap *models.AssetDataSnapshot, b *scorecardBuilder) {
	sigs := scoreCOT(snap.COT, snap.COTHistory, e.cfg.COT)
	if len(sigs) == 0 {
		b.miss("cot")
		return
	}
	b.fresh("cot", snap.COT.ReportDate)
	for _, sig := range sigs {
		b.add(e.except(sig, snap))
	}
}

func (e *Engine) scoreSentimentSource(snap *models.AssetDataSnapshot, b *scorecardBuilder) {
	sigs := scoreSentiment(snap.Sentiment, e.cfg.Sentiment)
	if len(sigs) == 0 {
		b.miss("sentiment")
		return
	}
	b.fresh("sentiment", snap.Sentiment.RecordedAt)
	for _, sig := range sigs {
		b.add(e.except(sig, snap))
	}
}

// except applies the engine-level exception rules to a finished signal.
func (e *Engine) except(sig models.SignalInput, snap *models.AssetDataSnapshot) models.SignalInput {
	return ApplyExceptions(sig, snap.Symbol, snap.Class, e.cfg.Exceptions)
}

// exceptMacro applies the indicator's own rules ahead of the engine-level
// ones; the first match across the combined list wins.
func (e *Engine) exceptMacro(sig models.SignalInput, snap *models.AssetDataSnapshot, mc MacroIndicatorConfig) models.SignalInput {
	if len(mc.Exceptions) > 0 {
		rules := make([]ExceptionRule, 0, len(mc.Exceptions)+len(e.cfg.Exceptions))
		rules = append(rules, mc.Exceptions...)
		rules = append(rules, e.cfg.Exceptions...)
		return ApplyExceptions(sig, snap.Symbol, snap.Class, rules)
	}
	return e.except(sig, snap)
}

// macroRunner is the sealed macro-branch strategy: currency pairs score
// base minus quote, everything else scores a single primary economy.
type macroRunner interface {
	run(e *Engine, snap *models.AssetDataSnapshot, b *scorecardBuilder, now time.Time)
}

func (e *Engine) macroStrategy(snap *models.AssetDataSnapshot) macroRunner {
	if snap.Class == models.ClassFX {
		baseEco, baseOK := e.cfg.CurrencyEconomies[snap.BaseCurrency]
		quoteEco, quoteOK := e.cfg.CurrencyEconomies[snap.QuoteCurrency]
		if baseOK && quoteOK {
			return fxRunner{base: baseEco, quote: quoteEco}
		}
	}
	if link := snap.PrimaryEconomy(); link != nil {
		sign := 1.0
		if link.Weight < 0 {
			sign = -1.0
		}
		return singleEconomyRunner{economy: link.EconomyCode, sign: sign}
	}
	return noEconomyRunner{}
}

// fxRunner pair-differences every macro indicator and the rate complex
// between the base and quote economies.
type fxRunner struct {
	base, quote string
}

func (r fxRunner) run(e *Engine, snap *models.AssetDataSnapshot, b *scorecardBuilder, now time.Time) {
	for _, mc := range e.cfg.Macro {
		baseSig := r.economySignal(snap, r.base, mc, b)
		quoteSig := r.economySignal(snap, r.quote, mc, b)
		if baseSig == nil && quoteSig == nil {
			b.miss(mc.Key)
			continue
		}
		sig := PairRelative(MacroMetric(mc.Key), mc.Category, baseSig, quoteSig, now)
		b.add(e.exceptMacro(sig, snap, mc))
	}

	baseRates := snap.Rates[r.base]
	quoteRates := snap.Rates[r.quote]

	basePolicy := wrapEconomy(r.base, scorePolicyRate(baseRates))
	quotePolicy := wrapEconomy(r.quote, scorePolicyRate(quoteRates))
	if basePolicy == nil && quotePolicy == nil {
		b.miss("rates")
	} else {
		b.add(e.except(PairRelative(MetricPolicyRate, models.CatRates, basePolicy, quotePolicy, now), snap))
	}

	baseCurve := wrapEconomy(r.base, scoreYieldCurve(baseRates))
	quoteCurve := wrapEconomy(r.quote, scoreYieldCurve(quoteRates))
	if baseCurve == nil && quoteCurve == nil {
		b.miss(MetricYieldCurve)
	} else {
		b.add(e.except(PairRelative(MetricYieldCurve, models.CatRates, baseCurve, quoteCurve, now), snap))
	}

	r.trackFreshness(snap, b)
}

func (r fxRunner) economySignal(snap *models.AssetDataSnapshot, economy string, mc MacroIndicatorConfig, b *scorecardBuilder) *models.EconomySignal {
	rel := snap.Macro[models.MacroKey(economy, mc.Key)]
	sig := scoreMacroRelease(rel, mc)
	if sig == nil {
		return nil
	}
	b.fresh("macro", rel.ReleasedAt)
	return &models.EconomySignal{EconomyCode: economy, Signal: *sig}
}

func (r fxRunner) trackFreshness(snap *models.AssetDataSnapshot, b *scorecardBuilder) {
	for _, eco := range []string{r.base, r.quote} {
		if rec := snap.Rates[eco]; rec != nil {
			b.fresh("rates", rec.EffectiveAt)
		}
	}
}

func wrapEconomy(economy string, sig *models.SignalInput) *models.EconomySignal {
	if sig == nil {
		return nil
	}
	return &models.EconomySignal{EconomyCode: economy, Signal: *sig}
}

// singleEconomyRunner scores macro data against one primary economy. The
// economy-link weight's sign flips signals for inverse-correlated assets.
type singleEconomyRunner struct {
	economy string
	sign    float64
}

func (r singleEconomyRunner) run(e *Engine, snap *models.AssetDataSnapshot, b *scorecardBuilder, now time.Time) {
	for _, mc := range e.cfg.Macro {
		rel := snap.Macro[models.MacroKey(r.economy, mc.Key)]
		sig := scoreMacroRelease(rel, mc)
		if sig == nil {
			b.miss(mc.Key)
			continue
		}
		b.fresh("macro", rel.ReleasedAt)
		if r.sign < 0 {
			sig.Score = -sig.Score
			sig.Direction = models.DirectionForScore(float64(sig.Score))
			sig.Explanation += " [inverse economy linkage]"
		}
		b.add(e.exceptMacro(*sig, snap, mc))
	}

	rates := snap.Rates[r.economy]
	if sig := scorePolicyRate(rates); sig != nil {
		b.fresh("rates", rates.EffectiveAt)
		b.add(e.except(*sig, snap))
	} else {
		b.miss("rates")
	}
	if sig := scoreYieldCurve(rates); sig != nil {
		b.add(e.except(*sig, snap))
	} else {
		b.miss(MetricYieldCurve)
	}
}

// noEconomyRunner covers assets with no resolvable economy: every macro
// indicator and the rate complex report as missing data.
type noEconomyRunner struct{}

func (noEconomyRunner) run(e *Engine, snap *models.AssetDataSnapshot, b *scorecardBuilder, now time.Time) {
	for _, mc := range e.cfg.Macro {
		b.miss(mc.Key)
	}
	b.miss("rates")
	b.miss(MetricYieldCurve)
}
