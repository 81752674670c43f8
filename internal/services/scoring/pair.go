package scoring

import (
	"fmt"
	"time"

	"EdgeScore/internal/domain/models"
)

// PairRelative collapses base and quote economy signals into one net reading
// for a currency pair: net = clamp(base - quote, -2, 2). Either side may be
// nil; a missing side contributes nothing to the score and halves the
// weight, so confidence = 0.5*conf(base) + 0.5*conf(quote). The result is
// never omitted: a fully absent pair yields a zero-confidence neutral.
//
// The function is antisymmetric: swapping base and quote negates the score.
func PairRelative(metric string, cat models.Category, base, quote *models.EconomySignal, ts time.Time) models.SignalInput {
	var baseScore, quoteScore int
	var baseConf, quoteConf float64
	baseCode, quoteCode := "?", "?"

	if base != nil {
		baseScore = base.Signal.Score
		baseConf = base.Signal.Confidence
		baseCode = base.EconomyCode
		if !base.Signal.Timestamp.IsZero() {
			ts = base.Signal.Timestamp
		}
	}
	if quote != nil {
		quoteScore = quote.Signal.Score
		quoteConf = quote.Signal.Confidence
		quoteCode = quote.EconomyCode
	}

	net := clampScore(baseScore - quoteScore)
	conf := 0.5*baseConf + 0.5*quoteConf

	var expl string
	switch {
	case base == nil && quote == nil:
		expl = "no data on either side of the pair"
	case base == nil:
		expl = fmt.Sprintf("%s only: %s", quoteCode, quote.Signal.Explanation)
	case quote == nil:
		expl = fmt.Sprintf("%s only: %s", baseCode, base.Signal.Explanation)
	default:
		expl = fmt.Sprintf("%s %+d vs %s %+d", baseCode, baseScore, quoteCode, quoteScore)
	}

	return newSignal(metric, cat, nil, net, conf, expl, ts)
}
