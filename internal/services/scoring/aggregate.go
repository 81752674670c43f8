package scoring

import (
	"math"

	"EdgeScore/internal/domain/models"
)

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// AggregateCategories buckets signals by category and computes the
// confidence-weighted mean score per category. Every fixed category appears
// in the result, zero-valued when it collected no signals.
func AggregateCategories(signals []models.SignalInput) models.CategorySet {
	byCat := make(map[models.Category][]models.SignalInput, len(models.AllCategories))
	for _, s := range signals {
		byCat[s.Category] = append(byCat[s.Category], s)
	}

	var set models.CategorySet
	for _, cat := range models.AllCategories {
		set.Set(cat, aggregateOne(cat, byCat[cat]))
	}
	return set
}

func aggregateOne(cat models.Category, signals []models.SignalInput) models.CategoryScore {
	sc := models.CategoryScore{
		Category:    cat,
		Direction:   models.DirNeutral,
		SignalCount: len(signals),
		Signals:     signals,
	}
	if len(signals) == 0 {
		return sc
	}

	var weighted, totalConf float64
	covered := 0
	for _, s := range signals {
		weighted += float64(s.Score) * s.Confidence
		totalConf += s.Confidence
		if s.Confidence > 0 {
			covered++
		}
	}
	if totalConf > 0 {
		sc.Score = round2(weighted / totalConf)
	}
	sc.Direction = models.DirectionForScore(sc.Score)
	sc.Coverage = round2(float64(covered) / float64(len(signals)))
	return sc
}

// ComposeTotal combines category scores and weights into the final score in
// [-10,10]. normFactor maps the maximal per-category score (2) at full
// weight onto 10.
func ComposeTotal(set models.CategorySet, weights CategoryWeights) (float64, models.BiasLabel) {
	sum := weights.Sum()
	if sum <= 0 {
		return 0, models.BiasNeutral
	}

	var raw float64
	for _, cat := range models.AllCategories {
		raw += set.Get(cat).Score * weights.Get(cat)
	}

	normFactor := 10 / (2 * sum)
	total := round2(raw * normFactor)
	if total > 10 {
		total = 10
	} else if total < -10 {
		total = -10
	}
	return total, BiasForScore(total)
}

// BiasForScore maps a clamped total score onto the discrete bias label.
// Boundary values belong to the outer band.
func BiasForScore(total float64) models.BiasLabel {
	switch {
	case total >= 5:
		return models.BiasVeryBullish
	case total >= 2:
		return models.BiasBullish
	case total <= -5:
		return models.BiasVeryBearish
	case total <= -2:
		return models.BiasBearish
	default:
		return models.BiasNeutral
	}
}
