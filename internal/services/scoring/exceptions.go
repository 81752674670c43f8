package scoring

import (
	"EdgeScore/internal/domain/models"
)

// matches reports whether a rule applies to the given asset.
func (r ExceptionRule) matches(symbol string, class models.AssetClass) bool {
	switch r.Match {
	case MatchSymbol:
		return r.Symbol == symbol
	case MatchClass:
		return r.Class == class
	case MatchGlobal:
		return true
	}
	return false
}

// ApplyExceptions runs the ordered rule list against a finished signal and
// applies the first matching rule's modifier. The input is returned
// untouched when nothing matches.
func ApplyExceptions(sig models.SignalInput, symbol string, class models.AssetClass, rules []ExceptionRule) models.SignalInput {
	for _, r := range rules {
		if !r.matches(symbol, class) {
			continue
		}
		return applyModifier(sig, r)
	}
	return sig
}

func applyModifier(sig models.SignalInput, r ExceptionRule) models.SignalInput {
	note := r.Reason
	if note == "" {
		note = string(r.Modifier)
	}
	switch r.Modifier {
	case ModInvert:
		sig.Score = -sig.Score
		sig.Direction = models.DirectionForScore(float64(sig.Score))
		sig.Explanation += " [inverted: " + note + "]"
	case ModIgnore:
		sig.Score = 0
		sig.Confidence = 0
		sig.Direction = models.DirNeutral
		sig.Explanation += " [ignored: " + note + "]"
	case ModDouble:
		sig.Score = clampScore(sig.Score * 2)
		sig.Direction = models.DirectionForScore(float64(sig.Score))
		sig.Explanation += " [amplified: " + note + "]"
	case ModHalve:
		sig.Confidence *= 0.5
		sig.Explanation += " [dampened: " + note + "]"
	}
	return sig
}
