package scoring

import (
	"sort"

	"EdgeScore/internal/domain/models"
)

// ProjectHeatmap maps scorecards onto a fixed comparison grid: one row per
// scorecard, one cell per configured column. A nil cell means the column's
// metric produced no reading for that asset.
func ProjectHeatmap(cards []models.AssetScorecard, columns []models.HeatmapColumn) []models.HeatmapRow {
	rows := make([]models.HeatmapRow, 0, len(cards))
	for _, card := range cards {
		row := models.HeatmapRow{
			Symbol:     card.Symbol,
			TotalScore: card.TotalScore,
			Bias:       card.Bias,
			Cells:      make([]*int, len(columns)),
		}
		for i, col := range columns {
			for _, sig := range card.Readings {
				if sig.Metric == col.Metric {
					score := sig.Score
					row.Cells[i] = &score
					break
				}
			}
		}
		rows = append(rows, row)
	}
	return rows
}

// Heatmap projects cards onto the engine's configured column set.
func (e *Engine) Heatmap(cards []models.AssetScorecard) []models.HeatmapRow {
	return ProjectHeatmap(cards, e.cfg.HeatmapColumns)
}

// TopSetups ranks cards against the engine's configured column set.
func (e *Engine) TopSetups(cards []models.AssetScorecard, limit int) []models.TopSetupsEntry {
	return TopSetups(cards, e.cfg.HeatmapColumns, limit)
}

// RankScorecards orders scorecards by total score, strongest bullish first.
// The input slice is not modified.
func RankScorecards(cards []models.AssetScorecard) []models.AssetScorecard {
	ranked := make([]models.AssetScorecard, len(cards))
	copy(ranked, cards)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].TotalScore > ranked[j].TotalScore
	})
	return ranked
}

// TopSetups builds the ranked comparison list consumed by multi-asset views.
// Column scores are keyed by the configured column key.
func TopSetups(cards []models.AssetScorecard, columns []models.HeatmapColumn, limit int) []models.TopSetupsEntry {
	ranked := RankScorecards(cards)
	if limit > 0 && limit < len(ranked) {
		ranked = ranked[:limit]
	}
	out := make([]models.TopSetupsEntry, 0, len(ranked))
	for _, card := range ranked {
		entry := models.TopSetupsEntry{
			Symbol:     card.Symbol,
			Name:       card.Name,
			Class:      card.Class,
			TotalScore: card.TotalScore,
			Bias:       card.Bias,
			Scores:     make(map[string]float64, len(columns)),
		}
		for _, col := range columns {
			for _, sig := range card.Readings {
				if sig.Metric == col.Metric {
					entry.Scores[col.Key] = float64(sig.Score)
					break
				}
			}
		}
		out = append(out, entry)
	}
	return out
}
