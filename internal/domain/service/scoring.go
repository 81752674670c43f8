package service

import (
	"time"

	"EdgeScore/internal/domain/models"
)

// ScorecardEngine computes asset scorecards from data snapshots. Scoring is
// pure: the same snapshot and clock always yield the same scorecard.
type ScorecardEngine interface {
	Score(snap models.AssetDataSnapshot, now time.Time) models.AssetScorecard
	Heatmap(cards []models.AssetScorecard) []models.HeatmapRow
	TopSetups(cards []models.AssetScorecard, limit int) []models.TopSetupsEntry
	Version() string
}
