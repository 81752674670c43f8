package models

// Requests for scoring HTTP endpoints. Defined in domain for consistency and reuse.

type ScoreRequest struct {
	Snapshot AssetDataSnapshot `json:"snapshot" validate:"required"`
}

type ScorecardsRequest struct {
	Snapshots []AssetDataSnapshot `json:"snapshots" validate:"required,min=1,max=200,dive"`
}

type HeatmapRequest struct {
	Snapshots []AssetDataSnapshot `json:"snapshots" validate:"required,min=1,max=200,dive"`
}

type TopSetupsRequest struct {
	Snapshots []AssetDataSnapshot `json:"snapshots" validate:"required,min=1,max=200,dive"`
	Limit     int                 `json:"limit" default:"20" validate:"gte=1,lte=200"`
}
