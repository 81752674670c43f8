package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"EdgeScore/internal/domain/models"
	domrepo "EdgeScore/internal/domain/repository"
	domsvc "EdgeScore/internal/domain/service"
)

// ScorecardUseCase turns snapshots into scorecards and derived views. Batch
// requests fan out across a bounded worker pool; results keep input order.
type ScorecardUseCase struct {
	engine  domsvc.ScorecardEngine
	metrics domrepo.Metrics
	workers int
	timeout time.Duration
	clock   func() time.Time
}

func NewScorecardUseCase(engine domsvc.ScorecardEngine, workers int) *ScorecardUseCase {
	if workers <= 0 {
		workers = 8
	}
	return &ScorecardUseCase{
		engine:  engine,
		workers: workers,
		timeout: 10 * time.Second,
		clock:   time.Now,
	}
}

// SetMetrics injects the observability recorder.
func (uc *ScorecardUseCase) SetMetrics(m domrepo.Metrics) { uc.metrics = m }

// Version reports the scoring version stamped on every scorecard.
func (uc *ScorecardUseCase) Version() string { return uc.engine.Version() }

func (uc *ScorecardUseCase) record(cards ...models.AssetScorecard) {
	if uc.metrics == nil {
		return
	}
	for i := range cards {
		uc.metrics.RecordScorecard(string(cards[i].Class))
		uc.metrics.RecordTotalScore(cards[i].Symbol, cards[i].TotalScore)
	}
}

// GetScorecard scores a single snapshot.
func (uc *ScorecardUseCase) GetScorecard(ctx context.Context, snap models.AssetDataSnapshot) (*models.AssetScorecard, error) {
	if snap.Symbol == "" {
		return nil, fmt.Errorf("snapshot symbol required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start := time.Now()
	card := uc.engine.Score(snap, uc.clock())
	if uc.metrics != nil {
		uc.metrics.RecordLatency("score_one", time.Since(start).Seconds())
	}
	uc.record(card)
	return &card, nil
}

// GetScorecards scores a batch of snapshots concurrently.
func (uc *ScorecardUseCase) GetScorecards(ctx context.Context, snaps []models.AssetDataSnapshot) ([]models.AssetScorecard, error) {
	for i := range snaps {
		if snaps[i].Symbol == "" {
			return nil, fmt.Errorf("snapshot %d: symbol required", i)
		}
	}

	// Overall timeout
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	start := time.Now()
	now := uc.clock()
	cards := make([]models.AssetScorecard, len(snaps))

	jobs := make(chan int)
	var wg sync.WaitGroup
	workers := uc.workers
	if workers > len(snaps) {
		workers = len(snaps)
	}
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				cards[i] = uc.engine.Score(snaps[i], now)
			}
		}()
	}

feed:
	for i := range snaps {
		select {
		case jobs <- i:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		if uc.metrics != nil {
			uc.metrics.RecordError("batch_timeout")
		}
		return nil, err
	}
	if uc.metrics != nil {
		uc.metrics.RecordLatency("score_batch", time.Since(start).Seconds())
	}
	uc.record(cards...)
	return cards, nil
}

// GetHeatmap scores the snapshots and projects them onto the comparison grid.
func (uc *ScorecardUseCase) GetHeatmap(ctx context.Context, snaps []models.AssetDataSnapshot) ([]models.HeatmapRow, error) {
	cards, err := uc.GetScorecards(ctx, snaps)
	if err != nil {
		return nil, err
	}
	return uc.engine.Heatmap(cards), nil
}

// GetTopSetups scores the snapshots and returns the ranked comparison list.
func (uc *ScorecardUseCase) GetTopSetups(ctx context.Context, snaps []models.AssetDataSnapshot, limit int) ([]models.TopSetupsEntry, error) {
	cards, err := uc.GetScorecards(ctx, snaps)
	if err != nil {
		return nil, err
	}
	return uc.engine.TopSetups(cards, limit), nil
}
