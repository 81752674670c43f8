package di

import (
	"fmt"

	"EdgeScore/internal/domain/repository"
	domsvc "EdgeScore/internal/domain/service"
	"EdgeScore/internal/handler/api"
	icache "EdgeScore/internal/service/cache"
	"EdgeScore/internal/services/scoring"
	"EdgeScore/internal/usecase"
	"EdgeScore/pkg/config"
	xhttp "EdgeScore/pkg/http"
	applogger "EdgeScore/pkg/logger"
	"EdgeScore/pkg/metrics"
	"EdgeScore/pkg/server"
)

// ProvideLogger creates the application logger. Development gets console
// output, everything else JSON.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	format := "json"
	if cfg.Environment == "development" {
		format = "console"
	}
	l, err := applogger.New(&applogger.Config{Level: "info", Format: format, Output: "stdout"})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return l, nil
}

// ProvideScoringConfig loads the scoring parameter file, or falls back to
// the built-in defaults when none is configured.
func ProvideScoringConfig(cfg *config.Config) (scoring.Config, error) {
	if cfg.Scoring.ConfigPath == "" {
		return scoring.DefaultConfig(), nil
	}
	sc, err := scoring.LoadConfig(cfg.Scoring.ConfigPath)
	if err != nil {
		return scoring.Config{}, fmt.Errorf("scoring config: %w", err)
	}
	return sc, nil
}

// ProvideEngine creates the scorecard engine.
func ProvideEngine(sc scoring.Config) domsvc.ScorecardEngine {
	return scoring.New(sc)
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideCache creates the response cache: layered memory+Redis when Redis
// is configured, in-process TTL cache otherwise.
func ProvideCache(cfg *config.Config) icache.BytesCache {
	if cfg.Cache.Redis.Enabled {
		rc := icache.NewRedisCache(icache.RedisConfig{
			Addr:     cfg.Cache.Redis.Addr,
			Password: cfg.Cache.Redis.Password,
			DB:       cfg.Cache.Redis.DB,
		})
		return icache.NewLayeredCache(rc)
	}
	return icache.NewTTLCache()
}

// ProvideScorecardUseCase creates the scoring use case.
func ProvideScorecardUseCase(engine domsvc.ScorecardEngine, m repository.Metrics, cfg *config.Config) *usecase.ScorecardUseCase {
	uc := usecase.NewScorecardUseCase(engine, cfg.Scoring.Workers)
	uc.SetMetrics(m)
	return uc
}

// ProvideHandler creates the HTTP handler with cache and rate limiting.
func ProvideHandler(l *applogger.Logger, uc *usecase.ScorecardUseCase, c icache.BytesCache, cfg *config.Config) xhttp.Handler {
	h := api.NewScorecardsHandler(l, uc)
	h.SetCache(c)
	h.SetCacheTTL(cfg.Cache.TTL.Scorecard, cfg.Cache.TTL.Heatmap)
	if cfg.RateLimit.Enabled {
		h.SetRateLimit(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	} else {
		h.DisableRateLimit()
	}
	return h
}

// ProvideApp creates the application server.
func ProvideApp(cfg *config.Config, l *applogger.Logger, h xhttp.Handler) *server.App {
	return server.New(cfg, l, h)
}
