package api

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	models "EdgeScore/internal/domain/models"
	icache "EdgeScore/internal/service/cache"
	"EdgeScore/internal/service/metrics"
	"EdgeScore/internal/service/ratelimit"
	"EdgeScore/internal/usecase"
	xhttp "EdgeScore/pkg/http"
	xlogger "EdgeScore/pkg/logger"

	"github.com/labstack/echo/v4"
)

// ScorecardsHandler serves the scoring API over Echo.
type ScorecardsHandler struct {
	logger *xlogger.Logger
	uc     *usecase.ScorecardUseCase
	cache  icache.BytesCache
	rl     *ratelimit.Limiter

	rlRPS   float64
	rlBurst float64

	scorecardTTL time.Duration
	heatmapTTL   time.Duration
}

func NewScorecardsHandler(logger *xlogger.Logger, uc *usecase.ScorecardUseCase) *ScorecardsHandler {
	metrics.Register()
	return &ScorecardsHandler{
		logger:       logger,
		uc:           uc,
		rl:           ratelimit.New(),
		rlRPS:        2,
		rlBurst:      5,
		scorecardTTL: 60 * time.Second,
		heatmapTTL:   30 * time.Second,
	}
}

func (h *ScorecardsHandler) SetCache(c icache.BytesCache) { h.cache = c }

func (h *ScorecardsHandler) SetCacheTTL(scorecard, heatmap time.Duration) {
	if scorecard > 0 {
		h.scorecardTTL = scorecard
	}
	if heatmap > 0 {
		h.heatmapTTL = heatmap
	}
}

// DisableRateLimit turns off per-client throttling entirely.
func (h *ScorecardsHandler) DisableRateLimit() { h.rl = nil }

func (h *ScorecardsHandler) SetRateLimit(rps float64, burst int) {
	if h.rl == nil {
		h.rl = ratelimit.New()
	}
	if rps > 0 {
		h.rlRPS = rps
	}
	if burst > 0 {
		h.rlBurst = float64(burst)
	}
}

func (h *ScorecardsHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api/v1")
	g.POST("/score", h.Score)
	g.POST("/scorecards", h.Scorecards)
	g.POST("/heatmap", h.Heatmap)
	g.POST("/top-setups", h.TopSetups)
}

// cacheKey derives a stable key from the request payload and the scoring
// version, so parameter changes invalidate previous entries.
func (h *ScorecardsHandler) cacheKey(endpoint string, payload interface{}) string {
	b, err := json.Marshal(payload)
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(b)
	return endpoint + ":" + h.uc.Version() + ":" + hex.EncodeToString(sum[:16])
}

func (h *ScorecardsHandler) fromCache(c echo.Context, endpoint, key string) (bool, error) {
	if h.cache == nil || key == "" {
		return false, nil
	}
	b, ok, err := h.cache.GetBytes(key)
	if err != nil {
		h.logger.Warn("scorecards cache_get_error", xlogger.String("endpoint", endpoint), xlogger.Error(err))
		return false, nil
	}
	if !ok {
		metrics.CacheMisses.WithLabelValues(endpoint).Inc()
		return false, nil
	}
	metrics.CacheHits.WithLabelValues(endpoint).Inc()
	return true, xhttp.SuccessResponse(c, json.RawMessage(b))
}

func (h *ScorecardsHandler) store(endpoint, key string, data interface{}, ttl time.Duration) {
	if h.cache == nil || key == "" {
		return
	}
	b, err := json.Marshal(data)
	if err != nil {
		return
	}
	if err := h.cache.SetBytes(key, b, ttl); err != nil {
		h.logger.Warn("scorecards cache_set_error", xlogger.String("endpoint", endpoint), xlogger.Error(err))
	}
}

func (h *ScorecardsHandler) allow(c echo.Context, endpoint string) bool {
	if h.rl == nil {
		return true
	}
	if !h.rl.Allow(c.RealIP()+":"+endpoint, h.rlBurst, h.rlRPS) {
		h.logger.Warn("scorecards rate_limited",
			xlogger.String("endpoint", endpoint),
			xlogger.String("remote", c.RealIP()))
		return false
	}
	return true
}

func (h *ScorecardsHandler) observe(card models.AssetScorecard) {
	metrics.ScorecardsComputed.WithLabelValues(string(card.Class)).Inc()
	for _, src := range card.MissingData {
		metrics.MissingData.WithLabelValues(src).Inc()
	}
}

func (h *ScorecardsHandler) Score(c echo.Context) error {
	start := time.Now()
	endpoint := "score"
	defer func() { metrics.ScoringLatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds()) }()

	req := &models.ScoreRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	if !h.allow(c, endpoint) {
		return xhttp.AppErrorResponse(c, tooManyRequests())
	}

	key := h.cacheKey(endpoint, req)
	if hit, err := h.fromCache(c, endpoint, key); hit {
		return err
	}

	card, err := h.uc.GetScorecard(c.Request().Context(), req.Snapshot)
	if err != nil {
		metrics.ScoringErrors.WithLabelValues(endpoint).Inc()
		h.logger.Error("score usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, xhttp.BadRequestError(err.Error()))
	}
	h.observe(*card)

	h.store(endpoint, key, card, h.scorecardTTL)
	return xhttp.SuccessResponse(c, card)
}

func (h *ScorecardsHandler) Scorecards(c echo.Context) error {
	start := time.Now()
	endpoint := "scorecards"
	defer func() { metrics.ScoringLatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds()) }()

	req := &models.ScorecardsRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	if !h.allow(c, endpoint) {
		return xhttp.AppErrorResponse(c, tooManyRequests())
	}

	key := h.cacheKey(endpoint, req)
	if hit, err := h.fromCache(c, endpoint, key); hit {
		return err
	}

	cards, err := h.uc.GetScorecards(c.Request().Context(), req.Snapshots)
	if err != nil {
		metrics.ScoringErrors.WithLabelValues(endpoint).Inc()
		h.logger.Error("scorecards usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, xhttp.BadRequestError(err.Error()))
	}
	for i := range cards {
		h.observe(cards[i])
	}

	h.store(endpoint, key, cards, h.scorecardTTL)
	return xhttp.SuccessResponse(c, cards)
}

func (h *ScorecardsHandler) Heatmap(c echo.Context) error {
	start := time.Now()
	endpoint := "heatmap"
	defer func() { metrics.ScoringLatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds()) }()

	req := &models.HeatmapRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	if !h.allow(c, endpoint) {
		return xhttp.AppErrorResponse(c, tooManyRequests())
	}

	key := h.cacheKey(endpoint, req)
	if hit, err := h.fromCache(c, endpoint, key); hit {
		return err
	}

	rows, err := h.uc.GetHeatmap(c.Request().Context(), req.Snapshots)
	if err != nil {
		metrics.ScoringErrors.WithLabelValues(endpoint).Inc()
		h.logger.Error("heatmap usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, xhttp.BadRequestError(err.Error()))
	}

	h.store(endpoint, key, rows, h.heatmapTTL)
	return xhttp.SuccessResponse(c, rows)
}

func (h *ScorecardsHandler) TopSetups(c echo.Context) error {
	start := time.Now()
	endpoint := "top_setups"
	defer func() { metrics.ScoringLatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds()) }()

	req := &models.TopSetupsRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	if !h.allow(c, endpoint) {
		return xhttp.AppErrorResponse(c, tooManyRequests())
	}

	// Query param wins over the body default so dashboards can tweak the
	// list size without resending the payload. Folded into the request
	// before key derivation so it participates in caching.
	req.Limit = xhttp.ParseIntDefault(c.QueryParam("limit"), req.Limit)

	key := h.cacheKey(endpoint, req)
	if hit, err := h.fromCache(c, endpoint, key); hit {
		return err
	}

	entries, err := h.uc.GetTopSetups(c.Request().Context(), req.Snapshots, req.Limit)
	if err != nil {
		metrics.ScoringErrors.WithLabelValues(endpoint).Inc()
		h.logger.Error("top-setups usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, xhttp.BadRequestError(err.Error()))
	}

	h.store(endpoint, key, entries, h.heatmapTTL)
	return xhttp.SuccessResponse(c, entries)
}

func tooManyRequests() *xhttp.AppError {
	return xhttp.NewAppError("ERR_RATE_LIMITED", "", "rate limited", 429)
}
