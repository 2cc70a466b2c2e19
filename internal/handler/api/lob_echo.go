package api

import (
	"errors"
	"time"

	"LOBSim/internal/domain/models"
	drepo "LOBSim/internal/domain/repository"
	domsvc "LOBSim/internal/domain/service"
	"LOBSim/internal/service/ratelimit"
	"LOBSim/internal/usecase"
	xhttp "LOBSim/pkg/http"
	xlogger "LOBSim/pkg/logger"
	"LOBSim/pkg/util"

	"github.com/labstack/echo/v4"
)

// RateLimitConfig bounds the generation endpoints per client IP.
type RateLimitConfig struct {
	Enabled      bool
	Capacity     float64
	RefillPerSec float64
}

// LOBEchoHandler exposes the snapshot generator, feature extractor and
// analysis pipeline over Echo.
type LOBEchoHandler struct {
	logger   *xlogger.Logger
	builder  *usecase.DatasetBuilder
	writer   *usecase.SnapshotWriter
	analysis *usecase.AnalysisService
	store    drepo.SnapshotStore
	limiter  *ratelimit.Limiter
	rl       RateLimitConfig
}

func NewLOBEchoHandler(
	logger *xlogger.Logger,
	builder *usecase.DatasetBuilder,
	writer *usecase.SnapshotWriter,
	analysis *usecase.AnalysisService,
	store drepo.SnapshotStore,
	rl RateLimitConfig,
) *LOBEchoHandler {
	return &LOBEchoHandler{
		logger:   logger,
		builder:  builder,
		writer:   writer,
		analysis: analysis,
		store:    store,
		limiter:  ratelimit.New(),
		rl:       rl,
	}
}

func (h *LOBEchoHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", h.Health)

	g := e.Group("/api")
	g.GET("/snapshots", h.Snapshots)
	g.GET("/features", h.Features)
	g.GET("/analysis", h.Analysis)
	g.GET("/regimes", h.Regimes)
	g.GET("/history", h.History)
	g.POST("/dataset/export", h.Export)
	g.GET("/stream", h.Stream)
}

func (h *LOBEchoHandler) allow(c echo.Context) bool {
	if !h.rl.Enabled {
		return true
	}
	return h.limiter.Allow(c.RealIP(), h.rl.Capacity, h.rl.RefillPerSec)
}

func (h *LOBEchoHandler) Snapshots(c echo.Context) error {
	req := &models.SnapshotsRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	if !h.allow(c) {
		return xhttp.TooManyRequestsResponse(c, "generation rate limit exceeded")
	}

	snaps, err := h.builder.Snapshots(req.Symbol, req.N, req.Seed)
	if err != nil {
		return h.fail(c, "snapshots", err)
	}
	total := int64(len(snaps))
	if len(snaps) > req.Limit {
		snaps = snaps[:req.Limit]
	}
	return xhttp.ListResponse(c, snaps, total)
}

func (h *LOBEchoHandler) Features(c echo.Context) error {
	req := &models.FeaturesRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	if !h.allow(c) {
		return xhttp.TooManyRequestsResponse(c, "generation rate limit exceeded")
	}

	feats, err := h.builder.Features(req.Symbol, req.N, req.Seed, req.Lookback)
	if err != nil {
		return h.fail(c, "features", err)
	}
	total := int64(len(feats))
	if len(feats) > req.Limit {
		feats = feats[:req.Limit]
	}
	return xhttp.ListResponse(c, feats, total)
}

func (h *LOBEchoHandler) Analysis(c echo.Context) error {
	req := &models.AnalysisRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	if !h.allow(c) {
		return xhttp.TooManyRequestsResponse(c, "generation rate limit exceeded")
	}

	res, err := h.analysis.Run(req)
	if err != nil {
		return h.fail(c, "analysis", err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *LOBEchoHandler) Regimes(c echo.Context) error {
	req := &models.AnalysisRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	if !h.allow(c) {
		return xhttp.TooManyRequestsResponse(c, "generation rate limit exceeded")
	}

	res, err := h.analysis.Run(req)
	if err != nil {
		return h.fail(c, "regimes", err)
	}
	return xhttp.ListResponse(c, res.Regimes, int64(len(res.Regimes)))
}

// History reads previously exported snapshots back from the store.
func (h *LOBEchoHandler) History(c echo.Context) error {
	if h.store == nil {
		return xhttp.NotFoundResponse(c, "no snapshot store configured")
	}
	req := &models.SnapshotsRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	now := time.Now().UTC()
	from := util.ParseTimeDefault(c.QueryParam("from"), now.Add(-24*time.Hour))
	to := util.ParseTimeDefault(c.QueryParam("to"), now)

	snaps, err := h.store.Query(c.Request().Context(), req.Symbol, from, to, req.Limit)
	if err != nil {
		return h.fail(c, "history", err)
	}
	return xhttp.ListResponse(c, snaps, int64(len(snaps)))
}

func (h *LOBEchoHandler) Export(c echo.Context) error {
	req := &models.ExportRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	if !h.allow(c) {
		return xhttp.TooManyRequestsResponse(c, "generation rate limit exceeded")
	}

	snaps, err := h.builder.Snapshots(req.Symbol, req.N, req.Seed)
	if err != nil {
		return h.fail(c, "export", err)
	}
	if err := h.writer.WriteBatch(c.Request().Context(), snaps); err != nil {
		h.logger.Error("export write failed", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, xhttp.InternalErrorf("export to %s failed", h.writer.Backend()).WithError(err))
	}

	stats := h.builder.Stats(snaps)
	return xhttp.SuccessResponse(c, stats)
}

func (h *LOBEchoHandler) Health(c echo.Context) error {
	status := map[string]string{"status": "ok", "backend": h.writer.Backend()}
	if h.store != nil {
		if err := h.store.Health(c.Request().Context()); err != nil {
			status["status"] = "degraded"
			status["store"] = err.Error()
		}
	}
	return xhttp.SuccessResponse(c, status)
}

func (h *LOBEchoHandler) fail(c echo.Context, op string, err error) error {
	if errors.Is(err, domsvc.ErrInvalidConfig) || errors.Is(err, domsvc.ErrAnalysisUnavailable) {
		return xhttp.AppErrorResponse(c, xhttp.BadRequestError(err.Error()).WithError(err))
	}
	h.logger.Error(op+" usecase error", xlogger.Error(err))
	return xhttp.AppErrorResponse(c, err)
}
