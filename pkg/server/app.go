package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"LOBSim/internal/usecase"
	pkgch "LOBSim/pkg/clickhouse"
	"LOBSim/pkg/config"
	xhttp "LOBSim/pkg/http"
	xlogger "LOBSim/pkg/logger"
)

// App encapsulates the entire application lifecycle.
type App struct {
	cfg        *config.Config
	logger     *xlogger.Logger
	handler    xhttp.Handler
	builder    *usecase.DatasetBuilder
	writer     *usecase.SnapshotWriter
	chClient   *pkgch.Client
	httpServer *xhttp.Server
}

// New creates a new App instance with all dependencies.
func New(
	cfg *config.Config,
	logger *xlogger.Logger,
	handler xhttp.Handler,
	builder *usecase.DatasetBuilder,
	writer *usecase.SnapshotWriter,
	chClient *pkgch.Client,
) *App {
	return &App{
		cfg:      cfg,
		logger:   logger,
		handler:  handler,
		builder:  builder,
		writer:   writer,
		chClient: chClient,
	}
}

// Run starts the application and blocks until interrupted.
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a.httpServer = xhttp.NewServer(a.handler,
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout.Std(), a.cfg.Server.WriteTimeout.Std(), a.cfg.Server.ShutdownTimeout.Std()),
		xhttp.WithMetrics(a.cfg.Metrics.Enabled, a.cfg.Metrics.Path),
	)

	if err := a.httpServer.Start(); err != nil {
		a.logger.Error("http server start error", xlogger.Error(err))
		return err
	}
	a.logger.Info("server started",
		xlogger.Int("port", a.cfg.Server.Port),
		xlogger.String("backend", a.cfg.Backend.Type),
		xlogger.String("symbol", a.cfg.Simulation.Symbol),
	)

	if a.cfg.Simulation.ExportOnStart {
		go a.exportStartupRun(ctx)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	a.logger.Info("shutdown signal received")
	return a.shutdown(ctx)
}

// exportStartupRun generates one seeded run and persists it to the
// configured backend, so a fresh deployment has data to query.
func (a *App) exportStartupRun(ctx context.Context) {
	n := a.cfg.Simulation.ExportN
	if n <= 0 {
		n = 5000
	}
	seed := a.cfg.Simulation.Seed
	if seed == 0 {
		seed = 42
	}

	snaps, err := a.builder.Snapshots(a.cfg.Simulation.Symbol, n, seed)
	if err != nil {
		a.logger.Error("startup export generation failed", xlogger.Error(err))
		return
	}
	if err := a.writer.WriteBatch(ctx, snaps); err != nil {
		a.logger.Error("startup export write failed", xlogger.Error(err))
		return
	}
	a.logger.Info("startup export complete",
		xlogger.String("symbol", a.cfg.Simulation.Symbol),
		xlogger.Int("snapshots", len(snaps)),
		xlogger.String("backend", a.writer.Backend()),
	)
}

// shutdown gracefully stops all services.
func (a *App) shutdown(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, a.cfg.Server.ShutdownTimeout.Std())
	defer cancel()
	if err := a.httpServer.Stop(shutdownCtx); err != nil {
		a.logger.Error("http shutdown error", xlogger.Error(err))
	}

	if a.writer != nil {
		a.writer.Close()
	}

	if a.chClient != nil {
		if err := a.chClient.Close(); err != nil {
			a.logger.Warn("clickhouse close error", xlogger.Error(err))
		}
	}

	a.logger.Info("shutdown complete")
	return nil
}
