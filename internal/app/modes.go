package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/spreadup/arbscan/internal/pipeline"
	"github.com/spreadup/arbscan/internal/server"
	"github.com/spreadup/arbscan/internal/server/handler"
	"github.com/spreadup/arbscan/internal/server/ws"
)

// ScanMode runs a single scan-and-alert cycle and exits. Intended for cron
// jobs and manual checks.
func (a *App) ScanMode(ctx context.Context, deps *Dependencies) error {
	a.logger.InfoContext(ctx, "starting scan mode")

	orch := a.newOrchestrator(deps, nil)
	summary, err := orch.RunCycle(ctx)
	if err != nil {
		return fmt.Errorf("scan mode: %w", err)
	}

	a.logger.InfoContext(ctx, "scan complete",
		slog.Int("spot_futures", summary.SpotFutures),
		slog.Int("futures_futures", summary.FuturesFutures),
		slog.Int("funding_rates", summary.FundingRates),
		slog.Duration("duration", summary.Duration),
	)
	return nil
}

// DaemonMode runs the periodic scan loop with alerting but no HTTP surface.
func (a *App) DaemonMode(ctx context.Context, deps *Dependencies) error {
	a.logger.InfoContext(ctx, "starting daemon mode",
		slog.Duration("interval", a.cfg.Scanner.ScanInterval.Duration),
	)

	orch := a.newOrchestrator(deps, nil)
	return orch.Run(ctx)
}

// ServerMode serves the REST and WebSocket API without a background scan
// loop. Cycles run only on demand through POST /api/scan.
func (a *App) ServerMode(ctx context.Context, deps *Dependencies) error {
	a.logger.InfoContext(ctx, "starting server mode")

	g, ctx := errgroup.WithContext(ctx)

	hub := a.newHub()
	g.Go(func() error {
		return hub.Run(ctx)
	})

	orch := a.newOrchestrator(deps, hub)
	a.startHTTPServer(ctx, g, deps, hub, orch)

	return g.Wait()
}

// FullMode runs everything: the scan loop, alerting, and the HTTP and
// WebSocket API.
func (a *App) FullMode(ctx context.Context, deps *Dependencies) error {
	a.logger.InfoContext(ctx, "starting full mode",
		slog.Duration("interval", a.cfg.Scanner.ScanInterval.Duration),
	)

	g, ctx := errgroup.WithContext(ctx)

	hub := a.newHub()
	g.Go(func() error {
		return hub.Run(ctx)
	})

	orch := a.newOrchestrator(deps, hub)
	g.Go(func() error {
		return orch.Run(ctx)
	})

	a.startHTTPServer(ctx, g, deps, hub, orch)

	return g.Wait()
}

func (a *App) newHub() *ws.Hub {
	return ws.NewHub(a.logger, ws.Config{
		Mode:      a.cfg.Mode,
		StartedAt: a.startedAt,
	})
}

// newOrchestrator assembles the cycle loop around the wired dependencies.
// hub may be nil in modes without a WebSocket surface. The interface fields
// are only set from non-nil concrete values so the orchestrator's nil checks
// hold.
func (a *App) newOrchestrator(deps *Dependencies, hub *ws.Hub) *pipeline.Orchestrator {
	var broadcaster pipeline.Broadcaster
	if hub != nil {
		broadcaster = hub
	}
	var archiver pipeline.Archiver
	if deps.Archiver != nil {
		archiver = deps.Archiver
	}
	return pipeline.NewOrchestrator(
		deps.Scanner, deps.Policy, broadcaster, archiver,
		a.cfg.Scanner.ScanInterval.Duration, a.logger,
	)
}

// startHTTPServer adds the HTTP server goroutine to the given errgroup. The
// server is shut down gracefully when the context is cancelled.
func (a *App) startHTTPServer(ctx context.Context, g *errgroup.Group, deps *Dependencies, hub *ws.Hub, orch *pipeline.Orchestrator) {
	handlers := server.Handlers{
		Health:        handler.NewHealthHandler(a.logger),
		Status:        handler.NewStatusHandler(a.cfg.Mode, deps.Venues, a.startedAt, deps.Markets, deps.Profiles),
		Opportunities: handler.NewOpportunityHandler(deps.Markets, deps.Profiles, a.logger),
		Scan:          handler.NewScanHandler(orch, a.logger),
		Subscriptions: handler.NewSubscriptionHandler(deps.Profiles, a.logger),
		Profiles:      handler.NewProfileHandler(deps.Profiles, deps.Venues, a.logger),
	}

	srv := server.NewServer(server.Config{
		Port:        a.cfg.Server.Port,
		CORSOrigins: a.cfg.Server.CORSOrigins,
	}, handlers, hub, a.logger)

	g.Go(func() error {
		a.logger.InfoContext(ctx, "HTTP server listening",
			slog.Int("port", a.cfg.Server.Port),
			slog.String("url", fmt.Sprintf("http://localhost:%d", a.cfg.Server.Port)),
		)
		return srv.Start()
	})

	g.Go(func() error {
		<-ctx.Done()
		shutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutCtx)
	})
}
