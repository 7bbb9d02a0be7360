// Package pipeline runs the periodic scan-and-alert cycle and fans each
// cycle's results out to the WebSocket hub and the snapshot archive.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spreadup/arbscan/internal/domain"
)

// Scanner runs one scan cycle. The scanner package implements it.
type Scanner interface {
	Scan(ctx context.Context) (domain.Snapshot, domain.ScanSummary, error)
}

// Alerter evaluates one snapshot against the subscriber base. The alert
// package implements it.
type Alerter interface {
	Evaluate(ctx context.Context, snap domain.Snapshot) (int, error)
}

// Broadcaster pushes cycle results to connected dashboard clients. The ws hub
// implements it; nil disables broadcasting.
type Broadcaster interface {
	Broadcast(channel string, payload any)
}

// Archiver persists each cycle's snapshot to cold storage; nil disables
// archiving.
type Archiver interface {
	Archive(ctx context.Context, snap domain.Snapshot) error
}

// Broadcast channel names, matching the ws hub's envelope types.
const (
	channelSnapshot = "snapshot"
	channelSummary  = "summary"
)

// Orchestrator ties the scanner, the alerting policy, and the optional
// side-channels together into one periodic loop.
type Orchestrator struct {
	scanner     Scanner
	alerter     Alerter
	broadcaster Broadcaster
	archiver    Archiver
	interval    time.Duration
	logger      *slog.Logger
}

// NewOrchestrator creates an Orchestrator. broadcaster and archiver may be
// nil.
func NewOrchestrator(scanner Scanner, alerter Alerter, broadcaster Broadcaster, archiver Archiver, interval time.Duration, logger *slog.Logger) *Orchestrator {
	return &Orchestrator{
		scanner:     scanner,
		alerter:     alerter,
		broadcaster: broadcaster,
		archiver:    archiver,
		interval:    interval,
		logger:      logger.With(slog.String("component", "pipeline")),
	}
}

// RunCycle executes one scan-and-alert cycle and returns its summary. It is
// both the loop body and the on-demand entrypoint behind POST /api/scan.
func (o *Orchestrator) RunCycle(ctx context.Context) (domain.ScanSummary, error) {
	snap, summary, err := o.scanner.Scan(ctx)
	if err != nil {
		return domain.ScanSummary{}, fmt.Errorf("pipeline: scan: %w", err)
	}

	sent, err := o.alerter.Evaluate(ctx, snap)
	if err != nil {
		// Alerting trouble never loses the snapshot; it is already stored.
		o.logger.Error("alert evaluation failed", slog.String("error", err.Error()))
	} else if sent > 0 {
		o.logger.Info("alerts dispatched", slog.Int("count", sent))
	}

	if o.broadcaster != nil {
		o.broadcaster.Broadcast(channelSnapshot, snap)
		o.broadcaster.Broadcast(channelSummary, summary)
	}

	if o.archiver != nil {
		if err := o.archiver.Archive(ctx, snap); err != nil {
			o.logger.Error("snapshot archive failed", slog.String("error", err.Error()))
		}
	}

	return summary, nil
}

// Run executes cycles on the configured interval until ctx is cancelled. The
// first cycle runs immediately so a fresh deployment serves data without
// waiting out the interval.
func (o *Orchestrator) Run(ctx context.Context) error {
	o.logger.Info("starting scan loop", slog.Duration("interval", o.interval))

	if _, err := o.RunCycle(ctx); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		o.logger.Error("scan cycle failed", slog.String("error", err.Error()))
	}

	ticker := time.NewTicker(o.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			o.logger.Info("scan loop stopped")
			return nil
		case <-ticker.C:
			if _, err := o.RunCycle(ctx); err != nil {
				if ctx.Err() != nil {
					return nil
				}
				// One bad cycle does not stop the loop.
				o.logger.Error("scan cycle failed", slog.String("error", err.Error()))
			}
		}
	}
}
