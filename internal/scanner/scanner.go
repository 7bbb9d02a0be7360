package scanner

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/spreadup/arbscan/internal/domain"
	"github.com/spreadup/arbscan/internal/exchange"
)

// Scanner runs one full scan cycle: fan out to every adapter, aggregate,
// detect, and publish the snapshot to the market store.
type Scanner struct {
	adapters []exchange.Adapter
	detector *Detector
	store    domain.MarketStore
	logger   *slog.Logger
	now      func() time.Time
}

// New assembles a scanner over the given adapters.
func New(adapters []exchange.Adapter, detector *Detector, store domain.MarketStore, logger *slog.Logger) *Scanner {
	return &Scanner{
		adapters: adapters,
		detector: detector,
		store:    store,
		logger:   logger.With(slog.String("component", "scanner")),
		now:      time.Now,
	}
}

// Scan executes one cycle. Adapter failures degrade the cycle (the venue
// contributes nothing); the only error paths are context cancellation and a
// failed snapshot publish.
func (s *Scanner) Scan(ctx context.Context) (domain.Snapshot, domain.ScanSummary, error) {
	start := s.now()

	quotes := make([]domain.ExchangeQuote, len(s.adapters))
	g, gctx := errgroup.WithContext(ctx)
	for i, a := range s.adapters {
		g.Go(func() error {
			quotes[i] = a.Fetch(gctx)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return domain.Snapshot{}, domain.ScanSummary{}, err
	}
	if err := ctx.Err(); err != nil {
		return domain.Snapshot{}, domain.ScanSummary{}, err
	}

	market := Aggregate(quotes)

	snap := domain.Snapshot{
		SpotFutures:    s.detector.SpotFutures(market),
		FuturesFutures: s.detector.FuturesFutures(market),
		FundingRates:   s.detector.FundingRates(market),
		UpdatedAt:      s.now(),
	}

	if err := s.store.Set(ctx, snap); err != nil {
		return domain.Snapshot{}, domain.ScanSummary{}, fmt.Errorf("scanner: store snapshot: %w", err)
	}

	summary := s.summarize(snap, quotes, s.now().Sub(start))
	s.logger.Info("scan cycle complete",
		slog.Int("spot_futures", summary.SpotFutures),
		slog.Int("futures_futures", summary.FuturesFutures),
		slog.Int("funding_rates", summary.FundingRates),
		slog.Int("cross_exchange", summary.CrossExchange),
		slog.Duration("duration", summary.Duration))
	return snap, summary, nil
}

func (s *Scanner) summarize(snap domain.Snapshot, quotes []domain.ExchangeQuote, elapsed time.Duration) domain.ScanSummary {
	summary := domain.ScanSummary{
		SpotFutures:       len(snap.SpotFutures),
		FuturesFutures:    len(snap.FuturesFutures),
		FundingRates:      len(snap.FundingRates),
		Duration:          elapsed,
		SymbolsByExchange: make(map[string]int, len(quotes)),
	}
	for _, o := range snap.SpotFutures {
		if o.IsCrossExchange {
			summary.CrossExchange++
		}
	}
	for _, q := range quotes {
		summary.SymbolsByExchange[q.Exchange] = len(q.Spot)
	}
	return summary
}
