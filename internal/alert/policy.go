// Package alert decides which detected opportunities become notifications
// and fans them out to subscribers through a Dispatcher.
package alert

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/spreadup/arbscan/internal/domain"
)

// Config carries the alerting thresholds. The Min* floors are absolute
// alert-worthiness bounds applied before any per-subscriber filtering; a
// subscriber's own thresholds can only tighten them.
type Config struct {
	Enabled               bool
	Cooldown              time.Duration
	MinSpotFuturesSpread  float64
	MinFuturesSpread      float64
	MinFundingDailyProfit float64
}

// Policy evaluates one snapshot per scan cycle against the subscriber base.
type Policy struct {
	cfg      Config
	profiles domain.ProfileStore
	cooldown domain.CooldownStore
	dispatch domain.Dispatcher
	logger   *slog.Logger
}

// NewPolicy assembles the alerting policy.
func NewPolicy(cfg Config, profiles domain.ProfileStore, cooldown domain.CooldownStore, dispatch domain.Dispatcher, logger *slog.Logger) *Policy {
	return &Policy{
		cfg:      cfg,
		profiles: profiles,
		cooldown: cooldown,
		dispatch: dispatch,
		logger:   logger.With(slog.String("component", "alert")),
	}
}

// Evaluate walks the snapshot's opportunity lists and dispatches alerts.
// It returns the number of notifications handed to the dispatcher.
//
// Cooldown is claimed per asset key the moment an opportunity clears the
// absolute floor, before any subscriber filtering. The window is therefore
// global: a subscriber whose filters rejected this alert does not get a fresh
// one for the same asset until the window lapses.
func (p *Policy) Evaluate(ctx context.Context, snap domain.Snapshot) (int, error) {
	if !p.cfg.Enabled {
		return 0, nil
	}

	subs, err := p.profiles.Subscribers(ctx)
	if err != nil {
		return 0, fmt.Errorf("alert: list subscribers: %w", err)
	}

	sent := 0
	for _, o := range snap.SpotFutures {
		if o.SpreadPercent < p.cfg.MinSpotFuturesSpread {
			continue
		}
		if !p.claim(ctx, domain.AssetKey(domain.KindSpotFutures, o.BaseAsset)) {
			continue
		}
		sent += p.fanOut(ctx, subs, domain.KindSpotFutures, o.Volume24h,
			func(prof domain.FilterProfile) bool {
				return o.SpreadPercent >= prof.MinSpreadPercent &&
					prof.AllowsExchanges(o.SpotExchange, o.FuturesExchange)
			},
			func() (string, string) { return FormatSpotFutures(o) })
	}

	for _, o := range snap.FuturesFutures {
		if o.SpreadPercent < p.cfg.MinFuturesSpread {
			continue
		}
		if !p.claim(ctx, domain.AssetKey(domain.KindFuturesFutures, o.BaseAsset)) {
			continue
		}
		sent += p.fanOut(ctx, subs, domain.KindFuturesFutures, o.Volume24h,
			func(prof domain.FilterProfile) bool {
				return o.SpreadPercent >= prof.MinSpreadPercent &&
					prof.AllowsExchanges(o.BuyExchange, o.SellExchange)
			},
			func() (string, string) { return FormatFuturesFutures(o) })
	}

	for _, o := range snap.FundingRates {
		if o.DailyProfitPercent < p.cfg.MinFundingDailyProfit {
			continue
		}
		if !p.claim(ctx, domain.AssetKey(domain.KindFundingRate, o.BaseAsset)) {
			continue
		}
		sent += p.fanOut(ctx, subs, domain.KindFundingRate, o.Volume24h,
			func(prof domain.FilterProfile) bool {
				return o.DailyProfitPercent >= prof.MinFundingDailyPercent &&
					prof.AllowsExchanges(o.LongExchange, o.ShortExchange)
			},
			func() (string, string) { return FormatFundingRate(o) })
	}

	return sent, nil
}

// claim atomically checks and marks the cooldown for one asset key. A store
// failure counts as "in cooldown": better a missed alert than a duplicate
// storm when the store is flapping.
func (p *Policy) claim(ctx context.Context, key string) bool {
	ok, err := p.cooldown.ShouldAlert(ctx, key, p.cfg.Cooldown)
	if err != nil {
		p.logger.Warn("cooldown check failed",
			slog.String("key", key),
			slog.String("error", err.Error()))
		return false
	}
	return ok
}

// fanOut delivers one opportunity to every matching subscriber. A failed
// delivery or profile read is logged and never blocks the remaining
// subscribers.
func (p *Policy) fanOut(ctx context.Context, subs []string, kind domain.OpportunityKind, volume float64, matches func(domain.FilterProfile) bool, format func() (string, string)) int {
	sent := 0
	for _, chatID := range subs {
		prof, err := p.profiles.Get(ctx, chatID)
		if err != nil {
			p.logger.Warn("profile read failed",
				slog.String("chat_id", chatID),
				slog.String("error", err.Error()))
			continue
		}
		if prof.Mode != kind || !matches(prof) {
			continue
		}
		if prof.MinVolume > 0 && volume > 0 && volume < prof.MinVolume {
			continue
		}
		title, body := format()
		n := domain.Notification{
			ID:     uuid.NewString(),
			ChatID: chatID,
			Kind:   kind,
			Title:  title,
			Body:   body,
		}
		if err := p.dispatch.Dispatch(ctx, n); err != nil {
			p.logger.Warn("alert delivery failed",
				slog.String("chat_id", chatID),
				slog.String("notification_id", n.ID),
				slog.String("error", err.Error()))
			continue
		}
		sent++
	}
	return sent
}
