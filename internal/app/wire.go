package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spreadup/arbscan/internal/alert"
	s3blob "github.com/spreadup/arbscan/internal/blob/s3"
	redisstore "github.com/spreadup/arbscan/internal/cache/redis"
	"github.com/spreadup/arbscan/internal/config"
	"github.com/spreadup/arbscan/internal/domain"
	"github.com/spreadup/arbscan/internal/exchange"
	"github.com/spreadup/arbscan/internal/notify"
	"github.com/spreadup/arbscan/internal/scanner"
	"github.com/spreadup/arbscan/internal/store/memory"
)

// Dependencies bundles everything the operating modes need. The hub, the
// orchestrator, and the HTTP server are assembled per-mode on top of these.
type Dependencies struct {
	Adapters []exchange.Adapter
	// Venues holds the adapters' names in wiring order. Detectors, default
	// profiles, and profile validation all work off this list rather than the
	// raw exchange config, so the dex feed's venue is covered when enabled.
	Venues    []string
	Markets   domain.MarketStore
	Profiles  domain.ProfileStore
	Cooldowns domain.CooldownStore
	Notifier  *notify.Notifier
	Scanner   *scanner.Scanner
	Policy    *alert.Policy
	// Archiver is nil unless S3 is enabled.
	Archiver *s3blob.SnapshotArchiver
}

// Wire constructs the full dependency graph from the configuration. It returns
// the dependencies, a cleanup function that closes every connection it opened,
// and an error if any subsystem fails to initialize. On error the cleanup has
// already been run.
func Wire(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Dependencies, func(), error) {
	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	adapters := buildAdapters(cfg, logger)
	venues := venueNames(adapters)

	// The latest snapshot is always held in memory; it is rebuilt on the first
	// cycle after a restart, so there is nothing to persist.
	markets := memory.NewMarketStore()

	var profiles domain.ProfileStore
	var cooldowns domain.CooldownStore
	if cfg.Redis.Enabled {
		rc, err := redisstore.New(ctx, redisstore.ClientConfig{
			Addr:       cfg.Redis.Addr,
			Password:   cfg.Redis.Password,
			DB:         cfg.Redis.DB,
			PoolSize:   cfg.Redis.PoolSize,
			MaxRetries: cfg.Redis.MaxRetries,
			TLSEnabled: cfg.Redis.TLSEnabled,
		})
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("wire: redis: %w", err)
		}
		closers = append(closers, func() {
			if err := rc.Close(); err != nil {
				logger.Warn("redis close failed", slog.String("error", err.Error()))
			}
		})
		profiles = redisstore.NewProfileStore(rc, venues)
		cooldowns = redisstore.NewCooldownStore(rc)
		logger.InfoContext(ctx, "redis connected", slog.String("addr", cfg.Redis.Addr))
	} else {
		profiles = memory.NewProfileStore(venues)
		cooldowns = memory.NewCooldownStore()
	}

	notifier := notify.NewNotifier(buildSenders(cfg), logger)

	detector := scanner.NewDetector(
		venues,
		cfg.Scanner.MaxSpreadPercent,
		cfg.Scanner.MinFundingDailyPercent,
		cfg.Scanner.FundingSettlementsPerDay,
	)
	scan := scanner.New(adapters, detector, markets, logger)

	policy := alert.NewPolicy(alert.Config{
		Enabled:               cfg.Alerts.Enabled,
		Cooldown:              cfg.Alerts.Cooldown.Duration,
		MinSpotFuturesSpread:  cfg.Alerts.MinSpotFuturesSpread,
		MinFuturesSpread:      cfg.Alerts.MinFuturesSpread,
		MinFundingDailyProfit: cfg.Alerts.MinFundingDailyProfit,
	}, profiles, cooldowns, notifier, logger)

	var archiver *s3blob.SnapshotArchiver
	if cfg.S3.Enabled {
		sc, err := s3blob.New(ctx, s3blob.ClientConfig{
			Endpoint:       cfg.S3.Endpoint,
			Region:         cfg.S3.Region,
			Bucket:         cfg.S3.Bucket,
			AccessKey:      cfg.S3.AccessKey,
			SecretKey:      cfg.S3.SecretKey,
			UseSSL:         cfg.S3.UseSSL,
			ForcePathStyle: cfg.S3.ForcePathStyle,
		})
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("wire: s3: %w", err)
		}
		closers = append(closers, func() { _ = sc.Close() })
		archiver = s3blob.NewSnapshotArchiver(s3blob.NewWriter(sc))
		logger.InfoContext(ctx, "snapshot archiving enabled", slog.String("bucket", cfg.S3.Bucket))
	}

	return &Dependencies{
		Adapters:  adapters,
		Venues:    venues,
		Markets:   markets,
		Profiles:  profiles,
		Cooldowns: cooldowns,
		Notifier:  notifier,
		Scanner:   scan,
		Policy:    policy,
		Archiver:  archiver,
	}, cleanup, nil
}

// buildAdapters instantiates one adapter per configured exchange, in config
// order. The order matters: the detectors use it to break price ties. The
// token price feed, when enabled, is appended after the exchanges.
func buildAdapters(cfg *config.Config, logger *slog.Logger) []exchange.Adapter {
	opts := exchange.Options{
		Client: exchange.NewHTTPClient(cfg.Scanner.HTTPTimeout.Duration),
		Logger: logger,
	}

	adapters := make([]exchange.Adapter, 0, len(cfg.Scanner.Exchanges)+1)
	for _, name := range cfg.Scanner.Exchanges {
		switch name {
		case "MEXC":
			adapters = append(adapters, exchange.NewMEXC(opts))
		case "Gate.io":
			adapters = append(adapters, exchange.NewGateIO(opts))
		case "BingX":
			adapters = append(adapters, exchange.NewBingX(opts))
		case "Bybit":
			adapters = append(adapters, exchange.NewBybit(opts))
		case "OKX":
			adapters = append(adapters, exchange.NewOKX(opts))
		case "Bitget":
			adapters = append(adapters, exchange.NewBitget(opts))
		}
	}

	if cfg.Dex.Enabled {
		adapters = append(adapters, exchange.NewDexScreener(
			cfg.Dex.BaseURL, cfg.Dex.Tokens, cfg.Dex.MinLiquidityUSD, opts,
		))
	}
	return adapters
}

// venueNames returns the adapters' display names in wiring order. This is the
// venue list the rest of the system sees, so a quote source only an adapter
// introduces (the dex feed) is selectable by the detectors and enabled in
// default profiles.
func venueNames(adapters []exchange.Adapter) []string {
	names := make([]string, len(adapters))
	for i, a := range adapters {
		names[i] = a.Name()
	}
	return names
}

// buildSenders creates one notification sender per configured channel. With
// neither channel configured the notifier delivers to nobody, which is the
// normal state for a scan-only or dashboard-only deployment.
func buildSenders(cfg *config.Config) []notify.Sender {
	var senders []notify.Sender
	if cfg.Notify.TelegramToken != "" {
		senders = append(senders, notify.NewTelegramSender(cfg.Notify.TelegramToken))
	}
	if cfg.Notify.DiscordWebhookURL != "" {
		senders = append(senders, notify.NewDiscordSender(cfg.Notify.DiscordWebhookURL))
	}
	return senders
}
