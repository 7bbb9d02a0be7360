// Package config defines the top-level configuration for the arbitrage
// scanner and provides validation helpers.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// Config is the root configuration structure. Fields are populated from a TOML
// file and then optionally overridden by ARBSCAN_* environment variables.
type Config struct {
	Scanner  ScannerConfig `toml:"scanner"`
	Dex      DexConfig     `toml:"dex"`
	Alerts   AlertsConfig  `toml:"alerts"`
	Redis    RedisConfig   `toml:"redis"`
	S3       S3Config      `toml:"s3"`
	Server   ServerConfig  `toml:"server"`
	Notify   NotifyConfig  `toml:"notify"`
	Mode     string        `toml:"mode"`
	LogLevel string        `toml:"log_level"`
}

// ScannerConfig holds market-scan parameters.
type ScannerConfig struct {
	// Exchanges lists enabled exchanges. The slice order is also the fixed
	// iteration order used by the detectors to break price ties, so it is
	// part of the scan's observable behavior, not a cosmetic choice.
	Exchanges []string `toml:"exchanges"`
	// HTTPTimeout bounds every outbound market-data request.
	HTTPTimeout duration `toml:"http_timeout"`
	// ScanInterval is the period of the background scan loop.
	ScanInterval duration `toml:"scan_interval"`
	// MaxSpreadPercent excludes implausible spreads caused by stale or junk
	// data; it is a data-quality filter, not a business constraint.
	MaxSpreadPercent float64 `toml:"max_spread_percent"`
	// MinFundingDailyPercent is the noise floor for the funding detector.
	MinFundingDailyPercent float64 `toml:"min_funding_daily_percent"`
	// FundingSettlementsPerDay converts a per-settlement funding differential
	// into a daily rate. 3 corresponds to 8-hour funding intervals.
	FundingSettlementsPerDay int `toml:"funding_settlements_per_day"`
}

// DexConfig holds the token-price-feed adapter parameters.
type DexConfig struct {
	Enabled bool   `toml:"enabled"`
	BaseURL string `toml:"base_url"`
	// Tokens are the tracked token contract addresses, one lookup each.
	Tokens []string `toml:"tokens"`
	// MinLiquidityUSD drops pairs too shallow to trade against.
	MinLiquidityUSD float64 `toml:"min_liquidity_usd"`
}

// AlertsConfig holds the alerting policy parameters.
type AlertsConfig struct {
	Enabled bool `toml:"enabled"`
	// Cooldown is the minimum interval between alerts for the same asset
	// key, global across all subscribers.
	Cooldown duration `toml:"cooldown"`
	// Absolute alert-worthiness floors per opportunity kind; per-user
	// thresholds apply on top of these.
	MinSpotFuturesSpread  float64 `toml:"min_spot_futures_spread"`
	MinFuturesSpread      float64 `toml:"min_futures_spread"`
	MinFundingDailyProfit float64 `toml:"min_funding_daily_profit"`
}

// RedisConfig holds Redis connection parameters. When disabled, profiles and
// cooldowns live in process memory and do not survive restarts.
type RedisConfig struct {
	Enabled    bool   `toml:"enabled"`
	Addr       string `toml:"addr"`
	Password   string `toml:"password"`
	DB         int    `toml:"db"`
	PoolSize   int    `toml:"pool_size"`
	MaxRetries int    `toml:"max_retries"`
	TLSEnabled bool   `toml:"tls_enabled"`
}

// S3Config holds S3-compatible object storage parameters for the optional
// cycle-snapshot archiver.
type S3Config struct {
	Enabled        bool   `toml:"enabled"`
	Endpoint       string `toml:"endpoint"`
	Region         string `toml:"region"`
	Bucket         string `toml:"bucket"`
	AccessKey      string `toml:"access_key"`
	SecretKey      string `toml:"secret_key"`
	UseSSL         bool   `toml:"use_ssl"`
	ForcePathStyle bool   `toml:"force_path_style"`
}

// ServerConfig holds HTTP server parameters.
type ServerConfig struct {
	Enabled     bool     `toml:"enabled"`
	Port        int      `toml:"port"`
	CORSOrigins []string `toml:"cors_origins"`
}

// NotifyConfig holds notification channel credentials.
type NotifyConfig struct {
	TelegramToken     string `toml:"telegram_token"`
	DiscordWebhookURL string `toml:"discord_webhook_url"`
}

// duration is a wrapper around time.Duration that supports TOML string
// decoding (e.g. "5m", "30s").
type duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler so the TOML decoder can
// parse duration strings like "5m" or "30s".
func (d *duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText implements encoding.TextMarshaler for round-trip encoding.
func (d duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// ValidExchanges enumerates the exchange names the scanner has adapters for,
// in the default iteration order.
var ValidExchanges = []string{"MEXC", "Gate.io", "BingX", "Bybit", "OKX", "Bitget"}

// Defaults returns a Config populated with reasonable default values.
func Defaults() Config {
	return Config{
		Scanner: ScannerConfig{
			Exchanges:                append([]string(nil), ValidExchanges...),
			HTTPTimeout:              duration{10 * time.Second},
			ScanInterval:             duration{5 * time.Minute},
			MaxSpreadPercent:         20.0,
			MinFundingDailyPercent:   0.01,
			FundingSettlementsPerDay: 3,
		},
		Dex: DexConfig{
			Enabled:         false,
			BaseURL:         "https://api.dexscreener.com",
			MinLiquidityUSD: 10_000,
		},
		Alerts: AlertsConfig{
			Enabled:               true,
			Cooldown:              duration{20 * time.Minute},
			MinSpotFuturesSpread:  3.0,
			MinFuturesSpread:      0.5,
			MinFundingDailyProfit: 0.5,
		},
		Redis: RedisConfig{
			Enabled:    false,
			Addr:       "localhost:6379",
			DB:         0,
			PoolSize:   20,
			MaxRetries: 3,
			TLSEnabled: false,
		},
		S3: S3Config{
			Enabled:        false,
			Endpoint:       "http://localhost:9000",
			Region:         "us-east-1",
			Bucket:         "arbscan-snapshots",
			UseSSL:         false,
			ForcePathStyle: true,
		},
		Server: ServerConfig{
			Enabled:     true,
			Port:        8000,
			CORSOrigins: []string{"http://localhost:3000"},
		},
		Mode:     "full",
		LogLevel: "info",
	}
}

// validModes enumerates the accepted values for Config.Mode.
var validModes = map[string]bool{
	"scan":   true,
	"daemon": true,
	"server": true,
	"full":   true,
}

// validLogLevels enumerates the accepted values for Config.LogLevel.
var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// Validate checks Config for obviously invalid or missing values and returns
// a combined error describing every problem found.
func (c *Config) Validate() error {
	var errs []string

	if !validModes[strings.ToLower(c.Mode)] {
		errs = append(errs, fmt.Sprintf("unknown mode %q (valid: scan, daemon, server, full)", c.Mode))
	}
	if !validLogLevels[strings.ToLower(c.LogLevel)] {
		errs = append(errs, fmt.Sprintf("unknown log_level %q (valid: debug, info, warn, error)", c.LogLevel))
	}

	// Scanner
	if len(c.Scanner.Exchanges) == 0 {
		errs = append(errs, "scanner: exchanges must not be empty")
	}
	known := make(map[string]bool, len(ValidExchanges))
	for _, ex := range ValidExchanges {
		known[ex] = true
	}
	for _, ex := range c.Scanner.Exchanges {
		if !known[ex] {
			errs = append(errs, fmt.Sprintf("scanner: unknown exchange %q (valid: %s)", ex, strings.Join(ValidExchanges, ", ")))
		}
	}
	if c.Scanner.HTTPTimeout.Duration <= 0 {
		errs = append(errs, "scanner: http_timeout must be positive")
	}
	if c.Scanner.ScanInterval.Duration <= 0 {
		errs = append(errs, "scanner: scan_interval must be positive")
	}
	if c.Scanner.MaxSpreadPercent <= 0 {
		errs = append(errs, "scanner: max_spread_percent must be > 0")
	}
	if c.Scanner.FundingSettlementsPerDay < 1 {
		errs = append(errs, "scanner: funding_settlements_per_day must be >= 1")
	}

	// Dex
	if c.Dex.Enabled {
		if c.Dex.BaseURL == "" {
			errs = append(errs, "dex: base_url must not be empty when enabled")
		}
		if len(c.Dex.Tokens) == 0 {
			errs = append(errs, "dex: tokens must not be empty when enabled")
		}
		for _, tok := range c.Dex.Tokens {
			// EVM token addresses only; other chains' address formats are
			// passed through to the feed as-is.
			if strings.HasPrefix(tok, "0x") && !common.IsHexAddress(tok) {
				errs = append(errs, fmt.Sprintf("dex: %q is not a valid token address", tok))
			}
		}
		if c.Dex.MinLiquidityUSD < 0 {
			errs = append(errs, "dex: min_liquidity_usd must be >= 0")
		}
	}

	// Alerts
	if c.Alerts.Enabled {
		if c.Alerts.Cooldown.Duration <= 0 {
			errs = append(errs, "alerts: cooldown must be positive")
		}
		if c.Alerts.MinSpotFuturesSpread < 0 || c.Alerts.MinFuturesSpread < 0 || c.Alerts.MinFundingDailyProfit < 0 {
			errs = append(errs, "alerts: floors must be >= 0")
		}
	}

	// Redis
	if c.Redis.Enabled {
		if c.Redis.Addr == "" {
			errs = append(errs, "redis: addr must not be empty when enabled")
		}
		if c.Redis.PoolSize < 1 {
			errs = append(errs, "redis: pool_size must be >= 1")
		}
	}

	// S3
	if c.S3.Enabled {
		if c.S3.Endpoint == "" {
			errs = append(errs, "s3: endpoint must not be empty when enabled")
		}
		if c.S3.Bucket == "" {
			errs = append(errs, "s3: bucket must not be empty when enabled")
		}
	}

	// Server
	if c.Server.Enabled {
		if c.Server.Port <= 0 || c.Server.Port > 65535 {
			errs = append(errs, fmt.Sprintf("server: port must be 1-65535, got %d", c.Server.Port))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
