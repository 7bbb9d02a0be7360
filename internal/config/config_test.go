package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultsAreValid(t *testing.T) {
	cfg := Defaults()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, ValidExchanges, cfg.Scanner.Exchanges)
	assert.Equal(t, 10*time.Second, cfg.Scanner.HTTPTimeout.Duration)
	assert.Equal(t, 20.0, cfg.Scanner.MaxSpreadPercent)
	assert.Equal(t, 3, cfg.Scanner.FundingSettlementsPerDay)
	assert.Equal(t, 20*time.Minute, cfg.Alerts.Cooldown.Duration)
	assert.Equal(t, "full", cfg.Mode)
}

func TestValidateCollectsAllErrors(t *testing.T) {
	cfg := Defaults()
	cfg.Mode = "turbo"
	cfg.Scanner.Exchanges = []string{"Binance"}
	cfg.Scanner.HTTPTimeout.Duration = 0
	cfg.Server.Port = 99999

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown mode "turbo"`)
	assert.Contains(t, err.Error(), `unknown exchange "Binance"`)
	assert.Contains(t, err.Error(), "http_timeout must be positive")
	assert.Contains(t, err.Error(), "port must be 1-65535")
}

func TestValidateDexTokens(t *testing.T) {
	cfg := Defaults()
	cfg.Dex.Enabled = true
	cfg.Dex.Tokens = []string{"0xnotanaddress"}

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a valid token address")

	// A well-formed EVM address and a non-EVM identifier both pass.
	cfg.Dex.Tokens = []string{
		"0x6982508145454Ce325dDbE47a25d4ec3d2311933",
		"EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v",
	}
	assert.NoError(t, cfg.Validate())
}

func TestValidateSectionsSkippedWhenDisabled(t *testing.T) {
	cfg := Defaults()
	cfg.Redis.Enabled = false
	cfg.Redis.Addr = ""
	cfg.S3.Enabled = false
	cfg.S3.Bucket = ""

	assert.NoError(t, cfg.Validate())
}

func TestLoadMergesFileOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
mode = "daemon"

[scanner]
exchanges = ["MEXC", "Bybit"]
scan_interval = "90s"
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "daemon", cfg.Mode)
	assert.Equal(t, []string{"MEXC", "Bybit"}, cfg.Scanner.Exchanges)
	assert.Equal(t, 90*time.Second, cfg.Scanner.ScanInterval.Duration)
	// Untouched sections keep their defaults.
	assert.Equal(t, 20.0, cfg.Scanner.MaxSpreadPercent)
	assert.Equal(t, 8000, cfg.Server.Port)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("ARBSCAN_MODE", "server")
	t.Setenv("ARBSCAN_SCANNER_EXCHANGES", "OKX, Bitget")
	t.Setenv("ARBSCAN_ALERTS_COOLDOWN", "45m")
	t.Setenv("ARBSCAN_REDIS_ENABLED", "true")
	t.Setenv("TELEGRAM_BOT_TOKEN", "123:abc")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "server", cfg.Mode)
	assert.Equal(t, []string{"OKX", "Bitget"}, cfg.Scanner.Exchanges)
	assert.Equal(t, 45*time.Minute, cfg.Alerts.Cooldown.Duration)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, "123:abc", cfg.Notify.TelegramToken)
}

func TestLoadMissingFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestDurationRoundTrip(t *testing.T) {
	var d duration
	require.NoError(t, d.UnmarshalText([]byte("5m")))
	assert.Equal(t, 5*time.Minute, d.Duration)

	out, err := d.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "5m0s", string(out))
}
