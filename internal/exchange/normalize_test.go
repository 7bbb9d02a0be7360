package exchange

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizers(t *testing.T) {
	tests := []struct {
		name   string
		fn     func(string) string
		native string
		want   string
	}{
		{"plain usdt", NormalizePlain, "BTCUSDT", "BTCUSDT"},
		{"plain non-usdt", NormalizePlain, "BTCUSDC", ""},
		{"plain empty", NormalizePlain, "", ""},
		{"underscore", NormalizeUnderscore, "BTC_USDT", "BTCUSDT"},
		{"underscore non-usdt", NormalizeUnderscore, "BTC_BTC", ""},
		{"dash", NormalizeDash, "ETH-USDT", "ETHUSDT"},
		{"dash non-usdt", NormalizeDash, "ETH-BTC", ""},
		{"swap", NormalizeSwap, "BTC-USDT-SWAP", "BTCUSDT"},
		{"swap usdc", NormalizeSwap, "BTC-USDC-SWAP", ""},
		{"swap spot id", NormalizeSwap, "BTC-USDT", "BTCUSDT"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.fn(tt.native))
		})
	}
}

// Every normalizer must pass a canonical symbol through unchanged so quotes
// can be re-normalized safely.
func TestNormalizersIdempotent(t *testing.T) {
	fns := map[string]func(string) string{
		"plain":      NormalizePlain,
		"underscore": NormalizeUnderscore,
		"dash":       NormalizeDash,
		"swap":       NormalizeSwap,
	}
	for name, fn := range fns {
		t.Run(name, func(t *testing.T) {
			once := fn("BTC_USDT")
			if once == "" {
				once = fn("BTCUSDT")
			}
			assert.Equal(t, once, fn(once))
		})
	}
}
