package alert

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spreadup/arbscan/internal/domain"
)

func TestFormatPriceTiers(t *testing.T) {
	assert.Equal(t, "$60123.46", FormatPrice(60123.456))
	assert.Equal(t, "$3.1416", FormatPrice(3.14159))
	assert.Equal(t, "$0.000012", FormatPrice(0.0000123))
}

func TestFormatVolume(t *testing.T) {
	assert.Equal(t, "$2.5M", FormatVolume(2_500_000))
	assert.Equal(t, "$850K", FormatVolume(850_000))
	assert.Equal(t, "$420", FormatVolume(420))
}

func TestTradeURL(t *testing.T) {
	assert.Equal(t, "https://www.mexc.com/exchange/BTC_USDT", TradeURL("MEXC", "BTCUSDT"))
	assert.Equal(t, "https://www.okx.com/trade-spot/btc-usdt", TradeURL("OKX", "BTCUSDT"))
	assert.Empty(t, TradeURL("DEX", "PEPEUSDT"))
}

func TestFormatSpotFuturesBody(t *testing.T) {
	title, body := FormatSpotFutures(domain.SpotFuturesOpportunity{
		Symbol:          "BTCUSDT",
		BaseAsset:       "BTC",
		SpotPrice:       60000,
		FuturesPrice:    61200,
		SpreadPercent:   2.0,
		SpotExchange:    "MEXC",
		FuturesExchange: "Bybit",
		IsCrossExchange: true,
		Volume24h:       2_000_000,
	})

	assert.Contains(t, title, "BTC")
	assert.Contains(t, title, "2.00%")
	assert.Contains(t, body, "Buy spot on MEXC at $60000.00")
	assert.Contains(t, body, "Short futures on Bybit at $61200.00")
	assert.Contains(t, body, "cross-exchange")
	assert.Contains(t, body, "$2.0M")
	assert.Contains(t, body, "mexc.com")
}
