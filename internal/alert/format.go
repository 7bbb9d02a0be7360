package alert

import (
	"fmt"
	"strings"

	"github.com/spreadup/arbscan/internal/domain"
)

// FormatSpotFutures renders the title and body for a spot-futures alert.
func FormatSpotFutures(o domain.SpotFuturesOpportunity) (title, body string) {
	title = fmt.Sprintf("%s spot-futures spread %.2f%%", o.BaseAsset, o.SpreadPercent)

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", o.Symbol)
	fmt.Fprintf(&b, "Buy spot on %s at %s\n", o.SpotExchange, FormatPrice(o.SpotPrice))
	fmt.Fprintf(&b, "Short futures on %s at %s\n", o.FuturesExchange, FormatPrice(o.FuturesPrice))
	fmt.Fprintf(&b, "Spread: %.2f%%", o.SpreadPercent)
	if o.IsCrossExchange {
		b.WriteString(" (cross-exchange)")
	}
	if o.Volume24h > 0 {
		fmt.Fprintf(&b, "\n24h volume: %s", FormatVolume(o.Volume24h))
	}
	if u := TradeURL(o.SpotExchange, o.Symbol); u != "" {
		fmt.Fprintf(&b, "\n%s", u)
	}
	return title, b.String()
}

// FormatFuturesFutures renders the title and body for a futures-futures alert.
func FormatFuturesFutures(o domain.FuturesFuturesOpportunity) (title, body string) {
	title = fmt.Sprintf("%s futures spread %.2f%%", o.BaseAsset, o.SpreadPercent)

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", o.Symbol)
	fmt.Fprintf(&b, "Long on %s at %s\n", o.BuyExchange, FormatPrice(o.LowPrice))
	fmt.Fprintf(&b, "Short on %s at %s\n", o.SellExchange, FormatPrice(o.HighPrice))
	fmt.Fprintf(&b, "Spread: %.2f%%", o.SpreadPercent)
	if o.Volume24h > 0 {
		fmt.Fprintf(&b, "\n24h volume: %s", FormatVolume(o.Volume24h))
	}
	return title, b.String()
}

// FormatFundingRate renders the title and body for a funding-rate alert.
func FormatFundingRate(o domain.FundingRateOpportunity) (title, body string) {
	title = fmt.Sprintf("%s funding %.3f%%/day", o.BaseAsset, o.DailyProfitPercent)

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", o.Symbol)
	fmt.Fprintf(&b, "Long on %s (rate %.4f%%)\n", o.LongExchange, o.LongRate*100)
	fmt.Fprintf(&b, "Short on %s (rate %.4f%%)\n", o.ShortExchange, o.ShortRate*100)
	fmt.Fprintf(&b, "Estimated profit: %.3f%% per day", o.DailyProfitPercent)
	return title, b.String()
}

// FormatPrice renders a USD price with precision scaled to its magnitude, so
// large caps stay readable and micro caps keep their significant digits.
func FormatPrice(p float64) string {
	switch {
	case p >= 1000:
		return fmt.Sprintf("$%.2f", p)
	case p >= 1:
		return fmt.Sprintf("$%.4f", p)
	default:
		return fmt.Sprintf("$%.6f", p)
	}
}

// FormatVolume humanizes a USD volume figure.
func FormatVolume(v float64) string {
	switch {
	case v >= 1_000_000:
		return fmt.Sprintf("$%.1fM", v/1_000_000)
	case v >= 1_000:
		return fmt.Sprintf("$%.0fK", v/1_000)
	default:
		return fmt.Sprintf("$%.0f", v)
	}
}

// TradeURL returns the venue's spot trading page for a canonical symbol,
// spelled the way each web UI expects. Unknown venues get no link.
func TradeURL(exchange, symbol string) string {
	base := domain.BaseAsset(symbol)
	switch exchange {
	case "MEXC":
		return fmt.Sprintf("https://www.mexc.com/exchange/%s_USDT", base)
	case "Gate.io":
		return fmt.Sprintf("https://www.gate.io/trade/%s_USDT", base)
	case "BingX":
		return fmt.Sprintf("https://bingx.com/en-us/spot/%s-USDT", base)
	case "Bybit":
		return fmt.Sprintf("https://www.bybit.com/en/trade/spot/%s/USDT", base)
	case "OKX":
		return fmt.Sprintf("https://www.okx.com/trade-spot/%s-usdt", strings.ToLower(base))
	case "Bitget":
		return fmt.Sprintf("https://www.bitget.com/spot/%sUSDT", base)
	default:
		return ""
	}
}
