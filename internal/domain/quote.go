// Package domain contains the core data model of the arbitrage scanner:
// per-exchange quotes, the aggregated market view, opportunity records, and
// the store interfaces the rest of the system depends on.
package domain

import "strings"

// BaseAsset strips the USDT quote from a canonical symbol ("BTCUSDT" -> "BTC").
func BaseAsset(symbol string) string {
	return strings.TrimSuffix(symbol, "USDT")
}

// ExchangeQuote is one exchange's market snapshot for a single scan cycle.
// All maps are keyed by canonical symbol ({BASE}USDT). An adapter that fails
// returns a quote with empty maps; absence of data is not an error.
type ExchangeQuote struct {
	Exchange string
	// Spot holds last traded spot prices, always > 0.
	Spot map[string]float64
	// Futures holds last traded perpetual prices, always > 0.
	Futures map[string]float64
	// Volumes holds 24h quote-currency volume, 0 when unknown.
	Volumes map[string]float64
	// Funding holds the current funding rate as a fraction
	// (0.0001 = 0.01%), absent when the exchange does not expose it.
	Funding map[string]float64
}

// EmptyQuote returns a well-formed quote with no data for the given exchange.
// Adapters return this on fetch failure so one venue's outage degrades the
// scan instead of failing it.
func EmptyQuote(exchange string) ExchangeQuote {
	return ExchangeQuote{
		Exchange: exchange,
		Spot:     map[string]float64{},
		Futures:  map[string]float64{},
		Volumes:  map[string]float64{},
		Funding:  map[string]float64{},
	}
}

// AggregatedMarket is the merged view of all exchange quotes for one cycle.
// Outer maps are keyed by canonical symbol, inner maps by exchange name.
type AggregatedMarket struct {
	SpotByExchange    map[string]map[string]float64
	FuturesByExchange map[string]map[string]float64
	FundingByExchange map[string]map[string]float64
	// BestVolume is the maximum 24h volume reported by any exchange for the
	// symbol. Max, not sum: summing double-counts wash volume across venues.
	BestVolume map[string]float64
}

// NewAggregatedMarket returns an empty aggregated market.
func NewAggregatedMarket() AggregatedMarket {
	return AggregatedMarket{
		SpotByExchange:    map[string]map[string]float64{},
		FuturesByExchange: map[string]map[string]float64{},
		FundingByExchange: map[string]map[string]float64{},
		BestVolume:        map[string]float64{},
	}
}
