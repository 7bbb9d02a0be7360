// Package scanner turns per-exchange quotes into an aggregated market view
// and runs the opportunity detectors over it.
package scanner

import "github.com/spreadup/arbscan/internal/domain"

// Aggregate merges one cycle's exchange quotes into a single market view.
// Later quotes never overwrite earlier ones because the inner maps are keyed
// by exchange name; volume is kept as the per-symbol maximum across venues.
func Aggregate(quotes []domain.ExchangeQuote) domain.AggregatedMarket {
	m := domain.NewAggregatedMarket()
	for _, q := range quotes {
		for sym, price := range q.Spot {
			if m.SpotByExchange[sym] == nil {
				m.SpotByExchange[sym] = map[string]float64{}
			}
			m.SpotByExchange[sym][q.Exchange] = price
		}
		for sym, price := range q.Futures {
			if m.FuturesByExchange[sym] == nil {
				m.FuturesByExchange[sym] = map[string]float64{}
			}
			m.FuturesByExchange[sym][q.Exchange] = price
		}
		for sym, rate := range q.Funding {
			if m.FundingByExchange[sym] == nil {
				m.FundingByExchange[sym] = map[string]float64{}
			}
			m.FundingByExchange[sym][q.Exchange] = rate
		}
		for sym, vol := range q.Volumes {
			if vol > m.BestVolume[sym] {
				m.BestVolume[sym] = vol
			}
		}
	}
	return m
}
