package scanner

import "github.com/spreadup/arbscan/internal/domain"

// SpotFutures finds symbols whose cheapest spot price sits below the most
// expensive perpetual price on any venue pair. The classic carry trade: buy
// spot at the low venue, short the perpetual at the high venue.
func (d *Detector) SpotFutures(m domain.AggregatedMarket) []domain.SpotFuturesOpportunity {
	var opps []domain.SpotFuturesOpportunity

	for sym, spots := range m.SpotByExchange {
		futures, hasFutures := m.FuturesByExchange[sym]
		if !hasFutures {
			continue
		}
		spotEx, spotPrice, ok := d.bestQuote(spots, false)
		if !ok {
			continue
		}
		futEx, futPrice, ok := d.bestQuote(futures, true)
		if !ok {
			continue
		}
		spread := spreadPercent(spotPrice, futPrice)
		if spread <= 0 || spread > d.maxSpreadPercent {
			continue
		}
		opps = append(opps, domain.SpotFuturesOpportunity{
			Symbol:          sym,
			BaseAsset:       domain.BaseAsset(sym),
			SpotPrice:       spotPrice,
			FuturesPrice:    futPrice,
			SpreadPercent:   spread,
			SpotExchange:    spotEx,
			FuturesExchange: futEx,
			IsCrossExchange: spotEx != futEx,
			Volume24h:       m.BestVolume[sym],
		})
	}

	sortDescending(opps,
		func(o domain.SpotFuturesOpportunity) float64 { return o.SpreadPercent },
		func(o domain.SpotFuturesOpportunity) string { return o.Symbol })
	return opps
}
