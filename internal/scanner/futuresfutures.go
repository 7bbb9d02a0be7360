package scanner

import "github.com/spreadup/arbscan/internal/domain"

// FuturesFutures finds symbols whose perpetual trades at different prices on
// two venues: long the cheap leg, short the expensive one, both perpetual.
// Symbols listed on fewer than two futures venues cannot spread and are
// skipped.
func (d *Detector) FuturesFutures(m domain.AggregatedMarket) []domain.FuturesFuturesOpportunity {
	var opps []domain.FuturesFuturesOpportunity

	for sym, futures := range m.FuturesByExchange {
		if len(futures) < 2 {
			continue
		}
		buyEx, lowPrice, ok := d.bestQuote(futures, false)
		if !ok {
			continue
		}
		sellEx, highPrice, ok := d.bestQuote(futures, true)
		if !ok || buyEx == sellEx {
			continue
		}
		spread := spreadPercent(lowPrice, highPrice)
		if spread <= 0 || spread > d.maxSpreadPercent {
			continue
		}
		opps = append(opps, domain.FuturesFuturesOpportunity{
			Symbol:        sym,
			BaseAsset:     domain.BaseAsset(sym),
			LowPrice:      lowPrice,
			HighPrice:     highPrice,
			SpreadPercent: spread,
			BuyExchange:   buyEx,
			SellExchange:  sellEx,
			Volume24h:     m.BestVolume[sym],
		})
	}

	sortDescending(opps,
		func(o domain.FuturesFuturesOpportunity) float64 { return o.SpreadPercent },
		func(o domain.FuturesFuturesOpportunity) string { return o.Symbol })
	return opps
}
