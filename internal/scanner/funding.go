package scanner

import "github.com/spreadup/arbscan/internal/domain"

// FundingRates finds symbols where going long on the venue with the lowest
// funding rate and short on the venue with the highest one collects the rate
// differential at every settlement, price-neutral. The differential is
// projected to a daily percentage and filtered against the configured floor.
func (d *Detector) FundingRates(m domain.AggregatedMarket) []domain.FundingRateOpportunity {
	var opps []domain.FundingRateOpportunity

	for sym, rates := range m.FundingByExchange {
		// A funding leg is only tradable where the perpetual itself is
		// priced; a venue reporting a rate without a contract price cannot
		// carry either side.
		futures := m.FuturesByExchange[sym]
		tradable := make(map[string]float64, len(rates))
		for ex, rate := range rates {
			if _, priced := futures[ex]; priced {
				tradable[ex] = rate
			}
		}
		if len(tradable) < 2 {
			continue
		}
		longEx, longRate, ok := d.bestQuote(tradable, false)
		if !ok {
			continue
		}
		shortEx, shortRate, ok := d.bestQuote(tradable, true)
		if !ok || longEx == shortEx {
			continue
		}
		daily := (shortRate - longRate) * float64(d.settlementsPerDay) * 100
		if daily <= d.minFundingDaily {
			continue
		}
		opps = append(opps, domain.FundingRateOpportunity{
			Symbol:             sym,
			BaseAsset:          domain.BaseAsset(sym),
			LongExchange:       longEx,
			ShortExchange:      shortEx,
			LongRate:           longRate,
			ShortRate:          shortRate,
			DailyProfitPercent: daily,
			Volume24h:          m.BestVolume[sym],
		})
	}

	sortDescending(opps,
		func(o domain.FundingRateOpportunity) float64 { return o.DailyProfitPercent },
		func(o domain.FundingRateOpportunity) string { return o.Symbol })
	return opps
}
