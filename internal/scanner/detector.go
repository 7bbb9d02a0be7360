package scanner

import "sort"

// Detector holds the thresholds shared by the three opportunity scans.
//
// The exchange slice fixes both the scan order and the tie-break: when two
// venues quote the identical best price, the one listed first keeps the slot.
type Detector struct {
	exchanges         []string
	maxSpreadPercent  float64
	minFundingDaily   float64
	settlementsPerDay int
}

// NewDetector builds a detector for the given venue order and thresholds.
// maxSpreadPercent caps reported spreads; anything above it is treated as a
// stale or broken feed rather than a tradeable edge. minFundingDaily is the
// funding scan's floor in percent per day, and settlementsPerDay converts a
// per-settlement funding rate into a daily figure.
func NewDetector(exchanges []string, maxSpreadPercent, minFundingDaily float64, settlementsPerDay int) *Detector {
	if settlementsPerDay <= 0 {
		settlementsPerDay = 3
	}
	return &Detector{
		exchanges:         exchanges,
		maxSpreadPercent:  maxSpreadPercent,
		minFundingDaily:   minFundingDaily,
		settlementsPerDay: settlementsPerDay,
	}
}

// bestQuote walks the venue order and returns the extreme price with the
// venue that holds it. wantMax selects the maximum, otherwise the minimum.
// Strict comparison keeps the first-listed venue on exact ties. ok is false
// when no listed venue quotes the symbol.
func (d *Detector) bestQuote(prices map[string]float64, wantMax bool) (venue string, price float64, ok bool) {
	for _, ex := range d.exchanges {
		p, listed := prices[ex]
		if !listed {
			continue
		}
		if !ok || (wantMax && p > price) || (!wantMax && p < price) {
			venue, price, ok = ex, p, true
		}
	}
	return venue, price, ok
}

// spreadPercent is (high - low) / low expressed in percent.
func spreadPercent(low, high float64) float64 {
	return (high - low) / low * 100
}

// sortDescending orders opportunities by the given score, largest first, with
// the symbol as a deterministic tie-break.
func sortDescending[T any](items []T, score func(T) float64, symbol func(T) string) {
	sort.Slice(items, func(i, j int) bool {
		si, sj := score(items[i]), score(items[j])
		if si != sj {
			return si > sj
		}
		return symbol(items[i]) < symbol(items[j])
	})
}
