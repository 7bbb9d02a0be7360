package domain

import "time"

// Snapshot holds the output of all three detectors for one scan cycle. It is
// replaced wholesale on every cycle; readers must never observe lists from
// different cycles mixed together.
type Snapshot struct {
	SpotFutures    []SpotFuturesOpportunity    `json:"spotFutures"`
	FuturesFutures []FuturesFuturesOpportunity `json:"futuresFutures"`
	FundingRates   []FundingRateOpportunity    `json:"fundingRates"`
	UpdatedAt      time.Time                   `json:"updatedAt"`
}

// ScanSummary is the per-cycle result reported to the caller of a scan.
type ScanSummary struct {
	SpotFutures    int           `json:"spotFutures"`
	FuturesFutures int           `json:"futuresFutures"`
	FundingRates   int           `json:"fundingRates"`
	CrossExchange  int           `json:"crossExchange"`
	Duration       time.Duration `json:"-"`
	// SymbolsByExchange counts spot symbols contributed per exchange, so an
	// outage shows up as a zero in the cycle log.
	SymbolsByExchange map[string]int `json:"symbolsByExchange"`
}
