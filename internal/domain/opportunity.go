package domain

// OpportunityKind tags the three opportunity variants.
type OpportunityKind string

const (
	KindSpotFutures    OpportunityKind = "spot_futures"
	KindFuturesFutures OpportunityKind = "futures_futures"
	KindFundingRate    OpportunityKind = "funding_rate"
)

// SpotFuturesOpportunity is a spread between the cheapest spot venue and the
// most expensive futures venue for one symbol.
// Invariant: SpreadPercent = (FuturesPrice - SpotPrice) / SpotPrice * 100 > 0.
type SpotFuturesOpportunity struct {
	Symbol          string  `json:"symbol"`
	BaseAsset       string  `json:"baseAsset"`
	SpotPrice       float64 `json:"spotPrice"`
	FuturesPrice    float64 `json:"futuresPrice"`
	SpreadPercent   float64 `json:"spreadPercent"`
	SpotExchange    string  `json:"spotExchange"`
	FuturesExchange string  `json:"futuresExchange"`
	// IsCrossExchange distinguishes cross-venue arbitrage from a same-venue
	// basis spread; execution risk differs between the two.
	IsCrossExchange bool    `json:"isCrossExchange"`
	Volume24h       float64 `json:"volume24h"`
}

// FuturesFuturesOpportunity is a spread between the cheapest and the most
// expensive perpetual venue for one symbol.
// Invariant: BuyExchange != SellExchange, SpreadPercent > 0.
type FuturesFuturesOpportunity struct {
	Symbol        string  `json:"symbol"`
	BaseAsset     string  `json:"baseAsset"`
	LowPrice      float64 `json:"lowPrice"`
	HighPrice     float64 `json:"highPrice"`
	SpreadPercent float64 `json:"spreadPercent"`
	BuyExchange   string  `json:"buyExchange"`
	SellExchange  string  `json:"sellExchange"`
	Volume24h     float64 `json:"volume24h"`
}

// FundingRateOpportunity is a funding-rate differential: long the venue that
// pays/costs least, short the venue that collects most.
// Invariant: ShortRate > LongRate.
type FundingRateOpportunity struct {
	Symbol        string  `json:"symbol"`
	BaseAsset     string  `json:"baseAsset"`
	LongExchange  string  `json:"longExchange"`
	ShortExchange string  `json:"shortExchange"`
	LongRate      float64 `json:"longRate"`
	ShortRate     float64 `json:"shortRate"`
	// DailyProfitPercent = (ShortRate - LongRate) * settlements/day * 100.
	DailyProfitPercent float64 `json:"dailyProfitPercent"`
	Volume24h          float64 `json:"volume24h"`
}
