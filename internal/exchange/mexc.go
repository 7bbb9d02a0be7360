package exchange

import (
	"context"
	"log/slog"
	"net/http"
	"sync"

	"github.com/spreadup/arbscan/internal/domain"
)

const (
	mexcSpotURL     = "https://api.mexc.com/api/v3/ticker/24hr"
	mexcContractURL = "https://contract.mexc.com/api/v1/contract/ticker"
)

// MEXC fetches spot tickers from the v3 REST API and perpetual tickers
// (including funding rates) from the contract API.
type MEXC struct {
	spotURL     string
	contractURL string
	client      *http.Client
	logger      *slog.Logger
}

// NewMEXC creates the MEXC adapter against the public production endpoints.
func NewMEXC(opts Options) *MEXC {
	return &MEXC{
		spotURL:     mexcSpotURL,
		contractURL: mexcContractURL,
		client:      opts.Client,
		logger:      opts.Logger.With(slog.String("exchange", "MEXC")),
	}
}

func (m *MEXC) Name() string     { return "MEXC" }
func (m *MEXC) HasFutures() bool { return true }

type mexcSpotTicker struct {
	Symbol      string    `json:"symbol"`
	LastPrice   flexFloat `json:"lastPrice"`
	QuoteVolume flexFloat `json:"quoteVolume"`
}

type mexcContractResponse struct {
	Data []struct {
		Symbol      string    `json:"symbol"` // "BTC_USDT"
		LastPrice   flexFloat `json:"lastPrice"`
		FundingRate flexFloat `json:"fundingRate"`
	} `json:"data"`
}

// Fetch retrieves spot and contract tickers concurrently.
func (m *MEXC) Fetch(ctx context.Context) domain.ExchangeQuote {
	q := domain.EmptyQuote(m.Name())

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		var tickers []mexcSpotTicker
		if err := getJSON(ctx, m.client, m.spotURL, &tickers); err != nil {
			m.logger.Warn("spot fetch failed", slog.String("error", err.Error()))
			return
		}
		for _, t := range tickers {
			sym := NormalizePlain(t.Symbol)
			if sym == "" || t.LastPrice.v() <= 0 {
				continue
			}
			q.Spot[sym] = t.LastPrice.v()
			q.Volumes[sym] = t.QuoteVolume.v()
		}
	}()

	go func() {
		defer wg.Done()
		var resp mexcContractResponse
		if err := getJSON(ctx, m.client, m.contractURL, &resp); err != nil {
			m.logger.Warn("futures fetch failed", slog.String("error", err.Error()))
			return
		}
		for _, t := range resp.Data {
			sym := NormalizeUnderscore(t.Symbol)
			if sym == "" || t.LastPrice.v() <= 0 {
				continue
			}
			q.Futures[sym] = t.LastPrice.v()
			q.Funding[sym] = t.FundingRate.v()
		}
	}()

	wg.Wait()
	return q
}
