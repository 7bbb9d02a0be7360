package exchange

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/spreadup/arbscan/internal/domain"
)

const bybitTickersURL = "https://api.bybit.com/v5/market/tickers"

// Bybit fetches spot and linear perpetual tickers from the unified v5 API.
// Leveraged micro-denomination listings (symbols containing "1000000") are
// skipped: their prices are scaled and would show phantom spreads against
// the unscaled listing on other venues.
type Bybit struct {
	spotURL   string
	linearURL string
	client    *http.Client
	logger    *slog.Logger
}

// NewBybit creates the Bybit adapter against the public production endpoints.
func NewBybit(opts Options) *Bybit {
	return &Bybit{
		spotURL:   bybitTickersURL + "?category=spot",
		linearURL: bybitTickersURL + "?category=linear",
		client:    opts.Client,
		logger:    opts.Logger.With(slog.String("exchange", "Bybit")),
	}
}

func (b *Bybit) Name() string     { return "Bybit" }
func (b *Bybit) HasFutures() bool { return true }

type bybitResponse struct {
	Result struct {
		List []struct {
			Symbol      string    `json:"symbol"` // "BTCUSDT"
			LastPrice   flexFloat `json:"lastPrice"`
			Turnover24h flexFloat `json:"turnover24h"`
			FundingRate flexFloat `json:"fundingRate"`
		} `json:"list"`
	} `json:"result"`
}

// Fetch retrieves spot and linear tickers concurrently.
func (b *Bybit) Fetch(ctx context.Context) domain.ExchangeQuote {
	q := domain.EmptyQuote(b.Name())

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		var resp bybitResponse
		if err := getJSON(ctx, b.client, b.spotURL, &resp); err != nil {
			b.logger.Warn("spot fetch failed", slog.String("error", err.Error()))
			return
		}
		for _, t := range resp.Result.List {
			sym := NormalizePlain(t.Symbol)
			if sym == "" || t.LastPrice.v() <= 0 || strings.Contains(sym, "1000000") {
				continue
			}
			q.Spot[sym] = t.LastPrice.v()
			q.Volumes[sym] = t.Turnover24h.v()
		}
	}()

	go func() {
		defer wg.Done()
		var resp bybitResponse
		if err := getJSON(ctx, b.client, b.linearURL, &resp); err != nil {
			b.logger.Warn("futures fetch failed", slog.String("error", err.Error()))
			return
		}
		for _, t := range resp.Result.List {
			sym := NormalizePlain(t.Symbol)
			if sym == "" || t.LastPrice.v() <= 0 || strings.Contains(sym, "1000000") {
				continue
			}
			q.Futures[sym] = t.LastPrice.v()
			q.Funding[sym] = t.FundingRate.v()
		}
	}()

	wg.Wait()
	return q
}
