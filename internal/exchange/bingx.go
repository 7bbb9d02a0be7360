package exchange

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/spreadup/arbscan/internal/domain"
)

const (
	bingxSpotURL = "https://open-api.bingx.com/openApi/spot/v1/ticker/24hr"
	bingxSwapURL = "https://open-api.bingx.com/openApi/swap/v2/quote/ticker"
)

// BingX fetches spot and perpetual swap tickers. Both endpoints require a
// timestamp query parameter even for public data.
type BingX struct {
	spotURL string
	swapURL string
	client  *http.Client
	logger  *slog.Logger
	now     func() time.Time
}

// NewBingX creates the BingX adapter against the public production endpoints.
func NewBingX(opts Options) *BingX {
	return &BingX{
		spotURL: bingxSpotURL,
		swapURL: bingxSwapURL,
		client:  opts.Client,
		logger:  opts.Logger.With(slog.String("exchange", "BingX")),
		now:     time.Now,
	}
}

func (b *BingX) Name() string     { return "BingX" }
func (b *BingX) HasFutures() bool { return true }

type bingxSpotResponse struct {
	Data []struct {
		Symbol      string    `json:"symbol"` // "BTC-USDT"
		LastPrice   flexFloat `json:"lastPrice"`
		QuoteVolume flexFloat `json:"quoteVolume"`
	} `json:"data"`
}

type bingxSwapResponse struct {
	Data []struct {
		Symbol    string    `json:"symbol"` // "BTC-USDT"
		LastPrice flexFloat `json:"lastPrice"`
	} `json:"data"`
}

// Fetch retrieves spot and swap tickers concurrently. BingX does not expose
// funding rates in its bulk ticker payload, so Funding stays empty.
func (b *BingX) Fetch(ctx context.Context) domain.ExchangeQuote {
	q := domain.EmptyQuote(b.Name())
	ts := b.now().UnixMilli()

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		var resp bingxSpotResponse
		url := fmt.Sprintf("%s?timestamp=%d", b.spotURL, ts)
		if err := getJSON(ctx, b.client, url, &resp); err != nil {
			b.logger.Warn("spot fetch failed", slog.String("error", err.Error()))
			return
		}
		for _, t := range resp.Data {
			sym := NormalizeDash(t.Symbol)
			if sym == "" || t.LastPrice.v() <= 0 {
				continue
			}
			q.Spot[sym] = t.LastPrice.v()
			q.Volumes[sym] = t.QuoteVolume.v()
		}
	}()

	go func() {
		defer wg.Done()
		var resp bingxSwapResponse
		url := fmt.Sprintf("%s?timestamp=%d", b.swapURL, ts)
		if err := getJSON(ctx, b.client, url, &resp); err != nil {
			b.logger.Warn("futures fetch failed", slog.String("error", err.Error()))
			return
		}
		for _, t := range resp.Data {
			sym := NormalizeDash(t.Symbol)
			if sym == "" || t.LastPrice.v() <= 0 {
				continue
			}
			q.Futures[sym] = t.LastPrice.v()
		}
	}()

	wg.Wait()
	return q
}
