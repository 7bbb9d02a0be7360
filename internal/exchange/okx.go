package exchange

import (
	"context"
	"log/slog"
	"net/http"
	"sync"

	"github.com/spreadup/arbscan/internal/domain"
)

const okxTickersURL = "https://www.okx.com/api/v5/market/tickers"

// OKX fetches spot and perpetual swap tickers from the v5 API. OKX reports
// spot volume in base units, so the 24h quote volume is reconstructed as
// vol24h * last. Funding rates are a separate per-instrument endpoint on OKX
// and are not fetched here.
type OKX struct {
	spotURL string
	swapURL string
	client  *http.Client
	logger  *slog.Logger
}

// NewOKX creates the OKX adapter against the public production endpoints.
func NewOKX(opts Options) *OKX {
	return &OKX{
		spotURL: okxTickersURL + "?instType=SPOT",
		swapURL: okxTickersURL + "?instType=SWAP",
		client:  opts.Client,
		logger:  opts.Logger.With(slog.String("exchange", "OKX")),
	}
}

func (o *OKX) Name() string     { return "OKX" }
func (o *OKX) HasFutures() bool { return true }

type okxResponse struct {
	Data []struct {
		InstID string    `json:"instId"` // "BTC-USDT" or "BTC-USDT-SWAP"
		Last   flexFloat `json:"last"`
		Vol24h flexFloat `json:"vol24h"`
	} `json:"data"`
}

// Fetch retrieves spot and swap tickers concurrently.
func (o *OKX) Fetch(ctx context.Context) domain.ExchangeQuote {
	q := domain.EmptyQuote(o.Name())

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		var resp okxResponse
		if err := getJSON(ctx, o.client, o.spotURL, &resp); err != nil {
			o.logger.Warn("spot fetch failed", slog.String("error", err.Error()))
			return
		}
		for _, t := range resp.Data {
			sym := NormalizeDash(t.InstID)
			if sym == "" || t.Last.v() <= 0 {
				continue
			}
			q.Spot[sym] = t.Last.v()
			q.Volumes[sym] = t.Vol24h.v() * t.Last.v()
		}
	}()

	go func() {
		defer wg.Done()
		var resp okxResponse
		if err := getJSON(ctx, o.client, o.swapURL, &resp); err != nil {
			o.logger.Warn("futures fetch failed", slog.String("error", err.Error()))
			return
		}
		for _, t := range resp.Data {
			sym := NormalizeSwap(t.InstID)
			if sym == "" || t.Last.v() <= 0 {
				continue
			}
			q.Futures[sym] = t.Last.v()
		}
	}()

	wg.Wait()
	return q
}
