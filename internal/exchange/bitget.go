package exchange

import (
	"context"
	"log/slog"
	"net/http"
	"sync"

	"github.com/spreadup/arbscan/internal/domain"
)

const (
	bitgetSpotURL = "https://api.bitget.com/api/v2/spot/market/tickers"
	bitgetMixURL  = "https://api.bitget.com/api/v2/mix/market/tickers?productType=USDT-FUTURES"
)

// Bitget fetches spot tickers and USDT-margined futures tickers from the v2
// API. Spot volume is reported in base units and reconstructed as
// baseVolume * lastPr.
type Bitget struct {
	spotURL string
	mixURL  string
	client  *http.Client
	logger  *slog.Logger
}

// NewBitget creates the Bitget adapter against the public production
// endpoints.
func NewBitget(opts Options) *Bitget {
	return &Bitget{
		spotURL: bitgetSpotURL,
		mixURL:  bitgetMixURL,
		client:  opts.Client,
		logger:  opts.Logger.With(slog.String("exchange", "Bitget")),
	}
}

func (b *Bitget) Name() string     { return "Bitget" }
func (b *Bitget) HasFutures() bool { return true }

type bitgetSpotResponse struct {
	Data []struct {
		Symbol     string    `json:"symbol"` // "BTCUSDT"
		LastPr     flexFloat `json:"lastPr"`
		BaseVolume flexFloat `json:"baseVolume"`
	} `json:"data"`
}

type bitgetMixResponse struct {
	Data []struct {
		Symbol      string    `json:"symbol"` // "BTCUSDT"
		LastPr      flexFloat `json:"lastPr"`
		FundingRate flexFloat `json:"fundingRate"`
	} `json:"data"`
}

// Fetch retrieves spot and futures tickers concurrently.
func (b *Bitget) Fetch(ctx context.Context) domain.ExchangeQuote {
	q := domain.EmptyQuote(b.Name())

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		var resp bitgetSpotResponse
		if err := getJSON(ctx, b.client, b.spotURL, &resp); err != nil {
			b.logger.Warn("spot fetch failed", slog.String("error", err.Error()))
			return
		}
		for _, t := range resp.Data {
			sym := NormalizePlain(t.Symbol)
			if sym == "" || t.LastPr.v() <= 0 {
				continue
			}
			q.Spot[sym] = t.LastPr.v()
			q.Volumes[sym] = t.BaseVolume.v() * t.LastPr.v()
		}
	}()

	go func() {
		defer wg.Done()
		var resp bitgetMixResponse
		if err := getJSON(ctx, b.client, b.mixURL, &resp); err != nil {
			b.logger.Warn("futures fetch failed", slog.String("error", err.Error()))
			return
		}
		for _, t := range resp.Data {
			sym := NormalizePlain(t.Symbol)
			if sym == "" || t.LastPr.v() <= 0 {
				continue
			}
			q.Futures[sym] = t.LastPr.v()
			q.Funding[sym] = t.FundingRate.v()
		}
	}()

	wg.Wait()
	return q
}
