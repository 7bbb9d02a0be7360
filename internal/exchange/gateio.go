package exchange

import (
	"context"
	"log/slog"
	"net/http"
	"sync"

	"github.com/spreadup/arbscan/internal/domain"
)

const (
	gateSpotURL    = "https://api.gateio.ws/api/v4/spot/tickers"
	gateFuturesURL = "https://api.gateio.ws/api/v4/futures/usdt/contracts"
)

// GateIO fetches spot tickers and USDT-settled perpetual contracts from the
// v4 REST API. Contracts flagged as delisting are skipped.
type GateIO struct {
	spotURL    string
	futuresURL string
	client     *http.Client
	logger     *slog.Logger
}

// NewGateIO creates the Gate.io adapter against the public production
// endpoints.
func NewGateIO(opts Options) *GateIO {
	return &GateIO{
		spotURL:    gateSpotURL,
		futuresURL: gateFuturesURL,
		client:     opts.Client,
		logger:     opts.Logger.With(slog.String("exchange", "Gate.io")),
	}
}

func (g *GateIO) Name() string     { return "Gate.io" }
func (g *GateIO) HasFutures() bool { return true }

type gateSpotTicker struct {
	CurrencyPair string    `json:"currency_pair"` // "BTC_USDT"
	Last         flexFloat `json:"last"`
	QuoteVolume  flexFloat `json:"quote_volume"`
}

type gateContract struct {
	Name        string    `json:"name"` // "BTC_USDT"
	LastPrice   flexFloat `json:"last_price"`
	FundingRate flexFloat `json:"funding_rate"`
	InDelisting bool      `json:"in_delisting"`
}

// Fetch retrieves spot tickers and futures contracts concurrently.
func (g *GateIO) Fetch(ctx context.Context) domain.ExchangeQuote {
	q := domain.EmptyQuote(g.Name())

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		var tickers []gateSpotTicker
		if err := getJSON(ctx, g.client, g.spotURL, &tickers); err != nil {
			g.logger.Warn("spot fetch failed", slog.String("error", err.Error()))
			return
		}
		for _, t := range tickers {
			sym := NormalizeUnderscore(t.CurrencyPair)
			if sym == "" || t.Last.v() <= 0 {
				continue
			}
			q.Spot[sym] = t.Last.v()
			q.Volumes[sym] = t.QuoteVolume.v()
		}
	}()

	go func() {
		defer wg.Done()
		var contracts []gateContract
		if err := getJSON(ctx, g.client, g.futuresURL, &contracts); err != nil {
			g.logger.Warn("futures fetch failed", slog.String("error", err.Error()))
			return
		}
		for _, c := range contracts {
			if c.InDelisting {
				continue
			}
			sym := NormalizeUnderscore(c.Name)
			if sym == "" || c.LastPrice.v() <= 0 {
				continue
			}
			q.Futures[sym] = c.LastPrice.v()
			q.Funding[sym] = c.FundingRate.v()
		}
	}()

	wg.Wait()
	return q
}
