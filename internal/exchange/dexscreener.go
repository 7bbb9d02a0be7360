package exchange

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/spreadup/arbscan/internal/domain"
)

const dexScreenerBaseURL = "https://api.dexscreener.com"

// DexScreener resolves a configured watchlist of on-chain tokens through the
// DexScreener API and reports them as synthetic spot quotes. Tokens given as
// 0x addresses are looked up directly; anything else goes through the search
// endpoint. Pairs below the liquidity floor are ignored, and when several
// pools list the same token the deepest one wins.
type DexScreener struct {
	baseURL      string
	tokens       []string
	minLiquidity float64
	client       *http.Client
	logger       *slog.Logger
}

// NewDexScreener creates the DEX adapter for the given token watchlist.
func NewDexScreener(baseURL string, tokens []string, minLiquidityUSD float64, opts Options) *DexScreener {
	if baseURL == "" {
		baseURL = dexScreenerBaseURL
	}
	return &DexScreener{
		baseURL:      strings.TrimRight(baseURL, "/"),
		tokens:       tokens,
		minLiquidity: minLiquidityUSD,
		client:       opts.Client,
		logger:       opts.Logger.With(slog.String("exchange", "DEX")),
	}
}

func (d *DexScreener) Name() string     { return "DEX" }
func (d *DexScreener) HasFutures() bool { return false }

type dexPair struct {
	BaseToken struct {
		Symbol string `json:"symbol"`
	} `json:"baseToken"`
	QuoteToken struct {
		Symbol string `json:"symbol"`
	} `json:"quoteToken"`
	PriceUSD  flexFloat `json:"priceUsd"`
	Liquidity struct {
		USD flexFloat `json:"usd"`
	} `json:"liquidity"`
	Volume struct {
		H24 flexFloat `json:"h24"`
	} `json:"volume"`
}

type dexResponse struct {
	Pairs []dexPair `json:"pairs"`
}

// stableQuotes are the quote tokens whose USD price we trust at face value.
var stableQuotes = map[string]bool{
	"USDT": true,
	"USDC": true,
	"DAI":  true,
	"BUSD": true,
}

// Fetch looks every watched token up concurrently and merges the results into
// one quote. Token lookups that fail are logged and skipped.
func (d *DexScreener) Fetch(ctx context.Context) domain.ExchangeQuote {
	q := domain.EmptyQuote(d.Name())
	if len(d.tokens) == 0 {
		return q
	}

	type tokenResult struct {
		symbol    string
		price     float64
		volume    float64
		liquidity float64
	}

	results := make([]tokenResult, len(d.tokens))
	var wg sync.WaitGroup
	for i, token := range d.tokens {
		wg.Add(1)
		go func(i int, token string) {
			defer wg.Done()
			pair, ok, err := d.lookup(ctx, token)
			if err != nil {
				d.logger.Warn("token lookup failed",
					slog.String("token", token),
					slog.String("error", err.Error()))
				return
			}
			if !ok {
				return
			}
			results[i] = tokenResult{
				symbol:    strings.ToUpper(pair.BaseToken.Symbol) + "USDT",
				price:     pair.PriceUSD.v(),
				volume:    pair.Volume.H24.v(),
				liquidity: pair.Liquidity.USD.v(),
			}
		}(i, token)
	}
	wg.Wait()

	for _, r := range results {
		if r.symbol == "" || r.price <= 0 {
			continue
		}
		q.Spot[r.symbol] = r.price
		q.Volumes[r.symbol] = r.volume
	}
	return q
}

// lookup fetches the candidate pairs for one token and picks the deepest
// stablecoin-quoted pool at or above the liquidity floor. ok is false when no
// pool qualifies.
func (d *DexScreener) lookup(ctx context.Context, token string) (dexPair, bool, error) {
	var endpoint string
	if strings.HasPrefix(token, "0x") {
		endpoint = fmt.Sprintf("%s/latest/dex/tokens/%s", d.baseURL, token)
	} else {
		endpoint = fmt.Sprintf("%s/latest/dex/search?q=%s", d.baseURL, url.QueryEscape(token))
	}

	var resp dexResponse
	if err := getJSON(ctx, d.client, endpoint, &resp); err != nil {
		return dexPair{}, false, err
	}

	var best dexPair
	found := false
	for _, p := range resp.Pairs {
		if !stableQuotes[strings.ToUpper(p.QuoteToken.Symbol)] {
			continue
		}
		if p.Liquidity.USD.v() < d.minLiquidity || p.PriceUSD.v() <= 0 {
			continue
		}
		if !found || p.Liquidity.USD.v() > best.Liquidity.USD.v() {
			best = p
			found = true
		}
	}
	return best, found, nil
}
