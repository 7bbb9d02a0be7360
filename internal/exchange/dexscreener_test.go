package exchange

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDexScreenerFetchPicksDeepestStablePool(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"pairs":[
			{"baseToken":{"symbol":"PEPE"},"quoteToken":{"symbol":"WETH"},"priceUsd":"0.0000012","liquidity":{"usd":900000},"volume":{"h24":50000}},
			{"baseToken":{"symbol":"PEPE"},"quoteToken":{"symbol":"USDC"},"priceUsd":"0.0000011","liquidity":{"usd":120000},"volume":{"h24":30000}},
			{"baseToken":{"symbol":"PEPE"},"quoteToken":{"symbol":"USDT"},"priceUsd":"0.0000010","liquidity":{"usd":80000},"volume":{"h24":20000}},
			{"baseToken":{"symbol":"PEPE"},"quoteToken":{"symbol":"USDT"},"priceUsd":"0.0000013","liquidity":{"usd":5000},"volume":{"h24":100}}
		]}`)
	}))
	t.Cleanup(srv.Close)

	d := NewDexScreener(srv.URL, []string{"PEPE"}, 10_000, testOptions())
	q := d.Fetch(context.Background())

	assert.Equal(t, "DEX", q.Exchange)
	assert.Equal(t, 0.0000011, q.Spot["PEPEUSDT"])
	assert.Equal(t, 30000.0, q.Volumes["PEPEUSDT"])
	assert.Empty(t, q.Futures)
}

func TestDexScreenerFetchNoQualifyingPool(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"pairs":[
			{"baseToken":{"symbol":"DUST"},"quoteToken":{"symbol":"USDT"},"priceUsd":"0.5","liquidity":{"usd":500},"volume":{"h24":10}}
		]}`)
	}))
	t.Cleanup(srv.Close)

	d := NewDexScreener(srv.URL, []string{"DUST"}, 10_000, testOptions())
	q := d.Fetch(context.Background())

	assert.Empty(t, q.Spot)
}

func TestDexScreenerLookupRouting(t *testing.T) {
	var paths []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		_, _ = io.WriteString(w, `{"pairs":[]}`)
	}))
	t.Cleanup(srv.Close)

	d := NewDexScreener(srv.URL, nil, 10_000, testOptions())

	_, _, err := d.lookup(context.Background(), "0xdeadbeef00000000000000000000000000000000")
	assert.NoError(t, err)
	_, _, err = d.lookup(context.Background(), "PEPE")
	assert.NoError(t, err)

	assert.Len(t, paths, 2)
	assert.True(t, strings.HasPrefix(paths[0], "/latest/dex/tokens/0xdeadbeef"))
	assert.Equal(t, "/latest/dex/search", paths[1])
}
