package exchange

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testOptions() Options {
	return Options{
		Client: NewHTTPClient(5 * time.Second),
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func jsonServer(t *testing.T, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func failingServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "maintenance", http.StatusServiceUnavailable)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestMEXCFetch(t *testing.T) {
	spot := jsonServer(t, `[
		{"symbol":"BTCUSDT","lastPrice":"50000","quoteVolume":"1000000"},
		{"symbol":"ETHBTC","lastPrice":"0.05","quoteVolume":"500"}
	]`)
	contract := jsonServer(t, `{"data":[
		{"symbol":"BTC_USDT","lastPrice":50500,"fundingRate":0.0001}
	]}`)

	m := NewMEXC(testOptions())
	m.spotURL = spot.URL
	m.contractURL = contract.URL

	q := m.Fetch(context.Background())

	assert.Equal(t, "MEXC", q.Exchange)
	assert.Equal(t, 50000.0, q.Spot["BTCUSDT"])
	assert.Equal(t, 1000000.0, q.Volumes["BTCUSDT"])
	assert.NotContains(t, q.Spot, "ETHBTC")
	assert.Equal(t, 50500.0, q.Futures["BTCUSDT"])
	assert.Equal(t, 0.0001, q.Funding["BTCUSDT"])
}

// A failed sub-fetch must not take the rest of the quote down with it.
func TestMEXCFetchPartialFailure(t *testing.T) {
	spot := jsonServer(t, `[{"symbol":"BTCUSDT","lastPrice":"50000","quoteVolume":"1"}]`)
	contract := failingServer(t)

	m := NewMEXC(testOptions())
	m.spotURL = spot.URL
	m.contractURL = contract.URL

	q := m.Fetch(context.Background())

	assert.Equal(t, 50000.0, q.Spot["BTCUSDT"])
	assert.Empty(t, q.Futures)
	assert.Empty(t, q.Funding)
}

func TestMEXCFetchGarbagePayload(t *testing.T) {
	spot := jsonServer(t, `{"unexpected":"shape"}`)
	contract := jsonServer(t, `not json at all`)

	m := NewMEXC(testOptions())
	m.spotURL = spot.URL
	m.contractURL = contract.URL

	q := m.Fetch(context.Background())

	assert.Empty(t, q.Spot)
	assert.Empty(t, q.Futures)
	require.NotNil(t, q.Volumes)
}

func TestGateIOFetchSkipsDelisting(t *testing.T) {
	spot := jsonServer(t, `[
		{"currency_pair":"BTC_USDT","last":"50100","quote_volume":"2000000"}
	]`)
	futures := jsonServer(t, `[
		{"name":"BTC_USDT","last_price":"50200","funding_rate":"0.0002"},
		{"name":"OLD_USDT","last_price":"1.5","funding_rate":"0","in_delisting":true}
	]`)

	g := NewGateIO(testOptions())
	g.spotURL = spot.URL
	g.futuresURL = futures.URL

	q := g.Fetch(context.Background())

	assert.Equal(t, 50100.0, q.Spot["BTCUSDT"])
	assert.Equal(t, 50200.0, q.Futures["BTCUSDT"])
	assert.Equal(t, 0.0002, q.Funding["BTCUSDT"])
	assert.NotContains(t, q.Futures, "OLDUSDT")
}

func TestBingXFetchSendsTimestamp(t *testing.T) {
	var gotTimestamp bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("timestamp") != "" {
			gotTimestamp = true
		}
		_, _ = io.WriteString(w, `{"data":[{"symbol":"BTC-USDT","lastPrice":49900,"quoteVolume":300000}]}`)
	}))
	t.Cleanup(srv.Close)

	b := NewBingX(testOptions())
	b.spotURL = srv.URL
	b.swapURL = srv.URL

	q := b.Fetch(context.Background())

	assert.True(t, gotTimestamp)
	assert.Equal(t, 49900.0, q.Spot["BTCUSDT"])
	assert.Equal(t, 49900.0, q.Futures["BTCUSDT"])
	assert.Empty(t, q.Funding)
}

func TestBybitFetchSkipsScaledListings(t *testing.T) {
	spot := jsonServer(t, `{"result":{"list":[
		{"symbol":"BTCUSDT","lastPrice":"50050","turnover24h":"4000000"},
		{"symbol":"1000000MOGUSDT","lastPrice":"2.1","turnover24h":"90000"}
	]}}`)
	linear := jsonServer(t, `{"result":{"list":[
		{"symbol":"BTCUSDT","lastPrice":"50150","turnover24h":"9000000","fundingRate":"0.0003"}
	]}}`)

	b := NewBybit(testOptions())
	b.spotURL = spot.URL
	b.linearURL = linear.URL

	q := b.Fetch(context.Background())

	assert.Equal(t, 50050.0, q.Spot["BTCUSDT"])
	assert.NotContains(t, q.Spot, "1000000MOGUSDT")
	assert.Equal(t, 50150.0, q.Futures["BTCUSDT"])
	assert.Equal(t, 0.0003, q.Funding["BTCUSDT"])
}

func TestOKXFetchReconstructsQuoteVolume(t *testing.T) {
	spot := jsonServer(t, `{"data":[
		{"instId":"BTC-USDT","last":"50000","vol24h":"100"}
	]}`)
	swap := jsonServer(t, `{"data":[
		{"instId":"BTC-USDT-SWAP","last":"50300","vol24h":"2000"},
		{"instId":"BTC-USD-SWAP","last":"50310","vol24h":"2000"}
	]}`)

	o := NewOKX(testOptions())
	o.spotURL = spot.URL
	o.swapURL = swap.URL

	q := o.Fetch(context.Background())

	assert.Equal(t, 50000.0, q.Spot["BTCUSDT"])
	assert.Equal(t, 100*50000.0, q.Volumes["BTCUSDT"])
	assert.Equal(t, 50300.0, q.Futures["BTCUSDT"])
	assert.Len(t, q.Futures, 1)
}

func TestBitgetFetchReconstructsQuoteVolume(t *testing.T) {
	spot := jsonServer(t, `{"data":[
		{"symbol":"BTCUSDT","lastPr":"49950","baseVolume":"20"}
	]}`)
	mix := jsonServer(t, `{"data":[
		{"symbol":"BTCUSDT","lastPr":"50250","fundingRate":"0.0001"}
	]}`)

	b := NewBitget(testOptions())
	b.spotURL = spot.URL
	b.mixURL = mix.URL

	q := b.Fetch(context.Background())

	assert.Equal(t, 49950.0, q.Spot["BTCUSDT"])
	assert.Equal(t, 20*49950.0, q.Volumes["BTCUSDT"])
	assert.Equal(t, 50250.0, q.Futures["BTCUSDT"])
	assert.Equal(t, 0.0001, q.Funding["BTCUSDT"])
}
