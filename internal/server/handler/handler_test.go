package handler

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spreadup/arbscan/internal/domain"
	"github.com/spreadup/arbscan/internal/store/memory"
)

var testExchanges = []string{"MEXC", "Gate.io", "Bybit"}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testSnapshot() domain.Snapshot {
	return domain.Snapshot{
		SpotFutures: []domain.SpotFuturesOpportunity{
			{Symbol: "BTCUSDT", BaseAsset: "BTC", SpreadPercent: 4.0, SpotExchange: "MEXC", FuturesExchange: "Bybit", IsCrossExchange: true, Volume24h: 1_000_000},
			{Symbol: "ETHUSDT", BaseAsset: "ETH", SpreadPercent: 1.0, SpotExchange: "Gate.io", FuturesExchange: "Gate.io"},
		},
		FuturesFutures: []domain.FuturesFuturesOpportunity{
			{Symbol: "BTCUSDT", BaseAsset: "BTC", SpreadPercent: 0.8, BuyExchange: "MEXC", SellExchange: "Bybit"},
		},
		FundingRates: []domain.FundingRateOpportunity{
			{Symbol: "ETHUSDT", BaseAsset: "ETH", LongExchange: "Bybit", ShortExchange: "MEXC", LongRate: -0.0002, ShortRate: 0.0005, DailyProfitPercent: 0.21},
		},
		UpdatedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func newMux(t *testing.T, market domain.MarketStore, profiles domain.ProfileStore) *http.ServeMux {
	t.Helper()
	logger := discardLogger()
	opp := NewOpportunityHandler(market, profiles, logger)
	prof := NewProfileHandler(profiles, testExchanges, logger)
	subs := NewSubscriptionHandler(profiles, logger)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/opportunities", opp.List)
	mux.HandleFunc("GET /api/profiles/{chat_id}", prof.Get)
	mux.HandleFunc("PUT /api/profiles/{chat_id}", prof.Update)
	mux.HandleFunc("POST /api/subscriptions/{chat_id}", subs.Subscribe)
	mux.HandleFunc("DELETE /api/subscriptions/{chat_id}", subs.Unsubscribe)
	return mux
}

func doJSON(t *testing.T, mux *http.ServeMux, method, target, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	var decoded map[string]any
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded))
	}
	return rec, decoded
}

func TestOpportunitiesNoDataYet(t *testing.T) {
	mux := newMux(t, memory.NewMarketStore(), memory.NewProfileStore(testExchanges))

	rec, body := doJSON(t, mux, http.MethodGet, "/api/opportunities", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "no data yet", body["status"])
	assert.Empty(t, body["spotFutures"])
	assert.Nil(t, body["updatedAt"])
}

func TestOpportunitiesAllKinds(t *testing.T) {
	market := memory.NewMarketStore()
	require.NoError(t, market.Set(context.Background(), testSnapshot()))
	mux := newMux(t, market, memory.NewProfileStore(testExchanges))

	rec, body := doJSON(t, mux, http.MethodGet, "/api/opportunities", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, body["spotFutures"], 2)
	assert.Len(t, body["futuresFutures"], 1)
	assert.Len(t, body["fundingRates"], 1)
	assert.Equal(t, "2025-06-01T12:00:00Z", body["updatedAt"])
}

func TestOpportunitiesKindFilter(t *testing.T) {
	market := memory.NewMarketStore()
	require.NoError(t, market.Set(context.Background(), testSnapshot()))
	mux := newMux(t, market, memory.NewProfileStore(testExchanges))

	rec, body := doJSON(t, mux, http.MethodGet, "/api/opportunities?kind=funding_rate", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, body["spotFutures"])
	assert.Len(t, body["fundingRates"], 1)
}

func TestOpportunitiesInvalidKind(t *testing.T) {
	mux := newMux(t, memory.NewMarketStore(), memory.NewProfileStore(testExchanges))

	rec, body := doJSON(t, mux, http.MethodGet, "/api/opportunities?kind=bogus", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid kind", body["error"])
}

// A chat_id view applies that chat's profile: its mode picks the list and its
// thresholds prune it.
func TestOpportunitiesChatView(t *testing.T) {
	market := memory.NewMarketStore()
	require.NoError(t, market.Set(context.Background(), testSnapshot()))
	profiles := memory.NewProfileStore(testExchanges)

	ctx := context.Background()
	prof, err := profiles.Get(ctx, "chat-9")
	require.NoError(t, err)
	prof.MinSpreadPercent = 2.0
	require.NoError(t, profiles.Put(ctx, "chat-9", prof))

	mux := newMux(t, market, profiles)
	rec, body := doJSON(t, mux, http.MethodGet, "/api/opportunities?chat_id=chat-9", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	// Only the 4% BTC entry clears the 2% threshold.
	require.Len(t, body["spotFutures"], 1)
	entry := body["spotFutures"].([]any)[0].(map[string]any)
	assert.Equal(t, "BTCUSDT", entry["symbol"])
	// The profile's default mode is spot_futures, so other lists are empty.
	assert.Empty(t, body["fundingRates"])
}

// A funding entry sitting exactly on the subscriber's threshold is filtered
// out; the threshold must be exceeded, as in the detector.
func TestOpportunitiesChatViewFundingThresholdMustBeExceeded(t *testing.T) {
	market := memory.NewMarketStore()
	require.NoError(t, market.Set(context.Background(), testSnapshot()))
	profiles := memory.NewProfileStore(testExchanges)

	ctx := context.Background()
	prof, err := profiles.Get(ctx, "chat-7")
	require.NoError(t, err)
	prof.Mode = domain.KindFundingRate
	prof.MinFundingDailyPercent = 0.21
	require.NoError(t, profiles.Put(ctx, "chat-7", prof))

	mux := newMux(t, market, profiles)
	rec, body := doJSON(t, mux, http.MethodGet, "/api/opportunities?chat_id=chat-7", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, body["fundingRates"])
}

func TestProfileGetCreatesDefault(t *testing.T) {
	mux := newMux(t, memory.NewMarketStore(), memory.NewProfileStore(testExchanges))

	rec, body := doJSON(t, mux, http.MethodGet, "/api/profiles/chat-1", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "spot_futures", body["mode"])
	assert.Equal(t, 0.5, body["minSpreadPercent"])
}

func TestProfileUpdateValidation(t *testing.T) {
	mux := newMux(t, memory.NewMarketStore(), memory.NewProfileStore(testExchanges))

	rec, body := doJSON(t, mux, http.MethodPut, "/api/profiles/chat-1",
		`{"mode":"bogus","minSpreadPercent":1}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, body["error"], "invalid opportunity kind")

	rec, body = doJSON(t, mux, http.MethodPut, "/api/profiles/chat-1",
		`{"mode":"spot_futures","minSpreadPercent":-1}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, body["error"], "non-negative")

	rec, body = doJSON(t, mux, http.MethodPut, "/api/profiles/chat-1",
		`{"mode":"spot_futures","enabledExchanges":{"Binance":true}}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, body["error"], "unknown exchange")

	rec, _ = doJSON(t, mux, http.MethodPut, "/api/profiles/chat-1",
		`{"mode":"funding_rate","minSpreadPercent":1,"minFundingDailyPercent":0.8,"enabledExchanges":{"MEXC":true}}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	_, body = doJSON(t, mux, http.MethodGet, "/api/profiles/chat-1", "")
	assert.Equal(t, "funding_rate", body["mode"])
}

func TestSubscriptionLifecycle(t *testing.T) {
	profiles := memory.NewProfileStore(testExchanges)
	mux := newMux(t, memory.NewMarketStore(), profiles)

	rec, body := doJSON(t, mux, http.MethodPost, "/api/subscriptions/chat-1", "")
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "subscribed", body["status"])

	n, err := profiles.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	rec, body = doJSON(t, mux, http.MethodDelete, "/api/subscriptions/chat-1", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "unsubscribed", body["status"])

	n, err = profiles.Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}

type fakeTrigger struct {
	summary domain.ScanSummary
	err     error
}

func (f *fakeTrigger) RunCycle(ctx context.Context) (domain.ScanSummary, error) {
	return f.summary, f.err
}

func TestScanTrigger(t *testing.T) {
	h := NewScanHandler(&fakeTrigger{summary: domain.ScanSummary{
		SpotFutures:    3,
		FuturesFutures: 1,
		Duration:       1500 * time.Millisecond,
	}}, discardLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/scan", nil)
	rec := httptest.NewRecorder()
	h.Trigger(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, float64(1500), body["duration_ms"])
	summary := body["summary"].(map[string]any)
	assert.Equal(t, float64(3), summary["spotFutures"])
}
