package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spreadup/arbscan/internal/domain"
)

func TestMarketStoreNoDataBeforeFirstSet(t *testing.T) {
	s := NewMarketStore()

	_, err := s.Get(context.Background())
	assert.ErrorIs(t, err, domain.ErrNoData)

	snap := domain.Snapshot{UpdatedAt: time.Now()}
	require.NoError(t, s.Set(context.Background(), snap))

	got, err := s.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, snap.UpdatedAt, got.UpdatedAt)
}

func TestMarketStoreLastWriteWins(t *testing.T) {
	s := NewMarketStore()
	ctx := context.Background()

	first := domain.Snapshot{UpdatedAt: time.Unix(100, 0)}
	second := domain.Snapshot{UpdatedAt: time.Unix(200, 0)}
	require.NoError(t, s.Set(ctx, first))
	require.NoError(t, s.Set(ctx, second))

	got, err := s.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, second.UpdatedAt, got.UpdatedAt)
}

func TestProfileStoreDefaultsOnFirstGet(t *testing.T) {
	exchanges := []string{"MEXC", "Bybit"}
	s := NewProfileStore(exchanges)

	p, err := s.Get(context.Background(), "chat-1")
	require.NoError(t, err)
	assert.Equal(t, domain.KindSpotFutures, p.Mode)
	assert.Equal(t, 0.5, p.MinSpreadPercent)
	assert.Equal(t, 0.0, p.MinVolume)
	assert.True(t, p.AllowsExchanges("MEXC", "Bybit"))
}

func TestProfileStorePutRoundTrip(t *testing.T) {
	s := NewProfileStore([]string{"MEXC", "Bybit"})
	ctx := context.Background()

	p, err := s.Get(ctx, "chat-1")
	require.NoError(t, err)
	p.Mode = domain.KindFundingRate
	p.MinSpreadPercent = 2.5
	p.EnabledExchanges["Bybit"] = false
	require.NoError(t, s.Put(ctx, "chat-1", p))

	got, err := s.Get(ctx, "chat-1")
	require.NoError(t, err)
	assert.Equal(t, domain.KindFundingRate, got.Mode)
	assert.Equal(t, 2.5, got.MinSpreadPercent)
	assert.False(t, got.AllowsExchanges("Bybit"))
}

func TestProfileStoreSubscriptions(t *testing.T) {
	s := NewProfileStore([]string{"MEXC"})
	ctx := context.Background()

	require.NoError(t, s.Subscribe(ctx, "b"))
	require.NoError(t, s.Subscribe(ctx, "a"))
	require.NoError(t, s.Subscribe(ctx, "a")) // idempotent

	subs, err := s.Subscribers(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, subs)

	n, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	require.NoError(t, s.Unsubscribe(ctx, "a"))
	subs, err = s.Subscribers(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, subs)
}

func TestCooldownStoreWindow(t *testing.T) {
	s := NewCooldownStore()
	clock := time.Unix(1_700_000_000, 0)
	s.now = func() time.Time { return clock }
	ctx := context.Background()
	window := 20 * time.Minute

	ok, err := s.ShouldAlert(ctx, "spot_futures:BTC", window)
	require.NoError(t, err)
	assert.True(t, ok)

	// 5 minutes later: still cooling down.
	clock = clock.Add(5 * time.Minute)
	ok, err = s.ShouldAlert(ctx, "spot_futures:BTC", window)
	require.NoError(t, err)
	assert.False(t, ok)

	// Different key is independent.
	ok, err = s.ShouldAlert(ctx, "funding_rate:BTC", window)
	require.NoError(t, err)
	assert.True(t, ok)

	// 25 minutes after the first alert: window has lapsed.
	clock = clock.Add(20 * time.Minute)
	ok, err = s.ShouldAlert(ctx, "spot_futures:BTC", window)
	require.NoError(t, err)
	assert.True(t, ok)
}
