package app

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spreadup/arbscan/internal/config"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestWireVenuesFollowConfigOrder(t *testing.T) {
	cfg := config.Defaults()
	cfg.Scanner.Exchanges = []string{"Bybit", "MEXC"}

	deps, cleanup, err := Wire(context.Background(), &cfg, discardLogger())
	require.NoError(t, err)
	defer cleanup()

	assert.Equal(t, []string{"Bybit", "MEXC"}, deps.Venues)
	require.Len(t, deps.Adapters, 2)
	assert.Equal(t, "Bybit", deps.Adapters[0].Name())
}

// Enabling the dex feed appends its venue to the list the detectors and the
// default profiles work off, so its quotes are selectable, not dead weight.
func TestWireAppendsDexVenue(t *testing.T) {
	cfg := config.Defaults()
	cfg.Dex.Enabled = true
	cfg.Dex.Tokens = []string{"0x6982508145454Ce325dDbE47a25d4ec3d2311933"}

	deps, cleanup, err := Wire(context.Background(), &cfg, discardLogger())
	require.NoError(t, err)
	defer cleanup()

	want := append(append([]string(nil), config.ValidExchanges...), "DEX")
	assert.Equal(t, want, deps.Venues)

	prof, err := deps.Profiles.Get(context.Background(), "chat-1")
	require.NoError(t, err)
	assert.True(t, prof.EnabledExchanges["DEX"])
}
