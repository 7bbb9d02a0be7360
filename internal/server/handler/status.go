package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/spreadup/arbscan/internal/domain"
)

// StatusHandler serves runtime status for the dashboard: mode, uptime, the
// configured venues, the last completed scan, and the subscriber count.
type StatusHandler struct {
	mode      string
	exchanges []string
	startedAt time.Time
	market    domain.MarketStore
	profiles  domain.ProfileStore
}

// NewStatusHandler creates a StatusHandler.
func NewStatusHandler(mode string, exchanges []string, startedAt time.Time, market domain.MarketStore, profiles domain.ProfileStore) *StatusHandler {
	return &StatusHandler{
		mode:      mode,
		exchanges: exchanges,
		startedAt: startedAt,
		market:    market,
		profiles:  profiles,
	}
}

// GetStatus responds with the current runtime status.
// GET /api/status
func (h *StatusHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	status := map[string]any{
		"mode":           h.mode,
		"exchanges":      h.exchanges,
		"uptime_seconds": int64(time.Since(h.startedAt).Seconds()),
	}

	snap, err := h.market.Get(r.Context())
	switch {
	case err == nil:
		status["last_scan"] = snap.UpdatedAt.UTC().Format(time.RFC3339)
		status["opportunities"] = map[string]int{
			"spot_futures":    len(snap.SpotFutures),
			"futures_futures": len(snap.FuturesFutures),
			"funding_rates":   len(snap.FundingRates),
		}
	case errors.Is(err, domain.ErrNoData):
		status["last_scan"] = nil
	default:
		writeError(w, http.StatusInternalServerError, "status unavailable")
		return
	}

	if n, err := h.profiles.Count(r.Context()); err == nil {
		status["subscribers"] = n
	}

	writeJSON(w, http.StatusOK, status)
}
