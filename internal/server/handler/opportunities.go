package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/spreadup/arbscan/internal/domain"
)

// OpportunityHandler serves the latest scan snapshot, optionally filtered by
// kind or viewed through a chat's filter profile.
type OpportunityHandler struct {
	market   domain.MarketStore
	profiles domain.ProfileStore
	logger   *slog.Logger
}

// NewOpportunityHandler creates an OpportunityHandler.
func NewOpportunityHandler(market domain.MarketStore, profiles domain.ProfileStore, logger *slog.Logger) *OpportunityHandler {
	return &OpportunityHandler{
		market:   market,
		profiles: profiles,
		logger:   logHandler(logger, "opportunities"),
	}
}

// opportunitiesResponse is the wire shape of the snapshot endpoint. Slices
// are always present so clients never branch on null.
type opportunitiesResponse struct {
	SpotFutures    []domain.SpotFuturesOpportunity    `json:"spotFutures"`
	FuturesFutures []domain.FuturesFuturesOpportunity `json:"futuresFutures"`
	FundingRates   []domain.FundingRateOpportunity    `json:"fundingRates"`
	UpdatedAt      *string                            `json:"updatedAt"`
	Status         string                             `json:"status,omitempty"`
}

// List serves the latest snapshot. `kind` narrows the response to one list;
// `chat_id` applies that chat's filter profile (mode, thresholds, venues).
// Before the first completed scan the response is an empty snapshot with
// status "no data yet", not an error.
// GET /api/opportunities?kind=&chat_id=
func (h *OpportunityHandler) List(w http.ResponseWriter, r *http.Request) {
	kind, err := parseKind(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid kind")
		return
	}

	snap, err := h.market.Get(r.Context())
	if err != nil {
		if errors.Is(err, domain.ErrNoData) {
			writeJSON(w, http.StatusOK, opportunitiesResponse{
				SpotFutures:    []domain.SpotFuturesOpportunity{},
				FuturesFutures: []domain.FuturesFuturesOpportunity{},
				FundingRates:   []domain.FundingRateOpportunity{},
				Status:         "no data yet",
			})
			return
		}
		h.logger.Error("snapshot read failed", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "snapshot unavailable")
		return
	}

	if chatID := r.URL.Query().Get("chat_id"); chatID != "" {
		prof, err := h.profiles.Get(r.Context(), chatID)
		if err != nil {
			h.logger.Error("profile read failed",
				slog.String("chat_id", chatID),
				slog.String("error", err.Error()))
			writeError(w, http.StatusInternalServerError, "profile unavailable")
			return
		}
		snap = filterSnapshot(snap, prof)
		if kind == "" {
			kind = prof.Mode
		}
	}

	resp := opportunitiesResponse{
		SpotFutures:    []domain.SpotFuturesOpportunity{},
		FuturesFutures: []domain.FuturesFuturesOpportunity{},
		FundingRates:   []domain.FundingRateOpportunity{},
	}
	at := snap.UpdatedAt.UTC().Format(time.RFC3339)
	resp.UpdatedAt = &at

	switch kind {
	case domain.KindSpotFutures:
		resp.SpotFutures = snap.SpotFutures
	case domain.KindFuturesFutures:
		resp.FuturesFutures = snap.FuturesFutures
	case domain.KindFundingRate:
		resp.FundingRates = snap.FundingRates
	default:
		resp.SpotFutures = snap.SpotFutures
		resp.FuturesFutures = snap.FuturesFutures
		resp.FundingRates = snap.FundingRates
	}

	writeJSON(w, http.StatusOK, resp)
}

// filterSnapshot applies a chat's thresholds and venue toggles to every list.
func filterSnapshot(snap domain.Snapshot, prof domain.FilterProfile) domain.Snapshot {
	out := domain.Snapshot{UpdatedAt: snap.UpdatedAt}

	for _, o := range snap.SpotFutures {
		if o.SpreadPercent < prof.MinSpreadPercent {
			continue
		}
		if !prof.AllowsExchanges(o.SpotExchange, o.FuturesExchange) {
			continue
		}
		if prof.MinVolume > 0 && o.Volume24h > 0 && o.Volume24h < prof.MinVolume {
			continue
		}
		out.SpotFutures = append(out.SpotFutures, o)
	}

	for _, o := range snap.FuturesFutures {
		if o.SpreadPercent < prof.MinSpreadPercent {
			continue
		}
		if !prof.AllowsExchanges(o.BuyExchange, o.SellExchange) {
			continue
		}
		if prof.MinVolume > 0 && o.Volume24h > 0 && o.Volume24h < prof.MinVolume {
			continue
		}
		out.FuturesFutures = append(out.FuturesFutures, o)
	}

	for _, o := range snap.FundingRates {
		// The funding threshold must be exceeded, matching the detector's
		// own floor semantics.
		if o.DailyProfitPercent <= prof.MinFundingDailyPercent {
			continue
		}
		if !prof.AllowsExchanges(o.LongExchange, o.ShortExchange) {
			continue
		}
		out.FundingRates = append(out.FundingRates, o)
	}

	return out
}
