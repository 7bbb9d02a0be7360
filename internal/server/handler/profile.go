package handler

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/spreadup/arbscan/internal/domain"
)

// ProfileHandler reads and updates per-chat filter profiles.
type ProfileHandler struct {
	profiles  domain.ProfileStore
	exchanges []string
	logger    *slog.Logger
}

// NewProfileHandler creates a ProfileHandler. exchanges is the set of valid
// venue names for EnabledExchanges updates.
func NewProfileHandler(profiles domain.ProfileStore, exchanges []string, logger *slog.Logger) *ProfileHandler {
	return &ProfileHandler{
		profiles:  profiles,
		exchanges: exchanges,
		logger:    logHandler(logger, "profile"),
	}
}

// Get returns the chat's profile, creating the default on first access.
// GET /api/profiles/{chat_id}
func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	chatID := pathParam(r, "chat_id")
	if chatID == "" {
		writeError(w, http.StatusBadRequest, "missing chat_id")
		return
	}

	prof, err := h.profiles.Get(r.Context(), chatID)
	if err != nil {
		h.logger.Error("profile read failed",
			slog.String("chat_id", chatID),
			slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "profile unavailable")
		return
	}

	writeJSON(w, http.StatusOK, prof)
}

// Update replaces the chat's profile after validation.
// PUT /api/profiles/{chat_id}
func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	chatID := pathParam(r, "chat_id")
	if chatID == "" {
		writeError(w, http.StatusBadRequest, "missing chat_id")
		return
	}

	var prof domain.FilterProfile
	if err := json.NewDecoder(r.Body).Decode(&prof); err != nil {
		writeError(w, http.StatusBadRequest, "invalid profile body")
		return
	}

	if err := h.validate(prof); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.profiles.Put(r.Context(), chatID, prof); err != nil {
		h.logger.Error("profile write failed",
			slog.String("chat_id", chatID),
			slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "profile update failed")
		return
	}

	writeJSON(w, http.StatusOK, prof)
}

func (h *ProfileHandler) validate(prof domain.FilterProfile) error {
	switch prof.Mode {
	case domain.KindSpotFutures, domain.KindFuturesFutures, domain.KindFundingRate:
	default:
		return fmt.Errorf("%w: mode %q", domain.ErrInvalidKind, prof.Mode)
	}
	if prof.MinSpreadPercent < 0 || prof.MinFundingDailyPercent < 0 || prof.MinVolume < 0 {
		return fmt.Errorf("%w: thresholds must be non-negative", domain.ErrInvalidFilter)
	}
	valid := make(map[string]bool, len(h.exchanges))
	for _, ex := range h.exchanges {
		valid[ex] = true
	}
	for ex := range prof.EnabledExchanges {
		if !valid[ex] {
			return fmt.Errorf("%w: unknown exchange %q", domain.ErrInvalidFilter, ex)
		}
	}
	return nil
}
