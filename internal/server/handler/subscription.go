package handler

import (
	"log/slog"
	"net/http"

	"github.com/spreadup/arbscan/internal/domain"
)

// SubscriptionHandler manages alert subscriptions per chat.
type SubscriptionHandler struct {
	profiles domain.ProfileStore
	logger   *slog.Logger
}

// NewSubscriptionHandler creates a SubscriptionHandler.
func NewSubscriptionHandler(profiles domain.ProfileStore, logger *slog.Logger) *SubscriptionHandler {
	return &SubscriptionHandler{
		profiles: profiles,
		logger:   logHandler(logger, "subscription"),
	}
}

// Subscribe enrolls a chat for alerts, materializing its default profile.
// POST /api/subscriptions/{chat_id}
func (h *SubscriptionHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	chatID := pathParam(r, "chat_id")
	if chatID == "" {
		writeError(w, http.StatusBadRequest, "missing chat_id")
		return
	}

	if err := h.profiles.Subscribe(r.Context(), chatID); err != nil {
		h.logger.Error("subscribe failed",
			slog.String("chat_id", chatID),
			slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "subscribe failed")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{
		"chat_id": chatID,
		"status":  "subscribed",
	})
}

// Unsubscribe removes a chat from the alert list. The profile is kept, so a
// resubscribing chat gets its old preferences back.
// DELETE /api/subscriptions/{chat_id}
func (h *SubscriptionHandler) Unsubscribe(w http.ResponseWriter, r *http.Request) {
	chatID := pathParam(r, "chat_id")
	if chatID == "" {
		writeError(w, http.StatusBadRequest, "missing chat_id")
		return
	}

	if err := h.profiles.Unsubscribe(r.Context(), chatID); err != nil {
		h.logger.Error("unsubscribe failed",
			slog.String("chat_id", chatID),
			slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "unsubscribe failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"chat_id": chatID,
		"status":  "unsubscribed",
	})
}
