package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/spreadup/arbscan/internal/domain"
)

// ScanTrigger runs one scan-and-alert cycle on demand. The pipeline
// implements it.
type ScanTrigger interface {
	RunCycle(ctx context.Context) (domain.ScanSummary, error)
}

// ScanHandler exposes the on-demand scan trigger.
type ScanHandler struct {
	trigger ScanTrigger
	logger  *slog.Logger
}

// NewScanHandler creates a ScanHandler.
func NewScanHandler(trigger ScanTrigger, logger *slog.Logger) *ScanHandler {
	return &ScanHandler{
		trigger: trigger,
		logger:  logHandler(logger, "scan"),
	}
}

// Trigger runs one full cycle synchronously and returns its summary.
// POST /api/scan
func (h *ScanHandler) Trigger(w http.ResponseWriter, r *http.Request) {
	summary, err := h.trigger.RunCycle(r.Context())
	if err != nil {
		h.logger.Error("manual scan failed", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "scan failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"summary":     summary,
		"duration_ms": summary.Duration.Milliseconds(),
	})
}
