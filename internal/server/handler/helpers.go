// Package handler contains the HTTP handlers of the scanner's REST API.
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/spreadup/arbscan/internal/domain"
)

// writeJSON marshals v as JSON and writes it to the response with the given
// HTTP status code. If marshaling fails, it falls back to a plain-text 500.
func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		http.Error(w, `{"error":"internal server error"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	w.Write(data)
}

// writeError sends a JSON-formatted error response.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// pathParam extracts a named path parameter from the request using Go 1.22+
// built-in routing (http.Request.PathValue).
func pathParam(r *http.Request, name string) string {
	return r.PathValue(name)
}

// parseKind validates the kind query parameter. Empty means all kinds.
func parseKind(r *http.Request) (domain.OpportunityKind, error) {
	v := r.URL.Query().Get("kind")
	switch domain.OpportunityKind(v) {
	case "", domain.KindSpotFutures, domain.KindFuturesFutures, domain.KindFundingRate:
		return domain.OpportunityKind(v), nil
	default:
		return "", domain.ErrInvalidKind
	}
}

// logHandler is a convenience to attach slog fields in handler code.
func logHandler(logger *slog.Logger, handler string) *slog.Logger {
	return logger.With(slog.String("handler", handler))
}
