package middleware

import (
	"net/http"
	"strings"
)

// CORS returns middleware granting cross-origin access to the origins on the
// allowlist, normally just the dashboard host. An empty allowlist leaves the
// API same-origin only; "*" opens it to every origin. The API carries no
// credentials, so only Content-Type needs allowing.
func CORS(allowedOrigins []string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Grants differ per origin, so caches must key on it.
			w.Header().Add("Vary", "Origin")

			if origin := r.Header.Get("Origin"); origin != "" && originAllowed(allowedOrigins, origin) {
				h := w.Header()
				h.Set("Access-Control-Allow-Origin", origin)
				h.Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
				h.Set("Access-Control-Allow-Headers", "Content-Type")
				h.Set("Access-Control-Max-Age", "86400")
			}

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func originAllowed(allowlist []string, origin string) bool {
	for _, o := range allowlist {
		if o == "*" || strings.EqualFold(o, origin) {
			return true
		}
	}
	return false
}
