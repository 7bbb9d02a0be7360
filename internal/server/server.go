// Package server hosts the REST and WebSocket API of the scanner.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/spreadup/arbscan/internal/server/handler"
	"github.com/spreadup/arbscan/internal/server/middleware"
	"github.com/spreadup/arbscan/internal/server/ws"
)

// Config holds the HTTP server configuration.
type Config struct {
	Port        int
	CORSOrigins []string
}

// Handlers aggregates all HTTP handlers that the server needs to register.
type Handlers struct {
	Health        *handler.HealthHandler
	Status        *handler.StatusHandler
	Opportunities *handler.OpportunityHandler
	Scan          *handler.ScanHandler
	Subscriptions *handler.SubscriptionHandler
	Profiles      *handler.ProfileHandler
}

// Server is the headless HTTP + WebSocket API server for the scanner.
type Server struct {
	httpServer *http.Server
	mux        *http.ServeMux
	logger     *slog.Logger
}

// NewServer creates a new Server with all routes registered on the ServeMux.
// It wires up middleware (logging, CORS) and attaches the WebSocket hub.
func NewServer(cfg Config, handlers Handlers, wsHub *ws.Hub, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	// --- Register routes ---

	mux.HandleFunc("GET /api/health", handlers.Health.HealthCheck)
	mux.HandleFunc("GET /api/status", handlers.Status.GetStatus)

	// Snapshot endpoints.
	mux.HandleFunc("GET /api/opportunities", handlers.Opportunities.List)

	// On-demand scan. Rate limited: a full cycle hits every exchange's API.
	scanLimit := middleware.RateLimit(6, time.Minute)
	mux.Handle("POST /api/scan", scanLimit(http.HandlerFunc(handlers.Scan.Trigger)))

	// Subscription endpoints.
	mux.HandleFunc("POST /api/subscriptions/{chat_id}", handlers.Subscriptions.Subscribe)
	mux.HandleFunc("DELETE /api/subscriptions/{chat_id}", handlers.Subscriptions.Unsubscribe)

	// Filter profile endpoints.
	mux.HandleFunc("GET /api/profiles/{chat_id}", handlers.Profiles.Get)
	mux.HandleFunc("PUT /api/profiles/{chat_id}", handlers.Profiles.Update)

	// WebSocket endpoint.
	if wsHub != nil {
		mux.HandleFunc("GET /ws", wsHub.HandleWS)
	}

	// Build the middleware chain.
	var h http.Handler = mux

	// Apply request logging middleware.
	h = middleware.Logging(logger)(h)

	// Apply CORS middleware.
	h = middleware.CORS(cfg.CORSOrigins)(h)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      h,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &Server{
		httpServer: srv,
		mux:        mux,
		logger:     logger,
	}
}

// Start begins listening for HTTP requests. It blocks until the server
// encounters an error or is shut down.
func (s *Server) Start() error {
	s.logger.Info("server: starting",
		slog.String("addr", s.httpServer.Addr),
	)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server: listen: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the server, waiting for in-flight requests
// to complete within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("server: shutting down")
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server: shutdown: %w", err)
	}
	return nil
}
