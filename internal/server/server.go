// Package server exposes a small read-only HTTP surface for operators and
// health checks: /health for liveness and /state for the current view
// (buffer size, page, connection status, session totals) as JSON.
//
// This is a debug surface, not a client fan-out: every request derives a
// fresh snapshot and nothing is pushed.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/liqmon/liqmon/internal/feed"
	"github.com/liqmon/liqmon/internal/monitor"
	"github.com/liqmon/liqmon/internal/version"
)

// Config configures the debug server.
type Config struct {
	Port int
}

// Server serves the monitor's view state over HTTP.
type Server struct {
	cfg    Config
	mon    *monitor.Monitor
	logger *slog.Logger
	srv    *http.Server
}

// New creates the debug server for mon.
func New(cfg Config, mon *monitor.Monitor, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		cfg:    cfg,
		mon:    mon,
		logger: logger,
	}
	s.srv = &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: s.routes(),
	}
	return s
}

// Start begins serving. Blocks until Shutdown or a listener error.
func (s *Server) Start() error {
	s.logger.Info("debug server started", "addr", s.srv.Addr)
	if err := s.srv.ListenAndServe(); err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("debug server stopping")
	return s.srv.Shutdown(ctx)
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/state", s.handleState)
	return mux
}

// handleHealth reports liveness. The monitor is healthy even while the feed
// is down; the feed status is informational.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	view := s.mon.View()

	health := struct {
		Status     string         `json:"status"`
		Version    string         `json:"version"`
		SessionID  string         `json:"session_id"`
		Feed       string         `json:"feed"`
		Events     int            `json:"events"`
		CheckedAt  time.Time      `json:"checked_at"`
		Components map[string]any `json:"components"`
	}{
		Status:    "healthy",
		Version:   version.String(),
		SessionID: view.SessionID,
		Feed:      view.Status,
		Events:    view.Events,
		CheckedAt: time.Now().UTC(),
		Components: map[string]any{
			"feed": map[string]any{
				"status":          view.Status,
				"frames_received": view.Feed.FramesReceived,
				"reconnects":      view.Feed.Reconnects,
			},
			"history": map[string]any{
				"events":   view.Events,
				"capacity": view.Capacity,
			},
		},
	}

	if view.Status == feed.StatusClosed.String() {
		health.Status = "degraded"
	}

	s.writeJSON(w, http.StatusOK, health)
}

// handleState returns the full current view state.
func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.mon.View())
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("failed to encode response", "error", err)
	}
}
