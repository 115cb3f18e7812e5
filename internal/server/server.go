// Package server implements the built-in development backend. It serves the
// same HTTP API the CLI expects from a production deployment, backed by a
// YAML-mirrored in-memory store, with requests validated against the
// embedded OpenAPI document.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"
)

// Server is the opsdesk development backend HTTP server.
type Server struct {
	port      int
	dataDir   string
	version   string
	startTime time.Time
	hub       *ActivityHub
	logger    *slog.Logger
}

// New creates a Server persisting records under dataDir.
func New(port int, dataDir, version string, logger *slog.Logger) *Server {
	return &Server{
		port:      port,
		dataDir:   dataDir,
		version:   version,
		startTime: time.Now(),
		logger:    logger,
	}
}

// Run starts the HTTP server and blocks until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	store, err := OpenStore(s.dataDir)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}

	h := &Handlers{
		Version:   s.version,
		StartTime: s.startTime,
		Store:     store,
		Logger:    s.logger,
	}
	s.hub = NewActivityHub(s.dataDir, s.logger)

	handler, err := NewAPIHandler(h, s.hub)
	if err != nil {
		return err
	}

	addr := fmt.Sprintf(":%d", s.port)
	srv := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	go s.hub.Start(ctx)

	// Start listener so we can log the actual port.
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}

	s.logger.Info("backend server started", "addr", ln.Addr().String(), "data_dir", s.dataDir)

	// Graceful shutdown on context cancellation.
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	if err := srv.Serve(ln); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("serve: %w", err)
	}
	return nil
}

// NewAPIHandler wires the API routes and the optional activity feed behind
// the OpenAPI request validator.
func NewAPIHandler(h *Handlers, hub *ActivityHub) (http.Handler, error) {
	mux := http.NewServeMux()
	h.Register(mux)

	// Activity feed SSE endpoint sits outside the API document since a
	// stream cannot be described as a JSON response; the validator lets
	// undocumented routes through.
	if hub != nil {
		mux.Handle("GET /api/events", hub)
	}

	validate, err := newRequestValidator()
	if err != nil {
		return nil, err
	}
	return validate(mux), nil
}
