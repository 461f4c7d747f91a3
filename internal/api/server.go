package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

// ServerConfig tunes the HTTP listener. Miners push small JSON bodies on a
// fixed cadence and keep their connections alive between pushes, so the
// per-request windows are short and the idle window generous.
type ServerConfig struct {
	Port            int
	RequestTimeout  time.Duration // bounds reading a request and writing its response
	IdleTimeout     time.Duration // keep-alive window between telemetry pushes
	ShutdownTimeout time.Duration
}

// DefaultServerConfig returns the listener defaults
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Port:            8080,
		RequestTimeout:  10 * time.Second,
		IdleTimeout:     2 * time.Minute,
		ShutdownTimeout: 30 * time.Second,
	}
}

// Server runs the HTTP listener and stops it without dropping in-flight
// telemetry pushes
type Server struct {
	httpServer      *http.Server
	logger          *slog.Logger
	shutdownTimeout time.Duration
}

// NewServer creates a server for the given handler
func NewServer(handler http.Handler, cfg ServerConfig, logger *slog.Logger) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:         fmt.Sprintf(":%d", cfg.Port),
			Handler:      handler,
			ReadTimeout:  cfg.RequestTimeout,
			WriteTimeout: cfg.RequestTimeout,
			IdleTimeout:  cfg.IdleTimeout,
		},
		logger:          logger,
		shutdownTimeout: cfg.ShutdownTimeout,
	}
}

// Start listens until the server is shut down. A Shutdown-initiated close is
// not an error.
func (s *Server) Start() error {
	s.logger.Info("listening", slog.String("addr", s.httpServer.Addr))

	err := s.httpServer.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("listen on %s: %w", s.httpServer.Addr, err)
	}
	return nil
}

// Shutdown drains in-flight requests, waiting at most the configured
// shutdown timeout
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("draining connections")

	drainCtx, cancel := context.WithTimeout(ctx, s.shutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(drainCtx); err != nil {
		return fmt.Errorf("drain: %w", err)
	}

	s.logger.Info("listener stopped")
	return nil
}

// Addr returns the configured listen address
func (s *Server) Addr() string {
	return s.httpServer.Addr
}
