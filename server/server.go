// Package server exposes the analyzer over HTTP and WebSocket.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/strager/tinyc/config"
	"github.com/strager/tinyc/history"
)

// shutdownTimeout bounds how long Run waits for in-flight requests.
const shutdownTimeout = 5 * time.Second

// Server is the analyzer's HTTP front end
type Server struct {
	httpServer *http.Server
	store      history.Store
	logger     *slog.Logger
	config     Config
}

// Config holds server configuration
type Config struct {
	Host           string
	Port           int
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	MaxSourceBytes int64
}

// DefaultConfig returns default server configuration
func DefaultConfig() Config {
	return FromConfig(config.Default().Server)
}

// FromConfig converts the [server] section of a config file.
func FromConfig(c config.ServerConfig) Config {
	return Config{
		Host:           c.Host,
		Port:           c.Port,
		ReadTimeout:    c.ReadTimeout.Duration,
		WriteTimeout:   c.WriteTimeout.Duration,
		MaxSourceBytes: c.MaxSourceBytes,
	}
}

// New creates a server. store may be nil, which disables the history
// endpoint and recording. A nil logger discards logs.
func New(cfg Config, store history.Store, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if cfg.MaxSourceBytes <= 0 {
		cfg.MaxSourceBytes = DefaultConfig().MaxSourceBytes
	}

	s := &Server{
		store:  store,
		logger: logger,
		config: cfg,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/analyze", s.handleAnalyze)
	mux.HandleFunc("/api/history", s.handleHistory)
	mux.HandleFunc("GET /api/history/{id}", s.handleHistoryRun)
	mux.HandleFunc("GET /api/health", s.handleHealth)
	mux.HandleFunc("/ws", s.handleWebSocket)

	s.httpServer = &http.Server{
		Addr:         s.Address(),
		Handler:      requestIDMiddleware(loggingMiddleware(logger, mux)),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	return s
}

// Handler returns the routed handler, including middleware.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Address returns the server address
func (s *Server) Address() string {
	return fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
}

// Run listens on the configured address and serves until ctx is done, then
// shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.Address())
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.logger.Info("starting analyzer server", "addr", ln.Addr().String())

	errc := make(chan error, 1)
	go func() {
		errc <- s.httpServer.Serve(ln)
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("stopping analyzer server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
