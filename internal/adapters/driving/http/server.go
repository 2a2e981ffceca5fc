package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/custodia-labs/docfinder/internal/core/ports/driving"
)

// Pinger is a simple health check interface
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server represents the HTTP server
type Server struct {
	httpServer *http.Server
	router     *http.ServeMux
	version    string
	logger     *zap.Logger

	shutdownTimeout time.Duration

	// Services
	chatService    driving.ChatService
	searchService  driving.SearchService
	summaryService driving.SummaryService

	// Infrastructure
	catalog Pinger // catalog store readiness
	cache   Pinger // summary cache readiness (optional)
}

// Config holds server configuration
type Config struct {
	Host           string
	Port           int
	Version        string
	AllowedOrigins []string

	// ShutdownTimeout bounds graceful shutdown once the run context ends
	ShutdownTimeout time.Duration
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Host:            "0.0.0.0",
		Port:            8080,
		Version:         "dev",
		AllowedOrigins:  []string{"*"},
		ShutdownTimeout: 30 * time.Second,
	}
}

// Services groups the driving ports the server exposes
type Services struct {
	Chat    driving.ChatService
	Search  driving.SearchService
	Summary driving.SummaryService
}

// NewServer creates a new HTTP server. cache may be nil.
func NewServer(cfg Config, services Services, catalog Pinger, cache Pinger, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = 30 * time.Second
	}

	s := &Server{
		router:         http.NewServeMux(),
		version:        cfg.Version,
		logger:         logger,
		chatService:    services.Chat,
		searchService:  services.Search,
		summaryService: services.Summary,
		catalog:        catalog,
		cache:          cache,
	}
	s.setupRoutes()

	// Wrapped inside out: the request ID is set first, and logging sees
	// recovered panics as 500s.
	var handler http.Handler = s.router
	handler = NewCORSMiddleware(cfg.AllowedOrigins).Handler(handler)
	handler = NewRecoveryMiddleware(logger).Handler(handler)
	handler = NewLoggingMiddleware(logger).Handler(handler)
	handler = NewRequestIDMiddleware().Handler(handler)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second, // summaries fetch and call the model inline
		IdleTimeout:  60 * time.Second,
	}
	s.shutdownTimeout = cfg.ShutdownTimeout
	return s
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() {
	// Health endpoints
	s.router.HandleFunc("GET /health", s.handleHealth)
	s.router.HandleFunc("GET /ready", s.handleReady)
	s.router.HandleFunc("GET /version", s.handleVersion)

	// Assistant endpoints
	s.router.HandleFunc("POST /chat", s.handleChat)
	s.router.HandleFunc("POST /search", s.handleSearch)
	s.router.HandleFunc("POST /summarize", s.handleSummarize)

	// UI
	s.router.HandleFunc("GET /{$}", s.handleIndex)
}

// Handler returns the fully wrapped handler, for tests and embedding
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Addr returns the configured listen address
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// Run serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting server", zap.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	s.logger.Info("server stopped")
	return nil
}

// Stop stops the server
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
