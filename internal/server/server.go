// Package server exposes the conversation core over a small JSON HTTP API
// plus a websocket endpoint for two-phase message delivery.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/cosmusapp/cosmus-go/internal/metrics"
	"github.com/cosmusapp/cosmus-go/internal/nasa"
	"github.com/cosmusapp/cosmus-go/internal/session"
)

// Server wraps the conversation core with an HTTP surface and lifecycle
// management.
type Server struct {
	httpServer *http.Server
	logger     *slog.Logger

	// mu serializes access to the session manager: the conversation flow is
	// strictly sequential and the manager is not safe for concurrent use.
	mu       sync.Mutex
	sessions *session.Manager
	engine   *nasa.Engine
	stats    *metrics.Collector

	upgrader websocket.Upgrader
}

// New creates a server bound to addr.
func New(addr string, sessions *session.Manager, engine *nasa.Engine, stats *metrics.Collector, logger *slog.Logger) *Server {
	s := &Server{
		logger:   logger,
		sessions: sessions,
		engine:   engine,
		stats:    stats,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true // local consumer surface, no origin policy
			},
		},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /chat", s.handleChat)
	mux.HandleFunc("GET /greeting", s.handleGreeting)
	mux.HandleFunc("GET /media", s.handleMedia)
	mux.HandleFunc("GET /media/random", s.handleRandomMedia)
	mux.HandleFunc("GET /stats", s.handleStats)
	mux.HandleFunc("GET /ws", s.handleWS)
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "ok")
	})

	s.httpServer = &http.Server{
		Addr:    addr,
		Handler: LoggingMiddleware(logger)(mux),
	}
	return s
}

// Handler returns the server's HTTP handler, for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Run starts the server and blocks until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", "addr", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
