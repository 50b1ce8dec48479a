// Package server exposes matches over HTTP: JSON endpoints for creating
// matches and submitting actions, and a websocket stream of redacted views.
// Every state that leaves the process is redacted for the caller.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/lox/headsup/internal/game"
	"github.com/lox/headsup/internal/match"
)

// PlayerHeader carries the caller's identity. Authentication happens in front
// of this server; the header is trusted as given.
const PlayerHeader = "X-Player-ID"

// Server serves the match API
type Server struct {
	addr     string
	manager  *match.Manager
	defaults game.Config
	upgrader websocket.Upgrader
	logger   *log.Logger
}

// NewServer creates a server for the given manager. defaults fills in any
// match parameter a create request leaves out.
func NewServer(addr string, manager *match.Manager, defaults game.Config, logger *log.Logger) *Server {
	return &Server{
		addr:     addr,
		manager:  manager,
		defaults: defaults,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				// Viewers are identified by header, not cookies, so any
				// origin may connect.
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		logger: logger.WithPrefix("server"),
	}
}

// Handler returns the HTTP routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /matches", s.handleCreate)
	mux.HandleFunc("GET /matches/{id}", s.handleGet)
	mux.HandleFunc("POST /matches/{id}/actions", s.handleAction)
	mux.HandleFunc("GET /matches/{id}/ws", s.handleWebSocket)
	mux.HandleFunc("GET /health", s.handleHealth)
	return mux
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Starting server", "addr", s.addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		s.logger.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}
