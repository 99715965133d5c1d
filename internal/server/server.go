package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/haguru/folio/internal/interfaces"
)

var (
	ReadTimeout  = 10 * time.Second
	WriteTimeout = 10 * time.Second
	IdleTimeout  = 30 * time.Second
)

type Server struct {
	Port   string
	Host   string
	server *http.Server
	mux    *http.ServeMux
	Logger interfaces.Logger
}

// NewServer creates a new Server instance with the specified host and port.
func NewServer(host, port string, logger interfaces.Logger) *Server {
	mux := http.NewServeMux()
	server := &http.Server{
		Addr:         host + ":" + port,
		Handler:      mux,
		ReadTimeout:  ReadTimeout,
		WriteTimeout: WriteTimeout,
		IdleTimeout:  IdleTimeout,
	}

	return &Server{
		Host:   host,
		Port:   port,
		server: server,
		mux:    mux,
		Logger: logger,
	}
}

// AddRoute registers handler for a ServeMux pattern such as "GET /posts/{slug}".
func (s *Server) AddRoute(route string, handler func(w http.ResponseWriter, r *http.Request)) (err error) {
	// ServeMux panics on invalid or conflicting patterns
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("failed to add route %s: %v", route, rec)
		}
	}()

	s.mux.HandleFunc(route, handler)
	s.Logger.Info("Route added", "route", route)
	return nil
}

// Use wraps the current handler. The last middleware added runs first.
func (s *Server) Use(middleware func(http.Handler) http.Handler) {
	s.server.Handler = middleware(s.server.Handler)
}

// Handler returns the fully wrapped handler.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// ListenAndServe starts the HTTP server and blocks until it stops.
// A graceful shutdown is not reported as an error.
func (s *Server) ListenAndServe() error {
	s.Logger.Info("Starting server", "host", s.Host, "port", s.Port)
	err := s.server.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		s.Logger.Error("Failed to start server", "error", err)
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown stops accepting connections and waits for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	s.Logger.Info("Shutting down server")
	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	return nil
}

var _ interfaces.Server = (*Server)(nil)
