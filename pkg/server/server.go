// Package server exposes the hashers and a shared soul registry over HTTP.
//
// Build agents that cannot link the Go packages post artifact content and
// receive the same hashes the CLI prints:
//
//	POST /v1/hash?mode=text|semantic|dual|auto   raw body, returns {"hash"}
//	POST /v1/dual                                raw body, returns {"semantic","textual"}
//	POST /v1/array                               {"items":[...], "semantic":bool}
//	POST /v1/souls?path=NAME                     registers NAME under its soul
//	GET  /v1/souls?min=N                         soul groups with at least N paths
//	GET  /v1/souls/{hash}                        paths registered under hash
//	GET  /healthz
//
// Every response carries an X-Request-ID header; a client-supplied one is
// echoed back.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/soulhash/pkg/soul"
)

// DefaultMaxBodySize bounds request bodies when no option overrides it.
const DefaultMaxBodySize = 8 << 20

// Server routes fingerprint requests to the hasher and registry.
type Server struct {
	router   chi.Router
	registry *soul.Registry
	logger   *log.Logger
	maxBody  int64
}

// Option configures optional Server behavior.
type Option func(*Server)

// WithLogger sets the request logger. The default is log.Default().
func WithLogger(l *log.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMaxBodySize limits request bodies to n bytes. Values <= 0 keep the default.
func WithMaxBodySize(n int64) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxBody = n
		}
	}
}

// New creates a Server backed by reg. A nil reg gets a fresh registry.
func New(reg *soul.Registry, opts ...Option) *Server {
	if reg == nil {
		reg = soul.New()
	}
	s := &Server{
		registry: reg,
		logger:   log.Default(),
		maxBody:  DefaultMaxBodySize,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.router = s.buildRouter()
	return s
}

// Registry returns the registry souls are recorded in.
func (s *Server) Registry() *soul.Registry { return s.registry }

// ServeHTTP implements http.Handler, delegating to the chi router.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.logRequests)
	r.Use(s.recoverPanics)

	r.Get("/healthz", s.handleHealth)

	r.Route("/v1", func(r chi.Router) {
		r.Post("/hash", s.handleHash)
		r.Post("/dual", s.handleDual)
		r.Post("/array", s.handleArray)
		r.Post("/souls", s.handleRegister)
		r.Get("/souls", s.handleGroups)
		r.Get("/souls/{hash}", s.handleFindSoul)
	})

	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully. A clean shutdown returns nil.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      time.Minute,
		IdleTimeout:       2 * time.Minute,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	s.logger.Info("listening", "addr", addr)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	s.logger.Info("server stopped")
	return nil
}
