// Package server exposes the routing pipeline over HTTP.
//
// Endpoints:
//
//	GET  /healthz         liveness and build information
//	GET  /v1/presets      built-in cells, coupler and cross-section names
//	POST /v1/route        route a component, returns the requested artifacts
//	GET  /v1/runs         stored runs, newest first (?limit=N)
//	GET  /v1/runs/{id}    one stored run with its layout and netlist
//
// Request bodies for /v1/route are [pipeline.Options] in JSON. Fields left
// out take the server's configured defaults. Errors are returned as
//
//	{"error": {"code": "UNKNOWN_PORT", "message": "..."}}
//
// with the status derived from the error code.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/fiberroute/pkg/pipeline"
)

// MaxBodyBytes bounds the size of a route request.
const MaxBodyBytes = 4 << 20

// ShutdownTimeout is how long in-flight requests get after the context ends.
const ShutdownTimeout = 10 * time.Second

// Server serves the routing API.
type Server struct {
	Runner *pipeline.Runner
	// Defaults seed every route request before the body is decoded.
	Defaults pipeline.Options
	Logger   *log.Logger
}

// New creates a server. A nil logger logs through the runner's logger.
func New(runner *pipeline.Runner, defaults pipeline.Options, logger *log.Logger) *Server {
	if logger == nil {
		logger = runner.Logger
	}
	return &Server{Runner: runner, Defaults: defaults, Logger: logger}
}

// Handler returns the HTTP handler with all routes and middleware.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.accessLog)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Get("/presets", s.handlePresets)
		r.Post("/route", s.handleRoute)
		r.Get("/runs", s.handleListRuns)
		r.Get("/runs/{id}", s.handleGetRun)
	})
	return r
}

// ListenAndServe serves on addr until ctx is done, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	s.Logger.Info("listening", "addr", addr)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}
