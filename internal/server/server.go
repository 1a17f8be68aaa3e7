// Package server exposes conversions over HTTP.
//
// # Endpoints
//
//	POST /api/v1/convert?direction=LR    Excalidraw JSON in, conversion JSON out
//	POST /api/v1/preview?format=svg      Excalidraw JSON in, Graphviz rendering out
//	GET  /healthz                        liveness and build information
//
// Errors are JSON objects of the form {"code": "INVALID_DIRECTION",
// "error": "..."}. Caller mistakes map to 400, UNSUPPORTED errors to 501
// and anything else to 500.
//
// API routes can be rate limited; rejected requests get 429 with code
// RATE_LIMITED.
//
// Every response carries an X-Request-ID header, echoing the caller's value
// when one was sent. Conversion and preview results are cached through the
// runner's cache; the X-Cache header reports HIT or MISS.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/time/rate"

	"github.com/matzehuels/excalimaid/pkg/pipeline"
)

const shutdownTimeout = 10 * time.Second

// Options configures a Server.
type Options struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string

	// Direction is applied when a request does not name one.
	Direction string

	// RateLimit caps API requests per second across all clients; zero
	// disables limiting. Burst is the bucket size (at least 1).
	RateLimit float64
	Burst     int
}

// Server is the HTTP front end for a pipeline.Runner.
type Server struct {
	runner *pipeline.Runner
	logger *log.Logger
	opts   Options
	router chi.Router
}

// New builds a server around runner. A nil logger selects log.Default().
func New(runner *pipeline.Runner, logger *log.Logger, opts Options) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{
		runner: runner,
		logger: logger.WithPrefix("http"),
		opts:   opts,
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(middleware.Recoverer)
	r.Use(s.accessLog)

	r.Get("/healthz", s.handleHealth)
	r.Route("/api/v1", func(r chi.Router) {
		if s.opts.RateLimit > 0 {
			r.Use(rateLimit(rate.NewLimiter(rate.Limit(s.opts.RateLimit), max(1, s.opts.Burst))))
		}
		r.Post("/convert", s.handleConvert)
		r.Post("/preview", s.handlePreview)
	})
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, errorBody{Code: "NOT_FOUND", Error: "no route for " + r.URL.Path})
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, errorBody{Code: "METHOD_NOT_ALLOWED", Error: r.Method + " not allowed on " + r.URL.Path})
	})
	return r
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.opts.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.opts.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return ctx.Err()
	}
}
