// Package http exposes the JSON API over a chi router. Handlers stay
// thin: decode, validate, call the store or the core engines, encode.
package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"golang.org/x/time/rate"

	"fintrack/internal/log"
	"fintrack/internal/storage"
)

type Server struct {
	http.Server

	store   storage.Store
	logger  *log.Logger
	slog    *log.StructuredLogger
	limiter *rate.Limiter

	shutdownOnce sync.Once
}

// Options tunes server behavior beyond the listen address.
type Options struct {
	// Requests per second and burst for mutating methods.
	RateLimitRPS   int
	RateLimitBurst int
}

// NewServer configures routes and middleware, returning a ready-to-run server.
func NewServer(addr string, store storage.Store, logger *log.Logger, opts Options) *Server {
	if opts.RateLimitRPS <= 0 {
		opts.RateLimitRPS = 10
	}
	if opts.RateLimitBurst < opts.RateLimitRPS {
		opts.RateLimitBurst = opts.RateLimitRPS
	}

	s := &Server{
		store:   store,
		logger:  logger.WithComponent(log.ComponentHTTP),
		limiter: rate.NewLimiter(rate.Limit(opts.RateLimitRPS), opts.RateLimitBurst),
	}
	s.slog = log.NewStructuredLogger(logger)

	r := chi.NewRouter()
	r.Use(log.Middleware(s.logger))
	r.Use(s.withRequestID)
	r.Use(s.withRequestLogging)
	r.Use(s.withSecurityHeaders)

	r.Get("/healthz", handleHealth)
	r.Get("/readyz", handleReady)

	r.Route("/api", func(r chi.Router) {
		r.Route("/transactions", func(r chi.Router) {
			r.Get("/", s.handleListTransactions)
			r.With(s.withRateLimit).Post("/", s.handleCreateTransaction)
			r.Get("/summary", s.handleSummary)
			r.Get("/range", s.handleRange)
			r.Get("/chart", s.handleChart)
			r.With(s.withRateLimit).Delete("/{id}", s.handleDeleteTransaction)
		})

		r.Route("/user", func(r chi.Router) {
			r.Get("/profile", s.handleGetProfile)
			r.With(s.withRateLimit).Put("/profile", s.handleUpdateProfile)
		})

		r.Get("/categories", s.handleCategories)
	})

	s.Server = http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	return s
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

// HTTPHandler returns the configured router. Mainly useful for tests.
func (s *Server) HTTPHandler() http.Handler {
	return s.Server.Handler
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
