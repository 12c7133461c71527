// Package server exposes normalization, conversion and key diff over HTTP.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/nbspace"
	"github.com/dmitrymomot/nbspace/internal/config"
	"github.com/dmitrymomot/nbspace/pkg/health"
	"github.com/dmitrymomot/nbspace/pkg/locale"
	"github.com/dmitrymomot/nbspace/pkg/logger"
	"github.com/dmitrymomot/nbspace/pkg/transcode"
)

const (
	defaultIdleTimeout       = 120 * time.Second
	defaultReadHeaderTimeout = 5 * time.Second
)

// Server is the HTTP API.
type Server struct {
	cfg             config.ServerConfig
	converter       *nbspace.Converter
	normalizer      transcode.Normalizer
	defaultLanguage string
	checks          health.Checks
	logger          *slog.Logger
	router          *chi.Mux
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request and error logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithChecks sets the readiness checks.
func WithChecks(c health.Checks) Option {
	return func(s *Server) {
		s.checks = c
	}
}

// WithDefaultLanguage sets the language used by /v1/normalize when neither
// the request nor Accept-Language names one. Defaults to EN.
func WithDefaultLanguage(code string) Option {
	return func(s *Server) {
		if code = strings.ToUpper(locale.ToShort(code)); code != "" {
			s.defaultLanguage = code
		}
	}
}

// New creates a Server and registers its routes.
func New(cfg config.ServerConfig, conv *nbspace.Converter, normalizer transcode.Normalizer, opts ...Option) *Server {
	s := &Server{
		cfg:             cfg,
		converter:       conv,
		normalizer:      normalizer,
		defaultLanguage: "EN",
		checks:          health.Checks{},
		logger:          logger.NewNope(),
		router:          chi.NewRouter(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(s.requestLogger)
	s.router.Use(middleware.Recoverer)
	if s.cfg.RequestTimeout > 0 {
		s.router.Use(middleware.Timeout(s.cfg.RequestTimeout))
	}
}

func (s *Server) setupRoutes() {
	s.router.Get("/health/live", health.LivenessHandler())
	s.router.Get("/health/ready", health.ReadinessHandler(s.checks, health.WithLogger(s.logger)))

	s.router.Route("/v1", func(r chi.Router) {
		r.With(s.language).Post("/normalize", s.handleNormalize)
		r.Post("/convert/sheet-to-flat", s.handleConvert(nbspace.DirectionSheetToFlat))
		r.Post("/convert/flat-to-sheet", s.handleConvert(nbspace.DirectionFlatToSheet))
		r.Post("/diff", s.handleDiff)
		r.Post("/report", s.handleReport)
	})
}

// Handler returns the router.
func (s *Server) Handler() http.Handler { return s.router }

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr(),
		Handler:           s.router,
		ReadTimeout:       s.cfg.ReadTimeout,
		WriteTimeout:      s.cfg.WriteTimeout,
		IdleTimeout:       defaultIdleTimeout,
		ReadHeaderTimeout: defaultReadHeaderTimeout,
	}

	ln, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", slog.String("address", ln.Addr().String()))
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	s.logger.Info("shutdown completed")
	return nil
}
