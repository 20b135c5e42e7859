// Package apiserver provides the JSON API HTTP server
package apiserver

import (
	"context"
	"errors"
	"net"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	"github.com/cookbook/catalog/internal/infrastructure/config"
	"github.com/cookbook/catalog/internal/infrastructure/http/handlers"
	"github.com/cookbook/catalog/internal/infrastructure/http/middleware"
	"github.com/cookbook/catalog/internal/infrastructure/monitoring"
)

// Server represents the JSON API HTTP server
type Server struct {
	config  *config.Config
	logger  *zap.Logger
	server  *http.Server
	router  *chi.Mux
	catalog *handlers.CatalogHandlers
	health  *handlers.HealthHandler
	metrics *monitoring.MetricsCollector
}

// NewServer creates a new API server instance
func NewServer(
	cfg *config.Config,
	log *zap.Logger,
	catalog *handlers.CatalogHandlers,
	health *handlers.HealthHandler,
	metrics *monitoring.MetricsCollector,
) *Server {
	s := &Server{
		config:  cfg,
		logger:  log.Named("api-server"),
		catalog: catalog,
		health:  health,
		metrics: metrics,
	}

	s.router = s.setupRoutes()
	s.server = &http.Server{
		Addr:           cfg.Address(),
		Handler:        otelhttp.NewHandler(s.router, "cookbook-api"),
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		IdleTimeout:    cfg.Server.IdleTimeout,
		MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
		ErrorLog:       zap.NewStdLog(s.logger),
	}

	return s
}

// setupRoutes configures the middleware chain and routes
func (s *Server) setupRoutes() *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(s.logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.Security())
	r.Use(cors.New(cors.Options{
		AllowedOrigins: s.config.Server.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID", "Location"},
		MaxAge:         86400,
	}).Handler)
	if s.config.Monitoring.EnableMetrics && s.metrics != nil {
		r.Use(middleware.Metrics(s.metrics))
	}

	r.Get(s.config.Monitoring.HealthCheckPath, s.health.ServeHTTP)
	if s.config.Monitoring.EnableMetrics && s.metrics != nil {
		r.Method(http.MethodGet, s.config.Monitoring.MetricsPath, s.metrics.Handler())
	}

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		if s.config.Server.RequestTimeout > 0 {
			r.Use(chimiddleware.Timeout(s.config.Server.RequestTimeout))
		}
		if s.config.RateLimit.Enable {
			var recorder middleware.RateLimitRecorder
			if s.metrics != nil {
				recorder = s.metrics
			}
			r.Use(middleware.RateLimit(s.config.RateLimit, recorder))
		}
		if s.config.Server.EnableCompression {
			r.Use(middleware.Compress(5))
		}
		r.Use(middleware.JSONOnly())

		s.catalog.Routes(r)
	})

	return r
}

// Handler returns the root HTTP handler
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// Start binds the listen address and serves in the background. Bind errors
// are returned; serve errors after start-up are logged.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.server.Addr)
	if err != nil {
		return err
	}

	s.logger.Info("Starting API server", zap.String("address", ln.Addr().String()))

	go func() {
		if err := s.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("API server stopped", zap.Error(err))
		}
	}()

	return nil
}

// Shutdown gracefully stops the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down API server")
	return s.server.Shutdown(ctx)
}
