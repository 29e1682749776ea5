// Package server wires the chi router, the middleware chain and the routes
// of the CE assist API, and owns the HTTP server lifecycle.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/giygas/ceassist-api/config"
	"github.com/giygas/ceassist-api/interfaces"
	"github.com/giygas/ceassist-api/logging"
	"github.com/giygas/ceassist-api/metrics"
)

const rateLimiterCleanupInterval = 10 * time.Minute

// Server represents the HTTP server
type Server struct {
	server  *http.Server
	router  chi.Router
	handler interfaces.HTTPHandler
	config  *config.Config
	limiter *RateLimiter
}

// NewServer creates a new server instance
func NewServer(cfg *config.Config, h interfaces.HTTPHandler) *Server {
	router := chi.NewRouter()

	server := &Server{
		server: &http.Server{
			Handler:      router,
			Addr:         cfg.Address + ":" + cfg.Port,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		router:  router,
		handler: h,
		config:  cfg,
		limiter: NewRateLimiter(bucketRate, bucketCapacity),
	}

	server.setupMiddleware()
	server.setupRoutes()

	return server
}

// setupMiddleware configures all middleware
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(RealIPMiddleware)
	s.router.Use(logging.LoggingMiddleware(logging.DefaultLoggingService.Logger))
	s.router.Use(middleware.RedirectSlashes)
	s.router.Use(middleware.Recoverer)
	s.router.Use(RequestSizeMiddleware(s.config))
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.config.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		ExposedHeaders: []string{"X-RateLimit-Limit", "X-RateLimit-Remaining", "X-Request-Id"},
		MaxAge:         300,
	}))
	s.router.Use(metrics.Metrics)
	s.router.Use(s.limiter.Middleware)
}

// setupRoutes configures all routes
func (s *Server) setupRoutes() {
	// Catalog
	s.router.Get("/products", s.handler.ListProducts)
	s.router.Get("/products/{id}", s.handler.GetProduct)
	s.router.Get("/products/{id}/sizes", s.handler.GetProductSizes)
	s.router.Get("/devices", s.handler.ListDevices)
	s.router.Get("/devices/{id}", s.handler.GetDevice)
	s.router.Get("/options", s.handler.GetOptions)
	s.router.Get("/reimbursement", s.handler.ListReimbursement)
	s.router.Get("/reimbursement/{category}", s.handler.GetReimbursement)
	s.router.Get("/guides/cart", s.handler.GetCartGuide)

	// Calculators
	s.router.Post("/compare", s.handler.Compare)
	s.router.Post("/calculators/plasma-exchange", s.handler.CalculatePlasmaExchange)
	s.router.Post("/calculators/clearance-index", s.handler.CalculateClearanceIndex)

	// Navigation sessions
	s.router.Post("/sessions", s.handler.CreateSession)
	s.router.Get("/sessions/{id}", s.handler.GetSession)
	s.router.Delete("/sessions/{id}", s.handler.DeleteSession)
	s.router.Post("/sessions/{id}/actions", s.handler.ApplyAction)

	s.router.Get("/health", s.handler.HealthCheck)
	s.router.Handle("/metrics", promhttp.Handler())
}

// Router exposes the configured handler chain
func (s *Server) Router() http.Handler {
	return s.router
}

// Start starts the server and blocks until it stops
func (s *Server) Start() error {
	s.limiter.StartCleanup(rateLimiterCleanupInterval)

	logging.Info(fmt.Sprintf("Starting server at: %s:%s", s.config.Address, s.config.Port))
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	logging.Info("Shutting down server...")
	s.limiter.Stop()

	if err := s.server.Shutdown(ctx); err != nil {
		logging.Error("Server forced to shutdown", "error", err)
		if err := s.server.Close(); err != nil {
			logging.Error("Server close error", "error", err)
			return err
		}
	}

	logging.Info("Server shutdown complete")
	return nil
}
