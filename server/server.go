// Package server wires the HTTP surface: router construction, the middleware
// chain, route registration and graceful shutdown.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/clinsafe/medreview-api/config"
	"github.com/clinsafe/medreview-api/handlers"
	"github.com/clinsafe/medreview-api/knowledge"
	"github.com/clinsafe/medreview-api/logging"
	"github.com/clinsafe/medreview-api/metrics"
	"github.com/clinsafe/medreview-api/task"
)

// Server is the HTTP server for the review API.
type Server struct {
	server     *http.Server
	router     chi.Router
	container  *knowledge.Container
	dispatcher *task.Dispatcher
	config     *config.Config
}

// NewServer builds the server with its middleware chain and routes.
func NewServer(cfg *config.Config, container *knowledge.Container) *Server {
	router := chi.NewRouter()

	s := &Server{
		server: &http.Server{
			Handler:      router,
			Addr:         cfg.Address + ":" + cfg.Port,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		router:     router,
		container:  container,
		dispatcher: task.NewDispatcher(container).WithTimeout(time.Duration(cfg.DosageTimeoutMs) * time.Millisecond),
		config:     cfg,
	}

	s.setupMiddleware()
	s.setupRoutes()
	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(RealIPMiddleware)
	s.router.Use(logging.Middleware(logging.Logger()))
	s.router.Use(middleware.RedirectSlashes)
	s.router.Use(middleware.Recoverer)

	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	s.router.Use(RequestSizeMiddleware(s.config))
	s.router.Use(NewRateLimiter().Middleware)
	s.router.Use(metrics.Metrics)
}

func (s *Server) setupRoutes() {
	s.router.Post("/tasks/review", handlers.PostReview(s.dispatcher))
	s.router.Post("/tasks/dosage", handlers.PostDosage(s.dispatcher))
	s.router.Get("/knowledge/drugs/{name}", handlers.GetDrug(s.container))
	s.router.Get("/knowledge/interactions/{pair}", handlers.GetInteraction(s.container))
	s.router.Get("/health", handlers.HealthCheck(s.container))
	s.router.Handle("/metrics", promhttp.Handler())
}

// Start begins serving. Blocks until the listener stops.
func (s *Server) Start() error {
	logging.Info("Starting server", "addr", s.server.Addr, "env", s.config.Env)
	return s.server.ListenAndServe()
}

// Shutdown drains in-flight requests and stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	logging.Info("Shutting down server...")

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
