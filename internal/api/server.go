// Package api exposes the generation pipeline over HTTP. It is a thin
// transport layer: request decoding and status mapping live here, all
// orchestration lives in the generate package.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/storygen-hq/storygen/internal/config"
	"github.com/storygen-hq/storygen/internal/generate"
)

// Service is the slice of the generator the HTTP layer needs.
type Service interface {
	Generate(ctx context.Context, req generate.Request) *generate.Result
	HealthCheck(ctx context.Context) generate.HealthStatus
	UsageReport(days int) generate.UsageReport
}

// Server represents the API server
type Server struct {
	cfg     *config.Config
	svc     Service
	router  *chi.Mux
	readyFn func(ctx context.Context) error
}

// NewServer creates a new API server. readyFn is an optional probe for
// downstream dependencies, reported by /ready.
func NewServer(cfg *config.Config, svc Service, readyFn func(ctx context.Context) error) *Server {
	s := &Server{
		cfg:     cfg,
		svc:     svc,
		router:  chi.NewRouter(),
		readyFn: readyFn,
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// Router returns the HTTP router
func (s *Server) Router() http.Handler {
	return s.router
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	// Generation calls the model with retries, so the budget is generous.
	s.router.Use(middleware.Timeout(3 * time.Minute))
}

func (s *Server) setupRoutes() {
	s.router.Get("/health", s.healthCheck)
	s.router.Get("/ready", s.readyCheck)

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Post("/generate", s.generateTestCases)
		r.Get("/health/llm", s.llmHealth)
		r.Get("/usage", s.usageReport)
	})
}

func (s *Server) healthCheck(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

func (s *Server) readyCheck(w http.ResponseWriter, r *http.Request) {
	if s.readyFn != nil {
		if err := s.readyFn(r.Context()); err != nil {
			writeError(w, http.StatusServiceUnavailable, err.Error())
			return
		}
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ready"}`))
}
