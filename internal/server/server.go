// Package server provides the HTTP API for Tafuta.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/hyperjump/tafuta/internal/config"
	"github.com/hyperjump/tafuta/internal/search"
	"github.com/hyperjump/tafuta/internal/session"
	"github.com/hyperjump/tafuta/internal/storage"
	"go.uber.org/zap"
)

// Server is the HTTP server for the Tafuta API.
type Server struct {
	engine   *search.Engine
	sessions *session.Manager
	storage  storage.Storage // nil when no sqlite source is configured
	config   *config.Config
	logger   *zap.Logger
	validate *validator.Validate
	server   *http.Server
}

// NewServer creates a server with the given dependencies.
func NewServer(
	engine *search.Engine,
	sessions *session.Manager,
	store storage.Storage,
	cfg *config.Config,
	logger *zap.Logger,
) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		engine:   engine,
		sessions: sessions,
		storage:  store,
		config:   cfg,
		logger:   logger,
		validate: validator.New(),
	}
}

// Router returns the API routes.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(middleware.Compress(5))
	if s.config != nil && s.config.Debug {
		r.Use(middleware.Logger)
	}

	r.Get("/health", s.handleHealth)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/status", s.handleStatus)
		r.Post("/search", s.handleSearch)

		r.Post("/sessions", s.handleCreateSession)
		r.Route("/sessions/{id}", func(r chi.Router) {
			r.Use(s.withSession)
			r.Delete("/", s.handleDeleteSession)
			r.Put("/query", s.handleSetQuery)
			r.Post("/search", s.handlePerformSearch)
			r.Delete("/search", s.handleClearSearch)
			r.Get("/results", s.handleResults)
			r.Get("/recent", s.handleRecent)
			r.Post("/recent", s.handleAddRecent)
			r.Get("/filters", s.handleGetFilters)
			r.Put("/filters", s.handleSetFilters)
			r.Post("/filter/{type}", s.handleApplyFilters)
		})
	})
	return r
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port)
	s.server = &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.logger.Info("Starting server", zap.String("addr", addr))
	return s.server.ListenAndServe()
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
