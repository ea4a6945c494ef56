// Package server provides the HTTP API for Debatable.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/hyperjump/debatable/internal/config"
	"github.com/hyperjump/debatable/internal/pipeline"
	"github.com/hyperjump/debatable/internal/readings"
)

// Server is the HTTP server for the Debatable API.
type Server struct {
	pipeline    *pipeline.Pipeline
	recommender *readings.Recommender
	config      *config.Config
	logger      *zap.Logger
	server      *http.Server
}

// NewServer creates a server with the given dependencies.
func NewServer(p *pipeline.Pipeline, rec *readings.Recommender, cfg *config.Config, logger *zap.Logger) *Server {
	return &Server{
		pipeline:    p,
		recommender: rec,
		config:      cfg,
		logger:      logger,
	}
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(120 * time.Second))
	r.Use(middleware.Compress(5))

	r.Post("/api/v1/extract/file", s.handleExtractFile)
	r.Post("/api/v1/extract/youtube", s.handleExtractYouTube)
	r.Post("/api/v1/extract/podcast", s.handleExtractPodcast)
	r.Post("/api/v1/extract/url", s.handleExtractURL)
	r.Post("/api/v1/readings", s.handleReadings)
	r.Get("/health", s.handleHealth)

	return r
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port)
	s.server = &http.Server{
		Addr:    addr,
		Handler: s.routes(),
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
