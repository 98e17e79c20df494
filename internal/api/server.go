package api

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kunnath/pdf-financial-analyzer/internal/domain/analyzer"
)

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Addr               string
	RateLimitPerSecond int
	RateLimitBurst     int
	ShutdownTimeout    time.Duration
}

// Server is the analyzer web API.
type Server struct {
	router          *chi.Mux
	logger          *slog.Logger
	server          *http.Server
	shutdownTimeout time.Duration
}

// NewServer wires the router, middleware, and handlers.
func NewServer(service *analyzer.Service, cfg ServerConfig, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	handler := NewHandler(service, logger)

	router := chi.NewRouter()
	router.Use(RequestLogger(logger))
	router.Use(middleware.Recoverer)
	router.Use(RateLimit(cfg.RateLimitPerSecond, cfg.RateLimitBurst))

	router.Get("/health", handler.Health)
	router.Handle("/metrics", promhttp.Handler())
	router.Route("/api/v1", func(r chi.Router) {
		r.Post("/analyze", handler.Analyze)
		r.Post("/query", handler.Query)
	})

	timeout := cfg.ShutdownTimeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &Server{
		router: router,
		logger: logger,
		server: &http.Server{
			Addr:    cfg.Addr,
			Handler: router,
		},
		shutdownTimeout: timeout,
	}
}

// Start runs the server until it fails or a termination signal arrives,
// then shuts down gracefully.
func (s *Server) Start() error {
	serverErrors := make(chan error, 1)
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	go func() {
		s.logger.Info("starting server", slog.String("addr", s.server.Addr))
		serverErrors <- s.server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-shutdown:
		s.logger.Info("shutdown initiated")

		// Give outstanding requests a deadline for completion.
		ctx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()

		err := s.server.Shutdown(ctx)
		if err != nil {
			s.logger.Error("graceful shutdown failed", slog.Any("error", err))
			err = s.server.Close()
		}
		return err
	}
}
