package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/avolkov/claimlens/internal/model"
)

// Checker is the fact-check dependency of the HTTP layer
type Checker interface {
	CheckPDF(ctx context.Context, filename string, data []byte) (*model.Report, error)
	ClaimsPreview(ctx context.Context, filename string, data []byte) (model.Document, []model.Claim, error)
}

// Server is the claimlens web surface: PDF upload, claim preview,
// and synchronous verification.
type Server struct {
	log     *slog.Logger
	cfg     *model.ServerConfig
	checker Checker
	http    *http.Server
}

// New creates a new server
func New(log *slog.Logger, cfg *model.ServerConfig, checker Checker) *Server {
	s := &Server{
		log:     log,
		cfg:     cfg,
		checker: checker,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleIndex)
	r.Get("/health", s.handleHealth)
	r.Post("/api/check", s.handleCheck)
	r.Post("/api/claims", s.handleClaims)

	s.http = &http.Server{
		Addr:              cfg.BindAddr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		// Read/write timeouts cover a full synchronous verification pass
		ReadTimeout:  cfg.RequestTimeout,
		WriteTimeout: cfg.RequestTimeout,
	}

	return s
}

// Handler exposes the router for tests
func (s *Server) Handler() http.Handler {
	return s.http.Handler
}

// Run starts the server and blocks until ctx is cancelled, then shuts
// down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		s.log.Info("server starting", slog.String("addr", s.cfg.BindAddr))
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.log.Info("shutdown signal received")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.http.Shutdown(shutdownCtx)
}
