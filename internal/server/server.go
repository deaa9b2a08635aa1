package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/pitch-coach/internal/llm"
	"github.com/jonathan/pitch-coach/internal/pacing"
	"github.com/jonathan/pitch-coach/internal/server/ratelimit"
	"github.com/jonathan/pitch-coach/internal/types"
)

// EventResolver resolves a hackathon URL into structured intelligence.
type EventResolver interface {
	Resolve(ctx context.Context, url string) (*types.HackathonData, error)
}

// DemoCritic analyzes a recorded demo against the judge panel.
type DemoCritic interface {
	Critique(ctx context.Context, media *llm.Media, data *types.HackathonData) (*types.AnalysisResult, error)
}

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	intel       EventResolver
	critic      DemoCritic
	rehearsals  *RehearsalManager
	rateLimiter *ratelimit.Limiter
	validate    *validator.Validate
}

// Config holds server configuration
type Config struct {
	Port   int
	Intel  EventResolver
	Critic DemoCritic
	Coach  *pacing.Coach
}

// New creates a new server instance
func New(cfg Config) (*Server, error) {
	if cfg.Intel == nil || cfg.Critic == nil || cfg.Coach == nil {
		return nil, fmt.Errorf("server requires intel, critic and coach")
	}

	s := &Server{
		intel:       cfg.Intel,
		critic:      cfg.Critic,
		rehearsals:  NewRehearsalManager(cfg.Coach),
		rateLimiter: ratelimit.NewLimiter(ratelimit.LoadConfig()),
		validate:    validator.New(),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("POST /api/events", s.handleAnalyzeEvent)
	mux.HandleFunc("POST /api/critiques", s.handleCritique)
	mux.HandleFunc("POST /api/rehearsals", s.handleCreateRehearsal)
	mux.HandleFunc("POST /api/rehearsals/{id}/observations", s.handleObservation)
	mux.HandleFunc("GET /api/rehearsals/{id}/tips", s.handleTipStream)
	mux.HandleFunc("DELETE /api/rehearsals/{id}", s.handleStopRehearsal)

	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return s, nil
}

// Handler exposes the router, primarily for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start runs the server until SIGINT/SIGTERM, then shuts down gracefully.
func (s *Server) Start() error {
	errCh := make(chan error, 1)
	go func() {
		log.Printf("pitch-coach API listening on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case <-stop:
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.httpServer.Shutdown(ctx)
}
