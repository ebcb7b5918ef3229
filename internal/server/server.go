package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/screenroute-ai/screenroute/internal/consensus"
	"github.com/screenroute-ai/screenroute/internal/ratelimit"
	"github.com/screenroute-ai/screenroute/internal/service/music"
	"github.com/screenroute-ai/screenroute/internal/service/script"
)

// Server is the ScreenRoute HTTP server.
type Server struct {
	httpServer *http.Server
	handler    http.Handler
	handlers   *Handlers
	logger     *slog.Logger
}

// Handler returns the root HTTP handler for use in tests.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Config holds all dependencies and configuration for creating a Server.
// Limiter is optional (nil = no rate limiting).
type Config struct {
	Store       Store
	StoreKind   string
	Coordinator *consensus.Coordinator
	Music       *music.Analyzer
	Script      *script.Analyzer
	Logger      *slog.Logger
	Limiter     ratelimit.Limiter

	Port                int
	ReadTimeout         time.Duration
	WriteTimeout        time.Duration
	Version             string
	MaxRequestBodyBytes int64
}

// New creates a new HTTP server with all routes configured.
func New(cfg Config) *Server {
	h := NewHandlers(HandlersDeps{
		Store:               cfg.Store,
		StoreKind:           cfg.StoreKind,
		Coordinator:         cfg.Coordinator,
		Music:               cfg.Music,
		Script:              cfg.Script,
		Logger:              cfg.Logger,
		Version:             cfg.Version,
		MaxRequestBodyBytes: cfg.MaxRequestBodyBytes,
	})

	// Request ID extractor for rate limit error responses.
	reqIDFunc := func(r *http.Request) string {
		return RequestIDFromContext(r.Context())
	}

	// Submission and analysis are the expensive endpoints; reads are not
	// rate limited.
	submitRL := ratelimit.Middleware(cfg.Limiter, ratelimit.IPKeyFunc, reqIDFunc)

	mux := http.NewServeMux()

	mux.Handle("POST /v1/films", submitRL(http.HandlerFunc(h.HandleSubmitFilm)))
	mux.HandleFunc("GET /v1/films", h.HandleListFilms)
	mux.HandleFunc("GET /v1/films/{film_id}", h.HandleGetFilm)
	mux.Handle("POST /v1/films/{film_id}/analyze", submitRL(http.HandlerFunc(h.HandleAnalyzeFilm)))
	mux.Handle("POST /v1/analyze", submitRL(http.HandlerFunc(h.HandleAnalyzeAdHoc)))
	mux.Handle("POST /v1/analyze/music", submitRL(http.HandlerFunc(h.HandleAnalyzeTrack)))
	mux.Handle("POST /v1/analyze/script", submitRL(http.HandlerFunc(h.HandleAnalyzeScript)))

	mux.HandleFunc("GET /v1/films/{film_id}/decisions", h.HandleFilmDecisions)

	mux.HandleFunc("GET /v1/decisions/recent", h.HandleRecentDecisions)
	mux.HandleFunc("GET /v1/decisions/{decision_id}", h.HandleGetDecision)
	mux.HandleFunc("GET /v1/stats", h.HandleStats)

	mux.HandleFunc("GET /health", h.HandleHealth)

	// Middleware chain (outermost executes first):
	// request ID → security headers → tracing → logging → recovery → handler.
	var handler http.Handler = mux
	handler = recoveryMiddleware(cfg.Logger, handler)
	handler = loggingMiddleware(cfg.Logger, handler)
	handler = tracingMiddleware(handler)
	handler = securityHeadersMiddleware(handler)
	handler = requestIDMiddleware(handler)

	return &Server{
		httpServer: &http.Server{
			Addr:         fmt.Sprintf(":%d", cfg.Port),
			Handler:      handler,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
		},
		handler:  handler,
		handlers: h,
		logger:   cfg.Logger,
	}
}

// Handlers returns the underlying Handlers for use in tests.
func (s *Server) Handlers() *Handlers {
	return s.handlers
}

// Start begins serving HTTP requests.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("http server shutting down")
	return s.httpServer.Shutdown(ctx)
}
