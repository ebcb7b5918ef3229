package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/screenroute-ai/screenroute/internal/consensus"
	"github.com/screenroute-ai/screenroute/internal/model"
	"github.com/screenroute-ai/screenroute/internal/service/music"
	"github.com/screenroute-ai/screenroute/internal/service/script"
)

// Store is the persistence surface the handlers need. Both the Postgres
// storage layer and the SQLite localstore satisfy it.
type Store interface {
	CreateFilm(ctx context.Context, f model.Film) (model.Film, error)
	GetFilm(ctx context.Context, id string) (model.Film, error)
	ListFilms(ctx context.Context, status model.FilmStatus, limit int) ([]model.Film, error)
	UpdateFilmStatus(ctx context.Context, f model.Film, status model.FilmStatus) (model.Film, error)
	FilmCounts(ctx context.Context) (map[model.FilmStatus]int, error)

	CreateDecision(ctx context.Context, d model.Decision) (model.Decision, error)
	GetDecision(ctx context.Context, id uuid.UUID) (model.Decision, error)
	RecentDecisions(ctx context.Context, limit int) ([]model.Decision, error)
	DecisionsByFilm(ctx context.Context, filmID string) ([]model.Decision, error)
	DecisionCount(ctx context.Context) (int, error)

	Ping(ctx context.Context) error
}

// Handlers holds HTTP handler dependencies.
type Handlers struct {
	store               Store
	storeKind           string
	coordinator         *consensus.Coordinator
	music               *music.Analyzer
	script              *script.Analyzer
	logger              *slog.Logger
	startedAt           time.Time
	version             string
	maxRequestBodyBytes int64

	// statsGroup collapses concurrent stats requests into one aggregation.
	statsGroup singleflight.Group
}

// HandlersDeps holds all dependencies for constructing Handlers.
type HandlersDeps struct {
	Store               Store
	StoreKind           string
	Coordinator         *consensus.Coordinator
	Music               *music.Analyzer
	Script              *script.Analyzer
	Logger              *slog.Logger
	Version             string
	MaxRequestBodyBytes int64
}

// NewHandlers creates a new Handlers with all dependencies.
func NewHandlers(d HandlersDeps) *Handlers {
	return &Handlers{
		store:               d.Store,
		storeKind:           d.StoreKind,
		coordinator:         d.Coordinator,
		music:               d.Music,
		script:              d.Script,
		logger:              d.Logger,
		startedAt:           time.Now(),
		version:             d.Version,
		maxRequestBodyBytes: d.MaxRequestBodyBytes,
	}
}

// HandleHealth handles GET /health.
func (h *Handlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	status := "ok"
	code := http.StatusOK
	if err := h.store.Ping(r.Context()); err != nil {
		h.logger.Error("health check: store ping failed", "error", err)
		status = "degraded"
		code = http.StatusServiceUnavailable
	}
	writeJSON(w, r, code, model.HealthResponse{
		Status:  status,
		Version: h.version,
		Store:   h.storeKind,
		Uptime:  int64(time.Since(h.startedAt).Seconds()),
	})
}

// HandleStats handles GET /v1/stats. Concurrent callers share one
// aggregation pass via singleflight. Session aggregates come from the
// coordinator; row counts come from the store, so they survive
// restarts.
func (h *Handlers) HandleStats(w http.ResponseWriter, r *http.Request) {
	v, err, _ := h.statsGroup.Do("stats", func() (any, error) {
		films, err := h.store.FilmCounts(r.Context())
		if err != nil {
			return nil, err
		}
		decisions, err := h.store.DecisionCount(r.Context())
		if err != nil {
			return nil, err
		}
		return model.StatsReport{
			Session: h.coordinator.Stats(),
			Store:   model.StoreStats{Films: films, Decisions: decisions},
		}, nil
	})
	if err != nil {
		h.writeInternalError(w, r, "failed to aggregate stats", err)
		return
	}
	writeJSON(w, r, http.StatusOK, v.(model.StatsReport))
}

// writeInternalError logs the underlying error and returns a sanitized 500.
func (h *Handlers) writeInternalError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	h.logger.Error(msg, "error", err, "request_id", RequestIDFromContext(r.Context()))
	writeError(w, r, http.StatusInternalServerError, model.ErrCodeInternalError, msg)
}

// handleDecodeError maps JSON decode failures to an INVALID_INPUT response.
func handleDecodeError(w http.ResponseWriter, r *http.Request, err error) {
	writeError(w, r, http.StatusBadRequest, model.ErrCodeInvalidInput, "invalid request body: "+err.Error())
}
