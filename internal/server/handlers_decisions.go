package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/screenroute-ai/screenroute/internal/model"
	"github.com/screenroute-ai/screenroute/internal/storage"
)

// HandleAnalyzeAdHoc handles POST /v1/analyze: runs the pipeline over an
// inline film payload without persisting the film. The decision is still
// stored so it shows up in recent decisions and stats.
func (h *Handlers) HandleAnalyzeAdHoc(w http.ResponseWriter, r *http.Request) {
	var film model.Film
	if err := decodeJSON(r, h.maxRequestBodyBytes, &film); err != nil {
		handleDecodeError(w, r, err)
		return
	}

	if err := model.ValidateFilm(film); err != nil {
		writeError(w, r, http.StatusBadRequest, model.ErrCodeInvalidInput, err.Error())
		return
	}
	if film.ID == "" {
		film.ID = uuid.NewString()
	}

	decision := h.coordinator.Process(r.Context(), film)

	decision, err := h.store.CreateDecision(r.Context(), decision)
	if err != nil {
		h.writeInternalError(w, r, "failed to store decision", err)
		return
	}
	writeJSON(w, r, http.StatusOK, decision)
}

// HandleRecentDecisions handles GET /v1/decisions/recent?limit=.
func (h *Handlers) HandleRecentDecisions(w http.ResponseWriter, r *http.Request) {
	limit := 10
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 || n > 100 {
			writeError(w, r, http.StatusBadRequest, model.ErrCodeInvalidInput, "limit must be an integer in [1,100]")
			return
		}
		limit = n
	}

	decisions, err := h.store.RecentDecisions(r.Context(), limit)
	if err != nil {
		h.writeInternalError(w, r, "failed to list decisions", err)
		return
	}
	if decisions == nil {
		decisions = []model.Decision{}
	}
	writeJSON(w, r, http.StatusOK, decisions)
}

// HandleFilmDecisions handles GET /v1/films/{film_id}/decisions: every
// decision recorded for a stored film, newest first.
func (h *Handlers) HandleFilmDecisions(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("film_id")
	if _, err := h.store.GetFilm(r.Context(), id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, r, http.StatusNotFound, model.ErrCodeNotFound, "film not found")
			return
		}
		h.writeInternalError(w, r, "failed to get film", err)
		return
	}

	decisions, err := h.store.DecisionsByFilm(r.Context(), id)
	if err != nil {
		h.writeInternalError(w, r, "failed to list film decisions", err)
		return
	}
	if decisions == nil {
		decisions = []model.Decision{}
	}
	writeJSON(w, r, http.StatusOK, decisions)
}

// HandleGetDecision handles GET /v1/decisions/{decision_id}.
func (h *Handlers) HandleGetDecision(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("decision_id"))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, model.ErrCodeInvalidInput, "decision_id must be a UUID")
		return
	}

	decision, err := h.store.GetDecision(r.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, r, http.StatusNotFound, model.ErrCodeNotFound, "decision not found")
			return
		}
		h.writeInternalError(w, r, "failed to get decision", err)
		return
	}
	writeJSON(w, r, http.StatusOK, decision)
}
