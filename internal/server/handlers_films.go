package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/screenroute-ai/screenroute/internal/model"
	"github.com/screenroute-ai/screenroute/internal/service/screening"
	"github.com/screenroute-ai/screenroute/internal/storage"
)

// HandleSubmitFilm handles POST /v1/films. The submission is validated,
// screened and persisted; rejected submissions are persisted with status
// rejected and reported with a 422.
func (h *Handlers) HandleSubmitFilm(w http.ResponseWriter, r *http.Request) {
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

	result := screening.Screen(film)
	status := model.FilmStatusApproved
	if !result.Approved {
		status = model.FilmStatusRejected
	}
	film.Status = status

	film, err := h.store.CreateFilm(r.Context(), film)
	if err != nil {
		h.writeInternalError(w, r, "failed to store film", err)
		return
	}

	h.logger.Info("film submitted",
		"film_id", film.ID, "title", film.Title,
		"screening_status", result.Status, "safety_score", result.SafetyScore)

	code := http.StatusCreated
	if !result.Approved {
		code = http.StatusUnprocessableEntity
	}
	writeJSON(w, r, code, model.SubmitFilmResponse{Film: film, Screening: result})
}

// HandleListFilms handles GET /v1/films with optional ?status= and ?limit=.
func (h *Handlers) HandleListFilms(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 || n > 200 {
			writeError(w, r, http.StatusBadRequest, model.ErrCodeInvalidInput, "limit must be an integer in [1,200]")
			return
		}
		limit = n
	}

	status := model.FilmStatus(r.URL.Query().Get("status"))
	switch status {
	case "", model.FilmStatusPending, model.FilmStatusApproved,
		model.FilmStatusRejected, model.FilmStatusAnalyzed:
	default:
		writeError(w, r, http.StatusBadRequest, model.ErrCodeInvalidInput, "unknown status filter")
		return
	}

	films, err := h.store.ListFilms(r.Context(), status, limit)
	if err != nil {
		h.writeInternalError(w, r, "failed to list films", err)
		return
	}
	if films == nil {
		films = []model.Film{}
	}
	writeJSON(w, r, http.StatusOK, films)
}

// HandleGetFilm handles GET /v1/films/{film_id}.
func (h *Handlers) HandleGetFilm(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("film_id")
	film, err := h.store.GetFilm(r.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, r, http.StatusNotFound, model.ErrCodeNotFound, "film not found")
			return
		}
		h.writeInternalError(w, r, "failed to get film", err)
		return
	}
	writeJSON(w, r, http.StatusOK, film)
}

// HandleAnalyzeFilm handles POST /v1/films/{film_id}/analyze: runs the
// pipeline over a stored film, persists the decision and marks the film
// analyzed. Rejected films are refused.
func (h *Handlers) HandleAnalyzeFilm(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("film_id")
	film, err := h.store.GetFilm(r.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, r, http.StatusNotFound, model.ErrCodeNotFound, "film not found")
			return
		}
		h.writeInternalError(w, r, "failed to get film", err)
		return
	}

	if film.Status == model.FilmStatusRejected {
		writeError(w, r, http.StatusConflict, model.ErrCodeRejected, "film was rejected by content screening")
		return
	}

	decision := h.coordinator.Process(r.Context(), film)

	decision, err = h.store.CreateDecision(r.Context(), decision)
	if err != nil {
		h.writeInternalError(w, r, "failed to store decision", err)
		return
	}
	if _, err := h.store.UpdateFilmStatus(r.Context(), film, model.FilmStatusAnalyzed); err != nil {
		h.writeInternalError(w, r, "failed to update film status", err)
		return
	}

	writeJSON(w, r, http.StatusOK, decision)
}
