package server

import (
	"net/http"

	"github.com/screenroute-ai/screenroute/internal/model"
)

// HandleAnalyzeTrack handles POST /v1/analyze/music: scores an inline
// music track for film suitability and sync licensing. Nothing is
// persisted.
func (h *Handlers) HandleAnalyzeTrack(w http.ResponseWriter, r *http.Request) {
	var track model.Track
	if err := decodeJSON(r, h.maxRequestBodyBytes, &track); err != nil {
		handleDecodeError(w, r, err)
		return
	}
	if err := model.ValidateTrack(track); err != nil {
		writeError(w, r, http.StatusBadRequest, model.ErrCodeInvalidInput, err.Error())
		return
	}

	assessment := h.music.Analyze(track)
	h.logger.Info("track analyzed",
		"title", assessment.Title, "genre", assessment.Genre,
		"overall_score", assessment.OverallScore)
	writeJSON(w, r, http.StatusOK, assessment)
}

// HandleAnalyzeScript handles POST /v1/analyze/script: scores an inline
// screenplay and predicts its pre-production prospects. Nothing is
// persisted.
func (h *Handlers) HandleAnalyzeScript(w http.ResponseWriter, r *http.Request) {
	var sub model.ScriptSubmission
	if err := decodeJSON(r, h.maxRequestBodyBytes, &sub); err != nil {
		handleDecodeError(w, r, err)
		return
	}
	if err := model.ValidateScript(sub); err != nil {
		writeError(w, r, http.StatusBadRequest, model.ErrCodeInvalidInput, err.Error())
		return
	}

	assessment := h.script.Analyze(sub)
	h.logger.Info("script analyzed",
		"title", assessment.Title, "detected_genre", assessment.Metrics.DetectedGenre,
		"overall_score", assessment.OverallScore)
	writeJSON(w, r, http.StatusOK, assessment)
}
