package model

import (
	"fmt"
	"strings"
	"time"
)

// Field length limits for film submissions. These keep caller-controlled
// text out of unbounded TEXT columns and cap the substring scans the
// screening and scoring passes run over each field.
const (
	MaxTitleLen    = 300
	MaxSynopsisLen = 16 * 1024 // 16 KB
	MaxAwardsLen   = 4 * 1024  // 4 KB
	MaxThemes      = 30
	MaxDuration    = 6000 // minutes
)

// ValidateFilm checks the identity fields and per-field limits of a
// submission. Content checks (offensive terms, spam) live in the screening
// service; this is the structural gate.
func ValidateFilm(f Film) error {
	if strings.TrimSpace(f.Title) == "" {
		return fmt.Errorf("title is required")
	}
	if len(f.Title) > MaxTitleLen {
		return fmt.Errorf("title exceeds maximum length of %d characters", MaxTitleLen)
	}
	if len(f.Synopsis) > MaxSynopsisLen {
		return fmt.Errorf("synopsis exceeds maximum length of %d bytes", MaxSynopsisLen)
	}
	if len(f.ScreeningsAwards) > MaxAwardsLen {
		return fmt.Errorf("screenings_awards exceeds maximum length of %d bytes", MaxAwardsLen)
	}
	if len(f.Themes) > MaxThemes {
		return fmt.Errorf("themes exceeds maximum of %d entries", MaxThemes)
	}
	if f.DurationMinutes < 0 {
		return fmt.Errorf("duration_minutes must be non-negative")
	}
	if f.DurationMinutes > MaxDuration {
		return fmt.Errorf("duration_minutes exceeds maximum of %d", MaxDuration)
	}
	return nil
}

// APIResponse is the standard response envelope for all HTTP API responses.
type APIResponse struct {
	Data any          `json:"data,omitempty"`
	Meta ResponseMeta `json:"meta"`
}

// ListResponse is the standard envelope for paginated list endpoints.
type ListResponse struct {
	Data    any          `json:"data"`
	Total   int          `json:"total"`
	HasMore bool         `json:"has_more"`
	Limit   int          `json:"limit"`
	Offset  int          `json:"offset"`
	Meta    ResponseMeta `json:"meta"`
}

// APIError is the standard error response envelope.
type APIError struct {
	Error ErrorDetail  `json:"error"`
	Meta  ResponseMeta `json:"meta"`
}

// ResponseMeta contains request metadata included in every response.
type ResponseMeta struct {
	RequestID string    `json:"request_id"`
	Timestamp time.Time `json:"timestamp"`
}

// ErrorDetail describes an API error.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// ErrorCode constants for standard API error codes.
const (
	ErrCodeInvalidInput  = "INVALID_INPUT"
	ErrCodeNotFound      = "NOT_FOUND"
	ErrCodeConflict      = "CONFLICT"
	ErrCodeRejected      = "SUBMISSION_REJECTED"
	ErrCodeInternalError = "INTERNAL_ERROR"
	ErrCodeRateLimited   = "RATE_LIMITED"
)

// SubmitFilmResponse is returned by POST /v1/films.
type SubmitFilmResponse struct {
	Film      Film            `json:"film"`
	Screening ScreeningResult `json:"screening"`
}

// ScreeningResult is the content screening verdict for a submission.
type ScreeningResult struct {
	Approved       bool      `json:"approved"`
	SafetyScore    int       `json:"safety_score"`
	Status         string    `json:"status"`
	Issues         []string  `json:"issues,omitempty"`
	Warnings       []string  `json:"warnings,omitempty"`
	Recommendation string    `json:"recommendation"`
	CheckedAt      time.Time `json:"checked_at"`
}

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Store   string `json:"store"`
	Uptime  int64  `json:"uptime_seconds"`
}

// Stats aggregates the decisions processed so far.
type Stats struct {
	TotalProcessed          int                `json:"total_processed"`
	Pathways                map[Pathway]int    `json:"pathways,omitempty"`
	AvgScore                float64            `json:"avg_score"`
	AvgConfidence           float64            `json:"avg_confidence"`
	AvgFestivalProbability  float64            `json:"avg_festival_probability"`
	TotalEstimatedValue     float64            `json:"total_estimated_value"`
	Escalations             int                `json:"escalations"`
	EscalationRate          float64            `json:"escalation_rate"`
	TotalFestivalMatches    int                `json:"total_festival_matches"`
	TotalDistributorMatches int                `json:"total_distributor_matches"`
	AvgFestivalsPerFilm     float64            `json:"avg_festivals_per_film"`
	AvgDistributorsPerFilm  float64            `json:"avg_distributors_per_film"`
	ScoreRange              map[string]float64 `json:"score_range,omitempty"`
}

// StoreStats counts persisted rows. Unlike the session aggregates in
// Stats, these survive restarts.
type StoreStats struct {
	Films     map[FilmStatus]int `json:"films"`
	Decisions int                `json:"decisions"`
}

// StatsReport is the GET /v1/stats payload: in-memory session
// aggregates beside the persisted row counts.
type StatsReport struct {
	Session Stats      `json:"session"`
	Store   StoreStats `json:"store"`
}
