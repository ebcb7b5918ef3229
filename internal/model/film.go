package model

import (
	"strings"
	"time"
)

// FilmStatus tracks a submission through screening and analysis.
type FilmStatus string

const (
	FilmStatusPending  FilmStatus = "pending"
	FilmStatusApproved FilmStatus = "approved"
	FilmStatusRejected FilmStatus = "rejected"
	FilmStatusAnalyzed FilmStatus = "analyzed"
)

// Film is a submitted film record. It is the sole input to the scoring
// pipeline; every field the assessors read has a defined default so the
// pipeline is total over arbitrary submissions.
type Film struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Director string `json:"director,omitempty"`

	Genre           string   `json:"genre,omitempty"`
	Genres          []string `json:"genres,omitempty"`
	Country         string   `json:"country,omitempty"`
	Language        string   `json:"language,omitempty"`
	DurationMinutes int      `json:"duration_minutes,omitempty"`
	Themes          []string `json:"themes,omitempty"`
	Synopsis        string   `json:"synopsis,omitempty"`

	// ScreeningsAwards is free text; the assessors look for the substrings
	// "Winner", "Award", "Official Selection" and "Finalist".
	ScreeningsAwards   string `json:"screenings_awards,omitempty"`
	FirstTimeFilmmaker bool   `json:"first_time_filmmaker,omitempty"`

	// Component scores supplied by the submitter or an upstream reviewer.
	// Nil means "not assessed"; the pipeline substitutes 5.0.
	TechnicalQuality *float64 `json:"technical_quality,omitempty"`
	NarrativeScore   *float64 `json:"narrative_score,omitempty"`
	OriginalityScore *float64 `json:"originality_score,omitempty"`

	Status    FilmStatus `json:"status,omitempty"`
	CreatedAt time.Time  `json:"created_at,omitzero"`
	UpdatedAt time.Time  `json:"updated_at,omitzero"`
}

// defaultComponentScore is used when a submission carries no reviewer score.
const defaultComponentScore = 5.0

// ComponentScore resolves an optional component score: missing values
// default to 5.0 and supplied values are clamped into [0, 10] so a poisoned
// input cannot propagate through the weighted sums.
func ComponentScore(v *float64) float64 {
	if v == nil {
		return defaultComponentScore
	}
	if *v < 0 {
		return 0
	}
	if *v > 10 {
		return 10
	}
	return *v
}

// GenreOrDefault returns the primary genre, or fallback when unset.
func (f Film) GenreOrDefault(fallback string) string {
	if f.Genre == "" {
		return fallback
	}
	return f.Genre
}

// AllGenres returns the genre set, defaulting to [Genre] when the
// secondary list is empty.
func (f Film) AllGenres() []string {
	if len(f.Genres) > 0 {
		return f.Genres
	}
	if f.Genre != "" {
		return []string{f.Genre}
	}
	return nil
}

// IsShort reports whether the film falls in the short-film duration class
// used by festival and distributor matching.
func (f Film) IsShort() bool {
	return f.DurationMinutes <= 40
}

// AwardLevel classifies the free-text award history. Exactly one level
// applies; the checks run in priority order.
type AwardLevel int

const (
	AwardNone AwardLevel = iota
	AwardFinalist
	AwardOfficialSelection
	AwardWinner
)

// AwardHistory scans ScreeningsAwards for the recognized substrings.
func (f Film) AwardHistory() AwardLevel {
	switch {
	case strings.Contains(f.ScreeningsAwards, "Winner"),
		strings.Contains(f.ScreeningsAwards, "Award"):
		return AwardWinner
	case strings.Contains(f.ScreeningsAwards, "Official Selection"):
		return AwardOfficialSelection
	case strings.Contains(f.ScreeningsAwards, "Finalist"):
		return AwardFinalist
	default:
		return AwardNone
	}
}

// HasAnyTheme reports whether any of the film's themes appears in set.
func (f Film) HasAnyTheme(set []string) bool {
	for _, t := range f.Themes {
		for _, s := range set {
			if t == s {
				return true
			}
		}
	}
	return false
}

// MatchingThemes returns the film's themes that appear in set, in the
// film's own theme order.
func (f Film) MatchingThemes(set []string) []string {
	var out []string
	for _, t := range f.Themes {
		for _, s := range set {
			if t == s {
				out = append(out, t)
				break
			}
		}
	}
	return out
}
