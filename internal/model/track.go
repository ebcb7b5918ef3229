package model

import (
	"fmt"
	"strings"
	"time"
)

// Limits for music track submissions.
const (
	MaxArtistLen   = 200
	MaxTempoBPM    = 400
	MaxTrackLenSec = 4 * 3600
)

// Track is a music submission for sync-licensing analysis. All fields are
// optional; the analyzer substitutes documented defaults for blanks.
type Track struct {
	Title           string `json:"title"`
	Artist          string `json:"artist"`
	Genre           string `json:"genre"`
	TempoBPM        int    `json:"tempo_bpm"`
	DurationSeconds int    `json:"duration_seconds"`
}

// ValidateTrack checks the per-field limits of a track submission.
func ValidateTrack(t Track) error {
	if len(t.Title) > MaxTitleLen {
		return fmt.Errorf("title exceeds maximum length of %d characters", MaxTitleLen)
	}
	if len(t.Artist) > MaxArtistLen {
		return fmt.Errorf("artist exceeds maximum length of %d characters", MaxArtistLen)
	}
	if t.TempoBPM < 0 || t.TempoBPM > MaxTempoBPM {
		return fmt.Errorf("tempo_bpm must be in [0,%d]", MaxTempoBPM)
	}
	if t.DurationSeconds < 0 || t.DurationSeconds > MaxTrackLenSec {
		return fmt.Errorf("duration_seconds must be in [0,%d]", MaxTrackLenSec)
	}
	return nil
}

// TrackScores holds the six per-axis track scores, each rounded to one
// decimal.
type TrackScores struct {
	ProductionQuality float64 `json:"production_quality"`
	Composition       float64 `json:"composition"`
	EmotionalImpact   float64 `json:"emotional_impact"`
	Originality       float64 `json:"originality"`
	SyncPotential     float64 `json:"sync_potential"`
	Versatility       float64 `json:"versatility"`
}

// TrackSuitability describes where a track fits in a film.
type TrackSuitability struct {
	BestFitGenres    []string `json:"best_fit_genres"`
	SceneTypes       []string `json:"scene_types"`
	SyncLicenseValue string   `json:"sync_license_value"` // "high", "medium" or "low"
}

// TrackRevenue is the monthly sync-licensing revenue band for a track.
type TrackRevenue struct {
	SyncLicenseLow           float64 `json:"sync_license_low"`
	SyncLicenseHigh          float64 `json:"sync_license_high"`
	Currency                 string  `json:"currency"`
	LibraryMusicFit          bool    `json:"library_music_fit"`
	SpotifyPlaylistPotential bool    `json:"spotify_playlist_potential"`
}

// TrackAssessment is the music analyzer's full output.
type TrackAssessment struct {
	Agent    string `json:"agent"`
	Title    string `json:"title"`
	Artist   string `json:"artist"`
	Genre    string `json:"genre"`
	TempoBPM int    `json:"tempo_bpm"`
	Duration string `json:"duration"` // "m:ss"
	Mood     string `json:"detected_mood"`

	Scores       TrackScores `json:"scores"`
	OverallScore float64     `json:"overall_score"`
	Confidence   float64     `json:"confidence"`

	Suitability TrackSuitability `json:"film_suitability"`
	Revenue     TrackRevenue     `json:"revenue_potential"`

	Recommendations []string `json:"recommendations"`
	Strengths       []string `json:"strengths,omitempty"`
	Improvements    []string `json:"improvements,omitempty"`

	Timestamp time.Time `json:"timestamp"`
}

// FormatTrackDuration renders a duration in seconds as "m:ss".
func FormatTrackDuration(seconds int) string {
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

// TitleWords converts a snake_case score name to a display label
// ("sync_potential" -> "Sync Potential").
func TitleWords(name string) string {
	words := strings.Split(name, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
