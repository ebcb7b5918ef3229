package model

import (
	"fmt"
	"strings"
	"time"
)

// MaxScriptLen caps the screenplay text a single analysis accepts.
const MaxScriptLen = 512 * 1024 // 512 KB

// ScriptSubmission is a screenplay submitted for pre-production analysis.
// Text is the full screenplay; Title is optional.
type ScriptSubmission struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}

// ValidateScript checks that a screenplay submission carries text and
// stays within the size limits.
func ValidateScript(s ScriptSubmission) error {
	if strings.TrimSpace(s.Text) == "" {
		return fmt.Errorf("text is required")
	}
	if len(s.Text) > MaxScriptLen {
		return fmt.Errorf("text exceeds maximum length of %d bytes", MaxScriptLen)
	}
	if len(s.Title) > MaxTitleLen {
		return fmt.Errorf("title exceeds maximum length of %d characters", MaxTitleLen)
	}
	return nil
}

// ScriptScores holds the six per-axis screenplay scores, each rounded to
// one decimal and capped at 10.
type ScriptScores struct {
	Structure          float64 `json:"structure"`
	Dialogue           float64 `json:"dialogue"`
	VisualStorytelling float64 `json:"visual_storytelling"`
	Originality        float64 `json:"originality"`
	Marketability      float64 `json:"marketability"`
	Pacing             float64 `json:"pacing"`
}

// ScriptMetrics holds the mechanical screenplay measurements.
type ScriptMetrics struct {
	WordCount               int      `json:"word_count"`
	EstimatedPages          int      `json:"estimated_pages"`
	EstimatedRuntimeMinutes int      `json:"estimated_runtime_minutes"`
	SceneCount              int      `json:"scene_count"`
	DetectedGenre           string   `json:"detected_genre"`
	ThemesFound             []string `json:"themes_found,omitempty"`
}

// ScriptPredictions holds bucketed pre-production success probabilities
// (percentages). Ceilings are 95/90/85/50/80, floors 10/15/10/5/15.
type ScriptPredictions struct {
	FestivalInterest      int `json:"festival_interest"`
	ProductionLikelihood  int `json:"production_likelihood"`
	DistributionPotential int `json:"distribution_potential"`
	AwardPotential        int `json:"award_potential"`
	InvestorAppeal        int `json:"investor_appeal"`
}

// ScriptAssessment is the script analyzer's full output.
type ScriptAssessment struct {
	Agent string `json:"agent"`
	Title string `json:"title"`

	Metrics      ScriptMetrics `json:"metrics"`
	Scores       ScriptScores  `json:"scores"`
	OverallScore float64       `json:"overall_score"`
	Confidence   float64       `json:"confidence"`

	Predictions ScriptPredictions `json:"predictions"`
	Strengths   []string          `json:"strengths"`
	Weaknesses  []string          `json:"weaknesses"`

	Timestamp time.Time `json:"timestamp"`
}
