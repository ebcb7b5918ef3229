package model

import (
	"time"

	"github.com/google/uuid"
)

// Pathway is a recommended distribution strategy.
type Pathway string

const (
	PathwayFestival         Pathway = "FESTIVAL"
	PathwayStreaming        Pathway = "STREAMING"
	PathwayTheatrical       Pathway = "THEATRICAL"
	PathwayBrandPartnership Pathway = "BRAND_PARTNERSHIP"
	PathwayEducational      Pathway = "EDUCATIONAL"
)

// PathwayOrder is the fixed enumeration order used for argmax tie-breaking:
// the first pathway reaching the maximum score wins.
var PathwayOrder = []Pathway{
	PathwayFestival,
	PathwayStreaming,
	PathwayTheatrical,
	PathwayBrandPartnership,
	PathwayEducational,
}

// RoutingDecision is the pathway router's output.
type RoutingDecision struct {
	PrimaryPathway Pathway             `json:"primary_pathway"`
	PathwayScores  map[Pathway]float64 `json:"pathway_scores"`
	Confidence     float64             `json:"confidence"`
	NextSteps      []string            `json:"next_steps"`
}

// AuditEntry is one event in a decision's phase log.
type AuditEntry struct {
	Timestamp time.Time `json:"timestamp"`
	Type      string    `json:"type"`
	Agent     string    `json:"agent,omitempty"`
	Message   string    `json:"message"`
}

// FilmSummary is the slice of film metadata embedded in a decision.
type FilmSummary struct {
	Director string   `json:"director,omitempty"`
	Country  string   `json:"country,omitempty"`
	Duration int      `json:"duration"`
	Genre    string   `json:"genre,omitempty"`
	Themes   []string `json:"themes,omitempty"`
}

// Decision is the consensus output for one film: both assessments, the
// routing decision, predictions, comparisons, truncated match lists and the
// ordered audit log. It is created once per pipeline run and is persisted
// as-is (any generated long-form report text is never stored).
type Decision struct {
	ID        uuid.UUID   `json:"id"`
	FilmID    string      `json:"film_id"`
	FilmTitle string      `json:"film_title"`
	FilmData  FilmSummary `json:"film_data"`

	QualityAssessment Assessment        `json:"quality_assessment"`
	MarketAssessment  Assessment        `json:"market_assessment"`
	Routing           RoutingDecision   `json:"routing_decision"`
	SuccessPrediction SuccessPrediction `json:"success_prediction"`
	Comparison        Comparison        `json:"comparison"`
	RevenueEstimate   *RevenueEstimate  `json:"revenue_estimate,omitempty"`

	FinalScore      float64 `json:"final_score"`
	FinalConfidence float64 `json:"final_confidence"`
	Pathway         Pathway `json:"pathway"`

	// Match lists are truncated to the top 5 for persistence.
	FestivalMatches    []FestivalMatch    `json:"festival_matches,omitempty"`
	DistributorMatches []DistributorMatch `json:"distributor_matches,omitempty"`
	NextSteps          []string           `json:"next_steps,omitempty"`

	// NeedsEscalation flags low aggregate confidence for human review.
	// It is advisory metadata, not an error state.
	NeedsEscalation bool `json:"needs_escalation"`

	AuditLog    []AuditEntry `json:"audit_log,omitempty"`
	ProcessedAt time.Time    `json:"processed_at"`
}
