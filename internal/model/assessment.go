package model

import "time"

// Assessment is the output of a single scoring agent (quality or market).
// Score is clamped to [1.0, 10.0] and rounded to one decimal; Confidence is
// clamped to [0, 0.95] and rounded to two. An Assessment is immutable once
// returned and is never merged across films.
type Assessment struct {
	Agent      string  `json:"agent"`
	Score      float64 `json:"score"`
	Confidence float64 `json:"confidence"`
	Reasoning  string  `json:"reasoning"`

	// Quality-side detail.
	Strengths             []string           `json:"strengths,omitempty"`
	Improvements          []string           `json:"improvements,omitempty"`
	PredictiveAdjustments []string           `json:"predictive_adjustments,omitempty"`
	Breakdown             map[string]float64 `json:"breakdown,omitempty"`

	// Market-side detail.
	TargetAudiences      []string           `json:"target_audiences,omitempty"`
	GenreTrend           string             `json:"genre_trend,omitempty"`
	RecommendedPlatforms []string           `json:"recommended_platforms,omitempty"`
	DistributorMatches   []DistributorMatch `json:"distributor_matches,omitempty"`
	RevenueEstimate      *RevenueEstimate   `json:"revenue_estimate,omitempty"`

	Timestamp time.Time `json:"timestamp"`
}

// DistributorMatch is a scored fit between a film and a distributor from
// the static catalog. MatchScore is a 0-100 integer.
type DistributorMatch struct {
	Name        string   `json:"name"`
	MatchScore  int      `json:"match_score"`
	Territories []string `json:"territories"`
	Reason      string   `json:"reason"`
}

// FestivalMatch is a scored fit between a film and a catalog festival.
type FestivalMatch struct {
	Name       string   `json:"name"`
	Country    string   `json:"country"`
	Tier       int      `json:"tier"`
	MatchScore int      `json:"match_score"`
	Prestige   int      `json:"prestige"`
	Reasons    []string `json:"reasons,omitempty"`
}

// FestivalReport is the festival matcher's full output: ranked matches,
// per-tier buckets and a submission strategy.
type FestivalReport struct {
	Matches      []FestivalMatch `json:"matches"`
	Tier1Options []FestivalMatch `json:"tier_1_options,omitempty"`
	Tier2Options []FestivalMatch `json:"tier_2_options,omitempty"`
	Tier3Options []FestivalMatch `json:"tier_3_options,omitempty"`
	Strategy     []string        `json:"strategy,omitempty"`
	TotalMatches int             `json:"total_matches"`
}

// RevenueEstimate is the market analyzer's GBP revenue projection.
// All values are rounded to the nearest 100.
type RevenueEstimate struct {
	TotalEstimate float64          `json:"total_estimate"`
	LowEstimate   float64          `json:"low_estimate"`
	HighEstimate  float64          `json:"high_estimate"`
	Breakdown     RevenueBreakdown `json:"breakdown"`
	Currency      string           `json:"currency"`
}

// RevenueBreakdown splits the base estimate across revenue channels.
type RevenueBreakdown struct {
	FestivalCircuit      float64 `json:"festival_circuit"`
	StreamingRights      float64 `json:"streaming_rights"`
	EducationalLicensing float64 `json:"educational_licensing"`
	Other                float64 `json:"other"`
}

// SuccessPrediction holds bucketed success probabilities (percentages).
// The predictor draws bounded jitter, so repeated runs differ within the
// documented bands; ceilings are 98/85/50/40/95 respectively.
type SuccessPrediction struct {
	FestivalSelection int `json:"festival_selection"`
	DistributionDeal  int `json:"distribution_deal"`
	AwardNomination   int `json:"award_nomination"`
	ViralPotential    int `json:"viral_potential"`
	OverallSuccess    int `json:"overall_success"`
}

// PercentileRank is one axis of the comparison report.
type PercentileRank struct {
	Label       string `json:"label,omitempty"`
	Percentile  int    `json:"percentile"`
	Description string `json:"description"`
}

// Comparison ranks a film against the historical score distribution on
// five axes. All but the overall axis carry bounded jitter.
type Comparison struct {
	Overall     PercentileRank `json:"overall"`
	ByGenre     PercentileRank `json:"by_genre"`
	ByDuration  PercentileRank `json:"by_duration"`
	ByCountry   PercentileRank `json:"by_country"`
	ByFilmmaker PercentileRank `json:"by_filmmaker"`
}
