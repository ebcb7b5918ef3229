package market

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/screenroute-ai/screenroute/internal/catalog"
	"github.com/screenroute-ai/screenroute/internal/model"
)

func newAnalyzer(t *testing.T) *Analyzer {
	t.Helper()
	c, err := catalog.Load()
	require.NoError(t, err)
	return New(c)
}

func TestAnalyzeDocumentaryWithAwardsAndTerritory(t *testing.T) {
	a := newAnalyzer(t)

	// Documentary base 8.5, no duration bonus at 52 minutes, +0.8 for the
	// festival selection, +0.35 for the India territory (0.7 * 0.5).
	film := model.Film{
		Title:            "Echoes of the Monsoon",
		Genre:            "Documentary",
		Country:          "India",
		DurationMinutes:  52,
		Themes:           []string{"Mental Health", "Social Justice"},
		ScreeningsAwards: "Official Selection - Mumbai Film Festival",
	}

	got := a.Analyze(film, 10.0)
	require.InDelta(t, 9.65, got.Score, 0.051)
	require.Equal(t, 0.9, got.Confidence)
	require.Equal(t, "rising", got.GenreTrend)
	require.NotNil(t, got.RevenueEstimate)
	require.NotEmpty(t, got.DistributorMatches)
	// Impact themes surface brand partners ahead of the documentary bucket.
	require.Equal(t, "Social impact alignment", got.DistributorMatches[0].Reason)
}

func TestAnalyzeUnknownGenreFallsBackToGeneral(t *testing.T) {
	a := newAnalyzer(t)

	got := a.Analyze(model.Film{Title: "Frontier", Genre: "Western"}, -1)
	// General base 6.0; no duration, award or territory adjustments.
	require.Equal(t, 6.0, got.Score)
	require.Equal(t, 0.6, got.Confidence)
	require.Equal(t, []string{"General audiences"}, got.TargetAudiences)
}

func TestAnalyzeDurationAdjustments(t *testing.T) {
	a := newAnalyzer(t)

	base := model.Film{Title: "Runtime Study", Genre: "Horror"}

	tests := []struct {
		duration int
		want     float64
	}{
		{10, 9.5},  // short sweet spot
		{95, 9.5},  // feature sweet spot
		{52, 9.0},  // neither
		{160, 8.0}, // overlong penalty
	}
	for _, tt := range tests {
		film := base
		film.DurationMinutes = tt.duration
		got := a.Analyze(film, -1)
		require.Equalf(t, tt.want, got.Score, "duration %d", tt.duration)
	}
}

func TestTerritoryFirstSubstringMatchWins(t *testing.T) {
	a := newAnalyzer(t)

	// "UK" is a substring of "UK and India"; the UK row comes first in
	// the table so its accessibility applies.
	withUK := a.Analyze(model.Film{Title: "Crossing", Genre: "Comedy", Country: "UK and India"}, -1)
	ukOnly := a.Analyze(model.Film{Title: "Crossing", Genre: "Comedy", Country: "UK"}, -1)
	require.Equal(t, ukOnly.Score, withUK.Score)
}

func TestDistributorMatchesShortFilmBucket(t *testing.T) {
	a := newAnalyzer(t)

	film := model.Film{Title: "Jump Scare", Genre: "Horror", DurationMinutes: 12}
	matches := a.DistributorMatches(film, 9.0, "Horror")

	names := make([]string, len(matches))
	for i, m := range matches {
		names[i] = m.Name
	}
	// Shorts TV takes all genres; Alter focuses on horror. The feature
	// buckets must not leak in for a 12-minute film.
	require.Contains(t, names, "Shorts TV")
	require.Contains(t, names, "Alter")
	require.NotContains(t, names, "Netflix")
}

func TestDistributorMatchesMinScoreGate(t *testing.T) {
	a := newAnalyzer(t)

	film := model.Film{Title: "Quiet Rooms", Genre: "Drama", DurationMinutes: 100}
	matches := a.DistributorMatches(film, 7.2, "Drama")
	for _, m := range matches {
		// Netflix (8.0) and MUBI (7.5) gate above 7.2.
		require.NotEqual(t, "Netflix", m.Name)
		require.NotEqual(t, "MUBI", m.Name)
	}
}

func TestDistributorMatchesCapAndOrder(t *testing.T) {
	a := newAnalyzer(t)

	film := model.Film{
		Title:           "Common Ground",
		Genre:           "Documentary",
		DurationMinutes: 80,
		Themes:          []string{"Social Justice"},
	}
	matches := a.DistributorMatches(film, 9.7, "Documentary")

	require.Len(t, matches, 5)
	for i := 1; i < len(matches); i++ {
		require.GreaterOrEqual(t, matches[i-1].MatchScore, matches[i].MatchScore)
	}
	// The brand bucket's +10 bonus puts impact partners first.
	require.Equal(t, "Purpose Entertainment", matches[0].Name)
}

func TestEstimateRevenueScalesWithDuration(t *testing.T) {
	a := newAnalyzer(t)

	short := a.EstimateRevenue(model.Film{Genre: "Documentary", DurationMinutes: 10}, 7.0, 7.0)
	feature := a.EstimateRevenue(model.Film{Genre: "Documentary", DurationMinutes: 90}, 7.0, 7.0)

	// Score multiplier is 1.0 at a combined 7.0, so the estimates are the
	// genre average scaled by the duration multiplier alone.
	require.Equal(t, 5300.0, short.TotalEstimate) // 35000 * 0.15
	require.Equal(t, 35000.0, feature.TotalEstimate)
	require.Equal(t, "GBP", short.Currency)
	require.Equal(t, feature.TotalEstimate*0.6, feature.LowEstimate)
	require.Equal(t, feature.TotalEstimate*1.5, feature.HighEstimate)
}
