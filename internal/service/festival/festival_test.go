package festival

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/screenroute-ai/screenroute/internal/catalog"
	"github.com/screenroute-ai/screenroute/internal/model"
)

func newMatcher(t *testing.T) *Matcher {
	t.Helper()
	c, err := catalog.Load()
	require.NoError(t, err)
	return New(c)
}

func matchNames(matches []model.FestivalMatch) []string {
	names := make([]string, len(matches))
	for i, m := range matches {
		names[i] = m.Name
	}
	return names
}

func TestMatchMinScoreGateIsExclusive(t *testing.T) {
	m := newMatcher(t)

	film := model.Film{Title: "State Lines", Genre: "Drama", Country: "USA", DurationMinutes: 100}

	require.NotContains(t, matchNames(m.Match(film, 8.4)), "Sundance Film Festival")

	matches := m.Match(film, 8.5)
	names := matchNames(matches)
	require.Contains(t, names, "Sundance Film Festival")

	for _, match := range matches {
		if match.Name != "Sundance Film Festival" {
			continue
		}
		// Genre 25 + prestige 20 + home country 10, plus int(8.5*3).
		require.Equal(t, 80, match.MatchScore)
		require.Equal(t, []string{"Genre match: Drama", "Prestige alignment", "Home country advantage"}, match.Reasons)
	}
}

func TestMatchDurationPreferenceFiltering(t *testing.T) {
	m := newMatcher(t)

	short := model.Film{Title: "Corridor", Genre: "Drama", Country: "USA", DurationMinutes: 20}
	matches := m.Match(short, 7.0)

	// Feature-only festivals drop out; open-genre festivals with modest
	// prestige are the only ones clearing the base threshold for a
	// mid-quality drama short.
	require.Equal(t, []string{"Tampere Film Festival", "Mumbai Film Festival"}, matchNames(matches))
	for _, match := range matches {
		require.Equal(t, 51, match.MatchScore)
	}
}

func TestMatchThemeAlignment(t *testing.T) {
	m := newMatcher(t)

	film := model.Film{
		Title:           "Waiting Rooms",
		Genre:           "Comedy",
		DurationMinutes: 90,
		Themes:          []string{"Health"},
	}
	matches := m.Match(film, 6.5)

	found := false
	for _, match := range matches {
		if match.Name == "Global Health Film Festival" {
			found = true
			require.Equal(t, 54, match.MatchScore)
			require.Contains(t, match.Reasons, "Theme alignment")
		}
	}
	require.True(t, found)
}

func TestMatchCapAndOrdering(t *testing.T) {
	m := newMatcher(t)

	film := model.Film{Title: "Field Notes", Genre: "Documentary", Country: "USA", DurationMinutes: 95}
	matches := m.Match(film, 9.0)

	require.Len(t, matches, 10)
	for i := 1; i < len(matches); i++ {
		require.GreaterOrEqual(t, matches[i-1].MatchScore, matches[i].MatchScore)
	}
	// Equal scores keep catalog order.
	require.Equal(t, "Sundance Film Festival", matches[0].Name)
	require.Equal(t, "Tribeca Film Festival", matches[1].Name)
	require.Equal(t, "SXSW Film Festival", matches[2].Name)
}

func TestAnalyzeStrategyPicksBestPerTier(t *testing.T) {
	m := newMatcher(t)

	film := model.Film{Title: "Field Notes", Genre: "Documentary", Country: "USA", DurationMinutes: 95}
	report := m.Analyze(film, 9.0)

	require.Equal(t, 10, report.TotalMatches)
	require.NotEmpty(t, report.Tier1Options)
	require.NotEmpty(t, report.Tier2Options)
	require.NotEmpty(t, report.Tier3Options)
	require.Equal(t, []string{
		"Aim high: Submit to Sundance Film Festival first",
		"Strong backup: Tribeca Film Festival",
		"Guaranteed exposure: Durban International Film Festival",
	}, report.Strategy)
}

func TestAnalyzeNoMatchesForVeryLowQuality(t *testing.T) {
	m := newMatcher(t)

	report := m.Analyze(model.Film{Title: "Rough Cut", Genre: "Drama", DurationMinutes: 85}, 3.0)
	require.Empty(t, report.Matches)
	require.Zero(t, report.TotalMatches)
	require.Empty(t, report.Strategy)
}
