// Package market scores a film's commercial viability on a 1-10 scale and
// derives distributor matches and a revenue estimate from it.
//
// The base comes from a fixed genre trend table; duration sweet spots,
// award history and territory accessibility adjust it. Like the quality
// assessor, the analyzer is deterministic and total over its input.
package market

import (
	"fmt"
	"strings"
	"time"

	"github.com/screenroute-ai/screenroute/internal/catalog"
	"github.com/screenroute-ai/screenroute/internal/model"
)

// AgentName identifies this analyzer in reasoning strings and audit logs.
const AgentName = "Market Intelligence Agent"

// Analyzer computes market assessments against a fixed catalog.
type Analyzer struct {
	cat *catalog.Catalog
}

// New creates a market Analyzer bound to the given catalog.
func New(c *catalog.Catalog) *Analyzer {
	return &Analyzer{cat: c}
}

// Analyze scores a film's market viability. qualityScore feeds only the
// revenue estimate; pass a negative value when no quality assessment is
// available and the market score substitutes for it.
func (a *Analyzer) Analyze(film model.Film, qualityScore float64) model.Assessment {
	genre := film.GenreOrDefault(catalog.GeneralGenre)
	trend := a.cat.Trend(genre)
	score := trend.Score * 10

	duration := film.DurationMinutes
	switch {
	case duration >= 5 && duration <= 15:
		score += 0.5
	case duration >= 85 && duration <= 110:
		score += 0.5
	case duration > 150:
		score -= 1.0
	}

	switch film.AwardHistory() {
	case model.AwardWinner:
		score += 1.5
	case model.AwardOfficialSelection:
		score += 0.8
	}

	// First territory whose country is a substring of the film's country
	// wins; the table order is fixed, so the match is stable.
	if film.Country != "" {
		for _, t := range a.cat.Territories {
			if strings.Contains(film.Country, t.Country) {
				score += t.Accessibility * 0.5
				break
			}
		}
	}

	marketScore := model.ClampScore(score)

	matches := a.DistributorMatches(film, marketScore, genre)

	q := qualityScore
	if q < 0 {
		q = marketScore
	}
	revenue := a.EstimateRevenue(film, marketScore, q)

	audiences := targetAudiences(film, genre)

	confidence := 0.60
	if film.ScreeningsAwards != "" {
		confidence += 0.2
	}
	if duration > 0 {
		confidence += 0.1
	}

	reasoning := fmt.Sprintf("Market analysis for %q: %s content is currently %s. ",
		film.Title, genre, trend.Trend)
	if len(matches) > 0 {
		reasoning += fmt.Sprintf("Top distributor match: %s. ", matches[0].Name)
	}
	reasoning += "Target: " + strings.Join(audiences, ", ") + "."

	return model.Assessment{
		Agent:                AgentName,
		Score:                marketScore,
		Confidence:           model.ClampConfidence(confidence),
		Reasoning:            reasoning,
		TargetAudiences:      audiences,
		GenreTrend:           trend.Trend,
		RecommendedPlatforms: trend.Platforms,
		DistributorMatches:   matches,
		RevenueEstimate:      &revenue,
		Timestamp:            time.Now().UTC(),
	}
}

func targetAudiences(film model.Film, genre string) []string {
	var audiences []string
	if film.HasAnyTheme([]string{"Mental Health", "Social Justice", "Health"}) {
		audiences = append(audiences, "Social impact audiences")
	}
	if genre == "Documentary" || genre == "Social Impact" {
		audiences = append(audiences, "Documentary enthusiasts")
	}
	if genre == "Horror" || genre == "Thriller" {
		audiences = append(audiences, "Genre fans")
	}
	if film.FirstTimeFilmmaker {
		audiences = append(audiences, "New talent discoverers")
	}
	if len(audiences) == 0 {
		audiences = append(audiences, "General audiences")
	}
	return audiences
}
