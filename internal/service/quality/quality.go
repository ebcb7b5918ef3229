// Package quality scores a film's creative quality on a 1-10 scale.
//
// The score is a weighted sum of the reviewer-supplied technical, narrative
// and originality components plus a set of predictive adjustments (duration
// sweet spots, origin country, trending themes, genre, first-time-filmmaker
// discovery bonus, award history). The assessor is a pure function of its
// input: identical films always produce identical assessments.
package quality

import (
	"fmt"
	"strings"
	"time"

	"github.com/screenroute-ai/screenroute/internal/catalog"
	"github.com/screenroute-ai/screenroute/internal/model"
)

// AgentName identifies this assessor in reasoning strings and audit logs.
const AgentName = "Quality Assessment Agent"

// Assessor computes quality assessments against a fixed catalog.
type Assessor struct {
	themes catalog.Themes
}

// New creates a quality Assessor bound to the given catalog.
func New(c *catalog.Catalog) *Assessor {
	return &Assessor{themes: c.Themes}
}

// Analyze scores a film. It never fails: missing fields take their
// documented defaults and the result is clamped into [1.0, 10.0].
//
// Adjustments, in order:
//   - duration in [5,20] or [75,120]: +0.5; duration > 120: -0.5
//     (first matching branch only)
//   - strong film-culture country (substring match): +0.3
//   - each trending theme: +0.4
//   - Documentary/Drama/Animation genre: +0.3
//   - first-time filmmaker: +0.2
//   - award history: Winner/Award +1.5, else Official Selection +0.8,
//     else Finalist +0.5
func (a *Assessor) Analyze(film model.Film) model.Assessment {
	technical := model.ComponentScore(film.TechnicalQuality)
	narrative := model.ComponentScore(film.NarrativeScore)
	originality := model.ComponentScore(film.OriginalityScore)

	score := technical*0.3 + narrative*0.4 + originality*0.3

	var adjustments []string

	duration := film.DurationMinutes
	switch {
	case duration >= 5 && duration <= 20:
		score += 0.5
		adjustments = append(adjustments, "Optimal short film duration")
	case duration >= 75 && duration <= 120:
		score += 0.5
		adjustments = append(adjustments, "Optimal feature length")
	case duration > 120:
		score -= 0.5
		adjustments = append(adjustments, "Consider tighter edit")
	}

	for _, c := range a.themes.StrongCountries {
		if strings.Contains(film.Country, c) {
			score += 0.3
			adjustments = append(adjustments, fmt.Sprintf("Strong film culture origin (%s)", film.Country))
			break
		}
	}

	if matching := film.MatchingThemes(a.themes.TrendingThemes); len(matching) > 0 {
		score += 0.4 * float64(len(matching))
		adjustments = append(adjustments, "Trending themes: "+strings.Join(matching, ", "))
	}

	for _, g := range a.themes.QualityGenres {
		if film.Genre == g {
			score += 0.3
			adjustments = append(adjustments, fmt.Sprintf("Strong festival genre (%s)", film.Genre))
			break
		}
	}

	if film.FirstTimeFilmmaker {
		score += 0.2
		adjustments = append(adjustments, "First-time filmmaker (discovery potential)")
	}

	switch film.AwardHistory() {
	case model.AwardWinner:
		score += 1.5
		adjustments = append(adjustments, "Award-winning track record")
	case model.AwardOfficialSelection:
		score += 0.8
		adjustments = append(adjustments, "Previous festival selections")
	case model.AwardFinalist:
		score += 0.5
		adjustments = append(adjustments, "Festival finalist history")
	}

	confidence := 0.65
	if len(film.Synopsis) > 100 {
		confidence += 0.10
	}
	if film.ScreeningsAwards != "" {
		confidence += 0.15
	}
	if duration > 0 {
		confidence += 0.05
	}

	strengths, improvements := componentFeedback(technical, narrative, originality)

	reasoning := fmt.Sprintf("Quality analysis for %q: ", film.Title)
	if len(strengths) > 0 {
		reasoning += "Strengths: " + strings.Join(strengths, ", ") + ". "
	}
	if len(improvements) > 0 {
		reasoning += "Areas for growth: " + strings.Join(improvements, ", ") + ". "
	}

	return model.Assessment{
		Agent:                 AgentName,
		Score:                 model.ClampScore(score),
		Confidence:            model.ClampConfidence(confidence),
		Reasoning:             reasoning,
		Strengths:             strengths,
		Improvements:          improvements,
		PredictiveAdjustments: adjustments,
		Breakdown: map[string]float64{
			"technical":   technical,
			"narrative":   narrative,
			"originality": originality,
		},
		Timestamp: time.Now().UTC(),
	}
}

// componentFeedback derives display-only strengths (component >= 7) and
// improvement suggestions (component < 5). Not used downstream.
func componentFeedback(technical, narrative, originality float64) (strengths, improvements []string) {
	if technical >= 7 {
		strengths = append(strengths, "Strong technical execution")
	} else if technical < 5 {
		improvements = append(improvements, "Technical quality could be enhanced")
	}
	if narrative >= 7 {
		strengths = append(strengths, "Compelling narrative structure")
	} else if narrative < 5 {
		improvements = append(improvements, "Narrative could be strengthened")
	}
	if originality >= 7 {
		strengths = append(strengths, "Fresh and original approach")
	} else if originality < 5 {
		improvements = append(improvements, "Consider more unique angle")
	}
	return strengths, improvements
}
