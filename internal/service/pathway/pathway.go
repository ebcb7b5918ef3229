// Package pathway combines the quality and market scores into five
// candidate distribution pathway scores and picks the best one.
//
// This is a pure scoring function with a deterministic argmax: ties break
// toward the earlier pathway in model.PathwayOrder.
package pathway

import (
	"fmt"

	"github.com/screenroute-ai/screenroute/internal/catalog"
	"github.com/screenroute-ai/screenroute/internal/model"
)

// AgentName identifies the router in audit logs.
const AgentName = "Opportunity Routing Agent"

// Router computes pathway decisions.
type Router struct {
	themes catalog.Themes
}

// New creates a pathway Router bound to the given catalog.
func New(c *catalog.Catalog) *Router {
	return &Router{themes: c.Themes}
}

// Route scores the five pathways and selects the primary one.
//
// Gating rules:
//   - FESTIVAL requires quality >= 6.5; +1 when at least five festival
//     matches were found
//   - STREAMING is always computable (no gate)
//   - THEATRICAL requires quality >= 8.0, market >= 7.5 and a runtime of
//     at least 70 minutes
//   - BRAND_PARTNERSHIP requires an impact-theme overlap
//   - EDUCATIONAL requires a Documentary genre or an edu-theme overlap
func (r *Router) Route(quality, market model.Assessment, film model.Film, report model.FestivalReport, distributors []model.DistributorMatch) model.RoutingDecision {
	q, m := quality.Score, market.Score

	scores := make(map[model.Pathway]float64, len(model.PathwayOrder))

	festivalScore := 0.0
	if q >= 6.5 {
		festivalScore = q*0.7 + m*0.3
		if len(report.Matches) >= 5 {
			festivalScore++
		}
	}
	scores[model.PathwayFestival] = festivalScore

	scores[model.PathwayStreaming] = m*0.6 + q*0.4

	theatricalScore := 0.0
	if q >= 8.0 && m >= 7.5 && film.DurationMinutes >= 70 {
		theatricalScore = (q + m) / 2
	}
	scores[model.PathwayTheatrical] = theatricalScore

	brandScore := 0.0
	if film.HasAnyTheme(r.themes.ImpactThemes) {
		brandScore = q*0.5 + m*0.5 + 2
	}
	scores[model.PathwayBrandPartnership] = brandScore

	eduScore := 0.0
	if film.Genre == "Documentary" || film.HasAnyTheme(r.themes.EduThemes) {
		eduScore = q*0.6 + m*0.4 + 1
	}
	scores[model.PathwayEducational] = eduScore

	// First-encountered max in the fixed enumeration order wins ties.
	primary := model.PathwayOrder[0]
	best := scores[primary]
	for _, p := range model.PathwayOrder[1:] {
		if scores[p] > best {
			primary, best = p, scores[p]
		}
	}

	confidence := 0.6
	if diff := q - m; diff < 1.5 && diff > -1.5 {
		confidence += 0.2
	}
	if best > 7 {
		confidence += 0.1
	}

	return model.RoutingDecision{
		PrimaryPathway: primary,
		PathwayScores:  scores,
		Confidence:     model.ClampConfidence(confidence),
		NextSteps:      nextSteps(primary, report, distributors),
	}
}

// nextSteps is a fixed checklist per pathway, with the best festival or
// distributor name substituted in when one was matched.
func nextSteps(p model.Pathway, report model.FestivalReport, distributors []model.DistributorMatch) []string {
	var steps []string
	switch p {
	case model.PathwayFestival:
		if len(report.Tier1Options) > 0 {
			steps = append(steps, fmt.Sprintf("Submit to %s", report.Tier1Options[0].Name))
		}
		steps = append(steps, "Prepare press kit", "Create festival trailer")
	case model.PathwayStreaming:
		if len(distributors) > 0 {
			steps = append(steps, fmt.Sprintf("Contact %s", distributors[0].Name))
		}
		steps = append(steps, "Prepare platform deliverables", "Create marketing pack")
	case model.PathwayTheatrical:
		steps = append(steps, "Engage theatrical sales agent", "Prepare DCP", "Plan premiere")
	case model.PathwayBrandPartnership:
		steps = append(steps, "Identify aligned brands", "Prepare impact metrics", "Create pitch deck")
	default:
		steps = append(steps, "Contact educational distributors", "Prepare study guide")
	}
	return steps
}
