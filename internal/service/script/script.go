// Package script scores a screenplay before production: structure and
// visual markers, keyword-detected genre, trending themes and a set of
// jittered craft axes roll up into bucketed success predictions.
package script

import (
	"math"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/screenroute-ai/screenroute/internal/catalog"
	"github.com/screenroute-ai/screenroute/internal/model"
)

// AgentName identifies this analyzer in its assessments.
const AgentName = "Script Analysis Agent"

// DefaultTitle is used when the submission carries no title.
const DefaultTitle = "Untitled Screenplay"

// wordsPerPage is the industry rule of thumb for screenplay length;
// one estimated page reads as one minute of runtime.
const wordsPerPage = 250

// Axis weights for the overall score.
const (
	weightStructure     = 0.20
	weightDialogue      = 0.20
	weightVisual        = 0.15
	weightOriginality   = 0.15
	weightMarketability = 0.20
	weightPacing        = 0.10
)

// Analyzer computes screenplay assessments against the script catalog.
type Analyzer struct {
	rules catalog.Script
	rng   *rand.Rand
}

// New creates a script Analyzer. A nil rng falls back to a time-seeded
// source.
func New(c *catalog.Catalog, rng *rand.Rand) *Analyzer {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Analyzer{rules: c.Script, rng: rng}
}

// Analyze scores a screenplay. The caller guarantees non-empty text.
//
// The structure score is deterministic: 5.0 plus 0.8 per structure
// marker found. Dialogue, visual storytelling, originality,
// marketability and pacing carry bounded jitter. All axes cap at 10.
func (a *Analyzer) Analyze(sub model.ScriptSubmission) model.ScriptAssessment {
	title := sub.Title
	if strings.TrimSpace(title) == "" {
		title = DefaultTitle
	}

	lower := strings.ToLower(sub.Text)
	wordCount := len(strings.Fields(sub.Text))
	pages := float64(wordCount) / wordsPerPage
	sceneCount := strings.Count(lower, "int.") + strings.Count(lower, "ext.")
	hasHeaders := strings.Contains(lower, "int.") || strings.Contains(lower, "ext.")

	structure := 5.0 + 0.8*float64(countMarkers(lower, a.rules.StructureMarkers))

	dialogue := 5.5 + a.uniform(2.5)
	if strings.Contains(sub.Text, "...") {
		dialogue += 0.5
	}

	visual := 5.0 + 0.7*float64(countMarkers(lower, a.rules.VisualMarkers))
	if hasHeaders {
		visual += 1.0
	}
	visual += a.uniform(1)

	genre := a.detectGenre(lower)

	var themesFound []string
	for _, theme := range a.rules.TrendingThemes {
		if strings.Contains(lower, theme) {
			themesFound = append(themesFound, theme)
		}
	}

	marketability := 5.5 + 0.3*float64(len(themesFound)) + a.uniform(1.5)
	for _, g := range a.rules.MarketableGenres {
		if genre == g {
			marketability += 1.5
			break
		}
	}

	scores := model.ScriptScores{
		Structure:          model.Round1(min(10, structure)),
		Dialogue:           model.Round1(min(10, dialogue)),
		VisualStorytelling: model.Round1(min(10, visual)),
		Originality:        model.Round1(min(10, 6.0+a.uniform(2.5))),
		Marketability:      model.Round1(min(10, marketability)),
		Pacing:             model.Round1(min(10, 6.0+a.uniform(2.5))),
	}

	overall := scores.Structure*weightStructure +
		scores.Dialogue*weightDialogue +
		scores.VisualStorytelling*weightVisual +
		scores.Originality*weightOriginality +
		scores.Marketability*weightMarketability +
		scores.Pacing*weightPacing

	strengths, weaknesses := axisFeedback(scores)

	if len(themesFound) > 5 {
		themesFound = themesFound[:5]
	}

	return model.ScriptAssessment{
		Agent: AgentName,
		Title: title,
		Metrics: model.ScriptMetrics{
			WordCount:               wordCount,
			EstimatedPages:          int(math.Round(pages)),
			EstimatedRuntimeMinutes: int(pages),
			SceneCount:              sceneCount,
			DetectedGenre:           genre,
			ThemesFound:             themesFound,
		},
		Scores:       scores,
		OverallScore: model.Round1(overall),
		Confidence:   model.Round2(0.65 + a.uniform(0.25)),
		Predictions:  predictions(overall),
		Strengths:    strengths,
		Weaknesses:   weaknesses,
		Timestamp:    time.Now().UTC(),
	}
}

func (a *Analyzer) uniform(max float64) float64 {
	return a.rng.Float64() * max
}

func countMarkers(lower string, markers []string) int {
	n := 0
	for _, m := range markers {
		if strings.Contains(lower, m) {
			n++
		}
	}
	return n
}

// detectGenre returns the genre with the most keyword hits; ties,
// including all-zero scripts, resolve to the earliest table row.
func (a *Analyzer) detectGenre(lower string) string {
	best := a.rules.GenreKeywords[0].Name
	bestHits := -1
	for _, g := range a.rules.GenreKeywords {
		hits := 0
		for _, kw := range g.Keywords {
			if strings.Contains(lower, kw) {
				hits++
			}
		}
		if hits > bestHits {
			best, bestHits = g.Name, hits
		}
	}
	return best
}

// predictions maps the overall score onto the success buckets. Each is
// a linear ramp around overall 5.0, clamped to its floor and ceiling.
func predictions(overall float64) model.ScriptPredictions {
	ramp := func(base, slope, floor, ceiling int) int {
		v := int(float64(base) + (overall-5)*float64(slope))
		return max(floor, min(ceiling, v))
	}
	return model.ScriptPredictions{
		FestivalInterest:      ramp(40, 10, 10, 95),
		ProductionLikelihood:  ramp(30, 8, 15, 90),
		DistributionPotential: ramp(25, 7, 10, 85),
		AwardPotential:        ramp(10, 5, 5, 50),
		InvestorAppeal:        ramp(30, 9, 15, 80),
	}
}

// axisFeedback derives display strengths (axis >= 7) and weaknesses
// (axis < 6), with fallbacks so neither list is empty.
func axisFeedback(s model.ScriptScores) (strengths, weaknesses []string) {
	axes := []struct {
		name  string
		value float64
	}{
		{"structure", s.Structure},
		{"dialogue", s.Dialogue},
		{"visual_storytelling", s.VisualStorytelling},
		{"originality", s.Originality},
		{"marketability", s.Marketability},
		{"pacing", s.Pacing},
	}
	for _, ax := range axes {
		if ax.value >= 7 {
			strengths = append(strengths, model.TitleWords(ax.name))
		}
		if ax.value < 6 {
			weaknesses = append(weaknesses, model.TitleWords(ax.name))
		}
	}
	if len(strengths) == 0 {
		strengths = []string{"Solid foundation"}
	}
	if len(weaknesses) == 0 {
		weaknesses = []string{"Minor polish needed"}
	}
	return strengths, weaknesses
}
