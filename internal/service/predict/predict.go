// Package predict estimates acceptance and breakout odds for a film on
// the basis of its combined quality and market scores.
//
// The ladders are coarse by design. Each band adds a small random offset
// so that repeated runs over similar films do not produce identical
// percentages; the rand source is injected so tests can seed it.
package predict

import (
	"math/rand/v2"

	"github.com/screenroute-ai/screenroute/internal/catalog"
	"github.com/screenroute-ai/screenroute/internal/model"
)

// Predictor computes success predictions.
type Predictor struct {
	themes catalog.Themes
	rng    *rand.Rand
}

// New creates a Predictor. A nil rng falls back to a time-seeded source.
func New(c *catalog.Catalog, rng *rand.Rand) *Predictor {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Predictor{themes: c.Themes, rng: rng}
}

// Predict builds a SuccessPrediction from the two assessment scores and
// the film's award history and themes.
func (p *Predictor) Predict(film model.Film, quality, market float64) model.SuccessPrediction {
	combined := (quality + market) / 2

	festival := p.festivalAcceptance(combined)
	switch film.AwardHistory() {
	case model.AwardWinner:
		festival = min(98, festival+15)
	case model.AwardOfficialSelection:
		festival = min(95, festival+10)
	}
	festival = min(98, festival)

	distribution := min(85, p.distributionDeal(combined))
	award := min(50, p.awardPotential(combined))
	viral := min(40, p.viralPotential(film))

	overall := min(95, (festival+distribution+award)/3)

	return model.SuccessPrediction{
		FestivalSelection: festival,
		DistributionDeal:  distribution,
		AwardNomination:   award,
		ViralPotential:    viral,
		OverallSuccess:    overall,
	}
}

func (p *Predictor) festivalAcceptance(combined float64) int {
	switch {
	case combined >= 8.5:
		return 85 + p.rng.IntN(11)
	case combined >= 7.5:
		return 65 + p.rng.IntN(16)
	case combined >= 6.5:
		return 45 + p.rng.IntN(16)
	case combined >= 5.5:
		return 25 + p.rng.IntN(16)
	default:
		return 10 + p.rng.IntN(11)
	}
}

func (p *Predictor) distributionDeal(combined float64) int {
	switch {
	case combined >= 8:
		return 55 + p.rng.IntN(16)
	case combined >= 7:
		return 35 + p.rng.IntN(16)
	case combined >= 6:
		return 20 + p.rng.IntN(11)
	default:
		return 5 + p.rng.IntN(11)
	}
}

func (p *Predictor) awardPotential(combined float64) int {
	switch {
	case combined >= 9:
		return 35 + p.rng.IntN(16)
	case combined >= 8:
		return 18 + p.rng.IntN(13)
	case combined >= 7:
		return 8 + p.rng.IntN(8)
	default:
		return 2 + p.rng.IntN(6)
	}
}

func (p *Predictor) viralPotential(film model.Film) int {
	if film.HasAnyTheme(p.themes.ViralThemes) {
		return 15 + p.rng.IntN(21)
	}
	return 5 + p.rng.IntN(11)
}
