package market

import (
	"fmt"
	"sort"

	"github.com/screenroute-ai/screenroute/internal/catalog"
	"github.com/screenroute-ai/screenroute/internal/model"
)

// maxDistributorMatches caps the returned list.
const maxDistributorMatches = 5

// DistributorMatches finds distributors whose bucket, minimum score and
// genre focus fit the film.
//
// Bucket selection: duration <= 40 minutes is SHORT_FILM; otherwise a
// Documentary genre picks DOCUMENTARY; everything else is FEATURE. Films
// touching the impact themes additionally match the BRAND_PARTNERSHIP
// bucket (additive, with a +10 alignment bonus), so a social-impact short
// can surface both kinds of distributor.
func (a *Analyzer) DistributorMatches(film model.Film, marketScore float64, genre string) []model.DistributorMatch {
	var matches []model.DistributorMatch

	if film.HasAnyTheme(a.cat.Themes.DistributorImpactThemes) {
		for _, d := range a.cat.Distributors[catalog.BucketBrandPartnership] {
			if marketScore < d.MinScore {
				continue
			}
			matches = append(matches, model.DistributorMatch{
				Name:        d.Name,
				MatchScore:  min(100, int(marketScore/10*100)+10),
				Territories: d.Territories,
				Reason:      "Social impact alignment",
			})
		}
	}

	bucket := catalog.BucketFeature
	switch {
	case film.IsShort():
		bucket = catalog.BucketShortFilm
	case genre == "Documentary" || containsGenre(film.AllGenres(), "Documentary"):
		bucket = catalog.BucketDocumentary
	}

	for _, d := range a.cat.Distributors[bucket] {
		if marketScore < d.MinScore {
			continue
		}
		if !focusMatches(d.Focus, genre) {
			continue
		}
		matches = append(matches, model.DistributorMatch{
			Name:        d.Name,
			MatchScore:  min(100, int(marketScore/10*100)),
			Territories: d.Territories,
			Reason:      fmt.Sprintf("Good fit for %s content", genre),
		})
	}

	// Stable sort keeps catalog order among equal scores.
	sortMatchesDesc(matches)
	if len(matches) > maxDistributorMatches {
		matches = matches[:maxDistributorMatches]
	}
	return matches
}

func focusMatches(focus []string, genre string) bool {
	for _, f := range focus {
		if f == "All genres" || f == genre {
			return true
		}
	}
	return false
}

func containsGenre(genres []string, want string) bool {
	for _, g := range genres {
		if g == want {
			return true
		}
	}
	return false
}

func sortMatchesDesc(matches []model.DistributorMatch) {
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].MatchScore > matches[j].MatchScore
	})
}
