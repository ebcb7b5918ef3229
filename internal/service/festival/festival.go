// Package festival matches films against the static festival catalog and
// derives a tiered submission strategy.
package festival

import (
	"fmt"
	"sort"
	"strings"

	"github.com/screenroute-ai/screenroute/internal/catalog"
	"github.com/screenroute-ai/screenroute/internal/model"
)

// AgentName identifies this matcher in audit logs.
const AgentName = "Festival Matching Agent"

// maxMatches caps the ranked match list.
const maxMatches = 10

// acceptThreshold is the minimum base match score (before the quality
// term) a festival must reach to be included.
const acceptThreshold = 30

// Matcher scores films against the festival catalog.
type Matcher struct {
	festivals []catalog.Festival
}

// New creates a festival Matcher bound to the given catalog.
func New(c *catalog.Catalog) *Matcher {
	return &Matcher{festivals: c.Festivals}
}

// Match returns festivals fitting the film, ranked by match score
// descending and capped at 10. The catalog is scanned in its fixed order;
// a festival is rejected outright when the quality score is below its
// minimum (exclusive), when its duration preference mismatches the film's
// class, or when neither genre nor theme overlaps.
//
// Base scoring: open-to-all +15, genre overlap +25, theme overlap +20;
// prestige alignment +20 (quality >= 8 and prestige >= 8) or +15
// (quality >= 6 and prestige <= 7); home country +10. A festival needs a
// base of at least 30; the final score adds int(quality*3), capped at 100.
func (m *Matcher) Match(film model.Film, qualityScore float64) []model.FestivalMatch {
	genre := film.GenreOrDefault(catalog.GeneralGenre)
	genres := film.AllGenres()
	short := film.IsShort()

	var matches []model.FestivalMatch
	for _, f := range m.festivals {
		if qualityScore < f.MinScore {
			continue
		}
		if f.DurationPref != "both" {
			if (f.DurationPref == "short") != short {
				continue
			}
		}

		base := 0
		var reasons []string
		switch {
		case containsString(f.Genres, "All"):
			base += 15
			reasons = append(reasons, "Open to all genres")
		case containsString(f.Genres, genre) || overlaps(f.Genres, genres):
			base += 25
			reasons = append(reasons, fmt.Sprintf("Genre match: %s", genre))
		case overlaps(f.Genres, film.Themes):
			base += 20
			reasons = append(reasons, "Theme alignment")
		default:
			continue
		}

		if qualityScore >= 8 && f.Prestige >= 8 {
			base += 20
			reasons = append(reasons, "Prestige alignment")
		} else if qualityScore >= 6 && f.Prestige <= 7 {
			base += 15
			reasons = append(reasons, "Realistic prestige target")
		}

		if f.Country != "" && strings.Contains(film.Country, f.Country) {
			base += 10
			reasons = append(reasons, "Home country advantage")
		}

		if base < acceptThreshold {
			continue
		}

		matches = append(matches, model.FestivalMatch{
			Name:       f.Name,
			Country:    f.Country,
			Tier:       f.Tier,
			MatchScore: min(100, base+int(qualityScore*3)),
			Prestige:   f.Prestige,
			Reasons:    reasons,
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].MatchScore > matches[j].MatchScore
	})
	if len(matches) > maxMatches {
		matches = matches[:maxMatches]
	}
	return matches
}

// Analyze builds the full festival report: ranked matches, tier buckets
// and an "aim high / backup / guaranteed" strategy from the best match in
// each tier.
func (m *Matcher) Analyze(film model.Film, qualityScore float64) model.FestivalReport {
	matches := m.Match(film, qualityScore)

	report := model.FestivalReport{
		Matches:      matches,
		TotalMatches: len(matches),
	}
	for _, match := range matches {
		switch match.Tier {
		case 1:
			report.Tier1Options = append(report.Tier1Options, match)
		case 2:
			report.Tier2Options = append(report.Tier2Options, match)
		case 3:
			report.Tier3Options = append(report.Tier3Options, match)
		}
	}

	if len(report.Tier1Options) > 0 {
		report.Strategy = append(report.Strategy,
			fmt.Sprintf("Aim high: Submit to %s first", report.Tier1Options[0].Name))
	}
	if len(report.Tier2Options) > 0 {
		report.Strategy = append(report.Strategy,
			fmt.Sprintf("Strong backup: %s", report.Tier2Options[0].Name))
	}
	if len(report.Tier3Options) > 0 {
		report.Strategy = append(report.Strategy,
			fmt.Sprintf("Guaranteed exposure: %s", report.Tier3Options[0].Name))
	}
	return report
}

func containsString(list []string, want string) bool {
	for _, s := range list {
		if s == want {
			return true
		}
	}
	return false
}

func overlaps(a, b []string) bool {
	for _, x := range a {
		for _, y := range b {
			if x == y {
				return true
			}
		}
	}
	return false
}
