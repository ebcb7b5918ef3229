// Package catalog loads the static reference data the scoring agents run
// against: the festival catalog, distributor buckets, genre trend table,
// territory accessibility table, the music and screenplay rule tables
// and the shared theme lists.
//
// Catalogs are compiled into the binary, parsed once at startup and treated
// as immutable configuration. A malformed catalog is a fatal startup error,
// never a per-request one.
package catalog

import (
	"embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed data/*.yaml
var dataFS embed.FS

// Festival is one entry in the festival catalog.
type Festival struct {
	Name         string   `yaml:"name"`
	Country      string   `yaml:"country"`
	Tier         int      `yaml:"tier"`
	Genres       []string `yaml:"genres"`
	DurationPref string   `yaml:"duration_pref"` // "short", "feature" or "both"
	MinScore     float64  `yaml:"min_score"`
	Prestige     int      `yaml:"prestige"`
}

// Distributor is one entry in a distributor bucket.
type Distributor struct {
	Name        string   `yaml:"name"`
	Territories []string `yaml:"territories"`
	Focus       []string `yaml:"focus"`
	MinScore    float64  `yaml:"min_score"`
}

// Distributor bucket names.
const (
	BucketShortFilm        = "SHORT_FILM"
	BucketFeature          = "FEATURE"
	BucketDocumentary      = "DOCUMENTARY"
	BucketBrandPartnership = "BRAND_PARTNERSHIP"
)

// GenreTrend is one row of the genre trend table.
type GenreTrend struct {
	Score     float64  `yaml:"score"` // 0..1, multiplied by 10 for the base market score
	Trend     string   `yaml:"trend"`
	Platforms []string `yaml:"platforms"`
	AvgValue  float64  `yaml:"avg_value"` // GBP
}

// Territory is one row of the territory accessibility table. The table is
// ordered; market scoring takes the first entry whose country is a
// substring of the film's country.
type Territory struct {
	Country       string  `yaml:"country"`
	Accessibility float64 `yaml:"accessibility"`
}

// MusicGenre is one row of the music genre table.
type MusicGenre struct {
	FilmFit      []string `yaml:"film_fit"`
	LicenseValue string   `yaml:"license_value"` // "high", "medium" or "low"
}

// Music holds the rule tables for the music analyzer. Mood lists are
// keyed by tempo band; scene types by detected mood.
type Music struct {
	Genres     map[string]MusicGenre `yaml:"genres"`
	SlowMoods  []string              `yaml:"slow_moods"`
	MidMoods   []string              `yaml:"mid_moods"`
	FastMoods  []string              `yaml:"fast_moods"`
	SceneTypes map[string][]string   `yaml:"scene_types"`
}

// Genre looks up a music genre row, falling back to a general-fit
// medium-value row for unknown genres.
func (m Music) Genre(name string) MusicGenre {
	if g, ok := m.Genres[name]; ok {
		return g
	}
	return MusicGenre{FilmFit: []string{"general"}, LicenseValue: "medium"}
}

// ScriptGenre is one row of the screenplay genre keyword table. The
// table is ordered; ties on keyword hits go to the earlier row.
type ScriptGenre struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
}

// Script holds the marker and keyword tables for screenplay analysis.
// All entries are lower case and matched against lower-cased text.
type Script struct {
	StructureMarkers []string      `yaml:"structure_markers"`
	VisualMarkers    []string      `yaml:"visual_markers"`
	GenreKeywords    []ScriptGenre `yaml:"genre_keywords"`
	MarketableGenres []string      `yaml:"marketable_genres"`
	TrendingThemes   []string      `yaml:"trending_themes"`
}

// Themes holds the fixed theme and country lists shared by the agents.
type Themes struct {
	StrongCountries         []string `yaml:"strong_countries"`
	TrendingThemes          []string `yaml:"trending_themes"`
	QualityGenres           []string `yaml:"quality_genres"`
	ImpactThemes            []string `yaml:"impact_themes"`
	DistributorImpactThemes []string `yaml:"distributor_impact_themes"`
	EduThemes               []string `yaml:"edu_themes"`
	ViralThemes             []string `yaml:"viral_themes"`
}

// Catalog is the full set of reference tables, loaded once and passed by
// reference into each agent constructor.
type Catalog struct {
	Festivals    []Festival
	Distributors map[string][]Distributor
	GenreTrends  map[string]GenreTrend
	Territories  []Territory
	Themes       Themes
	Music        Music
	Script       Script
}

// GeneralGenre is the genre trend fallback key. Load fails without it.
const GeneralGenre = "General"

type festivalsFile struct {
	Festivals []Festival `yaml:"festivals"`
}

type distributorsFile struct {
	Buckets map[string][]Distributor `yaml:"buckets"`
}

type marketFile struct {
	GenreTrends map[string]GenreTrend `yaml:"genre_trends"`
	Territories []Territory           `yaml:"territories"`
}

// Load parses and validates the embedded catalogs.
func Load() (*Catalog, error) {
	var ff festivalsFile
	if err := parse("data/festivals.yaml", &ff); err != nil {
		return nil, err
	}
	var df distributorsFile
	if err := parse("data/distributors.yaml", &df); err != nil {
		return nil, err
	}
	var mf marketFile
	if err := parse("data/market.yaml", &mf); err != nil {
		return nil, err
	}
	var th Themes
	if err := parse("data/themes.yaml", &th); err != nil {
		return nil, err
	}
	var mu Music
	if err := parse("data/music.yaml", &mu); err != nil {
		return nil, err
	}
	var sc Script
	if err := parse("data/script.yaml", &sc); err != nil {
		return nil, err
	}

	c := &Catalog{
		Festivals:    ff.Festivals,
		Distributors: df.Buckets,
		GenreTrends:  mf.GenreTrends,
		Territories:  mf.Territories,
		Themes:       th,
		Music:        mu,
		Script:       sc,
	}
	if err := c.validate(); err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}
	return c, nil
}

func parse(name string, target any) error {
	raw, err := dataFS.ReadFile(name)
	if err != nil {
		return fmt.Errorf("catalog: read %s: %w", name, err)
	}
	if err := yaml.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("catalog: parse %s: %w", name, err)
	}
	return nil
}

func (c *Catalog) validate() error {
	if len(c.Festivals) == 0 {
		return fmt.Errorf("festival catalog is empty")
	}
	for i, f := range c.Festivals {
		if f.Name == "" {
			return fmt.Errorf("festivals[%d]: missing name", i)
		}
		switch f.DurationPref {
		case "short", "feature", "both":
		default:
			return fmt.Errorf("festival %q: invalid duration_pref %q", f.Name, f.DurationPref)
		}
		if f.Tier < 1 || f.Tier > 3 {
			return fmt.Errorf("festival %q: tier %d outside 1..3", f.Name, f.Tier)
		}
		if f.MinScore < 0 || f.MinScore > 10 {
			return fmt.Errorf("festival %q: min_score %.1f outside 0..10", f.Name, f.MinScore)
		}
		if len(f.Genres) == 0 {
			return fmt.Errorf("festival %q: no genres", f.Name)
		}
	}

	for _, bucket := range []string{BucketShortFilm, BucketFeature, BucketDocumentary, BucketBrandPartnership} {
		if len(c.Distributors[bucket]) == 0 {
			return fmt.Errorf("distributor bucket %s is empty", bucket)
		}
	}
	for bucket, dists := range c.Distributors {
		for i, d := range dists {
			if d.Name == "" {
				return fmt.Errorf("distributors[%s][%d]: missing name", bucket, i)
			}
			if d.MinScore < 0 || d.MinScore > 10 {
				return fmt.Errorf("distributor %q: min_score %.1f outside 0..10", d.Name, d.MinScore)
			}
		}
	}

	if _, ok := c.GenreTrends[GeneralGenre]; !ok {
		return fmt.Errorf("genre trend table is missing the %q fallback", GeneralGenre)
	}
	for genre, t := range c.GenreTrends {
		if t.Score < 0 || t.Score > 1 {
			return fmt.Errorf("genre trend %q: score %.2f outside 0..1", genre, t.Score)
		}
		if t.AvgValue < 0 {
			return fmt.Errorf("genre trend %q: negative avg_value", genre)
		}
	}

	if len(c.Territories) == 0 {
		return fmt.Errorf("territory table is empty")
	}
	for i, t := range c.Territories {
		if t.Country == "" {
			return fmt.Errorf("territories[%d]: missing country", i)
		}
		if t.Accessibility < 0 || t.Accessibility > 1 {
			return fmt.Errorf("territory %q: accessibility %.2f outside 0..1", t.Country, t.Accessibility)
		}
	}

	if len(c.Themes.TrendingThemes) == 0 || len(c.Themes.StrongCountries) == 0 {
		return fmt.Errorf("theme lists are incomplete")
	}

	if len(c.Music.Genres) == 0 {
		return fmt.Errorf("music genre table is empty")
	}
	for name, g := range c.Music.Genres {
		switch g.LicenseValue {
		case "high", "medium", "low":
		default:
			return fmt.Errorf("music genre %q: invalid license_value %q", name, g.LicenseValue)
		}
		if len(g.FilmFit) == 0 {
			return fmt.Errorf("music genre %q: no film_fit entries", name)
		}
	}
	if len(c.Music.SlowMoods) == 0 || len(c.Music.MidMoods) == 0 || len(c.Music.FastMoods) == 0 {
		return fmt.Errorf("music mood lists are incomplete")
	}
	for mood, scenes := range c.Music.SceneTypes {
		if len(scenes) == 0 {
			return fmt.Errorf("music scene_types[%q] is empty", mood)
		}
	}

	if len(c.Script.GenreKeywords) == 0 {
		return fmt.Errorf("script genre keyword table is empty")
	}
	for i, g := range c.Script.GenreKeywords {
		if g.Name == "" {
			return fmt.Errorf("script genre_keywords[%d]: missing name", i)
		}
		if len(g.Keywords) == 0 {
			return fmt.Errorf("script genre %q: no keywords", g.Name)
		}
	}
	if len(c.Script.StructureMarkers) == 0 || len(c.Script.VisualMarkers) == 0 {
		return fmt.Errorf("script marker lists are incomplete")
	}
	if len(c.Script.TrendingThemes) == 0 {
		return fmt.Errorf("script trending theme list is empty")
	}
	return nil
}

// Trend looks up the trend row for genre, falling back to General.
func (c *Catalog) Trend(genre string) GenreTrend {
	if t, ok := c.GenreTrends[genre]; ok {
		return t
	}
	return c.GenreTrends[GeneralGenre]
}
