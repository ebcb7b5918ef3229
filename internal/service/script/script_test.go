package script

import (
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/screenroute-ai/screenroute/internal/catalog"
	"github.com/screenroute-ai/screenroute/internal/model"
)

func newAnalyzer(t *testing.T, seed uint64) *Analyzer {
	t.Helper()
	c, err := catalog.Load()
	require.NoError(t, err)
	return New(c, rand.New(rand.NewPCG(seed, 0)))
}

func TestAnalyzeStructureScoreIsDeterministic(t *testing.T) {
	a := newAnalyzer(t, 1)

	// No markers: base 5.0.
	got := a.Analyze(model.ScriptSubmission{Text: "Two friends argue about nothing in particular."})
	require.Equal(t, 5.0, got.Scores.Structure)

	// Three of the four markers: 5.0 + 3*0.8.
	text := "ACT ONE opens. At the MIDPOINT everything turns. ACT THREE closes it out."
	got = a.Analyze(model.ScriptSubmission{Text: text})
	require.Equal(t, 7.4, got.Scores.Structure)
}

func TestAnalyzeMetrics(t *testing.T) {
	a := newAnalyzer(t, 2)

	text := strings.Repeat("word ", 500) +
		"INT. KITCHEN - DAY something happens. EXT. GARDEN - DUSK it ends."
	got := a.Analyze(model.ScriptSubmission{Title: "Two Rooms", Text: text})

	require.Equal(t, "Two Rooms", got.Title)
	require.Equal(t, 512, got.Metrics.WordCount)
	require.Equal(t, 2, got.Metrics.EstimatedPages)
	require.Equal(t, 2, got.Metrics.EstimatedRuntimeMinutes)
	require.Equal(t, 2, got.Metrics.SceneCount)
}

func TestAnalyzeDetectedGenre(t *testing.T) {
	a := newAnalyzer(t, 3)

	cases := []struct {
		text string
		want string
	}{
		{"A chase, an escape, the danger and suspense of an unsolved mystery.", "Thriller"},
		{"An explosion, then a fight; she grabs the gun before the battle.", "Action"},
		{"They travel through space to a future of technology and alien robots.", "Sci-Fi"},
		// No keyword hits anywhere resolve to the first table row.
		{"Quiet mornings. Coffee. Nothing else.", "Horror"},
	}
	for _, tc := range cases {
		got := a.Analyze(model.ScriptSubmission{Text: tc.text})
		require.Equal(t, tc.want, got.Metrics.DetectedGenre, tc.text)
	}
}

func TestAnalyzeThemesCapAtFive(t *testing.T) {
	a := newAnalyzer(t, 4)

	text := "redemption identity family survival justice love sacrifice revenge"
	got := a.Analyze(model.ScriptSubmission{Text: text})
	require.Len(t, got.Metrics.ThemesFound, 5)
	require.Equal(t, []string{"redemption", "identity", "family", "survival", "justice"}, got.Metrics.ThemesFound)
}

func TestAnalyzeScoreBands(t *testing.T) {
	a := newAnalyzer(t, 5)

	text := "INT. HALLWAY - NIGHT. CLOSE ON a door... A chase and an escape, full of suspense and mystery."
	for range 50 {
		got := a.Analyze(model.ScriptSubmission{Text: text})

		// 5.5 base, +0.5 for ellipses, up to 2.5 jitter.
		require.GreaterOrEqual(t, got.Scores.Dialogue, 6.0)
		require.LessOrEqual(t, got.Scores.Dialogue, 8.5)

		// 5.0 base, one visual marker, scene headers present, up to 1 jitter.
		require.GreaterOrEqual(t, got.Scores.VisualStorytelling, 6.7)
		require.LessOrEqual(t, got.Scores.VisualStorytelling, 7.7)

		require.GreaterOrEqual(t, got.Scores.Originality, 6.0)
		require.LessOrEqual(t, got.Scores.Originality, 8.5)
		require.GreaterOrEqual(t, got.Scores.Pacing, 6.0)
		require.LessOrEqual(t, got.Scores.Pacing, 8.5)

		// 5.5 base, Thriller bonus, up to 1.5 jitter.
		require.GreaterOrEqual(t, got.Scores.Marketability, 7.0)
		require.LessOrEqual(t, got.Scores.Marketability, 8.5)

		require.GreaterOrEqual(t, got.Confidence, 0.65)
		require.LessOrEqual(t, got.Confidence, 0.90)
	}
}

func TestAnalyzePredictionsTrackOverall(t *testing.T) {
	a := newAnalyzer(t, 6)

	text := "ACT ONE. INT. BARN - DAY. A family struggles... ACT TWO. MIDPOINT. ACT THREE. MONTAGE of redemption."
	for range 50 {
		got := a.Analyze(model.ScriptSubmission{Text: text})

		// Predictions ramp off the unrounded weighted sum, which the
		// reported one-decimal overall can cross at a boundary.
		s := got.Scores
		overall := s.Structure*weightStructure +
			s.Dialogue*weightDialogue +
			s.VisualStorytelling*weightVisual +
			s.Originality*weightOriginality +
			s.Marketability*weightMarketability +
			s.Pacing*weightPacing

		require.Equal(t, max(10, min(95, int(40+(overall-5)*10))), got.Predictions.FestivalInterest)
		require.Equal(t, max(15, min(90, int(30+(overall-5)*8))), got.Predictions.ProductionLikelihood)
		require.Equal(t, max(10, min(85, int(25+(overall-5)*7))), got.Predictions.DistributionPotential)
		require.Equal(t, max(5, min(50, int(10+(overall-5)*5))), got.Predictions.AwardPotential)
		require.Equal(t, max(15, min(80, int(30+(overall-5)*9))), got.Predictions.InvestorAppeal)
	}
}

func TestAnalyzeFeedbackFallbacks(t *testing.T) {
	a := newAnalyzer(t, 7)

	for range 50 {
		got := a.Analyze(model.ScriptSubmission{Text: "A short exchange in a corridor."})
		require.NotEmpty(t, got.Strengths)
		require.NotEmpty(t, got.Weaknesses)
	}
}

func TestAnalyzeUntitledDefault(t *testing.T) {
	a := newAnalyzer(t, 8)

	got := a.Analyze(model.ScriptSubmission{Text: "Something happens."})
	require.Equal(t, AgentName, got.Agent)
	require.Equal(t, "Untitled Screenplay", got.Title)
}

func TestAnalyzeSeededSequenceIsReproducible(t *testing.T) {
	sub := model.ScriptSubmission{Title: "Replay", Text: "INT. ROOM - DAY. A chase begins."}

	a := newAnalyzer(t, 9)
	b := newAnalyzer(t, 9)
	for range 10 {
		x, y := a.Analyze(sub), b.Analyze(sub)
		y.Timestamp = x.Timestamp
		require.Equal(t, x, y)
	}
}
