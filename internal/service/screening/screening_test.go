package screening

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/screenroute-ai/screenroute/internal/model"
)

func cleanFilm() model.Film {
	return model.Film{
		Title:           "The Last Light",
		Genre:           "Drama",
		Country:         "USA",
		DurationMinutes: 90,
		Synopsis:        "A lighthouse keeper spends one final winter on the rock before automation arrives.",
	}
}

func TestScreenCleanSubmission(t *testing.T) {
	got := Screen(cleanFilm())

	require.True(t, got.Approved)
	require.Equal(t, 100, got.SafetyScore)
	require.Equal(t, "approved", got.Status)
	require.Empty(t, got.Issues)
	require.Empty(t, got.Warnings)
	require.Equal(t, "Proceed to analysis", got.Recommendation)
	require.False(t, got.CheckedAt.IsZero())
}

func TestScreenOffensiveContentBlocks(t *testing.T) {
	film := cleanFilm()
	film.Synopsis = "A town consumed by hate turns on its neighbours."

	got := Screen(film)
	require.False(t, got.Approved)
	require.Equal(t, "rejected", got.Status)
	require.Equal(t, 80, got.SafetyScore)
	require.Len(t, got.Issues, 1)
	require.Contains(t, got.Issues[0], "offensive")
	require.Equal(t, "Resolve the listed issues and resubmit for review", got.Recommendation)
}

func TestScreenSpamPatterns(t *testing.T) {
	film := cleanFilm()
	film.Title = "BUY NOW"

	got := Screen(film)
	require.False(t, got.Approved)
	require.Contains(t, got.Issues, "Spam pattern: promotional language")
	require.Contains(t, got.Warnings, "Title is mostly uppercase")
	require.Equal(t, 75, got.SafetyScore)

	film = cleanFilm()
	film.Synopsis = "Heeeeeeey, watch this one."
	got = Screen(film)
	require.Contains(t, got.Issues, "Spam pattern: excessive repeated characters")
}

func TestScreenContactDetailsWarnOnly(t *testing.T) {
	film := cleanFilm()
	film.Synopsis = "Press material at www.example.com, enquiries to team@example.com."

	got := Screen(film)
	require.True(t, got.Approved)
	require.Equal(t, 90, got.SafetyScore)
	require.Contains(t, got.Warnings, "Submission text contains a URL")
	require.Contains(t, got.Warnings, "Submission text contains an email address")
	require.Equal(t, "Proceed to analysis; review the listed warnings", got.Recommendation)
}

func TestScreenGenericTitleWarns(t *testing.T) {
	film := cleanFilm()
	film.Title = "Untitled"

	got := Screen(film)
	require.True(t, got.Approved)
	require.Contains(t, got.Warnings, "Title appears generic or placeholder")
}

func TestScreenMissingFields(t *testing.T) {
	got := Screen(model.Film{})

	require.False(t, got.Approved)
	require.Contains(t, got.Issues, "Missing required field: title")
	require.Contains(t, got.Issues, "Missing required field: duration_minutes")
	require.Contains(t, got.Issues, "Missing required field: country")
	require.Contains(t, got.Issues, "Missing required field: genre")
	require.Len(t, got.Issues, 4)
	require.Equal(t, 20, got.SafetyScore)
}

func TestScreenMissingCountryBlocks(t *testing.T) {
	film := cleanFilm()
	film.Country = ""

	got := Screen(film)
	require.False(t, got.Approved)
	require.Equal(t, "rejected", got.Status)
	require.Contains(t, got.Issues, "Missing required field: country")
	require.Equal(t, 80, got.SafetyScore)
}

func TestScreenTooShortText(t *testing.T) {
	film := cleanFilm()
	film.Title = "A"

	got := Screen(film)
	require.False(t, got.Approved)
	require.Contains(t, got.Issues, "Title is too short")

	film = cleanFilm()
	film.Synopsis = "x"
	got = Screen(film)
	require.Contains(t, got.Issues, "Synopsis is too short")
}

func TestScreenImplausibleDuration(t *testing.T) {
	film := cleanFilm()
	film.DurationMinutes = 700

	got := Screen(film)
	require.False(t, got.Approved)
	require.Contains(t, got.Issues, "Implausible duration: 700 minutes")
}

func TestScreenCopyrightMarkerWarnsOnce(t *testing.T) {
	film := cleanFilm()
	film.Synopsis = "Copyright notice appears over licensed footage in the opening."

	got := Screen(film)
	require.True(t, got.Approved)
	count := 0
	for _, w := range got.Warnings {
		if w == `Possible copyright concern: "copyright"` {
			count++
		}
	}
	require.Equal(t, 1, count)
	require.Len(t, got.Warnings, 1)
}
