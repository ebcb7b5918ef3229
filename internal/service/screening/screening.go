// Package screening runs automated content checks over an incoming
// submission before it enters the scoring pipeline.
//
// Checks fall into two severities: issues block approval, warnings only
// lower the safety score. The safety score starts at 100 and loses 20
// points per issue and 5 per warning.
package screening

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/screenroute-ai/screenroute/internal/model"
)

// AgentName identifies the screener in audit logs.
const AgentName = "Content Screening Agent"

var offensiveTerms = []string{
	"hate", "nazi", "terrorist", "kill all", "death to",
	"racial slur", "ethnic slur",
}

var (
	repeatedChars = regexp.MustCompile(`(.)\1{5,}`)
	spamPhrases   = regexp.MustCompile(`(?i)(buy now|click here|free money|act now)`)
	shoutingRuns  = regexp.MustCompile(`[A-Z]{10,}`)
	urlPattern    = regexp.MustCompile(`https?://\S+|www\.\S+`)
	emailPattern  = regexp.MustCompile(`\b[\w.+-]+@[\w-]+\.[\w.]+\b`)
)

var copyrightMarkers = []string{
	"copyright", "(c)", "©", "all rights reserved", "licensed footage",
}

var genericTitles = []string{
	"untitled", "test", "my film", "film", "movie", "draft",
}

const (
	minDurationMinutes = 1
	maxDurationMinutes = 600
	maxCapsRatio       = 0.7
	minSafetyScore     = 50
)

// Screen checks the submission and returns a ScreeningResult. The film
// is approved when no blocking issue was found and the safety score is
// at least 50.
func Screen(film model.Film) model.ScreeningResult {
	var issues, warnings []string

	text := strings.ToLower(strings.Join([]string{
		film.Title, film.Synopsis, strings.Join(film.Themes, " "),
	}, " "))

	for _, term := range offensiveTerms {
		if strings.Contains(text, term) {
			issues = append(issues, fmt.Sprintf("Potentially offensive content: %q", term))
		}
	}

	combined := film.Title + " " + film.Synopsis
	if repeatedChars.MatchString(combined) {
		issues = append(issues, "Spam pattern: excessive repeated characters")
	}
	if spamPhrases.MatchString(combined) {
		issues = append(issues, "Spam pattern: promotional language")
	}
	if shoutingRuns.MatchString(combined) {
		warnings = append(warnings, "Spam pattern: long all-caps run")
	}
	if urlPattern.MatchString(combined) {
		warnings = append(warnings, "Submission text contains a URL")
	}
	if emailPattern.MatchString(combined) {
		warnings = append(warnings, "Submission text contains an email address")
	}

	for _, marker := range copyrightMarkers {
		if strings.Contains(text, marker) {
			warnings = append(warnings, fmt.Sprintf("Possible copyright concern: %q", marker))
			break
		}
	}

	title := strings.TrimSpace(film.Title)
	if title == "" {
		issues = append(issues, "Missing required field: title")
	} else if len([]rune(title)) < 2 {
		issues = append(issues, "Title is too short")
	}
	if synopsis := strings.TrimSpace(film.Synopsis); synopsis != "" && len([]rune(synopsis)) < 2 {
		issues = append(issues, "Synopsis is too short")
	}
	if film.DurationMinutes == 0 {
		issues = append(issues, "Missing required field: duration_minutes")
	}
	if strings.TrimSpace(film.Country) == "" {
		issues = append(issues, "Missing required field: country")
	}
	if strings.TrimSpace(film.Genre) == "" && len(film.Genres) == 0 {
		issues = append(issues, "Missing required field: genre")
	}

	lowerTitle := strings.ToLower(title)
	for _, g := range genericTitles {
		if lowerTitle == g {
			warnings = append(warnings, "Title appears generic or placeholder")
			break
		}
	}
	if ratio := capsRatio(film.Title); ratio > maxCapsRatio {
		warnings = append(warnings, "Title is mostly uppercase")
	}

	if film.DurationMinutes != 0 &&
		(film.DurationMinutes < minDurationMinutes || film.DurationMinutes > maxDurationMinutes) {
		issues = append(issues, fmt.Sprintf("Implausible duration: %d minutes", film.DurationMinutes))
	}

	safety := 100 - 20*len(issues) - 5*len(warnings)
	if safety < 0 {
		safety = 0
	}

	approved := len(issues) == 0 && safety >= minSafetyScore

	return model.ScreeningResult{
		Approved:       approved,
		SafetyScore:    safety,
		Status:         status(approved),
		Issues:         issues,
		Warnings:       warnings,
		Recommendation: recommendation(approved, warnings),
		CheckedAt:      time.Now().UTC(),
	}
}

func status(approved bool) string {
	if approved {
		return "approved"
	}
	return "rejected"
}

func recommendation(approved bool, warnings []string) string {
	switch {
	case !approved:
		return "Resolve the listed issues and resubmit for review"
	case len(warnings) > 0:
		return "Proceed to analysis; review the listed warnings"
	default:
		return "Proceed to analysis"
	}
}

// capsRatio reports the share of letters in s that are uppercase.
func capsRatio(s string) float64 {
	var letters, upper int
	for _, r := range s {
		switch {
		case r >= 'A' && r <= 'Z':
			letters++
			upper++
		case r >= 'a' && r <= 'z':
			letters++
		}
	}
	if letters == 0 {
		return 0
	}
	return float64(upper) / float64(letters)
}
