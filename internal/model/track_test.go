package model

import "testing"

func TestValidateTrack(t *testing.T) {
	if err := ValidateTrack(Track{Title: "Glasswork", TempoBPM: 110, DurationSeconds: 240}); err != nil {
		t.Fatalf("valid track rejected: %v", err)
	}
	if err := ValidateTrack(Track{}); err != nil {
		t.Fatalf("empty track rejected: %v", err)
	}

	tests := []struct {
		name  string
		track Track
	}{
		{"negative tempo", Track{TempoBPM: -10}},
		{"absurd tempo", Track{TempoBPM: MaxTempoBPM + 1}},
		{"negative duration", Track{DurationSeconds: -1}},
		{"absurd duration", Track{DurationSeconds: MaxTrackLenSec + 1}},
		{"oversized title", Track{Title: string(make([]byte, MaxTitleLen+1))}},
		{"oversized artist", Track{Artist: string(make([]byte, MaxArtistLen+1))}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := ValidateTrack(tt.track); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}

func TestValidateScript(t *testing.T) {
	if err := ValidateScript(ScriptSubmission{Text: "INT. ROOM - DAY"}); err != nil {
		t.Fatalf("valid script rejected: %v", err)
	}

	tests := []struct {
		name string
		sub  ScriptSubmission
	}{
		{"missing text", ScriptSubmission{Title: "No Pages"}},
		{"blank text", ScriptSubmission{Text: "   \n  "}},
		{"oversized text", ScriptSubmission{Text: string(make([]byte, MaxScriptLen+1))}},
		{"oversized title", ScriptSubmission{Title: string(make([]byte, MaxTitleLen+1)), Text: "x"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := ValidateScript(tt.sub); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}

func TestFormatTrackDuration(t *testing.T) {
	cases := map[int]string{0: "0:00", 59: "0:59", 60: "1:00", 210: "3:30", 3601: "60:01"}
	for seconds, want := range cases {
		if got := FormatTrackDuration(seconds); got != want {
			t.Errorf("FormatTrackDuration(%d) = %s, want %s", seconds, got, want)
		}
	}
}

func TestTitleWords(t *testing.T) {
	cases := map[string]string{
		"sync_potential":      "Sync Potential",
		"production_quality":  "Production Quality",
		"visual_storytelling": "Visual Storytelling",
		"pacing":              "Pacing",
	}
	for in, want := range cases {
		if got := TitleWords(in); got != want {
			t.Errorf("TitleWords(%q) = %q, want %q", in, got, want)
		}
	}
}
