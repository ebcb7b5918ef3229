package model

import "testing"

func TestClampScore(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{12.3, 10.0},
		{-4, 1.0},
		{0.2, 1.0},
		{7.44, 7.4},
		{7.46, 7.5},
		{10.0, 10.0},
		{1.0, 1.0},
	}
	for _, tt := range tests {
		if got := ClampScore(tt.in); got != tt.want {
			t.Errorf("ClampScore(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestClampConfidenceCeiling(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{1.2, 0.95},
		{0.95, 0.95},
		{0.951, 0.95},
		{-0.1, 0},
		{0.666, 0.67},
	}
	for _, tt := range tests {
		if got := ClampConfidence(tt.in); got != tt.want {
			t.Errorf("ClampConfidence(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestRoundTo100(t *testing.T) {
	if got := RoundTo100(12349); got != 12300 {
		t.Errorf("RoundTo100(12349) = %v, want 12300", got)
	}
	if got := RoundTo100(12350); got != 12400 {
		t.Errorf("RoundTo100(12350) = %v, want 12400", got)
	}
}
