package model

import "math"

// ClampScore clamps an agent score into [1.0, 10.0] and rounds it to one
// decimal. All agent scores pass through this before leaving an Assessment.
func ClampScore(v float64) float64 {
	v = math.Max(1.0, math.Min(10.0, v))
	return math.Round(v*10) / 10
}

// ClampConfidence clamps a confidence value into [0, 0.95] and rounds to
// two decimals.
func ClampConfidence(v float64) float64 {
	v = math.Max(0, math.Min(0.95, v))
	return math.Round(v*100) / 100
}

// Round1 rounds to one decimal place.
func Round1(v float64) float64 { return math.Round(v*10) / 10 }

// Round2 rounds to two decimal places.
func Round2(v float64) float64 { return math.Round(v*100) / 100 }

// RoundTo100 rounds to the nearest 100, matching revenue presentation.
func RoundTo100(v float64) float64 { return math.Round(v/100) * 100 }
