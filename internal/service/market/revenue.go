package market

import (
	"github.com/screenroute-ai/screenroute/internal/catalog"
	"github.com/screenroute-ai/screenroute/internal/model"
)

// EstimateRevenue projects a GBP value range for the film.
//
// base = genre average value x duration multiplier x score multiplier,
// where the score multiplier normalizes the combined quality/market score
// against 7 ("average"). The channel breakdown splits the base 30/50/15/5
// across festival, streaming, educational and other revenue; the range is
// 0.6x to 1.5x. Everything is rounded to the nearest 100.
func (a *Analyzer) EstimateRevenue(film model.Film, marketScore, qualityScore float64) model.RevenueEstimate {
	trend := a.cat.Trend(film.GenreOrDefault(catalog.GeneralGenre))

	var durationMultiplier float64
	switch d := film.DurationMinutes; {
	case d <= 15:
		durationMultiplier = 0.15
	case d <= 30:
		durationMultiplier = 0.25
	case d <= 60:
		durationMultiplier = 0.5
	default:
		durationMultiplier = 1.0
	}

	scoreMultiplier := ((qualityScore + marketScore) / 2) / 7
	base := trend.AvgValue * durationMultiplier * scoreMultiplier

	return model.RevenueEstimate{
		TotalEstimate: model.RoundTo100(base),
		LowEstimate:   model.RoundTo100(base * 0.6),
		HighEstimate:  model.RoundTo100(base * 1.5),
		Breakdown: model.RevenueBreakdown{
			FestivalCircuit:      model.RoundTo100(base * 0.3),
			StreamingRights:      model.RoundTo100(base * 0.5),
			EducationalLicensing: model.RoundTo100(base * 0.15),
			Other:                model.RoundTo100(base * 0.05),
		},
		Currency: "GBP",
	}
}
