// Package consensus orchestrates the fixed analysis pipeline over one film
// and merges the agent outputs into a single Decision.
//
// Phases always run in the same order: quality, market, negotiation,
// festival matching, routing, prediction, comparison, final consensus.
// Phase boundaries are appended to the decision's audit log and logged
// via slog so a run can be reconstructed from either.
package consensus

import (
	"context"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/screenroute-ai/screenroute/internal/model"
	"github.com/screenroute-ai/screenroute/internal/service/compare"
	"github.com/screenroute-ai/screenroute/internal/service/festival"
	"github.com/screenroute-ai/screenroute/internal/service/market"
	"github.com/screenroute-ai/screenroute/internal/service/pathway"
	"github.com/screenroute-ai/screenroute/internal/service/predict"
	"github.com/screenroute-ai/screenroute/internal/service/quality"
	"github.com/screenroute-ai/screenroute/internal/telemetry"
)

// Scores diverging by more than this trigger a conflict audit entry.
const conflictThreshold = 2.0

// Confidence below this flags the decision for human review.
const escalationThreshold = 0.6

// Match lists persisted on a decision are truncated to this length.
const maxPersistedMatches = 5

// Coordinator runs the pipeline and retains processed decisions for
// aggregation. It is safe for concurrent use.
type Coordinator struct {
	quality  *quality.Assessor
	market   *market.Analyzer
	festival *festival.Matcher
	router   *pathway.Router
	predict  *predict.Predictor
	compare  *compare.Comparator
	logger   *slog.Logger

	processDuration metric.Float64Histogram
	processed       metric.Int64Counter

	mu        sync.Mutex
	decisions []model.Decision
}

// New creates a Coordinator over the given agents.
func New(q *quality.Assessor, m *market.Analyzer, f *festival.Matcher, r *pathway.Router, p *predict.Predictor, c *compare.Comparator, logger *slog.Logger) *Coordinator {
	meter := telemetry.Meter("screenroute/consensus")
	procDur, _ := meter.Float64Histogram("screenroute.pipeline.duration",
		metric.WithDescription("Time to run the full analysis pipeline (ms)"),
		metric.WithUnit("ms"),
	)
	count, _ := meter.Int64Counter("screenroute.pipeline.decisions",
		metric.WithDescription("Decisions produced by the pipeline"),
	)
	return &Coordinator{
		quality:         q,
		market:          m,
		festival:        f,
		router:          r,
		predict:         p,
		compare:         c,
		logger:          logger,
		processDuration: procDur,
		processed:       count,
	}
}

// Process runs every phase over the film and returns the merged decision.
// The decision is also retained in memory for Stats aggregation.
func (co *Coordinator) Process(ctx context.Context, film model.Film) model.Decision {
	start := time.Now()

	span := trace.SpanFromContext(ctx)
	span.SetAttributes(
		attribute.String("screenroute.film_id", film.ID),
		attribute.String("screenroute.film_title", film.Title),
	)

	var audit []model.AuditEntry
	log := func(entryType, agent, msg string) {
		audit = append(audit, model.AuditEntry{
			Timestamp: time.Now().UTC(),
			Type:      entryType,
			Agent:     agent,
			Message:   msg,
		})
	}

	log("phase", "", "pipeline started")
	co.logger.Info("pipeline started", "film_id", film.ID, "title", film.Title)

	qa := co.quality.Analyze(film)
	log("assessment", quality.AgentName, qa.Reasoning)
	co.logger.Info("quality assessed", "film_id", film.ID, "score", qa.Score, "confidence", qa.Confidence)

	ma := co.market.Analyze(film, qa.Score)
	log("assessment", market.AgentName, ma.Reasoning)
	co.logger.Info("market assessed", "film_id", film.ID, "score", ma.Score, "confidence", ma.Confidence)

	// Negotiation phase: divergent assessments are surfaced, not resolved.
	// The final score always averages both.
	if diff := math.Abs(qa.Score - ma.Score); diff > conflictThreshold {
		log("conflict", "", "quality and market assessments diverge; averaging for consensus")
		co.logger.Warn("assessment conflict", "film_id", film.ID,
			"quality_score", qa.Score, "market_score", ma.Score)
	} else {
		log("phase", "", "assessments aligned")
	}

	report := co.festival.Analyze(film, qa.Score)
	log("assessment", festival.AgentName, "festival matching complete")

	routing := co.router.Route(qa, ma, film, report, ma.DistributorMatches)
	log("decision", pathway.AgentName, string(routing.PrimaryPathway))
	co.logger.Info("pathway routed", "film_id", film.ID,
		"pathway", routing.PrimaryPathway, "confidence", routing.Confidence)

	prediction := co.predict.Predict(film, qa.Score, ma.Score)
	log("phase", "", "success prediction complete")

	finalScore := model.Round1((qa.Score + ma.Score) / 2)
	comparison := co.compare.Compare(film, finalScore)
	log("phase", "", "comparative analysis complete")

	finalConfidence := qa.Confidence
	if ma.Confidence < finalConfidence {
		finalConfidence = ma.Confidence
	}
	if routing.Confidence < finalConfidence {
		finalConfidence = routing.Confidence
	}
	escalate := finalConfidence < escalationThreshold
	if escalate {
		log("escalation", "", "confidence below review threshold")
	}
	log("phase", "", "consensus reached")

	decision := model.Decision{
		ID:        uuid.New(),
		FilmID:    film.ID,
		FilmTitle: film.Title,
		FilmData: model.FilmSummary{
			Director: film.Director,
			Country:  film.Country,
			Duration: film.DurationMinutes,
			Genre:    film.Genre,
			Themes:   film.Themes,
		},
		QualityAssessment:  qa,
		MarketAssessment:   ma,
		Routing:            routing,
		SuccessPrediction:  prediction,
		Comparison:         comparison,
		RevenueEstimate:    ma.RevenueEstimate,
		FinalScore:         finalScore,
		FinalConfidence:    finalConfidence,
		Pathway:            routing.PrimaryPathway,
		FestivalMatches:    truncate(report.Matches, maxPersistedMatches),
		DistributorMatches: truncate(ma.DistributorMatches, maxPersistedMatches),
		NextSteps:          routing.NextSteps,
		NeedsEscalation:    escalate,
		AuditLog:           audit,
		ProcessedAt:        time.Now().UTC(),
	}

	co.mu.Lock()
	co.decisions = append(co.decisions, decision)
	co.mu.Unlock()

	co.processDuration.Record(ctx, float64(time.Since(start).Milliseconds()))
	co.processed.Add(ctx, 1, metric.WithAttributes(
		attribute.String("pathway", string(routing.PrimaryPathway)),
	))
	co.logger.Info("pipeline finished", "film_id", film.ID,
		"final_score", finalScore, "pathway", routing.PrimaryPathway,
		"needs_escalation", escalate,
		"duration_ms", time.Since(start).Milliseconds())

	return decision
}

// Recent returns up to limit decisions, newest first.
func (co *Coordinator) Recent(limit int) []model.Decision {
	co.mu.Lock()
	defer co.mu.Unlock()

	n := len(co.decisions)
	if limit <= 0 || limit > n {
		limit = n
	}
	out := make([]model.Decision, 0, limit)
	for i := n - 1; i >= n-limit; i-- {
		out = append(out, co.decisions[i])
	}
	return out
}

// Stats aggregates every decision processed so far.
func (co *Coordinator) Stats() model.Stats {
	co.mu.Lock()
	defer co.mu.Unlock()

	stats := model.Stats{
		TotalProcessed: len(co.decisions),
		Pathways:       make(map[model.Pathway]int),
	}
	if len(co.decisions) == 0 {
		return stats
	}

	var sumScore, sumConfidence, sumFestivalProb, minScore, maxScore float64
	minScore = math.Inf(1)
	maxScore = math.Inf(-1)
	for _, d := range co.decisions {
		stats.Pathways[d.Pathway]++
		sumScore += d.FinalScore
		sumConfidence += d.FinalConfidence
		sumFestivalProb += float64(d.SuccessPrediction.FestivalSelection)
		stats.TotalFestivalMatches += len(d.FestivalMatches)
		stats.TotalDistributorMatches += len(d.DistributorMatches)
		if d.RevenueEstimate != nil {
			stats.TotalEstimatedValue += d.RevenueEstimate.TotalEstimate
		}
		if d.NeedsEscalation {
			stats.Escalations++
		}
		minScore = math.Min(minScore, d.FinalScore)
		maxScore = math.Max(maxScore, d.FinalScore)
	}

	n := float64(len(co.decisions))
	stats.AvgScore = model.Round2(sumScore / n)
	stats.AvgConfidence = model.Round2(sumConfidence / n)
	stats.AvgFestivalProbability = model.Round1(sumFestivalProb / n)
	stats.EscalationRate = model.Round2(float64(stats.Escalations) / n)
	stats.AvgFestivalsPerFilm = model.Round1(float64(stats.TotalFestivalMatches) / n)
	stats.AvgDistributorsPerFilm = model.Round1(float64(stats.TotalDistributorMatches) / n)
	stats.ScoreRange = map[string]float64{"min": minScore, "max": maxScore}
	return stats
}

func truncate[T any](list []T, n int) []T {
	if len(list) <= n {
		return list
	}
	return list[:n]
}
