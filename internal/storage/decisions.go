package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/screenroute-ai/screenroute/internal/model"
)

// CreateDecision inserts a decision and returns it.
func (db *DB) CreateDecision(ctx context.Context, d model.Decision) (model.Decision, error) {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	if d.ProcessedAt.IsZero() {
		d.ProcessedAt = time.Now().UTC()
	}

	_, err := db.pool.Exec(ctx,
		`INSERT INTO decisions (id, film_id, film_title, pathway, final_score,
		 final_confidence, needs_escalation, payload, processed_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		d.ID, d.FilmID, d.FilmTitle, d.Pathway, d.FinalScore,
		d.FinalConfidence, d.NeedsEscalation, d, d.ProcessedAt,
	)
	if err != nil {
		return model.Decision{}, fmt.Errorf("storage: create decision: %w", err)
	}
	return d, nil
}

// GetDecision retrieves a decision by ID.
func (db *DB) GetDecision(ctx context.Context, id uuid.UUID) (model.Decision, error) {
	var d model.Decision
	err := db.pool.QueryRow(ctx,
		`SELECT payload FROM decisions WHERE id = $1`, id,
	).Scan(&d)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Decision{}, ErrNotFound
		}
		return model.Decision{}, fmt.Errorf("storage: get decision: %w", err)
	}
	return d, nil
}

// RecentDecisions returns decisions newest first.
func (db *DB) RecentDecisions(ctx context.Context, limit int) ([]model.Decision, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := db.pool.Query(ctx,
		`SELECT payload FROM decisions ORDER BY processed_at DESC LIMIT $1`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: recent decisions: %w", err)
	}
	defer rows.Close()

	var decisions []model.Decision
	for rows.Next() {
		var d model.Decision
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("storage: scan decision: %w", err)
		}
		decisions = append(decisions, d)
	}
	return decisions, rows.Err()
}

// DecisionsByFilm returns every decision recorded for a film, newest first.
func (db *DB) DecisionsByFilm(ctx context.Context, filmID string) ([]model.Decision, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT payload FROM decisions WHERE film_id = $1 ORDER BY processed_at DESC`, filmID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: decisions by film: %w", err)
	}
	defer rows.Close()

	var decisions []model.Decision
	for rows.Next() {
		var d model.Decision
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("storage: scan decision: %w", err)
		}
		decisions = append(decisions, d)
	}
	return decisions, rows.Err()
}

// DecisionCount returns the total number of persisted decisions.
func (db *DB) DecisionCount(ctx context.Context) (int, error) {
	var n int
	if err := db.pool.QueryRow(ctx, `SELECT COUNT(*) FROM decisions`).Scan(&n); err != nil {
		return 0, fmt.Errorf("storage: decision count: %w", err)
	}
	return n, nil
}
