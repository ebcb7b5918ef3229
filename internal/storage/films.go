package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/screenroute-ai/screenroute/internal/model"
)

// CreateFilm inserts a film and returns it with timestamps set.
func (db *DB) CreateFilm(ctx context.Context, f model.Film) (model.Film, error) {
	now := time.Now().UTC()
	if f.CreatedAt.IsZero() {
		f.CreatedAt = now
	}
	f.UpdatedAt = now
	if f.Status == "" {
		f.Status = model.FilmStatusPending
	}

	_, err := db.pool.Exec(ctx,
		`INSERT INTO films (id, title, status, payload, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		f.ID, f.Title, f.Status, f, f.CreatedAt, f.UpdatedAt,
	)
	if err != nil {
		return model.Film{}, fmt.Errorf("storage: create film: %w", err)
	}
	return f, nil
}

// GetFilm retrieves a film by ID.
func (db *DB) GetFilm(ctx context.Context, id string) (model.Film, error) {
	var f model.Film
	err := db.pool.QueryRow(ctx,
		`SELECT payload FROM films WHERE id = $1`, id,
	).Scan(&f)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Film{}, ErrNotFound
		}
		return model.Film{}, fmt.Errorf("storage: get film: %w", err)
	}
	return f, nil
}

// FilmCounts returns the number of stored films per status.
func (db *DB) FilmCounts(ctx context.Context) (map[model.FilmStatus]int, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT status, COUNT(*) FROM films GROUP BY status`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: film counts: %w", err)
	}
	defer rows.Close()

	counts := make(map[model.FilmStatus]int)
	for rows.Next() {
		var status model.FilmStatus
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("storage: scan film count: %w", err)
		}
		counts[status] = n
	}
	return counts, rows.Err()
}

// ListFilms returns films newest first, optionally filtered by status.
func (db *DB) ListFilms(ctx context.Context, status model.FilmStatus, limit int) ([]model.Film, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `SELECT payload FROM films ORDER BY created_at DESC LIMIT $1`
	args := []any{limit}
	if status != "" {
		query = `SELECT payload FROM films WHERE status = $2 ORDER BY created_at DESC LIMIT $1`
		args = append(args, status)
	}

	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: list films: %w", err)
	}
	defer rows.Close()

	var films []model.Film
	for rows.Next() {
		var f model.Film
		if err := rows.Scan(&f); err != nil {
			return nil, fmt.Errorf("storage: scan film: %w", err)
		}
		films = append(films, f)
	}
	return films, rows.Err()
}

// UpdateFilmStatus transitions a film's status and re-saves its payload.
func (db *DB) UpdateFilmStatus(ctx context.Context, f model.Film, status model.FilmStatus) (model.Film, error) {
	f.Status = status
	f.UpdatedAt = time.Now().UTC()

	tag, err := db.pool.Exec(ctx,
		`UPDATE films SET status = $2, payload = $3, updated_at = $4 WHERE id = $1`,
		f.ID, f.Status, f, f.UpdatedAt,
	)
	if err != nil {
		return model.Film{}, fmt.Errorf("storage: update film status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.Film{}, ErrNotFound
	}
	return f, nil
}
