// Package localstore is a SQLite-backed store with the same surface as
// the Postgres storage layer. It exists so the server can run with zero
// external dependencies (dev boxes, demos, tests); payloads are stored
// as JSON text.
package localstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/screenroute-ai/screenroute/internal/model"
	"github.com/screenroute-ai/screenroute/internal/storage"
)

// Store wraps SQLite access for films and decisions. Use ":memory:" as
// the path for an ephemeral store.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at path and applies the
// schema.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("localstore: open: %w", err)
	}
	// modernc.org/sqlite connections do not share in-memory databases,
	// and file databases lock under concurrent writers.
	db.SetMaxOpenConns(1)
	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database.
func (s *Store) Close() error { return s.db.Close() }

// Ping checks the database connection.
func (s *Store) Ping(ctx context.Context) error { return s.db.PingContext(ctx) }

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS films (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			status TEXT NOT NULL DEFAULT 'pending',
			payload TEXT NOT NULL,
			created_at TIMESTAMP,
			updated_at TIMESTAMP
		);`,
		`CREATE INDEX IF NOT EXISTS idx_films_status ON films(status);`,
		`CREATE TABLE IF NOT EXISTS decisions (
			id TEXT PRIMARY KEY,
			film_id TEXT NOT NULL,
			film_title TEXT NOT NULL,
			pathway TEXT NOT NULL,
			final_score REAL NOT NULL,
			final_confidence REAL NOT NULL,
			needs_escalation INTEGER NOT NULL DEFAULT 0,
			payload TEXT NOT NULL,
			processed_at TIMESTAMP
		);`,
		`CREATE INDEX IF NOT EXISTS idx_decisions_film_id ON decisions(film_id);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("localstore: migrate: %w", err)
		}
	}
	return nil
}

// CreateFilm inserts a film and returns it with timestamps set.
func (s *Store) CreateFilm(ctx context.Context, f model.Film) (model.Film, error) {
	now := time.Now().UTC()
	if f.CreatedAt.IsZero() {
		f.CreatedAt = now
	}
	f.UpdatedAt = now
	if f.Status == "" {
		f.Status = model.FilmStatusPending
	}

	payload, err := json.Marshal(f)
	if err != nil {
		return model.Film{}, fmt.Errorf("localstore: marshal film: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO films(id, title, status, payload, created_at, updated_at) VALUES(?,?,?,?,?,?)`,
		f.ID, f.Title, f.Status, string(payload), f.CreatedAt, f.UpdatedAt,
	)
	if err != nil {
		return model.Film{}, fmt.Errorf("localstore: create film: %w", err)
	}
	return f, nil
}

// GetFilm retrieves a film by ID.
func (s *Store) GetFilm(ctx context.Context, id string) (model.Film, error) {
	var payload string
	err := s.db.QueryRowContext(ctx, `SELECT payload FROM films WHERE id=?`, id).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Film{}, storage.ErrNotFound
	}
	if err != nil {
		return model.Film{}, fmt.Errorf("localstore: get film: %w", err)
	}
	var f model.Film
	if err := json.Unmarshal([]byte(payload), &f); err != nil {
		return model.Film{}, fmt.Errorf("localstore: unmarshal film: %w", err)
	}
	return f, nil
}

// ListFilms returns films newest first, optionally filtered by status.
func (s *Store) ListFilms(ctx context.Context, status model.FilmStatus, limit int) ([]model.Film, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `SELECT payload FROM films ORDER BY created_at DESC LIMIT ?`
	args := []any{limit}
	if status != "" {
		query = `SELECT payload FROM films WHERE status=? ORDER BY created_at DESC LIMIT ?`
		args = []any{status, limit}
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("localstore: list films: %w", err)
	}
	defer rows.Close()

	var films []model.Film
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("localstore: scan film: %w", err)
		}
		var f model.Film
		if err := json.Unmarshal([]byte(payload), &f); err != nil {
			return nil, fmt.Errorf("localstore: unmarshal film: %w", err)
		}
		films = append(films, f)
	}
	return films, rows.Err()
}

// FilmCounts returns the number of stored films per status.
func (s *Store) FilmCounts(ctx context.Context) (map[model.FilmStatus]int, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT status, COUNT(*) FROM films GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("localstore: film counts: %w", err)
	}
	defer rows.Close()

	counts := make(map[model.FilmStatus]int)
	for rows.Next() {
		var status model.FilmStatus
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("localstore: scan film count: %w", err)
		}
		counts[status] = n
	}
	return counts, rows.Err()
}

// UpdateFilmStatus transitions a film's status and re-saves its payload.
func (s *Store) UpdateFilmStatus(ctx context.Context, f model.Film, status model.FilmStatus) (model.Film, error) {
	f.Status = status
	f.UpdatedAt = time.Now().UTC()

	payload, err := json.Marshal(f)
	if err != nil {
		return model.Film{}, fmt.Errorf("localstore: marshal film: %w", err)
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE films SET status=?, payload=?, updated_at=? WHERE id=?`,
		f.Status, string(payload), f.UpdatedAt, f.ID,
	)
	if err != nil {
		return model.Film{}, fmt.Errorf("localstore: update film status: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return model.Film{}, storage.ErrNotFound
	}
	return f, nil
}

// CreateDecision inserts a decision and returns it.
func (s *Store) CreateDecision(ctx context.Context, d model.Decision) (model.Decision, error) {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	if d.ProcessedAt.IsZero() {
		d.ProcessedAt = time.Now().UTC()
	}

	payload, err := json.Marshal(d)
	if err != nil {
		return model.Decision{}, fmt.Errorf("localstore: marshal decision: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO decisions(id, film_id, film_title, pathway, final_score,
		 final_confidence, needs_escalation, payload, processed_at)
		 VALUES(?,?,?,?,?,?,?,?,?)`,
		d.ID.String(), d.FilmID, d.FilmTitle, string(d.Pathway), d.FinalScore,
		d.FinalConfidence, d.NeedsEscalation, string(payload), d.ProcessedAt,
	)
	if err != nil {
		return model.Decision{}, fmt.Errorf("localstore: create decision: %w", err)
	}
	return d, nil
}

// GetDecision retrieves a decision by ID.
func (s *Store) GetDecision(ctx context.Context, id uuid.UUID) (model.Decision, error) {
	var payload string
	err := s.db.QueryRowContext(ctx, `SELECT payload FROM decisions WHERE id=?`, id.String()).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Decision{}, storage.ErrNotFound
	}
	if err != nil {
		return model.Decision{}, fmt.Errorf("localstore: get decision: %w", err)
	}
	var d model.Decision
	if err := json.Unmarshal([]byte(payload), &d); err != nil {
		return model.Decision{}, fmt.Errorf("localstore: unmarshal decision: %w", err)
	}
	return d, nil
}

// RecentDecisions returns decisions newest first.
func (s *Store) RecentDecisions(ctx context.Context, limit int) ([]model.Decision, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT payload FROM decisions ORDER BY processed_at DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("localstore: recent decisions: %w", err)
	}
	defer rows.Close()
	return scanDecisions(rows)
}

// DecisionsByFilm returns every decision recorded for a film, newest first.
func (s *Store) DecisionsByFilm(ctx context.Context, filmID string) ([]model.Decision, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT payload FROM decisions WHERE film_id=? ORDER BY processed_at DESC`, filmID,
	)
	if err != nil {
		return nil, fmt.Errorf("localstore: decisions by film: %w", err)
	}
	defer rows.Close()
	return scanDecisions(rows)
}

// DecisionCount returns the total number of persisted decisions.
func (s *Store) DecisionCount(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM decisions`).Scan(&n); err != nil {
		return 0, fmt.Errorf("localstore: decision count: %w", err)
	}
	return n, nil
}

func scanDecisions(rows *sql.Rows) ([]model.Decision, error) {
	var decisions []model.Decision
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("localstore: scan decision: %w", err)
		}
		var d model.Decision
		if err := json.Unmarshal([]byte(payload), &d); err != nil {
			return nil, fmt.Errorf("localstore: unmarshal decision: %w", err)
		}
		decisions = append(decisions, d)
	}
	return decisions, rows.Err()
}
