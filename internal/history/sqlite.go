package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"

	"github.com/davidbz/llmbench/internal/domain"
)

// SQLiteStore records runs in a SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

const createTables = `
CREATE TABLE IF NOT EXISTS runs (
	id TEXT PRIMARY KEY,
	prompt TEXT NOT NULL,
	started_at DATETIME NOT NULL,
	finished_at DATETIME NOT NULL,
	total_cost_cents TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS measurements (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id TEXT NOT NULL REFERENCES runs(id),
	model TEXT NOT NULL,
	api_shape TEXT NOT NULL,
	latency_ms REAL NOT NULL,
	input_tokens INTEGER NOT NULL,
	output_tokens INTEGER NOT NULL,
	total_cost_cents TEXT NOT NULL,
	temperature_applied INTEGER NOT NULL,
	response_text TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS failures (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id TEXT NOT NULL REFERENCES runs(id),
	model TEXT NOT NULL,
	api_shape TEXT NOT NULL,
	error TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started_at);
CREATE INDEX IF NOT EXISTS idx_measurements_run ON measurements(run_id);
`

// NewSQLiteStore opens the database and runs auto-migration.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}

	if _, err := db.Exec(createTables); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate history db: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Record stores the run, its measurements and failures in one transaction.
func (s *SQLiteStore) Record(ctx context.Context, run *domain.BenchmarkRun) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("record run: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, prompt, started_at, finished_at, total_cost_cents) VALUES (?, ?, ?, ?, ?)`,
		run.ID.String(), run.Prompt, run.StartedAt.UTC(), run.FinishedAt.UTC(), run.TotalCost().String(),
	); err != nil {
		return fmt.Errorf("record run: %w", err)
	}

	for _, m := range run.Measurements {
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO measurements (run_id, model, api_shape, latency_ms, input_tokens, output_tokens,
			 total_cost_cents, temperature_applied, response_text) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			run.ID.String(), m.Model, string(m.Shape), m.LatencyMS, m.InputTokens, m.OutputTokens,
			m.Cost.Total.String(), m.TemperatureApplied, m.ResponseText,
		); err != nil {
			return fmt.Errorf("record measurement: %w", err)
		}
	}

	for _, f := range run.Failures {
		msg := ""
		if f.Err != nil {
			msg = f.Err.Error()
		}
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO failures (run_id, model, api_shape, error) VALUES (?, ?, ?, ?)`,
			run.ID.String(), f.Model, string(f.Shape), msg,
		); err != nil {
			return fmt.Errorf("record failure: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("record run: %w", err)
	}
	return nil
}

// List returns the latest runs, newest first. A non-positive limit returns all runs.
func (s *SQLiteStore) List(ctx context.Context, limit int) ([]RunSummary, error) {
	if limit <= 0 {
		limit = -1
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT r.id, r.prompt, r.started_at, r.finished_at, r.total_cost_cents,
		        (SELECT COUNT(*) FROM measurements m WHERE m.run_id = r.id),
		        (SELECT COUNT(*) FROM failures f WHERE f.run_id = r.id)
		 FROM runs r ORDER BY r.started_at DESC, r.id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var out []RunSummary
	for rows.Next() {
		var (
			summary            RunSummary
			startedAt, endedAt time.Time
			cost               string
		)
		if err := rows.Scan(&summary.ID, &summary.Prompt, &startedAt, &endedAt, &cost,
			&summary.Results, &summary.Failures); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		summary.StartedAt = startedAt
		summary.FinishedAt = endedAt
		if summary.TotalCost, err = decimal.NewFromString(cost); err != nil {
			return nil, fmt.Errorf("run %s: invalid cost %q: %w", summary.ID, cost, err)
		}
		out = append(out, summary)
	}
	return out, rows.Err()
}

// Measurements returns the recorded rows of a run sorted by (model, shape).
func (s *SQLiteStore) Measurements(ctx context.Context, runID string) ([]domain.Measurement, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT model, api_shape, latency_ms, input_tokens, output_tokens, total_cost_cents,
		        temperature_applied, response_text
		 FROM measurements WHERE run_id = ? ORDER BY model, api_shape`, runID)
	if err != nil {
		return nil, fmt.Errorf("query measurements: %w", err)
	}
	defer rows.Close()

	var out []domain.Measurement
	for rows.Next() {
		var (
			m     domain.Measurement
			shape string
			cost  string
		)
		if err := rows.Scan(&m.Model, &shape, &m.LatencyMS, &m.InputTokens, &m.OutputTokens, &cost,
			&m.TemperatureApplied, &m.ResponseText); err != nil {
			return nil, fmt.Errorf("scan measurement: %w", err)
		}
		m.Shape = domain.APIShape(shape)
		if m.Cost.Total, err = decimal.NewFromString(cost); err != nil {
			return nil, fmt.Errorf("invalid cost %q: %w", cost, err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// Close releases the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
