// Package history persists finished benchmark runs.
package history

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/multierr"

	"github.com/davidbz/llmbench/internal/domain"
)

// Config selects the enabled recorders. Empty values disable a recorder.
type Config struct {
	SQLitePath    string        `env:"HISTORY_SQLITE_PATH"`
	RedisAddr     string        `env:"HISTORY_REDIS_ADDR"`
	RedisPassword string        `env:"HISTORY_REDIS_PASSWORD"`
	RedisDB       int           `env:"HISTORY_REDIS_DB"       envDefault:"0"`
	RedisKey      string        `env:"HISTORY_REDIS_KEY"      envDefault:"llmbench:runs"`
	RedisTTL      time.Duration `env:"HISTORY_REDIS_TTL"      envDefault:"168h"`
	CSVPath       string        `env:"HISTORY_CSV_PATH"`
}

// RunSummary is one past run as listed by a Lister.
type RunSummary struct {
	ID         string          `json:"run_id"`
	Prompt     string          `json:"prompt"`
	StartedAt  time.Time       `json:"started_at"`
	FinishedAt time.Time       `json:"finished_at"`
	Results    int             `json:"results"`
	Failures   int             `json:"failures"`
	TotalCost  decimal.Decimal `json:"total_cost_cents"`
}

// Summarize builds the summary of a run.
func Summarize(run *domain.BenchmarkRun) RunSummary {
	return RunSummary{
		ID:         run.ID.String(),
		Prompt:     run.Prompt,
		StartedAt:  run.StartedAt,
		FinishedAt: run.FinishedAt,
		Results:    len(run.Measurements),
		Failures:   len(run.Failures),
		TotalCost:  run.TotalCost(),
	}
}

// Lister lists recorded runs, newest first.
type Lister interface {
	List(ctx context.Context, limit int) ([]RunSummary, error)
}

// MultiRecorder fans a run out to every recorder.
type MultiRecorder struct {
	recorders []domain.RunRecorder
}

// NewMultiRecorder creates a fan-out recorder. Nil recorders are skipped.
func NewMultiRecorder(recorders ...domain.RunRecorder) *MultiRecorder {
	m := &MultiRecorder{}
	for _, r := range recorders {
		if r != nil {
			m.recorders = append(m.recorders, r)
		}
	}
	return m
}

// Record writes the run to every recorder and combines their errors.
func (m *MultiRecorder) Record(ctx context.Context, run *domain.BenchmarkRun) error {
	var err error
	for _, r := range m.recorders {
		err = multierr.Append(err, r.Record(ctx, run))
	}
	return err
}
