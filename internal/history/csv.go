package history

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/davidbz/llmbench/internal/domain"
)

var csvHeader = []string{
	"timestamp", "run_id", "prompt", "response", "model", "api_shape", "latency_ms",
	"input_tokens", "output_tokens", "total_tokens", "total_cost_cents", "temperature_applied",
}

// CSVRecorder appends one line per measurement to a CSV file.
type CSVRecorder struct {
	mu   sync.Mutex
	path string
}

// NewCSVRecorder creates a recorder writing to path.
func NewCSVRecorder(path string) *CSVRecorder {
	return &CSVRecorder{path: path}
}

// Record appends the run's measurements. The header is written when the file
// is missing or empty.
func (c *CSVRecorder) Record(_ context.Context, run *domain.BenchmarkRun) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	info, statErr := os.Stat(c.path)
	isNew := errors.Is(statErr, fs.ErrNotExist) || (statErr == nil && info.Size() == 0)

	f, err := os.OpenFile(c.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open history csv: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if isNew {
		if err := w.Write(csvHeader); err != nil {
			return fmt.Errorf("write history csv: %w", err)
		}
	}

	for _, m := range run.Measurements {
		if err := w.Write([]string{
			run.StartedAt.UTC().Format(time.RFC3339),
			run.ID.String(),
			run.Prompt,
			m.ResponseText,
			m.Model,
			string(m.Shape),
			strconv.FormatFloat(m.LatencyMS, 'f', 2, 64),
			strconv.Itoa(m.InputTokens),
			strconv.Itoa(m.OutputTokens),
			strconv.Itoa(m.InputTokens+m.OutputTokens),
			m.Cost.Total.String(),
			strconv.FormatBool(m.TemperatureApplied),
		}); err != nil {
			return fmt.Errorf("write history csv: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("write history csv: %w", err)
	}
	return nil
}
