package report

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/davidbz/llmbench/internal/domain"
)

// Headers are the result table columns, in order.
var Headers = []string{"model", "api_shape", "latency_ms", "input_tokens", "output_tokens", "total_cost_cents"}

var rightAligned = []bool{false, false, true, true, true, true}

// Row is one rendered result.
type Row struct {
	Model        string          `json:"model"`
	Shape        domain.APIShape `json:"api_shape"`
	LatencyMS    float64         `json:"latency_ms"`
	InputTokens  int             `json:"input_tokens"`
	OutputTokens int             `json:"output_tokens"`
	TotalCost    decimal.Decimal `json:"total_cost_cents"`
}

// NewRow builds a row from a priced measurement.
func NewRow(m domain.Measurement) Row {
	return Row{
		Model:        m.Model,
		Shape:        m.Shape,
		LatencyMS:    m.LatencyMS,
		InputTokens:  m.InputTokens,
		OutputTokens: m.OutputTokens,
		TotalCost:    m.Cost.Total,
	}
}

func (r Row) cells() []string {
	return []string{
		r.Model,
		string(r.Shape),
		strconv.FormatFloat(r.LatencyMS, 'f', 2, 64),
		strconv.Itoa(r.InputTokens),
		strconv.Itoa(r.OutputTokens),
		r.TotalCost.String(),
	}
}

// Render prices every result and renders the table sorted by (model, shape).
// A result whose model has no pricing entry fails the whole render.
func Render(ctx context.Context, results []domain.InvocationResult, pricing domain.PricingTable, format Format) (string, error) {
	sorted := slices.Clone(results)
	domain.SortResults(sorted)

	rows := make([]Row, 0, len(sorted))
	for _, result := range sorted {
		entry, err := pricing.PriceFor(ctx, result.Model)
		if err != nil {
			return "", err
		}
		cost := domain.ComputeCost(entry, result.InputTokens, result.OutputTokens)
		rows = append(rows, NewRow(domain.Measurement{InvocationResult: result, Cost: cost}))
	}

	return RenderRows(rows, format)
}

// RenderMeasurements renders already priced measurements in the given order.
func RenderMeasurements(measurements []domain.Measurement, format Format) (string, error) {
	rows := make([]Row, 0, len(measurements))
	for _, m := range measurements {
		rows = append(rows, NewRow(m))
	}
	return RenderRows(rows, format)
}

// RenderRows renders rows in the given format.
func RenderRows(rows []Row, format Format) (string, error) {
	if format == FormatJSON {
		if rows == nil {
			rows = []Row{}
		}
		data, err := json.MarshalIndent(rows, "", "  ")
		if err != nil {
			return "", fmt.Errorf("render json: %w", err)
		}
		return string(data) + "\n", nil
	}

	t := &table{headers: Headers, right: rightAligned, rows: make([][]string, 0, len(rows))}
	for _, row := range rows {
		t.rows = append(t.rows, row.cells())
	}
	return t.render(format)
}

// Parse reads a rendered table back into rows. Pipe-delimited formats
// unescape \| and \\ inside cells. Plain columns are split on runs of two
// or more spaces, so a plain cell must be non-empty and must not contain
// consecutive spaces.
func Parse(text string, format Format) ([]Row, error) {
	if format == FormatJSON {
		var rows []Row
		if err := json.Unmarshal([]byte(text), &rows); err != nil {
			return nil, fmt.Errorf("parse json: %w", err)
		}
		return rows, nil
	}

	headers, records, err := parseText(text, format)
	if err != nil {
		return nil, err
	}

	if !slices.Equal(headers, Headers) {
		return nil, fmt.Errorf("unexpected table header %v", headers)
	}

	rows := make([]Row, 0, len(records))
	for i, record := range records {
		row, err := parseRow(record)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func parseRow(cells []string) (Row, error) {
	if len(cells) != len(Headers) {
		return Row{}, fmt.Errorf("expected %d columns, got %d", len(Headers), len(cells))
	}

	latency, err := strconv.ParseFloat(cells[2], 64)
	if err != nil {
		return Row{}, fmt.Errorf("latency_ms: %w", err)
	}

	inputTokens, err := strconv.Atoi(cells[3])
	if err != nil {
		return Row{}, fmt.Errorf("input_tokens: %w", err)
	}

	outputTokens, err := strconv.Atoi(cells[4])
	if err != nil {
		return Row{}, fmt.Errorf("output_tokens: %w", err)
	}

	cost, err := decimal.NewFromString(cells[5])
	if err != nil {
		return Row{}, fmt.Errorf("total_cost_cents: %w", err)
	}

	return Row{
		Model:        cells[0],
		Shape:        domain.APIShape(cells[1]),
		LatencyMS:    latency,
		InputTokens:  inputTokens,
		OutputTokens: outputTokens,
		TotalCost:    cost,
	}, nil
}

// RenderResponses prints each response text under a model/shape heading.
func RenderResponses(results []domain.InvocationResult) string {
	var b strings.Builder
	for _, r := range results {
		fmt.Fprintf(&b, "%s response with %s API:\n%s\n-----\n", r.Model, r.Shape, strings.TrimSpace(r.ResponseText))
	}
	return b.String()
}

// RenderFailures lists the failed pairs of a continue-on-error run.
func RenderFailures(failures []domain.InvocationFailure) (string, error) {
	if len(failures) == 0 {
		return "", nil
	}

	t := &table{
		headers: []string{"model", "api_shape", "error"},
		right:   []bool{false, false, false},
		rows:    make([][]string, 0, len(failures)),
	}
	for _, f := range failures {
		msg := "unknown error"
		if f.Err != nil {
			msg = f.Err.Error()
		}
		t.rows = append(t.rows, []string{f.Model, string(f.Shape), msg})
	}
	return t.render(FormatGitHub)
}

// RenderPricing renders the pricing catalog.
func RenderPricing(entries []domain.PricingEntry, format Format) (string, error) {
	if format == FormatJSON {
		type pricingRow struct {
			Model                  string            `json:"model"`
			Provider               string            `json:"provider"`
			InputPricePerToken     decimal.Decimal   `json:"input_price_per_token"`
			OutputPricePerToken    decimal.Decimal   `json:"output_price_per_token"`
			TemperatureUnsupported []domain.APIShape `json:"temperature_unsupported,omitempty"`
		}
		out := make([]pricingRow, 0, len(entries))
		for _, e := range entries {
			out = append(out, pricingRow(e))
		}
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return "", fmt.Errorf("render json: %w", err)
		}
		return string(data) + "\n", nil
	}

	t := &table{
		headers: []string{"model", "provider", "input_price_per_token", "output_price_per_token", "temperature"},
		right:   []bool{false, false, true, true, false},
		rows:    make([][]string, 0, len(entries)),
	}
	for _, e := range entries {
		temperature := "all"
		if len(e.TemperatureUnsupported) > 0 {
			var supported []string
			for _, shape := range domain.AllShapes() {
				if e.SupportsTemperature(shape) {
					supported = append(supported, string(shape))
				}
			}
			temperature = "none"
			if len(supported) > 0 {
				temperature = strings.Join(supported, ",")
			}
		}
		t.rows = append(t.rows, []string{
			e.Model, e.Provider, e.InputPricePerToken.String(), e.OutputPricePerToken.String(), temperature,
		})
	}
	return t.render(format)
}

// RenderTable renders arbitrary string cells. right marks numeric columns and may be nil.
func RenderTable(headers []string, right []bool, rows [][]string, format Format) (string, error) {
	if format == FormatJSON {
		return "", fmt.Errorf("format %s is not a text table", format)
	}
	if right == nil {
		right = make([]bool, len(headers))
	}
	if len(right) != len(headers) {
		return "", fmt.Errorf("expected %d alignment flags, got %d", len(headers), len(right))
	}
	for i, row := range rows {
		if len(row) != len(headers) {
			return "", fmt.Errorf("row %d: expected %d columns, got %d", i+1, len(headers), len(row))
		}
	}

	t := &table{headers: headers, right: right, rows: rows}
	return t.render(format)
}
