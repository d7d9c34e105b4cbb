package report_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/davidbz/llmbench/internal/domain"
	"github.com/davidbz/llmbench/internal/report"
)

func newPricing(t *testing.T) *domain.StaticPricingTable {
	t.Helper()

	table, err := domain.NewStaticPricingTable(
		domain.PricingEntry{
			Model:               "m1",
			Provider:            "echo",
			InputPricePerToken:  decimal.RequireFromString("0.00001"),
			OutputPricePerToken: decimal.RequireFromString("0.00004"),
		},
		domain.PricingEntry{
			Model:               "m2",
			Provider:            "echo",
			InputPricePerToken:  decimal.RequireFromString("0.00025"),
			OutputPricePerToken: decimal.RequireFromString("0.001"),
		},
	)
	require.NoError(t, err)
	return table
}

func sampleResults() []domain.InvocationResult {
	return []domain.InvocationResult{
		{Model: "m2", Shape: domain.ShapeResponses, LatencyMS: 830.129, InputTokens: 21, OutputTokens: 140},
		{Model: "m1", Shape: domain.ShapeResponses, LatencyMS: 410.5, InputTokens: 12, OutputTokens: 7},
		{Model: "m2", Shape: domain.ShapeChat, LatencyMS: 1203.004, InputTokens: 20, OutputTokens: 133},
		{Model: "m1", Shape: domain.ShapeChat, LatencyMS: 12.5, InputTokens: 10, OutputTokens: 5},
	}
}

func TestParseFormat(t *testing.T) {
	for _, f := range report.Formats() {
		got, err := report.ParseFormat(strings.ToUpper(string(f)))
		require.NoError(t, err)
		require.Equal(t, f, got)
	}

	got, err := report.ParseFormat("")
	require.NoError(t, err)
	require.Equal(t, report.FormatGitHub, got)

	_, err = report.ParseFormat("latex")
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown table format")
}

func TestRender_GitHub(t *testing.T) {
	results := []domain.InvocationResult{
		{Model: "m1", Shape: domain.ShapeChat, LatencyMS: 12.5, InputTokens: 10, OutputTokens: 5},
	}

	out, err := report.Render(context.Background(), results, newPricing(t), report.FormatGitHub)
	require.NoError(t, err)

	expected := "" +
		"| model | api_shape | latency_ms | input_tokens | output_tokens | total_cost_cents |\n" +
		"|-------|-----------|------------|--------------|---------------|------------------|\n" +
		"| m1    | chat      |      12.50 |           10 |             5 |           0.0003 |\n"
	require.Equal(t, expected, out)
}

func TestRender_PipeSeparator(t *testing.T) {
	results := []domain.InvocationResult{
		{Model: "m1", Shape: domain.ShapeChat, LatencyMS: 12.5, InputTokens: 10, OutputTokens: 5},
	}

	out, err := report.Render(context.Background(), results, newPricing(t), report.FormatPipe)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	require.Equal(t, "|:------|:----------|-----------:|-------------:|--------------:|-----------------:|", lines[1])
}

func TestRender_CostScenario(t *testing.T) {
	results := []domain.InvocationResult{
		{Model: "m1", Shape: domain.ShapeChat, LatencyMS: 1, InputTokens: 10, OutputTokens: 5},
	}

	out, err := report.Render(context.Background(), results, newPricing(t), report.FormatJSON)
	require.NoError(t, err)

	rows, err := report.Parse(out, report.FormatJSON)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, "0.0003", rows[0].TotalCost.String())
}

func TestRender_SortsRows(t *testing.T) {
	out, err := report.Render(context.Background(), sampleResults(), newPricing(t), report.FormatCSV)
	require.NoError(t, err)

	rows, err := report.Parse(out, report.FormatCSV)
	require.NoError(t, err)
	require.Len(t, rows, 4)

	var pairs []string
	for _, r := range rows {
		pairs = append(pairs, r.Model+"/"+string(r.Shape))
	}
	require.Equal(t, []string{"m1/chat", "m1/responses", "m2/chat", "m2/responses"}, pairs)
}

func TestRender_UnknownModel(t *testing.T) {
	results := []domain.InvocationResult{{Model: "nope", Shape: domain.ShapeChat}}

	_, err := report.Render(context.Background(), results, newPricing(t), report.FormatGitHub)
	require.Error(t, err)
	require.True(t, errors.Is(err, domain.ErrUnknownModel))
}

func TestRender_RoundTrip(t *testing.T) {
	ctx := context.Background()
	pricing := newPricing(t)

	expected := sampleResults()
	domain.SortResults(expected)

	for _, format := range report.Formats() {
		t.Run(string(format), func(t *testing.T) {
			out, err := report.Render(ctx, sampleResults(), pricing, format)
			require.NoError(t, err)

			rows, err := report.Parse(out, format)
			require.NoError(t, err)
			require.Len(t, rows, len(expected))

			for i, row := range rows {
				want := expected[i]
				entry, err := pricing.PriceFor(ctx, want.Model)
				require.NoError(t, err)
				cost := domain.ComputeCost(entry, want.InputTokens, want.OutputTokens)

				require.Equal(t, want.Model, row.Model)
				require.Equal(t, want.Shape, row.Shape)
				require.InDelta(t, want.LatencyMS, row.LatencyMS, 0.005)
				require.Equal(t, want.InputTokens, row.InputTokens)
				require.Equal(t, want.OutputTokens, row.OutputTokens)
				require.True(t, cost.Total.Equal(row.TotalCost), "%s != %s", cost.Total, row.TotalCost)
			}
		})
	}
}

func TestRender_RoundTripSpecialModelIDs(t *testing.T) {
	ctx := context.Background()
	ids := []string{"org|model", `dir\name|v2`, "my model", `trailing\`}

	entries := make([]domain.PricingEntry, 0, len(ids))
	results := make([]domain.InvocationResult, 0, len(ids))
	for _, id := range ids {
		entries = append(entries, domain.PricingEntry{
			Model:               id,
			Provider:            "echo",
			InputPricePerToken:  decimal.RequireFromString("0.00001"),
			OutputPricePerToken: decimal.RequireFromString("0.00002"),
		})
		results = append(results, domain.InvocationResult{
			Model: id, Shape: domain.ShapeChat, LatencyMS: 1.5, InputTokens: 3, OutputTokens: 4,
		})
	}
	pricing, err := domain.NewStaticPricingTable(entries...)
	require.NoError(t, err)

	expected := make([]domain.InvocationResult, len(results))
	copy(expected, results)
	domain.SortResults(expected)

	for _, format := range report.Formats() {
		t.Run(string(format), func(t *testing.T) {
			out, err := report.Render(ctx, results, pricing, format)
			require.NoError(t, err)

			rows, err := report.Parse(out, format)
			require.NoError(t, err)
			require.Len(t, rows, len(expected))
			for i, row := range rows {
				require.Equal(t, expected[i].Model, row.Model)
				require.Equal(t, 3, row.InputTokens)
			}
		})
	}
}

func TestRender_GitHubEscapesPipes(t *testing.T) {
	pricing, err := domain.NewStaticPricingTable(domain.PricingEntry{
		Model:               "org|model",
		Provider:            "echo",
		InputPricePerToken:  decimal.RequireFromString("0.00001"),
		OutputPricePerToken: decimal.RequireFromString("0.00001"),
	})
	require.NoError(t, err)

	out, err := report.Render(context.Background(), []domain.InvocationResult{
		{Model: "org|model", Shape: domain.ShapeChat, LatencyMS: 1, InputTokens: 1, OutputTokens: 1},
	}, pricing, report.FormatGitHub)
	require.NoError(t, err)
	require.Contains(t, out, `| org\|model |`)
}

func TestRender_Empty(t *testing.T) {
	for _, format := range report.Formats() {
		t.Run(string(format), func(t *testing.T) {
			out, err := report.Render(context.Background(), nil, newPricing(t), format)
			require.NoError(t, err)

			rows, err := report.Parse(out, format)
			require.NoError(t, err)
			require.Empty(t, rows)
		})
	}
}

func TestParse_Errors(t *testing.T) {
	t.Run("wrong header", func(t *testing.T) {
		_, err := report.Parse("a,b\n1,2\n", report.FormatCSV)
		require.Error(t, err)
		require.Contains(t, err.Error(), "unexpected table header")
	})

	t.Run("bad number", func(t *testing.T) {
		text := strings.Join(report.Headers, ",") + "\nm1,chat,fast,1,1,0.1\n"
		_, err := report.Parse(text, report.FormatCSV)
		require.Error(t, err)
		require.Contains(t, err.Error(), "latency_ms")
	})

	t.Run("missing separator", func(t *testing.T) {
		_, err := report.Parse("| model |\n| m1 |\n", report.FormatGitHub)
		require.Error(t, err)
	})

	t.Run("invalid json", func(t *testing.T) {
		_, err := report.Parse("{", report.FormatJSON)
		require.Error(t, err)
	})
}

func TestRenderResponses(t *testing.T) {
	out := report.RenderResponses([]domain.InvocationResult{
		{Model: "m1", Shape: domain.ShapeChat, ResponseText: "pong\n"},
	})

	require.Equal(t, "m1 response with chat API:\npong\n-----\n", out)
}

func TestRenderFailures(t *testing.T) {
	out, err := report.RenderFailures(nil)
	require.NoError(t, err)
	require.Empty(t, out)

	out, err = report.RenderFailures([]domain.InvocationFailure{
		{Model: "m1", Shape: domain.ShapeResponses, Err: &domain.ProviderError{
			Provider: "openai", Model: "m1", Shape: domain.ShapeResponses, StatusCode: 429, Message: "rate limited",
		}},
	})
	require.NoError(t, err)
	require.Contains(t, out, "| m1    | responses |")
	require.Contains(t, out, "status 429")
}

func TestRenderPricing(t *testing.T) {
	entries := []domain.PricingEntry{
		{
			Model:                  "gpt-5-mini",
			Provider:               "openai",
			InputPricePerToken:     decimal.RequireFromString("0.000025"),
			OutputPricePerToken:    decimal.RequireFromString("0.0002"),
			TemperatureUnsupported: []domain.APIShape{domain.ShapeChat, domain.ShapeResponses},
		},
		{
			Model:               "m1",
			Provider:            "echo",
			InputPricePerToken:  decimal.RequireFromString("0.00001"),
			OutputPricePerToken: decimal.RequireFromString("0.00004"),
		},
	}

	out, err := report.RenderPricing(entries, report.FormatPlain)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	require.Equal(t, []string{"gpt-5-mini", "openai", "0.000025", "0.0002", "none"}, strings.Fields(lines[1]))
	require.Equal(t, []string{"m1", "echo", "0.00001", "0.00004", "all"}, strings.Fields(lines[2]))

	out, err = report.RenderPricing(entries, report.FormatJSON)
	require.NoError(t, err)
	require.Contains(t, out, `"input_price_per_token": "0.000025"`)
}

func TestRenderTable(t *testing.T) {
	out, err := report.RenderTable([]string{"run_id", "results"}, []bool{false, true}, [][]string{{"abc", "4"}}, report.FormatGitHub)
	require.NoError(t, err)
	require.Equal(t, ""+
		"| run_id | results |\n"+
		"|--------|---------|\n"+
		"| abc    |       4 |\n", out)

	_, err = report.RenderTable([]string{"a"}, nil, [][]string{{"1", "2"}}, report.FormatPlain)
	require.Error(t, err)

	_, err = report.RenderTable([]string{"a"}, nil, nil, report.FormatJSON)
	require.Error(t, err)
}
