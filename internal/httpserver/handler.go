package httpserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/davidbz/llmbench/internal/config"
	"github.com/davidbz/llmbench/internal/domain"
	"github.com/davidbz/llmbench/internal/observability"
	"github.com/davidbz/llmbench/internal/report"
)

// Handler handles HTTP requests.
type Handler struct {
	runner  domain.Benchmarker
	pricing domain.PricingTable
	bench   *config.BenchConfig
}

// NewHandler creates a new HTTP handler (DI constructor).
func NewHandler(runner domain.Benchmarker, pricing domain.PricingTable, bench *config.BenchConfig) *Handler {
	return &Handler{
		runner:  runner,
		pricing: pricing,
		bench:   bench,
	}
}

// BenchmarkRequest is the body of POST /v1/benchmarks.
// Empty models or apis fall back to the configured defaults.
type BenchmarkRequest struct {
	Prompt          string   `json:"prompt"`
	Models          []string `json:"models"`
	APIs            []string `json:"apis"`
	Temperature     *float64 `json:"temperature,omitempty"`
	ContinueOnError bool     `json:"continue_on_error"`
}

// RunRequest is the body of POST /v1/benchmarks/run, a single model/shape invocation.
type RunRequest struct {
	Prompt      string   `json:"prompt"`
	Model       string   `json:"model"`
	APIType     string   `json:"api_type"`
	Temperature *float64 `json:"temperature,omitempty"`
}

// FailureResponse is one failed pair of a continue-on-error run.
type FailureResponse struct {
	Model string          `json:"model"`
	Shape domain.APIShape `json:"api_shape"`
	Error string          `json:"error"`
}

// BenchmarkResponse is the body returned for a finished run.
type BenchmarkResponse struct {
	RunID          string            `json:"run_id"`
	Results        []report.Row      `json:"results"`
	Failures       []FailureResponse `json:"failures"`
	TotalCostCents decimal.Decimal   `json:"total_cost_cents"`
}

// HandleBenchmark runs a models × apis matrix for one prompt.
func (h *Handler) HandleBenchmark(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var body BenchmarkRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, r, domain.NewConfigurationError("invalid request body: %v", err))
		return
	}

	models := body.Models
	if len(models) == 0 {
		models = h.bench.DefaultModels
	}

	apis := body.APIs
	if len(apis) == 0 {
		apis = h.bench.DefaultAPIs
	}

	shapes := make([]domain.APIShape, 0, len(apis))
	for _, raw := range apis {
		shape, err := domain.ParseAPIShape(raw)
		if err != nil {
			writeError(w, r, err)
			return
		}
		shapes = append(shapes, shape)
	}

	policy, err := h.bench.Policy()
	if err != nil {
		writeError(w, r, err)
		return
	}
	if body.ContinueOnError {
		policy = domain.ContinueOnError
	}

	h.run(w, r, &domain.BenchmarkRequest{
		Prompt:      body.Prompt,
		Models:      models,
		Shapes:      shapes,
		Temperature: body.Temperature,
		Policy:      policy,
	})
}

// HandleRun invokes a single model with a single API shape.
func (h *Handler) HandleRun(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var body RunRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, r, domain.NewConfigurationError("invalid request body: %v", err))
		return
	}

	if body.Model == "" {
		writeError(w, r, domain.NewConfigurationError("model is required"))
		return
	}

	shape, err := domain.ParseAPIShape(body.APIType)
	if err != nil {
		writeError(w, r, err)
		return
	}

	h.run(w, r, &domain.BenchmarkRequest{
		Prompt:      body.Prompt,
		Models:      []string{body.Model},
		Shapes:      []domain.APIShape{shape},
		Temperature: body.Temperature,
		Policy:      domain.FailFast,
	})
}

func (h *Handler) run(w http.ResponseWriter, r *http.Request, req *domain.BenchmarkRequest) {
	ctx := r.Context()
	logger := observability.FromContext(ctx)
	logger.Info("benchmark request received",
		observability.Strings("models", req.Models),
		observability.Int("shapes", len(req.Shapes)),
		observability.String("policy", string(req.Policy)))

	run, err := h.runner.Run(ctx, req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	response := BenchmarkResponse{
		RunID:          run.ID.String(),
		Results:        make([]report.Row, 0, len(run.Measurements)),
		Failures:       make([]FailureResponse, 0, len(run.Failures)),
		TotalCostCents: run.TotalCost(),
	}
	for _, m := range run.Measurements {
		response.Results = append(response.Results, report.NewRow(m))
	}
	for _, f := range run.Failures {
		msg := "unknown error"
		if f.Err != nil {
			msg = f.Err.Error()
		}
		response.Failures = append(response.Failures, FailureResponse{Model: f.Model, Shape: f.Shape, Error: msg})
	}

	writeJSON(w, r, http.StatusOK, response)
}

// HandlePricing lists the pricing catalog. ?format= selects a text table instead of JSON.
func (h *Handler) HandlePricing(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	format, err := report.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		writeError(w, r, domain.NewConfigurationError("%v", err))
		return
	}
	if r.URL.Query().Get("format") == "" {
		format = report.FormatJSON
	}

	out, err := report.RenderPricing(h.pricing.Entries(r.Context()), format)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if format == report.FormatJSON {
		w.Header().Set("Content-Type", "application/json")
	} else {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	}
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprint(w, out)
}

// HandleHealth handles health check requests.
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]string{
		"status": "healthy",
	})
}

type errorResponse struct {
	Error          string `json:"error"`
	UpstreamStatus int    `json:"upstream_status,omitempty"`
}

// writeError maps domain errors to status codes.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	body := errorResponse{Error: err.Error()}

	var providerErr *domain.ProviderError
	switch {
	case errors.Is(err, domain.ErrConfiguration), errors.Is(err, domain.ErrUnknownModel):
		status = http.StatusBadRequest
	case errors.As(err, &providerErr):
		status = http.StatusBadGateway
		body.UpstreamStatus = providerErr.StatusCode
	case errors.Is(err, domain.ErrMalformedResponse):
		status = http.StatusBadGateway
	}

	observability.FromContext(r.Context()).Error("benchmark request failed",
		observability.Int("status", status),
		observability.Error(err))

	writeJSON(w, r, status, body)
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		// Already written status, can't change it, just log.
		observability.FromContext(r.Context()).Error("failed to encode response", observability.Error(err))
	}
}
