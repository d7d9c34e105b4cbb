package domain

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/davidbz/llmbench/internal/observability"
)

const maxTemperature = 2.0

// BenchmarkRunner invokes every model × shape pair of a request sequentially.
type BenchmarkRunner struct {
	invoker        Invoker
	pricing        PricingTable
	registry       ProviderRegistry
	costCalculator CostCalculator
	observer       InvocationObserver
	recorder       RunRecorder
	events         EventPublisher
}

// NewBenchmarkRunner creates a new benchmark runner (DI constructor).
// observer, recorder and events may be nil.
func NewBenchmarkRunner(
	invoker Invoker,
	pricing PricingTable,
	registry ProviderRegistry,
	costCalculator CostCalculator,
	observer InvocationObserver,
	recorder RunRecorder,
	events EventPublisher,
) *BenchmarkRunner {
	return &BenchmarkRunner{
		invoker:        invoker,
		pricing:        pricing,
		registry:       registry,
		costCalculator: costCalculator,
		observer:       observer,
		recorder:       recorder,
		events:         events,
	}
}

type runPlan struct {
	models []string
	shapes []APIShape
	policy FailurePolicy
}

// Run executes the benchmark matrix and returns the results sorted by (model, shape).
// With the fail-fast policy the first failure is returned as is and no run is produced.
func (b *BenchmarkRunner) Run(ctx context.Context, req *BenchmarkRequest) (*BenchmarkRun, error) {
	if req == nil {
		return nil, errors.New("request cannot be nil")
	}

	plan, err := b.plan(ctx, req)
	if err != nil {
		return nil, err
	}

	run := &BenchmarkRun{
		ID:           uuid.New(),
		Prompt:       req.Prompt,
		StartedAt:    time.Now().UTC(),
		FinishedAt:   time.Time{},
		Results:      make([]InvocationResult, 0, len(plan.models)*len(plan.shapes)),
		Measurements: make([]Measurement, 0, len(plan.models)*len(plan.shapes)),
		Failures:     nil,
	}

	ctx = observability.WithRunID(ctx, run.ID.String())
	logger := observability.FromContext(ctx)
	logger.Info("benchmark started",
		observability.Strings("models", plan.models),
		observability.Int("shapes", len(plan.shapes)),
		observability.String("policy", string(plan.policy)))

	for _, model := range plan.models {
		for _, shape := range plan.shapes {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, fmt.Errorf("benchmark canceled: %w", ctxErr)
			}

			measurement, invokeErr := b.invokeOne(ctx, &InvocationRequest{
				Model:       model,
				Shape:       shape,
				Prompt:      req.Prompt,
				Temperature: req.Temperature,
			})
			if invokeErr != nil {
				if plan.policy == FailFast {
					logger.Error("benchmark aborted",
						observability.String("model", model),
						observability.String("api_shape", string(shape)),
						observability.Error(invokeErr))
					return nil, invokeErr
				}

				logger.Warn("invocation failed, continuing",
					observability.String("model", model),
					observability.String("api_shape", string(shape)),
					observability.Error(invokeErr))
				run.Failures = append(run.Failures, InvocationFailure{Model: model, Shape: shape, Err: invokeErr})
				continue
			}

			run.Results = append(run.Results, measurement.InvocationResult)
			run.Measurements = append(run.Measurements, *measurement)
		}
	}

	SortResults(run.Results)
	slices.SortStableFunc(run.Measurements, func(a, b Measurement) int {
		return compareResults(a.InvocationResult, b.InvocationResult)
	})
	run.FinishedAt = time.Now().UTC()

	logger.Info("benchmark completed",
		observability.Int("results", len(run.Results)),
		observability.Int("failures", len(run.Failures)),
		observability.String("total_cost_cents", run.TotalCost().String()))

	b.finish(ctx, run)

	return run, nil
}

// invokeOne invokes and prices a single pair, notifying the observer either way.
func (b *BenchmarkRunner) invokeOne(ctx context.Context, req *InvocationRequest) (*Measurement, error) {
	result, err := b.invoker.Invoke(ctx, req)

	var cost *CostBreakdown
	if err == nil {
		breakdown, costErr := b.costCalculator.Calculate(ctx, result)
		if costErr != nil {
			err = costErr
		} else {
			cost = &breakdown
		}
	}

	if b.observer != nil {
		b.observer.ObserveInvocation(ctx, req, result, cost, err)
	}

	if err != nil {
		return nil, err
	}

	if b.events != nil {
		b.events.Publish(ctx, "invocation.completed", map[string]interface{}{
			"model":            result.Model,
			"api_shape":        string(result.Shape),
			"latency_ms":       result.LatencyMS,
			"input_tokens":     result.InputTokens,
			"output_tokens":    result.OutputTokens,
			"total_cost_cents": cost.Total.String(),
		})
	}

	return &Measurement{InvocationResult: *result, Cost: *cost}, nil
}

// plan validates the request before any network call is made.
func (b *BenchmarkRunner) plan(ctx context.Context, req *BenchmarkRequest) (*runPlan, error) {
	if strings.TrimSpace(req.Prompt) == "" {
		return nil, NewConfigurationError("prompt cannot be empty")
	}

	if req.Temperature != nil {
		t := *req.Temperature
		if math.IsNaN(t) || t < 0 || t > maxTemperature {
			return nil, NewConfigurationError("temperature must be between 0 and %.0f, got %v", maxTemperature, t)
		}
	}

	policy := req.Policy
	if policy == "" {
		policy = FailFast
	}
	if policy != FailFast && policy != ContinueOnError {
		return nil, NewConfigurationError("unknown failure policy %q", policy)
	}

	models := dedupe(req.Models)
	if len(models) == 0 {
		return nil, NewConfigurationError("at least one model is required")
	}

	shapes := dedupe(req.Shapes)
	if len(shapes) == 0 {
		return nil, NewConfigurationError("at least one api shape is required")
	}
	for _, shape := range shapes {
		if !shape.Valid() {
			return nil, NewConfigurationError("unknown api shape %q", shape)
		}
	}

	for _, model := range models {
		if strings.TrimSpace(model) == "" {
			return nil, NewConfigurationError("model cannot be empty")
		}

		entry, err := b.pricing.PriceFor(ctx, model)
		if err != nil {
			return nil, err
		}

		if _, err := b.registry.GetByModel(ctx, model); err != nil {
			return nil, NewConfigurationError(
				"provider %s is not configured for model %s (check its API key): %v",
				entry.Provider, model, err)
		}
	}

	return &runPlan{models: models, shapes: shapes, policy: policy}, nil
}

// finish records and publishes a completed run. Failures here never fail the run.
func (b *BenchmarkRunner) finish(ctx context.Context, run *BenchmarkRun) {
	logger := observability.FromContext(ctx)

	if b.recorder != nil {
		if err := b.recorder.Record(ctx, run); err != nil {
			logger.Warn("failed to record benchmark run", observability.Error(err))
		}
	}

	if b.events != nil {
		b.events.Publish(ctx, "run.completed", map[string]interface{}{
			"run_id":           run.ID.String(),
			"results":          len(run.Results),
			"failures":         len(run.Failures),
			"total_cost_cents": run.TotalCost().String(),
			"duration_ms":      run.FinishedAt.Sub(run.StartedAt).Milliseconds(),
		})
	}
}

// SortResults orders results by (model, shape) ascending.
func SortResults(results []InvocationResult) {
	slices.SortStableFunc(results, compareResults)
}

func compareResults(a, b InvocationResult) int {
	if c := cmp.Compare(a.Model, b.Model); c != 0 {
		return c
	}
	return cmp.Compare(a.Shape, b.Shape)
}

func dedupe[T comparable](items []T) []T {
	seen := make(map[T]struct{}, len(items))
	out := make([]T, 0, len(items))
	for _, item := range items {
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
	}
	return out
}
