package domain

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/davidbz/llmbench/internal/observability"
)

// InvocationAdapter times a single backend call and normalizes both API shapes
// into one InvocationResult.
type InvocationAdapter struct {
	registry ProviderRegistry
	pricing  PricingTable
}

// NewInvocationAdapter creates a new invocation adapter (DI constructor).
func NewInvocationAdapter(registry ProviderRegistry, pricing PricingTable) *InvocationAdapter {
	return &InvocationAdapter{
		registry: registry,
		pricing:  pricing,
	}
}

// Invoke sends the prompt to the model through the requested shape.
func (a *InvocationAdapter) Invoke(ctx context.Context, req *InvocationRequest) (*InvocationResult, error) {
	if req == nil {
		return nil, errors.New("request cannot be nil")
	}

	if strings.TrimSpace(req.Prompt) == "" {
		return nil, NewConfigurationError("prompt cannot be empty")
	}

	if !req.Shape.Valid() {
		return nil, NewConfigurationError("unknown api shape %q", req.Shape)
	}

	entry, err := a.pricing.PriceFor(ctx, req.Model)
	if err != nil {
		return nil, err
	}

	client, err := a.registry.GetByModel(ctx, req.Model)
	if err != nil {
		return nil, NewConfigurationError("provider %s is not configured for model %s: %v",
			entry.Provider, req.Model, err)
	}

	ctx = observability.WithProvider(ctx, client.Name())
	ctx = observability.WithModel(ctx, req.Model)
	ctx = observability.WithShape(ctx, string(req.Shape))
	logger := observability.FromContext(ctx)

	shapeReq := &ShapeRequest{
		Model:       req.Model,
		Shape:       req.Shape,
		Prompt:      req.Prompt,
		Temperature: nil,
	}

	temperatureApplied := false
	if req.Temperature != nil {
		if entry.SupportsTemperature(req.Shape) {
			shapeReq.Temperature = req.Temperature
			temperatureApplied = true
		} else {
			logger.Warn("temperature not supported for model and shape, using backend default",
				observability.Float64("temperature", *req.Temperature))
		}
	}

	start := time.Now()
	resp, err := client.Call(ctx, shapeReq)
	latency := time.Since(start)

	if err != nil {
		logger.Error("invocation failed",
			observability.Duration("latency", latency),
			observability.Error(err))
		return nil, toProviderError(client.Name(), req, err)
	}

	result, err := normalize(req, resp, latency)
	if err != nil {
		logger.Error("invocation returned malformed response", observability.Error(err))
		return nil, err
	}
	result.TemperatureApplied = temperatureApplied

	logger.Debug("invocation succeeded",
		observability.Float64("latency_ms", result.LatencyMS),
		observability.Int("input_tokens", result.InputTokens),
		observability.Int("output_tokens", result.OutputTokens),
		observability.Bool("temperature_applied", result.TemperatureApplied))

	return result, nil
}

// normalize converts a tagged shape response into an InvocationResult.
func normalize(req *InvocationRequest, resp ShapeResponse, latency time.Duration) (*InvocationResult, error) {
	var (
		inputTokens, outputTokens *int64
		inputField, outputField   string
		text                      string
	)

	switch r := resp.(type) {
	case *ChatShapeResponse:
		if r == nil {
			return nil, malformed(req, "empty chat response")
		}
		inputTokens, outputTokens = r.PromptTokens, r.CompletionTokens
		inputField, outputField = "prompt_tokens", "completion_tokens"
		text = r.Content
	case *ResponsesShapeResponse:
		if r == nil {
			return nil, malformed(req, "empty responses response")
		}
		inputTokens, outputTokens = r.InputTokens, r.OutputTokens
		inputField, outputField = "input_tokens", "output_tokens"
		text = r.OutputText
	default:
		return nil, malformed(req, fmt.Sprintf("unexpected response type %T", resp))
	}

	if got := resp.shape(); got != req.Shape {
		return nil, malformed(req, fmt.Sprintf("expected %s response, got %s", req.Shape, got))
	}

	if inputTokens == nil {
		return nil, malformed(req, "missing usage field "+inputField)
	}
	if outputTokens == nil {
		return nil, malformed(req, "missing usage field "+outputField)
	}
	if *inputTokens < 0 || *outputTokens < 0 {
		return nil, malformed(req, "negative token usage")
	}

	return &InvocationResult{
		Model:              req.Model,
		Shape:              req.Shape,
		LatencyMS:          max(float64(latency)/float64(time.Millisecond), 0),
		InputTokens:        int(*inputTokens),
		OutputTokens:       int(*outputTokens),
		ResponseText:       text,
		TemperatureApplied: false,
	}, nil
}

func malformed(req *InvocationRequest, reason string) *MalformedResponseError {
	return &MalformedResponseError{Model: req.Model, Shape: req.Shape, Reason: reason}
}

// toProviderError keeps typed errors from the client and wraps everything else.
func toProviderError(provider string, req *InvocationRequest, err error) error {
	var malformedErr *MalformedResponseError
	if errors.As(err, &malformedErr) {
		return err
	}

	var providerErr *ProviderError
	if errors.As(err, &providerErr) {
		enriched := *providerErr
		if enriched.Provider == "" {
			enriched.Provider = provider
		}
		if enriched.Model == "" {
			enriched.Model = req.Model
		}
		if enriched.Shape == "" {
			enriched.Shape = req.Shape
		}
		return &enriched
	}

	return &ProviderError{
		Provider:   provider,
		Model:      req.Model,
		Shape:      req.Shape,
		StatusCode: 0,
		Message:    err.Error(),
		Err:        err,
	}
}
