// Package echo provides an offline shape client that echoes the prompt back.
// It makes no external calls and produces deterministic usage, so benchmarks can
// be exercised end to end without credentials.
package echo

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/davidbz/llmbench/internal/domain"
	"github.com/davidbz/llmbench/internal/observability"
)

const (
	// ProviderName is the registry name of the echo provider.
	ProviderName = "echo"
	modelName    = "echo4"
)

// Config contains echo provider configuration.
type Config struct {
	LatencyMS int `env:"ECHO_LATENCY_MS" envDefault:"0"`
}

// Provider implements domain.ShapeClient without network access.
type Provider struct {
	name            string
	latency         time.Duration
	supportedModels map[string]bool
}

// NewProvider creates a new echo provider.
func NewProvider(config Config) *Provider {
	return &Provider{
		name:    ProviderName,
		latency: time.Duration(max(config.LatencyMS, 0)) * time.Millisecond,
		supportedModels: map[string]bool{
			modelName: true,
		},
	}
}

// Call echoes the prompt in the requested shape.
func (p *Provider) Call(ctx context.Context, req *domain.ShapeRequest) (domain.ShapeResponse, error) {
	if req == nil {
		return nil, errors.New("request cannot be nil")
	}

	if !p.supportedModels[req.Model] {
		return nil, &domain.ProviderError{
			Provider:   p.name,
			Model:      req.Model,
			Shape:      req.Shape,
			StatusCode: http.StatusNotFound,
			Message:    fmt.Sprintf("model %s is not supported by echo provider", req.Model),
			Err:        nil,
		}
	}

	if err := p.wait(ctx); err != nil {
		return nil, err
	}

	logger := observability.FromContext(ctx)
	logger.Debug("echoing request")

	switch req.Shape {
	case domain.ShapeChat:
		content := buildEchoContent("user", req.Prompt)
		return &domain.ChatShapeResponse{
			Model:            req.Model,
			Content:          content,
			PromptTokens:     countTokens(req.Prompt),
			CompletionTokens: countTokens(content),
		}, nil
	case domain.ShapeResponses:
		return &domain.ResponsesShapeResponse{
			Model:        req.Model,
			OutputText:   req.Prompt,
			InputTokens:  countTokens(req.Prompt),
			OutputTokens: countTokens(req.Prompt),
		}, nil
	default:
		return nil, domain.NewConfigurationError("unknown api shape %q", req.Shape)
	}
}

// wait simulates network latency.
func (p *Provider) wait(ctx context.Context) error {
	if p.latency <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(p.latency)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Name returns the provider identifier.
func (p *Provider) Name() string {
	return p.name
}

// IsModelSupported checks if the provider supports the given model.
func (p *Provider) IsModelSupported(_ context.Context, model string) bool {
	return p.supportedModels[model]
}

// SupportedModels returns a list of all models this provider supports.
func (p *Provider) SupportedModels(_ context.Context) []string {
	models := make([]string, 0, len(p.supportedModels))
	for model := range p.supportedModels {
		models = append(models, model)
	}
	return models
}

// buildEchoContent renders the prompt as a single chat turn.
func buildEchoContent(role, prompt string) string {
	if prompt == "" {
		return ""
	}
	return fmt.Sprintf("[%s]: %s", role, strings.TrimSpace(prompt))
}

// countTokens performs simple word-based token counting.
func countTokens(content string) *int64 {
	n := int64(len(strings.Fields(content)))
	return &n
}
