// Package openai provides a shape client for the OpenAI API using the official SDK.
// It performs exactly one chat.completions or responses call per request and hands
// the raw usage back to the invocation adapter untouched.
package openai

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/responses"
	"github.com/openai/openai-go/shared"

	"github.com/davidbz/llmbench/internal/domain"
	"github.com/davidbz/llmbench/internal/observability"
)

// Provider implements domain.ShapeClient for OpenAI.
type Provider struct {
	client openai.Client
	name   string
	models map[string]bool
}

// NewProvider creates a new OpenAI provider serving the given models.
func NewProvider(config Config, models []string) (*Provider, error) {
	if !config.Configured() {
		return nil, domain.NewConfigurationError("OPENAI_API_KEY is not set")
	}

	opts := []option.RequestOption{
		option.WithAPIKey(config.APIKey),
		// Retries would fold several attempts into one latency sample.
		option.WithMaxRetries(max(config.MaxRetries, 0)),
	}

	if config.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(config.BaseURL))
	}

	if config.Timeout > 0 {
		opts = append(opts, option.WithRequestTimeout(time.Duration(config.Timeout)*time.Second))
	}

	return &Provider{
		client: openai.NewClient(opts...),
		name:   ProviderName,
		models: buildModelSet(models),
	}, nil
}

// Call performs one request in the requested shape.
func (p *Provider) Call(ctx context.Context, req *domain.ShapeRequest) (domain.ShapeResponse, error) {
	if req == nil {
		return nil, errors.New("request cannot be nil")
	}

	switch req.Shape {
	case domain.ShapeChat:
		return p.callChat(ctx, req)
	case domain.ShapeResponses:
		return p.callResponses(ctx, req)
	default:
		return nil, domain.NewConfigurationError("unknown api shape %q", req.Shape)
	}
}

func (p *Provider) callChat(ctx context.Context, req *domain.ShapeRequest) (domain.ShapeResponse, error) {
	logger := observability.FromContext(ctx)
	logger.Debug("calling OpenAI chat completions API")

	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(req.Model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(req.Prompt),
		},
	}
	if req.Temperature != nil {
		params.Temperature = openai.Float(*req.Temperature)
	}

	resp, err := p.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return nil, p.wrapError(req, err)
	}

	out := &domain.ChatShapeResponse{
		Model:            resp.Model,
		Content:          "",
		PromptTokens:     nil,
		CompletionTokens: nil,
	}
	if len(resp.Choices) > 0 {
		out.Content = resp.Choices[0].Message.Content
	}
	if resp.JSON.Usage.Valid() {
		if resp.Usage.JSON.PromptTokens.Valid() {
			out.PromptTokens = ptr(resp.Usage.PromptTokens)
		}
		if resp.Usage.JSON.CompletionTokens.Valid() {
			out.CompletionTokens = ptr(resp.Usage.CompletionTokens)
		}
	}

	return out, nil
}

func (p *Provider) callResponses(ctx context.Context, req *domain.ShapeRequest) (domain.ShapeResponse, error) {
	logger := observability.FromContext(ctx)
	logger.Debug("calling OpenAI responses API")

	params := responses.ResponseNewParams{
		Model: shared.ResponsesModel(req.Model),
		Input: responses.ResponseNewParamsInputUnion{
			OfString: openai.String(req.Prompt),
		},
	}
	if req.Temperature != nil {
		params.Temperature = openai.Float(*req.Temperature)
	}

	resp, err := p.client.Responses.New(ctx, params)
	if err != nil {
		return nil, p.wrapError(req, err)
	}

	out := &domain.ResponsesShapeResponse{
		Model:        string(resp.Model),
		OutputText:   resp.OutputText(),
		InputTokens:  nil,
		OutputTokens: nil,
	}
	if resp.JSON.Usage.Valid() {
		if resp.Usage.JSON.InputTokens.Valid() {
			out.InputTokens = ptr(resp.Usage.InputTokens)
		}
		if resp.Usage.JSON.OutputTokens.Valid() {
			out.OutputTokens = ptr(resp.Usage.OutputTokens)
		}
	}

	return out, nil
}

// wrapError maps SDK errors onto domain.ProviderError, keeping the upstream status.
func (p *Provider) wrapError(req *domain.ShapeRequest, err error) error {
	providerErr := &domain.ProviderError{
		Provider:   p.name,
		Model:      req.Model,
		Shape:      req.Shape,
		StatusCode: 0,
		Message:    err.Error(),
		Err:        err,
	}

	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		providerErr.StatusCode = apiErr.StatusCode
		providerErr.Message = apiErr.Message
		if providerErr.Message == "" {
			providerErr.Message = http.StatusText(apiErr.StatusCode)
		}
	}

	return providerErr
}

// Name returns the provider identifier.
func (p *Provider) Name() string {
	return p.name
}

// IsModelSupported checks if the provider serves the given model.
func (p *Provider) IsModelSupported(_ context.Context, model string) bool {
	return p.models[model]
}

// SupportedModels returns the served models, sorted.
func (p *Provider) SupportedModels(_ context.Context) []string {
	return sortedModels(p.models)
}

func ptr(v int64) *int64 {
	return &v
}
