package echo_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/davidbz/llmbench/internal/domain"
	"github.com/davidbz/llmbench/internal/provider/echo"
)

func TestNewProvider(t *testing.T) {
	provider := echo.NewProvider(echo.Config{})

	require.NotNil(t, provider)
	require.Equal(t, "echo", provider.Name())
}

func TestCall_Chat(t *testing.T) {
	provider := echo.NewProvider(echo.Config{})
	ctx := context.Background()

	resp, err := provider.Call(ctx, &domain.ShapeRequest{
		Model:  "echo4",
		Shape:  domain.ShapeChat,
		Prompt: "Hello world",
	})

	require.NoError(t, err)
	chat, ok := resp.(*domain.ChatShapeResponse)
	require.True(t, ok)
	require.Equal(t, "echo4", chat.Model)
	require.Equal(t, "[user]: Hello world", chat.Content)
	require.Equal(t, int64(2), *chat.PromptTokens)     // "Hello" "world"
	require.Equal(t, int64(3), *chat.CompletionTokens) // "[user]:" "Hello" "world"
}

func TestCall_Responses(t *testing.T) {
	provider := echo.NewProvider(echo.Config{})
	ctx := context.Background()

	resp, err := provider.Call(ctx, &domain.ShapeRequest{
		Model:  "echo4",
		Shape:  domain.ShapeResponses,
		Prompt: "one two three",
	})

	require.NoError(t, err)
	out, ok := resp.(*domain.ResponsesShapeResponse)
	require.True(t, ok)
	require.Equal(t, "one two three", out.OutputText)
	require.Equal(t, int64(3), *out.InputTokens)
	require.Equal(t, int64(3), *out.OutputTokens)
}

func TestCall_NilRequest(t *testing.T) {
	provider := echo.NewProvider(echo.Config{})

	resp, err := provider.Call(context.Background(), nil)

	require.Error(t, err)
	require.Nil(t, resp)
	require.Contains(t, err.Error(), "request cannot be nil")
}

func TestCall_UnsupportedModel(t *testing.T) {
	provider := echo.NewProvider(echo.Config{})

	resp, err := provider.Call(context.Background(), &domain.ShapeRequest{
		Model:  "gpt-4",
		Shape:  domain.ShapeChat,
		Prompt: "Hello",
	})

	require.Error(t, err)
	require.Nil(t, resp)
	require.ErrorIs(t, err, domain.ErrProvider)
	require.Contains(t, err.Error(), "not supported")
}

func TestCall_UnknownShape(t *testing.T) {
	provider := echo.NewProvider(echo.Config{})

	_, err := provider.Call(context.Background(), &domain.ShapeRequest{
		Model:  "echo4",
		Shape:  "batch",
		Prompt: "Hello",
	})

	require.ErrorIs(t, err, domain.ErrConfiguration)
}

func TestCall_Latency(t *testing.T) {
	provider := echo.NewProvider(echo.Config{LatencyMS: 20})

	start := time.Now()
	_, err := provider.Call(context.Background(), &domain.ShapeRequest{
		Model:  "echo4",
		Shape:  domain.ShapeChat,
		Prompt: "Hello",
	})

	require.NoError(t, err)
	require.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
}

func TestCall_ContextCancellation(t *testing.T) {
	provider := echo.NewProvider(echo.Config{LatencyMS: 1000})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	resp, err := provider.Call(ctx, &domain.ShapeRequest{
		Model:  "echo4",
		Shape:  domain.ShapeResponses,
		Prompt: "Hello",
	})

	require.Nil(t, resp)
	require.True(t, errors.Is(err, context.Canceled))
}

func TestIsModelSupported(t *testing.T) {
	provider := echo.NewProvider(echo.Config{})
	ctx := context.Background()

	require.True(t, provider.IsModelSupported(ctx, "echo4"))
	require.False(t, provider.IsModelSupported(ctx, "gpt-4"))
	require.False(t, provider.IsModelSupported(ctx, "echo3"))
	require.False(t, provider.IsModelSupported(ctx, ""))
}

func TestSupportedModels(t *testing.T) {
	provider := echo.NewProvider(echo.Config{})

	models := provider.SupportedModels(context.Background())

	require.Len(t, models, 1)
	require.Contains(t, models, "echo4")
}

func TestPricingEntries(t *testing.T) {
	entries := echo.PricingEntries()

	require.Len(t, entries, 1)
	require.Equal(t, "echo4", entries[0].Model)
	require.Equal(t, "echo", entries[0].Provider)
	require.True(t, entries[0].InputPricePerToken.IsPositive())
	require.True(t, entries[0].OutputPricePerToken.IsPositive())
}
