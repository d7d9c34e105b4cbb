package metrics_test

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/davidbz/llmbench/internal/domain"
	"github.com/davidbz/llmbench/internal/metrics"
)

func TestObserver_Success(t *testing.T) {
	observer := metrics.NewObserver(prometheus.NewRegistry())
	ctx := context.Background()

	req := &domain.InvocationRequest{Model: "m1", Shape: domain.ShapeChat, Prompt: "ping"}
	result := &domain.InvocationResult{Model: "m1", Shape: domain.ShapeChat, LatencyMS: 250, InputTokens: 10, OutputTokens: 5}
	cost := &domain.CostBreakdown{Total: decimal.RequireFromString("0.0003")}

	observer.ObserveInvocation(ctx, req, result, cost, nil)
	observer.ObserveInvocation(ctx, req, result, cost, nil)

	require.InDelta(t, 2, testutil.ToFloat64(observer.Invocations.WithLabelValues("m1", "chat", "ok")), 1e-9)
	require.InDelta(t, 20, testutil.ToFloat64(observer.InputTokens.WithLabelValues("m1", "chat")), 1e-9)
	require.InDelta(t, 10, testutil.ToFloat64(observer.OutputTokens.WithLabelValues("m1", "chat")), 1e-9)
	require.InDelta(t, 0.0006, testutil.ToFloat64(observer.CostCents.WithLabelValues("m1", "chat")), 1e-12)
	require.Equal(t, 1, testutil.CollectAndCount(observer.Latency))
}

func TestObserver_Failures(t *testing.T) {
	observer := metrics.NewObserver(prometheus.NewRegistry())
	ctx := context.Background()
	req := &domain.InvocationRequest{Model: "m1", Shape: domain.ShapeResponses, Prompt: "ping"}

	tests := []struct {
		name   string
		err    error
		status string
	}{
		{
			name:   "upstream status",
			err:    &domain.ProviderError{Provider: "openai", StatusCode: 429, Message: "rate limited"},
			status: "429",
		},
		{
			name:   "transport error",
			err:    &domain.ProviderError{Provider: "openai", Message: "connection reset"},
			status: "transport_error",
		},
		{
			name:   "malformed",
			err:    &domain.MalformedResponseError{Model: "m1", Shape: domain.ShapeResponses, Reason: "missing usage"},
			status: "malformed",
		},
		{
			name:   "configuration",
			err:    domain.NewConfigurationError("bad"),
			status: "invalid",
		},
		{
			name:   "other",
			err:    errors.New("boom"),
			status: "error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			observer.ObserveInvocation(ctx, req, nil, nil, tt.err)
			require.InDelta(t, 1,
				testutil.ToFloat64(observer.Invocations.WithLabelValues("m1", "responses", tt.status)), 1e-9)
		})
	}

	require.Equal(t, 0, testutil.CollectAndCount(observer.InputTokens))
}

func TestObserver_NilRequest(t *testing.T) {
	observer := metrics.NewObserver(prometheus.NewRegistry())

	require.NotPanics(t, func() {
		observer.ObserveInvocation(context.Background(), nil, nil, nil, nil)
	})
}
