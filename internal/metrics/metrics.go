// Package metrics exports per-invocation Prometheus metrics.
package metrics

import (
	"context"
	"errors"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/davidbz/llmbench/internal/domain"
)

const namespace = "llmbench"

// Observer implements domain.InvocationObserver on a Prometheus registry.
type Observer struct {
	Invocations  *prometheus.CounterVec
	Latency      *prometheus.HistogramVec
	InputTokens  *prometheus.CounterVec
	OutputTokens *prometheus.CounterVec
	CostCents    *prometheus.CounterVec
}

// NewObserver registers the benchmark metrics with reg.
func NewObserver(reg prometheus.Registerer) *Observer {
	factory := promauto.With(reg)

	return &Observer{
		Invocations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "invocations_total",
				Help:      "Invocations by model, api shape and outcome.",
			},
			[]string{"model", "api_shape", "status"},
		),
		Latency: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "invocation_latency_seconds",
				Help:      "Timed call window of successful invocations.",
				Buckets:   []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 30, 60},
			},
			[]string{"model", "api_shape"},
		),
		InputTokens: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "input_tokens_total",
				Help:      "Input tokens reported by backends.",
			},
			[]string{"model", "api_shape"},
		),
		OutputTokens: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "output_tokens_total",
				Help:      "Output tokens reported by backends.",
			},
			[]string{"model", "api_shape"},
		),
		CostCents: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cost_cents_total",
				Help:      "Derived invocation cost in cents.",
			},
			[]string{"model", "api_shape"},
		),
	}
}

// ObserveInvocation records the outcome of one invocation.
func (o *Observer) ObserveInvocation(
	_ context.Context,
	req *domain.InvocationRequest,
	result *domain.InvocationResult,
	cost *domain.CostBreakdown,
	err error,
) {
	if req == nil {
		return
	}
	shape := string(req.Shape)

	if err != nil {
		o.Invocations.WithLabelValues(req.Model, shape, status(err)).Inc()
		return
	}
	o.Invocations.WithLabelValues(req.Model, shape, "ok").Inc()

	if result == nil {
		return
	}
	o.Latency.WithLabelValues(req.Model, shape).Observe(result.LatencyMS / 1000)
	o.InputTokens.WithLabelValues(req.Model, shape).Add(float64(result.InputTokens))
	o.OutputTokens.WithLabelValues(req.Model, shape).Add(float64(result.OutputTokens))

	if cost != nil {
		o.CostCents.WithLabelValues(req.Model, shape).Add(cost.Total.InexactFloat64())
	}
}

// status labels an error by kind, using the upstream status when there is one.
func status(err error) string {
	var providerErr *domain.ProviderError
	switch {
	case errors.As(err, &providerErr) && providerErr.StatusCode > 0:
		return strconv.Itoa(providerErr.StatusCode)
	case errors.Is(err, domain.ErrProvider):
		return "transport_error"
	case errors.Is(err, domain.ErrMalformedResponse):
		return "malformed"
	case errors.Is(err, domain.ErrConfiguration), errors.Is(err, domain.ErrUnknownModel):
		return "invalid"
	default:
		return "error"
	}
}
