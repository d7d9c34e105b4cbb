package domain

import "context"

// ShapeClient performs the single backend call for one API shape.
type ShapeClient interface {
	// Call sends the request and returns the raw shape response.
	Call(ctx context.Context, req *ShapeRequest) (ShapeResponse, error)

	// Name returns the provider identifier.
	Name() string

	// IsModelSupported checks if the provider serves the given model.
	IsModelSupported(ctx context.Context, model string) bool

	// SupportedModels returns every model the provider serves.
	SupportedModels(ctx context.Context) []string
}

// ProviderRegistry manages available provider clients.
type ProviderRegistry interface {
	// Register adds a provider client to the registry.
	Register(ctx context.Context, client ShapeClient) error

	// Get retrieves a provider client by name.
	Get(ctx context.Context, providerName string) (ShapeClient, error)

	// GetByModel retrieves the provider client that serves a model.
	GetByModel(ctx context.Context, model string) (ShapeClient, error)

	// List returns all registered provider names.
	List(ctx context.Context) ([]string, error)
}

// Invoker times one model/shape call and normalizes its result.
type Invoker interface {
	Invoke(ctx context.Context, req *InvocationRequest) (*InvocationResult, error)
}

// Benchmarker runs a models × shapes benchmark.
type Benchmarker interface {
	Run(ctx context.Context, req *BenchmarkRequest) (*BenchmarkRun, error)
}

// InvocationObserver is notified after every invocation, successful or not.
type InvocationObserver interface {
	ObserveInvocation(ctx context.Context, req *InvocationRequest, result *InvocationResult, cost *CostBreakdown, err error)
}

// RunRecorder persists finished benchmark runs.
type RunRecorder interface {
	Record(ctx context.Context, run *BenchmarkRun) error
}

// EventPublisher publishes events for observability.
type EventPublisher interface {
	// Publish publishes an event with the given type and data.
	Publish(ctx context.Context, eventType string, data map[string]interface{})
}
