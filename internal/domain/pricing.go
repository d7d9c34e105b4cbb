package domain

import (
	"context"
	"slices"

	"github.com/shopspring/decimal"
)

// PricingEntry contains per-token pricing and capabilities for a model.
// Prices are in cents per token.
type PricingEntry struct {
	Model                  string
	Provider               string
	InputPricePerToken     decimal.Decimal
	OutputPricePerToken    decimal.Decimal
	TemperatureUnsupported []APIShape
}

// SupportsTemperature reports whether a temperature override is honored for the shape.
func (p PricingEntry) SupportsTemperature(shape APIShape) bool {
	return !slices.Contains(p.TemperatureUnsupported, shape)
}

// PricingTable is the read-only model pricing configuration.
type PricingTable interface {
	// PriceFor returns the pricing entry for a model or an UnknownModelError.
	PriceFor(ctx context.Context, model string) (PricingEntry, error)

	// Entries returns every entry sorted by model.
	Entries(ctx context.Context) []PricingEntry
}

// CostCalculator prices invocation results.
type CostCalculator interface {
	// Calculate returns the cost breakdown for a result.
	Calculate(ctx context.Context, result *InvocationResult) (CostBreakdown, error)
}
