package domain

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

// StandardCostCalculator implements token-based cost calculation.
type StandardCostCalculator struct {
	pricing PricingTable
}

// NewStandardCostCalculator creates a new cost calculator.
func NewStandardCostCalculator(pricing PricingTable) *StandardCostCalculator {
	return &StandardCostCalculator{
		pricing: pricing,
	}
}

// Calculate computes the cost of a result based on its token usage and model pricing.
func (c *StandardCostCalculator) Calculate(ctx context.Context, result *InvocationResult) (CostBreakdown, error) {
	if result == nil {
		return CostBreakdown{}, errors.New("result cannot be nil")
	}

	entry, err := c.pricing.PriceFor(ctx, result.Model)
	if err != nil {
		return CostBreakdown{}, err
	}

	return ComputeCost(entry, result.InputTokens, result.OutputTokens), nil
}

// ComputeCost prices token counts against an entry. Negative counts are treated as zero.
func ComputeCost(entry PricingEntry, inputTokens, outputTokens int) CostBreakdown {
	inputCost := decimal.NewFromInt(int64(max(inputTokens, 0))).Mul(entry.InputPricePerToken)
	outputCost := decimal.NewFromInt(int64(max(outputTokens, 0))).Mul(entry.OutputPricePerToken)

	return CostBreakdown{
		InputCost:  inputCost,
		OutputCost: outputCost,
		Total:      inputCost.Add(outputCost),
	}
}
