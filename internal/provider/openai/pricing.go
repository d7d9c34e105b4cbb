package openai

import (
	"github.com/shopspring/decimal"

	"github.com/davidbz/llmbench/internal/domain"
)

// ProviderName is the registry name of the OpenAI provider.
const ProviderName = "openai"

// Prices in cents per token.
var defaultPrices = []struct {
	model         string
	input, output string
	noTemperature bool
}{
	{model: "gpt-4o-mini", input: "0.000015", output: "0.00006"},
	{model: "gpt-4.1-nano", input: "0.00001", output: "0.00004"},
	{model: "gpt-4.1-mini", input: "0.00004", output: "0.00016"},
	{model: "gpt-4o", input: "0.00025", output: "0.001"},
	// Reasoning models reject sampling overrides on both endpoints.
	{model: "gpt-5-mini", input: "0.000025", output: "0.0002", noTemperature: true},
	{model: "gpt-5-nano", input: "0.000005", output: "0.00004", noTemperature: true},
}

// PricingEntries returns the built-in OpenAI pricing catalog.
func PricingEntries() []domain.PricingEntry {
	entries := make([]domain.PricingEntry, 0, len(defaultPrices))
	for _, p := range defaultPrices {
		entry := domain.PricingEntry{
			Model:                  p.model,
			Provider:               ProviderName,
			InputPricePerToken:     decimal.RequireFromString(p.input),
			OutputPricePerToken:    decimal.RequireFromString(p.output),
			TemperatureUnsupported: nil,
		}
		if p.noTemperature {
			entry.TemperatureUnsupported = domain.AllShapes()
		}
		entries = append(entries, entry)
	}
	return entries
}
