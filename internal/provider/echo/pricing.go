package echo

import (
	"github.com/shopspring/decimal"

	"github.com/davidbz/llmbench/internal/domain"
)

// Echo is priced at a nominal rate so every known model keeps positive prices.
var (
	echo4InputPricePerToken  = decimal.RequireFromString("0.000001")
	echo4OutputPricePerToken = decimal.RequireFromString("0.000001")
)

// PricingEntries returns the echo pricing catalog.
func PricingEntries() []domain.PricingEntry {
	return []domain.PricingEntry{
		{
			Model:                  modelName,
			Provider:               ProviderName,
			InputPricePerToken:     echo4InputPricePerToken,
			OutputPricePerToken:    echo4OutputPricePerToken,
			TemperatureUnsupported: nil,
		},
	}
}
