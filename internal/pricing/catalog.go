// Package pricing builds the model pricing table from the built-in provider
// catalogs and an optional YAML override file.
package pricing

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/davidbz/llmbench/internal/domain"
	"github.com/davidbz/llmbench/internal/provider/echo"
	"github.com/davidbz/llmbench/internal/provider/openai"
)

// Catalog is the on-disk pricing file.
type Catalog struct {
	Currency      string       `yaml:"currency"`
	ReferenceTime string       `yaml:"reference_time"`
	Models        []ModelPrice `yaml:"models"`
}

// ModelPrice is one catalog row. Prices are decimal strings in cents per token.
type ModelPrice struct {
	Model                  string   `yaml:"model"`
	Provider               string   `yaml:"provider"`
	InputPricePerToken     string   `yaml:"input_price_per_token"`
	OutputPricePerToken    string   `yaml:"output_price_per_token"`
	TemperatureUnsupported []string `yaml:"temperature_unsupported"`
}

// Config selects the override file.
type Config struct {
	File string `env:"PRICING_FILE"`
}

// Defaults returns the built-in catalog of every provider.
func Defaults() []domain.PricingEntry {
	return append(openai.PricingEntries(), echo.PricingEntries()...)
}

// LoadFile reads a YAML catalog and expands environment variables.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read pricing file: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	catalog := &Catalog{Currency: "cents"}
	if err := yaml.Unmarshal([]byte(expanded), catalog); err != nil {
		return nil, fmt.Errorf("parse pricing file: %w", err)
	}

	if catalog.Currency != "cents" {
		return nil, fmt.Errorf("unsupported pricing currency %q (want cents)", catalog.Currency)
	}

	if catalog.ReferenceTime != "" {
		if _, err := ParseReferenceTime(catalog.ReferenceTime); err != nil {
			return nil, err
		}
	}

	return catalog, nil
}

// ParseReferenceTime accepts a date (2025-12-01) or a month and year in any
// case (Dec 2025, DEC 2025).
func ParseReferenceTime(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if t, err := time.Parse(time.DateOnly, value); err == nil {
		return t, nil
	}

	if value != "" {
		lower := strings.ToLower(value)
		if t, err := time.Parse("Jan 2006", strings.ToUpper(lower[:1])+lower[1:]); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("invalid reference_time %q (want YYYY-MM-DD or \"Mon YYYY\")", value)
}

// Entries converts the catalog rows into pricing entries.
func (c *Catalog) Entries() ([]domain.PricingEntry, error) {
	entries := make([]domain.PricingEntry, 0, len(c.Models))

	for _, row := range c.Models {
		input, err := decimal.NewFromString(row.InputPricePerToken)
		if err != nil {
			return nil, fmt.Errorf("model %s: invalid input price %q: %w", row.Model, row.InputPricePerToken, err)
		}

		output, err := decimal.NewFromString(row.OutputPricePerToken)
		if err != nil {
			return nil, fmt.Errorf("model %s: invalid output price %q: %w", row.Model, row.OutputPricePerToken, err)
		}

		var unsupported []domain.APIShape
		for _, raw := range row.TemperatureUnsupported {
			shape, err := domain.ParseAPIShape(raw)
			if err != nil {
				return nil, fmt.Errorf("model %s: %w", row.Model, err)
			}
			unsupported = append(unsupported, shape)
		}

		entries = append(entries, domain.PricingEntry{
			Model:                  row.Model,
			Provider:               row.Provider,
			InputPricePerToken:     input,
			OutputPricePerToken:    output,
			TemperatureUnsupported: unsupported,
		})
	}

	return entries, nil
}

// NewTable builds the pricing table from the defaults and the optional override file.
func NewTable(cfg Config) (*domain.StaticPricingTable, error) {
	entries := Defaults()

	if cfg.File != "" {
		catalog, err := LoadFile(cfg.File)
		if err != nil {
			return nil, err
		}

		overrides, err := catalog.Entries()
		if err != nil {
			return nil, fmt.Errorf("pricing file %s: %w", cfg.File, err)
		}

		entries = domain.MergePricing(entries, overrides)
	}

	table, err := domain.NewStaticPricingTable(entries...)
	if err != nil {
		return nil, fmt.Errorf("failed to build pricing table: %w", err)
	}

	return table, nil
}
