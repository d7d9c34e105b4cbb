package domain

import (
	"context"
	"errors"
	"fmt"
	"sort"
)

// StaticPricingTable stores pricing entries in memory. It is immutable once built.
type StaticPricingTable struct {
	pricing map[string]PricingEntry
}

// NewStaticPricingTable validates the entries and builds a pricing table.
func NewStaticPricingTable(entries ...PricingEntry) (*StaticPricingTable, error) {
	pricing := make(map[string]PricingEntry, len(entries))

	for _, entry := range entries {
		if err := validateEntry(entry); err != nil {
			return nil, err
		}

		if _, exists := pricing[entry.Model]; exists {
			return nil, fmt.Errorf("duplicate pricing for model: %s", entry.Model)
		}

		pricing[entry.Model] = entry
	}

	return &StaticPricingTable{pricing: pricing}, nil
}

// PriceFor retrieves pricing for a model.
func (t *StaticPricingTable) PriceFor(_ context.Context, model string) (PricingEntry, error) {
	entry, exists := t.pricing[model]
	if !exists {
		return PricingEntry{}, &UnknownModelError{Model: model}
	}

	return entry, nil
}

// Entries returns every entry sorted by model.
func (t *StaticPricingTable) Entries(_ context.Context) []PricingEntry {
	entries := make([]PricingEntry, 0, len(t.pricing))
	for _, entry := range t.pricing {
		entries = append(entries, entry)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Model < entries[j].Model
	})

	return entries
}

// Models returns the models priced for a provider, sorted.
func (t *StaticPricingTable) Models(provider string) []string {
	var models []string
	for model, entry := range t.pricing {
		if entry.Provider == provider {
			models = append(models, model)
		}
	}

	sort.Strings(models)
	return models
}

// MergePricing overlays overrides on top of base entries by model id.
func MergePricing(base []PricingEntry, overrides []PricingEntry) []PricingEntry {
	merged := make([]PricingEntry, 0, len(base)+len(overrides))
	index := make(map[string]int, len(base)+len(overrides))

	for _, entry := range append(append([]PricingEntry{}, base...), overrides...) {
		if i, ok := index[entry.Model]; ok {
			merged[i] = entry
			continue
		}
		index[entry.Model] = len(merged)
		merged = append(merged, entry)
	}

	return merged
}

func validateEntry(entry PricingEntry) error {
	if entry.Model == "" {
		return errors.New("model cannot be empty")
	}

	if entry.Provider == "" {
		return fmt.Errorf("provider cannot be empty for model: %s", entry.Model)
	}

	if !entry.InputPricePerToken.IsPositive() || !entry.OutputPricePerToken.IsPositive() {
		return fmt.Errorf("prices must be positive for model: %s", entry.Model)
	}

	for _, shape := range entry.TemperatureUnsupported {
		if !shape.Valid() {
			return fmt.Errorf("unknown api shape %q for model: %s", shape, entry.Model)
		}
	}

	return nil
}
