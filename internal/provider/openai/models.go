package openai

import "sort"

// buildModelSet creates a map for O(1) lookup.
func buildModelSet(models []string) map[string]bool {
	set := make(map[string]bool, len(models))
	for _, model := range models {
		if model != "" {
			set[model] = true
		}
	}
	return set
}

func sortedModels(set map[string]bool) []string {
	models := make([]string, 0, len(set))
	for model := range set {
		models = append(models, model)
	}
	sort.Strings(models)
	return models
}
