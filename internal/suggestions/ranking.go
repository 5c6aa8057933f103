// internal/suggestions/ranking.go
package suggestions

import (
	"sort"

	"trip-suggestions/internal/models"
)

const (
	DefaultMinRelevance = 0.3
	DefaultMaxResults   = 20
)

// Select drops entries under minRelevance, sorts by relevance descending
// (ties keep catalog order) and truncates to maxResults.
// maxResults <= 0 selects DefaultMaxResults.
func Select(in []models.ScoredSuggestion, minRelevance float64, maxResults int) []models.ScoredSuggestion {
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}

	kept := make([]models.ScoredSuggestion, 0, len(in))
	for _, s := range in {
		if s.RelevanceScore >= minRelevance {
			kept = append(kept, s)
		}
	}

	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].RelevanceScore > kept[j].RelevanceScore
	})

	if len(kept) > maxResults {
		kept = kept[:maxResults]
	}
	return kept
}
