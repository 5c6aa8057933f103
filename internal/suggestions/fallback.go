// internal/suggestions/fallback.go
package suggestions

import (
	"fmt"
	"math"
	"sort"

	"trip-suggestions/internal/models"
	"trip-suggestions/internal/suggestions/seed"
)

// Fallback ranks seeds by intrinsic popularity alone. It cannot fail and is
// used whenever the personalised pipeline does not complete.
// maxResults <= 0 selects DefaultMaxResults.
func Fallback(seeds []seed.Seed, maxResults int) []models.ScoredSuggestion {
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}

	ordered := make([]seed.Seed, len(seeds))
	copy(ordered, seeds)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Popularity > ordered[j].Popularity
	})

	total := len(ordered)
	if len(ordered) > maxResults {
		ordered = ordered[:maxResults]
	}

	out := make([]models.ScoredSuggestion, 0, len(ordered))
	for i, s := range ordered {
		out = append(out, models.ScoredSuggestion{
			Destination:    s.Destination(),
			RelevanceScore: math.Max(0, math.Min(s.Popularity/100, 1.0)),
			MatchReasons:   []string{fmt.Sprintf("Popular destination (#%d of %d)", i+1, total)},
		})
	}
	return out
}
