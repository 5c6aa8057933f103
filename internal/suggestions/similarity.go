// internal/suggestions/similarity.go
package suggestions

import (
	"math"
	"regexp"
	"strconv"

	"trip-suggestions/internal/models"
)

const (
	countryWeight  = 0.4
	tripTypeWeight = 0.3
	budgetWeight   = 0.2
	durationWeight = 0.1
	ratingWeight   = 0.2

	durationToleranceDays = 2
	highRating            = 4
)

var leadingInt = regexp.MustCompile(`\d+`)

// Similarity averages per-record match scores over prefs. A single record can
// exceed 1.0 (max 1.2); only the final relevance score is clamped.
func Similarity(candidate *models.Destination, prefs []models.DestinationPreference) float64 {
	if len(prefs) == 0 {
		return 0
	}

	days, hasDays := firstInteger(candidate.SuggestedDuration)

	total := 0.0
	for i := range prefs {
		p := &prefs[i]
		score := 0.0
		if p.Country == candidate.Country {
			score += countryWeight
		}
		if candidate.HasTag(string(p.TripType)) {
			score += tripTypeWeight
		}
		if candidate.Cost.Tier == p.BudgetLevel {
			score += budgetWeight
		}
		if hasDays && math.Abs(float64(days-p.DurationDays)) <= durationToleranceDays {
			score += durationWeight
		}
		if p.Rating >= highRating {
			score += ratingWeight
		}
		total += score
	}
	return total / float64(len(prefs))
}

// firstInteger extracts the first run of digits, e.g. "5-7 days" -> 5.
func firstInteger(s string) (int, bool) {
	m := leadingInt.FindString(s)
	if m == "" {
		return 0, false
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return 0, false
	}
	return n, true
}
