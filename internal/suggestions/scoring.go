// internal/suggestions/scoring.go
package suggestions

import (
	"fmt"
	"math"
	"time"

	"trip-suggestions/internal/models"
)

const (
	popularityCap       = 0.3
	popularityReasonMin = 0.1
	trendingBonus       = 0.2
	similarityWeight    = 0.4
	similarityReasonMin = 0.5
	tripTypeFilterBoost = 0.3
	budgetFilterBoost   = 0.2
	continentBoost      = 0.15
	recencyBoost        = 0.1

	RecencyWindow = 30 * 24 * time.Hour
)

// Score computes one suggestion per candidate, preserving input order.
// It is pure: identical inputs (including now) produce identical output.
func Score(candidates []models.Destination, prefs []models.DestinationPreference, filters models.Filters, now time.Time) []models.ScoredSuggestion {
	out := make([]models.ScoredSuggestion, 0, len(candidates))
	for i := range candidates {
		out = append(out, scoreOne(&candidates[i], prefs, filters, now))
	}
	return out
}

func scoreOne(c *models.Destination, prefs []models.DestinationPreference, filters models.Filters, now time.Time) models.ScoredSuggestion {
	s := models.ScoredSuggestion{
		Destination:  *c,
		MatchReasons: []string{},
	}

	score := c.AIScore / 100

	popularity := math.Min(float64(c.Engagement.TotalLikes)/100, popularityCap)
	score += popularity
	if popularity > popularityReasonMin {
		s.MatchReasons = append(s.MatchReasons, fmt.Sprintf("Popular (%d likes)", c.Engagement.TotalLikes))
	}

	if c.PopularityTrend == models.TrendRising {
		score += trendingBonus
		s.TrendingBonus = trendingBonus
		s.MatchReasons = append(s.MatchReasons, "Trending destination")
	}

	s.UserSimilarity = Similarity(c, prefs)
	score += s.UserSimilarity * similarityWeight
	if s.UserSimilarity > similarityReasonMin {
		s.MatchReasons = append(s.MatchReasons, "Matches your taste")
	}

	if filters.TripType != nil && c.HasTag(string(*filters.TripType)) {
		score += tripTypeFilterBoost
		s.MatchReasons = append(s.MatchReasons, fmt.Sprintf("Great for %s trips", *filters.TripType))
	}

	if filters.Budget != nil && c.Cost.Tier == *filters.Budget {
		score += budgetFilterBoost
		s.MatchReasons = append(s.MatchReasons, fmt.Sprintf("Fits your %s budget", *filters.Budget))
	}

	if filters.Continent != nil && c.Continent == *filters.Continent {
		score += continentBoost
		s.MatchReasons = append(s.MatchReasons, fmt.Sprintf("Located in %s", *filters.Continent))
	}

	if isRecent(c.LastAIUpdate, now) {
		score += recencyBoost
		s.MatchReasons = append(s.MatchReasons, "New suggestion")
	}

	s.RelevanceScore = math.Min(score, 1.0)
	return s
}

// isRecent treats a zero timestamp or one in the future as not recent.
func isRecent(updated, now time.Time) bool {
	if updated.IsZero() {
		return false
	}
	age := now.Sub(updated)
	return age >= 0 && age <= RecencyWindow
}
