// internal/workers/suggestions/get-smart-suggestions/models.go
package getsmartsuggestions

import "trip-suggestions/internal/models"

type Input struct {
	UserID  string             `json:"userId"`
	Filters models.FilterInput `json:"filters"`
}

type Output struct {
	Suggestions    []models.ScoredSuggestion `json:"suggestions"`
	Degraded       bool                      `json:"degraded"`
	DegradedReason string                    `json:"degradedReason,omitempty"`
	Count          int                       `json:"count"`
}
