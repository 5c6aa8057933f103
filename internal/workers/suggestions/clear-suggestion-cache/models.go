// internal/workers/suggestions/clear-suggestion-cache/models.go
package clearsuggestioncache

import "time"

type Output struct {
	Cleared   bool      `json:"cleared"`
	ClearedAt time.Time `json:"clearedAt"`
}
