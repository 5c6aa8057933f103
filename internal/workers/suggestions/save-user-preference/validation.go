// internal/workers/suggestions/save-user-preference/validation.go
package saveuserpreference

import "trip-suggestions/internal/common/validation"

const inputSchema = `{
	"type": "object",
	"required": ["userId", "destinationId", "rating", "tripType", "budgetLevel", "durationDays"],
	"properties": {
		"userId":          {"type": "string", "minLength": 1},
		"destinationId":   {"type": "string", "minLength": 1},
		"destinationName": {"type": "string"},
		"country":         {"type": "string"},
		"rating":          {"type": "integer", "minimum": 1, "maximum": 5},
		"tripType":        {"type": "string", "minLength": 1},
		"budgetLevel":     {"type": "string", "minLength": 1},
		"durationDays":    {"type": "integer", "minimum": 1},
		"likedPlaceIds":   {"type": "array", "items": {"type": "string"}}
	}
}`

var inputValidator = validation.MustCompile(inputSchema)
