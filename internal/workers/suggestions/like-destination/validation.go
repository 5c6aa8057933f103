// internal/workers/suggestions/like-destination/validation.go
package likedestination

import "trip-suggestions/internal/common/validation"

const inputSchema = `{
	"type": "object",
	"required": ["userId", "destinationId"],
	"properties": {
		"userId":        {"type": "string", "minLength": 1},
		"destinationId": {"type": "string", "minLength": 1}
	}
}`

var inputValidator = validation.MustCompile(inputSchema)
