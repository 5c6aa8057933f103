// internal/workers/suggestions/get-smart-suggestions/validation.go
package getsmartsuggestions

import "trip-suggestions/internal/common/validation"

// inputSchema leaves the root open because Zeebe hands over every variable
// in scope, not just the ones this worker reads.
const inputSchema = `{
	"type": "object",
	"required": ["userId"],
	"properties": {
		"userId": {"type": "string", "minLength": 1},
		"filters": {
			"type": ["object", "null"],
			"properties": {
				"tripType":   {"type": "string"},
				"budget":     {"type": "string"},
				"continent":  {"type": "string"},
				"maxResults": {"type": "integer", "minimum": 1, "maximum": 100}
			}
		}
	}
}`

var inputValidator = validation.MustCompile(inputSchema)
