package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSchema = `{
	"type": "object",
	"required": ["userId"],
	"properties": {
		"userId": {"type": "string", "minLength": 1},
		"filters": {
			"type": "object",
			"properties": {
				"maxResults": {"type": "integer", "minimum": 1}
			}
		}
	}
}`

func TestSchema_Valid(t *testing.T) {
	s := MustCompile(testSchema)

	res, err := s.ValidateJSON(`{"userId":"u-1","filters":{"maxResults":3}}`)
	require.NoError(t, err)
	assert.True(t, res.Valid)
	assert.Empty(t, res.Errors)
}

func TestSchema_MissingRequired(t *testing.T) {
	s := MustCompile(testSchema)

	res, err := s.ValidateJSON(`{"filters":{}}`)
	require.NoError(t, err)
	assert.False(t, res.Valid)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, "REQUIRED", res.Errors[0].Code)
	assert.Contains(t, res.Error(), "userId")
}

func TestSchema_NestedTypeError(t *testing.T) {
	s := MustCompile(testSchema)

	res, err := s.ValidateObject(map[string]interface{}{
		"userId":  "u-1",
		"filters": map[string]interface{}{"maxResults": "ten"},
	})
	require.NoError(t, err)
	assert.False(t, res.Valid)
	assert.True(t, res.HasErrors("filters"))
	assert.False(t, res.HasErrors("userId"))
}

func TestSchema_MalformedDocument(t *testing.T) {
	s := MustCompile(testSchema)

	_, err := s.ValidateJSON(`{"userId":`)
	assert.Error(t, err)
}

func TestCompile_InvalidSchema(t *testing.T) {
	_, err := Compile(`{"type": 12}`)
	assert.Error(t, err)
	assert.Panics(t, func() { MustCompile(`not json`) })
}
