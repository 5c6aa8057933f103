package registry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShippedRegistryIsValid(t *testing.T) {
	reg, err := LoadRegistry(filepath.Join("..", "..", "configs", "activity-registry.json"))
	require.NoError(t, err)
	require.NoError(t, reg.Validate())

	a, ok := reg.Find("get-smart-suggestions")
	require.True(t, ok)
	assert.Contains(t, a.ErrorCodes, "INVALID_INPUT")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		reg  ActivityRegistry
		want string
	}{
		{"empty", ActivityRegistry{}, "no activities"},
		{"duplicate", ActivityRegistry{Activities: []Activity{
			{ID: "a", DisplayName: "A", TaskType: "a", Category: "c"},
			{ID: "a", DisplayName: "A", TaskType: "a", Category: "c"},
		}}, "duplicate"},
		{"missing task type", ActivityRegistry{Activities: []Activity{
			{ID: "a", DisplayName: "A", Category: "c"},
		}}, "TaskType"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.reg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadRegistry_BadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reg.json")
	require.NoError(t, os.WriteFile(path, []byte("{"), 0o600))

	_, err := LoadRegistry(path)
	assert.Error(t, err)

	_, err = LoadRegistry(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
