package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const minimalYAML = `
camunda:
  broker_address: localhost:26500
database:
  postgres:
    host: localhost
    database: trips
    user: trips
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadFromFile_Defaults(t *testing.T) {
	cfg, err := LoadFromFile(writeConfig(t, minimalYAML))
	require.NoError(t, err)

	s := cfg.Suggestions
	assert.Equal(t, 0.3, s.MinRelevance)
	assert.Equal(t, 20, s.MaxResults)
	assert.Equal(t, 30*time.Minute, s.PreferenceCacheTTLDuration())
	assert.Zero(t, s.CatalogCacheTTLDuration())
	assert.Equal(t, 3*time.Second, s.SourceTimeoutDuration())
	assert.Equal(t, 50, s.PopularLimit)
	assert.Equal(t, "ai_destinations", s.AIIndex)
	assert.Equal(t, CacheBackendMemory, s.CacheBackend)
	assert.Equal(t, 5, s.BreakerFailureThreshold)
	assert.Equal(t, 30*time.Second, s.BreakerOpenTimeoutDuration())
	assert.False(t, s.Dedupe)

	assert.Equal(t, 5432, cfg.Database.Postgres.Port)
	assert.Equal(t, ":8080", cfg.Server.Address)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadFromFile_WorkersAndOverrides(t *testing.T) {
	path := writeConfig(t, minimalYAML+`
suggestions:
  min_relevance: 0.5
  max_results: 5
  dedupe: true
  catalog_cache_ttl: 60000
workers:
  get-smart-suggestions:
    enabled: true
    timeout: 15000
  like-destination:
    enabled: false
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, 0.5, cfg.Suggestions.MinRelevance)
	assert.Equal(t, 5, cfg.Suggestions.MaxResults)
	assert.True(t, cfg.Suggestions.Dedupe)
	assert.Equal(t, time.Minute, cfg.Suggestions.CatalogCacheTTLDuration())

	w := GetWorkerConfig(cfg, "get-smart-suggestions")
	assert.True(t, w.Enabled)
	assert.Equal(t, 15*time.Second, w.TimeoutDuration())
	assert.Equal(t, 5, w.MaxJobsActive)
	assert.False(t, IsWorkerEnabled(cfg, "like-destination"))
	assert.True(t, IsWorkerEnabled(cfg, "clear-suggestion-cache"))
}

func TestLoadFromFile_ExpandsEnvPlaceholders(t *testing.T) {
	t.Setenv("TEST_PG_PASSWORD", "s3cret")
	path := writeConfig(t, minimalYAML+`
    password: ${TEST_PG_PASSWORD}
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "s3cret", cfg.Database.Postgres.Password)
}

func TestLoadFromFile_Validation(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{
			name: "missing broker",
			yaml: "database:\n  postgres:\n    host: h\n    database: d\n    user: u\n",
			want: "camunda.broker_address",
		},
		{
			name: "relevance out of range",
			yaml: minimalYAML + "suggestions:\n  min_relevance: 1.5\n",
			want: "min_relevance",
		},
		{
			name: "unknown cache backend",
			yaml: minimalYAML + "suggestions:\n  cache_backend: memcached\n",
			want: "cache_backend",
		},
		{
			name: "redis backend without address",
			yaml: minimalYAML + "suggestions:\n  cache_backend: redis\n",
			want: "database.redis.address",
		},
		{
			name: "topic without region",
			yaml: minimalYAML + "engagement:\n  sns_topic_arn: arn:aws:sns:eu-west-1:1:likes\n",
			want: "aws.region",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("AWS_REGION", "")
			_, err := LoadFromFile(writeConfig(t, tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
