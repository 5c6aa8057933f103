// internal/common/config/config.go
package config

import (
	"fmt"
	"time"
)

// Config is the main application configuration struct.
type Config struct {
	App         AppConfig               `mapstructure:"app"`
	Camunda     CamundaConfig           `mapstructure:"camunda"`
	Database    DatabaseConfig          `mapstructure:"database"`
	Workers     map[string]WorkerConfig `mapstructure:"workers"`
	Suggestions SuggestionsConfig       `mapstructure:"suggestions"`
	Engagement  EngagementConfig        `mapstructure:"engagement"`
	AWS         AWSConfig               `mapstructure:"aws"`
	Logging     LoggingConfig           `mapstructure:"logging"`
	Server      ServerConfig            `mapstructure:"server"`

	// EnvFile is the .env file that was loaded, if any.
	EnvFile string `mapstructure:"-"`
}

// --- Core App/Infrastructure Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`

	// RegistryPath points at the activity registry describing each task type.
	RegistryPath string `mapstructure:"registry_path"`
}

type CamundaConfig struct {
	BrokerAddress  string `mapstructure:"broker_address"`
	UseTLS         bool   `mapstructure:"use_tls"`
	MaxJobsActive  int    `mapstructure:"max_jobs_active"`
	Timeout        int    `mapstructure:"timeout"`         // milliseconds
	RequestTimeout int    `mapstructure:"request_timeout"` // milliseconds
}

type DatabaseConfig struct {
	Postgres      PostgresConfig      `mapstructure:"postgres"`
	Elasticsearch ElasticsearchConfig `mapstructure:"elasticsearch"`
	Redis         RedisConfig         `mapstructure:"redis"`
}

type PostgresConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	Database       string `mapstructure:"database"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	MaxConnections int    `mapstructure:"max_connections"`
	MaxIdle        int    `mapstructure:"max_idle"`
	SSLMode        string `mapstructure:"sslmode"`
}

// GetDSN returns the PostgreSQL connection string
func (p PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

type ElasticsearchConfig struct {
	Addresses  []string `mapstructure:"addresses"`
	Username   string   `mapstructure:"username"`
	Password   string   `mapstructure:"password"`
	SSLEnabled bool     `mapstructure:"ssl_enabled"`
	URL        string   `mapstructure:"url"` // Single URL for backwards compatibility
}

// GetURL returns the first address or the URL field
func (e ElasticsearchConfig) GetURL() string {
	if e.URL != "" {
		return e.URL
	}
	if len(e.Addresses) > 0 {
		return e.Addresses[0]
	}
	return ""
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// WorkerConfig holds the core settings applicable to every worker.
type WorkerConfig struct {
	Enabled       bool `mapstructure:"enabled"`
	MaxJobsActive int  `mapstructure:"max_jobs_active"`
	Timeout       int  `mapstructure:"timeout"`     // milliseconds
	MaxRetries    int  `mapstructure:"max_retries"` // For error handling
}

func (w WorkerConfig) TimeoutDuration() time.Duration {
	return GetDuration(w.Timeout)
}

// --- Suggestion engine ---

const (
	CacheBackendMemory = "memory"
	CacheBackendRedis  = "redis"
)

// SuggestionsConfig tunes scoring, caching and the candidate sources.
// Durations are in milliseconds; a zero catalog TTL disables the candidate cache.
type SuggestionsConfig struct {
	MinRelevance            float64 `mapstructure:"min_relevance"`
	MaxResults              int     `mapstructure:"max_results"`
	PreferenceCacheTTL      int     `mapstructure:"preference_cache_ttl"`
	CatalogCacheTTL         int     `mapstructure:"catalog_cache_ttl"`
	SourceTimeout           int     `mapstructure:"source_timeout"`
	PopularLimit            int     `mapstructure:"popular_limit"`
	AILimit                 int     `mapstructure:"ai_limit"`
	AIIndex                 string  `mapstructure:"ai_index"`
	Dedupe                  bool    `mapstructure:"dedupe"`
	CacheBackend            string  `mapstructure:"cache_backend"`
	BreakerFailureThreshold int     `mapstructure:"breaker_failure_threshold"`
	BreakerOpenTimeout      int     `mapstructure:"breaker_open_timeout"`
}

func (s SuggestionsConfig) PreferenceCacheTTLDuration() time.Duration {
	return GetDuration(s.PreferenceCacheTTL)
}

func (s SuggestionsConfig) CatalogCacheTTLDuration() time.Duration {
	return GetDuration(s.CatalogCacheTTL)
}

func (s SuggestionsConfig) SourceTimeoutDuration() time.Duration {
	return GetDuration(s.SourceTimeout)
}

func (s SuggestionsConfig) BreakerOpenTimeoutDuration() time.Duration {
	return GetDuration(s.BreakerOpenTimeout)
}

// EngagementConfig controls where like events are published. An empty topic
// disables publishing.
type EngagementConfig struct {
	SNSTopicARN string `mapstructure:"sns_topic_arn"`
}

type AWSConfig struct {
	Region string `mapstructure:"region"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

// ServerConfig is the health/metrics listener.
type ServerConfig struct {
	Address string `mapstructure:"address"`
}
