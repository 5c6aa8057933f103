// internal/workers/suggestions/clear-suggestion-cache/config.go
package clearsuggestioncache

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 10 * time.Second,
	}
}
