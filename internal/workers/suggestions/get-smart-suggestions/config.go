// internal/workers/suggestions/get-smart-suggestions/config.go
package getsmartsuggestions

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 30 * time.Second,
	}
}
