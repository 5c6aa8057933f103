// internal/workers/suggestions/save-user-preference/config.go
package saveuserpreference

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 10 * time.Second,
	}
}
