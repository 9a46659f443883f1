// internal/providers/places/config.go
package places

import "time"

type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 8 * time.Second,
	}
}
