// internal/providers/searchindex/config.go
package searchindex

import "time"

type Config struct {
	Index   string
	Size    int
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Index:   "restaurants",
		Size:    25,
		Timeout: 5 * time.Second,
	}
}
