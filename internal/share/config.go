// internal/share/config.go
package share

import "time"

type Config struct {
	Enabled    bool
	SMSEnabled bool
	MaxItems   int
	Subject    string
	Timeout    time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Enabled:    true,
		SMSEnabled: true,
		MaxItems:   10,
		Subject:    "Your Nashville restaurant picks",
		Timeout:    10 * time.Second,
	}
}
