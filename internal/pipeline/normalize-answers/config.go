// internal/pipeline/normalize-answers/config.go
package normalizeanswers

import "nashville-eats/pkg/registry"

type Config struct {
	// DefaultSchemaVersion is used when a request does not name its quiz layout.
	DefaultSchemaVersion string
}

func LoadConfig() *Config {
	return &Config{
		DefaultSchemaVersion: registry.VersionClassic,
	}
}
