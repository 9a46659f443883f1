// internal/pipeline/fetch-recommendations/config.go
package fetchrecommendations

import "time"

type Config struct {
	// ParallelNeighborhoods issues per-neighborhood requests concurrently.
	ParallelNeighborhoods bool
	MaxParallel           int
	ProviderTimeout       time.Duration
	// LiveBudget caps the whole live phase across every neighborhood.
	LiveBudget time.Duration
	SessionTTL time.Duration
}

func LoadConfig() *Config {
	return &Config{
		ParallelNeighborhoods: false,
		MaxParallel:           4,
		ProviderTimeout:       8 * time.Second,
		LiveBudget:            15 * time.Second,
		SessionTTL:            30 * time.Minute,
	}
}
