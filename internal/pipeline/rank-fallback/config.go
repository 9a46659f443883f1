// internal/pipeline/rank-fallback/config.go
package rankfallback

// Scoring weights. Jitter is drawn uniformly from [0, JitterRange).
const (
	DefaultMaxResults                = 15
	DefaultChainDefaultDistanceMiles = 1.5
	DefaultJitterRange               = 2.0
	PriceMatchBonus                  = 10.0
	CuisineMatchBonus                = 5.0
	NeighborhoodMatchBonus           = 8.0
)

type Config struct {
	MaxResults int
	// ChainDefaultDistanceMiles is assigned to entries without coordinates.
	ChainDefaultDistanceMiles float64
	JitterRange               float64
}

func LoadConfig() *Config {
	return &Config{
		MaxResults:                DefaultMaxResults,
		ChainDefaultDistanceMiles: DefaultChainDefaultDistanceMiles,
		JitterRange:               DefaultJitterRange,
	}
}
