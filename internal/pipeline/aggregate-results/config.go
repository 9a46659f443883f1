// internal/pipeline/aggregate-results/config.go
package aggregateresults

type Config struct {
	// MaxResults caps the merged list; zero keeps everything.
	MaxResults int
}

func LoadConfig() *Config {
	return &Config{}
}
