// internal/pipeline/enhance-results/config.go
package enhanceresults

type Config struct {
	SearchURL    string
	ResyURL      string
	OpenTableURL string
	InstagramURL string
	// LocationSuffix is appended to generated search queries.
	LocationSuffix string
}

func LoadConfig() *Config {
	return &Config{
		SearchURL:      "https://www.google.com/search?q=",
		ResyURL:        "https://resy.com/cities/bna?query=",
		OpenTableURL:   "https://www.opentable.com/s?term=",
		InstagramURL:   "https://www.instagram.com/",
		LocationSuffix: "Nashville TN",
	}
}
