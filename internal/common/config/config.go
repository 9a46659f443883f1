// internal/common/config/config.go
package config

import "fmt"

// Config is the main application configuration struct.
type Config struct {
	App           AppConfig           `mapstructure:"app"`
	Server        ServerConfig        `mapstructure:"server"`
	Database      DatabaseConfig      `mapstructure:"database"`
	Providers     ProvidersConfig     `mapstructure:"providers"`
	Pipeline      PipelineConfig      `mapstructure:"pipeline"`
	Features      FeaturesConfig      `mapstructure:"features"`
	Share         ShareConfig         `mapstructure:"share"`
	Observability ObservabilityConfig `mapstructure:"observability"`
	Logging       LoggingConfig       `mapstructure:"logging"`
}

// --- Core App/Infrastructure Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type ServerConfig struct {
	Address         string `mapstructure:"address"`
	ReadTimeout     int    `mapstructure:"read_timeout"`     // milliseconds
	WriteTimeout    int    `mapstructure:"write_timeout"`    // milliseconds
	RequestTimeout  int    `mapstructure:"request_timeout"`  // milliseconds, /api routes
	ShutdownTimeout int    `mapstructure:"shutdown_timeout"` // milliseconds
}

type DatabaseConfig struct {
	Postgres      PostgresConfig      `mapstructure:"postgres"`
	Elasticsearch ElasticsearchConfig `mapstructure:"elasticsearch"`
	Redis         RedisConfig         `mapstructure:"redis"`
}

type PostgresConfig struct {
	Enabled        bool   `mapstructure:"enabled"`
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	Database       string `mapstructure:"database"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	MaxConnections int    `mapstructure:"max_connections"`
	MaxIdle        int    `mapstructure:"max_idle"`
	SSLMode        string `mapstructure:"sslmode"`
}

// GetDSN returns the PostgreSQL connection string
func (p PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

type ElasticsearchConfig struct {
	Addresses []string `mapstructure:"addresses"`
	Username  string   `mapstructure:"username"`
	Password  string   `mapstructure:"password"`
	URL       string   `mapstructure:"url"`
}

// GetURL returns the first address or the URL field
func (e ElasticsearchConfig) GetURL() string {
	if e.URL != "" {
		return e.URL
	}
	if len(e.Addresses) > 0 {
		return e.Addresses[0]
	}
	return ""
}

type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// --- Recommendation Providers ---

// Provider kinds accepted by providers.kind.
const (
	ProviderKindPlaces      = "places"
	ProviderKindSearchIndex = "searchindex"
)

type ProvidersConfig struct {
	Kind        string            `mapstructure:"kind"`
	Places      PlacesConfig      `mapstructure:"places"`
	SearchIndex SearchIndexConfig `mapstructure:"search_index"`
	Breaker     BreakerConfig     `mapstructure:"breaker"`
}

// PlacesConfig points at the edge function that proxies the places search API.
type PlacesConfig struct {
	BaseURL string `mapstructure:"base_url"`
	APIKey  string `mapstructure:"api_key"`
	Timeout int    `mapstructure:"timeout"` // milliseconds
}

type SearchIndexConfig struct {
	Index   string `mapstructure:"index"`
	Size    int    `mapstructure:"size"`
	Timeout int    `mapstructure:"timeout"` // milliseconds
}

type BreakerConfig struct {
	Enabled             bool   `mapstructure:"enabled"`
	MaxRequests         uint32 `mapstructure:"max_requests"`
	Interval            int    `mapstructure:"interval"` // milliseconds
	Timeout             int    `mapstructure:"timeout"`  // milliseconds
	ConsecutiveFailures uint32 `mapstructure:"consecutive_failures"`
}

// --- Pipeline ---

type PipelineConfig struct {
	MaxResults                int     `mapstructure:"max_results"`
	ChainDefaultDistanceMiles float64 `mapstructure:"chain_default_distance_miles"`
	CacheTTL                  int     `mapstructure:"cache_ttl"` // milliseconds
	ParallelNeighborhoods     bool    `mapstructure:"parallel_neighborhoods"`
	ProviderTimeout           int     `mapstructure:"provider_timeout"` // milliseconds, per call
	LiveBudget                int     `mapstructure:"live_budget"`      // milliseconds, all calls
	RandomSeed                int64   `mapstructure:"random_seed"`      // 0 = time based
	QuizSchemaPath            string  `mapstructure:"quiz_schema_path"`
}

// FeaturesConfig carries deployment switches that used to be global flags.
type FeaturesConfig struct {
	MaintenanceMode bool `mapstructure:"maintenance_mode"`
	AllowTestMode   bool `mapstructure:"allow_test_mode"`
}

type ShareConfig struct {
	Enabled    bool   `mapstructure:"enabled"`
	Region     string `mapstructure:"region"`
	FromEmail  string `mapstructure:"from_email"`
	SMSEnabled bool   `mapstructure:"sms_enabled"`
	MaxItems   int    `mapstructure:"max_items"`
}

type ObservabilityConfig struct {
	ServiceName    string `mapstructure:"service_name"`
	JaegerEndpoint string `mapstructure:"jaeger_endpoint"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}
