// internal/common/config/loader.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

func Load() (*Config, error) {
	loadEnvFile()

	v := newViper()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath("../../configs")
	v.AddConfigPath(".")

	env := os.Getenv("APP_ENVIRONMENT")
	if env == "" {
		env = "development"
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading base config: %w", err)
		}
	}

	v.SetConfigName(fmt.Sprintf("config.%s", env))
	_ = v.MergeInConfig() // optional per-environment overlay

	return finish(v)
}

// LoadFromFile loads configuration from a specific file path
func LoadFromFile(path string) (*Config, error) {
	loadEnvFile()

	v := newViper()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return finish(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	bindEnvKeys(v)
	return v
}

// bindEnvKeys registers keys that may only come from the environment, since
// AutomaticEnv alone does not populate Unmarshal for keys absent from yaml.
func bindEnvKeys(v *viper.Viper) {
	for _, key := range []string{
		"server.address",
		"database.postgres.enabled",
		"database.postgres.host",
		"database.postgres.password",
		"database.redis.enabled",
		"database.redis.address",
		"database.elasticsearch.url",
		"providers.kind",
		"providers.places.base_url",
		"providers.places.api_key",
		"features.maintenance_mode",
		"features.allow_test_mode",
		"share.enabled",
		"observability.jaeger_endpoint",
		"logging.level",
	} {
		_ = v.BindEnv(key)
	}
}

func finish(v *viper.Viper) (*Config, error) {
	expandEnvVars(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)
	overrideEmptyConfig(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func loadEnvFile() {
	possiblePaths := []string{
		".env",
		"../.env",
		"../../.env",
		"../../../.env",
	}

	if rootDir := findProjectRoot(); rootDir != "" {
		possiblePaths = append(possiblePaths, filepath.Join(rootDir, ".env"))
	}

	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return
			}
		}
	}
}

// findProjectRoot walks up from the working directory looking for go.mod.
func findProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}

func expandEnvVars(v *viper.Viper) {
	for _, key := range v.AllKeys() {
		strVal, ok := v.Get(key).(string)
		if !ok {
			continue
		}
		if strings.Contains(strVal, "${") || (strings.HasPrefix(strVal, "$") && len(strVal) > 1) {
			expanded := os.ExpandEnv(strVal)
			if expanded != strVal && expanded != "" {
				v.Set(key, expanded)
			}
		}
	}
}

// overrideEmptyConfig fills secrets from their conventional variable names.
func overrideEmptyConfig(cfg *Config) {
	if cfg.Providers.Places.APIKey == "" {
		if val := os.Getenv("PLACES_API_KEY"); val != "" {
			cfg.Providers.Places.APIKey = val
		}
	}
	if cfg.Providers.Places.BaseURL == "" {
		if val := os.Getenv("PLACES_FUNCTION_URL"); val != "" {
			cfg.Providers.Places.BaseURL = val
		}
	}

	if cfg.Database.Postgres.User == "" {
		if val := os.Getenv("DB_USER"); val != "" {
			cfg.Database.Postgres.User = val
		}
	}
	if cfg.Database.Postgres.Password == "" {
		if val := os.Getenv("DB_PASSWORD"); val != "" {
			cfg.Database.Postgres.Password = val
		}
	}
	if cfg.Database.Redis.Password == "" {
		if val := os.Getenv("REDIS_PASSWORD"); val != "" {
			cfg.Database.Redis.Password = val
		}
	}
}

// applyDefaults sets default values for optional configuration fields
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "nashville-eats"
	}

	if cfg.Server.Address == "" {
		cfg.Server.Address = ":8080"
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 10000
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 30000
	}
	if cfg.Server.RequestTimeout == 0 {
		cfg.Server.RequestTimeout = 25000
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 30000
	}

	if cfg.Database.Postgres.Port == 0 {
		cfg.Database.Postgres.Port = 5432
	}
	if cfg.Database.Postgres.MaxConnections == 0 {
		cfg.Database.Postgres.MaxConnections = 10
	}
	if cfg.Database.Postgres.MaxIdle == 0 {
		cfg.Database.Postgres.MaxIdle = 2
	}
	if cfg.Database.Postgres.SSLMode == "" {
		cfg.Database.Postgres.SSLMode = "disable"
	}
	if cfg.Database.Elasticsearch.URL == "" && len(cfg.Database.Elasticsearch.Addresses) > 0 {
		cfg.Database.Elasticsearch.URL = cfg.Database.Elasticsearch.Addresses[0]
	}

	if cfg.Providers.Kind == "" {
		cfg.Providers.Kind = ProviderKindPlaces
	}
	if cfg.Providers.Places.Timeout == 0 {
		cfg.Providers.Places.Timeout = 8000
	}
	if cfg.Providers.SearchIndex.Index == "" {
		cfg.Providers.SearchIndex.Index = "restaurants"
	}
	if cfg.Providers.SearchIndex.Size == 0 {
		cfg.Providers.SearchIndex.Size = 30
	}
	if cfg.Providers.SearchIndex.Timeout == 0 {
		cfg.Providers.SearchIndex.Timeout = 3000
	}
	if cfg.Providers.Breaker.MaxRequests == 0 {
		cfg.Providers.Breaker.MaxRequests = 1
	}
	if cfg.Providers.Breaker.Interval == 0 {
		cfg.Providers.Breaker.Interval = 60000
	}
	if cfg.Providers.Breaker.Timeout == 0 {
		cfg.Providers.Breaker.Timeout = 30000
	}
	if cfg.Providers.Breaker.ConsecutiveFailures == 0 {
		cfg.Providers.Breaker.ConsecutiveFailures = 5
	}

	if cfg.Pipeline.MaxResults == 0 {
		cfg.Pipeline.MaxResults = 15
	}
	if cfg.Pipeline.ChainDefaultDistanceMiles == 0 {
		cfg.Pipeline.ChainDefaultDistanceMiles = 1.5
	}
	if cfg.Pipeline.CacheTTL == 0 {
		cfg.Pipeline.CacheTTL = 300000
	}
	if cfg.Pipeline.ProviderTimeout == 0 {
		cfg.Pipeline.ProviderTimeout = 10000
	}
	if cfg.Pipeline.LiveBudget == 0 {
		cfg.Pipeline.LiveBudget = 15000
	}

	if cfg.Share.MaxItems == 0 {
		cfg.Share.MaxItems = 5
	}

	if cfg.Observability.ServiceName == "" {
		cfg.Observability.ServiceName = cfg.App.Name
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stdout"
	}
}

// validateConfig validates critical configuration fields
func validateConfig(cfg *Config) error {
	// the fallback must still be written before the request deadline
	if cfg.Pipeline.LiveBudget >= cfg.Server.RequestTimeout {
		return fmt.Errorf("pipeline.live_budget (%dms) must be below server.request_timeout (%dms)",
			cfg.Pipeline.LiveBudget, cfg.Server.RequestTimeout)
	}
	if cfg.Server.RequestTimeout > cfg.Server.WriteTimeout {
		return fmt.Errorf("server.request_timeout (%dms) must not exceed server.write_timeout (%dms)",
			cfg.Server.RequestTimeout, cfg.Server.WriteTimeout)
	}
	switch cfg.Providers.Kind {
	case ProviderKindPlaces:
		if cfg.Providers.Places.BaseURL == "" {
			return fmt.Errorf("providers.places.base_url is required for provider kind %q", cfg.Providers.Kind)
		}
	case ProviderKindSearchIndex:
		if cfg.Database.Elasticsearch.GetURL() == "" {
			return fmt.Errorf("database.elasticsearch.addresses or url is required for provider kind %q", cfg.Providers.Kind)
		}
	default:
		return fmt.Errorf("providers.kind must be %q or %q, got %q", ProviderKindPlaces, ProviderKindSearchIndex, cfg.Providers.Kind)
	}

	if cfg.Database.Postgres.Enabled {
		if cfg.Database.Postgres.Host == "" {
			return fmt.Errorf("database.postgres.host is required")
		}
		if cfg.Database.Postgres.Database == "" {
			return fmt.Errorf("database.postgres.database is required")
		}
		if cfg.Database.Postgres.User == "" {
			return fmt.Errorf("database.postgres.user is required")
		}
	}

	if cfg.Database.Redis.Enabled && cfg.Database.Redis.Address == "" {
		return fmt.Errorf("database.redis.address is required")
	}

	if cfg.Pipeline.MaxResults < 0 {
		return fmt.Errorf("pipeline.max_results must be positive")
	}
	if cfg.Pipeline.ChainDefaultDistanceMiles < 0 {
		return fmt.Errorf("pipeline.chain_default_distance_miles must be positive")
	}

	if cfg.Share.Enabled && cfg.Share.Region == "" {
		return fmt.Errorf("share.region is required when sharing is enabled")
	}

	return nil
}

// GetDuration converts milliseconds from config to time.Duration
func GetDuration(milliseconds int) time.Duration {
	return time.Duration(milliseconds) * time.Millisecond
}
