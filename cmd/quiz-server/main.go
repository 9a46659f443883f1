// cmd/quiz-server/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"nashville-eats/internal/api"
	"nashville-eats/internal/cache"
	"nashville-eats/internal/catalog"
	"nashville-eats/internal/common/aws"
	"nashville-eats/internal/common/config"
	"nashville-eats/internal/common/database"
	"nashville-eats/internal/common/logger"
	"nashville-eats/internal/common/observability"
	"nashville-eats/internal/providers"
	"nashville-eats/internal/providers/places"
	"nashville-eats/internal/providers/resilient"
	"nashville-eats/internal/providers/searchindex"
	"nashville-eats/internal/share"
	"nashville-eats/pkg/registry"

	ar "nashville-eats/internal/pipeline/aggregate-results"
	er "nashville-eats/internal/pipeline/enhance-results"
	fr "nashville-eats/internal/pipeline/fetch-recommendations"
	na "nashville-eats/internal/pipeline/normalize-answers"
	rf "nashville-eats/internal/pipeline/rank-fallback"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.NewWithOutput(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting quiz server...",
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
		zap.String("provider", cfg.Providers.Kind),
	)

	obs := observability.New(cfg.Observability.ServiceName, cfg.Observability.JaegerEndpoint)
	defer obs.Shutdown()

	ctx := context.Background()
	var checks []api.ReadinessCheck

	// --- Init Redis (optional) ---
	var redis *database.RedisClient
	if cfg.Database.Redis.Enabled {
		err = retryWithBackoff(func() error {
			var err error
			redis, err = database.NewRedis(cfg.Database.Redis)
			if err != nil {
				return err
			}
			return redis.Ping(ctx)
		}, 5, time.Second, zapLog, "Redis connection")
		if err != nil {
			zapLog.Warn("redis unavailable, using in-process cache", zap.Error(err))
			redis = nil
		} else {
			defer redis.Close()
			checks = append(checks, api.ReadinessCheck{Name: "redis", Check: redis.Ping})
			zapLog.Info("Redis connected successfully")
		}
	}

	// --- Init PostgreSQL (optional) ---
	var pg *database.PostgresClient
	if cfg.Database.Postgres.Enabled {
		err = retryWithBackoff(func() error {
			var err error
			pg, err = database.NewPostgres(cfg.Database.Postgres)
			if err != nil {
				return err
			}
			return pg.Ping(ctx)
		}, 5, 2*time.Second, zapLog, "PostgreSQL connection")
		if err != nil {
			zapLog.Warn("postgres unavailable, using built-in catalog", zap.Error(err))
			pg = nil
		} else {
			defer pg.Close()
			checks = append(checks, api.ReadinessCheck{Name: "postgres", Check: pg.Ping})
			zapLog.Info("PostgreSQL connected successfully")
		}
	}

	// --- Curated catalog ---
	var store catalog.Lister
	if pg != nil {
		store = catalog.NewRepository(pg.DB)
	}
	entries, catalogSource := catalog.Load(ctx, store, log)
	zapLog.Info("Catalog ready", zap.Int("entries", len(entries)), zap.String("source", catalogSource))

	// --- Live data source ---
	var source providers.DataSource
	switch cfg.Providers.Kind {
	case config.ProviderKindSearchIndex:
		var esClient *database.ElasticsearchClient
		err = retryWithBackoff(func() error {
			var err error
			esClient, err = database.NewElasticsearch(cfg.Database.Elasticsearch)
			if err != nil {
				return err
			}
			return esClient.Ping()
		}, 5, 2*time.Second, zapLog, "Elasticsearch connection")
		if err != nil {
			zapLog.Warn("elasticsearch unavailable, serving fallback only", zap.Error(err))
			break
		}
		checks = append(checks, api.ReadinessCheck{
			Name:  "elasticsearch",
			Check: func(context.Context) error { return esClient.Ping() },
		})
		source = searchindex.NewClient(&searchindex.Config{
			Index:   cfg.Providers.SearchIndex.Index,
			Size:    cfg.Providers.SearchIndex.Size,
			Timeout: config.GetDuration(cfg.Providers.SearchIndex.Timeout),
		}, esClient.Client, log)
	default:
		client, err := places.NewClient(&places.Config{
			BaseURL: cfg.Providers.Places.BaseURL,
			APIKey:  cfg.Providers.Places.APIKey,
			Timeout: config.GetDuration(cfg.Providers.Places.Timeout),
		}, log)
		if err != nil {
			zapLog.Warn("places provider not configured, serving fallback only", zap.Error(err))
			break
		}
		source = client
	}
	if source != nil && cfg.Providers.Breaker.Enabled {
		source = resilient.Wrap(source, &resilient.Config{
			MaxRequests:         cfg.Providers.Breaker.MaxRequests,
			Interval:            config.GetDuration(cfg.Providers.Breaker.Interval),
			Timeout:             config.GetDuration(cfg.Providers.Breaker.Timeout),
			ConsecutiveFailures: cfg.Providers.Breaker.ConsecutiveFailures,
		}, log)
	}

	// --- Query cache ---
	cacheTTL := config.GetDuration(cfg.Pipeline.CacheTTL)
	var queryCache cache.QueryCache
	if redis != nil {
		queryCache = cache.NewRedisCache(redis.Client, cacheTTL, log)
	} else {
		mem, err := cache.NewMemoryCache(cacheTTL)
		if err != nil {
			zapLog.Warn("memory cache unavailable, caching disabled", zap.Error(err))
		} else {
			defer mem.Close()
			queryCache = mem
		}
	}

	// --- Quiz schemas ---
	reg := registry.Default()
	if path := cfg.Pipeline.QuizSchemaPath; path != "" {
		schema, err := registry.LoadSchema(path)
		if err != nil {
			zapLog.Fatal("quiz schema load failed", zap.String("path", path), zap.Error(err))
		}
		reg.Register(schema)
		zapLog.Info("Quiz schema registered", zap.String("version", schema.Version))
	}

	// --- Pipeline ---
	normalizer := na.NewHandler(na.LoadConfig(), reg, log)

	rankCfg := rf.LoadConfig()
	rankCfg.MaxResults = cfg.Pipeline.MaxResults
	rankCfg.ChainDefaultDistanceMiles = cfg.Pipeline.ChainDefaultDistanceMiles

	fetchCfg := fr.LoadConfig()
	fetchCfg.ParallelNeighborhoods = cfg.Pipeline.ParallelNeighborhoods
	fetchCfg.ProviderTimeout = config.GetDuration(cfg.Pipeline.ProviderTimeout)
	fetchCfg.LiveBudget = config.GetDuration(cfg.Pipeline.LiveBudget)

	fetcher := fr.NewHandler(fetchCfg, fr.Dependencies{
		Source:        source,
		Cache:         queryCache,
		Catalog:       entries,
		Aggregator:    ar.NewHandler(ar.LoadConfig(), log),
		Ranker:        rf.NewHandler(rankCfg, rf.NewRandomSource(cfg.Pipeline.RandomSeed), log),
		Enhancer:      er.NewHandler(er.LoadConfig(), log),
		Observability: obs,
	}, log)
	sessions := fr.NewSessionStore(fetcher, fetchCfg.SessionTTL, log)

	// --- Sharing ---
	shareCfg := share.LoadConfig()
	shareCfg.Enabled = cfg.Share.Enabled
	shareCfg.SMSEnabled = cfg.Share.SMSEnabled
	shareCfg.MaxItems = cfg.Share.MaxItems
	var (
		emailSender share.EmailSender
		smsSender   share.SMSSender
	)
	if cfg.Share.Enabled {
		if ses, err := aws.NewSESClient(ctx, cfg.Share.Region, cfg.Share.FromEmail); err != nil {
			zapLog.Warn("SES client unavailable, email sharing disabled", zap.Error(err))
		} else {
			emailSender = ses
		}
		if cfg.Share.SMSEnabled {
			if sns, err := aws.NewSNSClient(ctx, cfg.Share.Region); err != nil {
				zapLog.Warn("SNS client unavailable, SMS sharing disabled", zap.Error(err))
			} else {
				smsSender = sns
			}
		}
	}
	sharer := share.NewService(shareCfg, emailSender, smsSender, log)

	// --- HTTP Server ---
	apiServer := api.NewServer(&api.Config{
		MaintenanceMode: cfg.Features.MaintenanceMode,
		AllowTestMode:   cfg.Features.AllowTestMode,
		RequestTimeout:  config.GetDuration(cfg.Server.RequestTimeout),
	}, api.Dependencies{
		Normalizer: normalizer,
		Fetcher:    fetcher,
		Sessions:   sessions,
		Share:      sharer,
		Checks:     checks,
	}, log)

	httpServer := &http.Server{
		Addr:              cfg.Server.Address,
		Handler:           apiServer.Router(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       config.GetDuration(cfg.Server.ReadTimeout),
		WriteTimeout:      config.GetDuration(cfg.Server.WriteTimeout),
	}

	errCh := make(chan error, 1)
	go func() {
		zapLog.Info("HTTP server listening", zap.String("address", cfg.Server.Address))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// --- Session sweeper ---
	sweepCtx, stopSweep := context.WithCancel(ctx)
	defer stopSweep()
	go func() {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-sweepCtx.Done():
				return
			case <-ticker.C:
				if n := sessions.Sweep(); n > 0 {
					zapLog.Debug("expired sessions removed", zap.Int("count", n))
				}
			}
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	select {
	case <-sigCh:
		zapLog.Info("Shutdown signal received, stopping server...")
	case err := <-errCh:
		zapLog.Error("HTTP server failed", zap.Error(err))
	}

	stopSweep()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.GetDuration(cfg.Server.ShutdownTimeout))
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error shutting down HTTP server", zap.Error(err))
	}

	zapLog.Info("Quiz server stopped gracefully")
}
