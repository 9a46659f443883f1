// internal/cache/redis.go
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"nashville-eats/internal/common/logger"
	"nashville-eats/internal/common/metrics"
	"nashville-eats/internal/models"

	"github.com/redis/go-redis/v9"
)

// RedisCache keeps entries in Redis with a TTL equal to the freshness window.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
	logger logger.Logger
}

func NewRedisCache(client *redis.Client, ttl time.Duration, log logger.Logger) *RedisCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisCache{
		client: client,
		ttl:    ttl,
		logger: log.WithFields(map[string]interface{}{"cache": "redis"}),
	}
}

func (c *RedisCache) Get(ctx context.Context, params models.QueryParameters) ([]models.Restaurant, bool, error) {
	key := Key(params)

	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		metrics.CacheLookups.WithLabelValues("miss").Inc()
		return nil, false, nil
	}
	if err != nil {
		metrics.CacheLookups.WithLabelValues("error").Inc()
		return nil, false, fmt.Errorf("%w: %v", ErrCacheUnavailable, err)
	}

	results, err := decode(data)
	if err != nil {
		// a corrupt entry is a miss; the next successful fetch overwrites it
		metrics.CacheLookups.WithLabelValues("corrupt").Inc()
		c.logger.Warn("discarding unreadable cache entry", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
		return nil, false, nil
	}

	metrics.CacheLookups.WithLabelValues("hit").Inc()
	return results, true, nil
}

func (c *RedisCache) Set(ctx context.Context, params models.QueryParameters, results []models.Restaurant) error {
	data, err := encode(results)
	if err != nil {
		return err
	}
	if err := c.client.Set(ctx, Key(params), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrCacheUnavailable, err)
	}
	return nil
}
