// internal/cache/memory.go
package cache

import (
	"context"
	"fmt"
	"time"

	"nashville-eats/internal/common/metrics"
	"nashville-eats/internal/models"

	"github.com/dgraph-io/ristretto/v2"
)

// MemoryCache is the in-process cache used when Redis is disabled.
type MemoryCache struct {
	store *ristretto.Cache[string, []byte]
	ttl   time.Duration
}

const defaultMaxCost = 32 << 20

func NewMemoryCache(ttl time.Duration) (*MemoryCache, error) {
	return newMemoryCache(ttl, defaultMaxCost)
}

func newMemoryCache(ttl time.Duration, maxCost int64) (*MemoryCache, error) {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	store, err := ristretto.NewCache(&ristretto.Config[string, []byte]{
		NumCounters: 10_000,
		MaxCost:     maxCost,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("create memory cache: %w", err)
	}
	return &MemoryCache{store: store, ttl: ttl}, nil
}

func (c *MemoryCache) Get(_ context.Context, params models.QueryParameters) ([]models.Restaurant, bool, error) {
	data, ok := c.store.Get(Key(params))
	if !ok {
		metrics.CacheLookups.WithLabelValues("miss").Inc()
		return nil, false, nil
	}
	results, err := decode(data)
	if err != nil {
		metrics.CacheLookups.WithLabelValues("corrupt").Inc()
		return nil, false, nil
	}
	metrics.CacheLookups.WithLabelValues("hit").Inc()
	return results, true, nil
}

func (c *MemoryCache) Set(_ context.Context, params models.QueryParameters, results []models.Restaurant) error {
	data, err := encode(results)
	if err != nil {
		return err
	}
	key := Key(params)
	if !c.store.SetWithTTL(key, data, int64(len(data)), c.ttl) {
		metrics.CacheLookups.WithLabelValues("rejected").Inc()
		return fmt.Errorf("%w: write dropped for %s", ErrNotAdmitted, key)
	}
	// writes are buffered; make them visible to the next Get
	c.store.Wait()
	// the admission policy may still refuse the entry after buffering
	if _, ok := c.store.Get(key); !ok {
		metrics.CacheLookups.WithLabelValues("rejected").Inc()
		return fmt.Errorf("%w: %s refused by admission policy", ErrNotAdmitted, key)
	}
	return nil
}

func (c *MemoryCache) Close() {
	c.store.Close()
}
