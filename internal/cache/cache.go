// Package cache stores successful live recommendation results keyed by the
// full query tuple for a short freshness window.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"nashville-eats/internal/models"
)

const (
	KeyPrefix  = "recs:"
	DefaultTTL = 5 * time.Minute
)

var (
	ErrCacheUnavailable = errors.New("CACHE_UNAVAILABLE")
	ErrNotAdmitted      = errors.New("CACHE_NOT_ADMITTED")
)

// QueryCache is consulted before the live provider. A miss is (nil, false, nil).
type QueryCache interface {
	Get(ctx context.Context, params models.QueryParameters) ([]models.Restaurant, bool, error)
	Set(ctx context.Context, params models.QueryParameters, results []models.Restaurant) error
}

// Key is the storage key for params.
func Key(params models.QueryParameters) string {
	return KeyPrefix + params.CacheKey()
}

type entry struct {
	StoredAt    time.Time           `json:"storedAt"`
	Restaurants []models.Restaurant `json:"restaurants"`
}

func encode(results []models.Restaurant) ([]byte, error) {
	data, err := json.Marshal(entry{StoredAt: time.Now().UTC(), Restaurants: results})
	if err != nil {
		return nil, fmt.Errorf("encode cache entry: %w", err)
	}
	return data, nil
}

func decode(data []byte) ([]models.Restaurant, error) {
	var e entry
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, fmt.Errorf("decode cache entry: %w", err)
	}
	return e.Restaurants, nil
}
