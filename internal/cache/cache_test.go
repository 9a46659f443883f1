package cache

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"nashville-eats/internal/common/logger"
	"nashville-eats/internal/common/metrics"
	"nashville-eats/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redismock/v9"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleParams() models.QueryParameters {
	return models.QueryParameters{
		Neighborhoods: []string{"germantown", "east-nashville"},
		Cuisines:      []string{"italian"},
		PriceTiers:    []models.PriceTier{models.PriceUpscale},
	}
}

func sampleResults() []models.Restaurant {
	return []models.Restaurant{
		{ID: "rolf-and-daughters", Name: "Rolf and Daughters", PriceRange: models.PriceUpscale,
			Coordinates: &models.Coordinates{Latitude: 36.1794, Longitude: -86.7906}},
		{ID: "city-house", Name: "City House", PriceRange: models.PriceUpscale,
			Features: []string{"Pizza"}},
	}
}

// ==========================
// Redis (miniredis) Tests
// ==========================

func newMiniredisCache(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewRedisCache(client, DefaultTTL, logger.NewTestLogger(t)), mr
}

func TestRedisCache_RoundTrip(t *testing.T) {
	c, mr := newMiniredisCache(t)
	ctx := context.Background()

	_, ok, err := c.Get(ctx, sampleParams())
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, sampleParams(), sampleResults()))
	assert.True(t, mr.Exists(Key(sampleParams())))
	assert.Equal(t, DefaultTTL, mr.TTL(Key(sampleParams())))

	got, ok, err := c.Get(ctx, sampleParams())
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, sampleResults(), got)
}

func TestRedisCache_KeyIgnoresSetOrder(t *testing.T) {
	c, _ := newMiniredisCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, sampleParams(), sampleResults()))

	reordered := sampleParams()
	reordered.Neighborhoods = []string{"East-Nashville", "germantown"}
	_, ok, err := c.Get(ctx, reordered)
	require.NoError(t, err)
	assert.True(t, ok)

	different := sampleParams()
	different.DistanceMiles = models.Float64(2)
	different.UserLocation = &models.Coordinates{Latitude: 36.16, Longitude: -86.78}
	_, ok, err = c.Get(ctx, different)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisCache_ExpiresAfterFreshnessWindow(t *testing.T) {
	c, mr := newMiniredisCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, sampleParams(), sampleResults()))
	mr.FastForward(DefaultTTL + time.Second)

	_, ok, err := c.Get(ctx, sampleParams())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisCache_CorruptEntryIsMiss(t *testing.T) {
	c, mr := newMiniredisCache(t)
	require.NoError(t, mr.Set(Key(sampleParams()), "{not json"))

	got, ok, err := c.Get(context.Background(), sampleParams())
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, got)
}

// ==========================
// Redis (redismock) Tests
// ==========================

func TestRedisCache_GetError(t *testing.T) {
	client, mock := redismock.NewClientMock()
	c := NewRedisCache(client, DefaultTTL, logger.NewTestLogger(t))

	mock.ExpectGet(Key(sampleParams())).SetErr(errors.New("connection refused"))

	_, ok, err := c.Get(context.Background(), sampleParams())
	assert.ErrorIs(t, err, ErrCacheUnavailable)
	assert.False(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisCache_SetUsesFreshnessTTL(t *testing.T) {
	client, mock := redismock.NewClientMock()
	c := NewRedisCache(client, 0, logger.NewTestLogger(t))
	key := Key(sampleParams())

	mock.CustomMatch(func(expected, actual []interface{}) error {
		if len(actual) < 5 {
			return fmt.Errorf("unexpected args %v", actual)
		}
		if actual[1] != key {
			return fmt.Errorf("unexpected key %v", actual[1])
		}
		if fmt.Sprint(actual[4]) != "300" {
			return fmt.Errorf("unexpected ttl %v", actual[4])
		}
		return nil
	}).ExpectSet(key, "", DefaultTTL).SetVal("OK")

	require.NoError(t, c.Set(context.Background(), sampleParams(), sampleResults()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisCache_SetError(t *testing.T) {
	client, mock := redismock.NewClientMock()
	c := NewRedisCache(client, DefaultTTL, logger.NewTestLogger(t))

	mock.CustomMatch(func(expected, actual []interface{}) error { return nil }).
		ExpectSet(Key(sampleParams()), "", DefaultTTL).
		SetErr(errors.New("READONLY"))

	err := c.Set(context.Background(), sampleParams(), sampleResults())
	assert.ErrorIs(t, err, ErrCacheUnavailable)
}

// ==========================
// Memory Cache Tests
// ==========================

func TestMemoryCache_RoundTripAndExpiry(t *testing.T) {
	c, err := NewMemoryCache(50 * time.Millisecond)
	require.NoError(t, err)
	defer c.Close()
	ctx := context.Background()

	_, ok, err := c.Get(ctx, sampleParams())
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, sampleParams(), sampleResults()))
	got, ok, err := c.Get(ctx, sampleParams())
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, sampleResults(), got)

	assert.Eventually(t, func() bool {
		_, ok, _ := c.Get(ctx, sampleParams())
		return !ok
	}, 2*time.Second, 20*time.Millisecond)
}

func TestKey(t *testing.T) {
	assert.Equal(t, KeyPrefix+sampleParams().CacheKey(), Key(sampleParams()))
}

func TestMemoryCache_RejectedWriteIsReported(t *testing.T) {
	// every encoded result list costs more than the cache can hold
	c, err := newMemoryCache(time.Minute, 8)
	require.NoError(t, err)
	defer c.Close()
	ctx := context.Background()

	before := testutil.ToFloat64(metrics.CacheLookups.WithLabelValues("rejected"))

	err = c.Set(ctx, sampleParams(), sampleResults())
	assert.ErrorIs(t, err, ErrNotAdmitted)
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.CacheLookups.WithLabelValues("rejected")))

	_, ok, err := c.Get(ctx, sampleParams())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryCache_SetAfterCloseIsReported(t *testing.T) {
	c, err := NewMemoryCache(time.Minute)
	require.NoError(t, err)
	c.Close()

	err = c.Set(context.Background(), sampleParams(), sampleResults())
	assert.ErrorIs(t, err, ErrNotAdmitted)
}
