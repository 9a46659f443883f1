// internal/providers/searchindex/client_test.go
package searchindex

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"nashville-eats/internal/common/logger"
	"nashville-eats/internal/models"
	"nashville-eats/internal/providers"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func createTestLogger(t *testing.T) logger.Logger {
	return logger.NewZapAdapter(zaptest.NewLogger(t))
}

func newFakeCluster(t *testing.T, handler http.HandlerFunc) *elasticsearch.Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	es, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{srv.URL}})
	require.NoError(t, err)
	return es
}

const searchHits = `{
	"took": 3,
	"hits": {
		"total": {"value": 2},
		"hits": [
			{"_id": "doc-1", "_source": {
				"name": "Edley's Bar-B-Que", "cuisine": "BBQ", "neighborhood": "12 South",
				"price_range": "$$", "location": {"lat": 36.1215, "lon": -86.7896},
				"features": ["Patio"]
			}},
			{"_id": "doc-2", "_source": {
				"id": "jenis", "name": "Jeni's", "cuisine": "Dessert", "price_range": "$"
			}}
		]
	}
}`

func TestClient_Search_Success(t *testing.T) {
	var gotPath string
	var gotBody map[string]interface{}

	es := newFakeCluster(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_, _ = w.Write([]byte(searchHits))
	})

	client := NewClient(LoadConfig(), es, createTestLogger(t))
	results, err := client.Search(context.Background(), providers.SearchRequest{
		Neighborhoods: []string{"12 south"},
		Cuisine:       []string{"bbq"},
		Price:         []models.PriceTier{models.PriceModerate},
		Distance:      models.Float64(3),
		UserLocation:  &models.Coordinates{Latitude: 36.16, Longitude: -86.78},
	})
	require.NoError(t, err)

	assert.Equal(t, "/restaurants/_search", gotPath)
	assert.Contains(t, gotBody, "query")

	require.Len(t, results, 2)
	assert.Equal(t, "doc-1", results[0].ID)
	assert.Equal(t, models.PriceModerate, results[0].PriceRange)
	require.NotNil(t, results[0].Coordinates)
	assert.Equal(t, -86.7896, results[0].Coordinates.Longitude)
	assert.Equal(t, []string{"Patio"}, results[0].Features)

	assert.Equal(t, "jenis", results[1].ID)
	assert.Nil(t, results[1].Coordinates)
}

func TestClient_Search_ClusterError(t *testing.T) {
	es := newFakeCluster(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error": "index_not_found_exception"}`))
	})

	client := NewClient(LoadConfig(), es, createTestLogger(t))
	results, err := client.Search(context.Background(), providers.SearchRequest{Cuisine: []string{"bbq"}})

	assert.ErrorIs(t, err, providers.ErrProviderFailed)
	assert.Nil(t, results)
}

func TestClient_Search_Timeout(t *testing.T) {
	es := newFakeCluster(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(500 * time.Millisecond):
		}
		_, _ = w.Write([]byte(searchHits))
	})

	cfg := LoadConfig()
	cfg.Timeout = 20 * time.Millisecond
	client := NewClient(cfg, es, createTestLogger(t))

	_, err := client.Search(context.Background(), providers.SearchRequest{Cuisine: []string{"bbq"}})
	assert.ErrorIs(t, err, providers.ErrProviderTimeout)
}

func TestBuildQuery(t *testing.T) {
	t.Run("empty request matches all", func(t *testing.T) {
		q := BuildQuery(providers.SearchRequest{})
		assert.Equal(t, map[string]interface{}{"match_all": map[string]interface{}{}}, q["query"])
	})

	t.Run("distance needs location", func(t *testing.T) {
		q := BuildQuery(providers.SearchRequest{Distance: models.Float64(2)})
		raw, err := json.Marshal(q)
		require.NoError(t, err)
		assert.NotContains(t, string(raw), "geo_distance")
	})

	t.Run("full request", func(t *testing.T) {
		q := BuildQuery(providers.SearchRequest{
			Neighborhoods: []string{"germantown", "east nashville"},
			Cuisine:       []string{"italian"},
			Price:         []models.PriceTier{models.PriceUpscale, models.PriceFineDining},
			Atmosphere:    []string{"romantic"},
			Preferences:   []string{"vegetarian"},
			Distance:      models.Float64(2.5),
			UserLocation:  &models.Coordinates{Latitude: 36.17, Longitude: -86.79},
		})
		raw, err := json.Marshal(q)
		require.NoError(t, err)
		body := string(raw)

		assert.Contains(t, body, `"distance":"2.5mi"`)
		assert.Contains(t, body, `"price_range":["$$$","$$$$"]`)
		assert.Contains(t, body, `"match_phrase":{"neighborhood":"east nashville"}`)
		assert.Equal(t, 2, strings.Count(body, `"features"`))

		boolQuery := q["query"].(map[string]interface{})["bool"].(map[string]interface{})
		assert.Len(t, boolQuery["must"], 2)
		assert.Len(t, boolQuery["filter"], 2)
		assert.Len(t, boolQuery["should"], 2)
	})
}
