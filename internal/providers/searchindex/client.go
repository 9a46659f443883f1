// internal/providers/searchindex/client.go
package searchindex

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"nashville-eats/internal/common/logger"
	"nashville-eats/internal/common/metrics"
	"nashville-eats/internal/models"
	"nashville-eats/internal/providers"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
)

const ProviderName = "searchindex"

// Client searches a restaurants index in Elasticsearch.
type Client struct {
	config *Config
	es     *elasticsearch.Client
	logger logger.Logger
}

func NewClient(config *Config, es *elasticsearch.Client, log logger.Logger) *Client {
	return &Client{
		config: config,
		es:     es,
		logger: log.WithFields(map[string]interface{}{"provider": ProviderName}),
	}
}

func (c *Client) Name() string {
	return ProviderName
}

func (c *Client) Search(ctx context.Context, req providers.SearchRequest) ([]models.Restaurant, error) {
	start := time.Now()

	if c.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.config.Timeout)
		defer cancel()
	}

	body, err := json.Marshal(BuildQuery(req))
	if err != nil {
		return nil, fmt.Errorf("%w: marshal query: %v", providers.ErrProviderFailed, err)
	}

	size := c.config.Size
	searchReq := esapi.SearchRequest{
		Index: []string{c.config.Index},
		Body:  bytes.NewReader(body),
		Size:  &size,
	}

	res, err := searchReq.Do(ctx, c.es)
	if err != nil {
		return nil, c.fail(ctx, err, start)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, c.fail(ctx, fmt.Errorf("search failed: %s", res.Status()), start)
	}

	var parsed searchResponse
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, c.fail(ctx, fmt.Errorf("decode response: %w", err), start)
	}

	out := make([]models.Restaurant, 0, len(parsed.Hits.Hits))
	for _, hit := range parsed.Hits.Hits {
		doc := hit.Source
		if doc.ID == "" {
			doc.ID = hit.ID
		}
		out = append(out, toRestaurant(doc))
	}

	metrics.ProviderRequests.WithLabelValues(ProviderName, "ok").Inc()
	c.logger.Debug("index search completed", map[string]interface{}{
		"index":       c.config.Index,
		"totalHits":   parsed.Hits.Total.Value,
		"resultCount": len(out),
		"took":        parsed.Took,
		"durationMs":  time.Since(start).Milliseconds(),
	})

	return out, nil
}

func (c *Client) fail(ctx context.Context, err error, start time.Time) error {
	status := "error"
	sentinel := providers.ErrProviderFailed
	if errors.Is(ctx.Err(), context.DeadlineExceeded) || errors.Is(err, context.DeadlineExceeded) {
		status = "timeout"
		sentinel = providers.ErrProviderTimeout
	}
	metrics.ProviderRequests.WithLabelValues(ProviderName, status).Inc()

	c.logger.Warn("index search failed", map[string]interface{}{
		"index":      c.config.Index,
		"error":      err.Error(),
		"durationMs": time.Since(start).Milliseconds(),
	})
	return fmt.Errorf("%w: %v", sentinel, err)
}

// BuildQuery renders the bool query for req. Cuisine and neighborhood are
// required matches, price and radius are filters, the rest only boost.
func BuildQuery(req providers.SearchRequest) map[string]interface{} {
	must := []interface{}{}
	filter := []interface{}{}
	should := []interface{}{}

	if len(req.Cuisine) > 0 {
		must = append(must, anyOf("cuisine", req.Cuisine, "match"))
	}
	if len(req.Neighborhoods) > 0 {
		must = append(must, anyOf("neighborhood", req.Neighborhoods, "match_phrase"))
	}

	if len(req.Price) > 0 {
		tiers := make([]string, len(req.Price))
		for i, p := range req.Price {
			tiers[i] = string(p)
		}
		filter = append(filter, map[string]interface{}{
			"terms": map[string]interface{}{"price_range": tiers},
		})
	}

	if req.Distance != nil && req.UserLocation != nil {
		filter = append(filter, map[string]interface{}{
			"geo_distance": map[string]interface{}{
				"distance": strconv.FormatFloat(*req.Distance, 'f', -1, 64) + "mi",
				"location": map[string]interface{}{
					"lat": req.UserLocation.Latitude,
					"lon": req.UserLocation.Longitude,
				},
			},
		})
	}

	for _, tag := range append(append([]string{}, req.Atmosphere...), req.Preferences...) {
		should = append(should, map[string]interface{}{
			"match": map[string]interface{}{"features": tag},
		})
	}

	boolQuery := map[string]interface{}{}
	if len(must) > 0 {
		boolQuery["must"] = must
	}
	if len(filter) > 0 {
		boolQuery["filter"] = filter
	}
	if len(should) > 0 {
		boolQuery["should"] = should
	}
	if len(boolQuery) == 0 {
		return map[string]interface{}{"query": map[string]interface{}{"match_all": map[string]interface{}{}}}
	}

	return map[string]interface{}{
		"query": map[string]interface{}{"bool": boolQuery},
	}
}

func anyOf(field string, values []string, kind string) map[string]interface{} {
	clauses := make([]interface{}, len(values))
	for i, v := range values {
		clauses[i] = map[string]interface{}{
			kind: map[string]interface{}{field: v},
		}
	}
	return map[string]interface{}{
		"bool": map[string]interface{}{
			"should":               clauses,
			"minimum_should_match": 1,
		},
	}
}

func toRestaurant(doc restaurantDocument) models.Restaurant {
	r := models.Restaurant{
		ID:            doc.ID,
		Name:          doc.Name,
		Cuisine:       doc.Cuisine,
		Neighborhood:  doc.Neighborhood,
		PriceRange:    models.PriceTier(doc.PriceRange),
		Description:   doc.Description,
		Address:       doc.Address,
		Features:      doc.Features,
		Website:       doc.Website,
		InstagramLink: doc.InstagramLink,
		ResyLink:      doc.ResyLink,
		OpenTableLink: doc.OpenTableLink,
		Phone:         doc.Phone,
		ImageURL:      doc.ImageURL,
		LogoURL:       doc.LogoURL,
	}
	if doc.Location != nil {
		r.Coordinates = &models.Coordinates{Latitude: doc.Location.Lat, Longitude: doc.Location.Lon}
	}
	return r
}
