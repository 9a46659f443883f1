// internal/providers/places/client.go
package places

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	apphttp "nashville-eats/internal/common/http"
	"nashville-eats/internal/common/logger"
	"nashville-eats/internal/common/metrics"
	"nashville-eats/internal/models"
	"nashville-eats/internal/providers"
)

const ProviderName = "places"

// genericTypes carry no cuisine information.
var genericTypes = map[string]bool{
	"restaurant":        true,
	"food":              true,
	"point_of_interest": true,
	"establishment":     true,
	"store":             true,
	"meal_takeaway":     true,
	"meal_delivery":     true,
}

// Client calls the restaurant-search edge function.
type Client struct {
	config *Config
	http   *apphttp.Client
	logger logger.Logger
}

func NewClient(config *Config, log logger.Logger) (*Client, error) {
	if config.BaseURL == "" {
		return nil, errors.New("places base url is required")
	}

	httpClient := apphttp.NewClient(config.Timeout)
	if config.APIKey != "" {
		httpClient = httpClient.
			WithHeader("Authorization", "Bearer "+config.APIKey).
			WithHeader("apikey", config.APIKey)
	}

	return &Client{
		config: config,
		http:   httpClient,
		logger: log.WithFields(map[string]interface{}{"provider": ProviderName}),
	}, nil
}

func (c *Client) Name() string {
	return ProviderName
}

func (c *Client) Search(ctx context.Context, req providers.SearchRequest) ([]models.Restaurant, error) {
	start := time.Now()

	var resp searchResponse
	err := c.http.PostJSON(ctx, c.config.BaseURL, req, &resp)
	if err != nil {
		status := "error"
		if isTimeout(ctx, err) {
			status = "timeout"
			err = fmt.Errorf("%w: %v", providers.ErrProviderTimeout, err)
		} else {
			err = fmt.Errorf("%w: %v", providers.ErrProviderFailed, err)
		}
		metrics.ProviderRequests.WithLabelValues(ProviderName, status).Inc()
		c.logger.Warn("places search failed", map[string]interface{}{
			"error":         err.Error(),
			"neighborhoods": req.Neighborhoods,
			"durationMs":    time.Since(start).Milliseconds(),
		})
		return nil, err
	}

	if resp.Error != "" {
		metrics.ProviderRequests.WithLabelValues(ProviderName, "error").Inc()
		return nil, fmt.Errorf("%w: %s", providers.ErrProviderFailed, resp.Error)
	}

	neighborhood := ""
	if len(req.Neighborhoods) == 1 {
		neighborhood = req.Neighborhoods[0]
	}

	out := make([]models.Restaurant, 0, len(resp.Results))
	for _, p := range resp.Results {
		if r, ok := toRestaurant(p, neighborhood); ok {
			out = append(out, r)
		}
	}

	metrics.ProviderRequests.WithLabelValues(ProviderName, "ok").Inc()
	c.logger.Debug("places search completed", map[string]interface{}{
		"neighborhoods": req.Neighborhoods,
		"resultCount":   len(out),
		"durationMs":    time.Since(start).Milliseconds(),
	})

	return out, nil
}

func toRestaurant(p placeResult, requestedNeighborhood string) (models.Restaurant, bool) {
	id := p.PlaceID
	if id == "" {
		id = p.ID
	}
	if id == "" || strings.TrimSpace(p.Name) == "" {
		return models.Restaurant{}, false
	}

	r := models.Restaurant{
		ID:            id,
		Name:          strings.TrimSpace(p.Name),
		Cuisine:       p.Cuisine,
		Neighborhood:  p.Neighborhood,
		Description:   p.Summary,
		Address:       p.FormattedAddress,
		Website:       p.Website,
		Phone:         p.Phone,
		InstagramLink: p.InstagramLink,
		ResyLink:      p.ResyLink,
		OpenTableLink: p.OpenTableLink,
		ImageURL:      p.ImageURL,
	}
	if r.Address == "" {
		r.Address = p.Vicinity
	}
	if r.Cuisine == "" {
		r.Cuisine = cuisineFromTypes(p.Types)
	}
	if r.Neighborhood == "" {
		r.Neighborhood = requestedNeighborhood
	}
	if p.PriceLevel != nil {
		r.PriceRange = priceFromLevel(*p.PriceLevel)
	}
	if p.Geometry != nil {
		c := models.Coordinates{Latitude: p.Geometry.Location.Lat, Longitude: p.Geometry.Location.Lng}
		if c.Valid() && !(c.Latitude == 0 && c.Longitude == 0) {
			r.Coordinates = &c
		}
	}
	if p.Rating > 0 {
		r.Features = append(r.Features, fmt.Sprintf("Rated %.1f", p.Rating))
	}

	return r, true
}

// priceFromLevel maps the 0-4 Places scale; 0 (free) counts as budget.
func priceFromLevel(level int) models.PriceTier {
	switch {
	case level <= 1:
		return models.PriceBudget
	case level == 2:
		return models.PriceModerate
	case level == 3:
		return models.PriceUpscale
	default:
		return models.PriceFineDining
	}
}

func cuisineFromTypes(types []string) string {
	for _, t := range types {
		if genericTypes[t] {
			continue
		}
		t = strings.TrimSuffix(t, "_restaurant")
		words := strings.Fields(strings.ReplaceAll(t, "_", " "))
		for i, w := range words {
			r, size := utf8.DecodeRuneInString(w)
			words[i] = string(unicode.ToTitle(r)) + w[size:]
		}
		return strings.Join(words, " ")
	}
	return ""
}

func isTimeout(ctx context.Context, err error) bool {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
