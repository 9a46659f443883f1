// Package providers defines the live restaurant data source used before the
// curated fallback catalog.
package providers

import (
	"context"
	"errors"

	"nashville-eats/internal/models"
)

var (
	ErrProviderFailed  = errors.New("PROVIDER_FAILED")
	ErrProviderTimeout = errors.New("PROVIDER_TIMEOUT")
	// ErrProviderUnavailable means the provider was not called at all.
	ErrProviderUnavailable = errors.New("PROVIDER_UNAVAILABLE")
)

// SearchRequest is the outbound query. Empty fields are not constraints.
type SearchRequest struct {
	Neighborhoods []string            `json:"neighborhoods,omitempty"`
	Cuisine       []string            `json:"cuisine,omitempty"`
	Price         []models.PriceTier  `json:"price,omitempty"`
	Atmosphere    []string            `json:"atmosphere,omitempty"`
	Preferences   []string            `json:"preferences,omitempty"`
	Distance      *float64            `json:"distance,omitempty"`
	UserLocation  *models.Coordinates `json:"userLocation,omitempty"`
}

// DataSource is a remote restaurant search.
type DataSource interface {
	Name() string
	Search(ctx context.Context, req SearchRequest) ([]models.Restaurant, error)
}

// NewSearchRequest builds a request from params. A non-empty neighborhood
// scopes the request to that single neighborhood.
func NewSearchRequest(params models.QueryParameters, neighborhood string) SearchRequest {
	req := SearchRequest{
		Cuisine:      params.Cuisines,
		Price:        params.PriceTiers,
		Atmosphere:   params.AtmosphereTags,
		Preferences:  params.DietaryPreferences,
		Distance:     params.DistanceMiles,
		UserLocation: params.UserLocation,
	}
	if neighborhood != "" {
		req.Neighborhoods = []string{neighborhood}
	}
	return req
}
