package providers

import (
	"testing"

	"nashville-eats/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestNewSearchRequest(t *testing.T) {
	params := models.QueryParameters{
		Neighborhoods:      []string{"germantown", "the-gulch"},
		Cuisines:           []string{"italian"},
		PriceTiers:         []models.PriceTier{models.PriceUpscale},
		DietaryPreferences: []string{"vegetarian"},
		AtmosphereTags:     []string{"romantic"},
		DistanceMiles:      models.Float64(3),
		UserLocation:       &models.Coordinates{Latitude: 36.16, Longitude: -86.78},
	}

	req := NewSearchRequest(params, "the-gulch")
	assert.Equal(t, []string{"the-gulch"}, req.Neighborhoods)
	assert.Equal(t, []string{"italian"}, req.Cuisine)
	assert.Equal(t, []models.PriceTier{models.PriceUpscale}, req.Price)
	assert.Equal(t, []string{"vegetarian"}, req.Preferences)
	assert.Equal(t, []string{"romantic"}, req.Atmosphere)
	assert.Equal(t, 3.0, *req.Distance)
	assert.NotNil(t, req.UserLocation)

	unscoped := NewSearchRequest(params, "")
	assert.Nil(t, unscoped.Neighborhoods)
}
