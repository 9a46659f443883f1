// internal/pipeline/enhance-results/handler_test.go
package enhanceresults

import (
	"context"
	"testing"

	"nashville-eats/internal/catalog"
	"nashville-eats/internal/common/logger"
	"nashville-eats/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

func createTestHandler(t *testing.T) *Handler {
	return NewHandler(LoadConfig(), logger.NewTestLogger(t))
}

func downtown() *models.Coordinates {
	return &models.Coordinates{Latitude: 36.1627, Longitude: -86.7816}
}

func findByID(t *testing.T, list []models.Restaurant, id string) models.Restaurant {
	t.Helper()
	for _, r := range list {
		if r.ID == id {
			return r
		}
	}
	t.Fatalf("restaurant %q not found", id)
	return models.Restaurant{}
}

// ==========================
// Link Tests
// ==========================

func TestHandler_Execute_Links(t *testing.T) {
	tests := []struct {
		name           string
		restaurant     models.Restaurant
		validateOutput func(t *testing.T, r models.Restaurant)
	}{
		{
			name:       "missing website becomes search url",
			restaurant: models.Restaurant{ID: "a", Name: "Husk", PriceRange: models.PriceBudget},
			validateOutput: func(t *testing.T, r models.Restaurant) {
				assert.Equal(t, "https://www.google.com/search?q=Husk+Nashville+TN", r.Website)
			},
		},
		{
			name:       "existing website is kept",
			restaurant: models.Restaurant{ID: "a", Name: "Husk", Website: "https://husknashville.com"},
			validateOutput: func(t *testing.T, r models.Restaurant) {
				assert.Equal(t, "https://husknashville.com", r.Website)
			},
		},
		{
			name:       "upscale gets resy only",
			restaurant: models.Restaurant{ID: "a", Name: "Margot Cafe", PriceRange: models.PriceUpscale},
			validateOutput: func(t *testing.T, r models.Restaurant) {
				assert.Equal(t, "https://resy.com/cities/bna?query=Margot+Cafe", r.ResyLink)
				assert.Empty(t, r.OpenTableLink)
			},
		},
		{
			name:       "fine dining gets resy only",
			restaurant: models.Restaurant{ID: "a", Name: "Kayne Prime", PriceRange: models.PriceFineDining},
			validateOutput: func(t *testing.T, r models.Restaurant) {
				assert.NotEmpty(t, r.ResyLink)
				assert.Empty(t, r.OpenTableLink)
			},
		},
		{
			name:       "moderate gets opentable only",
			restaurant: models.Restaurant{ID: "a", Name: "Edley's", PriceRange: models.PriceModerate},
			validateOutput: func(t *testing.T, r models.Restaurant) {
				assert.Empty(t, r.ResyLink)
				assert.Equal(t, "https://www.opentable.com/s?term=Edley%27s+Nashville", r.OpenTableLink)
			},
		},
		{
			name:       "budget gets no reservation link",
			restaurant: models.Restaurant{ID: "a", Name: "Mas Tacos", PriceRange: models.PriceBudget},
			validateOutput: func(t *testing.T, r models.Restaurant) {
				assert.Empty(t, r.ResyLink)
				assert.Empty(t, r.OpenTableLink)
			},
		},
		{
			name: "one existing link blocks the guess",
			restaurant: models.Restaurant{
				ID: "a", Name: "City House", PriceRange: models.PriceUpscale,
				OpenTableLink: "https://www.opentable.com/r/city-house-nashville",
			},
			validateOutput: func(t *testing.T, r models.Restaurant) {
				assert.Empty(t, r.ResyLink)
				assert.Equal(t, "https://www.opentable.com/r/city-house-nashville", r.OpenTableLink)
			},
		},
		{
			name: "both existing links are kept",
			restaurant: models.Restaurant{
				ID: "a", Name: "Husk", PriceRange: models.PriceUpscale,
				ResyLink:      "https://resy.com/cities/bna/husk-nashville",
				OpenTableLink: "https://www.opentable.com/r/husk-nashville",
			},
			validateOutput: func(t *testing.T, r models.Restaurant) {
				assert.Equal(t, "https://resy.com/cities/bna/husk-nashville", r.ResyLink)
				assert.Equal(t, "https://www.opentable.com/r/husk-nashville", r.OpenTableLink)
			},
		},
		{
			name:       "instagram handle from name",
			restaurant: models.Restaurant{ID: "a", Name: "Hattie B's Hot Chicken"},
			validateOutput: func(t *testing.T, r models.Restaurant) {
				assert.Equal(t, "https://www.instagram.com/hattiebshotchicken/", r.InstagramLink)
			},
		},
		{
			name:       "no handle without ascii characters",
			restaurant: models.Restaurant{ID: "a", Name: "¡¿!"},
			validateOutput: func(t *testing.T, r models.Restaurant) {
				assert.Empty(t, r.InstagramLink)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := createTestHandler(t)

			output, err := handler.Execute(context.Background(), &Input{
				Restaurants: []models.Restaurant{tt.restaurant},
			})

			require.NoError(t, err)
			require.Len(t, output.Restaurants, 1)
			tt.validateOutput(t, output.Restaurants[0])
		})
	}
}

// ==========================
// Distance Tests
// ==========================

func TestHandler_Execute_DistanceAndAlternatives(t *testing.T) {
	handler := createTestHandler(t)

	output, err := handler.Execute(context.Background(), &Input{
		Params: models.QueryParameters{
			Cuisines:      []string{"bbq"},
			DistanceMiles: models.Float64(3),
			UserLocation:  downtown(),
		},
		Restaurants: catalog.Seed(),
	})
	require.NoError(t, err)
	require.Len(t, output.Restaurants, len(catalog.Seed()))

	alternatives := 0
	seenUnknown := false
	var last float64
	for _, r := range output.Restaurants {
		if r.DistanceFromUser == nil {
			seenUnknown = true
			assert.False(t, r.IsAlternative)
			continue
		}
		assert.False(t, seenUnknown, "known distance after unknown: %s", r.ID)
		assert.GreaterOrEqual(t, *r.DistanceFromUser, last)
		last = *r.DistanceFromUser
		assert.Equal(t, *r.DistanceFromUser > 3, r.IsAlternative, r.ID)
		if r.IsAlternative {
			alternatives++
		}
	}
	assert.Equal(t, alternatives, output.AlternativeCount)
	assert.Greater(t, alternatives, 0)

	martins := findByID(t, output.Restaurants, "martins-bbq-belle-meade")
	assert.InDelta(t, 4.99, *martins.DistanceFromUser, 0.05)
	assert.True(t, martins.IsAlternative)
}

func TestHandler_Execute_KeepsChainDefaultDistance(t *testing.T) {
	handler := createTestHandler(t)

	chain := models.Restaurant{ID: "chain", Name: "Jeni's", DistanceFromUser: models.Float64(1.5)}
	near := models.Restaurant{ID: "near", Name: "Etch", Coordinates: &models.Coordinates{Latitude: 36.1575, Longitude: -86.7717}}
	unknown := models.Restaurant{ID: "unknown", Name: "Mystery"}

	output, err := handler.Execute(context.Background(), &Input{
		Params:      models.QueryParameters{Cuisines: []string{"x"}, UserLocation: downtown()},
		Restaurants: []models.Restaurant{unknown, chain, near},
	})
	require.NoError(t, err)

	require.Len(t, output.Restaurants, 3)
	assert.Equal(t, "near", output.Restaurants[0].ID)
	assert.Equal(t, "chain", output.Restaurants[1].ID)
	assert.Equal(t, 1.5, *output.Restaurants[1].DistanceFromUser)
	assert.Equal(t, "unknown", output.Restaurants[2].ID)
}

func TestHandler_Execute_NoLocationKeepsOrder(t *testing.T) {
	handler := createTestHandler(t)
	entries := catalog.Seed()

	output, err := handler.Execute(context.Background(), &Input{
		Params:      models.QueryParameters{Cuisines: []string{"italian"}},
		Restaurants: entries,
	})
	require.NoError(t, err)

	for i, r := range output.Restaurants {
		assert.Equal(t, entries[i].ID, r.ID)
		assert.Nil(t, r.DistanceFromUser)
		assert.False(t, r.IsAlternative)
	}
}

// ==========================
// Non-mutation Tests
// ==========================

func TestHandler_Execute_DoesNotMutateInput(t *testing.T) {
	handler := createTestHandler(t)
	entries := catalog.Seed()
	params := models.QueryParameters{
		Cuisines:      []string{"bbq"},
		DistanceMiles: models.Float64(1),
		UserLocation:  downtown(),
	}

	first, err := handler.Execute(context.Background(), &Input{Params: params, Restaurants: entries})
	require.NoError(t, err)
	second, err := handler.Execute(context.Background(), &Input{Params: params, Restaurants: entries})
	require.NoError(t, err)

	assert.Equal(t, catalog.Seed(), entries)
	for _, e := range entries {
		assert.Nil(t, e.DistanceFromUser)
		assert.False(t, e.IsAlternative)
	}

	a := findByID(t, first.Restaurants, "husk-nashville")
	b := findByID(t, second.Restaurants, "husk-nashville")
	assert.Equal(t, a, b)
	assert.NotSame(t, a.DistanceFromUser, b.DistanceFromUser)

	a.Features[0] = "changed"
	assert.NotEqual(t, "changed", b.Features[0])
	assert.NotEqual(t, "changed", entries[2].Features[0])
}

func TestHandler_Execute_NilInput(t *testing.T) {
	handler := createTestHandler(t)

	output, err := handler.Execute(context.Background(), nil)

	assert.ErrorIs(t, err, ErrNilInput)
	assert.Nil(t, output)
}
