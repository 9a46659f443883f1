package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRestaurant_Clone(t *testing.T) {
	orig := Restaurant{
		ID:               "r1",
		Features:         []string{"Patio"},
		Coordinates:      &Coordinates{Latitude: 36.16, Longitude: -86.78},
		DistanceFromUser: Float64(1.2),
	}

	cp := orig.Clone()
	cp.Features[0] = "Bar"
	cp.Coordinates.Latitude = 0
	*cp.DistanceFromUser = 9

	assert.Equal(t, "Patio", orig.Features[0])
	assert.Equal(t, 36.16, orig.Coordinates.Latitude)
	assert.Equal(t, 1.2, *orig.DistanceFromUser)
}

func TestCloneAll_Nil(t *testing.T) {
	assert.Nil(t, CloneAll(nil))
	assert.Len(t, CloneAll([]Restaurant{{ID: "a"}, {ID: "b"}}), 2)
}

func TestPriceTier(t *testing.T) {
	assert.True(t, PriceModerate.Valid())
	assert.Equal(t, 2, PriceModerate.Level())
	assert.Equal(t, 4, PriceFineDining.Level())
	assert.False(t, PriceTier("$$$$$").Valid())
	assert.Equal(t, 0, PriceTier("cheap").Level())
}

func TestQueryParameters_IsUnconstrained(t *testing.T) {
	assert.True(t, QueryParameters{}.IsUnconstrained())
	assert.True(t, QueryParameters{DistanceMiles: Float64(5), UserLocation: &Coordinates{}}.IsUnconstrained())
	assert.False(t, QueryParameters{Cuisines: []string{"bbq"}}.IsUnconstrained())
	assert.False(t, QueryParameters{DietaryPreferences: []string{"vegan"}}.IsUnconstrained())
}

func TestQueryParameters_Validate(t *testing.T) {
	assert.ErrorIs(t, QueryParameters{DistanceMiles: Float64(3)}.Validate(), ErrDistanceWithoutLocation)
	assert.NoError(t, QueryParameters{DistanceMiles: Float64(3), UserLocation: &Coordinates{}}.Validate())
	assert.NoError(t, QueryParameters{}.Validate())
}

func TestQueryParameters_CacheKey(t *testing.T) {
	a := QueryParameters{
		Neighborhoods: []string{"east-nashville", "germantown"},
		PriceTiers:    []PriceTier{PriceModerate},
		DistanceMiles: Float64(5),
		UserLocation:  &Coordinates{Latitude: 36.1627, Longitude: -86.7816},
	}
	b := QueryParameters{
		Neighborhoods: []string{"germantown", "east-nashville"},
		PriceTiers:    []PriceTier{PriceModerate},
		DistanceMiles: Float64(5),
		UserLocation:  &Coordinates{Latitude: 36.1627, Longitude: -86.7816},
	}
	assert.Equal(t, a.CacheKey(), b.CacheKey())

	c := b
	c.UserLocation = &Coordinates{Latitude: 36.1628, Longitude: -86.7816}
	assert.NotEqual(t, a.CacheKey(), c.CacheKey())

	d := b
	d.DistanceMiles = Float64(10)
	assert.NotEqual(t, a.CacheKey(), d.CacheKey())

	e := b
	e.AtmosphereTags = []string{"romantic"}
	assert.NotEqual(t, a.CacheKey(), e.CacheKey())
}

func TestQuizSession_Expiry(t *testing.T) {
	s := &QuizSession{ID: "s1", ExpiresAt: time.Now().Add(-time.Second)}
	assert.True(t, s.IsExpired())

	s.UpdateActivity(time.Minute)
	assert.False(t, s.IsExpired())
	assert.WithinDuration(t, time.Now().Add(time.Minute), s.ExpiresAt, time.Second)
}
