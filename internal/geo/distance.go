// Package geo holds great-circle helpers for ranking restaurants by distance.
package geo

import (
	"math"

	"nashville-eats/internal/models"
)

// EarthRadiusMiles is the mean Earth radius used by the haversine formula.
const EarthRadiusMiles = 3958.8

// HaversineDistanceMiles returns the great-circle distance between two
// points given in decimal degrees.
func HaversineDistanceMiles(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := toRadians(lat2 - lat1)
	dLng := toRadians(lng2 - lng1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(lat1))*math.Cos(toRadians(lat2))*
			math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusMiles * c
}

// DistanceBetween is HaversineDistanceMiles for two Coordinates.
func DistanceBetween(a, b models.Coordinates) float64 {
	return HaversineDistanceMiles(a.Latitude, a.Longitude, b.Latitude, b.Longitude)
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
