// internal/models/query.go
package models

import (
	"errors"
	"sort"
	"strconv"
	"strings"
)

type PriceTier string

const (
	PriceBudget     PriceTier = "$"
	PriceModerate   PriceTier = "$$"
	PriceUpscale    PriceTier = "$$$"
	PriceFineDining PriceTier = "$$$$"
)

// Valid reports whether p is one of the four tiers.
func (p PriceTier) Valid() bool {
	switch p {
	case PriceBudget, PriceModerate, PriceUpscale, PriceFineDining:
		return true
	}
	return false
}

// Level returns 1..4 for a valid tier and 0 otherwise.
func (p PriceTier) Level() int {
	if !p.Valid() {
		return 0
	}
	return len(p)
}

var ErrDistanceWithoutLocation = errors.New("distance constraint requires a user location")

// QueryParameters is the normalized form of a completed quiz. Every slice is
// an ordered set; order matters for per-neighborhood aggregation.
type QueryParameters struct {
	Neighborhoods      []string     `json:"neighborhoods,omitempty"`
	Cuisines           []string     `json:"cuisines,omitempty"`
	PriceTiers         []PriceTier  `json:"priceTiers,omitempty"`
	DietaryPreferences []string     `json:"dietaryPreferences,omitempty"`
	AtmosphereTags     []string     `json:"atmosphereTags,omitempty"`
	DistanceMiles      *float64     `json:"distanceMiles,omitempty"`
	UserLocation       *Coordinates `json:"userLocation,omitempty"`
}

// IsUnconstrained is true when no preference beyond location was given.
func (q QueryParameters) IsUnconstrained() bool {
	return len(q.Neighborhoods) == 0 &&
		len(q.Cuisines) == 0 &&
		len(q.PriceTiers) == 0 &&
		len(q.DietaryPreferences) == 0 &&
		len(q.AtmosphereTags) == 0
}

// HasDistanceConstraint is true when both a radius and an origin exist.
func (q QueryParameters) HasDistanceConstraint() bool {
	return q.DistanceMiles != nil && q.UserLocation != nil
}

func (q QueryParameters) Validate() error {
	if q.DistanceMiles != nil && q.UserLocation == nil {
		return ErrDistanceWithoutLocation
	}
	return nil
}

// HasPrice reports whether tier is one of the requested tiers.
func (q QueryParameters) HasPrice(tier PriceTier) bool {
	for _, p := range q.PriceTiers {
		if p == tier {
			return true
		}
	}
	return false
}

// CacheKey renders the full parameter tuple canonically. Two parameter sets
// share a key only if every field matches.
func (q QueryParameters) CacheKey() string {
	prices := make([]string, len(q.PriceTiers))
	for i, p := range q.PriceTiers {
		prices[i] = string(p)
	}

	var b strings.Builder
	b.WriteString("n=")
	b.WriteString(sortedJoin(q.Neighborhoods))
	b.WriteString("|c=")
	b.WriteString(sortedJoin(q.Cuisines))
	b.WriteString("|p=")
	b.WriteString(sortedJoin(prices))
	b.WriteString("|d=")
	b.WriteString(sortedJoin(q.DietaryPreferences))
	b.WriteString("|a=")
	b.WriteString(sortedJoin(q.AtmosphereTags))
	b.WriteString("|r=")
	if q.DistanceMiles != nil {
		b.WriteString(strconv.FormatFloat(*q.DistanceMiles, 'f', -1, 64))
	}
	b.WriteString("|l=")
	if q.UserLocation != nil {
		b.WriteString(strconv.FormatFloat(q.UserLocation.Latitude, 'f', -1, 64))
		b.WriteString(",")
		b.WriteString(strconv.FormatFloat(q.UserLocation.Longitude, 'f', -1, 64))
	}
	return b.String()
}

func sortedJoin(values []string) string {
	if len(values) == 0 {
		return ""
	}
	cp := make([]string, len(values))
	for i, v := range values {
		cp[i] = strings.ToLower(v)
	}
	sort.Strings(cp)
	return strings.Join(cp, ",")
}
