// internal/models/restaurant.go
package models

// Coordinates is a WGS84 point in decimal degrees.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Valid reports whether the point lies within latitude/longitude bounds.
func (c Coordinates) Valid() bool {
	return c.Latitude >= -90 && c.Latitude <= 90 && c.Longitude >= -180 && c.Longitude <= 180
}

// Restaurant is the canonical record produced by both the live provider and
// the curated catalog. Empty optional strings mean "absent".
type Restaurant struct {
	ID               string       `json:"id"`
	Name             string       `json:"name"`
	Cuisine          string       `json:"cuisine"`
	Neighborhood     string       `json:"neighborhood"`
	PriceRange       PriceTier    `json:"priceRange"`
	Description      string       `json:"description"`
	Address          string       `json:"address,omitempty"`
	Coordinates      *Coordinates `json:"coordinates,omitempty"`
	Features         []string     `json:"features"`
	Website          string       `json:"website,omitempty"`
	InstagramLink    string       `json:"instagramLink,omitempty"`
	ResyLink         string       `json:"resyLink,omitempty"`
	OpenTableLink    string       `json:"openTableLink,omitempty"`
	Phone            string       `json:"phone,omitempty"`
	ImageURL         string       `json:"imageUrl,omitempty"`
	LogoURL          string       `json:"logoUrl,omitempty"`
	DistanceFromUser *float64     `json:"distanceFromUser,omitempty"`
	IsAlternative    bool         `json:"isAlternative,omitempty"`
}

// Clone returns a deep copy that shares no slices or pointers with r.
func (r Restaurant) Clone() Restaurant {
	out := r
	if r.Features != nil {
		out.Features = append([]string(nil), r.Features...)
	}
	if r.Coordinates != nil {
		c := *r.Coordinates
		out.Coordinates = &c
	}
	if r.DistanceFromUser != nil {
		d := *r.DistanceFromUser
		out.DistanceFromUser = &d
	}
	return out
}

// CloneAll deep-copies every record in list.
func CloneAll(list []Restaurant) []Restaurant {
	if list == nil {
		return nil
	}
	out := make([]Restaurant, len(list))
	for i := range list {
		out[i] = list[i].Clone()
	}
	return out
}

// Float64 returns a pointer to v.
func Float64(v float64) *float64 {
	return &v
}
