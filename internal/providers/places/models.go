// internal/providers/places/models.go
package places

// searchResponse is the edge function reply. Entries follow the Places
// result shape with a few optional curated fields.
type searchResponse struct {
	Results []placeResult `json:"results"`
	Status  string        `json:"status,omitempty"`
	Error   string        `json:"error,omitempty"`
}

type placeResult struct {
	PlaceID          string    `json:"place_id"`
	ID               string    `json:"id,omitempty"`
	Name             string    `json:"name"`
	Vicinity         string    `json:"vicinity,omitempty"`
	FormattedAddress string    `json:"formatted_address,omitempty"`
	Geometry         *geometry `json:"geometry,omitempty"`
	PriceLevel       *int      `json:"price_level,omitempty"`
	Types            []string  `json:"types,omitempty"`
	Website          string    `json:"website,omitempty"`
	Phone            string    `json:"formatted_phone_number,omitempty"`
	Summary          string    `json:"editorial_summary,omitempty"`
	Rating           float64   `json:"rating,omitempty"`
	Cuisine          string    `json:"cuisine,omitempty"`
	Neighborhood     string    `json:"neighborhood,omitempty"`
	InstagramLink    string    `json:"instagramLink,omitempty"`
	ResyLink         string    `json:"resyLink,omitempty"`
	OpenTableLink    string    `json:"openTableLink,omitempty"`
	ImageURL         string    `json:"imageUrl,omitempty"`
}

type geometry struct {
	Location latLng `json:"location"`
}

type latLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}
