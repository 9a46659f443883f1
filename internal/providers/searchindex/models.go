// internal/providers/searchindex/models.go
package searchindex

// restaurantDocument is the indexed shape of a restaurant.
type restaurantDocument struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Cuisine       string    `json:"cuisine"`
	Neighborhood  string    `json:"neighborhood"`
	PriceRange    string    `json:"price_range"`
	Description   string    `json:"description"`
	Address       string    `json:"address"`
	Location      *geoPoint `json:"location,omitempty"`
	Features      []string  `json:"features"`
	Website       string    `json:"website"`
	InstagramLink string    `json:"instagram_link"`
	ResyLink      string    `json:"resy_link"`
	OpenTableLink string    `json:"opentable_link"`
	Phone         string    `json:"phone"`
	ImageURL      string    `json:"image_url"`
	LogoURL       string    `json:"logo_url"`
}

type geoPoint struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type searchResponse struct {
	Took int64 `json:"took"`
	Hits struct {
		Total struct {
			Value int64 `json:"value"`
		} `json:"total"`
		Hits []struct {
			ID     string             `json:"_id"`
			Source restaurantDocument `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}
