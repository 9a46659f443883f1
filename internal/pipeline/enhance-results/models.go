// internal/pipeline/enhance-results/models.go
package enhanceresults

import "nashville-eats/internal/models"

type Input struct {
	Params      models.QueryParameters `json:"params"`
	Restaurants []models.Restaurant    `json:"restaurants"`
}

type Output struct {
	Restaurants      []models.Restaurant `json:"restaurants"`
	AlternativeCount int                 `json:"alternativeCount"`
}
