// internal/pipeline/aggregate-results/models.go
package aggregateresults

import "nashville-eats/internal/models"

// Input holds one result list per query, in query order.
type Input struct {
	Lists [][]models.Restaurant `json:"lists"`
}

type Output struct {
	Restaurants       []models.Restaurant `json:"restaurants"`
	DuplicatesRemoved int                 `json:"duplicatesRemoved"`
}
