// internal/pipeline/rank-fallback/models.go
package rankfallback

import "nashville-eats/internal/models"

// Filter names reported in Output.DiscardedFilters.
const (
	FilterNeighborhood = "neighborhood"
	FilterPrice        = "price"
)

type Input struct {
	Params  models.QueryParameters `json:"params"`
	Entries []models.Restaurant    `json:"entries"`
}

type Output struct {
	Restaurants []models.Restaurant `json:"restaurants"`
	// Scores is keyed by restaurant id.
	Scores           map[string]float64 `json:"scores"`
	DiscardedFilters []string           `json:"discardedFilters,omitempty"`
	DroppedByRadius  int                `json:"droppedByRadius"`
}
