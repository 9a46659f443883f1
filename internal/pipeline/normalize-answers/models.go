// internal/pipeline/normalize-answers/models.go
package normalizeanswers

import (
	apperrors "nashville-eats/internal/common/errors"
	"nashville-eats/internal/models"
)

// Location methods understood by the normalizer.
const (
	LocationMethodNeighborhood = "neighborhood"
	LocationMethodCurrent      = "current"
	LocationMethodDistance     = "distance"
)

type Input struct {
	SchemaVersion  string                 `json:"schemaVersion"`
	Answers        map[string]interface{} `json:"answers"`
	UserLocation   *models.Coordinates    `json:"userLocation,omitempty"`
	LocationStatus string                 `json:"locationStatus,omitempty"`
}

type Output struct {
	Params         models.QueryParameters     `json:"params"`
	LocationMethod string                     `json:"locationMethod,omitempty"`
	Issues         []*apperrors.StandardError `json:"issues,omitempty"`
}
