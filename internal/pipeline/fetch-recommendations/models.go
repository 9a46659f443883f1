// internal/pipeline/fetch-recommendations/models.go
package fetchrecommendations

import (
	apperrors "nashville-eats/internal/common/errors"
	"nashville-eats/internal/models"
)

// Fetch states.
const (
	StateIdle    = "idle"
	StateLoading = "loading"
	StateSuccess = "success"
	StateError   = "error"
)

// Result sources.
const (
	SourceNone     = "none"
	SourceLive     = "live"
	SourceCache    = "cache"
	SourceFallback = "fallback"
)

type Input struct {
	Params    models.QueryParameters `json:"params"`
	RequestID string                 `json:"requestId,omitempty"`
}

// Output is what the presentation layer renders. Error is a soft notice when
// Degraded is set; Data is still usable.
type Output struct {
	Data      []models.Restaurant      `json:"data"`
	IsLoading bool                     `json:"isLoading"`
	Error     *apperrors.StandardError `json:"error"`
	Source    string                   `json:"source"`
	State     string                   `json:"state"`
	RequestID string                   `json:"requestId"`
	Degraded  bool                     `json:"degraded"`
	Stale     bool                     `json:"stale,omitempty"`
}
