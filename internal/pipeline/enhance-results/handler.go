// internal/pipeline/enhance-results/handler.go
package enhanceresults

import (
	"context"
	"errors"
	"net/url"
	"sort"
	"strings"
	"time"
	"unicode"

	"nashville-eats/internal/common/logger"
	"nashville-eats/internal/common/metrics"
	"nashville-eats/internal/geo"
	"nashville-eats/internal/models"
)

const TaskType = "enhance-results"

var (
	ErrNilInput = errors.New("input cannot be nil")
)

type Handler struct {
	config *Config
	logger logger.Logger
}

func NewHandler(config *Config, log logger.Logger) *Handler {
	return &Handler{
		config: config,
		logger: log.WithFields(map[string]interface{}{"stage": TaskType}),
	}
}

// Execute fills in links, distances and the alternative flag on copies of
// the input records.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}

func (h *Handler) execute(_ context.Context, input *Input) (*Output, error) {
	if input == nil {
		return nil, ErrNilInput
	}

	start := time.Now()
	params := input.Params
	out := &Output{Restaurants: make([]models.Restaurant, 0, len(input.Restaurants))}

	for _, src := range input.Restaurants {
		r := h.enhance(src.Clone(), params)
		if r.IsAlternative {
			out.AlternativeCount++
		}
		out.Restaurants = append(out.Restaurants, r)
	}

	if params.UserLocation != nil {
		sortByDistance(out.Restaurants)
	}

	metrics.StageRunsCompleted.WithLabelValues(TaskType).Inc()
	metrics.StageDuration.WithLabelValues(TaskType).Observe(time.Since(start).Seconds())

	h.logger.Debug("results enhanced", map[string]interface{}{
		"count":        len(out.Restaurants),
		"alternatives": out.AlternativeCount,
		"durationMs":   time.Since(start).Milliseconds(),
	})

	return out, nil
}

func (h *Handler) enhance(r models.Restaurant, params models.QueryParameters) models.Restaurant {
	if r.Website == "" {
		r.Website = h.config.SearchURL + url.QueryEscape(r.Name+" "+h.config.LocationSuffix)
	}

	// at most one reservation platform is ever guessed
	if r.ResyLink == "" && r.OpenTableLink == "" {
		switch r.PriceRange {
		case models.PriceUpscale, models.PriceFineDining:
			r.ResyLink = h.config.ResyURL + url.QueryEscape(r.Name)
		case models.PriceModerate:
			r.OpenTableLink = h.config.OpenTableURL + url.QueryEscape(r.Name+" Nashville")
		}
	}

	if r.InstagramLink == "" {
		if handle := instagramHandle(r.Name); handle != "" {
			r.InstagramLink = h.config.InstagramURL + handle + "/"
		}
	}

	if params.UserLocation != nil && r.Coordinates != nil {
		r.DistanceFromUser = models.Float64(geo.DistanceBetween(*params.UserLocation, *r.Coordinates))
	}

	r.IsAlternative = params.DistanceMiles != nil &&
		r.DistanceFromUser != nil &&
		*r.DistanceFromUser > *params.DistanceMiles

	return r
}

func instagramHandle(name string) string {
	var b strings.Builder
	for _, c := range strings.ToLower(name) {
		if c < unicode.MaxASCII && (unicode.IsLetter(c) || unicode.IsDigit(c)) {
			b.WriteRune(c)
		}
	}
	return b.String()
}

// sortByDistance orders ascending; unknown distances go last in input order.
func sortByDistance(list []models.Restaurant) {
	sort.SliceStable(list, func(i, j int) bool {
		a, b := list[i].DistanceFromUser, list[j].DistanceFromUser
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return *a < *b
		}
	})
}
