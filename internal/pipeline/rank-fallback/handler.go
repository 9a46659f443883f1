// internal/pipeline/rank-fallback/handler.go
package rankfallback

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"nashville-eats/internal/catalog"
	"nashville-eats/internal/common/logger"
	"nashville-eats/internal/common/metrics"
	"nashville-eats/internal/geo"
	"nashville-eats/internal/models"
)

const TaskType = "rank-fallback"

var (
	ErrNilInput = errors.New("input cannot be nil")
)

type Handler struct {
	config *Config
	random RandomSource
	logger logger.Logger
}

func NewHandler(config *Config, random RandomSource, log logger.Logger) *Handler {
	if random == nil {
		random = NewRandomSource(0)
	}
	return &Handler{
		config: config,
		random: random,
		logger: log.WithFields(map[string]interface{}{"stage": TaskType}),
	}
}

// Execute filters, scores and truncates the fallback catalog. The returned
// restaurants are copies; Input.Entries is never modified.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}

type scored struct {
	restaurant models.Restaurant
	score      float64
}

func (h *Handler) execute(_ context.Context, input *Input) (*Output, error) {
	if input == nil {
		return nil, ErrNilInput
	}

	start := time.Now()
	params := input.Params
	out := &Output{Scores: make(map[string]float64)}

	candidates := models.CloneAll(input.Entries)

	// Step 1: neighborhood, discarded when nothing survives
	if len(params.Neighborhoods) > 0 {
		filtered := filter(candidates, func(r models.Restaurant) bool {
			return catalog.MatchesAnyNeighborhood(r.Neighborhood, params.Neighborhoods)
		})
		if len(filtered) == 0 {
			out.DiscardedFilters = append(out.DiscardedFilters, FilterNeighborhood)
		} else {
			candidates = filtered
		}
	}

	// Step 2: price, same policy
	if len(params.PriceTiers) > 0 {
		filtered := filter(candidates, func(r models.Restaurant) bool {
			return params.HasPrice(r.PriceRange)
		})
		if len(filtered) == 0 {
			out.DiscardedFilters = append(out.DiscardedFilters, FilterPrice)
		} else {
			candidates = filtered
		}
	}

	// Step 3: radius is a hard constraint
	if params.HasDistanceConstraint() {
		origin := *params.UserLocation
		radius := *params.DistanceMiles
		kept := candidates[:0]
		for _, r := range candidates {
			d := h.config.ChainDefaultDistanceMiles
			if r.Coordinates != nil {
				d = geo.DistanceBetween(origin, *r.Coordinates)
			}
			if d > radius {
				out.DroppedByRadius++
				continue
			}
			r.DistanceFromUser = models.Float64(d)
			kept = append(kept, r)
		}
		candidates = kept
	}

	// Step 4: score
	ranked := make([]scored, len(candidates))
	for i, r := range candidates {
		ranked[i] = scored{restaurant: r, score: h.score(r, params)}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})

	// Step 5: truncate
	if h.config.MaxResults > 0 && len(ranked) > h.config.MaxResults {
		ranked = ranked[:h.config.MaxResults]
	}

	out.Restaurants = make([]models.Restaurant, len(ranked))
	for i, s := range ranked {
		out.Restaurants[i] = s.restaurant
		out.Scores[s.restaurant.ID] = s.score
	}

	metrics.StageRunsCompleted.WithLabelValues(TaskType).Inc()
	metrics.StageDuration.WithLabelValues(TaskType).Observe(time.Since(start).Seconds())

	h.logger.Info("ranking completed", map[string]interface{}{
		"inputCount":       len(input.Entries),
		"outputCount":      len(out.Restaurants),
		"discardedFilters": out.DiscardedFilters,
		"droppedByRadius":  out.DroppedByRadius,
		"durationMs":       time.Since(start).Milliseconds(),
	})

	return out, nil
}

func (h *Handler) score(r models.Restaurant, params models.QueryParameters) float64 {
	s := h.random.Float64() * h.config.JitterRange

	if params.HasPrice(r.PriceRange) {
		s += PriceMatchBonus
	}
	if matchesCuisine(r.Cuisine, params.Cuisines) {
		s += CuisineMatchBonus
	}
	if len(params.Neighborhoods) > 0 && catalog.MatchesAnyNeighborhood(r.Neighborhood, params.Neighborhoods) {
		s += NeighborhoodMatchBonus
	}
	return s
}

func matchesCuisine(cuisine string, requested []string) bool {
	c := strings.ToLower(cuisine)
	if c == "" {
		return false
	}
	for _, want := range requested {
		w := strings.ToLower(strings.TrimSpace(want))
		if w != "" && (strings.Contains(c, w) || strings.Contains(w, c)) {
			return true
		}
	}
	return false
}

func filter(list []models.Restaurant, keep func(models.Restaurant) bool) []models.Restaurant {
	var out []models.Restaurant
	for _, r := range list {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}
