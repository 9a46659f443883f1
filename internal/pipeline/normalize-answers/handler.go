// internal/pipeline/normalize-answers/handler.go
package normalizeanswers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	apperrors "nashville-eats/internal/common/errors"
	"nashville-eats/internal/common/logger"
	"nashville-eats/internal/common/metrics"
	"nashville-eats/internal/models"
	"nashville-eats/pkg/registry"
)

const TaskType = "normalize-answers"

var (
	ErrNilInput = errors.New("input cannot be nil")
)

// sentinels mean "no preference" and never reach the query.
var sentinels = map[string]bool{
	"":         true,
	"anything": true,
	"none":     true,
}

var priceWords = map[string]models.PriceTier{
	"$":           models.PriceBudget,
	"$$":          models.PriceModerate,
	"$$$":         models.PriceUpscale,
	"$$$$":        models.PriceFineDining,
	"1":           models.PriceBudget,
	"2":           models.PriceModerate,
	"3":           models.PriceUpscale,
	"4":           models.PriceFineDining,
	"budget":      models.PriceBudget,
	"cheap":       models.PriceBudget,
	"moderate":    models.PriceModerate,
	"upscale":     models.PriceUpscale,
	"fine-dining": models.PriceFineDining,
	"fine dining": models.PriceFineDining,
}

var deniedStatuses = map[string]bool{
	"denied":      true,
	"unavailable": true,
	"timeout":     true,
}

type Handler struct {
	config   *Config
	registry *registry.Registry
	logger   logger.Logger
}

func NewHandler(config *Config, reg *registry.Registry, log logger.Logger) *Handler {
	if reg == nil {
		reg = registry.Default()
	}
	return &Handler{
		config:   config,
		registry: reg,
		logger:   log.WithFields(map[string]interface{}{"stage": TaskType}),
	}
}

// Execute turns raw quiz answers into QueryParameters. Malformed answers are
// dropped and reported in Output.Issues; only a nil input is an error.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}

func (h *Handler) execute(_ context.Context, input *Input) (*Output, error) {
	if input == nil {
		return nil, ErrNilInput
	}

	start := time.Now()
	version := input.SchemaVersion
	if version == "" {
		version = h.config.DefaultSchemaVersion
	}

	out := &Output{}
	var (
		neighborhoods = newOrderedSet()
		cuisines      = newOrderedSet()
		dietary       = newOrderedSet()
		atmosphere    = newOrderedSet()
		prices        []models.PriceTier
		distance      *float64
	)

	// sorted keys keep issue order stable across identical requests
	keys := make([]string, 0, len(input.Answers))
	for k := range input.Answers {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		raw := input.Answers[key]
		field, ok := h.registry.Resolve(version, key)
		if !ok {
			h.logger.Debug("ignoring unknown answer key", map[string]interface{}{
				"key":           key,
				"schemaVersion": version,
			})
			continue
		}

		switch field {
		case registry.FieldNeighborhoods:
			out.addIssues(neighborhoods.addRaw(key, raw))
		case registry.FieldCuisines:
			out.addIssues(cuisines.addRaw(key, raw))
		case registry.FieldDietary:
			out.addIssues(dietary.addRaw(key, raw))
		case registry.FieldAtmosphere:
			out.addIssues(atmosphere.addRaw(key, raw))
		case registry.FieldPrice:
			tiers, issues := parsePrices(key, raw)
			out.addIssues(issues)
			for _, t := range tiers {
				if !containsTier(prices, t) {
					prices = append(prices, t)
				}
			}
		case registry.FieldDistance:
			d, issue := parseDistance(key, raw)
			if issue != nil {
				out.Issues = append(out.Issues, issue)
			} else if d != nil {
				distance = d
			}
		case registry.FieldLocationMethod:
			if s, ok := raw.(string); ok {
				out.LocationMethod = strings.ToLower(strings.TrimSpace(s))
			} else if raw != nil {
				out.Issues = append(out.Issues, apperrors.NewNormalizationError(key,
					fmt.Sprintf("expected a string, got %T", raw)))
			}
		}
	}

	location := input.UserLocation
	if location != nil && !location.Valid() {
		out.Issues = append(out.Issues, apperrors.NewNormalizationError("userLocation",
			fmt.Sprintf("coordinates out of range: %f,%f", location.Latitude, location.Longitude)))
		location = nil
	}
	if location != nil {
		loc := *location
		location = &loc
	}

	wantsLocation := out.LocationMethod == LocationMethodCurrent || out.LocationMethod == LocationMethodDistance
	status := strings.ToLower(input.LocationStatus)
	geolocationReported := false
	if location == nil && (deniedStatuses[status] || (wantsLocation && status != "")) {
		if !deniedStatuses[status] {
			// granted but no coordinates arrived
			status = "unavailable"
		}
		out.Issues = append(out.Issues, apperrors.NewGeolocationDeniedError(status))
		geolocationReported = true
	}

	if out.LocationMethod == LocationMethodNeighborhood {
		distance = nil
	}
	if distance != nil && location == nil {
		if !geolocationReported {
			out.Issues = append(out.Issues, apperrors.NewGeolocationDeniedError("unavailable").
				WithMetadata("droppedField", "distance"))
		}
		distance = nil
	}

	out.Params = models.QueryParameters{
		Neighborhoods:      neighborhoods.values,
		Cuisines:           cuisines.values,
		PriceTiers:         prices,
		DietaryPreferences: dietary.values,
		AtmosphereTags:     atmosphere.values,
		DistanceMiles:      distance,
		UserLocation:       location,
	}

	metrics.StageRunsCompleted.WithLabelValues(TaskType).Inc()
	metrics.StageDuration.WithLabelValues(TaskType).Observe(time.Since(start).Seconds())

	h.logger.Info("answers normalized", map[string]interface{}{
		"schemaVersion": version,
		"neighborhoods": len(out.Params.Neighborhoods),
		"cuisines":      len(out.Params.Cuisines),
		"priceTiers":    len(out.Params.PriceTiers),
		"hasDistance":   out.Params.DistanceMiles != nil,
		"issues":        len(out.Issues),
	})

	return out, nil
}

func (o *Output) addIssues(issues []*apperrors.StandardError) {
	o.Issues = append(o.Issues, issues...)
}

// orderedSet keeps first-seen order and compares case-insensitively.
type orderedSet struct {
	values []string
	seen   map[string]bool
}

func newOrderedSet() *orderedSet {
	return &orderedSet{seen: make(map[string]bool)}
}

func (s *orderedSet) add(v string) {
	v = strings.TrimSpace(v)
	key := strings.ToLower(v)
	if sentinels[key] || s.seen[key] {
		return
	}
	s.seen[key] = true
	s.values = append(s.values, v)
}

// addRaw accepts a scalar string, a string slice or a decoded JSON array.
func (s *orderedSet) addRaw(field string, raw interface{}) []*apperrors.StandardError {
	var issues []*apperrors.StandardError

	switch v := raw.(type) {
	case nil:
	case string:
		s.add(v)
	case []string:
		for _, item := range v {
			s.add(item)
		}
	case []interface{}:
		for _, item := range v {
			str, ok := item.(string)
			if !ok {
				issues = append(issues, apperrors.NewNormalizationError(field,
					fmt.Sprintf("array item %v is %T, expected string", item, item)))
				continue
			}
			s.add(str)
		}
	default:
		issues = append(issues, apperrors.NewNormalizationError(field,
			fmt.Sprintf("expected string or array, got %T", raw)))
	}

	return issues
}

func parsePrices(field string, raw interface{}) ([]models.PriceTier, []*apperrors.StandardError) {
	var items []interface{}
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case []interface{}:
		items = v
	case []string:
		for _, s := range v {
			items = append(items, s)
		}
	default:
		items = []interface{}{v}
	}

	var (
		tiers  []models.PriceTier
		issues []*apperrors.StandardError
	)
	for _, item := range items {
		var key string
		switch v := item.(type) {
		case string:
			key = strings.ToLower(strings.TrimSpace(v))
		case float64:
			key = strconv.FormatFloat(v, 'f', -1, 64)
		case float32:
			key = strconv.FormatFloat(float64(v), 'f', -1, 32)
		case int:
			key = strconv.Itoa(v)
		case int64:
			key = strconv.FormatInt(v, 10)
		case json.Number:
			// 2 and 2.0 name the same tier
			f, err := v.Float64()
			if err != nil {
				issues = append(issues, apperrors.NewNormalizationError(field,
					fmt.Sprintf("invalid number %q", v.String())))
				continue
			}
			key = strconv.FormatFloat(f, 'f', -1, 64)
		default:
			issues = append(issues, apperrors.NewNormalizationError(field,
				fmt.Sprintf("unsupported price value of type %T", item)))
			continue
		}

		if sentinels[key] {
			continue
		}
		tier, ok := priceWords[key]
		if !ok {
			issues = append(issues, apperrors.NewNormalizationError(field,
				fmt.Sprintf("unknown price tier %q", key)))
			continue
		}
		tiers = append(tiers, tier)
	}
	return tiers, issues
}

// parseDistance accepts JSON numbers only. Numeric strings are rejected so
// that a client sending "5" learns about it instead of silently filtering.
func parseDistance(field string, raw interface{}) (*float64, *apperrors.StandardError) {
	var d float64
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case float64:
		d = v
	case float32:
		d = float64(v)
	case int:
		d = float64(v)
	case int64:
		d = float64(v)
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return nil, apperrors.NewNormalizationError(field, fmt.Sprintf("invalid number %q", v.String()))
		}
		d = f
	case string:
		return nil, apperrors.NewNormalizationError(field,
			fmt.Sprintf("distance must be a number, got string %q", v))
	default:
		return nil, apperrors.NewNormalizationError(field,
			fmt.Sprintf("distance must be a number, got %T", raw))
	}

	if math.IsNaN(d) || math.IsInf(d, 0) || d <= 0 {
		return nil, apperrors.NewNormalizationError(field, fmt.Sprintf("distance must be positive, got %v", d))
	}
	return &d, nil
}

func containsTier(list []models.PriceTier, t models.PriceTier) bool {
	for _, p := range list {
		if p == t {
			return true
		}
	}
	return false
}
