// internal/pipeline/aggregate-results/handler.go
package aggregateresults

import (
	"context"
	"errors"
	"time"

	"nashville-eats/internal/common/logger"
	"nashville-eats/internal/common/metrics"
	"nashville-eats/internal/models"
)

const TaskType = "aggregate-results"

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

// Execute concatenates the lists in order and keeps the first record seen
// for each id.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}

func (h *Handler) execute(_ context.Context, input *Input) (*Output, error) {
	if input == nil {
		return nil, ErrNilInput
	}

	start := time.Now()
	out := &Output{Restaurants: []models.Restaurant{}}
	seen := make(map[string]bool)
	total := 0

	for _, list := range input.Lists {
		for _, r := range list {
			total++
			if seen[r.ID] {
				out.DuplicatesRemoved++
				continue
			}
			seen[r.ID] = true
			out.Restaurants = append(out.Restaurants, r.Clone())
		}
	}

	if h.config.MaxResults > 0 && len(out.Restaurants) > h.config.MaxResults {
		out.Restaurants = out.Restaurants[:h.config.MaxResults]
	}

	metrics.StageRunsCompleted.WithLabelValues(TaskType).Inc()
	metrics.StageDuration.WithLabelValues(TaskType).Observe(time.Since(start).Seconds())

	h.logger.Debug("results aggregated", map[string]interface{}{
		"lists":             len(input.Lists),
		"inputCount":        total,
		"outputCount":       len(out.Restaurants),
		"duplicatesRemoved": out.DuplicatesRemoved,
	})

	return out, nil
}
