// internal/pipeline/fetch-recommendations/handler.go
package fetchrecommendations

import (
	"context"
	"errors"
	"fmt"
	"time"

	"nashville-eats/internal/cache"
	apperrors "nashville-eats/internal/common/errors"
	"nashville-eats/internal/common/logger"
	"nashville-eats/internal/common/metrics"
	"nashville-eats/internal/common/observability"
	"nashville-eats/internal/models"
	aggregateresults "nashville-eats/internal/pipeline/aggregate-results"
	enhanceresults "nashville-eats/internal/pipeline/enhance-results"
	rankfallback "nashville-eats/internal/pipeline/rank-fallback"
	"nashville-eats/internal/providers"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"
)

const TaskType = "fetch-recommendations"

var (
	ErrNilInput = errors.New("input cannot be nil")
)

// Dependencies are the collaborators of a fetch. Source and Cache may be nil.
type Dependencies struct {
	Source        providers.DataSource
	Cache         cache.QueryCache
	Catalog       []models.Restaurant
	Aggregator    *aggregateresults.Handler
	Ranker        *rankfallback.Handler
	Enhancer      *enhanceresults.Handler
	Observability *observability.Observability
}

type Handler struct {
	config *Config
	deps   Dependencies
	logger logger.Logger
}

func NewHandler(config *Config, deps Dependencies, log logger.Logger) *Handler {
	if deps.Aggregator == nil {
		deps.Aggregator = aggregateresults.NewHandler(aggregateresults.LoadConfig(), log)
	}
	if deps.Ranker == nil {
		deps.Ranker = rankfallback.NewHandler(rankfallback.LoadConfig(), nil, log)
	}
	if deps.Enhancer == nil {
		deps.Enhancer = enhanceresults.NewHandler(enhanceresults.LoadConfig(), log)
	}
	// the catalog is read-only from here on
	deps.Catalog = models.CloneAll(deps.Catalog)

	return &Handler{
		config: config,
		deps:   deps,
		logger: log.WithFields(map[string]interface{}{"stage": TaskType}),
	}
}

// Execute runs one fetch: cache, then the live source, then the fallback
// catalog. Provider failures are reported in Output.Error, never returned.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if input == nil {
		return nil, ErrNilInput
	}

	requestID := input.RequestID
	if requestID == "" {
		requestID = uuid.NewString()
	}
	params := input.Params
	log := h.logger.WithFields(map[string]interface{}{"requestId": requestID})

	if params.IsUnconstrained() {
		log.Debug("no constraints given, staying idle", nil)
		return &Output{
			Data:      []models.Restaurant{},
			State:     StateIdle,
			Source:    SourceNone,
			RequestID: requestID,
		}, nil
	}

	start := time.Now()
	metrics.InflightFetches.Inc()
	defer metrics.InflightFetches.Dec()

	ctx, span := h.deps.Observability.StartSpan(ctx, "fetch-recommendations",
		attribute.String("request.id", requestID),
		attribute.Int("query.neighborhoods", len(params.Neighborhoods)),
	)
	defer span.End()

	out, err := h.run(ctx, params, log)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	out.RequestID = requestID

	duration := time.Since(start)
	metrics.StageRunsCompleted.WithLabelValues(TaskType).Inc()
	metrics.StageDuration.WithLabelValues(TaskType).Observe(duration.Seconds())
	metrics.RecommendationsServed.WithLabelValues(out.Source).Inc()
	h.deps.Observability.RecordFetch(ctx, out.Source, out.State, duration)
	span.SetAttributes(
		attribute.String("result.source", out.Source),
		attribute.Int("result.count", len(out.Data)),
	)

	log.Info("recommendations fetched", map[string]interface{}{
		"source":      out.Source,
		"state":       out.State,
		"degraded":    out.Degraded,
		"resultCount": len(out.Data),
		"durationMs":  duration.Milliseconds(),
	})

	return out, nil
}

func (h *Handler) run(ctx context.Context, params models.QueryParameters, log logger.Logger) (*Output, error) {
	if h.deps.Cache != nil {
		cached, ok, err := h.deps.Cache.Get(ctx, params)
		if err != nil {
			log.Warn("cache lookup failed", map[string]interface{}{"error": err.Error()})
		} else if ok {
			return &Output{Data: cached, State: StateSuccess, Source: SourceCache}, nil
		}
	}

	live, err := h.fetchLive(ctx, params)
	var reason *apperrors.StandardError
	switch {
	case err != nil:
		reason = h.providerError(err)
		log.Warn("live provider failed, using fallback catalog", map[string]interface{}{
			"error": err.Error(),
			"code":  reason.Code,
		})
	case len(live) == 0:
		reason = apperrors.NewEmptyResultError(fmt.Sprintf("provider %s returned no restaurants", h.sourceName()))
		log.Info("live provider returned nothing, using fallback catalog", nil)
	}

	if reason == nil {
		enhanced, err := h.deps.Enhancer.Execute(ctx, &enhanceresults.Input{Params: params, Restaurants: live})
		if err != nil {
			return nil, fmt.Errorf("enhance live results: %w", err)
		}
		if h.deps.Cache != nil {
			if err := h.deps.Cache.Set(ctx, params, enhanced.Restaurants); err != nil {
				log.Warn("cache write failed", map[string]interface{}{"error": err.Error()})
			}
		}
		return &Output{Data: enhanced.Restaurants, State: StateSuccess, Source: SourceLive}, nil
	}

	return h.fallback(ctx, params, reason)
}

// fallback ranks the curated catalog. Its results are not cached so a retry
// goes back to the live provider.
func (h *Handler) fallback(ctx context.Context, params models.QueryParameters, reason *apperrors.StandardError) (*Output, error) {
	metrics.FallbacksTriggered.WithLabelValues(string(reason.Code)).Inc()

	ranked, err := h.deps.Ranker.Execute(ctx, &rankfallback.Input{Params: params, Entries: h.deps.Catalog})
	if err != nil {
		return nil, fmt.Errorf("rank fallback catalog: %w", err)
	}
	enhanced, err := h.deps.Enhancer.Execute(ctx, &enhanceresults.Input{Params: params, Restaurants: ranked.Restaurants})
	if err != nil {
		return nil, fmt.Errorf("enhance fallback results: %w", err)
	}

	return &Output{
		Data:     enhanced.Restaurants,
		Error:    reason,
		State:    StateError,
		Source:   SourceFallback,
		Degraded: true,
	}, nil
}

// fetchLive sends one request per neighborhood (or one unscoped request) and
// merges the answers in neighborhood order.
func (h *Handler) fetchLive(ctx context.Context, params models.QueryParameters) ([]models.Restaurant, error) {
	if h.deps.Source == nil {
		return nil, fmt.Errorf("%w: no live source configured", providers.ErrProviderUnavailable)
	}

	scopes := params.Neighborhoods
	if len(scopes) == 0 {
		scopes = []string{""}
	}

	if h.config.LiveBudget > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.config.LiveBudget)
		defer cancel()
	}

	lists := make([][]models.Restaurant, len(scopes))
	if h.config.ParallelNeighborhoods && len(scopes) > 1 {
		g, gctx := errgroup.WithContext(ctx)
		if h.config.MaxParallel > 0 {
			g.SetLimit(h.config.MaxParallel)
		}
		for i, scope := range scopes {
			i, scope := i, scope
			g.Go(func() error {
				results, err := h.search(gctx, params, scope)
				if err != nil {
					return err
				}
				lists[i] = results
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	} else {
		for i, scope := range scopes {
			results, err := h.search(ctx, params, scope)
			if err != nil {
				return nil, err
			}
			lists[i] = results
		}
	}

	merged, err := h.deps.Aggregator.Execute(ctx, &aggregateresults.Input{Lists: lists})
	if err != nil {
		return nil, fmt.Errorf("aggregate live results: %w", err)
	}
	return merged.Restaurants, nil
}

func (h *Handler) search(ctx context.Context, params models.QueryParameters, neighborhood string) ([]models.Restaurant, error) {
	ctx, span := h.deps.Observability.StartSpan(ctx, "provider.search",
		attribute.String("provider", h.sourceName()),
		attribute.String("neighborhood", neighborhood),
	)
	defer span.End()

	if h.config.ProviderTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.config.ProviderTimeout)
		defer cancel()
	}

	results, err := h.deps.Source.Search(ctx, providers.NewSearchRequest(params, neighborhood))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		if errors.Is(ctx.Err(), context.DeadlineExceeded) && !errors.Is(err, providers.ErrProviderTimeout) {
			err = fmt.Errorf("%w: %v", providers.ErrProviderTimeout, err)
		}
		return nil, err
	}
	span.SetAttributes(attribute.Int("result.count", len(results)))
	return results, nil
}

func (h *Handler) providerError(err error) *apperrors.StandardError {
	switch {
	case errors.Is(err, providers.ErrProviderUnavailable):
		return apperrors.NewProviderUnavailableError(err)
	case errors.Is(err, providers.ErrProviderTimeout), errors.Is(err, context.DeadlineExceeded):
		return apperrors.NewProviderTimeoutError(h.config.ProviderTimeout)
	default:
		return apperrors.NewProviderFailedError(err)
	}
}

func (h *Handler) sourceName() string {
	if h.deps.Source == nil {
		return SourceNone
	}
	return h.deps.Source.Name()
}
