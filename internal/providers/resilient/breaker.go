// Package resilient guards a live data source with a circuit breaker so a
// failing provider is skipped and the fallback catalog answers immediately.
package resilient

import (
	"context"
	"errors"
	"fmt"
	"time"

	"nashville-eats/internal/common/logger"
	"nashville-eats/internal/common/metrics"
	"nashville-eats/internal/models"
	"nashville-eats/internal/providers"

	gobreaker "github.com/sony/gobreaker/v2"
)

type Config struct {
	// MaxRequests allowed through while half-open.
	MaxRequests uint32
	// Interval clears closed-state counts; zero never clears.
	Interval time.Duration
	// Timeout is how long the breaker stays open.
	Timeout             time.Duration
	ConsecutiveFailures uint32
}

func DefaultConfig() *Config {
	return &Config{
		MaxRequests:         1,
		Interval:            time.Minute,
		Timeout:             30 * time.Second,
		ConsecutiveFailures: 5,
	}
}

// Source is a providers.DataSource behind a breaker.
type Source struct {
	next   providers.DataSource
	cb     *gobreaker.CircuitBreaker[[]models.Restaurant]
	name   string
	logger logger.Logger
}

func Wrap(next providers.DataSource, cfg *Config, log logger.Logger) *Source {
	name := next.Name() + "-breaker"
	log = log.WithFields(map[string]interface{}{"breaker": name})

	threshold := cfg.ConsecutiveFailures
	if threshold == 0 {
		threshold = 5
	}

	metrics.BreakerState.WithLabelValues(name).Set(0)

	cb := gobreaker.NewCircuitBreaker[[]models.Restaurant](gobreaker.Settings{
		Name:        name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		// the caller giving up is not a provider failure
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("circuit breaker state changed", map[string]interface{}{
				"from": from.String(),
				"to":   to.String(),
			})
			metrics.BreakerState.WithLabelValues(name).Set(stateValue(to))
			metrics.BreakerTransitions.WithLabelValues(name, from.String(), to.String()).Inc()
		},
	})

	return &Source{next: next, cb: cb, name: name, logger: log}
}

func (s *Source) Name() string {
	return s.next.Name()
}

// State exposes the breaker state for readiness reporting.
func (s *Source) State() gobreaker.State {
	return s.cb.State()
}

func (s *Source) Search(ctx context.Context, req providers.SearchRequest) ([]models.Restaurant, error) {
	results, err := s.cb.Execute(func() ([]models.Restaurant, error) {
		return s.next.Search(ctx, req)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.ProviderRequests.WithLabelValues(s.next.Name(), "rejected").Inc()
			return nil, fmt.Errorf("%w: %v", providers.ErrProviderUnavailable, err)
		}
		return nil, err
	}
	return results, nil
}

func stateValue(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return 0
	}
}
