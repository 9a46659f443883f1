// internal/pipeline/rank-fallback/random.go
package rankfallback

import (
	"math/rand"
	"sync"
	"time"
)

// RandomSource supplies score jitter in [0, 1).
type RandomSource interface {
	Float64() float64
}

type lockedSource struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewRandomSource returns a goroutine-safe source. A zero seed uses the clock.
func NewRandomSource(seed int64) RandomSource {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &lockedSource{rnd: rand.New(rand.NewSource(seed))}
}

func (s *lockedSource) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rnd.Float64()
}

// FixedSource always returns the same value. Useful for reproducible ordering.
type FixedSource float64

func (f FixedSource) Float64() float64 {
	return float64(f)
}
