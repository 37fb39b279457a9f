package coordinate

import (
	"math/rand"
	"sync"
)

// Source is the RNG capability the random-direction fallback in
// unitVectorAt needs. *rand.Rand already satisfies this. Tests supply a
// seeded *rand.Rand through Config.Rand to get deterministic
// coincident-coordinate behavior; production code can leave Config.Rand
// nil and get the package default below, which is safe for concurrent use
// across independent Coordinate values.
type Source interface {
	Float64() float64
}

// lockedSource wraps a *rand.Rand with a mutex so the zero-configuration
// default is safe to share across goroutines operating on different
// Coordinate values, the same guarantee math/rand's top-level functions
// give by construction.
type lockedSource struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func (s *lockedSource) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Float64()
}

var defaultSource Source = &lockedSource{rng: rand.New(rand.NewSource(1))}

func sourceOrDefault(s Source) Source {
	if s == nil {
		return defaultSource
	}
	return s
}
