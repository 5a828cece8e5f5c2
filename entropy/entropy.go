// Package entropy provides the random sources behind the random block of a
// token.
package entropy

import (
	"math/rand/v2"
	"sync"
)

// Source produces uniformly distributed samples in [0, 1).
type Source interface {
	Float64() float64
}

type systemSource struct{}

// NewSystemSource returns the default Source. It draws from the runtime's
// per-thread ChaCha8 generator, which is seeded from the operating system's
// secure random source and needs no locking.
func NewSystemSource() Source {
	return systemSource{}
}

func (systemSource) Float64() float64 {
	return rand.Float64()
}

// SeededSource is a deterministic Source. Two SeededSources created with the
// same seed produce the same sequence. It is safe for concurrent use.
type SeededSource struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSeededSource creates a SeededSource.
func NewSeededSource(seed uint64) *SeededSource {
	return &SeededSource{
		rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

// Float64 returns the next sample.
func (s *SeededSource) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.rng.Float64()
}

// Scale maps a sample from r onto [0, ceiling).
func Scale(r Source, ceiling uint64) uint64 {
	v := uint64(r.Float64() * float64(ceiling))
	if v >= ceiling {
		// Guards against a misbehaving Source returning 1.0.
		v = ceiling - 1
	}

	return v
}
