package game

import (
	mathrand "math/rand"
	"sync"
	"time"
)

// Source yields uniform floats in [0,1).
type Source interface {
	Float64() float64
}

// LockedRand is a Source safe for use from several sessions at once.
type LockedRand struct {
	mu   sync.Mutex
	rand *mathrand.Rand
}

// NewRand seeds a LockedRand. A zero seed means seed from the clock.
func NewRand(seed int64) *LockedRand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &LockedRand{rand: mathrand.New(mathrand.NewSource(seed))}
}

func (r *LockedRand) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Float64()
}

func uniform(src Source, lo, hi float64) float64 {
	return lo + src.Float64()*(hi-lo)
}
