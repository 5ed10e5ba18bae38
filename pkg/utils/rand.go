package utils

import (
	"math/rand"
	"sync"
	"time"
)

// RandSource is a thread-safe random number generator
type RandSource struct {
	mu   sync.Mutex
	rng  *rand.Rand
	seed int64
}

// NewRandSource creates a new random source with the given seed.
// A zero seed selects a time-based seed.
func NewRandSource(seed int64) *RandSource {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &RandSource{
		rng:  rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Seed returns the seed the source was created with
func (r *RandSource) Seed() int64 {
	return r.seed
}

// Float64 returns a random float64 in [0.0, 1.0)
func (r *RandSource) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.Float64()
}

// Intn returns a random int in [0, n)
func (r *RandSource) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.Intn(n)
}

// Int64Range returns a uniformly distributed int64 in [lo, hi].
// The full int64 range is handled without overflowing the span.
func (r *RandSource) Int64Range(lo, hi int64) int64 {
	if hi <= lo {
		return lo
	}
	span := uint64(hi) - uint64(lo)
	r.mu.Lock()
	defer r.mu.Unlock()
	if span < 1<<63-1 {
		return lo + r.rng.Int63n(int64(span)+1)
	}
	// span+1 does not fit in an int63; fall back to rejection on raw bits.
	for {
		v := r.rng.Uint64()
		if v <= span {
			return int64(uint64(lo) + v)
		}
	}
}

// UniformFloat64 returns a uniformly distributed random number in [min, max].
// It interpolates between the bounds so that max-min may exceed MaxFloat64.
func (r *RandSource) UniformFloat64(min, max float64) float64 {
	f := r.Float64()
	return min*(1-f) + max*f
}

var (
	defaultMu   sync.RWMutex
	defaultRand = NewRandSource(0)
)

// Default returns the process-wide random source. Every sampler that is not
// given an explicit source draws from it, so SetSeed affects all of them.
func Default() *RandSource {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultRand
}

// SetSeed replaces the process-wide random source with one seeded by seed.
// Tests that call it must restore the previous source (see ResetDefault).
func SetSeed(seed int64) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultRand = NewRandSource(seed)
}

// ResetDefault swaps in src as the process-wide source and returns the previous
// one. A nil src installs a fresh time-seeded source.
func ResetDefault(src *RandSource) *RandSource {
	if src == nil {
		src = NewRandSource(0)
	}
	defaultMu.Lock()
	defer defaultMu.Unlock()
	prev := defaultRand
	defaultRand = src
	return prev
}
