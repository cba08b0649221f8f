package core

import "math/rand/v2"

// RNG is the randomness a rule engine may consume.
// Rules never reach for a global source; the session injects one.
type RNG interface {
	// IntN returns a value in [0, n). Panics if n <= 0.
	IntN(n int) int
	// Float64 returns a value in [0.0, 1.0).
	Float64() float64
}

// NewRNG returns a deterministic PCG source for the given seed.
func NewRNG(seed int64) *rand.Rand {
	return rand.New(rand.NewPCG(uint64(seed), 0))
}

// Pick returns a uniformly chosen element of items.
// The zero value is returned for an empty slice without consuming randomness.
func Pick[T any](rng RNG, items []T) T {
	var zero T
	if len(items) == 0 {
		return zero
	}
	return items[rng.IntN(len(items))]
}
