// Package rng holds the seeded random source shared by level generation.
package rng

import (
	"math/rand"
	"time"
)

// Random is the subset of *rand.Rand used by the generators.
type Random interface {
	Intn(n int) int
	Float64() float64
}

// New returns a source seeded with seed, or with the current time when seed is 0.
func New(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// Shuffle permutes s in place with a Fisher-Yates pass driven by r.
func Shuffle[T any](r Random, s []T) {
	for i := len(s) - 1; i > 0; i-- {
		j := r.Intn(i + 1)
		s[i], s[j] = s[j], s[i]
	}
}
