// Package core holds the small abstractions shared by the game packages:
// input actions, runtime config, the clock, the random source and cue names.
package core

import (
	"math/rand"
	"time"
)

// Clock supplies the current instant. Implementations must not go
// backwards during a trial.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock. time.Now carries a monotonic reading,
// so subtracting two of its values is safe for latency measurement.
type SystemClock struct{}

// Now returns time.Now().
func (SystemClock) Now() time.Time {
	return time.Now()
}

// Random is the randomness consumed by the trial state machine.
type Random interface {
	// Uniform returns a value in [min, max].
	Uniform(min, max float64) float64
	// Probability returns true with probability p.
	Probability(p float64) bool
}

// SeededRandom implements Random on top of math/rand.
type SeededRandom struct {
	rng *rand.Rand
}

// NewRandom creates a random source. A zero seed uses the current time.
func NewRandom(seed int64) *SeededRandom {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &SeededRandom{rng: rand.New(rand.NewSource(seed))}
}

// Uniform returns a value in [min, max].
func (r *SeededRandom) Uniform(min, max float64) float64 {
	return min + r.rng.Float64()*(max-min)
}

// Probability returns true with probability p.
func (r *SeededRandom) Probability(p float64) bool {
	return r.rng.Float64() < p
}
