package shared

import (
	"math/rand"
	"time"
)

// Random is the source of randomness used by the simulation.
// *rand.Rand satisfies it; tests inject deterministic stubs.
type Random interface {
	// Float64 returns a pseudo-random number in [0.0, 1.0)
	Float64() float64

	// Intn returns a pseudo-random number in [0, n)
	Intn(n int) int
}

// NewRandom returns a Random seeded with seed, or with the current time when seed is 0
func NewRandom(seed int64) Random {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// IntInRange returns a uniformly distributed integer in [min, max]
func IntInRange(rng Random, min, max int) int {
	if max <= min {
		return min
	}
	return min + rng.Intn(max-min+1)
}

// FloatInRange returns a uniformly distributed float in [min, max)
func FloatInRange(rng Random, min, max float64) float64 {
	return min + rng.Float64()*(max-min)
}
