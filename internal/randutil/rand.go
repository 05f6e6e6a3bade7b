// Package randutil derives reproducible random number generators from a
// tournament seed.
package randutil

import rand "math/rand/v2"

const (
	goldenRatio64 = 0x9e3779b97f4a7c15
)

// New returns a *rand.Rand seeded deterministically from seed.
func New(seed int64) *rand.Rand {
	return fromState(uint64(seed))
}

// Stream returns the generator for one independent stream of a seed. Each
// roster slot draws from its own stream so no generator is shared between
// goroutines and adding a prisoner does not shift the draws of the others.
func Stream(seed int64, stream int) *rand.Rand {
	return fromState(mix(uint64(seed)) ^ mix(uint64(stream)+goldenRatio64))
}

func fromState(u uint64) *rand.Rand {
	return rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))
}

func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
