// Package randutil is the single place randomness comes from: every
// shuffle and probabilistic branch draws from a source built here, so
// a whole session replays from one seed.
package randutil

import rand "math/rand/v2"

// goldenGamma offsets the second PCG seed word so both derive from the
// same input without correlating.
const goldenGamma = 0x9e3779b97f4a7c15

// New returns a rand.Rand derived deterministically from seed.
func New(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(mix(u), mix(u+goldenGamma)))
}

// mix is the splitmix64 finalizer, here to spread low-entropy seeds
// (small integers, timestamps) across the full 64-bit state.
func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
