package randutil

import (
	rand "math/rand/v2"
	"time"
)

// New returns a *rand.Rand seeded deterministically from a single int64.
// rand/v2's PCG wants two 64-bit seeds, so we derive both from the input
// with a splitmix-style finalizer; every call site that passes the same
// seed gets the same shuffle sequence.
func New(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(scramble(u), scramble(u^0x9e3779b97f4a7c15)))
}

// NewFromTime returns a *rand.Rand seeded from the current time, for
// production call sites that don't need reproducibility.
func NewFromTime() *rand.Rand {
	return New(time.Now().UnixNano())
}

func scramble(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
