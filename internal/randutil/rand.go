// Package randutil derives reproducible math/rand/v2 generators from seeds.
package randutil

import rand "math/rand/v2"

const (
	goldenRatio64 = 0x9e3779b97f4a7c15
)

// New returns a PCG generator whose two 64-bit seeds are both derived from
// seed, so equal seeds always produce equal sequences.
func New(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))
}

// ForHand returns the generator that shuffles the deck for one hand of a
// match. Every hand gets an independent stream so a stored snapshot never
// needs to carry generator state.
func ForHand(seed int64, hand int) *rand.Rand {
	return New(int64(mix(uint64(seed) ^ mix(uint64(hand)*goldenRatio64))))
}

func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
