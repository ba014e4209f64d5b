package mommy

import "math/rand/v2"

// Rand is the source of every random choice the engine makes. *rand.Rand from
// math/rand/v2 satisfies it.
type Rand interface {
	IntN(n int) int
	Float64() float64
}

// NewRand returns a Rand seeded from the runtime's random source.
func NewRand() Rand {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

// SeededRand returns a deterministic Rand. Two values built from the same
// seed produce the same sequence of choices.
func SeededRand(seed uint64) Rand {
	return rand.New(rand.NewPCG(seed, seed))
}

// pick returns a uniformly chosen element of xs, or the zero value when xs is
// empty.
func pick[T any](rng Rand, xs []T) T {
	var zero T
	switch len(xs) {
	case 0:
		return zero
	case 1:
		return xs[0]
	}
	return xs[rng.IntN(len(xs))]
}
