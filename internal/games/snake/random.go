package snake

import "math/rand/v2"

// RandomSource supplies uniformly distributed integers in [lo, hi).
type RandomSource interface {
	IntRange(lo, hi int) int
}

// pcgSource is the production RandomSource.
type pcgSource struct {
	rng *rand.Rand
}

// NewRandomSource returns a seeded PCG-backed source. Equal seeds yield
// equal sequences, which replays rely on.
func NewRandomSource(seed int64) RandomSource {
	return &pcgSource{rng: rand.New(rand.NewPCG(uint64(seed), uint64(seed)^0x9e3779b97f4a7c15))}
}

// IntRange returns a value in [lo, hi). hi must be greater than lo.
func (s *pcgSource) IntRange(lo, hi int) int {
	return lo + s.rng.IntN(hi-lo)
}
