package readinglog

import "math/rand"

// RandomSource draws the placeholder cover index for imported records. Tests
// substitute a deterministic implementation.
type RandomSource interface {
	// NextInt returns a uniformly distributed integer in [low, high].
	NextInt(low, high int) int
}

type mathRandSource struct{}

func (mathRandSource) NextInt(low, high int) int {
	return low + rand.Intn(high-low+1)
}

// NewRandomSource returns the default pseudo-random source.
func NewRandomSource() RandomSource {
	return mathRandSource{}
}
