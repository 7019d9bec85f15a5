package rng

import "math/rand"

// Source is a xorshift* generator usable as a math/rand source.
type Source struct {
	state uint64
}

var _ rand.Source64 = (*Source)(nil)

// NewSource returns a source for the given seed.
func NewSource(seed uint64) *Source {
	s := &Source{}
	s.Seed(int64(seed))
	return s
}

// Seed seeds the generator. The seed is scrambled with a splitmix64 round so
// that small neighbouring seeds diverge and the state is never zero.
func (s *Source) Seed(seed int64) {
	z := uint64(seed) + 0x9E3779B97F4A7C15
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	z ^= z >> 31
	if z == 0 {
		z = 0x2545F4914F6CDD1D
	}
	s.state = z
}

// Uint64 returns a random number.
func (s *Source) Uint64() uint64 {
	state := s.state
	state ^= state >> 12
	state ^= state << 25
	state ^= state >> 27
	s.state = state
	return state * 0x2545F4914F6CDD1D
}

// Int63 returns a random number.
func (s *Source) Int63() int64 {
	return int64(s.Uint64() >> 1)
}
