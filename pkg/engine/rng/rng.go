// Package rng provides the seeded random stream shared by every generation
// step. Identical seeds produce identical streams.
package rng

import "math/rand"

// Random is the random stream a generation context owns.
type Random interface {
	// FirstSeed returns the seed the stream was created with.
	FirstSeed() uint64
	// NextUint64 returns the next raw 64-bit value.
	NextUint64() uint64
	// Intn returns a value in [0,n). n must be positive.
	Intn(n int) int
	// IntRange returns a value in [min,max), or min when the range is empty.
	IntRange(min, max int) int
	// Float64 returns a value in [0,1).
	Float64() float64
}

// ReRandom is a Random backed by a xorshift* source.
type ReRandom struct {
	seed uint64
	rand *rand.Rand
}

var _ Random = (*ReRandom)(nil)

// New returns a stream seeded with seed.
func New(seed uint64) *ReRandom {
	return &ReRandom{
		seed: seed,
		rand: rand.New(NewSource(seed)),
	}
}

func (r *ReRandom) FirstSeed() uint64 {
	return r.seed
}

func (r *ReRandom) NextUint64() uint64 {
	return r.rand.Uint64()
}

func (r *ReRandom) Intn(n int) int {
	return r.rand.Intn(n)
}

func (r *ReRandom) IntRange(min, max int) int {
	if max <= min {
		return min
	}
	return min + r.rand.Intn(max-min)
}

func (r *ReRandom) Float64() float64 {
	return r.rand.Float64()
}

// Shuffle permutes n elements using swap.
func Shuffle(r Random, n int, swap func(i, j int)) {
	for i := n - 1; i > 0; i-- {
		j := r.Intn(i + 1)
		swap(i, j)
	}
}
