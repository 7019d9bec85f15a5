// Package pick provides seeded random pickers: weighted sets sampled with
// the alias method, ordered spawn lists, biased coins and ranges.
package pick

import (
	"errors"
	"fmt"

	"roomweaver/pkg/engine/rng"
)

var (
	// ErrOutOfRange is returned for weights or probabilities outside their domain
	ErrOutOfRange = errors.New("value out of range")
	// ErrInvalidState is returned when a picker cannot produce a value
	ErrInvalidState = errors.New("invalid picker state")
)

// Picker produces one value per call from a random stream.
type Picker[T any] interface {
	Pick(r rng.Random) (T, error)
	CanPick() bool
	// ChangesState reports whether the picker is mutable, so callers that
	// consume it destructively must work on CopyState.
	ChangesState() bool
	CopyState() Picker[T]
}

// MultiPicker produces a batch of values per call.
type MultiPicker[T any] interface {
	Roll(r rng.Random) ([]T, error)
	CanPick() bool
	ChangesState() bool
	CopyState() MultiPicker[T]
}

// PresetPicker always returns the same value and draws nothing.
type PresetPicker[T any] struct {
	Item T
}

func (p PresetPicker[T]) Pick(rng.Random) (T, error) { return p.Item, nil }
func (p PresetPicker[T]) CanPick() bool              { return true }
func (p PresetPicker[T]) ChangesState() bool         { return false }
func (p PresetPicker[T]) CopyState() Picker[T]       { return p }

// BiasedCoin returns First with probability Num/Den, else Second.
type BiasedCoin[T any] struct {
	First, Second T
	Num, Den      int
}

// NewBiasedCoin validates the probability. Two negative terms are negated,
// a single negative term is out of range and a zero denominator is invalid.
func NewBiasedCoin[T any](first, second T, num, den int) (BiasedCoin[T], error) {
	if num < 0 && den < 0 {
		num, den = -num, -den
	}
	if num < 0 || den < 0 {
		return BiasedCoin[T]{}, fmt.Errorf("probability %d/%d: %w", num, den, ErrOutOfRange)
	}
	if den == 0 {
		return BiasedCoin[T]{}, fmt.Errorf("probability %d/%d has a zero denominator: %w", num, den, ErrInvalidState)
	}
	return BiasedCoin[T]{First: first, Second: second, Num: num, Den: den}, nil
}

func (c BiasedCoin[T]) Pick(r rng.Random) (T, error) {
	if r.Intn(c.Den) < c.Num {
		return c.First, nil
	}
	return c.Second, nil
}

func (c BiasedCoin[T]) CanPick() bool        { return c.Den > 0 }
func (c BiasedCoin[T]) ChangesState() bool   { return false }
func (c BiasedCoin[T]) CopyState() Picker[T] { return c }

// RandRange picks an integer in [Min,Max). An empty range yields Min.
type RandRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Range builds a RandRange
func Range(min, max int) RandRange {
	return RandRange{Min: min, Max: max}
}

func (rr RandRange) Pick(r rng.Random) (int, error) {
	return r.IntRange(rr.Min, rr.Max), nil
}

// Roll is Pick without the error for callers that cannot fail
func (rr RandRange) Roll(r rng.Random) int {
	return r.IntRange(rr.Min, rr.Max)
}

func (rr RandRange) CanPick() bool          { return true }
func (rr RandRange) ChangesState() bool     { return false }
func (rr RandRange) CopyState() Picker[int] { return rr }

// PresetMultiRand returns the same batch on every roll.
type PresetMultiRand[T any] struct {
	Items []T
}

func (p PresetMultiRand[T]) Roll(rng.Random) ([]T, error) {
	out := make([]T, len(p.Items))
	copy(out, p.Items)
	return out, nil
}

func (p PresetMultiRand[T]) CanPick() bool             { return len(p.Items) > 0 }
func (p PresetMultiRand[T]) ChangesState() bool        { return false }
func (p PresetMultiRand[T]) CopyState() MultiPicker[T] { return p }

// LoopedRand picks Amount.Roll items from Spawner, copying a mutable spawner
// before drawing from it.
type LoopedRand[T any] struct {
	Spawner Picker[T]
	Amount  RandRange
}

func (l LoopedRand[T]) Roll(r rng.Random) ([]T, error) {
	sp := l.Spawner
	if sp.ChangesState() {
		sp = sp.CopyState()
	}
	n := l.Amount.Roll(r)
	out := make([]T, 0, n)
	for i := 0; i < n && sp.CanPick(); i++ {
		v, err := sp.Pick(r)
		if err != nil {
			return out, err
		}
		out = append(out, v)
	}
	return out, nil
}

func (l LoopedRand[T]) CanPick() bool             { return l.Spawner != nil && l.Spawner.CanPick() }
func (l LoopedRand[T]) ChangesState() bool        { return false }
func (l LoopedRand[T]) CopyState() MultiPicker[T] { return l }
