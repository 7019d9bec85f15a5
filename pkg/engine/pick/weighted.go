package pick

import (
	"fmt"

	"github.com/zyedidia/generic/queue"

	"roomweaver/pkg/engine/rng"
)

// RandWeighted is a weighted set sampled with Vose's alias method. The alias
// table is rebuilt lazily on the first pick after a mutation.
type RandWeighted[T comparable] struct {
	items  *LinkedMap[T, int]
	total  int
	groups []Picker[T]
	dirty  bool
	rev    int
}

var _ Picker[string] = (*RandWeighted[string])(nil)

// NewRandWeighted returns an empty weighted set
func NewRandWeighted[T comparable]() *RandWeighted[T] {
	return &RandWeighted[T]{
		items: NewLinkedMap[T, int](),
		dirty: true,
	}
}

// Add adds weight to item, inserting it if absent
func (w *RandWeighted[T]) Add(item T, weight int) error {
	if weight < 1 {
		return fmt.Errorf("weight %d: %w", weight, ErrOutOfRange)
	}
	cur, _ := w.items.Get(item)
	w.items.Set(item, cur+weight)
	w.total += weight
	w.touch()
	return nil
}

// Set replaces the weight of item, inserting it if absent
func (w *RandWeighted[T]) Set(item T, weight int) error {
	if weight < 1 {
		return fmt.Errorf("weight %d: %w", weight, ErrOutOfRange)
	}
	cur, _ := w.items.Get(item)
	w.items.Set(item, weight)
	w.total += weight - cur
	w.touch()
	return nil
}

// Remove deletes item, returning whether it was present
func (w *RandWeighted[T]) Remove(item T) bool {
	cur, ok := w.items.Get(item)
	if !ok {
		return false
	}
	w.items.Delete(item)
	w.total -= cur
	w.touch()
	return true
}

// Clear removes every item
func (w *RandWeighted[T]) Clear() {
	w.items.Clear()
	w.total = 0
	w.groups = nil
	w.touch()
}

// Weight returns the weight of item, or 0 when absent
func (w *RandWeighted[T]) Weight(item T) int {
	cur, _ := w.items.Get(item)
	return cur
}

// Contains reports whether item is present
func (w *RandWeighted[T]) Contains(item T) bool {
	return w.items.Has(item)
}

// Count returns the number of distinct items
func (w *RandWeighted[T]) Count() int {
	return w.items.Len()
}

// Total returns the sum of all weights
func (w *RandWeighted[T]) Total() int {
	return w.total
}

// Keys returns the items in insertion order
func (w *RandWeighted[T]) Keys() []T {
	return w.items.Keys()
}

// Each calls fn for every item in insertion order
func (w *RandWeighted[T]) Each(fn func(item T, weight int)) {
	w.items.Each(fn)
}

func (w *RandWeighted[T]) CanPick() bool {
	return w.items.Len() > 0
}

func (w *RandWeighted[T]) ChangesState() bool {
	return true
}

func (w *RandWeighted[T]) CopyState() Picker[T] {
	return w.Clone()
}

// Clone returns an independent copy. A built alias table is shared by value.
func (w *RandWeighted[T]) Clone() *RandWeighted[T] {
	c := &RandWeighted[T]{
		items: w.items.Clone(),
		total: w.total,
		dirty: w.dirty,
		rev:   w.rev,
	}
	if !w.dirty {
		c.groups = append([]Picker[T](nil), w.groups...)
	}
	return c
}

// Pick draws one item: a uniform group, then that group's biased coin
func (w *RandWeighted[T]) Pick(r rng.Random) (T, error) {
	if w.items.Len() == 0 {
		var zero T
		return zero, fmt.Errorf("pick from empty set: %w", ErrInvalidState)
	}
	if w.dirty {
		w.build()
	}
	return w.groups[r.Intn(len(w.groups))].Pick(r)
}

func (w *RandWeighted[T]) touch() {
	w.dirty = true
	w.rev++
}

type scaled[T any] struct {
	item   T
	weight int
}

// build partitions the weights scaled by n around the total into n groups of
// equal mass, each a preset or a coin between a light and a heavy item.
func (w *RandWeighted[T]) build() {
	n := w.items.Len()
	sum := w.total
	w.groups = make([]Picker[T], 0, n)

	light := queue.New[scaled[T]]()
	heavy := queue.New[scaled[T]]()
	w.items.Each(func(item T, weight int) {
		s := scaled[T]{item, weight * n}
		if s.weight > sum {
			heavy.Enqueue(s)
		} else {
			light.Enqueue(s)
		}
	})

	for len(w.groups) < n {
		if light.Empty() {
			// only reachable through rounding, which integer weights avoid
			w.groups = append(w.groups, PresetPicker[T]{heavy.Dequeue().item})
			continue
		}
		s := light.Dequeue()
		if s.weight == sum || heavy.Empty() {
			w.groups = append(w.groups, PresetPicker[T]{s.item})
			continue
		}
		alias := heavy.Dequeue()
		alias.weight -= sum - s.weight
		if alias.weight > sum {
			heavy.Enqueue(alias)
		} else if alias.weight > 0 {
			light.Enqueue(alias)
		}
		w.groups = append(w.groups, BiasedCoin[T]{First: s.item, Second: alias.item, Num: s.weight, Den: sum})
	}
	w.dirty = false
}
