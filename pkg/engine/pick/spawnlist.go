package pick

import "fmt"

// SpawnList is a RandWeighted with positional access in insertion order.
type SpawnList[T comparable] struct {
	*RandWeighted[T]
	keys    []T
	keysRev int
}

var _ Picker[string] = (*SpawnList[string])(nil)

// NewSpawnList returns an empty spawn list
func NewSpawnList[T comparable]() *SpawnList[T] {
	return &SpawnList[T]{RandWeighted: NewRandWeighted[T](), keysRev: -1}
}

func (s *SpawnList[T]) index() []T {
	if s.keysRev != s.rev {
		s.keys = s.RandWeighted.Keys()
		s.keysRev = s.rev
	}
	return s.keys
}

func (s *SpawnList[T]) checkIndex(i int) error {
	if i < 0 || i >= s.Count() {
		return fmt.Errorf("spawn index %d of %d: %w", i, s.Count(), ErrOutOfRange)
	}
	return nil
}

// GetSpawn returns the i-th item
func (s *SpawnList[T]) GetSpawn(i int) (T, error) {
	if err := s.checkIndex(i); err != nil {
		var zero T
		return zero, err
	}
	return s.index()[i], nil
}

// GetSpawnRate returns the weight of the i-th item
func (s *SpawnList[T]) GetSpawnRate(i int) (int, error) {
	item, err := s.GetSpawn(i)
	if err != nil {
		return 0, err
	}
	return s.Weight(item), nil
}

// SetSpawnRate replaces the weight of the i-th item
func (s *SpawnList[T]) SetSpawnRate(i, weight int) error {
	item, err := s.GetSpawn(i)
	if err != nil {
		return err
	}
	return s.Set(item, weight)
}

// RemoveAt deletes the i-th item
func (s *SpawnList[T]) RemoveAt(i int) error {
	item, err := s.GetSpawn(i)
	if err != nil {
		return err
	}
	s.Remove(item)
	return nil
}

func (s *SpawnList[T]) CopyState() Picker[T] {
	return s.Clone()
}

// Clone returns an independent copy
func (s *SpawnList[T]) Clone() *SpawnList[T] {
	return &SpawnList[T]{RandWeighted: s.RandWeighted.Clone(), keysRev: -1}
}
