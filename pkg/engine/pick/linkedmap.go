package pick

import "github.com/zyedidia/generic/list"

type entry[K comparable, V any] struct {
	key   K
	value V
}

// LinkedMap is a map that remembers insertion order. Updating the value of an
// existing key keeps its position.
type LinkedMap[K comparable, V any] struct {
	index map[K]*list.Node[entry[K, V]]
	order *list.List[entry[K, V]]
}

// NewLinkedMap returns an empty ordered map
func NewLinkedMap[K comparable, V any]() *LinkedMap[K, V] {
	return &LinkedMap[K, V]{
		index: make(map[K]*list.Node[entry[K, V]]),
		order: list.New[entry[K, V]](),
	}
}

// Len returns the number of keys
func (m *LinkedMap[K, V]) Len() int {
	return len(m.index)
}

// Get returns the value stored under k
func (m *LinkedMap[K, V]) Get(k K) (V, bool) {
	n, ok := m.index[k]
	if !ok {
		var zero V
		return zero, false
	}
	return n.Value.value, true
}

// Has reports whether k is present
func (m *LinkedMap[K, V]) Has(k K) bool {
	_, ok := m.index[k]
	return ok
}

// Set stores v under k, appending k if it is new
func (m *LinkedMap[K, V]) Set(k K, v V) {
	if n, ok := m.index[k]; ok {
		n.Value.value = v
		return
	}
	n := &list.Node[entry[K, V]]{Value: entry[K, V]{key: k, value: v}}
	m.order.PushBackNode(n)
	m.index[k] = n
}

// Delete removes k, returning whether it was present
func (m *LinkedMap[K, V]) Delete(k K) bool {
	n, ok := m.index[k]
	if !ok {
		return false
	}
	m.order.Remove(n)
	delete(m.index, k)
	return true
}

// Clear removes every key
func (m *LinkedMap[K, V]) Clear() {
	m.index = make(map[K]*list.Node[entry[K, V]])
	m.order = list.New[entry[K, V]]()
}

// Each calls fn for every pair from oldest to newest
func (m *LinkedMap[K, V]) Each(fn func(k K, v V)) {
	for n := m.order.Front; n != nil; n = n.Next {
		fn(n.Value.key, n.Value.value)
	}
}

// Keys returns the keys from oldest to newest
func (m *LinkedMap[K, V]) Keys() []K {
	keys := make([]K, 0, len(m.index))
	m.Each(func(k K, _ V) {
		keys = append(keys, k)
	})
	return keys
}

// Clone returns an independent copy with the same order
func (m *LinkedMap[K, V]) Clone() *LinkedMap[K, V] {
	c := NewLinkedMap[K, V]()
	m.Each(func(k K, v V) {
		c.Set(k, v)
	})
	return c
}
