package util

import "iter"

// OrderedMap is a shallow wrapper around a map that additionally remembers
// the order in which keys were first inserted. Iteration via All visits
// entries in that order, unlike Go's built-in map.
// It is mutable and not suitable for concurrent use.
type OrderedMap[K comparable, V any] struct {
	keys       []K
	underlying map[K]V
}

func NewOrderedMap[K comparable, V any](sizeHint int) *OrderedMap[K, V] {
	return &OrderedMap[K, V]{
		keys:       make([]K, 0, sizeHint),
		underlying: make(map[K]V, sizeHint),
	}
}

func (m *OrderedMap[K, V]) Get(key K) (ret V, ok bool) {
	ret, ok = m.underlying[key]
	return ret, ok
}

// Set inserts or overwrites key. Overwriting an existing key keeps the
// position it was given when first inserted.
func (m *OrderedMap[K, V]) Set(key K, value V) {
	if _, ok := m.underlying[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.underlying[key] = value
}

func (m *OrderedMap[K, V]) Len() int {
	return len(m.underlying)
}

// All iterates entries in first-insertion order of their keys.
func (m *OrderedMap[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for _, key := range m.keys {
			if !yield(key, m.underlying[key]) {
				return
			}
		}
	}
}
