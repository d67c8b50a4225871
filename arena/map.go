package arena

import (
	"iter"

	"github.com/forestrie/go-bilevel/bilevel"
)

// Map is a collection of distinct (group key, aggregation key) pairs with a
// payload kept for each pairing, over arbitrary key types, stored without
// duplicating either component.
//
// G is the type of the group key.
// K is the type of the aggregation key.
// V is the type of the payload; the container imposes no structure on it.
type Map[G, K, V any] struct {
	t table[G, K, V]
}

// NewMap creates an empty map hashing group keys with gh and aggregation
// keys with kh. No initial capacity is allocated.
func NewMap[G, K, V any](gh bilevel.Hasher[G], kh bilevel.Hasher[K]) *Map[G, K, V] {
	return NewMapWithCapacity[G, K, V](gh, kh, bilevel.Capacity{})
}

// NewMapWithCapacity creates an empty map pre-sized by c.
func NewMapWithCapacity[G, K, V any](gh bilevel.Hasher[G], kh bilevel.Hasher[K], c bilevel.Capacity) *Map[G, K, V] {
	return &Map[G, K, V]{t: newTable[G, K, V](gh, kh, c)}
}

// Insert adds the payload for the pair (g, k), replacing in place when the
// pair already exists. Returns the previous payload and true on
// replacement, the zero payload and false on fresh insertion.
func (m *Map[G, K, V]) Insert(g G, k K, v V) (V, bool) {
	i, existed := m.t.insert(g, k, v)
	if !existed {
		var zero V
		return zero, false
	}
	s := m.t.slots[i]
	prev := s.v
	s.v = v
	return prev, true
}

// Get returns the payload for the pair (g, k), if present.
func (m *Map[G, K, V]) Get(g G, k K) (V, bool) {
	_, i := m.t.find(g, k)
	if i < 0 {
		var zero V
		return zero, false
	}
	return m.t.slots[i].v, true
}

// GetMut returns a pointer to the payload for the pair (g, k), nil if the
// pair is absent. The pointer is valid until the pair is removed.
func (m *Map[G, K, V]) GetMut(g G, k K) *V {
	_, i := m.t.find(g, k)
	if i < 0 {
		return nil
	}
	return &m.t.slots[i].v
}

// AddOrGet returns a pointer to the payload for the pair (g, k), inserting
// the zero payload first if the pair is absent.
func (m *Map[G, K, V]) AddOrGet(g G, k K) *V {
	var zero V
	i, _ := m.t.insert(g, k, zero)
	return &m.t.slots[i].v
}

// Remove deletes the pair (g, k) and returns its payload, if present. The
// group bucket is dropped when its last member goes.
func (m *Map[G, K, V]) Remove(g G, k K) (V, bool) {
	s := m.t.remove(g, k)
	if s == nil {
		var zero V
		return zero, false
	}
	return s.v, true
}

// Group returns the (aggregation key, payload) pairings currently under g,
// empty if g is absent. The sequence is restartable; order is unspecified.
func (m *Map[G, K, V]) Group(g G) iter.Seq2[K, *V] {
	return func(yield func(K, *V) bool) {
		b := m.t.bucketOf(m.t.gh.Sum64(g), g)
		if b == nil {
			return
		}
		for i := range b.members {
			s := m.t.slots[i]
			if !yield(s.k, &s.v) {
				return
			}
		}
	}
}

// Groups returns the group keys that currently have at least one member.
func (m *Map[G, K, V]) Groups() iter.Seq[G] {
	return func(yield func(G) bool) {
		for _, list := range m.t.groups {
			for _, b := range list {
				if !yield(m.t.slots[b.rep()].g) {
					return
				}
			}
		}
	}
}

// All returns every entry, grouped by group key.
func (m *Map[G, K, V]) All() iter.Seq2[bilevel.FullKey[G, K], *V] {
	return func(yield func(bilevel.FullKey[G, K], *V) bool) {
		for _, list := range m.t.groups {
			for _, b := range list {
				for i := range b.members {
					s := m.t.slots[i]
					if !yield(bilevel.FullKey[G, K]{Group: s.g, Agg: s.k}, &s.v) {
						return
					}
				}
			}
		}
	}
}

// Len returns the number of entries in the map.
func (m *Map[G, K, V]) Len() int { return m.t.count }

// IsEmpty reports whether the map has no entries.
func (m *Map[G, K, V]) IsEmpty() bool { return m.t.count == 0 }

// Clear removes all entries and all group buckets.
func (m *Map[G, K, V]) Clear() { m.t.clearAll() }
