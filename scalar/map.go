package scalar

import (
	"iter"
	"maps"

	"github.com/forestrie/go-bilevel/bilevel"
)

// Map is a collection of distinct (group key, aggregation key) pairs with a
// payload kept for each pairing, indexed flat by the full key and grouped
// by the group key.
//
// G is the type of the group key.
// K is the type of the aggregation key.
// V is the type of the payload; the container imposes no structure on it.
type Map[G, K comparable, V any] struct {
	// Payloads are boxed so GetMut and Group can hand out pointers that
	// survive replacement in place.
	full     map[bilevel.FullKey[G, K]]*V
	groups   map[G]map[K]struct{}
	perGroup int
}

// NewMap creates an empty map. No initial capacity is allocated; capacity
// for a few members is allocated for each new group key found.
func NewMap[G, K comparable, V any]() *Map[G, K, V] {
	return NewMapWithCapacity[G, K, V](bilevel.Capacity{})
}

// NewMapWithCapacity creates an empty map pre-sized by c.
func NewMapWithCapacity[G, K comparable, V any](c bilevel.Capacity) *Map[G, K, V] {
	c = c.Normalize()
	return &Map[G, K, V]{
		full:     make(map[bilevel.FullKey[G, K]]*V, c.AggKeys),
		groups:   make(map[G]map[K]struct{}, c.Groups),
		perGroup: c.PerGroup,
	}
}

// Insert adds the payload for the pair (g, k), replacing in place when the
// pair already exists. Returns the previous payload and true on
// replacement, the zero payload and false on fresh insertion.
func (m *Map[G, K, V]) Insert(g G, k K, v V) (V, bool) {
	fk := bilevel.FullKey[G, K]{Group: g, Agg: k}
	if p, ok := m.full[fk]; ok {
		prev := *p
		*p = v
		return prev, true
	}
	m.full[fk] = &v
	m.addToGroup(g, k)
	var zero V
	return zero, false
}

// Get returns the payload for the pair (g, k), if present.
func (m *Map[G, K, V]) Get(g G, k K) (V, bool) {
	if p, ok := m.full[bilevel.FullKey[G, K]{Group: g, Agg: k}]; ok {
		return *p, true
	}
	var zero V
	return zero, false
}

// GetMut returns a pointer to the payload for the pair (g, k), nil if the
// pair is absent. The pointer is valid until the pair is removed.
func (m *Map[G, K, V]) GetMut(g G, k K) *V {
	return m.full[bilevel.FullKey[G, K]{Group: g, Agg: k}]
}

// AddOrGet returns a pointer to the payload for the pair (g, k), inserting
// the zero payload first if the pair is absent.
func (m *Map[G, K, V]) AddOrGet(g G, k K) *V {
	fk := bilevel.FullKey[G, K]{Group: g, Agg: k}
	if p, ok := m.full[fk]; ok {
		return p
	}
	p := new(V)
	m.full[fk] = p
	m.addToGroup(g, k)
	return p
}

// Remove deletes the pair (g, k) and returns its payload, if present. The
// group bucket is dropped when its last member goes.
func (m *Map[G, K, V]) Remove(g G, k K) (V, bool) {
	fk := bilevel.FullKey[G, K]{Group: g, Agg: k}
	p, ok := m.full[fk]
	if !ok {
		var zero V
		return zero, false
	}
	delete(m.full, fk)
	bucket := m.groups[g]
	delete(bucket, k)
	if len(bucket) == 0 {
		delete(m.groups, g)
	}
	return *p, true
}

// Group returns the (aggregation key, payload) pairings currently under g,
// empty if g is absent. The sequence is restartable; order is unspecified.
func (m *Map[G, K, V]) Group(g G) iter.Seq2[K, *V] {
	return func(yield func(K, *V) bool) {
		for k := range m.groups[g] {
			if !yield(k, m.full[bilevel.FullKey[G, K]{Group: g, Agg: k}]) {
				return
			}
		}
	}
}

// Groups returns the group keys that currently have at least one member.
func (m *Map[G, K, V]) Groups() iter.Seq[G] {
	return maps.Keys(m.groups)
}

// All returns every entry, grouped by group key.
func (m *Map[G, K, V]) All() iter.Seq2[bilevel.FullKey[G, K], *V] {
	return func(yield func(bilevel.FullKey[G, K], *V) bool) {
		for g, bucket := range m.groups {
			for k := range bucket {
				fk := bilevel.FullKey[G, K]{Group: g, Agg: k}
				if !yield(fk, m.full[fk]) {
					return
				}
			}
		}
	}
}

// Len returns the number of entries in the map.
func (m *Map[G, K, V]) Len() int { return len(m.full) }

// IsEmpty reports whether the map has no entries.
func (m *Map[G, K, V]) IsEmpty() bool { return len(m.full) == 0 }

// Clear removes all entries and all group buckets.
func (m *Map[G, K, V]) Clear() {
	clear(m.full)
	clear(m.groups)
}

func (m *Map[G, K, V]) addToGroup(g G, k K) {
	bucket := m.groups[g]
	if bucket == nil {
		bucket = make(map[K]struct{}, m.perGroup)
		m.groups[g] = bucket
	}
	bucket[k] = struct{}{}
}
