package hybrid

import (
	"iter"
	"maps"

	"github.com/forestrie/go-bilevel/bilevel"
)

// Map is a collection of distinct (group key, aggregation key) pairs with a
// payload kept for each pairing, where the group key is a cheap comparable
// value and the aggregation key is interned rather than duplicated.
//
// G is the type of the group key.
// K is the type of the aggregation key.
// V is the type of the payload; the container imposes no structure on it.
type Map[G comparable, K any, V any] struct {
	keys interner[K]
	// Payloads are boxed so GetMut and Group can hand out pointers that
	// survive replacement in place.
	groups   map[G]map[int]*V
	perGroup int
	count    int
}

// NewMap creates an empty map hashing aggregation keys with kh. No initial
// capacity is allocated.
func NewMap[G comparable, K, V any](kh bilevel.Hasher[K]) *Map[G, K, V] {
	return NewMapWithCapacity[G, K, V](kh, bilevel.Capacity{})
}

// NewMapWithCapacity creates an empty map pre-sized by c.
func NewMapWithCapacity[G comparable, K, V any](kh bilevel.Hasher[K], c bilevel.Capacity) *Map[G, K, V] {
	c = c.Normalize()
	return &Map[G, K, V]{
		keys:     newInterner(kh, c.AggKeys),
		groups:   make(map[G]map[int]*V, c.Groups),
		perGroup: c.PerGroup,
	}
}

// Insert adds the payload for the pair (g, k), replacing in place when the
// pair already exists. Returns the previous payload and true on
// replacement, the zero payload and false on fresh insertion.
func (m *Map[G, K, V]) Insert(g G, k K, v V) (V, bool) {
	if p := m.payload(g, k); p != nil {
		prev := *p
		*p = v
		return prev, true
	}
	m.add(g, k, &v)
	var zero V
	return zero, false
}

// Get returns the payload for the pair (g, k), if present.
func (m *Map[G, K, V]) Get(g G, k K) (V, bool) {
	if p := m.payload(g, k); p != nil {
		return *p, true
	}
	var zero V
	return zero, false
}

// GetMut returns a pointer to the payload for the pair (g, k), nil if the
// pair is absent. The pointer is valid until the pair is removed.
func (m *Map[G, K, V]) GetMut(g G, k K) *V {
	return m.payload(g, k)
}

// AddOrGet returns a pointer to the payload for the pair (g, k), inserting
// the zero payload first if the pair is absent.
func (m *Map[G, K, V]) AddOrGet(g G, k K) *V {
	if p := m.payload(g, k); p != nil {
		return p
	}
	p := new(V)
	m.add(g, k, p)
	return p
}

// Remove deletes the pair (g, k) and returns its payload, if present. The
// group bucket is dropped when its last member goes, and the interned key
// when its last referencing group goes.
func (m *Map[G, K, V]) Remove(g G, k K) (V, bool) {
	bucket := m.groups[g]
	if bucket == nil {
		var zero V
		return zero, false
	}
	i := m.keys.lookup(k)
	if i < 0 {
		var zero V
		return zero, false
	}
	p, ok := bucket[i]
	if !ok {
		var zero V
		return zero, false
	}
	delete(bucket, i)
	if len(bucket) == 0 {
		delete(m.groups, g)
	}
	m.keys.release(i)
	m.count--
	return *p, true
}

// Group returns the (aggregation key, payload) pairings currently under g,
// empty if g is absent. The sequence is restartable; order is unspecified.
func (m *Map[G, K, V]) Group(g G) iter.Seq2[K, *V] {
	return func(yield func(K, *V) bool) {
		for i, p := range m.groups[g] {
			if !yield(m.keys.at(i), p) {
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
			for i, p := range bucket {
				if !yield(bilevel.FullKey[G, K]{Group: g, Agg: m.keys.at(i)}, p) {
					return
				}
			}
		}
	}
}

// Len returns the number of entries in the map.
func (m *Map[G, K, V]) Len() int { return m.count }

// IsEmpty reports whether the map has no entries.
func (m *Map[G, K, V]) IsEmpty() bool { return m.count == 0 }

// Clear removes all entries, all group buckets and all interned keys.
func (m *Map[G, K, V]) Clear() {
	m.keys.clearAll()
	clear(m.groups)
	m.count = 0
}

func (m *Map[G, K, V]) payload(g G, k K) *V {
	bucket := m.groups[g]
	if bucket == nil {
		return nil
	}
	i := m.keys.lookup(k)
	if i < 0 {
		return nil
	}
	return bucket[i]
}

func (m *Map[G, K, V]) add(g G, k K, p *V) {
	i := m.keys.retain(k)
	bucket := m.groups[g]
	if bucket == nil {
		bucket = make(map[int]*V, m.perGroup)
		m.groups[g] = bucket
	}
	bucket[i] = p
	m.count++
}
