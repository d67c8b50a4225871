package arena

import (
	"iter"

	"github.com/forestrie/go-bilevel/bilevel"
)

// Set is a collection of distinct (group key, aggregation key) pairs over
// arbitrary key types, stored without duplicating either component.
//
// G is the type of the group key.
// K is the type of the aggregation key.
type Set[G, K any] struct {
	t table[G, K, struct{}]
}

// NewSet creates an empty set hashing group keys with gh and aggregation
// keys with kh. No initial capacity is allocated.
func NewSet[G, K any](gh bilevel.Hasher[G], kh bilevel.Hasher[K]) *Set[G, K] {
	return NewSetWithCapacity(gh, kh, bilevel.Capacity{})
}

// NewSetWithCapacity creates an empty set pre-sized by c.
func NewSetWithCapacity[G, K any](gh bilevel.Hasher[G], kh bilevel.Hasher[K], c bilevel.Capacity) *Set[G, K] {
	return &Set[G, K]{t: newTable[G, K, struct{}](gh, kh, c)}
}

// Insert adds the pair (g, k) if absent, creating the group bucket when g
// is new. Returns false if the pair was already present, otherwise true.
func (s *Set[G, K]) Insert(g G, k K) bool {
	_, existed := s.t.insert(g, k, struct{}{})
	return !existed
}

// Contains reports whether the pair (g, k) is present.
func (s *Set[G, K]) Contains(g G, k K) bool {
	_, i := s.t.find(g, k)
	return i >= 0
}

// Remove deletes the pair (g, k), reporting whether it was present. The
// group bucket is dropped when its last member goes.
func (s *Set[G, K]) Remove(g G, k K) bool {
	return s.t.remove(g, k) != nil
}

// Group returns the aggregation keys currently under g, empty if g is
// absent. The sequence is restartable; order is unspecified.
func (s *Set[G, K]) Group(g G) iter.Seq[K] {
	return func(yield func(K) bool) {
		b := s.t.bucketOf(s.t.gh.Sum64(g), g)
		if b == nil {
			return
		}
		for i := range b.members {
			if !yield(s.t.slots[i].k) {
				return
			}
		}
	}
}

// Groups returns the group keys that currently have at least one member.
// Each group key is read through one of its member slots.
func (s *Set[G, K]) Groups() iter.Seq[G] {
	return func(yield func(G) bool) {
		for _, list := range s.t.groups {
			for _, b := range list {
				if !yield(s.t.slots[b.rep()].g) {
					return
				}
			}
		}
	}
}

// All returns every pair, grouped by group key: a group's members are
// contiguous and a group key never reappears once its run ends.
func (s *Set[G, K]) All() iter.Seq2[G, K] {
	return func(yield func(G, K) bool) {
		for _, list := range s.t.groups {
			for _, b := range list {
				for i := range b.members {
					sl := s.t.slots[i]
					if !yield(sl.g, sl.k) {
						return
					}
				}
			}
		}
	}
}

// Len returns the number of pairs in the set.
func (s *Set[G, K]) Len() int { return s.t.count }

// IsEmpty reports whether the set has no pairs.
func (s *Set[G, K]) IsEmpty() bool { return s.t.count == 0 }

// Clear removes all pairs and all group buckets.
func (s *Set[G, K]) Clear() { s.t.clearAll() }

// Pivot copies the pairs into a new set grouped by the aggregation key.
func (s *Set[G, K]) Pivot() *Set[K, G] {
	p := NewSetWithCapacity(s.t.kh, s.t.gh, bilevel.Capacity{
		Groups:   s.t.count,
		PerGroup: s.t.perGroup,
		AggKeys:  s.t.count,
	})
	for g, k := range s.All() {
		p.Insert(k, g)
	}
	return p
}
