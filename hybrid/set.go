package hybrid

import (
	"iter"
	"maps"

	"github.com/forestrie/go-bilevel/bilevel"
)

// Set is a collection of distinct (group key, aggregation key) pairs where
// the group key is a cheap comparable value and the aggregation key is
// interned rather than duplicated.
//
// G is the type of the group key.
// K is the type of the aggregation key.
type Set[G comparable, K any] struct {
	keys     interner[K]
	groups   map[G]map[int]struct{}
	perGroup int
	count    int
}

// NewSet creates an empty set hashing aggregation keys with kh. No initial
// capacity is allocated.
func NewSet[G comparable, K any](kh bilevel.Hasher[K]) *Set[G, K] {
	return NewSetWithCapacity[G](kh, bilevel.Capacity{})
}

// NewSetWithCapacity creates an empty set pre-sized by c.
func NewSetWithCapacity[G comparable, K any](kh bilevel.Hasher[K], c bilevel.Capacity) *Set[G, K] {
	c = c.Normalize()
	return &Set[G, K]{
		keys:     newInterner(kh, c.AggKeys),
		groups:   make(map[G]map[int]struct{}, c.Groups),
		perGroup: c.PerGroup,
	}
}

// Insert adds the pair (g, k) if absent, creating the group bucket when g
// is new. Returns false if the pair was already present, otherwise true.
func (s *Set[G, K]) Insert(g G, k K) bool {
	bucket := s.groups[g]
	if bucket != nil {
		if i := s.keys.lookup(k); i >= 0 {
			if _, ok := bucket[i]; ok {
				return false
			}
		}
	}
	i := s.keys.retain(k)
	if bucket == nil {
		bucket = make(map[int]struct{}, s.perGroup)
		s.groups[g] = bucket
	}
	bucket[i] = struct{}{}
	s.count++
	return true
}

// Contains reports whether the pair (g, k) is present.
func (s *Set[G, K]) Contains(g G, k K) bool {
	bucket := s.groups[g]
	if bucket == nil {
		return false
	}
	i := s.keys.lookup(k)
	if i < 0 {
		return false
	}
	_, ok := bucket[i]
	return ok
}

// Remove deletes the pair (g, k), reporting whether it was present. The
// group bucket is dropped when its last member goes, and the interned key
// when its last referencing group goes.
func (s *Set[G, K]) Remove(g G, k K) bool {
	bucket := s.groups[g]
	if bucket == nil {
		return false
	}
	i := s.keys.lookup(k)
	if i < 0 {
		return false
	}
	if _, ok := bucket[i]; !ok {
		return false
	}
	delete(bucket, i)
	if len(bucket) == 0 {
		delete(s.groups, g)
	}
	s.keys.release(i)
	s.count--
	return true
}

// Group returns the aggregation keys currently under g, empty if g is
// absent. The sequence is restartable; order is unspecified.
func (s *Set[G, K]) Group(g G) iter.Seq[K] {
	return func(yield func(K) bool) {
		for i := range s.groups[g] {
			if !yield(s.keys.at(i)) {
				return
			}
		}
	}
}

// Groups returns the group keys that currently have at least one member.
func (s *Set[G, K]) Groups() iter.Seq[G] {
	return maps.Keys(s.groups)
}

// All returns every pair, grouped by group key: a group's members are
// contiguous and a group key never reappears once its run ends.
func (s *Set[G, K]) All() iter.Seq2[G, K] {
	return func(yield func(G, K) bool) {
		for g, bucket := range s.groups {
			for i := range bucket {
				if !yield(g, s.keys.at(i)) {
					return
				}
			}
		}
	}
}

// Len returns the number of pairs in the set.
func (s *Set[G, K]) Len() int { return s.count }

// IsEmpty reports whether the set has no pairs.
func (s *Set[G, K]) IsEmpty() bool { return s.count == 0 }

// Clear removes all pairs, all group buckets and all interned keys.
func (s *Set[G, K]) Clear() {
	s.keys.clearAll()
	clear(s.groups)
	s.count = 0
}
