package scalar

import (
	"iter"
	"maps"

	"github.com/forestrie/go-bilevel/bilevel"
)

// Set is a collection of distinct (group key, aggregation key) pairs,
// indexed flat by the full key and grouped by the group key.
//
// G is the type of the group key.
// K is the type of the aggregation key.
type Set[G, K comparable] struct {
	full     map[bilevel.FullKey[G, K]]struct{}
	groups   map[G]map[K]struct{}
	perGroup int
}

// NewSet creates an empty set. No initial capacity is allocated; capacity
// for a few members is allocated for each new group key found.
func NewSet[G, K comparable]() *Set[G, K] {
	return NewSetWithCapacity[G, K](bilevel.Capacity{})
}

// NewSetWithCapacity creates an empty set pre-sized by c.
func NewSetWithCapacity[G, K comparable](c bilevel.Capacity) *Set[G, K] {
	c = c.Normalize()
	return &Set[G, K]{
		full:     make(map[bilevel.FullKey[G, K]]struct{}, c.AggKeys),
		groups:   make(map[G]map[K]struct{}, c.Groups),
		perGroup: c.PerGroup,
	}
}

// Insert adds the pair (g, k) if absent, creating the group bucket when g
// is new. Returns false if the pair was already present, otherwise true.
func (s *Set[G, K]) Insert(g G, k K) bool {
	fk := bilevel.FullKey[G, K]{Group: g, Agg: k}
	if _, ok := s.full[fk]; ok {
		return false
	}
	s.full[fk] = struct{}{}
	bucket := s.groups[g]
	if bucket == nil {
		bucket = make(map[K]struct{}, s.perGroup)
		s.groups[g] = bucket
	}
	bucket[k] = struct{}{}
	return true
}

// Contains reports whether the pair (g, k) is present.
func (s *Set[G, K]) Contains(g G, k K) bool {
	_, ok := s.full[bilevel.FullKey[G, K]{Group: g, Agg: k}]
	return ok
}

// Remove deletes the pair (g, k), reporting whether it was present. The
// group bucket is dropped when its last member goes.
func (s *Set[G, K]) Remove(g G, k K) bool {
	fk := bilevel.FullKey[G, K]{Group: g, Agg: k}
	if _, ok := s.full[fk]; !ok {
		return false
	}
	delete(s.full, fk)
	bucket := s.groups[g]
	delete(bucket, k)
	if len(bucket) == 0 {
		delete(s.groups, g)
	}
	return true
}

// Group returns the aggregation keys currently under g, empty if g is
// absent. The sequence is restartable; order is unspecified.
func (s *Set[G, K]) Group(g G) iter.Seq[K] {
	return maps.Keys(s.groups[g])
}

// Groups returns the group keys that currently have at least one member.
func (s *Set[G, K]) Groups() iter.Seq[G] {
	return maps.Keys(s.groups)
}

// All returns every pair, grouped by group key: a group's members are
// contiguous and a group key never reappears once its run ends. Order is
// otherwise unspecified.
func (s *Set[G, K]) All() iter.Seq2[G, K] {
	return func(yield func(G, K) bool) {
		for g, bucket := range s.groups {
			for k := range bucket {
				if !yield(g, k) {
					return
				}
			}
		}
	}
}

// Len returns the number of pairs in the set.
func (s *Set[G, K]) Len() int { return len(s.full) }

// IsEmpty reports whether the set has no pairs.
func (s *Set[G, K]) IsEmpty() bool { return len(s.full) == 0 }

// Clear removes all pairs and all group buckets.
func (s *Set[G, K]) Clear() {
	clear(s.full)
	clear(s.groups)
}

// Pivot copies the pairs into a new set grouped by the aggregation key.
func (s *Set[G, K]) Pivot() *Set[K, G] {
	// Pre-allocate assuming approximate symmetry between the two axes.
	p := NewSetWithCapacity[K, G](bilevel.Capacity{
		Groups:   len(s.groups),
		PerGroup: s.perGroup,
		AggKeys:  len(s.full),
	})
	for g, k := range s.All() {
		p.Insert(k, g)
	}
	return p
}
