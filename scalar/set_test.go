package scalar

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forestrie/go-bilevel/bilevel"
)

// pairFixture is 13 insertions covering 11 distinct pairs; positions 5 and
// 11 are duplicates.
var pairFixture = []struct{ g, k int }{
	{2, 2}, {2, 4}, {2, 8}, {2, 10},
	{3, 3}, {3, 3}, {3, 6}, {3, 9},
	{4, 4}, {4, 8},
	{5, 5}, {5, 5}, {5, 10},
}

func TestSetInsertDeduplicates(t *testing.T) {
	// With and without pre-allocated capacity.
	sets := map[string]*Set[int, int]{
		"new": NewSet[int, int](),
		"with capacity": NewSetWithCapacity[int, int](bilevel.Capacity{
			Groups: 4, PerGroup: 4, AggKeys: 8,
		}),
	}
	for name, s := range sets {
		t.Run(name, func(t *testing.T) {
			for i, p := range pairFixture {
				added := s.Insert(p.g, p.k)
				if i == 5 || i == 11 {
					assert.False(t, added, "insertion %d is a duplicate", i)
				} else {
					assert.True(t, added, "insertion %d is novel", i)
				}
			}
			require.Equal(t, 11, s.Len())
			for _, p := range pairFixture {
				assert.True(t, s.Contains(p.g, p.k))
			}
		})
	}
}

func TestSetAllIsGrouped(t *testing.T) {
	s := NewSet[int, int]()
	for _, p := range pairFixture {
		s.Insert(p.g, p.k)
	}
	// Once a group key's run ends it must not reappear.
	finished := map[int]bool{}
	current, started := 0, false
	n := 0
	for g := range s.All() {
		n++
		if !started {
			current, started = g, true
			continue
		}
		if g == current {
			continue
		}
		finished[current] = true
		require.False(t, finished[g], "group %d appeared in two runs", g)
		current = g
	}
	require.Equal(t, s.Len(), n)
}

func TestSetGroupLifecycle(t *testing.T) {
	s := NewSet[string, int]()
	require.True(t, s.Insert("A", 1))
	require.True(t, s.Insert("A", 2))
	require.True(t, s.Insert("B", 1))
	require.Equal(t, 3, s.Len())
	require.ElementsMatch(t, []string{"A", "B"}, slices.Collect(s.Groups()))
	require.ElementsMatch(t, []int{1, 2}, slices.Collect(s.Group("A")))
	require.ElementsMatch(t, []int{1}, slices.Collect(s.Group("B")))
	require.Empty(t, slices.Collect(s.Group("C")))

	require.True(t, s.Remove("A", 1))
	require.Equal(t, 2, s.Len())
	require.ElementsMatch(t, []int{2}, slices.Collect(s.Group("A")))

	// Removing the last member must drop the bucket, not retain it empty.
	require.True(t, s.Remove("A", 2))
	require.Equal(t, 1, s.Len())
	require.ElementsMatch(t, []string{"B"}, slices.Collect(s.Groups()))
	require.False(t, s.Remove("A", 2))
	require.False(t, s.Contains("A", 2))
}

func TestSetGroupIsRestartable(t *testing.T) {
	s := NewSet[string, int]()
	s.Insert("A", 1)
	s.Insert("A", 2)
	seq := s.Group("A")
	require.ElementsMatch(t, []int{1, 2}, slices.Collect(seq))
	require.ElementsMatch(t, []int{1, 2}, slices.Collect(seq))
}

func TestSetClear(t *testing.T) {
	s := NewSet[string, string]()
	s.Insert("A", "1")
	s.Insert("B", "2")
	require.False(t, s.IsEmpty())
	s.Clear()
	require.True(t, s.IsEmpty())
	require.Equal(t, 0, s.Len())
	require.Empty(t, slices.Collect(s.Groups()))
	// The container stays usable after a clear.
	require.True(t, s.Insert("A", "1"))
	require.Equal(t, 1, s.Len())
}

func TestSetPivot(t *testing.T) {
	s := NewSet[int, int]()
	for _, p := range pairFixture {
		s.Insert(p.g, p.k)
	}
	p := s.Pivot()
	require.Equal(t, s.Len(), p.Len())
	for g, k := range s.All() {
		require.True(t, p.Contains(k, g))
	}
	// Pivoting twice restores the original orientation.
	rt := p.Pivot()
	require.Equal(t, s.Len(), rt.Len())
	for g, k := range s.All() {
		require.True(t, rt.Contains(g, k))
	}
}
