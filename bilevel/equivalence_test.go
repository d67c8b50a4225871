package bilevel_test

import (
	"fmt"
	"iter"
	"math/rand"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/forestrie/go-bilevel/arena"
	"github.com/forestrie/go-bilevel/bilevel"
	"github.com/forestrie/go-bilevel/hybrid"
	"github.com/forestrie/go-bilevel/scalar"
)

// The three storage regimes promise identical operation semantics. These
// tests drive all of them through the same scenarios, instantiated over
// string keys, and diff their group views.

type bilevelSet interface {
	Insert(g, k string) bool
	Contains(g, k string) bool
	Remove(g, k string) bool
	Group(g string) iter.Seq[string]
	Groups() iter.Seq[string]
	Len() int
	IsEmpty() bool
	Clear()
}

type bilevelMap interface {
	Insert(g, k string, v int) (int, bool)
	Get(g, k string) (int, bool)
	GetMut(g, k string) *int
	AddOrGet(g, k string) *int
	Remove(g, k string) (int, bool)
	Group(g string) iter.Seq2[string, *int]
	Groups() iter.Seq[string]
	Len() int
	IsEmpty() bool
	Clear()
}

func setVariants() map[string]bilevelSet {
	return map[string]bilevelSet{
		"scalar": scalar.NewSet[string, string](),
		"arena":  arena.NewSet(bilevel.Strings(), bilevel.Strings()),
		"hybrid": hybrid.NewSet[string](bilevel.Strings()),
	}
}

func mapVariants() map[string]bilevelMap {
	return map[string]bilevelMap{
		"scalar": scalar.NewMap[string, string, int](),
		"arena":  arena.NewMap[string, string, int](bilevel.Strings(), bilevel.Strings()),
		"hybrid": hybrid.NewMap[string, string, int](bilevel.Strings()),
	}
}

// groupView normalises a set into sorted per-group member lists.
func groupView(s bilevelSet) map[string][]string {
	out := map[string][]string{}
	for g := range s.Groups() {
		out[g] = slices.Sorted(s.Group(g))
	}
	return out
}

func TestSetRegimesAgreeOnLifecycle(t *testing.T) {
	for name, s := range setVariants() {
		t.Run(name, func(t *testing.T) {
			require.True(t, s.IsEmpty())
			require.True(t, s.Insert("A", "1"))
			require.True(t, s.Insert("A", "2"))
			require.True(t, s.Insert("B", "1"))
			require.False(t, s.Insert("A", "1"))
			require.Equal(t, 3, s.Len())

			want := map[string][]string{"A": {"1", "2"}, "B": {"1"}}
			if diff := cmp.Diff(want, groupView(s)); diff != "" {
				t.Errorf("group view mismatch (-want +got):\n%s", diff)
			}

			require.True(t, s.Remove("A", "1"))
			require.Equal(t, 2, s.Len())
			want = map[string][]string{"A": {"2"}, "B": {"1"}}
			if diff := cmp.Diff(want, groupView(s)); diff != "" {
				t.Errorf("group view mismatch (-want +got):\n%s", diff)
			}

			require.True(t, s.Remove("A", "2"))
			require.False(t, s.Remove("A", "2"))
			require.Equal(t, 1, s.Len())
			require.NotContains(t, slices.Collect(s.Groups()), "A")

			s.Clear()
			require.True(t, s.IsEmpty())
			require.Empty(t, groupView(s))
		})
	}
}

// TestSetRegimesStayEquivalent applies one deterministic churn of inserts
// and removes to every regime and requires identical final state, checking
// the flat and grouped views against each other along the way.
func TestSetRegimesStayEquivalent(t *testing.T) {
	variants := setVariants()
	rng := rand.New(rand.NewSource(1))

	type op struct {
		remove bool
		g, k   string
	}
	var ops []op
	for range 800 {
		ops = append(ops, op{
			remove: rng.Intn(3) == 0,
			g:      fmt.Sprintf("g%d", rng.Intn(12)),
			k:      fmt.Sprintf("k%d", rng.Intn(20)),
		})
	}

	for _, o := range ops {
		first := true
		var want bool
		for name, s := range variants {
			var got bool
			if o.remove {
				got = s.Remove(o.g, o.k)
			} else {
				got = s.Insert(o.g, o.k)
			}
			if first {
				want, first = got, false
				continue
			}
			require.Equal(t, want, got, "regime %s disagreed on %+v", name, o)
		}
	}

	ref := groupView(variants["scalar"])
	for name, s := range variants {
		if diff := cmp.Diff(ref, groupView(s)); diff != "" {
			t.Errorf("regime %s diverged (-scalar +%s):\n%s", name, name, diff)
		}

		// Flat and grouped views must reach the same pairs.
		total := 0
		for g, ks := range groupView(s) {
			total += len(ks)
			for _, k := range ks {
				require.True(t, s.Contains(g, k))
			}
		}
		require.Equal(t, s.Len(), total)
	}
}

func TestMapRegimesAgreeOnReplaceAndAccumulate(t *testing.T) {
	for name, m := range mapVariants() {
		t.Run(name, func(t *testing.T) {
			prev, replaced := m.Insert("A", "1", 10)
			require.False(t, replaced)
			require.Zero(t, prev)

			prev, replaced = m.Insert("A", "1", 20)
			require.True(t, replaced)
			require.Equal(t, 10, prev)

			got, ok := m.Get("A", "1")
			require.True(t, ok)
			require.Equal(t, 20, got)
			require.Equal(t, 1, m.Len())

			*m.AddOrGet("A", "2") += 5
			*m.AddOrGet("A", "2") += 5
			*m.AddOrGet("B", "1") += 1
			require.Equal(t, 3, m.Len())

			got, ok = m.Get("A", "2")
			require.True(t, ok)
			require.Equal(t, 10, got)

			p := m.GetMut("B", "1")
			require.NotNil(t, p)
			*p = 7
			got, _ = m.Get("B", "1")
			require.Equal(t, 7, got)
			require.Nil(t, m.GetMut("B", "2"))

			sums := map[string]int{}
			for g := range m.Groups() {
				for _, v := range m.Group(g) {
					sums[g] += *v
				}
			}
			require.Equal(t, map[string]int{"A": 30, "B": 7}, sums)

			v, ok := m.Remove("A", "1")
			require.True(t, ok)
			require.Equal(t, 20, v)
			_, ok = m.Remove("A", "1")
			require.False(t, ok)
			require.Equal(t, 2, m.Len())

			m.Clear()
			require.True(t, m.IsEmpty())
			_, ok = m.Get("A", "2")
			require.False(t, ok)
		})
	}
}
