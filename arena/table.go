package arena

import (
	"math/bits"

	"github.com/forestrie/go-bilevel/bilevel"
)

// slot owns the single stored copy of one pairing's key components and, for
// Map, its payload. Slots are heap boxes so payload pointers stay valid
// while the pairing lives, independent of arena growth.
type slot[G, K, V any] struct {
	g G
	k K
	v V
}

// bucket lists the members of one group as slot handles. The group key is
// not copied here; it is read through any live member. Buckets are removed
// when their last member goes, so a bucket is never empty.
type bucket struct {
	members map[int]struct{}
}

// rep returns the handle of an arbitrary member.
func (b *bucket) rep() int {
	for i := range b.members {
		return i
	}
	panic("arena: empty bucket retained")
}

// fullKeySalt makes the full-key hash order-sensitive, so a pair and its
// transpose hash independently.
const fullKeySalt = 0x9e3779b97f4a7c15

// table is the dual-index engine shared by Set and Map: a slot arena as the
// primary store, a full-key hash index over it, and the group table. All
// three are updated together by insert and remove.
type table[G, K, V any] struct {
	gh bilevel.Hasher[G]
	kh bilevel.Hasher[K]

	slots []*slot[G, K, V]
	free  []int

	full   map[uint64][]int
	groups map[uint64][]*bucket

	perGroup int
	count    int
}

func newTable[G, K, V any](gh bilevel.Hasher[G], kh bilevel.Hasher[K], c bilevel.Capacity) table[G, K, V] {
	c = c.Normalize()
	return table[G, K, V]{
		gh:       gh,
		kh:       kh,
		slots:    make([]*slot[G, K, V], 0, c.AggKeys),
		full:     make(map[uint64][]int, c.AggKeys),
		groups:   make(map[uint64][]*bucket, c.Groups),
		perGroup: c.PerGroup,
	}
}

func (t *table[G, K, V]) fullHash(g G, k K) uint64 {
	return bits.RotateLeft64(t.gh.Sum64(g), 31) ^ (t.kh.Sum64(k) * fullKeySalt)
}

// find returns the full-key hash of (g, k) and the handle of its slot, or
// -1 when the pairing is absent.
func (t *table[G, K, V]) find(g G, k K) (uint64, int) {
	fh := t.fullHash(g, k)
	for _, i := range t.full[fh] {
		s := t.slots[i]
		if t.gh.Equal(g, s.g) && t.kh.Equal(k, s.k) {
			return fh, i
		}
	}
	return fh, -1
}

// insert returns the handle for (g, k), allocating and indexing a new slot
// when the pairing is absent. On existed the v argument is ignored and the
// stored payload is left alone; replacement is the caller's call.
func (t *table[G, K, V]) insert(g G, k K, v V) (int, bool) {
	fh, i := t.find(g, k)
	if i >= 0 {
		return i, true
	}
	i = t.alloc(g, k, v)
	t.full[fh] = append(t.full[fh], i)
	t.link(g, i)
	return i, false
}

// remove unindexes and tombstones the slot for (g, k), returning it so the
// caller can recover the payload. Nil when absent.
func (t *table[G, K, V]) remove(g G, k K) *slot[G, K, V] {
	fh, i := t.find(g, k)
	if i < 0 {
		return nil
	}
	t.unindex(fh, i)
	t.unlink(g, i)
	s := t.slots[i]
	t.slots[i] = nil
	t.free = append(t.free, i)
	t.count--
	return s
}

func (t *table[G, K, V]) alloc(g G, k K, v V) int {
	s := &slot[G, K, V]{g: g, k: k, v: v}
	var i int
	if n := len(t.free); n > 0 {
		i = t.free[n-1]
		t.free = t.free[:n-1]
		t.slots[i] = s
	} else {
		i = len(t.slots)
		t.slots = append(t.slots, s)
	}
	t.count++
	return i
}

func (t *table[G, K, V]) unindex(fh uint64, i int) {
	list := t.full[fh]
	for j, idx := range list {
		if idx == i {
			list[j] = list[len(list)-1]
			list = list[:len(list)-1]
			break
		}
	}
	if len(list) == 0 {
		delete(t.full, fh)
	} else {
		t.full[fh] = list
	}
}

// bucketOf returns g's bucket under the group hash hg, nil when g has no
// members.
func (t *table[G, K, V]) bucketOf(hg uint64, g G) *bucket {
	for _, b := range t.groups[hg] {
		if t.gh.Equal(g, t.slots[b.rep()].g) {
			return b
		}
	}
	return nil
}

func (t *table[G, K, V]) link(g G, i int) {
	hg := t.gh.Sum64(g)
	b := t.bucketOf(hg, g)
	if b == nil {
		b = &bucket{members: make(map[int]struct{}, t.perGroup)}
		t.groups[hg] = append(t.groups[hg], b)
	}
	b.members[i] = struct{}{}
}

// unlink removes handle i from g's bucket, dropping the bucket when it
// empties. Must run before the slot is tombstoned: the bucket may identify
// its group through slot i itself.
func (t *table[G, K, V]) unlink(g G, i int) {
	hg := t.gh.Sum64(g)
	list := t.groups[hg]
	for j, b := range list {
		if !t.gh.Equal(g, t.slots[b.rep()].g) {
			continue
		}
		delete(b.members, i)
		if len(b.members) == 0 {
			list[j] = list[len(list)-1]
			list = list[:len(list)-1]
			if len(list) == 0 {
				delete(t.groups, hg)
			} else {
				t.groups[hg] = list
			}
		}
		return
	}
}

func (t *table[G, K, V]) clearAll() {
	t.slots = t.slots[:0]
	t.free = t.free[:0]
	clear(t.full)
	clear(t.groups)
	t.count = 0
}
