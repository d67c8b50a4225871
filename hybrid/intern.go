package hybrid

import "github.com/forestrie/go-bilevel/bilevel"

// interner keeps the single owned copy of each distinct aggregation key and
// hands out stable integer handles. A key slot is reclaimed when the last
// (group, key) pairing referencing it is released.
type interner[K any] struct {
	kh    bilevel.Hasher[K]
	keys  []*ref[K]
	free  []int
	table map[uint64][]int
}

type ref[K any] struct {
	k K
	n int // live pairings referencing this key
}

func newInterner[K any](kh bilevel.Hasher[K], aggKeys int) interner[K] {
	return interner[K]{
		kh:    kh,
		keys:  make([]*ref[K], 0, aggKeys),
		table: make(map[uint64][]int, aggKeys),
	}
}

// lookup returns the handle of k, or -1 when k is not interned.
func (in *interner[K]) lookup(k K) int {
	for _, i := range in.table[in.kh.Sum64(k)] {
		if in.kh.Equal(k, in.keys[i].k) {
			return i
		}
	}
	return -1
}

// retain returns the handle of k, interning it first when new, and counts
// one more pairing against it.
func (in *interner[K]) retain(k K) int {
	h := in.kh.Sum64(k)
	for _, i := range in.table[h] {
		if in.kh.Equal(k, in.keys[i].k) {
			in.keys[i].n++
			return i
		}
	}
	r := &ref[K]{k: k, n: 1}
	var i int
	if n := len(in.free); n > 0 {
		i = in.free[n-1]
		in.free = in.free[:n-1]
		in.keys[i] = r
	} else {
		i = len(in.keys)
		in.keys = append(in.keys, r)
	}
	in.table[h] = append(in.table[h], i)
	return i
}

// release counts one pairing off handle i, tombstoning the slot and
// recycling the handle when no pairings remain.
func (in *interner[K]) release(i int) {
	r := in.keys[i]
	r.n--
	if r.n > 0 {
		return
	}
	h := in.kh.Sum64(r.k)
	list := in.table[h]
	for j, idx := range list {
		if idx == i {
			list[j] = list[len(list)-1]
			list = list[:len(list)-1]
			break
		}
	}
	if len(list) == 0 {
		delete(in.table, h)
	} else {
		in.table[h] = list
	}
	in.keys[i] = nil
	in.free = append(in.free, i)
}

// at returns the key for a live handle.
func (in *interner[K]) at(i int) K { return in.keys[i].k }

func (in *interner[K]) clearAll() {
	in.keys = in.keys[:0]
	in.free = in.free[:0]
	clear(in.table)
}
