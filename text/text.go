// Package text provides bilevel containers keyed by tuples of string
// fields, the common shape when the full key is a selection of columns from
// parsed rows and the group key is a prefix or subset of those columns.
//
// Field tuples are treated as expensive to duplicate, so both axes use the
// arena regime: one stored copy per pairing, handles everywhere else.
package text

import (
	"encoding/binary"
	"slices"

	"github.com/cespare/xxhash/v2"

	"github.com/forestrie/go-bilevel/arena"
	"github.com/forestrie/go-bilevel/bilevel"
)

// Set is a bilevel set whose group key and aggregation key are both tuples
// of string fields.
type Set = arena.Set[[]string, []string]

// NewSet creates an empty field-tuple set.
func NewSet() *Set {
	return arena.NewSet(Fields(), Fields())
}

// NewSetWithCapacity creates an empty field-tuple set pre-sized by c.
func NewSetWithCapacity(c bilevel.Capacity) *Set {
	return arena.NewSetWithCapacity(Fields(), Fields(), c)
}

// NewMap creates an empty field-tuple map with payload type V.
func NewMap[V any]() *arena.Map[[]string, []string, V] {
	return arena.NewMap[[]string, []string, V](Fields(), Fields())
}

// NewMapWithCapacity creates an empty field-tuple map pre-sized by c.
func NewMapWithCapacity[V any](c bilevel.Capacity) *arena.Map[[]string, []string, V] {
	return arena.NewMapWithCapacity[[]string, []string, V](Fields(), Fields(), c)
}

// Fields hashes a tuple of string fields with xxhash and compares tuples
// field by field.
func Fields() bilevel.Hasher[[]string] {
	return bilevel.NewHasher(sumFields, slices.Equal[[]string])
}

// Each field is length-prefixed so that, for example, ("ab", "c") and
// ("a", "bc") hash differently.
func sumFields(fields []string) uint64 {
	var d xxhash.Digest
	d.Reset()
	var n [8]byte
	for _, f := range fields {
		binary.BigEndian.PutUint64(n[:], uint64(len(f)))
		d.Write(n[:])
		d.WriteString(f)
	}
	return d.Sum64()
}
