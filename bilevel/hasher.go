package bilevel

import (
	"bytes"
	"hash/maphash"

	"github.com/cespare/xxhash/v2"
)

// Hasher hashes and compares key components for the regimes that cannot use
// the component as a Go map key directly (arena, hybrid).
//
// Equal must be consistent with Sum64: Equal(a, b) implies
// Sum64(a) == Sum64(b). An inconsistent pair produces incorrect grouping
// results, not corruption; it is a precondition, not checked at runtime.
type Hasher[T any] interface {
	// Sum64 returns a 64 bit hash of t.
	Sum64(t T) uint64
	// Equal reports whether a and b are the same key value.
	Equal(a, b T) bool
}

type funcHasher[T any] struct {
	sum func(T) uint64
	eq  func(T, T) bool
}

func (h funcHasher[T]) Sum64(t T) uint64  { return h.sum(t) }
func (h funcHasher[T]) Equal(a, b T) bool { return h.eq(a, b) }

// NewHasher adapts a hash function and an equality function into a Hasher.
func NewHasher[T any](sum func(T) uint64, equal func(T, T) bool) Hasher[T] {
	return funcHasher[T]{sum: sum, eq: equal}
}

// Strings hashes string keys with xxhash.
func Strings() Hasher[string] {
	return NewHasher(xxhash.Sum64String, func(a, b string) bool { return a == b })
}

// Bytes hashes []byte keys with xxhash. Keys are compared by content.
func Bytes() Hasher[[]byte] {
	return NewHasher(xxhash.Sum64, bytes.Equal)
}

// comparableSeed is fixed per process so that separate Hasher values for
// the same type agree on every hash.
var comparableSeed = maphash.MakeSeed()

// Comparable hashes any comparable type using the runtime's hashing. Useful
// when a key type is comparable but too large to treat as cheaply copyable.
func Comparable[T comparable]() Hasher[T] {
	return NewHasher(
		func(t T) uint64 { return maphash.Comparable(comparableSeed, t) },
		func(a, b T) bool { return a == b },
	)
}
