/*

# Scalar regime: both key components are cheap value types

Use this package when the group key and the aggregation key are both small
comparable values (integers, short strings, small structs of the same). Keys
are stored by value wherever needed: the primary store is a flat map keyed
by the full key, and the group index keeps its own copies of the aggregation
keys. Nothing aliases, so this is the simplest regime.

A Set records which aggregation keys have been observed under each group
key. A Map additionally keeps one payload per pairing; AddOrGet is the
accumulation primitive:

	counts := scalar.NewMap[string, int, int]()
	*counts.AddOrGet("a", 2)++
	*counts.AddOrGet("b", 1)++
	*counts.AddOrGet("a", 2)++

After which Group("a") yields the pair (2, &2).

If one or both key components are expensive to duplicate, use the hybrid or
arena packages instead; all three have identical operation semantics.

*/
package scalar
