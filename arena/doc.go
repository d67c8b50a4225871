/*

# Arena regime: neither key component should be duplicated

Use this package when both the group key and the aggregation key are
expensive to duplicate (large byte strings, composite records). The
containers never copy a key component: each inserted pairing gets one slot
in an arena, and that slot holds the only stored copy of both components.
Everything else works through slot handles:

	+-----------------------+
	| full-key hash table   |  hash(g, k) -> [handle, ...]
	+-----------------------+
	| group table           |  hash(g)    -> [bucket, ...]
	|   bucket              |  {handle, handle, ...}
	+-----------------------+
	| slot arena            |  handle -> (g, k, payload)
	+-----------------------+

A bucket carries no copy of its group key; it reads the key through any of
its live member slots, which is always possible because an emptied bucket
is removed rather than retained.

Removal tombstones the slot and recycles its handle through a free list.
Surviving handles are never remapped. The slot box itself is not reused, so
a payload pointer obtained before an unrelated removal stays intact.

Because the key types are unconstrained, the caller supplies a
bilevel.Hasher for each component. Hash collisions are resolved with the
hasher's Equal, so distinct keys with equal hashes only cost a little extra
comparison work.

*/
package arena
