/*

# Hybrid regime: cheap group key, expensive aggregation key

Use this package when the group key is a small comparable value but the
aggregation key should not be duplicated. Group buckets live in an ordinary
Go map and copy the group key freely as their label. Aggregation keys are
interned: the container keeps exactly one owned copy of each distinct key,
however many groups reference it, and buckets store integer handles into
the intern arena.

Handles are refcounted. When the last pairing that references a key is
removed, the key's slot is tombstoned and its handle recycled; surviving
handles are never remapped.

The aggregation key type is unconstrained, so the caller supplies a
bilevel.Hasher for it.

*/
package hybrid
