/*

# Bilevel containers

This module provides in-memory containers indexed by a composite *full key*
which decomposes into a *group key* and an *aggregation key*. The full key
uniquely identifies one row of aggregated data; the group key clusters rows
for traversal; the aggregation key is whatever remains of the full key and is
unique within its group.

Two container shapes are provided: a Set records, per group key, the set of
aggregation keys observed; a Map additionally keeps a payload per
(group key, aggregation key) pairing. The payload is opaque - combining
or summarising payloads is the caller's business, done after retrieval.

Every container maintains two synchronised views of the same entries:

  - a flat primary store keyed by the full key, for direct lookup and
    mutation of a single pairing
  - a secondary group index keyed by the group key, listing the aggregation
    keys (and payloads) under each group

Each mutation keeps both views consistent; no partially updated state is
observable between calls. A group key exists in the index only while it has
at least one member - removing the last member removes the bucket.

## Ownership regimes

Whether a key component can be cheaply duplicated dictates the storage
strategy, so three parallel implementations are provided with identical
semantics:

  - scalar: both components are cheap value types. The group index stores
    independent copies of the aggregation keys. Simplest, no aliasing.
  - arena:  neither component should be duplicated. A slot arena owns the
    single copy of every component; the full-key table and the group index
    hold slot handles only.
  - hybrid: the group key is cheap but the aggregation key is not. Group
    buckets are labelled with copied group keys; aggregation keys are
    interned once and referenced by handle from every group that uses them.

The choice is made by instantiating the matching package, never by runtime
configuration. The text package layers composite textual keys (field tuples)
over the arena regime.

This package holds the parts shared by all regimes: the FullKey pair, the
Hasher contract the no-copy regimes hash and compare with, and Capacity.

## Concurrency

The containers are single-threaded and do no locking. The sequences returned
by Group, Groups and All are lazy views over live state: restartable, and
correct under the mutate-then-iterate discipline. Mutating a container while
consuming a sequence taken from it earlier is out of contract.

*/
package bilevel
