package bilevel

// FullKey is the composite identifier of one entry: the group key paired
// with the aggregation key. It is never stored as a concatenation; both
// components remain independently usable.
//
// When G and K are both comparable, an instantiated FullKey is itself
// comparable and serves as a flat map key.
type FullKey[G, K any] struct {
	Group G
	Agg   K
}
