package bilevel

// DefaultPerGroup is the bucket capacity allocated when a new group key is
// first seen and no explicit Capacity was given.
const DefaultPerGroup = 4

// Capacity sizes a bilevel container up front.
//
// The zero value is valid and means "size nothing ahead of time".
type Capacity struct {
	// Groups is the number of distinct group keys to allocate space for.
	Groups int
	// PerGroup is the number of members to allocate capacity for when a
	// new group key is found. Zero means DefaultPerGroup.
	PerGroup int
	// AggKeys is the number of distinct aggregation keys, which for the
	// arena regime is also the number of entries, to allocate space for.
	AggKeys int
}

// Normalize returns a copy with zero or negative fields replaced by usable
// defaults.
func (c Capacity) Normalize() Capacity {
	if c.Groups < 0 {
		c.Groups = 0
	}
	if c.PerGroup <= 0 {
		c.PerGroup = DefaultPerGroup
	}
	if c.AggKeys < 0 {
		c.AggKeys = 0
	}
	return c
}
