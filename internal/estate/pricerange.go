package estate

// PriceRange is an inclusive price interval. Either bound may be absent,
// meaning unconstrained on that side; a range with both bounds absent
// matches any price. PriceRange values are never mutated after
// construction; replacing a range means constructing a new one.
type PriceRange struct {
	lower *Price
	upper *Price
}

// NewPriceRange constructs a bounded range. Fails with InvalidRangeError
// when lower exceeds upper.
func NewPriceRange(lower, upper Price) (PriceRange, error) {
	if lower > upper {
		return PriceRange{}, &InvalidRangeError{Lower: lower, Upper: upper}
	}
	l, u := lower, upper
	return PriceRange{lower: &l, upper: &u}, nil
}

// AtLeast returns a range bounded only from below.
func AtLeast(lower Price) PriceRange {
	l := lower
	return PriceRange{lower: &l}
}

// AtMost returns a range bounded only from above.
func AtMost(upper Price) PriceRange {
	u := upper
	return PriceRange{upper: &u}
}

// UnboundedRange returns the range that matches any price.
func UnboundedRange() PriceRange {
	return PriceRange{}
}

// Lower returns the lower bound and whether it is present.
func (r PriceRange) Lower() (Price, bool) {
	if r.lower == nil {
		return 0, false
	}
	return *r.lower, true
}

// Upper returns the upper bound and whether it is present.
func (r PriceRange) Upper() (Price, bool) {
	if r.upper == nil {
		return 0, false
	}
	return *r.upper, true
}

// IsUnbounded reports whether both bounds are absent.
func (r PriceRange) IsUnbounded() bool {
	return r.lower == nil && r.upper == nil
}

// Contains reports whether p falls within the range, treating an absent
// bound as unconstrained.
func (r PriceRange) Contains(p Price) bool {
	if r.lower != nil && p < *r.lower {
		return false
	}
	if r.upper != nil && p > *r.upper {
		return false
	}
	return true
}

// Overlaps reports whether the two ranges have a non-empty intersection.
// An absent bound acts as -inf/+inf, so two unbounded ranges always
// overlap and every range overlaps itself.
func (r PriceRange) Overlaps(other PriceRange) bool {
	if r.lower != nil && other.upper != nil && *r.lower > *other.upper {
		return false
	}
	if other.lower != nil && r.upper != nil && *other.lower > *r.upper {
		return false
	}
	return true
}

// Equal reports whether both ranges have identical bounds.
func (r PriceRange) Equal(other PriceRange) bool {
	return eqBound(r.lower, other.lower) && eqBound(r.upper, other.upper)
}

func eqBound(a, b *Price) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// referencePoint collapses the range to a single price for proximity
// ordering: the midpoint when both bounds are present, the present bound
// when only one is. The second return is false for an unbounded range,
// which has no reference point.
func (r PriceRange) referencePoint() (Price, bool) {
	switch {
	case r.lower != nil && r.upper != nil:
		return *r.lower + (*r.upper-*r.lower)/2, true
	case r.lower != nil:
		return *r.lower, true
	case r.upper != nil:
		return *r.upper, true
	default:
		return 0, false
	}
}

// ProximityTo returns the ordering key used when sorting ranges against a
// range currently being filtered against: the absolute distance between
// the two ranges' reference points. Smaller is closer. A range without a
// reference point (unbounded) on either side yields zero, sorting first;
// callers break ties by ascending lower then upper bound.
func (r PriceRange) ProximityTo(ref PriceRange) Price {
	p, ok := r.referencePoint()
	if !ok {
		return 0
	}
	q, ok := ref.referencePoint()
	if !ok {
		return 0
	}
	if p > q {
		return p - q
	}
	return q - p
}

// CompareBounds orders two ranges by ascending lower bound then ascending
// upper bound, with an absent bound sorting before any present one.
// Returns -1, 0 or 1.
func (r PriceRange) CompareBounds(other PriceRange) int {
	if c := cmpBound(r.lower, other.lower); c != 0 {
		return c
	}
	return cmpBound(r.upper, other.upper)
}

func cmpBound(a, b *Price) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	case *a < *b:
		return -1
	case *a > *b:
		return 1
	default:
		return 0
	}
}

func (r PriceRange) String() string {
	switch {
	case r.lower != nil && r.upper != nil:
		return r.lower.String() + "-" + r.upper.String()
	case r.lower != nil:
		return r.lower.String() + "-"
	case r.upper != nil:
		return "-" + r.upper.String()
	default:
		return "any"
	}
}
