package selection

import "fmt"

// Range is an ordered pair of char indices with Start <= End.
type Range struct {
	Start int
	End   int
}

// NewRange creates a range, swapping the bounds if needed.
func NewRange(a, b int) Range {
	if a > b {
		a, b = b, a
	}
	return Range{Start: a, End: b}
}

// String returns a human-readable representation of the range.
func (r Range) String() string {
	return fmt.Sprintf("[%d, %d)", r.Start, r.End)
}

// Len returns End - Start.
func (r Range) Len() int {
	return r.End - r.Start
}

// IsEmpty returns true if the range has zero length.
func (r Range) IsEmpty() bool {
	return r.Start == r.End
}

// Contains reports whether idx lies in the closed interval [Start, End].
func (r Range) Contains(idx int) bool {
	return idx >= r.Start && idx <= r.End
}

// Overlaps reports whether the closed intervals share any index,
// including a shared endpoint.
func (r Range) Overlaps(other Range) bool {
	return r.Start <= other.End && other.Start <= r.End
}

// Intersection returns the common part of two ranges. ok is false iff the
// ranges are disjoint.
func (r Range) Intersection(other Range) (Range, bool) {
	start := max(r.Start, other.Start)
	end := min(r.End, other.End)
	if start > end {
		return Range{}, false
	}
	return Range{Start: start, End: end}, true
}

// IntersectionErr is Intersection with ErrNoOverlap for disjoint ranges.
func (r Range) IntersectionErr(other Range) (Range, error) {
	i, ok := r.Intersection(other)
	if !ok {
		return Range{}, ErrNoOverlap
	}
	return i, nil
}

// Merge returns the smallest range covering both ranges.
func (r Range) Merge(other Range) Range {
	return Range{Start: min(r.Start, other.Start), End: max(r.End, other.End)}
}

// Shift returns the range moved by delta.
func (r Range) Shift(delta int) Range {
	return Range{Start: r.Start + delta, End: r.End + delta}
}
