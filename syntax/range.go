package syntax

import "fmt"

// Range is a half-open byte range [Start, End) on the original source.
// Both endpoints must lie on UTF-8 code-point boundaries (§3.1).
type Range struct {
	Start, End int
}

func (r Range) Len() int { return r.End - r.Start }

// Contains reports whether other lies entirely within r.
func (r Range) Contains(other Range) bool {
	return r.Start <= other.Start && other.End <= r.End
}

// ContainsOffset reports whether offset lies within [Start, End).
// The empty range never contains any offset.
func (r Range) ContainsOffset(offset int) bool {
	return r.Start <= offset && offset < r.End
}

func (r Range) String() string {
	return fmt.Sprintf("%d..%d", r.Start, r.End)
}
