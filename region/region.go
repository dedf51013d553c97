// Package region implements axis-aligned hyper-rectangles — ordered tuples
// of interval.Interval, one per flowspace dimension. Go has no variadic
// heterogeneous tuple, so a Region plays the role of the cons-list the
// original ngeo::flowspace::layer builds from boost::tuple: Head/Tail stand
// in for the cons cell's .head/.tail member access.
package region

import (
	"strings"

	"gitlab.x.lan/yunshan/flowspace/interval"
)

// Region is a rank-N ordered tuple of intervals, one per dimension.
type Region []interval.Interval

// Head returns the first dimension's interval. Panics if r is rank 0.
func (r Region) Head() interval.Interval {
	return r[0]
}

// Tail returns the region with the first dimension dropped, i.e. the
// remaining N-1 dimensions.
func (r Region) Tail() Region {
	return r[1:]
}

// Rank returns the number of dimensions in the region.
func (r Region) Rank() int {
	return len(r)
}

// IsEmpty reports whether any component interval is empty.
func (r Region) IsEmpty() bool {
	for _, iv := range r {
		if iv.IsEmpty() {
			return true
		}
	}
	return false
}

// Intersects reports whether r and o intersect in every dimension. The two
// regions must have equal rank.
func (r Region) Intersects(o Region) bool {
	for k := range r {
		if !r[k].Intersects(o[k]) {
			return false
		}
	}
	return true
}

// Contains reports whether o is a subset of r in every dimension.
func (r Region) Contains(o Region) bool {
	for k := range r {
		if !r[k].Contains(o[k]) {
			return false
		}
	}
	return true
}

// Clone returns an independent copy of the region's interval slice.
func (r Region) Clone() Region {
	out := make(Region, len(r))
	copy(out, r)
	return out
}

// String renders the region as its per-dimension intervals joined by "x",
// e.g. "10..20 x 0..65535".
func (r Region) String() string {
	parts := make([]string, len(r))
	for k, iv := range r {
		parts[k] = iv.String()
	}
	return strings.Join(parts, " x ")
}
