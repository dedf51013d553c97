// Package interval implements the closed, inclusive interval algebra that
// flowspace regions are built from. It is a direct translation of
// ngeo::interval (see _examples/original_source/include/ngeo/interval.hpp)
// from template metaprogramming to an interface-typed Go value.
package interval

import (
	"fmt"

	"gitlab.x.lan/yunshan/flowspace/metric"
)

// Relation classifies how two intervals relate to each other, matching
// ngeo::interval_types::relation.
type Relation int

const (
	None Relation = iota
	Equal
	Subset
	Superset
	Overlap
	Adjacent
	AdjacentOverlap
)

func (r Relation) String() string {
	switch r {
	case Equal:
		return "equal"
	case Subset:
		return "subset"
	case Superset:
		return "superset"
	case Overlap:
		return "overlap"
	case Adjacent:
		return "adjacent"
	case AdjacentOverlap:
		return "adjacent-or-overlap"
	default:
		return "none"
	}
}

// Interval is the closed range [Lo, Hi] over a metric.Metric. A default
// Interval (zero value) is not meaningful on its own — use Empty to build a
// canonical empty interval for a given metric type.
type Interval struct {
	Lo, Hi metric.Metric
}

// New builds the closed interval [lo, hi], sorting the endpoints so the
// result is never an illegal lo > hi interval unless explicitly empty.
// This mirrors ngeo::interval's two-argument constructor, which silently
// sorts rather than rejecting the call.
func New(lo, hi metric.Metric) Interval {
	if hi.Less(lo) {
		lo, hi = hi, lo
	}
	return Interval{Lo: lo, Hi: hi}
}

// Single builds the singleton interval [v, v].
func Single(v metric.Metric) Interval {
	return Interval{Lo: v, Hi: v}
}

// Empty builds the canonical empty interval for m's metric type: Lo is the
// type's maximum and Hi is its minimum, so IsEmpty's lo > hi test holds.
func Empty(m metric.Metric) Interval {
	return Interval{Lo: m.Max(), Hi: m.Min()}
}

// All builds the interval spanning every value of m's metric type.
func All(m metric.Metric) Interval {
	return Interval{Lo: m.Min(), Hi: m.Max()}
}

// IsEmpty reports whether the interval contains no values. Canonically this
// is Lo > Hi.
func (i Interval) IsEmpty() bool {
	return i.Hi.Less(i.Lo)
}

// IsSingleton reports whether the interval contains exactly one value.
func (i Interval) IsSingleton() bool {
	return !i.IsEmpty() && i.Lo.Equal(i.Hi)
}

// Intersects reports whether there exists a value common to both intervals.
func (i Interval) Intersects(o Interval) bool {
	if i.IsEmpty() || o.IsEmpty() {
		return false
	}
	return !i.Hi.Less(o.Lo) && !o.Hi.Less(i.Lo)
}

// Intersection returns the closed interval of values common to both
// intervals, which may itself be empty.
func (i Interval) Intersection(o Interval) Interval {
	return Interval{Lo: maxMetric(i.Lo, o.Lo), Hi: minMetric(i.Hi, o.Hi)}
}

// Adjacent reports whether the two intervals are disjoint and immediately
// consecutive: i.Hi+1 == o.Lo or o.Hi+1 == i.Lo.
func (i Interval) Adjacent(o Interval) bool {
	if i.IsEmpty() || o.IsEmpty() {
		return false
	}
	if i.Hi.Less(o.Lo) {
		return i.Hi.Next().Equal(o.Lo)
	}
	if o.Hi.Less(i.Lo) {
		return o.Hi.Next().Equal(i.Lo)
	}
	return false
}

// Hull returns the smallest interval containing both i and o. An empty
// operand is absorbed without affecting the result, matching
// ngeo::interval::hull.
func (i Interval) Hull(o Interval) Interval {
	if i.IsEmpty() {
		return o
	}
	if o.IsEmpty() {
		return i
	}
	return Interval{Lo: minMetric(i.Lo, o.Lo), Hi: maxMetric(i.Hi, o.Hi)}
}

// Contains reports whether o is a subset of i (o ⊆ i).
func (i Interval) Contains(o Interval) bool {
	if o.IsEmpty() {
		return true
	}
	if i.IsEmpty() {
		return false
	}
	return !o.Lo.Less(i.Lo) && !i.Hi.Less(o.Hi)
}

// Equal reports whether i and o have the same endpoints, treating all
// empty intervals as equal to each other regardless of their canonical
// endpoints.
func (i Interval) Equal(o Interval) bool {
	if i.IsEmpty() || o.IsEmpty() {
		return i.IsEmpty() == o.IsEmpty()
	}
	return i.Lo.Equal(o.Lo) && i.Hi.Equal(o.Hi)
}

// Relationship classifies how i relates to o, matching
// ngeo::interval::relationship.
func (i Interval) Relationship(o Interval) Relation {
	if i.Intersects(o) {
		switch {
		case i.Equal(o):
			return Equal
		case o.Contains(i):
			return Subset
		case i.Contains(o):
			return Superset
		default:
			return Overlap
		}
	}
	if i.Adjacent(o) {
		return Adjacent
	}
	return None
}

// String renders the interval as "lo..hi", or "*..*" if empty, matching
// ngeo::interval's stream operator.
func (i Interval) String() string {
	if i.IsEmpty() {
		return "*..*"
	}
	return fmt.Sprintf("%v..%v", i.Lo, i.Hi)
}

func maxMetric(a, b metric.Metric) metric.Metric {
	if a.Less(b) {
		return b
	}
	return a
}

func minMetric(a, b metric.Metric) metric.Metric {
	if a.Less(b) {
		return a
	}
	return b
}
