package metric

import "math"

// Int is a Metric over the full range of int64. It exists mainly so the
// engine's own tests and examples have a metric type that needs no domain
// knowledge to construct.
type Int int64

const (
	intMin = Int(math.MinInt64)
	intMax = Int(math.MaxInt64)
)

func (i Int) Less(other Metric) bool  { return i < other.(Int) }
func (i Int) Equal(other Metric) bool { return i == other.(Int) }

func (i Int) Next() Metric {
	if i == intMax {
		return i
	}
	return i + 1
}

func (i Int) Prev() Metric {
	if i == intMin {
		return i
	}
	return i - 1
}

func (i Int) Min() Metric { return intMin }
func (i Int) Max() Metric { return intMax }
