package netmetric

import (
	"fmt"

	"gitlab.x.lan/yunshan/flowspace/metric"
)

// Protocol is a metric.Metric over the 8-bit IP protocol number space
// (IANA protocol numbers: 6 = TCP, 17 = UDP, and so on).
type Protocol uint8

func (p Protocol) Less(other metric.Metric) bool  { return p < other.(Protocol) }
func (p Protocol) Equal(other metric.Metric) bool { return p == other.(Protocol) }

func (p Protocol) Next() metric.Metric {
	if p == Protocol(0xff) {
		return p
	}
	return p + 1
}

func (p Protocol) Prev() metric.Metric {
	if p == 0 {
		return p
	}
	return p - 1
}

func (p Protocol) Min() metric.Metric { return Protocol(0) }
func (p Protocol) Max() metric.Metric { return Protocol(0xff) }

func (p Protocol) String() string { return fmt.Sprintf("%d", uint8(p)) }
