package netmetric

import (
	"fmt"

	"gitlab.x.lan/yunshan/flowspace/metric"
)

// Port is a metric.Metric over the 16-bit L4 port space, the same domain
// policy.portSegment works over when it decomposes a port range into
// power-of-two-aligned segments for its own index.
type Port uint16

// ParsePort parses a decimal port number in [0, 65535].
func ParsePort(s string) (Port, error) {
	var v uint16
	if _, err := fmt.Sscanf(s, "%d", &v); err != nil {
		return 0, fmt.Errorf("netmetric: invalid port %q: %w", s, err)
	}
	return Port(v), nil
}

func (p Port) Less(other metric.Metric) bool  { return p < other.(Port) }
func (p Port) Equal(other metric.Metric) bool { return p == other.(Port) }

func (p Port) Next() metric.Metric {
	if p == Port(0xffff) {
		return p
	}
	return p + 1
}

func (p Port) Prev() metric.Metric {
	if p == 0 {
		return p
	}
	return p - 1
}

func (p Port) Min() metric.Metric { return Port(0) }
func (p Port) Max() metric.Metric { return Port(0xffff) }

func (p Port) String() string { return fmt.Sprintf("%d", uint16(p)) }
