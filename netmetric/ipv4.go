// Package netmetric supplies metric.Metric implementations for the
// dimensions a 5-tuple flow index is actually built from: IPv4 addresses,
// L4 ports, and IP protocol numbers. It is a consumer of the flowspace
// engine, not part of it, the same relationship datatype.Cidr and
// policy.portSegment have to the policy engine they feed in
// gitlab.x.lan/yunshan/droplet-libs.
package netmetric

import (
	"encoding/binary"
	"fmt"
	"net"

	"gitlab.x.lan/yunshan/flowspace/metric"
)

// IPv4 is a metric.Metric over 32-bit IPv4 addresses, represented as a
// plain uint32 in host order the way datatype.Cidr stores net.IPNet but
// flattened for the comparisons flowspace needs.
type IPv4 uint32

// ParseV4 parses a dotted-quad address into an IPv4 metric value.
func ParseV4(s string) (IPv4, error) {
	ip := net.ParseIP(s)
	if ip == nil {
		return 0, fmt.Errorf("netmetric: invalid IPv4 address %q", s)
	}
	v4 := ip.To4()
	if v4 == nil {
		return 0, fmt.Errorf("netmetric: %q is not an IPv4 address", s)
	}
	return IPv4(binary.BigEndian.Uint32(v4)), nil
}

func (a IPv4) Less(other metric.Metric) bool  { return a < other.(IPv4) }
func (a IPv4) Equal(other metric.Metric) bool { return a == other.(IPv4) }

func (a IPv4) Next() metric.Metric {
	if a == IPv4(0xffffffff) {
		return a
	}
	return a + 1
}

func (a IPv4) Prev() metric.Metric {
	if a == 0 {
		return a
	}
	return a - 1
}

func (a IPv4) Min() metric.Metric { return IPv4(0) }
func (a IPv4) Max() metric.Metric { return IPv4(0xffffffff) }

func (a IPv4) String() string {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], uint32(a))
	return net.IP(b[:]).String()
}
