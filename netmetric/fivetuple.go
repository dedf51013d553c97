package netmetric

import (
	"gitlab.x.lan/yunshan/flowspace/interval"
	"gitlab.x.lan/yunshan/flowspace/region"
)

// FiveTuple builds the rank-5 region (source address, source port,
// destination address, destination port, protocol) that this package's
// dimension types are meant to back, matching the 5-tuple flow key
// described at the top of the specification this engine implements.
func FiveTuple(srcAddr, srcPort, dstAddr, dstPort, protocol interval.Interval) region.Region {
	return region.Region{srcAddr, srcPort, dstAddr, dstPort, protocol}
}

// AddressRange builds the closed address interval [lo, hi].
func AddressRange(lo, hi IPv4) interval.Interval {
	return interval.New(lo, hi)
}

// PortRange builds the closed port interval [lo, hi].
func PortRange(lo, hi Port) interval.Interval {
	return interval.New(lo, hi)
}

// ProtocolSingle builds the singleton interval matching exactly one IP
// protocol number.
func ProtocolSingle(p Protocol) interval.Interval {
	return interval.Single(p)
}
