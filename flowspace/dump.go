package flowspace

import (
	"fmt"
	"io"

	"gitlab.x.lan/yunshan/flowspace/region"
)

// Dump writes one line per stored region to w, in ascending lexicographic
// order. It is a debugging aid, not part of the query API; grounded in
// node::print from flowspace-node.h, which exists for the same purpose on
// the C++ side but walks raw tree structure instead of stored regions.
func (l *Layer) Dump(w io.Writer) {
	l.Each(func(r region.Region, v interface{}) bool {
		fmt.Fprintf(w, "%s => %v\n", r, v)
		return true
	})
}
