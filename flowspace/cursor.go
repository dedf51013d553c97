package flowspace

import (
	"gitlab.x.lan/yunshan/flowspace/interval"
	"gitlab.x.lan/yunshan/flowspace/region"
)

// cursor is the internal walk state for a region-intersection query over
// one layer. It plays the role of cursor_base/bottom_cursor_variant/
// upper_cursor_variant from flowspace-layer.h, collapsed into one type that
// branches on layer.isLeaf instead of being chosen by template
// specialization. lower is nil for a leaf layer's cursor and non-nil (once
// positioned) for an upper layer's.
type cursor struct {
	layer *Layer
	node  *node
	idx   int
	lower *cursor
}

func (c *cursor) valid() bool {
	return c.node != nil && c.idx < len(c.node.maxima)
}

func (c *cursor) entry() *entry {
	return &c.node.maxima[c.idx]
}

// head is the interval this cursor currently refers to in its own layer's
// dimension.
func (c *cursor) head() interval.Interval {
	return interval.New(c.node.metric, c.entry().right)
}

// scanOuter advances along the outer node's next thread until it finds a
// node whose local hull intersects head, or runs out of candidates. This is
// cursor_base::scan's outer-tree walk, starting from the node just past n.
func scanOuter(n *node, head interval.Interval) *node {
	n = n.next
	for n != nil && !n.intersectsLocal(head) {
		if head.Hi.Less(n.metric) {
			return nil
		}
		if !n.intersectsTree(head) {
			n = n.rightmostDescendant()
		}
		n = n.next
	}
	return n
}

// scan advances c to the next outer node intersecting r's head interval,
// positioning idx at the first entry that could intersect it. It reports
// whether a candidate node was found.
func (c *cursor) scan(r region.Region) bool {
	head := r.Head()
	c.node = scanOuter(c.node, head)
	if c.node == nil {
		c.idx = 0
		return false
	}
	c.idx = lowerBound(c.node.maxima, head.Lo)
	return true
}

// fillLower builds the nested layer's cursor for the remaining dimensions,
// once c is known to be positioned at a valid entry.
func (c *cursor) fillLower(r region.Region) {
	nested := c.entry().value.(*Layer)
	c.lower = nested.beginQueryCursor(r.Tail())
}

// validateForward is the shared core of bottom_cursor_variant and
// upper_cursor_variant's method of the same name: make the cursor valid by
// advancing if necessary, reporting success or exhaustion.
func (c *cursor) validateForward(r region.Region) bool {
	if c.layer.isLeaf {
		if c.valid() || c.scan(r) {
			return true
		}
		return false
	}
	for c.node != nil && !(c.lower != nil && c.lower.valid()) {
		doFill := false
		if c.valid() {
			c.idx++
			doFill = c.valid()
		} else {
			doFill = c.scan(r)
		}
		if doFill {
			c.fillLower(r)
		}
	}
	return c.valid()
}

// next advances the cursor to the next element intersecting r, the same
// query region that positioned it.
func (c *cursor) next(r region.Region) {
	if !c.valid() {
		return
	}
	if c.layer.isLeaf {
		c.idx++
	} else {
		c.lower.next(r.Tail())
	}
	c.validateForward(r)
}

// region reconstructs the full stored region this cursor currently refers
// to, one interval per dimension from this layer down to the leaf.
func (c *cursor) region() region.Region {
	head := c.head()
	if c.layer.isLeaf {
		return region.Region{head}
	}
	return append(region.Region{head}, c.lower.region()...)
}

// valuePtr returns a pointer to the stored payload, following lower
// cursors down to the leaf layer that actually owns it. The pointer is
// valid only until the next structural change to the tree (insert, erase,
// or rebalance), matching the lifetime of the original's payload_ptr.
func (c *cursor) valuePtr() *interface{} {
	if c.layer.isLeaf {
		return &c.entry().value
	}
	return c.lower.valuePtr()
}

// beginQueryCursor builds a cursor positioned at the first element of l
// that intersects r, or an invalid (node == nil) cursor if none does.
func (l *Layer) beginQueryCursor(r region.Region) *cursor {
	c := &cursor{layer: l}
	n := l.findIntersecting(r.Head())
	if n == nil {
		return c
	}
	c.node = n
	c.idx = lowerBound(n.maxima, r.Head().Lo)
	if !l.isLeaf && c.valid() {
		c.fillLower(r)
	}
	c.validateForward(r)
	return c
}
