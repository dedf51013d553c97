package flowspace

import (
	"gitlab.x.lan/yunshan/flowspace/internal/xlog"
	"gitlab.x.lan/yunshan/flowspace/interval"
	"gitlab.x.lan/yunshan/flowspace/metric"
	"gitlab.x.lan/yunshan/flowspace/region"
)

var eraseLog = xlog.WithPrefix("erase")

// Layer indexes one dimension of a flow space. A leaf Layer's maxima hold
// caller payloads directly (a multimap, so duplicate regions may coexist);
// an upper Layer's maxima hold nested *Layer instances covering the
// remaining dimensions. The original ngeo::flowspace::layer is a template
// specialized at compile time on IS_UPPER; Go has no equivalent static
// dispatch, so a single type carries the distinction as a runtime flag and
// branches on it, per the "no compile-time introspection" fallback this
// design is built from.
type Layer struct {
	isLeaf bool
	rank   int
	root   *node
}

func newLayer(rank int) *Layer {
	return &Layer{isLeaf: rank == 1, rank: rank}
}

// NewSpace builds the outermost Layer of a rank-dimensional flow space.
// Nested layers for dimensions 2..rank are created lazily, each already
// knowing its own rank, as regions are inserted.
func NewSpace(rank int) *Layer {
	if rank < 1 {
		panic("flowspace: rank must be at least 1")
	}
	return newLayer(rank)
}

// IsEmpty reports whether the layer holds no entries.
func (l *Layer) IsEmpty() bool {
	return l.root == nil
}

// Rank reports how many dimensions this layer and everything nested below
// it spans. It is fixed at construction (NewSpace for the outermost layer,
// the width of the tail region for every nested layer below it).
func (l *Layer) Rank() int {
	return l.rank
}

// search descends the outer tree looking for the node whose metric equals
// m. It returns that node and dirNone on an exact match, or the node under
// which a new node would be attached along with the attaching direction.
func (l *Layer) search(m metric.Metric) (*node, direction) {
	n := l.root
	if n == nil {
		return nil, dirNone
	}
	for {
		switch {
		case m.Less(n.metric):
			if n.left == nil {
				return n, dirLeft
			}
			n = n.left
		case n.metric.Less(m):
			if n.right == nil {
				return n, dirRight
			}
			n = n.right
		default:
			return n, dirNone
		}
	}
}

// findIntersecting locates the first outer node (in ascending metric order)
// whose local hull intersects iv, using the subtree hull augmentation to
// prune whole branches. This is imp::layer::find_intersecting translated
// from intrusive_ptr handles to plain pointers.
func (l *Layer) findIntersecting(iv interval.Interval) *node {
	var candidate *node
	n := l.root
	for n != nil {
		switch {
		case n.intersectsLocal(iv):
			candidate = n
			n = n.left
		case n.intersectsTree(iv):
			if lc := n.left; lc != nil {
				n = lc
			} else {
				n = n.right
			}
		default:
			for n != nil {
				child := n
				n = n.parent
				if n == candidate {
					return n
				}
				if n == nil {
					break
				}
				if rc := n.right; rc != nil && child != rc {
					n = rc
					break
				}
			}
		}
	}
	return candidate
}

func leftmostNode(n *node) *node {
	if n == nil {
		return nil
	}
	return n.leftmostDescendant()
}

// Insert adds payload under region r, returning false if r's rank doesn't
// match l's or r contains an empty interval in some dimension (such a
// region can never intersect anything and is rejected rather than silently
// stored). Duplicate regions are allowed: inserting the same region twice
// with different payloads (or the same payload twice) keeps both, matching
// the leaf layer's multimap semantics.
func (l *Layer) Insert(r region.Region, payload interface{}) bool {
	if r.Rank() != l.rank || r.IsEmpty() {
		return false
	}
	head := r.Head()
	if l.root == nil {
		target := newNode(head.Lo)
		l.storePayload(target, head, r.Tail(), payload)
		target.color = black
		target.structureFixup()
		l.root = target
		return true
	}
	n, d := l.search(head.Lo)
	if d == dirNone {
		l.storePayload(n, head, r.Tail(), payload)
		n.rippleStructureFixup()
		return true
	}
	target := newNode(head.Lo)
	l.storePayload(target, head, r.Tail(), payload)
	target.structureFixup()
	l.root = n.insertChild(target, d)
	return true
}

// storePayload records one region's tail under the outer node n, which has
// already been keyed by head.Lo. For a leaf layer this appends the payload
// to the multimap; for an upper layer it finds or creates the nested layer
// for head.Hi and recurses into it with the remaining dimensions.
func (l *Layer) storePayload(n *node, head interval.Interval, tail region.Region, payload interface{}) {
	if l.isLeaf {
		n.maxima = appendEntry(n.maxima, head.Hi, payload)
		return
	}
	idx, entries := findOrCreateUpper(n.maxima, head.Hi)
	n.maxima = entries
	nested, _ := n.maxima[idx].value.(*Layer)
	if nested == nil {
		nested = newLayer(len(tail))
		n.maxima[idx].value = nested
	}
	nested.Insert(tail, payload)
}

// allRegion builds the maximal region for this layer and everything nested
// below it, by reading the min/max of an arbitrary sample metric already
// in the tree. It stands in for imp::maximize_region, which relies on a
// static H::all() that Go's Metric interface has no equivalent for. An
// empty layer has no sample to read and returns nil; that's harmless since
// an empty layer has nothing to iterate over regardless of query region.
func (l *Layer) allRegion() region.Region {
	if l.root == nil {
		return nil
	}
	sample := l.root.metric
	head := interval.New(sample.Min(), sample.Max())
	if l.isLeaf {
		return region.Region{head}
	}
	nested := l.root.maxima[0].value.(*Layer)
	return append(region.Region{head}, nested.allRegion()...)
}

// All returns the universe region — every possible value of every
// dimension's metric type, not just the values currently stored — the same
// region Begin() hands to BeginQuery internally. It returns nil if l is
// empty, since an empty layer has no node to read a dimension's concrete
// metric type from.
func (l *Layer) All() region.Region {
	return l.allRegion()
}

// each walks every stored (region, payload) pair in ascending lexicographic
// order, stopping early if fn returns false. prefix carries the interval
// chosen in outer layers down to the leaf, where it is paired with the
// caller's payload.
func (l *Layer) each(prefix region.Region, fn func(region.Region, interface{}) bool) bool {
	for n := leftmostNode(l.root); n != nil; n = n.next {
		for _, e := range n.maxima {
			head := interval.New(n.metric, e.right)
			r := append(append(region.Region{}, prefix...), head)
			if l.isLeaf {
				if !fn(r, e.value) {
					return false
				}
				continue
			}
			nested := e.value.(*Layer)
			if !nested.each(r, fn) {
				return false
			}
		}
	}
	return true
}

// Each visits every stored (region, payload) pair in ascending
// lexicographic order.
func (l *Layer) Each(fn func(r region.Region, value interface{}) bool) {
	l.each(nil, fn)
}

// findCursor locates the first stored element whose region matches r
// exactly, without regard to payload. It is imp::layer::find: each layer
// confirms an exact node/endpoint match before rippling the search into the
// next dimension; at the leaf, several entries may share r's final-
// dimension endpoint (the multimap duplicate case), and the first one
// encountered is returned, matching "first match at leaf if duplicates".
func (l *Layer) findCursor(r region.Region) *cursor {
	c := &cursor{layer: l}
	if r.Rank() != l.rank {
		return c
	}
	head := r.Head()
	n, d := l.search(head.Lo)
	if n == nil || d != dirNone {
		return c
	}
	idx := lowerBound(n.maxima, head.Hi)
	if idx >= len(n.maxima) || !n.maxima[idx].right.Equal(head.Hi) {
		return c
	}
	if l.isLeaf {
		c.node, c.idx = n, idx
		return c
	}
	nested := n.maxima[idx].value.(*Layer)
	lower := nested.findCursor(r.Tail())
	if !lower.valid() {
		return c
	}
	c.node, c.idx, c.lower = n, idx, lower
	return c
}

// Find returns an iterator positioned at the first stored element whose
// region matches r exactly, or an iterator reporting !Valid() if none does.
// Calling Next on the result continues intersecting traversal from there,
// the same as any iterator returned by BeginQuery(r).
func (l *Layer) Find(r region.Region) Iterator {
	it := Iterator{region: r}
	if r.Rank() != l.rank || r.IsEmpty() {
		return it
	}
	it.cur = l.findCursor(r)
	return it
}

// exactCursor locates the single stored element matching region r and
// payload exactly, rather than any of possibly several intersecting
// elements. It is imp::layer::find generalized across nested layers: each
// layer confirms an exact node/endpoint match before rippling the search
// into the next dimension, and the leaf layer confirms payload equality
// among same-endpoint multimap entries. Payload equality uses Go's == on
// the interface value, so payload types used with exact lookup or erase
// must be comparable.
func (l *Layer) exactCursor(r region.Region, payload interface{}) *cursor {
	c := &cursor{layer: l}
	if r.Rank() != l.rank {
		return c
	}
	head := r.Head()
	n, d := l.search(head.Lo)
	if n == nil || d != dirNone {
		return c
	}
	idx := lowerBound(n.maxima, head.Hi)
	if l.isLeaf {
		for idx < len(n.maxima) && n.maxima[idx].right.Equal(head.Hi) {
			if n.maxima[idx].value == payload {
				c.node, c.idx = n, idx
				return c
			}
			idx++
		}
		return c
	}
	if idx >= len(n.maxima) || !n.maxima[idx].right.Equal(head.Hi) {
		return c
	}
	nested := n.maxima[idx].value.(*Layer)
	lower := nested.exactCursor(r.Tail(), payload)
	if !lower.valid() {
		return c
	}
	c.node, c.idx, c.lower = n, idx, lower
	return c
}

// Contains reports whether region r is stored with exactly payload.
func (l *Layer) Contains(r region.Region, payload interface{}) bool {
	return l.exactCursor(r, payload).valid()
}

// Erase removes the stored element matching region r and payload exactly,
// reporting whether a matching element was found. Removing the last entry
// under an outer node removes the node itself; for upper layers, removing
// the last entry of a nested layer removes that nested layer's entry in
// turn, cascading the same way up through every dimension.
func (l *Layer) Erase(r region.Region, payload interface{}) bool {
	c := l.exactCursor(r, payload)
	if !c.valid() {
		return false
	}
	l.eraseAt(c)
	return true
}

// eraseAt performs the cascading removal described by imp::layer::erase,
// generalized to a cursor path that may run through several nested layers.
func (l *Layer) eraseAt(c *cursor) {
	if l.isLeaf {
		c.node.maxima = removeAt(c.node.maxima, c.idx)
	} else {
		nested := c.node.maxima[c.idx].value.(*Layer)
		nested.eraseAt(c.lower)
		if !nested.IsEmpty() {
			return
		}
		c.node.maxima = removeAt(c.node.maxima, c.idx)
	}
	if len(c.node.maxima) == 0 {
		eraseLog.Debugf("removing outer node at metric %v, last entry erased", c.node.metric)
		l.root = c.node.remove()
	} else {
		c.node.rippleStructureFixup()
	}
}
