// Package flowspace implements the layered, augmented red-black tree that
// backs a Space: one Layer per dimension, an outer node per distinct left
// endpoint in that dimension, and a sorted run of right endpoints (the
// "maxima") hanging off each outer node. The tree mechanics here are a
// direct port of imp::node_base from
// _examples/original_source/include/flowspace/flowspace-node.h and
// _examples/original_source/src/flowspace-layer.cpp; the per-node payload
// and hull augmentation follow the node struct in
// _examples/original_source/include/flowspace/flowspace-layer.h.
package flowspace

import (
	"gitlab.x.lan/yunshan/flowspace/interval"
	"gitlab.x.lan/yunshan/flowspace/metric"
)

type color int8

const (
	black color = iota
	red
)

type direction int8

const (
	dirNone direction = iota
	dirLeft
	dirRight
)

func flip(d direction) direction {
	switch d {
	case dirLeft:
		return dirRight
	case dirRight:
		return dirLeft
	default:
		return dirNone
	}
}

// entry is one right endpoint stored under an outer node: for a leaf Layer,
// value is the caller's payload; for an upper Layer, value is the nested
// *Layer for the remaining dimensions.
type entry struct {
	right metric.Metric
	value interface{}
}

// node is an outer red-black tree node, keyed by the minimum (left
// endpoint) shared by every interval recorded in maxima.
type node struct {
	color               color
	left, right, parent *node
	next                *node // threaded in-order successor

	metric metric.Metric
	maxima []entry
	hull   interval.Interval // tree_interval: hull of this node and its subtree
}

func newNode(m metric.Metric) *node {
	return &node{color: red, metric: m}
}

func isRed(n *node) bool {
	return n != nil && n.color == red
}

// localInterval is the hull of just this node's own entries. maxima must be
// non-empty; a node with no entries is never left in the tree.
func (n *node) localInterval() interval.Interval {
	return interval.New(n.metric, n.maxima[len(n.maxima)-1].right)
}

func (n *node) intersectsLocal(iv interval.Interval) bool {
	return iv.Intersects(n.localInterval())
}

func (n *node) intersectsTree(iv interval.Interval) bool {
	return iv.Intersects(n.hull)
}

// structureFixup recomputes this node's subtree hull from its own entries
// and its children's cached hulls. It is the Go analog of node::structure_fixup.
func (n *node) structureFixup() {
	h := n.localInterval()
	if n.left != nil {
		h = h.Hull(n.left.hull)
	}
	if n.right != nil {
		h = h.Hull(n.right.hull)
	}
	n.hull = h
}

// rippleStructureFixup refreshes structural caches from n up to the root,
// returning the root. Every rotation invalidates ancestors' hulls, so this
// runs after any tree-shape change.
func (n *node) rippleStructureFixup() *node {
	root := n
	for p := n; p != nil; p = p.parent {
		p.structureFixup()
		root = p
	}
	return root
}

func (n *node) childDirection(c *node) direction {
	switch {
	case n.left == c:
		return dirLeft
	case n.right == c:
		return dirRight
	default:
		return dirNone
	}
}

func (n *node) child(d direction) *node {
	switch d {
	case dirLeft:
		return n.left
	case dirRight:
		return n.right
	default:
		return nil
	}
}

func (n *node) setChild(c *node, d direction) *node {
	if c != nil {
		c.parent = n
	}
	switch d {
	case dirLeft:
		n.left = c
	case dirRight:
		n.right = c
	}
	return c
}

func (n *node) clearChild(d direction) {
	switch d {
	case dirLeft:
		n.left = nil
	case dirRight:
		n.right = nil
	}
}

func (n *node) leftmostDescendant() *node {
	m := n
	for m.left != nil {
		m = m.left
	}
	return m
}

func (n *node) rightmostDescendant() *node {
	m := n
	for m.right != nil {
		m = m.right
	}
	return m
}

// rotate performs a single tree rotation in direction d, returning the node
// now at the top of the rotated subtree (n itself if d was not actionable).
func (n *node) rotate(d direction) *node {
	parent := n.parent
	top := n
	var parentDir direction
	if parent != nil {
		parentDir = parent.childDirection(n)
	}
	other := flip(d)
	if c := n.child(other); c != nil {
		top = c
		n.clearChild(other)
		n.setChild(top.child(d), other)
		top.clearChild(d)
		top.setChild(n, d)
		top.structureFixup()
		n.structureFixup()
		if parent != nil {
			parent.clearChild(parentDir)
			parent.setChild(top, parentDir)
		} else {
			top.parent = nil
		}
	}
	return top
}

// getPrev returns the in-order predecessor, found structurally rather than
// via the next thread (used to verify the thread and to retarget it during
// insert/remove).
func (n *node) getPrev() *node {
	if n.left != nil {
		return n.left.rightmostDescendant()
	}
	c := n
	p := n.parent
	for p != nil && p.childDirection(c) != dirRight {
		c = p
		p = p.parent
	}
	return p
}

// insertChild attaches child below n in direction d, splices the next
// thread, and rebalances. It returns the new root of the whole tree.
func (n *node) insertChild(child *node, d direction) *node {
	n.setChild(child, d)
	switch d {
	case dirRight:
		child.next = n.next
		n.next = child
	case dirLeft:
		child.next = n
		p := n.parent
		for p != nil && p.next != n {
			p = p.parent
		}
		if p != nil {
			p.next = child
		}
	}
	return child.rebalanceAfterInsert()
}

// rebalanceAfterInsert restores the red-black invariants after n (red, just
// inserted) was attached to the tree, returning the new root.
func (n *node) rebalanceAfterInsert() *node {
	x := n
	for x.parent != nil && x.parent.color == red {
		gp := x.parent.parent
		if gp == nil {
			break
		}
		childDir := gp.childDirection(x.parent)
		otherDir := flip(childDir)
		y := gp.child(otherDir)
		if isRed(y) {
			x.parent.color = black
			y.color = black
			x = gp
			x.color = red
		} else {
			if x.parent.child(otherDir) == x {
				x = x.parent
				x.rotate(childDir)
			}
			x.parent.color = black
			x.parent.parent.color = red
			x.parent.parent.rotate(otherDir)
		}
	}
	root := n.rippleStructureFixup()
	root.color = black
	return root
}

// replaceWith splices other into the tree in place of n, moving n's parent
// and child links over. Used by remove when physically detaching a node
// that isn't the logical target of removal.
func (n *node) replaceWith(other *node) {
	other.color = n.color
	if n.parent != nil {
		d := n.parent.childDirection(n)
		n.parent.clearChild(d)
		if n.parent != other {
			n.parent.setChild(other, d)
		}
	} else {
		other.parent = nil
	}
	left, right := n.left, n.right
	other.left, other.right = nil, nil
	if left != other {
		other.setChild(left, dirLeft)
	}
	if right != other {
		other.setChild(right, dirRight)
	}
	n.left, n.right = nil, nil
}

// remove detaches n from the tree, rebalances, and returns the new root of
// the whole tree (nil if the tree is now empty).
func (n *node) remove() *node {
	if prev := n.getPrev(); prev != nil {
		prev.next = n.next
	}

	if n.parent == nil && !(n.left != nil && n.right != nil) {
		if n.left != nil {
			n.left.parent = nil
			n.left.color = black
			return n.left
		}
		if n.right != nil {
			n.right.parent = nil
			n.right.color = black
			return n.right
		}
		return nil
	}

	removeNode := n
	if n.left != nil && n.right != nil {
		removeNode = n.next
	}
	removeColor := removeNode.color
	var d direction
	splice := removeNode.left
	if splice == nil {
		splice = removeNode.right
	}

	if splice != nil {
		removeColor = splice.color
		removeNode.replaceWith(splice)
	} else {
		splice = removeNode.parent
		d = splice.childDirection(removeNode)
		splice.clearChild(d)
	}

	if removeNode != n {
		if splice == n {
			splice = removeNode
		}
		n.replaceWith(removeNode)
	}

	root := splice.rebalanceAfterRemove(removeColor, d)
	root.color = black
	return root
}

// rebalanceAfterRemove restores the red-black invariants after a node of
// color c was spliced out of the tree in direction d from n (d is dirNone
// unless the physically removed node had no children, in which case n is
// the former parent and d names the vacated side).
func (n *node) rebalanceAfterRemove(c color, d direction) *node {
	if c == black {
		x := n
		parent := x.parent
		if d != dirNone {
			parent = x
			x = nil
		}
		for parent != nil {
			if isRed(x) {
				x.color = black
				break
			}
			near, far := dirLeft, dirRight
			if (d == dirNone && parent.childDirection(x) == dirRight) || d == dirRight {
				near, far = dirRight, dirLeft
			}
			w := parent.child(far)
			if isRed(w) {
				w.color = black
				parent.color = red
				parent.rotate(near)
				w = parent.child(far)
			}
			if !isRed(w.child(near)) && !isRed(w.child(far)) {
				w.color = red
				x = parent
				parent = x.parent
				d = dirNone
			} else {
				if !isRed(w.child(far)) {
					w.child(near).color = black
					w.color = red
					w.rotate(far)
					w = parent.child(far)
				}
				w.color = parent.color
				parent.color = black
				w.child(far).color = black
				parent.rotate(near)
				break
			}
		}
	}
	return n.rippleStructureFixup()
}
