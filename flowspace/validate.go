package flowspace

import (
	"fmt"

	"gitlab.x.lan/yunshan/flowspace/internal/xlog"
)

var validateLog = xlog.WithPrefix("validate")

// validateSubtree is the Go counterpart of node_base::validate: it checks
// red-black balance, cached hull correctness, and the next thread for the
// subtree rooted at n, returning the subtree's black height. It is called
// only from Layer.Validate, never from the insert/query hot path.
func validateSubtree(n *node) (int, error) {
	if n == nil {
		return 1, nil
	}
	if len(n.maxima) == 0 {
		return 0, fmt.Errorf("flowspace: node at metric %v carries no entries", n.metric)
	}
	if n.color == red && (isRed(n.left) || isRed(n.right)) {
		return 0, fmt.Errorf("flowspace: red-red violation at metric %v", n.metric)
	}
	lh, err := validateSubtree(n.left)
	if err != nil {
		return 0, err
	}
	rh, err := validateSubtree(n.right)
	if err != nil {
		return 0, err
	}
	if lh != rh {
		return 0, fmt.Errorf("flowspace: black height mismatch at metric %v (%d left, %d right)", n.metric, lh, rh)
	}
	want := n.localInterval()
	if n.left != nil {
		want = want.Hull(n.left.hull)
	}
	if n.right != nil {
		want = want.Hull(n.right.hull)
	}
	if !want.Equal(n.hull) {
		return 0, fmt.Errorf("flowspace: cached hull %v disagrees with recomputed hull %v at metric %v", n.hull, want, n.metric)
	}
	if prev := n.getPrev(); prev != nil && prev.next != n {
		return 0, fmt.Errorf("flowspace: next thread broken ahead of metric %v", prev.metric)
	}
	ht := lh
	if n.color == black {
		ht++
	}
	return ht, nil
}

// Validate walks the whole layer, including every nested layer reachable
// from it, checking the structural invariants maintained incrementally by
// Insert and Erase. It is intended for tests and debug builds; production
// callers should not run it on a hot path, since it visits every node.
func (l *Layer) Validate() error {
	if _, err := validateSubtree(l.root); err != nil {
		validateLog.Errorf("%v", err)
		return err
	}
	if l.root != nil && l.root.color != black {
		return fmt.Errorf("flowspace: root is not black")
	}
	if l.isLeaf {
		return nil
	}
	for n := leftmostNode(l.root); n != nil; n = n.next {
		for _, e := range n.maxima {
			nested, ok := e.value.(*Layer)
			if !ok {
				return fmt.Errorf("flowspace: upper layer entry at metric %v is not a nested layer", n.metric)
			}
			if err := nested.Validate(); err != nil {
				return err
			}
		}
	}
	return nil
}
