package flowspace

import "gitlab.x.lan/yunshan/flowspace/region"

// Iterator is the client-facing forward iterator over a query against a
// Layer, playing the same role as ngeo::flowspace::layer::iterator but
// without the reference-splicing tricks boost::tuple needed: a Region is an
// ordinary Go slice, so Region() can just build and return one.
//
// The zero Iterator is valid to use and reports !Valid().
type Iterator struct {
	region region.Region
	cur    *cursor
}

// Begin returns an iterator over every region stored in l, in ascending
// lexicographic order across dimensions.
func (l *Layer) Begin() Iterator {
	return l.BeginQuery(l.allRegion())
}

// BeginQuery returns an iterator over every stored region intersecting r,
// in ascending lexicographic order. An r whose rank doesn't match l's, or
// that is empty in some dimension, yields an iterator reporting !Valid().
func (l *Layer) BeginQuery(r region.Region) Iterator {
	it := Iterator{region: r}
	if r.Rank() != l.rank || r.IsEmpty() {
		return it
	}
	it.cur = l.beginQueryCursor(r)
	return it
}

// Valid reports whether the iterator currently refers to an element.
func (it Iterator) Valid() bool {
	return it.cur != nil && it.cur.valid()
}

// Next advances the iterator to the next intersecting element. Calling
// Next on an exhausted iterator is a no-op.
func (it *Iterator) Next() {
	if it.Valid() {
		it.cur.next(it.region)
	}
}

// Region returns the stored region at the iterator's current position. It
// returns nil if the iterator is not valid.
func (it Iterator) Region() region.Region {
	if !it.Valid() {
		return nil
	}
	return it.cur.region()
}

// Value returns the payload at the iterator's current position, or nil if
// the iterator is not valid.
func (it Iterator) Value() interface{} {
	if !it.Valid() {
		return nil
	}
	return *it.cur.valuePtr()
}

// SetValue replaces the payload at the iterator's current position. It is
// a no-op on an invalid iterator.
func (it Iterator) SetValue(v interface{}) {
	if it.Valid() {
		*it.cur.valuePtr() = v
	}
}

// Erase removes the element the iterator currently refers to, operating
// directly on the cursor's held position rather than re-deriving it by
// region and payload — the only way to remove one specific occurrence out
// of several identical (region, payload) duplicates at a leaf. It reports
// whether an element was removed, and always leaves the iterator !Valid()
// afterward; other iterators positioned over the same layer are unaffected
// in existence but may now refer to stale tree state, matching spot-erase
// semantics.
func (it *Iterator) Erase() bool {
	if !it.Valid() {
		return false
	}
	it.cur.layer.eraseAt(it.cur)
	it.cur = nil
	return true
}
