package flowspace

import (
	"sort"

	"gitlab.x.lan/yunshan/flowspace/metric"
)

// lowerBound returns the index of the first entry whose right endpoint is
// not less than key, i.e. entries[:idx] all have right < key. maxima is
// always kept sorted ascending by right, so this is a straight binary
// search standing in for inner_set::lower_bound.
func lowerBound(entries []entry, key metric.Metric) int {
	return sort.Search(len(entries), func(i int) bool {
		return !entries[i].right.Less(key)
	})
}

// upperBound returns the index of the first entry whose right endpoint is
// strictly greater than key, standing in for inner_set::upper_bound.
func upperBound(entries []entry, key metric.Metric) int {
	return sort.Search(len(entries), func(i int) bool {
		return key.Less(entries[i].right)
	})
}

func insertAt(entries []entry, idx int, e entry) []entry {
	entries = append(entries, entry{})
	copy(entries[idx+1:], entries[idx:len(entries)-1])
	entries[idx] = e
	return entries
}

func removeAt(entries []entry, idx int) []entry {
	return append(entries[:idx], entries[idx+1:]...)
}

// appendEntry inserts a new (right, value) pair into a leaf node's maxima,
// which behaves as a multimap: entries with equal right endpoints may
// repeat, one per insertion (even with an equal payload), in insertion
// order. This mirrors bottom_inner_tree_inserter.
func appendEntry(entries []entry, right metric.Metric, value interface{}) []entry {
	idx := upperBound(entries, right)
	return insertAt(entries, idx, entry{right: right, value: value})
}

// findOrCreateUpper locates the unique entry keyed by right in an upper
// node's maxima, creating an empty slot for it if absent. It mirrors
// upper_inner_tree_inserter's "force inner element" step, without yet
// attaching the nested layer (the caller does that once it knows whether a
// fresh *Layer is needed).
func findOrCreateUpper(entries []entry, right metric.Metric) (int, []entry) {
	idx := lowerBound(entries, right)
	if idx < len(entries) && entries[idx].right.Equal(right) {
		return idx, entries
	}
	return idx, insertAt(entries, idx, entry{right: right})
}
