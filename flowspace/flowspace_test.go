package flowspace

import (
	"strings"
	"testing"

	"gitlab.x.lan/yunshan/flowspace/interval"
	"gitlab.x.lan/yunshan/flowspace/metric"
	"gitlab.x.lan/yunshan/flowspace/region"
)

func iv(lo, hi int64) interval.Interval {
	return interval.New(metric.Int(lo), metric.Int(hi))
}

func r1(lo, hi int64) region.Region {
	return region.Region{iv(lo, hi)}
}

func r2(lo0, hi0, lo1, hi1 int64) region.Region {
	return region.Region{iv(lo0, hi0), iv(lo1, hi1)}
}

func collect(it Iterator) []string {
	var got []string
	for ; it.Valid(); it.Next() {
		got = append(got, it.Value().(string))
	}
	return got
}

func assertValues(t *testing.T, got []string, want ...string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

// S1 (1-D basic).
func TestS1OneDimensionalBasic(t *testing.T) {
	l := NewSpace(1)
	l.Insert(r1(10, 20), "A")
	l.Insert(r1(15, 25), "B")
	l.Insert(r1(30, 40), "C")

	if err := l.Validate(); err != nil {
		t.Fatalf("validate after inserts: %v", err)
	}

	assertValues(t, collect(l.BeginQuery(r1(18, 32))), "A", "B", "C")
	assertValues(t, collect(l.BeginQuery(r1(26, 29))))
}

// S2 (2-D intersection).
func TestS2TwoDimensionalIntersection(t *testing.T) {
	l := NewSpace(2)
	l.Insert(r2(0, 10, 0, 10), "X")
	l.Insert(r2(5, 15, 5, 15), "Y")
	l.Insert(r2(20, 30, 20, 30), "Z")

	if err := l.Validate(); err != nil {
		t.Fatalf("validate after inserts: %v", err)
	}

	assertValues(t, collect(l.BeginQuery(r2(0, 100, 12, 18))), "Y")
	assertValues(t, collect(l.BeginQuery(r2(8, 22, 8, 22))), "X", "Y", "Z")
}

// S3 (singletons and adjacency).
func TestS3SingletonsAndAdjacency(t *testing.T) {
	l := NewSpace(1)
	l.Insert(r1(5, 5), "a")
	l.Insert(r1(6, 6), "b")

	assertValues(t, collect(l.BeginQuery(r1(5, 6))), "a", "b")
	assertValues(t, collect(l.BeginQuery(r1(7, 7))))

	if !iv(5, 5).Adjacent(iv(6, 6)) {
		t.Fatalf("expected [5,5] and [6,6] to be adjacent")
	}
}

// S4 (duplicate regions at leaf).
func TestS4DuplicateRegionsAtLeaf(t *testing.T) {
	l := NewSpace(1)
	l.Insert(r1(1, 1), "p")
	l.Insert(r1(1, 1), "q")

	assertValues(t, collect(l.Begin()), "p", "q")

	if !l.Contains(r1(1, 1), "p") {
		t.Fatalf("expected to find (1,1,p)")
	}
	if !l.Erase(r1(1, 1), "p") {
		t.Fatalf("expected erase of (1,1,p) to succeed")
	}
	assertValues(t, collect(l.Begin()), "q")
	if err := l.Validate(); err != nil {
		t.Fatalf("validate after partial erase: %v", err)
	}
}

// S5 (erase cascading to outer removal).
func TestS5EraseCascadesToOuterRemoval(t *testing.T) {
	l := NewSpace(2)
	l.Insert(r2(0, 0, 0, 0), "v")

	if l.IsEmpty() {
		t.Fatalf("expected non-empty after insert")
	}
	if !l.Erase(r2(0, 0, 0, 0), "v") {
		t.Fatalf("expected erase to succeed")
	}
	if !l.IsEmpty() {
		t.Fatalf("expected empty after erase")
	}
	if err := l.Validate(); err != nil {
		t.Fatalf("validate after erase-to-empty: %v", err)
	}
}

// S6 (boundary extrema).
func TestS6BoundaryExtrema(t *testing.T) {
	l := NewSpace(1)
	l.Insert(r1(0, 255), "full")

	assertValues(t, collect(l.BeginQuery(r1(128, 128))), "full")

	l.Insert(r1(0, 0), "lo")
	assertValues(t, collect(l.BeginQuery(r1(0, 0))), "lo", "full")

	if err := l.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
}

// Property 6: insert/erase round trip leaves the structure empty.
func TestInsertEraseRoundTrip(t *testing.T) {
	l := NewSpace(2)
	regions := []region.Region{
		r2(0, 10, 0, 10),
		r2(5, 15, 20, 25),
		r2(100, 200, 100, 200),
	}
	for i, reg := range regions {
		if !l.Insert(reg, i) {
			t.Fatalf("insert %d failed", i)
		}
	}
	if err := l.Validate(); err != nil {
		t.Fatalf("validate after inserts: %v", err)
	}
	for i, reg := range regions {
		if !l.Erase(reg, i) {
			t.Fatalf("erase %d failed", i)
		}
	}
	if !l.IsEmpty() {
		t.Fatalf("expected empty after erasing every inserted region")
	}
	if err := l.Validate(); err != nil {
		t.Fatalf("validate after erasing everything: %v", err)
	}
}

// Insert of an empty region is rejected, per the domain error in §7.
func TestInsertEmptyRegionRejected(t *testing.T) {
	l := NewSpace(1)
	if l.Insert(region.Region{interval.Empty(metric.Int(0))}, "x") {
		t.Fatalf("expected insert of an empty region to be rejected")
	}
	if !l.IsEmpty() {
		t.Fatalf("expected layer to remain empty")
	}
}

// Querying with an empty query region returns an immediately-exhausted
// iterator rather than panicking or matching everything.
func TestQueryWithEmptyRegionIsExhausted(t *testing.T) {
	l := NewSpace(1)
	l.Insert(r1(0, 10), "x")
	it := l.BeginQuery(region.Region{interval.Empty(metric.Int(0))})
	if it.Valid() {
		t.Fatalf("expected an empty query region to yield no results")
	}
}

// Property 5, exercised directly: next-link traversal from the leftmost
// node visits every outer node exactly once, in order.
func TestNextLinkVisitsEveryNodeInOrder(t *testing.T) {
	l := NewSpace(1)
	lefts := []int64{50, 10, 30, 90, 20}
	for _, v := range lefts {
		l.Insert(r1(v, v+1), v)
	}
	var seen []int64
	for n := leftmostNode(l.root); n != nil; n = n.next {
		seen = append(seen, int64(n.metric.(metric.Int)))
	}
	want := []int64{10, 20, 30, 50, 90}
	if len(seen) != len(want) {
		t.Fatalf("got %v, want %v", seen, want)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Fatalf("got %v, want %v", seen, want)
		}
	}
}

func TestManyInsertsStayBalanced(t *testing.T) {
	l := NewSpace(1)
	for i := int64(0); i < 500; i++ {
		v := (i * 37) % 500
		l.Insert(r1(v, v), i)
	}
	if err := l.Validate(); err != nil {
		t.Fatalf("validate after bulk insert: %v", err)
	}
}

// Erasing a specific occurrence among duplicate (region, payload) entries
// requires the iterator form of erase: Layer.Erase(region, payload) always
// re-derives the *first* matching entry, so it cannot target the second
// "p" on its own.
func TestIteratorEraseTargetsExactOccurrenceAmongDuplicates(t *testing.T) {
	l := NewSpace(1)
	l.Insert(r1(1, 1), "p")
	l.Insert(r1(1, 1), "p")

	it := l.Begin()
	if !it.Valid() {
		t.Fatalf("expected at least one stored entry")
	}
	it.Next()
	if !it.Valid() {
		t.Fatalf("expected a second duplicate entry")
	}
	if !it.Erase() {
		t.Fatalf("expected Erase to succeed on a valid iterator")
	}
	if it.Valid() {
		t.Fatalf("expected the iterator to be invalid after Erase")
	}

	assertValues(t, collect(l.Begin()), "p")
	if err := l.Validate(); err != nil {
		t.Fatalf("validate after targeted erase: %v", err)
	}
}

// Erase on an already-invalid iterator is a no-op reporting false, per §7's
// "erasing through an already-invalidated iterator" domain error.
func TestIteratorEraseOnInvalidIteratorFails(t *testing.T) {
	l := NewSpace(1)
	it := l.Begin()
	if it.Erase() {
		t.Fatalf("expected Erase on an empty, already-invalid iterator to fail")
	}
}

func TestFindExactMatch(t *testing.T) {
	l := NewSpace(2)
	l.Insert(r2(0, 10, 0, 10), "X")
	l.Insert(r2(5, 15, 5, 15), "Y")

	it := l.Find(r2(5, 15, 5, 15))
	if !it.Valid() {
		t.Fatalf("expected an exact match for the stored region")
	}
	if it.Value().(string) != "Y" {
		t.Fatalf("got %v, want Y", it.Value())
	}

	if l.Find(r2(0, 0, 0, 0)).Valid() {
		t.Fatalf("expected no match for an unstored region")
	}
}

// Find returns the first leaf entry when several payloads share a region,
// and the iterator it returns can still be walked and erased like any
// other.
func TestFindReturnsFirstAmongDuplicatesAndSupportsErase(t *testing.T) {
	l := NewSpace(1)
	l.Insert(r1(1, 1), "p")
	l.Insert(r1(1, 1), "q")

	it := l.Find(r1(1, 1))
	if !it.Valid() || it.Value().(string) != "p" {
		t.Fatalf("expected Find to return the first duplicate (p), got %v", it.Value())
	}
	if !it.Erase() {
		t.Fatalf("expected Erase to succeed")
	}
	assertValues(t, collect(l.Begin()), "q")
}

func TestAllReturnsUniverseRegion(t *testing.T) {
	l := NewSpace(1)
	if l.All() != nil {
		t.Fatalf("expected All() on an empty layer to be nil")
	}
	l.Insert(r1(10, 20), "a")
	l.Insert(r1(30, 40), "b")
	all := l.All()
	if all.Rank() != 1 {
		t.Fatalf("expected rank-1 universe region, got rank %d", all.Rank())
	}
	if !all.Contains(r1(10, 20)) || !all.Contains(r1(30, 40)) {
		t.Fatalf("expected the universe region to contain every stored region, got %v", all)
	}
	assertValues(t, collect(l.BeginQuery(all)), "a", "b")
}

// Insert, Find, and BeginQuery all reject a region whose rank doesn't
// match the layer's own rank, rather than panicking on an out-of-bounds
// Head()/Tail() access.
func TestRankMismatchIsRejectedEverywhere(t *testing.T) {
	l := NewSpace(2)
	if l.Rank() != 2 {
		t.Fatalf("Rank() = %d, want 2", l.Rank())
	}
	if l.Insert(r1(0, 10), "x") {
		t.Fatalf("expected insert of a rank-1 region into a rank-2 space to be rejected")
	}
	if l.Find(r1(0, 10)).Valid() {
		t.Fatalf("expected Find with mismatched rank to be rejected")
	}
	if l.BeginQuery(r1(0, 10)).Valid() {
		t.Fatalf("expected BeginQuery with mismatched rank to be rejected")
	}
	if l.Contains(r1(0, 10), "x") {
		t.Fatalf("expected Contains with mismatched rank to be rejected")
	}
	if l.Erase(r1(0, 10), "x") {
		t.Fatalf("expected Erase with mismatched rank to be rejected")
	}
}

func TestDump(t *testing.T) {
	l := NewSpace(1)
	l.Insert(r1(1, 2), "a")
	l.Insert(r1(3, 4), "b")
	var buf strings.Builder
	l.Dump(&buf)
	out := buf.String()
	if !strings.Contains(out, "a") || !strings.Contains(out, "b") {
		t.Fatalf("dump missing entries: %q", out)
	}
}
