// This is free and unencumbered software released into the public domain.
//
// Anyone is free to copy, modify, publish, use, compile, sell, or
// distribute this software, either in source code form or as a compiled
// binary, for any purpose, commercial or non-commercial, and by any
// means.
//
// In jurisdictions that recognize copyright laws, the author or authors
// of this software dedicate any and all copyright interest in the
// software to the public domain. We make this dedication for the benefit
// of the public at large and to the detriment of our heirs and
// successors. We intend this dedication to be an overt act of
// relinquishment in perpetuity of all present and future rights to this
// software under copyright law.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND,
// EXPRESS OR IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF
// MERCHANTABILITY, FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT.
// IN NO EVENT SHALL THE AUTHORS BE LIABLE FOR ANY CLAIM, DAMAGES OR
// OTHER LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE,
// ARISING FROM, OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR
// OTHER DEALINGS IN THE SOFTWARE.
//
// For more information, please refer to <https://unlicense.org>

package region

import (
	"testing"

	"github.com/numina-hpc/meshkit/archive"
)

func gridDomain() GridBox { return NewGridBox(GridPoint{0, 0}, GridPoint{4, 4}) }

func TestGridRegionMergeIntersectDifference(t *testing.T) {
	domain := gridDomain()
	left := NewGridRegionFromBox(domain, NewGridBox(GridPoint{0, 0}, GridPoint{2, 4}))
	right := NewGridRegionFromBox(domain, NewGridBox(GridPoint{2, 0}, GridPoint{4, 4}))
	full := NewGridRegionFromBox(domain, domain)

	merged := left.Merge(right)
	if !merged.Equal(full) {
		t.Fatalf("Merge of the two halves = %v, want the full domain", merged)
	}
	if !left.Intersect(right).Empty() {
		t.Fatalf("disjoint halves should not intersect")
	}
	if !full.Difference(left).Equal(right) {
		t.Fatalf("full minus left should equal right")
	}
}

func TestGridRegionComplementAndSubRegion(t *testing.T) {
	domain := gridDomain()
	left := NewGridRegionFromBox(domain, NewGridBox(GridPoint{0, 0}, GridPoint{2, 4}))
	right := NewGridRegionFromBox(domain, NewGridBox(GridPoint{2, 0}, GridPoint{4, 4}))

	if !left.Complement().Equal(right) {
		t.Fatalf("Complement(left) = %v, want right", left.Complement())
	}
	if !left.IsSubRegion(NewGridRegionFromBox(domain, domain)) {
		t.Fatalf("any region should be a sub-region of the full domain")
	}
	if right.IsSubRegion(left) {
		t.Fatalf("disjoint non-empty regions should not be sub-regions of each other")
	}
}

func TestGridRegionMergeFusesAdjacentBoxes(t *testing.T) {
	domain := gridDomain()
	left := NewGridRegionFromBox(domain, NewGridBox(GridPoint{0, 0}, GridPoint{2, 4}))
	right := NewGridRegionFromBox(domain, NewGridBox(GridPoint{2, 0}, GridPoint{4, 4}))

	merged := left.Merge(right)
	if len(merged.Boxes()) != 1 {
		t.Fatalf("merging two adjacent coplanar boxes should fuse into one, got %d boxes", len(merged.Boxes()))
	}
}

func TestGridRegionStoreLoadRoundTrip(t *testing.T) {
	domain := gridDomain()
	r := NewGridRegionFromBox(domain, NewGridBox(GridPoint{1, 1}, GridPoint{3, 3}))

	w := archive.NewWriter(0)
	r.Store(w)

	var loaded GridRegion
	if err := loaded.Load(archive.NewReader(w.Bytes())); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !loaded.Equal(r) {
		t.Fatalf("round-tripped region %v != original %v", loaded, r)
	}
}

func TestScanLinesCoverBoxExactly(t *testing.T) {
	box := NewGridBox(GridPoint{0, 0}, GridPoint{3, 2})
	lines := ScanLines(box)
	if len(lines) != 3 {
		t.Fatalf("ScanLines produced %d lines, want 3 (one per row)", len(lines))
	}
	var total int64
	for _, ln := range lines {
		total += ln.B[len(ln.B)-1] - ln.A[len(ln.A)-1]
	}
	if total != box.Volume() {
		t.Fatalf("scan lines cover %d points, want %d", total, box.Volume())
	}
}
