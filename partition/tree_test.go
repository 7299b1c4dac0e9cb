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

package partition

import (
	"testing"

	"github.com/numina-hpc/meshkit/archive"
)

func testDims() Dims {
	return Dims{NumLevels: 1, NumKinds: []int{1}, NumEdges: 1, NumHiers: 0}
}

func TestNaivePartitionerRangesCoverWholeTree(t *testing.T) {
	const depth = 3
	nodeCounts := [][]uint32{{100}}
	tr := NaivePartitioner{}.Build(depth, testDims(), nodeCounts)

	leaves := 1 << uint(depth)
	var total uint32
	for slot := leaves; slot < 2*leaves; slot++ {
		r := tr.NodeRangeAt(slot, 0, 0)
		if r.Len() == 0 {
			t.Fatalf("leaf %d has empty range", slot)
		}
		total += r.Len()
	}
	if total != 100 {
		t.Fatalf("leaf ranges sum to %d, want 100", total)
	}

	// Every internal slot's range must equal the concatenation of its
	// two children's ranges.
	for slot := 1; slot < leaves; slot++ {
		r := tr.NodeRangeAt(slot, 0, 0)
		l := tr.NodeRangeAt(LeftChild(slot), 0, 0)
		rr := tr.NodeRangeAt(RightChild(slot), 0, 0)
		if l.Begin != r.Begin || rr.End != r.End || l.End != rr.Begin {
			t.Fatalf("slot %d range %v does not split into %v/%v", slot, r, l, rr)
		}
	}
}

func TestSlotPathRoundTripsThroughNodeRangeForRef(t *testing.T) {
	const depth = 3
	nodeCounts := [][]uint32{{64}}
	tr := NaivePartitioner{}.Build(depth, testDims(), nodeCounts)

	leaves := 1 << uint(depth)
	for slot := leaves; slot < 2*leaves; slot++ {
		ref := SlotPath(slot).ToSubMeshRef()
		got := tr.NodeRangeForRef(0, 0, ref)
		want := tr.NodeRangeAt(slot, 0, 0)
		if got != want {
			t.Fatalf("slot %d: NodeRangeForRef = %v, want %v", slot, got, want)
		}
	}
}

func TestTreeCloseIsIdempotent(t *testing.T) {
	tr := NaivePartitioner{}.Build(2, testDims(), [][]uint32{{10}})
	tr.Close()
	refTableLen := len(tr.refTable)
	tr.Close()
	if len(tr.refTable) != refTableLen {
		t.Fatalf("second Close changed ref-table length: %d -> %d", refTableLen, len(tr.refTable))
	}
}

func TestTreeStoreLoadRoundTrip(t *testing.T) {
	dims := testDims()
	tr := NaivePartitioner{}.Build(2, dims, [][]uint32{{10}})
	tr.Close()

	w := archive.NewWriter(0)
	if err := tr.Store(w); err != nil {
		t.Fatalf("Store: %v", err)
	}

	loaded, err := Load(archive.NewReader(w.Bytes()), 2, dims)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	leaves := 1 << 2
	for slot := 1; slot < 2*leaves; slot++ {
		if loaded.NodeRangeAt(slot, 0, 0) != tr.NodeRangeAt(slot, 0, 0) {
			t.Fatalf("slot %d range mismatch after Load", slot)
		}
	}
}

func TestTreeInterpretMatchesLoad(t *testing.T) {
	dims := testDims()
	tr := NaivePartitioner{}.Build(2, dims, [][]uint32{{10}})
	tr.Close()

	w := archive.NewWriter(0)
	if err := tr.Store(w); err != nil {
		t.Fatalf("Store: %v", err)
	}

	interpreted, consumed, err := Interpret(w.Bytes(), 2, dims)
	if err != nil {
		t.Fatalf("Interpret: %v", err)
	}
	if consumed != w.Len() {
		t.Fatalf("Interpret consumed %d bytes, want %d (no trailing data in this test)", consumed, w.Len())
	}
	leaves := 1 << 2
	for slot := 1; slot < 2*leaves; slot++ {
		if interpreted.NodeRangeAt(slot, 0, 0) != tr.NodeRangeAt(slot, 0, 0) {
			t.Fatalf("slot %d range mismatch after Interpret", slot)
		}
	}
}

func TestLeftRightChildAhnentafel(t *testing.T) {
	if LeftChild(1) != 2 || RightChild(1) != 3 {
		t.Fatalf("root's children should be 2,3, got %d,%d", LeftChild(1), RightChild(1))
	}
	if LeftChild(3) != 6 || RightChild(3) != 7 {
		t.Fatalf("slot 3's children should be 6,7, got %d,%d", LeftChild(3), RightChild(3))
	}
}
