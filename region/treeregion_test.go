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

const treeTestDepth = 4 // RootDepth=2, 4 leaf sub-trees

func TestRootDepthAndNumLeafTrees(t *testing.T) {
	if got := RootDepth(treeTestDepth); got != 2 {
		t.Fatalf("RootDepth(%d) = %d, want 2", treeTestDepth, got)
	}
	if got := NumLeafTrees(2); got != 4 {
		t.Fatalf("NumLeafTrees(2) = %d, want 4", got)
	}
	if got := RootDepth(30); got != 10 {
		t.Fatalf("RootDepth(30) = %d, want 10 (clamped)", got)
	}
}

func TestTreeRegionMergeIntersectDifference(t *testing.T) {
	root := NewTreeRegion(treeTestDepth).SetRoot()
	leaf0 := NewTreeRegion(treeTestDepth).SetLeaf(0)

	merged := root.Merge(leaf0)
	if !merged.HasRoot() || !merged.HasLeaf(0) {
		t.Fatalf("Merge did not set both bits")
	}
	if !root.Intersect(leaf0).Empty() {
		t.Fatalf("root-only and leaf-only regions should not intersect")
	}
	if !merged.Difference(leaf0).Equal(root) {
		t.Fatalf("Difference did not recover the root-only region")
	}
}

func TestTreeRegionClosureExpandsOnRootBit(t *testing.T) {
	root := NewTreeRegion(treeTestDepth).SetRoot()
	closure := root.Closure()
	for i := 0; i < NumLeafTrees(RootDepth(treeTestDepth)); i++ {
		if !closure.HasLeaf(i) {
			t.Fatalf("Closure of a region with the root bit set should cover leaf %d", i)
		}
	}

	leafOnly := NewTreeRegion(treeTestDepth).SetLeaf(0)
	if !leafOnly.Closure().Equal(leafOnly) {
		t.Fatalf("Closure of a region without the root bit should be the identity")
	}
}

func TestTreeRegionIsSubRegionAndEqual(t *testing.T) {
	leaf0 := NewTreeRegion(treeTestDepth).SetLeaf(0)
	both := leaf0.SetLeaf(1)
	if !leaf0.IsSubRegion(both) {
		t.Fatalf("leaf0 should be a sub-region of {leaf0,leaf1}")
	}
	if both.IsSubRegion(leaf0) {
		t.Fatalf("{leaf0,leaf1} should not be a sub-region of leaf0")
	}
	if !leaf0.Equal(NewTreeRegion(treeTestDepth).SetLeaf(0)) {
		t.Fatalf("two separately constructed identical regions should be Equal")
	}
}

func TestTreeRegionStoreLoadRoundTrip(t *testing.T) {
	r := NewTreeRegion(treeTestDepth).SetRoot().SetLeaf(2)

	w := archive.NewWriter(0)
	r.Store(w)

	var loaded TreeRegion
	if err := loaded.Load(archive.NewReader(w.Bytes())); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !loaded.Equal(r) {
		t.Fatalf("round-tripped region %v != original %v", loaded, r)
	}
}

func TestTreeAddrChildMigratesAtRootBoundary(t *testing.T) {
	rootDepth := RootDepth(treeTestDepth)
	root := Root()
	if root.Subtree != RootSubtree || root.Index != 1 || root.Level != 0 {
		t.Fatalf("Root() = %+v, want {RootSubtree,1,0}", root)
	}

	// Walk down to the level just above the root/leaf boundary: still in
	// the root sub-tree.
	a := root
	for a.Level < rootDepth-1 {
		a = a.LeftChild(rootDepth)
		if a.Subtree != RootSubtree {
			t.Fatalf("address at level %d should still be in the root sub-tree", a.Level)
		}
	}

	// One more step crosses into a leaf sub-tree.
	leftLeaf := a.LeftChild(rootDepth)
	if leftLeaf.Subtree == RootSubtree {
		t.Fatalf("address at level %d should have migrated into a leaf sub-tree", leftLeaf.Level)
	}
	if leftLeaf.Index != 1 {
		t.Fatalf("first address inside a leaf sub-tree should have heap index 1, got %d", leftLeaf.Index)
	}

	// Thereafter, children stay within the same leaf sub-tree.
	grandchild := leftLeaf.LeftChild(rootDepth)
	if grandchild.Subtree != leftLeaf.Subtree {
		t.Fatalf("descendants within a leaf sub-tree should not migrate again")
	}
	if grandchild.Index != 2 {
		t.Fatalf("LeftChild within a leaf sub-tree should double the heap index, got %d", grandchild.Index)
	}
}

func TestTreeAddrIsLeaf(t *testing.T) {
	a := TreeAddr{Level: 3}
	if !a.IsLeaf(4) {
		t.Fatalf("level 3 of a depth-4 tree should be a leaf")
	}
	if a.IsLeaf(5) {
		t.Fatalf("level 3 of a depth-5 tree should not be a leaf")
	}
}
