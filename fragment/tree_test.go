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

package fragment

import (
	"testing"

	"github.com/numina-hpc/meshkit/archive"
	"github.com/numina-hpc/meshkit/region"
)

const testTreeDepth = 4 // rootDepth=2, 4 leaf sub-trees of depth 2 each

func fullTreeRegion() region.TreeRegion {
	r := region.NewTreeRegion(testTreeDepth).SetRoot()
	for i := 0; i < region.NumLeafTrees(region.RootDepth(testTreeDepth)); i++ {
		r = r.SetLeaf(i)
	}
	return r
}

func TestTreeFragmentRootAndLeafAddressing(t *testing.T) {
	f := NewTreeFragment[int](testTreeDepth, fullTreeRegion())

	root := region.Root()
	*f.At(root) = 1
	if *f.At(root) != 1 {
		t.Fatalf("root address did not round-trip")
	}

	rootDepth := region.RootDepth(testTreeDepth)
	leaf := root.LeftChild(rootDepth).LeftChild(rootDepth) // crosses into a leaf sub-tree
	*f.At(leaf) = 42
	if *f.At(leaf) != 42 {
		t.Fatalf("leaf address did not round-trip")
	}
	if *f.At(root) != 1 {
		t.Fatalf("writing the leaf address clobbered the root slot")
	}
}

func TestTreeFragmentResizeFreesAndReallocates(t *testing.T) {
	empty := region.NewTreeRegion(testTreeDepth)
	f := NewTreeFragment[int](testTreeDepth, empty)
	if f.CoveredRegion().Empty() != true {
		t.Fatalf("fresh fragment over an empty region should report empty")
	}

	f.Resize(fullTreeRegion())
	root := region.Root()
	*f.At(root) = 7
	if *f.At(root) != 7 {
		t.Fatalf("write after Resize did not stick")
	}

	f.Resize(empty)
	if !f.CoveredRegion().Empty() {
		t.Fatalf("resizing down to empty should leave an empty covered region")
	}
}

func TestTreeFragmentInsertRequiresSubset(t *testing.T) {
	src := NewTreeFragment[int](testTreeDepth, fullTreeRegion())
	dst := NewTreeFragment[int](testTreeDepth, region.NewTreeRegion(testTreeDepth))

	if err := dst.Insert(src, fullTreeRegion()); err != ErrPreconditionViolation {
		t.Fatalf("Insert into an empty-covered fragment = %v, want ErrPreconditionViolation", err)
	}

	dst.Resize(fullTreeRegion())
	*src.At(region.Root()) = 99
	if err := dst.Insert(src, fullTreeRegion()); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if *dst.At(region.Root()) != 99 {
		t.Fatalf("Insert did not copy the root sub-tree array")
	}
}

func TestTreeFragmentExtractInsertFromRoundTrip(t *testing.T) {
	src := NewTreeFragment[int](testTreeDepth, fullTreeRegion())
	rootDepth := region.RootDepth(testTreeDepth)
	*src.At(region.Root()) = 5
	*src.At(region.Root().LeftChild(rootDepth).LeftChild(rootDepth)) = 6

	w := archive.NewWriter(0)
	store := func(w *archive.Writer, v int) { w.WriteU64(uint64(v)) }
	if err := src.Extract(w, fullTreeRegion(), store); err != nil {
		t.Fatalf("Extract: %v", err)
	}

	dst := NewTreeFragment[int](testTreeDepth, fullTreeRegion())
	load := func(r *archive.Reader) (int, error) {
		v, err := r.ReadU64()
		return int(v), err
	}
	if err := dst.InsertFrom(archive.NewReader(w.Bytes()), load); err != nil {
		t.Fatalf("InsertFrom: %v", err)
	}
	if *dst.At(region.Root()) != 5 {
		t.Fatalf("round-tripped root value = %d, want 5", *dst.At(region.Root()))
	}
	if *dst.At(region.Root().LeftChild(rootDepth).LeftChild(rootDepth)) != 6 {
		t.Fatalf("round-tripped leaf value mismatch")
	}
}
