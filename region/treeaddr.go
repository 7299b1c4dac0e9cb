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

// RootSubtree is the sentinel sub-tree index denoting the root sub-tree
// of a static balanced tree, as opposed to one of its leaf sub-trees
// (indices 0..NumLeafTrees-1).
const RootSubtree = -1

// TreeAddr is the address of one element of the static balanced binary
// tree data item (§3): which sub-tree it lives in, its 1-based
// heap-style index within that sub-tree, and its level (distance from
// the overall root).
type TreeAddr struct {
	Subtree int // RootSubtree, or a leaf sub-tree index
	Index   int // 1-based heap index within Subtree
	Level   int
}

// Root returns the address of the tree's root element.
func Root() TreeAddr { return TreeAddr{Subtree: RootSubtree, Index: 1, Level: 0} }

// IsLeaf reports whether addr names a leaf of a tree of the given total
// depth.
func (a TreeAddr) IsLeaf(depth int) bool { return a.Level == depth-1 }

// child computes the left (bit=0) or right (bit=1) child of a within a
// static balanced tree whose root sub-tree has depth rootDepth. At the
// boundary level rootDepth-1, children migrate from the root sub-tree
// into a leaf sub-tree per §3.
func (a TreeAddr) child(bit int, rootDepth int) TreeAddr {
	childIndex := 2*a.Index + bit
	if a.Subtree == RootSubtree && a.Level == rootDepth-1 {
		numLeaves := NumLeafTrees(rootDepth)
		return TreeAddr{
			Subtree: childIndex % numLeaves,
			Index:   1,
			Level:   a.Level + 1,
		}
	}
	return TreeAddr{Subtree: a.Subtree, Index: childIndex, Level: a.Level + 1}
}

// LeftChild returns a's left child address.
func (a TreeAddr) LeftChild(rootDepth int) TreeAddr { return a.child(0, rootDepth) }

// RightChild returns a's right child address.
func (a TreeAddr) RightChild(rootDepth int) TreeAddr { return a.child(1, rootDepth) }
