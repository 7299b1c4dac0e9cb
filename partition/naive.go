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

import "github.com/numina-hpc/meshkit/region"

// NaivePartitioner builds an open Tree the way §4.F's default "naïve
// partitioner" does: pre-order halving of node ranges, every closure
// initialized to the full region. It never inspects the actual topology,
// so every closure is a safe, if loose, over-approximation -- the
// contract only requires a superset of the true dependency set.
type NaivePartitioner struct{}

// Build constructs an open tree of the given depth and dims, with
// nodeCounts[level][kind] giving the root's total node count per
// (level,kind).
func (NaivePartitioner) Build(depth int, dims Dims, nodeCounts [][]uint32) *Tree {
	total := 1 << uint(depth+1)
	t := &Tree{depth: depth, dims: dims, slots: make([]Node, total)}

	universal := region.UniversalMeshRegion()
	for i := 1; i < total; i++ {
		n := newNode(dims)
		for j := range n.Forward {
			n.Forward[j] = openRegionStore(universal)
			n.Backward[j] = openRegionStore(universal)
		}
		for j := range n.ParentClosure {
			n.ParentClosure[j] = openRegionStore(universal)
			n.ChildClosure[j] = openRegionStore(universal)
		}
		t.slots[i] = n
	}

	for l := 0; l < dims.NumLevels; l++ {
		for k := 0; k < dims.NumKinds[l]; k++ {
			t.slots[1].Ranges[l][k] = NodeRange{Begin: 0, End: nodeCounts[l][k]}
		}
	}

	var descend func(slot int)
	descend = func(slot int) {
		if t.IsLeaf(slot) {
			return
		}
		left, right := LeftChild(slot), RightChild(slot)
		for l := 0; l < dims.NumLevels; l++ {
			for k := 0; k < dims.NumKinds[l]; k++ {
				lo, hi := t.slots[slot].Ranges[l][k].Split()
				t.slots[left].Ranges[l][k] = lo
				t.slots[right].Ranges[l][k] = hi
			}
		}
		descend(left)
		descend(right)
	}
	descend(1)

	return t
}
