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
	"fmt"

	"github.com/bits-and-blooms/bitset"

	"github.com/numina-hpc/meshkit/archive"
)

// RootDepth returns the depth of the static balanced tree's root
// sub-tree, min(depth/2, 10), per §3.
func RootDepth(depth int) int {
	rd := depth / 2
	if rd > 10 {
		rd = 10
	}
	return rd
}

// NumLeafTrees returns 2^rootDepth, the number of leaf sub-trees a
// static balanced tree region of the given root depth splits into.
func NumLeafTrees(rootDepth int) int { return 1 << uint(rootDepth) }

// TreeRegion is a region over the static balanced binary tree data item
// (§3): a bit per leaf sub-tree, plus one bit for the root sub-tree. Bit
// 0 is the root bit; bits 1..NumLeafTrees are leaf sub-tree i-1. All set
// operations are bitwise, and the closure of a region containing the
// root bit is the full mask (every leaf sub-tree becomes reachable).
type TreeRegion struct {
	rootDepth int
	bits      *bitset.BitSet
}

// NewTreeRegion returns the empty region for a static balanced tree of
// the given depth.
func NewTreeRegion(depth int) TreeRegion {
	rd := RootDepth(depth)
	return TreeRegion{rootDepth: rd, bits: bitset.New(uint(NumLeafTrees(rd) + 1))}
}

const rootBitIndex = 0

func leafBitIndex(leaf int) uint { return uint(leaf + 1) }

// SetRoot marks the root sub-tree as present.
func (t TreeRegion) SetRoot() TreeRegion {
	t.bits = t.bits.Clone()
	t.bits.Set(rootBitIndex)
	return t
}

// SetLeaf marks leaf sub-tree i as present.
func (t TreeRegion) SetLeaf(i int) TreeRegion {
	t.bits = t.bits.Clone()
	t.bits.Set(leafBitIndex(i))
	return t
}

// HasRoot reports whether the root bit is set.
func (t TreeRegion) HasRoot() bool { return t.bits.Test(rootBitIndex) }

// HasLeaf reports whether leaf sub-tree i is set.
func (t TreeRegion) HasLeaf(i int) bool { return t.bits.Test(leafBitIndex(i)) }

// RootDepth reports the region's configured root-sub-tree depth.
func (t TreeRegion) RootDepth() int { return t.rootDepth }

// Empty reports whether no bit is set.
func (t TreeRegion) Empty() bool { return t.bits.None() }

// Merge is bitwise OR.
func (t TreeRegion) Merge(o TreeRegion) TreeRegion {
	return TreeRegion{rootDepth: t.rootDepth, bits: t.bits.Union(o.bits)}
}

// Intersect is bitwise AND.
func (t TreeRegion) Intersect(o TreeRegion) TreeRegion {
	return TreeRegion{rootDepth: t.rootDepth, bits: t.bits.Intersection(o.bits)}
}

// Difference is A AND NOT B.
func (t TreeRegion) Difference(o TreeRegion) TreeRegion {
	return TreeRegion{rootDepth: t.rootDepth, bits: t.bits.Difference(o.bits)}
}

// Complement is bitwise NOT within the mask's length.
func (t TreeRegion) Complement() TreeRegion {
	return TreeRegion{rootDepth: t.rootDepth, bits: t.bits.Clone().Complement()}
}

// Closure replaces the region with the full mask whenever the root bit is
// set, per §3/§8 example 2; otherwise the region already denotes exactly
// the sub-trees it touches, so the closure is itself.
func (t TreeRegion) Closure() TreeRegion {
	if !t.HasRoot() {
		return t
	}
	return TreeRegion{rootDepth: t.rootDepth, bits: bitset.New(t.bits.Len()).Complement()}
}

// IsSubRegion reports whether t is contained in o.
func (t TreeRegion) IsSubRegion(o TreeRegion) bool { return t.Difference(o).Empty() }

// Equal reports bitwise equality.
func (t TreeRegion) Equal(o TreeRegion) bool { return t.bits.Equal(o.bits) }

func (t TreeRegion) String() string {
	return fmt.Sprintf("root=%v leaves=%v", t.HasRoot(), t.bits.DumpAsBits())
}

// Store writes the root depth followed by the raw bitset words.
func (t TreeRegion) Store(w *archive.Writer) {
	w.WriteLen(t.rootDepth)
	w.WriteLen(int(t.bits.Len()))
	words := t.bits.Bytes()
	w.WriteLen(len(words))
	for _, word := range words {
		w.WriteU64(word)
	}
}

// Load reads a tree region written by Store.
func (t *TreeRegion) Load(r *archive.Reader) error {
	rd, err := r.ReadLen()
	if err != nil {
		return err
	}
	bitLen, err := r.ReadLen()
	if err != nil {
		return err
	}
	nWords, err := r.ReadLen()
	if err != nil {
		return err
	}
	words := make([]uint64, nWords)
	for i := range words {
		v, err := r.ReadU64()
		if err != nil {
			return err
		}
		words[i] = v
	}
	t.rootDepth = rd
	t.bits = bitset.FromWithLength(uint(bitLen), words)
	return nil
}
