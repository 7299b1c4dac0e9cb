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

import "fmt"

// pathWordBits is sizeof(path_word)*8 from §7's Overflow definition: the
// maximum sub-tree path depth a 32-bit path/mask pair can address.
const pathWordBits = 32

// overflowError is the panic value raised when a sub-tree descent would need more
// than pathWordBits bits of path, per §7's Overflow error kind (fatal,
// unchecked in release).
type overflowError struct{}

func (overflowError) Error() string { return "region: sub-tree path depth exceeds path word width" }

// SubTreeRef is a sub-tree path (§3) that requires mask == (1<<depth)-1:
// every bit below depth is significant, identifying exactly one sub-tree
// (the CRTP "derived" type in the source project's path-ref hierarchy,
// here a plain newtype over the same (path, mask) pair per design note
// 9's suggested resolution).
type SubTreeRef struct {
	path, mask uint32
	depth      int
}

// RootSubTreeRef returns the address of the partition tree's single root
// sub-tree (depth 0, no bits significant).
func RootSubTreeRef() SubTreeRef { return SubTreeRef{} }

// Depth reports how many path bits are significant.
func (r SubTreeRef) Depth() int { return r.depth }

// Path and Mask expose the raw bit-vectors, e.g. for hashing into a map
// key. partition.SlotPath builds the ref for a partition-tree Ahnentafel
// slot.
func (r SubTreeRef) Path() uint32 { return r.path }
func (r SubTreeRef) Mask() uint32 { return r.mask }

func (r SubTreeRef) child(bit uint32) SubTreeRef {
	if r.depth >= pathWordBits {
		panic(overflowError{})
	}
	return SubTreeRef{
		path:  r.path | (bit << uint(r.depth)),
		mask:  r.mask | (1 << uint(r.depth)),
		depth: r.depth + 1,
	}
}

// Left returns the left child sub-tree address.
func (r SubTreeRef) Left() SubTreeRef { return r.child(0) }

// Right returns the right child sub-tree address.
func (r SubTreeRef) Right() SubTreeRef { return r.child(1) }

// ToSubMeshRef widens a fully specified sub-tree address into the
// wildcard-capable SubMeshRef used inside a MeshRegion.
func (r SubTreeRef) ToSubMeshRef() SubMeshRef { return SubMeshRef{path: r.path, mask: r.mask} }

func (r SubTreeRef) String() string {
	return fmt.Sprintf("SubTree(path=%0*b)", r.depth, r.path&r.mask)
}

// SubMeshRef is a sub-tree path that may be wildcarded at some bit
// positions (mask bit 0): it denotes the union of every sub-tree that
// agrees with path on the bits where mask is 1. Its depth is the
// position of the highest set mask bit, plus one (a ref with mask==0 has
// depth 0 and denotes the whole tree).
type SubMeshRef struct {
	path, mask uint32
}

// UniversalSubMeshRef is the wildcard ref matching every sub-tree.
func UniversalSubMeshRef() SubMeshRef { return SubMeshRef{} }

// Depth is the position of the highest set mask bit, plus one.
func (r SubMeshRef) Depth() int {
	if r.mask == 0 {
		return 0
	}
	d := 0
	for b := uint32(31); ; b-- {
		if (r.mask>>b)&1 == 1 {
			d = int(b) + 1
			break
		}
		if b == 0 {
			break
		}
	}
	return d
}

func (r SubMeshRef) Path() uint32 { return r.path & r.mask }
func (r SubMeshRef) Mask() uint32 { return r.mask }

func bitAt(word uint32, i int) uint32 { return (word >> uint(i)) & 1 }

// Covers reports whether every sub-tree matched by b is also matched by
// a: every bit a constrains, b constrains identically.
func (a SubMeshRef) Covers(b SubMeshRef) bool {
	for i := 0; i < pathWordBits; i++ {
		if bitAt(a.mask, i) == 1 {
			if bitAt(b.mask, i) == 0 || bitAt(a.path, i) != bitAt(b.path, i) {
				return false
			}
		}
	}
	return true
}

// intersect returns the conjunction of a and b's constraints, or ok=false
// if they constrain some bit to different values (empty intersection).
func (a SubMeshRef) intersect(b SubMeshRef) (SubMeshRef, bool) {
	for i := 0; i < pathWordBits; i++ {
		if bitAt(a.mask, i) == 1 && bitAt(b.mask, i) == 1 && bitAt(a.path, i) != bitAt(b.path, i) {
			return SubMeshRef{}, false
		}
	}
	mask := a.mask | b.mask
	path := (a.path & a.mask) | (b.path & b.mask)
	return SubMeshRef{path: path & mask, mask: mask}, true
}

// fuseSibling reports whether a and b differ by exactly one masked bit
// (identical masks, paths differing at exactly one position), and if so
// returns the wildcarded ref resulting from clearing that bit, per §4.B's
// sibling fusion rule.
func fuseSibling(a, b SubMeshRef) (SubMeshRef, bool) {
	if a.mask != b.mask {
		return SubMeshRef{}, false
	}
	diff := (a.path ^ b.path) & a.mask
	if diff == 0 || diff&(diff-1) != 0 {
		// zero or more than one differing bit
		return SubMeshRef{}, false
	}
	newMask := a.mask &^ diff
	return SubMeshRef{path: a.path & newMask, mask: newMask}, true
}

// complement implements §4.B's per-ref complement: for each masked bit k
// of r, emit a ref with bit k flipped and every mask bit above k cleared.
// The union of these refs is everything r does not match.
func (r SubMeshRef) complement() []SubMeshRef {
	var out []SubMeshRef
	for k := 0; k < pathWordBits; k++ {
		if bitAt(r.mask, k) == 0 {
			continue
		}
		newMask := r.mask & ((uint32(1) << uint(k+1)) - 1)
		newPath := (r.path ^ (uint32(1) << uint(k))) & newMask
		out = append(out, SubMeshRef{path: newPath, mask: newMask})
	}
	return out
}

// refKey orders bit position i of r for the lexicographic ordering over
// the (bit, mask-bit) sequence §3 calls for: a wildcard bit sorts before
// either concrete branch, and bits beyond r's own depth are implicitly
// wildcards.
func refKey(r SubMeshRef, i int) int {
	if bitAt(r.mask, i) == 0 {
		return 0
	}
	return 1 + int(bitAt(r.path, i))
}

// Less implements the canonical ordering used to keep a MeshRegion's ref
// list sorted and compressible.
func (a SubMeshRef) Less(b SubMeshRef) bool {
	for i := 0; i < pathWordBits; i++ {
		ka, kb := refKey(a, i), refKey(b, i)
		if ka != kb {
			return ka < kb
		}
	}
	return false
}

// Equal reports whether a and b denote the same constraint set.
func (a SubMeshRef) Equal(b SubMeshRef) bool {
	return a.path&a.mask == b.path&b.mask && a.mask == b.mask
}

func (r SubMeshRef) String() string {
	d := r.Depth()
	bits := make([]byte, d)
	for i := 0; i < d; i++ {
		switch {
		case bitAt(r.mask, i) == 0:
			bits[i] = '*'
		case bitAt(r.path, i) == 0:
			bits[i] = '0'
		default:
			bits[i] = '1'
		}
	}
	return fmt.Sprintf("SubMesh(%s)", string(bits))
}
