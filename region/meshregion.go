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
	"sort"
	"strings"

	"github.com/numina-hpc/meshkit/archive"
)

// MeshRegion is a canonical, sorted, duplicate-free vector of SubMeshRef
// denoting a subset of the partition tree's sub-trees (§3). After every
// mutating operation: (i) the list is sorted and duplicate-free, (ii) no
// element covers another, (iii) no pair of siblings can be fused by
// flipping one mask bit.
type MeshRegion struct {
	refs []SubMeshRef
}

// NewMeshRegion canonicalizes an arbitrary list of refs into a MeshRegion.
func NewMeshRegion(refs ...SubMeshRef) MeshRegion {
	return MeshRegion{refs: canonicalize(refs)}
}

// UniversalMeshRegion denotes every sub-tree.
func UniversalMeshRegion() MeshRegion {
	return MeshRegion{refs: []SubMeshRef{UniversalSubMeshRef()}}
}

// MeshRegionFromSortedRefs wraps an already-canonical ref slice (e.g. a
// closed partition tree's (offset,length) view into its shared ref-table)
// without re-running canonicalize, the zero-copy counterpart to
// NewMeshRegion used by RegionStore's closed-state accessor.
func MeshRegionFromSortedRefs(refs []SubMeshRef) MeshRegion {
	return MeshRegion{refs: refs}
}

// Refs returns the region's canonical ref list. Must not be mutated.
func (m MeshRegion) Refs() []SubMeshRef { return m.refs }

// Empty reports whether the region denotes no sub-trees.
func (m MeshRegion) Empty() bool { return len(m.refs) == 0 }

func sortRefs(refs []SubMeshRef) {
	sort.Slice(refs, func(i, j int) bool { return refs[i].Less(refs[j]) })
}

// removeCovered first drops exact duplicates (keeping the first
// occurrence), then drops any ref strictly covered by a distinct other
// ref in what remains.
func removeCovered(refs []SubMeshRef) []SubMeshRef {
	deduped := refs[:0:0]
	for _, r := range refs {
		dup := false
		for _, o := range deduped {
			if r.Equal(o) {
				dup = true
				break
			}
		}
		if !dup {
			deduped = append(deduped, r)
		}
	}

	out := deduped[:0:0]
	for i, r := range deduped {
		covered := false
		for j, o := range deduped {
			if i == j {
				continue
			}
			if o.Covers(r) && !r.Covers(o) {
				covered = true
				break
			}
		}
		if !covered {
			out = append(out, r)
		}
	}
	return out
}

// fuseSiblingsOnce performs one pass of greedy sibling fusion, returning
// the fused list and whether any fusion happened.
func fuseSiblingsOnce(refs []SubMeshRef) ([]SubMeshRef, bool) {
	for i := 0; i < len(refs); i++ {
		for j := i + 1; j < len(refs); j++ {
			if fused, ok := fuseSibling(refs[i], refs[j]); ok {
				next := make([]SubMeshRef, 0, len(refs)-1)
				next = append(next, refs[:i]...)
				next = append(next, refs[i+1:j]...)
				next = append(next, refs[j+1:]...)
				next = append(next, fused)
				return next, true
			}
		}
	}
	return refs, false
}

// canonicalize applies §4.B's fixed-point loop: repeat
// {removeCovered; fuseSiblings} until stable, then sort.
func canonicalize(refs []SubMeshRef) []SubMeshRef {
	cur := append([]SubMeshRef{}, refs...)
	for {
		before := len(cur)
		cur = removeCovered(cur)
		var fused bool
		cur, fused = fuseSiblingsOnce(cur)
		if !fused && len(cur) == before {
			break
		}
	}
	sortRefs(cur)
	return cur
}

// Merge is region union, recompressed per §4.B.
func (m MeshRegion) Merge(o MeshRegion) MeshRegion {
	all := append(append([]SubMeshRef{}, m.refs...), o.refs...)
	return MeshRegion{refs: canonicalize(all)}
}

// Intersect is region intersection: pairwise ref intersection across the
// two operands, unioned and recompressed.
func (m MeshRegion) Intersect(o MeshRegion) MeshRegion {
	var out []SubMeshRef
	for _, a := range m.refs {
		for _, b := range o.refs {
			if r, ok := a.intersect(b); ok {
				out = append(out, r)
			}
		}
	}
	return MeshRegion{refs: canonicalize(out)}
}

// complementOf returns the region of everything NOT matched by ref.
func complementOf(ref SubMeshRef) MeshRegion {
	return MeshRegion{refs: canonicalize(ref.complement())}
}

// Complement is the intersection of each element's per-ref complement,
// per §4.B: complement(union of refs) = intersection of complement(ref).
func (m MeshRegion) Complement() MeshRegion {
	if len(m.refs) == 0 {
		return UniversalMeshRegion()
	}
	acc := complementOf(m.refs[0])
	for _, r := range m.refs[1:] {
		acc = acc.Intersect(complementOf(r))
	}
	return acc
}

// Difference is intersect(a, complement(b)).
func (m MeshRegion) Difference(o MeshRegion) MeshRegion {
	return m.Intersect(o.Complement())
}

// IsSubRegion reports whether m is contained in o.
func (m MeshRegion) IsSubRegion(o MeshRegion) bool { return m.Difference(o).Empty() }

// Equal reports set equality via the same two-sided difference test used
// by every region type (§3).
func (m MeshRegion) Equal(o MeshRegion) bool {
	return m.Difference(o).Empty() && o.Difference(m).Empty()
}

func (m MeshRegion) String() string {
	parts := make([]string, len(m.refs))
	for i, r := range m.refs {
		parts[i] = r.String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// Store writes the region's ref count followed by each (path, mask) pair,
// resolving the source project's assert_not_implemented() stub for
// MeshRegion::store against the archive's container framing (§6, §9's
// open question).
func (m MeshRegion) Store(w *archive.Writer) {
	w.WriteLen(len(m.refs))
	for _, r := range m.refs {
		w.WriteU32(r.path & r.mask)
		w.WriteU32(r.mask)
	}
}

// Load reads a region written by Store.
func (m *MeshRegion) Load(r *archive.Reader) error {
	n, err := r.ReadLen()
	if err != nil {
		return err
	}
	refs := make([]SubMeshRef, 0, n)
	for i := 0; i < n; i++ {
		path, err := r.ReadU32()
		if err != nil {
			return err
		}
		mask, err := r.ReadU32()
		if err != nil {
			return err
		}
		refs = append(refs, SubMeshRef{path: path & mask, mask: mask})
	}
	m.refs = refs
	return nil
}

// StoreRefTable writes just the raw (path,mask) pairs with no length
// prefix, used by the partition tree's single contiguous ref-table (§4.F,
// §6) where the count is tracked once for the whole tree instead of once
// per region store.
func StoreRefTable(w *archive.Writer, refs []SubMeshRef) {
	for _, r := range refs {
		w.WriteU32(r.path & r.mask)
		w.WriteU32(r.mask)
	}
}

// LoadRefTable reads n raw (path,mask) pairs with no length prefix.
func LoadRefTable(r *archive.Reader, n int) ([]SubMeshRef, error) {
	refs := make([]SubMeshRef, 0, n)
	for i := 0; i < n; i++ {
		path, err := r.ReadU32()
		if err != nil {
			return nil, err
		}
		mask, err := r.ReadU32()
		if err != nil {
			return nil, err
		}
		refs = append(refs, SubMeshRef{path: path & mask, mask: mask})
	}
	return refs, nil
}

// RefTableFromBytes decodes a raw byte span into a SubMeshRef table, the
// ref-table step of §4.F's interpret() path. Each entry is 8 bytes: a
// little-endian u32 path followed by a little-endian u32 mask. The result
// is a newly allocated slice holding copies of the entries; it does not
// alias buf.
func RefTableFromBytes(buf []byte) []SubMeshRef {
	n := len(buf) / 8
	refs := make([]SubMeshRef, n)
	for i := 0; i < n; i++ {
		b := buf[i*8 : i*8+8]
		path := uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
		mask := uint32(b[4]) | uint32(b[5])<<8 | uint32(b[6])<<16 | uint32(b[7])<<24
		refs[i] = SubMeshRef{path: path & mask, mask: mask}
	}
	return refs
}
