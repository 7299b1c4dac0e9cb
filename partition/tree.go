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

// Package partition implements the fixed-depth binary partition tree
// (§4.F): Ahnentafel-numbered slots, each holding a per-(kind,level) node
// range and up to six region-store closures, with an open (heap-owned
// MeshRegion) and closed ((offset,length) view into one shared ref-table)
// lifecycle.
package partition

import (
	"errors"
	"math/bits"

	"github.com/numina-hpc/meshkit/archive"
	"github.com/numina-hpc/meshkit/region"
)

// NodeRange is the half-open range [Begin,End) of node ids of one (kind,
// level) a sub-tree owns. Defined locally (rather than reusing the root
// package's type) so that partition never imports the root package that
// bundles a *Tree, the same decoupling topology.Ref and
// fragment.NodeRange follow.
type NodeRange struct {
	Begin, End uint32
}

// Len reports the number of node ids in the range.
func (r NodeRange) Len() uint32 { return r.End - r.Begin }

// Mid splits the range the way the naive partitioner does:
// mid = begin + (end-begin)/2.
func (r NodeRange) Mid() uint32 { return r.Begin + (r.End-r.Begin)/2 }

// Split returns the lower and upper halves of r.
func (r NodeRange) Split() (left, right NodeRange) {
	mid := r.Mid()
	return NodeRange{r.Begin, mid}, NodeRange{mid, r.End}
}

// Dims fixes the schema-derived dimensions a Tree is built and (de)serialized
// against: node levels and per-level kind counts, and how many edge-kind and
// hierarchy-kind closure slots each Node carries. Plain ints, not the root
// package's Schema, for the same import-cycle reason as NodeRange.
type Dims struct {
	NumLevels int
	NumKinds  []int // len NumLevels
	NumEdges  int   // number of declared edge-kind/level instances
	NumHiers  int   // number of declared hierarchy-kind instances
}

// ErrNotClosed is returned by any closed-only operation on an open tree,
// and by any open-only operation on a closed one.
var ErrNotClosed = errors.New("partition: tree is not closed")

// Partitioner builds an open Tree over the given node counts, fixing the
// ranges and initial closures every slot starts with. NaivePartitioner and
// TopologyAwarePartitioner are the two implementations §4.F and the
// supplemented topology-aware pass provide.
type Partitioner interface {
	Build(depth int, dims Dims, nodeCounts [][]uint32) *Tree
}

// RegionStore is one slot's closure for one edge/hierarchy instance: a
// heap-owned MeshRegion while the tree is open, or an (offset,length) view
// into the tree's shared ref-table once closed (§4.F).
type RegionStore struct {
	open   bool
	region region.MeshRegion
	offset uint64
	length uint64
}

func openRegionStore(r region.MeshRegion) RegionStore { return RegionStore{open: true, region: r} }

// Region resolves the store's MeshRegion, given the owning tree's
// ref-table (ignored while open).
func (s RegionStore) Region(refTable []region.SubMeshRef) region.MeshRegion {
	if s.open {
		return s.region
	}
	return region.MeshRegionFromSortedRefs(refTable[s.offset : s.offset+s.length])
}

// Node is one partition-tree slot: per-(level,kind) node ranges plus the
// six families of region-store closures (§3 "partition tree").
type Node struct {
	Ranges [][]NodeRange // [level][kind]

	Forward  []RegionStore // len Dims.NumEdges
	Backward []RegionStore // len Dims.NumEdges

	ParentClosure []RegionStore // len Dims.NumHiers
	ChildClosure  []RegionStore // len Dims.NumHiers
}

func newNode(dims Dims) Node {
	ranges := make([][]NodeRange, dims.NumLevels)
	for l := range ranges {
		ranges[l] = make([]NodeRange, dims.NumKinds[l])
	}
	return Node{
		Ranges:        ranges,
		Forward:       make([]RegionStore, dims.NumEdges),
		Backward:      make([]RegionStore, dims.NumEdges),
		ParentClosure: make([]RegionStore, dims.NumHiers),
		ChildClosure:  make([]RegionStore, dims.NumHiers),
	}
}

// Tree is the fixed-depth partition tree of §4.F: 2^(depth+1) slots
// numbered Ahnentafel-style (root=1, left(i)=2i, right(i)=2i+1).
type Tree struct {
	depth  int
	dims   Dims
	slots  []Node // index 0 unused, valid range [1, 2^(depth+1)-1]
	closed bool

	refTable []region.SubMeshRef
}

// Depth reports the tree's fixed depth D.
func (t *Tree) Depth() int { return t.depth }

// NumSlots reports 2^(depth+1), the fixed slot count (including the
// unused slot 0).
func (t *Tree) NumSlots() int { return len(t.slots) }

// Closed reports whether the tree has completed its open->closed
// transition.
func (t *Tree) Closed() bool { return t.closed }

// LeftChild and RightChild implement the Ahnentafel numbering.
func LeftChild(slot int) int  { return 2 * slot }
func RightChild(slot int) int { return 2*slot + 1 }

// IsLeaf reports whether slot is one of the tree's 2^depth leaves.
func (t *Tree) IsLeaf(slot int) bool { return slot >= 1<<uint(t.depth) }

// SlotPath returns the SubTreeRef addressing slot, built by walking the
// Ahnentafel bit pattern from root to slot via SubTreeRef.Left/Right.
func SlotPath(slot int) region.SubTreeRef {
	levelOfSlot := bits.Len(uint(slot)) - 1
	ref := region.RootSubTreeRef()
	for b := levelOfSlot - 1; b >= 0; b-- {
		if (slot>>uint(b))&1 == 0 {
			ref = ref.Left()
		} else {
			ref = ref.Right()
		}
	}
	return ref
}

// NodeRangeAt returns slot's node range for (level,kind).
func (t *Tree) NodeRangeAt(slot, level, kind int) NodeRange { return t.slots[slot].Ranges[level][kind] }

// ForwardClosure returns slot's forward-edge closure for edge instance i.
func (t *Tree) ForwardClosure(slot, i int) region.MeshRegion {
	return t.slots[slot].Forward[i].Region(t.refTable)
}

// BackwardClosure returns slot's backward-edge closure for edge instance i.
func (t *Tree) BackwardClosure(slot, i int) region.MeshRegion {
	return t.slots[slot].Backward[i].Region(t.refTable)
}

// ParentClosureAt returns slot's parent-hierarchy closure for hierarchy
// instance i.
func (t *Tree) ParentClosureAt(slot, i int) region.MeshRegion {
	return t.slots[slot].ParentClosure[i].Region(t.refTable)
}

// ChildClosureAt returns slot's child-hierarchy closure for hierarchy
// instance i.
func (t *Tree) ChildClosureAt(slot, i int) region.MeshRegion {
	return t.slots[slot].ChildClosure[i].Region(t.refTable)
}

// NodeRangeForRef resolves a SubMeshRef to the single contiguous NodeRange
// it spans for (level,kind). Valid because every SubMeshRef this package
// produces (leaf refs and their unions/intersections/complements, all
// built from sibling-fusion of full-depth leaf addresses) has a
// contiguous-prefix mask: it names exactly one aligned sub-tree of the
// partition tree, and the naive range-halving keeps leaf node ranges
// contiguous and increasing in slot order, so that sub-tree's combined
// range is contiguous too.
func (t *Tree) NodeRangeForRef(level, kind int, ref region.SubMeshRef) NodeRange {
	d := ref.Depth()
	slot := 1
	for i := 0; i < d; i++ {
		if (ref.Path()>>uint(i))&1 == 0 {
			slot = LeftChild(slot)
		} else {
			slot = RightChild(slot)
		}
	}
	span := t.depth - d
	leftmost := slot << uint(span)
	rightmost := leftmost | ((1 << uint(span)) - 1)
	return NodeRange{
		Begin: t.slots[leftmost].Ranges[level][kind].Begin,
		End:   t.slots[rightmost].Ranges[level][kind].End,
	}
}

// Close performs the open->closed transition (§4.F step "state
// transition"): flattens every slot's region stores into one contiguous
// ref-table and replaces each with an (offset,length) view. Idempotent.
func (t *Tree) Close() {
	if t.closed {
		return
	}
	var refs []region.SubMeshRef
	assign := func(s *RegionStore) {
		rlist := s.region.Refs()
		off := uint64(len(refs))
		refs = append(refs, rlist...)
		*s = RegionStore{offset: off, length: uint64(len(rlist))}
	}
	for i := 1; i < len(t.slots); i++ {
		n := &t.slots[i]
		for j := range n.Forward {
			assign(&n.Forward[j])
		}
		for j := range n.Backward {
			assign(&n.Backward[j])
		}
		for j := range n.ParentClosure {
			assign(&n.ParentClosure[j])
		}
		for j := range n.ChildClosure {
			assign(&n.ChildClosure[j])
		}
	}
	t.refTable = refs
	t.closed = true
}

func writeNode(w *archive.Writer, n Node, dims Dims) {
	for l := 0; l < dims.NumLevels; l++ {
		for k := 0; k < dims.NumKinds[l]; k++ {
			w.WriteU32(n.Ranges[l][k].Begin)
			w.WriteU32(n.Ranges[l][k].End)
		}
	}
	writeStores := func(stores []RegionStore) {
		for _, s := range stores {
			w.WriteU64(s.offset)
			w.WriteU64(s.length)
		}
	}
	writeStores(n.Forward)
	writeStores(n.Backward)
	writeStores(n.ParentClosure)
	writeStores(n.ChildClosure)
}

func readNode(r *archive.Reader, dims Dims) (Node, error) {
	n := newNode(dims)
	for l := 0; l < dims.NumLevels; l++ {
		for k := 0; k < dims.NumKinds[l]; k++ {
			begin, err := r.ReadU32()
			if err != nil {
				return n, err
			}
			end, err := r.ReadU32()
			if err != nil {
				return n, err
			}
			n.Ranges[l][k] = NodeRange{Begin: begin, End: end}
		}
	}
	readStores := func(stores []RegionStore) error {
		for i := range stores {
			off, err := r.ReadU64()
			if err != nil {
				return err
			}
			length, err := r.ReadU64()
			if err != nil {
				return err
			}
			stores[i] = RegionStore{offset: off, length: length}
		}
		return nil
	}
	if err := readStores(n.Forward); err != nil {
		return n, err
	}
	if err := readStores(n.Backward); err != nil {
		return n, err
	}
	if err := readStores(n.ParentClosure); err != nil {
		return n, err
	}
	if err := readStores(n.ChildClosure); err != nil {
		return n, err
	}
	return n, nil
}

// Store writes a closed tree per §6's "File format of a closed partition
// tree": u64 num_refs, then every slot (including the unused slot 0, to
// keep the on-disk node array a fixed 2^(depth+1)-element table), then
// the ref-table.
func (t *Tree) Store(w *archive.Writer) error {
	if !t.closed {
		return ErrNotClosed
	}
	w.WriteLen(len(t.refTable))
	for i := 0; i < len(t.slots); i++ {
		writeNode(w, t.slots[i], t.dims)
	}
	region.StoreRefTable(w, t.refTable)
	return nil
}

// Load reconstructs a closed tree written by Store, given the same depth
// and dims used to build it.
func Load(r *archive.Reader, depth int, dims Dims) (*Tree, error) {
	numRefs, err := r.ReadLen()
	if err != nil {
		return nil, err
	}
	total := 1 << uint(depth+1)
	t := &Tree{depth: depth, dims: dims, slots: make([]Node, total), closed: true}
	for i := 0; i < total; i++ {
		n, err := readNode(r, dims)
		if err != nil {
			return nil, err
		}
		t.slots[i] = n
	}
	refs, err := region.LoadRefTable(r, numRefs)
	if err != nil {
		return nil, err
	}
	t.refTable = refs
	return t, nil
}

// Interpret reconstructs a closed tree from a raw buffer (the interpret
// leg of the H-triad, §4.H): every Node's ranges and (offset,length)
// stores are decoded the same as Load, and the trailing SubMeshRef table
// is taken from buf as one byte span and decoded by
// region.RefTableFromBytes, which copies it into a new slice. It returns alongside the tree the number of
// leading bytes of buf the tree occupied, so a caller embedding the tree in
// a larger buffer (e.g. a full mesh file, §6) knows where to resume reading.
func Interpret(buf []byte, depth int, dims Dims) (*Tree, int, error) {
	r := archive.NewReader(buf)
	numRefs, err := r.ReadLen()
	if err != nil {
		return nil, 0, err
	}
	total := 1 << uint(depth+1)
	t := &Tree{depth: depth, dims: dims, slots: make([]Node, total), closed: true}
	for i := 0; i < total; i++ {
		n, err := readNode(r, dims)
		if err != nil {
			return nil, 0, err
		}
		t.slots[i] = n
	}
	want := numRefs * 8
	tail, err := r.ReadBytes(want)
	if err != nil {
		return nil, 0, err
	}
	t.refTable = region.RefTableFromBytes(tail)
	return t, r.Pos(), nil
}
