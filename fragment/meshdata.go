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
	"github.com/numina-hpc/meshkit/archive"
	"github.com/numina-hpc/meshkit/region"
	"github.com/numina-hpc/meshkit/sparsearray"
)

// MeshDataHandle is the type-erased half of MeshDataFragment[T]'s API
// that does not mention T, letting a mesh façade hold heterogeneous
// named property arrays in one map (§4.G "optional property arrays").
type MeshDataHandle interface {
	CoveredRegion() region.MeshRegion
	Resize(region.MeshRegion)
	Close()
}

// NodeRange identifies the contiguous node ids [Begin,End) a single
// partition-tree sub-tree owns for one (node kind, level) pair. Resolving
// a SubMeshRef to its NodeRange is the owning mesh's job (it alone knows
// the kind/level's node numbering), so MeshDataFragment is handed a
// resolver rather than depending on package partition directly --
// avoiding an import cycle between partition (which owns fragments) and
// fragment.
type NodeRange struct {
	Begin, End uint32
}

// Len returns the number of node ids in the range.
func (r NodeRange) Len() uint32 { return r.End - r.Begin }

// NodeRangeResolver maps a sub-tree reference to the node ids it backs
// for one fixed (node kind, level).
type NodeRangeResolver func(region.SubMeshRef) NodeRange

// MeshDataFragment owns a per-(node kind, level) property array, indexed
// by node id, covering a MeshRegion of partition sub-trees (§4.D).
type MeshDataFragment[T any] struct {
	resolve NodeRangeResolver
	total   uint32

	covered region.MeshRegion
	backing *sparsearray.LargeArray[T]
}

// NewMeshDataFragment constructs a fragment over total node ids [0,total),
// resolving SubMeshRefs to NodeRanges via resolve, initially covering r.
func NewMeshDataFragment[T any](total uint32, resolve NodeRangeResolver, r region.MeshRegion) *MeshDataFragment[T] {
	f := &MeshDataFragment[T]{
		resolve: resolve,
		total:   total,
		backing: sparsearray.New[T](uint64(total)),
	}
	f.allocateRegion(r)
	f.covered = r
	return f
}

func (f *MeshDataFragment[T]) allocateRegion(r region.MeshRegion) {
	for _, ref := range r.Refs() {
		nr := f.resolve(ref)
		if nr.Len() > 0 {
			f.backing.Allocate(uint64(nr.Begin), uint64(nr.End))
		}
	}
}

func (f *MeshDataFragment[T]) freeRegion(r region.MeshRegion) {
	for _, ref := range r.Refs() {
		nr := f.resolve(ref)
		if nr.Len() > 0 {
			f.backing.Free(uint64(nr.Begin), uint64(nr.End))
		}
	}
}

// CoveredRegion returns the fragment's current covered region.
func (f *MeshDataFragment[T]) CoveredRegion() region.MeshRegion { return f.covered }

// Resize computes plus = new-covered, minus = covered-new, allocates for
// plus, frees for minus, and updates covered, per §4.D.
func (f *MeshDataFragment[T]) Resize(newRegion region.MeshRegion) {
	plus := newRegion.Difference(f.covered)
	minus := f.covered.Difference(newRegion)
	f.allocateRegion(plus)
	f.freeRegion(minus)
	f.covered = newRegion
}

// At returns a pointer to the value for node id, which must lie within an
// allocated range.
func (f *MeshDataFragment[T]) At(id uint32) *T { return f.backing.At(uint64(id)) }

// Insert copies the values of r from other into self node-range by
// node-range, requiring r to be a subset of both fragments' covered
// regions.
func (f *MeshDataFragment[T]) Insert(other *MeshDataFragment[T], r region.MeshRegion) error {
	if r.Empty() {
		return nil
	}
	if !r.IsSubRegion(other.covered) || !r.IsSubRegion(f.covered) {
		return ErrPreconditionViolation
	}
	for _, ref := range r.Refs() {
		nr := f.resolve(ref)
		for id := nr.Begin; id < nr.End; id++ {
			*f.backing.At(uint64(id)) = *other.backing.At(uint64(id))
		}
	}
	return nil
}

// Extract writes the region followed by every covered node's value, in
// node-id order within each ref's range.
func (f *MeshDataFragment[T]) Extract(w *archive.Writer, r region.MeshRegion, store func(*archive.Writer, T)) error {
	if !r.IsSubRegion(f.covered) {
		return ErrPreconditionViolation
	}
	r.Store(w)
	for _, ref := range r.Refs() {
		nr := f.resolve(ref)
		for id := nr.Begin; id < nr.End; id++ {
			store(w, *f.backing.At(uint64(id)))
		}
	}
	return nil
}

// InsertFrom reads a region then its node values, applying them to self --
// requiring the decoded region to be a subset of covered.
func (f *MeshDataFragment[T]) InsertFrom(r *archive.Reader, load func(*archive.Reader) (T, error)) error {
	var decoded region.MeshRegion
	if err := decoded.Load(r); err != nil {
		return err
	}
	if !decoded.IsSubRegion(f.covered) {
		return ErrPreconditionViolation
	}
	for _, ref := range decoded.Refs() {
		nr := f.resolve(ref)
		for id := nr.Begin; id < nr.End; id++ {
			v, err := load(r)
			if err != nil {
				return err
			}
			*f.backing.At(uint64(id)) = v
		}
	}
	return nil
}

// Mask produces a façade over the value at node id.
func (f *MeshDataFragment[T]) Mask(id uint32) *Facade[T] { return BorrowFacade(f.At(id)) }

// Close releases the fragment's backing storage.
func (f *MeshDataFragment[T]) Close() { f.backing.Close() }
