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

// strides computes the row-major strides for domain: stride[D-1]=1,
// stride[i]=stride[i+1]*total[i+1], per §4.D.
func strides(domain region.GridBox) []int64 {
	d := domain.Dim()
	s := make([]int64, d)
	if d == 0 {
		return s
	}
	s[d-1] = 1
	for i := d - 2; i >= 0; i-- {
		s[i] = s[i+1] * (domain.Max[i+1] - domain.Min[i+1])
	}
	return s
}

// flatten maps a grid point to its row-major offset within domain:
// flatten(p) = sum(p[i] * stride[i]).
func flatten(domain region.GridBox, s []int64, p region.GridPoint) uint64 {
	var off int64
	for i, v := range p {
		off += (v - domain.Min[i]) * s[i]
	}
	return uint64(off)
}

func totalSize(domain region.GridBox) uint64 {
	if domain.Empty() {
		return 0
	}
	return uint64(domain.Volume())
}

// GridFragment owns data for a region of a dense grid data item, backed
// by one large sparse array of length equal to the domain's total
// element count (§4.D).
type GridFragment[T any] struct {
	domain  region.GridBox
	covered region.GridRegion
	strides []int64
	backing *sparsearray.LargeArray[T]
}

// NewGridFragment constructs a fragment over domain, initially covering
// r (r must be contained in domain).
func NewGridFragment[T any](domain region.GridBox, r region.GridRegion) *GridFragment[T] {
	f := &GridFragment[T]{
		domain:  domain,
		strides: strides(domain),
		backing: sparsearray.New[T](totalSize(domain)),
	}
	f.allocateRegion(r)
	f.covered = r
	return f
}

func (f *GridFragment[T]) allocateRegion(r region.GridRegion) {
	for _, box := range r.Boxes() {
		for _, ln := range region.ScanLines(box) {
			lo := flatten(f.domain, f.strides, ln.A)
			hi := flatten(f.domain, f.strides, ln.B)
			f.backing.Allocate(lo, hi)
		}
	}
}

func (f *GridFragment[T]) freeRegion(r region.GridRegion) {
	for _, box := range r.Boxes() {
		for _, ln := range region.ScanLines(box) {
			lo := flatten(f.domain, f.strides, ln.A)
			hi := flatten(f.domain, f.strides, ln.B)
			f.backing.Free(lo, hi)
		}
	}
}

// CoveredRegion returns the fragment's current covered region.
func (f *GridFragment[T]) CoveredRegion() region.GridRegion { return f.covered }

// TotalSize returns the backing array's fixed length -- resize never
// changes this for grid fragments, per §4.D.
func (f *GridFragment[T]) TotalSize() uint64 { return f.backing.Len() }

// Resize computes plus = new-covered, minus = covered-new, allocates for
// plus, frees for minus, and updates covered, per §4.D.
func (f *GridFragment[T]) Resize(newRegion region.GridRegion) {
	plus := newRegion.Difference(f.covered)
	minus := f.covered.Difference(newRegion)
	f.allocateRegion(plus)
	f.freeRegion(minus)
	f.covered = newRegion
}

// Insert copies the cells of r from other into self, line by line,
// requiring r to be a subset of both fragments' covered regions.
func (f *GridFragment[T]) Insert(other *GridFragment[T], r region.GridRegion) error {
	if r.Empty() {
		return nil
	}
	if !r.IsSubRegion(other.covered) || !r.IsSubRegion(f.covered) {
		return ErrPreconditionViolation
	}
	for _, box := range r.Boxes() {
		for _, ln := range region.ScanLines(box) {
			srcLo := flatten(other.domain, other.strides, ln.A)
			srcHi := flatten(other.domain, other.strides, ln.B)
			dstLo := flatten(f.domain, f.strides, ln.A)
			n := srcHi - srcLo
			for i := uint64(0); i < n; i++ {
				*f.backing.At(dstLo + i) = *other.backing.At(srcLo + i)
			}
		}
	}
	return nil
}

// At returns a pointer to the cell at p, which must lie in the covered
// region.
func (f *GridFragment[T]) At(p region.GridPoint) *T {
	return f.backing.At(flatten(f.domain, f.strides, p))
}

// Extract writes the region followed by every covered cell, line by
// line, in row-major order.
func (f *GridFragment[T]) Extract(w *archive.Writer, r region.GridRegion, store func(*archive.Writer, T)) error {
	if !r.IsSubRegion(f.covered) {
		return ErrPreconditionViolation
	}
	r.Store(w)
	for _, box := range r.Boxes() {
		for _, ln := range region.ScanLines(box) {
			lo := flatten(f.domain, f.strides, ln.A)
			hi := flatten(f.domain, f.strides, ln.B)
			for i := lo; i < hi; i++ {
				store(w, *f.backing.At(i))
			}
		}
	}
	return nil
}

// InsertFrom reads a region then its cell data, applying it to self --
// requiring the decoded region to be a subset of covered.
func (f *GridFragment[T]) InsertFrom(r *archive.Reader, load func(*archive.Reader) (T, error)) error {
	var decoded region.GridRegion
	decoded.Domain = f.domain
	if err := decoded.Load(r); err != nil {
		return err
	}
	if !decoded.IsSubRegion(f.covered) {
		return ErrPreconditionViolation
	}
	for _, box := range decoded.Boxes() {
		for _, ln := range region.ScanLines(box) {
			lo := flatten(f.domain, f.strides, ln.A)
			hi := flatten(f.domain, f.strides, ln.B)
			for i := lo; i < hi; i++ {
				v, err := load(r)
				if err != nil {
					return err
				}
				*f.backing.At(i) = v
			}
		}
	}
	return nil
}

// Mask produces a façade over the cell at p.
func (f *GridFragment[T]) Mask(p region.GridPoint) *Facade[T] {
	return BorrowFacade(f.At(p))
}

// Close releases the fragment's backing storage.
func (f *GridFragment[T]) Close() { f.backing.Close() }
