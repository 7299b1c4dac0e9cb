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
)

// ScalarFragment owns zero or one value of type T, per §4.D.
type ScalarFragment[T any] struct {
	covered region.Scalar
	value   T
}

// NewScalarFragment constructs a fragment covering r (absent or present).
func NewScalarFragment[T any](r region.Scalar) *ScalarFragment[T] {
	return &ScalarFragment[T]{covered: r}
}

// CoveredRegion returns the fragment's current covered region.
func (f *ScalarFragment[T]) CoveredRegion() region.Scalar { return f.covered }

// Resize reallocates storage for newRegion; for Scalar this is a no-op on
// storage (there is always exactly one value slot) beyond updating
// covered and, when the value becomes absent, zeroing it.
func (f *ScalarFragment[T]) Resize(newRegion region.Scalar) {
	if newRegion.Empty() {
		var zero T
		f.value = zero
	}
	f.covered = newRegion
}

// Insert copies the value from other into self when r is non-empty,
// requiring r to be a subset of both fragments' covered regions.
func (f *ScalarFragment[T]) Insert(other *ScalarFragment[T], r region.Scalar) error {
	if r.Empty() {
		return nil
	}
	if !r.IsSubRegion(other.covered) || !r.IsSubRegion(f.covered) {
		return ErrPreconditionViolation
	}
	f.value = other.value
	return nil
}

// Set stores v, requiring the fragment to currently cover a present
// region -- per §9's open question, an assignment on an absent fragment
// is rejected rather than silently accepted.
func (f *ScalarFragment[T]) Set(v T) error {
	if f.covered.Empty() {
		return ErrPreconditionViolation
	}
	f.value = v
	return nil
}

// Get returns the current value and whether the fragment covers Present.
func (f *ScalarFragment[T]) Get() (T, bool) {
	return f.value, !f.covered.Empty()
}

// Extract writes the covered region followed by the cell value (if
// present) to w.
func (f *ScalarFragment[T]) Extract(w *archive.Writer, r region.Scalar, store func(*archive.Writer, T)) error {
	if !r.IsSubRegion(f.covered) {
		return ErrPreconditionViolation
	}
	r.Store(w)
	if !r.Empty() {
		store(w, f.value)
	}
	return nil
}

// InsertFrom reads a region then, if present, a cell value, and applies
// it to self -- requiring the decoded region to be a subset of covered.
func (f *ScalarFragment[T]) InsertFrom(r *archive.Reader, load func(*archive.Reader) (T, error)) error {
	var decoded region.Scalar
	if err := decoded.Load(r); err != nil {
		return err
	}
	if !decoded.IsSubRegion(f.covered) {
		return ErrPreconditionViolation
	}
	if !decoded.Empty() {
		v, err := load(r)
		if err != nil {
			return err
		}
		f.value = v
	}
	return nil
}

// Mask produces a façade over the fragment's single cell.
func (f *ScalarFragment[T]) Mask() *Facade[T] { return BorrowFacade(&f.value) }
