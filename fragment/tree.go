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

// TreeFragment owns data for a region of the static balanced binary tree
// data item: one optional root sub-tree array plus NumLeafTrees optional
// leaf sub-tree arrays, each sized (2^subDepth)-1, addressed by the
// element's 1-based heap index within its local sub-tree (§4.D).
type TreeFragment[T any] struct {
	depth     int
	rootDepth int
	leafDepth int

	covered region.TreeRegion

	root  []T
	hasRoot bool

	leaves    [][]T
	hasLeaf   []bool
}

func subtreeArraySize(subDepth int) int { return (1 << uint(subDepth)) - 1 }

// NewTreeFragment constructs a fragment over a static balanced tree of
// the given total depth, initially covering r.
func NewTreeFragment[T any](depth int, r region.TreeRegion) *TreeFragment[T] {
	rootDepth := region.RootDepth(depth)
	numLeaves := region.NumLeafTrees(rootDepth)
	f := &TreeFragment[T]{
		depth:     depth,
		rootDepth: rootDepth,
		leafDepth: depth - rootDepth,
		leaves:    make([][]T, numLeaves),
		hasLeaf:   make([]bool, numLeaves),
	}
	f.allocateRegion(r)
	f.covered = r
	return f
}

func (f *TreeFragment[T]) allocateRegion(r region.TreeRegion) {
	if r.HasRoot() && !f.hasRoot {
		f.root = make([]T, subtreeArraySize(f.rootDepth))
		f.hasRoot = true
	}
	for i := range f.leaves {
		if r.HasLeaf(i) && !f.hasLeaf[i] {
			f.leaves[i] = make([]T, subtreeArraySize(f.leafDepth))
			f.hasLeaf[i] = true
		}
	}
}

func (f *TreeFragment[T]) freeRegion(r region.TreeRegion) {
	if r.HasRoot() && f.hasRoot {
		f.root = nil
		f.hasRoot = false
	}
	for i := range f.leaves {
		if r.HasLeaf(i) && f.hasLeaf[i] {
			f.leaves[i] = nil
			f.hasLeaf[i] = false
		}
	}
}

// CoveredRegion returns the fragment's current covered region.
func (f *TreeFragment[T]) CoveredRegion() region.TreeRegion { return f.covered }

// Resize allocates/frees whole sub-tree arrays per §4.D: plus = new -
// covered, minus = covered - new.
func (f *TreeFragment[T]) Resize(newRegion region.TreeRegion) {
	plus := newRegion.Difference(f.covered)
	minus := f.covered.Difference(newRegion)
	f.allocateRegion(plus)
	f.freeRegion(minus)
	f.covered = newRegion
}

// At returns a pointer to the element at addr, which must lie within an
// allocated sub-tree.
func (f *TreeFragment[T]) At(addr region.TreeAddr) *T {
	if addr.Subtree == region.RootSubtree {
		return &f.root[addr.Index-1]
	}
	return &f.leaves[addr.Subtree][addr.Index-1]
}

// Insert copies whole sub-tree arrays of r from other into self, per
// §4.D ("transfer copies ... them whole"), requiring r to be a subset of
// both fragments' covered regions.
func (f *TreeFragment[T]) Insert(other *TreeFragment[T], r region.TreeRegion) error {
	if r.Empty() {
		return nil
	}
	if !r.IsSubRegion(other.covered) || !r.IsSubRegion(f.covered) {
		return ErrPreconditionViolation
	}
	if r.HasRoot() {
		copy(f.root, other.root)
	}
	for i := range f.leaves {
		if r.HasLeaf(i) {
			copy(f.leaves[i], other.leaves[i])
		}
	}
	return nil
}

// Extract writes the region followed by every covered sub-tree array
// whole, per §4.D.
func (f *TreeFragment[T]) Extract(w *archive.Writer, r region.TreeRegion, store func(*archive.Writer, T)) error {
	if !r.IsSubRegion(f.covered) {
		return ErrPreconditionViolation
	}
	r.Store(w)
	if r.HasRoot() {
		for _, v := range f.root {
			store(w, v)
		}
	}
	for i := range f.leaves {
		if r.HasLeaf(i) {
			for _, v := range f.leaves[i] {
				store(w, v)
			}
		}
	}
	return nil
}

// InsertFrom reads a region then its sub-tree arrays whole, applying them
// to self -- requiring the decoded region to be a subset of covered.
func (f *TreeFragment[T]) InsertFrom(r *archive.Reader, load func(*archive.Reader) (T, error)) error {
	var decoded region.TreeRegion
	if err := decoded.Load(r); err != nil {
		return err
	}
	if !decoded.IsSubRegion(f.covered) {
		return ErrPreconditionViolation
	}
	if decoded.HasRoot() {
		for i := range f.root {
			v, err := load(r)
			if err != nil {
				return err
			}
			f.root[i] = v
		}
	}
	for i := range f.leaves {
		if decoded.HasLeaf(i) {
			for j := range f.leaves[i] {
				v, err := load(r)
				if err != nil {
					return err
				}
				f.leaves[i][j] = v
			}
		}
	}
	return nil
}

// Mask produces a façade over the element at addr.
func (f *TreeFragment[T]) Mask(addr region.TreeAddr) *Facade[T] {
	return BorrowFacade(f.At(addr))
}
