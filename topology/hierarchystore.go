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

package topology

import "github.com/numina-hpc/meshkit/archive"

// HierarchyStore holds one hierarchy kind's parent table and child CSR
// between a parent level P and its child level C = P-1 (§4.E): a staging
// phase tracking a sentinel-initialized parent-of-child table plus a
// sparse per-parent children list, then a close() that converts the
// children lists to CSR.
type HierarchyStore struct {
	closed bool

	parentOf []Ref   // sentinel NoParent until assigned
	staging  [][]Ref // per-parent sparse children list, cleared on close

	ChildOffsets []uint32
	ChildTargets []Ref
}

// NewHierarchyStore returns an open store for numParents parents and
// numChildren children, every child initially unassigned (NoParent).
func NewHierarchyStore(numParents, numChildren int) *HierarchyStore {
	parentOf := make([]Ref, numChildren)
	for i := range parentOf {
		parentOf[i] = NoParent
	}
	return &HierarchyStore{
		parentOf: parentOf,
		staging:  make([][]Ref, numParents),
	}
}

// SetParent assigns child's parent, appending child to parent's staged
// children list. Invalid once the store is closed.
func (h *HierarchyStore) SetParent(child, parent Ref) error {
	if h.closed {
		return ErrAlreadyClosed
	}
	h.parentOf[child] = parent
	h.staging[parent] = append(h.staging[parent], child)
	return nil
}

// Close converts the staged per-parent children lists into a CSR, keeping
// each parent's children in SetParent order, and drops the staging lists.
// The parent table is kept, with NoParent still marking unassigned
// children. Idempotent: a second call is a no-op.
func (h *HierarchyStore) Close() {
	if h.closed {
		return
	}
	numParents := len(h.staging)
	h.ChildOffsets = make([]uint32, numParents+1)
	for p, kids := range h.staging {
		h.ChildOffsets[p+1] = h.ChildOffsets[p] + uint32(len(kids))
	}
	h.ChildTargets = make([]Ref, h.ChildOffsets[numParents])
	for p, kids := range h.staging {
		copy(h.ChildTargets[h.ChildOffsets[p]:h.ChildOffsets[p+1]], kids)
	}
	h.staging = nil
	h.closed = true
}

// Closed reports whether Close has run.
func (h *HierarchyStore) Closed() bool { return h.closed }

// GetParent returns the owning parent ref of child, or NoParent.
func (h *HierarchyStore) GetParent(child Ref) Ref { return h.parentOf[child] }

// GetChildren returns parent's children, per the child CSR.
func (h *HierarchyStore) GetChildren(parent Ref) []Ref {
	return h.ChildTargets[h.ChildOffsets[parent]:h.ChildOffsets[parent+1]]
}

// Store writes the parent table followed by the child CSR, per §6.
func (h *HierarchyStore) Store(w *archive.Writer) {
	storeRefTable(w, h.parentOf)
	storeU32Table(w, h.ChildOffsets)
	storeRefTable(w, h.ChildTargets)
}

// Load reads a store written by Store, marking the result closed.
func (h *HierarchyStore) Load(r *archive.Reader) error {
	var err error
	if h.parentOf, err = loadRefTable(r); err != nil {
		return err
	}
	if h.ChildOffsets, err = loadU32Table(r); err != nil {
		return err
	}
	if h.ChildTargets, err = loadRefTable(r); err != nil {
		return err
	}
	h.closed = true
	return nil
}
