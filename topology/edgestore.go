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

// Package topology implements the mesh's typed forward/backward edge CSRs
// and parent/child hierarchy CSRs (§4.E): a staging builder phase followed
// by a one-shot close() that counting-sorts staged edges into compact,
// shareable arrays.
package topology

import (
	"errors"

	"github.com/numina-hpc/meshkit/archive"
)

// Ref is a dense node index local to one (node kind, level) space. It
// deliberately carries no kind/level tag -- the same discipline
// fragment.NodeRange and region.SubMeshRef follow -- so that package
// topology never needs to import the root package's Schema type and
// create an import cycle with the mesh façade that bundles a Topology.
type Ref uint32

// NoParent is the sentinel stored for a child with no assigned parent.
const NoParent Ref = ^Ref(0)

// ErrAlreadyClosed is returned by AddEdge/SetParent once Close has run.
var ErrAlreadyClosed = errors.New("topology: store already closed")

type edge struct{ Src, Dst Ref }

// EdgeStore holds one edge kind's forward and backward CSR for one level
// (§4.E step 1-3): a staging phase accumulating (src,dst) pairs, then a
// close() that counting-sorts them twice -- once by source for the
// forward CSR, once by target for the backward CSR.
type EdgeStore struct {
	staging []edge
	closed  bool

	ForwardOffsets []uint32
	ForwardTargets []Ref

	BackwardOffsets []uint32
	BackwardTargets []Ref
}

// NewEdgeStore returns an empty, open edge store.
func NewEdgeStore() *EdgeStore { return &EdgeStore{} }

// AddEdge stages (s,t). Invalid once the store is closed.
func (e *EdgeStore) AddEdge(s, t Ref) error {
	if e.closed {
		return ErrAlreadyClosed
	}
	e.staging = append(e.staging, edge{Src: s, Dst: t})
	return nil
}

// Close counting-sorts the staged edges into forward and backward CSRs
// sized for numSources source ids and numTargets target ids, then clears
// the staging list. Per §4.E, close is idempotent: a second call is a
// no-op and returns nil.
func (e *EdgeStore) Close(numSources, numTargets int) error {
	if e.closed {
		return nil
	}
	e.ForwardOffsets, e.ForwardTargets = countingSort(e.staging, numSources,
		func(ed edge) int { return int(ed.Src) },
		func(ed edge) Ref { return ed.Dst },
	)
	e.BackwardOffsets, e.BackwardTargets = countingSort(e.staging, numTargets,
		func(ed edge) int { return int(ed.Dst) },
		func(ed edge) Ref { return ed.Src },
	)
	e.staging = nil
	e.closed = true
	return nil
}

// countingSort performs the two-pass counting sort §4.E describes: count
// occurrences of key(e) to build a prefix-summed offsets array, then a
// second pass places value(e) at its slot, advancing a per-key cursor.
func countingSort(edges []edge, numKeys int, key func(edge) int, value func(edge) Ref) ([]uint32, []Ref) {
	offsets := make([]uint32, numKeys+1)
	for _, ed := range edges {
		offsets[key(ed)+1]++
	}
	for i := 0; i < numKeys; i++ {
		offsets[i+1] += offsets[i]
	}
	cursor := append([]uint32(nil), offsets[:numKeys]...)
	targets := make([]Ref, len(edges))
	for _, ed := range edges {
		k := key(ed)
		targets[cursor[k]] = value(ed)
		cursor[k]++
	}
	return offsets, targets
}

// Closed reports whether Close has run.
func (e *EdgeStore) Closed() bool { return e.closed }

// Sinks returns the targets of every edge out of s, per forward CSR.
func (e *EdgeStore) Sinks(s Ref) []Ref {
	return e.ForwardTargets[e.ForwardOffsets[s]:e.ForwardOffsets[s+1]]
}

// Sources returns the sources of every edge into t, per backward CSR.
func (e *EdgeStore) Sources(t Ref) []Ref {
	return e.BackwardTargets[e.BackwardOffsets[t]:e.BackwardOffsets[t+1]]
}

// Store writes the store's CSRs, per §6's Table<T> framing (length then
// elements). Only valid on a closed store.
func (e *EdgeStore) Store(w *archive.Writer) {
	storeU32Table(w, e.ForwardOffsets)
	storeRefTable(w, e.ForwardTargets)
	storeU32Table(w, e.BackwardOffsets)
	storeRefTable(w, e.BackwardTargets)
}

// Load reads a store written by Store, marking the result closed.
func (e *EdgeStore) Load(r *archive.Reader) error {
	var err error
	if e.ForwardOffsets, err = loadU32Table(r); err != nil {
		return err
	}
	if e.ForwardTargets, err = loadRefTable(r); err != nil {
		return err
	}
	if e.BackwardOffsets, err = loadU32Table(r); err != nil {
		return err
	}
	if e.BackwardTargets, err = loadRefTable(r); err != nil {
		return err
	}
	e.closed = true
	return nil
}

func storeU32Table(w *archive.Writer, vals []uint32) {
	w.WriteLen(len(vals))
	for _, v := range vals {
		w.WriteU32(v)
	}
}

func loadU32Table(r *archive.Reader) ([]uint32, error) {
	n, err := r.ReadLen()
	if err != nil {
		return nil, err
	}
	out := make([]uint32, n)
	for i := range out {
		v, err := r.ReadU32()
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func storeRefTable(w *archive.Writer, refs []Ref) {
	w.WriteLen(len(refs))
	for _, v := range refs {
		w.WriteU32(uint32(v))
	}
}

func loadRefTable(r *archive.Reader) ([]Ref, error) {
	n, err := r.ReadLen()
	if err != nil {
		return nil, err
	}
	out := make([]Ref, n)
	for i := range out {
		v, err := r.ReadU32()
		if err != nil {
			return nil, err
		}
		out[i] = Ref(v)
	}
	return out, nil
}
