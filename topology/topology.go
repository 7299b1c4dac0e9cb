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

import (
	"fmt"

	"github.com/numina-hpc/meshkit/archive"
)

// EdgeSpec names one (edge kind, level) instance: which node kinds the
// edge runs source -> target on level Level. Topology is handed plain
// int kind/level indices rather than the root package's Schema type to
// avoid an import cycle with the mesh façade that bundles a Topology --
// the same decoupling fragment.NodeRangeResolver uses.
type EdgeSpec struct {
	Kind, Level           int
	SourceKind, TargetKind int
}

// HierarchySpec names one (hierarchy kind) instance between parent level
// ChildLevel+1 and child level ChildLevel.
type HierarchySpec struct {
	Kind, ChildLevel         int
	ParentKind, ChildKind int
}

// Topology bundles every edge store and hierarchy store declared by a
// schema, plus the per-(level,kind) node counts they were sized against.
type Topology struct {
	numLevels  int
	nodeCounts [][]uint32 // [level][kind]

	edgeSpecs  []EdgeSpec
	edgeStores []*EdgeStore

	hierSpecs  []HierarchySpec
	hierStores []*HierarchyStore
}

// NodeCount returns the number of nodes of kind on level.
func (t *Topology) NodeCount(level, kind int) uint32 { return t.nodeCounts[level][kind] }

// Edges returns the closed edge store for the edge spec at index i.
func (t *Topology) Edges(i int) *EdgeStore { return t.edgeStores[i] }

// Hierarchy returns the closed hierarchy store for the hierarchy spec at
// index i.
func (t *Topology) Hierarchy(i int) *HierarchyStore { return t.hierStores[i] }

// Builder stages a Topology's node counts and edges/parents before a
// single Close call materializes every CSR.
type Builder struct {
	t *Topology
}

// NewBuilder returns a builder for a topology over numLevels levels with
// the given node counts ([level][kind]) and declared edge/hierarchy
// specs. Every store starts open.
func NewBuilder(numLevels int, nodeCounts [][]uint32, edgeSpecs []EdgeSpec, hierSpecs []HierarchySpec) *Builder {
	t := &Topology{
		numLevels:  numLevels,
		nodeCounts: nodeCounts,
		edgeSpecs:  edgeSpecs,
		hierSpecs:  hierSpecs,
		edgeStores: make([]*EdgeStore, len(edgeSpecs)),
		hierStores: make([]*HierarchyStore, len(hierSpecs)),
	}
	for i := range edgeSpecs {
		t.edgeStores[i] = NewEdgeStore()
	}
	for i, spec := range hierSpecs {
		numChildren := int(nodeCounts[spec.ChildLevel][spec.ChildKind])
		numParents := int(nodeCounts[spec.ChildLevel+1][spec.ParentKind])
		t.hierStores[i] = NewHierarchyStore(numParents, numChildren)
	}
	return &Builder{t: t}
}

// AddEdge stages an edge on the edge spec at index i.
func (b *Builder) AddEdge(i int, s, t Ref) error { return b.t.edgeStores[i].AddEdge(s, t) }

// SetParent assigns child's parent on the hierarchy spec at index i.
func (b *Builder) SetParent(i int, child, parent Ref) error {
	return b.t.hierStores[i].SetParent(child, parent)
}

// Close closes every edge store and hierarchy store and returns the
// resulting immutable Topology.
func (b *Builder) Close() (*Topology, error) {
	t := b.t
	for i, spec := range t.edgeSpecs {
		numSources := int(t.nodeCounts[spec.Level][spec.SourceKind])
		numTargets := int(t.nodeCounts[spec.Level][spec.TargetKind])
		if err := t.edgeStores[i].Close(numSources, numTargets); err != nil {
			return nil, err
		}
	}
	for _, hs := range t.hierStores {
		hs.Close()
	}
	return t, nil
}

// CheckInvariants validates §4.E's post-close invariants: every edge
// store's offsets are monotone non-decreasing, the final forward offset
// equals the target-table length, and every forward edge has a matching
// backward edge.
func (t *Topology) CheckInvariants() error {
	for i, es := range t.edgeStores {
		if !es.Closed() {
			return fmt.Errorf("topology: edge store %d not closed", i)
		}
		if err := checkMonotone(es.ForwardOffsets); err != nil {
			return fmt.Errorf("topology: edge store %d forward: %w", i, err)
		}
		if err := checkMonotone(es.BackwardOffsets); err != nil {
			return fmt.Errorf("topology: edge store %d backward: %w", i, err)
		}
		if int(es.ForwardOffsets[len(es.ForwardOffsets)-1]) != len(es.ForwardTargets) {
			return fmt.Errorf("topology: edge store %d forward offsets/targets length mismatch", i)
		}
		for s := 0; s < len(es.ForwardOffsets)-1; s++ {
			for _, dst := range es.Sinks(Ref(s)) {
				found := false
				for _, src := range es.Sources(dst) {
					if int(src) == s {
						found = true
						break
					}
				}
				if !found {
					return fmt.Errorf("topology: edge store %d: (%d,%d) missing matching backward edge", i, s, dst)
				}
			}
		}
	}
	return nil
}

func checkMonotone(offsets []uint32) error {
	for i := 1; i < len(offsets); i++ {
		if offsets[i] < offsets[i-1] {
			return fmt.Errorf("offsets not monotone at %d", i)
		}
	}
	return nil
}

// Store writes every edge store then every hierarchy store, in spec
// declaration order, per §6's "File format of a mesh" topology section.
func (t *Topology) Store(w *archive.Writer) {
	for l := 0; l < t.numLevels; l++ {
		for _, n := range t.nodeCounts[l] {
			w.WriteU64(uint64(n))
		}
	}
	for _, es := range t.edgeStores {
		es.Store(w)
	}
	for _, hs := range t.hierStores {
		hs.Store(w)
	}
}

// Load reconstructs a Topology written by Store, given the same
// dimensions and specs used to build it.
func Load(r *archive.Reader, numLevels int, numKinds []int, edgeSpecs []EdgeSpec, hierSpecs []HierarchySpec) (*Topology, error) {
	t := &Topology{
		numLevels:  numLevels,
		nodeCounts: make([][]uint32, numLevels),
		edgeSpecs:  edgeSpecs,
		hierSpecs:  hierSpecs,
		edgeStores: make([]*EdgeStore, len(edgeSpecs)),
		hierStores: make([]*HierarchyStore, len(hierSpecs)),
	}
	for l := 0; l < numLevels; l++ {
		t.nodeCounts[l] = make([]uint32, numKinds[l])
		for k := range t.nodeCounts[l] {
			v, err := r.ReadU64()
			if err != nil {
				return nil, err
			}
			t.nodeCounts[l][k] = uint32(v)
		}
	}
	for i := range edgeSpecs {
		es := NewEdgeStore()
		if err := es.Load(r); err != nil {
			return nil, err
		}
		t.edgeStores[i] = es
	}
	for i := range hierSpecs {
		hs := &HierarchyStore{}
		if err := hs.Load(r); err != nil {
			return nil, err
		}
		t.hierStores[i] = hs
	}
	return t, nil
}
