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

package meshkit

import (
	"fmt"

	"github.com/numina-hpc/meshkit/archive"
	"github.com/numina-hpc/meshkit/fragment"
	"github.com/numina-hpc/meshkit/partition"
	"github.com/numina-hpc/meshkit/region"
	"github.com/numina-hpc/meshkit/topology"
)

// Mesh bundles a closed topology store, a closed partition tree, and
// named mesh-data property arrays into one immutable, queryable façade
// (§4.G). It is built once (via a Builder/Partitioner pair) and then
// shared read-only across every parallel-for that runs over it.
type Mesh struct {
	schema *Schema
	topo   *topology.Topology
	tree   *partition.Tree
	props  map[string]fragment.MeshDataHandle

	// edgeAt maps (edgeKind, level) to its index into topo's edge stores.
	edgeAt map[[2]int]int
	// hierAt maps (hierKind, childLevel) to its index into topo's hierarchy
	// stores.
	hierAt map[[2]int]int
}

// NewMesh bundles an already-closed topology and partition tree into a
// Mesh. Both must be closed; NewMesh does not close them itself, mirroring
// §5's "a closed partition tree is shared read-only" precondition.
func NewMesh(schema *Schema, topo *topology.Topology, tree *partition.Tree) (*Mesh, error) {
	if !tree.Closed() {
		return nil, fmt.Errorf("meshkit: partition tree must be closed")
	}

	edgeAt := make(map[[2]int]int)
	for i, spec := range schema.allEdgeSpecs() {
		edgeAt[[2]int{spec.Kind, spec.Level}] = i
	}
	hierAt := make(map[[2]int]int)
	for i, spec := range schema.allHierSpecs() {
		hierAt[[2]int{spec.Kind, spec.ChildLevel}] = i
	}

	return &Mesh{
		schema: schema,
		topo:   topo,
		tree:   tree,
		props:  make(map[string]fragment.MeshDataHandle),
		edgeAt: edgeAt,
		hierAt: hierAt,
	}, nil
}

func toTopoRef(r Ref) topology.Ref { return topology.Ref(r.ID) }
func fromTopoRefs(rs []topology.Ref) []Ref {
	out := make([]Ref, len(rs))
	for i, r := range rs {
		out[i] = Ref{ID: uint32(r)}
	}
	return out
}

// NodeCount returns the number of nodes of kind on level.
func (m *Mesh) NodeCount(level Level, kind Kind) uint32 {
	return m.topo.NodeCount(int(level), int(kind))
}

// Sinks returns the targets of every edge of kind edgeKind at level lvl
// out of s.
func (m *Mesh) Sinks(edgeKind EdgeKind, lvl Level, s Ref) []Ref {
	i := m.edgeAt[[2]int{int(edgeKind), int(lvl)}]
	return fromTopoRefs(m.topo.Edges(i).Sinks(toTopoRef(s)))
}

// Sources returns the sources of every edge of kind edgeKind at level lvl
// into t.
func (m *Mesh) Sources(edgeKind EdgeKind, lvl Level, t Ref) []Ref {
	i := m.edgeAt[[2]int{int(edgeKind), int(lvl)}]
	return fromTopoRefs(m.topo.Edges(i).Sources(toTopoRef(t)))
}

// Parent returns c's parent under hierarchy hk, where c lives on level
// childLvl, or false if unassigned.
func (m *Mesh) Parent(hk HierarchyKind, childLvl Level, c Ref) (Ref, bool) {
	i := m.hierAt[[2]int{int(hk), int(childLvl)}]
	p := m.topo.Hierarchy(i).GetParent(toTopoRef(c))
	if p == topology.NoParent {
		return Ref{}, false
	}
	return Ref{ID: uint32(p)}, true
}

// Children returns p's children under hierarchy hk, where the children
// live on level childLvl and p on childLvl+1.
func (m *Mesh) Children(hk HierarchyKind, childLvl Level, p Ref) []Ref {
	i := m.hierAt[[2]int{int(hk), int(childLvl)}]
	return fromTopoRefs(m.topo.Hierarchy(i).GetChildren(toTopoRef(p)))
}

// NodeRange returns the node range slot owns for (kind,level).
func (m *Mesh) NodeRange(slot int, level Level, kind Kind) NodeRange {
	r := m.tree.NodeRangeAt(slot, int(level), int(kind))
	return NodeRange{Begin: r.Begin, End: r.End}
}

// Tree exposes the mesh's backing partition tree for callers (e.g.
// ParallelFor) that need the raw slot structure.
func (m *Mesh) Tree() *partition.Tree { return m.tree }

// AddProperty registers a named mesh-data property array, replacing any
// prior array of the same name.
func (m *Mesh) AddProperty(name string, h fragment.MeshDataHandle) { m.props[name] = h }

// Property looks up a named property array and asserts it holds T.
func Property[T any](m *Mesh, name string) (*fragment.MeshDataFragment[T], bool) {
	h, ok := m.props[name]
	if !ok {
		return nil, false
	}
	f, ok := h.(*fragment.MeshDataFragment[T])
	return f, ok
}

// resolverFor builds the fragment.NodeRangeResolver a (level,kind)
// property array needs to translate a SubMeshRef into the node ids it
// backs, delegating to the partition tree's contiguous-range resolution.
func (m *Mesh) resolverFor(level Level, kind Kind) fragment.NodeRangeResolver {
	return func(ref region.SubMeshRef) fragment.NodeRange {
		r := m.tree.NodeRangeForRef(int(level), int(kind), ref)
		return fragment.NodeRange{Begin: r.Begin, End: r.End}
	}
}

// NewProperty creates and registers a new mesh-data property array of
// element type T for (kind,level), initially covering the universal
// region (the whole mesh), per §4.G "creation of new node-data arrays of
// a given element type initialized from the partition tree".
func NewProperty[T any](m *Mesh, name string, level Level, kind Kind) *fragment.MeshDataFragment[T] {
	total := m.NodeCount(level, kind)
	f := fragment.NewMeshDataFragment[T](total, m.resolverFor(level, kind), region.UniversalMeshRegion())
	m.AddProperty(name, f)
	return f
}

// Store writes the mesh's partition tree followed by its topology store,
// per §6's "File format of a mesh". Property arrays are not part of this
// format -- they are runtime-attached, recomputable data, not persisted
// mesh structure.
func (m *Mesh) Store(w *archive.Writer) error {
	if err := m.tree.Store(w); err != nil {
		return err
	}
	m.topo.Store(w)
	return nil
}

// LoadMesh reconstructs a Mesh written by Store, given the schema it was
// built against (schema fixes the edge/hierarchy specs the binary format
// itself does not carry) and depth, the partition tree's split depth
// (independent of the schema's mesh level count, and likewise not carried
// by the format -- both must match what Store's mesh was built with).
func LoadMesh(r *archive.Reader, schema *Schema, depth int) (*Mesh, error) {
	tree, err := partition.Load(r, depth, schema.dims())
	if err != nil {
		return nil, err
	}
	topo, err := topology.Load(r, schema.Levels, schema.numKindsPerLevel(), schema.allEdgeSpecs(), schema.allHierSpecs())
	if err != nil {
		return nil, err
	}
	return NewMesh(schema, topo, tree)
}

// InterpretMesh is LoadMesh's counterpart over an in-memory buffer: it
// decodes the leading tree bytes of buf with partition.Interpret (whose
// ref-table is copied out of buf, not aliased) and then loads the
// trailing topology bytes normally.
func InterpretMesh(buf []byte, schema *Schema, depth int) (*Mesh, error) {
	tree, consumed, err := partition.Interpret(buf, depth, schema.dims())
	if err != nil {
		return nil, err
	}
	r := archive.NewReader(buf[consumed:])
	topo, err := topology.Load(r, schema.Levels, schema.numKindsPerLevel(), schema.allEdgeSpecs(), schema.allHierSpecs())
	if err != nil {
		return nil, err
	}
	return NewMesh(schema, topo, tree)
}
