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
	"github.com/numina-hpc/meshkit/partition"
	"github.com/numina-hpc/meshkit/topology"
)

// MeshBuilder stages a mesh's topology (one edge-kind instance per declared
// edge kind per level, one hierarchy-kind instance per declared hierarchy
// kind per adjacent level pair) and, once closed, partitions it into a Mesh,
// mirroring §4.G's construction path: "a mesh is built by declaring its node
// counts, populating its edges and hierarchies, then handing the closed
// topology to a partitioner."
type MeshBuilder struct {
	schema     *Schema
	nodeCounts [][]uint32 // [level][kind]

	edgeSpecs []topology.EdgeSpec
	hierSpecs []topology.HierarchySpec
	tb        *topology.Builder

	// edgeAt maps (edgeKind, level) to its index into edgeSpecs/tb.
	edgeAt map[[2]int]int
	// hierAt maps (hierKind, childLevel) to its index into hierSpecs/tb.
	hierAt map[[2]int]int
}

// NewMeshBuilder starts a builder for schema, sized against nodeCounts
// ([level][kind], one entry per schema.NumNodeKinds() per level). Every
// declared edge kind is instantiated once per level, and every declared
// hierarchy kind once per adjacent (childLevel, childLevel+1) pair.
func NewMeshBuilder(schema *Schema, nodeCounts [][]uint32) *MeshBuilder {
	edgeSpecs := schema.allEdgeSpecs()
	edgeAt := make(map[[2]int]int, len(edgeSpecs))
	for i, spec := range edgeSpecs {
		edgeAt[[2]int{spec.Kind, spec.Level}] = i
	}

	hierSpecs := schema.allHierSpecs()
	hierAt := make(map[[2]int]int, len(hierSpecs))
	for i, spec := range hierSpecs {
		hierAt[[2]int{spec.Kind, spec.ChildLevel}] = i
	}

	return &MeshBuilder{
		schema:     schema,
		nodeCounts: nodeCounts,
		edgeSpecs:  edgeSpecs,
		hierSpecs:  hierSpecs,
		tb:         topology.NewBuilder(schema.Levels, nodeCounts, edgeSpecs, hierSpecs),
		edgeAt:     edgeAt,
		hierAt:     hierAt,
	}
}

// AddEdge stages a directed edge of kind ek at level lvl from s to t.
func (b *MeshBuilder) AddEdge(ek EdgeKind, lvl Level, s, t Ref) error {
	i := b.edgeAt[[2]int{int(ek), int(lvl)}]
	return b.tb.AddEdge(i, topology.Ref(s.ID), topology.Ref(t.ID))
}

// SetParent assigns child's parent under hierarchy kind hk, where child
// lives on level childLvl and parent on childLvl+1.
func (b *MeshBuilder) SetParent(hk HierarchyKind, childLvl Level, child, parent Ref) error {
	i := b.hierAt[[2]int{int(hk), int(childLvl)}]
	return b.tb.SetParent(i, topology.Ref(child.ID), topology.Ref(parent.ID))
}

// CloseTopology closes every staged edge and hierarchy store, returning the
// resulting immutable Topology. Call this before building a
// partition.TopologyAwarePartitioner, which needs the closed topology to
// compute its closures.
func (b *MeshBuilder) CloseTopology() (*topology.Topology, error) {
	return b.tb.Close()
}

// TopologyAwarePartitionerFor builds a partition.TopologyAwarePartitioner
// wired to topo using the same edge/hierarchy specs topo was built from --
// a convenience so callers don't have to reconstruct the spec lists
// MeshBuilder already computed internally.
func (b *MeshBuilder) TopologyAwarePartitionerFor(topo *topology.Topology) partition.TopologyAwarePartitioner {
	return partition.TopologyAwarePartitioner{
		Topo:      topo,
		EdgeSpecs: b.edgeSpecs,
		HierSpecs: b.hierSpecs,
	}
}

// Close closes topo's tree with p into a depth-d partition tree and bundles
// the two into the resulting immutable Mesh. topo must already be closed
// (via CloseTopology); p is typically partition.NaivePartitioner{} or a
// TopologyAwarePartitionerFor(topo) for tighter closures.
func (b *MeshBuilder) Close(topo *topology.Topology, depth int, p partition.Partitioner) (*Mesh, error) {
	tree := p.Build(depth, b.schema.dims(), b.nodeCounts)
	tree.Close()
	return NewMesh(b.schema, topo, tree)
}
