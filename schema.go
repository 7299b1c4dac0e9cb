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
	"errors"

	"github.com/numina-hpc/meshkit/partition"
	"github.com/numina-hpc/meshkit/topology"
)

// Kind identifies one of the mesh's node kinds (e.g. "cell", "face",
// "vertex"). EdgeKind and HierarchyKind identify, respectively, a typed
// edge relation and a typed parent/child relation declared on the schema.
//
// These replace the source project's compile-time kind-list templates
// (nodes<...>, edges<...>, hierarchies<...>, see design notes) with a
// small runtime registry built once and shared read-only afterward.
type (
	Kind           int
	EdgeKind       int
	HierarchyKind  int
	Level          int
)

// NodeKindSpec names one node kind for diagnostics; kinds are otherwise
// only ever referred to by their Kind index.
type NodeKindSpec struct {
	Name string
}

// EdgeKindSpec declares a typed edge relation between a source and target
// node kind, both living on the same level.
type EdgeKindSpec struct {
	Name         string
	Source, Target Kind
}

// HierarchyKindSpec declares a typed parent/child relation between a
// parent level P and the child level C = P-1 directly below it.
type HierarchyKindSpec struct {
	Name                string
	ParentKind, ChildKind Kind
}

var (
	// ErrUnknownKind is returned when a Kind/EdgeKind/HierarchyKind/Level
	// index is out of the schema's registered range.
	ErrUnknownKind = errors.New("meshkit: unknown kind")
)

// Schema is the write-once registry of node kinds, edge kinds, and
// hierarchy kinds shared by the topology store, the partition tree, and
// the mesh façade. It plays the role the spec's compile-time kind lists
// play in the source project: resolving a (kind, level) pair to a node-id
// space and a storage slot, just at construction time instead of at
// compile time.
type Schema struct {
	Levels     int
	NodeKinds  []NodeKindSpec
	EdgeKinds  []EdgeKindSpec
	Hierarchies []HierarchyKindSpec
}

// NewSchema builds a schema with levels levels and no kinds registered
// yet; call AddNodeKind/AddEdgeKind/AddHierarchyKind to populate it before
// handing it to a Builder.
func NewSchema(levels int) *Schema {
	return &Schema{Levels: levels}
}

// AddNodeKind registers a new node kind and returns its index.
func (s *Schema) AddNodeKind(name string) Kind {
	s.NodeKinds = append(s.NodeKinds, NodeKindSpec{Name: name})
	return Kind(len(s.NodeKinds) - 1)
}

// AddEdgeKind registers a new edge kind and returns its index.
func (s *Schema) AddEdgeKind(name string, source, target Kind) EdgeKind {
	s.EdgeKinds = append(s.EdgeKinds, EdgeKindSpec{Name: name, Source: source, Target: target})
	return EdgeKind(len(s.EdgeKinds) - 1)
}

// AddHierarchyKind registers a new parent/child hierarchy kind and returns
// its index.
func (s *Schema) AddHierarchyKind(name string, parent, child Kind) HierarchyKind {
	s.Hierarchies = append(s.Hierarchies, HierarchyKindSpec{Name: name, ParentKind: parent, ChildKind: child})
	return HierarchyKind(len(s.Hierarchies) - 1)
}

// NumNodeKinds, NumEdgeKinds and NumHierarchyKinds report the registered
// counts, used to size per-(kind,level) / per-(edge,level) /
// per-(hierarchy,level) slot arrays in the partition tree and topology
// store.
func (s *Schema) NumNodeKinds() int       { return len(s.NodeKinds) }
func (s *Schema) NumEdgeKinds() int       { return len(s.EdgeKinds) }
func (s *Schema) NumHierarchyKinds() int  { return len(s.Hierarchies) }

func (s *Schema) validNodeKind(k Kind) bool { return int(k) >= 0 && int(k) < len(s.NodeKinds) }
func (s *Schema) validLevel(l Level) bool   { return int(l) >= 0 && int(l) < s.Levels }

// dims derives the partition tree's plain-int Dims from the schema, one
// kind count per level -- every schema's node kinds are assumed to exist
// on every level, mirroring the source project's per-level kind lists.
func (s *Schema) dims() partition.Dims {
	numKinds := make([]int, s.Levels)
	for l := range numKinds {
		numKinds[l] = len(s.NodeKinds)
	}
	numHierLevels := s.Levels - 1
	if numHierLevels < 0 {
		numHierLevels = 0
	}
	return partition.Dims{
		NumLevels: s.Levels,
		NumKinds:  numKinds,
		NumEdges:  s.Levels * len(s.EdgeKinds),
		NumHiers:  numHierLevels * len(s.Hierarchies),
	}
}

// numKindsPerLevel returns NumNodeKinds() repeated once per level, the
// shape topology.Load's numKinds parameter expects.
func (s *Schema) numKindsPerLevel() []int {
	n := make([]int, s.Levels)
	for l := range n {
		n[l] = len(s.NodeKinds)
	}
	return n
}

// allEdgeSpecs expands every declared edge kind into one topology.EdgeSpec
// per level, in (level, kind) order -- the same expansion MeshBuilder uses
// to size its topology.Builder, exposed standalone so Store/Load can
// recompute it from the schema alone without replaying construction.
func (s *Schema) allEdgeSpecs() []topology.EdgeSpec {
	var specs []topology.EdgeSpec
	for lvl := 0; lvl < s.Levels; lvl++ {
		specs = append(specs, s.edgeSpecs(Level(lvl))...)
	}
	return specs
}

// allHierSpecs expands every declared hierarchy kind into one
// topology.HierarchySpec per adjacent level pair, in (childLevel, kind)
// order.
func (s *Schema) allHierSpecs() []topology.HierarchySpec {
	var specs []topology.HierarchySpec
	for lvl := 0; lvl < s.Levels-1; lvl++ {
		specs = append(specs, s.hierSpecs(Level(lvl))...)
	}
	return specs
}

// edgeSpecs lowers the schema's edge kinds to topology's plain-int
// EdgeSpec, fixed to level lvl (edges within a single mesh are declared
// per level, per §4.E).
func (s *Schema) edgeSpecs(lvl Level) []topology.EdgeSpec {
	specs := make([]topology.EdgeSpec, len(s.EdgeKinds))
	for i, ek := range s.EdgeKinds {
		specs[i] = topology.EdgeSpec{
			Kind:       i,
			Level:      int(lvl),
			SourceKind: int(ek.Source),
			TargetKind: int(ek.Target),
		}
	}
	return specs
}

// hierSpecs lowers the schema's hierarchy kinds to topology's plain-int
// HierarchySpec, fixed to child level childLvl.
func (s *Schema) hierSpecs(childLvl Level) []topology.HierarchySpec {
	specs := make([]topology.HierarchySpec, len(s.Hierarchies))
	for i, hk := range s.Hierarchies {
		specs[i] = topology.HierarchySpec{
			Kind:       i,
			ChildLevel: int(childLvl),
			ParentKind: int(hk.ParentKind),
			ChildKind:  int(hk.ChildKind),
		}
	}
	return specs
}
