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

package partition

import (
	"github.com/numina-hpc/meshkit/region"
	"github.com/numina-hpc/meshkit/topology"
)

// TopologyAwarePartitioner supplements the spec's naïve-only distillation
// (the production path in original_source) by computing tighter leaf
// closures from the actual topology CSR instead of always using the full
// region: a leaf's forward closure for edge i is the union of the leaf
// refs owning every sink of every node in the leaf's source range, folded
// up to the enclosing MeshRegion superset the contract requires (§9's
// open question on closure precision -- any superset of the true
// dependency set is a valid closure, so a tighter one is still correct).
type TopologyAwarePartitioner struct {
	Topo      *topology.Topology
	EdgeSpecs []topology.EdgeSpec
	HierSpecs []topology.HierarchySpec
}

// Build first runs NaivePartitioner to assign node ranges (topology
// awareness only refines closures, never ranges), then replaces every
// leaf's closures with topology-derived ones and propagates them upward
// as the union of each internal slot's two children.
func (p TopologyAwarePartitioner) Build(depth int, dims Dims, nodeCounts [][]uint32) *Tree {
	t := NaivePartitioner{}.Build(depth, dims, nodeCounts)

	leaves := 1 << uint(depth)
	for slot := leaves; slot < 2*leaves; slot++ {
		n := &t.slots[slot]
		for i, spec := range p.EdgeSpecs {
			es := p.Topo.Edges(i)
			n.Forward[i] = openRegionStore(p.closureOverSinks(t, es, spec.Level, spec.TargetKind, n.Ranges[spec.Level][spec.SourceKind]))
			n.Backward[i] = openRegionStore(p.closureOverSources(t, es, spec.Level, spec.SourceKind, n.Ranges[spec.Level][spec.TargetKind]))
		}
		for i, spec := range p.HierSpecs {
			hs := p.Topo.Hierarchy(i)
			parentLevel := spec.ChildLevel + 1
			n.ChildClosure[i] = openRegionStore(p.closureOverChildren(t, hs, spec.ChildLevel, spec.ChildKind, n.Ranges[parentLevel][spec.ParentKind]))
			n.ParentClosure[i] = openRegionStore(p.closureOverParents(t, hs, parentLevel, spec.ParentKind, n.Ranges[spec.ChildLevel][spec.ChildKind]))
		}
	}

	var propagate func(slot int)
	propagate = func(slot int) {
		if t.IsLeaf(slot) {
			return
		}
		left, right := LeftChild(slot), RightChild(slot)
		propagate(left)
		propagate(right)
		n := &t.slots[slot]
		ln, rn := &t.slots[left], &t.slots[right]
		for i := range n.Forward {
			n.Forward[i] = openRegionStore(ln.Forward[i].region.Merge(rn.Forward[i].region))
			n.Backward[i] = openRegionStore(ln.Backward[i].region.Merge(rn.Backward[i].region))
		}
		for i := range n.ParentClosure {
			n.ParentClosure[i] = openRegionStore(ln.ParentClosure[i].region.Merge(rn.ParentClosure[i].region))
			n.ChildClosure[i] = openRegionStore(ln.ChildClosure[i].region.Merge(rn.ChildClosure[i].region))
		}
	}
	propagate(1)

	return t
}

// leafForID descends the (already range-assigned) tree to find the leaf
// owning node id in (level,kind)'s numbering.
func leafForID(t *Tree, level, kind int, id uint32) int {
	slot := 1
	for !t.IsLeaf(slot) {
		left := LeftChild(slot)
		if id < t.slots[left].Ranges[level][kind].End {
			slot = left
		} else {
			slot = RightChild(slot)
		}
	}
	return slot
}

func refsForIDs(t *Tree, level, kind int, ids []topology.Ref) []region.SubMeshRef {
	seen := make(map[int]bool)
	var refs []region.SubMeshRef
	for _, id := range ids {
		leaf := leafForID(t, level, kind, uint32(id))
		if !seen[leaf] {
			seen[leaf] = true
			refs = append(refs, SlotPath(leaf).ToSubMeshRef())
		}
	}
	return refs
}

func (p TopologyAwarePartitioner) closureOverSinks(t *Tree, es *topology.EdgeStore, level, targetKind int, r NodeRange) region.MeshRegion {
	var refs []region.SubMeshRef
	for id := r.Begin; id < r.End; id++ {
		refs = append(refs, refsForIDs(t, level, targetKind, es.Sinks(topology.Ref(id)))...)
	}
	return region.NewMeshRegion(refs...)
}

func (p TopologyAwarePartitioner) closureOverSources(t *Tree, es *topology.EdgeStore, level, sourceKind int, r NodeRange) region.MeshRegion {
	var refs []region.SubMeshRef
	for id := r.Begin; id < r.End; id++ {
		refs = append(refs, refsForIDs(t, level, sourceKind, es.Sources(topology.Ref(id)))...)
	}
	return region.NewMeshRegion(refs...)
}

func (p TopologyAwarePartitioner) closureOverChildren(t *Tree, hs *topology.HierarchyStore, childLevel, childKind int, r NodeRange) region.MeshRegion {
	var refs []region.SubMeshRef
	for id := r.Begin; id < r.End; id++ {
		refs = append(refs, refsForIDs(t, childLevel, childKind, hs.GetChildren(topology.Ref(id)))...)
	}
	return region.NewMeshRegion(refs...)
}

func (p TopologyAwarePartitioner) closureOverParents(t *Tree, hs *topology.HierarchyStore, parentLevel, parentKind int, r NodeRange) region.MeshRegion {
	var refs []region.SubMeshRef
	for id := r.Begin; id < r.End; id++ {
		parent := hs.GetParent(topology.Ref(id))
		if parent == topology.NoParent {
			continue
		}
		refs = append(refs, refsForIDs(t, parentLevel, parentKind, []topology.Ref{parent})...)
	}
	return region.NewMeshRegion(refs...)
}
