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
	"golang.org/x/sync/errgroup"

	"github.com/numina-hpc/meshkit/partition"
)

// LoopDependency models §5's five ordering relations a parallel-for may be
// given against a previously returned LoopRef. At each recursive split in
// ParallelFor's descent, Split produces the two sub-dependencies the left
// and right child tasks must themselves honor, each a superset-safe
// restriction of the parent dependency to the child's half of the range.
type LoopDependency interface {
	// Wait blocks until every point this dependency covers has completed.
	Wait() error
	// Split returns the left and right sub-dependencies for a node's two
	// children, per §5 "at each recursive split, the dependency produces
	// two sub-dependencies".
	Split() (left, right LoopDependency)
}

// NoSync is the trivial dependency: no wait, and every split yields
// another NoSync.
type NoSync struct{}

// Wait returns immediately.
func (NoSync) Wait() error { return nil }

// Split returns two more NoSync values.
func (NoSync) Split() (LoopDependency, LoopDependency) { return NoSync{}, NoSync{} }

// AfterAllSync is a barrier against a single prior loop: every point must
// wait for the entire prior loop to finish, and that requirement is
// identical for both children.
type AfterAllSync struct{ Prev *LoopRef }

// Wait blocks on the entire previous loop.
func (d AfterAllSync) Wait() error { return d.Prev.Wait() }

// Split returns the same barrier for both children.
func (d AfterAllSync) Split() (LoopDependency, LoopDependency) { return d, d }

// SyncAll is the conjunction of several dependencies: waiting satisfies
// all of them, and splitting distributes the split across every member.
type SyncAll struct{ Deps []LoopDependency }

// Wait waits on every member dependency, returning the first error.
func (d SyncAll) Wait() error {
	for _, dep := range d.Deps {
		if err := dep.Wait(); err != nil {
			return err
		}
	}
	return nil
}

// Split splits every member and regroups the lefts and rights.
func (d SyncAll) Split() (LoopDependency, LoopDependency) {
	lefts := make([]LoopDependency, len(d.Deps))
	rights := make([]LoopDependency, len(d.Deps))
	for i, dep := range d.Deps {
		lefts[i], rights[i] = dep.Split()
	}
	return SyncAll{Deps: lefts}, SyncAll{Deps: rights}
}

// OneOnOne is §5(a): point p of the new loop may run only after point p of
// Prev has completed. Since meshkit's ParallelFor grants no point-level
// wait hooks (only whole-loop Wait), this is modeled as the conservative
// whole-loop barrier AfterAllSync would give -- any implementation that
// wants true point-level pipelining must supply its own LoopDependency.
type OneOnOne struct{ Prev *LoopRef }

// Wait blocks on the entire previous loop (see type doc).
func (d OneOnOne) Wait() error { return d.Prev.Wait() }

// Split returns the same dependency for both children.
func (d OneOnOne) Split() (LoopDependency, LoopDependency) { return d, d }

// SmallNeighborhoodSync and FullNeighborhoodSync are §5(b)'s windowed
// dependencies (ℓ1 and ℓ∞ respectively). meshkit models both as the same
// whole-loop barrier as OneOnOne, for the same reason: they differ only in
// how tightly a future point-level scheduler could pipeline, a capability
// this core does not expose on LoopRef.
type SmallNeighborhoodSync struct {
	Prev   *LoopRef
	Window int
}

// Wait blocks on the entire previous loop.
func (d SmallNeighborhoodSync) Wait() error { return d.Prev.Wait() }

// Split returns the same dependency for both children.
func (d SmallNeighborhoodSync) Split() (LoopDependency, LoopDependency) { return d, d }

// FullNeighborhoodSync is the ℓ∞ variant of SmallNeighborhoodSync.
type FullNeighborhoodSync struct {
	Prev   *LoopRef
	Window int
}

// Wait blocks on the entire previous loop.
func (d FullNeighborhoodSync) Wait() error { return d.Prev.Wait() }

// Split returns the same dependency for both children.
func (d FullNeighborhoodSync) Split() (LoopDependency, LoopDependency) { return d, d }

// LoopRef is the handle returned by ParallelFor. Wait blocks until the
// loop's whole fork/join task tree has completed, per §5's "a dropped
// loop reference blocks in its destructor until the underlying task tree
// completes" -- Go has no destructors, so callers must call Wait
// explicitly (a deferred Wait is the idiomatic stand-in).
type LoopRef struct {
	g *errgroup.Group
}

// Wait blocks until every task spawned by the loop has completed,
// returning the first error any of them returned.
func (l *LoopRef) Wait() error { return l.g.Wait() }

// Scheduler is the seam an external task scheduler or profiler can
// implement to take over ParallelFor's fork/join decisions, per the
// source project's "core is data-parallel cooperative... exposes
// structured units of work to an external task scheduler" (§5). The
// default scheduler forks unconditionally down to the leaf level and
// uses golang.org/x/sync/errgroup for the join.
type Scheduler interface {
	// Fork reports whether slot should still be split into two child
	// tasks, or whether the serialized step-case (apply body to the
	// whole range directly) should run instead.
	Fork(slot int) bool
}

// DefaultScheduler always forks until the leaf level, per §4.G's
// "Pre-order descent semantics".
type DefaultScheduler struct{}

// Fork always returns true; ParallelFor stops forking on its own once it
// reaches a leaf slot.
func (DefaultScheduler) Fork(slot int) bool { return true }

// ParallelFor descends the mesh's partition tree in pre-order for
// (kind,level), per §4.G: at an internal slot it forks two recursive
// tasks (unless the scheduler declines, running the serialized step-case
// instead); at a leaf it applies body sequentially over the leaf's node
// range. dep's Split is honored at every fork so each child task waits on
// the correctly restricted sub-dependency before running.
func (m *Mesh) ParallelFor(kind Kind, level Level, sched Scheduler, dep LoopDependency, body func(Ref) error) *LoopRef {
	if sched == nil {
		sched = DefaultScheduler{}
	}
	g := &errgroup.Group{}
	var descend func(slot int, d LoopDependency)
	descend = func(slot int, d LoopDependency) {
		tree := m.tree
		if tree.IsLeaf(slot) || !sched.Fork(slot) {
			g.Go(func() error {
				if err := d.Wait(); err != nil {
					return err
				}
				r := tree.NodeRangeAt(slot, int(level), int(kind))
				for id := r.Begin; id < r.End; id++ {
					if err := body(Ref{ID: id}); err != nil {
						return err
					}
				}
				return nil
			})
			return
		}
		left, right := dep.Split()
		descend(partition.LeftChild(slot), left)
		descend(partition.RightChild(slot), right)
	}
	descend(1, dep)
	return &LoopRef{g: g}
}
