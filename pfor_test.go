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

import "testing"

func TestNoSyncSplitAndWait(t *testing.T) {
	var d LoopDependency = NoSync{}
	if err := d.Wait(); err != nil {
		t.Fatalf("NoSync.Wait = %v, want nil", err)
	}
	left, right := d.Split()
	if _, ok := left.(NoSync); !ok {
		t.Fatalf("NoSync.Split left = %T, want NoSync", left)
	}
	if _, ok := right.(NoSync); !ok {
		t.Fatalf("NoSync.Split right = %T, want NoSync", right)
	}
}

func TestAfterAllSyncWaitsOnPrevAndSplitsIdentically(t *testing.T) {
	f, mesh := buildTubeMesh(t, 8)
	prev := mesh.ParallelFor(f.cellKind, 0, nil, NoSync{}, func(c Ref) error { return nil })
	if err := prev.Wait(); err != nil {
		t.Fatalf("prev.Wait: %v", err)
	}

	d := AfterAllSync{Prev: prev}
	if err := d.Wait(); err != nil {
		t.Fatalf("AfterAllSync.Wait after prev completed = %v, want nil", err)
	}
	left, right := d.Split()
	if left.(AfterAllSync).Prev != prev || right.(AfterAllSync).Prev != prev {
		t.Fatalf("AfterAllSync.Split should hand both children the same Prev")
	}
}

func TestSyncAllWaitsOnEveryMember(t *testing.T) {
	calls := 0
	countingDep := countingDepFunc(func() error { calls++; return nil })
	d := SyncAll{Deps: []LoopDependency{countingDep, countingDep, countingDep}}
	if err := d.Wait(); err != nil {
		t.Fatalf("SyncAll.Wait = %v, want nil", err)
	}
	if calls != 3 {
		t.Fatalf("SyncAll.Wait called Wait on %d members, want 3", calls)
	}
}

func TestSyncAllSplitDistributesAcrossMembers(t *testing.T) {
	d := SyncAll{Deps: []LoopDependency{NoSync{}, NoSync{}}}
	left, right := d.Split()
	l, ok := left.(SyncAll)
	if !ok || len(l.Deps) != 2 {
		t.Fatalf("SyncAll.Split left = %v, want a SyncAll with 2 deps", left)
	}
	r, ok := right.(SyncAll)
	if !ok || len(r.Deps) != 2 {
		t.Fatalf("SyncAll.Split right = %v, want a SyncAll with 2 deps", right)
	}
}

func TestSyncAllWaitReturnsFirstError(t *testing.T) {
	boom := errBoom{}
	failing := countingDepFunc(func() error { return boom })
	d := SyncAll{Deps: []LoopDependency{NoSync{}, failing}}
	if err := d.Wait(); err != boom {
		t.Fatalf("SyncAll.Wait = %v, want %v", err, boom)
	}
}

// countingDepFunc adapts a plain func into a LoopDependency so Wait's
// call count and error can be observed directly.
type countingDepFunc func() error

func (f countingDepFunc) Wait() error { return f() }
func (f countingDepFunc) Split() (LoopDependency, LoopDependency) { return f, f }

func TestDefaultSchedulerAlwaysForks(t *testing.T) {
	var s Scheduler = DefaultScheduler{}
	if !s.Fork(1) {
		t.Fatalf("DefaultScheduler.Fork should always return true")
	}
}
