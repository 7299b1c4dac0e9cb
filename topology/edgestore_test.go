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
	"reflect"
	"sort"
	"testing"

	"github.com/numina-hpc/meshkit/archive"
)

func buildStarEdgeStore(t *testing.T) *EdgeStore {
	t.Helper()
	e := NewEdgeStore()
	// source 0 fans out to every target; source 1 has none.
	for tgt := Ref(0); tgt < 4; tgt++ {
		if err := e.AddEdge(0, tgt); err != nil {
			t.Fatalf("AddEdge: %v", err)
		}
	}
	if err := e.AddEdge(2, 1); err != nil {
		t.Fatalf("AddEdge: %v", err)
	}
	if err := e.Close(3, 4); err != nil {
		t.Fatalf("Close: %v", err)
	}
	return e
}

func TestEdgeStoreSinksAndSources(t *testing.T) {
	e := buildStarEdgeStore(t)

	got := append([]Ref{}, e.Sinks(0)...)
	sort.Slice(got, func(i, j int) bool { return got[i] < got[j] })
	want := []Ref{0, 1, 2, 3}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Sinks(0) = %v, want %v", got, want)
	}

	if len(e.Sinks(1)) != 0 {
		t.Fatalf("Sinks(1) = %v, want empty", e.Sinks(1))
	}

	got = append([]Ref{}, e.Sources(1)...)
	sort.Slice(got, func(i, j int) bool { return got[i] < got[j] })
	want = []Ref{0, 2}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Sources(1) = %v, want %v", got, want)
	}
}

func TestEdgeStoreCloseIsIdempotent(t *testing.T) {
	e := NewEdgeStore()
	if err := e.AddEdge(0, 0); err != nil {
		t.Fatalf("AddEdge: %v", err)
	}
	if err := e.Close(1, 1); err != nil {
		t.Fatalf("Close: %v", err)
	}
	before := append([]Ref{}, e.ForwardTargets...)
	if err := e.Close(1, 1); err != nil {
		t.Fatalf("second Close: %v", err)
	}
	if !reflect.DeepEqual(before, e.ForwardTargets) {
		t.Fatalf("second Close mutated forward targets: %v -> %v", before, e.ForwardTargets)
	}
}

func TestEdgeStoreAddAfterCloseFails(t *testing.T) {
	e := NewEdgeStore()
	if err := e.Close(1, 1); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := e.AddEdge(0, 0); err != ErrAlreadyClosed {
		t.Fatalf("AddEdge after close = %v, want ErrAlreadyClosed", err)
	}
}

func TestEdgeStoreStoreLoadRoundTrip(t *testing.T) {
	e := buildStarEdgeStore(t)

	w := archive.NewWriter(0)
	e.Store(w)

	loaded := NewEdgeStore()
	if err := loaded.Load(archive.NewReader(w.Bytes())); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !reflect.DeepEqual(e.ForwardOffsets, loaded.ForwardOffsets) ||
		!reflect.DeepEqual(e.ForwardTargets, loaded.ForwardTargets) ||
		!reflect.DeepEqual(e.BackwardOffsets, loaded.BackwardOffsets) ||
		!reflect.DeepEqual(e.BackwardTargets, loaded.BackwardTargets) {
		t.Fatalf("round-tripped store does not match original")
	}
}

func TestTopologyCheckInvariants(t *testing.T) {
	nodeCounts := [][]uint32{{4, 4}}
	edgeSpecs := []EdgeSpec{{Kind: 0, Level: 0, SourceKind: 0, TargetKind: 1}}
	b := NewBuilder(1, nodeCounts, edgeSpecs, nil)
	if err := b.AddEdge(0, 0, 1); err != nil {
		t.Fatalf("AddEdge: %v", err)
	}
	if err := b.AddEdge(0, 0, 2); err != nil {
		t.Fatalf("AddEdge: %v", err)
	}
	topo, err := b.Close()
	if err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := topo.CheckInvariants(); err != nil {
		t.Fatalf("CheckInvariants: %v", err)
	}
}
