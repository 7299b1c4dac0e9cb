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

package sparsearray

import "testing"

func TestIntervalsAddMergesOverlapping(t *testing.T) {
	var s Intervals
	s.Add(0, 5)
	s.Add(5, 10)
	if !s.Covers(0, 10) {
		t.Fatalf("adjacent Add calls should merge into one covering interval")
	}
	if len(s.Ranges()) != 1 {
		t.Fatalf("Ranges() = %v, want a single merged interval", s.Ranges())
	}
}

func TestIntervalsRemoveSplits(t *testing.T) {
	var s Intervals
	s.Add(0, 10)
	s.Remove(4, 6)
	if s.Covers(4, 6) {
		t.Fatalf("Remove should have cleared [4,6)")
	}
	if !s.Covers(0, 4) || !s.Covers(6, 10) {
		t.Fatalf("Remove should leave the surrounding ranges intact")
	}
	if len(s.Ranges()) != 2 {
		t.Fatalf("Ranges() = %v, want two intervals after a middle removal", s.Ranges())
	}
}

func TestIntervalsOverlapsAndFullyInactive(t *testing.T) {
	var s Intervals
	s.Add(10, 20)
	if !s.Overlaps(15, 25) {
		t.Fatalf("Overlaps should detect a partial overlap")
	}
	if s.Overlaps(20, 30) {
		t.Fatalf("half-open ranges touching at the boundary should not overlap")
	}
	if !s.FullyInactive(20, 30) {
		t.Fatalf("a range with no active index should be FullyInactive")
	}
	if s.FullyInactive(10, 20) {
		t.Fatalf("a fully active range should not be FullyInactive")
	}
}

func TestIntervalsEmpty(t *testing.T) {
	var s Intervals
	if !s.Empty() {
		t.Fatalf("a fresh Intervals should be Empty")
	}
	s.Add(0, 1)
	if s.Empty() {
		t.Fatalf("Intervals with an active range should not be Empty")
	}
	s.Remove(0, 1)
	if !s.Empty() {
		t.Fatalf("Intervals should be Empty again after removing its only range")
	}
}
