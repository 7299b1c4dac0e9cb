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

// Package sparsearray implements the large sparse array (§4.C): a
// virtual index-space reservation with page-granular physical backing,
// tracked through an Intervals set of active (logically allocated)
// ranges.
package sparsearray

import "sort"

// Interval is a half-open index range [Lo, Hi).
type Interval struct {
	Lo, Hi uint64
}

func (iv Interval) empty() bool { return iv.Lo >= iv.Hi }

// Intervals is a sorted set of pairwise disjoint, non-adjacent half-open
// ranges, supporting add/remove/cover queries. Add finds its insertion
// point by binary search and then rebuilds the slice; Remove, Covers and
// Overlaps scan every stored range, so they take O(n) time.
type Intervals struct {
	ivs []Interval
}

// Add marks [lo, hi) active, merging with any overlapping or adjacent
// existing interval.
func (s *Intervals) Add(lo, hi uint64) {
	iv := Interval{lo, hi}
	if iv.empty() {
		return
	}
	i := sort.Search(len(s.ivs), func(i int) bool { return s.ivs[i].Hi >= iv.Lo })
	j := i
	for j < len(s.ivs) && s.ivs[j].Lo <= iv.Hi {
		if s.ivs[j].Lo < iv.Lo {
			iv.Lo = s.ivs[j].Lo
		}
		if s.ivs[j].Hi > iv.Hi {
			iv.Hi = s.ivs[j].Hi
		}
		j++
	}
	merged := append([]Interval{}, s.ivs[:i]...)
	merged = append(merged, iv)
	merged = append(merged, s.ivs[j:]...)
	s.ivs = merged
}

// Remove marks [lo, hi) inactive, splitting any interval that straddles
// an endpoint.
func (s *Intervals) Remove(lo, hi uint64) {
	rm := Interval{lo, hi}
	if rm.empty() {
		return
	}
	var out []Interval
	for _, iv := range s.ivs {
		if iv.Hi <= rm.Lo || iv.Lo >= rm.Hi {
			out = append(out, iv)
			continue
		}
		if iv.Lo < rm.Lo {
			out = append(out, Interval{iv.Lo, rm.Lo})
		}
		if iv.Hi > rm.Hi {
			out = append(out, Interval{rm.Hi, iv.Hi})
		}
	}
	s.ivs = out
}

// Covers reports whether every index in [lo, hi) is active.
func (s *Intervals) Covers(lo, hi uint64) bool {
	rem := Interval{lo, hi}
	if rem.empty() {
		return true
	}
	for _, iv := range s.ivs {
		if iv.Lo <= rem.Lo && iv.Hi >= rem.Hi {
			return true
		}
	}
	return false
}

// Overlaps reports whether [lo, hi) intersects any active range.
func (s *Intervals) Overlaps(lo, hi uint64) bool {
	q := Interval{lo, hi}
	if q.empty() {
		return false
	}
	for _, iv := range s.ivs {
		if iv.Lo < q.Hi && q.Lo < iv.Hi {
			return true
		}
	}
	return false
}

// FullyInactive reports whether [lo, hi) contains no active index at all,
// the condition under which a page spanning it may be released.
func (s *Intervals) FullyInactive(lo, hi uint64) bool { return !s.Overlaps(lo, hi) }

// Ranges returns the current active intervals in order. Must not be
// mutated by the caller.
func (s *Intervals) Ranges() []Interval { return s.ivs }

// Empty reports whether there are no active indices at all.
func (s *Intervals) Empty() bool { return len(s.ivs) == 0 }
