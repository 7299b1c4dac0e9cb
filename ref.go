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

// Package meshkit provides a partitioned mesh topology with a region
// algebra and fragment storage layer suitable for driving a data-parallel
// scheduler over irregular, hierarchically structured data.
package meshkit

import "fmt"

// Ref is a dense index into the implicit node array for one (Kind, Level)
// pair. It is trivially copyable and carries no kind/level tag itself --
// callers track which (kind, level) space a Ref belongs to, the same way
// a raw slice index does.
type Ref struct {
	ID uint32
}

// Less gives Ref a strict ordering on id, used to keep sorted node lists
// (e.g. sources/sinks returned from the topology store) canonical.
func (r Ref) Less(o Ref) bool { return r.ID < o.ID }

func (r Ref) String() string { return fmt.Sprintf("#%d", r.ID) }

// NodeRange is the half-open range [Begin, End) of Refs belonging to one
// (Kind, Level). Begin <= End always holds; Begin == End denotes empty.
type NodeRange struct {
	Begin, End uint32
}

// Empty reports whether the range contains no refs.
func (r NodeRange) Empty() bool { return r.Begin >= r.End }

// Len returns the number of refs in the range.
func (r NodeRange) Len() uint32 {
	if r.Empty() {
		return 0
	}
	return r.End - r.Begin
}

// Contains reports whether ref lies within the range.
func (r NodeRange) Contains(ref Ref) bool {
	return ref.ID >= r.Begin && ref.ID < r.End
}

// Mid splits the range in half the way the naive partitioner does:
// mid = begin + (end-begin)/2.
func (r NodeRange) Mid() uint32 {
	return r.Begin + (r.End-r.Begin)/2
}

// Split returns the lower and upper halves of r, as the naive partitioner
// assigns to a left and right child slot respectively.
func (r NodeRange) Split() (left, right NodeRange) {
	mid := r.Mid()
	return NodeRange{r.Begin, mid}, NodeRange{mid, r.End}
}

func (r NodeRange) String() string { return fmt.Sprintf("[%d,%d)", r.Begin, r.End) }
