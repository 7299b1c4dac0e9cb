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

package region

// Line is one row-major run within a grid box: A and B differ only in
// their last coordinate (A[last] is the box's Min[last] and B[last] its
// exclusive Max[last]), the
// unit of work fragments use to drive a single memcpy-sized transfer
// (§4.B).
type Line struct {
	A, B GridPoint
}

// ScanLines iterates box in row-major order and returns every line
// (one per fixed combination of all axes but the last).
func ScanLines(box GridBox) []Line {
	if box.Empty() {
		return nil
	}
	d := box.Dim()
	if d == 0 {
		return nil
	}
	last := d - 1

	var lines []Line
	idx := make([]int64, d-1)
	for i := range idx {
		idx[i] = box.Min[i]
	}
	if d == 1 {
		a := GridPoint{box.Min[0]}
		b := GridPoint{box.Max[0]}
		return []Line{{A: a, B: b}}
	}
	for {
		a := make(GridPoint, d)
		b := make(GridPoint, d)
		copy(a, idx)
		copy(b, idx)
		a[last] = box.Min[last]
		b[last] = box.Max[last]
		lines = append(lines, Line{A: a, B: b})

		axis := d - 2
		for axis >= 0 {
			idx[axis]++
			if idx[axis] < box.Max[axis] {
				break
			}
			idx[axis] = box.Min[axis]
			axis--
		}
		if axis < 0 {
			break
		}
	}
	return lines
}
