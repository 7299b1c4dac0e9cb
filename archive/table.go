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

package archive

// Table[T] is the primitive backing every CSR array (offsets, targets,
// parents, children) and the partition tree's ref-table. An owning table
// holds its own slice; a view shares a slice sliced out of someone else's
// buffer (e.g. the buffer Interpret was called on) and must not outlive
// it. Copying a view always produces an owning table, per §4.H.
type Table[T any] struct {
	data  []T
	owned bool
}

// NewOwnedTable wraps data as an owning table. The table takes ownership
// of data; callers should not retain a mutable alias to it.
func NewOwnedTable[T any](data []T) Table[T] {
	return Table[T]{data: data, owned: true}
}

// NewViewTable wraps data as a non-owning view. data is typically a slice
// reinterpreted in place from a raw buffer (see ConsumeArray) and must
// outlive the returned table.
func NewViewTable[T any](data []T) Table[T] {
	return Table[T]{data: data, owned: false}
}

// Owned reports whether the table owns its backing slice.
func (t Table[T]) Owned() bool { return t.owned }

// Len reports the number of elements.
func (t Table[T]) Len() int { return len(t.data) }

// At returns the element at index i.
func (t Table[T]) At(i int) T { return t.data[i] }

// Slice returns the backing slice. Mutating it through a view table
// mutates the buffer the view was interpreted from.
func (t Table[T]) Slice() []T { return t.data }

// Clone always returns an owning table with its own backing slice,
// regardless of whether the receiver was a view.
func (t Table[T]) Clone() Table[T] {
	cp := make([]T, len(t.data))
	copy(cp, t.data)
	return Table[T]{data: cp, owned: true}
}
