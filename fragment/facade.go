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

// Package fragment implements the per-data-item storage containers
// (§4.D): Scalar, Grid, Tree and MeshData fragments, each owning a
// region's worth of cells and supporting resize and direct/archive
// transfer.
package fragment

import "errors"

// ErrPreconditionViolation is returned (or panicked with, at the caller's
// discretion) when an operation's region containment precondition does
// not hold, e.g. insert(other, R) with R not a subset of both covered
// regions (§7: PreconditionViolation, fatal in debug, unchecked in
// release -- meshkit returns it as an error instead of asserting, since
// Go has no separate debug/release build mode).
var ErrPreconditionViolation = errors.New("fragment: precondition violation")

// Facade is a lightweight read/write view over a fragment's cells,
// limited to the region the fragment currently covers. It is either
// Own(T), built by a caller constructing a standalone facade, or
// Borrow(*T), built by a fragment handing out a view over its own
// storage -- design note 9's replacement for the source project's
// unique_ptr-or-raw-pointer facade fallback.
type Facade[T any] struct {
	owned   *T
	borrowed *T
}

// OwnFacade wraps a value the facade owns exclusively.
func OwnFacade[T any](v T) *Facade[T] {
	return &Facade[T]{owned: &v}
}

// BorrowFacade wraps a pointer to storage owned by someone else (a
// fragment), valid only as long as that owner is alive.
func BorrowFacade[T any](v *T) *Facade[T] {
	return &Facade[T]{borrowed: v}
}

func (f *Facade[T]) ptr() *T {
	if f.owned != nil {
		return f.owned
	}
	return f.borrowed
}

// Get returns the current value.
func (f *Facade[T]) Get() T { return *f.ptr() }

// Set overwrites the value.
func (f *Facade[T]) Set(v T) { *f.ptr() = v }

// IsOwned reports whether this facade owns its storage outright.
func (f *Facade[T]) IsOwned() bool { return f.owned != nil }
