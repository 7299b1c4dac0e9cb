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

// PageSize is the number of elements backed by one physical page. A page
// is allocated the first time any index within it is marked active, and
// released (its backing slice dropped, to be re-allocated zeroed later)
// by a Free call whose range contains the whole page and leaves no index
// within it active.
const PageSize = 4096

// Destroyer is implemented by element types that hold a resource needing
// explicit teardown before their page is released. Go has no
// destructors, so this is the stand-in for §4.C's "non-trivially
// destructible element types have their destructors run before pages are
// released".
type Destroyer interface {
	Destroy()
}

// LargeArray reserves virtual index space for N elements of type T and
// tracks which ranges are active in an Intervals set, backing only the
// pages that active ranges actually touch. Accessing an index outside an
// active range is undefined, per §4.C.
//
// The zero value is not usable; construct with New. LargeArray has no
// Go-level copy protection (the language has no move-only types), so
// callers must treat a LargeArray as exclusively owned and pass it by
// pointer, the same discipline the source project's deleted copy
// constructor enforces at compile time.
type LargeArray[T any] struct {
	n         uint64
	pages     map[uint64][]T
	active    Intervals
	destroyed bool
}

// New reserves space for n elements, all initially inactive.
func New[T any](n uint64) *LargeArray[T] {
	return &LargeArray[T]{n: n, pages: make(map[uint64][]T)}
}

// Len reports the array's reserved length.
func (a *LargeArray[T]) Len() uint64 { return a.n }

func pageOf(idx uint64) uint64 { return idx / PageSize }

func (a *LargeArray[T]) ensurePage(p uint64) []T {
	pg, ok := a.pages[p]
	if !ok {
		pg = make([]T, PageSize)
		a.pages[p] = pg
	}
	return pg
}

// Allocate marks [lo, hi) active, lazily backing any page it touches that
// is not already backed.
func (a *LargeArray[T]) Allocate(lo, hi uint64) {
	if lo >= hi {
		return
	}
	for p := pageOf(lo); p <= pageOf(hi-1); p++ {
		a.ensurePage(p)
	}
	a.active.Add(lo, hi)
}

// Free marks [lo, hi) inactive and releases every page fully contained in
// [lo, hi) that, after this call, holds no active index -- running
// Destroy on any Destroyer elements first.
func (a *LargeArray[T]) Free(lo, hi uint64) {
	if lo >= hi {
		return
	}
	a.active.Remove(lo, hi)

	// A page is only a candidate for release if [lo, hi) fully contains
	// it; a page that [lo, hi) covers only in part stays backed.
	for p := pageOf(lo); p <= pageOf(hi-1); p++ {
		pStart, pEnd := p*PageSize, (p+1)*PageSize
		if pEnd > a.n {
			pEnd = a.n
		}
		if pStart < lo || pEnd > hi {
			continue
		}
		if a.active.FullyInactive(pStart, pEnd) {
			a.destroyPage(p)
			delete(a.pages, p)
		}
	}
}

func (a *LargeArray[T]) destroyPage(p uint64) {
	pg, ok := a.pages[p]
	if !ok {
		return
	}
	for i := range pg {
		if d, ok := any(&pg[i]).(Destroyer); ok {
			d.Destroy()
		}
	}
}

// At returns a pointer to the element at idx. idx must lie within an
// active range.
func (a *LargeArray[T]) At(idx uint64) *T {
	pg := a.pages[pageOf(idx)]
	return &pg[idx%PageSize]
}

// Active reports whether idx currently lies within an active range.
func (a *LargeArray[T]) Active(idx uint64) bool { return a.active.Covers(idx, idx+1) }

// ActiveRanges returns the current set of active index ranges.
func (a *LargeArray[T]) ActiveRanges() []Interval { return a.active.Ranges() }

// Close runs Destroy on every still-active Destroyer element, then
// releases every remaining backed page. It is the stand-in for the source project's
// destructor; a moved-from array (in Go terms, one whose Close was
// already called) releases nothing on a second call.
func (a *LargeArray[T]) Close() {
	if a.destroyed {
		return
	}
	for _, iv := range a.active.Ranges() {
		for idx := iv.Lo; idx < iv.Hi; idx++ {
			if d, ok := any(a.At(idx)).(Destroyer); ok {
				d.Destroy()
			}
		}
	}
	a.pages = nil
	a.active = Intervals{}
	a.destroyed = true
}
