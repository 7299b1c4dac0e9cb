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

func TestLargeArrayAllocateAndAccess(t *testing.T) {
	a := New[int](10000)
	defer a.Close()

	a.Allocate(100, 200)
	if !a.Active(150) {
		t.Fatalf("index 150 should be active after Allocate(100,200)")
	}
	if a.Active(5000) {
		t.Fatalf("index 5000 should not be active")
	}
	*a.At(150) = 42
	if *a.At(150) != 42 {
		t.Fatalf("At(150) did not round-trip")
	}
}

func TestLargeArrayFreeReleasesFullyContainedPages(t *testing.T) {
	a := New[int](PageSize * 2)
	defer a.Close()

	a.Allocate(0, PageSize)
	a.Free(0, PageSize)
	if a.Active(0) {
		t.Fatalf("index 0 should no longer be active after Free")
	}
}

func TestLargeArrayFreePartialPageKeepsRemainderActive(t *testing.T) {
	a := New[int](PageSize)
	defer a.Close()

	a.Allocate(0, PageSize)
	a.Free(0, PageSize/2)
	if a.Active(0) {
		t.Fatalf("freed half should no longer be active")
	}
	if !a.Active(PageSize - 1) {
		t.Fatalf("the untouched half should still be active")
	}
}

type destroyerSpy struct{ destroyed *bool }

func (d destroyerSpy) Destroy() { *d.destroyed = true }

func TestLargeArrayCloseRunsDestroyOnce(t *testing.T) {
	a := New[destroyerSpy](PageSize)
	destroyed := false
	a.Allocate(0, 1)
	*a.At(0) = destroyerSpy{destroyed: &destroyed}

	a.Close()
	if !destroyed {
		t.Fatalf("Close should run Destroy on every remaining element")
	}

	destroyed = false
	a.Close()
	if destroyed {
		t.Fatalf("a second Close should be a no-op")
	}
}

func TestLargeArrayLen(t *testing.T) {
	a := New[int](12345)
	defer a.Close()
	if a.Len() != 12345 {
		t.Fatalf("Len() = %d, want 12345", a.Len())
	}
}
