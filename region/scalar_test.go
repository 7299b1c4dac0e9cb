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

import (
	"testing"

	"github.com/numina-hpc/meshkit/archive"
)

func TestScalarMergeIntersectDifference(t *testing.T) {
	p, a := Present(), ScalarEmpty()

	if p.Merge(a) != p || a.Merge(p) != p {
		t.Fatalf("Merge with absent should yield present")
	}
	if p.Intersect(a) != a {
		t.Fatalf("Intersect of present and absent should be absent")
	}
	if !p.Difference(p).Empty() {
		t.Fatalf("Difference of present from itself should be absent")
	}
	if p.Complement() != a || a.Complement() != p {
		t.Fatalf("Complement should flip presence")
	}
}

func TestScalarSubRegionAndEqual(t *testing.T) {
	p, a := Present(), ScalarEmpty()
	if !a.IsSubRegion(p) {
		t.Fatalf("absent should be a sub-region of present")
	}
	if p.IsSubRegion(a) {
		t.Fatalf("present should not be a sub-region of absent")
	}
	if !p.Equal(Present()) || p.Equal(a) {
		t.Fatalf("Equal gave an unexpected result")
	}
}

func TestScalarStoreLoadRoundTrip(t *testing.T) {
	for _, s := range []Scalar{Present(), ScalarEmpty()} {
		w := archive.NewWriter(0)
		s.Store(w)
		var loaded Scalar
		if err := loaded.Load(archive.NewReader(w.Bytes())); err != nil {
			t.Fatalf("Load: %v", err)
		}
		if !loaded.Equal(s) {
			t.Fatalf("round-tripped scalar %v != original %v", loaded, s)
		}
	}
}
