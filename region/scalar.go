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

// Package region implements the family of region-algebra value types the
// rest of meshkit is built on: Scalar, grid boxes/regions, the static
// balanced binary tree region, and the partition tree's sub-mesh region.
// Every type exposes Empty/Merge/Intersect/Difference/Equal and satisfies
// the algebraic laws listed in the source spec's §8.
package region

import "github.com/numina-hpc/meshkit/archive"

// Scalar is the region algebra over a single boolean presence bit:
// present or absent. Merge is OR, Intersect is AND, Difference is A&^B.
type Scalar struct {
	present bool
}

// Present returns a Scalar denoting the single present element.
func Present() Scalar { return Scalar{present: true} }

// ScalarEmpty returns the absent Scalar.
func ScalarEmpty() Scalar { return Scalar{} }

// Empty reports whether the scalar region is absent.
func (s Scalar) Empty() bool { return !s.present }

// Merge is logical OR.
func (s Scalar) Merge(o Scalar) Scalar { return Scalar{present: s.present || o.present} }

// Intersect is logical AND.
func (s Scalar) Intersect(o Scalar) Scalar { return Scalar{present: s.present && o.present} }

// Difference is A AND NOT B.
func (s Scalar) Difference(o Scalar) Scalar { return Scalar{present: s.present && !o.present} }

// Complement is logical NOT.
func (s Scalar) Complement() Scalar { return Scalar{present: !s.present} }

// Closure of a scalar region is the identity, per §3.
func (s Scalar) Closure() Scalar { return s }

// IsSubRegion reports whether s is contained in o: s&^o == empty.
func (s Scalar) IsSubRegion(o Scalar) bool { return s.Difference(o).Empty() }

// Equal reports value equality.
func (s Scalar) Equal(o Scalar) bool { return s.present == o.present }

func (s Scalar) String() string {
	if s.present {
		return "present"
	}
	return "absent"
}

// Store writes the scalar as a single byte, trivially serializable.
func (s Scalar) Store(w *archive.Writer) {
	if s.present {
		w.WriteU8(1)
	} else {
		w.WriteU8(0)
	}
}

// Load reads a scalar written by Store.
func (s *Scalar) Load(r *archive.Reader) error {
	b, err := r.ReadU8()
	if err != nil {
		return err
	}
	s.present = b != 0
	return nil
}
