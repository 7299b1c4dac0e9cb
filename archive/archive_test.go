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

import "testing"

func TestWriterReaderRoundTrip(t *testing.T) {
	w := NewWriter(0)
	w.WriteU8(7)
	w.WriteU32(1 << 20)
	w.WriteU64(1 << 40)
	w.WriteI64(-5)
	w.WriteF64(3.5)
	w.WriteString("hello")
	w.WriteLen(42)

	r := NewReader(w.Bytes())
	if v, err := r.ReadU8(); err != nil || v != 7 {
		t.Fatalf("ReadU8 = %d, %v, want 7, nil", v, err)
	}
	if v, err := r.ReadU32(); err != nil || v != 1<<20 {
		t.Fatalf("ReadU32 = %d, %v, want %d, nil", v, err, 1<<20)
	}
	if v, err := r.ReadU64(); err != nil || v != 1<<40 {
		t.Fatalf("ReadU64 = %d, %v, want %d, nil", v, err, uint64(1)<<40)
	}
	if v, err := r.ReadI64(); err != nil || v != -5 {
		t.Fatalf("ReadI64 = %d, %v, want -5, nil", v, err)
	}
	if v, err := r.ReadF64(); err != nil || v != 3.5 {
		t.Fatalf("ReadF64 = %v, %v, want 3.5, nil", v, err)
	}
	if s, err := r.ReadString(); err != nil || s != "hello" {
		t.Fatalf("ReadString = %q, %v, want \"hello\", nil", s, err)
	}
	if n, err := r.ReadLen(); err != nil || n != 42 {
		t.Fatalf("ReadLen = %d, %v, want 42, nil", n, err)
	}
	if r.Remaining() != 0 {
		t.Fatalf("Remaining() = %d, want 0 after consuming every written value", r.Remaining())
	}
}

func TestReaderReturnsErrEndOfArchive(t *testing.T) {
	r := NewReader([]byte{1, 2, 3})
	if _, err := r.ReadU64(); err != ErrEndOfArchive {
		t.Fatalf("ReadU64 past the end = %v, want ErrEndOfArchive", err)
	}
}

func TestAlignToRoundTrip(t *testing.T) {
	w := NewWriter(0)
	w.WriteU8(1)
	w.AlignTo(8)
	if w.Len()%8 != 0 {
		t.Fatalf("AlignTo(8) left Len() = %d, not a multiple of 8", w.Len())
	}
	w.WriteU64(99)

	r := NewReader(w.Bytes())
	if _, err := r.ReadU8(); err != nil {
		t.Fatalf("ReadU8: %v", err)
	}
	if err := r.AlignTo(8); err != nil {
		t.Fatalf("AlignTo: %v", err)
	}
	if v, err := r.ReadU64(); err != nil || v != 99 {
		t.Fatalf("ReadU64 after AlignTo = %d, %v, want 99, nil", v, err)
	}
}

func TestConsumeArray(t *testing.T) {
	w := NewWriter(0)
	for i := uint32(0); i < 5; i++ {
		w.WriteU32(i)
	}
	r := NewReader(w.Bytes())
	span, err := r.ConsumeArray(5, 4)
	if err != nil {
		t.Fatalf("ConsumeArray: %v", err)
	}
	if len(span) != 20 {
		t.Fatalf("ConsumeArray span length = %d, want 20", len(span))
	}
	if r.Remaining() != 0 {
		t.Fatalf("Remaining() after ConsumeArray = %d, want 0", r.Remaining())
	}
}
