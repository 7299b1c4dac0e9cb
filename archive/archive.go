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

// Package archive implements the append-only byte stream and position
// cursor that every closed, serializable meshkit artifact is built on top
// of. Framing is purely positional: there are no type tags, so a read of
// the wrong type silently returns garbage rather than a TypeMismatch
// error -- only running past the end of the buffer is detectable.
package archive

import (
	"encoding/binary"
	"errors"
	"math"
)

// ErrEndOfArchive is returned when a read would advance the cursor past
// the end of the underlying buffer.
var ErrEndOfArchive = errors.New("archive: read past end of archive")

// order is the byte order used for every trivially serializable value.
// The source project's archive is host-endian and tightly packed; little
// endian is picked here as the fixed, portable stand-in.
var order = binary.LittleEndian

// Writer is an append-only byte sink. The zero value is ready to use.
type Writer struct {
	buf []byte
}

// NewWriter returns a Writer with its internal buffer pre-sized to
// sizeHint bytes, as a capacity hint only.
func NewWriter(sizeHint int) *Writer {
	return &Writer{buf: make([]byte, 0, sizeHint)}
}

// Bytes finalizes the writer and returns its accumulated buffer. The
// Writer must not be used after calling Bytes.
func (w *Writer) Bytes() []byte { return w.buf }

// Len reports the number of bytes written so far.
func (w *Writer) Len() int { return len(w.buf) }

// WriteBytes appends raw bytes verbatim, with no length prefix. Callers
// that need a self-delimiting byte string should use WriteString.
func (w *Writer) WriteBytes(b []byte) {
	w.buf = append(w.buf, b...)
}

// WriteU8 appends a single byte.
func (w *Writer) WriteU8(v uint8) { w.buf = append(w.buf, v) }

// WriteU32 appends v in the archive's fixed byte order.
func (w *Writer) WriteU32(v uint32) {
	var tmp [4]byte
	order.PutUint32(tmp[:], v)
	w.buf = append(w.buf, tmp[:]...)
}

// WriteU64 appends v in the archive's fixed byte order.
func (w *Writer) WriteU64(v uint64) {
	var tmp [8]byte
	order.PutUint64(tmp[:], v)
	w.buf = append(w.buf, tmp[:]...)
}

// WriteI64 appends v in the archive's fixed byte order.
func (w *Writer) WriteI64(v int64) { w.WriteU64(uint64(v)) }

// WriteF64 appends v as its IEEE-754 bit pattern.
func (w *Writer) WriteF64(v float64) { w.WriteU64(math.Float64bits(v)) }

// WriteString writes a u64 byte count followed by the string's bytes, the
// same framing Vec<T>/String containers use elsewhere in the archive
// format (see §6 of the source spec: "a u64 element count followed by
// each element").
func (w *Writer) WriteString(s string) {
	w.WriteU64(uint64(len(s)))
	w.WriteBytes([]byte(s))
}

// WriteLen writes a u64 element count, the common container-length prefix
// used by vectors, maps, and the mesh-region ref-table.
func (w *Writer) WriteLen(n int) { w.WriteU64(uint64(n)) }

// Pad emits n zero bytes, used to align a following Table<T> or ref-table
// to alignof(T) within the buffer per §4.H.
func (w *Writer) Pad(n int) {
	for i := 0; i < n; i++ {
		w.buf = append(w.buf, 0)
	}
}

// AlignTo pads the writer so the next byte written lands at an offset
// that is a multiple of align.
func (w *Writer) AlignTo(align int) {
	if align <= 1 {
		return
	}
	if rem := len(w.buf) % align; rem != 0 {
		w.Pad(align - rem)
	}
}

// Reader is a position cursor over a byte buffer produced by a Writer (or
// an mmap-able artifact of the same format).
type Reader struct {
	buf []byte
	pos int
}

// NewReader wraps buf for sequential reading from the start.
func NewReader(buf []byte) *Reader { return &Reader{buf: buf} }

// Pos reports the current read offset.
func (r *Reader) Pos() int { return r.pos }

// Remaining reports how many bytes are left to read.
func (r *Reader) Remaining() int { return len(r.buf) - r.pos }

func (r *Reader) take(n int) ([]byte, error) {
	if r.pos+n > len(r.buf) {
		return nil, ErrEndOfArchive
	}
	b := r.buf[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}

// ReadBytes reads exactly n raw bytes.
func (r *Reader) ReadBytes(n int) ([]byte, error) { return r.take(n) }

// ReadU8 reads a single byte.
func (r *Reader) ReadU8() (uint8, error) {
	b, err := r.take(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// ReadU32 reads a u32 in the archive's fixed byte order.
func (r *Reader) ReadU32() (uint32, error) {
	b, err := r.take(4)
	if err != nil {
		return 0, err
	}
	return order.Uint32(b), nil
}

// ReadU64 reads a u64 in the archive's fixed byte order.
func (r *Reader) ReadU64() (uint64, error) {
	b, err := r.take(8)
	if err != nil {
		return 0, err
	}
	return order.Uint64(b), nil
}

// ReadI64 reads an i64 in the archive's fixed byte order.
func (r *Reader) ReadI64() (int64, error) {
	v, err := r.ReadU64()
	return int64(v), err
}

// ReadF64 reads an IEEE-754 double.
func (r *Reader) ReadF64() (float64, error) {
	v, err := r.ReadU64()
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(v), nil
}

// ReadString reads a length-prefixed string written by WriteString.
func (r *Reader) ReadString() (string, error) {
	n, err := r.ReadU64()
	if err != nil {
		return "", err
	}
	b, err := r.take(int(n))
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// ReadLen reads a u64 element count written by WriteLen.
func (r *Reader) ReadLen() (int, error) {
	n, err := r.ReadU64()
	return int(n), err
}

// SkipPad advances the cursor past n padding bytes written by Pad.
func (r *Reader) SkipPad(n int) error {
	_, err := r.take(n)
	return err
}

// AlignTo advances the cursor to the next offset that is a multiple of
// align, skipping the padding a matching Writer.AlignTo call emitted.
func (r *Reader) AlignTo(align int) error {
	if align <= 1 {
		return nil
	}
	if rem := r.pos % align; rem != 0 {
		return r.SkipPad(align - rem)
	}
	return nil
}

// ConsumeArray advances the cursor by n*width bytes and returns the raw
// span, an interpret-in-place view for callers that know how to
// reinterpret fixed-width records (e.g. CSR offset/target tables) without
// copying.
func (r *Reader) ConsumeArray(n, width int) ([]byte, error) {
	return r.take(n * width)
}

// Serializable is implemented by types with an explicit archive encoding,
// as opposed to ones that are merely trivially serializable (plain memcpy
// of sizeof(T) bytes).
type Serializable interface {
	Store(w *Writer)
}

// Loadable is the reader-side counterpart of Serializable: Load populates
// the receiver in place from r.
type Loadable interface {
	Load(r *Reader) error
}
