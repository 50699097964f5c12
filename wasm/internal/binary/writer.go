package binary

import (
	"bytes"
	"encoding/binary"
)

// Writer is the LEB128/little-endian counterpart to Reader, used only by
// tests: to build module fixtures and to check that Reader decodes what
// Writer encodes.
type Writer struct {
	buf bytes.Buffer
}

// NewWriter returns an empty Writer.
func NewWriter() *Writer { return &Writer{} }

// Bytes returns everything written so far.
func (w *Writer) Bytes() []byte { return w.buf.Bytes() }

// Len returns the number of bytes written.
func (w *Writer) Len() int { return w.buf.Len() }

// Byte writes a single byte.
func (w *Writer) Byte(b byte) { w.buf.WriteByte(b) }

// WriteBytes writes a raw byte slice verbatim.
func (w *Writer) WriteBytes(data []byte) { w.buf.Write(data) }

// U32LE writes a fixed 4-byte little-endian unsigned integer.
func (w *Writer) U32LE(v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	w.buf.Write(b[:])
}

// F32Bits writes a fixed 4-byte little-endian IEEE-754 float bit pattern.
func (w *Writer) F32Bits(v uint32) { w.U32LE(v) }

// F64Bits writes a fixed 8-byte little-endian IEEE-754 float bit pattern.
func (w *Writer) F64Bits(v uint64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	w.buf.Write(b[:])
}

// U64 writes v as an unsigned LEB128 value.
func (w *Writer) U64(v uint64) {
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if v != 0 {
			b |= 0x80
		}
		w.buf.WriteByte(b)
		if v == 0 {
			return
		}
	}
}

// U32 writes v as an unsigned LEB128 value.
func (w *Writer) U32(v uint32) { w.U64(uint64(v)) }

// S64 writes v as a signed LEB128 value.
func (w *Writer) S64(v int64) {
	more := true
	for more {
		b := byte(v & 0x7f)
		v >>= 7
		if (v == 0 && b&0x40 == 0) || (v == -1 && b&0x40 != 0) {
			more = false
		} else {
			b |= 0x80
		}
		w.buf.WriteByte(b)
	}
}

// S32 writes v as a signed LEB128 value.
func (w *Writer) S32(v int32) { w.S64(int64(v)) }

// LengthPrefixed writes data's length as LEB128 followed by data itself.
func (w *Writer) LengthPrefixed(data []byte) {
	w.U32(uint32(len(data)))
	w.buf.Write(data)
}

// Name writes s as a length-prefixed UTF-8 string.
func (w *Writer) Name(s string) { w.LengthPrefixed([]byte(s)) }
