// Package binary implements the positional byte reader the decoder is
// built on: fixed-width little-endian reads, LEB128 of arbitrary bit
// width, length-prefixed slices and UTF-8 strings, plus the mark/error
// anchoring the decoder needs to report a byte offset on failure.
package binary

import (
	"encoding/binary"
	"unicode/utf8"
)

// ErrOverflow is returned when a LEB128 value exceeds its declared bit width.
type ErrOverflow struct {
	TypeName string
}

func (e *ErrOverflow) Error() string { return "leb128 overflow: " + e.TypeName }

// ErrEndOfFile is returned when a read runs past the end of the slice.
var ErrEndOfFile = errEOF{}

type errEOF struct{}

func (errEOF) Error() string { return "unexpected end of input" }

// Reader is a positional cursor over an immutable byte slice. It never
// copies the input; strings and payload slices it returns are views into
// the caller's buffer.
type Reader struct {
	buf []byte
	pos int
}

// NewReader wraps buf for reading from the start.
func NewReader(buf []byte) *Reader {
	return &Reader{buf: buf}
}

// Mark is a position-stamped anchor used to build an error pointing at the
// byte that caused a failure.
type Mark struct {
	Offset int
}

// Position returns the current cursor offset.
func (r *Reader) Position() int { return r.pos }

// Len returns the number of unread bytes.
func (r *Reader) Len() int { return len(r.buf) - r.pos }

// Mark captures the current position.
func (r *Reader) Mark() Mark { return Mark{Offset: r.pos} }

// MarkRelative captures the current position shifted by delta. Use -1 to
// anchor at the byte that was just consumed when a multi-byte read fails
// partway through.
func (r *Reader) MarkRelative(delta int) Mark {
	off := r.pos + delta
	if off < 0 {
		off = 0
	}
	return Mark{Offset: off}
}

// Byte reads and consumes one byte.
func (r *Reader) Byte() (byte, error) {
	if r.pos >= len(r.buf) {
		return 0, ErrEndOfFile
	}
	b := r.buf[r.pos]
	r.pos++
	return b, nil
}

// PeekByte reads one byte without consuming it.
func (r *Reader) PeekByte() (byte, error) {
	if r.pos >= len(r.buf) {
		return 0, ErrEndOfFile
	}
	return r.buf[r.pos], nil
}

// ByteIf peeks one byte and consumes it only if pred reports true,
// returning whether it was consumed.
func (r *Reader) ByteIf(pred func(byte) bool) (byte, bool, error) {
	b, err := r.PeekByte()
	if err != nil {
		return 0, false, nil //nolint:nilerr // end of input is simply "not matched"
	}
	if !pred(b) {
		return 0, false, nil
	}
	r.pos++
	return b, true, nil
}

// Bytes reads exactly n bytes as a slice view into the input.
func (r *Reader) Bytes(n int) ([]byte, error) {
	if n < 0 || r.pos+n > len(r.buf) {
		return nil, ErrEndOfFile
	}
	out := r.buf[r.pos : r.pos+n]
	r.pos += n
	return out, nil
}

// Remaining returns every byte not yet consumed.
func (r *Reader) Remaining() []byte {
	out := r.buf[r.pos:]
	r.pos = len(r.buf)
	return out
}

// U32LE reads a fixed 4-byte little-endian unsigned integer.
func (r *Reader) U32LE() (uint32, error) {
	b, err := r.Bytes(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

// F32Bits reads a fixed 4-byte little-endian IEEE-754 float bit pattern.
func (r *Reader) F32Bits() (uint32, error) { return r.U32LE() }

// F64Bits reads a fixed 8-byte little-endian IEEE-754 float bit pattern.
func (r *Reader) F64Bits() (uint64, error) {
	b, err := r.Bytes(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

// leb128GroupCap returns the maximum number of 7-bit groups a value of the
// given bit width may legally span (ceil(width/7)). Wasm's canonical
// encoding never needs more; additional continuation bytes are overflow.
func leb128GroupCap(width uint) uint {
	return (width + 6) / 7
}

// U64 reads an unsigned LEB128 value declared to be at most width bits
// wide, failing with ErrOverflow if either the byte count or the decoded
// value exceeds that width.
func (r *Reader) U64(width uint) (uint64, error) {
	groupCap := leb128GroupCap(width)
	var result uint64
	var shift uint
	for i := uint(0); ; i++ {
		b, err := r.Byte()
		if err != nil {
			return 0, err
		}
		if i >= groupCap {
			return 0, &ErrOverflow{TypeName: widthName(width, false)}
		}
		if shift < 64 {
			result |= uint64(b&0x7f) << shift
		}
		if b&0x80 == 0 {
			if width < 64 && result>>width != 0 {
				return 0, &ErrOverflow{TypeName: widthName(width, false)}
			}
			return result, nil
		}
		shift += 7
	}
}

// U32 reads an unsigned LEB128 uint32.
func (r *Reader) U32() (uint32, error) {
	v, err := r.U64(32)
	if err != nil {
		return 0, err
	}
	return uint32(v), nil
}

// S64 reads a signed LEB128 value declared to be at most width bits wide.
func (r *Reader) S64(width uint) (int64, error) {
	groupCap := leb128GroupCap(width)
	var result int64
	var shift uint
	var b byte
	for i := uint(0); ; i++ {
		var err error
		b, err = r.Byte()
		if err != nil {
			return 0, err
		}
		if i >= groupCap {
			return 0, &ErrOverflow{TypeName: widthName(width, true)}
		}
		if shift < 64 {
			result |= int64(b&0x7f) << shift
		}
		shift += 7
		if b&0x80 == 0 {
			break
		}
	}
	if shift < 64 && b&0x40 != 0 {
		result |= ^int64(0) << shift
	}
	if width < 64 {
		hi := result >> width
		if hi != 0 && hi != -1 {
			return 0, &ErrOverflow{TypeName: widthName(width, true)}
		}
	}
	return result, nil
}

// S32 reads a signed LEB128 int32.
func (r *Reader) S32() (int32, error) {
	v, err := r.S64(32)
	if err != nil {
		return 0, err
	}
	return int32(v), nil
}

func widthName(width uint, signed bool) string {
	switch {
	case width == 32 && signed:
		return "i32"
	case width == 32:
		return "u32"
	case width == 64 && signed:
		return "i64"
	case width == 64:
		return "u64"
	case width == 33:
		return "s33"
	default:
		return "leb128"
	}
}

// LengthPrefixed reads a u32-LEB length followed by that many raw bytes.
func (r *Reader) LengthPrefixed() ([]byte, error) {
	n, err := r.U32()
	if err != nil {
		return nil, err
	}
	return r.Bytes(int(n))
}

// Name reads a length-prefixed UTF-8 string.
func (r *Reader) Name() (string, error) {
	data, err := r.LengthPrefixed()
	if err != nil {
		return "", err
	}
	if !utf8.Valid(data) {
		return "", errInvalidUTF8{}
	}
	return string(data), nil
}

type errInvalidUTF8 struct{}

func (errInvalidUTF8) Error() string { return "invalid utf-8" }

// IsInvalidUTF8 reports whether err is the invalid-UTF-8 sentinel Name returns.
func IsInvalidUTF8(err error) bool {
	_, ok := err.(errInvalidUTF8)
	return ok
}
