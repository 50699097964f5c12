package binary

import (
	"bytes"
	"testing"
)

func TestReaderByte(t *testing.T) {
	data := []byte{0x01, 0x02, 0x03}
	r := NewReader(data)

	for i, want := range data {
		if r.Position() != i {
			t.Errorf("position before read %d: got %d, want %d", i, r.Position(), i)
		}
		b, err := r.Byte()
		if err != nil {
			t.Fatalf("Byte %d: %v", i, err)
		}
		if b != want {
			t.Errorf("Byte %d: got 0x%02x, want 0x%02x", i, b, want)
		}
	}

	if r.Position() != 3 {
		t.Errorf("final position: got %d, want 3", r.Position())
	}
	if _, err := r.Byte(); err != ErrEndOfFile {
		t.Errorf("expected ErrEndOfFile, got %v", err)
	}
}

func TestReaderBytes(t *testing.T) {
	data := []byte{0x01, 0x02, 0x03, 0x04, 0x05}
	r := NewReader(data)

	got, err := r.Bytes(3)
	if err != nil {
		t.Fatalf("Bytes: %v", err)
	}
	if !bytes.Equal(got, []byte{0x01, 0x02, 0x03}) {
		t.Errorf("Bytes: got %v, want [1 2 3]", got)
	}

	if _, err := r.Bytes(10); err == nil {
		t.Error("expected error for reading past end of input")
	}
}

func TestReaderU32(t *testing.T) {
	tests := []struct {
		encoded []byte
		want    uint32
	}{
		{[]byte{0x00}, 0},
		{[]byte{0x01}, 1},
		{[]byte{0x7f}, 127},
		{[]byte{0x80, 0x01}, 128},
		{[]byte{0xff, 0x01}, 255},
		{[]byte{0xe5, 0x8e, 0x26}, 624485},
		{[]byte{0xff, 0xff, 0xff, 0xff, 0x0f}, 0xFFFFFFFF},
	}

	for _, tt := range tests {
		r := NewReader(tt.encoded)
		got, err := r.U32()
		if err != nil {
			t.Errorf("U32(%v): %v", tt.encoded, err)
			continue
		}
		if got != tt.want {
			t.Errorf("U32(%v): got %d, want %d", tt.encoded, got, tt.want)
		}
	}
}

func TestReaderU32Overflow(t *testing.T) {
	data := []byte{0x80, 0x80, 0x80, 0x80, 0x80, 0x01}
	r := NewReader(data)
	_, err := r.U32()
	if _, ok := err.(*ErrOverflow); !ok {
		t.Errorf("expected *ErrOverflow, got %v", err)
	}
}

func TestReaderS32(t *testing.T) {
	tests := []struct {
		encoded []byte
		want    int32
	}{
		{[]byte{0x00}, 0},
		{[]byte{0x01}, 1},
		{[]byte{0x7f}, -1},
		{[]byte{0x3f}, 63},
		{[]byte{0x40}, -64},
		{[]byte{0xc0, 0x00}, 64},
		{[]byte{0xbf, 0x7f}, -65},
	}

	for _, tt := range tests {
		r := NewReader(tt.encoded)
		got, err := r.S32()
		if err != nil {
			t.Errorf("S32(%v): %v", tt.encoded, err)
			continue
		}
		if got != tt.want {
			t.Errorf("S32(%v): got %d, want %d", tt.encoded, got, tt.want)
		}
	}
}

func TestReaderName(t *testing.T) {
	w := NewWriter()
	w.Name("hello")

	r := NewReader(w.Bytes())
	got, err := r.Name()
	if err != nil {
		t.Fatalf("Name: %v", err)
	}
	if got != "hello" {
		t.Errorf("Name: got %q, want %q", got, "hello")
	}
}

func TestReaderNameInvalidUTF8(t *testing.T) {
	data := []byte{0x02, 0xff, 0xfe}
	r := NewReader(data)
	if _, err := r.Name(); err == nil {
		t.Error("expected error for invalid UTF-8")
	}
}

func TestReaderU32LE(t *testing.T) {
	data := []byte{0x01, 0x02, 0x03, 0x04}
	r := NewReader(data)
	got, err := r.U32LE()
	if err != nil {
		t.Fatalf("U32LE: %v", err)
	}
	if want := uint32(0x04030201); got != want {
		t.Errorf("U32LE: got 0x%08x, want 0x%08x", got, want)
	}
}

func TestWriterBasic(t *testing.T) {
	w := NewWriter()
	if w.Len() != 0 {
		t.Errorf("initial Len: got %d, want 0", w.Len())
	}

	w.Byte(0x42)
	w.WriteBytes([]byte{0x01, 0x02, 0x03})

	got := w.Bytes()
	want := []byte{0x42, 0x01, 0x02, 0x03}
	if !bytes.Equal(got, want) {
		t.Errorf("Bytes: got %v, want %v", got, want)
	}
}

func TestWriterU32(t *testing.T) {
	tests := []struct {
		want  []byte
		value uint32
	}{
		{[]byte{0x00}, 0},
		{[]byte{0x01}, 1},
		{[]byte{0x7f}, 127},
		{[]byte{0x80, 0x01}, 128},
		{[]byte{0xff, 0x01}, 255},
		{[]byte{0xe5, 0x8e, 0x26}, 624485},
		{[]byte{0xff, 0xff, 0xff, 0xff, 0x0f}, 0xFFFFFFFF},
	}

	for _, tt := range tests {
		w := NewWriter()
		w.U32(tt.value)
		if got := w.Bytes(); !bytes.Equal(got, tt.want) {
			t.Errorf("U32(%d): got %v, want %v", tt.value, got, tt.want)
		}
	}
}

func TestWriterS64(t *testing.T) {
	tests := []struct {
		want  []byte
		value int64
	}{
		{[]byte{0x00}, 0},
		{[]byte{0x01}, 1},
		{[]byte{0x7f}, -1},
		{[]byte{0x3f}, 63},
		{[]byte{0x40}, -64},
		{[]byte{0xc0, 0x00}, 64},
		{[]byte{0xbf, 0x7f}, -65},
	}

	for _, tt := range tests {
		w := NewWriter()
		w.S64(tt.value)
		if got := w.Bytes(); !bytes.Equal(got, tt.want) {
			t.Errorf("S64(%d): got %v, want %v", tt.value, got, tt.want)
		}
	}
}

func TestWriterName(t *testing.T) {
	w := NewWriter()
	w.Name("test")
	got := w.Bytes()
	want := []byte{0x04, 't', 'e', 's', 't'}
	if !bytes.Equal(got, want) {
		t.Errorf("Name: got %v, want %v", got, want)
	}
}

func TestRoundTripU32(t *testing.T) {
	values := []uint32{0, 1, 127, 128, 300, 624485, 0xFFFFFFFF}
	for _, v := range values {
		w := NewWriter()
		w.U32(v)
		r := NewReader(w.Bytes())
		got, err := r.U32()
		if err != nil {
			t.Fatalf("round-trip U32(%d): %v", v, err)
		}
		if got != v {
			t.Errorf("round-trip U32(%d): got %d", v, got)
		}
	}
}

func TestRoundTripS64(t *testing.T) {
	values := []int64{0, 1, -1, 63, -64, 64, -65, 1 << 40, -(1 << 40)}
	for _, v := range values {
		w := NewWriter()
		w.S64(v)
		r := NewReader(w.Bytes())
		got, err := r.S64(64)
		if err != nil {
			t.Fatalf("round-trip S64(%d): %v", v, err)
		}
		if got != v {
			t.Errorf("round-trip S64(%d): got %d", v, got)
		}
	}
}

func TestRoundTripMixed(t *testing.T) {
	w := NewWriter()
	w.U32(12345)
	w.S64(-9876)
	w.Name("roundtrip")
	w.U32LE(0xDEADBEEF)

	r := NewReader(w.Bytes())

	u32, err := r.U32()
	if err != nil {
		t.Fatalf("U32: %v", err)
	}
	if u32 != 12345 {
		t.Errorf("U32: got %d, want 12345", u32)
	}

	s64, err := r.S64(64)
	if err != nil {
		t.Fatalf("S64: %v", err)
	}
	if s64 != -9876 {
		t.Errorf("S64: got %d, want -9876", s64)
	}

	name, err := r.Name()
	if err != nil {
		t.Fatalf("Name: %v", err)
	}
	if name != "roundtrip" {
		t.Errorf("Name: got %q, want %q", name, "roundtrip")
	}

	u32le, err := r.U32LE()
	if err != nil {
		t.Fatalf("U32LE: %v", err)
	}
	if u32le != 0xDEADBEEF {
		t.Errorf("U32LE: got 0x%08x, want 0xDEADBEEF", u32le)
	}
}
