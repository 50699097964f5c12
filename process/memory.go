package process

import "github.com/wippyai/wasm-embedded/wasm"

const pageSize = 64 * 1024

// Memory is one linear memory instance: a growable byte slice addressed
// little-endian, with an optional page cap inherited from its MemoryType.
type Memory struct {
	data     []byte
	maxPages uint32
	hasMax   bool
}

func newMemory(t wasm.MemoryType) *Memory {
	m := &Memory{data: make([]byte, uint64(t.Limits.Min)*pageSize)}
	if t.Limits.HasMax {
		m.hasMax = true
		m.maxPages = t.Limits.Max
	}
	return m
}

// Pages reports the current size in 64 KiB pages.
func (m *Memory) Pages() uint32 { return uint32(len(m.data) / pageSize) }

// Grow extends the memory by delta pages, returning the previous size in
// pages. ok is false (leaving the memory untouched) if doing so would
// exceed the declared maximum.
func (m *Memory) Grow(delta uint32) (oldPages uint32, ok bool) {
	old := m.Pages()
	if m.hasMax && uint64(old)+uint64(delta) > uint64(m.maxPages) {
		return old, false
	}
	m.data = append(m.data, make([]byte, uint64(delta)*pageSize)...)
	return old, true
}

func (m *Memory) bytes(addr uint64, n int) ([]byte, bool) {
	if addr+uint64(n) > uint64(len(m.data)) {
		return nil, false
	}
	return m.data[addr : addr+uint64(n)], true
}

// Load reads n little-endian bytes starting at addr as an unsigned value.
func (m *Memory) Load(addr uint64, n int) (uint64, bool) {
	b, ok := m.bytes(addr, n)
	if !ok {
		return 0, false
	}
	var v uint64
	for i := n - 1; i >= 0; i-- {
		v = v<<8 | uint64(b[i])
	}
	return v, true
}

// Store writes the low n bytes of v little-endian starting at addr.
func (m *Memory) Store(addr uint64, n int, v uint64) bool {
	b, ok := m.bytes(addr, n)
	if !ok {
		return false
	}
	for i := 0; i < n; i++ {
		b[i] = byte(v)
		v >>= 8
	}
	return true
}

// Fill sets n bytes starting at addr to value.
func (m *Memory) Fill(addr uint64, value byte, n uint64) bool {
	b, ok := m.bytes(addr, int(n))
	if !ok {
		return false
	}
	for i := range b {
		b[i] = value
	}
	return true
}

// Copy copies n bytes from src to dst, correctly handling overlap.
func (m *Memory) Copy(dst, src, n uint64) bool {
	s, ok := m.bytes(src, int(n))
	if !ok {
		return false
	}
	d, ok := m.bytes(dst, int(n))
	if !ok {
		return false
	}
	copy(d, s)
	return true
}

// Init copies n bytes from a data segment's payload into memory at dst.
func (m *Memory) Init(dst uint64, data []byte, srcOffset, n uint64) bool {
	if srcOffset+n > uint64(len(data)) {
		return false
	}
	d, ok := m.bytes(dst, int(n))
	if !ok {
		return false
	}
	copy(d, data[srcOffset:srcOffset+n])
	return true
}

// signExtend sign-extends the low `bits` bits of v to a full int64.
func signExtend(v uint64, bits int) int64 {
	shift := uint(64 - bits)
	return int64(v<<shift) >> shift
}
