package process

import "math"

// Dynamic is an 8-byte operand-stack word. It carries no type tag of its
// own — the instruction reading it decides whether to interpret it as
// i32, i64, f32 or f64. Reference values are carried as their raw bit
// pattern with no operational semantics beyond transport.
type Dynamic uint64

// FromI32 widens a signed 32-bit value into a Dynamic.
func FromI32(v int32) Dynamic { return Dynamic(uint32(v)) }

// FromI64 reinterprets a signed 64-bit value as a Dynamic.
func FromI64(v int64) Dynamic { return Dynamic(v) }

// FromF32 stores a float32's bit pattern in the low 32 bits.
func FromF32(v float32) Dynamic { return Dynamic(math.Float32bits(v)) }

// FromF64 stores a float64's bit pattern.
func FromF64(v float64) Dynamic { return Dynamic(math.Float64bits(v)) }

// AsI32 reads the low 32 bits as a signed integer.
func (d Dynamic) AsI32() int32 { return int32(uint32(d)) }

// AsI64 reads all 64 bits as a signed integer.
func (d Dynamic) AsI64() int64 { return int64(d) }

// AsU32 reads the low 32 bits as an unsigned integer.
func (d Dynamic) AsU32() uint32 { return uint32(d) }

// AsU64 reads all 64 bits as an unsigned integer.
func (d Dynamic) AsU64() uint64 { return uint64(d) }

// AsF32 reinterprets the low 32 bits as an IEEE-754 float.
func (d Dynamic) AsF32() float32 { return math.Float32frombits(uint32(d)) }

// AsF64 reinterprets all 64 bits as an IEEE-754 float.
func (d Dynamic) AsF64() float64 { return math.Float64frombits(uint64(d)) }
