package process

import (
	"math"
	"math/bits"

	"github.com/wippyai/wasm-embedded/wasm"
)

// executeLeaf runs every instruction that is not itself structured
// control flow, a branch, or a call — parametric, variable, table,
// memory and numeric instructions, plus the extended (0xFC) space.
// Vector (0xFD) instructions are not executed; they trap.
func (p *Process) executeLeaf(frame *Frame, instr wasm.Instruction) *ExecError {
	switch instr.Opcode {
	case wasm.OpNop:
		return nil

	case wasm.OpDrop:
		p.pop()
		return nil

	case wasm.OpSelect:
		cond := p.popI32()
		b := p.pop()
		a := p.pop()
		if cond != 0 {
			p.push(a)
		} else {
			p.push(b)
		}
		return nil

	case wasm.OpSelectType:
		cond := p.popI32()
		b := p.pop()
		a := p.pop()
		if cond != 0 {
			p.push(a)
		} else {
			p.push(b)
		}
		return nil

	case wasm.OpLocalGet:
		idx := instr.Imm.(wasm.LocalImm).LocalIdx
		if int(idx) >= len(frame.Locals) {
			return trap("local.get: index out of range", nil)
		}
		p.push(frame.Locals[idx])
		return nil

	case wasm.OpLocalSet:
		idx := instr.Imm.(wasm.LocalImm).LocalIdx
		v := p.pop()
		if int(idx) >= len(frame.Locals) {
			return trap("local.set: index out of range", nil)
		}
		frame.Locals[idx] = v
		return nil

	case wasm.OpLocalTee:
		idx := instr.Imm.(wasm.LocalImm).LocalIdx
		v := p.stack[len(p.stack)-1]
		if int(idx) >= len(frame.Locals) {
			return trap("local.tee: index out of range", nil)
		}
		frame.Locals[idx] = v
		return nil

	case wasm.OpGlobalGet:
		idx := instr.Imm.(wasm.GlobalImm).GlobalIdx
		if int(idx) >= len(p.globals) {
			return trap("global.get: index out of range", nil)
		}
		p.push(p.globals[idx])
		return nil

	case wasm.OpGlobalSet:
		idx := instr.Imm.(wasm.GlobalImm).GlobalIdx
		v := p.pop()
		if int(idx) >= len(p.globals) {
			return trap("global.set: index out of range", nil)
		}
		p.globals[idx] = v
		return nil

	case wasm.OpRefNull:
		p.push(0)
		return nil
	case wasm.OpRefIsNull:
		p.pushBool(p.pop() == 0)
		return nil
	case wasm.OpRefFunc:
		idx := instr.Imm.(wasm.RefFuncImm).FuncIdx
		p.pushI32(int32(idx))
		return nil

	case wasm.OpTableGet:
		idx := instr.Imm.(wasm.TableImm).TableIdx
		elemIdx := p.popU32()
		if int(idx) >= len(p.tables) {
			return trap("table.get: table index out of range", nil)
		}
		v, ok := p.tables[idx].Get(elemIdx)
		if !ok {
			return trap("table.get: element index out of bounds", nil)
		}
		p.pushI64(v)
		return nil

	case wasm.OpTableSet:
		idx := instr.Imm.(wasm.TableImm).TableIdx
		v := p.popI64()
		elemIdx := p.popU32()
		if int(idx) >= len(p.tables) {
			return trap("table.set: table index out of range", nil)
		}
		if !p.tables[idx].Set(elemIdx, v) {
			return trap("table.set: element index out of bounds", nil)
		}
		return nil

	case wasm.OpMemorySize:
		if len(p.memories) == 0 {
			return trap("memory.size: no memory instance", nil)
		}
		p.pushI32(int32(p.memories[0].Pages()))
		return nil

	case wasm.OpMemoryGrow:
		if len(p.memories) == 0 {
			return trap("memory.grow: no memory instance", nil)
		}
		delta := p.popU32()
		old, ok := p.memories[0].Grow(delta)
		if !ok {
			p.pushI32(-1)
			return nil
		}
		p.pushI32(int32(old))
		return nil

	case wasm.OpI32Const:
		p.pushI32(instr.Imm.(wasm.I32Imm).Value)
		return nil
	case wasm.OpI64Const:
		p.pushI64(instr.Imm.(wasm.I64Imm).Value)
		return nil
	case wasm.OpF32Const:
		p.pushF32(instr.Imm.(wasm.F32Imm).Value)
		return nil
	case wasm.OpF64Const:
		p.pushF64(instr.Imm.(wasm.F64Imm).Value)
		return nil
	}

	if isMemoryOp(instr.Opcode) {
		return p.executeMemoryOp(instr)
	}
	if isNumericOp(instr.Opcode) {
		return p.executeNumericOp(instr.Opcode)
	}
	if instr.Opcode == wasm.OpPrefixMisc {
		return p.executeMisc(instr)
	}
	if instr.Opcode == wasm.OpPrefixSIMD {
		return trap("vector instruction execution is not implemented", nil)
	}
	return trap("unexecutable instruction", nil)
}

func isMemoryOp(op byte) bool {
	switch op {
	case wasm.OpI32Load, wasm.OpI64Load, wasm.OpF32Load, wasm.OpF64Load,
		wasm.OpI32Load8S, wasm.OpI32Load8U, wasm.OpI32Load16S, wasm.OpI32Load16U,
		wasm.OpI64Load8S, wasm.OpI64Load8U, wasm.OpI64Load16S, wasm.OpI64Load16U,
		wasm.OpI64Load32S, wasm.OpI64Load32U,
		wasm.OpI32Store, wasm.OpI64Store, wasm.OpF32Store, wasm.OpF64Store,
		wasm.OpI32Store8, wasm.OpI32Store16, wasm.OpI64Store8, wasm.OpI64Store16, wasm.OpI64Store32:
		return true
	}
	return false
}

func (p *Process) executeMemoryOp(instr wasm.Instruction) *ExecError {
	if len(p.memories) == 0 {
		return trap("memory access: no memory instance", nil)
	}
	mem := p.memories[0]
	arg := instr.Imm.(wasm.MemoryImm).Arg

	if isStoreOp(instr.Opcode) {
		var raw uint64
		var n int
		switch instr.Opcode {
		case wasm.OpI32Store:
			raw, n = uint64(p.popU32()), 4
		case wasm.OpI64Store:
			raw, n = p.popU64(), 8
		case wasm.OpF32Store:
			raw, n = uint64(math.Float32bits(p.popF32())), 4
		case wasm.OpF64Store:
			raw, n = math.Float64bits(p.popF64()), 8
		case wasm.OpI32Store8:
			raw, n = uint64(p.popU32()), 1
		case wasm.OpI32Store16:
			raw, n = uint64(p.popU32()), 2
		case wasm.OpI64Store8:
			raw, n = p.popU64(), 1
		case wasm.OpI64Store16:
			raw, n = p.popU64(), 2
		case wasm.OpI64Store32:
			raw, n = p.popU64(), 4
		}
		addr := uint64(p.popU32()) + uint64(arg.Offset)
		if !mem.Store(addr, n, raw) {
			return trap("out of bounds memory access", nil)
		}
		return nil
	}

	addr := uint64(p.popU32()) + uint64(arg.Offset)
	switch instr.Opcode {
	case wasm.OpI32Load:
		v, ok := mem.Load(addr, 4)
		if !ok {
			return trap("out of bounds memory access", nil)
		}
		p.pushI32(int32(v))
	case wasm.OpI64Load:
		v, ok := mem.Load(addr, 8)
		if !ok {
			return trap("out of bounds memory access", nil)
		}
		p.pushI64(int64(v))
	case wasm.OpF32Load:
		v, ok := mem.Load(addr, 4)
		if !ok {
			return trap("out of bounds memory access", nil)
		}
		p.pushF32(math.Float32frombits(uint32(v)))
	case wasm.OpF64Load:
		v, ok := mem.Load(addr, 8)
		if !ok {
			return trap("out of bounds memory access", nil)
		}
		p.pushF64(math.Float64frombits(v))
	case wasm.OpI32Load8S:
		v, ok := mem.Load(addr, 1)
		if !ok {
			return trap("out of bounds memory access", nil)
		}
		p.pushI32(int32(signExtend(v, 8)))
	case wasm.OpI32Load8U:
		v, ok := mem.Load(addr, 1)
		if !ok {
			return trap("out of bounds memory access", nil)
		}
		p.pushI32(int32(v))
	case wasm.OpI32Load16S:
		v, ok := mem.Load(addr, 2)
		if !ok {
			return trap("out of bounds memory access", nil)
		}
		p.pushI32(int32(signExtend(v, 16)))
	case wasm.OpI32Load16U:
		v, ok := mem.Load(addr, 2)
		if !ok {
			return trap("out of bounds memory access", nil)
		}
		p.pushI32(int32(v))
	case wasm.OpI64Load8S:
		v, ok := mem.Load(addr, 1)
		if !ok {
			return trap("out of bounds memory access", nil)
		}
		p.pushI64(signExtend(v, 8))
	case wasm.OpI64Load8U:
		v, ok := mem.Load(addr, 1)
		if !ok {
			return trap("out of bounds memory access", nil)
		}
		p.pushI64(int64(v))
	case wasm.OpI64Load16S:
		v, ok := mem.Load(addr, 2)
		if !ok {
			return trap("out of bounds memory access", nil)
		}
		p.pushI64(signExtend(v, 16))
	case wasm.OpI64Load16U:
		v, ok := mem.Load(addr, 2)
		if !ok {
			return trap("out of bounds memory access", nil)
		}
		p.pushI64(int64(v))
	case wasm.OpI64Load32S:
		v, ok := mem.Load(addr, 4)
		if !ok {
			return trap("out of bounds memory access", nil)
		}
		p.pushI64(signExtend(v, 32))
	case wasm.OpI64Load32U:
		v, ok := mem.Load(addr, 4)
		if !ok {
			return trap("out of bounds memory access", nil)
		}
		p.pushI64(int64(v))
	}
	return nil
}

func isStoreOp(op byte) bool {
	switch op {
	case wasm.OpI32Store, wasm.OpI64Store, wasm.OpF32Store, wasm.OpF64Store,
		wasm.OpI32Store8, wasm.OpI32Store16, wasm.OpI64Store8, wasm.OpI64Store16, wasm.OpI64Store32:
		return true
	}
	return false
}

func isNumericOp(op byte) bool {
	return op >= wasm.OpI32Eqz && op <= wasm.OpI64Extend32S
}

// executeNumericOp runs every comparison, arithmetic, conversion and
// sign-extension opcode: the i32/i64/f32/f64 surface of Wasm 1.0.
func (p *Process) executeNumericOp(op byte) *ExecError {
	switch op {
	// i32 comparisons
	case wasm.OpI32Eqz:
		p.pushBool(p.popI32() == 0)
	case wasm.OpI32Eq:
		b, a := p.popI32(), p.popI32()
		p.pushBool(a == b)
	case wasm.OpI32Ne:
		b, a := p.popI32(), p.popI32()
		p.pushBool(a != b)
	case wasm.OpI32LtS:
		b, a := p.popI32(), p.popI32()
		p.pushBool(a < b)
	case wasm.OpI32LtU:
		b, a := p.popU32(), p.popU32()
		p.pushBool(a < b)
	case wasm.OpI32GtS:
		b, a := p.popI32(), p.popI32()
		p.pushBool(a > b)
	case wasm.OpI32GtU:
		b, a := p.popU32(), p.popU32()
		p.pushBool(a > b)
	case wasm.OpI32LeS:
		b, a := p.popI32(), p.popI32()
		p.pushBool(a <= b)
	case wasm.OpI32LeU:
		b, a := p.popU32(), p.popU32()
		p.pushBool(a <= b)
	case wasm.OpI32GeS:
		b, a := p.popI32(), p.popI32()
		p.pushBool(a >= b)
	case wasm.OpI32GeU:
		b, a := p.popU32(), p.popU32()
		p.pushBool(a >= b)

	// i64 comparisons
	case wasm.OpI64Eqz:
		p.pushBool(p.popI64() == 0)
	case wasm.OpI64Eq:
		b, a := p.popI64(), p.popI64()
		p.pushBool(a == b)
	case wasm.OpI64Ne:
		b, a := p.popI64(), p.popI64()
		p.pushBool(a != b)
	case wasm.OpI64LtS:
		b, a := p.popI64(), p.popI64()
		p.pushBool(a < b)
	case wasm.OpI64LtU:
		b, a := p.popU64(), p.popU64()
		p.pushBool(a < b)
	case wasm.OpI64GtS:
		b, a := p.popI64(), p.popI64()
		p.pushBool(a > b)
	case wasm.OpI64GtU:
		b, a := p.popU64(), p.popU64()
		p.pushBool(a > b)
	case wasm.OpI64LeS:
		b, a := p.popI64(), p.popI64()
		p.pushBool(a <= b)
	case wasm.OpI64LeU:
		b, a := p.popU64(), p.popU64()
		p.pushBool(a <= b)
	case wasm.OpI64GeS:
		b, a := p.popI64(), p.popI64()
		p.pushBool(a >= b)
	case wasm.OpI64GeU:
		b, a := p.popU64(), p.popU64()
		p.pushBool(a >= b)

	// f32/f64 comparisons
	case wasm.OpF32Eq:
		b, a := p.popF32(), p.popF32()
		p.pushBool(a == b)
	case wasm.OpF32Ne:
		b, a := p.popF32(), p.popF32()
		p.pushBool(a != b)
	case wasm.OpF32Lt:
		b, a := p.popF32(), p.popF32()
		p.pushBool(a < b)
	case wasm.OpF32Gt:
		b, a := p.popF32(), p.popF32()
		p.pushBool(a > b)
	case wasm.OpF32Le:
		b, a := p.popF32(), p.popF32()
		p.pushBool(a <= b)
	case wasm.OpF32Ge:
		b, a := p.popF32(), p.popF32()
		p.pushBool(a >= b)
	case wasm.OpF64Eq:
		b, a := p.popF64(), p.popF64()
		p.pushBool(a == b)
	case wasm.OpF64Ne:
		b, a := p.popF64(), p.popF64()
		p.pushBool(a != b)
	case wasm.OpF64Lt:
		b, a := p.popF64(), p.popF64()
		p.pushBool(a < b)
	case wasm.OpF64Gt:
		b, a := p.popF64(), p.popF64()
		p.pushBool(a > b)
	case wasm.OpF64Le:
		b, a := p.popF64(), p.popF64()
		p.pushBool(a <= b)
	case wasm.OpF64Ge:
		b, a := p.popF64(), p.popF64()
		p.pushBool(a >= b)

	// i32 arithmetic
	case wasm.OpI32Clz:
		p.pushI32(int32(bits.LeadingZeros32(p.popU32())))
	case wasm.OpI32Ctz:
		p.pushI32(int32(bits.TrailingZeros32(p.popU32())))
	case wasm.OpI32Popcnt:
		p.pushI32(int32(bits.OnesCount32(p.popU32())))
	case wasm.OpI32Add:
		b, a := p.popI32(), p.popI32()
		p.pushI32(a + b)
	case wasm.OpI32Sub:
		b, a := p.popI32(), p.popI32()
		p.pushI32(a - b)
	case wasm.OpI32Mul:
		b, a := p.popI32(), p.popI32()
		p.pushI32(a * b)
	case wasm.OpI32DivS:
		b, a := p.popI32(), p.popI32()
		if b == 0 {
			return trap("integer division by zero", nil)
		}
		if a == math.MinInt32 && b == -1 {
			return trap("integer overflow", nil)
		}
		p.pushI32(a / b)
	case wasm.OpI32DivU:
		b, a := p.popU32(), p.popU32()
		if b == 0 {
			return trap("integer division by zero", nil)
		}
		p.pushU32(a / b)
	case wasm.OpI32RemS:
		b, a := p.popI32(), p.popI32()
		if b == 0 {
			return trap("integer division by zero", nil)
		}
		p.pushI32(a % b)
	case wasm.OpI32RemU:
		b, a := p.popU32(), p.popU32()
		if b == 0 {
			return trap("integer division by zero", nil)
		}
		p.pushU32(a % b)
	case wasm.OpI32And:
		b, a := p.popI32(), p.popI32()
		p.pushI32(a & b)
	case wasm.OpI32Or:
		b, a := p.popI32(), p.popI32()
		p.pushI32(a | b)
	case wasm.OpI32Xor:
		b, a := p.popI32(), p.popI32()
		p.pushI32(a ^ b)
	case wasm.OpI32Shl:
		b, a := p.popU32(), p.popU32()
		p.pushU32(a << (b & 31))
	case wasm.OpI32ShrS:
		b, a := p.popU32(), p.popI32()
		p.pushI32(a >> (b & 31))
	case wasm.OpI32ShrU:
		b, a := p.popU32(), p.popU32()
		p.pushU32(a >> (b & 31))
	case wasm.OpI32Rotl:
		b, a := p.popU32(), p.popU32()
		p.pushU32(bits.RotateLeft32(a, int(b)))
	case wasm.OpI32Rotr:
		b, a := p.popU32(), p.popU32()
		p.pushU32(bits.RotateLeft32(a, -int(b)))

	// i64 arithmetic
	case wasm.OpI64Clz:
		p.pushI64(int64(bits.LeadingZeros64(p.popU64())))
	case wasm.OpI64Ctz:
		p.pushI64(int64(bits.TrailingZeros64(p.popU64())))
	case wasm.OpI64Popcnt:
		p.pushI64(int64(bits.OnesCount64(p.popU64())))
	case wasm.OpI64Add:
		b, a := p.popI64(), p.popI64()
		p.pushI64(a + b)
	case wasm.OpI64Sub:
		b, a := p.popI64(), p.popI64()
		p.pushI64(a - b)
	case wasm.OpI64Mul:
		b, a := p.popI64(), p.popI64()
		p.pushI64(a * b)
	case wasm.OpI64DivS:
		b, a := p.popI64(), p.popI64()
		if b == 0 {
			return trap("integer division by zero", nil)
		}
		if a == math.MinInt64 && b == -1 {
			return trap("integer overflow", nil)
		}
		p.pushI64(a / b)
	case wasm.OpI64DivU:
		b, a := p.popU64(), p.popU64()
		if b == 0 {
			return trap("integer division by zero", nil)
		}
		p.pushU64(a / b)
	case wasm.OpI64RemS:
		b, a := p.popI64(), p.popI64()
		if b == 0 {
			return trap("integer division by zero", nil)
		}
		p.pushI64(a % b)
	case wasm.OpI64RemU:
		b, a := p.popU64(), p.popU64()
		if b == 0 {
			return trap("integer division by zero", nil)
		}
		p.pushU64(a % b)
	case wasm.OpI64And:
		b, a := p.popI64(), p.popI64()
		p.pushI64(a & b)
	case wasm.OpI64Or:
		b, a := p.popI64(), p.popI64()
		p.pushI64(a | b)
	case wasm.OpI64Xor:
		b, a := p.popI64(), p.popI64()
		p.pushI64(a ^ b)
	case wasm.OpI64Shl:
		b, a := p.popU64(), p.popU64()
		p.pushU64(a << (b & 63))
	case wasm.OpI64ShrS:
		b, a := p.popU64(), p.popI64()
		p.pushI64(a >> (b & 63))
	case wasm.OpI64ShrU:
		b, a := p.popU64(), p.popU64()
		p.pushU64(a >> (b & 63))
	case wasm.OpI64Rotl:
		b, a := p.popU64(), p.popU64()
		p.pushU64(bits.RotateLeft64(a, int(b)))
	case wasm.OpI64Rotr:
		b, a := p.popU64(), p.popU64()
		p.pushU64(bits.RotateLeft64(a, -int(b)))

	// f32 arithmetic
	case wasm.OpF32Abs:
		p.pushF32(float32(math.Abs(float64(p.popF32()))))
	case wasm.OpF32Neg:
		p.pushF32(-p.popF32())
	case wasm.OpF32Ceil:
		p.pushF32(float32(math.Ceil(float64(p.popF32()))))
	case wasm.OpF32Floor:
		p.pushF32(float32(math.Floor(float64(p.popF32()))))
	case wasm.OpF32Trunc:
		p.pushF32(float32(math.Trunc(float64(p.popF32()))))
	case wasm.OpF32Nearest:
		p.pushF32(float32(math.RoundToEven(float64(p.popF32()))))
	case wasm.OpF32Sqrt:
		p.pushF32(float32(math.Sqrt(float64(p.popF32()))))
	case wasm.OpF32Add:
		b, a := p.popF32(), p.popF32()
		p.pushF32(a + b)
	case wasm.OpF32Sub:
		b, a := p.popF32(), p.popF32()
		p.pushF32(a - b)
	case wasm.OpF32Mul:
		b, a := p.popF32(), p.popF32()
		p.pushF32(a * b)
	case wasm.OpF32Div:
		b, a := p.popF32(), p.popF32()
		p.pushF32(a / b)
	case wasm.OpF32Min:
		b, a := p.popF32(), p.popF32()
		p.pushF32(float32(math.Min(float64(a), float64(b))))
	case wasm.OpF32Max:
		b, a := p.popF32(), p.popF32()
		p.pushF32(float32(math.Max(float64(a), float64(b))))
	case wasm.OpF32Copysign:
		b, a := p.popF32(), p.popF32()
		p.pushF32(float32(math.Copysign(float64(a), float64(b))))

	// f64 arithmetic
	case wasm.OpF64Abs:
		p.pushF64(math.Abs(p.popF64()))
	case wasm.OpF64Neg:
		p.pushF64(-p.popF64())
	case wasm.OpF64Ceil:
		p.pushF64(math.Ceil(p.popF64()))
	case wasm.OpF64Floor:
		p.pushF64(math.Floor(p.popF64()))
	case wasm.OpF64Trunc:
		p.pushF64(math.Trunc(p.popF64()))
	case wasm.OpF64Nearest:
		p.pushF64(math.RoundToEven(p.popF64()))
	case wasm.OpF64Sqrt:
		p.pushF64(math.Sqrt(p.popF64()))
	case wasm.OpF64Add:
		b, a := p.popF64(), p.popF64()
		p.pushF64(a + b)
	case wasm.OpF64Sub:
		b, a := p.popF64(), p.popF64()
		p.pushF64(a - b)
	case wasm.OpF64Mul:
		b, a := p.popF64(), p.popF64()
		p.pushF64(a * b)
	case wasm.OpF64Div:
		b, a := p.popF64(), p.popF64()
		p.pushF64(a / b)
	case wasm.OpF64Min:
		b, a := p.popF64(), p.popF64()
		p.pushF64(math.Min(a, b))
	case wasm.OpF64Max:
		b, a := p.popF64(), p.popF64()
		p.pushF64(math.Max(a, b))
	case wasm.OpF64Copysign:
		b, a := p.popF64(), p.popF64()
		p.pushF64(math.Copysign(a, b))

	// conversions
	case wasm.OpI32WrapI64:
		p.pushI32(int32(p.popI64()))
	case wasm.OpI32TruncF32S:
		p.pushI32(int32(math.Trunc(float64(p.popF32()))))
	case wasm.OpI32TruncF32U:
		p.pushU32(uint32(math.Trunc(float64(p.popF32()))))
	case wasm.OpI32TruncF64S:
		p.pushI32(int32(math.Trunc(p.popF64())))
	case wasm.OpI32TruncF64U:
		p.pushU32(uint32(math.Trunc(p.popF64())))
	case wasm.OpI64ExtendI32S:
		p.pushI64(int64(p.popI32()))
	case wasm.OpI64ExtendI32U:
		p.pushI64(int64(p.popU32()))
	case wasm.OpI64TruncF32S:
		p.pushI64(int64(math.Trunc(float64(p.popF32()))))
	case wasm.OpI64TruncF32U:
		p.pushU64(uint64(math.Trunc(float64(p.popF32()))))
	case wasm.OpI64TruncF64S:
		p.pushI64(int64(math.Trunc(p.popF64())))
	case wasm.OpI64TruncF64U:
		p.pushU64(uint64(math.Trunc(p.popF64())))
	case wasm.OpF32ConvertI32S:
		p.pushF32(float32(p.popI32()))
	case wasm.OpF32ConvertI32U:
		p.pushF32(float32(p.popU32()))
	case wasm.OpF32ConvertI64S:
		p.pushF32(float32(p.popI64()))
	case wasm.OpF32ConvertI64U:
		p.pushF32(float32(p.popU64()))
	case wasm.OpF32DemoteF64:
		p.pushF32(float32(p.popF64()))
	case wasm.OpF64ConvertI32S:
		p.pushF64(float64(p.popI32()))
	case wasm.OpF64ConvertI32U:
		p.pushF64(float64(p.popU32()))
	case wasm.OpF64ConvertI64S:
		p.pushF64(float64(p.popI64()))
	case wasm.OpF64ConvertI64U:
		p.pushF64(float64(p.popU64()))
	case wasm.OpF64PromoteF32:
		p.pushF64(float64(p.popF32()))
	case wasm.OpI32ReinterpretF32:
		p.pushI32(int32(math.Float32bits(p.popF32())))
	case wasm.OpI64ReinterpretF64:
		p.pushI64(int64(math.Float64bits(p.popF64())))
	case wasm.OpF32ReinterpretI32:
		p.pushF32(math.Float32frombits(p.popU32()))
	case wasm.OpF64ReinterpretI64:
		p.pushF64(math.Float64frombits(p.popU64()))

	// sign extension
	case wasm.OpI32Extend8S:
		p.pushI32(int32(signExtend(uint64(p.popU32()), 8)))
	case wasm.OpI32Extend16S:
		p.pushI32(int32(signExtend(uint64(p.popU32()), 16)))
	case wasm.OpI64Extend8S:
		p.pushI64(signExtend(p.popU64(), 8))
	case wasm.OpI64Extend16S:
		p.pushI64(signExtend(p.popU64(), 16))
	case wasm.OpI64Extend32S:
		p.pushI64(signExtend(p.popU64(), 32))

	default:
		return trap("unknown numeric opcode", nil)
	}
	return nil
}
