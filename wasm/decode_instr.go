package wasm

import (
	"fmt"

	"github.com/wippyai/wasm-embedded/wasm/internal/binary"
)

// opcodeFunc decodes one instruction's immediates, given that its opcode
// byte has already been consumed. Every slot in every opcode-space table
// shares this exact signature — dispatch is a flat array lookup, never a
// giant pattern match.
type opcodeFunc func(d *decoder) (Instruction, error)

// decoder wraps a byte reader with the recursive structured-instruction
// decode logic. It is intentionally lightweight; all state lives in the
// reader.
type decoder struct {
	r *binary.Reader
}

// DecodeExpr decodes one instruction sequence (a function body, or a
// global/element/data initializer expression) up to its 0x0B terminator,
// which is consumed and never appears in the returned tree.
func DecodeExpr(r *binary.Reader) ([]Instruction, error) {
	d := &decoder{r: r}
	body, _, err := d.parseSequence(false)
	return body, err
}

// parseOne reads one opcode byte and dispatches it through the matching
// opcode-space table.
func (d *decoder) parseOne() (Instruction, error) {
	mark := d.r.Mark()
	op, err := d.r.Byte()
	if err != nil {
		return Instruction{}, wrapReaderErr(d.r, err)
	}

	switch op {
	case OpPrefixMisc:
		return d.parseMisc(mark)
	case OpPrefixSIMD:
		return d.parseVector(mark)
	}

	fn := baseTable[op]
	if fn == nil {
		return Instruction{}, newParseError(mark, KindUnknownInstruction, fmt.Sprintf("opcode 0x%02x", op))
	}
	instr, err := fn(d)
	if err != nil {
		return Instruction{}, err
	}
	instr.Opcode = op
	return instr, nil
}

// parseSequence decodes instructions until it reaches 0x0B (always a
// valid terminator) or, when allowElse is true, 0x05 (the if/else
// separator). The terminator byte is consumed. Encountering 0x05 when
// allowElse is false is DuplicateElse: either a second else clause in the
// same if, or an else appearing somewhere it has no structural meaning.
func (d *decoder) parseSequence(allowElse bool) ([]Instruction, byte, error) {
	var body []Instruction
	for {
		b, err := d.r.PeekByte()
		if err != nil {
			return nil, 0, wrapReaderErr(d.r, err)
		}
		if b == OpEnd {
			_, _ = d.r.Byte()
			return body, OpEnd, nil
		}
		if b == OpElse {
			if !allowElse {
				mark := d.r.Mark()
				_, _ = d.r.Byte()
				return nil, 0, newParseError(mark, KindDuplicateElse, "")
			}
			_, _ = d.r.Byte()
			return body, OpElse, nil
		}
		instr, err := d.parseOne()
		if err != nil {
			return nil, 0, err
		}
		body = append(body, instr)
	}
}

// readBlockType decodes a block/loop/if block type. Only the empty
// encoding (0x40) is accepted; see SPEC_FULL.md §7 (a) for value
// types and type indices.
func (d *decoder) readBlockType() error {
	mark := d.r.Mark()
	b, err := d.r.Byte()
	if err != nil {
		return wrapReaderErr(d.r, err)
	}
	if b != BlockTypeEmpty {
		return newParseError(mark, KindUnknownInstruction,
			fmt.Sprintf("block type 0x%02x not supported (only the empty encoding is)", b))
	}
	return nil
}

func (d *decoder) readU32() (uint32, error) {
	v, err := d.r.U32()
	if err != nil {
		return 0, wrapReaderErr(d.r, err)
	}
	return v, nil
}

func (d *decoder) readS32() (int32, error) {
	v, err := d.r.S32()
	if err != nil {
		return 0, wrapReaderErr(d.r, err)
	}
	return v, nil
}

func (d *decoder) readS64() (int64, error) {
	v, err := d.r.S64(64)
	if err != nil {
		return 0, wrapReaderErr(d.r, err)
	}
	return v, nil
}

func (d *decoder) readF32() (float32, error) {
	bits, err := d.r.F32Bits()
	if err != nil {
		return 0, wrapReaderErr(d.r, err)
	}
	return bitsToF32(bits), nil
}

func (d *decoder) readF64() (float64, error) {
	bits, err := d.r.F64Bits()
	if err != nil {
		return 0, wrapReaderErr(d.r, err)
	}
	return bitsToF64(bits), nil
}

func (d *decoder) readName() (string, error) {
	s, err := d.r.Name()
	if err != nil {
		return "", wrapReaderErr(d.r, err)
	}
	return s, nil
}

func (d *decoder) readBytesVec() ([]byte, error) {
	b, err := d.r.LengthPrefixed()
	if err != nil {
		return nil, wrapReaderErr(d.r, err)
	}
	return b, nil
}

func (d *decoder) readLimits() (Limits, error) {
	mark := d.r.Mark()
	flag, err := d.r.Byte()
	if err != nil {
		return Limits{}, wrapReaderErr(d.r, err)
	}
	min, err := d.readU32()
	if err != nil {
		return Limits{}, err
	}
	switch flag {
	case 0:
		return Limits{Min: min}, nil
	case 1:
		max, err := d.readU32()
		if err != nil {
			return Limits{}, err
		}
		return Limits{Min: min, Max: max, HasMax: true}, nil
	default:
		return Limits{}, newParseError(mark, KindInvalidSection, "invalid limits flag")
	}
}

func (d *decoder) readTableType() (TableType, error) {
	rt, err := d.readRefType()
	if err != nil {
		return TableType{}, err
	}
	lim, err := d.readLimits()
	if err != nil {
		return TableType{}, err
	}
	return TableType{RefType: rt, Limits: lim}, nil
}

func (d *decoder) readMemoryType() (MemoryType, error) {
	lim, err := d.readLimits()
	if err != nil {
		return MemoryType{}, err
	}
	return MemoryType{Limits: lim}, nil
}

func (d *decoder) readGlobalType() (GlobalType, error) {
	vt, err := d.readValType()
	if err != nil {
		return GlobalType{}, err
	}
	mark := d.r.Mark()
	m, err := d.r.Byte()
	if err != nil {
		return GlobalType{}, wrapReaderErr(d.r, err)
	}
	if m != 0 && m != 1 {
		return GlobalType{}, newParseError(mark, KindInvalidSection, "invalid mutability flag")
	}
	return GlobalType{ValType: vt, Mutable: m == 1}, nil
}

func (d *decoder) readMemArg() (MemArg, error) {
	align, err := d.readU32()
	if err != nil {
		return MemArg{}, err
	}
	offset, err := d.readU32()
	if err != nil {
		return MemArg{}, err
	}
	return MemArg{Align: align, Offset: offset}, nil
}

// readReserved consumes n reserved bytes (memory/table indices Wasm 1.0
// requires to be zero), without validating their value — a host is free
// to reject non-zero reserved bytes itself if it cares.
func (d *decoder) readReserved(n int) error {
	for i := 0; i < n; i++ {
		if _, err := d.r.Byte(); err != nil {
			return wrapReaderErr(d.r, err)
		}
	}
	return nil
}

func (d *decoder) readValType() (ValType, error) {
	mark := d.r.Mark()
	b, err := d.r.Byte()
	if err != nil {
		return 0, wrapReaderErr(d.r, err)
	}
	switch ValType(b) {
	case ValI32, ValI64, ValF32, ValF64, ValFuncRef, ValExtern:
		return ValType(b), nil
	default:
		return 0, newParseError(mark, KindUnknownValType, fmt.Sprintf("0x%02x", b))
	}
}

func (d *decoder) readRefType() (RefType, error) {
	mark := d.r.Mark()
	b, err := d.r.Byte()
	if err != nil {
		return 0, wrapReaderErr(d.r, err)
	}
	switch RefType(b) {
	case RefFunc, RefExtern:
		return RefType(b), nil
	default:
		return 0, newParseError(mark, KindUnknownRefType, fmt.Sprintf("0x%02x", b))
	}
}
