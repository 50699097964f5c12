package wasm

import (
	"fmt"

	"github.com/wippyai/wasm-embedded/wasm/internal/binary"
)

// parseVector decodes a 0xFD-prefixed (SIMD) instruction. The prefix byte
// was already consumed by parseOne.
//
// Only the handful of sub-opcodes with a structural shape this core
// actually needs — the v128 memory ops, v128.const, and the lane-indexed
// extract/replace ops — get full immediate decoding. Every other assigned
// slot is recorded with just its sub-opcode and no further operand bytes;
// notably this means lane-immediate forms this table doesn't name (for
// example i8x16.shuffle's 16 lane-select bytes) are not decoded here. See
// DESIGN.md.
func (d *decoder) parseVector(mark binary.Mark) (Instruction, error) {
	subMark := d.r.Mark()
	sub, err := d.readU32()
	if err != nil {
		return Instruction{}, err
	}
	if sub >= NumVectorOpcodes {
		return Instruction{}, newParseError(subMark, KindUnknownVectorInstruction, fmt.Sprintf("sub-opcode %d", sub))
	}
	if _, unassigned := unassignedVectorSlots[sub]; unassigned {
		return Instruction{}, newParseError(subMark, KindUnknownVectorInstruction, fmt.Sprintf("sub-opcode %d", sub))
	}

	imm := VectorImm{SubOpcode: sub}

	switch sub {
	case SIMDV128Load, SIMDV128Store:
		arg, err := d.readMemArg()
		if err != nil {
			return Instruction{}, err
		}
		imm.MemArg = &arg
	case SIMDV128Const:
		raw, err := d.r.Bytes(16)
		if err != nil {
			return Instruction{}, wrapReaderErr(d.r, err)
		}
		var v [16]byte
		copy(v[:], raw)
		imm.V128 = &v
	default:
		if n, ok := laneCount(sub); ok {
			laneMark := d.r.Mark()
			lane, err := d.r.Byte()
			if err != nil {
				return Instruction{}, wrapReaderErr(d.r, err)
			}
			if int(lane) >= n {
				return Instruction{}, &ParseError{
					Kind:   KindInvalidLaneIndex,
					Offset: laneMark.Offset,
					Max:    n,
					Cause:  newParseError(laneMark, KindInvalidLaneIndex, "").Cause,
				}
			}
			imm.LaneIdx = &lane
		}
	}

	instr := Instruction{Imm: imm, Opcode: OpPrefixSIMD}
	_ = mark
	return instr, nil
}
