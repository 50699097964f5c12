package wasm

import (
	"fmt"

	"github.com/wippyai/wasm-embedded/wasm/internal/binary"
)

// miscTable dispatches the 0xFC extended opcode space (saturating
// truncation, bulk memory, and the long form of table operations).
var miscTable [NumMiscOpcodes]opcodeFunc

func init() {
	for _, sub := range []uint32{
		MiscI32TruncSatF32S, MiscI32TruncSatF32U, MiscI32TruncSatF64S, MiscI32TruncSatF64U,
		MiscI64TruncSatF32S, MiscI64TruncSatF32U, MiscI64TruncSatF64S, MiscI64TruncSatF64U,
	} {
		miscTable[sub] = makeTruncSatStub(sub)
	}
	miscTable[MiscMemoryInit] = decodeMemoryInit
	miscTable[MiscDataDrop] = decodeDataDrop
	miscTable[MiscMemoryCopy] = decodeMemoryCopy
	miscTable[MiscMemoryFill] = decodeMemoryFill
	miscTable[MiscTableInit] = decodeTableInit
	miscTable[MiscElemDrop] = decodeElemDrop
	miscTable[MiscTableCopy] = decodeTableCopy
	miscTable[MiscTableGrow] = makeTableIdxDecoder(MiscTableGrow)
	miscTable[MiscTableSize] = makeTableIdxDecoder(MiscTableSize)
	miscTable[MiscTableFill] = makeTableIdxDecoder(MiscTableFill)
}

// parseMisc decodes a 0xFC-prefixed instruction. The prefix byte was
// already consumed by parseOne; mark anchors the prefix byte itself so
// errors report the instruction's start, not the sub-opcode LEB.
func (d *decoder) parseMisc(mark binary.Mark) (Instruction, error) {
	subMark := d.r.Mark()
	sub, err := d.readU32()
	if err != nil {
		return Instruction{}, err
	}
	if sub >= NumMiscOpcodes {
		return Instruction{}, newParseError(subMark, KindUnknownExtendedInstruction, fmt.Sprintf("sub-opcode %d", sub))
	}
	fn := miscTable[sub]
	if fn == nil {
		return Instruction{}, newParseError(subMark, KindUnknownExtendedInstruction, fmt.Sprintf("sub-opcode %d", sub))
	}
	instr, err := fn(d)
	if err != nil {
		return Instruction{}, err
	}
	instr.Opcode = OpPrefixMisc
	_ = mark
	return instr, nil
}

// makeTruncSatStub covers the saturating-truncation sub-opcodes (0-7).
// Open question (b): this core records the sub-opcode but does not
// implement saturating-truncation semantics in the execution engine yet.
func makeTruncSatStub(sub uint32) opcodeFunc {
	return func(d *decoder) (Instruction, error) {
		return Instruction{Imm: TruncSatImm{SubOpcode: sub}}, nil
	}
}

func decodeMemoryInit(d *decoder) (Instruction, error) {
	dataIdx, err := d.readU32()
	if err != nil {
		return Instruction{}, err
	}
	if err := d.readReserved(1); err != nil {
		return Instruction{}, err
	}
	return Instruction{Imm: MemoryInitImm{DataIdx: DataIdx(dataIdx)}}, nil
}

func decodeDataDrop(d *decoder) (Instruction, error) {
	dataIdx, err := d.readU32()
	if err != nil {
		return Instruction{}, err
	}
	return Instruction{Imm: DataDropImm{DataIdx: DataIdx(dataIdx)}}, nil
}

func decodeMemoryCopy(d *decoder) (Instruction, error) {
	if err := d.readReserved(2); err != nil {
		return Instruction{}, err
	}
	return Instruction{Imm: MemoryCopyImm{}}, nil
}

func decodeMemoryFill(d *decoder) (Instruction, error) {
	if err := d.readReserved(1); err != nil {
		return Instruction{}, err
	}
	return Instruction{Imm: MemoryFillImm{}}, nil
}

func decodeTableInit(d *decoder) (Instruction, error) {
	elemIdx, err := d.readU32()
	if err != nil {
		return Instruction{}, err
	}
	tableIdx, err := d.readU32()
	if err != nil {
		return Instruction{}, err
	}
	return Instruction{Imm: TableInitImm{ElemIdx: ElemIdx(elemIdx), TableIdx: TableIdx(tableIdx)}}, nil
}

func decodeElemDrop(d *decoder) (Instruction, error) {
	elemIdx, err := d.readU32()
	if err != nil {
		return Instruction{}, err
	}
	return Instruction{Imm: ElemDropImm{ElemIdx: ElemIdx(elemIdx)}}, nil
}

func decodeTableCopy(d *decoder) (Instruction, error) {
	dst, err := d.readU32()
	if err != nil {
		return Instruction{}, err
	}
	src, err := d.readU32()
	if err != nil {
		return Instruction{}, err
	}
	return Instruction{Imm: TableCopyImm{DstTableIdx: TableIdx(dst), SrcTableIdx: TableIdx(src)}}, nil
}

// makeTableIdxDecoder covers table.grow/size/fill, which share a single
// table-index immediate shape and are disambiguated by sub-opcode.
func makeTableIdxDecoder(sub uint32) opcodeFunc {
	return func(d *decoder) (Instruction, error) {
		idx, err := d.readU32()
		if err != nil {
			return Instruction{}, err
		}
		return Instruction{Imm: TableIdxImm{TableIdx: TableIdx(idx), SubOpcode: sub}}, nil
	}
}
