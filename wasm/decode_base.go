package wasm

// baseTable dispatches the 0x00-0xFF base opcode space. Slots for 0xFC and
// 0xFD are never reached — parseOne intercepts those prefixes before the
// lookup — and slots for 0x0B/0x05 (end/else) are never reached either,
// since parseSequence consumes those as terminators. Everything else that
// is nil decodes as UnknownInstruction.
var baseTable [256]opcodeFunc

func init() {
	// Instructions with no immediate at all.
	for _, op := range []byte{
		OpUnreachable, OpNop, OpReturn,
		OpDrop, OpSelect,
		OpRefIsNull,
		OpI32Eqz, OpI32Eq, OpI32Ne, OpI32LtS, OpI32LtU, OpI32GtS, OpI32GtU,
		OpI32LeS, OpI32LeU, OpI32GeS, OpI32GeU,
		OpI64Eqz, OpI64Eq, OpI64Ne, OpI64LtS, OpI64LtU, OpI64GtS, OpI64GtU,
		OpI64LeS, OpI64LeU, OpI64GeS, OpI64GeU,
		OpF32Eq, OpF32Ne, OpF32Lt, OpF32Gt, OpF32Le, OpF32Ge,
		OpF64Eq, OpF64Ne, OpF64Lt, OpF64Gt, OpF64Le, OpF64Ge,
		OpI32Clz, OpI32Ctz, OpI32Popcnt, OpI32Add, OpI32Sub, OpI32Mul,
		OpI32DivS, OpI32DivU, OpI32RemS, OpI32RemU,
		OpI32And, OpI32Or, OpI32Xor, OpI32Shl, OpI32ShrS, OpI32ShrU, OpI32Rotl, OpI32Rotr,
		OpI64Clz, OpI64Ctz, OpI64Popcnt, OpI64Add, OpI64Sub, OpI64Mul,
		OpI64DivS, OpI64DivU, OpI64RemS, OpI64RemU,
		OpI64And, OpI64Or, OpI64Xor, OpI64Shl, OpI64ShrS, OpI64ShrU, OpI64Rotl, OpI64Rotr,
		OpF32Abs, OpF32Neg, OpF32Ceil, OpF32Floor, OpF32Trunc, OpF32Nearest, OpF32Sqrt,
		OpF32Add, OpF32Sub, OpF32Mul, OpF32Div, OpF32Min, OpF32Max, OpF32Copysign,
		OpF64Abs, OpF64Neg, OpF64Ceil, OpF64Floor, OpF64Trunc, OpF64Nearest, OpF64Sqrt,
		OpF64Add, OpF64Sub, OpF64Mul, OpF64Div, OpF64Min, OpF64Max, OpF64Copysign,
		OpI32WrapI64,
		OpI32TruncF32S, OpI32TruncF32U, OpI32TruncF64S, OpI32TruncF64U,
		OpI64ExtendI32S, OpI64ExtendI32U,
		OpI64TruncF32S, OpI64TruncF32U, OpI64TruncF64S, OpI64TruncF64U,
		OpF32ConvertI32S, OpF32ConvertI32U, OpF32ConvertI64S, OpF32ConvertI64U, OpF32DemoteF64,
		OpF64ConvertI32S, OpF64ConvertI32U, OpF64ConvertI64S, OpF64ConvertI64U, OpF64PromoteF32,
		OpI32ReinterpretF32, OpI64ReinterpretF64, OpF32ReinterpretI32, OpF64ReinterpretI64,
		OpI32Extend8S, OpI32Extend16S, OpI64Extend8S, OpI64Extend16S, OpI64Extend32S,
	} {
		baseTable[op] = decodeNoImm
	}

	baseTable[OpBlock] = decodeBlockInstr
	baseTable[OpLoop] = decodeLoopInstr
	baseTable[OpIf] = decodeIfInstr

	baseTable[OpBr] = decodeBranch
	baseTable[OpBrIf] = decodeBranch
	baseTable[OpBrTable] = decodeBrTable

	baseTable[OpCall] = decodeCall
	baseTable[OpCallIndirect] = decodeCallIndirect

	baseTable[OpRefNull] = decodeRefNull
	baseTable[OpRefFunc] = decodeRefFunc

	baseTable[OpSelectType] = decodeSelectType

	baseTable[OpLocalGet] = decodeLocal
	baseTable[OpLocalSet] = decodeLocal
	baseTable[OpLocalTee] = decodeLocal
	baseTable[OpGlobalGet] = decodeGlobal
	baseTable[OpGlobalSet] = decodeGlobal

	baseTable[OpTableGet] = decodeTable
	baseTable[OpTableSet] = decodeTable

	for _, op := range []byte{
		OpI32Load, OpI64Load, OpF32Load, OpF64Load,
		OpI32Load8S, OpI32Load8U, OpI32Load16S, OpI32Load16U,
		OpI64Load8S, OpI64Load8U, OpI64Load16S, OpI64Load16U, OpI64Load32S, OpI64Load32U,
		OpI32Store, OpI64Store, OpF32Store, OpF64Store,
		OpI32Store8, OpI32Store16, OpI64Store8, OpI64Store16, OpI64Store32,
	} {
		baseTable[op] = decodeMemory
	}

	baseTable[OpMemorySize] = decodeMemSizeGrow
	baseTable[OpMemoryGrow] = decodeMemSizeGrow

	baseTable[OpI32Const] = decodeI32Const
	baseTable[OpI64Const] = decodeI64Const
	baseTable[OpF32Const] = decodeF32Const
	baseTable[OpF64Const] = decodeF64Const
}

func decodeNoImm(d *decoder) (Instruction, error) { return Instruction{}, nil }

func decodeBlockInstr(d *decoder) (Instruction, error) {
	if err := d.readBlockType(); err != nil {
		return Instruction{}, err
	}
	body, _, err := d.parseSequence(false)
	if err != nil {
		return Instruction{}, err
	}
	return Instruction{Imm: BlockImm{Body: body}}, nil
}

func decodeLoopInstr(d *decoder) (Instruction, error) {
	return decodeBlockInstr(d)
}

func decodeIfInstr(d *decoder) (Instruction, error) {
	if err := d.readBlockType(); err != nil {
		return Instruction{}, err
	}
	thenBody, term, err := d.parseSequence(true)
	if err != nil {
		return Instruction{}, err
	}
	if term != OpElse {
		return Instruction{Imm: IfImm{Then: thenBody}}, nil
	}
	elseBody, _, err := d.parseSequence(false)
	if err != nil {
		return Instruction{}, err
	}
	return Instruction{Imm: IfImm{Then: thenBody, Else: elseBody}}, nil
}

func decodeBranch(d *decoder) (Instruction, error) {
	idx, err := d.readU32()
	if err != nil {
		return Instruction{}, err
	}
	return Instruction{Imm: BranchImm{LabelIdx: LabelIdx(idx)}}, nil
}

func decodeBrTable(d *decoder) (Instruction, error) {
	count, err := d.readU32()
	if err != nil {
		return Instruction{}, err
	}
	labels := make([]LabelIdx, count)
	for i := range labels {
		idx, err := d.readU32()
		if err != nil {
			return Instruction{}, err
		}
		labels[i] = LabelIdx(idx)
	}
	def, err := d.readU32()
	if err != nil {
		return Instruction{}, err
	}
	return Instruction{Imm: BrTableImm{Labels: labels, Default: LabelIdx(def)}}, nil
}

func decodeCall(d *decoder) (Instruction, error) {
	idx, err := d.readU32()
	if err != nil {
		return Instruction{}, err
	}
	return Instruction{Imm: CallImm{FuncIdx: FuncIdx(idx)}}, nil
}

func decodeCallIndirect(d *decoder) (Instruction, error) {
	typeIdx, err := d.readU32()
	if err != nil {
		return Instruction{}, err
	}
	tableIdx, err := d.readU32()
	if err != nil {
		return Instruction{}, err
	}
	return Instruction{Imm: CallIndirectImm{TypeIdx: TypeIdx(typeIdx), TableIdx: TableIdx(tableIdx)}}, nil
}

func decodeRefNull(d *decoder) (Instruction, error) {
	rt, err := d.readRefType()
	if err != nil {
		return Instruction{}, err
	}
	return Instruction{Imm: RefNullImm{Type: rt}}, nil
}

func decodeRefFunc(d *decoder) (Instruction, error) {
	idx, err := d.readU32()
	if err != nil {
		return Instruction{}, err
	}
	return Instruction{Imm: RefFuncImm{FuncIdx: FuncIdx(idx)}}, nil
}

func decodeSelectType(d *decoder) (Instruction, error) {
	count, err := d.readU32()
	if err != nil {
		return Instruction{}, err
	}
	types := make([]ValType, count)
	for i := range types {
		vt, err := d.readValType()
		if err != nil {
			return Instruction{}, err
		}
		types[i] = vt
	}
	return Instruction{Imm: SelectTypeImm{Types: types}}, nil
}

func decodeLocal(d *decoder) (Instruction, error) {
	idx, err := d.readU32()
	if err != nil {
		return Instruction{}, err
	}
	return Instruction{Imm: LocalImm{LocalIdx: LocalIdx(idx)}}, nil
}

func decodeGlobal(d *decoder) (Instruction, error) {
	idx, err := d.readU32()
	if err != nil {
		return Instruction{}, err
	}
	return Instruction{Imm: GlobalImm{GlobalIdx: GlobalIdx(idx)}}, nil
}

func decodeTable(d *decoder) (Instruction, error) {
	idx, err := d.readU32()
	if err != nil {
		return Instruction{}, err
	}
	return Instruction{Imm: TableImm{TableIdx: TableIdx(idx)}}, nil
}

func decodeMemory(d *decoder) (Instruction, error) {
	arg, err := d.readMemArg()
	if err != nil {
		return Instruction{}, err
	}
	return Instruction{Imm: MemoryImm{Arg: arg}}, nil
}

func decodeMemSizeGrow(d *decoder) (Instruction, error) {
	if err := d.readReserved(1); err != nil {
		return Instruction{}, err
	}
	return Instruction{}, nil
}

func decodeI32Const(d *decoder) (Instruction, error) {
	v, err := d.readS32()
	if err != nil {
		return Instruction{}, err
	}
	return Instruction{Imm: I32Imm{Value: v}}, nil
}

func decodeI64Const(d *decoder) (Instruction, error) {
	v, err := d.readS64()
	if err != nil {
		return Instruction{}, err
	}
	return Instruction{Imm: I64Imm{Value: v}}, nil
}

func decodeF32Const(d *decoder) (Instruction, error) {
	v, err := d.readF32()
	if err != nil {
		return Instruction{}, err
	}
	return Instruction{Imm: F32Imm{Value: v}}, nil
}

func decodeF64Const(d *decoder) (Instruction, error) {
	v, err := d.readF64()
	if err != nil {
		return Instruction{}, err
	}
	return Instruction{Imm: F64Imm{Value: v}}, nil
}
