package wasm

// Instruction is one decoded node of the expression tree. Opcode is the
// base opcode byte (0xFC and 0xFD are recorded for extended/vector
// instructions alongside their sub-opcode in Imm). Imm carries the
// instruction's immediates as one of the *Imm types below, or nil for
// instructions with none (e.g. nop, drop, add).
//
// Block, Loop, If and IfElse own their inner instruction sequence(s) as
// children — decoding produces a tree, not a flat vector, which is the
// shape the process package's path cursor depends on.
type Instruction struct {
	Imm    any
	Opcode byte
}

// BlockImm holds a structured instruction's inner body. Only the empty
// block type (0x40) is currently decoded; see SPEC_FULL.md §7 (a).
type BlockImm struct {
	Body []Instruction
}

// IfImm holds an if/if-else instruction's two branches. Else is nil when
// the instruction had no else clause.
type IfImm struct {
	Then []Instruction
	Else []Instruction
}

// BranchImm holds the relative label depth for br and br_if.
type BranchImm struct {
	LabelIdx LabelIdx
}

// BrTableImm holds the jump table for br_table.
type BrTableImm struct {
	Labels  []LabelIdx
	Default LabelIdx
}

// CallImm holds the callee for call.
type CallImm struct {
	FuncIdx FuncIdx
}

// CallIndirectImm holds the expected type and table for call_indirect.
type CallIndirectImm struct {
	TypeIdx  TypeIdx
	TableIdx TableIdx
}

// LocalImm holds the local index for local.get/set/tee.
type LocalImm struct {
	LocalIdx LocalIdx
}

// GlobalImm holds the global index for global.get/set.
type GlobalImm struct {
	GlobalIdx GlobalIdx
}

// MemArg is the (align, offset) pair every load/store carries.
type MemArg struct {
	Offset uint32
	Align  uint32
}

// MemoryImm holds a load/store's MemArg.
type MemoryImm struct {
	Arg MemArg
}

// I32Imm, I64Imm, F32Imm, F64Imm hold const instruction operands.
type (
	I32Imm struct{ Value int32 }
	I64Imm struct{ Value int64 }
	F32Imm struct{ Value float32 }
	F64Imm struct{ Value float64 }
)

// RefNullImm holds the reference type for ref.null.
type RefNullImm struct {
	Type RefType
}

// RefFuncImm holds the function index for ref.func.
type RefFuncImm struct {
	FuncIdx FuncIdx
}

// SelectTypeImm holds the operand type for typed select.
type SelectTypeImm struct {
	Types []ValType
}

// TableImm holds the table index for table.get/table.set.
type TableImm struct {
	TableIdx TableIdx
}

// TableInitImm holds operands for table.init.
type TableInitImm struct {
	ElemIdx  ElemIdx
	TableIdx TableIdx
}

// TableCopyImm holds operands for table.copy.
type TableCopyImm struct {
	DstTableIdx TableIdx
	SrcTableIdx TableIdx
}

// TableIdxImm holds a single table index, for table.grow/size/fill.
// SubOpcode disambiguates the three, since they share this immediate
// shape.
type TableIdxImm struct {
	TableIdx  TableIdx
	SubOpcode uint32
}

// MemoryInitImm holds operands for memory.init.
type MemoryInitImm struct {
	DataIdx DataIdx
}

// MemoryCopyImm tags memory.copy, which carries no operands of its own
// beyond the two reserved bytes already consumed at decode time.
type MemoryCopyImm struct{}

// MemoryFillImm tags memory.fill, which carries no operands of its own
// beyond the reserved byte already consumed at decode time.
type MemoryFillImm struct{}

// DataDropImm holds the data index for data.drop.
type DataDropImm struct {
	DataIdx DataIdx
}

// ElemDropImm holds the element segment index for elem.drop.
type ElemDropImm struct {
	ElemIdx ElemIdx
}

// TruncSatImm tags a saturating-truncation extended instruction by its
// 0xFC sub-opcode.
type TruncSatImm struct {
	SubOpcode uint32
}

// VectorImm carries a vector (0xFD-prefixed) instruction's sub-opcode and
// whatever operands that sub-opcode declares.
type VectorImm struct {
	MemArg    *MemArg
	V128      *[16]byte
	LaneIdx   *byte
	SubOpcode uint32
}
