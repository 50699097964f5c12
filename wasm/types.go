package wasm

// FuncType is a type-section entry: an ordered parameter list and an
// ordered result list.
type FuncType struct {
	Params  []ValType
	Results []ValType
}

// Limits is the (min, max) page/element count pair shared by table and
// memory types. HasMax is false when the optional max was absent.
type Limits struct {
	Min    uint32
	Max    uint32
	HasMax bool
}

// TableType is a table's element type plus its size limits.
type TableType struct {
	RefType RefType
	Limits  Limits
}

// MemoryType is a memory's size limits, in 64 KiB pages.
type MemoryType struct {
	Limits Limits
}

// GlobalType is a global's value type and mutability flag.
type GlobalType struct {
	ValType ValType
	Mutable bool
}

// Import is one import-section entry. Kind selects which of the
// kind-specific fields is populated.
type Import struct {
	Namespace string
	Name      string
	Kind      byte
	TypeIdx   TypeIdx
	Table     TableType
	Memory    MemoryType
	Global    GlobalType
}

// Function is a function-section entry: the index of its signature.
type Function struct {
	TypeIdx TypeIdx
}

// Table is a table-section entry.
type Table struct {
	Type TableType
}

// Memory is a memory-section entry.
type Memory struct {
	Type MemoryType
}

// Global is a global-section entry: its type and its initializer
// expression (constant instructions only, per the Wasm 1.0 grammar —
// this core does not enforce that constraint at decode time).
type Global struct {
	Type GlobalType
	Init []Instruction
}

// Export is an export-section entry. Kind and Index follow the same
// (func/table/memory/global) convention as Import.Kind.
type Export struct {
	Name  string
	Kind  byte
	Index uint32
}

// LocalGroup is one run of declared locals sharing a single value type, as
// encoded in a code entry's locals vector.
type LocalGroup struct {
	Count uint32
	Type  ValType
}

// Code is one code-section entry: the declared local groups (parameters
// are not included — they come from the function's signature) and the
// function body as a tree of instructions.
type Code struct {
	Locals []LocalGroup
	Body   []Instruction
}

// Data is one data-section entry. Mode 0 is active against memory 0 with
// an offset expression; mode 1 is passive (no memory, no offset); mode 2
// is active against an explicit memory index with an offset expression.
type Data struct {
	Mode   byte
	MemIdx MemIdx
	Offset []Instruction
	Bytes  []byte
}
