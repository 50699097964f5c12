package wasm

// ValType is a WebAssembly value type byte. See ValI32 etc. in constants.go.
type ValType byte

func (v ValType) String() string {
	switch v {
	case ValI32:
		return "i32"
	case ValI64:
		return "i64"
	case ValF32:
		return "f32"
	case ValF64:
		return "f64"
	case ValFuncRef:
		return "funcref"
	case ValExtern:
		return "externref"
	default:
		return "unknown"
	}
}

// RefType is a reference value type (funcref or externref).
type RefType byte

func (t RefType) String() string {
	if t == RefFunc {
		return "funcref"
	}
	return "externref"
}

// Every index space gets its own phantom-typed wrapper so a function
// index can never be silently passed where, say, a type index is
// expected — the compiler catches the swap.

// TypeIdx indexes the module's type section.
type TypeIdx uint32

// FuncIdx indexes the function index space (imported functions first,
// then locally defined ones).
type FuncIdx uint32

// TableIdx indexes the table index space.
type TableIdx uint32

// MemIdx indexes the memory index space.
type MemIdx uint32

// GlobalIdx indexes the global index space.
type GlobalIdx uint32

// LocalIdx indexes a function's locals (parameters then declared locals).
type LocalIdx uint32

// LabelIdx is a relative branch depth, not an absolute index: 0 names the
// innermost enclosing structured instruction.
type LabelIdx uint32

// ElemIdx indexes the element section.
type ElemIdx uint32

// DataIdx indexes the data section.
type DataIdx uint32
