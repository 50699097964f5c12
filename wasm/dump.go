package wasm

import (
	"fmt"
	"strings"
)

// Dump renders a function body's expression tree as indented text, one
// instruction per line, structured instructions recursing into their
// child sequence(s). It is used by tests asserting on decoded structure;
// the interactive stepper does not call it.
func Dump(body []Instruction) string {
	var b strings.Builder
	dumpSeq(&b, body, 0)
	return b.String()
}

func dumpSeq(b *strings.Builder, seq []Instruction, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, instr := range seq {
		b.WriteString(indent)
		b.WriteString(mnemonic(instr))
		b.WriteByte('\n')
		switch imm := instr.Imm.(type) {
		case BlockImm:
			dumpSeq(b, imm.Body, depth+1)
			b.WriteString(indent)
			b.WriteString("end\n")
		case IfImm:
			dumpSeq(b, imm.Then, depth+1)
			if imm.Else != nil {
				b.WriteString(indent)
				b.WriteString("else\n")
				dumpSeq(b, imm.Else, depth+1)
			}
			b.WriteString(indent)
			b.WriteString("end\n")
		}
	}
}

// mnemonic renders one instruction's opcode and immediate as a single
// line, omitting the child sequences structured instructions own (those
// are rendered by the caller via recursion).
func mnemonic(instr Instruction) string {
	switch imm := instr.Imm.(type) {
	case BlockImm:
		if instr.Opcode == OpLoop {
			return "loop"
		}
		return "block"
	case IfImm:
		return "if"
	case BranchImm:
		return fmt.Sprintf("%s %d", opName(instr.Opcode), imm.LabelIdx)
	case BrTableImm:
		return fmt.Sprintf("br_table %v default=%d", imm.Labels, imm.Default)
	case CallImm:
		return fmt.Sprintf("call %d", imm.FuncIdx)
	case CallIndirectImm:
		return fmt.Sprintf("call_indirect (type %d) (table %d)", imm.TypeIdx, imm.TableIdx)
	case LocalImm:
		return fmt.Sprintf("%s %d", opName(instr.Opcode), imm.LocalIdx)
	case GlobalImm:
		return fmt.Sprintf("%s %d", opName(instr.Opcode), imm.GlobalIdx)
	case I32Imm:
		return fmt.Sprintf("i32.const %d", imm.Value)
	case I64Imm:
		return fmt.Sprintf("i64.const %d", imm.Value)
	case F32Imm:
		return fmt.Sprintf("f32.const %g", imm.Value)
	case F64Imm:
		return fmt.Sprintf("f64.const %g", imm.Value)
	case MemoryImm:
		return fmt.Sprintf("%s offset=%d align=%d", opName(instr.Opcode), imm.Arg.Offset, imm.Arg.Align)
	case TableImm:
		return fmt.Sprintf("%s %d", opName(instr.Opcode), imm.TableIdx)
	case RefNullImm:
		return fmt.Sprintf("ref.null %d", imm.Type)
	case RefFuncImm:
		return fmt.Sprintf("ref.func %d", imm.FuncIdx)
	case TruncSatImm:
		return fmt.Sprintf("trunc_sat sub=%d", imm.SubOpcode)
	case VectorImm:
		return fmt.Sprintf("v128 sub=%d", imm.SubOpcode)
	case MemoryInitImm:
		return fmt.Sprintf("memory.init %d", imm.DataIdx)
	case DataDropImm:
		return fmt.Sprintf("data.drop %d", imm.DataIdx)
	case TableInitImm:
		return fmt.Sprintf("table.init %d %d", imm.ElemIdx, imm.TableIdx)
	case ElemDropImm:
		return fmt.Sprintf("elem.drop %d", imm.ElemIdx)
	case TableCopyImm:
		return fmt.Sprintf("table.copy %d %d", imm.DstTableIdx, imm.SrcTableIdx)
	case TableIdxImm:
		return fmt.Sprintf("table op(%d) %d", imm.SubOpcode, imm.TableIdx)
	default:
		return opName(instr.Opcode)
	}
}

// opName gives a handful of common opcodes a readable name; anything
// else falls back to its raw byte value, which is enough to locate in
// the spec's opcode table.
func opName(op byte) string {
	switch op {
	case OpBr:
		return "br"
	case OpBrIf:
		return "br_if"
	case OpLocalGet:
		return "local.get"
	case OpLocalSet:
		return "local.set"
	case OpLocalTee:
		return "local.tee"
	case OpGlobalGet:
		return "global.get"
	case OpGlobalSet:
		return "global.set"
	case OpTableGet:
		return "table.get"
	case OpTableSet:
		return "table.set"
	case OpI32Load:
		return "i32.load"
	case OpI64Load:
		return "i64.load"
	case OpF32Load:
		return "f32.load"
	case OpF64Load:
		return "f64.load"
	case OpI32Store:
		return "i32.store"
	case OpI64Store:
		return "i64.store"
	case OpF32Store:
		return "f32.store"
	case OpF64Store:
		return "f64.store"
	default:
		return fmt.Sprintf("op(0x%02X)", op)
	}
}
