package wasm

import (
	"testing"

	"github.com/wippyai/wasm-embedded/wasm/internal/binary"
)

// buildVectorModule wraps a single 0xFD-prefixed instruction (sub-opcode
// plus raw operand bytes, exactly as it appears on the wire after the
// prefix byte) in a minimal nullary function body, exported as "v".
func buildVectorModule(t *testing.T, subOpcode uint32, operand []byte) []byte {
	t.Helper()
	w := header()

	typeSec := binary.NewWriter()
	typeSec.U32(1)
	typeSec.Byte(FuncTypeByte)
	typeSec.U32(0)
	typeSec.U32(0)
	section(w, SectionType, typeSec)

	funcSec := binary.NewWriter()
	funcSec.U32(1)
	funcSec.U32(0)
	section(w, SectionFunction, funcSec)

	exportSec := binary.NewWriter()
	exportSec.U32(1)
	exportSec.Name("v")
	exportSec.Byte(KindFunc)
	exportSec.U32(0)
	section(w, SectionExport, exportSec)

	codeSec := binary.NewWriter()
	codeSec.U32(1)
	body := binary.NewWriter()
	body.U32(0)
	body.Byte(OpPrefixSIMD)
	body.U32(subOpcode)
	body.WriteBytes(operand)
	body.Byte(OpEnd)
	codeSec.U32(uint32(body.Len()))
	codeSec.WriteBytes(body.Bytes())
	section(w, SectionCode, codeSec)

	return w.Bytes()
}

func TestParseLaneIndexInRange(t *testing.T) {
	data := buildVectorModule(t, SIMDI8x16ExtractLaneS, []byte{5})
	m, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	exp, _ := m.ExportByName("v")
	code, _ := m.CodeFor(FuncIdx(exp.Index))
	if len(code.Body) != 1 {
		t.Fatalf("expected 1 instruction, got %d", len(code.Body))
	}
	imm, ok := code.Body[0].Imm.(VectorImm)
	if !ok {
		t.Fatalf("expected VectorImm, got %T", code.Body[0].Imm)
	}
	if imm.SubOpcode != SIMDI8x16ExtractLaneS {
		t.Errorf("expected sub-opcode %d, got %d", SIMDI8x16ExtractLaneS, imm.SubOpcode)
	}
	if imm.LaneIdx == nil || *imm.LaneIdx != 5 {
		t.Fatalf("expected lane index 5, got %v", imm.LaneIdx)
	}
}

// TestParseLaneIndexOutOfRange exercises the i8x16 (16-lane) extract,
// where a lane index of 16 is one past the last valid lane (15) and must
// fail with InvalidLaneIndex{max: 16} — the lane count itself, not the
// highest valid index.
func TestParseLaneIndexOutOfRange(t *testing.T) {
	data := buildVectorModule(t, SIMDI8x16ExtractLaneS, []byte{16})
	_, err := Parse(data)
	if err == nil || err.Kind != KindInvalidLaneIndex {
		t.Fatalf("expected InvalidLaneIndex, got %v", err)
	}
	if err.Max != 16 {
		t.Errorf("expected max 16, got %d", err.Max)
	}
}

func TestParseV128Const(t *testing.T) {
	var pattern [16]byte
	for i := range pattern {
		pattern[i] = byte(i)
	}
	data := buildVectorModule(t, SIMDV128Const, pattern[:])
	m, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	exp, _ := m.ExportByName("v")
	code, _ := m.CodeFor(FuncIdx(exp.Index))
	imm, ok := code.Body[0].Imm.(VectorImm)
	if !ok || imm.V128 == nil {
		t.Fatalf("expected VectorImm with V128 set, got %+v", code.Body[0].Imm)
	}
	if *imm.V128 != pattern {
		t.Errorf("expected payload %v, got %v", pattern, *imm.V128)
	}
}

func TestParseV128LoadAndStore(t *testing.T) {
	memArg := binary.NewWriter()
	memArg.U32(4) // align
	memArg.U32(8) // offset
	data := buildVectorModule(t, SIMDV128Load, memArg.Bytes())
	m, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	exp, _ := m.ExportByName("v")
	code, _ := m.CodeFor(FuncIdx(exp.Index))
	imm, ok := code.Body[0].Imm.(VectorImm)
	if !ok || imm.MemArg == nil {
		t.Fatalf("expected VectorImm with MemArg set, got %+v", code.Body[0].Imm)
	}
	if imm.MemArg.Align != 4 || imm.MemArg.Offset != 8 {
		t.Errorf("expected align=4 offset=8, got %+v", imm.MemArg)
	}

	storeData := buildVectorModule(t, SIMDV128Store, memArg.Bytes())
	m, err = Parse(storeData)
	if err != nil {
		t.Fatalf("Parse (store): %v", err)
	}
	exp, _ = m.ExportByName("v")
	code, _ = m.CodeFor(FuncIdx(exp.Index))
	imm, ok = code.Body[0].Imm.(VectorImm)
	if !ok || imm.SubOpcode != SIMDV128Store || imm.MemArg == nil {
		t.Fatalf("expected v128.store VectorImm, got %+v", code.Body[0].Imm)
	}
}
