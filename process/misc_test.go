package process

import (
	"testing"

	"github.com/wippyai/wasm-embedded/wasm"
)

func miscInstr(imm any) wasm.Instruction {
	return wasm.Instruction{Opcode: wasm.OpPrefixMisc, Imm: imm}
}

func TestMemoryInit(t *testing.T) {
	m := &wasm.Module{
		Types:     []wasm.FuncType{{Results: []wasm.ValType{wasm.ValI32}}},
		Memories:  []wasm.Memory{{Type: wasm.MemoryType{Limits: wasm.Limits{Min: 1}}}},
		Functions: []wasm.Function{{TypeIdx: 0}},
		Exports:   []wasm.Export{{Name: "f", Kind: wasm.KindFunc, Index: 0}},
		Datas:     []wasm.Data{{Mode: 1, Bytes: []byte{11, 22, 33}}},
		Codes: []wasm.Code{{Body: []wasm.Instruction{
			constI32(0), // dst
			constI32(0), // src
			constI32(3), // n
			miscInstr(wasm.MemoryInitImm{DataIdx: 0}),
			constI32(1),
			{Opcode: wasm.OpI32Load8U, Imm: wasm.MemoryImm{Arg: wasm.MemArg{}}},
			{Opcode: wasm.OpReturn},
		}}},
	}
	p, err := New(m, "f")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	got := runToReturn(t, p)
	if len(got) != 1 || got[0].AsI32() != 22 {
		t.Errorf("memory.init byte 1: got %v, want [22]", got)
	}
}

func TestDataDropPreventsLaterInit(t *testing.T) {
	m := &wasm.Module{
		Types:     []wasm.FuncType{{}},
		Memories:  []wasm.Memory{{Type: wasm.MemoryType{Limits: wasm.Limits{Min: 1}}}},
		Functions: []wasm.Function{{TypeIdx: 0}},
		Exports:   []wasm.Export{{Name: "f", Kind: wasm.KindFunc, Index: 0}},
		Datas:     []wasm.Data{{Mode: 1, Bytes: []byte{1, 2, 3}}},
		Codes: []wasm.Code{{Body: []wasm.Instruction{
			miscInstr(wasm.DataDropImm{DataIdx: 0}),
			constI32(0),
			constI32(0),
			constI32(3),
			miscInstr(wasm.MemoryInitImm{DataIdx: 0}),
		}}},
	}
	p, err := New(m, "f")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	for i := 0; i < 10; i++ {
		action, execErr := p.Step()
		if execErr != nil {
			if execErr.Kind != KindTrap {
				t.Fatalf("expected a trap, got %v", execErr)
			}
			return
		}
		if action.Kind == ActionFinished {
			t.Fatal("expected a trap after dropping the segment, function finished instead")
		}
	}
	t.Fatal("did not trap within a reasonable number of steps")
}

func TestMemoryCopyAndFill(t *testing.T) {
	m := &wasm.Module{
		Types:     []wasm.FuncType{{Results: []wasm.ValType{wasm.ValI32}}},
		Memories:  []wasm.Memory{{Type: wasm.MemoryType{Limits: wasm.Limits{Min: 1}}}},
		Functions: []wasm.Function{{TypeIdx: 0}},
		Exports:   []wasm.Export{{Name: "f", Kind: wasm.KindFunc, Index: 0}},
		Codes: []wasm.Code{{Body: []wasm.Instruction{
			// fill [0,4) with 7
			constI32(0),
			constI32(7),
			constI32(4),
			miscInstr(wasm.MemoryFillImm{}),
			// copy [0,4) to [8,12)
			constI32(8),
			constI32(0),
			constI32(4),
			miscInstr(wasm.MemoryCopyImm{}),
			constI32(10),
			{Opcode: wasm.OpI32Load8U, Imm: wasm.MemoryImm{Arg: wasm.MemArg{}}},
			{Opcode: wasm.OpReturn},
		}}},
	}
	p, err := New(m, "f")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	got := runToReturn(t, p)
	if len(got) != 1 || got[0].AsI32() != 7 {
		t.Errorf("fill then copy: got %v, want [7]", got)
	}
}

func TestTableGrowThenSize(t *testing.T) {
	m := &wasm.Module{
		Types:     []wasm.FuncType{{Results: []wasm.ValType{wasm.ValI32}}},
		Tables:    []wasm.Table{{Type: wasm.TableType{RefType: wasm.RefFunc, Limits: wasm.Limits{Min: 1, Max: 10, HasMax: true}}}},
		Functions: []wasm.Function{{TypeIdx: 0}},
		Exports:   []wasm.Export{{Name: "f", Kind: wasm.KindFunc, Index: 0}},
		Codes: []wasm.Code{{Body: []wasm.Instruction{
			{Opcode: wasm.OpRefFunc, Imm: wasm.RefFuncImm{FuncIdx: 0}},
			constI32(3),
			miscInstr(wasm.TableIdxImm{TableIdx: 0, SubOpcode: wasm.MiscTableGrow}),
			{Opcode: wasm.OpDrop},
			miscInstr(wasm.TableIdxImm{TableIdx: 0, SubOpcode: wasm.MiscTableSize}),
			{Opcode: wasm.OpReturn},
		}}},
	}
	p, err := New(m, "f")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	got := runToReturn(t, p)
	if len(got) != 1 || got[0].AsI32() != 4 {
		t.Errorf("grow(3) from size 1 then size: got %v, want [4]", got)
	}
}

func TestTableCopy(t *testing.T) {
	m := &wasm.Module{
		Types: []wasm.FuncType{{Results: []wasm.ValType{wasm.ValI32}}},
		Tables: []wasm.Table{
			{Type: wasm.TableType{RefType: wasm.RefFunc, Limits: wasm.Limits{Min: 4}}},
		},
		Functions: []wasm.Function{{TypeIdx: 0}},
		Exports:   []wasm.Export{{Name: "f", Kind: wasm.KindFunc, Index: 0}},
		Codes: []wasm.Code{{Body: []wasm.Instruction{
			// table.set(0, funcref 0)
			constI32(0),
			{Opcode: wasm.OpRefFunc, Imm: wasm.RefFuncImm{FuncIdx: 0}},
			{Opcode: wasm.OpTableSet, Imm: wasm.TableImm{TableIdx: 0}},
			// table.copy dst=2 src=0 n=1 (same table)
			constI32(2),
			constI32(0),
			constI32(1),
			miscInstr(wasm.TableCopyImm{DstTableIdx: 0, SrcTableIdx: 0}),
			// table.get(2)
			constI32(2),
			{Opcode: wasm.OpTableGet, Imm: wasm.TableImm{TableIdx: 0}},
			{Opcode: wasm.OpI32WrapI64},
			{Opcode: wasm.OpReturn},
		}}},
	}
	p, err := New(m, "f")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	got := runToReturn(t, p)
	if len(got) != 1 || got[0].AsI32() != 0 {
		t.Errorf("table.copy then get: got %v, want [0]", got)
	}
}

func TestTruncSatTrapsUnconditionally(t *testing.T) {
	m := unaryI32Module([]wasm.Instruction{
		{Opcode: wasm.OpF32Const, Imm: wasm.F32Imm{Value: 1.5}},
		miscInstr(wasm.TruncSatImm{SubOpcode: 0}),
	})
	p, err := New(m, "f")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	for i := 0; i < 10; i++ {
		action, execErr := p.Step()
		if execErr != nil {
			if execErr.Kind != KindTrap {
				t.Fatalf("expected a trap, got %v", execErr)
			}
			return
		}
		if action.Kind == ActionFinished {
			t.Fatal("expected a trap, function finished instead")
		}
	}
	t.Fatal("did not trap within a reasonable number of steps")
}

func TestTableInitTraps(t *testing.T) {
	m := &wasm.Module{
		Types:     []wasm.FuncType{{}},
		Tables:    []wasm.Table{{Type: wasm.TableType{RefType: wasm.RefFunc, Limits: wasm.Limits{Min: 1}}}},
		Functions: []wasm.Function{{TypeIdx: 0}},
		Exports:   []wasm.Export{{Name: "f", Kind: wasm.KindFunc, Index: 0}},
		Codes: []wasm.Code{{Body: []wasm.Instruction{
			constI32(0),
			constI32(0),
			constI32(0),
			miscInstr(wasm.TableInitImm{ElemIdx: 0, TableIdx: 0}),
		}}},
	}
	p, err := New(m, "f")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	for i := 0; i < 10; i++ {
		action, execErr := p.Step()
		if execErr != nil {
			if execErr.Kind != KindTrap {
				t.Fatalf("expected table.init to trap, got %v", execErr)
			}
			return
		}
		if action.Kind == ActionFinished {
			t.Fatal("expected a trap, function finished instead")
		}
	}
	t.Fatal("did not trap within a reasonable number of steps")
}
