package process

import (
	"testing"

	"github.com/wippyai/wasm-embedded/wasm"
)

// nullaryVoidModule builds a module with a single ()->() type, one
// function of that type exported as name, running body.
func nullaryVoidModule(name string, body []wasm.Instruction) *wasm.Module {
	return &wasm.Module{
		Types:     []wasm.FuncType{{}},
		Functions: []wasm.Function{{TypeIdx: 0}},
		Exports:   []wasm.Export{{Name: name, Kind: wasm.KindFunc, Index: 0}},
		Codes:     []wasm.Code{{Body: body}},
	}
}

func TestStepNopThenFinish(t *testing.T) {
	m := nullaryVoidModule("start", []wasm.Instruction{
		{Opcode: wasm.OpNop},
	})
	p, err := New(m, "start")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	action, execErr := p.Step()
	if execErr != nil {
		t.Fatalf("Step 1: %v", execErr)
	}
	if action.Kind != ActionNone {
		t.Fatalf("Step 1: expected ActionNone, got %v", action.Kind)
	}
	action, execErr = p.Step()
	if execErr != nil {
		t.Fatalf("Step 2: %v", execErr)
	}
	if action.Kind != ActionFinished {
		t.Fatalf("Step 2: expected ActionFinished, got %v", action.Kind)
	}
}

func TestSpawnUnknownExport(t *testing.T) {
	m := nullaryVoidModule("start", nil)
	if _, err := New(m, "missing"); err == nil || err.Kind != KindFunctionNotFound {
		t.Fatalf("expected KindFunctionNotFound, got %v", err)
	}
}

// TestImportDispatch mirrors the spec's concrete step-by-step scenario: a
// module importing ("env","noop") of type ()->(), exporting "start" whose
// body is [call 0]. The first Step yields CallExtern{name:"noop"}; after
// the host pushes no return values, the next Step yields Finished([]).
func TestImportDispatch(t *testing.T) {
	m := &wasm.Module{
		Types:     []wasm.FuncType{{}},
		Imports:   []wasm.Import{{Namespace: "env", Name: "noop", Kind: wasm.KindFunc, TypeIdx: 0}},
		Functions: []wasm.Function{{TypeIdx: 0}},
		Exports:   []wasm.Export{{Name: "start", Kind: wasm.KindFunc, Index: 1}},
		Codes: []wasm.Code{{Body: []wasm.Instruction{
			{Opcode: wasm.OpCall, Imm: wasm.CallImm{FuncIdx: 0}},
		}}},
	}
	p, err := New(m, "start")
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	action, execErr := p.Step()
	if execErr != nil {
		t.Fatalf("Step 1: %v", execErr)
	}
	if action.Kind != ActionCallExtern {
		t.Fatalf("Step 1: expected ActionCallExtern, got %v", action.Kind)
	}
	if action.Name != "noop" {
		t.Errorf("Step 1: expected call to \"noop\", got %q", action.Name)
	}
	if len(action.Args) != 0 {
		t.Errorf("Step 1: expected no args, got %v", action.Args)
	}

	action, execErr = p.Step()
	if execErr != nil {
		t.Fatalf("Step 2: %v", execErr)
	}
	if action.Kind != ActionFinished {
		t.Fatalf("Step 2: expected ActionFinished, got %v", action.Kind)
	}
	if len(action.Returns) != 0 {
		t.Errorf("Step 2: expected no returns, got %v", action.Returns)
	}
}

// TestImportDispatchWithReturn exercises pushing a host return value
// before the deferred advance runs.
func TestImportDispatchWithReturn(t *testing.T) {
	m := &wasm.Module{
		Types: []wasm.FuncType{
			{Results: []wasm.ValType{wasm.ValI32}},
		},
		Imports:   []wasm.Import{{Namespace: "env", Name: "answer", Kind: wasm.KindFunc, TypeIdx: 0}},
		Functions: []wasm.Function{{TypeIdx: 0}},
		Exports:   []wasm.Export{{Name: "start", Kind: wasm.KindFunc, Index: 1}},
		Codes: []wasm.Code{{Body: []wasm.Instruction{
			{Opcode: wasm.OpCall, Imm: wasm.CallImm{FuncIdx: 0}},
		}}},
	}
	p, err := New(m, "start")
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	action, execErr := p.Step()
	if execErr != nil || action.Kind != ActionCallExtern {
		t.Fatalf("Step 1: kind=%v err=%v", action.Kind, execErr)
	}
	p.Push(FromI32(42))

	action, execErr = p.Step()
	if execErr != nil {
		t.Fatalf("Step 2: %v", execErr)
	}
	if action.Kind != ActionFinished {
		t.Fatalf("Step 2: expected ActionFinished, got %v", action.Kind)
	}
	if len(action.Returns) != 1 || action.Returns[0].AsI32() != 42 {
		t.Errorf("Step 2: expected [42], got %v", action.Returns)
	}
}

// TestLoopBranchOut exercises a loop nested inside a block, where a
// br_if of relative depth 1 (the block, not the loop) exits the loop
// instead of repeating it — branching to a loop's own label restarts it,
// so exiting requires targeting an enclosing block.
func TestLoopBranchOut(t *testing.T) {
	loopBody := []wasm.Instruction{
		{Opcode: wasm.OpI32Const, Imm: wasm.I32Imm{Value: 1}},
		{Opcode: wasm.OpBrIf, Imm: wasm.BranchImm{LabelIdx: 1}},
	}
	blockBody := []wasm.Instruction{
		{Opcode: wasm.OpLoop, Imm: wasm.BlockImm{Body: loopBody}},
	}
	m := nullaryVoidModule("loopy", []wasm.Instruction{
		{Opcode: wasm.OpBlock, Imm: wasm.BlockImm{Body: blockBody}},
	})
	p, err := New(m, "loopy")
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	steps := 0
	for {
		action, execErr := p.Step()
		if execErr != nil {
			t.Fatalf("Step %d: %v", steps, execErr)
		}
		steps++
		if action.Kind == ActionFinished {
			break
		}
		if steps > 10 {
			t.Fatal("loop did not finish within a reasonable number of steps")
		}
	}
	if steps != 5 {
		t.Errorf("expected 5 steps (enter block, enter loop, const, br_if, end-of-body discovery), got %d", steps)
	}
}

// TestStepLocalGetDropThenFinish mirrors the three-step scenario: a
// `(i32) -> ()` function with body [local.get 0, drop] must yield None
// for local.get, None for drop, and only then Finished — discovering the
// end of the body is its own step, not folded into running drop.
func TestStepLocalGetDropThenFinish(t *testing.T) {
	m := &wasm.Module{
		Types:     []wasm.FuncType{{Params: []wasm.ValType{wasm.ValI32}}},
		Functions: []wasm.Function{{TypeIdx: 0}},
		Exports:   []wasm.Export{{Name: "start", Kind: wasm.KindFunc, Index: 0}},
		Codes: []wasm.Code{{Body: []wasm.Instruction{
			{Opcode: wasm.OpLocalGet, Imm: wasm.LocalImm{LocalIdx: 0}},
			{Opcode: wasm.OpDrop},
		}}},
	}
	p, err := New(m, "start")
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	kinds := make([]ActionKind, 0, 3)
	for i := 0; i < 3; i++ {
		action, execErr := p.Step()
		if execErr != nil {
			t.Fatalf("Step %d: %v", i+1, execErr)
		}
		kinds = append(kinds, action.Kind)
		if action.Kind == ActionFinished {
			break
		}
	}
	want := []ActionKind{ActionNone, ActionNone, ActionFinished}
	if len(kinds) != len(want) {
		t.Fatalf("expected 3 steps %v, got %v", want, kinds)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Errorf("step %d: expected %v, got %v", i+1, want[i], kinds[i])
		}
	}
}

// TestLoopRepeats exercises a loop whose br_if targets depth 0 (the loop
// itself): branching there restarts the loop rather than exiting it, so a
// guest must use a mutable local as a counter and branch conditionally on
// it — here the loop runs exactly twice.
func TestLoopRepeats(t *testing.T) {
	loopBody := []wasm.Instruction{
		// local 0 += 1
		{Opcode: wasm.OpLocalGet, Imm: wasm.LocalImm{LocalIdx: 0}},
		{Opcode: wasm.OpI32Const, Imm: wasm.I32Imm{Value: 1}},
		{Opcode: wasm.OpI32Add},
		{Opcode: wasm.OpLocalTee, Imm: wasm.LocalImm{LocalIdx: 0}},
		// loop again while local 0 < 2
		{Opcode: wasm.OpI32Const, Imm: wasm.I32Imm{Value: 2}},
		{Opcode: wasm.OpI32LtS},
		{Opcode: wasm.OpBrIf, Imm: wasm.BranchImm{LabelIdx: 0}},
	}
	m := &wasm.Module{
		Types:     []wasm.FuncType{{Results: []wasm.ValType{wasm.ValI32}}},
		Functions: []wasm.Function{{TypeIdx: 0}},
		Exports:   []wasm.Export{{Name: "counter", Kind: wasm.KindFunc, Index: 0}},
		Codes: []wasm.Code{{Locals: []wasm.LocalGroup{{Count: 1, Type: wasm.ValI32}}, Body: []wasm.Instruction{
			{Opcode: wasm.OpLoop, Imm: wasm.BlockImm{Body: loopBody}},
			{Opcode: wasm.OpLocalGet, Imm: wasm.LocalImm{LocalIdx: 0}},
			{Opcode: wasm.OpReturn},
		}}},
	}
	p, err := New(m, "counter")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	var final ProcessAction
	for i := 0; i < 50; i++ {
		action, execErr := p.Step()
		if execErr != nil {
			t.Fatalf("Step %d: %v", i, execErr)
		}
		if action.Kind == ActionFinished {
			final = action
			break
		}
	}
	if len(final.Returns) != 1 || final.Returns[0].AsI32() != 2 {
		t.Errorf("expected return [2], got %v", final.Returns)
	}
}

func TestLocalSetThenGet(t *testing.T) {
	m := &wasm.Module{
		Types:     []wasm.FuncType{{Params: []wasm.ValType{wasm.ValI32}}},
		Functions: []wasm.Function{{TypeIdx: 0}},
		Exports:   []wasm.Export{{Name: "f", Kind: wasm.KindFunc, Index: 0}},
		Codes: []wasm.Code{{Body: []wasm.Instruction{
			{Opcode: wasm.OpI32Const, Imm: wasm.I32Imm{Value: 7}},
			{Opcode: wasm.OpLocalSet, Imm: wasm.LocalImm{LocalIdx: 0}},
			{Opcode: wasm.OpLocalGet, Imm: wasm.LocalImm{LocalIdx: 0}},
			{Opcode: wasm.OpReturn},
		}}},
	}
	p, err := New(m, "f")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	var final ProcessAction
	for i := 0; i < 10; i++ {
		action, execErr := p.Step()
		if execErr != nil {
			t.Fatalf("Step: %v", execErr)
		}
		if action.Kind == ActionFinished {
			final = action
			break
		}
	}
	if len(final.Returns) != 1 || final.Returns[0].AsI32() != 7 {
		t.Errorf("expected return [7], got %v", final.Returns)
	}
}

func TestUnreachableTraps(t *testing.T) {
	m := nullaryVoidModule("bad", []wasm.Instruction{{Opcode: wasm.OpUnreachable}})
	p, err := New(m, "bad")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	_, execErr := p.Step()
	if execErr == nil || execErr.Kind != KindTrap {
		t.Fatalf("expected a trap, got %v", execErr)
	}
}
