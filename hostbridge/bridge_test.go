package hostbridge

import (
	"testing"

	"github.com/wippyai/wasm-embedded/process"
	"github.com/wippyai/wasm-embedded/wasm"
)

type echoHandler struct {
	calls []string
}

func (h *echoHandler) Handle(proc *process.Process, name string, args []process.Dynamic) ([]process.Dynamic, error) {
	h.calls = append(h.calls, name)
	if len(args) == 0 {
		return nil, nil
	}
	return []process.Dynamic{args[0]}, nil
}

func (h *echoHandler) Unhandled(name string, args []process.Dynamic) ([]process.Dynamic, error) {
	return nil, nil
}

func TestDriveRunsToCompletion(t *testing.T) {
	m := &wasm.Module{
		Types: []wasm.FuncType{
			{Results: []wasm.ValType{wasm.ValI32}},
			{Params: []wasm.ValType{wasm.ValI32}, Results: []wasm.ValType{wasm.ValI32}},
		},
		Imports:   []wasm.Import{{Namespace: "env", Name: "echo", Kind: wasm.KindFunc, TypeIdx: 1}},
		Functions: []wasm.Function{{TypeIdx: 0}},
		Exports:   []wasm.Export{{Name: "start", Kind: wasm.KindFunc, Index: 1}},
		Codes: []wasm.Code{{Body: []wasm.Instruction{
			{Opcode: wasm.OpI32Const, Imm: wasm.I32Imm{Value: 9}},
			{Opcode: wasm.OpCall, Imm: wasm.CallImm{FuncIdx: 0}},
			{Opcode: wasm.OpReturn},
		}}},
	}
	proc, execErr := process.New(m, "start")
	if execErr != nil {
		t.Fatalf("New: %v", execErr)
	}

	h := &echoHandler{}
	returns, err := Drive(proc, h)
	if err != nil {
		t.Fatalf("Drive: %v", err)
	}
	if len(h.calls) != 1 || h.calls[0] != "echo" {
		t.Errorf("expected one call to \"echo\", got %v", h.calls)
	}
	if len(returns) != 1 || returns[0].AsI32() != 9 {
		t.Errorf("expected [9] returned, got %v", returns)
	}
}
