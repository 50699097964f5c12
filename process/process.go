package process

import (
	"github.com/wippyai/wasm-embedded/wasm"
)

// Frame is one call-frame: the function it executes, the path cursor
// into that function's expression tree, and its locals (parameters
// followed by declared locals).
type Frame struct {
	FuncIdx wasm.FuncIdx
	Path    []int
	Locals  []Dynamic
}

// Process is a single suspendable invocation of an exported function. It
// borrows the module it was spawned from; its frame stack, operand
// stack, and instance state (memories, tables, globals) are exclusively
// its own.
type Process struct {
	module   *wasm.Module
	frames   []*Frame
	stack    []Dynamic
	memories []*Memory
	tables   []*Table
	globals  []Dynamic

	// droppedData tracks which data segments data.drop has retired, one
	// entry per module.Datas index.
	droppedData []bool

	// pendingAdvance defers moving the path cursor past an instruction
	// that already ran to the start of the following Step, so that
	// discovering the end of a function body (or, for OpCall, waiting on
	// the host's return values) is always its own step rather than being
	// folded into the step that executed the prior instruction.
	// pendingAdvanceFrom is the level index advanceFrom should resume
	// from when resolving it.
	pendingAdvance     bool
	pendingAdvanceFrom int
}

// ActionKind tags what Step returned.
type ActionKind byte

const (
	ActionNone ActionKind = iota
	ActionFinished
	ActionCallExtern
)

// ProcessAction is Step's result: either nothing notable happened, the
// outermost frame completed, or execution must pause for a host call.
type ProcessAction struct {
	Kind    ActionKind
	Returns []Dynamic
	Name    string
	Args    []Dynamic
}

// New spawns a process positioned at the named export. The export must
// name a local function (imported functions have no code to step
// through).
func New(module *wasm.Module, name string) (*Process, *ExecError) {
	export, ok := module.ExportByName(name)
	if !ok || export.Kind != wasm.KindFunc {
		return nil, functionNotFound(name)
	}
	funcIdx := wasm.FuncIdx(export.Index)
	code, ok := module.CodeFor(funcIdx)
	if !ok {
		return nil, functionNotFound(name)
	}
	ft, _ := module.TypeOf(funcIdx)

	p := &Process{module: module}
	frame := &Frame{FuncIdx: funcIdx, Path: []int{0}, Locals: zeroLocals(ft, code)}
	p.frames = []*Frame{frame}

	p.initMemories()
	p.initTables()
	if err := p.initGlobals(); err != nil {
		return nil, err
	}
	p.droppedData = make([]bool, len(module.Datas))
	if err := p.initData(); err != nil {
		return nil, err
	}
	return p, nil
}

func zeroLocals(ft *wasm.FuncType, code *wasm.Code) []Dynamic {
	n := 0
	if ft != nil {
		n += len(ft.Params)
	}
	for _, g := range code.Locals {
		n += int(g.Count)
	}
	return make([]Dynamic, n)
}

func (p *Process) initMemories() {
	for _, imp := range p.module.Imports {
		if imp.Kind == wasm.KindMemory {
			p.memories = append(p.memories, newMemory(imp.Memory))
		}
	}
	for _, m := range p.module.Memories {
		p.memories = append(p.memories, newMemory(m.Type))
	}
}

func (p *Process) initTables() {
	for _, imp := range p.module.Imports {
		if imp.Kind == wasm.KindTable {
			p.tables = append(p.tables, newTable(imp.Table))
		}
	}
	for _, t := range p.module.Tables {
		p.tables = append(p.tables, newTable(t.Type))
	}
}

func (p *Process) initGlobals() *ExecError {
	for _, imp := range p.module.Imports {
		if imp.Kind == wasm.KindGlobal {
			p.globals = append(p.globals, 0)
		}
	}
	for _, g := range p.module.Globals {
		v, err := p.evalConst(g.Init)
		if err != nil {
			return err
		}
		p.globals = append(p.globals, v)
	}
	return nil
}

// initData copies every active data segment into its target memory at
// spawn time, mirroring instantiation-time initialization. Passive
// segments (mode 1) stay untouched until memory.init names them.
func (p *Process) initData() *ExecError {
	for _, d := range p.module.Datas {
		if d.Mode == 1 {
			continue
		}
		if int(d.MemIdx) >= len(p.memories) {
			return trap("active data segment targets undefined memory", nil)
		}
		off, err := p.evalConst(d.Offset)
		if err != nil {
			return err
		}
		if !p.memories[d.MemIdx].Init(off.AsU64(), d.Bytes, 0, uint64(len(d.Bytes))) {
			return trap("active data segment out of bounds", nil)
		}
	}
	return nil
}

// evalConst evaluates a constant initializer expression (global init,
// data/element offset): const instructions and global.get against an
// already-initialized earlier global.
func (p *Process) evalConst(instrs []wasm.Instruction) (Dynamic, *ExecError) {
	var v Dynamic
	for _, instr := range instrs {
		switch imm := instr.Imm.(type) {
		case wasm.I32Imm:
			v = FromI32(imm.Value)
		case wasm.I64Imm:
			v = FromI64(imm.Value)
		case wasm.F32Imm:
			v = FromF32(imm.Value)
		case wasm.F64Imm:
			v = FromF64(imm.Value)
		case wasm.GlobalImm:
			if int(imm.GlobalIdx) >= len(p.globals) {
				return 0, trap("constant expression references undefined global", nil)
			}
			v = p.globals[imm.GlobalIdx]
		case wasm.RefNullImm, wasm.RefFuncImm:
			v = 0
		default:
			return 0, trap("unsupported constant expression", nil)
		}
	}
	return v, nil
}

// Push appends a value to the operand stack. The host calls this to
// supply return values after servicing a CallExtern.
func (p *Process) Push(v Dynamic) {
	p.stack = append(p.stack, v)
}

func (p *Process) pop() Dynamic {
	n := len(p.stack)
	v := p.stack[n-1]
	p.stack = p.stack[:n-1]
	return v
}

func (p *Process) popN(n int) []Dynamic {
	if n == 0 {
		return nil
	}
	start := len(p.stack) - n
	vs := append([]Dynamic(nil), p.stack[start:]...)
	p.stack = p.stack[:start]
	return vs
}

func (p *Process) drain() []Dynamic {
	vs := p.stack
	p.stack = nil
	return vs
}

// CurrentInstruction resolves the active frame's path against its
// function's expression tree.
func (p *Process) CurrentInstruction() (wasm.Instruction, error) {
	frame := p.frames[len(p.frames)-1]
	code, ok := p.module.CodeFor(frame.FuncIdx)
	if !ok {
		return wasm.Instruction{}, &errInternalPath{"active frame's function has no code"}
	}
	levels, err := navigate(code.Body, frame.Path)
	if err != nil {
		return wasm.Instruction{}, err
	}
	last := levels[len(levels)-1]
	return last.seq[last.idx], nil
}

// Step executes exactly one instruction.
func (p *Process) Step() (ProcessAction, *ExecError) {
	if p.pendingAdvance {
		p.pendingAdvance = false
		frame := p.frames[len(p.frames)-1]
		code, ok := p.module.CodeFor(frame.FuncIdx)
		if !ok {
			return ProcessAction{}, trap("active frame's function has no code", nil)
		}
		levels, err := navigate(code.Body, frame.Path)
		if err != nil {
			return ProcessAction{}, trap(err.Error(), err)
		}
		path, ok := advanceFrom(levels, p.pendingAdvanceFrom)
		if !ok {
			// Popped past the root: the frame that owned this cursor is
			// done. doReturn may itself leave a fresh pendingAdvance set
			// for the caller it pops into, so this result is always
			// returned as-is, never chained into executing further.
			return p.doReturn()
		}
		frame.Path = path
	}

	frame := p.frames[len(p.frames)-1]
	code, ok := p.module.CodeFor(frame.FuncIdx)
	if !ok {
		return ProcessAction{}, trap("active frame's function has no code", nil)
	}
	levels, err := navigate(code.Body, frame.Path)
	if err != nil {
		return ProcessAction{}, trap(err.Error(), err)
	}
	last := levels[len(levels)-1]
	instr := last.seq[last.idx]

	return p.execute(frame, levels, instr)
}
