package process

import "github.com/wippyai/wasm-embedded/wasm"

// execute runs the single instruction the path cursor currently points
// at. Structured control flow, branches and calls manipulate frame.Path
// and p.frames directly; everything else is delegated to executeLeaf and
// then the cursor simply advances to the next sibling.
func (p *Process) execute(frame *Frame, levels []level, instr wasm.Instruction) (ProcessAction, *ExecError) {
	switch instr.Opcode {
	case wasm.OpUnreachable:
		return ProcessAction{}, trap("unreachable instruction reached", nil)

	case wasm.OpBlock, wasm.OpLoop:
		frame.Path = descendBlock(frame.Path)
		return ProcessAction{}, nil

	case wasm.OpIf:
		imm := instr.Imm.(wasm.IfImm)
		cond := p.pop().AsI32()
		if cond != 0 {
			frame.Path = descendIf(frame.Path, 0)
			return ProcessAction{}, nil
		}
		if imm.Else != nil {
			frame.Path = descendIf(frame.Path, 1)
			return ProcessAction{}, nil
		}
		return p.deferAdvance(levels)

	case wasm.OpBr:
		imm := instr.Imm.(wasm.BranchImm)
		return p.branch(frame, levels, int(imm.LabelIdx))

	case wasm.OpBrIf:
		imm := instr.Imm.(wasm.BranchImm)
		if p.pop().AsI32() == 0 {
			return p.deferAdvance(levels)
		}
		return p.branch(frame, levels, int(imm.LabelIdx))

	case wasm.OpBrTable:
		imm := instr.Imm.(wasm.BrTableImm)
		idx := p.pop().AsU32()
		target := imm.Default
		if int(idx) < len(imm.Labels) {
			target = imm.Labels[idx]
		}
		return p.branch(frame, levels, int(target))

	case wasm.OpReturn:
		return p.doReturn()

	case wasm.OpCall:
		imm := instr.Imm.(wasm.CallImm)
		return p.call(frame, levels, imm.FuncIdx)

	case wasm.OpCallIndirect:
		imm := instr.Imm.(wasm.CallIndirectImm)
		return p.callIndirect(frame, levels, imm)

	default:
		if err := p.executeLeaf(frame, instr); err != nil {
			return ProcessAction{}, err
		}
		return p.deferAdvance(levels)
	}
}

// deferAdvance marks the cursor as still needing to move past the
// instruction just executed, without touching frame.Path. Whether that
// move lands on a sibling or pops past the end of the function body is
// discovered at the start of the following Step, in its own dedicated
// no-op step — never folded into the step that just ran this
// instruction. This is the same deferral OpCall already relies on while
// waiting for the host to supply a return value.
func (p *Process) deferAdvance(levels []level) (ProcessAction, *ExecError) {
	p.pendingAdvance = true
	p.pendingAdvanceFrom = len(levels) - 1
	return ProcessAction{}, nil
}

// branch implements br/br_if/br_table's label resolution: pop out of k+1
// enclosing containers, then either re-enter the target (a loop) or step
// past it (a block or if). Re-entering a loop is immediate, since the
// destination always exists; stepping past a block may itself pop out of
// the function body, so that discovery is deferred just like a plain
// advance.
func (p *Process) branch(frame *Frame, levels []level, k int) (ProcessAction, *ExecError) {
	targetIdx, err := branchTarget(levels, k)
	if err != nil {
		return ProcessAction{}, trap(err.Error(), err)
	}
	target := levels[targetIdx]
	if target.kind == levelLoop {
		frame.Path = append(pathThrough(levels, targetIdx+1), 0)
		return ProcessAction{}, nil
	}
	p.pendingAdvance = true
	p.pendingAdvanceFrom = targetIdx
	return ProcessAction{}, nil
}

// doReturn pops the current frame. If it was the outermost frame,
// execution is finished; otherwise the caller's path still sits on the
// call instruction that invoked it, and advancing past it is deferred to
// the next Step like any other advance.
func (p *Process) doReturn() (ProcessAction, *ExecError) {
	p.frames = p.frames[:len(p.frames)-1]
	if len(p.frames) == 0 {
		return ProcessAction{Kind: ActionFinished, Returns: p.drain()}, nil
	}
	parent := p.frames[len(p.frames)-1]
	code, ok := p.module.CodeFor(parent.FuncIdx)
	if !ok {
		return ProcessAction{}, trap("caller frame's function has no code", nil)
	}
	levels, err := navigate(code.Body, parent.Path)
	if err != nil {
		return ProcessAction{}, trap(err.Error(), err)
	}
	return p.deferAdvance(levels)
}

// call dispatches a direct call. An imported target suspends the
// process; a local target pushes a new frame and continues without
// suspending. The caller's own cursor advance for an imported call is
// deferred until the host has supplied return values (see pendingAdvance
// in Step), since the call has not actually completed yet.
func (p *Process) call(frame *Frame, levels []level, funcIdx wasm.FuncIdx) (ProcessAction, *ExecError) {
	if imp, ok := p.module.ImportFor(funcIdx); ok {
		args := p.drain()
		p.pendingAdvance = true
		p.pendingAdvanceFrom = len(levels) - 1
		return ProcessAction{Kind: ActionCallExtern, Name: imp.Name, Args: args}, nil
	}

	code, ok := p.module.CodeFor(funcIdx)
	if !ok {
		return ProcessAction{}, trap("call: target function has no code", nil)
	}
	ft, _ := p.module.TypeOf(funcIdx)
	argc := 0
	if ft != nil {
		argc = len(ft.Params)
	}
	args := p.popN(argc)
	locals := zeroLocals(ft, code)
	copy(locals, args)

	p.frames = append(p.frames, &Frame{FuncIdx: funcIdx, Path: []int{0}, Locals: locals})
	return ProcessAction{}, nil
}

func (p *Process) callIndirect(frame *Frame, levels []level, imm wasm.CallIndirectImm) (ProcessAction, *ExecError) {
	idx := p.pop().AsU32()
	if int(imm.TableIdx) >= len(p.tables) {
		return ProcessAction{}, trap("call_indirect: table index out of range", nil)
	}
	elem, ok := p.tables[imm.TableIdx].Get(idx)
	if !ok {
		return ProcessAction{}, trap("call_indirect: index out of bounds", nil)
	}
	if elem == nullElem {
		return ProcessAction{}, trap("call_indirect: undefined element", nil)
	}
	return p.call(frame, levels, wasm.FuncIdx(uint32(elem)))
}
