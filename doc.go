// Package wasmembedded is the root of an embedded-grade WebAssembly loader
// and stepwise interpreter.
//
// The library is split into small packages with distinct responsibilities,
// the way an embedded host links only what it needs:
//
//	wasm/        Binary module decoder: byte reader, LEB128, section and
//	             instruction decoding into a typed IR tree.
//	process/     The suspendable single-step execution engine: call-frame
//	             stack, operand stack, linear memory and table instances.
//	hostbridge/  The interface a host implements to service imported
//	             functions and push return values back onto the stack.
//	cmd/run/     A reference host binary: loads a module, calls an export,
//	             and services imports either headlessly or through an
//	             interactive single-step TUI.
//
// # Quick start
//
//	mod, perr := wasm.Parse(data)
//	if perr != nil {
//	    log.Fatal(perr)
//	}
//	proc, execErr := process.New(mod, "start")
//	if execErr != nil {
//	    log.Fatal(execErr)
//	}
//	for {
//	    action, execErr := proc.Step()
//	    if execErr != nil {
//	        log.Fatal(execErr)
//	    }
//	    switch action.Kind {
//	    case process.ActionFinished:
//	        fmt.Println("done:", action.Returns)
//	        return
//	    case process.ActionCallExtern:
//	        // host services the import, then pushes return values
//	        proc.Push(process.FromI32(0))
//	    }
//	}
//
// # Scope
//
// There is no validation pass, no JIT, no multi-module linking, no thread
// or shared-memory proposal, no floating-point conformance beyond decode,
// no 64-bit memory, and no garbage collection. The engine is
// single-threaded and cooperative: the only suspension point is a call to
// an imported function.
package wasmembedded
