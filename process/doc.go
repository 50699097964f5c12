// Package process runs a decoded wasm.Module one instruction at a time.
// A Process is a single suspendable invocation of an exported function:
// its own call-frame stack, operand stack, memories, tables and globals,
// all cursor-addressed into the module's instruction tree by path.go
// rather than a linear program counter.
//
// Step executes exactly one instruction and returns a ProcessAction: the
// step did nothing notable, the outermost frame returned, or an imported
// function needs the host to run it. Nothing here drives that loop to
// completion on its own — see the hostbridge package for that.
package process
