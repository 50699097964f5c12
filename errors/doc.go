// Package errors provides the structured error type shared by the wasm
// decoder and the process execution engine.
//
// Errors are categorized by Phase (where the error occurred: decode, exec,
// load, host) and Kind (error category). The Error type carries a field
// path and a cause chain; the wasm and process packages anchor their own
// richer ParseError/ExecError on top of it (byte offset, opcode kind tag).
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseDecode, errors.KindInvalidData).
//		Path("section", "type").
//		Detail("expected 0x60, got 0x61").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.OutOfBounds(errors.PhaseExec, path, 10, 5)
//	err := errors.Trap("division by zero", nil)
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
