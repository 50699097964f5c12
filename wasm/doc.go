// Package wasm decodes a WebAssembly 1.0 core binary module, plus the
// 256-opcode SIMD vector prefix (0xFD) and the bulk-memory/table/
// saturating-truncation extended prefix (0xFC), into a typed IR.
//
// Decoding never performs the Wasm validation pass: type checking of
// code is out of scope. Structured control-flow instructions (block,
// loop, if, if-else) own their inner instruction sequence(s) as children,
// so the result is a tree, not a linearized bytecode stream — this is
// the data structure the process package's frame-path cursor depends on.
package wasm
