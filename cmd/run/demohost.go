package main

import (
	"fmt"

	"github.com/wippyai/wasm-embedded/process"
)

// demoHost is a minimal hostbridge.Handler for headless and interactive
// runs: it recognizes a couple of "env" imports a sample guest program
// might declare, and otherwise reports every call to stdout and returns
// no results. Real embedders register their own functions through
// hostbridge.Registry or a generated dispatcher instead of this stub.
type demoHost struct{}

func newDemoHost() *demoHost { return &demoHost{} }

func (h *demoHost) Handle(proc *process.Process, name string, args []process.Dynamic) ([]process.Dynamic, error) {
	switch name {
	case "log", "env.log":
		for _, a := range args {
			fmt.Printf("[guest log] %d\n", a.AsI32())
		}
		return nil, nil
	case "noop", "env.noop":
		return nil, nil
	default:
		return h.Unhandled(name, args)
	}
}

func (h *demoHost) Unhandled(name string, args []process.Dynamic) ([]process.Dynamic, error) {
	fmt.Printf("[unhandled import] %s(%v)\n", name, args)
	return nil, nil
}
