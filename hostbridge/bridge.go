package hostbridge

import "github.com/wippyai/wasm-embedded/process"

// Handler is what a host implements to service a process's imported
// functions. Handle is invoked for every CallExtern whose name matches a
// registered host function; Unhandled is the fallback when nothing
// matches. Both return the values to push onto the operand stack, in
// declaration order, before the next Step call.
type Handler interface {
	Handle(proc *process.Process, name string, args []process.Dynamic) ([]process.Dynamic, error)
	Unhandled(name string, args []process.Dynamic) ([]process.Dynamic, error)
}

// Drive steps proc to completion, routing every CallExtern through
// handler.Handle and pushing whatever it returns before stepping again.
// Handle is responsible for falling back to Unhandled itself when no
// registered host function matches name — see Registry.Handle. It
// returns the values the outermost function returned.
func Drive(proc *process.Process, handler Handler) ([]process.Dynamic, error) {
	for {
		action, err := proc.Step()
		if err != nil {
			return nil, err
		}
		switch action.Kind {
		case process.ActionFinished:
			return action.Returns, nil
		case process.ActionCallExtern:
			results, err := handler.Handle(proc, action.Name, action.Args)
			if err != nil {
				return nil, err
			}
			for _, v := range results {
				proc.Push(v)
			}
		}
	}
}
