package process

import (
	"fmt"

	liberrors "github.com/wippyai/wasm-embedded/errors"
)

// ExecErrorKind tags the specific way execution failed.
type ExecErrorKind string

const (
	KindFunctionNotFound ExecErrorKind = "function_not_found"
	KindTrap             ExecErrorKind = "trap"
)

// ExecError is an execution-time failure: either the named export could
// not be found at spawn time, or the process trapped mid-step.
type ExecError struct {
	Cause  *liberrors.Error
	Kind   ExecErrorKind
	Detail string
}

func (e *ExecError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("process: %s: %s", e.Kind, e.Detail)
	}
	return fmt.Sprintf("process: %s", e.Kind)
}

func (e *ExecError) Unwrap() error {
	if e.Cause == nil {
		return nil
	}
	return e.Cause
}

func functionNotFound(name string) *ExecError {
	return &ExecError{
		Kind:   KindFunctionNotFound,
		Detail: name,
		Cause:  liberrors.NotFound(liberrors.PhaseExec, "export", name),
	}
}

func trap(detail string, cause error) *ExecError {
	return &ExecError{
		Kind:   KindTrap,
		Detail: detail,
		Cause:  liberrors.Trap(detail, cause),
	}
}
