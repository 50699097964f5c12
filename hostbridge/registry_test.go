package hostbridge

import (
	"testing"

	"github.com/wippyai/wasm-embedded/process"
)

type mathHost struct{}

func (mathHost) Namespace() string { return "math" }

func (mathHost) Add(a, b int32) int32 { return a + b }

func (mathHost) Double(a int64) int64 { return a * 2 }

func (mathHost) Noop() {}

type badHost struct{}

func (badHost) Namespace() string { return "bad" }

func (badHost) TakesAString(s string) int32 { return 0 }

func TestRegistryRegisterAndHandle(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(mathHost{}); err != nil {
		t.Fatalf("Register: %v", err)
	}

	results, err := r.Handle(nil, "math.add", []process.Dynamic{process.FromI32(2), process.FromI32(3)})
	if err != nil {
		t.Fatalf("Handle math.add: %v", err)
	}
	if len(results) != 1 || results[0].AsI32() != 5 {
		t.Errorf("math.add(2,3): got %v, want [5]", results)
	}

	results, err = r.Handle(nil, "math.double", []process.Dynamic{process.FromI64(21)})
	if err != nil {
		t.Fatalf("Handle math.double: %v", err)
	}
	if len(results) != 1 || results[0].AsI64() != 42 {
		t.Errorf("math.double(21): got %v, want [42]", results)
	}

	results, err = r.Handle(nil, "math.noop", nil)
	if err != nil {
		t.Fatalf("Handle math.noop: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("math.noop: got %v, want no results", results)
	}
}

func TestRegistryUnhandled(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(mathHost{}); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if _, err := r.Handle(nil, "math.missing", nil); err == nil {
		t.Error("expected an error for an unregistered name")
	}
}

func TestRegistryArityMismatch(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(mathHost{}); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if _, err := r.Handle(nil, "math.add", []process.Dynamic{process.FromI32(1)}); err == nil {
		t.Error("expected an arity mismatch error")
	}
}

func TestRegistryRejectsNonScalarSignature(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(badHost{}); err == nil {
		t.Error("expected Register to reject a string parameter")
	}
}

func TestToKebabCase(t *testing.T) {
	tests := map[string]string{
		"Add":         "add",
		"GetEnv":      "get-env",
		"GetHTTPCode": "get-http-code",
		"A":           "a",
	}
	for in, want := range tests {
		if got := toKebabCase(in); got != want {
			t.Errorf("toKebabCase(%q): got %q, want %q", in, got, want)
		}
	}
}
