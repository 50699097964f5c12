package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseDirective(t *testing.T) {
	tests := []struct {
		in         string
		name       string
		params     []string
		result     string
		wantErr    bool
	}{
		{in: "log", name: "log"},
		{in: "add,i32,i32->i32", name: "add", params: []string{"i32", "i32"}, result: "i32"},
		{in: "notify,i32", name: "notify", params: []string{"i32"}},
		{in: "bad,string->i32", wantErr: true},
	}
	for _, tt := range tests {
		name, params, result, err := parseDirective(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("parseDirective(%q): expected error, got none", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseDirective(%q): %v", tt.in, err)
			continue
		}
		if name != tt.name {
			t.Errorf("parseDirective(%q) name: got %q, want %q", tt.in, name, tt.name)
		}
		if result != tt.result {
			t.Errorf("parseDirective(%q) result: got %q, want %q", tt.in, result, tt.result)
		}
		if len(params) != len(tt.params) {
			t.Errorf("parseDirective(%q) params: got %v, want %v", tt.in, params, tt.params)
			continue
		}
		for i := range params {
			if params[i] != tt.params[i] {
				t.Errorf("parseDirective(%q) params[%d]: got %q, want %q", tt.in, i, params[i], tt.params[i])
			}
		}
	}
}

func TestValidScalar(t *testing.T) {
	for _, ok := range []string{"i32", "i64", "f32", "f64"} {
		if !validScalar(ok) {
			t.Errorf("validScalar(%q): expected true", ok)
		}
	}
	for _, bad := range []string{"string", "bool", "", "i128"} {
		if validScalar(bad) {
			t.Errorf("validScalar(%q): expected false", bad)
		}
	}
}

func TestScanFindsAnnotatedMethods(t *testing.T) {
	src := `package env

//wasm:host log,i32,i32->i64
func (h *Host) Log(level int32, ptr int32) int64 { return 0 }

// Unrelated exits early: no directive comment.
func (h *Host) Unrelated() {}
`
	dir := t.TempDir()
	path := filepath.Join(dir, "host.go")
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	methods, pkg, err := scan(path)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if pkg != "env" {
		t.Errorf("package: got %q, want %q", pkg, "env")
	}
	if len(methods) != 1 {
		t.Fatalf("expected 1 annotated method, got %d", len(methods))
	}
	m := methods[0]
	if m.ImportName != "log" || m.GoName != "Log" || m.Receiver != "Host" {
		t.Errorf("unexpected method: %+v", m)
	}
	if len(m.Params) != 2 || m.Result != "i64" {
		t.Errorf("unexpected signature: %+v", m)
	}
}

func TestScanRejectsArityMismatch(t *testing.T) {
	src := `package env

//wasm:host log,i32
func (h *Host) Log(level int32, extra int32) int64 { return 0 }
`
	dir := t.TempDir()
	path := filepath.Join(dir, "host.go")
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, _, err := scan(path); err == nil {
		t.Error("expected scan to reject a directive/signature arity mismatch")
	}
}
