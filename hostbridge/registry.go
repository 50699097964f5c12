package hostbridge

import (
	"reflect"
	"sync"
	"unicode"

	liberrors "github.com/wippyai/wasm-embedded/errors"
	"github.com/wippyai/wasm-embedded/process"
)

// Host is implemented by a struct grouping related host functions. Every
// exported method except Namespace is registered as a host function,
// named by converting its PascalCase method name to kebab-case — "GetEnv"
// becomes "get-env" — matching the import name a guest module declares.
type Host interface {
	Namespace() string
}

// Registry collects one or more Hosts' methods and dispatches CallExtern
// requests to them by (namespace, name), coercing arguments from Dynamic
// to the method's declared scalar parameter types and the single scalar
// result back to Dynamic. It implements Handler itself.
type Registry struct {
	mu    sync.RWMutex
	funcs map[string]reflect.Value
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{funcs: make(map[string]reflect.Value)}
}

// Register binds every exported method of h (besides Namespace) under
// "<namespace>.<kebab-case-method>". It returns an error if any method's
// signature uses a parameter or result type other than int32, uint32,
// int64, uint64, float32, float64 — the Go types the bridge can coerce
// to and from the four Wasm scalar types.
func (r *Registry) Register(h Host) error {
	ns := h.Namespace()
	if ns == "" {
		return liberrors.InvalidInput(liberrors.PhaseHost, "namespace cannot be empty")
	}

	rv := reflect.ValueOf(h)
	rt := rv.Type()

	r.mu.Lock()
	defer r.mu.Unlock()

	for i := 0; i < rt.NumMethod(); i++ {
		method := rt.Method(i)
		if !method.IsExported() || method.Name == "Namespace" {
			continue
		}
		if err := checkSignature(method.Func.Type()); err != nil {
			return liberrors.Registration(liberrors.PhaseHost, ns, method.Name, err)
		}
		key := ns + "." + toKebabCase(method.Name)
		r.funcs[key] = rv.Method(i)
	}
	return nil
}

func checkSignature(ft reflect.Type) error {
	// in[0] is the receiver for Method.Func.Type(); skip it.
	for i := 1; i < ft.NumIn(); i++ {
		if !isScalarKind(ft.In(i).Kind()) {
			return liberrors.New(liberrors.PhaseHost, liberrors.KindTypeMismatch).
				GoType(ft.In(i).String()).
				Detail("host function parameters must be i32, i64, f32 or f64").
				Build()
		}
	}
	switch ft.NumOut() {
	case 0:
	case 1:
		if !isScalarKind(ft.Out(0).Kind()) {
			return liberrors.New(liberrors.PhaseHost, liberrors.KindTypeMismatch).
				GoType(ft.Out(0).String()).
				Detail("host function result must be i32, i64, f32 or f64").
				Build()
		}
	default:
		return liberrors.New(liberrors.PhaseHost, liberrors.KindTypeMismatch).
			Detail("host functions may return at most one scalar value").
			Build()
	}
	return nil
}

func isScalarKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int32, reflect.Int64, reflect.Uint32, reflect.Uint64, reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

// Handle looks up name (the import's "namespace.name" form) and invokes
// it, coercing args into the method's declared parameter types and
// returning the single scalar result, if any. Unhandled is called,
// and its result returned, when nothing is registered under name.
func (r *Registry) Handle(proc *process.Process, name string, args []process.Dynamic) ([]process.Dynamic, error) {
	r.mu.RLock()
	fn, ok := r.funcs[name]
	r.mu.RUnlock()
	if !ok {
		return r.Unhandled(name, args)
	}

	ft := fn.Type()
	if ft.NumIn() != len(args) {
		return nil, liberrors.New(liberrors.PhaseHost, liberrors.KindArityMismatch).
			Detail(name).
			Build()
	}

	in := make([]reflect.Value, len(args))
	for i, a := range args {
		in[i] = coerceIn(a, ft.In(i))
	}
	out := fn.Call(in)
	if len(out) == 0 {
		return nil, nil
	}
	return []process.Dynamic{coerceOut(out[0])}, nil
}

// Unhandled is the default fallback: a name with no registered host
// function yields a not-found error.
func (r *Registry) Unhandled(name string, args []process.Dynamic) ([]process.Dynamic, error) {
	return nil, liberrors.NotFound(liberrors.PhaseHost, "host function", name)
}

func coerceIn(v process.Dynamic, t reflect.Type) reflect.Value {
	switch t.Kind() {
	case reflect.Int32:
		return reflect.ValueOf(v.AsI32())
	case reflect.Uint32:
		return reflect.ValueOf(v.AsU32())
	case reflect.Int64:
		return reflect.ValueOf(v.AsI64())
	case reflect.Uint64:
		return reflect.ValueOf(v.AsU64())
	case reflect.Float32:
		return reflect.ValueOf(v.AsF32())
	default:
		return reflect.ValueOf(v.AsF64())
	}
}

func coerceOut(v reflect.Value) process.Dynamic {
	switch v.Kind() {
	case reflect.Int32:
		return process.FromI32(int32(v.Int()))
	case reflect.Uint32:
		return process.FromI32(int32(uint32(v.Uint())))
	case reflect.Int64:
		return process.FromI64(v.Int())
	case reflect.Uint64:
		return process.FromI64(int64(v.Uint()))
	case reflect.Float32:
		return process.FromF32(float32(v.Float()))
	default:
		return process.FromF64(v.Float())
	}
}

// toKebabCase converts a PascalCase method name to kebab-case, treating
// runs of uppercase letters as a single acronym ("GetHTTPCode" ->
// "get-http-code").
func toKebabCase(s string) string {
	if len(s) == 0 {
		return ""
	}
	runes := []rune(s)
	var out []rune
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if unicode.IsUpper(r) {
			end := i + 1
			for end < len(runes) && unicode.IsUpper(runes[end]) {
				end++
			}
			if end > i+1 && end < len(runes) && unicode.IsLower(runes[end]) {
				end--
			}
			if i > 0 {
				out = append(out, '-')
			}
			for j := i; j < end; j++ {
				out = append(out, unicode.ToLower(runes[j]))
			}
			i = end - 1
		} else {
			out = append(out, r)
		}
	}
	return string(out)
}
