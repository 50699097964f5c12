// Command gen is a build-time code generator for host-bridge dispatchers.
// It scans a Go source file for methods annotated with a "wasm:" comment
// directive of the form:
//
//	//wasm:host name,i32,i32->i64
//	func (h *Env) Log(level int32, msgPtr int32) int64 { ... }
//
// and emits a "<name>_gen.go" file defining a Handle method on the
// receiver type that dispatches by import name, coercing process.Dynamic
// arguments to the declared parameter types. A parameter or result type
// other than i32/i64/f32/f64 is a generator-time error: the bridge only
// ever carries the four Wasm scalar value types.
package main

import (
	"flag"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strings"
	"text/template"
)

type hostMethod struct {
	Receiver   string
	GoName     string
	ImportName string
	Params     []string // "i32", "i64", "f32", "f64"
	Result     string   // "", "i32", "i64", "f32", "f64"
}

func main() {
	src := flag.String("src", "", "Go source file to scan for //wasm:host directives")
	pkg := flag.String("pkg", "", "package name for the generated file (defaults to the source file's package)")
	flag.Parse()

	if *src == "" {
		fmt.Fprintln(os.Stderr, "gen: -src is required")
		os.Exit(1)
	}

	methods, pkgName, err := scan(*src)
	if err != nil {
		fmt.Fprintln(os.Stderr, "gen:", err)
		os.Exit(1)
	}
	if *pkg != "" {
		pkgName = *pkg
	}
	if len(methods) == 0 {
		fmt.Fprintln(os.Stderr, "gen: no //wasm:host methods found in", *src)
		os.Exit(1)
	}

	byReceiver := map[string][]hostMethod{}
	for _, m := range methods {
		byReceiver[m.Receiver] = append(byReceiver[m.Receiver], m)
	}

	out := strings.TrimSuffix(*src, filepath.Ext(*src)) + "_gen.go"
	f, err := os.Create(out)
	if err != nil {
		fmt.Fprintln(os.Stderr, "gen:", err)
		os.Exit(1)
	}
	defer f.Close()

	data := struct {
		Package    string
		ByReceiver map[string][]hostMethod
	}{Package: pkgName, ByReceiver: byReceiver}

	if err := dispatcherTemplate.Execute(f, data); err != nil {
		fmt.Fprintln(os.Stderr, "gen:", err)
		os.Exit(1)
	}
}

// scan parses src and collects every method preceded by a //wasm:host
// directive comment, validating that the directive's declared scalar
// types agree with the method's actual Go signature.
func scan(src string) ([]hostMethod, string, error) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, src, nil, parser.ParseComments)
	if err != nil {
		return nil, "", err
	}

	var methods []hostMethod
	for _, decl := range file.Decls {
		fn, ok := decl.(*ast.FuncDecl)
		if !ok || fn.Recv == nil || fn.Doc == nil {
			continue
		}
		directive := findDirective(fn.Doc)
		if directive == "" {
			continue
		}
		importName, params, result, err := parseDirective(directive)
		if err != nil {
			return nil, "", fmt.Errorf("%s: %w", fn.Name.Name, err)
		}
		recv, err := receiverTypeName(fn)
		if err != nil {
			return nil, "", err
		}
		if err := checkSignature(fn, params, result); err != nil {
			return nil, "", fmt.Errorf("%s: %w", fn.Name.Name, err)
		}
		methods = append(methods, hostMethod{
			Receiver:   recv,
			GoName:     fn.Name.Name,
			ImportName: importName,
			Params:     params,
			Result:     result,
		})
	}
	return methods, file.Name.Name, nil
}

func findDirective(doc *ast.CommentGroup) string {
	for _, c := range doc.List {
		if strings.HasPrefix(c.Text, "//wasm:host ") {
			return strings.TrimPrefix(c.Text, "//wasm:host ")
		}
	}
	return ""
}

// parseDirective parses "name,i32,i32->i64" or "name" (no params, no
// result) into its parts.
func parseDirective(s string) (name string, params []string, result string, err error) {
	s = strings.TrimSpace(s)
	sig := ""
	if i := strings.IndexByte(s, ','); i >= 0 {
		name, sig = s[:i], s[i+1:]
	} else {
		name = s
	}
	if sig == "" {
		return name, nil, "", nil
	}
	lhs, rhs, hasResult := strings.Cut(sig, "->")
	for _, p := range strings.Split(lhs, ",") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if !validScalar(p) {
			return "", nil, "", fmt.Errorf("unsupported parameter type %q", p)
		}
		params = append(params, p)
	}
	if hasResult {
		rhs = strings.TrimSpace(rhs)
		if !validScalar(rhs) {
			return "", nil, "", fmt.Errorf("unsupported result type %q", rhs)
		}
		result = rhs
	}
	return name, params, result, nil
}

func validScalar(s string) bool {
	switch s {
	case "i32", "i64", "f32", "f64":
		return true
	}
	return false
}

func receiverTypeName(fn *ast.FuncDecl) (string, error) {
	expr := fn.Recv.List[0].Type
	if star, ok := expr.(*ast.StarExpr); ok {
		expr = star.X
	}
	ident, ok := expr.(*ast.Ident)
	if !ok {
		return "", fmt.Errorf("unsupported receiver expression for %s", fn.Name.Name)
	}
	return ident.Name, nil
}

// checkSignature verifies the method's Go parameter/result types match
// the directive's declared scalar shape in count; Go-side type names are
// not cross-checked here (the generated coercions make the mismatch a
// compile error instead).
func checkSignature(fn *ast.FuncDecl, params []string, result string) error {
	gotParams := 0
	if fn.Type.Params != nil {
		for _, field := range fn.Type.Params.List {
			n := len(field.Names)
			if n == 0 {
				n = 1
			}
			gotParams += n
		}
	}
	if gotParams != len(params) {
		return fmt.Errorf("directive declares %d parameters, method has %d", len(params), gotParams)
	}
	gotResults := 0
	if fn.Type.Results != nil {
		gotResults = len(fn.Type.Results.List)
	}
	wantResults := 0
	if result != "" {
		wantResults = 1
	}
	if gotResults != wantResults {
		return fmt.Errorf("directive declares %d results, method has %d", wantResults, gotResults)
	}
	return nil
}

var dispatcherTemplate = template.Must(template.New("gen").Funcs(template.FuncMap{
	"coerceIn": func(t string, i int) string {
		switch t {
		case "i32":
			return fmt.Sprintf("args[%d].AsI32()", i)
		case "i64":
			return fmt.Sprintf("args[%d].AsI64()", i)
		case "f32":
			return fmt.Sprintf("args[%d].AsF32()", i)
		default:
			return fmt.Sprintf("args[%d].AsF64()", i)
		}
	},
	"coerceOut": func(t string) string {
		switch t {
		case "i32":
			return "process.FromI32"
		case "i64":
			return "process.FromI64"
		case "f32":
			return "process.FromF32"
		default:
			return "process.FromF64"
		}
	},
}).Parse(`// Code generated by hostbridge/gen from //wasm:host directives. DO NOT EDIT.

package {{.Package}}

import "github.com/wippyai/wasm-embedded/process"

{{range $recv, $methods := .ByReceiver}}
// Handle dispatches a CallExtern by import name to the matching
// //wasm:host-annotated method on {{$recv}}.
func (h *{{$recv}}) Handle(proc *process.Process, name string, args []process.Dynamic) ([]process.Dynamic, error) {
	switch name {
	{{range $methods}}case {{printf "%q" .ImportName}}:
		{{if .Result}}result := {{else}}{{end}}h.{{.GoName}}({{range $i, $p := .Params}}{{if $i}}, {{end}}{{coerceIn $p $i}}{{end}})
		{{if .Result}}return []process.Dynamic{ {{coerceOut .Result}}(result)}, nil{{else}}return nil, nil{{end}}
	{{end}}}
	return h.Unhandled(name, args)
}
{{end}}
`))
