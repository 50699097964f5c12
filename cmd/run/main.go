package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/wippyai/wasm-embedded/hostbridge"
	"github.com/wippyai/wasm-embedded/process"
	"github.com/wippyai/wasm-embedded/wasm"
)

func main() {
	var (
		wasmFile    = flag.String("wasm", "", "Path to a wasm binary module")
		funcName    = flag.String("func", "", "Exported function to call")
		list        = flag.Bool("list", false, "List exported functions and exit")
		interactive = flag.Bool("i", false, "Single-step interactively with a TUI")
		args        = flag.String("args", "", "Comma-separated i32 arguments")
	)
	flag.Parse()

	if *wasmFile == "" {
		fmt.Fprintln(os.Stderr, "Usage: run -wasm <file.wasm> [-func name] [-args 1,2,3]")
		fmt.Fprintln(os.Stderr, "       run -wasm <file.wasm> -list")
		fmt.Fprintln(os.Stderr, "       run -wasm <file.wasm> -i  (interactive single-step mode)")
		os.Exit(1)
	}

	data, err := os.ReadFile(*wasmFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: read file: %v\n", err)
		os.Exit(1)
	}

	module, perr := wasm.Parse(data)
	if perr != nil {
		fmt.Fprintf(os.Stderr, "Error: decode: %v\n", perr)
		os.Exit(1)
	}

	if *list {
		listExports(module)
		return
	}

	if *interactive {
		if err := runInteractive(*wasmFile, module); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if *funcName == "" {
		*funcName = firstFuncExport(module)
		if *funcName == "" {
			fmt.Println("No function specified and no exported function found.")
			return
		}
	}

	proc, execErr := process.New(module, *funcName)
	if execErr != nil {
		fmt.Fprintf(os.Stderr, "Error: spawn %s: %v\n", *funcName, execErr)
		os.Exit(1)
	}
	for _, v := range parseArgs(*args) {
		proc.Push(v)
	}

	fmt.Printf("Calling %s...\n", *funcName)
	returns, err := hostbridge.Drive(proc, newDemoHost())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Returned: %v\n", returns)
}

func listExports(module *wasm.Module) {
	fmt.Println("Exports:")
	for _, e := range module.Exports {
		fmt.Printf("  %s (%s, index %d)\n", e.Name, exportKindName(e.Kind), e.Index)
	}
}

func exportKindName(kind byte) string {
	switch kind {
	case wasm.KindFunc:
		return "func"
	case wasm.KindTable:
		return "table"
	case wasm.KindMemory:
		return "memory"
	case wasm.KindGlobal:
		return "global"
	default:
		return fmt.Sprintf("kind %d", kind)
	}
}

func firstFuncExport(module *wasm.Module) string {
	for _, e := range module.Exports {
		if e.Kind == wasm.KindFunc {
			return e.Name
		}
	}
	return ""
}

func parseArgs(s string) []process.Dynamic {
	if s == "" {
		return nil
	}
	var out []process.Dynamic
	var v int32
	neg, started := false, false
	for _, r := range s + "," {
		switch {
		case r == '-' && !started:
			neg = true
		case r >= '0' && r <= '9':
			v = v*10 + int32(r-'0')
			started = true
		case r == ',':
			if started {
				if neg {
					v = -v
				}
				out = append(out, process.FromI32(v))
			}
			v, neg, started = 0, false, false
		}
	}
	return out
}
