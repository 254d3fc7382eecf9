package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/nanojs/bind/engine"
)

func main() {
	var (
		funcName    = flag.String("func", "", "Function to call, as namespace.name")
		argsStr     = flag.String("args", "", "Arguments (comma-separated)")
		list        = flag.Bool("list", false, "List registered symbols and exit")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
	)
	flag.Parse()

	if *interactive {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			fmt.Fprintln(os.Stderr, "Error: interactive mode requires a terminal")
			os.Exit(1)
		}
		if err := runInteractive(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := run(*funcName, *argsStr, *list); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(funcName, argsStr string, listOnly bool) error {
	registry, funcs, err := buildRegistry()
	if err != nil {
		return fmt.Errorf("build registry: %w", err)
	}

	if listOnly || funcName == "" {
		fmt.Println("Registered symbols:")
		for _, sym := range registry.Symbols() {
			fmt.Printf("  [%s] %s.%s\n", sym.Kind, sym.Namespace, sym.Name)
		}
		fmt.Println("\nCallable functions:")
		for _, f := range funcs {
			fmt.Printf("  %s\n", formatSignature(f))
		}
		if funcName == "" && !listOnly {
			fmt.Println("\nUse -func namespace.name to call a function, or -i for interactive mode.")
		}
		return nil
	}

	ns, name, ok := strings.Cut(funcName, ".")
	if !ok {
		return fmt.Errorf("function must be namespace.name, got %q", funcName)
	}

	var info *funcInfo
	for i := range funcs {
		if funcs[i].namespace == ns && funcs[i].name == name {
			info = &funcs[i]
			break
		}
	}
	if info == nil {
		return fmt.Errorf("unknown function %q", funcName)
	}

	native, ok := registry.Lookup(ns, name)
	if !ok {
		return fmt.Errorf("function %q not registered", funcName)
	}

	ctx := engine.NewContext()
	defer ctx.Close()

	var raw []string
	if argsStr != "" {
		raw = strings.Split(argsStr, ",")
	}
	args, err := convertArgs(ctx, raw, info.params)
	if err != nil {
		return err
	}

	fn := ctx.NewFunction(name, native)
	defer fn.Free()

	fmt.Printf("Calling %s(%s)...\n", funcName, argsStr)
	out, err := ctx.Invoke(fn, ctx.Undefined(), args...)
	if err != nil {
		return fmt.Errorf("call %s: %w", funcName, err)
	}
	defer out.Free()

	fmt.Printf("Result: %s\n", renderValue(out))
	return nil
}

func formatSignature(f funcInfo) string {
	var parts []string
	for _, p := range f.params {
		parts = append(parts, p.name+": "+p.typeStr)
	}
	result := ""
	if f.resultType != "" {
		result = " -> " + f.resultType
	}
	return f.namespace + "." + f.name + "(" + strings.Join(parts, ", ") + ")" + result
}
