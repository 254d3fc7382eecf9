package main

import (
	"fmt"
	"strings"

	"github.com/nanojs/bind"
	"github.com/nanojs/bind/engine"
	"github.com/nanojs/bind/params"
)

// funcInfo describes one callable entry for listings and the TUI. The
// registry itself is type-erased, so the demo catalog carries the signature
// metadata alongside each registration.
type funcInfo struct {
	namespace  string
	name       string
	resultType string
	params     []paramInfo
}

type paramInfo struct {
	name    string
	typeStr string
}

type strModule struct{}

func (strModule) Name() string { return "str" }

func (strModule) Upper(s string) string { return strings.ToUpper(s) }

func (strModule) Repeat(s string, n int) string { return strings.Repeat(s, n) }

func (strModule) Join(sep string, parts ...string) string { return strings.Join(parts, sep) }

type point struct {
	X, Y float64
}

// buildRegistry assembles the built-in demo surface: a reflective string
// module, typed math functions, and a small class.
func buildRegistry() (*bind.Registry, []funcInfo, error) {
	r := bind.NewRegistry()

	if err := r.RegisterModule(strModule{}); err != nil {
		return nil, nil, err
	}

	add := bind.Func2(func(_ *engine.Context, a params.Arg[float64], b params.Opt[float64]) (float64, error) {
		if !b.Ok {
			return a.V, nil
		}
		return a.V + b.V, nil
	})
	if err := r.RegisterFunc("math", "add", add); err != nil {
		return nil, nil, err
	}

	sum := bind.Func1(func(_ *engine.Context, rest params.Rest[float64]) (float64, error) {
		var total float64
		for _, v := range rest.V {
			total += v
		}
		return total, nil
	})
	if err := r.RegisterFunc("math", "sum", sum); err != nil {
		return nil, nil, err
	}

	div := bind.Func2(func(_ *engine.Context, a, b params.Arg[float64]) (float64, error) {
		if b.V == 0 {
			return 0, fmt.Errorf("division by zero")
		}
		return a.V / b.V, nil
	})
	if err := r.RegisterFunc("math", "div", div); err != nil {
		return nil, nil, err
	}

	err := r.RegisterClass("geo", &bind.Class{
		Name: "Point",
		New: func(x, y float64) *point {
			return &point{X: x, Y: y}
		},
		Methods: map[string]any{
			"x": func(p *point) float64 { return p.X },
			"y": func(p *point) float64 { return p.Y },
		},
	})
	if err != nil {
		return nil, nil, err
	}

	funcs := []funcInfo{
		{"math", "add", "float", []paramInfo{{"a", "float"}, {"b", "float?"}}},
		{"math", "div", "float", []paramInfo{{"a", "float"}, {"b", "float"}}},
		{"math", "sum", "float", []paramInfo{{"values", "float..."}}},
		{"str", "join", "string", []paramInfo{{"sep", "string"}, {"parts", "string..."}}},
		{"str", "repeat", "string", []paramInfo{{"s", "string"}, {"n", "int"}}},
		{"str", "upper", "string", []paramInfo{{"s", "string"}}},
	}
	return r, funcs, nil
}
