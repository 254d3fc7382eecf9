// Package bind provides typed argument marshalling between Go and an
// embedded script engine.
//
// Host functions declare their signatures with parameter shapes; calls
// coming from the engine are validated against the signature's aggregate
// argument requirement, extracted position by position, and converted into
// Go values before the handler runs. Results and handler errors travel back
// the same way.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct
// responsibilities:
//
//	bind/            Typed trampolines (Func0..Func7) and the reflection registry
//	├── params/      Call snapshots, argument requirements and parameter shapes
//	├── convert/     Value conversion between Go and script, single and multi
//	├── engine/      Reference-counted value model and calling conventions
//	└── errors/      Structured error types for debugging
//
// # Quick Start
//
// Declare a host function with shapes and attach it to a context:
//
//	r := bind.NewRegistry()
//	r.RegisterFunc("math", "add", bind.Func2(
//	    func(ctx *engine.Context, a params.Arg[int64], b params.Opt[int64]) (int64, error) {
//	        if !b.Ok {
//	            return a.V, nil
//	        }
//	        return a.V + b.V, nil
//	    }))
//
//	ctx := engine.NewContext()
//	defer ctx.Close()
//	if err := r.Attach(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
// Two styles are supported. The typed family Func0 through Func7 takes
// handlers whose parameters are shape types from the params package; the
// generated trampoline validates, extracts and encodes without reflection.
// The Registry also takes plain Go functions, modules and classes and
// adapts them by reflection: each parameter is decoded from the
// corresponding argument, a variadic tail collects the rest, and results of
// (), (error), (R) or (R, error) map onto the engine's return convention.
package bind
