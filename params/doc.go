// Package params implements the parameter extraction protocol: matching one
// invocation from the embedded engine against a declared host signature,
// validating its arity, and pulling typed arguments out one position at a
// time.
//
// # Pipeline
//
// A call arrives as raw ABI data and flows through three stages:
//
//	Params     - immutable snapshot of the call: receiver, call-target,
//	             borrowed raw argument list (FromRawClass / FromRawFunc)
//	Accessor   - single-pass cursor handing out arguments in order
//	Param      - per-shape extraction: Arg, Opt, This, Callee, Rest,
//	             Flat, Exhaustive
//
// The aggregate Requirement of a signature is the Combine of each
// position's requirement. It is checked once against the snapshot, before
// any extraction:
//
//	p := params.FromRawClass(ctx, fnRef, thisRef, argc, argv, flags)
//	if err := p.CheckRequirement(req); err != nil {
//		return err
//	}
//	acc := p.Access()
//	var a params.Arg[int]
//	var r params.Rest[string]
//	if err := params.Extract(&acc, &a, &r); err != nil {
//		return err
//	}
//
// # Consumption Discipline
//
// Arg consumes exactly one argument; Opt consumes one only when available;
// Rest drains whatever remains; This, Callee and Exhaustive consume none.
// Because the minimum was validated up front, unconditional consumers never
// run out of arguments: the Accessor panics on over-advance, which marks a
// requirement/extraction mismatch in generated glue rather than bad input.
//
// Conversion failures abort extraction immediately; no partial results are
// kept. Non-exhaustive signatures ignore surplus arguments; adding the
// Exhaustive marker makes surplus an error.
package params
