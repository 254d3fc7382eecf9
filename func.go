package bind

import (
	"unsafe"

	"github.com/nanojs/bind/convert"
	"github.com/nanojs/bind/engine"
	"github.com/nanojs/bind/errors"
	"github.com/nanojs/bind/params"
)

// Void is the result type of handlers that produce no script value. The
// trampoline returns undefined instead of encoding it.
type Void struct{}

// finish encodes a handler result into an engine slot. Handler errors are
// wrapped as thrown so the engine surfaces them as script-visible throws.
func finish(ctx *engine.Context, res any, err error) (engine.RawValue, error) {
	if err != nil {
		return engine.RawUndefined(), errors.Thrown(err)
	}
	if _, ok := res.(Void); ok {
		return engine.RawUndefined(), nil
	}
	v, err := convert.Encode(ctx, res)
	if err != nil {
		return engine.RawUndefined(), err
	}
	return v.IntoRaw(), nil
}

// Func0 builds a native function from a handler taking no positions.
func Func0[R any](fn func(*engine.Context) (R, error)) engine.NativeFn {
	req := params.RequirementOf()
	return func(ctx *engine.Context, fnRef, thisRef engine.RawValue, argc int32, argv unsafe.Pointer, flags int32) (engine.RawValue, error) {
		p := params.FromRawClass(ctx, fnRef, thisRef, argc, argv, flags)
		if err := p.CheckRequirement(req); err != nil {
			return engine.RawUndefined(), err
		}
		res, err := fn(ctx)
		return finish(ctx, res, err)
	}
}

// Func1 builds a native function from a handler with one position. The
// position types are parameter shapes (Arg, Opt, This, Callee, Rest, Flat,
// Exhaustive); their aggregate requirement is computed once, at construction.
func Func1[A any, PA params.Ptr[A], R any](fn func(*engine.Context, A) (R, error)) engine.NativeFn {
	var za A
	req := params.RequirementOf(PA(&za))
	return func(ctx *engine.Context, fnRef, thisRef engine.RawValue, argc int32, argv unsafe.Pointer, flags int32) (engine.RawValue, error) {
		p := params.FromRawClass(ctx, fnRef, thisRef, argc, argv, flags)
		if err := p.CheckRequirement(req); err != nil {
			return engine.RawUndefined(), err
		}
		acc := p.Access()
		var a A
		if err := params.Extract(&acc, PA(&a)); err != nil {
			return engine.RawUndefined(), err
		}
		res, err := fn(ctx, a)
		return finish(ctx, res, err)
	}
}

// Func2 builds a native function from a handler with two positions.
func Func2[A, B any, PA params.Ptr[A], PB params.Ptr[B], R any](fn func(*engine.Context, A, B) (R, error)) engine.NativeFn {
	var za A
	var zb B
	req := params.RequirementOf(PA(&za), PB(&zb))
	return func(ctx *engine.Context, fnRef, thisRef engine.RawValue, argc int32, argv unsafe.Pointer, flags int32) (engine.RawValue, error) {
		p := params.FromRawClass(ctx, fnRef, thisRef, argc, argv, flags)
		if err := p.CheckRequirement(req); err != nil {
			return engine.RawUndefined(), err
		}
		acc := p.Access()
		var a A
		var b B
		if err := params.Extract(&acc, PA(&a), PB(&b)); err != nil {
			return engine.RawUndefined(), err
		}
		res, err := fn(ctx, a, b)
		return finish(ctx, res, err)
	}
}

// Func3 builds a native function from a handler with three positions.
func Func3[A, B, C any, PA params.Ptr[A], PB params.Ptr[B], PC params.Ptr[C], R any](fn func(*engine.Context, A, B, C) (R, error)) engine.NativeFn {
	var za A
	var zb B
	var zc C
	req := params.RequirementOf(PA(&za), PB(&zb), PC(&zc))
	return func(ctx *engine.Context, fnRef, thisRef engine.RawValue, argc int32, argv unsafe.Pointer, flags int32) (engine.RawValue, error) {
		p := params.FromRawClass(ctx, fnRef, thisRef, argc, argv, flags)
		if err := p.CheckRequirement(req); err != nil {
			return engine.RawUndefined(), err
		}
		acc := p.Access()
		var a A
		var b B
		var c C
		if err := params.Extract(&acc, PA(&a), PB(&b), PC(&c)); err != nil {
			return engine.RawUndefined(), err
		}
		res, err := fn(ctx, a, b, c)
		return finish(ctx, res, err)
	}
}

// Func4 builds a native function from a handler with four positions.
func Func4[A, B, C, D any, PA params.Ptr[A], PB params.Ptr[B], PC params.Ptr[C], PD params.Ptr[D], R any](fn func(*engine.Context, A, B, C, D) (R, error)) engine.NativeFn {
	var za A
	var zb B
	var zc C
	var zd D
	req := params.RequirementOf(PA(&za), PB(&zb), PC(&zc), PD(&zd))
	return func(ctx *engine.Context, fnRef, thisRef engine.RawValue, argc int32, argv unsafe.Pointer, flags int32) (engine.RawValue, error) {
		p := params.FromRawClass(ctx, fnRef, thisRef, argc, argv, flags)
		if err := p.CheckRequirement(req); err != nil {
			return engine.RawUndefined(), err
		}
		acc := p.Access()
		var a A
		var b B
		var c C
		var d D
		if err := params.Extract(&acc, PA(&a), PB(&b), PC(&c), PD(&d)); err != nil {
			return engine.RawUndefined(), err
		}
		res, err := fn(ctx, a, b, c, d)
		return finish(ctx, res, err)
	}
}

// Func5 builds a native function from a handler with five positions.
func Func5[A, B, C, D, E any, PA params.Ptr[A], PB params.Ptr[B], PC params.Ptr[C], PD params.Ptr[D], PE params.Ptr[E], R any](fn func(*engine.Context, A, B, C, D, E) (R, error)) engine.NativeFn {
	var za A
	var zb B
	var zc C
	var zd D
	var ze E
	req := params.RequirementOf(PA(&za), PB(&zb), PC(&zc), PD(&zd), PE(&ze))
	return func(ctx *engine.Context, fnRef, thisRef engine.RawValue, argc int32, argv unsafe.Pointer, flags int32) (engine.RawValue, error) {
		p := params.FromRawClass(ctx, fnRef, thisRef, argc, argv, flags)
		if err := p.CheckRequirement(req); err != nil {
			return engine.RawUndefined(), err
		}
		acc := p.Access()
		var a A
		var b B
		var c C
		var d D
		var e E
		if err := params.Extract(&acc, PA(&a), PB(&b), PC(&c), PD(&d), PE(&e)); err != nil {
			return engine.RawUndefined(), err
		}
		res, err := fn(ctx, a, b, c, d, e)
		return finish(ctx, res, err)
	}
}

// Func6 builds a native function from a handler with six positions.
func Func6[A, B, C, D, E, F any, PA params.Ptr[A], PB params.Ptr[B], PC params.Ptr[C], PD params.Ptr[D], PE params.Ptr[E], PF params.Ptr[F], R any](fn func(*engine.Context, A, B, C, D, E, F) (R, error)) engine.NativeFn {
	var za A
	var zb B
	var zc C
	var zd D
	var ze E
	var zf F
	req := params.RequirementOf(PA(&za), PB(&zb), PC(&zc), PD(&zd), PE(&ze), PF(&zf))
	return func(ctx *engine.Context, fnRef, thisRef engine.RawValue, argc int32, argv unsafe.Pointer, flags int32) (engine.RawValue, error) {
		p := params.FromRawClass(ctx, fnRef, thisRef, argc, argv, flags)
		if err := p.CheckRequirement(req); err != nil {
			return engine.RawUndefined(), err
		}
		acc := p.Access()
		var a A
		var b B
		var c C
		var d D
		var e E
		var f F
		if err := params.Extract(&acc, PA(&a), PB(&b), PC(&c), PD(&d), PE(&e), PF(&f)); err != nil {
			return engine.RawUndefined(), err
		}
		res, err := fn(ctx, a, b, c, d, e, f)
		return finish(ctx, res, err)
	}
}

// Func7 builds a native function from a handler with seven positions.
func Func7[A, B, C, D, E, F, G any, PA params.Ptr[A], PB params.Ptr[B], PC params.Ptr[C], PD params.Ptr[D], PE params.Ptr[E], PF params.Ptr[F], PG params.Ptr[G], R any](fn func(*engine.Context, A, B, C, D, E, F, G) (R, error)) engine.NativeFn {
	var za A
	var zb B
	var zc C
	var zd D
	var ze E
	var zf F
	var zg G
	req := params.RequirementOf(PA(&za), PB(&zb), PC(&zc), PD(&zd), PE(&ze), PF(&zf), PG(&zg))
	return func(ctx *engine.Context, fnRef, thisRef engine.RawValue, argc int32, argv unsafe.Pointer, flags int32) (engine.RawValue, error) {
		p := params.FromRawClass(ctx, fnRef, thisRef, argc, argv, flags)
		if err := p.CheckRequirement(req); err != nil {
			return engine.RawUndefined(), err
		}
		acc := p.Access()
		var a A
		var b B
		var c C
		var d D
		var e E
		var f F
		var g G
		if err := params.Extract(&acc, PA(&a), PB(&b), PC(&c), PD(&d), PE(&e), PF(&f), PG(&g)); err != nil {
			return engine.RawUndefined(), err
		}
		res, err := fn(ctx, a, b, c, d, e, f, g)
		return finish(ctx, res, err)
	}
}
