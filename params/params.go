package params

import (
	"unsafe"

	"github.com/nanojs/bind/engine"
	"github.com/nanojs/bind/errors"
)

// Params is an immutable snapshot of one invocation: the call-target value,
// the receiver value, and the raw argument list, bound to a context. It owns
// nothing; the argument slice borrows engine memory for the dynamic extent
// of the call and must not outlive it.
type Params struct {
	ctx     *engine.Context
	fnRef   engine.RawValue
	thisRef engine.RawValue
	args    []engine.RawValue
}

// FromRawClass builds a snapshot from the class/native-function calling
// convention. argv must point at argc contiguous RawValue slots owned by the
// engine; the raw pointer is wrapped here and does not escape.
func FromRawClass(ctx *engine.Context, fnRef, thisRef engine.RawValue, argc int32, argv unsafe.Pointer, _flags int32) Params {
	return Params{
		ctx:     ctx,
		fnRef:   fnRef,
		thisRef: thisRef,
		args:    rawArgs(argc, argv),
	}
}

// FromRawFunc builds a snapshot from the plain-function calling convention,
// which carries no call-target slot; the target is implicitly undefined.
func FromRawFunc(ctx *engine.Context, thisRef engine.RawValue, argc int32, argv unsafe.Pointer) Params {
	return Params{
		ctx:     ctx,
		fnRef:   engine.RawUndefined(),
		thisRef: thisRef,
		args:    rawArgs(argc, argv),
	}
}

func rawArgs(argc int32, argv unsafe.Pointer) []engine.RawValue {
	if argc <= 0 || argv == nil {
		return nil
	}
	return unsafe.Slice((*engine.RawValue)(argv), int(argc))
}

// CheckRequirement validates the snapshot's argument count against an
// aggregate requirement. It runs once, before any extraction. Non-exhaustive
// signatures are lenient: surplus arguments are simply ignored.
func (p *Params) CheckRequirement(req Requirement) error {
	n := uint(len(p.args))
	if n < req.min {
		return errors.MissingArgs(int(req.min), len(p.args))
	}
	if req.exhaustive && n > req.max {
		return errors.TooManyArgs(int(req.max), len(p.args))
	}
	return nil
}

// Context returns the context associated with the call.
func (p *Params) Context() *engine.Context {
	return p.ctx
}

// Callee returns the value being invoked, i.e. in `obj.foo()` the `foo`
// value. The caller owns the returned reference.
func (p *Params) Callee() engine.Value {
	return p.ctx.ValueFromRaw(p.fnRef)
}

// This returns the value the function was invoked on, i.e. in `obj.foo()`
// the `obj` value. The caller owns the returned reference.
func (p *Params) This() engine.Value {
	return p.ctx.ValueFromRaw(p.thisRef)
}

// Arg returns the argument at the given index, for ad-hoc access outside
// the cursor discipline.
func (p *Params) Arg(index int) (engine.Value, bool) {
	if index < 0 || index >= len(p.args) {
		return p.ctx.Undefined(), false
	}
	return p.ctx.ValueFromRaw(p.args[index]), true
}

// Len returns the number of arguments.
func (p *Params) Len() int {
	return len(p.args)
}

// IsEmpty reports whether there are no arguments.
func (p *Params) IsEmpty() bool {
	return len(p.args) == 0
}

// Access turns the snapshot into a single-pass accessor for extracting the
// arguments in order. The snapshot moves into the accessor; the caller must
// not use it afterwards.
func (p Params) Access() Accessor {
	return Accessor{params: p}
}

// Accessor is a stateful single-pass reader over a snapshot's arguments.
// The offset only increases, and extraction order is the contract: each
// consuming position takes the next argument in left-to-right declaration
// order. Not safe for concurrent use.
type Accessor struct {
	params Params
	offset int
}

// Context returns the context associated with the call.
func (a *Accessor) Context() *engine.Context {
	return a.params.Context()
}

// This returns the receiver value of the call. It does not advance the
// offset.
func (a *Accessor) This() engine.Value {
	return a.params.This()
}

// Callee returns the call-target value. It does not advance the offset.
func (a *Accessor) Callee() engine.Value {
	return a.params.Callee()
}

// Next returns the next argument as an owned value and advances the offset.
//
// Next panics when called past the end of the argument list. That cannot
// happen in correct use: the aggregate requirement's minimum is validated
// before extraction, so it indicates a requirement that does not match the
// extraction it was computed for.
func (a *Accessor) Next() engine.Value {
	if a.offset >= len(a.params.args) {
		panic("params: Next called past the end of the argument list")
	}
	raw := a.params.args[a.offset]
	a.offset++
	return a.params.ctx.ValueFromRaw(raw)
}

// Remaining returns the number of arguments not yet consumed.
func (a *Accessor) Remaining() int {
	return len(a.params.args) - a.offset
}

// IsExhausted reports whether every argument has been consumed.
func (a *Accessor) IsExhausted() bool {
	return a.Remaining() == 0
}
