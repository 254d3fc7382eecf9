package params

import "github.com/nanojs/bind/convert"

// Param is the per-position extraction capability: each parameter shape
// declares how many arguments it needs and knows how to populate itself
// from an accessor. Implementations dispatch by static type, not by a
// runtime tag.
type Param interface {
	// ParamRequirement returns the requirement this position contributes
	// to the signature's aggregate.
	ParamRequirement() Requirement

	// FromParam populates the receiver from the accessor, consuming as
	// many arguments as the shape's policy dictates.
	FromParam(acc *Accessor) error
}

// Ptr constrains a position type to its pointer-receiver Param
// implementation, for generic signature composition.
type Ptr[T any] interface {
	*T
	Param
}

// Arg is a plain required position: it consumes exactly one argument and
// converts it into V.
type Arg[T any] struct {
	V T
}

func (p *Arg[T]) ParamRequirement() Requirement {
	return Single()
}

func (p *Arg[T]) FromParam(acc *Accessor) error {
	v := acc.Next()
	defer v.Free()
	return convert.Decode(acc.Context(), v, &p.V)
}

// Opt is an optional position: it consumes one argument only if one is
// available. Ok reports whether a value was present.
type Opt[T any] struct {
	V  T
	Ok bool
}

func (p *Opt[T]) ParamRequirement() Requirement {
	return Optional()
}

func (p *Opt[T]) FromParam(acc *Accessor) error {
	if acc.IsExhausted() {
		p.Ok = false
		return nil
	}
	v := acc.Next()
	defer v.Free()
	if err := convert.Decode(acc.Context(), v, &p.V); err != nil {
		return err
	}
	p.Ok = true
	return nil
}

// This binds the receiver value of the call: the value the function was
// invoked on. It reads the snapshot's receiver slot and never advances the
// offset, so a signature can bind the receiver while consuming positional
// arguments independently.
//
// This and Callee are distinct slots: a method invoked as `obj.foo()` sees
// obj here and foo in Callee.
type This[T any] struct {
	V T
}

func (p *This[T]) ParamRequirement() Requirement {
	return Any()
}

func (p *This[T]) FromParam(acc *Accessor) error {
	v := acc.This()
	defer v.Free()
	return convert.Decode(acc.Context(), v, &p.V)
}

// Callee binds the call-target value: the function value itself being
// invoked. It reads the snapshot's call-target slot and never advances the
// offset.
type Callee[T any] struct {
	V T
}

func (p *Callee[T]) ParamRequirement() Requirement {
	return Any()
}

func (p *Callee[T]) FromParam(acc *Accessor) error {
	v := acc.Callee()
	defer v.Free()
	return convert.Decode(acc.Context(), v, &p.V)
}

// Rest collects every remaining argument, in order, into V. It stops at the
// first conversion failure and propagates it.
type Rest[T any] struct {
	V []T
}

func (p *Rest[T]) ParamRequirement() Requirement {
	return Any()
}

func (p *Rest[T]) FromParam(acc *Accessor) error {
	p.V = make([]T, 0, acc.Remaining())
	for !acc.IsExhausted() {
		v := acc.Next()
		var elem T
		err := convert.Decode(acc.Context(), v, &elem)
		v.Free()
		if err != nil {
			return err
		}
		p.V = append(p.V, elem)
	}
	return nil
}

// Group is an ordered list of nested positions, for flattened signatures.
type Group interface {
	// Positions returns the nested positions in declaration order.
	Positions() []Param
}

// Flat delegates its requirement and extraction to a nested group, run
// against the same accessor so consumption shares one offset.
type Flat[T any, PT interface {
	*T
	Group
}] struct {
	V T
}

func (p *Flat[T, PT]) ParamRequirement() Requirement {
	return RequirementOf(PT(&p.V).Positions()...)
}

func (p *Flat[T, PT]) FromParam(acc *Accessor) error {
	return Extract(acc, PT(&p.V).Positions()...)
}

// Exhaustive is a marker position: it consumes no arguments and yields no
// value, but tightens the aggregate requirement so that surplus arguments
// are rejected.
type Exhaustive struct{}

func (p *Exhaustive) ParamRequirement() Requirement {
	return ExhaustiveReq()
}

func (p *Exhaustive) FromParam(_ *Accessor) error {
	return nil
}
