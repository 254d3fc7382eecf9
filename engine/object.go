package engine

import "unsafe"

// NativeFn is the class/native-function calling convention. The engine passes
// the call-target slot, the receiver slot, and the raw argument array as an
// argc/argv pair. argv points at argc contiguous RawValue slots owned by the
// engine for the duration of the call only.
//
// The returned RawValue transfers one reference to the caller.
type NativeFn func(ctx *Context, fnRef, thisRef RawValue, argc int32, argv unsafe.Pointer, flags int32) (RawValue, error)

// PlainFn is the plain-function calling convention. It omits the call-target
// slot (the target is implicitly undefined) and the flags word.
type PlainFn func(ctx *Context, thisRef RawValue, argc int32, argv unsafe.Pointer) (RawValue, error)

// Object is the heap representation of a script object. Property slots and
// array elements hold their own references to heap values.
type Object struct {
	props     map[string]RawValue
	elems     []RawValue
	className string
	native    any
	name      string
	call      NativeFn
	plainCall PlainFn
}

func newObject() *Object {
	return &Object{props: make(map[string]RawValue)}
}

// ClassName returns the name of the class the object was constructed from,
// or "" for plain objects.
func (o *Object) ClassName() string {
	return o.className
}

// Native returns the opaque host payload attached to the object, if any.
func (o *Object) Native() any {
	return o.native
}

// SetNative attaches an opaque host payload to the object.
func (o *Object) SetNative(v any) {
	o.native = v
}

// FuncName returns the function object's name, or "" for non-functions.
func (o *Object) FuncName() string {
	return o.name
}

// IsArray reports whether the object carries array element storage.
func (o *Object) IsArray() bool {
	return o.elems != nil
}

// IsCallable reports whether the object can be invoked.
func (o *Object) IsCallable() bool {
	return o.call != nil || o.plainCall != nil
}
