package engine

import "github.com/nanojs/bind/errors"

// Value is an owned reference to an engine value. Scalars carry no heap
// reference; strings, objects and functions hold one reference on the
// context heap until Free is called.
type Value struct {
	ctx *Context
	raw RawValue
}

// Context returns the owning context.
func (v Value) Context() *Context {
	return v.ctx
}

// Raw returns the underlying slot without transferring ownership.
func (v Value) Raw() RawValue {
	return v.raw
}

// IntoRaw returns the underlying slot and transfers this value's reference
// to the caller. The Value must not be used afterwards.
func (v Value) IntoRaw() RawValue {
	return v.raw
}

// Tag returns the runtime type tag.
func (v Value) Tag() Tag {
	return v.raw.Tag
}

// TypeName returns the script-visible type name.
func (v Value) TypeName() string {
	return v.raw.Tag.TypeName()
}

// Dup returns a new owned reference to the same value.
func (v Value) Dup() Value {
	v.ctx.retainRaw(v.raw)
	return v
}

// Free releases this value's reference.
func (v Value) Free() {
	v.ctx.releaseRaw(v.raw)
}

func (v Value) IsUndefined() bool { return v.raw.Tag == TagUndefined }
func (v Value) IsNull() bool      { return v.raw.Tag == TagNull }
func (v Value) IsBool() bool      { return v.raw.Tag == TagBool }
func (v Value) IsNumber() bool    { return v.raw.Tag == TagInt || v.raw.Tag == TagFloat }
func (v Value) IsString() bool    { return v.raw.Tag == TagString }
func (v Value) IsObject() bool    { return v.raw.Tag == TagObject }
func (v Value) IsFunction() bool  { return v.raw.Tag == TagFunction }

// Bool returns the boolean payload. Valid only for TagBool slots.
func (v Value) Bool() bool {
	return v.raw.Tag == TagBool && v.raw.Int != 0
}

// Int64 returns the integer payload. Float slots are truncated.
func (v Value) Int64() (int64, bool) {
	switch v.raw.Tag {
	case TagInt:
		return v.raw.Int, true
	case TagFloat:
		return int64(v.raw.Float), true
	default:
		return 0, false
	}
}

// Float64 returns the numeric payload as a float.
func (v Value) Float64() (float64, bool) {
	switch v.raw.Tag {
	case TagInt:
		return float64(v.raw.Int), true
	case TagFloat:
		return v.raw.Float, true
	default:
		return 0, false
	}
}

// Str returns the string payload.
func (v Value) Str() (string, bool) {
	return v.ctx.str(v.raw)
}

// Object returns the heap object behind an object or function slot.
func (v Value) Object() (*Object, bool) {
	return v.ctx.object(v.raw)
}

// SetProperty stores a property on an object, taking a new reference on val.
// Any previous slot value is released.
func (v Value) SetProperty(name string, val Value) error {
	obj, ok := v.ctx.object(v.raw)
	if !ok {
		return errors.TypeMismatch(errors.PhaseRuntime, []string{name}, "", v.TypeName())
	}
	if old, exists := obj.props[name]; exists {
		v.ctx.releaseRaw(old)
	}
	v.ctx.retainRaw(val.raw)
	obj.props[name] = val.raw
	return nil
}

// GetProperty returns an owned reference to a property value.
func (v Value) GetProperty(name string) (Value, bool) {
	obj, ok := v.ctx.object(v.raw)
	if !ok {
		return v.ctx.Undefined(), false
	}
	raw, ok := obj.props[name]
	if !ok {
		return v.ctx.Undefined(), false
	}
	return v.ctx.ValueFromRaw(raw), true
}

// PropertyNames returns the object's own property names.
func (v Value) PropertyNames() []string {
	obj, ok := v.ctx.object(v.raw)
	if !ok {
		return nil
	}
	names := make([]string, 0, len(obj.props))
	for name := range obj.props {
		names = append(names, name)
	}
	return names
}

// ArrayLen returns the element count of an array object.
func (v Value) ArrayLen() int {
	obj, ok := v.ctx.object(v.raw)
	if !ok {
		return 0
	}
	return len(obj.elems)
}

// ArrayGet returns an owned reference to an array element.
func (v Value) ArrayGet(i int) (Value, bool) {
	obj, ok := v.ctx.object(v.raw)
	if !ok || i < 0 || i >= len(obj.elems) {
		return v.ctx.Undefined(), false
	}
	return v.ctx.ValueFromRaw(obj.elems[i]), true
}
