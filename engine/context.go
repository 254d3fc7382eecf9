package engine

import (
	"unsafe"

	"go.uber.org/zap"

	"github.com/nanojs/bind/errors"
)

// Context owns the heap for one engine instance and hands out values bound
// to it. All operations are single-threaded: the engine runs one invocation
// to completion before control returns.
type Context struct {
	heap   *heap
	global Handle
	closed bool
}

// NewContext creates a fresh context with an empty global object.
func NewContext() *Context {
	c := &Context{heap: newHeap()}
	c.global = c.heap.alloc(newObject())
	return c
}

// Close releases every live heap cell. Values materialized from this context
// are invalid afterwards.
func (c *Context) Close() {
	if c.closed {
		return
	}
	c.closed = true
	c.heap.clear()
	Logger().Debug("context closed")
}

// Global returns the global object. The returned value borrows the context's
// own reference; call Dup to keep it.
func (c *Context) Global() Value {
	return Value{ctx: c, raw: RawValue{Tag: TagObject, Handle: c.global}}
}

// LiveCells returns the number of live heap cells, for leak diagnostics.
func (c *Context) LiveCells() int {
	return c.heap.live()
}

// Undefined returns the undefined value.
func (c *Context) Undefined() Value {
	return Value{ctx: c, raw: RawUndefined()}
}

// Null returns the null value.
func (c *Context) Null() Value {
	return Value{ctx: c, raw: RawNull()}
}

// Bool creates a boolean value.
func (c *Context) Bool(b bool) Value {
	return Value{ctx: c, raw: RawBool(b)}
}

// Int32 creates an integer value.
func (c *Context) Int32(i int32) Value {
	return Value{ctx: c, raw: RawInt(int64(i))}
}

// Int64 creates an integer value.
func (c *Context) Int64(i int64) Value {
	return Value{ctx: c, raw: RawInt(i)}
}

// Float64 creates a floating-point value.
func (c *Context) Float64(f float64) Value {
	return Value{ctx: c, raw: RawFloat(f)}
}

// String creates a string value. The caller owns one reference.
func (c *Context) String(s string) Value {
	h := c.heap.alloc(s)
	return Value{ctx: c, raw: RawValue{Tag: TagString, Handle: h}}
}

// NewObject creates an empty object. The caller owns one reference.
func (c *Context) NewObject() Value {
	h := c.heap.alloc(newObject())
	return Value{ctx: c, raw: RawValue{Tag: TagObject, Handle: h}}
}

// NewArray creates an array object holding the given elements. Each element
// gains a reference owned by the array; the caller keeps its own.
func (c *Context) NewArray(elems ...Value) Value {
	obj := newObject()
	obj.elems = make([]RawValue, 0, len(elems))
	for _, e := range elems {
		c.retainRaw(e.raw)
		obj.elems = append(obj.elems, e.raw)
	}
	h := c.heap.alloc(obj)
	return Value{ctx: c, raw: RawValue{Tag: TagObject, Handle: h}}
}

// NewFunction creates a function object using the class calling convention.
func (c *Context) NewFunction(name string, fn NativeFn) Value {
	obj := newObject()
	obj.name = name
	obj.call = fn
	h := c.heap.alloc(obj)
	return Value{ctx: c, raw: RawValue{Tag: TagFunction, Handle: h}}
}

// NewPlainFunction creates a function object using the plain calling
// convention, which carries no call-target slot.
func (c *Context) NewPlainFunction(name string, fn PlainFn) Value {
	obj := newObject()
	obj.name = name
	obj.plainCall = fn
	h := c.heap.alloc(obj)
	return Value{ctx: c, raw: RawValue{Tag: TagFunction, Handle: h}}
}

// NewInstance creates an object tagged with a class name and carrying an
// opaque host payload.
func (c *Context) NewInstance(className string, native any) Value {
	obj := newObject()
	obj.className = className
	obj.native = native
	h := c.heap.alloc(obj)
	return Value{ctx: c, raw: RawValue{Tag: TagObject, Handle: h}}
}

// ValueFromRaw materializes an owned value from a raw slot, retaining any
// heap reference it carries. The conversion itself cannot fail; validation
// against a requirement happens before extraction, not here.
func (c *Context) ValueFromRaw(raw RawValue) Value {
	c.retainRaw(raw)
	return Value{ctx: c, raw: raw}
}

// Invoke calls a function value with the class calling convention: the
// function object itself is the call-target, this is the receiver. The raw
// argument array is borrowed by the callee for the duration of the call.
func (c *Context) Invoke(fn Value, this Value, args ...Value) (Value, error) {
	obj, ok := c.object(fn.raw)
	if !ok || !obj.IsCallable() {
		return c.Undefined(), errors.NotCallable(errors.PhaseCall, fn.raw.Tag.TypeName())
	}

	raws := make([]RawValue, len(args))
	for i, a := range args {
		raws[i] = a.raw
	}
	var argv unsafe.Pointer
	if len(raws) > 0 {
		argv = unsafe.Pointer(&raws[0])
	}

	var out RawValue
	var err error
	if obj.call != nil {
		out, err = obj.call(c, fn.raw, this.raw, int32(len(raws)), argv, 0)
	} else {
		out, err = obj.plainCall(c, this.raw, int32(len(raws)), argv)
	}
	if err != nil {
		Logger().Debug("host function raised",
			zap.String("func", obj.name),
			zap.Error(err))
		return c.Undefined(), err
	}
	return Value{ctx: c, raw: out}, nil
}

// retainRaw takes a reference on the heap cell behind a raw slot, if any.
func (c *Context) retainRaw(raw RawValue) {
	if raw.isHeap() {
		c.heap.retain(raw.Handle)
	}
}

// releaseRaw drops a reference on the heap cell behind a raw slot. When an
// object cell dies its property and element slots are released too.
func (c *Context) releaseRaw(raw RawValue) {
	if !raw.isHeap() {
		return
	}
	value, dead := c.heap.release(raw.Handle)
	if !dead {
		return
	}
	if obj, ok := value.(*Object); ok {
		for _, p := range obj.props {
			c.releaseRaw(p)
		}
		for _, e := range obj.elems {
			c.releaseRaw(e)
		}
	}
}

// object resolves a raw slot to its heap object.
func (c *Context) object(raw RawValue) (*Object, bool) {
	if raw.Tag != TagObject && raw.Tag != TagFunction {
		return nil, false
	}
	v, ok := c.heap.get(raw.Handle)
	if !ok {
		return nil, false
	}
	obj, ok := v.(*Object)
	return obj, ok
}

// str resolves a raw slot to its heap string.
func (c *Context) str(raw RawValue) (string, bool) {
	if raw.Tag != TagString {
		return "", false
	}
	v, ok := c.heap.get(raw.Handle)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}
