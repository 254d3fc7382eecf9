// Package engine provides the embedded script engine's value model and call
// ABI consumed by the binding layer.
//
// # Value Representation
//
// Values cross the call ABI as RawValue slots: plain data with scalar
// payloads inline and heap payloads (strings, objects, functions) referenced
// by Handle. The Value type wraps a RawValue with an owned reference; heap
// cells are reference counted and reclaimed through a free list.
//
//	RawValue  - ABI slot, no ownership
//	Value     - owned reference (Dup/Free)
//	Context   - heap owner, value constructors, Invoke
//	Object    - property map, array storage, native payload, call hooks
//
// # Calling Conventions
//
// Host functions are installed under one of two conventions:
//
//	NativeFn  - class convention: context, call-target, receiver, argc/argv, flags
//	PlainFn   - plain convention: context, receiver, argc/argv
//
// In both, argv points at argc contiguous RawValue slots owned by the engine
// for the dynamic extent of the call. Callees must not keep the slice; they
// materialize owned Values from individual slots instead.
//
// # Threading
//
// The engine is single-threaded: one invocation runs to completion before
// control returns. Contexts, heaps and values are not safe for concurrent
// use.
package engine
