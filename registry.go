package bind

import (
	"reflect"
	"sort"
	"sync"
	"unicode"
	"unsafe"

	"go.uber.org/zap"

	"github.com/nanojs/bind/convert"
	"github.com/nanojs/bind/engine"
	"github.com/nanojs/bind/errors"
	"github.com/nanojs/bind/params"
)

// Module is the interface for struct-based native modules. All exported
// methods except Name are registered as script functions under the module's
// namespace, with their names converted to lowerCamelCase.
type Module interface {
	// Name returns the namespace the module's functions are published under.
	Name() string
}

// Class describes a native class: a constructor producing the backing Go
// value and a set of methods whose first parameter receives it.
type Class struct {
	Name    string
	New     any
	Methods map[string]any
}

// Symbol identifies one registered entry, for listings and tooling.
type Symbol struct {
	Namespace string
	Name      string
	Kind      string // "func" or "class"
}

type binding struct {
	fn engine.NativeFn
}

type classBinding struct {
	ctor    engine.NativeFn
	methods map[string]engine.NativeFn
}

// Registry collects native functions and classes and attaches them to a
// context's global object.
type Registry struct {
	funcs   map[string]map[string]*binding
	classes map[string]map[string]*classBinding
	mu      sync.RWMutex
}

func NewRegistry() *Registry {
	return &Registry{
		funcs:   make(map[string]map[string]*binding),
		classes: make(map[string]map[string]*classBinding),
	}
}

// RegisterModule registers every exported method of m as a function in the
// module's namespace.
func (r *Registry) RegisterModule(m Module) error {
	ns := m.Name()
	if ns == "" {
		return errors.InvalidInput(errors.PhaseBind, "module name cannot be empty")
	}

	rv := reflect.ValueOf(m)
	rt := rv.Type()

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.funcs[ns] == nil {
		r.funcs[ns] = make(map[string]*binding)
	}

	for i := 0; i < rt.NumMethod(); i++ {
		method := rt.Method(i)
		if !method.IsExported() || method.Name == "Name" {
			continue
		}

		name := toMethodName(method.Name)
		fn, err := wrapReflect(rv.Method(i).Interface())
		if err != nil {
			return errors.Registration(errors.PhaseBind, ns, name, err)
		}
		r.funcs[ns][name] = &binding{fn: fn}
		Logger().Debug("registered module function",
			zap.String("namespace", ns),
			zap.String("name", name))
	}
	return nil
}

// RegisterFunc registers a single function. fn may be an engine.NativeFn,
// used as-is, or any Go function, adapted by reflection: an optional leading
// *engine.Context parameter, decoded positional parameters, a variadic tail
// collecting the remaining arguments, and a result of (), (error), (R) or
// (R, error).
func (r *Registry) RegisterFunc(namespace, name string, fn any) error {
	if namespace == "" {
		return errors.InvalidInput(errors.PhaseBind, "namespace cannot be empty")
	}
	if name == "" {
		return errors.InvalidInput(errors.PhaseBind, "function name cannot be empty")
	}

	native, ok := fn.(engine.NativeFn)
	if !ok {
		var err error
		native, err = wrapReflect(fn)
		if err != nil {
			return errors.Registration(errors.PhaseBind, namespace, name, err)
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.funcs[namespace] == nil {
		r.funcs[namespace] = make(map[string]*binding)
	}
	r.funcs[namespace][name] = &binding{fn: native}
	Logger().Debug("registered function",
		zap.String("namespace", namespace),
		zap.String("name", name))
	return nil
}

// RegisterClass registers a class constructor and its methods. Instances
// carry the constructor's Go value; each method's first parameter (after an
// optional *engine.Context) receives it.
func (r *Registry) RegisterClass(namespace string, cls *Class) error {
	if namespace == "" {
		return errors.InvalidInput(errors.PhaseBind, "namespace cannot be empty")
	}
	if cls == nil || cls.Name == "" {
		return errors.InvalidInput(errors.PhaseBind, "class name cannot be empty")
	}

	ctorFn, err := wrapConstructor(cls.Name, cls.New)
	if err != nil {
		return errors.Registration(errors.PhaseBind, namespace, cls.Name, err)
	}

	cb := &classBinding{
		ctor:    ctorFn,
		methods: make(map[string]engine.NativeFn, len(cls.Methods)),
	}
	for name, method := range cls.Methods {
		fn, err := wrapMethod(cls.Name, method)
		if err != nil {
			return errors.Registration(errors.PhaseBind, namespace, cls.Name+"."+name, err)
		}
		cb.methods[name] = fn
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.classes[namespace] == nil {
		r.classes[namespace] = make(map[string]*classBinding)
	}
	r.classes[namespace][cls.Name] = cb
	Logger().Debug("registered class",
		zap.String("namespace", namespace),
		zap.String("class", cls.Name))
	return nil
}

// Attach publishes every registered namespace as an object on the context's
// global, with functions and class constructors as its properties.
func (r *Registry) Attach(ctx *engine.Context) error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	global := ctx.Global()

	namespaces := make(map[string]bool)
	for ns := range r.funcs {
		namespaces[ns] = true
	}
	for ns := range r.classes {
		namespaces[ns] = true
	}

	for ns := range namespaces {
		nsObj := ctx.NewObject()

		for name, b := range r.funcs[ns] {
			fn := ctx.NewFunction(name, b.fn)
			if err := nsObj.SetProperty(name, fn); err != nil {
				return err
			}
			fn.Free()
		}
		for name, cb := range r.classes[ns] {
			ctor := ctx.NewFunction(name, cb.ctor)
			if err := nsObj.SetProperty(name, ctor); err != nil {
				return err
			}
			ctor.Free()
		}

		if err := global.SetProperty(ns, nsObj); err != nil {
			return err
		}
		nsObj.Free()
	}
	return nil
}

// Lookup returns the native function registered under namespace and name.
func (r *Registry) Lookup(namespace, name string) (engine.NativeFn, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ns, ok := r.funcs[namespace]
	if !ok {
		return nil, false
	}
	b, ok := ns[name]
	if !ok {
		return nil, false
	}
	return b.fn, true
}

// LookupClass returns the class binding registered under namespace and name.
func (r *Registry) LookupClass(namespace, name string) (engine.NativeFn, map[string]engine.NativeFn, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ns, ok := r.classes[namespace]
	if !ok {
		return nil, nil, false
	}
	cb, ok := ns[name]
	if !ok {
		return nil, nil, false
	}
	return cb.ctor, cb.methods, true
}

// Symbols returns every registered entry, sorted by namespace then name.
func (r *Registry) Symbols() []Symbol {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var syms []Symbol
	for ns, funcs := range r.funcs {
		for name := range funcs {
			syms = append(syms, Symbol{Namespace: ns, Name: name, Kind: "func"})
		}
	}
	for ns, classes := range r.classes {
		for name := range classes {
			syms = append(syms, Symbol{Namespace: ns, Name: name, Kind: "class"})
		}
	}
	sort.Slice(syms, func(i, j int) bool {
		if syms[i].Namespace != syms[j].Namespace {
			return syms[i].Namespace < syms[j].Namespace
		}
		return syms[i].Name < syms[j].Name
	})
	return syms
}

var (
	ctxType   = reflect.TypeOf((*engine.Context)(nil))
	errorType = reflect.TypeOf((*error)(nil)).Elem()
)

// wrapReflect adapts an arbitrary Go function into a native function. The
// argument count requirement is derived from the signature and validated
// before any conversion.
func wrapReflect(fn any) (engine.NativeFn, error) {
	rv := reflect.ValueOf(fn)
	rt := rv.Type()
	if rt.Kind() != reflect.Func {
		return nil, errors.New(errors.PhaseBind, errors.KindTypeMismatch).
			GoType(reflect.TypeOf(fn).String()).
			Detail("handler must be a function").
			Build()
	}

	start := 0
	if rt.NumIn() > 0 && rt.In(0) == ctxType {
		start = 1
	}

	fixed := rt.NumIn() - start
	if rt.IsVariadic() {
		fixed--
	}

	req := params.None()
	for i := 0; i < fixed; i++ {
		req = req.Combine(params.Single())
	}
	if rt.IsVariadic() {
		req = req.Combine(params.Any())
	}

	if err := checkOutputs(rt); err != nil {
		return nil, err
	}

	return func(ctx *engine.Context, fnRef, thisRef engine.RawValue, argc int32, argv unsafe.Pointer, flags int32) (engine.RawValue, error) {
		p := params.FromRawClass(ctx, fnRef, thisRef, argc, argv, flags)
		if err := p.CheckRequirement(req); err != nil {
			return engine.RawUndefined(), err
		}
		acc := p.Access()

		in := make([]reflect.Value, 0, rt.NumIn())
		if start == 1 {
			in = append(in, reflect.ValueOf(ctx))
		}
		var err error
		if in, err = decodeInto(&acc, rt, start, in); err != nil {
			return engine.RawUndefined(), err
		}
		return callOut(ctx, rv.Call(in))
	}, nil
}

// wrapConstructor adapts a constructor function. Its result value (minus a
// trailing error) becomes the instance's native payload.
func wrapConstructor(className string, ctor any) (engine.NativeFn, error) {
	if ctor == nil {
		return nil, errors.InvalidInput(errors.PhaseBind, "class constructor cannot be nil")
	}
	rv := reflect.ValueOf(ctor)
	rt := rv.Type()
	if rt.Kind() != reflect.Func {
		return nil, errors.New(errors.PhaseBind, errors.KindTypeMismatch).
			GoType(reflect.TypeOf(ctor).String()).
			Detail("constructor must be a function").
			Build()
	}
	if rt.NumOut() == 0 || (rt.NumOut() == 1 && rt.Out(0) == errorType) {
		return nil, errors.InvalidInput(errors.PhaseBind, "constructor must return the instance value")
	}
	if rt.NumOut() > 2 || (rt.NumOut() == 2 && rt.Out(1) != errorType) {
		return nil, errors.InvalidInput(errors.PhaseBind, "constructor must return (T) or (T, error)")
	}

	start := 0
	if rt.NumIn() > 0 && rt.In(0) == ctxType {
		start = 1
	}
	fixed := rt.NumIn() - start
	if rt.IsVariadic() {
		fixed--
	}
	req := params.None()
	for i := 0; i < fixed; i++ {
		req = req.Combine(params.Single())
	}
	if rt.IsVariadic() {
		req = req.Combine(params.Any())
	}

	return func(ctx *engine.Context, fnRef, thisRef engine.RawValue, argc int32, argv unsafe.Pointer, flags int32) (engine.RawValue, error) {
		p := params.FromRawClass(ctx, fnRef, thisRef, argc, argv, flags)
		if err := p.CheckRequirement(req); err != nil {
			return engine.RawUndefined(), err
		}
		acc := p.Access()

		in := make([]reflect.Value, 0, rt.NumIn())
		if start == 1 {
			in = append(in, reflect.ValueOf(ctx))
		}
		var err error
		if in, err = decodeInto(&acc, rt, start, in); err != nil {
			return engine.RawUndefined(), err
		}

		out := rv.Call(in)
		if len(out) == 2 {
			if e, _ := out[1].Interface().(error); e != nil {
				return engine.RawUndefined(), errors.Thrown(e)
			}
		}
		inst := ctx.NewInstance(className, out[0].Interface())
		return inst.IntoRaw(), nil
	}, nil
}

// wrapMethod adapts a class method. The first parameter (after an optional
// *engine.Context) receives the instance's native payload, extracted from
// the call's receiver.
func wrapMethod(className string, fn any) (engine.NativeFn, error) {
	rv := reflect.ValueOf(fn)
	rt := rv.Type()
	if rt.Kind() != reflect.Func {
		return nil, errors.New(errors.PhaseBind, errors.KindTypeMismatch).
			GoType(reflect.TypeOf(fn).String()).
			Detail("method must be a function").
			Build()
	}

	start := 0
	if rt.NumIn() > 0 && rt.In(0) == ctxType {
		start = 1
	}
	if rt.NumIn() <= start {
		return nil, errors.InvalidInput(errors.PhaseBind, "method must take the instance as its first parameter")
	}
	recvType := rt.In(start)
	start++

	fixed := rt.NumIn() - start
	if rt.IsVariadic() {
		fixed--
	}
	req := params.None()
	for i := 0; i < fixed; i++ {
		req = req.Combine(params.Single())
	}
	if rt.IsVariadic() {
		req = req.Combine(params.Any())
	}

	if err := checkOutputs(rt); err != nil {
		return nil, err
	}

	return func(ctx *engine.Context, fnRef, thisRef engine.RawValue, argc int32, argv unsafe.Pointer, flags int32) (engine.RawValue, error) {
		p := params.FromRawClass(ctx, fnRef, thisRef, argc, argv, flags)
		if err := p.CheckRequirement(req); err != nil {
			return engine.RawUndefined(), err
		}

		this := p.This()
		obj, ok := this.Object()
		if !ok {
			this.Free()
			return engine.RawUndefined(), errors.TypeMismatch(errors.PhaseCall, nil, recvType.String(), this.TypeName())
		}
		native := obj.Native()
		this.Free()
		nv := reflect.ValueOf(native)
		if native == nil || !nv.Type().AssignableTo(recvType) {
			return engine.RawUndefined(), errors.New(errors.PhaseCall, errors.KindTypeMismatch).
				GoType(recvType.String()).
				Detail("receiver is not a %s instance", className).
				Build()
		}

		acc := p.Access()
		in := make([]reflect.Value, 0, rt.NumIn())
		if start == 2 {
			in = append(in, reflect.ValueOf(ctx))
		}
		in = append(in, nv)
		var err error
		if in, err = decodeInto(&acc, rt, start, in); err != nil {
			return engine.RawUndefined(), err
		}
		return callOut(ctx, rv.Call(in))
	}, nil
}

// decodeInto converts the remaining arguments into the function's parameter
// types, starting at input index start. A variadic tail drains the accessor.
func decodeInto(acc *params.Accessor, rt reflect.Type, start int, in []reflect.Value) ([]reflect.Value, error) {
	end := rt.NumIn()
	if rt.IsVariadic() {
		end--
	}
	for i := start; i < end; i++ {
		dest := reflect.New(rt.In(i))
		v := acc.Next()
		err := convert.Decode(acc.Context(), v, dest.Interface())
		v.Free()
		if err != nil {
			return nil, err
		}
		in = append(in, dest.Elem())
	}
	if rt.IsVariadic() {
		elemType := rt.In(end).Elem()
		for !acc.IsExhausted() {
			dest := reflect.New(elemType)
			v := acc.Next()
			err := convert.Decode(acc.Context(), v, dest.Interface())
			v.Free()
			if err != nil {
				return nil, err
			}
			in = append(in, dest.Elem())
		}
	}
	return in, nil
}

func checkOutputs(rt reflect.Type) error {
	switch rt.NumOut() {
	case 0, 1:
		return nil
	case 2:
		if rt.Out(1) != errorType {
			return errors.InvalidInput(errors.PhaseBind, "second result must be error")
		}
		return nil
	default:
		return errors.InvalidInput(errors.PhaseBind, "handler may return at most two values")
	}
}

// callOut maps a reflective call's results onto the engine slot convention.
func callOut(ctx *engine.Context, out []reflect.Value) (engine.RawValue, error) {
	switch len(out) {
	case 0:
		return engine.RawUndefined(), nil
	case 1:
		if out[0].Type() == errorType {
			if e, _ := out[0].Interface().(error); e != nil {
				return engine.RawUndefined(), errors.Thrown(e)
			}
			return engine.RawUndefined(), nil
		}
		return finish(ctx, out[0].Interface(), nil)
	default:
		if e, _ := out[1].Interface().(error); e != nil {
			return engine.RawUndefined(), errors.Thrown(e)
		}
		return finish(ctx, out[0].Interface(), nil)
	}
}

// toMethodName converts PascalCase to lowerCamelCase.
// Handles acronyms: GetHTTPURL -> getHTTPURL, URLParse -> urlParse.
func toMethodName(s string) string {
	if len(s) == 0 {
		return ""
	}

	runes := []rune(s)
	acronymEnd := 0
	for acronymEnd < len(runes) && unicode.IsUpper(runes[acronymEnd]) {
		acronymEnd++
	}

	if acronymEnd > 1 {
		// Last uppercase before lowercase starts the next word, not part
		// of the leading acronym
		if acronymEnd < len(runes) && unicode.IsLower(runes[acronymEnd]) {
			acronymEnd--
		}
	}

	out := make([]rune, len(runes))
	copy(out, runes)
	for i := 0; i < acronymEnd; i++ {
		out[i] = unicode.ToLower(out[i])
	}
	return string(out)
}
