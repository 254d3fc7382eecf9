package convert

import (
	"reflect"
	"strconv"
	"strings"

	"github.com/nanojs/bind/engine"
	"github.com/nanojs/bind/errors"
)

// Marshaler is the interface implemented by types that can convert
// themselves into an engine value.
type Marshaler interface {
	MarshalJS(ctx *engine.Context) (engine.Value, error)
}

// Unmarshaler is the interface implemented by types that can populate
// themselves from an engine value.
type Unmarshaler interface {
	UnmarshalJS(ctx *engine.Context, v engine.Value) error
}

var (
	valueType       = reflect.TypeOf(engine.Value{})
	marshalerType   = reflect.TypeOf((*Marshaler)(nil)).Elem()
	unmarshalerType = reflect.TypeOf((*Unmarshaler)(nil)).Elem()
)

// Encode converts a Go value into an owned engine value.
//
// Type mappings:
//   - nil -> undefined
//   - bool -> boolean
//   - integers -> number (uint64 above int64 range is an overflow error)
//   - floats -> number
//   - string -> string
//   - slice/array -> array object
//   - map with string keys -> object
//   - struct -> object (fields named per "js" then "json" tag, "-" skipped)
//   - pointer -> encoded pointee, nil becomes null
//   - engine.Value -> duplicated reference, passed through
//
// Types implementing Marshaler encode through their MarshalJS method.
func Encode(ctx *engine.Context, val any) (engine.Value, error) {
	if val == nil {
		return ctx.Undefined(), nil
	}
	if v, ok := val.(engine.Value); ok {
		return v.Dup(), nil
	}
	if m, ok := val.(Marshaler); ok {
		return m.MarshalJS(ctx)
	}
	return encode(ctx, reflect.ValueOf(val), nil)
}

func encode(ctx *engine.Context, rv reflect.Value, path []string) (engine.Value, error) {
	if rv.Kind() == reflect.Interface && !rv.IsNil() {
		rv = rv.Elem()
	}

	if rv.IsValid() && rv.CanInterface() {
		if rv.Type() == valueType {
			return rv.Interface().(engine.Value).Dup(), nil
		}
		if rv.Type().Implements(marshalerType) {
			return rv.Interface().(Marshaler).MarshalJS(ctx)
		}
	}

	switch rv.Kind() {
	case reflect.Invalid:
		return ctx.Undefined(), nil

	case reflect.Ptr:
		if rv.IsNil() {
			return ctx.Null(), nil
		}
		return encode(ctx, rv.Elem(), path)

	case reflect.Bool:
		return ctx.Bool(rv.Bool()), nil

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return ctx.Int64(rv.Int()), nil

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u := rv.Uint()
		if u > uint64(1<<63-1) {
			return ctx.Undefined(), errors.Overflow(errors.PhaseConvert, path, u, "int64")
		}
		return ctx.Int64(int64(u)), nil

	case reflect.Float32, reflect.Float64:
		return ctx.Float64(rv.Float()), nil

	case reflect.String:
		return ctx.String(rv.String()), nil

	case reflect.Slice, reflect.Array:
		elems := make([]engine.Value, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			ev, err := encode(ctx, rv.Index(i), append(path, strconv.Itoa(i)))
			if err != nil {
				for j := 0; j < i; j++ {
					elems[j].Free()
				}
				return ctx.Undefined(), err
			}
			elems[i] = ev
		}
		arr := ctx.NewArray(elems...)
		for _, ev := range elems {
			ev.Free()
		}
		return arr, nil

	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return ctx.Undefined(), errors.New(errors.PhaseConvert, errors.KindUnsupported).
				Path(path...).
				GoType(rv.Type().String()).
				Detail("map keys must be strings").
				Build()
		}
		obj := ctx.NewObject()
		iter := rv.MapRange()
		for iter.Next() {
			key := iter.Key().String()
			ev, err := encode(ctx, iter.Value(), append(path, key))
			if err != nil {
				obj.Free()
				return ctx.Undefined(), err
			}
			if err := obj.SetProperty(key, ev); err != nil {
				ev.Free()
				obj.Free()
				return ctx.Undefined(), err
			}
			ev.Free()
		}
		return obj, nil

	case reflect.Struct:
		obj := ctx.NewObject()
		t := rv.Type()
		for i := 0; i < t.NumField(); i++ {
			field := t.Field(i)
			if !field.IsExported() {
				continue
			}
			name, skip := fieldName(field)
			if skip {
				continue
			}
			ev, err := encode(ctx, rv.Field(i), append(path, name))
			if err != nil {
				obj.Free()
				return ctx.Undefined(), err
			}
			if err := obj.SetProperty(name, ev); err != nil {
				ev.Free()
				obj.Free()
				return ctx.Undefined(), err
			}
			ev.Free()
		}
		return obj, nil

	default:
		return ctx.Undefined(), errors.New(errors.PhaseConvert, errors.KindUnsupported).
			Path(path...).
			GoType(rv.Type().String()).
			Detail("cannot encode this kind").
			Build()
	}
}

// Decode parses an engine value into the Go value pointed to by dest,
// using the inverse of Encode's mappings. dest must be a non-nil pointer.
//
// Decoding into an any stores nil, bool, int64, float64, string, []any,
// map[string]any, or an owned engine.Value for functions.
//
// Types implementing Unmarshaler decode through their UnmarshalJS method.
func Decode(ctx *engine.Context, v engine.Value, dest any) error {
	if u, ok := dest.(Unmarshaler); ok {
		return u.UnmarshalJS(ctx, v)
	}
	rv := reflect.ValueOf(dest)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return errors.NilPointer(errors.PhaseConvert, nil, reflect.TypeOf(dest).String())
	}
	return decode(ctx, v, rv.Elem(), nil)
}

func decode(ctx *engine.Context, v engine.Value, rv reflect.Value, path []string) error {
	if rv.Type() == valueType {
		rv.Set(reflect.ValueOf(v.Dup()))
		return nil
	}
	if rv.CanAddr() && rv.Addr().Type().Implements(unmarshalerType) {
		return rv.Addr().Interface().(Unmarshaler).UnmarshalJS(ctx, v)
	}

	switch rv.Kind() {
	case reflect.Interface:
		if rv.NumMethod() != 0 {
			return mismatch(v, rv, path)
		}
		out, err := decodeAny(ctx, v, path)
		if err != nil {
			return err
		}
		if out == nil {
			rv.Set(reflect.Zero(rv.Type()))
		} else {
			rv.Set(reflect.ValueOf(out))
		}
		return nil

	case reflect.Bool:
		if v.Tag() != engine.TagBool {
			return mismatch(v, rv, path)
		}
		rv.SetBool(v.Bool())
		return nil

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i, ok := NumberToInt64(v)
		if !ok {
			return mismatch(v, rv, path)
		}
		if rv.OverflowInt(i) {
			return errors.Overflow(errors.PhaseConvert, path, i, rv.Type().String())
		}
		rv.SetInt(i)
		return nil

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u, ok := NumberToUint64(v)
		if !ok {
			return mismatch(v, rv, path)
		}
		if rv.OverflowUint(u) {
			return errors.Overflow(errors.PhaseConvert, path, u, rv.Type().String())
		}
		rv.SetUint(u)
		return nil

	case reflect.Float32, reflect.Float64:
		f, ok := NumberToFloat64(v)
		if !ok {
			return mismatch(v, rv, path)
		}
		rv.SetFloat(f)
		return nil

	case reflect.String:
		s, ok := v.Str()
		if !ok {
			return mismatch(v, rv, path)
		}
		rv.SetString(s)
		return nil

	case reflect.Slice:
		if !isArrayValue(v) {
			return mismatch(v, rv, path)
		}
		n := v.ArrayLen()
		out := reflect.MakeSlice(rv.Type(), n, n)
		for i := 0; i < n; i++ {
			elem, _ := v.ArrayGet(i)
			err := decode(ctx, elem, out.Index(i), append(path, strconv.Itoa(i)))
			elem.Free()
			if err != nil {
				return err
			}
		}
		rv.Set(out)
		return nil

	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return errors.New(errors.PhaseConvert, errors.KindUnsupported).
				Path(path...).
				GoType(rv.Type().String()).
				Detail("map keys must be strings").
				Build()
		}
		if v.Tag() != engine.TagObject {
			return mismatch(v, rv, path)
		}
		out := reflect.MakeMap(rv.Type())
		for _, name := range v.PropertyNames() {
			pv, _ := v.GetProperty(name)
			elem := reflect.New(rv.Type().Elem()).Elem()
			err := decode(ctx, pv, elem, append(path, name))
			pv.Free()
			if err != nil {
				return err
			}
			out.SetMapIndex(reflect.ValueOf(name), elem)
		}
		rv.Set(out)
		return nil

	case reflect.Struct:
		if v.Tag() != engine.TagObject {
			return mismatch(v, rv, path)
		}
		t := rv.Type()
		for i := 0; i < t.NumField(); i++ {
			field := t.Field(i)
			if !field.IsExported() {
				continue
			}
			name, skip := fieldName(field)
			if skip {
				continue
			}
			pv, ok := v.GetProperty(name)
			if !ok {
				// Absent properties leave the field at its zero value.
				continue
			}
			err := decode(ctx, pv, rv.Field(i), append(path, name))
			pv.Free()
			if err != nil {
				return err
			}
		}
		return nil

	case reflect.Ptr:
		if v.IsNull() || v.IsUndefined() {
			rv.Set(reflect.Zero(rv.Type()))
			return nil
		}
		out := reflect.New(rv.Type().Elem())
		if err := decode(ctx, v, out.Elem(), path); err != nil {
			return err
		}
		rv.Set(out)
		return nil

	default:
		return errors.New(errors.PhaseConvert, errors.KindUnsupported).
			Path(path...).
			GoType(rv.Type().String()).
			Detail("cannot decode into this kind").
			Build()
	}
}

func decodeAny(ctx *engine.Context, v engine.Value, path []string) (any, error) {
	switch v.Tag() {
	case engine.TagUndefined, engine.TagNull:
		return nil, nil
	case engine.TagBool:
		return v.Bool(), nil
	case engine.TagInt:
		i, _ := v.Int64()
		return i, nil
	case engine.TagFloat:
		f, _ := v.Float64()
		return f, nil
	case engine.TagString:
		s, _ := v.Str()
		return s, nil
	case engine.TagFunction:
		return v.Dup(), nil
	case engine.TagObject:
		if isArrayValue(v) {
			out := make([]any, v.ArrayLen())
			for i := range out {
				elem, _ := v.ArrayGet(i)
				dec, err := decodeAny(ctx, elem, append(path, strconv.Itoa(i)))
				elem.Free()
				if err != nil {
					return nil, err
				}
				out[i] = dec
			}
			return out, nil
		}
		out := make(map[string]any)
		for _, name := range v.PropertyNames() {
			pv, _ := v.GetProperty(name)
			dec, err := decodeAny(ctx, pv, append(path, name))
			pv.Free()
			if err != nil {
				return nil, err
			}
			out[name] = dec
		}
		return out, nil
	default:
		return nil, errors.Unsupported(errors.PhaseConvert, "unknown value tag")
	}
}

func isArrayValue(v engine.Value) bool {
	obj, ok := v.Object()
	return ok && obj.IsArray()
}

func mismatch(v engine.Value, rv reflect.Value, path []string) error {
	return errors.TypeMismatch(errors.PhaseConvert, path, rv.Type().String(), v.TypeName())
}

// fieldName resolves the script-side property name for a struct field,
// honoring "js" then "json" tags. The second result reports a "-" skip.
func fieldName(field reflect.StructField) (string, bool) {
	for _, tag := range []string{"js", "json"} {
		if t, ok := field.Tag.Lookup(tag); ok {
			name, _, _ := strings.Cut(t, ",")
			if name == "-" {
				return "", true
			}
			if name != "" {
				return name, false
			}
		}
	}
	return field.Name, false
}
