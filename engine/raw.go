package engine

// Tag identifies the runtime type of a value slot.
type Tag uint32

const (
	TagUndefined Tag = iota
	TagNull
	TagBool
	TagInt
	TagFloat
	TagString
	TagObject
	TagFunction
)

// Handle references a cell in a Context's heap. Zero is never a valid handle.
type Handle uint32

// RawValue is a value slot as it crosses the engine's call ABI. It is plain
// data: scalar payloads live inline, strings and objects point into the
// owning Context's heap via Handle. A RawValue carries no reference of its
// own; reference counts are managed by whoever holds the slot.
type RawValue struct {
	Tag    Tag
	Handle Handle
	Int    int64
	Float  float64
}

// RawUndefined returns the undefined value slot.
func RawUndefined() RawValue {
	return RawValue{Tag: TagUndefined}
}

// RawNull returns the null value slot.
func RawNull() RawValue {
	return RawValue{Tag: TagNull}
}

// RawBool returns a boolean value slot.
func RawBool(b bool) RawValue {
	v := RawValue{Tag: TagBool}
	if b {
		v.Int = 1
	}
	return v
}

// RawInt returns an integer value slot.
func RawInt(i int64) RawValue {
	return RawValue{Tag: TagInt, Int: i}
}

// RawFloat returns a floating-point value slot.
func RawFloat(f float64) RawValue {
	return RawValue{Tag: TagFloat, Float: f}
}

// TypeName returns the script-visible type name for a tag.
func (t Tag) TypeName() string {
	switch t {
	case TagUndefined:
		return "undefined"
	case TagNull:
		return "null"
	case TagBool:
		return "boolean"
	case TagInt, TagFloat:
		return "number"
	case TagString:
		return "string"
	case TagObject:
		return "object"
	case TagFunction:
		return "function"
	default:
		return "unknown"
	}
}

// isHeap reports whether the slot holds a heap reference.
func (v RawValue) isHeap() bool {
	return v.Tag == TagString || v.Tag == TagObject || v.Tag == TagFunction
}
