// Package convert provides bidirectional conversion between Go values and
// engine values.
//
// Decode and Encode traverse Go values with reflection, honoring the
// Marshaler and Unmarshaler interfaces for types that convert themselves.
// Numeric conversions are exact: a float slot only decodes into a Go integer
// when it carries an integral value in range, and overflow is an error
// rather than a truncation.
//
// The multi-value helpers (ToValues, FromValues1..FromValues11) convert
// between an ordered sequence of engine values and a fixed set of Go values,
// for return-value and variadic-call paths. Each element converts
// independently and order is preserved.
//
// Errors use the structured types from the errors package:
//
//	[convert] type_mismatch at args.0: Go type int32, script type string
//	[convert] overflow at items.2: value 300 overflows int8
package convert
