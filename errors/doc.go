// Package errors provides structured error types for the bind library.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error
// category). The Error type includes rich context: field path, Go/script type
// names, and cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseConvert, errors.KindTypeMismatch).
//		Path("args", "0").
//		GoType("int32").
//		ScriptType("string").
//		Detail("cannot convert string to integer").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.TypeMismatch(errors.PhaseConvert, path, "int32", "string")
//	err := errors.MissingArgs(2, 1)
//
// Arity failures use the dedicated MissingArgsError and TooManyArgsError
// types, which carry the expected and given argument counts so callers can
// inspect them programmatically.
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
