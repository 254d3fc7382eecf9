package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in the binding pipeline the error occurred
type Phase string

const (
	PhaseValidate Phase = "validate" // arity validation against a requirement
	PhaseConvert  Phase = "convert"  // value conversion between Go and script
	PhaseBind     Phase = "bind"     // function/class registration
	PhaseCall     Phase = "call"     // invoking a bound host function
	PhaseRuntime  Phase = "runtime"  // engine-side operations
)

// Kind categorizes the error
type Kind string

const (
	KindMissingArgs  Kind = "missing_args"
	KindTooManyArgs  Kind = "too_many_args"
	KindTypeMismatch Kind = "type_mismatch"
	KindOverflow     Kind = "overflow"
	KindNilPointer   Kind = "nil_pointer"
	KindOutOfBounds  Kind = "out_of_bounds"
	KindUnsupported  Kind = "unsupported"
	KindInvalidInput Kind = "invalid_input"
	KindRegistration Kind = "registration"
	KindNotFound     Kind = "not_found"
	KindNotCallable  Kind = "not_callable"
	KindThrown       Kind = "thrown"
)

// Error is the structured error type used throughout the library
type Error struct {
	Value      any
	Cause      error
	Phase      Phase
	Kind       Kind
	GoType     string
	ScriptType string
	Detail     string
	Path       []string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	if e.GoType != "" || e.ScriptType != "" {
		b.WriteString(": ")
		if e.GoType != "" && e.ScriptType != "" {
			b.WriteString("Go type ")
			b.WriteString(e.GoType)
			b.WriteString(", script type ")
			b.WriteString(e.ScriptType)
		} else if e.GoType != "" {
			b.WriteString("Go type ")
			b.WriteString(e.GoType)
		} else {
			b.WriteString("script type ")
			b.WriteString(e.ScriptType)
		}
	}

	if e.Detail != "" {
		if e.GoType != "" || e.ScriptType != "" {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Path sets the field path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// GoType sets the Go type name
func (b *Builder) GoType(t string) *Builder {
	b.err.GoType = t
	return b
}

// ScriptType sets the script-side type name
func (b *Builder) ScriptType(t string) *Builder {
	b.err.ScriptType = t
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// TypeMismatch creates a type mismatch error
func TypeMismatch(phase Phase, path []string, goType, scriptType string) *Error {
	return &Error{
		Phase:      phase,
		Kind:       KindTypeMismatch,
		Path:       path,
		GoType:     goType,
		ScriptType: scriptType,
	}
}

// Overflow creates an overflow error
func Overflow(phase Phase, path []string, value any, targetType string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOverflow,
		Path:   path,
		GoType: targetType,
		Detail: fmt.Sprintf("value %v overflows %s", value, targetType),
		Value:  value,
	}
}

// NilPointer creates a nil pointer error
func NilPointer(phase Phase, path []string, goType string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNilPointer,
		Path:   path,
		GoType: goType,
		Detail: "nil pointer",
	}
}

// OutOfBounds creates an out of bounds error
func OutOfBounds(phase Phase, path []string, index, length int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOutOfBounds,
		Path:   path,
		Detail: fmt.Sprintf("index %d out of bounds (length %d)", index, length),
		Value:  index,
	}
}

// Unsupported creates an unsupported operation error
func Unsupported(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupported,
		Detail: what,
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// NotFound creates a not-found error
func NotFound(phase Phase, what, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Detail: fmt.Sprintf("%s %q not found", what, name),
	}
}

// NotCallable creates an error for invoking a non-function value
func NotCallable(phase Phase, scriptType string) *Error {
	return &Error{
		Phase:      phase,
		Kind:       KindNotCallable,
		ScriptType: scriptType,
		Detail:     "value is not callable",
	}
}

// Registration creates a registration error
func Registration(phase Phase, class, name string, cause error) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindRegistration,
		Detail: fmt.Sprintf("register %s.%s", class, name),
		Cause:  cause,
	}
}

// Thrown wraps an error raised by a host callback so the engine can surface
// it as a script-visible throw
func Thrown(cause error) *Error {
	return &Error{
		Phase: PhaseCall,
		Kind:  KindThrown,
		Cause: cause,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}

// MissingArgsError is returned when a call supplies fewer arguments than the
// signature's minimum requirement. Expected carries the requirement minimum,
// Given the actual argument count.
type MissingArgsError struct {
	Expected int
	Given    int
}

func (e *MissingArgsError) Error() string {
	return fmt.Sprintf("[%s] %s: expected at least %d argument(s), got %d",
		PhaseValidate, KindMissingArgs, e.Expected, e.Given)
}

// Is reports whether target matches this error type
func (e *MissingArgsError) Is(target error) bool {
	_, ok := target.(*MissingArgsError)
	return ok
}

// TooManyArgsError is returned when an exhaustive signature receives surplus
// arguments. Expected carries the requirement maximum, Given the actual count.
type TooManyArgsError struct {
	Expected int
	Given    int
}

func (e *TooManyArgsError) Error() string {
	return fmt.Sprintf("[%s] %s: expected at most %d argument(s), got %d",
		PhaseValidate, KindTooManyArgs, e.Expected, e.Given)
}

// Is reports whether target matches this error type
func (e *TooManyArgsError) Is(target error) bool {
	_, ok := target.(*TooManyArgsError)
	return ok
}

// MissingArgs creates a missing-arguments error
func MissingArgs(expected, given int) *MissingArgsError {
	return &MissingArgsError{Expected: expected, Given: given}
}

// TooManyArgs creates a surplus-arguments error
func TooManyArgs(expected, given int) *TooManyArgsError {
	return &TooManyArgsError{Expected: expected, Given: given}
}
