package errors

import (
	"errors"
	"strings"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
	}{
		{
			name: "full error",
			err: &Error{
				Phase:      PhaseConvert,
				Kind:       KindTypeMismatch,
				Path:       []string{"args", "0"},
				GoType:     "int32",
				ScriptType: "string",
				Detail:     "cannot convert",
			},
			contains: []string{"[convert]", "type_mismatch", "args.0", "int32", "string", "cannot convert"},
		},
		{
			name: "minimal error",
			err: &Error{
				Phase: PhaseValidate,
				Kind:  KindOutOfBounds,
			},
			contains: []string{"[validate]", "out_of_bounds"},
		},
		{
			name: "error with cause",
			err: &Error{
				Phase:  PhaseCall,
				Kind:   KindThrown,
				Detail: "handler failed",
				Cause:  errors.New("underlying error"),
			},
			contains: []string{"[call]", "thrown", "handler failed", "caused by", "underlying error"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !strings.Contains(msg, s) {
					t.Errorf("error message %q does not contain %q", msg, s)
				}
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := &Error{
		Phase: PhaseConvert,
		Kind:  KindInvalidInput,
		Cause: cause,
	}

	if !errors.Is(err.Unwrap(), cause) {
		t.Error("Unwrap did not return cause")
	}

	if !errors.Is(errors.Unwrap(err), cause) {
		t.Error("errors.Unwrap did not return cause")
	}
}

func TestError_Is(t *testing.T) {
	err := &Error{
		Phase: PhaseConvert,
		Kind:  KindTypeMismatch,
		Path:  []string{"foo"},
	}

	if !err.Is(&Error{Phase: PhaseConvert, Kind: KindTypeMismatch}) {
		t.Error("Is should match same phase and kind")
	}

	if err.Is(&Error{Phase: PhaseValidate, Kind: KindTypeMismatch}) {
		t.Error("Is should not match different phase")
	}

	if err.Is(&Error{Phase: PhaseConvert, Kind: KindOverflow}) {
		t.Error("Is should not match different kind")
	}

	if err.Is(errors.New("plain")) {
		t.Error("Is should not match non-structured error")
	}
}

func TestBuilder(t *testing.T) {
	cause := errors.New("boom")
	err := New(PhaseBind, KindRegistration).
		Path("Point", "scale").
		GoType("func(int) int").
		Detail("bad handler arity: %d", 3).
		Cause(cause).
		Build()

	if err.Phase != PhaseBind || err.Kind != KindRegistration {
		t.Errorf("unexpected phase/kind: %s/%s", err.Phase, err.Kind)
	}
	if len(err.Path) != 2 || err.Path[0] != "Point" {
		t.Errorf("unexpected path: %v", err.Path)
	}
	if err.Detail != "bad handler arity: 3" {
		t.Errorf("unexpected detail: %q", err.Detail)
	}
	if !errors.Is(err, cause) {
		t.Error("cause not reachable via errors.Is")
	}
}

func TestMissingArgsError(t *testing.T) {
	err := MissingArgs(3, 1)

	if err.Expected != 3 || err.Given != 1 {
		t.Errorf("got expected=%d given=%d", err.Expected, err.Given)
	}
	if !strings.Contains(err.Error(), "at least 3") {
		t.Errorf("unexpected message: %q", err.Error())
	}
	if !errors.Is(err, &MissingArgsError{}) {
		t.Error("errors.Is should match any MissingArgsError")
	}

	var ma *MissingArgsError
	if !errors.As(error(err), &ma) {
		t.Fatal("errors.As failed")
	}
	if ma.Given != 1 {
		t.Errorf("As lost fields: %+v", ma)
	}
}

func TestTooManyArgsError(t *testing.T) {
	err := TooManyArgs(2, 5)

	if err.Expected != 2 || err.Given != 5 {
		t.Errorf("got expected=%d given=%d", err.Expected, err.Given)
	}
	if !strings.Contains(err.Error(), "at most 2") {
		t.Errorf("unexpected message: %q", err.Error())
	}
	if !errors.Is(err, &TooManyArgsError{}) {
		t.Error("errors.Is should match any TooManyArgsError")
	}
	if errors.Is(err, &MissingArgsError{}) {
		t.Error("should not match MissingArgsError")
	}
}
