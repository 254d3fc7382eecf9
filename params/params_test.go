package params

import (
	"errors"
	"testing"
	"unsafe"

	"github.com/nanojs/bind/engine"
	binderr "github.com/nanojs/bind/errors"
)

func snapshot(t *testing.T, ctx *engine.Context, args ...engine.RawValue) Params {
	t.Helper()
	var argv unsafe.Pointer
	if len(args) > 0 {
		argv = unsafe.Pointer(&args[0])
	}
	fn := ctx.NewPlainFunction("f", func(_ *engine.Context, _ engine.RawValue, _ int32, _ unsafe.Pointer) (engine.RawValue, error) {
		return engine.RawUndefined(), nil
	})
	this := ctx.NewObject()
	return FromRawClass(ctx, fn.IntoRaw(), this.IntoRaw(), int32(len(args)), argv, 0)
}

func TestCheckRequirement(t *testing.T) {
	ctx := engine.NewContext()
	defer ctx.Close()

	tests := []struct {
		name    string
		args    int
		req     Requirement
		wantErr error
	}{
		{"exact match", 2, Single().Combine(Single()), nil},
		{"missing", 1, Single().Combine(Single()), binderr.MissingArgs(2, 1)},
		{"surplus ignored when lenient", 5, Single(), nil},
		{"surplus rejected when exhaustive", 3, Single().Combine(ExhaustiveReq()), binderr.TooManyArgs(1, 3)},
		{"optional absent", 0, Optional(), nil},
		{"rest takes anything", 9, Any(), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := make([]engine.RawValue, tt.args)
			for i := range raw {
				raw[i] = engine.RawInt(int64(i))
			}
			p := snapshot(t, ctx, raw...)
			err := p.CheckRequirement(tt.req)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("CheckRequirement() = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("CheckRequirement() = nil, want %v", tt.wantErr)
			}
			var missing *binderr.MissingArgsError
			var surplus *binderr.TooManyArgsError
			switch want := tt.wantErr.(type) {
			case *binderr.MissingArgsError:
				if !errors.As(err, &missing) || *missing != *want {
					t.Errorf("CheckRequirement() = %v, want %v", err, want)
				}
			case *binderr.TooManyArgsError:
				if !errors.As(err, &surplus) || *surplus != *want {
					t.Errorf("CheckRequirement() = %v, want %v", err, want)
				}
			}
		})
	}
}

func TestParamsSlots(t *testing.T) {
	ctx := engine.NewContext()
	defer ctx.Close()

	p := snapshot(t, ctx, engine.RawInt(10), engine.RawInt(20))

	if p.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", p.Len())
	}
	if p.IsEmpty() {
		t.Error("IsEmpty() = true for two arguments")
	}

	this := p.This()
	if !this.IsObject() {
		t.Errorf("This() tag = %v, want object", this.Tag())
	}
	this.Free()

	callee := p.Callee()
	if !callee.IsFunction() {
		t.Errorf("Callee() tag = %v, want function", callee.Tag())
	}
	callee.Free()

	v, ok := p.Arg(1)
	if !ok {
		t.Fatal("Arg(1) not found")
	}
	if got, _ := v.Int64(); got != 20 {
		t.Errorf("Arg(1) = %d, want 20", got)
	}
	v.Free()

	if _, ok := p.Arg(2); ok {
		t.Error("Arg(2) found beyond the argument list")
	}
	if _, ok := p.Arg(-1); ok {
		t.Error("Arg(-1) found")
	}
}

func TestPlainFunctionSnapshotHasUndefinedCallee(t *testing.T) {
	ctx := engine.NewContext()
	defer ctx.Close()

	args := []engine.RawValue{engine.RawInt(1)}
	p := FromRawFunc(ctx, ctx.NewObject().IntoRaw(), 1, unsafe.Pointer(&args[0]))

	callee := p.Callee()
	defer callee.Free()
	if !callee.IsUndefined() {
		t.Errorf("Callee() tag = %v, want undefined", callee.Tag())
	}
}

func TestAccessorCursor(t *testing.T) {
	ctx := engine.NewContext()
	defer ctx.Close()

	p := snapshot(t, ctx, engine.RawInt(1), engine.RawInt(2), engine.RawInt(3))
	acc := p.Access()

	if acc.Remaining() != 3 {
		t.Fatalf("Remaining() = %d, want 3", acc.Remaining())
	}

	for want := int64(1); want <= 3; want++ {
		v := acc.Next()
		if got, _ := v.Int64(); got != want {
			t.Errorf("Next() = %d, want %d", got, want)
		}
		v.Free()
	}
	if !acc.IsExhausted() {
		t.Error("IsExhausted() = false after consuming every argument")
	}

	// The receiver slot stays readable regardless of the offset.
	this := acc.This()
	if !this.IsObject() {
		t.Errorf("This() tag = %v, want object", this.Tag())
	}
	this.Free()
}

func TestAccessorNextPanicsPastEnd(t *testing.T) {
	ctx := engine.NewContext()
	defer ctx.Close()

	p := snapshot(t, ctx)
	acc := p.Access()

	defer func() {
		if recover() == nil {
			t.Error("Next() past the end did not panic")
		}
	}()
	acc.Next()
}

func TestEmptyArgvSnapshot(t *testing.T) {
	ctx := engine.NewContext()
	defer ctx.Close()

	p := FromRawClass(ctx, engine.RawUndefined(), engine.RawUndefined(), 0, nil, 0)
	if !p.IsEmpty() {
		t.Errorf("Len() = %d, want 0", p.Len())
	}
	if err := p.CheckRequirement(None()); err != nil {
		t.Errorf("CheckRequirement(None) = %v", err)
	}
}
