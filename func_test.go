package bind

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/nanojs/bind/engine"
	"github.com/nanojs/bind/errors"
	"github.com/nanojs/bind/params"
)

func TestFunc0(t *testing.T) {
	ctx := engine.NewContext()
	defer ctx.Close()

	fn := ctx.NewFunction("version", Func0(func(_ *engine.Context) (string, error) {
		return "1.0.0", nil
	}))
	defer fn.Free()

	out, err := ctx.Invoke(fn, ctx.Undefined())
	if err != nil {
		t.Fatalf("Invoke() = %v", err)
	}
	defer out.Free()
	if got, _ := out.Str(); got != "1.0.0" {
		t.Errorf("result = %q, want %q", got, "1.0.0")
	}
}

func TestFunc2WithOptional(t *testing.T) {
	ctx := engine.NewContext()
	defer ctx.Close()

	fn := ctx.NewFunction("add", Func2(func(_ *engine.Context, a params.Arg[int64], b params.Opt[int64]) (int64, error) {
		if !b.Ok {
			return a.V, nil
		}
		return a.V + b.V, nil
	}))
	defer fn.Free()

	tests := []struct {
		name string
		args []int64
		want int64
	}{
		{"both", []int64{3, 4}, 7},
		{"optional absent", []int64{3}, 3},
		{"surplus ignored", []int64{3, 4, 99}, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := make([]engine.Value, len(tt.args))
			for i, a := range tt.args {
				args[i] = ctx.Int64(a)
			}
			out, err := ctx.Invoke(fn, ctx.Undefined(), args...)
			if err != nil {
				t.Fatalf("Invoke() = %v", err)
			}
			defer out.Free()
			if got, _ := out.Int64(); got != tt.want {
				t.Errorf("result = %d, want %d", got, tt.want)
			}
		})
	}

	t.Run("missing required", func(t *testing.T) {
		_, err := ctx.Invoke(fn, ctx.Undefined())
		var missing *errors.MissingArgsError
		if !stderrors.As(err, &missing) {
			t.Fatalf("Invoke() = %v, want MissingArgsError", err)
		}
		if missing.Expected != 1 || missing.Given != 0 {
			t.Errorf("missing = {Expected:%d Given:%d}, want {Expected:1 Given:0}", missing.Expected, missing.Given)
		}
	})
}

func TestFunc1Rest(t *testing.T) {
	ctx := engine.NewContext()
	defer ctx.Close()

	fn := ctx.NewFunction("sum", Func1(func(_ *engine.Context, rest params.Rest[int64]) (int64, error) {
		var total int64
		for _, v := range rest.V {
			total += v
		}
		return total, nil
	}))
	defer fn.Free()

	out, err := ctx.Invoke(fn, ctx.Undefined(), ctx.Int64(1), ctx.Int64(2), ctx.Int64(3))
	if err != nil {
		t.Fatalf("Invoke() = %v", err)
	}
	defer out.Free()
	if got, _ := out.Int64(); got != 6 {
		t.Errorf("result = %d, want 6", got)
	}
}

func TestFunc2ExhaustiveRejectsSurplus(t *testing.T) {
	ctx := engine.NewContext()
	defer ctx.Close()

	fn := ctx.NewFunction("strict", Func2(func(_ *engine.Context, a params.Arg[int64], _ params.Exhaustive) (int64, error) {
		return a.V, nil
	}))
	defer fn.Free()

	_, err := ctx.Invoke(fn, ctx.Undefined(), ctx.Int64(1), ctx.Int64(2))
	var surplus *errors.TooManyArgsError
	if !stderrors.As(err, &surplus) {
		t.Fatalf("Invoke() = %v, want TooManyArgsError", err)
	}
}

func TestFunc1ThisBinding(t *testing.T) {
	ctx := engine.NewContext()
	defer ctx.Close()

	fn := ctx.NewFunction("tagOf", Func1(func(_ *engine.Context, this params.This[engine.Value]) (string, error) {
		defer this.V.Free()
		return this.V.TypeName(), nil
	}))
	defer fn.Free()

	this := ctx.NewObject()
	defer this.Free()

	out, err := ctx.Invoke(fn, this)
	if err != nil {
		t.Fatalf("Invoke() = %v", err)
	}
	defer out.Free()
	if got, _ := out.Str(); got != "object" {
		t.Errorf("result = %q, want %q", got, "object")
	}
}

func TestHandlerErrorIsThrown(t *testing.T) {
	ctx := engine.NewContext()
	defer ctx.Close()

	boom := fmt.Errorf("boom")
	fn := ctx.NewFunction("fail", Func0(func(_ *engine.Context) (Void, error) {
		return Void{}, boom
	}))
	defer fn.Free()

	_, err := ctx.Invoke(fn, ctx.Undefined())
	var structured *errors.Error
	if !stderrors.As(err, &structured) {
		t.Fatalf("Invoke() = %v, want structured error", err)
	}
	if structured.Kind != errors.KindThrown {
		t.Errorf("Kind = %q, want %q", structured.Kind, errors.KindThrown)
	}
	if !stderrors.Is(err, boom) {
		t.Error("thrown error does not wrap the handler error")
	}
}

func TestVoidResultIsUndefined(t *testing.T) {
	ctx := engine.NewContext()
	defer ctx.Close()

	fn := ctx.NewFunction("noop", Func0(func(_ *engine.Context) (Void, error) {
		return Void{}, nil
	}))
	defer fn.Free()

	out, err := ctx.Invoke(fn, ctx.Undefined())
	if err != nil {
		t.Fatalf("Invoke() = %v", err)
	}
	defer out.Free()
	if !out.IsUndefined() {
		t.Errorf("result tag = %v, want undefined", out.Tag())
	}
}

func TestFunc3ConversionFailureAborts(t *testing.T) {
	ctx := engine.NewContext()
	defer ctx.Close()

	calls := 0
	fn := ctx.NewFunction("triple", Func3(func(_ *engine.Context, a, b, c params.Arg[int64]) (int64, error) {
		calls++
		return a.V + b.V + c.V, nil
	}))
	defer fn.Free()

	s := ctx.String("nope")
	defer s.Free()
	_, err := ctx.Invoke(fn, ctx.Undefined(), ctx.Int64(1), s, ctx.Int64(3))
	if err == nil {
		t.Fatal("Invoke() = nil for a non-numeric argument")
	}
	if calls != 0 {
		t.Errorf("handler ran %d time(s) after failed extraction", calls)
	}
}
