package convert

import (
	"math"
	"testing"

	"github.com/nanojs/bind/engine"
)

func TestNumberToInt64(t *testing.T) {
	ctx := engine.NewContext()
	defer ctx.Close()

	tests := []struct {
		name   string
		v      engine.Value
		want   int64
		wantOK bool
	}{
		{"int zero", ctx.Int64(0), 0, true},
		{"int positive", ctx.Int64(12345), 12345, true},
		{"int negative", ctx.Int64(-7), -7, true},
		{"int max", ctx.Int64(math.MaxInt64), math.MaxInt64, true},
		{"float integral", ctx.Float64(42), 42, true},
		{"float negative integral", ctx.Float64(-3), -3, true},
		{"float fractional", ctx.Float64(3.14), 0, false},
		{"float too large", ctx.Float64(1e19), 0, false},
		{"bool", ctx.Bool(true), 0, false},
		{"undefined", ctx.Undefined(), 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := NumberToInt64(tt.v)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("NumberToInt64 = %d, %v; want %d, %v", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestNumberToUint64(t *testing.T) {
	ctx := engine.NewContext()
	defer ctx.Close()

	tests := []struct {
		name   string
		v      engine.Value
		want   uint64
		wantOK bool
	}{
		{"int zero", ctx.Int64(0), 0, true},
		{"int positive", ctx.Int64(999), 999, true},
		{"int negative", ctx.Int64(-1), 0, false},
		{"float integral", ctx.Float64(1000000), 1000000, true},
		{"float negative", ctx.Float64(-2), 0, false},
		{"float fractional", ctx.Float64(0.5), 0, false},
		{"string", func() engine.Value { v := ctx.String("1"); return v }(), 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := NumberToUint64(tt.v)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("NumberToUint64 = %d, %v; want %d, %v", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestNumberToFloat64(t *testing.T) {
	ctx := engine.NewContext()
	defer ctx.Close()

	tests := []struct {
		name   string
		v      engine.Value
		want   float64
		wantOK bool
	}{
		{"float", ctx.Float64(2.5), 2.5, true},
		{"int", ctx.Int64(4), 4, true},
		{"null", ctx.Null(), 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := NumberToFloat64(tt.v)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("NumberToFloat64 = %v, %v; want %v, %v", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}
