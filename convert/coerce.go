package convert

import (
	"math"

	"github.com/nanojs/bind/engine"
)

// NumberToInt64 extracts an integer from a numeric slot. Float slots must
// carry an integral value that fits in int64.
func NumberToInt64(v engine.Value) (int64, bool) {
	switch v.Tag() {
	case engine.TagInt:
		i, _ := v.Int64()
		return i, true
	case engine.TagFloat:
		f, _ := v.Float64()
		if f >= math.MinInt64 && f < math.MaxInt64 && f == math.Trunc(f) {
			return int64(f), true
		}
	}
	return 0, false
}

// NumberToUint64 extracts a non-negative integer from a numeric slot.
func NumberToUint64(v engine.Value) (uint64, bool) {
	switch v.Tag() {
	case engine.TagInt:
		i, _ := v.Int64()
		if i >= 0 {
			return uint64(i), true
		}
	case engine.TagFloat:
		f, _ := v.Float64()
		if f >= 0 && f < math.MaxUint64 && f == math.Trunc(f) {
			return uint64(f), true
		}
	}
	return 0, false
}

// NumberToFloat64 extracts a float from a numeric slot.
func NumberToFloat64(v engine.Value) (float64, bool) {
	if v.Tag() == engine.TagInt || v.Tag() == engine.TagFloat {
		f, _ := v.Float64()
		return f, true
	}
	return 0, false
}
