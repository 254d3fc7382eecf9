package params

import (
	"math"
	"testing"
)

func TestRequirementConstructors(t *testing.T) {
	tests := []struct {
		name           string
		req            Requirement
		wantMin        uint
		wantMax        uint
		wantExhaustive bool
	}{
		{"single", Single(), 1, 1, false},
		{"optional", Optional(), 0, 1, false},
		{"any", Any(), 0, math.MaxUint, false},
		{"none", None(), 0, 0, false},
		{"exhaustive", ExhaustiveReq(), 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.req.Min(); got != tt.wantMin {
				t.Errorf("Min() = %d, want %d", got, tt.wantMin)
			}
			if got := tt.req.Max(); got != tt.wantMax {
				t.Errorf("Max() = %d, want %d", got, tt.wantMax)
			}
			if got := tt.req.IsExhaustive(); got != tt.wantExhaustive {
				t.Errorf("IsExhaustive() = %v, want %v", got, tt.wantExhaustive)
			}
		})
	}
}

func TestRequirementCombine(t *testing.T) {
	tests := []struct {
		name           string
		a, b           Requirement
		wantMin        uint
		wantMax        uint
		wantExhaustive bool
	}{
		{"single plus single", Single(), Single(), 2, 2, false},
		{"single plus optional", Single(), Optional(), 1, 2, false},
		{"optional plus optional", Optional(), Optional(), 0, 2, false},
		{"single plus any saturates max", Single(), Any(), 1, math.MaxUint, false},
		{"none is identity", Single(), None(), 1, 1, false},
		{"exhaustive propagates", Single(), ExhaustiveReq(), 1, 1, true},
		{"any plus any saturates", Any(), Any(), 0, math.MaxUint, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.a.Combine(tt.b)
			if got.Min() != tt.wantMin || got.Max() != tt.wantMax || got.IsExhaustive() != tt.wantExhaustive {
				t.Errorf("Combine() = {min:%d max:%d exhaustive:%v}, want {min:%d max:%d exhaustive:%v}",
					got.Min(), got.Max(), got.IsExhaustive(), tt.wantMin, tt.wantMax, tt.wantExhaustive)
			}
		})
	}
}

func TestRequirementCombineCommutative(t *testing.T) {
	pairs := [][2]Requirement{
		{Single(), Optional()},
		{Any(), Single()},
		{ExhaustiveReq(), Optional()},
	}
	for _, pair := range pairs {
		ab := pair[0].Combine(pair[1])
		ba := pair[1].Combine(pair[0])
		if ab != ba {
			t.Errorf("Combine not commutative for %+v and %+v", pair[0], pair[1])
		}
	}
}

func TestSatAdd(t *testing.T) {
	if got := satAdd(math.MaxUint, 1); got != math.MaxUint {
		t.Errorf("satAdd(MaxUint, 1) = %d, want MaxUint", got)
	}
	if got := satAdd(3, 4); got != 7 {
		t.Errorf("satAdd(3, 4) = %d, want 7", got)
	}
}
