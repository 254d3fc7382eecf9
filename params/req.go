package params

import "math"

// Requirement encodes how many call arguments a set of signature positions
// needs: a minimum, a maximum, and whether the signature is exhaustive
// (surplus arguments beyond the maximum are rejected instead of ignored).
type Requirement struct {
	min        uint
	max        uint
	exhaustive bool
}

// Single is the requirement of one required position.
func Single() Requirement {
	return Requirement{min: 1, max: 1}
}

// Optional is the requirement of one optional position.
func Optional() Requirement {
	return Requirement{min: 0, max: 1}
}

// Any is the requirement of a position consuming any number of arguments,
// including none. Receiver- and target-bound positions use it because they
// read snapshot slots instead of consuming arguments.
func Any() Requirement {
	return Requirement{min: 0, max: math.MaxUint}
}

// None is the requirement of a position consuming no arguments.
func None() Requirement {
	return Requirement{}
}

// ExhaustiveReq contributes no argument count but marks the whole signature
// exhaustive: calls with more arguments than the aggregate maximum fail.
func ExhaustiveReq() Requirement {
	return Requirement{exhaustive: true}
}

// Combine merges two requirements into one covering both: counts add with
// saturation, exhaustiveness ORs. The operation is commutative and
// associative in effect.
func (r Requirement) Combine(other Requirement) Requirement {
	return Requirement{
		min:        satAdd(r.min, other.min),
		max:        satAdd(r.max, other.max),
		exhaustive: r.exhaustive || other.exhaustive,
	}
}

// Min returns the minimum number of arguments required.
func (r Requirement) Min() uint {
	return r.min
}

// Max returns the maximum number of arguments consumed.
func (r Requirement) Max() uint {
	return r.max
}

// IsExhaustive reports whether surplus arguments are rejected.
func (r Requirement) IsExhaustive() bool {
	return r.exhaustive
}

func satAdd(a, b uint) uint {
	sum := a + b
	if sum < a {
		return math.MaxUint
	}
	return sum
}
