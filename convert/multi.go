package convert

import (
	"github.com/nanojs/bind/engine"
	"github.com/nanojs/bind/errors"
)

// ToValues converts a set of Go values into an ordered engine value
// sequence. Each element converts independently through Encode and order is
// preserved. A single []engine.Value argument passes through unchanged, as
// the identity case for already-converted sequences.
func ToValues(ctx *engine.Context, vals ...any) ([]engine.Value, error) {
	if len(vals) == 1 {
		if seq, ok := vals[0].([]engine.Value); ok {
			return seq, nil
		}
	}
	out := make([]engine.Value, 0, len(vals))
	for _, val := range vals {
		ev, err := Encode(ctx, val)
		if err != nil {
			for _, prev := range out {
				prev.Free()
			}
			return nil, err
		}
		out = append(out, ev)
	}
	return out, nil
}

// FreeValues releases every value in a sequence produced by ToValues.
func FreeValues(vals []engine.Value) {
	for _, v := range vals {
		v.Free()
	}
}

// at decodes the sequence element for one position, failing when the
// sequence is exhausted before the position is filled.
func at[T any](ctx *engine.Context, vals []engine.Value, i int) (T, error) {
	var out T
	if i >= len(vals) {
		return out, errors.MissingArgs(len(vals), 1)
	}
	if err := Decode(ctx, vals[i], &out); err != nil {
		return out, err
	}
	return out, nil
}

// FromValues1 consumes exactly the first element of the sequence.
func FromValues1[A any](ctx *engine.Context, vals []engine.Value) (A, error) {
	return at[A](ctx, vals, 0)
}

// FromValues2 consumes the sequence front-to-back, one element per result.
func FromValues2[A, B any](ctx *engine.Context, vals []engine.Value) (A, B, error) {
	a, err := at[A](ctx, vals, 0)
	if err != nil {
		var b B
		return a, b, err
	}
	b, err := at[B](ctx, vals, 1)
	return a, b, err
}

func FromValues3[A, B, C any](ctx *engine.Context, vals []engine.Value) (A, B, C, error) {
	a, b, err := FromValues2[A, B](ctx, vals)
	if err != nil {
		var c C
		return a, b, c, err
	}
	c, err := at[C](ctx, vals, 2)
	return a, b, c, err
}

func FromValues4[A, B, C, D any](ctx *engine.Context, vals []engine.Value) (A, B, C, D, error) {
	a, b, c, err := FromValues3[A, B, C](ctx, vals)
	if err != nil {
		var d D
		return a, b, c, d, err
	}
	d, err := at[D](ctx, vals, 3)
	return a, b, c, d, err
}

func FromValues5[A, B, C, D, E any](ctx *engine.Context, vals []engine.Value) (A, B, C, D, E, error) {
	a, b, c, d, err := FromValues4[A, B, C, D](ctx, vals)
	if err != nil {
		var e E
		return a, b, c, d, e, err
	}
	e, err := at[E](ctx, vals, 4)
	return a, b, c, d, e, err
}

func FromValues6[A, B, C, D, E, F any](ctx *engine.Context, vals []engine.Value) (A, B, C, D, E, F, error) {
	a, b, c, d, e, err := FromValues5[A, B, C, D, E](ctx, vals)
	if err != nil {
		var f F
		return a, b, c, d, e, f, err
	}
	f, err := at[F](ctx, vals, 5)
	return a, b, c, d, e, f, err
}

func FromValues7[A, B, C, D, E, F, G any](ctx *engine.Context, vals []engine.Value) (A, B, C, D, E, F, G, error) {
	a, b, c, d, e, f, err := FromValues6[A, B, C, D, E, F](ctx, vals)
	if err != nil {
		var g G
		return a, b, c, d, e, f, g, err
	}
	g, err := at[G](ctx, vals, 6)
	return a, b, c, d, e, f, g, err
}

func FromValues8[A, B, C, D, E, F, G, H any](ctx *engine.Context, vals []engine.Value) (A, B, C, D, E, F, G, H, error) {
	a, b, c, d, e, f, g, err := FromValues7[A, B, C, D, E, F, G](ctx, vals)
	if err != nil {
		var h H
		return a, b, c, d, e, f, g, h, err
	}
	h, err := at[H](ctx, vals, 7)
	return a, b, c, d, e, f, g, h, err
}

func FromValues9[A, B, C, D, E, F, G, H, I any](ctx *engine.Context, vals []engine.Value) (A, B, C, D, E, F, G, H, I, error) {
	a, b, c, d, e, f, g, h, err := FromValues8[A, B, C, D, E, F, G, H](ctx, vals)
	if err != nil {
		var i I
		return a, b, c, d, e, f, g, h, i, err
	}
	i, err := at[I](ctx, vals, 8)
	return a, b, c, d, e, f, g, h, i, err
}

func FromValues10[A, B, C, D, E, F, G, H, I, J any](ctx *engine.Context, vals []engine.Value) (A, B, C, D, E, F, G, H, I, J, error) {
	a, b, c, d, e, f, g, h, i, err := FromValues9[A, B, C, D, E, F, G, H, I](ctx, vals)
	if err != nil {
		var j J
		return a, b, c, d, e, f, g, h, i, j, err
	}
	j, err := at[J](ctx, vals, 9)
	return a, b, c, d, e, f, g, h, i, j, err
}

func FromValues11[A, B, C, D, E, F, G, H, I, J, K any](ctx *engine.Context, vals []engine.Value) (A, B, C, D, E, F, G, H, I, J, K, error) {
	a, b, c, d, e, f, g, h, i, j, err := FromValues10[A, B, C, D, E, F, G, H, I, J](ctx, vals)
	if err != nil {
		var k K
		return a, b, c, d, e, f, g, h, i, j, k, err
	}
	k, err := at[K](ctx, vals, 10)
	return a, b, c, d, e, f, g, h, i, j, k, err
}
