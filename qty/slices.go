// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package qty

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
	"github.com/cpmech/gosph/tensor"
)

// boxSlice converts a typed []T into the concrete storage representation
// for kind (la.Vector for TFloat, the bare []T otherwise).
func boxSlice[T any](kind ValueType, values []T) any {
	cp := append([]T(nil), values...)
	if kind == TFloat {
		f := any(cp).([]float64)
		return la.Vector(f)
	}
	return cp
}

// unboxSlice recovers a []T view from the concrete storage representation.
func unboxSlice[T any](kind ValueType, raw any) ([]T, error) {
	if kind == TFloat {
		v, ok := raw.(la.Vector)
		if !ok {
			return nil, chk.Err("qty: internal storage corruption for Float column")
		}
		out := any([]float64(v))
		typed, ok := out.([]T)
		if !ok {
			return nil, chk.Err("qty: requested type does not match Float column")
		}
		return typed, nil
	}
	typed, ok := raw.([]T)
	if !ok {
		return nil, chk.Err("qty: requested type does not match stored column type")
	}
	return typed, nil
}

// zeroSlice allocates a zero-valued buffer of length n for kind.
func zeroSlice(kind ValueType, n int) any {
	switch kind {
	case TFloat:
		return la.Vector(make([]float64, n))
	case TVector:
		return make([]tensor.Vector4, n)
	case TSymmetricTensor:
		return make([]tensor.SymmetricTensor, n)
	case TTracelessTensor:
		return make([]tensor.TracelessTensor, n)
	case TSize:
		return make([]uint64, n)
	default:
		panic("qty: unknown value type")
	}
}

func reflectLen(v any) int {
	switch s := v.(type) {
	case []tensor.Vector4:
		return len(s)
	case []tensor.SymmetricTensor:
		return len(s)
	case []tensor.TracelessTensor:
		return len(s)
	default:
		panic("qty: unsupported slice kind")
	}
}

func concatSlices(kind ValueType, a, b any) any {
	switch kind {
	case TFloat:
		av, bv := a.(la.Vector), b.(la.Vector)
		out := make(la.Vector, 0, len(av)+len(bv))
		out = append(out, av...)
		out = append(out, bv...)
		return out
	case TVector:
		av, bv := a.([]tensor.Vector4), b.([]tensor.Vector4)
		out := make([]tensor.Vector4, 0, len(av)+len(bv))
		out = append(out, av...)
		out = append(out, bv...)
		return out
	case TSymmetricTensor:
		av, bv := a.([]tensor.SymmetricTensor), b.([]tensor.SymmetricTensor)
		out := make([]tensor.SymmetricTensor, 0, len(av)+len(bv))
		out = append(out, av...)
		out = append(out, bv...)
		return out
	case TTracelessTensor:
		av, bv := a.([]tensor.TracelessTensor), b.([]tensor.TracelessTensor)
		out := make([]tensor.TracelessTensor, 0, len(av)+len(bv))
		out = append(out, av...)
		out = append(out, bv...)
		return out
	case TSize:
		av, bv := a.([]uint64), b.([]uint64)
		out := make([]uint64, 0, len(av)+len(bv))
		out = append(out, av...)
		out = append(out, bv...)
		return out
	default:
		panic("qty: unknown value type")
	}
}

func cloneSlice(kind ValueType, v any) any {
	switch kind {
	case TFloat:
		s := v.(la.Vector)
		out := make(la.Vector, len(s))
		copy(out, s)
		return out
	case TVector:
		s := v.([]tensor.Vector4)
		out := make([]tensor.Vector4, len(s))
		copy(out, s)
		return out
	case TSymmetricTensor:
		s := v.([]tensor.SymmetricTensor)
		out := make([]tensor.SymmetricTensor, len(s))
		copy(out, s)
		return out
	case TTracelessTensor:
		s := v.([]tensor.TracelessTensor)
		out := make([]tensor.TracelessTensor, len(s))
		copy(out, s)
		return out
	case TSize:
		s := v.([]uint64)
		out := make([]uint64, len(s))
		copy(out, s)
		return out
	default:
		panic("qty: unknown value type")
	}
}

// removeFromColumn compacts a column's buffers in place, keeping only
// indices where keep[i] is true.
func removeFromColumn(col *column, keep []bool) {
	col.value = compact(col.kind, col.value, keep)
	if col.dt != nil {
		col.dt = compact(col.kind, col.dt, keep)
	}
	if col.d2t != nil {
		col.d2t = compact(col.kind, col.d2t, keep)
	}
}

func compact(kind ValueType, v any, keep []bool) any {
	switch kind {
	case TFloat:
		s := v.(la.Vector)
		out := make(la.Vector, 0, len(s))
		for i, x := range s {
			if keep[i] {
				out = append(out, x)
			}
		}
		return out
	case TVector:
		s := v.([]tensor.Vector4)
		out := make([]tensor.Vector4, 0, len(s))
		for i, x := range s {
			if keep[i] {
				out = append(out, x)
			}
		}
		return out
	case TSymmetricTensor:
		s := v.([]tensor.SymmetricTensor)
		out := make([]tensor.SymmetricTensor, 0, len(s))
		for i, x := range s {
			if keep[i] {
				out = append(out, x)
			}
		}
		return out
	case TTracelessTensor:
		s := v.([]tensor.TracelessTensor)
		out := make([]tensor.TracelessTensor, 0, len(s))
		for i, x := range s {
			if keep[i] {
				out = append(out, x)
			}
		}
		return out
	case TSize:
		s := v.([]uint64)
		out := make([]uint64, 0, len(s))
		for i, x := range s {
			if keep[i] {
				out = append(out, x)
			}
		}
		return out
	default:
		panic("qty: unknown value type")
	}
}
