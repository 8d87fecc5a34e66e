// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package accum

import (
	"fmt"

	"github.com/cpmech/gosph/qty"
	"github.com/cpmech/gosph/tensor"
)

// kindOf infers a buffer's qty.ValueType from its generic parameter via
// the same boxed-zero-value type switch qty itself uses internally; it
// is re-derived here rather than exported from qty, since the mapping
// is a property of the value types, not of the store.
func kindOf[T any]() qty.ValueType {
	var zero T
	switch any(zero).(type) {
	case float64:
		return qty.TFloat
	case tensor.Vector4:
		return qty.TVector
	case tensor.SymmetricTensor:
		return qty.TSymmetricTensor
	case tensor.TracelessTensor:
		return qty.TTracelessTensor
	case uint64:
		return qty.TSize
	default:
		panic("accum: unsupported buffer value type")
	}
}

func zeroOf(kind qty.ValueType, n int) any {
	switch kind {
	case qty.TFloat:
		return make([]float64, n)
	case qty.TVector:
		return make([]tensor.Vector4, n)
	case qty.TSymmetricTensor:
		return make([]tensor.SymmetricTensor, n)
	case qty.TTracelessTensor:
		return make([]tensor.TracelessTensor, n)
	case qty.TSize:
		return make([]uint64, n)
	default:
		panic("accum: unknown value type")
	}
}

// addInto adds src element-wise onto dst in place, both of the concrete
// type kind implies.
func addInto(kind qty.ValueType, dst, src any) error {
	switch kind {
	case qty.TFloat:
		d, s := dst.([]float64), src.([]float64)
		if len(d) != len(s) {
			return fmt.Errorf("length mismatch %d vs %d", len(d), len(s))
		}
		for i := range d {
			d[i] += s[i]
		}
	case qty.TVector:
		d, s := dst.([]tensor.Vector4), src.([]tensor.Vector4)
		if len(d) != len(s) {
			return fmt.Errorf("length mismatch %d vs %d", len(d), len(s))
		}
		for i := range d {
			d[i] = d[i].Add(s[i])
		}
	case qty.TSymmetricTensor:
		d, s := dst.([]tensor.SymmetricTensor), src.([]tensor.SymmetricTensor)
		if len(d) != len(s) {
			return fmt.Errorf("length mismatch %d vs %d", len(d), len(s))
		}
		for i := range d {
			d[i] = d[i].Add(s[i])
		}
	case qty.TTracelessTensor:
		d, s := dst.([]tensor.TracelessTensor), src.([]tensor.TracelessTensor)
		if len(d) != len(s) {
			return fmt.Errorf("length mismatch %d vs %d", len(d), len(s))
		}
		for i := range d {
			d[i] = d[i].Add(s[i])
		}
	case qty.TSize:
		d, s := dst.([]uint64), src.([]uint64)
		if len(d) != len(s) {
			return fmt.Errorf("length mismatch %d vs %d", len(d), len(s))
		}
		for i := range d {
			d[i] += s[i]
		}
	default:
		return fmt.Errorf("unknown value type")
	}
	return nil
}

// storeBuffer copies an accumulated buffer's contents into the matching
// derivative slot (value/dt/d2t, selected by order) of s's column for
// id, dispatching on kind to call the right generic qty accessor.
func storeBuffer(s *qty.Store, id qty.Id, order qty.Order, kind qty.ValueType, value any) error {
	switch kind {
	case qty.TFloat:
		return storeTyped[float64](s, id, order, value.([]float64))
	case qty.TVector:
		return storeTyped[tensor.Vector4](s, id, order, value.([]tensor.Vector4))
	case qty.TSymmetricTensor:
		return storeTyped[tensor.SymmetricTensor](s, id, order, value.([]tensor.SymmetricTensor))
	case qty.TTracelessTensor:
		return storeTyped[tensor.TracelessTensor](s, id, order, value.([]tensor.TracelessTensor))
	case qty.TSize:
		return storeTyped[uint64](s, id, order, value.([]uint64))
	default:
		return fmt.Errorf("accum: unknown value type")
	}
}

func storeTyped[T any](s *qty.Store, id qty.Id, order qty.Order, src []T) error {
	var dst []T
	var err error
	switch order {
	case qty.Zero:
		dst, err = qty.GetValue[T](s, id)
	case qty.First:
		dst, err = qty.GetDt[T](s, id)
	case qty.Second:
		dst, err = qty.GetD2t[T](s, id)
	default:
		return fmt.Errorf("accum: unknown order %v", order)
	}
	if err != nil {
		return fmt.Errorf("accum: store %s/%s: %w", id, order, err)
	}
	if len(dst) != len(src) {
		return fmt.Errorf("accum: store %s/%s: length mismatch %d vs %d", id, order, len(dst), len(src))
	}
	copy(dst, src)
	return nil
}
