// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package qty

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"

	"github.com/cpmech/gosph/tensor"
)

// EachColumn calls f for every quantity column in insertion order,
// letting integrators walk the schema without knowing concrete types.
func (s *Store) EachColumn(f func(id Id, kind ValueType, order Order)) {
	for _, id := range s.order {
		col := s.columns[id]
		f(id, col.kind, col.order)
	}
}

// ZeroHighestDerivatives clears the highest-order derivative buffer of
// every first- and second-order quantity, ahead of a solver pass: the
// pass's derivatives accumulate into those slots, and stale values from
// the previous pass must not leak in. Values and the velocity lane of
// second-order quantities are state, not derivatives, and are left
// untouched.
func (s *Store) ZeroHighestDerivatives() {
	for _, id := range s.order {
		col := s.columns[id]
		switch col.order {
		case First:
			zeroInPlace(col.kind, col.dt)
		case Second:
			zeroInPlace(col.kind, col.d2t)
		}
	}
}

func zeroInPlace(kind ValueType, raw any) {
	switch kind {
	case TFloat:
		v := raw.(la.Vector)
		for i := range v {
			v[i] = 0
		}
	case TVector:
		v := raw.([]tensor.Vector4)
		for i := range v {
			v[i] = tensor.Vector4{}
		}
	case TSymmetricTensor:
		v := raw.([]tensor.SymmetricTensor)
		for i := range v {
			v[i] = tensor.SymmetricTensor{}
		}
	case TTracelessTensor:
		v := raw.([]tensor.TracelessTensor)
		for i := range v {
			v[i] = tensor.TracelessTensor{}
		}
	case TSize:
		v := raw.([]uint64)
		for i := range v {
			v[i] = 0
		}
	}
}

// slot returns the raw buffer of col selected by which (Zero=value,
// First=dt, Second=d2t), or nil when the order does not reach it.
func (c *column) slot(which Order) any {
	switch which {
	case Zero:
		return c.value
	case First:
		return c.dt
	case Second:
		return c.d2t
	}
	return nil
}

// Axpy performs dst.slot(dstSlot) += factor * src.slot(srcSlot) for the
// quantity id, element-wise. dst and src may be the same store (the
// common case: value += dt*h) or different stores (predictor/corrector
// and Runge-Kutta stages combine buffers across clones). Size-typed
// columns are skipped: counters have no meaningful time derivative.
func Axpy(dst *Store, dstSlot Order, src *Store, srcSlot Order, id Id, factor float64) error {
	dcol, ok := dst.columns[id]
	if !ok {
		return chk.Err("qty: axpy: quantity %v not in destination store", id)
	}
	scol, ok := src.columns[id]
	if !ok {
		return chk.Err("qty: axpy: quantity %v not in source store", id)
	}
	if dcol.kind != scol.kind {
		return chk.Err("qty: axpy: quantity %v type mismatch", id)
	}
	d := dcol.slot(dstSlot)
	sr := scol.slot(srcSlot)
	if d == nil || sr == nil {
		return chk.Err("qty: axpy: quantity %v lacks slot (order %v/%v)", id, dstSlot, srcSlot)
	}
	switch dcol.kind {
	case TFloat:
		dv, sv := d.(la.Vector), sr.(la.Vector)
		for i := range dv {
			dv[i] += factor * sv[i]
		}
	case TVector:
		dv, sv := d.([]tensor.Vector4), sr.([]tensor.Vector4)
		for i := range dv {
			dv[i] = dv[i].AddScaled(sv[i], factor)
		}
	case TSymmetricTensor:
		dv, sv := d.([]tensor.SymmetricTensor), sr.([]tensor.SymmetricTensor)
		for i := range dv {
			dv[i] = dv[i].Add(sv[i].Scale(factor))
		}
	case TTracelessTensor:
		dv, sv := d.([]tensor.TracelessTensor), sr.([]tensor.TracelessTensor)
		for i := range dv {
			dv[i] = dv[i].Add(sv[i].Scale(factor))
		}
	case TSize:
		// counters are not integrated
	}
	return nil
}

// ScaleSlot multiplies s.slot(which) by factor in place for id.
func ScaleSlot(s *Store, which Order, id Id, factor float64) error {
	col, ok := s.columns[id]
	if !ok {
		return chk.Err("qty: scale: quantity %v not present", id)
	}
	raw := col.slot(which)
	if raw == nil {
		return chk.Err("qty: scale: quantity %v lacks slot (order %v)", id, which)
	}
	switch col.kind {
	case TFloat:
		v := raw.(la.Vector)
		for i := range v {
			v[i] *= factor
		}
	case TVector:
		v := raw.([]tensor.Vector4)
		for i := range v {
			v[i] = v[i].Scale(factor)
		}
	case TSymmetricTensor:
		v := raw.([]tensor.SymmetricTensor)
		for i := range v {
			v[i] = v[i].Scale(factor)
		}
	case TTracelessTensor:
		v := raw.([]tensor.TracelessTensor)
		for i := range v {
			v[i] = v[i].Scale(factor)
		}
	case TSize:
		// counters are not scaled
	}
	return nil
}

// CopySlot overwrites dst.slot(dstSlot) with src.slot(srcSlot) for id.
func CopySlot(dst *Store, dstSlot Order, src *Store, srcSlot Order, id Id) error {
	dcol, ok := dst.columns[id]
	if !ok {
		return chk.Err("qty: copy: quantity %v not in destination store", id)
	}
	scol, ok := src.columns[id]
	if !ok {
		return chk.Err("qty: copy: quantity %v not in source store", id)
	}
	d := dcol.slot(dstSlot)
	sr := scol.slot(srcSlot)
	if d == nil || sr == nil {
		return chk.Err("qty: copy: quantity %v lacks slot (order %v/%v)", id, dstSlot, srcSlot)
	}
	switch dcol.kind {
	case TFloat:
		copy(d.(la.Vector), sr.(la.Vector))
	case TVector:
		copy(d.([]tensor.Vector4), sr.([]tensor.Vector4))
	case TSymmetricTensor:
		copy(d.([]tensor.SymmetricTensor), sr.([]tensor.SymmetricTensor))
	case TTracelessTensor:
		copy(d.([]tensor.TracelessTensor), sr.([]tensor.TracelessTensor))
	case TSize:
		copy(d.([]uint64), sr.([]uint64))
	}
	return nil
}
