// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package qty

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"

	"github.com/cpmech/gosph/tensor"
)

// Truncate drops every particle at index >= n, the cheap inverse of the
// ghost-particle append a boundary condition performs at the start of a
// solver pass. Material partitions are clipped to [0, n).
func (s *Store) Truncate(n int) error {
	if n < 0 || n > s.n {
		return chk.Err("qty: truncate: count %d out of range [0,%d]", n, s.n)
	}
	if n == s.n {
		return nil
	}
	for _, col := range s.columns {
		col.value = truncSlice(col.kind, col.value, n)
		if col.dt != nil {
			col.dt = truncSlice(col.kind, col.dt, n)
		}
		if col.d2t != nil {
			col.d2t = truncSlice(col.kind, col.d2t, n)
		}
	}
	var parts []Partition
	for _, p := range s.materials {
		if p.Begin >= n {
			continue
		}
		if p.End > n {
			p.End = n
		}
		parts = append(parts, p)
	}
	s.materials = parts
	s.n = n
	return nil
}

func truncSlice(kind ValueType, v any, n int) any {
	switch kind {
	case TFloat:
		return v.(la.Vector)[:n]
	case TVector:
		return v.([]tensor.Vector4)[:n]
	case TSymmetricTensor:
		return v.([]tensor.SymmetricTensor)[:n]
	case TTracelessTensor:
		return v.([]tensor.TracelessTensor)[:n]
	case TSize:
		return v.([]uint64)[:n]
	}
	return v
}

// Gather extracts the given particles into a new store carrying the
// same quantity schema, in the order listed. The result has a single
// material partition per contiguous run of source partitions touched;
// boundary conditions use it to mirror a subset into ghost particles.
func (s *Store) Gather(indices []int) (*Store, error) {
	for _, i := range indices {
		if i < 0 || i >= s.n {
			return nil, chk.Err("qty: gather: index %d out of range [0,%d)", i, s.n)
		}
	}
	out := NewStore()
	out.n = len(indices)
	for _, id := range s.order {
		col := s.columns[id]
		nc := &column{kind: col.kind, order: col.order}
		nc.value = gatherSlice(col.kind, col.value, indices)
		if col.dt != nil {
			nc.dt = gatherSlice(col.kind, col.dt, indices)
		}
		if col.d2t != nil {
			nc.d2t = gatherSlice(col.kind, col.d2t, indices)
		}
		out.columns[id] = nc
		out.order = append(out.order, id)
	}
	// one partition per source partition that contributed at least one
	// particle, in source order, so material lookups stay valid
	for _, p := range s.materials {
		begin := -1
		count := 0
		for oi, i := range indices {
			if p.Contains(i) {
				if begin < 0 {
					begin = oi
				}
				count++
			}
		}
		if count > 0 {
			out.materials = append(out.materials, Partition{Mat: p.Mat, Begin: begin, End: begin + count})
		}
	}
	return out, nil
}

func gatherSlice(kind ValueType, v any, indices []int) any {
	switch kind {
	case TFloat:
		src := v.(la.Vector)
		dst := la.Vector(make([]float64, len(indices)))
		for k, i := range indices {
			dst[k] = src[i]
		}
		return dst
	case TVector:
		src := v.([]tensor.Vector4)
		dst := make([]tensor.Vector4, len(indices))
		for k, i := range indices {
			dst[k] = src[i]
		}
		return dst
	case TSymmetricTensor:
		src := v.([]tensor.SymmetricTensor)
		dst := make([]tensor.SymmetricTensor, len(indices))
		for k, i := range indices {
			dst[k] = src[i]
		}
		return dst
	case TTracelessTensor:
		src := v.([]tensor.TracelessTensor)
		dst := make([]tensor.TracelessTensor, len(indices))
		for k, i := range indices {
			dst[k] = src[i]
		}
		return dst
	case TSize:
		src := v.([]uint64)
		dst := make([]uint64, len(indices))
		for k, i := range indices {
			dst[k] = src[i]
		}
		return dst
	}
	return nil
}
