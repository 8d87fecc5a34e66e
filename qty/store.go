// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package qty

import (
	"sort"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
)

// column is the internal, type-erased representation of one quantity's
// buffers. value/dt/d2t hold concrete slices: la.Vector for TFloat,
// []tensor.Vector4/SymmetricTensor/TracelessTensor/uint64 otherwise --
// la.Vector is the one gosl container that fits a plain []float64
// column directly; the tensor/size types have no upstream container to
// reuse and stay bespoke typed slices (see DESIGN.md).
type column struct {
	kind  ValueType
	order Order
	value any
	dt    any
	d2t   any
}

func (c *column) length() int {
	return sliceLen(c.value, c.kind)
}

func sliceLen(v any, kind ValueType) int {
	switch kind {
	case TFloat:
		return len(v.(la.Vector))
	default:
		return anyLen(v)
	}
}

// anyLen returns len() of any of the supported slice-of-T types.
func anyLen(v any) int {
	switch s := v.(type) {
	case la.Vector:
		return len(s)
	case []float64:
		return len(s)
	case []uint64:
		return len(s)
	default:
		return reflectLen(v)
	}
}

// Store is a columnar, quantity-keyed container with material partitions.
// All buffers share the same length N (the particle count); insertion and
// removal operations preserve that invariant.
type Store struct {
	n         int
	columns   map[Id]*column
	order     []Id // insertion order, for deterministic iteration
	materials []Partition
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{columns: make(map[Id]*column)}
}

// ParticleCount returns N, the common length of every buffer.
func (s *Store) ParticleCount() int { return s.n }

// Has reports whether the store holds a column for id.
func (s *Store) Has(id Id) bool {
	_, ok := s.columns[id]
	return ok
}

// Ids returns the quantity ids present, in insertion order.
func (s *Store) Ids() []Id {
	out := make([]Id, len(s.order))
	copy(out, s.order)
	return out
}

// Insert creates a quantity column of type T and the given order. It
// fails if an existing column for id has a different type or order, or
// if the store is non-empty and len(values) != N.
func Insert[T any](s *Store, id Id, order Order, values []T) error {
	kind := kindOf[T]()
	if existing, ok := s.columns[id]; ok {
		if existing.kind != kind || existing.order != order {
			return chk.Err("qty: insert %v: type/order mismatch (have %v/%v, want %v/%v)",
				id, existing.kind, existing.order, kind, order)
		}
	}
	if s.n > 0 && len(values) != s.n {
		return chk.Err("qty: insert %v: values length %d != particle count %d", id, len(values), s.n)
	}
	if s.n == 0 && len(s.columns) == 0 {
		s.n = len(values)
	} else if s.n == 0 {
		s.n = len(values)
	}
	col := &column{kind: kind, order: order}
	col.value = boxSlice(kind, values)
	if order >= First {
		col.dt = zeroSlice(kind, len(values))
	}
	if order >= Second {
		col.d2t = zeroSlice(kind, len(values))
	}
	if _, exists := s.columns[id]; !exists {
		s.order = append(s.order, id)
	}
	s.columns[id] = col
	return nil
}

// GetValue returns a typed view of id's value buffer.
func GetValue[T any](s *Store, id Id) ([]T, error) {
	return getBuffer[T](s, id, 0)
}

// GetDt returns a typed view of id's first-derivative buffer.
func GetDt[T any](s *Store, id Id) ([]T, error) {
	return getBuffer[T](s, id, 1)
}

// GetD2t returns a typed view of id's second-derivative buffer.
func GetD2t[T any](s *Store, id Id) ([]T, error) {
	return getBuffer[T](s, id, 2)
}

func getBuffer[T any](s *Store, id Id, which int) ([]T, error) {
	col, ok := s.columns[id]
	if !ok {
		return nil, chk.Err("qty: quantity %v not present", id)
	}
	wantKind := kindOf[T]()
	if col.kind != wantKind {
		return nil, chk.Err("qty: quantity %v has type %v, requested %v", id, col.kind, wantKind)
	}
	var raw any
	switch which {
	case 0:
		raw = col.value
	case 1:
		if col.order < First {
			return nil, chk.Err("qty: quantity %v is order %v, has no dt buffer", id, col.order)
		}
		raw = col.dt
	case 2:
		if col.order < Second {
			return nil, chk.Err("qty: quantity %v is order %v, has no d2t buffer", id, col.order)
		}
		raw = col.d2t
	}
	return unboxSlice[T](col.kind, raw)
}

// Material returns the material reference and [begin,end) particle range
// for partition i.
func (s *Store) Material(i int) (*Partition, error) {
	if i < 0 || i >= len(s.materials) {
		return nil, chk.Err("qty: material index %d out of range [0,%d)", i, len(s.materials))
	}
	return &s.materials[i], nil
}

// MaterialCount returns the number of material partitions.
func (s *Store) MaterialCount() int { return len(s.materials) }

// Partitions returns all material partitions.
func (s *Store) Partitions() []Partition { return s.materials }

// AppendPartition appends a material partition covering
// [s.ParticleCount()-count, s.ParticleCount()), used by body-insertion
// operations right after the buffers for the new particles have been
// inserted.
func (s *Store) AppendPartition(mat *Material, count int) error {
	begin := s.n - count
	if begin < 0 {
		return chk.Err("qty: partition count %d exceeds particle count %d", count, s.n)
	}
	s.materials = append(s.materials, Partition{Mat: mat, Begin: begin, End: s.n})
	return nil
}

// AppendPartitionRange appends a partition covering [begin,end)
// explicitly, for readers reconstructing a partition table: begin must
// continue where the previous partition ended and end must not exceed
// the particle count.
func (s *Store) AppendPartitionRange(mat *Material, begin, end int) error {
	prev := 0
	if len(s.materials) > 0 {
		prev = s.materials[len(s.materials)-1].End
	}
	if begin != prev {
		return chk.Err("qty: partition begins at %d, previous ended at %d", begin, prev)
	}
	if end < begin || end > s.n {
		return chk.Err("qty: partition range [%d,%d) invalid for particle count %d", begin, end, s.n)
	}
	s.materials = append(s.materials, Partition{Mat: mat, Begin: begin, End: end})
	return nil
}

// Remove deletes the given particle indices and updates material
// partitions so they continue to cover [0, N) disjointly. indices need
// not be sorted unless sorted=true is passed to skip the internal sort.
func (s *Store) Remove(indices []int, sorted bool) error {
	if len(indices) == 0 {
		return nil
	}
	idx := indices
	if !sorted {
		idx = append([]int(nil), indices...)
		sort.Ints(idx)
	}
	for i, v := range idx {
		if v < 0 || v >= s.n {
			return chk.Err("qty: remove: index %d out of range [0,%d)", v, s.n)
		}
		if i > 0 && idx[i-1] == v {
			return chk.Err("qty: remove: duplicate index %d", v)
		}
	}
	keep := make([]bool, s.n)
	for i := range keep {
		keep[i] = true
	}
	for _, v := range idx {
		keep[v] = false
	}
	for id, col := range s.columns {
		removeFromColumn(col, keep)
		_ = id
	}
	// remap material partitions over the surviving indices
	oldToNew := make([]int, s.n)
	newN := 0
	for i := 0; i < s.n; i++ {
		if keep[i] {
			oldToNew[i] = newN
			newN++
		} else {
			oldToNew[i] = -1
		}
	}
	var newParts []Partition
	for _, p := range s.materials {
		nb, ne := -1, -1
		for i := p.Begin; i < p.End; i++ {
			if oldToNew[i] >= 0 {
				if nb < 0 {
					nb = oldToNew[i]
				}
				ne = oldToNew[i] + 1
			}
		}
		if nb >= 0 {
			newParts = append(newParts, Partition{Mat: p.Mat, Begin: nb, End: ne})
		}
	}
	s.materials = newParts
	s.n = newN
	return nil
}

// Merge concatenates other's matching quantities onto self, appending
// other's material partitions (offset by self's particle count) after
// self's own. It fails if either side carries a quantity the other lacks.
func (s *Store) Merge(other *Store) error {
	if len(s.columns) != len(other.columns) {
		return chk.Err("qty: merge: quantity set mismatch (%d vs %d columns)", len(s.columns), len(other.columns))
	}
	for id, col := range s.columns {
		oc, ok := other.columns[id]
		if !ok {
			return chk.Err("qty: merge: other store lacks quantity %v", id)
		}
		if oc.kind != col.kind || oc.order != col.order {
			return chk.Err("qty: merge: quantity %v type/order mismatch", id)
		}
	}
	for id := range other.columns {
		if _, ok := s.columns[id]; !ok {
			return chk.Err("qty: merge: self store lacks quantity %v", id)
		}
	}
	base := s.n
	for id, col := range s.columns {
		oc := other.columns[id]
		col.value = concatSlices(col.kind, col.value, oc.value)
		if col.order >= First {
			col.dt = concatSlices(col.kind, col.dt, oc.dt)
		}
		if col.order >= Second {
			col.d2t = concatSlices(col.kind, col.d2t, oc.d2t)
		}
	}
	for _, p := range other.materials {
		s.materials = append(s.materials, Partition{Mat: p.Mat, Begin: base + p.Begin, End: base + p.End})
	}
	s.n = base + other.n
	return nil
}

// CloneMode selects which subset of buffers Clone deep-copies.
type CloneMode int

// Supported clone modes.
const (
	CloneAll CloneMode = iota
	CloneHighestOrderOnly
	CloneValuesOnly
)

// Clone deep-copies the store according to mode.
func (s *Store) Clone(mode CloneMode) *Store {
	out := NewStore()
	out.n = s.n
	out.materials = append([]Partition(nil), s.materials...)
	for _, id := range s.order {
		col := s.columns[id]
		nc := &column{kind: col.kind, order: col.order}
		nc.value = cloneSlice(col.kind, col.value)
		switch mode {
		case CloneValuesOnly:
			// dt/d2t stay nil
		case CloneHighestOrderOnly:
			if col.order == First && col.dt != nil {
				nc.dt = cloneSlice(col.kind, col.dt)
			}
			if col.order == Second && col.d2t != nil {
				nc.d2t = cloneSlice(col.kind, col.d2t)
			}
		default: // CloneAll
			if col.dt != nil {
				nc.dt = cloneSlice(col.kind, col.dt)
			}
			if col.d2t != nil {
				nc.d2t = cloneSlice(col.kind, col.d2t)
			}
		}
		out.columns[id] = nc
		out.order = append(out.order, id)
	}
	return out
}
