// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package qty

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cpmech/gosph/tensor"
)

func twoBodyStore(t *testing.T) *Store {
	t.Helper()
	s := NewStore()
	require.NoError(t, Insert(s, Position, Second, []tensor.Vector4{
		tensor.NewVector4(0, 0, 0, 1),
		tensor.NewVector4(1, 0, 0, 1),
		tensor.NewVector4(2, 0, 0, 1),
		tensor.NewVector4(3, 0, 0, 2),
	}))
	require.NoError(t, Insert(s, Density, First, []float64{1, 2, 3, 4}))
	require.NoError(t, Insert(s, Mass, Zero, []float64{10, 20, 30, 40}))
	require.NoError(t, s.AppendPartition(NewMaterial("a"), 4))
	return s
}

func TestInsert_TypeMismatchRejected(t *testing.T) {
	s := twoBodyStore(t)
	err := Insert(s, Density, First, []uint64{1, 2, 3, 4})
	assert.Error(t, err)
}

func TestInsert_OrderMismatchRejected(t *testing.T) {
	s := twoBodyStore(t)
	err := Insert(s, Density, Zero, []float64{1, 2, 3, 4})
	assert.Error(t, err)
}

func TestInsert_LengthMismatchRejected(t *testing.T) {
	s := twoBodyStore(t)
	err := Insert(s, Energy, First, []float64{1, 2})
	assert.Error(t, err)
}

func TestGet_WrongOrderRejected(t *testing.T) {
	s := twoBodyStore(t)
	_, err := GetD2t[float64](s, Density)
	assert.Error(t, err)
	_, err = GetDt[float64](s, Mass)
	assert.Error(t, err)
	_, err = GetValue[float64](s, Energy)
	assert.Error(t, err)
}

// Buffers must keep identical length through insert/remove/merge, and
// partitions must keep covering [0,N) disjointly.
func TestRemove_RemapsPartitions(t *testing.T) {
	s := NewStore()
	require.NoError(t, Insert(s, Density, First, []float64{0, 1, 2, 3, 4, 5}))
	require.NoError(t, Insert(s, Mass, Zero, []float64{0, 10, 20, 30, 40, 50}))
	require.NoError(t, s.AppendPartitionRange(NewMaterial("a"), 0, 3))
	require.NoError(t, s.AppendPartitionRange(NewMaterial("b"), 3, 6))

	require.NoError(t, s.Remove([]int{4, 1}, false))
	assert.Equal(t, 4, s.ParticleCount())

	rho, err := GetValue[float64](s, Density)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 2, 3, 5}, rho)

	require.Equal(t, 2, s.MaterialCount())
	pa, _ := s.Material(0)
	pb, _ := s.Material(1)
	assert.Equal(t, 0, pa.Begin)
	assert.Equal(t, 2, pa.End)
	assert.Equal(t, 2, pb.Begin)
	assert.Equal(t, 4, pb.End)
}

func TestRemove_RejectsDuplicateAndOutOfRange(t *testing.T) {
	s := twoBodyStore(t)
	assert.Error(t, s.Remove([]int{1, 1}, false))
	assert.Error(t, s.Remove([]int{99}, false))
}

func TestMerge_AppendsPartitionsAndBuffers(t *testing.T) {
	a := twoBodyStore(t)
	b := twoBodyStore(t)
	require.NoError(t, a.Merge(b))
	assert.Equal(t, 8, a.ParticleCount())
	require.Equal(t, 2, a.MaterialCount())
	p1, _ := a.Material(1)
	assert.Equal(t, 4, p1.Begin)
	assert.Equal(t, 8, p1.End)

	mass, err := GetValue[float64](a, Mass)
	require.NoError(t, err)
	assert.Equal(t, []float64{10, 20, 30, 40, 10, 20, 30, 40}, mass)
}

func TestMerge_QuantitySetMismatchRejected(t *testing.T) {
	a := twoBodyStore(t)
	b := twoBodyStore(t)
	require.NoError(t, Insert(b, Energy, First, []float64{1, 2, 3, 4}))
	assert.Error(t, a.Merge(b))
	assert.Error(t, b.Merge(a))
}

func TestClone_Modes(t *testing.T) {
	s := twoBodyStore(t)
	v, err := GetDt[tensor.Vector4](s, Position)
	require.NoError(t, err)
	v[0] = tensor.NewVector4(9, 9, 9, 0)

	all := s.Clone(CloneAll)
	cv, err := GetDt[tensor.Vector4](all, Position)
	require.NoError(t, err)
	assert.Equal(t, v[0], cv[0])
	// deep copy: mutating the clone leaves the original alone
	cv[0] = tensor.NewVector4(1, 1, 1, 0)
	assert.NotEqual(t, v[0], cv[0])

	values := s.Clone(CloneValuesOnly)
	_, err = GetDt[tensor.Vector4](values, Position)
	assert.Error(t, err)
	_, err = GetValue[tensor.Vector4](values, Position)
	assert.NoError(t, err)

	highest := s.Clone(CloneHighestOrderOnly)
	_, err = GetD2t[tensor.Vector4](highest, Position)
	assert.NoError(t, err)
	_, err = GetDt[float64](highest, Density)
	assert.NoError(t, err)
}

func TestTruncate_DropsTailAndClipsPartitions(t *testing.T) {
	s := twoBodyStore(t)
	require.NoError(t, s.Truncate(2))
	assert.Equal(t, 2, s.ParticleCount())
	p, _ := s.Material(0)
	assert.Equal(t, 2, p.End)
	rho, err := GetValue[float64](s, Density)
	require.NoError(t, err)
	assert.Len(t, rho, 2)
	assert.Error(t, s.Truncate(5))
}

func TestGather_ExtractsSubsetWithSchema(t *testing.T) {
	s := twoBodyStore(t)
	sub, err := s.Gather([]int{3, 1})
	require.NoError(t, err)
	assert.Equal(t, 2, sub.ParticleCount())
	rho, err := GetValue[float64](sub, Density)
	require.NoError(t, err)
	assert.Equal(t, []float64{4, 2}, rho)
	require.Equal(t, 1, sub.MaterialCount())

	_, err = s.Gather([]int{17})
	assert.Error(t, err)
}

func TestZeroHighestDerivatives_LeavesStateAlone(t *testing.T) {
	s := twoBodyStore(t)
	v, err := GetDt[tensor.Vector4](s, Position)
	require.NoError(t, err)
	a, err := GetD2t[tensor.Vector4](s, Position)
	require.NoError(t, err)
	dRho, err := GetDt[float64](s, Density)
	require.NoError(t, err)
	v[1] = tensor.NewVector4(5, 0, 0, 0)
	a[1] = tensor.NewVector4(7, 0, 0, 0)
	dRho[1] = 3

	s.ZeroHighestDerivatives()
	assert.Equal(t, 5.0, v[1].Spatial[0], "velocity is state, must survive")
	assert.Equal(t, 0.0, a[1].Spatial[0])
	assert.Equal(t, 0.0, dRho[1])
}

func TestAxpy_AcrossSlotsAndStores(t *testing.T) {
	s := twoBodyStore(t)
	dRho, err := GetDt[float64](s, Density)
	require.NoError(t, err)
	for i := range dRho {
		dRho[i] = 1
	}
	require.NoError(t, Axpy(s, Zero, s, First, Density, 0.5))
	rho, err := GetValue[float64](s, Density)
	require.NoError(t, err)
	assert.Equal(t, []float64{1.5, 2.5, 3.5, 4.5}, rho)

	other := s.Clone(CloneAll)
	require.NoError(t, Axpy(s, Zero, other, Zero, Density, 1))
	assert.Equal(t, []float64{3, 5, 7, 9}, rho)

	assert.Error(t, Axpy(s, Second, s, First, Density, 1))
	assert.Error(t, Axpy(s, Zero, s, Zero, Energy, 1))
}

func TestScaleAndCopySlot(t *testing.T) {
	s := twoBodyStore(t)
	require.NoError(t, ScaleSlot(s, Zero, Density, 2))
	rho, err := GetValue[float64](s, Density)
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 4, 6, 8}, rho)

	other := twoBodyStore(t)
	require.NoError(t, CopySlot(other, Zero, s, Zero, Density))
	orho, err := GetValue[float64](other, Density)
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 4, 6, 8}, orho)
}

func TestAppendPartitionRange_RejectsGap(t *testing.T) {
	s := NewStore()
	require.NoError(t, Insert(s, Density, First, []float64{1, 2, 3, 4}))
	require.NoError(t, s.AppendPartitionRange(NewMaterial("a"), 0, 2))
	assert.Error(t, s.AppendPartitionRange(NewMaterial("b"), 3, 4))
	assert.Error(t, s.AppendPartitionRange(NewMaterial("b"), 2, 9))
	require.NoError(t, s.AppendPartitionRange(NewMaterial("b"), 2, 4))
}

func TestMaterialClone_Independent(t *testing.T) {
	m := NewMaterial("basalt")
	m.Params["shear_modulus"] = 2.27e10
	m.Clamps[Density] = ClampRange{Min: 1, Max: 10}
	c := m.Clone()
	c.Params["shear_modulus"] = 1
	c.Clamps[Density] = ClampRange{Min: 0, Max: 1}
	assert.Equal(t, 2.27e10, m.Params["shear_modulus"])
	assert.Equal(t, 1.0, m.Clamps[Density].Min)
}
