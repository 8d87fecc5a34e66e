// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package equation

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cpmech/gosph/accum"
	"github.com/cpmech/gosph/deriv"
	"github.com/cpmech/gosph/qty"
	"github.com/cpmech/gosph/tensor"
)

func approachingPairStore(t *testing.T) *qty.Store {
	t.Helper()
	store := qty.NewStore()
	require.NoError(t, qty.Insert[tensor.Vector4](store, qty.Position, qty.Second, []tensor.Vector4{
		tensor.NewVector4(0, 0, 0, 1),
		tensor.NewVector4(1, 0, 0, 1),
	}))
	require.NoError(t, qty.Insert[float64](store, qty.Density, qty.First, []float64{1, 1}))
	require.NoError(t, qty.Insert[float64](store, qty.Mass, qty.Zero, []float64{1, 1}))
	require.NoError(t, qty.Insert[float64](store, qty.SoundSpeed, qty.Zero, []float64{1, 1}))
	require.NoError(t, qty.Insert[float64](store, qty.Energy, qty.First, []float64{0, 0}))
	v, err := qty.GetDt[tensor.Vector4](store, qty.Position)
	require.NoError(t, err)
	v[0] = tensor.NewVector4(1, 0, 0, 0) // moving toward particle 1
	v[1] = tensor.NewVector4(-1, 0, 0, 0)
	return store
}

func TestArtificialViscosity_StandardHeatsApproachingPair(t *testing.T) {
	store := approachingPairStore(t)
	av := NewArtificialViscosity(AVStandard)
	d := av.AsDerivative()
	ac := accum.New()
	require.NoError(t, d.Create(ac))
	ac.Initialize(2)
	require.NoError(t, d.Initialize(store, ac))

	grad := mgl64.Vec3{1, 0, 0}
	d.EvalSymmetric(0, []int{1}, []mgl64.Vec3{grad})

	du := accum.GetBuffer[float64](ac, qty.Energy, qty.First)
	assert.Greater(t, du[0], 0.0)
	assert.Greater(t, du[1], 0.0)

	dv := accum.GetBuffer[tensor.Vector4](ac, qty.Position, qty.Second)
	// AV opposes the approach: particle 0 decelerates in -x.
	assert.Less(t, dv[0].Spatial.X(), 0.0)
	assert.Greater(t, dv[1].Spatial.X(), 0.0)
}

func TestArtificialViscosity_SkipsDivergentPair(t *testing.T) {
	store := qty.NewStore()
	require.NoError(t, qty.Insert[tensor.Vector4](store, qty.Position, qty.Second, []tensor.Vector4{
		tensor.NewVector4(0, 0, 0, 1),
		tensor.NewVector4(1, 0, 0, 1),
	}))
	require.NoError(t, qty.Insert[float64](store, qty.Density, qty.First, []float64{1, 1}))
	require.NoError(t, qty.Insert[float64](store, qty.Mass, qty.Zero, []float64{1, 1}))
	require.NoError(t, qty.Insert[float64](store, qty.SoundSpeed, qty.Zero, []float64{1, 1}))
	require.NoError(t, qty.Insert[float64](store, qty.Energy, qty.First, []float64{0, 0}))
	v, err := qty.GetDt[tensor.Vector4](store, qty.Position)
	require.NoError(t, err)
	v[0] = tensor.NewVector4(-1, 0, 0, 0) // moving apart
	v[1] = tensor.NewVector4(1, 0, 0, 0)

	av := NewArtificialViscosity(AVStandard)
	d := av.AsDerivative()
	ac := accum.New()
	require.NoError(t, d.Create(ac))
	ac.Initialize(2)
	require.NoError(t, d.Initialize(store, ac))

	d.EvalSymmetric(0, []int{1}, []mgl64.Vec3{{1, 0, 0}})

	du := accum.GetBuffer[float64](ac, qty.Energy, qty.First)
	dv := accum.GetBuffer[tensor.Vector4](ac, qty.Position, qty.Second)
	assert.Equal(t, 0.0, du[0])
	assert.Equal(t, 0.0, du[1])
	assert.Equal(t, 0.0, dv[0].Spatial.X())
	assert.Equal(t, 0.0, dv[1].Spatial.X())
}

func TestArtificialViscosity_SetDerivativesRegistersSelf(t *testing.T) {
	av := NewArtificialViscosity(AVRiemann)
	h := deriv.NewHolder()
	require.NoError(t, av.SetDerivatives(h))
	assert.Equal(t, 1, h.Count())
}
