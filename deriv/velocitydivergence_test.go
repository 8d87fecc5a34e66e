// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package deriv

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cpmech/gosph/accum"
	"github.com/cpmech/gosph/qty"
	"github.com/cpmech/gosph/tensor"
)

func TestVelocityDivergence_PairContribution(t *testing.T) {
	store := qty.NewStore()
	require.NoError(t, qty.Insert[tensor.Vector4](store, qty.Position, qty.Second, []tensor.Vector4{
		tensor.NewVector4(0, 0, 0, 1),
		tensor.NewVector4(1, 0, 0, 1),
	}))
	require.NoError(t, qty.Insert[float64](store, qty.Density, qty.First, []float64{2, 2}))
	require.NoError(t, qty.Insert[float64](store, qty.Mass, qty.Zero, []float64{1, 1}))

	v, err := qty.GetDt[tensor.Vector4](store, qty.Position)
	require.NoError(t, err)
	v[0] = tensor.NewVector4(1, 0, 0, 0)
	v[1] = tensor.NewVector4(0, 0, 0, 0)

	d := NewVelocityDivergence()
	ac := accum.New()
	require.NoError(t, d.Create(ac))
	ac.Initialize(2)
	require.NoError(t, d.Initialize(store, ac))

	grad := mgl64.Vec3{1, 0, 0}
	d.EvalSymmetric(0, []int{1}, []mgl64.Vec3{grad})

	buf := accum.GetBuffer[float64](ac, qty.VelocityDivergence, qty.Zero)
	// proj = dot(v1-v0, grad) = -1; both get m/rho * proj = -0.5
	assert.InDelta(t, -0.5, buf[0], 1e-12)
	assert.InDelta(t, -0.5, buf[1], 1e-12)
}

func TestVelocityDivergence_Equals(t *testing.T) {
	a := NewVelocityDivergence()
	b := NewVelocityDivergence()
	assert.True(t, a.Equals(b))
	assert.False(t, a.Equals(NewVelocityGradient()))
}
