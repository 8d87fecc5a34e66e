// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package equation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cpmech/gosph/qty"
	"github.com/cpmech/gosph/tensor"
)

func TestContinuityEquation_Finalize(t *testing.T) {
	store := qty.NewStore()
	require.NoError(t, qty.Insert[float64](store, qty.Density, qty.First, []float64{2}))
	require.NoError(t, qty.Insert[float64](store, qty.VelocityDivergence, qty.Zero, []float64{0.5}))

	term := NewContinuityEquation()
	require.NoError(t, term.Finalize(store))

	dRho, err := qty.GetDt[float64](store, qty.Density)
	require.NoError(t, err)
	assert.InDelta(t, -1.0, dRho[0], 1e-12)
}

func TestContinuityEquation_ImplicitSmoothingRescalesH(t *testing.T) {
	store := qty.NewStore()
	require.NoError(t, qty.Insert[tensor.Vector4](store, qty.Position, qty.Second, []tensor.Vector4{
		tensor.NewVector4(0, 0, 0, 1),
	}))
	require.NoError(t, qty.Insert[float64](store, qty.Density, qty.First, []float64{1}))
	require.NoError(t, qty.Insert[float64](store, qty.VelocityDivergence, qty.Zero, []float64{0}))

	term := NewContinuityEquation()
	term.ImplicitSmoothingLength = true
	require.NoError(t, term.Create(store))

	rho, err := qty.GetValue[float64](store, qty.Density)
	require.NoError(t, err)
	rho[0] = 8 // density increased 8x -> h should shrink by 8^(1/3) = 2

	require.NoError(t, term.Finalize(store))

	r, err := qty.GetValue[tensor.Vector4](store, qty.Position)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, r[0].H, 1e-9)
}

func TestHolder_RejectsConflictingSmoothingLengthTerms(t *testing.T) {
	h := NewHolder()
	ce := NewContinuityEquation()
	ce.ImplicitSmoothingLength = true
	h.Add(ce)
	assert.Panics(t, func() { h.Add(NewAdaptiveSmoothingLength()) })
}

func TestHolder_AllowsAdaptiveSmoothingWithoutImplicitContinuity(t *testing.T) {
	h := NewHolder()
	h.Add(NewContinuityEquation())
	assert.NotPanics(t, func() { h.Add(NewAdaptiveSmoothingLength()) })
}
