// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package deriv

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cpmech/gosph/accum"
	"github.com/cpmech/gosph/qty"
	"github.com/cpmech/gosph/tensor"
)

func TestHolder_RequireDedups(t *testing.T) {
	h := NewHolder()
	h.Require(NewVelocityDivergence())
	assert.Equal(t, 1, h.Count())
	h.Require(NewVelocityDivergence())
	assert.Equal(t, 1, h.Count())
	h.Require(NewVelocityGradient())
	assert.Equal(t, 2, h.Count())
}

func TestHolder_SymmetricIsANDOfItems(t *testing.T) {
	h := NewHolder()
	h.Require(NewVelocityDivergence())
	assert.True(t, h.Symmetric())
	h.Require(NewPressureGradient())
	assert.True(t, h.Symmetric())
}

func TestHolder_InitializeSizesAccumulated(t *testing.T) {
	h := NewHolder()
	h.Require(NewVelocityDivergence())

	store := qty.NewStore()
	positions := []tensor.Vector4{
		tensor.NewVector4(0, 0, 0, 1),
		tensor.NewVector4(1, 0, 0, 1),
		tensor.NewVector4(0, 1, 0, 1),
	}
	require.NoError(t, qty.Insert[tensor.Vector4](store, qty.Position, qty.Second, positions))
	require.NoError(t, qty.Insert[float64](store, qty.Density, qty.First, []float64{1, 1, 1}))
	require.NoError(t, qty.Insert[float64](store, qty.Mass, qty.Zero, []float64{1, 1, 1}))

	ac := accum.New()
	require.NoError(t, h.Create(ac))
	ac.Initialize(store.ParticleCount())
	require.NoError(t, h.Initialize(store, ac))

	buf := accum.GetBuffer[float64](ac, qty.VelocityDivergence, qty.Zero)
	assert.Len(t, buf, 3)
}
