// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package equation

import (
	"testing"

	"github.com/cpmech/gosl/fun"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cpmech/gosph/material"
	"github.com/cpmech/gosph/qty"
	"github.com/cpmech/gosph/tensor"
)

func TestDamage_FinalizeGrowsAboveThreshold(t *testing.T) {
	store := qty.NewStore()
	require.NoError(t, qty.Insert[float64](store, qty.Damage, qty.First, []float64{0}))
	require.NoError(t, qty.Insert[tensor.TracelessTensor](store, qty.Stress, qty.First, []tensor.TracelessTensor{
		tensor.NewTracelessFromDeviatoric([6]float64{10, -5, -5, 0, 0, 0}),
	}))
	require.NoError(t, qty.Insert[tensor.SymmetricTensor](store, qty.VelocityGradient, qty.Zero, []tensor.SymmetricTensor{
		tensor.NewSymmetricTensor([6]float64{1, 0, -1, 0, 0, 0}),
	}))

	dmg, err := material.NewDamage("grady-kipp-scalar", fun.Prms{
		{N: "eps_min", V: 0.01},
		{N: "cg", V: 1.0},
	})
	require.NoError(t, err)
	mat := qty.NewMaterial("rock")
	mat.Damage = dmg
	mat.Params["shear_modulus"] = 1
	require.NoError(t, store.AppendPartition(mat, 1))

	term := NewDamage()
	require.NoError(t, term.Finalize(store))

	dDamage, err := qty.GetDt[float64](store, qty.Damage)
	require.NoError(t, err)
	assert.Greater(t, dDamage[0], 0.0)
}

func TestDamage_SkipsMaterialWithoutDamageStrategy(t *testing.T) {
	store := qty.NewStore()
	require.NoError(t, qty.Insert[float64](store, qty.Damage, qty.First, []float64{0}))
	require.NoError(t, qty.Insert[tensor.TracelessTensor](store, qty.Stress, qty.First, []tensor.TracelessTensor{
		tensor.NewTracelessFromDeviatoric([6]float64{}),
	}))
	require.NoError(t, qty.Insert[tensor.SymmetricTensor](store, qty.VelocityGradient, qty.Zero, []tensor.SymmetricTensor{
		tensor.NewSymmetricTensor([6]float64{}),
	}))
	mat := qty.NewMaterial("gas")
	require.NoError(t, store.AppendPartition(mat, 1))

	term := NewDamage()
	require.NoError(t, term.Finalize(store))
}
