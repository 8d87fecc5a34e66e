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

func TestSolidStress_FinalizeAppliesRheology(t *testing.T) {
	store := qty.NewStore()
	require.NoError(t, qty.Insert[tensor.TracelessTensor](store, qty.Stress, qty.First, []tensor.TracelessTensor{
		tensor.NewTracelessFromDeviatoric([6]float64{}),
	}))
	require.NoError(t, qty.Insert[tensor.SymmetricTensor](store, qty.VelocityGradient, qty.Zero, []tensor.SymmetricTensor{
		tensor.NewSymmetricTensor([6]float64{1, 0, -1, 0, 0, 0}),
	}))

	rheo, err := material.NewRheology("hooke", fun.Prms{{N: "G", V: 5}})
	require.NoError(t, err)
	mat := qty.NewMaterial("rock")
	mat.Rheology = rheo
	mat.Params["shear_modulus"] = 5
	require.NoError(t, store.AppendPartition(mat, 1))

	term := NewSolidStress()
	require.NoError(t, term.Finalize(store))

	dStress, err := qty.GetDt[tensor.TracelessTensor](store, qty.Stress)
	require.NoError(t, err)
	assert.InDelta(t, 10.0, dStress[0].M[0], 1e-9)
}
