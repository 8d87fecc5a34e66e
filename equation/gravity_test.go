// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package equation

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cpmech/gosph/kernel"
	"github.com/cpmech/gosph/qty"
	"github.com/cpmech/gosph/tensor"
)

func twoBodyStore(t *testing.T) *qty.Store {
	t.Helper()
	store := qty.NewStore()
	require.NoError(t, qty.Insert[tensor.Vector4](store, qty.Position, qty.Second, []tensor.Vector4{
		tensor.NewVector4(0, 0, 0, 0.01),
		tensor.NewVector4(10, 0, 0, 0.01),
	}))
	require.NoError(t, qty.Insert[float64](store, qty.Mass, qty.Zero, []float64{1, 1}))
	return store
}

func TestGravity_BruteForce_TwoBodyAttracts(t *testing.T) {
	store := twoBodyStore(t)
	k := kernel.NewGravityKernel(kernel.CubicSpline{}, 200)
	g := NewGravity(k)
	g.Variant = GravityBruteForce
	require.NoError(t, g.Finalize(store))

	dv, err := qty.GetD2t[tensor.Vector4](store, qty.Position)
	require.NoError(t, err)
	assert.Greater(t, dv[0].Spatial.X(), 0.0) // pulled toward particle 1
	assert.Less(t, dv[1].Spatial.X(), 0.0)
	assert.InDelta(t, 1.0/100, dv[0].Spatial.X(), 1e-3) // ~G*m/r^2 = 1/100 beyond support
}

func TestGravity_BarnesHutMatchesBruteForce_ManyBodies(t *testing.T) {
	var positions []tensor.Vector4
	var masses []float64
	for ix := 0; ix < 3; ix++ {
		for iy := 0; iy < 3; iy++ {
			for iz := 0; iz < 3; iz++ {
				positions = append(positions, tensor.NewVector4(float64(ix)*5, float64(iy)*5, float64(iz)*5, 0.01))
				masses = append(masses, 1)
			}
		}
	}
	bruteStore := qty.NewStore()
	require.NoError(t, qty.Insert[tensor.Vector4](bruteStore, qty.Position, qty.Second, positions))
	require.NoError(t, qty.Insert[float64](bruteStore, qty.Mass, qty.Zero, masses))

	treeStore := qty.NewStore()
	require.NoError(t, qty.Insert[tensor.Vector4](treeStore, qty.Position, qty.Second, positions))
	require.NoError(t, qty.Insert[float64](treeStore, qty.Mass, qty.Zero, masses))

	k := kernel.NewGravityKernel(kernel.CubicSpline{}, 200)
	brute := NewGravity(k)
	brute.Variant = GravityBruteForce
	require.NoError(t, brute.Finalize(bruteStore))

	tree := NewGravity(k)
	tree.Variant = GravityBarnesHut
	tree.Theta = 0.3
	tree.LeafSize = 2
	require.NoError(t, tree.Finalize(treeStore))

	dvBrute, err := qty.GetD2t[tensor.Vector4](bruteStore, qty.Position)
	require.NoError(t, err)
	dvTree, err := qty.GetD2t[tensor.Vector4](treeStore, qty.Position)
	require.NoError(t, err)

	for i := range dvBrute {
		d := dvBrute[i].Spatial.Sub(dvTree[i].Spatial).Len()
		assert.Less(t, d, 0.05*math.Max(1, dvBrute[i].Spatial.Len()))
	}
}
