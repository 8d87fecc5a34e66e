// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sph

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cpmech/gosph/equation"
	"github.com/cpmech/gosph/finder"
	"github.com/cpmech/gosph/kernel"
	"github.com/cpmech/gosph/qty"
	"github.com/cpmech/gosph/sched"
	"github.com/cpmech/gosph/stats"
	"github.com/cpmech/gosph/tensor"
)

// latticeStore builds a cubic lattice of side particles per axis with
// spacing d, unit density and lattice-cell mass, smoothing length eta*d.
func latticeStore(t *testing.T, side int, d, eta float64) *qty.Store {
	t.Helper()
	h := eta * d
	var pos []tensor.Vector4
	for ix := 0; ix < side; ix++ {
		for iy := 0; iy < side; iy++ {
			for iz := 0; iz < side; iz++ {
				pos = append(pos, tensor.NewVector4(float64(ix)*d, float64(iy)*d, float64(iz)*d, h))
			}
		}
	}
	n := len(pos)
	store := qty.NewStore()
	require.NoError(t, qty.Insert(store, qty.Position, qty.Second, pos))
	require.NoError(t, qty.Insert(store, qty.Density, qty.First, constSlice(n, 1.0)))
	require.NoError(t, qty.Insert(store, qty.Mass, qty.Zero, constSlice(n, d*d*d)))
	require.NoError(t, qty.Insert(store, qty.Energy, qty.First, constSlice(n, 0.0)))
	require.NoError(t, qty.Insert(store, qty.Pressure, qty.Zero, constSlice(n, 0.0)))
	require.NoError(t, qty.Insert(store, qty.SoundSpeed, qty.Zero, constSlice(n, 0.0)))
	mat := qty.NewMaterial("test")
	require.NoError(t, store.AppendPartition(mat, n))
	return store
}

func constSlice(n int, v float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}

func newTestSolver(t *testing.T, terms *equation.Holder) *Solver {
	t.Helper()
	lut, err := kernel.NewLUT(kernel.CubicSpline{}, 10000)
	require.NoError(t, err)
	s, err := NewSolver(sched.NewSequential(), finder.NewGrid(), lut, terms, nil, nil)
	require.NoError(t, err)
	return s
}

// Setting v(r)=r must yield div v = 3 for interior particles.
func TestSolver_DivergenceOfRadialField(t *testing.T) {
	const side = 9
	store := latticeStore(t, side, 1.0, 1.3)
	r, err := qty.GetValue[tensor.Vector4](store, qty.Position)
	require.NoError(t, err)
	v, err := qty.GetDt[tensor.Vector4](store, qty.Position)
	require.NoError(t, err)
	for i := range v {
		v[i].Spatial = r[i].Spatial
	}

	terms := equation.NewHolder().Add(equation.NewContinuityEquation())
	solver := newTestSolver(t, terms)
	require.NoError(t, solver.CreateQuantities(store))
	require.NoError(t, solver.Evaluate(store, stats.New()))

	divv, err := qty.GetValue[float64](store, qty.VelocityDivergence)
	require.NoError(t, err)
	interior := 0
	for i := range r {
		p := r[i].Spatial
		margin := 3.0
		if p[0] < margin || p[0] > side-1-margin ||
			p[1] < margin || p[1] > side-1-margin ||
			p[2] < margin || p[2] > side-1-margin {
			continue
		}
		interior++
		assert.InEpsilon(t, 3.0, divv[i], 0.05, "particle %d: div v = %v", i, divv[i])
	}
	require.Greater(t, interior, 0)

	// continuity: drho/dt = -rho*divv = -3 for the same particles
	dRho, err := qty.GetDt[float64](store, qty.Density)
	require.NoError(t, err)
	for i := range r {
		p := r[i].Spatial
		if p[0] < 3 || p[0] > 5 || p[1] < 3 || p[1] > 5 || p[2] < 3 || p[2] > 5 {
			continue
		}
		assert.InEpsilon(t, -3.0, dRho[i], 0.05)
	}
}

// Counter-streaming slabs with |v| >> c_s: standard AV must heat (du>0)
// and decelerate (dv != 0) particles near the interface, and leave the
// far field untouched.
func TestSolver_ShockHeatingLocalizedAtInterface(t *testing.T) {
	const side = 9
	store := latticeStore(t, side, 1.0, 1.3)
	r, err := qty.GetValue[tensor.Vector4](store, qty.Position)
	require.NoError(t, err)
	v, err := qty.GetDt[tensor.Vector4](store, qty.Position)
	require.NoError(t, err)
	cs, err := qty.GetValue[float64](store, qty.SoundSpeed)
	require.NoError(t, err)
	const x0 = 4.0
	const v0 = 100.0
	for i := range r {
		cs[i] = 1e-3
		if r[i].Spatial[0] > x0 {
			v[i].Spatial = mgl64.Vec3{-v0, 0, 0}
		}
	}

	terms := equation.NewHolder().Add(equation.NewArtificialViscosity(equation.AVStandard))
	solver := newTestSolver(t, terms)
	require.NoError(t, solver.CreateQuantities(store))
	require.NoError(t, solver.Evaluate(store, nil))

	du, err := qty.GetDt[float64](store, qty.Energy)
	require.NoError(t, err)
	dv, err := qty.GetD2t[tensor.Vector4](store, qty.Position)
	require.NoError(t, err)
	h := 1.3
	for i := range r {
		x := r[i].Spatial[0]
		y, z := r[i].Spatial[1], r[i].Spatial[2]
		if y < 3 || y > 5 || z < 3 || z > 5 {
			continue
		}
		switch {
		case math.Abs(x-x0-0.5) <= h:
			assert.Greater(t, du[i], 0.0, "interface particle %d should heat", i)
			assert.Greater(t, dv[i].Spatial.Len(), 0.0, "interface particle %d should decelerate", i)
		case math.Abs(x-x0-0.5) > 3*h:
			assert.InDelta(t, 0.0, du[i], 1e-12, "far-field particle %d should not heat", i)
		}
	}
}

// A rigid ghost plane must leave the particle count unchanged after a
// pass and push back on particles moving into it.
func TestSolver_GhostPlaneRestoresCount(t *testing.T) {
	store := latticeStore(t, 5, 1.0, 1.3)
	n := store.ParticleCount()
	v, err := qty.GetDt[tensor.Vector4](store, qty.Position)
	require.NoError(t, err)
	for i := range v {
		v[i].Spatial = mgl64.Vec3{0, -1, 0}
	}

	boundary := NewGhostPlane(mgl64.Vec3{0, -0.5, 0}, mgl64.Vec3{0, 1, 0}, 2.6)
	lut, err := kernel.NewLUT(kernel.CubicSpline{}, 10000)
	require.NoError(t, err)
	terms := equation.NewHolder().Add(equation.NewContinuityEquation())
	solver, err := NewSolver(sched.NewThreadPool(2), finder.NewGrid(), lut, terms, boundary, nil)
	require.NoError(t, err)
	require.NoError(t, solver.CreateQuantities(store))
	require.NoError(t, solver.Evaluate(store, stats.New()))
	assert.Equal(t, n, store.ParticleCount())
}

func TestSolver_NeighbourStatsRecorded(t *testing.T) {
	store := latticeStore(t, 5, 1.0, 1.3)
	terms := equation.NewHolder().Add(equation.NewContinuityEquation())
	solver := newTestSolver(t, terms)
	require.NoError(t, solver.CreateQuantities(store))
	st := stats.New()
	require.NoError(t, solver.Evaluate(store, st))
	assert.True(t, st.Has(stats.NeighbourMean))
	assert.True(t, st.Has(stats.TimeSphEval))
	assert.GreaterOrEqual(t, st.GetInt(stats.NeighbourMax, -1), st.GetInt(stats.NeighbourMin, 0))
}
