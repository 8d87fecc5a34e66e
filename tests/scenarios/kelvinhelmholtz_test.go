// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scenarios

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cpmech/gosl/fun"

	"github.com/cpmech/gosph/equation"
	"github.com/cpmech/gosph/finder"
	"github.com/cpmech/gosph/integrator"
	"github.com/cpmech/gosph/kernel"
	"github.com/cpmech/gosph/material"
	"github.com/cpmech/gosph/qty"
	"github.com/cpmech/gosph/run"
	"github.com/cpmech/gosph/sched"
	"github.com/cpmech/gosph/sph"
	"github.com/cpmech/gosph/stats"
	"github.com/cpmech/gosph/tensor"
	"github.com/cpmech/gosph/timestep"
)

// kelvinHelmholtzStore builds two counter-streaming layers in a
// periodic cube: the central slab at density ratio 2 moving +x, the
// rest moving -x, with a small sinusoidal vy seed.
func kelvinHelmholtzStore(t *testing.T, side int, L float64) *qty.Store {
	t.Helper()
	d := L / float64(side)
	h := 1.3 * d
	var pos, vel []tensor.Vector4
	var rho, mass []float64
	for ix := 0; ix < side; ix++ {
		for iy := 0; iy < side; iy++ {
			for iz := 0; iz < side; iz++ {
				p := tensor.NewVector4(float64(ix)*d, float64(iy)*d, float64(iz)*d, h)
				inner := p.Y() > 0.25*L && p.Y() < 0.75*L
				density := 1.0
				vx := -0.5
				if inner {
					density = 2.0
					vx = 0.5
				}
				vy := 0.01 * math.Sin(2*math.Pi*p.X()/L)
				pos = append(pos, p)
				vel = append(vel, tensor.NewVector4(vx, vy, 0, 0))
				rho = append(rho, density)
				mass = append(mass, density*d*d*d)
			}
		}
	}
	store := qty.NewStore()
	require.NoError(t, qty.Insert(store, qty.Position, qty.Second, pos))
	v, err := qty.GetDt[tensor.Vector4](store, qty.Position)
	require.NoError(t, err)
	copy(v, vel)
	require.NoError(t, qty.Insert(store, qty.Density, qty.First, rho))
	require.NoError(t, qty.Insert(store, qty.Mass, qty.Zero, mass))
	energy := make([]float64, len(pos))
	for i := range energy {
		// ideal gas: u = p/((gamma-1) rho), uniform pressure 2.5
		energy[i] = 2.5 / (0.4 * rho[i])
	}
	require.NoError(t, qty.Insert(store, qty.Energy, qty.First, energy))
	require.NoError(t, qty.Insert(store, qty.Pressure, qty.Zero, make([]float64, len(pos))))
	require.NoError(t, qty.Insert(store, qty.SoundSpeed, qty.Zero, make([]float64, len(pos))))

	mat := qty.NewMaterial("gas")
	eos, err := material.NewEos("ideal-gas", fun.Prms{{N: "gamma", V: 1.4}})
	require.NoError(t, err)
	mat.EoS = eos
	require.NoError(t, store.AppendPartition(mat, len(pos)))
	return store
}

// yKineticEnergy sums (1/2) m vy^2, the shear-instability growth proxy.
func yKineticEnergy(t *testing.T, store *qty.Store) float64 {
	t.Helper()
	mass, err := qty.GetValue[float64](store, qty.Mass)
	require.NoError(t, err)
	v, err := qty.GetDt[tensor.Vector4](store, qty.Position)
	require.NoError(t, err)
	e := 0.0
	for i := range mass {
		e += 0.5 * mass[i] * v[i].Spatial[1] * v[i].Spatial[1]
	}
	return e
}

// Counter-streaming periodic layers: the run must stay finite, conserve
// mass, and keep feeding the seeded transverse mode rather than damping
// it to zero.
func TestKelvinHelmholtzSheet(t *testing.T) {
	const L = 1.0
	store := kelvinHelmholtzStore(t, 8, L)

	lut, err := kernel.NewLUT(kernel.CubicSpline{}, 10000)
	require.NoError(t, err)
	box := finder.PeriodicBox{Period: [3]float64{L, L, L}, Enabled: [3]bool{true, true, true}}
	find := finder.NewPeriodic(finder.NewGrid(), box)
	terms := equation.NewHolder().
		Add(equation.NewPressureForce()).
		Add(equation.NewArtificialViscosity(equation.AVStandard)).
		Add(equation.NewContinuityEquation())

	solver, err := sph.NewSolver(sched.NewSequential(), find, lut, terms, nil, nil)
	require.NoError(t, err)
	require.NoError(t, solver.CreateQuantities(store))

	crit := timestep.NewMulti(timestep.NewCourant(0.2))
	integ, err := integrator.NewLeapFrog(1e-4, 1e-2, crit)
	require.NoError(t, err)

	massBefore := totalMass(t, store)
	eyBefore := yKineticEnergy(t, store)
	require.Greater(t, eyBefore, 0.0)

	driver := &run.Driver{
		Store:      store,
		Solver:     solver,
		Integrator: integ,
		TimeStart:  0,
		TimeEnd:    8.0,
		End:        run.EndCondition{StepLimit: 25},
		Stats:      stats.New(),
	}
	require.NoError(t, driver.Run())

	assert.InEpsilon(t, massBefore, totalMass(t, store), 1e-9)

	rho, err := qty.GetValue[float64](store, qty.Density)
	require.NoError(t, err)
	for i, r := range rho {
		require.False(t, math.IsNaN(r), "particle %d density is NaN", i)
		assert.Greater(t, r, 0.0, "particle %d", i)
	}

	eyAfter := yKineticEnergy(t, store)
	require.False(t, math.IsNaN(eyAfter))
	assert.Greater(t, eyAfter, 0.1*eyBefore, "transverse mode should not be damped away")
}
