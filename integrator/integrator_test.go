// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package integrator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cpmech/gosph/deriv"
	"github.com/cpmech/gosph/equation"
	"github.com/cpmech/gosph/finder"
	"github.com/cpmech/gosph/kernel"
	"github.com/cpmech/gosph/qty"
	"github.com/cpmech/gosph/sched"
	"github.com/cpmech/gosph/sph"
	"github.com/cpmech/gosph/stats"
	"github.com/cpmech/gosph/tensor"
	"github.com/cpmech/gosph/timestep"
)

// springForce pulls every particle toward the origin with a = -omega^2*x,
// giving the integrators an analytic trajectory to hit.
type springForce struct {
	omega2 float64
}

func (f *springForce) SetDerivatives(h *deriv.Holder) error { return nil }
func (f *springForce) Create(s *qty.Store) error            { return nil }
func (f *springForce) Initialize(input *qty.Store) error    { return nil }

func (f *springForce) Finalize(input *qty.Store) error {
	r, err := qty.GetValue[tensor.Vector4](input, qty.Position)
	if err != nil {
		return err
	}
	a, err := qty.GetD2t[tensor.Vector4](input, qty.Position)
	if err != nil {
		return err
	}
	for i := range r {
		a[i].Spatial = a[i].Spatial.Sub(r[i].Spatial.Mul(f.omega2))
	}
	return nil
}

func oscillatorSetup(t *testing.T) (*sph.Solver, *qty.Store) {
	t.Helper()
	store := qty.NewStore()
	require.NoError(t, qty.Insert(store, qty.Position, qty.Second, []tensor.Vector4{
		tensor.NewVector4(1, 0, 0, 1),
	}))
	require.NoError(t, store.AppendPartition(qty.NewMaterial("m"), 1))

	lut, err := kernel.NewLUT(kernel.CubicSpline{}, 1000)
	require.NoError(t, err)
	terms := equation.NewHolder().Add(&springForce{omega2: 1})
	solver, err := sph.NewSolver(sched.NewSequential(), finder.NewGrid(), lut, terms, nil, nil)
	require.NoError(t, err)
	require.NoError(t, solver.CreateQuantities(store))
	return solver, store
}

// run integrates the unit oscillator to t=2 and returns the x error
// against cos(2).
func runOscillator(t *testing.T, integ Integrator, solver *sph.Solver, store *qty.Store, dt float64) float64 {
	t.Helper()
	steps := int(math.Round(2.0 / dt))
	for i := 0; i < steps; i++ {
		require.NoError(t, integ.Step(solver, store, nil))
	}
	r, err := qty.GetValue[tensor.Vector4](store, qty.Position)
	require.NoError(t, err)
	return math.Abs(r[0].Spatial[0] - math.Cos(2))
}

func TestEuler_Oscillator(t *testing.T) {
	solver, store := oscillatorSetup(t)
	integ, err := NewEuler(0.01, 0.01, nil)
	require.NoError(t, err)
	assert.Less(t, runOscillator(t, integ, solver, store, 0.01), 0.05)
}

func TestLeapFrog_Oscillator(t *testing.T) {
	solver, store := oscillatorSetup(t)
	integ, err := NewLeapFrog(0.01, 0.01, nil)
	require.NoError(t, err)
	assert.Less(t, runOscillator(t, integ, solver, store, 0.01), 1e-3)
}

func TestPredictorCorrector_Oscillator(t *testing.T) {
	solver, store := oscillatorSetup(t)
	integ, err := NewPredictorCorrector(0.01, 0.01, nil)
	require.NoError(t, err)
	assert.Less(t, runOscillator(t, integ, solver, store, 0.01), 1e-3)
}

func TestRungeKutta_Oscillator(t *testing.T) {
	solver, store := oscillatorSetup(t)
	integ, err := NewRungeKutta(0.05, 0.05, nil)
	require.NoError(t, err)
	assert.Less(t, runOscillator(t, integ, solver, store, 0.05), 1e-5)
}

func TestBulirschStoer_Oscillator(t *testing.T) {
	solver, store := oscillatorSetup(t)
	integ, err := NewBulirschStoer(0.05, 0.05, nil)
	require.NoError(t, err)
	assert.Less(t, runOscillator(t, integ, solver, store, 0.05), 1e-4)
}

func TestStepper_RejectsNonPositiveTimestep(t *testing.T) {
	_, err := NewEuler(0, 1, nil)
	assert.Error(t, err)
	_, err = NewEuler(0.1, -1, nil)
	assert.Error(t, err)
}

// The initial timestep is the configured value, and the criterion
// composite re-derives it after a step, never above the maximum.
func TestStepper_CriterionCapsTimestep(t *testing.T) {
	solver, store := oscillatorSetup(t)
	require.NoError(t, qty.Insert(store, qty.SoundSpeed, qty.Zero, []float64{100.0}))
	crit := timestep.NewMulti(timestep.NewCourant(0.5))
	integ, err := NewEuler(0.3, 1.0, crit)
	require.NoError(t, err)
	assert.Equal(t, 0.3, integ.Timestep())
	st := stats.New()
	require.NoError(t, integ.Step(solver, store, st))
	assert.InDelta(t, 0.5*1.0/100.0, integ.Timestep(), 1e-12)
	assert.Equal(t, "courant", st.GetString(stats.TimestepCriterion, ""))
}
