// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package integrator

import (
	"github.com/cpmech/gosph/qty"
	"github.com/cpmech/gosph/sph"
	"github.com/cpmech/gosph/stats"
	"github.com/cpmech/gosph/timestep"
)

// RungeKutta is the classical four-stage scheme. Each stage clones the
// store so the solver can evaluate derivatives at the stage state; the
// stage rates (velocities and evaluated derivatives together) are then
// combined with the 1/6, 2/6, 2/6, 1/6 weights.
//
// gosl's ode.Solver was considered for the stage bookkeeping but not
// used: its right-hand side is a dense []float64 callback, while ours
// is a full solver pass over a heterogeneous columnar store, so the
// flattening adapter would have cost more than the four-line tableau.
type RungeKutta struct {
	stepper
}

// NewRungeKutta returns a classical RK4 integrator.
func NewRungeKutta(initialDt, maxDt float64, criterion *timestep.Multi) (*RungeKutta, error) {
	s, err := newStepper(initialDt, maxDt, criterion)
	if err != nil {
		return nil, err
	}
	return &RungeKutta{stepper: s}, nil
}

// Step advances store through the four stages.
func (r *RungeKutta) Step(solver *sph.Solver, store *qty.Store, st *stats.Stats) error {
	dt := r.dt
	base := store.Clone(qty.CloneAll)

	if err := solver.Evaluate(store, nil); err != nil {
		return err
	}
	k1 := store.Clone(qty.CloneAll)

	if err := r.stage(solver, store, base, k1, dt/2); err != nil {
		return err
	}
	k2 := store.Clone(qty.CloneAll)

	if err := r.stage(solver, store, base, k2, dt/2); err != nil {
		return err
	}
	k3 := store.Clone(qty.CloneAll)

	if err := r.stage(solver, store, base, k3, dt); err != nil {
		return err
	}
	k4 := store.Clone(qty.CloneAll)

	if err := copyState(store, base); err != nil {
		return err
	}
	for _, part := range []struct {
		k      *qty.Store
		weight float64
	}{{k1, 1}, {k2, 2}, {k3, 2}, {k4, 1}} {
		if err := advanceState(store, part.k, part.weight*dt/6); err != nil {
			return err
		}
	}
	// leave the final stage's derivatives visible for the criteria
	if err := solver.Evaluate(store, st); err != nil {
		return err
	}
	return r.selectNext(store, st)
}

// stage resets store to base, advances it by h along k's rates and
// evaluates derivatives there.
func (r *RungeKutta) stage(solver *sph.Solver, store, base, k *qty.Store, h float64) error {
	if err := copyState(store, base); err != nil {
		return err
	}
	if err := advanceState(store, k, h); err != nil {
		return err
	}
	return solver.Evaluate(store, nil)
}
