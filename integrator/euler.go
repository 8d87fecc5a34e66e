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

// Euler is the explicit first-order scheme: x += v*dt, v += a*dt,
// q += dq*dt, with derivatives evaluated at the step's start.
type Euler struct {
	stepper
}

// NewEuler returns an Euler integrator starting at initialDt.
func NewEuler(initialDt, maxDt float64, criterion *timestep.Multi) (*Euler, error) {
	s, err := newStepper(initialDt, maxDt, criterion)
	if err != nil {
		return nil, err
	}
	return &Euler{stepper: s}, nil
}

// Step evaluates derivatives and advances by dt.
func (e *Euler) Step(solver *sph.Solver, store *qty.Store, st *stats.Stats) error {
	if err := solver.Evaluate(store, st); err != nil {
		return err
	}
	dt := e.dt
	if err := driftValues(store, store, dt); err != nil {
		return err
	}
	if err := kickRates(store, store, dt); err != nil {
		return err
	}
	return e.selectNext(store, st)
}
