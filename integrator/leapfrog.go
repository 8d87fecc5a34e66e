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

// LeapFrog is the kick-drift-kick scheme: a half kick with the
// acceleration carried over from the previous step, a full drift, a
// re-evaluation, and a closing half kick. The first step pays one extra
// evaluation to prime the carried-over acceleration.
type LeapFrog struct {
	stepper
	primed bool
}

// NewLeapFrog returns a LeapFrog integrator starting at initialDt.
func NewLeapFrog(initialDt, maxDt float64, criterion *timestep.Multi) (*LeapFrog, error) {
	s, err := newStepper(initialDt, maxDt, criterion)
	if err != nil {
		return nil, err
	}
	return &LeapFrog{stepper: s}, nil
}

// Step advances store by one kick-drift-kick cycle.
func (l *LeapFrog) Step(solver *sph.Solver, store *qty.Store, st *stats.Stats) error {
	if !l.primed {
		if err := solver.Evaluate(store, nil); err != nil {
			return err
		}
		l.primed = true
	}
	dt := l.dt
	if err := kickRates(store, store, dt/2); err != nil {
		return err
	}
	if err := driftValues(store, store, dt); err != nil {
		return err
	}
	if err := solver.Evaluate(store, st); err != nil {
		return err
	}
	if err := kickRates(store, store, dt/2); err != nil {
		return err
	}
	return l.selectNext(store, st)
}
