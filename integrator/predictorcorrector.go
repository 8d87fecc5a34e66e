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

// PredictorCorrector predicts the step from the previous derivatives
// (x += v*dt + a*dt^2/2, v += a*dt, q += dq*dt), re-evaluates at the
// predicted state and corrects with the derivative difference:
// x += (a_new-a_old)*dt^2/3, v += (a_new-a_old)*dt/2,
// q += (dq_new-dq_old)*dt/2.
type PredictorCorrector struct {
	stepper
	primed bool
}

// NewPredictorCorrector returns a predictor-corrector integrator.
func NewPredictorCorrector(initialDt, maxDt float64, criterion *timestep.Multi) (*PredictorCorrector, error) {
	s, err := newStepper(initialDt, maxDt, criterion)
	if err != nil {
		return nil, err
	}
	return &PredictorCorrector{stepper: s}, nil
}

// Step advances store by one predict-evaluate-correct cycle.
func (p *PredictorCorrector) Step(solver *sph.Solver, store *qty.Store, st *stats.Stats) error {
	if !p.primed {
		if err := solver.Evaluate(store, nil); err != nil {
			return err
		}
		p.primed = true
	}
	dt := p.dt

	// predictor, using the previous step's derivatives
	if err := driftValues(store, store, dt); err != nil {
		return err
	}
	var firstErr error
	store.EachColumn(func(id qty.Id, kind qty.ValueType, order qty.Order) {
		if firstErr != nil || order != qty.Second {
			return
		}
		firstErr = qty.Axpy(store, qty.Zero, store, qty.Second, id, dt*dt/2)
	})
	if firstErr != nil {
		return firstErr
	}
	if err := kickRates(store, store, dt); err != nil {
		return err
	}

	old := store.Clone(qty.CloneAll)
	if err := solver.Evaluate(store, st); err != nil {
		return err
	}

	// corrector: apply the derivative difference
	var corrErr error
	store.EachColumn(func(id qty.Id, kind qty.ValueType, order qty.Order) {
		if corrErr != nil {
			return
		}
		switch order {
		case qty.First:
			if err := qty.Axpy(store, qty.Zero, store, qty.First, id, dt/2); err != nil {
				corrErr = err
				return
			}
			corrErr = qty.Axpy(store, qty.Zero, old, qty.First, id, -dt/2)
		case qty.Second:
			if err := qty.Axpy(store, qty.Zero, store, qty.Second, id, dt*dt/3); err != nil {
				corrErr = err
				return
			}
			if err := qty.Axpy(store, qty.Zero, old, qty.Second, id, -dt*dt/3); err != nil {
				corrErr = err
				return
			}
			if err := qty.Axpy(store, qty.First, store, qty.Second, id, dt/2); err != nil {
				corrErr = err
				return
			}
			corrErr = qty.Axpy(store, qty.First, old, qty.Second, id, -dt/2)
		}
	})
	if corrErr != nil {
		return corrErr
	}
	return p.selectNext(store, st)
}
