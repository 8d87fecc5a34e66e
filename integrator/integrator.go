// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package integrator implements the time-stepping strategies that
// advance the quantity store: explicit Euler, predictor-corrector,
// leap-frog, classical Runge-Kutta and Bulirsch-Stoer. Each strategy
// owns the current timestep and re-derives the next one from the
// registered criteria after every step.
package integrator

import (
	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/gosph/qty"
	"github.com/cpmech/gosph/sph"
	"github.com/cpmech/gosph/stats"
	"github.com/cpmech/gosph/timestep"
)

// Integrator advances the store by one step. A step either completes or
// returns an error; the run driver turns the error into an abort flag
// on the statistics record, so no failure crosses the step boundary.
type Integrator interface {
	// Step evaluates derivatives via solver and advances store by the
	// current timestep. st may be nil.
	Step(solver *sph.Solver, store *qty.Store, st *stats.Stats) error

	// Timestep returns the timestep the NEXT Step call will use.
	Timestep() float64
}

// stepper carries the timestep bookkeeping every strategy shares: the
// current dt (starting from a configured initial value, never derived),
// the hard maximum, and the criterion composite consulted after each
// step.
type stepper struct {
	dt        float64
	maxDt     float64
	criterion *timestep.Multi
}

func newStepper(initialDt, maxDt float64, criterion *timestep.Multi) (stepper, error) {
	if initialDt <= 0 || maxDt <= 0 {
		return stepper{}, chk.Err("integrator: initial timestep %g and maximum %g must be positive", initialDt, maxDt)
	}
	if initialDt > maxDt {
		initialDt = maxDt
	}
	if criterion == nil {
		criterion = timestep.NewMulti()
	}
	return stepper{dt: initialDt, maxDt: maxDt, criterion: criterion}, nil
}

// Timestep returns the current timestep.
func (s *stepper) Timestep() float64 { return s.dt }

// selectNext re-derives dt from the criteria against the just-advanced
// state.
func (s *stepper) selectNext(store *qty.Store, st *stats.Stats) error {
	dt, err := s.criterion.Select(store, s.maxDt, st)
	if err != nil {
		return err
	}
	s.dt = dt
	return nil
}

// driftValues adds h*rate into the values: x += h*v for second-order
// quantities, q += h*dq/dt for first-order ones. Rates are read from
// src, which may be dst itself or a snapshot.
func driftValues(dst, src *qty.Store, h float64) error {
	var firstErr error
	dst.EachColumn(func(id qty.Id, kind qty.ValueType, order qty.Order) {
		if firstErr != nil || order < qty.First {
			return
		}
		if err := qty.Axpy(dst, qty.Zero, src, qty.First, id, h); err != nil {
			firstErr = err
		}
	})
	return firstErr
}

// kickRates adds h*(second derivative) into the first-derivative slot
// of every second-order quantity: v += h*a.
func kickRates(dst, src *qty.Store, h float64) error {
	var firstErr error
	dst.EachColumn(func(id qty.Id, kind qty.ValueType, order qty.Order) {
		if firstErr != nil || order != qty.Second {
			return
		}
		if err := qty.Axpy(dst, qty.First, src, qty.Second, id, h); err != nil {
			firstErr = err
		}
	})
	return firstErr
}

// advanceState treats (values, rates) as one first-order system and
// adds h times src's rate of change: values advance with src's rates,
// rates of second-order quantities advance with src's second
// derivatives. This is the stage update Runge-Kutta and Bulirsch-Stoer
// build on.
func advanceState(dst, src *qty.Store, h float64) error {
	if err := driftValues(dst, src, h); err != nil {
		return err
	}
	return kickRates(dst, src, h)
}

// copyState overwrites dst's state (values and first-order rates of
// second-order quantities) with src's, leaving dst's derivative slots
// alone.
func copyState(dst, src *qty.Store) error {
	var firstErr error
	dst.EachColumn(func(id qty.Id, kind qty.ValueType, order qty.Order) {
		if firstErr != nil {
			return
		}
		if err := qty.CopySlot(dst, qty.Zero, src, qty.Zero, id); err != nil {
			firstErr = err
			return
		}
		if order == qty.Second {
			if err := qty.CopySlot(dst, qty.First, src, qty.First, id); err != nil {
				firstErr = err
			}
		}
	})
	return firstErr
}

// eachStateSlot visits every state slot: (id, Zero) for all quantities
// and (id, First) for second-order ones.
func eachStateSlot(s *qty.Store, f func(id qty.Id, slot qty.Order) error) error {
	var firstErr error
	s.EachColumn(func(id qty.Id, kind qty.ValueType, order qty.Order) {
		if firstErr != nil {
			return
		}
		if err := f(id, qty.Zero); err != nil {
			firstErr = err
			return
		}
		if order == qty.Second {
			firstErr = f(id, qty.First)
		}
	})
	return firstErr
}
