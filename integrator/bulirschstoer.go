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

// BulirschStoer advances the step with the modified midpoint method at
// two substep counts and Richardson-extrapolates the pair: the midpoint
// method's error expansion has only even powers, so
// y = y_{2n} + (y_{2n} - y_n)/3 cancels the leading term.
type BulirschStoer struct {
	stepper
	// Substeps is the smaller midpoint subdivision; the extrapolation
	// partner uses twice as many.
	Substeps int
}

// NewBulirschStoer returns a Bulirsch-Stoer integrator with a 2/4
// substep pair.
func NewBulirschStoer(initialDt, maxDt float64, criterion *timestep.Multi) (*BulirschStoer, error) {
	s, err := newStepper(initialDt, maxDt, criterion)
	if err != nil {
		return nil, err
	}
	return &BulirschStoer{stepper: s, Substeps: 2}, nil
}

// Step advances store by one extrapolated midpoint step.
func (b *BulirschStoer) Step(solver *sph.Solver, store *qty.Store, st *stats.Stats) error {
	dt := b.dt
	n := b.Substeps
	if n < 2 {
		n = 2
	}
	coarse, err := b.midpoint(solver, store, n, dt)
	if err != nil {
		return err
	}
	fine, err := b.midpoint(solver, store, 2*n, dt)
	if err != nil {
		return err
	}
	if err := copyState(store, fine); err != nil {
		return err
	}
	err = eachStateSlot(store, func(id qty.Id, slot qty.Order) error {
		if err := qty.Axpy(store, slot, fine, slot, id, 1.0/3.0); err != nil {
			return err
		}
		return qty.Axpy(store, slot, coarse, slot, id, -1.0/3.0)
	})
	if err != nil {
		return err
	}
	if err := solver.Evaluate(store, st); err != nil {
		return err
	}
	return b.selectNext(store, st)
}

// midpoint runs the modified midpoint method with n substeps on a clone
// of base and returns the advanced clone.
func (b *BulirschStoer) midpoint(solver *sph.Solver, base *qty.Store, n int, dt float64) (*qty.Store, error) {
	h := dt / float64(n)
	prev := base.Clone(qty.CloneAll)
	if err := solver.Evaluate(prev, nil); err != nil {
		return nil, err
	}
	cur := prev.Clone(qty.CloneAll)
	if err := advanceState(cur, prev, h); err != nil {
		return nil, err
	}
	for m := 1; m < n; m++ {
		if err := solver.Evaluate(cur, nil); err != nil {
			return nil, err
		}
		next := prev // z_{m+1} = z_{m-1} + 2h f(z_m), reusing z_{m-1}'s storage
		if err := advanceState(next, cur, 2*h); err != nil {
			return nil, err
		}
		prev, cur = cur, next
	}
	if err := solver.Evaluate(cur, nil); err != nil {
		return nil, err
	}
	// y = (z_n + z_{n-1} + h f(z_n)) / 2
	result := cur.Clone(qty.CloneAll)
	err := eachStateSlot(result, func(id qty.Id, slot qty.Order) error {
		if err := qty.Axpy(result, slot, prev, slot, id, 1); err != nil {
			return err
		}
		return qty.ScaleSlot(result, slot, id, 0.5)
	})
	if err != nil {
		return nil, err
	}
	if err := advanceState(result, cur, h/2); err != nil {
		return nil, err
	}
	return result, nil
}
