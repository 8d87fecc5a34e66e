// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package timestep implements the adaptive timestep criteria: Courant,
// derivative and acceleration, plus the composite that takes their
// minimum and records which one governed.
package timestep

import (
	"github.com/cpmech/gosph/qty"
	"github.com/cpmech/gosph/stats"
)

// Result carries a criterion's proposed timestep and, where meaningful,
// the (quantity, particle) pair that limited it.
type Result struct {
	Dt       float64
	Quantity qty.Id
	Particle int
}

// Criterion derives the next timestep from the current state. maxDt is
// both the ceiling and the value returned when the criterion does not
// bind (e.g. every derivative is zero).
type Criterion interface {
	// Name identifies the criterion in statistics records.
	Name() string

	// Compute scans store and returns the proposed timestep, capped at
	// maxDt.
	Compute(store *qty.Store, maxDt float64) (Result, error)
}

// Multi composes criteria and takes the minimum; the winner's name and
// limiting quantity are written into the statistics record on Select.
type Multi struct {
	criteria []Criterion
}

// NewMulti returns a composite over the given criteria. An empty
// composite always selects maxDt.
func NewMulti(criteria ...Criterion) *Multi {
	return &Multi{criteria: criteria}
}

// Add appends another criterion.
func (m *Multi) Add(c Criterion) *Multi {
	m.criteria = append(m.criteria, c)
	return m
}

// Select computes every criterion, returns the smallest timestep and
// records the winner in st (which may be nil).
func (m *Multi) Select(store *qty.Store, maxDt float64, st *stats.Stats) (float64, error) {
	dt := maxDt
	winner := "maximum"
	var limiting Result
	limiting.Particle = -1
	limiting.Quantity = -1
	for _, c := range m.criteria {
		res, err := c.Compute(store, maxDt)
		if err != nil {
			return 0, err
		}
		if res.Dt < dt {
			dt = res.Dt
			winner = c.Name()
			limiting = res
		}
	}
	if st != nil {
		st.Set(stats.Timestep, dt)
		st.Set(stats.TimestepCriterion, winner)
		if limiting.Quantity >= 0 {
			st.Set(stats.TimestepQuantity, limiting.Quantity.String())
		}
		if limiting.Particle >= 0 {
			st.Set(stats.TimestepParticle, limiting.Particle)
		}
	}
	return dt, nil
}
