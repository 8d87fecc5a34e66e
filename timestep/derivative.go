// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package timestep

import (
	"math"

	"github.com/cpmech/gosph/qty"
)

// Derivative limits the timestep so no first-order quantity changes by
// more than a fraction of its current magnitude in one step:
// dt = factor * |value + clamp_min| / |dvalue/dt|, minimised over
// particles and quantities. The limiting pair is recorded in the
// Result. A quantity whose derivative vanishes everywhere does not
// bind, so an all-zero state yields maxDt.
type Derivative struct {
	Factor float64
}

// NewDerivative returns a Derivative criterion with the given factor.
func NewDerivative(factor float64) *Derivative {
	return &Derivative{Factor: factor}
}

// Name reports "derivative".
func (d *Derivative) Name() string { return "derivative" }

// Compute scans every first-order float quantity.
func (d *Derivative) Compute(store *qty.Store, maxDt float64) (Result, error) {
	res := Result{Dt: maxDt, Quantity: -1, Particle: -1}
	var firstErr error
	store.EachColumn(func(id qty.Id, kind qty.ValueType, order qty.Order) {
		if firstErr != nil || kind != qty.TFloat || order != qty.First {
			return
		}
		values, err := qty.GetValue[float64](store, id)
		if err != nil {
			firstErr = err
			return
		}
		rates, err := qty.GetDt[float64](store, id)
		if err != nil {
			firstErr = err
			return
		}
		for _, part := range store.Partitions() {
			clampMin := 0.0
			if rng, ok := part.Mat.Clamps[id]; ok {
				clampMin = rng.Min
			}
			for i := part.Begin; i < part.End; i++ {
				rate := math.Abs(rates[i])
				if rate == 0 {
					continue
				}
				dt := d.Factor * math.Abs(values[i]+clampMin) / rate
				if dt < res.Dt {
					res.Dt = dt
					res.Quantity = id
					res.Particle = i
				}
			}
		}
	})
	if firstErr != nil {
		return Result{}, firstErr
	}
	return res, nil
}
