// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package timestep

import (
	"math"

	"github.com/cpmech/gosph/qty"
	"github.com/cpmech/gosph/tensor"
)

// Acceleration limits the timestep to factor*sqrt(h/|a|), the time a
// particle needs to move a smoothing length under its current
// acceleration.
type Acceleration struct {
	Factor float64
}

// NewAcceleration returns an Acceleration criterion with factor 1.
func NewAcceleration() *Acceleration {
	return &Acceleration{Factor: 1}
}

// Name reports "acceleration".
func (a *Acceleration) Name() string { return "acceleration" }

// Compute returns factor*min_i sqrt(h_i/|a_i|), capped at maxDt.
func (a *Acceleration) Compute(store *qty.Store, maxDt float64) (Result, error) {
	r, err := qty.GetValue[tensor.Vector4](store, qty.Position)
	if err != nil {
		return Result{}, err
	}
	acc, err := qty.GetD2t[tensor.Vector4](store, qty.Position)
	if err != nil {
		return Result{}, err
	}
	res := Result{Dt: maxDt, Quantity: qty.Position, Particle: -1}
	for i := range r {
		mag := acc[i].SpatialNorm()
		if mag == 0 {
			continue
		}
		dt := a.Factor * math.Sqrt(r[i].H/mag)
		if dt < res.Dt {
			res.Dt = dt
			res.Particle = i
		}
	}
	return res, nil
}
