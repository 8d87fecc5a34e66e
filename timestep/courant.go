// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package timestep

import (
	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/gosph/qty"
	"github.com/cpmech/gosph/tensor"
)

// Courant limits the timestep to C*h/c_s, the time a sound wave needs
// to cross a fraction of the smoothing length.
type Courant struct {
	Number float64 // Courant number, in (0,1)
}

// NewCourant returns a Courant criterion with the given Courant number.
func NewCourant(number float64) *Courant {
	return &Courant{Number: number}
}

// Name reports "courant".
func (c *Courant) Name() string { return "courant" }

// Compute returns C*min_i(h_i/cs_i), capped at maxDt.
func (c *Courant) Compute(store *qty.Store, maxDt float64) (Result, error) {
	if c.Number <= 0 || c.Number >= 1 {
		return Result{}, chk.Err("timestep: Courant number %g outside (0,1)", c.Number)
	}
	r, err := qty.GetValue[tensor.Vector4](store, qty.Position)
	if err != nil {
		return Result{}, err
	}
	cs, err := qty.GetValue[float64](store, qty.SoundSpeed)
	if err != nil {
		return Result{}, err
	}
	res := Result{Dt: maxDt, Quantity: qty.SoundSpeed, Particle: -1}
	for i := range r {
		if cs[i] <= 0 {
			continue
		}
		dt := c.Number * r[i].H / cs[i]
		if dt < res.Dt {
			res.Dt = dt
			res.Particle = i
		}
	}
	return res, nil
}
