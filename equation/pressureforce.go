// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package equation

import (
	"fmt"

	"github.com/cpmech/gosph/deriv"
	"github.com/cpmech/gosph/material"
	"github.com/cpmech/gosph/qty"
)

// PressureForce is the pressure-gradient term of the equation of
// motion, grounded directly on original_source/lib/solvers/PressureForce.h:
// it requires PressureGradient and VelocityDivergence, computes
// pressure from each material's equation of state ahead of the loop,
// and deposits the pV-work term into the energy derivative afterward.
type PressureForce struct{}

// NewPressureForce returns a PressureForce term.
func NewPressureForce() *PressureForce { return &PressureForce{} }

// SetDerivatives requires PressureGradient and VelocityDivergence.
func (t *PressureForce) SetDerivatives(h *deriv.Holder) error {
	h.Require(deriv.NewPressureGradient())
	h.Require(deriv.NewVelocityDivergence())
	return nil
}

// Create is a no-op: Pressure/Energy/Density/Mass columns are created
// by the store setup, not by this term.
func (t *PressureForce) Create(s *qty.Store) error { return nil }

// Initialize computes pressure and sound speed from density and
// specific energy via each material partition's equation of state.
func (t *PressureForce) Initialize(input *qty.Store) error {
	rho, err := qty.GetValue[float64](input, qty.Density)
	if err != nil {
		return err
	}
	u, err := qty.GetValue[float64](input, qty.Energy)
	if err != nil {
		return err
	}
	p, err := qty.GetValue[float64](input, qty.Pressure)
	if err != nil {
		return err
	}
	c, err := qty.GetValue[float64](input, qty.SoundSpeed)
	if err != nil {
		return err
	}
	for _, part := range input.Partitions() {
		eos, ok := part.Mat.EoS.(material.Eos)
		if !ok {
			return fmt.Errorf("equation: material %q has no equation of state", part.Mat.Name)
		}
		for i := part.Begin; i < part.End; i++ {
			p[i] = eos.Pressure(rho[i], u[i])
			c[i] = eos.SoundSpeed(rho[i], u[i], p[i])
		}
	}
	return nil
}

// Finalize deposits the pV-work term, de/dt += (p/rho) divv, into the
// energy derivative once VelocityDivergence has been reduced.
func (t *PressureForce) Finalize(input *qty.Store) error {
	rho, err := qty.GetValue[float64](input, qty.Density)
	if err != nil {
		return err
	}
	p, err := qty.GetValue[float64](input, qty.Pressure)
	if err != nil {
		return err
	}
	divv, err := qty.GetValue[float64](input, qty.VelocityDivergence)
	if err != nil {
		return err
	}
	du, err := qty.GetDt[float64](input, qty.Energy)
	if err != nil {
		return err
	}
	for i := range du {
		du[i] += p[i] / rho[i] * divv[i]
	}
	return nil
}
