// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package deriv

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/cpmech/gosph/accum"
	"github.com/cpmech/gosph/qty"
	"github.com/cpmech/gosph/tensor"
)

// PressureGradient accumulates the pressure term of the equation of
// motion, dv/dt_i += -sum_j m_j (p_i+p_j)/(rho_i rho_j) grad_i, directly
// into POSITION's second derivative (acceleration).
type PressureGradient struct {
	p, rho, mass []float64
	dv           []tensor.Vector4
}

// NewPressureGradient returns an unconfigured PressureGradient.
func NewPressureGradient() *PressureGradient { return &PressureGradient{} }

// Create declares the POSITION second-derivative output buffer.
func (d *PressureGradient) Create(ac *accum.Accumulated) error {
	return accum.Insert[tensor.Vector4](ac, qty.Position, qty.Second, accum.Unique)
}

// Initialize binds pressure/density/mass inputs and the acceleration buffer.
func (d *PressureGradient) Initialize(input *qty.Store, ac *accum.Accumulated) error {
	p, err := qty.GetValue[float64](input, qty.Pressure)
	if err != nil {
		return err
	}
	rho, err := qty.GetValue[float64](input, qty.Density)
	if err != nil {
		return err
	}
	mass, err := qty.GetValue[float64](input, qty.Mass)
	if err != nil {
		return err
	}
	d.p, d.rho, d.mass = p, rho, mass
	d.dv = accum.GetBuffer[tensor.Vector4](ac, qty.Position, qty.Second)
	return nil
}

// EvalSymmetric adds the pair (idx,j) acceleration to both particles.
func (d *PressureGradient) EvalSymmetric(idx int, neighs []int, grads []mgl64.Vec3) {
	for k, j := range neighs {
		factor := -(d.p[idx] + d.p[j]) / (d.rho[idx] * d.rho[j])
		f := grads[k].Mul(factor)
		d.dv[idx].Spatial = d.dv[idx].Spatial.Add(f.Mul(d.mass[j]))
		d.dv[j].Spatial = d.dv[j].Spatial.Sub(f.Mul(d.mass[idx]))
	}
}

// EvalAsymmetric adds the full neighbour list's acceleration to idx only.
func (d *PressureGradient) EvalAsymmetric(idx int, neighs []int, grads []mgl64.Vec3) {
	for k, j := range neighs {
		factor := -(d.p[idx] + d.p[j]) / (d.rho[idx] * d.rho[j])
		f := grads[k].Mul(factor)
		d.dv[idx].Spatial = d.dv[idx].Spatial.Add(f.Mul(d.mass[j]))
	}
}

// Phase reports PhaseDerivative: this term consumes pressure, itself
// produced from density by the equation of state ahead of the loop.
func (d *PressureGradient) Phase() Phase { return PhaseDerivative }

// Symmetric reports true.
func (d *PressureGradient) Symmetric() bool { return true }

// Equals reports whether other is also a PressureGradient.
func (d *PressureGradient) Equals(other Derivative) bool {
	_, ok := other.(*PressureGradient)
	return ok
}
