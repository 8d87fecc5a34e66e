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

// VelocityGradient accumulates grad(v)_i = sum_j (m_j/rho_j) (v_j-v_i)⊗grad_i,
// the symmetric velocity-gradient tensor used as the strain rate by the
// solid-stress and damage terms.
type VelocityGradient struct {
	rho, mass []float64
	v         []tensor.Vector4
	gradv     []tensor.SymmetricTensor
}

// NewVelocityGradient returns an unconfigured VelocityGradient.
func NewVelocityGradient() *VelocityGradient { return &VelocityGradient{} }

// Create declares the VELOCITY_GRADIENT output buffer.
func (d *VelocityGradient) Create(ac *accum.Accumulated) error {
	return accum.Insert[tensor.SymmetricTensor](ac, qty.VelocityGradient, qty.Zero, accum.Unique)
}

// Initialize binds density/mass/velocity inputs and the output buffer.
func (d *VelocityGradient) Initialize(input *qty.Store, ac *accum.Accumulated) error {
	rho, err := qty.GetValue[float64](input, qty.Density)
	if err != nil {
		return err
	}
	mass, err := qty.GetValue[float64](input, qty.Mass)
	if err != nil {
		return err
	}
	v, err := qty.GetDt[tensor.Vector4](input, qty.Position)
	if err != nil {
		return err
	}
	d.rho, d.mass, d.v = rho, mass, v
	d.gradv = accum.GetBuffer[tensor.SymmetricTensor](ac, qty.VelocityGradient, qty.Zero)
	return nil
}

// EvalSymmetric adds the pair (idx,j) contribution to both particles.
func (d *VelocityGradient) EvalSymmetric(idx int, neighs []int, grads []mgl64.Vec3) {
	for k, j := range neighs {
		dv := d.v[j].Spatial.Sub(d.v[idx].Spatial)
		outer := tensor.SymmetricFromOuter(dv, grads[k])
		d.gradv[idx] = d.gradv[idx].Add(outer.Scale(d.mass[j] / d.rho[j]))
		d.gradv[j] = d.gradv[j].Add(outer.Scale(d.mass[idx] / d.rho[idx]))
	}
}

// EvalAsymmetric adds the full neighbour list's contribution to idx only.
func (d *VelocityGradient) EvalAsymmetric(idx int, neighs []int, grads []mgl64.Vec3) {
	for k, j := range neighs {
		dv := d.v[j].Spatial.Sub(d.v[idx].Spatial)
		outer := tensor.SymmetricFromOuter(dv, grads[k])
		d.gradv[idx] = d.gradv[idx].Add(outer.Scale(d.mass[j] / d.rho[j]))
	}
}

// Phase reports PhaseEvaluation.
func (d *VelocityGradient) Phase() Phase { return PhaseEvaluation }

// Symmetric reports true.
func (d *VelocityGradient) Symmetric() bool { return true }

// Equals reports whether other is also a VelocityGradient.
func (d *VelocityGradient) Equals(other Derivative) bool {
	_, ok := other.(*VelocityGradient)
	return ok
}
