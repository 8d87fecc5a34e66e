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

// VelocityDivergence accumulates div(v)_i = sum_j (m_j/rho_j) (v_j-v_i).grad_i,
// the rate of volume change used by the continuity equation and the
// artificial-viscosity limiter.
type VelocityDivergence struct {
	rho, mass []float64
	v         []tensor.Vector4
	divv      []float64
}

// NewVelocityDivergence returns an unconfigured VelocityDivergence.
func NewVelocityDivergence() *VelocityDivergence { return &VelocityDivergence{} }

// Create declares the VELOCITY_DIVERGENCE output buffer.
func (d *VelocityDivergence) Create(ac *accum.Accumulated) error {
	return accum.Insert[float64](ac, qty.VelocityDivergence, qty.Zero, accum.Unique)
}

// Initialize binds density/mass/velocity inputs and the output buffer.
func (d *VelocityDivergence) Initialize(input *qty.Store, ac *accum.Accumulated) error {
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
	d.divv = accum.GetBuffer[float64](ac, qty.VelocityDivergence, qty.Zero)
	return nil
}

// EvalSymmetric adds the pair (idx,j) contribution to both particles.
func (d *VelocityDivergence) EvalSymmetric(idx int, neighs []int, grads []mgl64.Vec3) {
	for k, j := range neighs {
		dv := d.v[j].Spatial.Sub(d.v[idx].Spatial)
		proj := dv.Dot(grads[k])
		d.divv[idx] += d.mass[j] / d.rho[j] * proj
		d.divv[j] += d.mass[idx] / d.rho[idx] * proj
	}
}

// EvalAsymmetric adds the full neighbour list's contribution to idx only.
func (d *VelocityDivergence) EvalAsymmetric(idx int, neighs []int, grads []mgl64.Vec3) {
	for k, j := range neighs {
		dv := d.v[j].Spatial.Sub(d.v[idx].Spatial)
		proj := dv.Dot(grads[k])
		d.divv[idx] += d.mass[j] / d.rho[j] * proj
	}
}

// Phase reports PhaseEvaluation: divergence must be ready before terms
// that read it (artificial viscosity, adaptive smoothing) run.
func (d *VelocityDivergence) Phase() Phase { return PhaseEvaluation }

// Symmetric reports true: the divergence projection is frame-independent.
func (d *VelocityDivergence) Symmetric() bool { return true }

// Equals reports whether other is also a VelocityDivergence.
func (d *VelocityDivergence) Equals(other Derivative) bool {
	_, ok := other.(*VelocityDivergence)
	return ok
}
