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

// StressDivergence accumulates the deviatoric-stress term of the
// equation of motion, the Libersky-Petschek generalisation of
// PressureGradient from an isotropic -p*I stress to the full symmetric
// stress tensor: dv/dt_i += sum_j m_j (S_i/rho_i^2 + S_j/rho_j^2)·grad_i.
// It is registered alongside, not instead of, PressureGradient: S here
// holds only the deviatoric part (qty.Stress is already traceless), so
// the two terms' contributions add without double-counting pressure.
type StressDivergence struct {
	stress   []tensor.TracelessTensor
	rho      []float64
	mass     []float64
	dv       []tensor.Vector4
	rhoSqInv []float64
}

// NewStressDivergence returns an unconfigured StressDivergence.
func NewStressDivergence() *StressDivergence { return &StressDivergence{} }

// Create declares the POSITION second-derivative output buffer.
func (d *StressDivergence) Create(ac *accum.Accumulated) error {
	return accum.Insert[tensor.Vector4](ac, qty.Position, qty.Second, accum.Unique)
}

// Initialize binds stress/density/mass inputs and the acceleration buffer.
func (d *StressDivergence) Initialize(input *qty.Store, ac *accum.Accumulated) error {
	stress, err := qty.GetValue[tensor.TracelessTensor](input, qty.Stress)
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
	d.stress, d.rho, d.mass = stress, rho, mass
	d.rhoSqInv = make([]float64, len(rho))
	for i, r := range rho {
		d.rhoSqInv[i] = 1 / (r * r)
	}
	d.dv = accum.GetBuffer[tensor.Vector4](ac, qty.Position, qty.Second)
	return nil
}

// EvalSymmetric adds the pair (idx,j) acceleration to both particles.
func (d *StressDivergence) EvalSymmetric(idx int, neighs []int, grads []mgl64.Vec3) {
	for k, j := range neighs {
		sigma := d.stress[idx].Scale(d.rhoSqInv[idx]).Add(d.stress[j].Scale(d.rhoSqInv[j]))
		f := sigma.Dot(grads[k])
		d.dv[idx].Spatial = d.dv[idx].Spatial.Add(f.Mul(d.mass[j]))
		d.dv[j].Spatial = d.dv[j].Spatial.Sub(f.Mul(d.mass[idx]))
	}
}

// EvalAsymmetric adds the full neighbour list's acceleration to idx only.
func (d *StressDivergence) EvalAsymmetric(idx int, neighs []int, grads []mgl64.Vec3) {
	for k, j := range neighs {
		sigma := d.stress[idx].Scale(d.rhoSqInv[idx]).Add(d.stress[j].Scale(d.rhoSqInv[j]))
		f := sigma.Dot(grads[k])
		d.dv[idx].Spatial = d.dv[idx].Spatial.Add(f.Mul(d.mass[j]))
	}
}

// Phase reports PhaseDerivative: this term consumes the stress tensor,
// itself integrated by the solid-stress equation term from the previous
// pass's strain rate.
func (d *StressDivergence) Phase() Phase { return PhaseDerivative }

// Symmetric reports true.
func (d *StressDivergence) Symmetric() bool { return true }

// Equals reports whether other is also a StressDivergence.
func (d *StressDivergence) Equals(other Derivative) bool {
	_, ok := other.(*StressDivergence)
	return ok
}
