// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package equation

import (
	"math"

	"github.com/cpmech/gosph/deriv"
	"github.com/cpmech/gosph/material"
	"github.com/cpmech/gosph/qty"
	"github.com/cpmech/gosph/tensor"
)

// Damage integrates each material partition's damage quantity via its
// Damage strategy. It estimates the local tensile strain from the
// elastic relation strain = sqrt(2*J2(stress))/(2G) -- the inverse of
// the Hooke stress-rate SolidStress already applies -- since the store
// carries no independent strain quantity of its own; this keeps the two
// terms' strength models consistent rather than introducing a second,
// unrelated strain measure. The strain-rate invariant instead comes
// directly from VelocityGradient's deviatoric part, as Grady-Kipp
// activation tracks accumulated strain but scales crack growth by the
// instantaneous strain rate.
type Damage struct {
	shearModulusKey string
}

// NewDamage returns a Damage term reading the shear modulus from a
// material's Params under "shear_modulus".
func NewDamage() *Damage {
	return &Damage{shearModulusKey: "shear_modulus"}
}

// SetDerivatives requires VelocityGradient.
func (t *Damage) SetDerivatives(h *deriv.Holder) error {
	h.Require(deriv.NewVelocityGradient())
	return nil
}

// Create adds the Damage column when the store setup has not already
// provided one.
func (t *Damage) Create(s *qty.Store) error {
	if s.Has(qty.Damage) {
		return nil
	}
	return qty.Insert(s, qty.Damage, qty.First, make([]float64, s.ParticleCount()))
}

// Initialize has no pre-loop work.
func (t *Damage) Initialize(input *qty.Store) error { return nil }

// Finalize integrates each particle's damage rate via its material's
// Damage strategy.
func (t *Damage) Finalize(input *qty.Store) error {
	damage, err := qty.GetValue[float64](input, qty.Damage)
	if err != nil {
		return err
	}
	stress, err := qty.GetValue[tensor.TracelessTensor](input, qty.Stress)
	if err != nil {
		return err
	}
	gradv, err := qty.GetValue[tensor.SymmetricTensor](input, qty.VelocityGradient)
	if err != nil {
		return err
	}
	dDamage, err := qty.GetDt[float64](input, qty.Damage)
	if err != nil {
		return err
	}
	for _, part := range input.Partitions() {
		dmg, ok := part.Mat.Damage.(material.Damage)
		if !ok {
			continue // materials without a Damage strategy never fracture
		}
		g := part.Mat.Params[t.shearModulusKey]
		for i := part.Begin; i < part.End; i++ {
			strainRateInv := math.Sqrt(2 * gradv[i].Deviator().SecondInvariant())
			var strain float64
			if g > 0 {
				strain = math.Sqrt(2*stress[i].SecondInvariant()) / (2 * g)
			}
			dDamage[i] = dmg.Rate(damage[i], strain, strainRateInv)
		}
	}
	return nil
}
