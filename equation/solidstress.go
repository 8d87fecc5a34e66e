// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package equation

import (
	"github.com/cpmech/gosph/deriv"
	"github.com/cpmech/gosph/material"
	"github.com/cpmech/gosph/qty"
	"github.com/cpmech/gosph/tensor"
)

// SolidStress is the deviatoric-stress term: it requires VelocityGradient
// (the strain rate) and StressDivergence (the stress contribution to
// acceleration), and integrates each material partition's stress rate via
// its Rheology strategy once VelocityGradient has been reduced. Grounded
// on original_source/lib/solvers/Derivative.h's generic pre/post-loop
// split, generalised from PressureForce.h's scalar EoS call to a
// tensor-valued Rheology call.
type SolidStress struct {
	shearModulusKey string
}

// NewSolidStress returns a SolidStress term reading the shear modulus
// from a material's Params under "shear_modulus".
func NewSolidStress() *SolidStress {
	return &SolidStress{shearModulusKey: "shear_modulus"}
}

// SetDerivatives requires VelocityGradient and StressDivergence.
func (t *SolidStress) SetDerivatives(h *deriv.Holder) error {
	h.Require(deriv.NewVelocityGradient())
	h.Require(deriv.NewStressDivergence())
	return nil
}

// Create adds the deviatoric Stress column when the store setup has not
// already provided one.
func (t *SolidStress) Create(s *qty.Store) error {
	if s.Has(qty.Stress) {
		return nil
	}
	return qty.Insert(s, qty.Stress, qty.First, make([]tensor.TracelessTensor, s.ParticleCount()))
}

// Initialize has no pre-loop work: stress is already current from the
// previous pass's integration.
func (t *SolidStress) Initialize(input *qty.Store) error { return nil }

// Finalize integrates each particle's stress rate from the reduced
// strain rate (VelocityGradient's deviatoric part) via its material's
// Rheology strategy.
func (t *SolidStress) Finalize(input *qty.Store) error {
	stress, err := qty.GetValue[tensor.TracelessTensor](input, qty.Stress)
	if err != nil {
		return err
	}
	gradv, err := qty.GetValue[tensor.SymmetricTensor](input, qty.VelocityGradient)
	if err != nil {
		return err
	}
	dStress, err := qty.GetDt[tensor.TracelessTensor](input, qty.Stress)
	if err != nil {
		return err
	}
	for _, part := range input.Partitions() {
		rheo, ok := part.Mat.Rheology.(material.Rheology)
		if !ok {
			continue // materials without a Rheology (e.g. pure fluids) carry no stress
		}
		g := part.Mat.Params[t.shearModulusKey]
		for i := part.Begin; i < part.End; i++ {
			strainRate := gradv[i].Deviator()
			rate := rheo.StressRate(stress[i].M, strainRate.M, g)
			dStress[i] = tensor.NewTracelessFromDeviatoric(rate)
		}
	}
	return nil
}
