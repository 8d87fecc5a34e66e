// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package equation

import (
	"math"

	"github.com/cpmech/gosph/deriv"
	"github.com/cpmech/gosph/qty"
	"github.com/cpmech/gosph/tensor"
)

// ContinuityEquation integrates density via dRho/dt = -rho*(div v),
// grounded directly on spec's equation-of-motion table and on
// original_source/lib/solvers/Derivative.h's generic pre/post-loop split.
//
// ImplicitSmoothingLength additionally recomputes each particle's
// smoothing length from the updated density ratio,
// h_i = h0_i*(rho0_i/rho_i)^(1/D), instead of integrating a separate
// dh/dt term -- the alternative the spec's smoothing-length Open
// Question names. It must not be combined with AdaptiveSmoothingLength;
// Holder.Add enforces that at registration time.
type ContinuityEquation struct {
	ImplicitSmoothingLength bool
	Dimension               int
	h0, rho0                []float64
}

// NewContinuityEquation returns a ContinuityEquation for 3-D runs with
// implicit smoothing-length adaptation disabled.
func NewContinuityEquation() *ContinuityEquation {
	return &ContinuityEquation{Dimension: 3}
}

// SetDerivatives requires VelocityDivergence.
func (t *ContinuityEquation) SetDerivatives(h *deriv.Holder) error {
	h.Require(deriv.NewVelocityDivergence())
	return nil
}

// Create adds no column (Density is created by the store setup); when
// ImplicitSmoothingLength is set it records each particle's current
// density and smoothing length as the reference state for rescaling.
func (t *ContinuityEquation) Create(s *qty.Store) error {
	if !t.ImplicitSmoothingLength {
		return nil
	}
	rho, err := qty.GetValue[float64](s, qty.Density)
	if err != nil {
		return err
	}
	r, err := qty.GetValue[tensor.Vector4](s, qty.Position)
	if err != nil {
		return err
	}
	t.rho0 = append([]float64(nil), rho...)
	t.h0 = make([]float64, len(r))
	for i, p := range r {
		t.h0[i] = p.H
	}
	return nil
}

// Initialize has no pre-loop work.
func (t *ContinuityEquation) Initialize(input *qty.Store) error { return nil }

// Finalize writes drho/dt from the reduced velocity divergence, and,
// when ImplicitSmoothingLength is set, rescales h from the density
// ratio.
func (t *ContinuityEquation) Finalize(input *qty.Store) error {
	rho, err := qty.GetValue[float64](input, qty.Density)
	if err != nil {
		return err
	}
	divv, err := qty.GetValue[float64](input, qty.VelocityDivergence)
	if err != nil {
		return err
	}
	dRho, err := qty.GetDt[float64](input, qty.Density)
	if err != nil {
		return err
	}
	for i := range dRho {
		dRho[i] += -rho[i] * divv[i]
	}
	if !t.ImplicitSmoothingLength {
		return nil
	}
	r, err := qty.GetValue[tensor.Vector4](input, qty.Position)
	if err != nil {
		return err
	}
	power := 1 / float64(t.Dimension)
	for i := range r {
		ratio := math.Pow(t.rho0[i]/rho[i], power)
		r[i].H = t.h0[i] * ratio
	}
	return nil
}
