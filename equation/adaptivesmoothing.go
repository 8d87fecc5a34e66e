// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package equation

import (
	"github.com/cpmech/gosph/deriv"
	"github.com/cpmech/gosph/qty"
	"github.com/cpmech/gosph/tensor"
)

// AdaptiveSmoothingLength integrates the smoothing length directly,
// dh/dt = -(h/D)*(div v), the explicit alternative the spec's
// smoothing-length Open Question names alongside ContinuityEquation's
// implicit density-ratio rescaling. Holder.Add refuses to register this
// term together with a ContinuityEquation whose ImplicitSmoothingLength
// is set, so a run has exactly one authoritative dh/dt source.
type AdaptiveSmoothingLength struct {
	Dimension int
}

// NewAdaptiveSmoothingLength returns an AdaptiveSmoothingLength for 3-D runs.
func NewAdaptiveSmoothingLength() *AdaptiveSmoothingLength {
	return &AdaptiveSmoothingLength{Dimension: 3}
}

// SetDerivatives requires VelocityDivergence.
func (t *AdaptiveSmoothingLength) SetDerivatives(h *deriv.Holder) error {
	h.Require(deriv.NewVelocityDivergence())
	return nil
}

// Create is a no-op: Position (carrying H in its 4th lane) is created
// by the store setup.
func (t *AdaptiveSmoothingLength) Create(s *qty.Store) error { return nil }

// Initialize has no pre-loop work.
func (t *AdaptiveSmoothingLength) Initialize(input *qty.Store) error { return nil }

// Finalize writes dH/dt into Position's first-derivative (velocity) H
// lane from the reduced velocity divergence.
func (t *AdaptiveSmoothingLength) Finalize(input *qty.Store) error {
	r, err := qty.GetValue[tensor.Vector4](input, qty.Position)
	if err != nil {
		return err
	}
	divv, err := qty.GetValue[float64](input, qty.VelocityDivergence)
	if err != nil {
		return err
	}
	dv, err := qty.GetDt[tensor.Vector4](input, qty.Position)
	if err != nil {
		return err
	}
	factor := 1 / float64(t.Dimension)
	for i := range dv {
		dv[i].H = -factor * r[i].H * divv[i]
	}
	return nil
}
