// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package equation

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/cpmech/gosph/deriv"
	"github.com/cpmech/gosph/qty"
	"github.com/cpmech/gosph/tensor"
)

// ConstantGravity adds a uniform external acceleration to every
// particle, for cratering setups where the target's own gravity is
// replaced by a constant field.
type ConstantGravity struct {
	Accel mgl64.Vec3
}

// NewConstantGravity returns a ConstantGravity term with the given
// acceleration.
func NewConstantGravity(accel mgl64.Vec3) *ConstantGravity {
	return &ConstantGravity{Accel: accel}
}

// SetDerivatives registers nothing: a uniform field needs no neighbour
// sums.
func (t *ConstantGravity) SetDerivatives(h *deriv.Holder) error { return nil }

// Create is a no-op.
func (t *ConstantGravity) Create(s *qty.Store) error { return nil }

// Initialize has no pre-loop work.
func (t *ConstantGravity) Initialize(input *qty.Store) error { return nil }

// Finalize adds the field to every particle's acceleration.
func (t *ConstantGravity) Finalize(input *qty.Store) error {
	dv, err := qty.GetD2t[tensor.Vector4](input, qty.Position)
	if err != nil {
		return err
	}
	for i := range dv {
		dv[i].Spatial = dv[i].Spatial.Add(t.Accel)
	}
	return nil
}
