// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package deriv

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/cpmech/gosph/accum"
	"github.com/cpmech/gosph/qty"
)

// NeighbourCount is a diagnostic counter, not an equation-of-motion
// term: it records how many neighbours each particle saw this pass,
// useful for verifying the adaptive-smoothing-length target and for
// flagging isolated particles. Grounded on
// original_source/lib/sph/equations/test/EquationTerm.cpp's pattern of
// a side-channel diagnostic term alongside the physical ones.
type NeighbourCount struct {
	count []uint64
}

// NewNeighbourCount returns an unconfigured NeighbourCount.
func NewNeighbourCount() *NeighbourCount { return &NeighbourCount{} }

// Create declares the NEIGHBOUR_CNT output buffer.
func (d *NeighbourCount) Create(ac *accum.Accumulated) error {
	return accum.Insert[uint64](ac, qty.NeighbourCount, qty.Zero, accum.Unique)
}

// Initialize binds the output buffer.
func (d *NeighbourCount) Initialize(input *qty.Store, ac *accum.Accumulated) error {
	d.count = accum.GetBuffer[uint64](ac, qty.NeighbourCount, qty.Zero)
	return nil
}

// EvalSymmetric increments both particles' counts once per pair.
func (d *NeighbourCount) EvalSymmetric(idx int, neighs []int, grads []mgl64.Vec3) {
	d.count[idx] += uint64(len(neighs))
	for _, j := range neighs {
		d.count[j]++
	}
}

// EvalAsymmetric increments idx's count by the full neighbour list.
func (d *NeighbourCount) EvalAsymmetric(idx int, neighs []int, grads []mgl64.Vec3) {
	d.count[idx] += uint64(len(neighs))
}

// Phase reports PhaseEvaluation.
func (d *NeighbourCount) Phase() Phase { return PhaseEvaluation }

// Symmetric reports true.
func (d *NeighbourCount) Symmetric() bool { return true }

// Equals reports whether other is also a NeighbourCount.
func (d *NeighbourCount) Equals(other Derivative) bool {
	_, ok := other.(*NeighbourCount)
	return ok
}
