// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package equation

import (
	"github.com/cpmech/gosph/deriv"
	"github.com/cpmech/gosph/qty"
)

// NeighbourCountTerm wraps deriv.NeighbourCount as a diagnostic
// equation term: it has no Initialize/Finalize work of its own, it
// only requires the counting derivative.
type NeighbourCountTerm struct{}

// NewNeighbourCountTerm returns a NeighbourCountTerm.
func NewNeighbourCountTerm() *NeighbourCountTerm { return &NeighbourCountTerm{} }

// SetDerivatives requires NeighbourCount.
func (t *NeighbourCountTerm) SetDerivatives(h *deriv.Holder) error {
	h.Require(deriv.NewNeighbourCount())
	return nil
}

// Create is a no-op: NeighbourCount is created by the store setup.
func (t *NeighbourCountTerm) Create(s *qty.Store) error { return nil }

// Initialize has no pre-loop work.
func (t *NeighbourCountTerm) Initialize(input *qty.Store) error { return nil }

// Finalize has no post-loop work: the counter is already in its final
// reduced form once the derivative pass completes.
func (t *NeighbourCountTerm) Finalize(input *qty.Store) error { return nil }
