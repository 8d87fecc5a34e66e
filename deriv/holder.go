// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package deriv

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/cpmech/gosph/accum"
	"github.com/cpmech/gosph/qty"
)

// Holder is a deduplicated collection of Derivatives, run together each
// solver pass against one worker's Accumulated.
type Holder struct {
	items []Derivative
}

// NewHolder returns an empty Holder.
func NewHolder() *Holder {
	return &Holder{}
}

// Count returns the number of distinct derivatives registered.
func (h *Holder) Count() int { return len(h.items) }

// Require registers d unless an equal derivative (per Equals) is
// already present, in which case it is silently dropped -- matching the
// teacher's "repeated requires are a no-op" contract rather than
// erroring, since two equation terms legitimately asking for the same
// derivative is the common case.
func (h *Holder) Require(d Derivative) {
	for _, existing := range h.items {
		if existing.Equals(d) {
			return
		}
	}
	h.items = append(h.items, d)
}

// Create runs Create on every registered derivative, in registration
// order, against ac.
func (h *Holder) Create(ac *accum.Accumulated) error {
	for _, d := range h.items {
		if err := d.Create(ac); err != nil {
			return err
		}
	}
	return nil
}

// Initialize runs Initialize on every registered derivative.
func (h *Holder) Initialize(input *qty.Store, ac *accum.Accumulated) error {
	for _, d := range h.items {
		if err := d.Initialize(input, ac); err != nil {
			return err
		}
	}
	return nil
}

// EvalSymmetric runs EvalSymmetric on every PhaseEvaluation derivative
// reporting Symmetric()==true, then every PhaseDerivative one likewise.
func (h *Holder) EvalSymmetric(idx int, neighs []int, grads []mgl64.Vec3) {
	h.evalPhase(PhaseEvaluation, true, idx, neighs, grads)
	h.evalPhase(PhaseDerivative, true, idx, neighs, grads)
}

// EvalAsymmetric runs EvalAsymmetric on every derivative reporting
// Symmetric()==false, evaluation phase before derivative phase.
func (h *Holder) EvalAsymmetric(idx int, neighs []int, grads []mgl64.Vec3) {
	h.evalPhase(PhaseEvaluation, false, idx, neighs, grads)
	h.evalPhase(PhaseDerivative, false, idx, neighs, grads)
}

func (h *Holder) evalPhase(phase Phase, symmetric bool, idx int, neighs []int, grads []mgl64.Vec3) {
	for _, d := range h.items {
		if d.Phase() != phase || d.Symmetric() != symmetric {
			continue
		}
		if symmetric {
			d.EvalSymmetric(idx, neighs, grads)
		} else {
			d.EvalAsymmetric(idx, neighs, grads)
		}
	}
}

// Symmetric reports whether every registered derivative can run via the
// symmetric (visit-each-pair-once) neighbour walk; a single asymmetric
// derivative forces the whole pass to use the full both-direction walk.
func (h *Holder) Symmetric() bool {
	for _, d := range h.items {
		if !d.Symmetric() {
			return false
		}
	}
	return true
}
