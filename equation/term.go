// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package equation implements the solver's equation terms: the pieces
// that combine package deriv's neighbour-summed derivatives with a
// particle's material (equation of state, rheology, damage) to produce
// the quantities the integrator advances -- acceleration, denergy/dt,
// dstress/dt, ddamage/dt, dh/dt.
package equation

import (
	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/gosph/deriv"
	"github.com/cpmech/gosph/qty"
)

// Term is one contribution to the equations of motion/energy/state.
// The three lifecycle hooks mirror the solver pass structure (spec
// §4.6): SetDerivatives runs once per worker before the loop to
// register the Derivatives this term reads; Initialize runs once per
// pass before the neighbour loop (e.g. computing pressure from density
// via the material's EoS); Finalize runs once per pass after the
// reduction, when every Derivative's output is visible in input.
type Term interface {
	// SetDerivatives registers, via h.Require, every Derivative this
	// term's Initialize/Finalize read.
	SetDerivatives(h *deriv.Holder) error

	// Initialize runs before the neighbour loop, with only Derivative
	// outputs from the PREVIOUS pass visible.
	Initialize(input *qty.Store) error

	// Finalize runs after the neighbour loop and worker reduction, with
	// this pass's Derivative outputs visible in input.
	Finalize(input *qty.Store) error

	// Create runs once at setup, for per-material state this term owns
	// (e.g. allocating a quantity column the EoS needs).
	Create(s *qty.Store) error
}

// Holder is an ordered collection of Terms; Add does not deduplicate.
type Holder struct {
	terms []Term
}

// NewHolder returns an empty Holder.
func NewHolder() *Holder { return &Holder{} }

// Add appends term to the holder. It panics if term would register a
// second authoritative dh/dt source: AdaptiveSmoothingLength alongside
// a ContinuityEquation with ImplicitSmoothingLength set, in either
// order -- the spec's smoothing-length Open Question requires refusing
// that configuration rather than letting two terms race to write H.
func (h *Holder) Add(term Term) *Holder {
	if err := h.checkSmoothingLengthSource(term); err != nil {
		panic(err)
	}
	h.terms = append(h.terms, term)
	return h
}

func (h *Holder) checkSmoothingLengthSource(term Term) error {
	adaptive, isAdaptive := term.(*AdaptiveSmoothingLength)
	continuity, isContinuity := term.(*ContinuityEquation)
	if !isAdaptive && !isContinuity {
		return nil
	}
	for _, existing := range h.terms {
		if isAdaptive {
			if c, ok := existing.(*ContinuityEquation); ok && c.ImplicitSmoothingLength {
				return chk.Err("equation: AdaptiveSmoothingLength conflicts with an already-registered implicit-smoothing-length ContinuityEquation")
			}
		}
		if isContinuity && continuity.ImplicitSmoothingLength {
			if _, ok := existing.(*AdaptiveSmoothingLength); ok {
				return chk.Err("equation: ContinuityEquation.ImplicitSmoothingLength conflicts with an already-registered AdaptiveSmoothingLength")
			}
		}
	}
	return nil
}

// Count returns the number of registered terms.
func (h *Holder) Count() int { return len(h.terms) }

// Terms returns the registered terms in registration order.
func (h *Holder) Terms() []Term { return h.terms }

// Contains reports whether a term of type T is registered.
func Contains[T Term](h *Holder) bool {
	for _, t := range h.terms {
		if _, ok := t.(T); ok {
			return true
		}
	}
	return false
}

// SetDerivatives runs SetDerivatives on every term.
func (h *Holder) SetDerivatives(d *deriv.Holder) error {
	for _, t := range h.terms {
		if err := t.SetDerivatives(d); err != nil {
			return err
		}
	}
	return nil
}

// Initialize runs Initialize on every term.
func (h *Holder) Initialize(input *qty.Store) error {
	for _, t := range h.terms {
		if err := t.Initialize(input); err != nil {
			return err
		}
	}
	return nil
}

// Finalize runs Finalize on every term.
func (h *Holder) Finalize(input *qty.Store) error {
	for _, t := range h.terms {
		if err := t.Finalize(input); err != nil {
			return err
		}
	}
	return nil
}

// Create runs Create on every term.
func (h *Holder) Create(s *qty.Store) error {
	for _, t := range h.terms {
		if err := t.Create(s); err != nil {
			return err
		}
	}
	return nil
}
