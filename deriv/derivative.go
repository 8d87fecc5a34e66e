// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package deriv implements SPH derivatives: quantities accumulated by
// summing a kernel-weighted contribution over each particle's
// neighbours, as distinct from equation terms (package equation) which
// combine derivatives into forces and fluxes.
package deriv

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/cpmech/gosph/accum"
	"github.com/cpmech/gosph/qty"
)

// Phase controls when a derivative's contribution is evaluated relative
// to other terms in a solver pass: density summation must complete
// before equation terms that read density can run.
type Phase int

// Supported phases.
const (
	// PhaseEvaluation derivatives compute directly from neighbour data
	// (density, divergence, gradient) and run first.
	PhaseEvaluation Phase = iota
	// PhaseDerivative terms consume the evaluation phase's results.
	PhaseDerivative
)

// Derivative is a quantity accumulated by summing a kernel-weighted
// contribution over each particle's neighbours. If the solver runs the
// neighbour loop across multiple workers, each worker owns its own
// Accumulated and the contributions are summed afterward (accum.Pool).
type Derivative interface {
	// Create declares this derivative's output buffers in ac.
	Create(ac *accum.Accumulated) error

	// Initialize binds read-only views into input and writable views
	// into ac's freshly (re-)allocated buffers, ahead of a neighbour
	// loop pass.
	Initialize(input *qty.Store, ac *accum.Accumulated) error

	// EvalSymmetric adds the neighbour contributions of idx's unordered
	// pairs (idx,neighs[k]) to BOTH particles at once, valid when the
	// kernel gradient is identical from either particle's perspective
	// (equal smoothing lengths, or a caller-side symmetrization already
	// applied). grads[k] is grad_i(idx, neighs[k]).
	EvalSymmetric(idx int, neighs []int, grads []mgl64.Vec3)

	// EvalAsymmetric adds the neighbour contributions of idx's full
	// (both-direction) neighbour list to idx ONLY, for use when
	// grad_i(idx,j) != grad_j(j,idx) (different smoothing lengths) and
	// each particle must be visited from its own perspective.
	EvalAsymmetric(idx int, neighs []int, grads []mgl64.Vec3)

	// Phase reports when this derivative runs in a solver pass.
	Phase() Phase

	// Symmetric reports whether this derivative can use EvalSymmetric
	// (true) or requires the asymmetric, both-direction neighbour walk.
	Symmetric() bool

	// Equals reports whether other computes the identical quantity with
	// identical flags, used by Holder.Require to dedup.
	Equals(other Derivative) bool
}
