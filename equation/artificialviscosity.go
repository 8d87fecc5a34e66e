// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package equation

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/cpmech/gosph/accum"
	"github.com/cpmech/gosph/deriv"
	"github.com/cpmech/gosph/qty"
	"github.com/cpmech/gosph/tensor"
)

// AVVariant selects the signal-velocity formula an ArtificialViscosity
// term uses, grounded on the StandardAV/RiemannAV split shown in
// original_source/lib/sph/equations/av/test/AV.cpp.
type AVVariant int

// Supported variants.
const (
	// AVStandard is Monaghan (1992)'s mu_ij-based bulk/von-Neumann-Richtmyer form.
	AVStandard AVVariant = iota
	// AVRiemann is Monaghan (1997)'s signal-velocity form.
	AVRiemann
	// AVMorrisMonaghan uses a per-particle coefficient alpha_i, averaged
	// over each pair, in place of the global Alpha. alpha_i is set to
	// Alpha when the buffers are sized and is not evolved afterwards
	// (AlphaMin and DecayTime are not read), so its Pi_ij equals
	// AVStandard's.
	AVMorrisMonaghan
)

// ArtificialViscosity is both a deriv.Derivative (it sums a neighbour
// pair's dissipative contribution directly, needing the separation
// vector as well as the kernel gradient) and an equation.Term (its
// SetDerivatives simply requires itself). Grounded on the
// mu_ij/Pi_ij formulas the AV.cpp shockwave test exercises, and on the
// Balsara (1995) shear limiter referenced by the same test file's
// alpha/beta settings lookup.
type ArtificialViscosity struct {
	Variant    AVVariant
	Alpha      float64
	Beta       float64
	Balsara    bool
	AlphaMin   float64 // stored only; not read by any variant
	DecayTime  float64 // stored only; not read by any variant
	epsilon    float64
	rho, mass  []float64
	cs         []float64
	r          []tensor.Vector4
	v          []tensor.Vector4
	divv       []float64
	curlMag    []float64 // never populated; while nil, balsaraFactor returns 1
	dv         []tensor.Vector4
	du         []float64
	alphaLocal []float64 // AVMorrisMonaghan per-particle coefficient
}

// NewArtificialViscosity returns an ArtificialViscosity configured with
// the standard alpha=1, beta=2 coefficients.
func NewArtificialViscosity(variant AVVariant) *ArtificialViscosity {
	return &ArtificialViscosity{Variant: variant, Alpha: 1, Beta: 2, AlphaMin: 0.1, DecayTime: 1, epsilon: 0.01}
}

// SetDerivatives requires itself, and VelocityDivergence when the
// Balsara limiter is enabled.
func (t *ArtificialViscosity) SetDerivatives(h *deriv.Holder) error {
	if t.Balsara {
		h.Require(deriv.NewVelocityDivergence())
	}
	h.Require(t.AsDerivative())
	return nil
}

// Create is a no-op: all buffers AV reads/writes are created elsewhere.
func (t *ArtificialViscosity) Create(s *qty.Store) error { return nil }

// Initialize (equation.Term) is a no-op: AV has no pre-loop setup
// beyond what Initialize (deriv.Derivative) already does.
func (t *ArtificialViscosity) Initialize(input *qty.Store) error { return nil }

// Finalize (equation.Term) is a no-op: AV writes directly into the
// shared acceleration/energy buffers during the neighbour loop.
func (t *ArtificialViscosity) Finalize(input *qty.Store) error { return nil }

// ---- deriv.Derivative ----

// derivCreate declares the POSITION second-derivative and ENERGY
// first-derivative buffers AV contributes to, as Unique so they sum
// alongside PressureGradient's and PressureForce's own contributions.
func (t *ArtificialViscosity) derivCreate(ac *accum.Accumulated) error {
	if err := accum.Insert[tensor.Vector4](ac, qty.Position, qty.Second, accum.Unique); err != nil {
		return err
	}
	return accum.Insert[float64](ac, qty.Energy, qty.First, accum.Unique)
}

// The deriv.Derivative interface's Create/Initialize names collide with
// equation.Term's; AV implements deriv.Derivative through the
// derivativeAdapter below instead of directly, so the two lifecycles
// don't need identically-named but differently-scoped methods.
type derivativeAdapter struct {
	*ArtificialViscosity
}

// AsDerivative returns the deriv.Derivative view of this term.
func (t *ArtificialViscosity) AsDerivative() deriv.Derivative {
	return derivativeAdapter{t}
}

func (a derivativeAdapter) Create(ac *accum.Accumulated) error {
	return a.ArtificialViscosity.derivCreate(ac)
}

func (a derivativeAdapter) Initialize(input *qty.Store, ac *accum.Accumulated) error {
	t := a.ArtificialViscosity
	rho, err := qty.GetValue[float64](input, qty.Density)
	if err != nil {
		return err
	}
	mass, err := qty.GetValue[float64](input, qty.Mass)
	if err != nil {
		return err
	}
	cs, err := qty.GetValue[float64](input, qty.SoundSpeed)
	if err != nil {
		return err
	}
	r, err := qty.GetValue[tensor.Vector4](input, qty.Position)
	if err != nil {
		return err
	}
	v, err := qty.GetDt[tensor.Vector4](input, qty.Position)
	if err != nil {
		return err
	}
	t.rho, t.mass, t.cs, t.r, t.v = rho, mass, cs, r, v
	if t.Balsara {
		if divv, err := qty.GetValue[float64](input, qty.VelocityDivergence); err == nil {
			t.divv = divv
		}
	}
	if t.Variant == AVMorrisMonaghan && (t.alphaLocal == nil || len(t.alphaLocal) != len(rho)) {
		t.alphaLocal = make([]float64, len(rho))
		for i := range t.alphaLocal {
			t.alphaLocal[i] = t.Alpha
		}
	}
	t.dv = accum.GetBuffer[tensor.Vector4](ac, qty.Position, qty.Second)
	t.du = accum.GetBuffer[float64](ac, qty.Energy, qty.First)
	return nil
}

func (a derivativeAdapter) EvalSymmetric(idx int, neighs []int, grads []mgl64.Vec3) {
	a.ArtificialViscosity.eval(idx, neighs, grads, true)
}

func (a derivativeAdapter) EvalAsymmetric(idx int, neighs []int, grads []mgl64.Vec3) {
	a.ArtificialViscosity.eval(idx, neighs, grads, false)
}

func (a derivativeAdapter) Phase() deriv.Phase { return deriv.PhaseDerivative }

func (a derivativeAdapter) Symmetric() bool { return true }

func (a derivativeAdapter) Equals(other deriv.Derivative) bool {
	if o, ok := other.(derivativeAdapter); ok {
		return o.ArtificialViscosity.Variant == a.ArtificialViscosity.Variant
	}
	return false
}

func (t *ArtificialViscosity) balsaraFactor(i int) float64 {
	if !t.Balsara || t.divv == nil || t.curlMag == nil {
		return 1
	}
	div := math.Abs(t.divv[i])
	curl := t.curlMag[i]
	denom := div + curl + t.epsilon*t.cs[i]/math.Max(t.r[i].H, 1e-12)
	if denom == 0 {
		return 1
	}
	return div / denom
}

func (t *ArtificialViscosity) eval(idx int, neighs []int, grads []mgl64.Vec3, symmetric bool) {
	for k, j := range neighs {
		rij := t.r[idx].Spatial.Sub(t.r[j].Spatial)
		vij := t.v[idx].Spatial.Sub(t.v[j].Spatial)
		r2 := rij.Dot(rij)
		hBar := 0.5 * (t.r[idx].H + t.r[j].H)
		vr := vij.Dot(rij)
		if vr >= 0 {
			continue // approaching/receding test: AV only acts when particles approach
		}
		rhoBar := 0.5 * (t.rho[idx] + t.rho[j])
		csBar := 0.5 * (t.cs[idx] + t.cs[j])
		var pi float64
		switch t.Variant {
		case AVRiemann:
			mu := vr / math.Sqrt(r2+t.epsilon*hBar*hBar)
			vsig := csBar - 3*mu
			pi = -0.5 * t.Alpha * vsig * mu / rhoBar
		case AVMorrisMonaghan:
			mu := hBar * vr / (r2 + t.epsilon*hBar*hBar)
			alpha := 0.5 * (t.alphaLocal[idx] + t.alphaLocal[j])
			pi = (-alpha*csBar*mu + t.Beta*mu*mu) / rhoBar
		default: // AVStandard
			mu := hBar * vr / (r2 + t.epsilon*hBar*hBar)
			pi = (-t.Alpha*csBar*mu + t.Beta*mu*mu) / rhoBar
		}
		if t.Balsara {
			f := 0.5 * (t.balsaraFactor(idx) + t.balsaraFactor(j))
			pi *= f
		}
		f := grads[k].Mul(-pi)
		heat := 0.5 * pi * vij.Dot(grads[k])
		t.dv[idx].Spatial = t.dv[idx].Spatial.Add(f.Mul(t.mass[j]))
		t.du[idx] += t.mass[j] * heat
		if symmetric {
			t.dv[j].Spatial = t.dv[j].Spatial.Sub(f.Mul(t.mass[idx]))
			t.du[j] += t.mass[idx] * heat
		}
	}
}
