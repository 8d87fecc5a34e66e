// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package kernel

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/num"
	"gonum.org/v1/gonum/integrate/quad"
)

// DefaultLUTSize is the default number of LUT entries (spec §4.3).
const DefaultLUTSize = 40000

// LUT is a lookup-table approximation of a base Kernel, tabulated on
// q² ∈ [0,R²] with linear interpolation -- the representation the solver
// actually calls during the neighbour loop.
type LUT struct {
	base   Kernel
	n      int
	qSqMax float64
	step   float64
	values []float64 // W(q)*h^3/sigma-independent: stores f(q) via base.Value at h=1
	grads  []float64 // stores (1/r)dW/dr at h=1, i.e. base.Grad(q,1)
}

// NewLUT builds a LUT over base with n entries (<=0 uses
// DefaultLUTSize), asserting at construction that the kernel integrates
// to 1 over its support and that the tabulated gradient is consistent
// with the tabulated value to within LUT spacing.
func NewLUT(base Kernel, n int) (*LUT, error) {
	if n <= 0 {
		n = DefaultLUTSize
	}
	R := base.Radius()
	l := &LUT{base: base, n: n, qSqMax: R * R}
	l.step = l.qSqMax / float64(n-1)
	l.values = make([]float64, n)
	l.grads = make([]float64, n)
	for i := 0; i < n; i++ {
		q := math.Sqrt(float64(i) * l.step)
		l.values[i] = base.Value(q, 1)
		l.grads[i] = base.Grad(q, 1)
	}
	if err := l.checkNormalization(); err != nil {
		return nil, err
	}
	if err := l.checkGradientConsistency(); err != nil {
		return nil, err
	}
	return l, nil
}

// checkNormalization asserts ∫ K(r,1) d³r = 1 within 1e-3 relative error
// (spec §8), using gonum's fixed-order Gauss-Legendre quadrature on the
// radial integral 4π∫r²W(r)dr.
func (l *LUT) checkNormalization() error {
	R := l.base.Radius()
	integrand := func(r float64) float64 {
		return 4 * math.Pi * r * r * l.base.Value(r, 1)
	}
	integral := quad.Fixed(integrand, 0, R, 200, quad.Legendre{}, 0)
	if math.Abs(integral-1) > 1e-3 {
		return chk.Err("kernel: normalization check failed: integral=%.6f, want 1 within 1e-3", integral)
	}
	return nil
}

// checkGradientConsistency asserts that, at five sample radii across the
// support, the base kernel's analytic dW/dr (Grad*r, at h=1) matches
// gosl/num's central-difference derivative of the base kernel's Value
// to within 1% (relative, or absolute below 1).
func (l *LUT) checkGradientConsistency() error {
	R := l.base.Radius()
	samples := []float64{0.1 * R, 0.3 * R, 0.5 * R, 0.7 * R, 0.9 * R}
	h := R / float64(l.n) * 4
	for _, r := range samples {
		numDeriv, _ := num.DerivCentral(func(x float64, args ...interface{}) float64 {
			return l.base.Value(x, 1)
		}, r, h)
		analytic := l.base.Grad(r, 1) * r
		if math.Abs(numDeriv-analytic) > 1e-2*math.Max(1, math.Abs(analytic)) {
			return chk.Err("kernel: gradient consistency failed at r=%.4f: numeric=%.6f analytic=%.6f", r, numDeriv, analytic)
		}
	}
	return nil
}

// Radius delegates to the base kernel.
func (l *LUT) Radius() float64 { return l.base.Radius() }

// SupportRadius delegates to the base kernel.
func (l *LUT) SupportRadius(h float64) float64 { return l.base.SupportRadius(h) }

// Value returns the linearly-interpolated W(r,h). The table stores
// W(q,1) (sigma already folded in since h=1 there), so general h just
// rescales by the h^3 the base kernel's own Value(r,h) carries.
func (l *LUT) Value(r, h float64) float64 {
	q := r / h
	return l.interp(l.values, q*q) / (h * h * h)
}

// Grad returns the linearly-interpolated gradient factor f(r,h). The
// table stores (1/q)dW/dq at h=1, and f scales as h^-5: one h^-3 from
// the kernel normalization, one h^-1 from d/dr and one h^-1 from the
// 1/r prefactor.
func (l *LUT) Grad(r, h float64) float64 {
	q := r / h
	g := l.interp(l.grads, q*q)
	h2 := h * h
	return g / (h2 * h2 * h)
}

func (l *LUT) interp(table []float64, qSq float64) float64 {
	if qSq >= l.qSqMax {
		return 0
	}
	pos := qSq / l.step
	i0 := int(pos)
	if i0 >= l.n-1 {
		return table[l.n-1]
	}
	frac := pos - float64(i0)
	return table[i0]*(1-frac) + table[i0+1]*frac
}
