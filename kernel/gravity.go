// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package kernel

import (
	"math"

	"gonum.org/v1/gonum/integrate/quad"
)

// GravityKernel is the gravitational-potential counterpart g(r,h) of an
// SPH kernel K(r,h), satisfying ∇²g = 4π K. By the spherical-shell
// theorem this makes the acceleration magnitude g'(r,h) equal to the
// kernel-weighted enclosed "mass" fraction Menc(r,h)/r², so it is built
// directly from K by quadrature rather than re-deriving a closed-form
// piecewise polynomial per kernel -- the same consistency the spec's
// closed-form M4 potential satisfies, obtained generically for any base
// kernel (cubic spline, fourth-order spline, Gaussian) instead of duplicating
// a hand-derived polynomial per kernel.
type GravityKernel struct {
	base   Kernel
	n      int
	qMax   float64
	step   float64
	mEnc   []float64 // Menc(q)=4π∫_0^q s² f(s) ds, f=base.Value(.,1)
	potTab []float64 // -∫_q^qMax a(s) ds - 1/qMax, the potential magnitude
}

// NewGravityKernel builds the acceleration/potential tables for base via
// Gauss-Legendre quadrature, with n samples across [0,R].
func NewGravityKernel(base Kernel, n int) *GravityKernel {
	if n <= 0 {
		n = 2000
	}
	R := base.Radius()
	g := &GravityKernel{base: base, n: n, qMax: R}
	g.step = R / float64(n-1)
	g.mEnc = make([]float64, n)
	for i := 1; i < n; i++ {
		q := float64(i) * g.step
		integrand := func(s float64) float64 {
			return 4 * math.Pi * s * s * base.Value(s, 1)
		}
		g.mEnc[i] = quad.Fixed(integrand, 0, q, 64, quad.Legendre{}, 0)
	}

	// accel(q) = Menc(q)/q^2, accel(0)=0
	accel := make([]float64, n)
	for i := 1; i < n; i++ {
		q := float64(i) * g.step
		accel[i] = g.mEnc[i] / (q * q)
	}

	// potential(q) = -[ (1-qMax potential reference)/qMax + ∫_q^qMax accel(s) ds ]
	// reference: potential(qMax) = -1/qMax (point-mass beyond support)
	g.potTab = make([]float64, n)
	g.potTab[n-1] = -1 / g.qMax
	for i := n - 2; i >= 1; i-- {
		q0 := float64(i) * g.step
		q1 := float64(i+1) * g.step
		avg := 0.5 * (accel[i] + accel[i+1])
		g.potTab[i] = g.potTab[i+1] - avg*(q1-q0)
	}
	if n > 1 {
		g.potTab[0] = g.potTab[1]
	}
	g.mEnc[0] = 0
	return g
}

// Radius delegates to the base kernel.
func (g *GravityKernel) Radius() float64 { return g.base.Radius() }

// SupportRadius delegates to the base kernel.
func (g *GravityKernel) SupportRadius(h float64) float64 { return g.base.SupportRadius(h) }

// Value returns the softened potential at (r,h); beyond the support it
// continues as the point-mass potential -1/r.
func (g *GravityKernel) Value(r, h float64) float64 {
	q := r / h
	if q >= g.qMax {
		return -1 / r
	}
	return g.interp(g.potTab, q) / h
}

// Grad returns the softened acceleration magnitude a(r,h)=Menc(q)/r², an
// unsigned attraction strength: the acceleration particle i feels toward
// particle j is Grad(r,h)*(x_j-x_i)/r.
func (g *GravityKernel) Grad(r, h float64) float64 {
	if r == 0 {
		return 0
	}
	q := r / h
	if q >= g.qMax {
		return 1 / (r * r)
	}
	menc := g.interp(g.mEnc, q)
	return menc / (r * r)
}

func (g *GravityKernel) interp(table []float64, q float64) float64 {
	pos := q / g.step
	i0 := int(pos)
	if i0 >= g.n-1 {
		return table[g.n-1]
	}
	frac := pos - float64(i0)
	return table[i0]*(1-frac) + table[i0+1]*frac
}
