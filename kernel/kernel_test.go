// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package kernel

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func allKernels() map[string]Kernel {
	return map[string]Kernel{
		"cubic-spline": CubicSpline{},
		"fourth-order": FourthOrderSpline{},
		"gaussian":     Gaussian{},
	}
}

// simpson integrates f over [a,b] with n (even) panels.
func simpson(f func(float64) float64, a, b float64, n int) float64 {
	h := (b - a) / float64(n)
	sum := f(a) + f(b)
	for i := 1; i < n; i++ {
		x := a + float64(i)*h
		if i%2 == 1 {
			sum += 4 * f(x)
		} else {
			sum += 2 * f(x)
		}
	}
	return sum * h / 3
}

// Every kernel must integrate to 1 over its support within 1e-3.
func TestKernels_Normalization(t *testing.T) {
	for name, k := range allKernels() {
		t.Run(name, func(t *testing.T) {
			for _, h := range []float64{0.5, 1, 2.5} {
				integral := simpson(func(r float64) float64 {
					return 4 * math.Pi * r * r * k.Value(r, h)
				}, 0, k.SupportRadius(h), 2000)
				assert.InDelta(t, 1.0, integral, 1e-3, "h=%g", h)
			}
		})
	}
}

// Grad must vanish at the origin and beyond the support.
func TestKernels_GradBoundaries(t *testing.T) {
	for name, k := range allKernels() {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, 0.0, k.Grad(0, 1))
			assert.Equal(t, 0.0, k.Value(k.SupportRadius(1)+1e-9, 1))
			assert.Equal(t, 0.0, k.Grad(k.SupportRadius(1)+1e-9, 1))
		})
	}
}

// K(b)-K(a) must equal the integral of dK/dr = Grad*r between a and b.
func TestKernels_GradientConsistency(t *testing.T) {
	for name, k := range allKernels() {
		t.Run(name, func(t *testing.T) {
			R := k.SupportRadius(1)
			for _, ab := range [][2]float64{{0.1 * R, 0.4 * R}, {0.3 * R, 0.9 * R}} {
				a, b := ab[0], ab[1]
				integral := simpson(func(r float64) float64 {
					return k.Grad(r, 1) * r
				}, a, b, 2000)
				want := k.Value(b, 1) - k.Value(a, 1)
				assert.InDelta(t, want, integral, 1e-6*math.Max(1, math.Abs(want)))
			}
		})
	}
}

// The LUT must track its base kernel within interpolation error, for
// smoothing lengths away from 1.
func TestLUT_MatchesBaseKernel(t *testing.T) {
	for name, k := range allKernels() {
		t.Run(name, func(t *testing.T) {
			lut, err := NewLUT(k, 40000)
			require.NoError(t, err)
			for _, h := range []float64{0.7, 1, 1.3} {
				R := k.SupportRadius(h)
				for _, frac := range []float64{0.05, 0.2, 0.5, 0.8, 0.99} {
					r := frac * R
					assert.InDelta(t, k.Value(r, h), lut.Value(r, h), 1e-4*math.Max(1, math.Abs(k.Value(r, h))), "value h=%g r=%g", h, r)
					assert.InDelta(t, k.Grad(r, h), lut.Grad(r, h), 1e-3*math.Max(1, math.Abs(k.Grad(r, h))), "grad h=%g r=%g", h, r)
				}
			}
		})
	}
}

func TestLUT_RejectsBrokenKernel(t *testing.T) {
	_, err := NewLUT(brokenKernel{}, 1000)
	assert.Error(t, err)
}

// brokenKernel violates normalization on purpose.
type brokenKernel struct{ CubicSpline }

func (brokenKernel) Value(r, h float64) float64 {
	return 2 * (CubicSpline{}).Value(r, h)
}

// The gravitational kernel must satisfy d/dr[r^2 g'(r)] = 4 pi r^2 K(r)
// and approach the point-mass field beyond the support.
func TestGravityKernel_PoissonConsistency(t *testing.T) {
	base := CubicSpline{}
	g := NewGravityKernel(base, 4000)
	const dr = 1e-4
	for _, r := range []float64{0.3, 0.8, 1.2, 1.7} {
		lhs := (r+dr)*(r+dr)*g.Grad(r+dr, 1) - (r-dr)*(r-dr)*g.Grad(r-dr, 1)
		lhs /= 2 * dr
		rhs := 4 * math.Pi * r * r * base.Value(r, 1)
		assert.InDelta(t, rhs, lhs, 2e-2*math.Max(1, rhs), "r=%g", r)
	}
}

func TestGravityKernel_PointMassBeyondSupport(t *testing.T) {
	g := NewGravityKernel(CubicSpline{}, 4000)
	for _, r := range []float64{2.0, 3.0, 10.0} {
		assert.InDelta(t, 1/(r*r), g.Grad(r, 1), 1e-3/(r*r), "r=%g", r)
		assert.InDelta(t, -1/r, g.Value(r, 1), 2e-3/r, "r=%g", r)
	}
}

// The potential's slope must equal the acceleration.
func TestGravityKernel_PotentialGradient(t *testing.T) {
	g := NewGravityKernel(CubicSpline{}, 4000)
	const dr = 1e-3
	for _, r := range []float64{0.5, 1.0, 1.5} {
		slope := (g.Value(r+dr, 1) - g.Value(r-dr, 1)) / (2 * dr)
		assert.InDelta(t, g.Grad(r, 1), slope, 5e-3*math.Max(1, g.Grad(r, 1)), "r=%g", r)
	}
}
