// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package kernel

import "math"

// fourthSigma3D normalizes the M5 spline in 3-D: with knots at
// half-integers, 4*pi*integral(q^2 f(q)) over [0,2.5] equals 20*pi.
const fourthSigma3D = 1.0 / (20.0 * math.Pi)

// FourthOrderSpline is the M5 quartic B-spline kernel, support radius
// R=2.5, with knots at the half-integers.
type FourthOrderSpline struct{}

// Radius returns 2.5.
func (FourthOrderSpline) Radius() float64 { return 2.5 }

// SupportRadius returns 2.5*h.
func (FourthOrderSpline) SupportRadius(h float64) float64 { return 2.5 * h }

// Value returns W(r,h) = sigma/h^3 * f(q), q=r/h.
func (FourthOrderSpline) Value(r, h float64) float64 {
	q := r / h
	return fourthSigma3D / (h * h * h) * fourthF(q)
}

func pow4(x float64) float64 {
	if x <= 0 {
		return 0
	}
	x2 := x * x
	return x2 * x2
}

func pow3(x float64) float64 {
	if x <= 0 {
		return 0
	}
	return x * x * x
}

func fourthF(q float64) float64 {
	return pow4(2.5-q) - 5*pow4(1.5-q) + 10*pow4(0.5-q)
}

func fourthDF(q float64) float64 {
	return -4*pow3(2.5-q) + 20*pow3(1.5-q) - 40*pow3(0.5-q)
}

// Grad returns f(r,h) = (1/r) dW/dr.
func (FourthOrderSpline) Grad(r, h float64) float64 {
	if r == 0 {
		return 0
	}
	q := r / h
	dWdr := fourthSigma3D / (h * h * h * h) * fourthDF(q)
	return dWdr / r
}
