// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package kernel

import "math"

// cubicSigma3D is the 3-D cubic-spline normalization constant, 1/pi.
const cubicSigma3D = 1.0 / math.Pi

// CubicSpline is the M4 cubic B-spline kernel, support radius R=2.
type CubicSpline struct{}

// Radius returns 2.
func (CubicSpline) Radius() float64 { return 2 }

// SupportRadius returns 2*h.
func (CubicSpline) SupportRadius(h float64) float64 { return 2 * h }

// Value returns W(r,h) = sigma/h^3 * f(q), q=r/h.
func (CubicSpline) Value(r, h float64) float64 {
	q := r / h
	return cubicSigma3D / (h * h * h) * cubicSplineF(q)
}

func cubicSplineF(q float64) float64 {
	switch {
	case q < 1:
		return 1 - 1.5*q*q + 0.75*q*q*q
	case q < 2:
		t := 2 - q
		return 0.25 * t * t * t
	default:
		return 0
	}
}

func cubicSplineDF(q float64) float64 {
	switch {
	case q < 1:
		return -3*q + 2.25*q*q
	case q < 2:
		t := 2 - q
		return -0.75 * t * t
	default:
		return 0
	}
}

// Grad returns f(r,h) = (1/r) dW/dr; Grad(0,h) returns 0.
func (CubicSpline) Grad(r, h float64) float64 {
	if r == 0 {
		return 0
	}
	q := r / h
	dWdr := cubicSigma3D / (h * h * h * h) * cubicSplineDF(q)
	return dWdr / r
}
