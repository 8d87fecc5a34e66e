// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package kernel

import "math"

const gaussianSigma3D = 1.0 / (math.Pi * math.SqrtPi)

// gaussianRadius is the truncation radius R=5 (spec §4.3): beyond this,
// the untruncated tail is negligible relative to LUT precision.
const gaussianRadius = 5.0

// Gaussian is the truncated Gaussian kernel, support radius R=5.
type Gaussian struct{}

// Radius returns 5.
func (Gaussian) Radius() float64 { return gaussianRadius }

// SupportRadius returns 5*h.
func (Gaussian) SupportRadius(h float64) float64 { return gaussianRadius * h }

// Value returns W(r,h) = sigma/h^3 * exp(-q^2), truncated at q=R.
func (Gaussian) Value(r, h float64) float64 {
	q := r / h
	if q >= gaussianRadius {
		return 0
	}
	return gaussianSigma3D / (h * h * h) * math.Exp(-q*q)
}

// Grad returns f(r,h) = (1/r) dW/dr.
func (Gaussian) Grad(r, h float64) float64 {
	q := r / h
	if q >= gaussianRadius || r == 0 {
		return 0
	}
	dWdr := gaussianSigma3D / (h * h * h * h) * (-2 * q * math.Exp(-q*q))
	return dWdr / r
}
