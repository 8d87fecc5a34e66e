// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package kernel implements SPH smoothing kernels with compact support,
// a lookup-table approximation for runtime evaluation, and the
// gravitational potential kernel paired with each SPH kernel.
package kernel

// Kernel is a compactly-supported smoothing kernel K(q,h), q=r/h, with
// support radius R*h. Grad returns the scalar factor f(r,h) such that
// the gradient vector is f*(x_i-x_j); Grad(0,h) is always 0.
type Kernel interface {
	// Value returns K(r,h).
	Value(r, h float64) float64

	// Grad returns f(r,h) = (1/r) dK/dr, so that ∇K = f(r,h)*(x_i-x_j).
	Grad(r, h float64) float64

	// SupportRadius returns R*h, the distance beyond which Value/Grad
	// are exactly zero.
	SupportRadius(h float64) float64

	// Radius returns R, the kernel's dimensionless support multiplier.
	Radius() float64
}
