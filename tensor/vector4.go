// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package tensor implements the value types shared by quantity columns:
// 4-lane position/velocity vectors (3 spatial components plus the
// smoothing-length lane) and Mandel-basis symmetric/traceless tensors.
package tensor

import "github.com/go-gl/mathgl/mgl64"

// Vector4 couples a 3-D spatial vector with a 4th scalar lane. Positions
// carry the smoothing length H in the 4th lane; velocities and
// accelerations carry dH/dt and d2H/dt2 in the same lane, so a neighbour
// finder can read position and smoothing length from one buffer.
type Vector4 struct {
	Spatial mgl64.Vec3
	H       float64
}

// NewVector4 builds a Vector4 from spatial coordinates and the H lane.
func NewVector4(x, y, z, h float64) Vector4 {
	return Vector4{Spatial: mgl64.Vec3{x, y, z}, H: h}
}

// X, Y, Z are convenience accessors into the spatial part.
func (v Vector4) X() float64 { return v.Spatial[0] }
func (v Vector4) Y() float64 { return v.Spatial[1] }
func (v Vector4) Z() float64 { return v.Spatial[2] }

// Add returns v + w; the H lane is summed too (used for dt*derivative
// style updates where H also has a rate of change).
func (v Vector4) Add(w Vector4) Vector4 {
	return Vector4{Spatial: v.Spatial.Add(w.Spatial), H: v.H + w.H}
}

// Scale returns v scaled by s, H lane included.
func (v Vector4) Scale(s float64) Vector4 {
	return Vector4{Spatial: v.Spatial.Mul(s), H: v.H * s}
}

// AddScaled returns v + w*s (axpy), used by explicit integrators.
func (v Vector4) AddScaled(w Vector4, s float64) Vector4 {
	return v.Add(w.Scale(s))
}

// DistSq returns the squared distance between the spatial parts of v and
// w, ignoring the H lane. This is the quantity neighbour finders compare
// against a query radius squared.
func (v Vector4) DistSq(w Vector4) float64 {
	d := v.Spatial.Sub(w.Spatial)
	return d.Dot(d)
}

// SpatialNorm returns the Euclidean length of the spatial part.
func (v Vector4) SpatialNorm() float64 {
	return v.Spatial.Len()
}
