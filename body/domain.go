// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package body builds the initial particle distributions: spherical and
// block domains filled by a lattice or a low-discrepancy sequence, with
// quantities initialised from the body's material.
package body

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Domain is a solid region to be filled with particles.
type Domain interface {
	// Contains reports whether p lies inside the domain.
	Contains(p mgl64.Vec3) bool

	// Bounds returns the axis-aligned bounding box.
	Bounds() (lo, hi mgl64.Vec3)

	// Volume returns the domain volume.
	Volume() float64
}

// Sphere is a ball of the given radius around Center.
type Sphere struct {
	Center mgl64.Vec3
	Radius float64
}

// Contains reports whether p lies inside the ball.
func (s Sphere) Contains(p mgl64.Vec3) bool {
	d := p.Sub(s.Center)
	return d.Dot(d) <= s.Radius*s.Radius
}

// Bounds returns the cube circumscribing the ball.
func (s Sphere) Bounds() (mgl64.Vec3, mgl64.Vec3) {
	r := mgl64.Vec3{s.Radius, s.Radius, s.Radius}
	return s.Center.Sub(r), s.Center.Add(r)
}

// Volume returns 4/3 pi r^3.
func (s Sphere) Volume() float64 {
	return 4.0 / 3.0 * math.Pi * s.Radius * s.Radius * s.Radius
}

// Block is an axis-aligned box of the given dimensions around Center.
type Block struct {
	Center mgl64.Vec3
	Dims   mgl64.Vec3
}

// Contains reports whether p lies inside the box.
func (b Block) Contains(p mgl64.Vec3) bool {
	d := p.Sub(b.Center)
	return math.Abs(d[0]) <= b.Dims[0]/2 &&
		math.Abs(d[1]) <= b.Dims[1]/2 &&
		math.Abs(d[2]) <= b.Dims[2]/2
}

// Bounds returns the box itself.
func (b Block) Bounds() (mgl64.Vec3, mgl64.Vec3) {
	half := b.Dims.Mul(0.5)
	return b.Center.Sub(half), b.Center.Add(half)
}

// Volume returns the box volume.
func (b Block) Volume() float64 {
	return b.Dims[0] * b.Dims[1] * b.Dims[2]
}
