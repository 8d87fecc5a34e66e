// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tensor

import (
	"math"

	"github.com/cpmech/gosl/tsr"
	"github.com/go-gl/mathgl/mgl64"
)

// SymmetricTensor holds a 3-D symmetric second-order tensor in Mandel basis
// (6 independent components), the same representation gofem's msolid and
// ele/solid packages use for stress and strain.
type SymmetricTensor struct {
	M [6]float64 // Mandel components: xx, yy, zz, sqrt(2)*xy, sqrt(2)*yz, sqrt(2)*xz
}

// NewSymmetricTensor builds a SymmetricTensor from the 6 Mandel components.
func NewSymmetricTensor(m [6]float64) SymmetricTensor {
	return SymmetricTensor{M: m}
}

// Zero returns the zero symmetric tensor.
func Zero() SymmetricTensor { return SymmetricTensor{} }

// Component returns the Cartesian (i,j) component recovered from the
// Mandel representation, mirroring gofem's tsr.M2T helper.
func (s SymmetricTensor) Component(i, j int) float64 {
	return tsr.M2T(s.M[:], i, j)
}

// Trace returns tr(S) = Sxx + Syy + Szz.
func (s SymmetricTensor) Trace() float64 {
	return s.M[0] + s.M[1] + s.M[2]
}

// Add returns s + t component-wise.
func (s SymmetricTensor) Add(t SymmetricTensor) SymmetricTensor {
	var r SymmetricTensor
	for i := range s.M {
		r.M[i] = s.M[i] + t.M[i]
	}
	return r
}

// Scale returns s scaled by a.
func (s SymmetricTensor) Scale(a float64) SymmetricTensor {
	var r SymmetricTensor
	for i := range s.M {
		r.M[i] = s.M[i] * a
	}
	return r
}

// DoubleDot returns the double-contraction s:t = sum_ij s_ij t_ij, computed
// directly on the Mandel components (the sqrt(2) factors already make this
// a plain dot product).
func (s SymmetricTensor) DoubleDot(t SymmetricTensor) float64 {
	var sum float64
	for i := range s.M {
		sum += s.M[i] * t.M[i]
	}
	return sum
}

// SymmetricFromOuter returns the symmetrized outer product
// 1/2(a⊗b + b⊗a) in Mandel form, used by VelocityGradient to accumulate
// (v_i-v_j)⊗grad_i symmetrically.
func SymmetricFromOuter(a, b mgl64.Vec3) SymmetricTensor {
	sqrt2 := math.Sqrt2
	return SymmetricTensor{M: [6]float64{
		a[0] * b[0],
		a[1] * b[1],
		a[2] * b[2],
		sqrt2 * 0.5 * (a[0]*b[1] + a[1]*b[0]),
		sqrt2 * 0.5 * (a[1]*b[2] + a[2]*b[1]),
		sqrt2 * 0.5 * (a[0]*b[2] + a[2]*b[0]),
	}}
}

// Dot returns s·v, the matrix-vector product recovered component-wise
// via Component -- used by the stress-divergence derivative to contract
// a particle's stress tensor with a kernel gradient vector.
func (s SymmetricTensor) Dot(v mgl64.Vec3) mgl64.Vec3 {
	var r mgl64.Vec3
	for i := 0; i < 3; i++ {
		var sum float64
		for j := 0; j < 3; j++ {
			sum += s.Component(i, j) * v[j]
		}
		r[i] = sum
	}
	return r
}

// Deviator returns the traceless part of s, s - tr(s)/3 * tsr.Im, in
// Mandel basis.
func (s SymmetricTensor) Deviator() TracelessTensor {
	p := s.Trace() / 3
	var dev [6]float64
	for i := range dev {
		dev[i] = s.M[i] - p*tsr.Im[i]
	}
	return TracelessTensor{SymmetricTensor{M: dev}}
}
