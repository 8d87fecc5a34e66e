// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tensor

// TracelessTensor is a SymmetricTensor whose trace has been projected out.
// Its zero value is a valid traceless tensor. Construction always routes
// through Deviator or NewTracelessFromDeviatoric so the invariant
// tr(T) == 0 holds for the type's lifetime.
type TracelessTensor struct {
	SymmetricTensor
}

// NewTracelessFromDeviatoric wraps already-deviatoric Mandel components
// without re-projecting (callers assert the trace is zero, e.g. values
// read back from a dump file).
func NewTracelessFromDeviatoric(m [6]float64) TracelessTensor {
	return TracelessTensor{SymmetricTensor{M: m}}
}

// Add returns t + u, re-projected to stay traceless against accumulated
// floating point drift.
func (t TracelessTensor) Add(u TracelessTensor) TracelessTensor {
	return t.SymmetricTensor.Add(u.SymmetricTensor).Deviator()
}

// Scale returns t scaled by a; scaling a traceless tensor stays traceless
// exactly, no re-projection needed.
func (t TracelessTensor) Scale(a float64) TracelessTensor {
	return TracelessTensor{t.SymmetricTensor.Scale(a)}
}

// SecondInvariant returns J2 = (1/2) t:t, the usual deviatoric invariant
// used by von Mises yield checks.
func (t TracelessTensor) SecondInvariant() float64 {
	return 0.5 * t.DoubleDot(t.SymmetricTensor)
}
