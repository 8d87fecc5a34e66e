// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package qty

// ClampRange bounds a quantity's value for the timestep derivative
// criterion, e.g. density must stay positive.
type ClampRange struct {
	Min, Max float64
}

// Material owns an equation-of-state strategy, an optional rheology
// strategy, an optional damage strategy, a parameter dictionary, and
// clamping ranges per quantity -- mirroring gofem's per-region material
// dictionary (inp/mat.go) generalised from FEM elements to SPH particles.
// The strategy fields are declared as `any` here to avoid an import
// cycle with package material, which depends on qty for the store
// contract its strategies operate on; callers type-assert to
// material.Eos / material.Rheology / material.Damage.
type Material struct {
	Name     string
	EoS      any
	Rheology any
	Damage   any
	Params   map[string]float64
	Clamps   map[Id]ClampRange
}

// NewMaterial returns an empty, named material.
func NewMaterial(name string) *Material {
	return &Material{Name: name, Params: make(map[string]float64), Clamps: make(map[Id]ClampRange)}
}

// Clone returns an independent copy of the material. Shared by default;
// call Clone only when an independent copy is explicitly required.
func (m *Material) Clone() *Material {
	out := &Material{Name: m.Name, EoS: m.EoS, Rheology: m.Rheology, Damage: m.Damage}
	out.Params = make(map[string]float64, len(m.Params))
	for k, v := range m.Params {
		out.Params[k] = v
	}
	out.Clamps = make(map[Id]ClampRange, len(m.Clamps))
	for k, v := range m.Clamps {
		out.Clamps[k] = v
	}
	return out
}

// Partition is a disjoint, contiguous [Begin,End) particle index range
// belonging to one material.
type Partition struct {
	Mat   *Material
	Begin int
	End   int
}

// Contains reports whether particle index i falls in [Begin,End).
func (p Partition) Contains(i int) bool { return i >= p.Begin && i < p.End }

// Len returns End-Begin.
func (p Partition) Len() int { return p.End - p.Begin }
