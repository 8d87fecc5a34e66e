// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package material implements the value-typed equation-of-state,
// rheology and damage strategies a body's Material plugs into the
// solver, registered by name the way gofem's mdl/* packages register
// solid/diffusion models.
package material

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun"
)

// Eos computes pressure (and, where the model supports it, sound
// speed) from density and specific internal energy.
type Eos interface {
	Init(prms fun.Prms) error
	Pressure(rho, u float64) float64
	SoundSpeed(rho, u, p float64) float64
}

// Rheology computes the deviatoric stress rate given the current
// deviatoric stress and the velocity-gradient strain rate.
type Rheology interface {
	Init(prms fun.Prms) error
	StressRate(stress [6]float64, strainRate [6]float64, shearModulus float64) [6]float64
}

// Damage evolves a scalar or tensor damage quantity from the local
// stress/strain state.
type Damage interface {
	Init(prms fun.Prms) error
	Rate(damage, strain, strainRateInvariant float64) float64
}

// eosAllocators, rheologyAllocators, damageAllocators hold the
// registered constructors, mirroring gofem's mdl/generic "allocators"
// map-of-constructors idiom.
var (
	eosAllocators      = map[string]func() Eos{}
	rheologyAllocators = map[string]func() Rheology{}
	damageAllocators   = map[string]func() Damage{}
)

// RegisterEos adds name to the Eos registry; called from each
// concrete model's init().
func RegisterEos(name string, alloc func() Eos) {
	eosAllocators[name] = alloc
}

// RegisterRheology adds name to the Rheology registry.
func RegisterRheology(name string, alloc func() Rheology) {
	rheologyAllocators[name] = alloc
}

// RegisterDamage adds name to the Damage registry.
func RegisterDamage(name string, alloc func() Damage) {
	damageAllocators[name] = alloc
}

// NewEos allocates and initializes the named equation of state.
func NewEos(name string, prms fun.Prms) (Eos, error) {
	alloc, ok := eosAllocators[name]
	if !ok {
		return nil, chk.Err("material: equation of state %q is not registered", name)
	}
	m := alloc()
	if err := m.Init(prms); err != nil {
		return nil, chk.Err("material: init eos %q: %v", name, err)
	}
	return m, nil
}

// NewRheology allocates and initializes the named rheology.
func NewRheology(name string, prms fun.Prms) (Rheology, error) {
	alloc, ok := rheologyAllocators[name]
	if !ok {
		return nil, chk.Err("material: rheology %q is not registered", name)
	}
	m := alloc()
	if err := m.Init(prms); err != nil {
		return nil, chk.Err("material: init rheology %q: %v", name, err)
	}
	return m, nil
}

// NewDamage allocates and initializes the named damage model.
func NewDamage(name string, prms fun.Prms) (Damage, error) {
	alloc, ok := damageAllocators[name]
	if !ok {
		return nil, chk.Err("material: damage model %q is not registered", name)
	}
	m := alloc()
	if err := m.Init(prms); err != nil {
		return nil, chk.Err("material: init damage %q: %v", name, err)
	}
	return m, nil
}
