// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package material

import (
	"math"

	"github.com/cpmech/gosl/fun"
)

// IdealGasEos is the polytropic ideal-gas equation of state
// p = (gamma-1) rho u, used by the Kelvin-Helmholtz and other
// gas-dynamics scenarios.
type IdealGasEos struct {
	gamma float64
}

func init() {
	RegisterEos("ideal-gas", func() Eos { return new(IdealGasEos) })
}

// Init binds the adiabatic index gamma.
func (o *IdealGasEos) Init(prms fun.Prms) error {
	o.gamma = 1.4
	prms.Connect(&o.gamma, "gamma", "ideal gas adiabatic index")
	return nil
}

// Pressure returns (gamma-1) rho u.
func (o *IdealGasEos) Pressure(rho, u float64) float64 {
	return (o.gamma - 1) * rho * u
}

// SoundSpeed returns sqrt(gamma p / rho).
func (o *IdealGasEos) SoundSpeed(rho, u, p float64) float64 {
	if rho <= 0 {
		return 0
	}
	return math.Sqrt(o.gamma * p / rho)
}
