// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package material

import (
	"math"

	"github.com/cpmech/gosl/fun"
)

// MurnaghanEos is the Murnaghan equation of state
// p = (rho0 c0^2 / n) ((rho/rho0)^n - 1), a simple compressed-solid
// EoS used for low-pressure target/impactor material where the full
// Tillotson expansion branch is unnecessary.
type MurnaghanEos struct {
	rho0, c0, n float64
}

func init() {
	RegisterEos("murnaghan", func() Eos { return new(MurnaghanEos) })
}

// Init binds rho0, c0 and the polytropic exponent n.
func (o *MurnaghanEos) Init(prms fun.Prms) error {
	o.n = 4
	prms.Connect(&o.rho0, "rho0", "murnaghan reference density")
	prms.Connect(&o.c0, "c0", "murnaghan reference sound speed")
	prms.Connect(&o.n, "n", "murnaghan polytropic exponent")
	return nil
}

// Pressure returns (rho0 c0^2 / n) ((rho/rho0)^n - 1).
func (o *MurnaghanEos) Pressure(rho, u float64) float64 {
	if o.rho0 <= 0 {
		return 0
	}
	k0 := o.rho0 * o.c0 * o.c0
	return k0 / o.n * (math.Pow(rho/o.rho0, o.n) - 1)
}

// SoundSpeed returns c0 (rho/rho0)^((n-1)/2), the bulk-modulus-derived
// sound speed for this EoS branch.
func (o *MurnaghanEos) SoundSpeed(rho, u, p float64) float64 {
	if o.rho0 <= 0 {
		return o.c0
	}
	return o.c0 * math.Pow(rho/o.rho0, (o.n-1)/2)
}
