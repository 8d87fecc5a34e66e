// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package material

import (
	"math"

	"github.com/cpmech/gosl/fun"
)

// TillotsonEos is the Tillotson (1962) equation of state, the standard
// choice for hypervelocity impact simulations: a compressed-region
// branch near rho0 and an expanded-region branch for the vapor produced
// by shock heating, blended linearly between the incipient- and
// complete-vaporization energy thresholds.
type TillotsonEos struct {
	rho0, a, b, A, B, e0, alpha, beta, uIV, uCV float64
}

func init() {
	RegisterEos("tillotson", func() Eos { return new(TillotsonEos) })
}

// Init binds the Tillotson material constants.
func (o *TillotsonEos) Init(prms fun.Prms) error {
	prms.Connect(&o.rho0, "rho0", "tillotson reference density")
	prms.Connect(&o.a, "a", "tillotson a")
	prms.Connect(&o.b, "b", "tillotson b")
	prms.Connect(&o.A, "A", "tillotson bulk modulus A")
	prms.Connect(&o.B, "B", "tillotson B")
	prms.Connect(&o.e0, "u0", "tillotson reference specific energy")
	prms.Connect(&o.alpha, "alpha", "tillotson alpha")
	prms.Connect(&o.beta, "beta", "tillotson beta")
	prms.Connect(&o.uIV, "u_iv", "specific energy of incipient vaporization")
	prms.Connect(&o.uCV, "u_cv", "specific energy of complete vaporization")
	return nil
}

func (o *TillotsonEos) compressed(rho, u float64) float64 {
	eta := rho / o.rho0
	mu := eta - 1
	denom := u/(o.e0*eta*eta) + 1
	return (o.a+o.b/denom)*rho*u + o.A*mu + o.B*mu*mu
}

func (o *TillotsonEos) expanded(rho, u float64) float64 {
	eta := rho / o.rho0
	mu := eta - 1
	denom := u/(o.e0*eta*eta) + 1
	vapor := o.rho0/rho - 1
	term1 := o.a * rho * u
	term2 := (o.b*rho*u/denom + o.A*mu*math.Exp(-o.beta*vapor)) * math.Exp(-o.alpha*vapor*vapor)
	return term1 + term2
}

// Pressure returns the Tillotson pressure, blending compressed and
// expanded branches linearly for u in [u_iv,u_cv] when rho<rho0.
func (o *TillotsonEos) Pressure(rho, u float64) float64 {
	if rho >= o.rho0 || u <= o.uIV {
		return o.compressed(rho, u)
	}
	if u >= o.uCV {
		return o.expanded(rho, u)
	}
	frac := (u - o.uIV) / (o.uCV - o.uIV)
	return (1-frac)*o.compressed(rho, u) + frac*o.expanded(rho, u)
}

// SoundSpeed returns the estimate c = sqrt((k + max(p,0))/rho) with
// k = max(A,B), or rho0*e0 when that is not positive, for CFL timestep
// control; it does not evaluate the full dP/drho Tillotson derivative.
func (o *TillotsonEos) SoundSpeed(rho, u, p float64) float64 {
	if rho <= 0 {
		return 0
	}
	k := math.Max(o.A, o.B)
	if k <= 0 {
		k = o.rho0 * o.e0
	}
	c2 := k/rho + math.Max(0, p)/rho
	return math.Sqrt(c2)
}
