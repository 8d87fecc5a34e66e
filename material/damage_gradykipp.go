// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package material

import (
	"math"

	"github.com/cpmech/gosl/fun"
)

// ScalarGradyKippDamage is a scalar reduction of the Grady-Kipp (1980)
// flaw-activation model: once the local tensile strain exceeds a
// threshold, damage grows at a rate set by the crack-growth velocity,
// and saturates at D=1 (fully fragmented material carries no tension).
type ScalarGradyKippDamage struct {
	strainThreshold float64
	growthRate      float64
}

func init() {
	RegisterDamage("grady-kipp-scalar", func() Damage { return new(ScalarGradyKippDamage) })
}

// Init binds the activation strain threshold and crack growth rate.
func (o *ScalarGradyKippDamage) Init(prms fun.Prms) error {
	prms.Connect(&o.strainThreshold, "eps_min", "grady-kipp activation strain")
	prms.Connect(&o.growthRate, "cg", "grady-kipp crack growth rate")
	return nil
}

// Rate returns dD/dt given the current damage, the local tensile
// strain invariant, and the strain-rate invariant (used to scale the
// growth once activated).
func (o *ScalarGradyKippDamage) Rate(damage, strain, strainRateInvariant float64) float64 {
	if damage >= 1 || strain <= o.strainThreshold {
		return 0
	}
	growth := o.growthRate * math.Abs(strainRateInvariant)
	if damage+growth > 1 {
		return 1 - damage
	}
	return growth
}
