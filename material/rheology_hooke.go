// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package material

import "github.com/cpmech/gosl/fun"

// HookeShear is the linear-elastic deviatoric rheology
// dσ/dt = 2G ε̇_dev, the solid-stress term's default strength model
// before any plasticity limiter is applied.
type HookeShear struct{}

func init() {
	RegisterRheology("hooke", func() Rheology { return new(HookeShear) })
}

// Init takes no parameters: the shear modulus is supplied per call by
// the caller (it may itself depend on damage/pressure).
func (o *HookeShear) Init(prms fun.Prms) error { return nil }

// StressRate returns 2G times the deviatoric strain rate, in Mandel form.
func (o *HookeShear) StressRate(stress [6]float64, strainRate [6]float64, shearModulus float64) [6]float64 {
	var rate [6]float64
	for i := range rate {
		rate[i] = 2 * shearModulus * strainRate[i]
	}
	return rate
}
