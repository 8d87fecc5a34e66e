// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package material

import "github.com/cpmech/gosl/fun"

// TensorDamage evolves the same Grady-Kipp activation law as
// ScalarGradyKippDamage, but against an isotropic equivalent strain so
// it can be applied per-principal-direction by a caller that tracks
// damage as a diagonal tensor instead of a single scalar (anisotropic
// fragmentation, where a body can be damaged along one axis and intact
// along another).
type TensorDamage struct {
	inner ScalarGradyKippDamage
}

func init() {
	RegisterDamage("grady-kipp-tensor", func() Damage { return new(TensorDamage) })
}

// Init delegates to the scalar law's parameter binding.
func (o *TensorDamage) Init(prms fun.Prms) error {
	return o.inner.Init(prms)
}

// Rate delegates to the scalar law; callers apply it independently to
// each principal-direction damage component with that direction's own
// tensile-strain invariant.
func (o *TensorDamage) Rate(damage, strain, strainRateInvariant float64) float64 {
	return o.inner.Rate(damage, strain, strainRateInvariant)
}
