// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package body

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/gosph/qty"
	"github.com/cpmech/gosph/tensor"
)

// Settings configures one body's particle quantities.
type Settings struct {
	Density  float64    // rest density rho0
	Energy   float64    // initial specific energy
	Velocity mgl64.Vec3 // bulk velocity
	// AngularFrequency spins the body around the z axis through its
	// center of mass (target rotation period).
	AngularFrequency float64
	// EtaKernel scales the smoothing length relative to the mean
	// inter-particle spacing; 0 defaults to 1.3.
	EtaKernel float64
	// Flag tags the particles with their body of origin.
	Flag uint64
}

// Make fills dom with particles from dist, initialises their quantities
// from set and mat, and appends them to store as a new material
// partition. Returns the number of particles added.
func Make(store *qty.Store, dom Domain, dist Distribution, mat *qty.Material, n int, set Settings) (int, error) {
	if set.Density <= 0 {
		return 0, chk.Err("body: density %g must be positive", set.Density)
	}
	points := dist.Generate(n, dom)
	if len(points) == 0 {
		return 0, chk.Err("body: distribution produced no particles")
	}
	eta := set.EtaKernel
	if eta == 0 {
		eta = 1.3
	}
	perVolume := dom.Volume() / float64(len(points))
	spacing := math.Cbrt(perVolume)
	h := eta * spacing
	mass := set.Density * perVolume

	center := mgl64.Vec3{}
	for _, p := range points {
		center = center.Add(p)
	}
	center = center.Mul(1 / float64(len(points)))

	m := len(points)
	pos := make([]tensor.Vector4, m)
	vel := make([]tensor.Vector4, m)
	for i, p := range points {
		pos[i] = tensor.Vector4{Spatial: p, H: h}
		v := set.Velocity
		if set.AngularFrequency != 0 {
			arm := p.Sub(center)
			v = v.Add(mgl64.Vec3{0, 0, set.AngularFrequency}.Cross(arm))
		}
		vel[i] = tensor.Vector4{Spatial: v}
	}

	sub := qty.NewStore()
	if err := qty.Insert(sub, qty.Position, qty.Second, pos); err != nil {
		return 0, err
	}
	v, err := qty.GetDt[tensor.Vector4](sub, qty.Position)
	if err != nil {
		return 0, err
	}
	copy(v, vel)
	if err := qty.Insert(sub, qty.Mass, qty.Zero, constFloats(m, mass)); err != nil {
		return 0, err
	}
	if err := qty.Insert(sub, qty.Density, qty.First, constFloats(m, set.Density)); err != nil {
		return 0, err
	}
	if err := qty.Insert(sub, qty.Energy, qty.First, constFloats(m, set.Energy)); err != nil {
		return 0, err
	}
	if err := qty.Insert(sub, qty.Pressure, qty.Zero, constFloats(m, 0)); err != nil {
		return 0, err
	}
	if err := qty.Insert(sub, qty.SoundSpeed, qty.Zero, constFloats(m, 0)); err != nil {
		return 0, err
	}
	flags := make([]uint64, m)
	for i := range flags {
		flags[i] = set.Flag
	}
	if err := qty.Insert(sub, qty.Flag, qty.Zero, flags); err != nil {
		return 0, err
	}
	if err := sub.AppendPartition(mat, m); err != nil {
		return 0, err
	}

	if store.ParticleCount() == 0 && store.MaterialCount() == 0 && len(store.Ids()) == 0 {
		*store = *sub
		return m, nil
	}
	if err := store.Merge(sub); err != nil {
		return 0, err
	}
	return m, nil
}

func constFloats(n int, v float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}
