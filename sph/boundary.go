// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sph

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/cpmech/gosph/qty"
	"github.com/cpmech/gosph/tensor"
)

// Boundary injects ghost particles ahead of a solver pass and removes
// them afterwards. The store's particle count is therefore stable only
// between passes, never within one.
type Boundary interface {
	// Apply appends ghost particles to store.
	Apply(store *qty.Store) error

	// Remove restores store to its owned (pre-Apply) state.
	Remove(store *qty.Store) error
}

// GhostPlane mirrors particles near a rigid plane into ghost particles
// on the far side, with the normal velocity component reflected, so the
// pressure gradient across the plane cancels and nothing traverses it.
type GhostPlane struct {
	Point  mgl64.Vec3 // a point on the plane
	Normal mgl64.Vec3 // unit normal pointing into the fluid
	Width  float64    // mirror particles closer than this to the plane

	owned int
}

// NewGhostPlane returns a GhostPlane boundary. normal need not be
// normalized.
func NewGhostPlane(point, normal mgl64.Vec3, width float64) *GhostPlane {
	return &GhostPlane{Point: point, Normal: normal.Normalize(), Width: width}
}

// Apply appends one mirrored ghost per particle within Width of the
// plane.
func (b *GhostPlane) Apply(store *qty.Store) error {
	b.owned = store.ParticleCount()
	r, err := qty.GetValue[tensor.Vector4](store, qty.Position)
	if err != nil {
		return err
	}
	var mirror []int
	for i := range r {
		d := r[i].Spatial.Sub(b.Point).Dot(b.Normal)
		if d >= 0 && d < b.Width {
			mirror = append(mirror, i)
		}
	}
	if len(mirror) == 0 {
		return nil
	}
	ghosts, err := store.Gather(mirror)
	if err != nil {
		return err
	}
	gr, err := qty.GetValue[tensor.Vector4](ghosts, qty.Position)
	if err != nil {
		return err
	}
	gv, err := qty.GetDt[tensor.Vector4](ghosts, qty.Position)
	if err != nil {
		return err
	}
	for k := range gr {
		d := gr[k].Spatial.Sub(b.Point).Dot(b.Normal)
		gr[k].Spatial = gr[k].Spatial.Sub(b.Normal.Mul(2 * d))
		vn := gv[k].Spatial.Dot(b.Normal)
		gv[k].Spatial = gv[k].Spatial.Sub(b.Normal.Mul(2 * vn))
	}
	return store.Merge(ghosts)
}

// Remove truncates the ghosts appended by the last Apply.
func (b *GhostPlane) Remove(store *qty.Store) error {
	return store.Truncate(b.owned)
}
