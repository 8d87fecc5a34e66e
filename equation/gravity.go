// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package equation

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/cpmech/gosph/deriv"
	"github.com/cpmech/gosph/kernel"
	"github.com/cpmech/gosph/qty"
	"github.com/cpmech/gosph/tensor"
)

// GravityVariant selects the all-pairs summation or the tree-accelerated
// approximation, per spec's "Gravity (Barnes-Hut or brute force)" term.
type GravityVariant int

// Supported variants.
const (
	GravityBarnesHut GravityVariant = iota
	GravityBruteForce
)

// Gravity accumulates the self-gravitational acceleration via the
// shell-theorem-derived kernel.GravityKernel, using either an all-pairs
// sum or a Barnes-Hut octree traversal. Unlike the short-range equation
// terms, gravity is a long-range force with no fixed interaction
// radius, so it cannot ride deriv.Holder's neighbour-pair loop: it reads
// Position/Mass directly and writes Position's acceleration buffer
// itself, in the same Initialize/Finalize shape as PressureForce but
// with all its work done in Finalize over every particle rather than
// per-material partitions. Grounded on original_source/lib/solvers/Derivative.h's
// generic term split; the tree itself is the bespoke octree in octree.go.
type Gravity struct {
	Variant  GravityVariant
	Theta    float64 // opening-angle criterion, GravityBarnesHut only
	LeafSize int     // octree leaf particle-count threshold
	G        float64 // gravitational constant in simulation units
	kernel   *kernel.GravityKernel
}

// NewGravity returns a Gravity term using the Barnes-Hut approximation
// with the conventional theta=0.5 opening angle and G=1 (simulation
// units); pass a physical G when running in SI/CGS units.
func NewGravity(k *kernel.GravityKernel) *Gravity {
	return &Gravity{Variant: GravityBarnesHut, Theta: 0.5, LeafSize: 8, G: 1, kernel: k}
}

// SetDerivatives registers nothing: gravity does not use the
// neighbour-pair derivative machinery.
func (t *Gravity) SetDerivatives(h *deriv.Holder) error { return nil }

// Create is a no-op: Position/Mass are created by the store setup.
func (t *Gravity) Create(s *qty.Store) error { return nil }

// Initialize has no pre-loop work.
func (t *Gravity) Initialize(input *qty.Store) error { return nil }

// Finalize computes every particle's gravitational acceleration and
// adds it to Position's second derivative.
func (t *Gravity) Finalize(input *qty.Store) error {
	r, err := qty.GetValue[tensor.Vector4](input, qty.Position)
	if err != nil {
		return err
	}
	mass, err := qty.GetValue[float64](input, qty.Mass)
	if err != nil {
		return err
	}
	dv, err := qty.GetD2t[tensor.Vector4](input, qty.Position)
	if err != nil {
		return err
	}
	pos := make([]mgl64.Vec3, len(r))
	for i := range r {
		pos[i] = r[i].Spatial
	}
	switch t.Variant {
	case GravityBruteForce:
		t.bruteForce(pos, mass, r, dv)
	default:
		t.barnesHut(pos, mass, r, dv)
	}
	return nil
}

func (t *Gravity) bruteForce(pos []mgl64.Vec3, mass []float64, r []tensor.Vector4, dv []tensor.Vector4) {
	for i := range pos {
		var acc mgl64.Vec3
		for j := range pos {
			if i == j {
				continue
			}
			d := pos[j].Sub(pos[i])
			dist := d.Len()
			if dist == 0 {
				continue
			}
			g := t.kernel.Grad(dist, r[i].H)
			acc = acc.Add(d.Mul(g * mass[j] / dist))
		}
		dv[i].Spatial = dv[i].Spatial.Add(acc.Mul(t.G))
	}
}

func (t *Gravity) barnesHut(pos []mgl64.Vec3, mass []float64, r []tensor.Vector4, dv []tensor.Vector4) {
	tree := buildOctree(pos, mass, t.LeafSize)
	for i := range pos {
		acc := tree.accelerate(pos[i], i, t.Theta, t.kernel, r[i].H, pos, mass)
		dv[i].Spatial = dv[i].Spatial.Add(acc.Mul(t.G))
	}
}
