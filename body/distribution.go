// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package body

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/cpmech/gosph/rngseq"
)

// Distribution places approximately n points inside dom.
type Distribution interface {
	Generate(n int, dom Domain) []mgl64.Vec3
}

// HexagonalLattice fills the domain with hexagonal close packing, the
// densest regular arrangement and the usual choice for solid bodies:
// it leaves no preferred cartesian direction for cracks to follow.
type HexagonalLattice struct{}

// Generate fills dom with an HCP lattice sized so roughly n points
// land inside.
func (HexagonalLattice) Generate(n int, dom Domain) []mgl64.Vec3 {
	if n <= 0 {
		return nil
	}
	// per-point volume of HCP at spacing d is d^3/sqrt(2)
	d := math.Cbrt(dom.Volume() * math.Sqrt2 / float64(n))
	lo, hi := dom.Bounds()
	dx := d
	dy := d * math.Sqrt(3) / 2
	dz := d * math.Sqrt(6) / 3
	var out []mgl64.Vec3
	for k := 0; ; k++ {
		z := lo[2] + float64(k)*dz
		if z > hi[2] {
			break
		}
		// every other layer sits over the triangle centroids of the one below
		yoff := 0.0
		if k%2 == 1 {
			yoff = dy / 3
		}
		for j := 0; ; j++ {
			y := lo[1] + yoff + float64(j)*dy
			if y > hi[1] {
				break
			}
			xoff := 0.0
			if j%2 == 1 {
				xoff += dx / 2
			}
			if k%2 == 1 {
				xoff += dx / 2
			}
			for i := 0; ; i++ {
				x := lo[0] + xoff + float64(i)*dx
				if x > hi[0] {
					break
				}
				p := mgl64.Vec3{x, y, z}
				if dom.Contains(p) {
					out = append(out, p)
				}
			}
		}
	}
	return out
}

// HaltonDistribution fills the domain by accept-rejecting points of a
// seekable Halton sequence, so re-runs with the same seed place the
// same particles regardless of how the work is split across workers.
type HaltonDistribution struct {
	Seed int
}

// Generate draws exactly n accepted points.
func (hd HaltonDistribution) Generate(n int, dom Domain) []mgl64.Vec3 {
	if n <= 0 {
		return nil
	}
	seq, err := rngseq.NewHalton(3, hd.Seed)
	if err != nil {
		return nil
	}
	lo, hi := dom.Bounds()
	span := hi.Sub(lo)
	out := make([]mgl64.Vec3, 0, n)
	var buf []float64
	for idx := 0; len(out) < n; idx++ {
		buf = seq.At(idx, buf)
		p := mgl64.Vec3{
			lo[0] + span[0]*buf[0],
			lo[1] + span[1]*buf[1],
			lo[2] + span[2]*buf[2],
		}
		if dom.Contains(p) {
			out = append(out, p)
		}
	}
	return out
}
