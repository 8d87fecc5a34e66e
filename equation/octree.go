// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package equation

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/cpmech/gosph/kernel"
)

// octNode is one node of a bespoke Barnes-Hut octree: a bounding cube,
// its aggregate mass and center of mass, and either up to 8 children or
// a leaf's particle indices. Kept bespoke rather than built on
// gonum.org/v1/gonum/spatial/kdtree for the same reason finder/kdtree.go
// and kernel/gravity.go stay bespoke: that package's Comparable/Nearest
// surface is shaped for nearest-neighbour queries, not the
// mass-accumulating, opening-angle-pruned descent Barnes-Hut needs.
type octNode struct {
	center   mgl64.Vec3
	halfSize float64
	com      mgl64.Vec3
	mass     float64
	children [8]*octNode
	leaf     bool
	particle []int
}

// buildOctree partitions particles into a Barnes-Hut octree bounded by
// their axis-aligned bounding box, splitting nodes whose particle count
// exceeds leafSize.
func buildOctree(pos []mgl64.Vec3, mass []float64, leafSize int) *octNode {
	if len(pos) == 0 {
		return nil
	}
	lo, hi := pos[0], pos[0]
	for _, p := range pos[1:] {
		for k := 0; k < 3; k++ {
			if p[k] < lo[k] {
				lo[k] = p[k]
			}
			if p[k] > hi[k] {
				hi[k] = p[k]
			}
		}
	}
	center := lo.Add(hi).Mul(0.5)
	half := 0.0
	for k := 0; k < 3; k++ {
		if e := (hi[k] - lo[k]) / 2; e > half {
			half = e
		}
	}
	if half == 0 {
		half = 1
	}
	all := make([]int, len(pos))
	for i := range all {
		all[i] = i
	}
	if leafSize < 1 {
		leafSize = 1
	}
	return buildOctNode(center, half*1.0001, all, pos, mass, leafSize)
}

func buildOctNode(center mgl64.Vec3, halfSize float64, idx []int, pos []mgl64.Vec3, mass []float64, leafSize int) *octNode {
	n := &octNode{center: center, halfSize: halfSize}
	for _, i := range idx {
		n.mass += mass[i]
		n.com = n.com.Add(pos[i].Mul(mass[i]))
	}
	if n.mass > 0 {
		n.com = n.com.Mul(1 / n.mass)
	}
	if len(idx) <= leafSize || halfSize < 1e-12 {
		n.leaf = true
		n.particle = idx
		return n
	}
	var buckets [8][]int
	for _, i := range idx {
		buckets[octant(center, pos[i])] = append(buckets[octant(center, pos[i])], i)
	}
	childHalf := halfSize / 2
	any := false
	for o := 0; o < 8; o++ {
		if len(buckets[o]) == 0 {
			continue
		}
		if len(buckets[o]) == len(idx) {
			// all particles landed in the same octant (e.g. coincident
			// points): stop subdividing to avoid infinite recursion.
			n.leaf = true
			n.particle = idx
			return n
		}
		any = true
		n.children[o] = buildOctNode(childCenter(center, childHalf, o), childHalf, buckets[o], pos, mass, leafSize)
	}
	if !any {
		n.leaf = true
		n.particle = idx
	}
	return n
}

func octant(center, p mgl64.Vec3) int {
	o := 0
	if p[0] > center[0] {
		o |= 1
	}
	if p[1] > center[1] {
		o |= 2
	}
	if p[2] > center[2] {
		o |= 4
	}
	return o
}

func childCenter(center mgl64.Vec3, childHalf float64, o int) mgl64.Vec3 {
	d := mgl64.Vec3{childHalf, childHalf, childHalf}
	if o&1 == 0 {
		d[0] = -childHalf
	}
	if o&2 == 0 {
		d[1] = -childHalf
	}
	if o&4 == 0 {
		d[2] = -childHalf
	}
	return center.Add(d)
}

// accelerate returns the monopole Barnes-Hut gravitational acceleration
// at a point, excluding the particle at index self (pass -1 when
// evaluating at an arbitrary, non-particle point). theta is the
// opening-angle criterion size/distance < theta; below it a node is
// treated as one point mass via kern evaluated at smoothing length h.
func (n *octNode) accelerate(at mgl64.Vec3, self int, theta float64, kern *kernel.GravityKernel, h float64, pos []mgl64.Vec3, mass []float64) mgl64.Vec3 {
	if n == nil || n.mass == 0 {
		return mgl64.Vec3{}
	}
	if n.leaf {
		var acc mgl64.Vec3
		for _, j := range n.particle {
			if j == self {
				continue
			}
			d := pos[j].Sub(at)
			r := d.Len()
			if r == 0 {
				continue
			}
			g := kern.Grad(r, h)
			acc = acc.Add(d.Mul(g * mass[j] / r))
		}
		return acc
	}
	d := n.com.Sub(at)
	r := d.Len()
	if r > 0 && 2*n.halfSize/r < theta {
		g := kern.Grad(r, h)
		return d.Mul(g * n.mass / r)
	}
	var acc mgl64.Vec3
	for _, c := range n.children {
		acc = acc.Add(c.accelerate(at, self, theta, kern, h, pos, mass))
	}
	return acc
}
