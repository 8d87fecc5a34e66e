// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package finder

import (
	"math"

	"github.com/cpmech/gosph/sched"
	"github.com/cpmech/gosph/tensor"
)

// cellsPerParticle (c in spec §4.2) targets roughly one cell per particle.
const cellsPerParticle = 1.0

// boundaryEpsilonRel inflates the tightened bounding box so boundary
// particles never land exactly on a cell face, scaled by box size and by
// the distance from the origin to handle far-from-origin clouds (spec
// §4.2), grounded on original_source/lib/objects/finders/UniformGrid.cpp.
const boundaryEpsilonRel = 1e-6

// Grid is the uniform-grid finder variant: the bounding box is tightened
// to the points then inflated by a relative epsilon, divided into
// roughly cellsPerParticle*N cells, and queries walk the cells spanning
// [query-r, query+r].
type Grid struct {
	points []tensor.Vector4
	hRanking

	origin   [3]float64
	cellSize [3]float64
	dims     [3]int
	cells    [][]int32 // flat, index = ix + dims.x*(iy + dims.y*iz)
}

// NewGrid returns an empty, unbuilt uniform grid.
func NewGrid() *Grid { return &Grid{} }

// Build re-derives the bounding box, cell size, and bucket assignment.
// If the cell-count dimensions are unchanged from the previous build, the
// bucket slices are reused (cleared and refilled) instead of
// reallocated.
func (g *Grid) Build(points []tensor.Vector4, scheduler sched.Scheduler) error {
	g.points = points
	g.hRanking = buildHRanking(points)

	n := len(points)
	if n == 0 {
		g.dims = [3]int{0, 0, 0}
		g.cells = nil
		return nil
	}

	var lo, hi [3]float64
	for i := 0; i < 3; i++ {
		lo[i] = math.Inf(1)
		hi[i] = math.Inf(-1)
	}
	for _, p := range points {
		coord := [3]float64{p.X(), p.Y(), p.Z()}
		for i := 0; i < 3; i++ {
			if coord[i] < lo[i] {
				lo[i] = coord[i]
			}
			if coord[i] > hi[i] {
				hi[i] = coord[i]
			}
		}
	}
	for i := 0; i < 3; i++ {
		size := hi[i] - lo[i]
		// epsilon scales with box size and with how far the box sits
		// from the origin, so far-from-origin clouds still get enough
		// inflation relative to their own magnitude of coordinates.
		eps := boundaryEpsilonRel * (size + math.Abs(lo[i]) + math.Abs(hi[i]) + 1)
		lo[i] -= eps
		hi[i] += eps
	}

	d := int(math.Ceil(math.Cbrt(cellsPerParticle*float64(n)))) + 1
	if d < 1 {
		d = 1
	}
	newDims := [3]int{d, d, d}

	for i := 0; i < 3; i++ {
		g.origin[i] = lo[i]
		extent := hi[i] - lo[i]
		if extent <= 0 {
			extent = 1
		}
		g.cellSize[i] = extent / float64(newDims[i])
	}

	if newDims != g.dims || g.cells == nil {
		g.dims = newDims
		g.cells = make([][]int32, g.dims[0]*g.dims[1]*g.dims[2])
	} else {
		for i := range g.cells {
			g.cells[i] = g.cells[i][:0]
		}
	}

	for idx, p := range points {
		ci := g.cellIndexClamped(p.X(), p.Y(), p.Z())
		g.cells[ci] = append(g.cells[ci], int32(idx))
	}
	return nil
}

func (g *Grid) cellCoord(x, y, z float64) (int, int, int) {
	ix := int((x - g.origin[0]) / g.cellSize[0])
	iy := int((y - g.origin[1]) / g.cellSize[1])
	iz := int((z - g.origin[2]) / g.cellSize[2])
	return ix, iy, iz
}

func (g *Grid) clamp(ix, iy, iz int) (int, int, int) {
	if ix < 0 {
		ix = 0
	} else if ix >= g.dims[0] {
		ix = g.dims[0] - 1
	}
	if iy < 0 {
		iy = 0
	} else if iy >= g.dims[1] {
		iy = g.dims[1] - 1
	}
	if iz < 0 {
		iz = 0
	} else if iz >= g.dims[2] {
		iz = g.dims[2] - 1
	}
	return ix, iy, iz
}

func (g *Grid) cellIndexClamped(x, y, z float64) int {
	ix, iy, iz := g.cellCoord(x, y, z)
	ix, iy, iz = g.clamp(ix, iy, iz)
	return ix + g.dims[0]*(iy+g.dims[1]*iz)
}

// FindAll appends every neighbour within radius of query.
func (g *Grid) FindAll(query tensor.Vector4, radius float64, dst []Neighbour) []Neighbour {
	return g.query(query, radius, -1, -1, dst)
}

// FindAllIndex is FindAll centred on an existing particle, excluding it.
func (g *Grid) FindAllIndex(index int, radius float64, dst []Neighbour) []Neighbour {
	return g.query(g.points[index], radius, index, -1, dst)
}

// FindLowerRank returns neighbours with rank-in-H strictly less than
// index's rank-in-H.
func (g *Grid) FindLowerRank(index int, radius float64, dst []Neighbour) []Neighbour {
	return g.query(g.points[index], radius, index, g.RankInH(index), dst)
}

// query walks the cells spanning [q-r, q+r] around the clamped query
// cell, testing every contained particle's squared distance against r².
// maxRank<0 disables the rank filter (plain FindAll semantics).
func (g *Grid) query(q tensor.Vector4, radius float64, exclude, maxRank int, dst []Neighbour) []Neighbour {
	if len(g.cells) == 0 {
		return dst
	}
	r2 := radius * radius
	cx, cy, cz := g.cellCoord(q.X(), q.Y(), q.Z())
	cx, cy, cz = g.clamp(cx, cy, cz)

	spanX := int(math.Ceil(radius/g.cellSize[0])) + 1
	spanY := int(math.Ceil(radius/g.cellSize[1])) + 1
	spanZ := int(math.Ceil(radius/g.cellSize[2])) + 1

	for dz := -spanZ; dz <= spanZ; dz++ {
		iz := cz + dz
		if iz < 0 || iz >= g.dims[2] {
			continue
		}
		for dy := -spanY; dy <= spanY; dy++ {
			iy := cy + dy
			if iy < 0 || iy >= g.dims[1] {
				continue
			}
			for dx := -spanX; dx <= spanX; dx++ {
				ix := cx + dx
				if ix < 0 || ix >= g.dims[0] {
					continue
				}
				ci := ix + g.dims[0]*(iy+g.dims[1]*iz)
				for _, j32 := range g.cells[ci] {
					j := int(j32)
					if j == exclude {
						continue
					}
					if maxRank >= 0 && g.RankInH(j) >= maxRank {
						continue
					}
					d2 := q.DistSq(g.points[j])
					if d2 < r2 {
						dst = append(dst, Neighbour{Index: j, DistSq: d2})
					}
				}
			}
		}
	}
	return dst
}
