// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package finder

import (
	"math"

	"github.com/cpmech/gosph/sched"
	"github.com/cpmech/gosph/tensor"
)

// CompactnessThreshold is the default M-threshold below which Dynamic
// picks the uniform grid over the k-d tree (spec §4.2).
const CompactnessThreshold = 0.2

// Dynamic evaluates an empirical compactness metric on each build and
// switches between a uniform grid (compact clouds) and a k-d tree
// (elongated/clustered clouds), reusing the chosen finder's underlying
// instance across builds when the pick is unchanged. Grounded on
// original_source/lib/objects/finders/DynamicFinder.{h,cpp}.
type Dynamic struct {
	Threshold float64
	LeafSize  int

	current Finder
	isGrid  bool
}

// NewDynamic returns a Dynamic finder with default threshold and leaf size.
func NewDynamic() *Dynamic {
	return &Dynamic{Threshold: CompactnessThreshold, LeafSize: DefaultLeafSize}
}

// Build computes M = |dipole|/S + ||quadrupole||/S^2, S = diag(bbox)*N,
// and rebuilds (or reuses) the grid or tree accordingly.
func (d *Dynamic) Build(points []tensor.Vector4, scheduler sched.Scheduler) error {
	n := len(points)
	if n == 0 {
		if d.current == nil {
			d.current = NewGrid()
			d.isGrid = true
		}
		return d.current.Build(points, scheduler)
	}

	var lo, hi, centroid [3]float64
	for i := range lo {
		lo[i], hi[i] = math.Inf(1), math.Inf(-1)
	}
	for _, p := range points {
		c := [3]float64{p.X(), p.Y(), p.Z()}
		for i := 0; i < 3; i++ {
			if c[i] < lo[i] {
				lo[i] = c[i]
			}
			if c[i] > hi[i] {
				hi[i] = c[i]
			}
			centroid[i] += c[i]
		}
	}
	for i := range centroid {
		centroid[i] /= float64(n)
	}

	var dipole [3]float64
	var quadrupole [3][3]float64
	for _, p := range points {
		c := [3]float64{p.X(), p.Y(), p.Z()}
		var r [3]float64
		for i := 0; i < 3; i++ {
			r[i] = c[i] - centroid[i]
			dipole[i] += r[i]
		}
		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				quadrupole[i][j] += r[i] * r[j]
			}
		}
	}

	diag := 0.0
	for i := 0; i < 3; i++ {
		diag += (hi[i] - lo[i]) * (hi[i] - lo[i])
	}
	diag = math.Sqrt(diag)
	S := diag * float64(n)
	if S == 0 {
		S = 1
	}

	dipoleNorm := math.Sqrt(dipole[0]*dipole[0] + dipole[1]*dipole[1] + dipole[2]*dipole[2])
	var quadNorm float64
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			quadNorm += quadrupole[i][j] * quadrupole[i][j]
		}
	}
	quadNorm = math.Sqrt(quadNorm)

	M := dipoleNorm/S + quadNorm/(S*S)

	useGrid := M <= d.Threshold
	if d.current == nil || useGrid != d.isGrid {
		if useGrid {
			d.current = NewGrid()
		} else {
			d.current = NewKDTree(d.LeafSize)
		}
		d.isGrid = useGrid
	}
	return d.current.Build(points, scheduler)
}

// FindAll delegates to the currently selected finder.
func (d *Dynamic) FindAll(query tensor.Vector4, radius float64, dst []Neighbour) []Neighbour {
	return d.current.FindAll(query, radius, dst)
}

// FindAllIndex delegates to the currently selected finder.
func (d *Dynamic) FindAllIndex(index int, radius float64, dst []Neighbour) []Neighbour {
	return d.current.FindAllIndex(index, radius, dst)
}

// FindLowerRank delegates to the currently selected finder.
func (d *Dynamic) FindLowerRank(index int, radius float64, dst []Neighbour) []Neighbour {
	return d.current.FindLowerRank(index, radius, dst)
}

// RankInH delegates to the currently selected finder.
func (d *Dynamic) RankInH(i int) int {
	return d.current.RankInH(i)
}

// IsGrid reports whether the uniform grid is currently selected (mostly
// useful for tests and diagnostics).
func (d *Dynamic) IsGrid() bool { return d.isGrid }
