// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package finder

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/cpmech/gosph/sched"
	"github.com/cpmech/gosph/tensor"
)

// PeriodicBox describes which axes wrap and over what period.
type PeriodicBox struct {
	Period  [3]float64
	Enabled [3]bool
}

// Periodic composes another finder with a wrap box. A query at position
// p runs 1-27 inner queries at p+offset for each combination of axis
// shifts in {-L,0,+L} per enabled axis; distances are reported against
// the wrapped (shifted) query position, so neighbours across a boundary
// appear at their wrapped (small) distance. Grounded on
// original_source/core/objects/finders/test/PeriodicFinder.cpp.
type Periodic struct {
	Inner Finder
	Box   PeriodicBox

	points []tensor.Vector4
}

// NewPeriodic wraps inner with box.
func NewPeriodic(inner Finder, box PeriodicBox) *Periodic {
	return &Periodic{Inner: inner, Box: box}
}

// Build delegates to the inner finder.
func (p *Periodic) Build(points []tensor.Vector4, scheduler sched.Scheduler) error {
	p.points = points
	return p.Inner.Build(points, scheduler)
}

func (p *Periodic) shifts() [][3]float64 {
	axisOffsets := func(axis int) []float64 {
		if !p.Box.Enabled[axis] {
			return []float64{0}
		}
		L := p.Box.Period[axis]
		return []float64{-L, 0, L}
	}
	var out [][3]float64
	for _, ox := range axisOffsets(0) {
		for _, oy := range axisOffsets(1) {
			for _, oz := range axisOffsets(2) {
				out = append(out, [3]float64{ox, oy, oz})
			}
		}
	}
	return out
}

func shifted(q tensor.Vector4, off [3]float64) tensor.Vector4 {
	return tensor.NewVector4(q.X()+off[0], q.Y()+off[1], q.Z()+off[2], q.H)
}

// wrap maps the query into the canonical box on every enabled axis, so
// a query shifted by any integer multiple of the period sees the same
// neighbourhood.
func (p *Periodic) wrap(q tensor.Vector4) tensor.Vector4 {
	for axis := 0; axis < 3; axis++ {
		if !p.Box.Enabled[axis] || p.Box.Period[axis] == 0 {
			continue
		}
		L := p.Box.Period[axis]
		q.Spatial[axis] -= L * math.Floor(q.Spatial[axis]/L)
	}
	return q
}

// FindAll runs 1-27 inner queries (one per enabled-axis shift
// combination) at the wrapped query position and merges the results,
// deduplicating by particle index and keeping the smallest reported
// squared distance.
func (p *Periodic) FindAll(query tensor.Vector4, radius float64, dst []Neighbour) []Neighbour {
	start := len(dst)
	base := p.wrap(query)
	for _, off := range p.shifts() {
		dst = p.Inner.FindAll(shifted(base, off), radius, dst)
	}
	return dedup(dst, start, -1)
}

// FindAllIndex is FindAll centred on an existing particle, excluding it.
func (p *Periodic) FindAllIndex(index int, radius float64, dst []Neighbour) []Neighbour {
	start := len(dst)
	base := p.wrap(p.points[index])
	for _, off := range p.shifts() {
		dst = p.Inner.FindAll(shifted(base, off), radius, dst)
	}
	return dedup(dst, start, index)
}

// FindLowerRank applies the rank-in-H filter to every shifted query, so
// a pair wrapped across the boundary is still visited from exactly one
// side.
func (p *Periodic) FindLowerRank(index int, radius float64, dst []Neighbour) []Neighbour {
	start := len(dst)
	base := p.wrap(p.points[index])
	rank := p.Inner.RankInH(index)
	for _, off := range p.shifts() {
		if off == [3]float64{0, 0, 0} {
			dst = p.Inner.FindLowerRank(index, radius, dst)
			continue
		}
		from := len(dst)
		dst = p.Inner.FindAll(shifted(base, off), radius, dst)
		kept := dst[:from]
		for _, n := range dst[from:] {
			if p.Inner.RankInH(n.Index) < rank {
				kept = append(kept, n)
			}
		}
		dst = kept
	}
	return dedup(dst, start, index)
}

// RankInH delegates to the inner finder.
func (p *Periodic) RankInH(i int) int { return p.Inner.RankInH(i) }

// WrapDiff maps a pair separation vector onto its minimum image, so a
// pair straddling a periodic boundary interacts at its wrapped (small)
// separation. The solver consults this when the finder reports a
// wrapped distance.
func (p *Periodic) WrapDiff(d mgl64.Vec3) mgl64.Vec3 {
	for axis := 0; axis < 3; axis++ {
		if !p.Box.Enabled[axis] || p.Box.Period[axis] == 0 {
			continue
		}
		L := p.Box.Period[axis]
		d[axis] -= L * math.Round(d[axis]/L)
	}
	return d
}

// dedup collapses repeated indices to their smallest squared distance,
// dropping exclude (the query particle itself; pass -1 to keep all).
func dedup(dst []Neighbour, start, exclude int) []Neighbour {
	best := make(map[int]float64, len(dst)-start)
	order := make([]int, 0, len(dst)-start)
	for _, n := range dst[start:] {
		if n.Index == exclude {
			continue
		}
		if d, ok := best[n.Index]; !ok || n.DistSq < d {
			if !ok {
				order = append(order, n.Index)
			}
			best[n.Index] = n.DistSq
		}
	}
	out := dst[:start]
	for _, idx := range order {
		out = append(out, Neighbour{Index: idx, DistSq: best[idx]})
	}
	return out
}
