// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package finder implements the spatial-finder contract: range queries
// over a point cloud with smoothing lengths, supporting both symmetric
// (FindAll) and rank-asymmetric (FindLowerRank) queries, backed by a
// uniform grid, a k-d tree, a dynamic switch between the two, and a
// periodic wrapper composing any of them.
package finder

import (
	"sort"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosph/sched"
	"github.com/cpmech/gosph/tensor"
)

// Neighbour is one result of a range query: the neighbour's particle
// index and its squared distance to the query point.
type Neighbour struct {
	Index  int
	DistSq float64
}

// Finder is the common spatial-index contract. Build must be called
// (and must complete) before any query method. The periodic wrapper
// allocates de-duplication scratch on every query.
type Finder interface {
	// Build indexes points, using scheduler for any internal
	// parallelism. Rebuild preserves rank-in-H and may avoid
	// reallocation if the cell/node count is unchanged.
	Build(points []tensor.Vector4, scheduler sched.Scheduler) error

	// FindAll appends to dst every neighbour within radius of the query
	// point and returns the grown slice.
	FindAll(query tensor.Vector4, radius float64, dst []Neighbour) []Neighbour

	// FindAllIndex is FindAll for an existing particle's own position,
	// excluding the particle itself.
	FindAllIndex(index int, radius float64, dst []Neighbour) []Neighbour

	// FindLowerRank appends neighbours j of particle index whose
	// rank-in-H is strictly less than index's rank-in-H -- the
	// mechanism the solver uses for symmetric pairwise iteration
	// without double-counting (see RankInH).
	FindLowerRank(index int, radius float64, dst []Neighbour) []Neighbour

	// RankInH returns the position of particle index in the ascending-
	// by-H order established at the last Build.
	RankInH(index int) int
}

// hRanking computes and holds the ascending-by-H particle ranking shared
// by the grid and k-d tree implementations.
type hRanking struct {
	rankOf []int // particle index -> rank
}

func buildHRanking(points []tensor.Vector4) hRanking {
	n := len(points)
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	// stable sort keeps ties in index order, which is enough
	// determinism for the canonical reduction the accumulator relies on.
	sort.SliceStable(order, func(a, b int) bool {
		return points[order[a]].H < points[order[b]].H
	})
	rankOf := make([]int, n)
	for rank, idx := range order {
		rankOf[idx] = rank
	}
	return hRanking{rankOf: rankOf}
}

func (r hRanking) RankInH(i int) int {
	if i < 0 || i >= len(r.rankOf) {
		panic(chk.Err("finder: RankInH: index %d out of range [0,%d)", i, len(r.rankOf)))
	}
	return r.rankOf[i]
}
