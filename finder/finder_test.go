// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package finder

import (
	"math"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cpmech/gosph/rngseq"
	"github.com/cpmech/gosph/sched"
	"github.com/cpmech/gosph/tensor"
)

// randomCloud scatters n points in a box, with mildly varying H so the
// rank-in-H ordering is nontrivial.
func randomCloud(n int, scale float64) []tensor.Vector4 {
	gen := rngseq.NewGenerator(98765)
	out := make([]tensor.Vector4, n)
	for i := range out {
		out[i] = tensor.NewVector4(
			gen.Uniform(0, scale),
			gen.Uniform(0, scale),
			gen.Uniform(0, scale),
			gen.Uniform(0.5, 1.5),
		)
	}
	return out
}

func bruteForceAll(points []tensor.Vector4, query tensor.Vector4, radius float64) []int {
	var out []int
	r2 := radius * radius
	for i := range points {
		if points[i].DistSq(query) < r2 {
			out = append(out, i)
		}
	}
	sort.Ints(out)
	return out
}

func indices(neighs []Neighbour) []int {
	out := make([]int, len(neighs))
	for i, n := range neighs {
		out[i] = n.Index
	}
	sort.Ints(out)
	return out
}

func finders() map[string]func() Finder {
	return map[string]func() Finder{
		"grid":    func() Finder { return NewGrid() },
		"kdtree":  func() Finder { return NewKDTree(25) },
		"dynamic": func() Finder { return NewDynamic() },
	}
}

// Every finder must return exactly the brute-force neighbour set, with
// matching squared distances.
func TestFinders_FindAllMatchesBruteForce(t *testing.T) {
	points := randomCloud(400, 10)
	for name, make := range finders() {
		t.Run(name, func(t *testing.T) {
			f := make()
			require.NoError(t, f.Build(points, sched.NewSequential()))
			gen := rngseq.NewGenerator(4242)
			for trial := 0; trial < 20; trial++ {
				query := tensor.NewVector4(gen.Uniform(-1, 11), gen.Uniform(-1, 11), gen.Uniform(-1, 11), 1)
				radius := gen.Uniform(0.5, 3)
				got := f.FindAll(query, radius, nil)
				assert.Equal(t, bruteForceAll(points, query, radius), indices(got))
				for _, nb := range got {
					assert.InDelta(t, points[nb.Index].DistSq(query), nb.DistSq, 1e-9)
				}
			}
		})
	}
}

// FindAllIndex must exclude the query particle itself.
func TestFinders_FindAllIndexExcludesSelf(t *testing.T) {
	points := randomCloud(200, 5)
	for name, make := range finders() {
		t.Run(name, func(t *testing.T) {
			f := make()
			require.NoError(t, f.Build(points, sched.NewSequential()))
			for i := 0; i < 50; i++ {
				for _, nb := range f.FindAllIndex(i, 2, nil) {
					assert.NotEqual(t, i, nb.Index)
				}
			}
		})
	}
}

// Iterating find_lower_rank over all particles must visit every
// unordered pair within the radius exactly once.
func TestFinders_LowerRankVisitsEachPairOnce(t *testing.T) {
	points := randomCloud(250, 6)
	const radius = 1.5
	wantPairs := map[[2]int]int{}
	r2 := radius * radius
	for i := range points {
		for j := i + 1; j < len(points); j++ {
			if points[i].DistSq(points[j]) < r2 {
				wantPairs[[2]int{i, j}] = 0
			}
		}
	}
	for name, make := range finders() {
		t.Run(name, func(t *testing.T) {
			f := make()
			require.NoError(t, f.Build(points, sched.NewSequential()))
			got := map[[2]int]int{}
			for i := range points {
				for _, nb := range f.FindLowerRank(i, radius, nil) {
					a, b := i, nb.Index
					if a > b {
						a, b = b, a
					}
					got[[2]int{a, b}]++
				}
			}
			require.Equal(t, len(wantPairs), len(got))
			for pair, count := range got {
				assert.Equal(t, 1, count, "pair %v visited %d times", pair, count)
				_, ok := wantPairs[pair]
				assert.True(t, ok, "pair %v not within radius", pair)
			}
		})
	}
}

// Rebuilding after a small perturbation must keep queries correct (and
// the H ranking refreshed).
func TestFinders_RebuildStaysCorrect(t *testing.T) {
	points := randomCloud(300, 8)
	for name, make := range finders() {
		t.Run(name, func(t *testing.T) {
			f := make()
			require.NoError(t, f.Build(points, sched.NewSequential()))
			for i := range points {
				points[i].Spatial[0] += 0.01 * float64(i%7)
			}
			require.NoError(t, f.Build(points, sched.NewSequential()))
			query := points[13]
			got := f.FindAll(query, 2, nil)
			assert.Equal(t, bruteForceAll(points, query, 2), indices(got))
		})
	}
}

// A lattice wrapped on a box of size L=k*d must report the same
// neighbour count at any lattice point, shifted or not.
func TestPeriodic_LatticeTranslationInvariant(t *testing.T) {
	const k = 6
	const d = 1.0
	L := k * d
	var points []tensor.Vector4
	for x := 0; x < k; x++ {
		for y := 0; y < k; y++ {
			for z := 0; z < k; z++ {
				points = append(points, tensor.NewVector4(float64(x)*d, float64(y)*d, float64(z)*d, 1))
			}
		}
	}
	box := PeriodicBox{Period: [3]float64{L, L, L}, Enabled: [3]bool{true, true, true}}
	f := NewPeriodic(NewGrid(), box)
	require.NoError(t, f.Build(points, sched.NewSequential()))

	radius := 1.5 * d
	base := len(f.FindAll(tensor.NewVector4(0.3, 0.4, 0.5, 1), radius, nil))
	assert.Greater(t, base, 0)
	for _, shift := range [][3]float64{{L, 0, 0}, {0, -L, 0}, {2 * L, L, -L}} {
		q := tensor.NewVector4(0.3+shift[0], 0.4+shift[1], 0.5+shift[2], 1)
		assert.Equal(t, base, len(f.FindAll(q, radius, nil)), "shift %v", shift)
	}

	// interior and boundary lattice sites see identical neighbourhoods
	interior := len(f.FindAllIndex(siteIndex(k, 3, 3, 3), radius, nil))
	corner := len(f.FindAllIndex(siteIndex(k, 0, 0, 0), radius, nil))
	assert.Equal(t, interior, corner)
}

func siteIndex(k, x, y, z int) int { return (x*k+y)*k + z }

// Wrapped neighbours must be reported at their wrapped (small)
// distance.
func TestPeriodic_WrappedDistance(t *testing.T) {
	L := 10.0
	points := []tensor.Vector4{
		tensor.NewVector4(0.5, 5, 5, 1),
		tensor.NewVector4(9.5, 5, 5, 1),
	}
	box := PeriodicBox{Period: [3]float64{L, 0, 0}, Enabled: [3]bool{true, false, false}}
	f := NewPeriodic(NewGrid(), box)
	require.NoError(t, f.Build(points, sched.NewSequential()))
	neighs := f.FindAllIndex(0, 2, nil)
	require.Len(t, neighs, 1)
	assert.Equal(t, 1, neighs[0].Index)
	assert.InDelta(t, 1.0, math.Sqrt(neighs[0].DistSq), 1e-9)
}

// The dynamic finder must answer queries correctly for a compact cloud
// and, rebuilt on the same instance, for two far-apart clusters. Both
// clouds score well below CompactnessThreshold, so the grid serves
// both builds.
func TestDynamic_QueriesAcrossRebuilds(t *testing.T) {
	f := NewDynamic()
	compact := randomCloud(500, 5)
	require.NoError(t, f.Build(compact, sched.NewSequential()))
	query := compact[0]
	assert.Equal(t, bruteForceAll(compact, query, 2), indices(f.FindAll(query, 2, nil)))

	// two tight clusters far apart
	clustered := randomCloud(250, 1)
	far := randomCloud(250, 1)
	for i := range far {
		far[i].Spatial[0] += 1000
		clustered = append(clustered, far[i])
	}
	require.NoError(t, f.Build(clustered, sched.NewSequential()))
	q2 := clustered[400]
	assert.Equal(t, bruteForceAll(clustered, q2, 1.5), indices(f.FindAll(q2, 1.5, nil)))
}

// Parallel build must agree with the sequential one.
func TestKDTree_ParallelBuildMatches(t *testing.T) {
	points := randomCloud(800, 12)
	seq := NewKDTree(25)
	require.NoError(t, seq.Build(points, sched.NewSequential()))
	par := NewKDTree(25)
	require.NoError(t, par.Build(points, sched.NewThreadPool(4)))
	query := points[99]
	assert.Equal(t, indices(seq.FindAll(query, 3, nil)), indices(par.FindAll(query, 3, nil)))
}
