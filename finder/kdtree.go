// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package finder

import (
	"math"
	"sort"

	"github.com/cpmech/gosph/sched"
	"github.com/cpmech/gosph/tensor"
)

// DefaultLeafSize is the configurable leaf size below which a k-d tree
// node stops splitting (spec §4.2 default ≈25 particles).
const DefaultLeafSize = 25

type kdNode struct {
	lo, hi [3]float64 // bounding box
	begin  int        // [begin,end) range into KDTree.order
	end    int
	axis   int // split axis, -1 for leaf
	split  float64
	left   int // child node indices, -1 if leaf
	right  int
}

// KDTree is the median-split k-d tree finder variant.
type KDTree struct {
	points []tensor.Vector4
	hRanking

	leafSize int
	nodes    []kdNode
	order    []int32 // particle indices permuted by subtree membership
}

// NewKDTree returns an unbuilt k-d tree with the given leaf size
// (<=0 uses DefaultLeafSize).
func NewKDTree(leafSize int) *KDTree {
	if leafSize <= 0 {
		leafSize = DefaultLeafSize
	}
	return &KDTree{leafSize: leafSize}
}

// Build constructs the tree. The build recurses in parallel via
// scheduler: each node submits its two children as a 2-chunk Submit once
// the subtree is large enough to be worth the hand-off.
func (t *KDTree) Build(points []tensor.Vector4, scheduler sched.Scheduler) error {
	t.points = points
	t.hRanking = buildHRanking(points)

	n := len(points)
	t.order = make([]int32, n)
	for i := range t.order {
		t.order[i] = int32(i)
	}
	t.nodes = t.nodes[:0]
	if n == 0 {
		return nil
	}
	root := t.newNode(0, n)
	t.splitParallel(root, scheduler, n)
	return nil
}

func (t *KDTree) newNode(begin, end int) int {
	lo, hi := t.bbox(begin, end)
	t.nodes = append(t.nodes, kdNode{lo: lo, hi: hi, begin: begin, end: end, axis: -1, left: -1, right: -1})
	return len(t.nodes) - 1
}

func (t *KDTree) bbox(begin, end int) (lo, hi [3]float64) {
	for i := 0; i < 3; i++ {
		lo[i] = math.Inf(1)
		hi[i] = math.Inf(-1)
	}
	for i := begin; i < end; i++ {
		p := t.points[t.order[i]]
		coord := [3]float64{p.X(), p.Y(), p.Z()}
		for d := 0; d < 3; d++ {
			if coord[d] < lo[d] {
				lo[d] = coord[d]
			}
			if coord[d] > hi[d] {
				hi[d] = coord[d]
			}
		}
	}
	return
}

// splitParallel recursively splits node, using scheduler to evaluate the
// two children concurrently once totalN justifies the hand-off cost.
func (t *KDTree) splitParallel(nodeIdx int, scheduler sched.Scheduler, totalN int) {
	node := t.nodes[nodeIdx]
	count := node.end - node.begin
	if count <= t.leafSize {
		return
	}

	axis := widestAxis(node.lo, node.hi)
	mid := (node.begin + node.end) / 2
	sub := t.order[node.begin:node.end]
	sort.Slice(sub, func(a, b int) bool {
		return coordOf(t.points[sub[a]], axis) < coordOf(t.points[sub[b]], axis)
	})
	split := coordOf(t.points[sub[mid-node.begin]], axis)

	leftIdx := t.newNode(node.begin, mid)
	rightIdx := t.newNode(mid, node.end)
	t.nodes[nodeIdx].axis = axis
	t.nodes[nodeIdx].split = split
	t.nodes[nodeIdx].left = leftIdx
	t.nodes[nodeIdx].right = rightIdx

	// Only worth forking into the scheduler for large subtrees; small
	// ones recurse inline to avoid goroutine overhead dominating.
	if count > totalN/8 && count > 4*t.leafSize {
		scheduler.Submit(2, func(lo, hi int) {
			for i := lo; i < hi; i++ {
				if i == 0 {
					t.splitParallel(leftIdx, scheduler, totalN)
				} else {
					t.splitParallel(rightIdx, scheduler, totalN)
				}
			}
		})
	} else {
		t.splitParallel(leftIdx, scheduler, totalN)
		t.splitParallel(rightIdx, scheduler, totalN)
	}
}

func widestAxis(lo, hi [3]float64) int {
	best, bestExtent := 0, hi[0]-lo[0]
	for d := 1; d < 3; d++ {
		if e := hi[d] - lo[d]; e > bestExtent {
			best, bestExtent = d, e
		}
	}
	return best
}

func coordOf(p tensor.Vector4, axis int) float64 {
	switch axis {
	case 0:
		return p.X()
	case 1:
		return p.Y()
	default:
		return p.Z()
	}
}

func boxIntersectsSphere(lo, hi [3]float64, q tensor.Vector4, radius float64) bool {
	center := [3]float64{q.X(), q.Y(), q.Z()}
	var d2 float64
	for i := 0; i < 3; i++ {
		v := center[i]
		if v < lo[i] {
			d2 += (lo[i] - v) * (lo[i] - v)
		} else if v > hi[i] {
			d2 += (v - hi[i]) * (v - hi[i])
		}
	}
	return d2 <= radius*radius
}

// FindAll appends every neighbour within radius of query.
func (t *KDTree) FindAll(query tensor.Vector4, radius float64, dst []Neighbour) []Neighbour {
	return t.query(query, radius, -1, -1, dst)
}

// FindAllIndex is FindAll centred on an existing particle, excluding it.
func (t *KDTree) FindAllIndex(index int, radius float64, dst []Neighbour) []Neighbour {
	return t.query(t.points[index], radius, index, -1, dst)
}

// FindLowerRank returns neighbours with rank-in-H strictly less than
// index's rank-in-H.
func (t *KDTree) FindLowerRank(index int, radius float64, dst []Neighbour) []Neighbour {
	return t.query(t.points[index], radius, index, t.RankInH(index), dst)
}

func (t *KDTree) query(q tensor.Vector4, radius float64, exclude, maxRank int, dst []Neighbour) []Neighbour {
	if len(t.nodes) == 0 {
		return dst
	}
	r2 := radius * radius
	var walk func(nodeIdx int)
	walk = func(nodeIdx int) {
		node := &t.nodes[nodeIdx]
		if !boxIntersectsSphere(node.lo, node.hi, q, radius) {
			return
		}
		if node.axis < 0 {
			for i := node.begin; i < node.end; i++ {
				j := int(t.order[i])
				if j == exclude {
					continue
				}
				if maxRank >= 0 && t.RankInH(j) >= maxRank {
					continue
				}
				d2 := q.DistSq(t.points[j])
				if d2 < r2 {
					dst = append(dst, Neighbour{Index: j, DistSq: d2})
				}
			}
			return
		}
		walk(node.left)
		walk(node.right)
	}
	walk(0)
	return dst
}
