// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package sph implements the SPH/N-body equation solver: the neighbour
// loop that evaluates symmetrized kernel-weighted sums in parallel and
// reduces per-worker accumulators back into the quantity store.
package sph

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/stat"

	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/gosph/accum"
	"github.com/cpmech/gosph/deriv"
	"github.com/cpmech/gosph/equation"
	"github.com/cpmech/gosph/finder"
	"github.com/cpmech/gosph/kernel"
	"github.com/cpmech/gosph/qty"
	"github.com/cpmech/gosph/sched"
	"github.com/cpmech/gosph/stats"
	"github.com/cpmech/gosph/tensor"
)

// diffWrapper is implemented by periodic finders: it maps a pair
// separation onto its minimum image so wrapped pairs interact at their
// wrapped distance.
type diffWrapper interface {
	WrapDiff(d mgl64.Vec3) mgl64.Vec3
}

// workerScratch holds one worker's reusable query buffers, so the
// neighbour loop allocates nothing per query once the buffers have
// grown to their working size.
type workerScratch struct {
	neighs []finder.Neighbour
	idx    []int
	grads  []mgl64.Vec3
}

// Solver runs one derivative-evaluation pass per call to Evaluate:
// boundary injection, term initialization, finder rebuild, the parallel
// neighbour loop, canonical reduction, term finalization, clamping and
// ghost removal.
type Solver struct {
	scheduler sched.Scheduler
	find      finder.Finder
	kern      kernel.Kernel
	terms     *equation.Holder
	boundary  Boundary

	pool      *accum.Pool
	holders   []*deriv.Holder
	scratch   []workerScratch
	symmetric bool
	hasGrav   bool
	wrapper   diffWrapper

	counts []float64
	prof   *profiler
}

// NewSolver wires scheduler, finder, kernel and equation terms into a
// solver. Each worker gets its own derivative holder and accumulator so
// no two workers ever write the same buffer; boundary may be nil.
func NewSolver(scheduler sched.Scheduler, find finder.Finder, kern kernel.Kernel, terms *equation.Holder, boundary Boundary, log *logrus.Logger) (*Solver, error) {
	if scheduler == nil || find == nil || kern == nil || terms == nil {
		return nil, chk.Err("sph: solver needs a scheduler, a finder, a kernel and equation terms")
	}
	workers := scheduler.NumWorkers()
	s := &Solver{
		scheduler: scheduler,
		find:      find,
		kern:      kern,
		terms:     terms,
		boundary:  boundary,
		pool:      accum.NewPool(workers),
		holders:   make([]*deriv.Holder, workers),
		scratch:   make([]workerScratch, workers),
		hasGrav:   equation.Contains[*equation.Gravity](terms),
		prof:      newProfiler(log),
	}
	if w, ok := find.(diffWrapper); ok {
		s.wrapper = w
	}
	for w := 0; w < workers; w++ {
		h := deriv.NewHolder()
		if err := terms.SetDerivatives(h); err != nil {
			return nil, err
		}
		if err := h.Create(s.pool.Worker(w)); err != nil {
			return nil, err
		}
		s.holders[w] = h
	}
	s.symmetric = s.holders[0].Symmetric()
	return s, nil
}

// Terms returns the registered equation terms.
func (s *Solver) Terms() *equation.Holder { return s.terms }

// CreateQuantities runs every term's Create hook and then makes sure
// the store carries a column for every (quantity, order) the
// derivatives declared, so the post-loop reduction has a slot to write
// into. Call once after the bodies have been inserted.
func (s *Solver) CreateQuantities(store *qty.Store) error {
	if err := s.terms.Create(store); err != nil {
		return err
	}
	for _, decl := range s.pool.Worker(0).Declared() {
		if err := ensureColumn(store, decl.Id, decl.Kind, decl.Order); err != nil {
			return err
		}
	}
	return nil
}

func ensureColumn(store *qty.Store, id qty.Id, kind qty.ValueType, order qty.Order) error {
	if store.Has(id) {
		return nil
	}
	if k, o, ok := qty.CanonicalSchema(id); ok {
		kind, order = k, o
	}
	n := store.ParticleCount()
	switch kind {
	case qty.TFloat:
		return qty.Insert(store, id, order, make([]float64, n))
	case qty.TVector:
		return qty.Insert(store, id, order, make([]tensor.Vector4, n))
	case qty.TSymmetricTensor:
		return qty.Insert(store, id, order, make([]tensor.SymmetricTensor, n))
	case qty.TTracelessTensor:
		return qty.Insert(store, id, order, make([]tensor.TracelessTensor, n))
	case qty.TSize:
		return qty.Insert(store, id, order, make([]uint64, n))
	}
	return chk.Err("sph: cannot create column for %v: unknown value type", id)
}

// Evaluate runs one full derivative pass over store, leaving the
// highest-order derivative of every quantity populated for the
// integrator. st may be nil (integrator sub-stages skip statistics).
func (s *Solver) Evaluate(store *qty.Store, st *stats.Stats) error {
	if s.boundary != nil {
		if err := s.boundary.Apply(store); err != nil {
			return err
		}
	}
	store.ZeroHighestDerivatives()
	if err := s.terms.Initialize(store); err != nil {
		return err
	}

	positions, err := qty.GetValue[tensor.Vector4](store, qty.Position)
	if err != nil {
		return err
	}
	err = s.prof.measure(stats.TimeFinderBuild, func() error {
		return s.find.Build(positions, s.scheduler)
	})
	if err != nil {
		return err
	}

	n := len(positions)
	s.pool.InitializeAll(n)
	for w, h := range s.holders {
		if err := h.Initialize(store, s.pool.Worker(w)); err != nil {
			return err
		}
	}
	if cap(s.counts) < n {
		s.counts = make([]float64, n)
	}
	s.counts = s.counts[:n]

	err = s.prof.measure(stats.TimeSphEval, func() error {
		s.neighbourLoop(positions, n)
		return nil
	})
	if err != nil {
		return err
	}

	err = s.prof.measure(stats.TimeReduction, func() error {
		return s.pool.Reduce(store)
	})
	if err != nil {
		return err
	}

	finalizeKey := stats.TimeSphEval
	if s.hasGrav {
		finalizeKey = stats.TimeGravityEval
	}
	err = s.prof.measure(finalizeKey, func() error {
		return s.terms.Finalize(store)
	})
	if err != nil {
		return err
	}

	if err := clampPartitions(store); err != nil {
		return err
	}
	if s.boundary != nil {
		if err := s.boundary.Remove(store); err != nil {
			return err
		}
	}

	s.recordStats(st, n)
	return nil
}

// neighbourLoop partitions [0,n) into one contiguous range per worker
// slot and walks each range with that slot's derivative holder and
// accumulator, so worker writes never alias.
func (s *Solver) neighbourLoop(positions []tensor.Vector4, n int) {
	workers := len(s.holders)
	chunk := (n + workers - 1) / workers
	s.scheduler.Submit(workers, func(wlo, whi int) {
		for w := wlo; w < whi; w++ {
			lo := w * chunk
			hi := lo + chunk
			if hi > n {
				hi = n
			}
			if lo >= hi {
				continue
			}
			s.walkRange(w, lo, hi, positions)
		}
	})
}

func (s *Solver) walkRange(w, lo, hi int, positions []tensor.Vector4) {
	sc := &s.scratch[w]
	h := s.holders[w]
	for i := lo; i < hi; i++ {
		radius := s.kern.SupportRadius(positions[i].H)
		sc.neighs = sc.neighs[:0]
		if s.symmetric {
			sc.neighs = s.find.FindLowerRank(i, radius, sc.neighs)
		} else {
			sc.neighs = s.find.FindAllIndex(i, radius, sc.neighs)
		}
		sc.idx = sc.idx[:0]
		sc.grads = sc.grads[:0]
		for _, nb := range sc.neighs {
			j := nb.Index
			r := math.Sqrt(nb.DistSq)
			hbar := 0.5 * (positions[i].H + positions[j].H)
			f := s.kern.Grad(r, hbar)
			diff := positions[i].Spatial.Sub(positions[j].Spatial)
			if s.wrapper != nil {
				diff = s.wrapper.WrapDiff(diff)
			}
			sc.idx = append(sc.idx, j)
			sc.grads = append(sc.grads, diff.Mul(f))
		}
		s.counts[i] = float64(len(sc.idx))
		if s.symmetric {
			h.EvalSymmetric(i, sc.idx, sc.grads)
		} else {
			h.EvalAsymmetric(i, sc.idx, sc.grads)
		}
	}
}

// clampPartitions bounds each float quantity's value to its material's
// configured clamping range.
func clampPartitions(store *qty.Store) error {
	for _, part := range store.Partitions() {
		for id, rng := range part.Mat.Clamps {
			values, err := qty.GetValue[float64](store, id)
			if err != nil {
				continue // clamps apply to float quantities only
			}
			for i := part.Begin; i < part.End; i++ {
				if values[i] < rng.Min {
					values[i] = rng.Min
				}
				if values[i] > rng.Max {
					values[i] = rng.Max
				}
			}
		}
	}
	return nil
}

func (s *Solver) recordStats(st *stats.Stats, n int) {
	if st == nil {
		s.prof.flush(nil)
		return
	}
	if n > 0 {
		minC, maxC := s.counts[0], s.counts[0]
		for _, c := range s.counts[:n] {
			if c < minC {
				minC = c
			}
			if c > maxC {
				maxC = c
			}
		}
		st.Set(stats.NeighbourMin, int(minC))
		st.Set(stats.NeighbourMax, int(maxC))
		st.Set(stats.NeighbourMean, stat.Mean(s.counts[:n], nil))
	}
	s.prof.flush(st)
}
